package newsapi

import (
	"net/url"
	"strings"

	"news_radar/internal/domain"
)

// QueryFor maps a search configuration to top-headlines query parameters.
// The provider rejects combining sources with country/category, so both
// are dropped whenever sources is set, customized or not. Pure function
// of the configuration's current field values.
func QueryFor(cfg *domain.SearchConfig) url.Values {
	params := url.Values{}
	params.Set("country", cfg.Country)
	params.Set("category", cfg.Category)
	params.Set("sortBy", cfg.SortBy)

	if cfg.Keywords != "" {
		params.Set("q", cfg.Keywords)
	}

	if sources := cfg.SourcesList(); len(sources) > 0 {
		params.Set("sources", strings.Join(sources, ","))
		params.Del("country")
		params.Del("category")
	}

	return params
}
