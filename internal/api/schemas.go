package api

import (
	"fmt"
	"time"

	"news_radar/internal/domain"
	"news_radar/internal/source/newsapi"
)

type configRequest struct {
	Name           string  `json:"name" binding:"required"`
	Keywords       string  `json:"keywords"`
	Country        string  `json:"country"`
	Category       string  `json:"category"`
	Sources        string  `json:"sources"`
	Domains        string  `json:"domains"`
	ExcludeDomains string  `json:"exclude_domains"`
	Language       string  `json:"language"`
	SortBy         string  `json:"sort_by"`
	Frequency      string  `json:"frequency"`
	IsActive       *bool   `json:"is_active"`
}

func (r *configRequest) applyDefaults() {
	if r.Country == "" {
		r.Country = "us"
	}
	if r.Category == "" {
		r.Category = "general"
	}
	if r.Language == "" {
		r.Language = "en"
	}
	if r.SortBy == "" {
		r.SortBy = domain.SortByPublishedAt
	}
	if r.Frequency == "" {
		r.Frequency = domain.FrequencyDaily
	}
}

func (r *configRequest) validate() error {
	if !domain.ValidCountry(r.Country) {
		return fmt.Errorf("invalid country %q", r.Country)
	}
	if !domain.ValidCategory(r.Category) {
		return fmt.Errorf("invalid category %q", r.Category)
	}
	if !domain.ValidSortBy(r.SortBy) {
		return fmt.Errorf("invalid sort_by %q", r.SortBy)
	}
	if !domain.ValidFrequency(r.Frequency) {
		return fmt.Errorf("invalid frequency %q", r.Frequency)
	}
	return nil
}

func (r *configRequest) apply(cfg *domain.SearchConfig) {
	cfg.Name = r.Name
	cfg.Keywords = r.Keywords
	cfg.Country = r.Country
	cfg.Category = r.Category
	cfg.Sources = r.Sources
	cfg.Domains = r.Domains
	cfg.ExcludeDomains = r.ExcludeDomains
	cfg.Language = r.Language
	cfg.SortBy = r.SortBy
	cfg.Frequency = r.Frequency
	cfg.IsActive = r.IsActive == nil || *r.IsActive
}

type articleRequest struct {
	SearchConfigID int64   `json:"search_config_id" binding:"required"`
	Title          string  `json:"title" binding:"required"`
	URL            string  `json:"url" binding:"required"`
	PublishedAt    string  `json:"published_at" binding:"required"`
	Description    *string `json:"description"`
	URLToImage     *string `json:"url_to_image"`
	Content        *string `json:"content"`
	SourceID       *string `json:"source_id"`
	SourceName     string  `json:"source_name"`
	Author         *string `json:"author"`
}

func (r *articleRequest) toArticle() (*domain.Article, error) {
	publishedAt, err := time.Parse(time.RFC3339, r.PublishedAt)
	if err != nil {
		return nil, fmt.Errorf("invalid published_at: %w", err)
	}

	sourceName := r.SourceName
	if sourceName == "" {
		sourceName = newsapi.UnknownSource
	}

	return &domain.Article{
		SearchConfigID: r.SearchConfigID,
		Title:          r.Title,
		URL:            r.URL,
		PublishedAt:    publishedAt,
		Description:    r.Description,
		URLToImage:     r.URLToImage,
		Content:        r.Content,
		SourceID:       r.SourceID,
		SourceName:     sourceName,
		Author:         r.Author,
	}, nil
}

type batchRequest struct {
	SearchConfigID int64            `json:"search_config_id" binding:"required"`
	Records        []newsapi.Record `json:"records" binding:"required"`
}
