package newsapi

import (
	"errors"
	"fmt"
	"time"

	"news_radar/internal/domain"
)

// UnknownSource is stored when the provider record carries no source object.
const UnknownSource = "Unknown"

var (
	ErrMissingTitle = errors.New("record has no title")
	ErrMissingURL   = errors.New("record has no url")
)

// ToArticle normalizes a provider record into a domain article attributed
// to the given configuration. Title, URL and a parseable publish time are
// required; everything else passes through as provided.
func (r Record) ToArticle(configID int64) (*domain.Article, error) {
	if r.Title == "" {
		return nil, ErrMissingTitle
	}
	if r.URL == "" {
		return nil, ErrMissingURL
	}

	publishedAt, err := time.Parse(time.RFC3339, r.PublishedAt)
	if err != nil {
		return nil, fmt.Errorf("parse publishedAt %q: %w", r.PublishedAt, err)
	}

	article := &domain.Article{
		SearchConfigID: configID,
		Title:          r.Title,
		Description:    r.Description,
		URL:            r.URL,
		URLToImage:     r.URLToImage,
		PublishedAt:    publishedAt,
		Content:        r.Content,
		Author:         r.Author,
		SourceName:     UnknownSource,
	}

	if r.Source != nil {
		article.SourceID = r.Source.ID
		article.SourceName = r.Source.Name
	}

	return article, nil
}
