package domain

import "time"

// Article is one ingested news record. URL is globally unique: the first
// configuration to ingest a URL owns the row, later matches count as
// duplicates and never reassign or overwrite it.
type Article struct {
	ID             int64     `db:"id" json:"id"`
	SearchConfigID int64     `db:"search_config_id" json:"search_config_id"`
	Title          string    `db:"title" json:"title"`
	Description    *string   `db:"description" json:"description"`
	URL            string    `db:"url" json:"url"`
	URLToImage     *string   `db:"url_to_image" json:"url_to_image"`
	PublishedAt    time.Time `db:"published_at" json:"published_at"`
	Content        *string   `db:"content" json:"content"`
	SourceID       *string   `db:"source_id" json:"source_id"`
	SourceName     string    `db:"source_name" json:"source_name"`
	Author         *string   `db:"author" json:"author"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	IsRead         bool      `db:"is_read" json:"is_read"`
}

// WriteOutcome reports whether a create-or-get stored a new row or found
// an existing one under the same URL.
type WriteOutcome int

const (
	OutcomeCreated WriteOutcome = iota
	OutcomeDuplicate
)
