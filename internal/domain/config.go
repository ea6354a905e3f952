package domain

import (
	"strings"
	"time"
)

const (
	FrequencyHourly = "hourly"
	FrequencyDaily  = "daily"
	FrequencyWeekly = "weekly"
)

const (
	SortByPublishedAt = "publishedAt"
	SortByRelevancy   = "relevancy"
	SortByPopularity  = "popularity"
)

var (
	Countries   = []string{"us", "uk", "ca"}
	Categories  = []string{"general", "business", "technology"}
	SortOrders  = []string{SortByPublishedAt, SortByRelevancy, SortByPopularity}
	Frequencies = []string{FrequencyHourly, FrequencyDaily, FrequencyWeekly}
)

// SearchConfig is a saved, schedulable news-search definition owned by a user.
type SearchConfig struct {
	ID             int64      `db:"id" json:"id"`
	UserID         int64      `db:"user_id" json:"user_id"`
	Name           string     `db:"name" json:"name"`
	Keywords       string     `db:"keywords" json:"keywords"`
	Country        string     `db:"country" json:"country"`
	Category       string     `db:"category" json:"category"`
	Sources        string     `db:"sources" json:"sources"`
	Domains        string     `db:"domains" json:"domains"`
	ExcludeDomains string     `db:"exclude_domains" json:"exclude_domains"`
	Language       string     `db:"language" json:"language"`
	SortBy         string     `db:"sort_by" json:"sort_by"`
	Frequency      string     `db:"frequency" json:"frequency"`
	IsActive       bool       `db:"is_active" json:"is_active"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at" json:"updated_at"`
	LastExecuted   *time.Time `db:"last_executed" json:"last_executed"`
}

// SourcesList splits the comma-separated sources field, dropping empty entries.
func (c *SearchConfig) SourcesList() []string {
	if c.Sources == "" {
		return nil
	}
	var out []string
	for _, s := range strings.Split(c.Sources, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func ValidCountry(v string) bool   { return contains(Countries, v) }
func ValidCategory(v string) bool  { return contains(Categories, v) }
func ValidSortBy(v string) bool    { return contains(SortOrders, v) }
func ValidFrequency(v string) bool { return contains(Frequencies, v) }

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

// User owns search configurations. Deleting a user removes its configs
// and, through them, their articles.
type User struct {
	ID        int64     `db:"id" json:"id"`
	Username  string    `db:"username" json:"username"`
	Email     string    `db:"email" json:"email"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
