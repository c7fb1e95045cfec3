package articles

import (
	"time"
)

const (
	// DefaultPerPage is the page size used when a caller does not ask for one.
	DefaultPerPage = 12
	// MaxLimit is the hard ceiling on page size. Requests above it are
	// clamped, never rejected.
	MaxLimit = 50

	// DefaultWindowDays scopes widget feeds to recent articles.
	DefaultWindowDays = 60
	// DefaultFallbackWindowDays is the wider window tried once when the
	// primary window comes back empty.
	DefaultFallbackWindowDays = 180
)

type Status string

const (
	StatusPublished Status = "published"
	StatusReview    Status = "review"
	StatusDraft     Status = "draft"
)

type SortOption string

const (
	SortDateDesc     SortOption = "date_desc"
	SortDateAsc      SortOption = "date_asc"
	SortOfficialDesc SortOption = "official_desc"
)

// ParseSortOption maps a raw string to a known sort, falling back to
// date_desc for anything unrecognized.
func ParseSortOption(s string) SortOption {
	switch SortOption(s) {
	case SortDateAsc, SortOfficialDesc:
		return SortOption(s)
	default:
		return SortDateDesc
	}
}

// Article is one published item from a sports-governance source.
type Article struct {
	ID               string    `json:"id"`
	SourceID         string    `json:"source_id"`
	SourceName       string    `json:"source_name"`
	OrganisationType string    `json:"organisation_type"`
	Sport            string    `json:"sport"`
	Country          string    `json:"country"`
	Language         string    `json:"language"`
	ContentType      string    `json:"content_type"`
	Title            string    `json:"title"`
	Summary          string    `json:"summary"`
	PublishedAt      time.Time `json:"published_at"`
	SourceURL        string    `json:"source_url"`
	ImageURL         string    `json:"image_url"`
	Topics           []string  `json:"topics"`
	OfficialWeight   float64   `json:"official_weight"`
	Status           Status    `json:"status"`
}

// Filters holds the facet constraints of one query. An empty list means
// the facet is unconstrained; values within a list combine with OR,
// facets combine with AND.
type Filters struct {
	Query             string
	Sports            []string
	OrganisationTypes []string
	Countries         []string
	ContentTypes      []string
	Languages         []string
	Topics            []string
	Statuses          []Status
}

// QueryArgs is the full input of one orchestrated query.
type QueryArgs struct {
	Filters
	Sort           SortOption
	Page           int
	Limit          int
	PublishedAfter *time.Time
}

// Page is one slice of a result set plus pagination metadata. Total
// counts matching rows before slicing.
type Page struct {
	Items   []Article `json:"items"`
	Total   int       `json:"total"`
	Page    int       `json:"page"`
	PerPage int       `json:"perPage"`
	HasMore bool      `json:"hasMore"`
}

// WidgetFilters is the sparse facet preset stored on a widget. Same
// vocabulary as Filters, keyed the way presets spell it.
type WidgetFilters struct {
	Sport            []string `json:"sport,omitempty" yaml:"sport"`
	OrganisationType []string `json:"organisation_type,omitempty" yaml:"organisation_type"`
	Country          []string `json:"country,omitempty" yaml:"country"`
	ContentType      []string `json:"content_type,omitempty" yaml:"content_type"`
	Language         []string `json:"language,omitempty" yaml:"language"`
	Topics           []string `json:"topics,omitempty" yaml:"topics"`
}

// WidgetConfig is a named, persisted filter+sort+limit preset used to
// produce an embeddable feed. Read-only from the engine's perspective.
type WidgetConfig struct {
	Slug           string        `json:"slug" yaml:"slug"`
	Name           string        `json:"name" yaml:"name"`
	Description    string        `json:"description,omitempty" yaml:"description"`
	Limit          int           `json:"limit" yaml:"limit"`
	Sort           SortOption    `json:"sort" yaml:"sort"`
	Filters        WidgetFilters `json:"filters" yaml:"filters"`
	AllowedDomains []string      `json:"allowed_domains,omitempty" yaml:"allowed_domains"`
}

// QueryFilters flattens the widget preset into engine filter lists.
func (w WidgetConfig) QueryFilters() Filters {
	return Filters{
		Sports:            w.Filters.Sport,
		OrganisationTypes: w.Filters.OrganisationType,
		Countries:         w.Filters.Country,
		ContentTypes:      w.Filters.ContentType,
		Languages:         w.Filters.Language,
		Topics:            w.Filters.Topics,
	}
}
