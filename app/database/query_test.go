package database

import (
	"strings"
	"testing"
	"time"

	"github.com/pmoreau/sportwire/app/articles"
)

func TestBuildSearchQuery_MembershipPredicates(t *testing.T) {
	query, args := buildSearchQuery(articles.QueryArgs{
		Filters: articles.Filters{
			Sports:    []string{"Athletics"},
			Countries: []string{"FRA", "CHE"},
			Statuses:  []articles.Status{articles.StatusPublished},
		},
		Page:  1,
		Limit: 12,
	})

	for _, clause := range []string{
		"status = ANY($1)",
		"sport = ANY($2)",
		"country = ANY($3)",
	} {
		if !strings.Contains(query, clause) {
			t.Errorf("Expected clause %q in query:\n%s", clause, query)
		}
	}

	// statuses, sport, countries, limit, offset
	if len(args) != 5 {
		t.Errorf("Expected 5 query args, got %d", len(args))
	}
}

func TestBuildSearchQuery_TopicOverlap(t *testing.T) {
	query, _ := buildSearchQuery(articles.QueryArgs{
		Filters: articles.Filters{Topics: []string{"intégrité"}},
		Page:    1,
		Limit:   12,
	})

	if !strings.Contains(query, "topics && $1") {
		t.Errorf("Expected array-overlap predicate for topics, got:\n%s", query)
	}
}

func TestBuildSearchQuery_FreeTextOverFourFields(t *testing.T) {
	query, args := buildSearchQuery(articles.QueryArgs{
		Filters: articles.Filters{Query: "vol%ley"},
		Page:    1,
		Limit:   12,
	})

	if !strings.Contains(query,
		"(title ILIKE $1 OR summary ILIKE $1 OR source_name ILIKE $1 OR sport ILIKE $1)") {
		t.Errorf("Expected OR-combined ILIKE over the four search fields, got:\n%s", query)
	}

	// Percent signs are stripped from the raw query before wrapping.
	if args[0] != "%volley%" {
		t.Errorf("Expected pattern %%volley%%, got %v", args[0])
	}
}

func TestBuildSearchQuery_PublishedAfterRange(t *testing.T) {
	after := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	query, args := buildSearchQuery(articles.QueryArgs{
		PublishedAfter: &after,
		Page:           1,
		Limit:          12,
	})

	if !strings.Contains(query, "published_at >= $1") {
		t.Errorf("Expected lower-bound range predicate, got:\n%s", query)
	}
	if args[0] != after {
		t.Errorf("Expected cutoff as first arg, got %v", args[0])
	}
}

func TestBuildSearchQuery_SortClauses(t *testing.T) {
	tests := []struct {
		sort     articles.SortOption
		expected string
	}{
		{articles.SortDateDesc, "ORDER BY published_at DESC"},
		{articles.SortDateAsc, "ORDER BY published_at ASC"},
		{articles.SortOfficialDesc, "ORDER BY official_weight DESC, published_at DESC"},
	}

	for _, tt := range tests {
		query, _ := buildSearchQuery(articles.QueryArgs{Sort: tt.sort, Page: 1, Limit: 12})
		if !strings.Contains(query, tt.expected) {
			t.Errorf("Sort %s: expected %q in query:\n%s", tt.sort, tt.expected, query)
		}
	}
}

func TestBuildSearchQuery_RangeWindow(t *testing.T) {
	_, args := buildSearchQuery(articles.QueryArgs{Page: 3, Limit: 10})

	// Last two args are LIMIT and OFFSET.
	if args[len(args)-2] != 10 {
		t.Errorf("Expected limit arg 10, got %v", args[len(args)-2])
	}
	if args[len(args)-1] != 20 {
		t.Errorf("Expected offset arg 20 for page 3, got %v", args[len(args)-1])
	}
}

func TestBuildSearchQuery_CountProjection(t *testing.T) {
	query, _ := buildSearchQuery(articles.QueryArgs{Page: 1, Limit: 12})

	if !strings.Contains(query, "COUNT(*) OVER() AS total") {
		t.Errorf("Expected windowed total count in projection, got:\n%s", query)
	}
}
