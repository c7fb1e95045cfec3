package articles

import (
	"net/url"
	"strings"
	"testing"
)

func TestBuildQueryString_LimitCeiling(t *testing.T) {
	qs := BuildQueryString(QueryArgs{Limit: 200})

	if !strings.Contains(qs, "limit=50") {
		t.Errorf("Expected limit clamped to 50, got %q", qs)
	}
	if strings.Contains(qs, "limit=200") {
		t.Errorf("Raw limit must never survive the ceiling, got %q", qs)
	}
}

func TestBuildQueryString_RepeatedFacets(t *testing.T) {
	qs := BuildQueryString(QueryArgs{
		Filters: Filters{
			Sports: []string{"Athletics", "Judo"},
			Topics: []string{"gouvernance"},
		},
	})

	values, err := url.ParseQuery(qs)
	if err != nil {
		t.Fatalf("Generated query string does not parse: %v", err)
	}

	if len(values["sport"]) != 2 {
		t.Errorf("Expected 2 sport parameters, got %d", len(values["sport"]))
	}
	if values.Get("topics") != "gouvernance" {
		t.Errorf("Expected topics=gouvernance, got %q", values.Get("topics"))
	}
}

func TestBuildQueryString_PageOnlyWhenBeyondFirst(t *testing.T) {
	if qs := BuildQueryString(QueryArgs{Page: 1}); strings.Contains(qs, "page=") {
		t.Errorf("Page 1 must be omitted, got %q", qs)
	}
	if qs := BuildQueryString(QueryArgs{Page: 3}); !strings.Contains(qs, "page=3") {
		t.Errorf("Expected page=3, got %q", qs)
	}
}

func TestArgsFromValues_RoundTrip(t *testing.T) {
	original := QueryArgs{
		Filters: Filters{
			Query:             "volley",
			Sports:            []string{"Volleyball"},
			Countries:         []string{"FRA", "CHE"},
			OrganisationTypes: []string{"IF"},
			Topics:            []string{"calendrier"},
		},
		Sort:  SortOfficialDesc,
		Page:  2,
		Limit: 100,
	}

	parsed := ArgsFromValues(mustParseQuery(t, BuildQueryString(original)))

	if parsed.Query != "volley" {
		t.Errorf("Expected query preserved, got %q", parsed.Query)
	}
	if len(parsed.Countries) != 2 {
		t.Errorf("Expected 2 countries, got %d", len(parsed.Countries))
	}
	if parsed.Sort != SortOfficialDesc {
		t.Errorf("Expected sort preserved, got %s", parsed.Sort)
	}
	if parsed.Page != 2 {
		t.Errorf("Expected page 2, got %d", parsed.Page)
	}
	if parsed.Limit != 50 {
		t.Errorf("Expected limit capped at 50 through the round trip, got %d", parsed.Limit)
	}
}

func TestArgsFromValues_Defaults(t *testing.T) {
	args := ArgsFromValues(url.Values{})

	if args.Page != 1 {
		t.Errorf("Expected default page 1, got %d", args.Page)
	}
	if args.Sort != SortDateDesc {
		t.Errorf("Expected default sort date_desc, got %s", args.Sort)
	}
	if args.Limit != 0 {
		t.Errorf("Expected no limit by default, got %d", args.Limit)
	}
	if len(args.Sports) != 0 {
		t.Errorf("Expected unconstrained sports, got %v", args.Sports)
	}
}

func TestArgsFromValues_IgnoresEmptyValues(t *testing.T) {
	values := url.Values{}
	values.Add("sport", "")
	values.Add("sport", "Judo")
	values.Set("page", "-2")
	values.Set("limit", "abc")

	args := ArgsFromValues(values)

	if len(args.Sports) != 1 || args.Sports[0] != "Judo" {
		t.Errorf("Expected empty facet values dropped, got %v", args.Sports)
	}
	if args.Page != 1 {
		t.Errorf("Expected invalid page to fall back to 1, got %d", args.Page)
	}
	if args.Limit != 0 {
		t.Errorf("Expected invalid limit ignored, got %d", args.Limit)
	}
}

func mustParseQuery(t *testing.T, qs string) url.Values {
	t.Helper()
	values, err := url.ParseQuery(qs)
	if err != nil {
		t.Fatalf("Failed to parse query string %q: %v", qs, err)
	}
	return values
}
