package articles

import (
	"strings"
)

// ApplyFilters returns the subset of items satisfying every non-empty
// constraint in filters. The predicate is pure; items is not modified.
func ApplyFilters(items []Article, filters Filters) []Article {
	matched := make([]Article, 0, len(items))
	for _, item := range items {
		if matchesFilters(item, filters) {
			matched = append(matched, item)
		}
	}
	return matched
}

func matchesFilters(item Article, filters Filters) bool {
	if filters.Query != "" {
		haystacks := []string{item.Title, item.Summary, item.SourceName, item.Sport}
		found := false
		for _, field := range haystacks {
			if containsFold(field, filters.Query) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if len(filters.Sports) > 0 && !contains(filters.Sports, item.Sport) {
		return false
	}

	if len(filters.OrganisationTypes) > 0 && !contains(filters.OrganisationTypes, item.OrganisationType) {
		return false
	}

	if len(filters.Countries) > 0 && !contains(filters.Countries, item.Country) {
		return false
	}

	if len(filters.ContentTypes) > 0 && !contains(filters.ContentTypes, item.ContentType) {
		return false
	}

	if len(filters.Languages) > 0 && !contains(filters.Languages, item.Language) {
		return false
	}

	// Topics match on any overlap, not subset.
	if len(filters.Topics) > 0 && !overlaps(item.Topics, filters.Topics) {
		return false
	}

	if len(filters.Statuses) > 0 && !containsStatus(filters.Statuses, item.Status) {
		return false
	}

	return true
}

func containsFold(value, query string) bool {
	return strings.Contains(strings.ToLower(value), strings.ToLower(query))
}

func contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}

func containsStatus(values []Status, value Status) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}

func overlaps(a, b []string) bool {
	for _, v := range a {
		if contains(b, v) {
			return true
		}
	}
	return false
}
