package articles

import (
	"sort"
)

// SortItems returns a new slice ordered by the given sort option. The
// input slice is left untouched.
func SortItems(items []Article, option SortOption) []Article {
	sorted := make([]Article, len(items))
	copy(sorted, items)

	switch option {
	case SortOfficialDesc:
		// Equal weights fall back to most recent first.
		sort.SliceStable(sorted, func(i, j int) bool {
			if sorted[i].OfficialWeight == sorted[j].OfficialWeight {
				return sorted[i].PublishedAt.After(sorted[j].PublishedAt)
			}
			return sorted[i].OfficialWeight > sorted[j].OfficialWeight
		})
	case SortDateAsc:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].PublishedAt.Before(sorted[j].PublishedAt)
		})
	default:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].PublishedAt.After(sorted[j].PublishedAt)
		})
	}

	return sorted
}
