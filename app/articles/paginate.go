package articles

// Paginate slices an ordered collection into one 1-based page. Pages
// beyond the end yield an empty slice with correct metadata, never an
// error.
func Paginate(items []Article, page, perPage int) Page {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 1
	}

	start := (page - 1) * perPage
	end := start + perPage

	var sliced []Article
	if start < len(items) {
		if end > len(items) {
			end = len(items)
		}
		sliced = items[start:end]
	} else {
		sliced = []Article{}
	}

	return Page{
		Items:   sliced,
		Total:   len(items),
		Page:    page,
		PerPage: perPage,
		HasMore: page*perPage < len(items),
	}
}
