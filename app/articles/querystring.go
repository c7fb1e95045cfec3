package articles

import (
	"net/url"
	"strconv"
)

// BuildQueryString encodes query args in the public URL form: repeated
// parameters per facet, and a limit always clamped to MaxLimit.
func BuildQueryString(args QueryArgs) string {
	params := url.Values{}

	if args.Query != "" {
		params.Set("query", args.Query)
	}

	appendList := func(key string, values []string) {
		for _, value := range values {
			if value != "" {
				params.Add(key, value)
			}
		}
	}

	appendList("sport", args.Sports)
	appendList("organisation_type", args.OrganisationTypes)
	appendList("country", args.Countries)
	appendList("content_type", args.ContentTypes)
	appendList("language", args.Languages)
	appendList("topics", args.Topics)

	if args.Sort != "" {
		params.Set("sort", string(args.Sort))
	}

	if args.Page > 1 {
		params.Set("page", strconv.Itoa(args.Page))
	}

	if args.Limit > 0 {
		limit := args.Limit
		if limit > MaxLimit {
			limit = MaxLimit
		}
		params.Set("limit", strconv.Itoa(limit))
	}

	return params.Encode()
}

// ArgsFromValues parses the public URL form back into query args.
// Repeated parameters build up the OR-list for their facet.
func ArgsFromValues(params url.Values) QueryArgs {
	getList := func(key string) []string {
		var values []string
		for _, value := range params[key] {
			if value != "" {
				values = append(values, value)
			}
		}
		return values
	}

	args := QueryArgs{
		Filters: Filters{
			Query:             params.Get("query"),
			Sports:            getList("sport"),
			OrganisationTypes: getList("organisation_type"),
			Countries:         getList("country"),
			ContentTypes:      getList("content_type"),
			Languages:         getList("language"),
			Topics:            getList("topics"),
		},
		Sort: ParseSortOption(params.Get("sort")),
		Page: 1,
	}

	if page, err := strconv.Atoi(params.Get("page")); err == nil && page > 0 {
		args.Page = page
	}

	if limit, err := strconv.Atoi(params.Get("limit")); err == nil && limit > 0 {
		args.Limit = limit
	}

	return args
}
