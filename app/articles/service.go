package articles

import (
	"context"
	"errors"
	"fmt"
)

// Store is the remote article source. Implementations push the clamped
// request's predicates down and return one page of rows plus the exact
// count of all matching rows.
type Store interface {
	SearchArticles(ctx context.Context, args QueryArgs) ([]Article, int, error)
}

// Service is the single entry point for article queries. It serves the
// same contract from two interchangeable paths: a remote store with
// predicate pushdown, or an in-process snapshot filtered locally.
type Service struct {
	store   Store
	dataset *Dataset
}

// NewService builds a query service. A nil store selects the local
// snapshot path.
func NewService(store Store, dataset *Dataset) *Service {
	return &Service{store: store, dataset: dataset}
}

// Query resolves one facet+pagination request into a page of articles.
// Limits and pages are clamped, never rejected. Callers that do not
// constrain status only ever see published articles.
func (s *Service) Query(ctx context.Context, args QueryArgs) (Page, error) {
	args = normalizeArgs(args)

	if s.store != nil {
		return s.queryStore(ctx, args)
	}
	return s.queryLocal(args)
}

func normalizeArgs(args QueryArgs) QueryArgs {
	if args.Limit <= 0 {
		args.Limit = DefaultPerPage
	}
	if args.Limit > MaxLimit {
		args.Limit = MaxLimit
	}
	if args.Page < 1 {
		args.Page = 1
	}
	if args.Sort == "" {
		args.Sort = SortDateDesc
	}
	if len(args.Statuses) == 0 {
		args.Statuses = []Status{StatusPublished}
	}
	return args
}

func (s *Service) queryStore(ctx context.Context, args QueryArgs) (Page, error) {
	rows, total, err := s.store.SearchArticles(ctx, args)
	if err != nil {
		// A caller-initiated abort is an expected condition, not a
		// store fault; surface it unwrapped so upstream retry logic
		// can tell the two apart.
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return Page{}, err
		}
		return Page{}, fmt.Errorf("article store query failed: %w", err)
	}

	if rows == nil {
		rows = []Article{}
	}

	from := (args.Page - 1) * args.Limit
	to := from + args.Limit - 1

	return Page{
		Items:   rows,
		Total:   total,
		Page:    args.Page,
		PerPage: args.Limit,
		HasMore: total > to+1,
	}, nil
}

func (s *Service) queryLocal(args QueryArgs) (Page, error) {
	items, err := s.dataset.Articles()
	if err != nil {
		return Page{}, fmt.Errorf("failed to load article snapshot: %w", err)
	}

	filtered := ApplyFilters(items, args.Filters)

	if args.PublishedAfter != nil {
		cutoff := *args.PublishedAfter
		scoped := make([]Article, 0, len(filtered))
		for _, item := range filtered {
			if !item.PublishedAt.Before(cutoff) {
				scoped = append(scoped, item)
			}
		}
		filtered = scoped
	}

	sorted := SortItems(filtered, args.Sort)

	return Paginate(sorted, args.Page, args.Limit), nil
}
