package articles

import (
	"context"
	"errors"
	"testing"
	"time"
)

// memStore implements Store over an in-memory slice, mirroring what the
// remote pushdown produces. Used to exercise the store path without a
// database and to check path symmetry.
type memStore struct {
	items []Article
	err   error
}

func (m *memStore) SearchArticles(_ context.Context, args QueryArgs) ([]Article, int, error) {
	if m.err != nil {
		return nil, 0, m.err
	}

	filtered := ApplyFilters(m.items, args.Filters)
	if args.PublishedAfter != nil {
		scoped := make([]Article, 0, len(filtered))
		for _, item := range filtered {
			if !item.PublishedAt.Before(*args.PublishedAfter) {
				scoped = append(scoped, item)
			}
		}
		filtered = scoped
	}
	page := Paginate(SortItems(filtered, args.Sort), args.Page, args.Limit)
	return page.Items, page.Total, nil
}

func TestService_Query_DefaultsToPublished(t *testing.T) {
	service := NewService(nil, NewStaticDataset(testArticles()))

	result, err := service.Query(context.Background(), QueryArgs{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	// a3 is in review and must not leak through the public default.
	if result.Total != 2 {
		t.Errorf("Expected 2 published items, got %d", result.Total)
	}
	for _, item := range result.Items {
		if item.Status != StatusPublished {
			t.Errorf("Item %s has status %s, expected published", item.ID, item.Status)
		}
	}
}

func TestService_Query_ExplicitStatusRespected(t *testing.T) {
	service := NewService(nil, NewStaticDataset(testArticles()))

	result, err := service.Query(context.Background(), QueryArgs{
		Filters: Filters{Statuses: []Status{StatusReview}},
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if result.Total != 1 || result.Items[0].ID != "a3" {
		t.Errorf("Expected only the review item, got %d items", result.Total)
	}
}

func TestService_Query_LimitClamping(t *testing.T) {
	service := NewService(nil, NewStaticDataset(testArticles()))

	result, err := service.Query(context.Background(), QueryArgs{Limit: 999})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result.PerPage != MaxLimit {
		t.Errorf("Expected limit clamped to %d, got %d", MaxLimit, result.PerPage)
	}

	result, err = service.Query(context.Background(), QueryArgs{Limit: -3, Page: -1})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result.PerPage != DefaultPerPage {
		t.Errorf("Expected default limit %d, got %d", DefaultPerPage, result.PerPage)
	}
	if result.Page != 1 {
		t.Errorf("Expected page clamped to 1, got %d", result.Page)
	}
}

func TestService_Query_PublishedAfterInclusive(t *testing.T) {
	cutoff := time.Date(2026, 8, 15, 10, 0, 0, 0, time.UTC)
	service := NewService(nil, NewStaticDataset(testArticles()))

	result, err := service.Query(context.Background(), QueryArgs{PublishedAfter: &cutoff})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	// a2 is published exactly at the cutoff and must be included.
	if result.Total != 2 {
		t.Errorf("Expected 2 items at-or-after cutoff, got %d", result.Total)
	}
}

func TestService_Query_StoreFaultPropagated(t *testing.T) {
	storeErr := errors.New("relation does not exist")
	service := NewService(&memStore{err: storeErr}, nil)

	_, err := service.Query(context.Background(), QueryArgs{})
	if err == nil {
		t.Fatal("Expected store fault to propagate")
	}
	if !errors.Is(err, storeErr) {
		t.Errorf("Expected wrapped store error, got: %v", err)
	}
}

func TestService_Query_CancellationDistinctFromFault(t *testing.T) {
	service := NewService(&memStore{err: context.Canceled}, nil)

	_, err := service.Query(context.Background(), QueryArgs{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Expected context.Canceled to surface, got: %v", err)
	}
	// The abort must not be dressed up as a store fault.
	if got := err.Error(); got != context.Canceled.Error() {
		t.Errorf("Cancellation must pass through unwrapped, got: %q", got)
	}
}

func TestService_Query_PathSymmetry(t *testing.T) {
	items := testArticles()
	local := NewService(nil, NewStaticDataset(items))
	remote := NewService(&memStore{items: items}, nil)

	requests := []QueryArgs{
		{},
		{Filters: Filters{Sports: []string{"Athletics"}}},
		{Filters: Filters{Query: "volley"}, Sort: SortOfficialDesc},
		{Sort: SortDateAsc, Page: 2, Limit: 1},
		{Filters: Filters{Topics: []string{"intégrité", "calendrier"}}},
	}

	for i, args := range requests {
		localResult, err := local.Query(context.Background(), args)
		if err != nil {
			t.Fatalf("Request %d: local path error: %v", i, err)
		}
		remoteResult, err := remote.Query(context.Background(), args)
		if err != nil {
			t.Fatalf("Request %d: remote path error: %v", i, err)
		}

		if localResult.Total != remoteResult.Total {
			t.Errorf("Request %d: total mismatch local=%d remote=%d", i, localResult.Total, remoteResult.Total)
		}
		if localResult.Page != remoteResult.Page || localResult.PerPage != remoteResult.PerPage {
			t.Errorf("Request %d: pagination metadata mismatch", i)
		}
		if localResult.HasMore != remoteResult.HasMore {
			t.Errorf("Request %d: hasMore mismatch local=%v remote=%v", i, localResult.HasMore, remoteResult.HasMore)
		}
		if len(localResult.Items) != len(remoteResult.Items) {
			t.Errorf("Request %d: item count mismatch local=%d remote=%d", i, len(localResult.Items), len(remoteResult.Items))
			continue
		}
		for j := range localResult.Items {
			if localResult.Items[j].ID != remoteResult.Items[j].ID {
				t.Errorf("Request %d: item %d mismatch local=%s remote=%s",
					i, j, localResult.Items[j].ID, remoteResult.Items[j].ID)
			}
		}
	}
}
