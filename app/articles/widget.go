package articles

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// ErrWidgetNotFound reports an unknown widget slug. Callers map it to
// their own not-found signal instead of treating it as a fault.
var ErrWidgetNotFound = errors.New("widget not found")

// WidgetSource looks up persisted widget configurations by slug. A nil
// config with a nil error means the slug is unknown.
type WidgetSource interface {
	GetWidgetBySlug(ctx context.Context, slug string) (*WidgetConfig, error)
}

// ResolveOptions carries the caller-side knobs of one widget request.
// Zero values select the stored/default policy.
type ResolveOptions struct {
	Limit              int
	WindowDays         int
	FallbackWindowDays int
	Fallback           bool
}

// Resolver turns a named widget configuration into a bounded article
// list, scoping results to a trailing time window and widening it once
// when the primary window is empty.
type Resolver struct {
	widgets WidgetSource
	service *Service
	now     func() time.Time
}

func NewResolver(widgets WidgetSource, service *Service) *Resolver {
	return &Resolver{
		widgets: widgets,
		service: service,
		now:     time.Now,
	}
}

// Resolve looks up the widget for slug and executes its preset query.
func (r *Resolver) Resolve(ctx context.Context, slug string, opts ResolveOptions) (WidgetConfig, []Article, error) {
	widget, err := r.widgets.GetWidgetBySlug(ctx, slug)
	if err != nil {
		return WidgetConfig{}, nil, fmt.Errorf("widget lookup failed: %w", err)
	}
	if widget == nil {
		return WidgetConfig{}, nil, ErrWidgetNotFound
	}

	limit := widget.Limit
	if opts.Limit > 0 {
		limit = opts.Limit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	windowDays := opts.WindowDays
	if windowDays <= 0 {
		windowDays = DefaultWindowDays
	}
	fallbackDays := opts.FallbackWindowDays
	if fallbackDays <= 0 {
		fallbackDays = DefaultFallbackWindowDays
	}

	args := QueryArgs{
		Filters: widget.QueryFilters(),
		Sort:    widget.Sort,
		Limit:   limit,
	}

	result, err := r.queryWindow(ctx, args, windowDays)
	if err != nil {
		return WidgetConfig{}, nil, err
	}

	if len(result.Items) == 0 && opts.Fallback {
		slog.Debug("Widget window empty, widening", "widget", slug, "window_days", windowDays, "fallback_days", fallbackDays)
		result, err = r.queryWindow(ctx, args, fallbackDays)
		if err != nil {
			return WidgetConfig{}, nil, err
		}
	}

	items := result.Items
	if len(items) > limit {
		items = items[:limit]
	}

	return *widget, items, nil
}

func (r *Resolver) queryWindow(ctx context.Context, args QueryArgs, days int) (Page, error) {
	after := r.now().AddDate(0, 0, -days)
	args.PublishedAfter = &after
	return r.service.Query(ctx, args)
}
