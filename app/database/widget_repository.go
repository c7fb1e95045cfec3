package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/pmoreau/sportwire/app/articles"
)

// WidgetRepository stores persisted widget presets. The query engine
// only ever reads them; writes come from the admin path and the seed
// loader.
type WidgetRepository struct {
	db *DB
}

func NewWidgetRepository(db *DB) *WidgetRepository {
	return &WidgetRepository{db: db}
}

// GetWidgetBySlug implements articles.WidgetSource. An unknown slug
// returns nil without an error.
func (r *WidgetRepository) GetWidgetBySlug(ctx context.Context, slug string) (*articles.WidgetConfig, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT slug, name, COALESCE(description, ''), item_limit, sort,
		       filters, COALESCE(allowed_domains, '{}')
		FROM widgets
		WHERE slug = $1
	`, slug)

	widget, err := scanWidget(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get widget %s: %w", slug, err)
	}

	return widget, nil
}

// ListWidgets returns all presets ordered by slug.
func (r *WidgetRepository) ListWidgets(ctx context.Context) ([]articles.WidgetConfig, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT slug, name, COALESCE(description, ''), item_limit, sort,
		       filters, COALESCE(allowed_domains, '{}')
		FROM widgets
		ORDER BY slug
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list widgets: %w", err)
	}
	defer rows.Close()

	var widgets []articles.WidgetConfig
	for rows.Next() {
		widget, err := scanWidget(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan widget row: %w", err)
		}
		widgets = append(widgets, *widget)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating widget rows: %w", err)
	}

	return widgets, nil
}

// UpsertWidget inserts or updates a preset by slug.
func (r *WidgetRepository) UpsertWidget(ctx context.Context, widget articles.WidgetConfig) error {
	filters, err := json.Marshal(widget.Filters)
	if err != nil {
		return fmt.Errorf("failed to encode widget filters: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO widgets (id, slug, name, description, item_limit, sort, filters, allowed_domains)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (slug) DO UPDATE SET
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			item_limit = EXCLUDED.item_limit,
			sort = EXCLUDED.sort,
			filters = EXCLUDED.filters,
			allowed_domains = EXCLUDED.allowed_domains,
			updated_at = NOW()
	`, uuid.NewString(), widget.Slug, widget.Name, widget.Description,
		widget.Limit, string(widget.Sort), filters, pq.Array(widget.AllowedDomains))

	if err != nil {
		return fmt.Errorf("failed to upsert widget %s: %w", widget.Slug, err)
	}

	return nil
}

// GetWidgetCount returns the number of stored presets.
func (r *WidgetRepository) GetWidgetCount(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM widgets").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get widget count: %w", err)
	}
	return count, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanWidget(row rowScanner) (*articles.WidgetConfig, error) {
	var widget articles.WidgetConfig
	var filtersRaw []byte
	var sort string

	err := row.Scan(&widget.Slug, &widget.Name, &widget.Description,
		&widget.Limit, &sort, &filtersRaw, pq.Array(&widget.AllowedDomains))
	if err != nil {
		return nil, err
	}

	widget.Sort = articles.ParseSortOption(sort)

	if len(filtersRaw) > 0 {
		if err := json.Unmarshal(filtersRaw, &widget.Filters); err != nil {
			return nil, fmt.Errorf("failed to decode widget filters: %w", err)
		}
	}

	return &widget, nil
}
