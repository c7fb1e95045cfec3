package widgets

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/pmoreau/sportwire/app/articles"
)

// Cache holds widget presets parsed from YAML files in a presets
// directory, one file per slug. It backs the widget lookup in local
// mode and feeds the database seeder in remote mode.
type Cache struct {
	presetsDir string
	cache      map[string]*articles.WidgetConfig
	mu         sync.RWMutex
}

func NewCache(presetsDir string) *Cache {
	return &Cache{
		presetsDir: presetsDir,
		cache:      make(map[string]*articles.WidgetConfig),
	}
}

// Run loads every preset file from the presets directory. A missing
// directory is not an error; the cache just stays empty.
func (c *Cache) Run() error {
	if _, err := os.Stat(c.presetsDir); os.IsNotExist(err) {
		return nil
	}

	files, err := filepath.Glob(filepath.Join(c.presetsDir, "*.yml"))
	if err != nil {
		return fmt.Errorf("failed to find preset files: %w", err)
	}

	loaded := make(map[string]*articles.WidgetConfig, len(files))
	for _, file := range files {
		slug := strings.TrimSuffix(filepath.Base(file), ".yml")

		widget, err := c.parsePreset(file, slug)
		if err != nil {
			return fmt.Errorf("error loading %s: %w", file, err)
		}

		loaded[widget.Slug] = widget
		slog.Debug("Widget preset loaded", "slug", widget.Slug, "limit", widget.Limit, "sort", widget.Sort)
	}

	c.mu.Lock()
	c.cache = loaded
	c.mu.Unlock()

	return nil
}

// GetWidgetBySlug implements articles.WidgetSource.
func (c *Cache) GetWidgetBySlug(_ context.Context, slug string) (*articles.WidgetConfig, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	widget, ok := c.cache[slug]
	if !ok {
		return nil, nil
	}
	return widget, nil
}

// ListWidgets returns a copy of all cached presets sorted by slug.
func (c *Cache) ListWidgets(_ context.Context) ([]articles.WidgetConfig, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	widgets := make([]articles.WidgetConfig, 0, len(c.cache))
	for _, widget := range c.cache {
		widgets = append(widgets, *widget)
	}
	sort.Slice(widgets, func(i, j int) bool {
		return widgets[i].Slug < widgets[j].Slug
	})
	return widgets, nil
}

// GetWidgetCount returns the number of cached presets.
func (c *Cache) GetWidgetCount(_ context.Context) (int, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.cache), nil
}

func (c *Cache) parsePreset(file, slug string) (*articles.WidgetConfig, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var widget articles.WidgetConfig
	if err := yaml.Unmarshal(data, &widget); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	// Filename is authoritative for the slug.
	if widget.Slug == "" {
		widget.Slug = slug
	}
	if widget.Limit == 0 {
		widget.Limit = articles.DefaultPerPage
	}
	if widget.Sort == "" {
		widget.Sort = articles.SortDateDesc
	}

	if err := validatePreset(&widget); err != nil {
		return nil, fmt.Errorf("invalid preset %s: %w", file, err)
	}

	return &widget, nil
}

func validatePreset(widget *articles.WidgetConfig) error {
	if widget.Slug == "" {
		return fmt.Errorf("slug is required")
	}
	if widget.Name == "" {
		return fmt.Errorf("name is required")
	}
	if widget.Limit < 0 {
		return fmt.Errorf("limit must be non-negative")
	}

	switch widget.Sort {
	case articles.SortDateDesc, articles.SortDateAsc, articles.SortOfficialDesc:
	default:
		return fmt.Errorf("invalid sort option: %s", widget.Sort)
	}

	return nil
}
