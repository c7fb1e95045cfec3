package articles

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sync"
)

// Dataset is the in-process article snapshot used when no remote store
// is configured. The file is read once on first access and the decoded
// slice is reused for the remainder of the process lifetime.
type Dataset struct {
	path  string
	once  sync.Once
	items []Article
	err   error
}

func NewDataset(path string) *Dataset {
	return &Dataset{path: path}
}

// NewStaticDataset returns a dataset pre-populated with items instead
// of a file, for callers that already hold the working set.
func NewStaticDataset(items []Article) *Dataset {
	d := &Dataset{}
	d.once.Do(func() {
		d.items = items
	})
	return d
}

// Articles returns the cached snapshot, loading it on first call.
func (d *Dataset) Articles() ([]Article, error) {
	d.once.Do(func() {
		d.items, d.err = d.load()
	})
	return d.items, d.err
}

// GetArticleCount reports the snapshot size, loading it if needed.
func (d *Dataset) GetArticleCount(_ context.Context) (int, error) {
	items, err := d.Articles()
	if err != nil {
		return 0, err
	}
	return len(items), nil
}

func (d *Dataset) load() ([]Article, error) {
	data, err := os.ReadFile(d.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset %s: %w", d.path, err)
	}

	var items []Article
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to parse dataset %s: %w", d.path, err)
	}

	slog.Debug("Dataset loaded", "path", d.path, "articles", len(items))

	return items, nil
}
