package api

import (
	"context"

	"github.com/pmoreau/sportwire/app/articles"
	"github.com/pmoreau/sportwire/app/database"
	"github.com/pmoreau/sportwire/app/widgets"
)

// WidgetDirectory serves widget presets regardless of whether they live
// in postgres or in the YAML preset cache.
type WidgetDirectory interface {
	articles.WidgetSource
	ListWidgets(ctx context.Context) ([]articles.WidgetConfig, error)
	GetWidgetCount(ctx context.Context) (int, error)
}

var _ WidgetDirectory = (*database.WidgetRepository)(nil)
var _ WidgetDirectory = (*widgets.Cache)(nil)

// ArticleCounter reports the size of the working set for /stats.
type ArticleCounter interface {
	GetArticleCount(ctx context.Context) (int, error)
}

var _ ArticleCounter = (*database.ArticleRepository)(nil)
var _ ArticleCounter = (*articles.Dataset)(nil)

// ProfileStore is the subscription/plan gate. Nil when running without
// a database; the gate is then open.
type ProfileStore interface {
	GetProfile(ctx context.Context, id string) (*database.Profile, error)
	EnsureProfile(ctx context.Context, id, email string) (*database.Profile, error)
	RenewPlan(ctx context.Context, id, plan string, days int) (*database.Profile, error)
}

// WidgetReloader re-reads widget presets from disk. Nil when presets
// are database-backed.
type WidgetReloader interface {
	Run() error
}

type Handler struct {
	service      *articles.Service
	resolver     *articles.Resolver
	widgetDir    WidgetDirectory
	articleCount ArticleCounter
	profiles     ProfileStore
	reloader     WidgetReloader
	mode         string
}
