package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"

	"github.com/google/uuid"

	"github.com/pmoreau/sportwire/app/articles"
	"github.com/pmoreau/sportwire/app/cfg"
	"github.com/pmoreau/sportwire/app/database"
	"github.com/pmoreau/sportwire/app/widgets"
)

// Seeds the database from the JSON article snapshot and the widget
// preset directory.
func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if appCfg == nil {
		return
	}

	if !appCfg.RemoteStoreConfigured() {
		slog.Error("Seeding requires a database; set DB_HOST")
		os.Exit(1)
	}

	db, err := database.NewConnection(
		appCfg.DBHost, appCfg.DBPort, appCfg.DBUser,
		appCfg.DBPassword, appCfg.DBName)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if _, _, err := database.RunMigrations(db); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	data, err := os.ReadFile(appCfg.DataFile)
	if err != nil {
		slog.Error("Failed to read article snapshot", "path", appCfg.DataFile, "error", err)
		os.Exit(1)
	}

	var items []articles.Article
	if err := json.Unmarshal(data, &items); err != nil {
		slog.Error("Failed to parse article snapshot", "path", appCfg.DataFile, "error", err)
		os.Exit(1)
	}

	articleRepo := database.NewArticleRepository(db)
	seeded := 0
	for _, item := range items {
		if item.ID == "" {
			item.ID = uuid.NewString()
		}
		if item.Status == "" {
			item.Status = articles.StatusPublished
		}
		if err := articleRepo.UpsertArticle(ctx, item); err != nil {
			slog.Warn("Failed to seed article", "id", item.ID, "error", err)
			continue
		}
		seeded++
	}
	slog.Info("Articles seeded", "seeded", seeded, "total", len(items))

	presetCache := widgets.NewCache(appCfg.WidgetsDir)
	if err := presetCache.Run(); err != nil {
		slog.Error("Failed to load widget presets", "error", err)
		os.Exit(1)
	}

	widgetRepo := database.NewWidgetRepository(db)
	presets, _ := presetCache.ListWidgets(ctx)
	registered := 0
	for _, preset := range presets {
		if err := widgetRepo.UpsertWidget(ctx, preset); err != nil {
			slog.Warn("Failed to seed widget", "slug", preset.Slug, "error", err)
			continue
		}
		registered++
	}
	slog.Info("Widgets seeded", "seeded", registered, "total", len(presets))
}
