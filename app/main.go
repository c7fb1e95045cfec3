package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pmoreau/sportwire/app/api"
	"github.com/pmoreau/sportwire/app/articles"
	"github.com/pmoreau/sportwire/app/cfg"
	"github.com/pmoreau/sportwire/app/database"
	"github.com/pmoreau/sportwire/app/widgets"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	if appCfg.Debug {
		// slog.SetLogLoggerLevel requires Go 1.22; closest Go 1.21 equivalent.
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	slog.Info("Starting Sportwire server...", "version", appCfg.Version)

	var (
		store        articles.Store
		dataset      *articles.Dataset
		widgetDir    api.WidgetDirectory
		articleCount api.ArticleCounter
		profiles     api.ProfileStore
		reloader     api.WidgetReloader
		mode         string
	)

	presetCache := widgets.NewCache(appCfg.WidgetsDir)
	if err := presetCache.Run(); err != nil {
		slog.Error("Failed to load widget presets", "error", err)
		os.Exit(1)
	}
	slog.Info("Widget presets loaded", "dir", appCfg.WidgetsDir)

	if appCfg.RemoteStoreConfigured() {
		mode = "database"

		slog.Info("Connecting to database...", "host", appCfg.DBHost, "name", appCfg.DBName)
		db, err := database.NewConnection(
			appCfg.DBHost, appCfg.DBPort, appCfg.DBUser,
			appCfg.DBPassword, appCfg.DBName)
		if err != nil {
			slog.Error("Failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		version, dirty, err := database.RunMigrations(db)
		if err != nil {
			slog.Error("Failed to run migrations", "error", err)
			os.Exit(1)
		}
		slog.Info("Migrations applied", "version", version, "dirty", dirty)

		articleRepo := database.NewArticleRepository(db)
		widgetRepo := database.NewWidgetRepository(db)
		profileRepo := database.NewProfileRepository(db)

		// Sync file-based presets into the database so both modes can
		// share one presets directory.
		registered := 0
		presets, _ := presetCache.ListWidgets(context.Background())
		for _, preset := range presets {
			if err := widgetRepo.UpsertWidget(context.Background(), preset); err != nil {
				slog.Warn("Failed to register widget preset", "slug", preset.Slug, "error", err)
				continue
			}
			registered++
		}
		slog.Info("Widget presets registered", "count", registered)

		store = articleRepo
		widgetDir = widgetRepo
		articleCount = articleRepo
		profiles = profileRepo
	} else {
		mode = "snapshot"

		dataset = articles.NewDataset(appCfg.DataFile)
		if _, err := dataset.Articles(); err != nil {
			slog.Error("Failed to load article snapshot", "error", err)
			os.Exit(1)
		}

		widgetDir = presetCache
		articleCount = dataset
		reloader = presetCache
	}

	service := articles.NewService(store, dataset)
	resolver := articles.NewResolver(widgetDir, service)

	slog.Info("Query engine initialized", "mode", mode)

	handler := api.NewHandler(service, resolver, widgetDir, articleCount, profiles, reloader, mode)
	server := api.NewServer(handler, appCfg.APIAccessKey)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("Starting HTTP server", "port", appCfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	slog.Info("Sportwire server started successfully")

	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	slog.Info("Shutting down server gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped")
	}

	slog.Info("Sportwire server shutdown complete")
}
