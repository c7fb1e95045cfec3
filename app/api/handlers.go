package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pmoreau/sportwire/app/articles"
)

func NewHandler(service *articles.Service, resolver *articles.Resolver,
	widgetDir WidgetDirectory, articleCount ArticleCounter,
	profiles ProfileStore, reloader WidgetReloader, mode string) *Handler {
	return &Handler{
		service:      service,
		resolver:     resolver,
		widgetDir:    widgetDir,
		articleCount: articleCount,
		profiles:     profiles,
		reloader:     reloader,
		mode:         mode,
	}
}

// GetArticles serves the public article query endpoint. Repeated query
// parameters build the OR-list for their facet; limit and page are
// clamped, never rejected.
func (h *Handler) GetArticles(c *gin.Context) {
	args := articles.ArgsFromValues(c.Request.URL.Query())

	result, err := h.service.Query(c.Request.Context(), args)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			// Client went away; nothing to report.
			c.Status(499)
			return
		}
		slog.Error("Article query failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetWidget resolves a widget preset into its configured feed.
func (h *Handler) GetWidget(c *gin.Context) {
	slug := c.Param("slug")
	if slug == "" {
		c.Status(http.StatusBadRequest)
		return
	}

	opts := articles.ResolveOptions{
		Fallback: c.Query("fallback") == "true",
	}
	if v, err := strconv.Atoi(c.Query("windowDays")); err == nil && v > 0 {
		opts.WindowDays = v
	}
	if v, err := strconv.Atoi(c.Query("fallbackWindowDays")); err == nil && v > 0 {
		opts.FallbackWindowDays = v
	}
	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v > 0 {
		opts.Limit = v
	}

	widget, items, err := h.resolver.Resolve(c.Request.Context(), slug, opts)
	if err != nil {
		if errors.Is(err, articles.ErrWidgetNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "widget not found"})
			return
		}
		if errors.Is(err, context.Canceled) {
			c.Status(499)
			return
		}
		slog.Error("Widget resolution failed", "widget", slug, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"widget": widget,
		"items":  items,
	})
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := map[string]interface{}{
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
		"mode":      h.mode,
	}

	if count, err := h.articleCount.GetArticleCount(c.Request.Context()); err == nil {
		health["articles"] = count
	}
	if count, err := h.widgetDir.GetWidgetCount(c.Request.Context()); err == nil {
		health["widgets"] = count
	}

	c.JSON(http.StatusOK, health)
}

func (h *Handler) GetStats(c *gin.Context) {
	stats := map[string]interface{}{
		"mode": h.mode,
	}

	if count, err := h.articleCount.GetArticleCount(c.Request.Context()); err == nil {
		stats["article_count"] = count
	}
	if count, err := h.widgetDir.GetWidgetCount(c.Request.Context()); err == nil {
		stats["widget_count"] = count
	}

	c.JSON(http.StatusOK, stats)
}

func (h *Handler) APIListWidgets(c *gin.Context) {
	widgets, err := h.widgetDir.ListWidgets(c.Request.Context())
	if err != nil {
		slog.Error("Widget listing failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"widgets": widgets,
		"count":   len(widgets),
	})
}

func (h *Handler) APIReloadWidgets(c *gin.Context) {
	if h.reloader == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "widget presets are database-backed"})
		return
	}

	if err := h.reloader.Run(); err != nil {
		slog.Error("Widget preset reload failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	count, _ := h.widgetDir.GetWidgetCount(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{
		"message": "widget presets reloaded",
		"count":   count,
	})
}

func (h *Handler) APIGetProfile(c *gin.Context) {
	if h.profiles == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "profiles require a database"})
		return
	}

	profile, err := h.profiles.GetProfile(c.Request.Context(), c.Param("id"))
	if err != nil {
		slog.Error("Profile lookup failed", "profile", c.Param("id"), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if profile == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"profile":    profile,
		"has_access": profile.HasActiveAccess(time.Now()),
	})
}

type renewPlanRequest struct {
	Plan string `json:"plan"`
	Days int    `json:"days"`
}

// APIRenewPlan pushes an account's plan expiry forward. This is the
// plan-renewal write consumed by the admin workflow.
func (h *Handler) APIRenewPlan(c *gin.Context) {
	if h.profiles == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "profiles require a database"})
		return
	}

	var req renewPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.Plan == "" {
		req.Plan = "pro"
	}
	if req.Days <= 0 {
		req.Days = 30
	}

	profile, err := h.profiles.RenewPlan(c.Request.Context(), c.Param("id"), req.Plan, req.Days)
	if err != nil {
		slog.Error("Plan renewal failed", "profile", c.Param("id"), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if profile == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile": profile})
}
