package api

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/prontabot/occ-dashboard/internal/models"
	"github.com/prontabot/occ-dashboard/internal/prefs"
	"github.com/prontabot/occ-dashboard/internal/snapshot"
	"github.com/prontabot/occ-dashboard/internal/stats"
)

// Refresher triggers an on-demand snapshot refresh, used when a request asks
// for an interval the current snapshot does not cover.
type Refresher interface {
	Refresh(ctx context.Context, interval string) error
	Interval() string
}

type Handler struct {
	store     *snapshot.Store
	refresher Refresher
	prefs     *prefs.Store
	tz        *time.Location
}

func NewHandler(store *snapshot.Store, refresher Refresher, prefStore *prefs.Store, tz *time.Location) *Handler {
	return &Handler{
		store:     store,
		refresher: refresher,
		prefs:     prefStore,
		tz:        tz,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/occs", h.getOccurrences)
	r.GET("/locations", h.getLocations)
	r.GET("/users", h.getUsers)

	r.GET("/api/stats/summary", h.getSummary)
	r.GET("/api/stats/top-liked", h.getTopLiked)
	r.GET("/api/stats/reliability", h.getReliability)
	r.GET("/api/stats/confidence", h.getConfidence)
	r.GET("/api/stats/hourly", h.getHourly)
	r.GET("/api/stats/weekday", h.getWeekday)
	r.GET("/api/stats/daily", h.getDaily)
	r.GET("/api/stats/locations", h.getLocationOptions)
	r.GET("/api/stats/export", h.getExport)

	r.GET("/api/intervals", h.getIntervals)

	r.GET("/api/prefs", h.getPrefs)
	r.PUT("/api/prefs", h.putPrefs)

	r.GET("/health", h.health)
}

// snapshotFor returns the current snapshot, refreshing first when the
// request asks for a different interval. A nil return means the response has
// already been written.
func (h *Handler) snapshotFor(c *gin.Context) *snapshot.Snapshot {
	snap := h.store.Current()

	if interval := c.Query("interval"); interval != "" && (snap == nil || snap.Interval != interval) {
		if err := h.refresher.Refresh(c.Request.Context(), interval); err != nil {
			slog.Error("on-demand refresh failed", "interval", interval, "error", err)
			// A stale snapshot beats a half-updated one; fall through to
			// whatever we already have.
		}
		snap = h.store.Current()
	}

	if snap == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "no data available yet",
		})
		return nil
	}
	return snap
}

// filtered resolves the occurrence set for a stats request, applying the
// optional location_id filter.
func (h *Handler) filtered(c *gin.Context) ([]models.Occurrence, *snapshot.Snapshot) {
	snap := h.snapshotFor(c)
	if snap == nil {
		return nil, nil
	}
	return stats.FilterByLocation(snap.Occurrences, c.Query("location_id")), snap
}

func (h *Handler) getOccurrences(c *gin.Context) {
	snap := h.snapshotFor(c)
	if snap == nil {
		return
	}
	c.JSON(http.StatusOK, snap.Occurrences)
}

func (h *Handler) getLocations(c *gin.Context) {
	snap := h.snapshotFor(c)
	if snap == nil {
		return
	}
	c.JSON(http.StatusOK, snap.Locations)
}

func (h *Handler) getUsers(c *gin.Context) {
	snap := h.snapshotFor(c)
	if snap == nil {
		return
	}
	// Preserve the upstream shape: array when the upstream sent presences,
	// scalar count otherwise.
	if snap.Presences != nil {
		c.JSON(http.StatusOK, snap.Presences)
		return
	}
	c.JSON(http.StatusOK, snap.ActiveUsers)
}

func (h *Handler) getSummary(c *gin.Context) {
	occs, snap := h.filtered(c)
	if snap == nil {
		return
	}
	c.JSON(http.StatusOK, stats.Summarize(occs))
}

func (h *Handler) getTopLiked(c *gin.Context) {
	occs, snap := h.filtered(c)
	if snap == nil {
		return
	}
	n := stats.DefaultTopN
	if v := c.Query("n"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 && parsed <= 100 {
			n = parsed
		}
	}
	c.JSON(http.StatusOK, stats.TopLiked(occs, n))
}

func (h *Handler) getReliability(c *gin.Context) {
	occs, snap := h.filtered(c)
	if snap == nil {
		return
	}
	c.JSON(http.StatusOK, stats.ReliabilityHistogram(occs))
}

func (h *Handler) getConfidence(c *gin.Context) {
	occs, snap := h.filtered(c)
	if snap == nil {
		return
	}
	c.JSON(http.StatusOK, stats.ConfidenceHistogram(occs))
}

func (h *Handler) getHourly(c *gin.Context) {
	occs, snap := h.filtered(c)
	if snap == nil {
		return
	}
	c.JSON(http.StatusOK, stats.ByHourOfDay(occs, h.tz))
}

func (h *Handler) getWeekday(c *gin.Context) {
	occs, snap := h.filtered(c)
	if snap == nil {
		return
	}
	c.JSON(http.StatusOK, stats.ByDayOfWeek(occs, h.tz))
}

func (h *Handler) getDaily(c *gin.Context) {
	occs, snap := h.filtered(c)
	if snap == nil {
		return
	}
	c.JSON(http.StatusOK, stats.DailyRollup(occs, h.tz))
}

func (h *Handler) getLocationOptions(c *gin.Context) {
	snap := h.snapshotFor(c)
	if snap == nil {
		return
	}
	c.JSON(http.StatusOK, stats.LocationOptions(snap.Occurrences, snap.Locations))
}

// getIntervals serves the interval tokens the UI can offer. They stay opaque
// here; the upstream API decides what each one means.
func (h *Handler) getIntervals(c *gin.Context) {
	c.JSON(http.StatusOK, models.Intervals)
}

func (h *Handler) getPrefs(c *gin.Context) {
	p, err := h.prefs.Get(c.Request.Context())
	if err != nil {
		slog.Error("loading preferences failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load preferences"})
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) putPrefs(c *gin.Context) {
	var p prefs.Preferences
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid preferences payload"})
		return
	}
	if err := h.prefs.Set(c.Request.Context(), p); err != nil {
		slog.Error("saving preferences failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save preferences"})
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
