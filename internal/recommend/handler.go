package recommend

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"planner-backend/internal/catalog"
	"planner-backend/internal/planner"
	"planner-backend/internal/semester"
	"planner-backend/internal/shared/metrics"
	"planner-backend/internal/shared/server/middleware"
	"planner-backend/internal/shared/server/respond"
	"planner-backend/internal/shared/telemetry"
	"planner-backend/internal/students"
)

// Handler wires the recommendation and validation endpoints.
type Handler struct {
	Catalog  *catalog.Service
	Plans    *planner.Service
	Students *students.Service
	Engine   *Engine
	Enhancer *Enhancer
}

// RegisterRoutes attaches recommendation routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/recommendations", h.recommendations)
	rg.GET("/plan/validate/:code", h.validate)
}

func (h *Handler) recommendations(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	target, ok := targetSemester(c)
	if !ok {
		return
	}

	max := DefaultMaxCourses
	if v := c.Query("max"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			max = parsed
		}
	}

	snap, idx, profile, ok := h.loadInputs(c, userID)
	if !ok {
		return
	}

	metrics.IncRecommendationRuns()
	started := time.Now()
	result := h.Engine.Generate(snap, idx, profile, Options{MaxCourses: max, Target: target})
	metrics.ObserveRecommendationDurationMs(float64(time.Since(started).Microseconds()) / 1000.0)

	recs := result.Recommendations
	enhanced := false
	if c.Query("enhance") == "true" {
		outcome := h.Enhancer.Enhance(c.Request.Context(), recs, profile, target.String(), max)
		recs = outcome.Recommendations
		enhanced = outcome.Enhanced
		if !outcome.Enhanced {
			metrics.IncAdvisorFallbacks()
			telemetry.Info("advisor.fallback", map[string]any{
				"request_id": middleware.RequestIDFromContext(c),
				"user_id":    userID,
				"cause":      causeString(outcome.FallbackCause),
			})
		}
	}

	resp := gin.H{
		"semester":        target.String(),
		"recommendations": recs,
		"unavailable":     result.Unavailable,
		"enhanced":        enhanced,
	}
	if category := strings.TrimSpace(c.Query("category")); category != "" {
		limit := 6
		if v := c.Query("limit"); v != "" {
			if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
				limit = parsed
			}
		}
		resp["category"] = category
		resp["categoryRecommendations"] = result.ByCategory(Category(category), limit)
	}
	respond.OK(c, resp)
}

func (h *Handler) validate(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	target, ok := targetSemester(c)
	if !ok {
		return
	}

	snap, err := h.Catalog.Snapshot(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load catalog", nil)
		return
	}
	course, found := snap.Lookup(c.Param("code"))
	if !found {
		respond.Error(c, http.StatusNotFound, "not_found", "course not found", nil)
		return
	}
	idx, err := h.Plans.Index(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, planner.ErrDuplicateCourse) {
			respond.Error(c, http.StatusConflict, "duplicate_course", err.Error(), nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load plan", nil)
		return
	}

	validator := &Validator{Snapshot: snap, Index: idx}
	result, err := validator.Validate(course, target)
	if err != nil {
		var integrity *IntegrityError
		if errors.As(err, &integrity) {
			respond.Error(c, http.StatusUnprocessableEntity, "course_unavailable", integrity.Issue, gin.H{"code": integrity.Code})
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to validate course", nil)
		return
	}
	respond.OK(c, gin.H{
		"course":   course.Code,
		"semester": target.String(),
		"result":   result,
	})
}

// loadInputs assembles the immutable per-request inputs: catalog
// snapshot, plan index and resolved profile.
func (h *Handler) loadInputs(c *gin.Context, userID string) (*catalog.Snapshot, planner.Index, Profile, bool) {
	snap, err := h.Catalog.Snapshot(c.Request.Context())
	if err != nil {
		metrics.IncRecommendationFailures()
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load catalog", nil)
		return nil, planner.Index{}, Profile{}, false
	}

	idx, err := h.Plans.Index(c.Request.Context(), userID)
	if err != nil {
		metrics.IncRecommendationFailures()
		if errors.Is(err, planner.ErrDuplicateCourse) {
			respond.Error(c, http.StatusConflict, "duplicate_course", err.Error(), nil)
		} else {
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load plan", nil)
		}
		return nil, planner.Index{}, Profile{}, false
	}

	profile, err := h.resolveProfile(c.Request.Context(), userID, idx)
	if err != nil {
		metrics.IncRecommendationFailures()
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load profile", nil)
		return nil, planner.Index{}, Profile{}, false
	}
	return snap, idx, profile, true
}

func (h *Handler) resolveProfile(ctx context.Context, userID string, idx planner.Index) (Profile, error) {
	stored, err := h.Students.Get(ctx, userID)
	if err != nil {
		return Profile{}, err
	}
	required, err := h.Students.RequiredCourses(ctx, stored)
	if err != nil {
		return Profile{}, err
	}

	profile := Profile{
		Major:           stored.Major,
		Tracks:          stored.Tracks,
		Minors:          stored.Minors,
		RequiredCourses: required,
	}
	if stored.StartedIn != "" {
		if started, err := semester.Parse(stored.StartedIn); err == nil {
			profile.StartedIn = started
		}
	}
	if profile.StartedIn.IsZero() {
		if earliest, ok := idx.EarliestSemester(); ok {
			profile.StartedIn = earliest
		}
	}
	return profile, nil
}

func targetSemester(c *gin.Context) (semester.Semester, bool) {
	raw := c.Query("semester")
	if raw == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "semester query parameter is required", nil)
		return semester.Semester{}, false
	}
	target, err := semester.Parse(raw)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		return semester.Semester{}, false
	}
	return target, true
}

func causeString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
