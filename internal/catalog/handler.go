package catalog

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"planner-backend/internal/shared/metrics"
	"planner-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the catalog service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches catalog routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/courses", h.list)
	rg.GET("/courses/:code", h.get)
	rg.POST("/catalog/refresh", h.refresh)
}

func (h *Handler) list(c *gin.Context) {
	snap, err := h.Svc.Snapshot(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load catalog", nil)
		return
	}

	department := strings.TrimSpace(c.Query("department"))
	courses := snap.Courses()
	resp := make([]gin.H, 0, len(courses))
	for _, course := range courses {
		if department != "" && !strings.EqualFold(course.Department, department) {
			continue
		}
		resp = append(resp, courseResponse(snap, course))
	}
	respond.OK(c, resp)
}

func (h *Handler) get(c *gin.Context) {
	snap, err := h.Svc.Snapshot(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load catalog", nil)
		return
	}
	course, ok := snap.Lookup(c.Param("code"))
	if !ok {
		respond.Error(c, http.StatusNotFound, "not_found", "course not found", nil)
		return
	}
	respond.OK(c, courseResponse(snap, course))
}

func (h *Handler) refresh(c *gin.Context) {
	snap, err := h.Svc.Refresh(c.Request.Context())
	if err != nil {
		if errors.Is(err, ErrInvalidInput) {
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to refresh catalog", nil)
		return
	}
	metrics.IncCatalogRefreshes()
	respond.OK(c, gin.H{
		"courses":     snap.Len(),
		"fetchedAt":   snap.FetchedAt,
		"diagnostics": snap.Diagnostics(),
	})
}

func courseResponse(snap *Snapshot, course Course) gin.H {
	requirement, err := MarshalRequirement(course.Requirement)
	if err != nil {
		requirement = []byte(`{"type":"none"}`)
	}
	resp := gin.H{
		"code":         course.Code,
		"title":        course.Title,
		"description":  course.Description,
		"credits":      course.Credits,
		"department":   course.Department,
		"college":      course.College,
		"difficulty":   course.Difficulty,
		"offerings":    course.Offerings,
		"tracks":       course.Tracks,
		"requirement":  json.RawMessage(requirement),
		"corequisites": course.Corequisites,
	}
	if diag, ok := snap.Diagnostic(course.Code); ok {
		resp["unavailable"] = true
		resp["issue"] = diag.Issue
	}
	return resp
}
