package planner

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"planner-backend/internal/catalog"
	"planner-backend/internal/semester"
	"planner-backend/internal/shared/server/middleware"
	"planner-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the planner service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches plan routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/plan", h.list)
	rg.POST("/plan", h.add)
	rg.PATCH("/plan/:code", h.update)
	rg.DELETE("/plan/:code", h.remove)
}

type entryRequest struct {
	CourseCode string `json:"courseCode"`
	Status     string `json:"status"`
	Grade      string `json:"grade"`
	Semester   string `json:"semester"`
}

func (h *Handler) list(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	records, err := h.Svc.List(c.Request.Context(), userID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list plan", nil)
		return
	}
	respond.OK(c, records)
}

func (h *Handler) add(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req entryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	status, grade, sem, ok := parseEntry(c, req)
	if !ok {
		return
	}

	rec, err := h.Svc.Add(c.Request.Context(), userID, req.CourseCode, status, grade, sem)
	if err != nil {
		switch {
		case errors.Is(err, ErrDuplicateCourse):
			respond.Error(c, http.StatusConflict, "duplicate_course", err.Error(), nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to add plan entry", nil)
		}
		return
	}
	respond.Created(c, rec)
}

func (h *Handler) update(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req entryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	req.CourseCode = c.Param("code")
	status, grade, sem, ok := parseEntry(c, req)
	if !ok {
		return
	}

	rec, err := h.Svc.Update(c.Request.Context(), userID, req.CourseCode, status, grade, sem)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "plan entry not found", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to update plan entry", nil)
		}
		return
	}
	respond.OK(c, rec)
}

func (h *Handler) remove(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	if err := h.Svc.Remove(c.Request.Context(), userID, c.Param("code")); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "plan entry not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to remove plan entry", nil)
		}
		return
	}
	c.Status(http.StatusNoContent)
}

// parseEntry validates the shared request fields, writing the error
// response itself when validation fails.
func parseEntry(c *gin.Context, req entryRequest) (Status, catalog.Grade, semester.Semester, bool) {
	status, err := ParseStatus(req.Status)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		return "", "", semester.Semester{}, false
	}
	var grade catalog.Grade
	if req.Grade != "" {
		grade, err = catalog.ParseGrade(req.Grade)
		if err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
			return "", "", semester.Semester{}, false
		}
	}
	var sem semester.Semester
	if req.Semester != "" {
		sem, err = semester.Parse(req.Semester)
		if err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
			return "", "", semester.Semester{}, false
		}
	}
	return status, grade, sem, true
}
