package students

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"planner-backend/internal/shared/server/middleware"
	"planner-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the students service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches profile routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/profile", h.get)
	rg.PUT("/profile", h.put)
}

func (h *Handler) get(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	profile, err := h.Svc.Get(c.Request.Context(), userID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch profile", nil)
		return
	}
	respond.OK(c, profile)
}

type putProfileRequest struct {
	Major     string   `json:"major"`
	Tracks    []string `json:"tracks"`
	Minors    []string `json:"minors"`
	StartedIn string   `json:"startedIn"`
}

func (h *Handler) put(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req putProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	profile, err := h.Svc.Put(c.Request.Context(), Profile{
		UserID:    userID,
		Major:     req.Major,
		Tracks:    req.Tracks,
		Minors:    req.Minors,
		StartedIn: req.StartedIn,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to save profile", nil)
		}
		return
	}
	respond.OK(c, profile)
}
