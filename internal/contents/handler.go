package contents

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"content-backend/internal/shared/server/middleware"
	"content-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the contents service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches content routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/contents", h.createContent)
	rg.GET("/contents", h.listContents)
	rg.GET("/contents/:id", h.getContent)
	rg.DELETE("/contents/:id", h.deleteContent)
}

type createContentRequest struct {
	Text string `json:"text"`
}

func (h *Handler) createContent(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req createContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "invalid JSON body", nil)
		return
	}

	ctx := WithRequestID(c.Request.Context(), middleware.RequestIDFromContext(c))
	content, err := h.Svc.Create(ctx, userID, req.Text)
	if err != nil {
		if errors.Is(err, ErrEmptyText) {
			respond.Error(c, http.StatusBadRequest, "validation_error", "text must not be empty", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to create content", nil)
		return
	}

	respond.JSON(c, http.StatusCreated, content)
}

func (h *Handler) getContent(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	contentID := c.Param("id")
	if contentID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "content id is required", nil)
		return
	}

	content, err := h.Svc.Get(c.Request.Context(), userID, contentID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "content not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch content", nil)
		return
	}

	respond.OK(c, content)
}

func (h *Handler) listContents(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	limit := 0
	offset := 0
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}
	if v := c.Query("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			offset = parsed
		}
	}

	contents, total, err := h.Svc.List(c.Request.Context(), userID, limit, offset)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list contents", nil)
		return
	}

	respond.OK(c, gin.H{
		"contents": contents,
		"total":    total,
	})
}

func (h *Handler) deleteContent(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	contentID := c.Param("id")
	if contentID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "content id is required", nil)
		return
	}

	if err := h.Svc.Delete(c.Request.Context(), userID, contentID); err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "content not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to delete content", nil)
		return
	}

	c.Status(http.StatusNoContent)
}
