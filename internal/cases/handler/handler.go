// Package handler provides HTTP handlers for case endpoints.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/resq-ai/dispatch/internal/auth"
	caseModel "github.com/resq-ai/dispatch/internal/cases/model"
	"github.com/resq-ai/dispatch/internal/cases/service"
)

// Handler handles HTTP requests for case endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new cases handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// CreateCase handles POST /cases.
func (h *Handler) CreateCase(c *gin.Context) {
	var req caseModel.CreateCaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "VALIDATION_ERROR", "invalid request body", http.StatusBadRequest)
		return
	}

	p := auth.FromContext(c.Request.Context())
	resp, err := h.service.CreateCase(c.Request.Context(), p, &req)
	if err != nil {
		if writeServiceError(c, err) {
			return
		}
		h.logger.Errorw("error filing case", "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"case": resp})
}

// ListCases handles GET /cases?status=.
func (h *Handler) ListCases(c *gin.Context) {
	p := auth.FromContext(c.Request.Context())
	resp, err := h.service.ListCases(c.Request.Context(), p, c.Query("status"))
	if err != nil {
		if writeServiceError(c, err) {
			return
		}
		h.logger.Errorw("error listing cases", "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, gin.H{"cases": resp, "results": len(resp)})
}

// GetCase handles GET /cases/:id.
func (h *Handler) GetCase(c *gin.Context) {
	p := auth.FromContext(c.Request.Context())
	resp, err := h.service.GetCase(c.Request.Context(), p, c.Param("id"))
	if err != nil {
		if writeServiceError(c, err) {
			return
		}
		h.logger.Errorw("error getting case", "case_id", c.Param("id"), "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, gin.H{"case": resp})
}
