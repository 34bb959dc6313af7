// Package handler provides HTTP handlers for case workflow transitions.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/resq-ai/dispatch/internal/auth"
	caseModel "github.com/resq-ai/dispatch/internal/cases/model"
	"github.com/resq-ai/dispatch/internal/dispatch/service"
)

// Handler handles HTTP requests for dispatch endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new dispatch handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// AssignCase handles POST /cases/:id/assign.
func (h *Handler) AssignCase(c *gin.Context) {
	var req caseModel.AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "VALIDATION_ERROR", "invalid request body", http.StatusBadRequest)
		return
	}

	p := auth.FromContext(c.Request.Context())
	resp, err := h.service.AssignCase(c.Request.Context(), p, c.Param("id"), &req)
	if err != nil {
		if writeServiceError(c, err) {
			return
		}
		h.logger.Errorw("error assigning case", "case_id", c.Param("id"), "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, gin.H{"case": resp})
}

// AcceptCase handles POST /cases/:id/accept.
func (h *Handler) AcceptCase(c *gin.Context) {
	var req caseModel.AcceptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "VALIDATION_ERROR", "invalid request body", http.StatusBadRequest)
		return
	}

	p := auth.FromContext(c.Request.Context())
	resp, err := h.service.AcceptCase(c.Request.Context(), p, c.Param("id"), &req)
	if err != nil {
		if writeServiceError(c, err) {
			return
		}
		h.logger.Errorw("error accepting case", "case_id", c.Param("id"), "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, gin.H{"case": resp})
}

// CancelCase handles POST /cases/:id/cancel.
func (h *Handler) CancelCase(c *gin.Context) {
	var req caseModel.CancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "VALIDATION_ERROR", "invalid request body", http.StatusBadRequest)
		return
	}

	p := auth.FromContext(c.Request.Context())
	resp, err := h.service.CancelCase(c.Request.Context(), p, c.Param("id"), &req)
	if err != nil {
		if writeServiceError(c, err) {
			return
		}
		h.logger.Errorw("error cancelling case", "case_id", c.Param("id"), "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, gin.H{"case": resp})
}

// SetCaseStatus handles PATCH /cases/:id/status.
func (h *Handler) SetCaseStatus(c *gin.Context) {
	var req caseModel.SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "VALIDATION_ERROR", "invalid request body", http.StatusBadRequest)
		return
	}

	p := auth.FromContext(c.Request.Context())
	resp, err := h.service.SetCaseStatus(c.Request.Context(), p, c.Param("id"), &req)
	if err != nil {
		if writeServiceError(c, err) {
			return
		}
		h.logger.Errorw("error setting case status", "case_id", c.Param("id"), "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, gin.H{"case": resp})
}
