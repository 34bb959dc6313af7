// Package handler provides HTTP handlers for team endpoints.
package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/resq-ai/dispatch/internal/auth"
	teamModel "github.com/resq-ai/dispatch/internal/team/model"
	"github.com/resq-ai/dispatch/internal/team/service"
)

// Handler handles HTTP requests for team endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new team handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// CreateTeam handles POST /teams.
func (h *Handler) CreateTeam(c *gin.Context) {
	var req teamModel.CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "VALIDATION_ERROR", "invalid request body", http.StatusBadRequest)
		return
	}

	p := auth.FromContext(c.Request.Context())
	resp, err := h.service.CreateTeam(c.Request.Context(), p, &req)
	if err != nil {
		if writeServiceError(c, err) {
			return
		}
		h.logger.Errorw("error creating team", "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"team": resp})
}

// GetTeam handles GET /teams/:id.
func (h *Handler) GetTeam(c *gin.Context) {
	resp, err := h.service.GetTeam(c.Request.Context(), c.Param("id"))
	if err != nil {
		if writeServiceError(c, err) {
			return
		}
		h.logger.Errorw("error getting team", "team_id", c.Param("id"), "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, gin.H{"team": resp})
}

// ListTeams handles GET /teams.
func (h *Handler) ListTeams(c *gin.Context) {
	resp, err := h.service.ListTeams(c.Request.Context())
	if err != nil {
		h.logger.Errorw("error listing teams", "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, gin.H{"teams": resp, "results": len(resp)})
}

// ListAvailableTeams handles GET /teams/available.
func (h *Handler) ListAvailableTeams(c *gin.Context) {
	p := auth.FromContext(c.Request.Context())
	resp, err := h.service.ListAvailableTeams(c.Request.Context(), p)
	if err != nil {
		if writeServiceError(c, err) {
			return
		}
		h.logger.Errorw("error listing available teams", "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, gin.H{"teams": resp, "results": len(resp)})
}

// FindBySpecialization handles GET /teams/specialization/:specialization.
func (h *Handler) FindBySpecialization(c *gin.Context) {
	resp, err := h.service.FindBySpecialization(c.Request.Context(), c.Param("specialization"))
	if err != nil {
		if writeServiceError(c, err) {
			return
		}
		h.logger.Errorw("error finding teams by specialization", "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, gin.H{"teams": resp, "results": len(resp)})
}

// FindNearLocation handles GET /teams/nearby?lon=&lat=&max_distance=.
func (h *Handler) FindNearLocation(c *gin.Context) {
	lonStr := c.Query("lon")
	latStr := c.Query("lat")
	if lonStr == "" || latStr == "" {
		errorResponse(c, "VALIDATION_ERROR", "lon and lat parameters are required", http.StatusBadRequest)
		return
	}

	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		errorResponse(c, "VALIDATION_ERROR", "invalid lon parameter", http.StatusBadRequest)
		return
	}
	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		errorResponse(c, "VALIDATION_ERROR", "invalid lat parameter", http.StatusBadRequest)
		return
	}

	maxDistance := 0.0
	if raw := c.Query("max_distance"); raw != "" {
		maxDistance, err = strconv.ParseFloat(raw, 64)
		if err != nil {
			errorResponse(c, "VALIDATION_ERROR", "invalid max_distance parameter", http.StatusBadRequest)
			return
		}
	}

	resp, err := h.service.FindNearLocation(c.Request.Context(), lon, lat, maxDistance)
	if err != nil {
		if writeServiceError(c, err) {
			return
		}
		h.logger.Errorw("error finding nearby teams", "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, gin.H{"teams": resp, "results": len(resp)})
}

// AddMember handles POST /teams/:id/members.
func (h *Handler) AddMember(c *gin.Context) {
	var req teamModel.AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "VALIDATION_ERROR", "invalid request body", http.StatusBadRequest)
		return
	}

	p := auth.FromContext(c.Request.Context())
	resp, err := h.service.AddMember(c.Request.Context(), p, c.Param("id"), &req)
	if err != nil {
		if writeServiceError(c, err) {
			return
		}
		h.logger.Errorw("error adding member", "team_id", c.Param("id"), "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, gin.H{"team": resp})
}

// RemoveMember handles DELETE /teams/:id/members/:userId.
func (h *Handler) RemoveMember(c *gin.Context) {
	p := auth.FromContext(c.Request.Context())
	resp, err := h.service.RemoveMember(c.Request.Context(), p, c.Param("id"), c.Param("userId"))
	if err != nil {
		if writeServiceError(c, err) {
			return
		}
		h.logger.Errorw("error removing member", "team_id", c.Param("id"), "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, gin.H{"team": resp})
}

// ChangeLeader handles PATCH /teams/:id/leader.
func (h *Handler) ChangeLeader(c *gin.Context) {
	var req teamModel.ChangeLeaderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "VALIDATION_ERROR", "invalid request body", http.StatusBadRequest)
		return
	}

	p := auth.FromContext(c.Request.Context())
	resp, err := h.service.ChangeLeader(c.Request.Context(), p, c.Param("id"), &req)
	if err != nil {
		if writeServiceError(c, err) {
			return
		}
		h.logger.Errorw("error changing leader", "team_id", c.Param("id"), "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, gin.H{"team": resp})
}

// JoinTeam handles POST /teams/:id/join.
func (h *Handler) JoinTeam(c *gin.Context) {
	p := auth.FromContext(c.Request.Context())
	resp, err := h.service.JoinTeam(c.Request.Context(), p, c.Param("id"))
	if err != nil {
		if writeServiceError(c, err) {
			return
		}
		h.logger.Errorw("error joining team", "team_id", c.Param("id"), "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, gin.H{"team": resp})
}

// LeaveTeam handles DELETE /teams/:id/leave.
func (h *Handler) LeaveTeam(c *gin.Context) {
	p := auth.FromContext(c.Request.Context())
	resp, err := h.service.LeaveTeam(c.Request.Context(), p, c.Param("id"))
	if err != nil {
		if writeServiceError(c, err) {
			return
		}
		h.logger.Errorw("error leaving team", "team_id", c.Param("id"), "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, gin.H{"team": resp})
}

// SetTeamStatus handles PATCH /teams/:id/status.
func (h *Handler) SetTeamStatus(c *gin.Context) {
	var req teamModel.SetTeamStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "VALIDATION_ERROR", "invalid request body", http.StatusBadRequest)
		return
	}

	p := auth.FromContext(c.Request.Context())
	resp, err := h.service.SetTeamStatus(c.Request.Context(), p, c.Param("id"), &req)
	if err != nil {
		if writeServiceError(c, err) {
			return
		}
		h.logger.Errorw("error setting team status", "team_id", c.Param("id"), "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, gin.H{"team": resp})
}

// DeleteTeam handles DELETE /teams/:id.
func (h *Handler) DeleteTeam(c *gin.Context) {
	p := auth.FromContext(c.Request.Context())
	if err := h.service.DeleteTeam(c.Request.Context(), p, c.Param("id")); err != nil {
		if writeServiceError(c, err) {
			return
		}
		h.logger.Errorw("error deleting team", "team_id", c.Param("id"), "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}

	c.Status(http.StatusNoContent)
}
