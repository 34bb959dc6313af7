// Package router provides team module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/resq-ai/dispatch/internal/team/handler"
	"github.com/resq-ai/dispatch/internal/team/repository"
	"github.com/resq-ai/dispatch/internal/team/service"
)

// RegisterRoutes registers team module routes.
func RegisterRoutes(r *gin.Engine, db *gorm.DB, logger *zap.SugaredLogger) {
	repo := repository.New(db, logger)
	svc := service.New(repo, db, logger)
	h := handler.New(svc, logger)

	r.POST("/teams", h.CreateTeam)
	r.GET("/teams", h.ListTeams)
	r.GET("/teams/available", h.ListAvailableTeams)
	r.GET("/teams/nearby", h.FindNearLocation)
	r.GET("/teams/specialization/:specialization", h.FindBySpecialization)
	r.GET("/teams/:id", h.GetTeam)
	r.DELETE("/teams/:id", h.DeleteTeam)
	r.POST("/teams/:id/members", h.AddMember)
	r.DELETE("/teams/:id/members/:userId", h.RemoveMember)
	r.PATCH("/teams/:id/leader", h.ChangeLeader)
	r.PATCH("/teams/:id/status", h.SetTeamStatus)
	r.POST("/teams/:id/join", h.JoinTeam)
	r.DELETE("/teams/:id/leave", h.LeaveTeam)
}
