// Package router provides dispatch module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	caseRepo "github.com/resq-ai/dispatch/internal/cases/repository"
	"github.com/resq-ai/dispatch/internal/dispatch/handler"
	"github.com/resq-ai/dispatch/internal/dispatch/service"
	teamRepo "github.com/resq-ai/dispatch/internal/team/repository"
)

// RegisterRoutes registers dispatch module routes.
func RegisterRoutes(r *gin.Engine, db *gorm.DB, logger *zap.SugaredLogger) {
	cases := caseRepo.New(db, logger)
	teams := teamRepo.New(db, logger)
	svc := service.New(cases, teams, logger)
	h := handler.New(svc, logger)

	r.POST("/cases/:id/assign", h.AssignCase)
	r.POST("/cases/:id/accept", h.AcceptCase)
	r.POST("/cases/:id/cancel", h.CancelCase)
	r.PATCH("/cases/:id/status", h.SetCaseStatus)
}
