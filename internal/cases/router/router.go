// Package router provides cases module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/resq-ai/dispatch/internal/cases/handler"
	"github.com/resq-ai/dispatch/internal/cases/repository"
	"github.com/resq-ai/dispatch/internal/cases/service"
)

// RegisterRoutes registers cases module routes.
func RegisterRoutes(r *gin.Engine, db *gorm.DB, logger *zap.SugaredLogger) {
	repo := repository.New(db, logger)
	svc := service.New(repo, logger)
	h := handler.New(svc, logger)

	r.POST("/cases", h.CreateCase)
	r.GET("/cases", h.ListCases)
	r.GET("/cases/:id", h.GetCase)
}
