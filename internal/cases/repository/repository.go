// Package repository provides data access layer for the cases module.
package repository

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	caseModel "github.com/resq-ai/dispatch/internal/cases/model"
)

// Repository defines the interface for case data access operations.
type Repository interface {
	// Create persists a new case.
	Create(ctx context.Context, c *caseModel.Case) error

	// GetByID loads a case.
	GetByID(ctx context.Context, id string) (*caseModel.Case, error)

	// List returns cases matching the filter, newest first.
	List(ctx context.Context, filter caseModel.ListFilter) ([]caseModel.Case, error)

	// UpdateGuarded applies updates only while the stored status is one of
	// fromStatuses, returning the number of rows changed. Zero rows means the
	// case is missing or has moved on; the guard always runs against current
	// state, never a caller-supplied snapshot.
	UpdateGuarded(ctx context.Context, id string, fromStatuses []string, updates map[string]interface{}) (int64, error)
}

type repository struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new cases repository instance.
func New(db *gorm.DB, logger *zap.SugaredLogger) Repository {
	return &repository{db: db, logger: logger}
}

// Create persists a new case.
func (r *repository) Create(ctx context.Context, c *caseModel.Case) error {
	return r.db.WithContext(ctx).Create(c).Error
}

// GetByID loads a case.
func (r *repository) GetByID(ctx context.Context, id string) (*caseModel.Case, error) {
	var c caseModel.Case
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&c).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, caseModel.ErrCaseNotFound
		}
		return nil, err
	}

	return &c, nil
}

// List returns cases matching the filter, newest first.
func (r *repository) List(ctx context.Context, filter caseModel.ListFilter) ([]caseModel.Case, error) {
	query := r.db.WithContext(ctx).Model(&caseModel.Case{})

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.ReporterUserID != "" {
		query = query.Where("reporter_user_id = ?", filter.ReporterUserID)
	}
	if filter.ForResponder {
		query = query.Where("status = ? OR assigned_team_id IS NOT NULL", caseModel.StatusNew)
	}

	var out []caseModel.Case
	if err := query.Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateGuarded applies updates only while the stored status matches.
func (r *repository) UpdateGuarded(ctx context.Context, id string, fromStatuses []string, updates map[string]interface{}) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&caseModel.Case{}).
		Where("id = ? AND status IN ?", id, fromStatuses).
		Updates(updates)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
