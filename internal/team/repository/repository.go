// Package repository provides data access layer for the team module.
package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	teamModel "github.com/resq-ai/dispatch/internal/team/model"
)

// Repository defines the interface for team data access operations.
type Repository interface {
	// Create persists a new team.
	Create(ctx context.Context, team *teamModel.Team) error

	// GetByID loads a team with its roster.
	GetByID(ctx context.Context, id string) (*teamModel.Team, error)

	// List returns all teams with rosters.
	List(ctx context.Context) ([]teamModel.Team, error)

	// ListActive returns all active teams with rosters.
	ListActive(ctx context.Context) ([]teamModel.Team, error)

	// ListBySpecialization returns active teams carrying the given tag.
	ListBySpecialization(ctx context.Context, tag string) ([]teamModel.Team, error)

	// ListAvailableFor returns active teams the user neither leads nor belongs to.
	ListAvailableFor(ctx context.Context, userID string) ([]teamModel.Team, error)

	// AddMember appends a roster entry.
	AddMember(ctx context.Context, member *teamModel.TeamMember) error

	// RemoveMember deletes the roster entry for the user.
	RemoveMember(ctx context.Context, teamID, userID string) error

	// SetLeader updates the team's leader reference.
	SetLeader(ctx context.Context, teamID, userID string) error

	// SetStatus updates the team's activity status.
	SetStatus(ctx context.Context, teamID, status string, isActive bool) error

	// BumpVersion applies the optimistic-concurrency check: the update only
	// succeeds if the version is unchanged since the team was read.
	BumpVersion(ctx context.Context, teamID string, version int64) error

	// CountOpenCases counts non-terminal cases referencing the team.
	CountOpenCases(ctx context.Context, teamID string) (int64, error)

	// Delete removes the team and its roster.
	Delete(ctx context.Context, teamID string) error
}

type repository struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new team repository instance.
func New(db *gorm.DB, logger *zap.SugaredLogger) Repository {
	return &repository{db: db, logger: logger}
}

// Create persists a new team.
func (r *repository) Create(ctx context.Context, team *teamModel.Team) error {
	return r.db.WithContext(ctx).Create(team).Error
}

// GetByID loads a team with its roster.
func (r *repository) GetByID(ctx context.Context, id string) (*teamModel.Team, error) {
	var team teamModel.Team
	err := r.db.WithContext(ctx).
		Preload("Members", func(db *gorm.DB) *gorm.DB {
			return db.Order("joined_at ASC, id ASC")
		}).
		Where("id = ?", id).
		First(&team).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, teamModel.ErrTeamNotFound
		}
		return nil, err
	}

	return &team, nil
}

// List returns all teams with rosters.
func (r *repository) List(ctx context.Context) ([]teamModel.Team, error) {
	var teams []teamModel.Team
	err := r.db.WithContext(ctx).
		Preload("Members").
		Order("created_at DESC").
		Find(&teams).Error
	if err != nil {
		return nil, err
	}
	return teams, nil
}

// ListActive returns all active teams with rosters.
func (r *repository) ListActive(ctx context.Context) ([]teamModel.Team, error) {
	var teams []teamModel.Team
	err := r.db.WithContext(ctx).
		Preload("Members").
		Where("is_active = ?", true).
		Order("created_at DESC").
		Find(&teams).Error
	if err != nil {
		return nil, err
	}
	return teams, nil
}

// ListBySpecialization returns active teams carrying the given tag.
// Specializations are stored as a JSON array, so a quoted LIKE match works
// on both PostgreSQL and SQLite.
func (r *repository) ListBySpecialization(ctx context.Context, tag string) ([]teamModel.Team, error) {
	var teams []teamModel.Team
	err := r.db.WithContext(ctx).
		Preload("Members").
		Where("is_active = ?", true).
		Where("specializations LIKE ?", `%"`+tag+`"%`).
		Order("created_at DESC").
		Find(&teams).Error
	if err != nil {
		return nil, err
	}
	return teams, nil
}

// ListAvailableFor returns active teams the user neither leads nor belongs to.
func (r *repository) ListAvailableFor(ctx context.Context, userID string) ([]teamModel.Team, error) {
	memberOf := r.db.Table("team_members").
		Select("team_id").
		Where("user_id = ?", userID)

	var teams []teamModel.Team
	err := r.db.WithContext(ctx).
		Preload("Members").
		Where("is_active = ?", true).
		Where("leader_id <> ?", userID).
		Where("id NOT IN (?)", memberOf).
		Order("created_at DESC").
		Find(&teams).Error
	if err != nil {
		return nil, err
	}
	return teams, nil
}

// AddMember appends a roster entry.
func (r *repository) AddMember(ctx context.Context, member *teamModel.TeamMember) error {
	if member.JoinedAt.IsZero() {
		member.JoinedAt = time.Now()
	}

	err := r.db.WithContext(ctx).Create(member).Error
	if err != nil {
		// Unique (team_id, user_id) backs the at-most-once invariant.
		if errors.Is(err, gorm.ErrDuplicatedKey) || isDuplicateError(err) {
			return teamModel.ErrAlreadyMember
		}
		return err
	}
	return nil
}

// isDuplicateError checks if error is a duplicate key error.
func isDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint")
}

// RemoveMember deletes the roster entry for the user.
func (r *repository) RemoveMember(ctx context.Context, teamID, userID string) error {
	result := r.db.WithContext(ctx).
		Where("team_id = ? AND user_id = ?", teamID, userID).
		Delete(&teamModel.TeamMember{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return teamModel.ErrNotMember
	}
	return nil
}

// SetLeader updates the team's leader reference.
func (r *repository) SetLeader(ctx context.Context, teamID, userID string) error {
	return r.db.WithContext(ctx).
		Model(&teamModel.Team{}).
		Where("id = ?", teamID).
		Updates(map[string]interface{}{
			"leader_id":  userID,
			"updated_at": time.Now(),
		}).Error
}

// SetStatus updates the team's activity status.
func (r *repository) SetStatus(ctx context.Context, teamID, status string, isActive bool) error {
	return r.db.WithContext(ctx).
		Model(&teamModel.Team{}).
		Where("id = ?", teamID).
		Updates(map[string]interface{}{
			"status":     status,
			"is_active":  isActive,
			"updated_at": time.Now(),
		}).Error
}

// BumpVersion applies the optimistic-concurrency check.
func (r *repository) BumpVersion(ctx context.Context, teamID string, version int64) error {
	result := r.db.WithContext(ctx).
		Model(&teamModel.Team{}).
		Where("id = ? AND version = ?", teamID, version).
		Updates(map[string]interface{}{
			"version":    version + 1,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return teamModel.ErrConflict
	}
	return nil
}

// CountOpenCases counts non-terminal cases referencing the team.
func (r *repository) CountOpenCases(ctx context.Context, teamID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("cases").
		Where("assigned_team_id = ? OR accepted_by_team_id = ?", teamID, teamID).
		Where("status NOT IN ?", []string{"completed", "cancelled"}).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// Delete removes the team and its roster.
func (r *repository) Delete(ctx context.Context, teamID string) error {
	if err := r.db.WithContext(ctx).
		Where("team_id = ?", teamID).
		Delete(&teamModel.TeamMember{}).Error; err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Where("id = ?", teamID).
		Delete(&teamModel.Team{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return teamModel.ErrTeamNotFound
	}
	return nil
}
