// Package service provides business logic layer for the team module.
package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/resq-ai/dispatch/internal/auth"
	"github.com/resq-ai/dispatch/internal/geo"
	teamModel "github.com/resq-ai/dispatch/internal/team/model"
	"github.com/resq-ai/dispatch/internal/team/repository"
	"github.com/resq-ai/dispatch/pkg/retry"
)

// DefaultSearchRadiusMeters is used when a nearby query gives no radius.
const DefaultSearchRadiusMeters = 10000.0

// Service defines the interface for team business logic operations.
type Service interface {
	// CreateTeam creates a new team led by the caller.
	CreateTeam(ctx context.Context, p auth.Principal, req *teamModel.CreateTeamRequest) (*teamModel.TeamResponse, error)

	// GetTeam returns a team with its roster.
	GetTeam(ctx context.Context, id string) (*teamModel.TeamResponse, error)

	// ListTeams returns all teams.
	ListTeams(ctx context.Context) ([]teamModel.TeamResponse, error)

	// ListAvailableTeams returns active teams the caller could join.
	ListAvailableTeams(ctx context.Context, p auth.Principal) ([]teamModel.TeamResponse, error)

	// FindBySpecialization returns active teams carrying the given tag.
	FindBySpecialization(ctx context.Context, tag string) ([]teamModel.TeamResponse, error)

	// FindNearLocation returns active teams within the radius, nearest first.
	FindNearLocation(ctx context.Context, lon, lat, maxDistanceMeters float64) ([]teamModel.NearbyTeamResponse, error)

	// AddMember adds a roster member (leader or admin only).
	AddMember(ctx context.Context, p auth.Principal, teamID string, req *teamModel.AddMemberRequest) (*teamModel.TeamResponse, error)

	// RemoveMember removes a roster member (leader or admin only).
	RemoveMember(ctx context.Context, p auth.Principal, teamID, userID string) (*teamModel.TeamResponse, error)

	// ChangeLeader atomically transfers leadership to a current member.
	ChangeLeader(ctx context.Context, p auth.Principal, teamID string, req *teamModel.ChangeLeaderRequest) (*teamModel.TeamResponse, error)

	// JoinTeam adds the caller to the roster (self-service).
	JoinTeam(ctx context.Context, p auth.Principal, teamID string) (*teamModel.TeamResponse, error)

	// LeaveTeam removes the caller from the roster (self-service).
	LeaveTeam(ctx context.Context, p auth.Principal, teamID string) (*teamModel.TeamResponse, error)

	// SetTeamStatus changes activity status (leader or admin only).
	SetTeamStatus(ctx context.Context, p auth.Principal, teamID string, req *teamModel.SetTeamStatusRequest) (*teamModel.TeamResponse, error)

	// DeleteTeam removes a team not referenced by open cases (admin only).
	DeleteTeam(ctx context.Context, p auth.Principal, teamID string) error
}

type service struct {
	repo     repository.Repository
	db       *gorm.DB
	logger   *zap.SugaredLogger
	retryCfg retry.Config
}

// New creates a new team service instance.
func New(repo repository.Repository, db *gorm.DB, logger *zap.SugaredLogger) Service {
	return &service{
		repo:   repo,
		db:     db,
		logger: logger,
		retryCfg: retry.Config{
			MaxAttempts:  3,
			InitialDelay: 10 * time.Millisecond,
			MaxDelay:     100 * time.Millisecond,
			Multiplier:   2.0,
			Retryable: func(err error) bool {
				return errors.Is(err, teamModel.ErrConflict)
			},
		},
	}
}

// canManage reports whether the caller may mutate the roster.
func canManage(p auth.Principal, team *teamModel.Team) bool {
	return p.IsAdmin() || (p.UserID != "" && team.LeaderID == p.UserID)
}

// mutate runs fn against a freshly loaded team inside a transaction and bumps
// the team version. A concurrent writer invalidates the version check and the
// whole transaction rolls back and retries, so capacity and uniqueness guards
// are always evaluated against current state.
func (s *service) mutate(ctx context.Context, teamID string, fn func(txRepo repository.Repository, team *teamModel.Team) error) error {
	return retry.Do(ctx, s.retryCfg, func() error {
		return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			txRepo := repository.New(tx, s.logger)

			team, err := txRepo.GetByID(ctx, teamID)
			if err != nil {
				return err
			}

			if err := fn(txRepo, team); err != nil {
				return err
			}

			return txRepo.BumpVersion(ctx, team.ID, team.Version)
		})
	})
}

// CreateTeam creates a new team led by the caller.
func (s *service) CreateTeam(ctx context.Context, p auth.Principal, req *teamModel.CreateTeamRequest) (*teamModel.TeamResponse, error) {
	if !p.IsAdmin() && !p.IsResponder() {
		return nil, teamModel.ErrPermissionDenied
	}

	if req.Name == "" {
		return nil, teamModel.ErrInvalidTeamName
	}

	point := geo.Point{Longitude: req.Location.Longitude, Latitude: req.Location.Latitude}
	if !point.Valid() {
		return nil, teamModel.ErrInvalidCoordinates
	}

	for _, tag := range req.Specializations {
		if !teamModel.ValidSpecializations[tag] {
			return nil, teamModel.ErrInvalidSpecialization
		}
	}

	capacity := req.Capacity
	if capacity == 0 {
		capacity = teamModel.DefaultCapacity
	}
	if capacity < 1 {
		return nil, teamModel.ErrInvalidCapacity
	}

	now := time.Now()
	team := &teamModel.Team{
		ID:               uuid.NewString(),
		Name:             req.Name,
		Longitude:        req.Location.Longitude,
		Latitude:         req.Location.Latitude,
		Address:          req.Location.Address,
		City:             req.Location.City,
		State:            req.Location.State,
		Pincode:          req.Location.Pincode,
		Specializations:  req.Specializations,
		ContactPhone:     req.Contact.Phone,
		ContactEmail:     req.Contact.Email,
		EmergencyContact: req.Contact.EmergencyContact,
		LeaderID:         p.UserID,
		IsActive:         true,
		Status:           teamModel.StatusActive,
		Capacity:         capacity,
		CreatedBy:        p.UserID,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.repo.Create(ctx, team); err != nil {
		return nil, err
	}

	s.logger.Infow("team created", "team_id", team.ID, "leader_id", team.LeaderID)
	return teamModel.NewTeamResponse(team), nil
}

// GetTeam returns a team with its roster.
func (s *service) GetTeam(ctx context.Context, id string) (*teamModel.TeamResponse, error) {
	team, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return teamModel.NewTeamResponse(team), nil
}

// ListTeams returns all teams.
func (s *service) ListTeams(ctx context.Context) ([]teamModel.TeamResponse, error) {
	teams, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return toResponses(teams), nil
}

// ListAvailableTeams returns active teams the caller could join.
func (s *service) ListAvailableTeams(ctx context.Context, p auth.Principal) ([]teamModel.TeamResponse, error) {
	if p.IsAnonymous() {
		return nil, teamModel.ErrPermissionDenied
	}

	teams, err := s.repo.ListAvailableFor(ctx, p.UserID)
	if err != nil {
		return nil, err
	}
	return toResponses(teams), nil
}

// FindBySpecialization returns active teams carrying the given tag.
func (s *service) FindBySpecialization(ctx context.Context, tag string) ([]teamModel.TeamResponse, error) {
	if !teamModel.ValidSpecializations[tag] {
		return nil, teamModel.ErrInvalidSpecialization
	}

	teams, err := s.repo.ListBySpecialization(ctx, tag)
	if err != nil {
		return nil, err
	}
	return toResponses(teams), nil
}

// FindNearLocation returns active teams within the radius, nearest first.
func (s *service) FindNearLocation(ctx context.Context, lon, lat, maxDistanceMeters float64) ([]teamModel.NearbyTeamResponse, error) {
	origin := geo.Point{Longitude: lon, Latitude: lat}
	if !origin.Valid() {
		return nil, teamModel.ErrInvalidCoordinates
	}

	if maxDistanceMeters <= 0 {
		maxDistanceMeters = DefaultSearchRadiusMeters
	}

	teams, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	nearby := make([]teamModel.NearbyTeamResponse, 0, len(teams))
	for i := range teams {
		t := &teams[i]
		dist := geo.Distance(origin, geo.Point{Longitude: t.Longitude, Latitude: t.Latitude})
		if dist > maxDistanceMeters {
			continue
		}
		nearby = append(nearby, teamModel.NearbyTeamResponse{
			TeamResponse:   *teamModel.NewTeamResponse(t),
			DistanceMeters: dist,
		})
	}

	sort.Slice(nearby, func(i, j int) bool {
		return nearby[i].DistanceMeters < nearby[j].DistanceMeters
	})

	return nearby, nil
}

// AddMember adds a roster member (leader or admin only).
func (s *service) AddMember(ctx context.Context, p auth.Principal, teamID string, req *teamModel.AddMemberRequest) (*teamModel.TeamResponse, error) {
	role := req.Role
	if role == "" {
		role = teamModel.RoleMember
	}
	if role != teamModel.RoleMember && role != teamModel.RoleSupervisor {
		return nil, teamModel.ErrInvalidMemberRole
	}

	err := s.mutate(ctx, teamID, func(txRepo repository.Repository, team *teamModel.Team) error {
		if !canManage(p, team) {
			return teamModel.ErrPermissionDenied
		}
		return addMemberGuarded(ctx, txRepo, team, req.UserID, role)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infow("member added", "team_id", teamID, "user_id", req.UserID, "role", role)
	return s.GetTeam(ctx, teamID)
}

// addMemberGuarded applies the uniqueness and capacity invariants before
// appending a roster entry.
func addMemberGuarded(ctx context.Context, txRepo repository.Repository, team *teamModel.Team, userID, role string) error {
	if team.LeaderID == userID || team.HasMember(userID) {
		return teamModel.ErrAlreadyMember
	}
	if team.Occupancy()+1 > team.Capacity {
		return teamModel.ErrCapacityExceeded
	}

	return txRepo.AddMember(ctx, &teamModel.TeamMember{
		TeamID:   team.ID,
		UserID:   userID,
		Role:     role,
		JoinedAt: time.Now(),
	})
}

// RemoveMember removes a roster member (leader or admin only).
func (s *service) RemoveMember(ctx context.Context, p auth.Principal, teamID, userID string) (*teamModel.TeamResponse, error) {
	err := s.mutate(ctx, teamID, func(txRepo repository.Repository, team *teamModel.Team) error {
		if !canManage(p, team) {
			return teamModel.ErrPermissionDenied
		}
		if !team.HasMember(userID) {
			return teamModel.ErrNotMember
		}
		return txRepo.RemoveMember(ctx, team.ID, userID)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infow("member removed", "team_id", teamID, "user_id", userID)
	return s.GetTeam(ctx, teamID)
}

// ChangeLeader atomically transfers leadership to a current member.
// The old leader becomes a plain member and the new leader loses their roster
// entry, all inside one transaction so no reader ever sees zero or two leaders.
func (s *service) ChangeLeader(ctx context.Context, p auth.Principal, teamID string, req *teamModel.ChangeLeaderRequest) (*teamModel.TeamResponse, error) {
	err := s.mutate(ctx, teamID, func(txRepo repository.Repository, team *teamModel.Team) error {
		if !canManage(p, team) {
			return teamModel.ErrPermissionDenied
		}
		if team.LeaderID == req.NewLeaderID {
			return teamModel.ErrAlreadyLeader
		}
		if !team.HasMember(req.NewLeaderID) {
			return teamModel.ErrNotMember
		}

		if err := txRepo.RemoveMember(ctx, team.ID, req.NewLeaderID); err != nil {
			return err
		}
		if err := txRepo.AddMember(ctx, &teamModel.TeamMember{
			TeamID:   team.ID,
			UserID:   team.LeaderID,
			Role:     teamModel.RoleMember,
			JoinedAt: time.Now(),
		}); err != nil {
			return err
		}
		return txRepo.SetLeader(ctx, team.ID, req.NewLeaderID)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infow("leadership transferred", "team_id", teamID, "new_leader_id", req.NewLeaderID)
	return s.GetTeam(ctx, teamID)
}

// JoinTeam adds the caller to the roster (self-service).
func (s *service) JoinTeam(ctx context.Context, p auth.Principal, teamID string) (*teamModel.TeamResponse, error) {
	if p.IsAnonymous() {
		return nil, teamModel.ErrPermissionDenied
	}

	err := s.mutate(ctx, teamID, func(txRepo repository.Repository, team *teamModel.Team) error {
		return addMemberGuarded(ctx, txRepo, team, p.UserID, teamModel.RoleMember)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infow("user joined team", "team_id", teamID, "user_id", p.UserID)
	return s.GetTeam(ctx, teamID)
}

// LeaveTeam removes the caller from the roster (self-service).
func (s *service) LeaveTeam(ctx context.Context, p auth.Principal, teamID string) (*teamModel.TeamResponse, error) {
	if p.IsAnonymous() {
		return nil, teamModel.ErrPermissionDenied
	}

	err := s.mutate(ctx, teamID, func(txRepo repository.Repository, team *teamModel.Team) error {
		if team.LeaderID == p.UserID {
			return teamModel.ErrLeaderCannotLeave
		}
		if !team.HasMember(p.UserID) {
			return teamModel.ErrNotMember
		}
		return txRepo.RemoveMember(ctx, team.ID, p.UserID)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infow("user left team", "team_id", teamID, "user_id", p.UserID)
	return s.GetTeam(ctx, teamID)
}

// SetTeamStatus changes activity status (leader or admin only).
// An inactive team is excluded from matching and cannot take assignments.
func (s *service) SetTeamStatus(ctx context.Context, p auth.Principal, teamID string, req *teamModel.SetTeamStatusRequest) (*teamModel.TeamResponse, error) {
	if !teamModel.ValidStatuses[req.Status] {
		return nil, teamModel.ErrInvalidTeamStatus
	}

	err := s.mutate(ctx, teamID, func(txRepo repository.Repository, team *teamModel.Team) error {
		if !canManage(p, team) {
			return teamModel.ErrPermissionDenied
		}
		isActive := req.Status != teamModel.StatusInactive
		return txRepo.SetStatus(ctx, team.ID, req.Status, isActive)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infow("team status changed", "team_id", teamID, "status", req.Status)
	return s.GetTeam(ctx, teamID)
}

// DeleteTeam removes a team not referenced by open cases (admin only).
func (s *service) DeleteTeam(ctx context.Context, p auth.Principal, teamID string) error {
	if !p.IsAdmin() {
		return teamModel.ErrPermissionDenied
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := repository.New(tx, s.logger)

		team, err := txRepo.GetByID(ctx, teamID)
		if err != nil {
			return err
		}

		open, err := txRepo.CountOpenCases(ctx, team.ID)
		if err != nil {
			return err
		}
		if open > 0 {
			return teamModel.ErrTeamHasOpenCases
		}

		return txRepo.Delete(ctx, team.ID)
	})
	if err != nil {
		return err
	}

	s.logger.Infow("team deleted", "team_id", teamID, "deleted_by", p.UserID)
	return nil
}

// toResponses converts teams to API responses.
func toResponses(teams []teamModel.Team) []teamModel.TeamResponse {
	out := make([]teamModel.TeamResponse, 0, len(teams))
	for i := range teams {
		out = append(out, *teamModel.NewTeamResponse(&teams[i]))
	}
	return out
}
