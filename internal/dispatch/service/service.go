// Package service provides business logic layer for the dispatch workflow.
package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/resq-ai/dispatch/internal/auth"
	caseModel "github.com/resq-ai/dispatch/internal/cases/model"
	caseRepo "github.com/resq-ai/dispatch/internal/cases/repository"
	teamModel "github.com/resq-ai/dispatch/internal/team/model"
	teamRepo "github.com/resq-ai/dispatch/internal/team/repository"
)

// Service defines the interface for case workflow transitions.
type Service interface {
	// AssignCase dispatches an active team to a new case (admin only).
	AssignCase(ctx context.Context, p auth.Principal, caseID string, req *caseModel.AssignRequest) (*caseModel.Case, error)

	// AcceptCase marks dispatched work as accepted by a team.
	AcceptCase(ctx context.Context, p auth.Principal, caseID string, req *caseModel.AcceptRequest) (*caseModel.Case, error)

	// CancelCase cancels a case that has not been accepted yet (admin only).
	CancelCase(ctx context.Context, p auth.Principal, caseID string, req *caseModel.CancelRequest) (*caseModel.Case, error)

	// SetCaseStatus forces a workflow status on a non-terminal case (admin only).
	SetCaseStatus(ctx context.Context, p auth.Principal, caseID string, req *caseModel.SetStatusRequest) (*caseModel.Case, error)
}

type service struct {
	cases  caseRepo.Repository
	teams  teamRepo.Repository
	logger *zap.SugaredLogger
}

// New creates a new dispatch service instance.
func New(cases caseRepo.Repository, teams teamRepo.Repository, logger *zap.SugaredLogger) Service {
	return &service{cases: cases, teams: teams, logger: logger}
}

// AssignCase dispatches an active team to a new case. The transition is a
// conditional update against the stored status, so two concurrent assigns
// cannot both win.
func (s *service) AssignCase(ctx context.Context, p auth.Principal, caseID string, req *caseModel.AssignRequest) (*caseModel.Case, error) {
	if !p.IsAdmin() {
		return nil, caseModel.ErrPermissionDenied
	}

	team, err := s.lookupTeam(ctx, req.TeamID)
	if err != nil {
		return nil, err
	}
	if !team.IsActive || team.Status != teamModel.StatusActive {
		return nil, caseModel.ErrTeamNotActive
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":           caseModel.StatusAssigned,
		"assigned_team_id": team.ID,
		"assigned_by":      p.UserID,
		"assigned_at":      now,
		"updated_at":       now,
	}
	if req.EtaMinutes > 0 {
		updates["eta_minutes"] = req.EtaMinutes
	}
	if req.AdminNotes != "" {
		updates["admin_notes"] = req.AdminNotes
	}

	c, err := s.transition(ctx, caseID, []string{caseModel.StatusNew}, updates)
	if err != nil {
		return nil, err
	}

	s.logger.Infow("case assigned", "case_id", caseID, "team_id", team.ID, "assigned_by", p.UserID)
	return c, nil
}

// AcceptCase marks dispatched work as accepted. Without an explicit team the
// assigned team takes ownership.
func (s *service) AcceptCase(ctx context.Context, p auth.Principal, caseID string, req *caseModel.AcceptRequest) (*caseModel.Case, error) {
	if !p.IsAdmin() && !p.IsResponder() {
		return nil, caseModel.ErrPermissionDenied
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":     caseModel.StatusAccepted,
		"updated_at": now,
	}
	if req.TeamID != "" {
		team, err := s.lookupTeam(ctx, req.TeamID)
		if err != nil {
			return nil, err
		}
		updates["accepted_by_team_id"] = team.ID
	} else {
		updates["accepted_by_team_id"] = gorm.Expr("assigned_team_id")
	}
	if req.EtaMinutes != nil {
		updates["eta_minutes"] = *req.EtaMinutes
	}

	c, err := s.transition(ctx, caseID, []string{caseModel.StatusAssigned}, updates)
	if err != nil {
		return nil, err
	}

	s.logger.Infow("case accepted", "case_id", caseID, "accepted_by", p.UserID)
	return c, nil
}

// CancelCase cancels a case that has not been accepted yet.
func (s *service) CancelCase(ctx context.Context, p auth.Principal, caseID string, req *caseModel.CancelRequest) (*caseModel.Case, error) {
	if !p.IsAdmin() {
		return nil, caseModel.ErrPermissionDenied
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":        caseModel.StatusCancelled,
		"cancel_reason": req.Reason,
		"cancelled_by":  p.UserID,
		"cancelled_at":  now,
		"updated_at":    now,
	}

	c, err := s.transition(ctx, caseID, []string{caseModel.StatusNew, caseModel.StatusAssigned}, updates)
	if err != nil {
		return nil, err
	}

	s.logger.Infow("case cancelled", "case_id", caseID, "cancelled_by", p.UserID, "reason", req.Reason)
	return c, nil
}

// SetCaseStatus forces a workflow status on a non-terminal case. Aliases from
// the legacy report workflow are accepted; terminal cases stay final.
func (s *service) SetCaseStatus(ctx context.Context, p auth.Principal, caseID string, req *caseModel.SetStatusRequest) (*caseModel.Case, error) {
	if !p.IsAdmin() {
		return nil, caseModel.ErrPermissionDenied
	}

	target, ok := caseModel.NormalizeStatus(req.Status)
	if !ok {
		return nil, caseModel.ErrInvalidTransition
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":     target,
		"updated_at": now,
	}
	if req.ResolutionNotes != "" {
		updates["resolution_notes"] = req.ResolutionNotes
	}
	if req.AdminNotes != "" {
		updates["admin_notes"] = req.AdminNotes
	}
	switch target {
	case caseModel.StatusCompleted:
		updates["completed_at"] = now
	case caseModel.StatusCancelled:
		updates["cancelled_by"] = p.UserID
		updates["cancelled_at"] = now
	}

	c, err := s.transition(ctx, caseID, caseModel.NonTerminalStatuses, updates)
	if err != nil {
		return nil, err
	}

	s.logger.Infow("case status set", "case_id", caseID, "status", target, "set_by", p.UserID)
	return c, nil
}

// lookupTeam resolves a team reference, translating absence into the case
// module's sentinel.
func (s *service) lookupTeam(ctx context.Context, teamID string) (*teamModel.Team, error) {
	team, err := s.teams.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, teamModel.ErrTeamNotFound) {
			return nil, caseModel.ErrTeamNotFound
		}
		return nil, err
	}
	return team, nil
}

// transition applies a guarded status update and re-reads on a miss to tell a
// missing case apart from an illegal transition.
func (s *service) transition(ctx context.Context, caseID string, fromStatuses []string, updates map[string]interface{}) (*caseModel.Case, error) {
	rows, err := s.cases.UpdateGuarded(ctx, caseID, fromStatuses, updates)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		if _, err := s.cases.GetByID(ctx, caseID); err != nil {
			return nil, err
		}
		return nil, caseModel.ErrInvalidTransition
	}
	return s.cases.GetByID(ctx, caseID)
}
