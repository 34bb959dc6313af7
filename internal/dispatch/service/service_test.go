package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/resq-ai/dispatch/internal/auth"
	caseModel "github.com/resq-ai/dispatch/internal/cases/model"
	caseRepo "github.com/resq-ai/dispatch/internal/cases/repository"
	teamModel "github.com/resq-ai/dispatch/internal/team/model"
	teamRepo "github.com/resq-ai/dispatch/internal/team/repository"
)

var (
	admin     = auth.Principal{UserID: "root", Role: auth.RoleAdmin}
	responder = auth.Principal{UserID: "alice", Role: auth.RoleResponder}
	plainUser = auth.Principal{UserID: "uma", Role: auth.RoleUser}
)

func setupService(t *testing.T) (Service, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(&teamModel.Team{}, &teamModel.TeamMember{}, &caseModel.Case{})
	require.NoError(t, err)

	logger := zap.NewNop().Sugar()
	return New(caseRepo.New(db, logger), teamRepo.New(db, logger), logger), db
}

func seedTeam(t *testing.T, db *gorm.DB, id string, active bool) {
	status := teamModel.StatusActive
	if !active {
		status = teamModel.StatusInactive
	}
	now := time.Now()
	require.NoError(t, db.Create(&teamModel.Team{
		ID:        id,
		Name:      "Team " + id,
		LeaderID:  "alice",
		IsActive:  active,
		Status:    status,
		Capacity:  teamModel.DefaultCapacity,
		CreatedBy: "alice",
		CreatedAt: now,
		UpdatedAt: now,
	}).Error)
}

func seedCase(t *testing.T, db *gorm.DB, id, status string) {
	now := time.Now()
	require.NoError(t, db.Create(&caseModel.Case{
		ID:        id,
		Title:     "Emergency Report",
		Priority:  caseModel.PriorityMedium,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}).Error)
}

func TestService_AssignCase(t *testing.T) {
	ctx := context.Background()

	t.Run("admin assigns active team to new case", func(t *testing.T) {
		svc, db := setupService(t)
		seedTeam(t, db, "t1", true)
		seedCase(t, db, "c1", caseModel.StatusNew)

		c, err := svc.AssignCase(ctx, admin, "c1", &caseModel.AssignRequest{
			TeamID:     "t1",
			EtaMinutes: 15,
			AdminNotes: "bring boats",
		})
		require.NoError(t, err)

		assert.Equal(t, caseModel.StatusAssigned, c.Status)
		require.NotNil(t, c.AssignedTeamID)
		assert.Equal(t, "t1", *c.AssignedTeamID)
		require.NotNil(t, c.AssignedBy)
		assert.Equal(t, admin.UserID, *c.AssignedBy)
		assert.NotNil(t, c.AssignedAt)
		require.NotNil(t, c.EtaMinutes)
		assert.Equal(t, 15, *c.EtaMinutes)
	})

	t.Run("non-admin denied", func(t *testing.T) {
		svc, db := setupService(t)
		seedTeam(t, db, "t1", true)
		seedCase(t, db, "c1", caseModel.StatusNew)

		_, err := svc.AssignCase(ctx, responder, "c1", &caseModel.AssignRequest{TeamID: "t1"})
		assert.ErrorIs(t, err, caseModel.ErrPermissionDenied)
	})

	t.Run("missing team", func(t *testing.T) {
		svc, db := setupService(t)
		seedCase(t, db, "c1", caseModel.StatusNew)

		_, err := svc.AssignCase(ctx, admin, "c1", &caseModel.AssignRequest{TeamID: "ghost"})
		assert.ErrorIs(t, err, caseModel.ErrTeamNotFound)
	})

	t.Run("inactive team refused", func(t *testing.T) {
		svc, db := setupService(t)
		seedTeam(t, db, "t1", false)
		seedCase(t, db, "c1", caseModel.StatusNew)

		_, err := svc.AssignCase(ctx, admin, "c1", &caseModel.AssignRequest{TeamID: "t1"})
		assert.ErrorIs(t, err, caseModel.ErrTeamNotActive)
	})

	t.Run("already assigned case refused", func(t *testing.T) {
		svc, db := setupService(t)
		seedTeam(t, db, "t1", true)
		seedCase(t, db, "c1", caseModel.StatusAssigned)

		_, err := svc.AssignCase(ctx, admin, "c1", &caseModel.AssignRequest{TeamID: "t1"})
		assert.ErrorIs(t, err, caseModel.ErrInvalidTransition)
	})

	t.Run("missing case", func(t *testing.T) {
		svc, db := setupService(t)
		seedTeam(t, db, "t1", true)

		_, err := svc.AssignCase(ctx, admin, "ghost", &caseModel.AssignRequest{TeamID: "t1"})
		assert.ErrorIs(t, err, caseModel.ErrCaseNotFound)
	})
}

func TestService_AcceptCase(t *testing.T) {
	ctx := context.Background()

	t.Run("assign then accept flow", func(t *testing.T) {
		svc, db := setupService(t)
		seedTeam(t, db, "t1", true)
		seedCase(t, db, "c1", caseModel.StatusNew)

		_, err := svc.AssignCase(ctx, admin, "c1", &caseModel.AssignRequest{TeamID: "t1"})
		require.NoError(t, err)

		c, err := svc.AcceptCase(ctx, responder, "c1", &caseModel.AcceptRequest{})
		require.NoError(t, err)

		// Without an explicit team the assigned one takes ownership.
		assert.Equal(t, caseModel.StatusAccepted, c.Status)
		require.NotNil(t, c.AcceptedByTeamID)
		assert.Equal(t, "t1", *c.AcceptedByTeamID)
	})

	t.Run("explicit team overrides", func(t *testing.T) {
		svc, db := setupService(t)
		seedTeam(t, db, "t1", true)
		seedTeam(t, db, "t2", true)
		seedCase(t, db, "c1", caseModel.StatusNew)

		_, err := svc.AssignCase(ctx, admin, "c1", &caseModel.AssignRequest{TeamID: "t1"})
		require.NoError(t, err)

		eta := 8
		c, err := svc.AcceptCase(ctx, responder, "c1", &caseModel.AcceptRequest{TeamID: "t2", EtaMinutes: &eta})
		require.NoError(t, err)
		require.NotNil(t, c.AcceptedByTeamID)
		assert.Equal(t, "t2", *c.AcceptedByTeamID)
		require.NotNil(t, c.EtaMinutes)
		assert.Equal(t, 8, *c.EtaMinutes)
	})

	t.Run("unassigned case cannot be accepted", func(t *testing.T) {
		svc, db := setupService(t)
		seedCase(t, db, "c1", caseModel.StatusNew)

		_, err := svc.AcceptCase(ctx, responder, "c1", &caseModel.AcceptRequest{})
		assert.ErrorIs(t, err, caseModel.ErrInvalidTransition)
	})

	t.Run("plain user denied", func(t *testing.T) {
		svc, db := setupService(t)
		seedCase(t, db, "c1", caseModel.StatusAssigned)

		_, err := svc.AcceptCase(ctx, plainUser, "c1", &caseModel.AcceptRequest{})
		assert.ErrorIs(t, err, caseModel.ErrPermissionDenied)
	})
}

func TestService_CancelCase(t *testing.T) {
	ctx := context.Background()

	t.Run("cancel records reason and actor", func(t *testing.T) {
		svc, db := setupService(t)
		seedCase(t, db, "c1", caseModel.StatusNew)

		c, err := svc.CancelCase(ctx, admin, "c1", &caseModel.CancelRequest{Reason: "duplicate report"})
		require.NoError(t, err)

		assert.Equal(t, caseModel.StatusCancelled, c.Status)
		require.NotNil(t, c.CancelReason)
		assert.Equal(t, "duplicate report", *c.CancelReason)
		require.NotNil(t, c.CancelledBy)
		assert.Equal(t, admin.UserID, *c.CancelledBy)
		assert.NotNil(t, c.CancelledAt)
	})

	t.Run("cancelled case cannot be assigned", func(t *testing.T) {
		svc, db := setupService(t)
		seedTeam(t, db, "t1", true)
		seedCase(t, db, "c1", caseModel.StatusNew)

		_, err := svc.CancelCase(ctx, admin, "c1", &caseModel.CancelRequest{Reason: "false alarm"})
		require.NoError(t, err)

		_, err = svc.AssignCase(ctx, admin, "c1", &caseModel.AssignRequest{TeamID: "t1"})
		assert.ErrorIs(t, err, caseModel.ErrInvalidTransition)
	})

	t.Run("accepted case cannot be cancelled", func(t *testing.T) {
		svc, db := setupService(t)
		seedCase(t, db, "c1", caseModel.StatusAccepted)

		_, err := svc.CancelCase(ctx, admin, "c1", &caseModel.CancelRequest{Reason: "too late"})
		assert.ErrorIs(t, err, caseModel.ErrInvalidTransition)
	})
}

func TestService_SetCaseStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("completed sets timestamp and notes", func(t *testing.T) {
		svc, db := setupService(t)
		seedCase(t, db, "c1", caseModel.StatusAccepted)

		c, err := svc.SetCaseStatus(ctx, admin, "c1", &caseModel.SetStatusRequest{
			Status:          caseModel.StatusCompleted,
			ResolutionNotes: "all clear",
		})
		require.NoError(t, err)

		assert.Equal(t, caseModel.StatusCompleted, c.Status)
		assert.NotNil(t, c.CompletedAt)
		require.NotNil(t, c.ResolutionNotes)
		assert.Equal(t, "all clear", *c.ResolutionNotes)
	})

	t.Run("legacy aliases normalize", func(t *testing.T) {
		svc, db := setupService(t)
		seedCase(t, db, "c1", caseModel.StatusNew)

		c, err := svc.SetCaseStatus(ctx, admin, "c1", &caseModel.SetStatusRequest{Status: "live"})
		require.NoError(t, err)
		assert.Equal(t, caseModel.StatusAssigned, c.Status)
	})

	t.Run("terminal state is final", func(t *testing.T) {
		svc, db := setupService(t)
		seedCase(t, db, "c1", caseModel.StatusCompleted)

		_, err := svc.SetCaseStatus(ctx, admin, "c1", &caseModel.SetStatusRequest{Status: caseModel.StatusNew})
		assert.ErrorIs(t, err, caseModel.ErrInvalidTransition)
	})

	t.Run("cancelled via status records actor", func(t *testing.T) {
		svc, db := setupService(t)
		seedCase(t, db, "c1", caseModel.StatusAssigned)

		c, err := svc.SetCaseStatus(ctx, admin, "c1", &caseModel.SetStatusRequest{Status: caseModel.StatusCancelled})
		require.NoError(t, err)
		require.NotNil(t, c.CancelledBy)
		assert.Equal(t, admin.UserID, *c.CancelledBy)
		assert.NotNil(t, c.CancelledAt)
	})

	t.Run("unknown status rejected", func(t *testing.T) {
		svc, db := setupService(t)
		seedCase(t, db, "c1", caseModel.StatusNew)

		_, err := svc.SetCaseStatus(ctx, admin, "c1", &caseModel.SetStatusRequest{Status: "archived"})
		assert.ErrorIs(t, err, caseModel.ErrInvalidTransition)
	})

	t.Run("non-admin denied", func(t *testing.T) {
		svc, db := setupService(t)
		seedCase(t, db, "c1", caseModel.StatusNew)

		_, err := svc.SetCaseStatus(ctx, responder, "c1", &caseModel.SetStatusRequest{Status: caseModel.StatusCompleted})
		assert.ErrorIs(t, err, caseModel.ErrPermissionDenied)
	})
}
