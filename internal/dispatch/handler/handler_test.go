package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/resq-ai/dispatch/internal/auth"
	caseModel "github.com/resq-ai/dispatch/internal/cases/model"
	"github.com/resq-ai/dispatch/internal/dispatch/service"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) AssignCase(ctx context.Context, p auth.Principal, caseID string, req *caseModel.AssignRequest) (*caseModel.Case, error) {
	args := m.Called(ctx, p, caseID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*caseModel.Case), args.Error(1)
}

func (m *mockService) AcceptCase(ctx context.Context, p auth.Principal, caseID string, req *caseModel.AcceptRequest) (*caseModel.Case, error) {
	args := m.Called(ctx, p, caseID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*caseModel.Case), args.Error(1)
}

func (m *mockService) CancelCase(ctx context.Context, p auth.Principal, caseID string, req *caseModel.CancelRequest) (*caseModel.Case, error) {
	args := m.Called(ctx, p, caseID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*caseModel.Case), args.Error(1)
}

func (m *mockService) SetCaseStatus(ctx context.Context, p auth.Principal, caseID string, req *caseModel.SetStatusRequest) (*caseModel.Case, error) {
	args := m.Called(ctx, p, caseID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*caseModel.Case), args.Error(1)
}

var _ service.Service = (*mockService)(nil)

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func TestHandler_AssignCase(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		mockSvc := new(mockService)
		handler := New(mockSvc, zap.NewNop().Sugar())
		router := setupRouter()
		router.POST("/cases/:id/assign", handler.AssignCase)

		teamID := "t1"
		resp := &caseModel.Case{ID: "c1", Status: caseModel.StatusAssigned, AssignedTeamID: &teamID}
		mockSvc.On("AssignCase", mock.Anything, mock.Anything, "c1", mock.Anything).Return(resp, nil)

		body, _ := json.Marshal(caseModel.AssignRequest{TeamID: "t1"})
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/cases/c1/assign", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var response map[string]caseModel.Case
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, caseModel.StatusAssigned, response["case"].Status)
		mockSvc.AssertExpectations(t)
	})

	t.Run("missing team id fails binding", func(t *testing.T) {
		mockSvc := new(mockService)
		handler := New(mockSvc, zap.NewNop().Sugar())
		router := setupRouter()
		router.POST("/cases/:id/assign", handler.AssignCase)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/cases/c1/assign", bytes.NewBufferString(`{}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockSvc.AssertNotCalled(t, "AssignCase")
	})

	t.Run("inactive team maps to 409", func(t *testing.T) {
		mockSvc := new(mockService)
		handler := New(mockSvc, zap.NewNop().Sugar())
		router := setupRouter()
		router.POST("/cases/:id/assign", handler.AssignCase)

		mockSvc.On("AssignCase", mock.Anything, mock.Anything, "c1", mock.Anything).
			Return(nil, caseModel.ErrTeamNotActive)

		body, _ := json.Marshal(caseModel.AssignRequest{TeamID: "t1"})
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/cases/c1/assign", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "TEAM_NOT_ACTIVE")
	})
}

func TestHandler_CancelCase(t *testing.T) {
	t.Run("reason is required", func(t *testing.T) {
		mockSvc := new(mockService)
		handler := New(mockSvc, zap.NewNop().Sugar())
		router := setupRouter()
		router.POST("/cases/:id/cancel", handler.CancelCase)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/cases/c1/cancel", bytes.NewBufferString(`{}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockSvc.AssertNotCalled(t, "CancelCase")
	})
}

func TestHandler_SetCaseStatus(t *testing.T) {
	t.Run("invalid transition maps to 409", func(t *testing.T) {
		mockSvc := new(mockService)
		handler := New(mockSvc, zap.NewNop().Sugar())
		router := setupRouter()
		router.PATCH("/cases/:id/status", handler.SetCaseStatus)

		mockSvc.On("SetCaseStatus", mock.Anything, mock.Anything, "c1", mock.Anything).
			Return(nil, caseModel.ErrInvalidTransition)

		body, _ := json.Marshal(caseModel.SetStatusRequest{Status: "completed"})
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("PATCH", "/cases/c1/status", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "INVALID_TRANSITION")
	})
}
