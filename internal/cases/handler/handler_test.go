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
	"github.com/resq-ai/dispatch/internal/cases/service"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) CreateCase(ctx context.Context, p auth.Principal, req *caseModel.CreateCaseRequest) (*caseModel.Case, error) {
	args := m.Called(ctx, p, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*caseModel.Case), args.Error(1)
}

func (m *mockService) ListCases(ctx context.Context, p auth.Principal, status string) ([]caseModel.Case, error) {
	args := m.Called(ctx, p, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]caseModel.Case), args.Error(1)
}

func (m *mockService) GetCase(ctx context.Context, p auth.Principal, id string) (*caseModel.Case, error) {
	args := m.Called(ctx, p, id)
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

func TestHandler_CreateCase(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		mockSvc := new(mockService)
		handler := New(mockSvc, zap.NewNop().Sugar())
		router := setupRouter()
		router.POST("/cases", handler.CreateCase)

		resp := &caseModel.Case{ID: "c1", Title: "Emergency Report", Status: caseModel.StatusNew}
		mockSvc.On("CreateCase", mock.Anything, mock.Anything, mock.Anything).Return(resp, nil)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/cases", bytes.NewBufferString(`{}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		var response map[string]caseModel.Case
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "c1", response["case"].ID)
		mockSvc.AssertExpectations(t)
	})

	t.Run("missing contact maps to 400", func(t *testing.T) {
		mockSvc := new(mockService)
		handler := New(mockSvc, zap.NewNop().Sugar())
		router := setupRouter()
		router.POST("/cases", handler.CreateCase)

		mockSvc.On("CreateCase", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, caseModel.ErrReporterContactRequired)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/cases", bytes.NewBufferString(`{}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "VALIDATION_ERROR")
	})
}

func TestHandler_ListCases(t *testing.T) {
	t.Run("forwards status filter", func(t *testing.T) {
		mockSvc := new(mockService)
		handler := New(mockSvc, zap.NewNop().Sugar())
		router := setupRouter()
		router.GET("/cases", handler.ListCases)

		mockSvc.On("ListCases", mock.Anything, mock.Anything, "assigned").
			Return([]caseModel.Case{{ID: "c1"}}, nil)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/cases?status=assigned", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"results":1`)
		mockSvc.AssertExpectations(t)
	})

	t.Run("anonymous maps to 403", func(t *testing.T) {
		mockSvc := new(mockService)
		handler := New(mockSvc, zap.NewNop().Sugar())
		router := setupRouter()
		router.GET("/cases", handler.ListCases)

		mockSvc.On("ListCases", mock.Anything, mock.Anything, "").
			Return(nil, caseModel.ErrPermissionDenied)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/cases", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestHandler_GetCase(t *testing.T) {
	t.Run("not found maps to 404", func(t *testing.T) {
		mockSvc := new(mockService)
		handler := New(mockSvc, zap.NewNop().Sugar())
		router := setupRouter()
		router.GET("/cases/:id", handler.GetCase)

		mockSvc.On("GetCase", mock.Anything, mock.Anything, "ghost").
			Return(nil, caseModel.ErrCaseNotFound)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/cases/ghost", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "NOT_FOUND")
	})
}
