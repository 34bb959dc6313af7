// Package service provides business logic layer for the cases module.
package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/resq-ai/dispatch/internal/auth"
	caseModel "github.com/resq-ai/dispatch/internal/cases/model"
	"github.com/resq-ai/dispatch/internal/cases/repository"
	"github.com/resq-ai/dispatch/internal/geo"
)

// DefaultTitle is applied when a report arrives without one.
const DefaultTitle = "Emergency Report"

// Service defines the interface for case filing and retrieval.
type Service interface {
	// CreateCase files a new case on behalf of the caller or an anonymous reporter.
	CreateCase(ctx context.Context, p auth.Principal, req *caseModel.CreateCaseRequest) (*caseModel.Case, error)

	// ListCases returns cases scoped by the caller's role.
	ListCases(ctx context.Context, p auth.Principal, status string) ([]caseModel.Case, error)

	// GetCase returns a single case if the caller may see it.
	GetCase(ctx context.Context, p auth.Principal, id string) (*caseModel.Case, error)
}

type service struct {
	repo   repository.Repository
	logger *zap.SugaredLogger
}

// New creates a new cases service instance.
func New(repo repository.Repository, logger *zap.SugaredLogger) Service {
	return &service{repo: repo, logger: logger}
}

// CreateCase files a new case on behalf of the caller or an anonymous reporter.
func (s *service) CreateCase(ctx context.Context, p auth.Principal, req *caseModel.CreateCaseRequest) (*caseModel.Case, error) {
	priority := req.Priority
	if priority == "" {
		priority = caseModel.PriorityMedium
	}
	if !caseModel.ValidPriorities[priority] {
		return nil, caseModel.ErrInvalidPriority
	}

	if req.Location.Longitude != 0 || req.Location.Latitude != 0 {
		point := geo.Point{Longitude: req.Location.Longitude, Latitude: req.Location.Latitude}
		if !point.Valid() {
			return nil, caseModel.ErrInvalidCoordinates
		}
	}

	var reporterUserID *string
	if p.IsAnonymous() {
		if req.Reporter.Name == "" || (req.Reporter.Phone == "" && req.Reporter.Email == "") {
			return nil, caseModel.ErrReporterContactRequired
		}
	} else {
		uid := p.UserID
		reporterUserID = &uid
	}

	title := req.Title
	if title == "" {
		title = DefaultTitle
	}

	now := time.Now()
	c := &caseModel.Case{
		ID:             uuid.NewString(),
		Title:          title,
		Description:    req.Description,
		ReporterUserID: reporterUserID,
		ReporterName:   req.Reporter.Name,
		ReporterPhone:  req.Reporter.Phone,
		ReporterEmail:  req.Reporter.Email,
		Address:        req.Location.Address,
		City:           req.Location.City,
		State:          req.Location.State,
		Pincode:        req.Location.Pincode,
		Longitude:      req.Location.Longitude,
		Latitude:       req.Location.Latitude,
		Priority:       priority,
		Status:         caseModel.StatusNew,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}

	s.logger.Infow("case filed", "case_id", c.ID, "priority", c.Priority, "anonymous", reporterUserID == nil)
	return c, nil
}

// ListCases returns cases scoped by the caller's role: admins see everything,
// responders see open work, plain users see their own reports.
func (s *service) ListCases(ctx context.Context, p auth.Principal, status string) ([]caseModel.Case, error) {
	if p.IsAnonymous() {
		return nil, caseModel.ErrPermissionDenied
	}

	filter := caseModel.ListFilter{}
	if status != "" {
		canonical, ok := caseModel.NormalizeStatus(status)
		if !ok {
			return nil, caseModel.ErrInvalidTransition
		}
		filter.Status = canonical
	}

	switch {
	case p.IsAdmin():
		// no extra scoping
	case p.IsResponder():
		filter.ForResponder = true
	default:
		filter.ReporterUserID = p.UserID
	}

	return s.repo.List(ctx, filter)
}

// GetCase returns a single case if the caller may see it.
func (s *service) GetCase(ctx context.Context, p auth.Principal, id string) (*caseModel.Case, error) {
	if p.IsAnonymous() {
		return nil, caseModel.ErrPermissionDenied
	}

	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if p.IsAdmin() || p.IsResponder() {
		return c, nil
	}
	if c.ReporterUserID != nil && *c.ReporterUserID == p.UserID {
		return c, nil
	}
	return nil, caseModel.ErrPermissionDenied
}
