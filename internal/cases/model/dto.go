// Package model provides domain models and DTOs for the cases module.
package model

// ReporterPayload carries contact details for anonymous reporters.
type ReporterPayload struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

// LocationPayload carries the reported location.
type LocationPayload struct {
	Address   string  `json:"address"`
	City      string  `json:"city"`
	State     string  `json:"state"`
	Pincode   string  `json:"pincode"`
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
}

// CreateCaseRequest represents the request to file a case.
type CreateCaseRequest struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Reporter    ReporterPayload `json:"reporter"`
	Location    LocationPayload `json:"location"`
	Priority    string          `json:"priority"`
}

// ListFilter narrows a case listing.
type ListFilter struct {
	// Status filters by canonical status when non-empty.
	Status string
	// ReporterUserID restricts to the reporter's own cases.
	ReporterUserID string
	// ForResponder restricts to open work: new cases plus assigned ones.
	ForResponder bool
}

// AssignRequest represents the admin request to dispatch a team.
type AssignRequest struct {
	TeamID     string `json:"team_id" binding:"required"`
	EtaMinutes int    `json:"eta_minutes"`
	AdminNotes string `json:"admin_notes"`
}

// AcceptRequest represents a responder accepting dispatched work.
type AcceptRequest struct {
	TeamID     string `json:"team_id"`
	EtaMinutes *int   `json:"eta_minutes"`
}

// CancelRequest represents the admin request to cancel a case.
type CancelRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// SetStatusRequest represents the admin request to force a workflow status.
type SetStatusRequest struct {
	Status          string `json:"status" binding:"required"`
	ResolutionNotes string `json:"resolution_notes"`
	AdminNotes      string `json:"admin_notes"`
}
