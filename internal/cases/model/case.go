package model

import (
	"time"

	"gorm.io/gorm"
)

// Case statuses. A case moves new -> assigned -> accepted and ends in
// completed or cancelled; terminal states are final.
const (
	StatusNew       = "new"
	StatusAssigned  = "assigned"
	StatusAccepted  = "accepted"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// Priorities ordered low < medium < high < critical.
const (
	PriorityLow      = "low"
	PriorityMedium   = "medium"
	PriorityHigh     = "high"
	PriorityCritical = "critical"
)

// ValidPriorities recognized for a case.
var ValidPriorities = map[string]bool{
	PriorityLow:      true,
	PriorityMedium:   true,
	PriorityHigh:     true,
	PriorityCritical: true,
}

// statusAliases maps the legacy report workflow names onto the canonical set.
var statusAliases = map[string]string{
	"pending": StatusNew,
	"live":    StatusAssigned,
}

// NormalizeStatus resolves aliases and reports whether the value is a
// recognized status.
func NormalizeStatus(s string) (string, bool) {
	if canonical, ok := statusAliases[s]; ok {
		return canonical, true
	}
	switch s {
	case StatusNew, StatusAssigned, StatusAccepted, StatusCompleted, StatusCancelled:
		return s, true
	}
	return "", false
}

// IsTerminal reports whether no further transitions are permitted.
func IsTerminal(status string) bool {
	return status == StatusCompleted || status == StatusCancelled
}

// NonTerminalStatuses lists every status a case can still transition from.
var NonTerminalStatuses = []string{StatusNew, StatusAssigned, StatusAccepted}

// Case represents a reported emergency tracked through assignment and
// resolution. It unifies the incident and report workflows into one record.
// Matches the cases table schema.
type Case struct {
	ID          string `gorm:"primaryKey;column:id;type:varchar(36)"          json:"id"`
	Title       string `gorm:"column:title;type:varchar(255);not null"        json:"title"`
	Description string `gorm:"column:description;type:text"                   json:"description"`

	ReporterUserID *string `gorm:"column:reporter_user_id;type:varchar(255);index" json:"reporter_user_id,omitempty"`
	ReporterName   string  `gorm:"column:reporter_name;type:varchar(255)"          json:"reporter_name,omitempty"`
	ReporterPhone  string  `gorm:"column:reporter_phone;type:varchar(32)"          json:"reporter_phone,omitempty"`
	ReporterEmail  string  `gorm:"column:reporter_email;type:varchar(255)"         json:"reporter_email,omitempty"`

	Address   string  `gorm:"column:address;type:varchar(255)" json:"address"`
	City      string  `gorm:"column:city;type:varchar(255)"    json:"city"`
	State     string  `gorm:"column:state;type:varchar(255)"   json:"state"`
	Pincode   string  `gorm:"column:pincode;type:varchar(32)"  json:"pincode"`
	Longitude float64 `gorm:"column:longitude"                 json:"longitude"`
	Latitude  float64 `gorm:"column:latitude"                  json:"latitude"`

	Priority string `gorm:"column:priority;type:varchar(16);not null;default:'medium'"    json:"priority"`
	Status   string `gorm:"column:status;type:varchar(16);not null;default:'new';index"   json:"status"`

	AssignedTeamID   *string `gorm:"column:assigned_team_id;type:varchar(36);index"   json:"assigned_team_id,omitempty"`
	AcceptedByTeamID *string `gorm:"column:accepted_by_team_id;type:varchar(36)"      json:"accepted_by_team_id,omitempty"`
	EtaMinutes       *int    `gorm:"column:eta_minutes"                               json:"eta_minutes,omitempty"`
	AdminNotes       *string `gorm:"column:admin_notes;type:text"                     json:"admin_notes,omitempty"`
	ResolutionNotes  *string `gorm:"column:resolution_notes;type:text"                json:"resolution_notes,omitempty"`
	CancelReason     *string `gorm:"column:cancel_reason;type:text"                   json:"cancel_reason,omitempty"`
	AssignedBy       *string `gorm:"column:assigned_by;type:varchar(255)"             json:"assigned_by,omitempty"`
	CancelledBy      *string `gorm:"column:cancelled_by;type:varchar(255)"            json:"cancelled_by,omitempty"`

	AssignedAt  *time.Time `gorm:"column:assigned_at"  json:"assigned_at,omitempty"`
	CompletedAt *time.Time `gorm:"column:completed_at" json:"completed_at,omitempty"`
	CancelledAt *time.Time `gorm:"column:cancelled_at" json:"cancelled_at,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null" json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (Case) TableName() string {
	return "cases"
}

// BeforeUpdate updates the UpdatedAt timestamp before saving.
func (c *Case) BeforeUpdate(tx *gorm.DB) error {
	c.UpdatedAt = time.Now()
	return nil
}
