package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Team statuses.
const (
	StatusActive    = "active"
	StatusInactive  = "inactive"
	StatusOnMission = "on_mission"
)

// Member roles.
const (
	RoleMember     = "member"
	RoleSupervisor = "supervisor"
)

// DefaultCapacity is the roster capacity applied when none is given.
const DefaultCapacity = 10

// Specializations recognized for a team.
var ValidSpecializations = map[string]bool{
	"medical":    true,
	"evacuation": true,
	"fire":       true,
	"flood":      true,
	"earthquake": true,
	"rescue":     true,
	"other":      true,
}

// ValidStatuses recognized for a team.
var ValidStatuses = map[string]bool{
	StatusActive:    true,
	StatusInactive:  true,
	StatusOnMission: true,
}

// StringList stores a string set as a JSON text column so the same schema
// works on PostgreSQL and SQLite.
type StringList []string

// Value implements driver.Valuer.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (l *StringList) Scan(src interface{}) error {
	if src == nil {
		*l = StringList{}
		return nil
	}
	switch v := src.(type) {
	case string:
		return json.Unmarshal([]byte(v), l)
	case []byte:
		return json.Unmarshal(v, l)
	default:
		return fmt.Errorf("unsupported type for StringList: %T", src)
	}
}

// Team represents a responder team entity in the system.
// Matches the teams table schema.
type Team struct {
	ID               string     `gorm:"primaryKey;column:id;type:varchar(36)"                        json:"id"`
	Name             string     `gorm:"column:name;type:varchar(255);not null"                       json:"name"`
	Longitude        float64    `gorm:"column:longitude;not null"                                    json:"longitude"`
	Latitude         float64    `gorm:"column:latitude;not null"                                     json:"latitude"`
	Address          string     `gorm:"column:address;type:varchar(255)"                             json:"address"`
	City             string     `gorm:"column:city;type:varchar(255)"                                json:"city"`
	State            string     `gorm:"column:state;type:varchar(255)"                               json:"state"`
	Pincode          string     `gorm:"column:pincode;type:varchar(32)"                              json:"pincode"`
	Specializations  StringList `gorm:"column:specializations;type:text"                             json:"specializations"`
	ContactPhone     string     `gorm:"column:contact_phone;type:varchar(32)"                        json:"contact_phone"`
	ContactEmail     string     `gorm:"column:contact_email;type:varchar(255)"                       json:"contact_email"`
	EmergencyContact string     `gorm:"column:emergency_contact;type:varchar(255)"                   json:"emergency_contact"`
	LeaderID         string     `gorm:"column:leader_id;type:varchar(255);not null;index"            json:"leader_id"`
	IsActive         bool       `gorm:"column:is_active;not null;default:true"                       json:"is_active"`
	Status           string     `gorm:"column:status;type:varchar(32);not null;default:'active'"     json:"status"`
	Capacity         int        `gorm:"column:capacity;not null;default:10"                          json:"capacity"`
	Version          int64      `gorm:"column:version;not null;default:0"                            json:"-"`
	CreatedBy        string     `gorm:"column:created_by;type:varchar(255);not null"                 json:"created_by"`
	CreatedAt        time.Time  `gorm:"column:created_at;not null"                                   json:"created_at"`
	UpdatedAt        time.Time  `gorm:"column:updated_at;not null"                                   json:"updated_at"`

	Members []TeamMember `gorm:"foreignKey:TeamID;references:ID" json:"members"`
}

// TableName specifies the table name for GORM.
func (Team) TableName() string {
	return "teams"
}

// BeforeUpdate updates the UpdatedAt timestamp before saving.
func (t *Team) BeforeUpdate(tx *gorm.DB) error {
	t.UpdatedAt = time.Now()
	return nil
}

// Occupancy is the roster size including the leader.
// The leader has no member row, so it is members + 1.
func (t *Team) Occupancy() int {
	return len(t.Members) + 1
}

// HasMember reports whether the user holds a member entry on the roster.
func (t *Team) HasMember(userID string) bool {
	for _, m := range t.Members {
		if m.UserID == userID {
			return true
		}
	}
	return false
}

// TeamMember represents a roster entry for a team.
// Matches the team_members table schema. The leader is tracked on the team
// row itself and never appears here.
type TeamMember struct {
	ID       int64     `gorm:"primaryKey;column:id;autoIncrement"                                                    json:"-"`
	TeamID   string    `gorm:"column:team_id;type:varchar(36);not null;uniqueIndex:idx_team_members_team_user;index" json:"-"`
	UserID   string    `gorm:"column:user_id;type:varchar(255);not null;uniqueIndex:idx_team_members_team_user"      json:"user_id"`
	Role     string    `gorm:"column:role;type:varchar(32);not null;default:'member'"                                json:"role"`
	JoinedAt time.Time `gorm:"column:joined_at;not null"                                                             json:"joined_at"`
}

// TableName specifies the table name for GORM.
func (TeamMember) TableName() string {
	return "team_members"
}
