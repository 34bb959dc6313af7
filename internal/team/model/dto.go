// Package model provides domain models and DTOs for the team module.
package model

import "time"

// LocationPayload carries the team's geolocation and address hierarchy.
type LocationPayload struct {
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
	Address   string  `json:"address"`
	City      string  `json:"city"`
	State     string  `json:"state"`
	Pincode   string  `json:"pincode"`
}

// ContactPayload carries the team's contact information.
type ContactPayload struct {
	Phone            string `json:"phone"`
	Email            string `json:"email"`
	EmergencyContact string `json:"emergency_contact"`
}

// CreateTeamRequest represents the request to create a team.
type CreateTeamRequest struct {
	Name            string          `json:"name" binding:"required"`
	Location        LocationPayload `json:"location"`
	Specializations []string        `json:"specializations"`
	Contact         ContactPayload  `json:"contact"`
	Capacity        int             `json:"capacity"`
}

// AddMemberRequest represents the request to add a roster member.
type AddMemberRequest struct {
	UserID string `json:"user_id" binding:"required"`
	Role   string `json:"role"`
}

// ChangeLeaderRequest represents the request to transfer team leadership.
type ChangeLeaderRequest struct {
	NewLeaderID string `json:"new_leader_id" binding:"required"`
}

// SetTeamStatusRequest represents the request to change team activity status.
type SetTeamStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// MemberResponse represents a roster entry in API responses.
type MemberResponse struct {
	UserID   string    `json:"user_id"`
	Role     string    `json:"role"`
	JoinedAt time.Time `json:"joined_at"`
}

// TeamResponse represents a team in API responses.
type TeamResponse struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	Location        LocationPayload  `json:"location"`
	Specializations []string         `json:"specializations"`
	Contact         ContactPayload   `json:"contact"`
	LeaderID        string           `json:"leader_id"`
	Members         []MemberResponse `json:"members"`
	Occupancy       int              `json:"occupancy"`
	Capacity        int              `json:"capacity"`
	IsActive        bool             `json:"is_active"`
	Status          string           `json:"status"`
	CreatedAt       time.Time        `json:"created_at"`
}

// NearbyTeamResponse is a team with its distance from the query point.
type NearbyTeamResponse struct {
	TeamResponse
	DistanceMeters float64 `json:"distance_meters"`
}

// NewTeamResponse builds a TeamResponse from a Team.
func NewTeamResponse(t *Team) *TeamResponse {
	members := make([]MemberResponse, 0, len(t.Members))
	for _, m := range t.Members {
		members = append(members, MemberResponse{
			UserID:   m.UserID,
			Role:     m.Role,
			JoinedAt: m.JoinedAt,
		})
	}

	return &TeamResponse{
		ID:   t.ID,
		Name: t.Name,
		Location: LocationPayload{
			Longitude: t.Longitude,
			Latitude:  t.Latitude,
			Address:   t.Address,
			City:      t.City,
			State:     t.State,
			Pincode:   t.Pincode,
		},
		Specializations: t.Specializations,
		Contact: ContactPayload{
			Phone:            t.ContactPhone,
			Email:            t.ContactEmail,
			EmergencyContact: t.EmergencyContact,
		},
		LeaderID:  t.LeaderID,
		Members:   members,
		Occupancy: t.Occupancy(),
		Capacity:  t.Capacity,
		IsActive:  t.IsActive,
		Status:    t.Status,
		CreatedAt: t.CreatedAt,
	}
}
