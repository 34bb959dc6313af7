package model

import "errors"

var (
	// ErrTeamNotFound indicates that the requested team does not exist.
	ErrTeamNotFound = errors.New("team not found")
	// ErrInvalidTeamName indicates that the provided team name is invalid (e.g., empty).
	ErrInvalidTeamName = errors.New("invalid team name")
	// ErrInvalidCoordinates indicates coordinates outside [-180,180] x [-90,90].
	ErrInvalidCoordinates = errors.New("coordinates must be within [-180,180] longitude and [-90,90] latitude")
	// ErrInvalidSpecialization indicates an unrecognized specialization tag.
	ErrInvalidSpecialization = errors.New("unrecognized specialization")
	// ErrInvalidCapacity indicates a capacity below 1.
	ErrInvalidCapacity = errors.New("capacity must be at least 1")
	// ErrInvalidTeamStatus indicates an unrecognized team status value.
	ErrInvalidTeamStatus = errors.New("unrecognized team status")
	// ErrInvalidMemberRole indicates an unrecognized roster role.
	ErrInvalidMemberRole = errors.New("unrecognized member role")
	// ErrPermissionDenied indicates the caller may not perform the operation.
	ErrPermissionDenied = errors.New("permission denied")
	// ErrAlreadyMember indicates the user is already on the roster (or is the leader).
	ErrAlreadyMember = errors.New("user is already a member of this team")
	// ErrAlreadyLeader indicates the user already leads the team.
	ErrAlreadyLeader = errors.New("user is already the team leader")
	// ErrNotMember indicates the user has no roster entry on the team.
	ErrNotMember = errors.New("user is not a member of this team")
	// ErrLeaderCannotLeave indicates the leader tried to leave without transferring leadership.
	ErrLeaderCannotLeave = errors.New("team leader cannot leave the team; transfer leadership first")
	// ErrCapacityExceeded indicates the roster is full.
	ErrCapacityExceeded = errors.New("team has reached maximum capacity")
	// ErrConflict indicates the team changed concurrently; the operation should be retried.
	ErrConflict = errors.New("team was modified concurrently")
	// ErrTeamHasOpenCases indicates the team still has non-terminal cases and cannot be deleted.
	ErrTeamHasOpenCases = errors.New("team is referenced by open cases")
)
