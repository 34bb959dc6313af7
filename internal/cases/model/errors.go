package model

import "errors"

var (
	// ErrCaseNotFound indicates that the requested case does not exist.
	ErrCaseNotFound = errors.New("case not found")
	// ErrPermissionDenied indicates the caller may not perform the operation.
	ErrPermissionDenied = errors.New("permission denied")
	// ErrInvalidPriority indicates an unrecognized priority value.
	ErrInvalidPriority = errors.New("unrecognized priority")
	// ErrInvalidCoordinates indicates coordinates outside [-180,180] x [-90,90].
	ErrInvalidCoordinates = errors.New("coordinates must be within [-180,180] longitude and [-90,90] latitude")
	// ErrReporterContactRequired indicates an anonymous report without contact info.
	ErrReporterContactRequired = errors.New("anonymous reports require reporter name and phone or email")
	// ErrInvalidTransition indicates an illegal state-machine move, including
	// an unrecognized target status.
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrTeamNotFound indicates the referenced team does not exist.
	ErrTeamNotFound = errors.New("team not found")
	// ErrTeamNotActive indicates the referenced team cannot take assignments.
	ErrTeamNotActive = errors.New("team is not active")
)
