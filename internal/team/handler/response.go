package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	teamModel "github.com/resq-ai/dispatch/internal/team/model"
)

// ErrorResponse represents the error envelope returned by the API.
type ErrorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// errorResponse writes the error envelope.
func errorResponse(c *gin.Context, code string, message string, statusCode int) {
	resp := ErrorResponse{}
	resp.Error.Code = code
	resp.Error.Message = message
	c.JSON(statusCode, resp)
}

// errorMapping maps a sentinel error to its stable code and HTTP status.
type errorMapping struct {
	sentinel error
	code     string
	status   int
}

var errorMappings = []errorMapping{
	{teamModel.ErrTeamNotFound, "NOT_FOUND", http.StatusNotFound},
	{teamModel.ErrInvalidTeamName, "VALIDATION_ERROR", http.StatusBadRequest},
	{teamModel.ErrInvalidCoordinates, "VALIDATION_ERROR", http.StatusBadRequest},
	{teamModel.ErrInvalidSpecialization, "VALIDATION_ERROR", http.StatusBadRequest},
	{teamModel.ErrInvalidCapacity, "VALIDATION_ERROR", http.StatusBadRequest},
	{teamModel.ErrInvalidTeamStatus, "VALIDATION_ERROR", http.StatusBadRequest},
	{teamModel.ErrInvalidMemberRole, "VALIDATION_ERROR", http.StatusBadRequest},
	{teamModel.ErrPermissionDenied, "PERMISSION_DENIED", http.StatusForbidden},
	{teamModel.ErrAlreadyMember, "ALREADY_MEMBER", http.StatusConflict},
	{teamModel.ErrAlreadyLeader, "ALREADY_LEADER", http.StatusConflict},
	{teamModel.ErrNotMember, "NOT_MEMBER", http.StatusBadRequest},
	{teamModel.ErrLeaderCannotLeave, "LEADER_CANNOT_LEAVE", http.StatusBadRequest},
	{teamModel.ErrCapacityExceeded, "CAPACITY_EXCEEDED", http.StatusConflict},
	{teamModel.ErrConflict, "CONFLICT", http.StatusConflict},
	{teamModel.ErrTeamHasOpenCases, "TEAM_HAS_OPEN_CASES", http.StatusConflict},
}

// writeServiceError maps a service error to the envelope; unknown errors
// become a 500 and the caller is expected to have logged them.
func writeServiceError(c *gin.Context, err error) bool {
	for _, m := range errorMappings {
		if errors.Is(err, m.sentinel) {
			errorResponse(c, m.code, m.sentinel.Error(), m.status)
			return true
		}
	}
	return false
}
