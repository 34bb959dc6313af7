package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	caseModel "github.com/resq-ai/dispatch/internal/cases/model"
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
	{caseModel.ErrCaseNotFound, "NOT_FOUND", http.StatusNotFound},
	{caseModel.ErrPermissionDenied, "PERMISSION_DENIED", http.StatusForbidden},
	{caseModel.ErrInvalidTransition, "INVALID_TRANSITION", http.StatusConflict},
	{caseModel.ErrTeamNotFound, "TEAM_NOT_FOUND", http.StatusNotFound},
	{caseModel.ErrTeamNotActive, "TEAM_NOT_ACTIVE", http.StatusConflict},
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
