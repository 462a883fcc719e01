package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourname/habitquest/internal"
	"github.com/yourname/habitquest/internal/response"
)

// StatusFromErr maps the failure taxonomy onto HTTP. Parse and schema
// failures share one client-visible message on purpose: to the caller the
// recommendation simply could not be generated.
func StatusFromErr(err error) (int, string) {
	switch {
	case errors.Is(err, internal.ErrOracleUnavailable):
		return http.StatusServiceUnavailable, "Recommendation service unavailable"
	case errors.Is(err, internal.ErrParseFailure), errors.Is(err, internal.ErrSchemaViolation):
		return http.StatusBadGateway, "Could not generate recommendation"
	case errors.Is(err, internal.ErrNotFound):
		return http.StatusNotFound, "Not found"
	case errors.Is(err, internal.ErrDuplicateEmail):
		return http.StatusConflict, "Email already registered"
	case errors.Is(err, internal.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Invalid email or password"
	default:
		return http.StatusInternalServerError, "Internal error"
	}
}

func HandleError(c *gin.Context, logger internal.Logger, err error, status int, msg string) {
	requestID := c.GetString("request_id")
	logger.Errorf("[request_id=%s] %s: %v", requestID, msg, err)
	var resp response.APIResponse
	switch status {
	case 400:
		resp = response.BadRequest(msg)
	case 401:
		resp = response.Unauthorized(msg)
	case 404:
		resp = response.NotFound(msg)
	case 409:
		resp = response.Conflict(msg)
	case 500:
		resp = response.InternalError(msg)
	default:
		resp = response.NewAppError(status, msg)
	}
	c.JSON(status, resp)
}

func HandleSuccess(c *gin.Context, logger internal.Logger, status int, data interface{}, meta map[string]any) {
	requestID := c.GetString("request_id")
	logger.Infof("[request_id=%s] Success", requestID)
	c.JSON(status, response.Success(data, meta))
}
