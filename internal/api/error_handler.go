package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/jobportal/jobboard-api/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"success": false, "message": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, errorResponse{Success: false, Message: msg})
	}
}

var domainErrors = []struct {
	err  error
	code int
	msg  string
}{
	{domain.ErrJobIncomplete, http.StatusBadRequest, "Something is missing."},
	{domain.ErrRoleMismatch, http.StatusBadRequest, "Account doesn't exist with current role."},
	{domain.ErrInvalidFeed, http.StatusBadRequest, "Invalid API response"},
	{domain.ErrInvalidCredentials, http.StatusUnauthorized, "Incorrect email or password."},
	{domain.ErrForbidden, http.StatusForbidden, "You are not allowed to perform this action."},
	{domain.ErrJobNotFound, http.StatusNotFound, "Job not found."},
	{domain.ErrUserNotFound, http.StatusNotFound, "User not found."},
	{domain.ErrCompanyNotFound, http.StatusNotFound, "Company not found."},
	{domain.ErrApplicationNotFound, http.StatusNotFound, "Application not found."},
	{domain.ErrMediaNotFound, http.StatusNotFound, "File not found."},
	{domain.ErrJobNotSaved, http.StatusNotFound, "Job is not in your saved list."},
	{domain.ErrJobAlreadySaved, http.StatusConflict, "Job already saved."},
	{domain.ErrUserExists, http.StatusConflict, "User already exist with this email."},
	{domain.ErrCompanyExists, http.StatusConflict, "You can't register same company."},
	{domain.ErrAlreadyApplied, http.StatusConflict, "You have already applied for this job."},
	{domain.ErrIngestInProgress, http.StatusConflict, "Job ingestion is already running."},
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, auth, rate limit).
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if he.Internal != nil {
			log.Debug().Err(he.Internal).Int("status", he.Code).Str("path", c.Path()).Msg("request rejected")
		}
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Caller-facing validation messages carry no internal detail.
	if errors.Is(err, domain.ErrInvalidInput) || errors.Is(err, domain.ErrUnsupportedMedia) {
		return http.StatusBadRequest, err.Error()
	}

	for _, m := range domainErrors {
		if errors.Is(err, m.err) {
			return m.code, m.msg
		}
	}

	if errors.Is(err, domain.ErrUpstream) {
		log.Error().Err(err).Str("path", c.Path()).Msg("job feed unavailable")
		return http.StatusInternalServerError, "Error fetching jobs"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
		Msg("unhandled error")

	return http.StatusInternalServerError, "Internal server error"
}
