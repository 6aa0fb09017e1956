package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/jobportal/jobboard-api/internal/core/domain"
)

func renderError(t *testing.T, err error) (int, errorResponse) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/job/get", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var body errorResponse
	if decodeErr := json.Unmarshal(rec.Body.Bytes(), &body); decodeErr != nil {
		t.Fatalf("decode body %q: %v", rec.Body.String(), decodeErr)
	}
	return rec.Code, body
}

func TestErrorHandler_DomainMapping(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{domain.ErrJobIncomplete, http.StatusBadRequest},
		{fmt.Errorf("%w: salary must be a number", domain.ErrInvalidInput), http.StatusBadRequest},
		{domain.ErrInvalidFeed, http.StatusBadRequest},
		{domain.ErrRoleMismatch, http.StatusBadRequest},
		{domain.ErrUnsupportedMedia, http.StatusBadRequest},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{domain.ErrForbidden, http.StatusForbidden},
		{domain.ErrJobNotFound, http.StatusNotFound},
		{domain.ErrJobNotSaved, http.StatusNotFound},
		{domain.ErrJobAlreadySaved, http.StatusConflict},
		{domain.ErrUserExists, http.StatusConflict},
		{domain.ErrIngestInProgress, http.StatusConflict},
		{fmt.Errorf("ingest: %w", domain.ErrUpstream), http.StatusInternalServerError},
		{echo.NewHTTPError(http.StatusTooManyRequests, "slow down"), http.StatusTooManyRequests},
	}

	for _, tc := range cases {
		t.Run(tc.err.Error(), func(t *testing.T) {
			code, body := renderError(t, tc.err)
			if code != tc.code {
				t.Errorf("code = %d, want %d", code, tc.code)
			}
			if body.Success {
				t.Error("expected success=false")
			}
			if body.Message == "" {
				t.Error("expected a message")
			}
		})
	}
}

func TestErrorHandler_IncompleteMessage(t *testing.T) {
	_, body := renderError(t, domain.ErrJobIncomplete)
	if body.Message != "Something is missing." {
		t.Fatalf("message = %q", body.Message)
	}
}

func TestErrorHandler_UnknownErrorDoesNotLeak(t *testing.T) {
	code, body := renderError(t, errors.New("mongo: connection refused at 10.0.0.3"))
	if code != http.StatusInternalServerError {
		t.Fatalf("code = %d", code)
	}
	if body.Message != "Internal server error" {
		t.Fatalf("leaked message %q", body.Message)
	}
}
