package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jobportal/jobboard-api/internal/api/middleware"
)

// ctxUser extracts the identity injected by the Auth middleware and fails
// fast before any service call when it is missing.
func ctxUser(c echo.Context) (userID, role string, err error) {
	userID, _ = c.Get(middleware.ContextUserID).(string)
	if userID == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated.")
	}
	role, _ = c.Get(middleware.ContextRole).(string)
	return userID, role, nil
}
