package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// ctxIdentity extracts the authenticated user id injected by the Auth
// middleware and fast-fails before any service call. Its presence proves the
// middleware ran; a protected handler reached without it is a wiring bug and
// is rejected rather than served anonymously.
func ctxIdentity(c echo.Context) (int64, error) {
	userID, _ := c.Get("user_id").(int64)
	if userID <= 0 {
		return 0, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return userID, nil
}

// ctxToken returns the session token id and expiry for logout.
func ctxToken(c echo.Context) (string, time.Time) {
	tokenID, _ := c.Get("token_id").(string)
	expires, _ := c.Get("token_expires").(time.Time)
	return tokenID, expires
}
