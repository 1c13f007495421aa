package middleware

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// SessionCookie is the cookie carrying the session token for browser flows.
const SessionCookie = "session"

// Revocations answers whether a session token has been logged out.
type Revocations interface {
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// Auth is the session gate: it resolves the signed session token (cookie or
// bearer header) back to a user identity and injects it into the request
// context. Requests without a valid, unrevoked token are rejected: browser
// requests with a redirect to the login entry point, API requests with 401.
func Auth(jwtSecret string, sessions Revocations) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := extractToken(c)
			if raw == "" {
				return reject(c, "authentication required")
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !tkn.Valid {
				return reject(c, "invalid session")
			}

			sub, _ := claims["sub"].(string)
			userID, err := strconv.ParseInt(sub, 10, 64)
			if err != nil || userID <= 0 {
				return reject(c, "invalid session")
			}

			tokenID, _ := claims["jti"].(string)
			if tokenID != "" {
				revoked, err := sessions.IsRevoked(c.Request().Context(), tokenID)
				if err != nil {
					return echo.NewHTTPError(http.StatusServiceUnavailable, "unable to verify session")
				}
				if revoked {
					return reject(c, "session expired")
				}
			}

			c.Set("user_id", userID)
			c.Set("username", claims["username"])
			c.Set("token_id", tokenID)
			if exp, ok := claims["exp"].(float64); ok {
				c.Set("token_expires", time.Unix(int64(exp), 0))
			}

			return next(c)
		}
	}
}

func extractToken(c echo.Context) string {
	if cookie, err := c.Cookie(SessionCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	header := c.Request().Header.Get("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return parts[1]
	}
	return ""
}

// reject sends browsers back to the login page and API clients a 401.
func reject(c echo.Context, msg string) error {
	if wantsHTML(c) {
		return c.Redirect(http.StatusFound, "/login")
	}
	return echo.NewHTTPError(http.StatusUnauthorized, msg)
}

func wantsHTML(c echo.Context) bool {
	return strings.Contains(c.Request().Header.Get("Accept"), "text/html")
}
