package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/cartloom/admin-api/internal/api/session"
	"github.com/cartloom/admin-api/internal/core/domain"
	"github.com/cartloom/admin-api/internal/core/ports"
)

const userContextKey = "user"

const unauthenticatedMsg = "Not authorized to access. Please sign in with valid credentials"

// Auth resolves the request's session token to a full user record and injects
// it into the Echo context. The token is taken from the session cookie, then
// the Authorization header, then a manual parse of the raw Cookie header --
// clients vary in how they send it.
func Auth(issuer *session.Issuer, users ports.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := extractToken(c)
			if token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, unauthenticatedMsg)
			}

			claims, err := issuer.Verify(token)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, unauthenticatedMsg)
			}

			user, err := users.FindByID(c.Request().Context(), claims.UserID)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, unauthenticatedMsg)
			}

			c.Set(userContextKey, user)
			return next(c)
		}
	}
}

// AdminOnly gates a route on the resolved user's role. It must run after Auth.
func AdminOnly() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := CurrentUser(c)
			if user == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, unauthenticatedMsg)
			}
			if !user.IsAdmin() {
				return echo.NewHTTPError(http.StatusForbidden, "Forbidden: Admins only")
			}
			return next(c)
		}
	}
}

// CurrentUser returns the user resolved by Auth, or nil outside it.
func CurrentUser(c echo.Context) *domain.User {
	user, _ := c.Get(userContextKey).(*domain.User)
	return user
}

func extractToken(c echo.Context) string {
	if cookie, err := c.Cookie(session.CookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	if auth := c.Request().Header.Get("Authorization"); auth != "" {
		parts := strings.SplitN(auth, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return parts[1]
		}
	}

	// Last resort: parse the raw Cookie header ourselves.
	for _, part := range strings.Split(c.Request().Header.Get("Cookie"), ";") {
		name, value, found := strings.Cut(strings.TrimSpace(part), "=")
		if found && name == session.CookieName && value != "" {
			return value
		}
	}

	return ""
}
