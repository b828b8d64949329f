package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/admarket/portal/internal/core/domain"
	"github.com/admarket/portal/internal/core/ports"
)

// SessionCookie is the name of the cookie carrying the session token.
const SessionCookie = "session"

const userContextKey = "user"

// Session resolves the session cookie to a user and injects it into the
// request context. Requests without a resolvable session proceed
// anonymously; the route guards decide whether that is acceptable.
func Session(sessions ports.SessionManager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(SessionCookie)
			if err == nil && cookie.Value != "" {
				user, err := sessions.Resolve(c.Request().Context(), cookie.Value)
				if err != nil {
					return err
				}
				if user != nil {
					c.Set(userContextKey, user)
				}
			}
			return next(c)
		}
	}
}

// CurrentUser returns the user bound to the request, or nil when the request
// is anonymous.
func CurrentUser(c echo.Context) *domain.User {
	user, _ := c.Get(userContextKey).(*domain.User)
	return user
}

// SetCurrentUser binds a user to the request context. Exported for handler
// tests that bypass the Session middleware.
func SetCurrentUser(c echo.Context, user *domain.User) {
	c.Set(userContextKey, user)
}
