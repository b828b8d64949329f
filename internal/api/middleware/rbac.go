package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/admarket/portal/internal/core/domain"
)

// RequireSession gates a route on an authenticated session, any role.
// Anonymous browser requests are redirected to the login form with the
// intended destination preserved; API clients get a 401.
func RequireSession() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if CurrentUser(c) == nil {
				return denyUnauthenticated(c)
			}
			return next(c)
		}
	}
}

// RequireRoles gates a route on the caller holding one of the given roles.
// ADMIN passes every check (domain.Authorize's override). Panics when called
// with no roles: an empty required set is a wiring bug, not a runtime deny.
func RequireRoles(roles ...domain.Role) echo.MiddlewareFunc {
	if len(roles) == 0 {
		panic("middleware: RequireRoles needs at least one role")
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			switch domain.Authorize(CurrentUser(c), roles...) {
			case domain.Allow:
				return next(c)
			case domain.DenyUnauthenticated:
				return denyUnauthenticated(c)
			default:
				return domain.ErrForbidden
			}
		}
	}
}

func denyUnauthenticated(c echo.Context) error {
	if wantsHTML(c) {
		target := "/auth/login?next=" + url.QueryEscape(c.Request().RequestURI)
		return c.Redirect(http.StatusSeeOther, target)
	}
	return domain.ErrUnauthenticated
}

func wantsHTML(c echo.Context) bool {
	return strings.Contains(c.Request().Header.Get("Accept"), "text/html")
}
