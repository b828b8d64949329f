package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/admarket/portal/internal/api/middleware"
)

// DashboardHandler serves the landing page and the role dashboards. The
// role dashboards sit behind RequireRoles, so by the time a handler runs the
// caller is authenticated and authorized.
type DashboardHandler struct{}

func NewDashboardHandler() *DashboardHandler {
	return &DashboardHandler{}
}

// Index is the public landing page.
func (h *DashboardHandler) Index(c echo.Context) error {
	return c.HTML(http.StatusOK, indexHTML)
}

// Dashboard redirects the caller to the dashboard matching their role.
func (h *DashboardHandler) Dashboard(c echo.Context) error {
	user := middleware.CurrentUser(c)
	return c.Redirect(http.StatusSeeOther, user.Role.LandingPath())
}

type dashboardResponse struct {
	Dashboard string `json:"dashboard"`
	Email     string `json:"email"`
	Role      string `json:"role"`
}

func (h *DashboardHandler) Publisher(c echo.Context) error {
	return h.render(c, "publisher")
}

func (h *DashboardHandler) Advertiser(c echo.Context) error {
	return h.render(c, "advertiser")
}

func (h *DashboardHandler) Admin(c echo.Context) error {
	return h.render(c, "admin")
}

func (h *DashboardHandler) render(c echo.Context, name string) error {
	user := middleware.CurrentUser(c)
	return c.JSON(http.StatusOK, dashboardResponse{
		Dashboard: name,
		Email:     user.Email,
		Role:      string(user.Role),
	})
}
