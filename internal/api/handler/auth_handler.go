package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/admarket/portal/internal/api/metrics"
	"github.com/admarket/portal/internal/api/middleware"
	"github.com/admarket/portal/internal/core/domain"
	"github.com/admarket/portal/internal/core/ports"
	"github.com/admarket/portal/internal/core/service"
)

type AuthHandler struct {
	auth     ports.AuthService
	sessions ports.SessionManager
}

func NewAuthHandler(auth ports.AuthService, sessions ports.SessionManager) *AuthHandler {
	return &AuthHandler{auth: auth, sessions: sessions}
}

type registerRequest struct {
	Email           string `form:"email" json:"email" validate:"required"`
	Password        string `form:"password" json:"password" validate:"required,min=8"`
	PasswordConfirm string `form:"password_confirm" json:"password_confirm" validate:"required,eqfield=Password"`
	Role            string `form:"role" json:"role" validate:"required,oneof=PUBLISHER ADVERTISER"`
	DisplayName     string `form:"display_name" json:"display_name"`
	Domain          string `form:"domain" json:"domain"`
	CompanyName     string `form:"company_name" json:"company_name"`
}

type loginRequest struct {
	Email    string `form:"email" json:"email" validate:"required"`
	Password string `form:"password" json:"password" validate:"required"`
}

type authResponse struct {
	User     *domain.User `json:"user,omitempty"`
	Redirect string       `json:"redirect,omitempty"`
}

// LoginForm serves the login page. Authenticated users are sent to their
// dashboard instead.
func (h *AuthHandler) LoginForm(c echo.Context) error {
	if middleware.CurrentUser(c) != nil {
		return c.Redirect(http.StatusSeeOther, "/dashboard")
	}
	return c.HTML(http.StatusOK, loginFormHTML)
}

// Login authenticates the credentials, sets the session cookie, and sends
// the user to the requested page or their role's dashboard.
func (h *AuthHandler) Login(c echo.Context) error {
	if middleware.CurrentUser(c) != nil {
		return c.Redirect(http.StatusSeeOther, "/dashboard")
	}

	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return domain.Validation("invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return domain.Validation(err.Error())
	}

	token, user, err := h.auth.Login(c.Request().Context(), strings.TrimSpace(req.Email), req.Password)
	if err != nil {
		if err == domain.ErrInvalidCredentials {
			metrics.LoginsTotal.WithLabelValues("failure").Inc()
		}
		return err
	}
	metrics.LoginsTotal.WithLabelValues("success").Inc()
	metrics.SessionsEstablishedTotal.Inc()

	setSessionCookie(c, token)

	target := safeNext(c.QueryParam("next"))
	if target == "" {
		target = user.Role.LandingPath()
	}
	if wantsHTML(c) {
		return c.Redirect(http.StatusSeeOther, target)
	}
	return c.JSON(http.StatusOK, authResponse{User: user, Redirect: target})
}

// RegisterForm serves the registration page.
func (h *AuthHandler) RegisterForm(c echo.Context) error {
	if middleware.CurrentUser(c) != nil {
		return c.Redirect(http.StatusSeeOther, "/dashboard")
	}
	return c.HTML(http.StatusOK, registerFormHTML)
}

// Register creates a user and its role profile atomically, then sends the
// user to the login page.
func (h *AuthHandler) Register(c echo.Context) error {
	if middleware.CurrentUser(c) != nil {
		return c.Redirect(http.StatusSeeOther, "/dashboard")
	}

	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return domain.Validation("invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return domain.Validation(err.Error())
	}

	user, err := h.auth.Register(c.Request().Context(), ports.RegisterInput{
		Email:           strings.TrimSpace(req.Email),
		Password:        req.Password,
		PasswordConfirm: req.PasswordConfirm,
		Role:            req.Role,
		DisplayName:     req.DisplayName,
		Domain:          req.Domain,
		CompanyName:     req.CompanyName,
	})
	if err != nil {
		return err
	}
	metrics.RegistrationsTotal.WithLabelValues(string(user.Role)).Inc()

	if wantsHTML(c) {
		return c.Redirect(http.StatusSeeOther, "/auth/login")
	}
	return c.JSON(http.StatusCreated, authResponse{User: user, Redirect: "/auth/login"})
}

// Logout terminates the session and clears the cookie. Idempotent: a stale
// or already-terminated cookie logs out cleanly.
func (h *AuthHandler) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(middleware.SessionCookie); err == nil && cookie.Value != "" {
		if err := h.sessions.Terminate(c.Request().Context(), cookie.Value); err != nil {
			return err
		}
		metrics.SessionsTerminatedTotal.Inc()
	}
	clearSessionCookie(c)

	if wantsHTML(c) {
		return c.Redirect(http.StatusSeeOther, "/")
	}
	return c.NoContent(http.StatusNoContent)
}

func setSessionCookie(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(service.RememberTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// safeNext keeps post-login redirects on this origin: relative paths only.
func safeNext(next string) string {
	if strings.HasPrefix(next, "/") && !strings.HasPrefix(next, "//") {
		return next
	}
	return ""
}

func wantsHTML(c echo.Context) bool {
	return strings.Contains(c.Request().Header.Get("Accept"), "text/html")
}
