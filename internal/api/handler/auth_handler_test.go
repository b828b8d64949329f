package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/admarket/portal/internal/api/middleware"
	"github.com/admarket/portal/internal/core/domain"
	"github.com/admarket/portal/internal/core/ports"
)

type stubAuthService struct {
	registerUser *domain.User
	registerErr  error
	gotRegister  ports.RegisterInput

	loginToken string
	loginUser  *domain.User
	loginErr   error
}

func (s *stubAuthService) Register(_ context.Context, in ports.RegisterInput) (*domain.User, error) {
	s.gotRegister = in
	if s.registerErr != nil {
		return nil, s.registerErr
	}
	return s.registerUser, nil
}

func (s *stubAuthService) Login(_ context.Context, email, password string) (string, *domain.User, error) {
	if s.loginErr != nil {
		return "", nil, s.loginErr
	}
	return s.loginToken, s.loginUser, nil
}

type recordingSessions struct {
	terminated []string
}

func (s *recordingSessions) Establish(_ context.Context, _ *domain.User, _ bool) (string, error) {
	return "established", nil
}

func (s *recordingSessions) Resolve(_ context.Context, _ string) (*domain.User, error) {
	return nil, nil
}

func (s *recordingSessions) Terminate(_ context.Context, token string) error {
	s.terminated = append(s.terminated, token)
	return nil
}

func newAuthTestContext(t *testing.T, method, target string, form url.Values, accept string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()

	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func registerForm() url.Values {
	return url.Values{
		"email":            {"a@x.com"},
		"password":         {"longenough1"},
		"password_confirm": {"longenough1"},
		"role":             {"PUBLISHER"},
	}
}

func TestAuthHandler_Register_Success(t *testing.T) {
	svc := &stubAuthService{
		registerUser: &domain.User{ID: 1, Email: "a@x.com", Role: domain.RolePublisher},
	}
	h := NewAuthHandler(svc, &recordingSessions{})

	c, rec := newAuthTestContext(t, http.MethodPost, "/auth/register", registerForm(), "")
	if err := h.Register(c); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if svc.gotRegister.Email != "a@x.com" || svc.gotRegister.Role != "PUBLISHER" {
		t.Fatalf("unexpected input forwarded: %+v", svc.gotRegister)
	}
}

func TestAuthHandler_Register_BrowserRedirectsToLogin(t *testing.T) {
	svc := &stubAuthService{
		registerUser: &domain.User{ID: 1, Email: "a@x.com", Role: domain.RolePublisher},
	}
	h := NewAuthHandler(svc, &recordingSessions{})

	c, rec := newAuthTestContext(t, http.MethodPost, "/auth/register", registerForm(), "text/html")
	if err := h.Register(c); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/auth/login" {
		t.Fatalf("expected redirect to /auth/login, got %s", loc)
	}
}

func TestAuthHandler_Register_ValidationFailsBeforeService(t *testing.T) {
	svc := &stubAuthService{}
	h := NewAuthHandler(svc, &recordingSessions{})

	form := registerForm()
	form.Set("password_confirm", "different1")
	c, _ := newAuthTestContext(t, http.MethodPost, "/auth/register", form, "")

	err := h.Register(c)
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if !strings.Contains(ve.Message, "passwords do not match") {
		t.Fatalf("unexpected message: %s", ve.Message)
	}
	if svc.gotRegister.Email != "" {
		t.Fatalf("service must not be called on validation failure")
	}
}

func TestAuthHandler_Register_DuplicatePropagates(t *testing.T) {
	svc := &stubAuthService{registerErr: domain.ErrDuplicateEmail}
	h := NewAuthHandler(svc, &recordingSessions{})

	c, _ := newAuthTestContext(t, http.MethodPost, "/auth/register", registerForm(), "")
	if err := h.Register(c); !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestAuthHandler_Register_AlreadyAuthenticated(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, &recordingSessions{})

	c, rec := newAuthTestContext(t, http.MethodPost, "/auth/register", registerForm(), "")
	middleware.SetCurrentUser(c, &domain.User{ID: 9, Role: domain.RoleAdvertiser})

	if err := h.Register(c); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if rec.Code != http.StatusSeeOther || rec.Header().Get(echo.HeaderLocation) != "/dashboard" {
		t.Fatalf("expected redirect to /dashboard, got %d %s", rec.Code, rec.Header().Get(echo.HeaderLocation))
	}
}

func loginUser() *domain.User {
	return &domain.User{ID: 2, Email: "a@x.com", Role: domain.RolePublisher}
}

func TestAuthHandler_Login_SetsCookieAndRedirects(t *testing.T) {
	svc := &stubAuthService{loginToken: "session-token", loginUser: loginUser()}
	h := NewAuthHandler(svc, &recordingSessions{})

	form := url.Values{"email": {"a@x.com"}, "password": {"longenough1"}}
	c, rec := newAuthTestContext(t, http.MethodPost, "/auth/login", form, "text/html")

	if err := h.Login(c); err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/publisher/dashboard" {
		t.Fatalf("expected role landing redirect, got %s", loc)
	}

	cookies := rec.Result().Cookies()
	var found bool
	for _, ck := range cookies {
		if ck.Name == middleware.SessionCookie && ck.Value == "session-token" {
			found = true
			if !ck.HttpOnly {
				t.Fatalf("session cookie must be http-only")
			}
			if ck.MaxAge <= 0 {
				t.Fatalf("remember-me cookie must be persistent, got MaxAge=%d", ck.MaxAge)
			}
		}
	}
	if !found {
		t.Fatalf("session cookie not set; got %+v", cookies)
	}
}

func TestAuthHandler_Login_HonorsNextParam(t *testing.T) {
	svc := &stubAuthService{loginToken: "tok", loginUser: loginUser()}
	h := NewAuthHandler(svc, &recordingSessions{})

	form := url.Values{"email": {"a@x.com"}, "password": {"longenough1"}}
	c, rec := newAuthTestContext(t, http.MethodPost, "/auth/login?next=%2Fpublisher%2Fdashboard", form, "text/html")

	if err := h.Login(c); err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/publisher/dashboard" {
		t.Fatalf("expected next target, got %s", loc)
	}
}

func TestAuthHandler_Login_RejectsOffsiteNext(t *testing.T) {
	svc := &stubAuthService{loginToken: "tok", loginUser: loginUser()}
	h := NewAuthHandler(svc, &recordingSessions{})

	for _, next := range []string{"https://evil.example", "//evil.example"} {
		form := url.Values{"email": {"a@x.com"}, "password": {"longenough1"}}
		c, rec := newAuthTestContext(t, http.MethodPost, "/auth/login?next="+url.QueryEscape(next), form, "text/html")

		if err := h.Login(c); err != nil {
			t.Fatalf("Login returned error: %v", err)
		}
		if loc := rec.Header().Get(echo.HeaderLocation); loc != "/publisher/dashboard" {
			t.Fatalf("offsite next %q must fall back to landing, got %s", next, loc)
		}
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	svc := &stubAuthService{loginErr: domain.ErrInvalidCredentials}
	h := NewAuthHandler(svc, &recordingSessions{})

	form := url.Values{"email": {"a@x.com"}, "password": {"wrongpassword"}}
	c, _ := newAuthTestContext(t, http.MethodPost, "/auth/login", form, "")

	if err := h.Login(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthHandler_Login_JSONResponse(t *testing.T) {
	svc := &stubAuthService{loginToken: "tok", loginUser: loginUser()}
	h := NewAuthHandler(svc, &recordingSessions{})

	form := url.Values{"email": {"a@x.com"}, "password": {"longenough1"}}
	c, rec := newAuthTestContext(t, http.MethodPost, "/auth/login", form, "")

	if err := h.Login(c); err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"redirect":"/publisher/dashboard"`) {
		t.Fatalf("expected redirect hint in body, got %s", rec.Body.String())
	}
	if strings.Contains(rec.Body.String(), "password") {
		t.Fatalf("response must not leak credential fields: %s", rec.Body.String())
	}
}

func TestAuthHandler_Logout_TerminatesSession(t *testing.T) {
	sessions := &recordingSessions{}
	h := NewAuthHandler(&stubAuthService{}, sessions)

	c, rec := newAuthTestContext(t, http.MethodPost, "/auth/logout", nil, "")
	c.Request().AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: "tok-1"})

	if err := h.Logout(c); err != nil {
		t.Fatalf("Logout returned error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if len(sessions.terminated) != 1 || sessions.terminated[0] != "tok-1" {
		t.Fatalf("expected session terminated, got %v", sessions.terminated)
	}

	var cleared bool
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == middleware.SessionCookie && ck.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Fatalf("session cookie must be cleared")
	}
}

func TestAuthHandler_Logout_WithoutCookie(t *testing.T) {
	sessions := &recordingSessions{}
	h := NewAuthHandler(&stubAuthService{}, sessions)

	c, rec := newAuthTestContext(t, http.MethodPost, "/auth/logout", nil, "")
	if err := h.Logout(c); err != nil {
		t.Fatalf("Logout without cookie must succeed, got %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if len(sessions.terminated) != 0 {
		t.Fatalf("nothing to terminate, got %v", sessions.terminated)
	}
}

func TestAuthHandler_LoginForm(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, &recordingSessions{})

	c, rec := newAuthTestContext(t, http.MethodGet, "/auth/login", nil, "text/html")
	if err := h.LoginForm(c); err != nil {
		t.Fatalf("LoginForm returned error: %v", err)
	}
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "<form") {
		t.Fatalf("expected login form, got %d", rec.Code)
	}

	auth, rec2 := newAuthTestContext(t, http.MethodGet, "/auth/login", nil, "text/html")
	middleware.SetCurrentUser(auth, loginUser())
	if err := h.LoginForm(auth); err != nil {
		t.Fatalf("LoginForm returned error: %v", err)
	}
	if rec2.Code != http.StatusSeeOther || rec2.Header().Get(echo.HeaderLocation) != "/dashboard" {
		t.Fatalf("authenticated user must be redirected to /dashboard")
	}
}
