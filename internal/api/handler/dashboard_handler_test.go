package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/admarket/portal/internal/api/middleware"
	"github.com/admarket/portal/internal/core/domain"
)

func newDashboardContext(t *testing.T, user *domain.User) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if user != nil {
		middleware.SetCurrentUser(c, user)
	}
	return c, rec
}

func TestDashboard_RedirectsByRole(t *testing.T) {
	h := NewDashboardHandler()

	cases := map[domain.Role]string{
		domain.RolePublisher:  "/publisher/dashboard",
		domain.RoleAdvertiser: "/advertiser/dashboard",
		domain.RoleAdmin:      "/admin/dashboard",
		domain.Role("OTHER"):  "/",
	}

	for role, want := range cases {
		c, rec := newDashboardContext(t, &domain.User{ID: 1, Email: "u@x.com", Role: role})
		if err := h.Dashboard(c); err != nil {
			t.Fatalf("Dashboard(%s) returned error: %v", role, err)
		}
		if rec.Code != http.StatusSeeOther {
			t.Fatalf("expected 303, got %d", rec.Code)
		}
		if loc := rec.Header().Get(echo.HeaderLocation); loc != want {
			t.Fatalf("Dashboard(%s) redirected to %s, want %s", role, loc, want)
		}
	}
}

func TestDashboard_RoleViews(t *testing.T) {
	h := NewDashboardHandler()
	user := &domain.User{ID: 1, Email: "p@x.com", Role: domain.RolePublisher}

	c, rec := newDashboardContext(t, user)
	if err := h.Publisher(c); err != nil {
		t.Fatalf("Publisher returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `"dashboard":"publisher"`) || !strings.Contains(body, `"email":"p@x.com"`) {
		t.Fatalf("unexpected body: %s", body)
	}
}

func TestIndex(t *testing.T) {
	h := NewDashboardHandler()

	c, rec := newDashboardContext(t, nil)
	if err := h.Index(c); err != nil {
		t.Fatalf("Index returned error: %v", err)
	}
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "Ad Portal") {
		t.Fatalf("expected landing page, got %d", rec.Code)
	}
}
