package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/admarket/portal/internal/core/domain"
)

func TestHTTPErrorHandler_Taxonomy(t *testing.T) {
	e := echo.New()
	handler := NewHTTPErrorHandler(zerolog.Nop())

	cases := []struct {
		name string
		err  error
		code int
		body string
	}{
		{"validation", domain.Validation("passwords do not match"), http.StatusBadRequest, "passwords do not match"},
		{"duplicate email", domain.ErrDuplicateEmail, http.StatusConflict, "email already registered"},
		{"invalid credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized, "invalid email or password"},
		{"unauthenticated", domain.ErrUnauthenticated, http.StatusUnauthorized, "authentication required"},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden, "access forbidden"},
		{"echo error", echo.NewHTTPError(http.StatusNotFound, "not found"), http.StatusNotFound, "not found"},
		{"unexpected", errors.New("pq: connection reset"), http.StatusInternalServerError, "internal server error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/auth/register", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			handler(tc.err, c)

			if rec.Code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, rec.Code)
			}
			if !strings.Contains(rec.Body.String(), tc.body) {
				t.Fatalf("expected body to contain %q, got %s", tc.body, rec.Body.String())
			}
		})
	}
}

func TestHTTPErrorHandler_NeverLeaksInternalError(t *testing.T) {
	e := echo.New()
	handler := NewHTTPErrorHandler(zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler(errors.New("dial tcp 10.0.0.5:5432: connect: connection refused"), c)

	if strings.Contains(rec.Body.String(), "10.0.0.5") {
		t.Fatalf("internal details leaked to the client: %s", rec.Body.String())
	}
}
