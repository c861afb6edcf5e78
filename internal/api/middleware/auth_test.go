package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/cohost-ai/rental-api/internal/api/handler"
	"github.com/cohost-ai/rental-api/internal/core/service"
)

func newTokens() *service.TokenManager {
	return service.NewTokenManager("secret", time.Hour, zerolog.Nop())
}

func runAuth(t *testing.T, header string) (*httptest.ResponseRecorder, bool, string) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set(echo.HeaderAuthorization, header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	var userID string
	h := Auth(newTokens())(func(c echo.Context) error {
		called = true
		userID, _ = c.Get(handler.UserIDKey).(string)
		return c.NoContent(http.StatusOK)
	})
	if err := h(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec, called, userID
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	token, err := newTokens().Issue("user-42")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	rec, called, userID := runAuth(t, "Bearer "+token)

	if !called {
		t.Fatalf("next not called")
	}
	if userID != "user-42" {
		t.Fatalf("expected user-42 in context, got %q", userID)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthMiddleware_Rejections(t *testing.T) {
	other := service.NewTokenManager("other-secret", time.Hour, zerolog.Nop())
	forged, err := other.Issue("user-42")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong scheme", "Token abc"},
		{"malformed token", "Bearer not-a-token"},
		{"wrong secret", "Bearer " + forged},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, called, _ := runAuth(t, tt.header)
			if called {
				t.Fatalf("should not reach next")
			}
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", rec.Code)
			}
		})
	}
}
