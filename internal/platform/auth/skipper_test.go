package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func skipperContext(path string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath(path)
	return c
}

func TestAuthSkipper_PublicPaths(t *testing.T) {
	for _, path := range []string{"/health", "/health/db"} {
		if !AuthSkipper(skipperContext(path)) {
			t.Errorf("expected AuthSkipper to return true for %s", path)
		}
	}
}

func TestAuthSkipper_ProtectedPaths(t *testing.T) {
	for _, path := range []string{"/api/v1/requests", "/ws/requests", "/", "/health/extra"} {
		if AuthSkipper(skipperContext(path)) {
			t.Errorf("expected AuthSkipper to return false for %s", path)
		}
	}
}

func TestIsPublicPath(t *testing.T) {
	if !IsPublicPath("/health") {
		t.Error("expected /health to be public")
	}
	if IsPublicPath("/api/v1/requests") {
		t.Error("expected /api/v1/requests to NOT be public")
	}
}

func TestJWTMiddleware_TokenlessHealthCheck(t *testing.T) {
	c := skipperContext("/health")

	var handlerCalled bool
	mw := JWTMiddleware(JWTConfig{
		SigningKey: []byte("test-signing-key"),
		Skipper:    AuthSkipper,
	})
	h := mw(func(c echo.Context) error {
		handlerCalled = true
		return c.String(http.StatusOK, "ok")
	})

	if err := h(c); err != nil {
		t.Fatalf("expected no error for tokenless health check, got: %v", err)
	}
	if !handlerCalled {
		t.Error("expected handler to be called for /health")
	}
}

func TestJWTMiddleware_SkipperDoesNotCoverProtectedPaths(t *testing.T) {
	c := skipperContext("/api/v1/requests")

	mw := JWTMiddleware(JWTConfig{
		SigningKey: []byte("test-signing-key"),
		Skipper:    AuthSkipper,
	})
	h := mw(func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	err := h(c)
	if err == nil {
		t.Fatal("expected error for protected path without auth")
	}
	httpErr, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected echo.HTTPError, got %T", err)
	}
	if httpErr.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", httpErr.Code)
	}
}

func TestJWTMiddleware_NilSkipperDoesNotSkip(t *testing.T) {
	c := skipperContext("/health")

	mw := JWTMiddleware(JWTConfig{SigningKey: []byte("test-signing-key")})
	h := mw(func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	if err := h(c); err == nil {
		t.Fatal("expected error when skipper is nil and no auth header")
	}
}

func TestDevAuthMiddleware_SkipsPublicPaths(t *testing.T) {
	c := skipperContext("/health")

	var handlerCalled bool
	mw := DevAuthMiddleware(AuthSkipper)
	h := mw(func(c echo.Context) error {
		handlerCalled = true
		if uid := UserIDFromContext(c.Request().Context()); uid != "" {
			t.Errorf("expected no user identity on skipped path, got %q", uid)
		}
		return c.String(http.StatusOK, "ok")
	})

	if err := h(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !handlerCalled {
		t.Error("handler was not called for skipped path")
	}
}
