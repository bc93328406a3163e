package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

func signTestToken(t *testing.T, key []byte, claims *Claims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(key)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestJWTMiddleware_ValidToken(t *testing.T) {
	key := []byte("test-signing-key")
	tokenStr := signTestToken(t, key, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "nurse-42",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Name:  "Priya Shah",
		Roles: []string{"nurse"},
	})

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/requests", nil)
	req.Header.Set("Authorization", "Bearer "+tokenStr)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := JWTMiddleware(JWTConfig{SigningKey: key})
	h := mw(func(c echo.Context) error {
		ctx := c.Request().Context()
		if got := UserIDFromContext(ctx); got != "nurse-42" {
			t.Errorf("expected user nurse-42, got %q", got)
		}
		if got := UserNameFromContext(ctx); got != "Priya Shah" {
			t.Errorf("expected name Priya Shah, got %q", got)
		}
		roles := RolesFromContext(ctx)
		if len(roles) != 1 || roles[0] != "nurse" {
			t.Errorf("expected roles [nurse], got %v", roles)
		}
		return c.String(http.StatusOK, "ok")
	})

	if err := h(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestJWTMiddleware_QueryParamToken(t *testing.T) {
	key := []byte("test-signing-key")
	tokenStr := signTestToken(t, key, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "nurse-42",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Roles: []string{"nurse"},
	})

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/ws/requests?access_token="+tokenStr, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := JWTMiddleware(JWTConfig{SigningKey: key})
	h := mw(func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	if err := h(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestJWTMiddleware_MissingHeader(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/requests", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := JWTMiddleware(JWTConfig{SigningKey: []byte("key")})
	h := mw(func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	err := h(c)
	if err == nil {
		t.Fatal("expected error for missing authorization")
	}
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestJWTMiddleware_ExpiredToken(t *testing.T) {
	key := []byte("test-signing-key")
	tokenStr := signTestToken(t, key, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "nurse-42",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
		Roles: []string{"nurse"},
	})

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/requests", nil)
	req.Header.Set("Authorization", "Bearer "+tokenStr)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := JWTMiddleware(JWTConfig{SigningKey: key})
	h := mw(func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	err := h(c)
	if err == nil {
		t.Fatal("expected error for expired token")
	}
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestJWTMiddleware_WrongKey(t *testing.T) {
	tokenStr := signTestToken(t, []byte("other-key"), &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "nurse-42",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/requests", nil)
	req.Header.Set("Authorization", "Bearer "+tokenStr)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := JWTMiddleware(JWTConfig{SigningKey: []byte("test-signing-key")})
	h := mw(func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	if err := h(c); err == nil {
		t.Fatal("expected error for token signed with wrong key")
	}
}

func TestDevAuthMiddleware_Defaults(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/requests", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := DevAuthMiddleware()
	h := mw(func(c echo.Context) error {
		ctx := c.Request().Context()
		if got := UserIDFromContext(ctx); got != "dev-user" {
			t.Errorf("expected dev-user, got %q", got)
		}
		roles := RolesFromContext(ctx)
		if len(roles) != 1 || roles[0] != "admin" {
			t.Errorf("expected roles [admin], got %v", roles)
		}
		return c.String(http.StatusOK, "ok")
	})

	if err := h(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDevAuthMiddleware_RoleOverride(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/requests", nil)
	req.Header.Set("X-Dev-Role", "nurse")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := DevAuthMiddleware()
	h := mw(func(c echo.Context) error {
		roles := RolesFromContext(c.Request().Context())
		if len(roles) != 1 || roles[0] != "nurse" {
			t.Errorf("expected roles [nurse], got %v", roles)
		}
		return c.String(http.StatusOK, "ok")
	})

	if err := h(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func requireRoleContext(t *testing.T, roles []string) echo.Context {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/requests", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	ctx := context.WithValue(c.Request().Context(), UserRolesKey, roles)
	c.SetRequest(c.Request().WithContext(ctx))
	return c
}

func TestRequireRole_Allows(t *testing.T) {
	c := requireRoleContext(t, []string{"nurse"})

	mw := RequireRole("nurse")
	h := mw(func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	if err := h(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRequireRole_AdminBypass(t *testing.T) {
	c := requireRoleContext(t, []string{"admin"})

	mw := RequireRole("nurse")
	h := mw(func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	if err := h(c); err != nil {
		t.Fatalf("expected admin to pass role check, got %v", err)
	}
}

func TestRequireRole_Denies(t *testing.T) {
	c := requireRoleContext(t, []string{"reception"})

	mw := RequireRole("nurse")
	h := mw(func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	err := h(c)
	if err == nil {
		t.Fatal("expected forbidden error")
	}
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %v", err)
	}
}
