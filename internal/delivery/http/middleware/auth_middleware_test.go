package middleware

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/eKidenge/QuickConnect-sub000/internal/domain/user"
	"github.com/eKidenge/QuickConnect-sub000/internal/pkg/jwt"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

func newTestJWTService() *jwt.HMACService {
	return jwt.NewHMACService("test-access", "test-refresh", time.Minute, time.Hour)
}

type authEcho struct {
	userID uuid.UUID
	email  string
	role   string
}

func newAuthTestApp(svc jwt.Service, echo *authEcho) *fiber.App {
	app := fiber.New()
	app.Use(NewErrorMiddleware(nil).Middleware())
	app.Get("/whoami", NewAuthMiddleware(svc).Middleware(), func(c fiber.Ctx) error {
		echo.userID, _ = c.Locals(CtxUserIDKey).(uuid.UUID)
		echo.email, _ = c.Locals(CtxEmailKey).(string)
		echo.role, _ = c.Locals(CtxRoleKey).(string)
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func TestAuthMiddleware_CarriesIdentityAndRole(t *testing.T) {
	svc := newTestJWTService()
	id := uuid.New()
	tok, err := svc.GenerateAccessToken(id, "pro@example.com", user.RoleProfessional)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	var echo authEcho
	app := newAuthTestApp(svc, &echo)

	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if echo.userID != id {
		t.Fatalf("user id local = %s, want %s", echo.userID, id)
	}
	if echo.email != "pro@example.com" {
		t.Fatalf("email local = %q", echo.email)
	}
	if echo.role != user.RoleProfessional {
		t.Fatalf("role local = %q, want %q", echo.role, user.RoleProfessional)
	}
}

func TestAuthMiddleware_MissingRoleDefaultsToClient(t *testing.T) {
	svc := newTestJWTService()
	tok, err := svc.GenerateAccessToken(uuid.New(), "old@example.com", "")
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	var echo authEcho
	app := newAuthTestApp(svc, &echo)

	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if echo.role != user.RoleClient {
		t.Fatalf("role local = %q, want %q", echo.role, user.RoleClient)
	}
}

func TestAuthMiddleware_RejectsRefreshToken(t *testing.T) {
	svc := newTestJWTService()
	tok, err := svc.GenerateRefreshToken(uuid.New())
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	var echo authEcho
	app := newAuthTestApp(svc, &echo)

	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 for refresh token, got %d", resp.StatusCode)
	}
}

func TestAuthMiddleware_RejectsMissingOrGarbageToken(t *testing.T) {
	svc := newTestJWTService()
	var echo authEcho
	app := newAuthTestApp(svc, &echo)

	for _, header := range []string{"", "Bearer not-a-token", "Basic abc"} {
		req := httptest.NewRequest("GET", "/whoami", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("request: %v", err)
		}
		resp.Body.Close()

		if resp.StatusCode != fiber.StatusUnauthorized {
			t.Fatalf("header %q: expected 401, got %d", header, resp.StatusCode)
		}
	}
}
