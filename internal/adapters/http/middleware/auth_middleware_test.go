package middleware

import (
	"net/http/httptest"
	"testing"
	"time"

	"companyhub/internal/config"
	"companyhub/internal/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

func testConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Secret:   "middleware-test-secret",
			Issuer:   "companyhub",
			Audience: "companyhub-api",
			TTL:      time.Hour,
		},
	}
}

func testApp(cfg *config.Config) *fiber.App {
	app := fiber.New()

	protected := app.Group("/protected", AuthMiddleware(cfg))
	protected.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	admin := app.Group("/admin", AuthMiddleware(cfg), AdminOnly())
	admin.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("admin ok")
	})

	return app
}

func tokenFor(t *testing.T, cfg *config.Config, roles []string, ttl time.Duration) string {
	t.Helper()
	token, err := jwt.Generate("user-1", "user@example.com", roles,
		cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Audience, ttl)
	if err != nil {
		t.Fatalf("token generation failed: %v", err)
	}
	return token
}

func get(t *testing.T, app *fiber.App, path, bearer string) int {
	t.Helper()
	req := httptest.NewRequest("GET", path, nil)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	return resp.StatusCode
}

func TestAuthMiddlewareMissingToken(t *testing.T) {
	app := testApp(testConfig())
	if code := get(t, app, "/protected/", ""); code != fiber.StatusUnauthorized {
		t.Errorf("status = %d, want 401", code)
	}
}

func TestAuthMiddlewareMalformedToken(t *testing.T) {
	app := testApp(testConfig())
	if code := get(t, app, "/protected/", "garbage"); code != fiber.StatusUnauthorized {
		t.Errorf("status = %d, want 401", code)
	}
}

func TestAuthMiddlewareExpiredToken(t *testing.T) {
	cfg := testConfig()
	app := testApp(cfg)
	token := tokenFor(t, cfg, []string{"User"}, -time.Minute)
	if code := get(t, app, "/protected/", token); code != fiber.StatusUnauthorized {
		t.Errorf("status = %d, want 401", code)
	}
}

func TestAuthMiddlewareValidToken(t *testing.T) {
	cfg := testConfig()
	app := testApp(cfg)
	token := tokenFor(t, cfg, []string{"User"}, time.Hour)
	if code := get(t, app, "/protected/", token); code != fiber.StatusOK {
		t.Errorf("status = %d, want 200", code)
	}
}

func TestAdminOnlyRejectsUserRole(t *testing.T) {
	cfg := testConfig()
	app := testApp(cfg)
	token := tokenFor(t, cfg, []string{"User"}, time.Hour)
	if code := get(t, app, "/admin/", token); code != fiber.StatusForbidden {
		t.Errorf("status = %d, want 403", code)
	}
}

func TestAdminOnlyAllowsAdminRole(t *testing.T) {
	cfg := testConfig()
	app := testApp(cfg)
	token := tokenFor(t, cfg, []string{"User", "Admin"}, time.Hour)
	if code := get(t, app, "/admin/", token); code != fiber.StatusOK {
		t.Errorf("status = %d, want 200", code)
	}
}

func TestWrongSecretRejected(t *testing.T) {
	cfg := testConfig()
	app := testApp(cfg)

	other := testConfig()
	other.JWT.Secret = "a-different-secret"
	token := tokenFor(t, other, []string{"User"}, time.Hour)

	if code := get(t, app, "/protected/", token); code != fiber.StatusUnauthorized {
		t.Errorf("status = %d, want 401", code)
	}
}
