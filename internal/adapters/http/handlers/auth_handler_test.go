package handlers

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"companyhub/internal/adapters/persistence/models"
	"companyhub/internal/config"
	"companyhub/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type memUserRepo struct {
	users map[string]*models.User
}

func (r *memUserRepo) Create(_ context.Context, user *models.User, roles []*models.Role) error {
	for _, role := range roles {
		user.Roles = append(user.Roles, *role)
	}
	r.users[user.ID] = user
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memUserRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memUserRepo) Update(_ context.Context, user *models.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *memUserRepo) List(_ context.Context, _, _ int) ([]*models.User, int64, error) {
	all := make([]*models.User, 0, len(r.users))
	for _, u := range r.users {
		all = append(all, u)
	}
	return all, int64(len(all)), nil
}

func (r *memUserRepo) ExistsByUsername(_ context.Context, username string) (bool, error) {
	for _, u := range r.users {
		if u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (r *memUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	for _, u := range r.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *memUserRepo) AddRole(_ context.Context, user *models.User, role *models.Role) error {
	user.Roles = append(user.Roles, *role)
	return nil
}

func (r *memUserRepo) ClearExpiredLockouts(_ context.Context) error { return nil }

type memRoleRepo struct{}

func (r *memRoleRepo) GetByName(_ context.Context, name string) (*models.Role, error) {
	switch name {
	case models.RoleAdmin:
		return &models.Role{ID: 1, Name: models.RoleAdmin}, nil
	case models.RoleUser:
		return &models.Role{ID: 2, Name: models.RoleUser}, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memRoleRepo) List(_ context.Context) ([]*models.Role, error) {
	return []*models.Role{
		{ID: 1, Name: models.RoleAdmin},
		{ID: 2, Name: models.RoleUser},
	}, nil
}

type memResetRepo struct{}

func (r *memResetRepo) Create(_ context.Context, _ *models.PasswordReset) error { return nil }
func (r *memResetRepo) GetLatestByUserID(_ context.Context, _ string) (*models.PasswordReset, error) {
	return nil, gorm.ErrRecordNotFound
}
func (r *memResetRepo) MarkUsed(_ context.Context, _ uint) error                { return nil }
func (r *memResetRepo) InvalidateAllByUserID(_ context.Context, _ string) error { return nil }
func (r *memResetRepo) DeleteExpired(_ context.Context) error                   { return nil }

type noopEmailSender struct{}

func (s *noopEmailSender) Send(_, _, _ string) error { return nil }

func registerApp() *fiber.App {
	cfg := &config.Config{
		JWT: config.JWTConfig{
			Secret:   "handler-test-secret",
			Issuer:   "companyhub",
			Audience: "companyhub-api",
			TTL:      time.Hour,
		},
		Auth: config.AuthConfig{
			LockoutThreshold: 3,
			LockoutDuration:  15 * time.Minute,
			ResetTokenTTL:    time.Hour,
			ResetLinkBase:    "http://localhost:3000/reset-password",
		},
	}

	authService := services.NewAuthService(
		&memUserRepo{users: map[string]*models.User{}},
		&memRoleRepo{},
		&memResetRepo{},
		&noopEmailSender{},
		cfg,
	)
	handler := NewAuthHandler(authService)

	app := fiber.New()
	app.Post("/auth/register", handler.Register)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path, body string) int {
	t.Helper()
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	return resp.StatusCode
}

func TestRegisterRespondsOK(t *testing.T) {
	app := registerApp()

	status := postJSON(t, app, "/auth/register",
		`{"username":"alice","email":"alice@example.com","password":"password123","confirmPassword":"password123"}`)
	if status != fiber.StatusOK {
		t.Fatalf("status = %d, want %d", status, fiber.StatusOK)
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	app := registerApp()

	postJSON(t, app, "/auth/register",
		`{"username":"alice","email":"alice@example.com","password":"password123","confirmPassword":"password123"}`)

	status := postJSON(t, app, "/auth/register",
		`{"username":"alice","email":"other@example.com","password":"password123","confirmPassword":"password123"}`)
	if status != fiber.StatusBadRequest {
		t.Fatalf("status = %d, want %d", status, fiber.StatusBadRequest)
	}
}
