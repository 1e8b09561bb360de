package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"companyhub/internal/adapters/persistence/models"
	"companyhub/internal/config"
	"companyhub/internal/core/domain"
	"companyhub/internal/pkg/password"

	"gorm.io/gorm"
)

// ============================================================
// In-memory stubs
// ============================================================

type stubUserRepo struct {
	users map[string]*models.User // keyed by ID
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*models.User)}
}

func (r *stubUserRepo) Create(_ context.Context, user *models.User, roles []*models.Role) error {
	for _, role := range roles {
		user.Roles = append(user.Roles, *role)
	}
	r.users[user.ID] = user
	return nil
}

func (r *stubUserRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUserRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUserRepo) Update(_ context.Context, user *models.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *stubUserRepo) List(_ context.Context, offset, limit int) ([]*models.User, int64, error) {
	all := make([]*models.User, 0, len(r.users))
	for _, u := range r.users {
		all = append(all, u)
	}
	return all, int64(len(all)), nil
}

func (r *stubUserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	_, err := r.GetByUsername(ctx, username)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (r *stubUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.GetByEmail(ctx, email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (r *stubUserRepo) AddRole(_ context.Context, user *models.User, role *models.Role) error {
	user.Roles = append(user.Roles, *role)
	return nil
}

func (r *stubUserRepo) ClearExpiredLockouts(_ context.Context) error { return nil }

type stubRoleRepo struct {
	roles map[string]*models.Role
}

func newStubRoleRepo() *stubRoleRepo {
	return &stubRoleRepo{roles: map[string]*models.Role{
		models.RoleAdmin: {ID: 1, Name: models.RoleAdmin},
		models.RoleUser:  {ID: 2, Name: models.RoleUser},
	}}
}

func (r *stubRoleRepo) GetByName(_ context.Context, name string) (*models.Role, error) {
	if role, ok := r.roles[name]; ok {
		return role, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubRoleRepo) List(_ context.Context) ([]*models.Role, error) {
	all := make([]*models.Role, 0, len(r.roles))
	for _, role := range r.roles {
		all = append(all, role)
	}
	return all, nil
}

type stubResetRepo struct {
	resets []*models.PasswordReset
	nextID uint
}

func newStubResetRepo() *stubResetRepo {
	return &stubResetRepo{nextID: 1}
}

func (r *stubResetRepo) Create(_ context.Context, reset *models.PasswordReset) error {
	reset.ID = r.nextID
	r.nextID++
	r.resets = append(r.resets, reset)
	return nil
}

func (r *stubResetRepo) GetLatestByUserID(_ context.Context, userID string) (*models.PasswordReset, error) {
	for i := len(r.resets) - 1; i >= 0; i-- {
		if r.resets[i].UserID == userID {
			return r.resets[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubResetRepo) MarkUsed(_ context.Context, id uint) error {
	now := time.Now()
	for _, reset := range r.resets {
		if reset.ID == id {
			reset.UsedAt = &now
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *stubResetRepo) InvalidateAllByUserID(_ context.Context, userID string) error {
	now := time.Now()
	for _, reset := range r.resets {
		if reset.UserID == userID && reset.UsedAt == nil {
			reset.UsedAt = &now
		}
	}
	return nil
}

func (r *stubResetRepo) DeleteExpired(_ context.Context) error { return nil }

type stubEmailSender struct {
	sent []string // recipient addresses
	body string
}

func (s *stubEmailSender) Send(to, _, body string) error {
	s.sent = append(s.sent, to)
	s.body = body
	return nil
}

// ============================================================
// Fixtures
// ============================================================

func testConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Secret:   "unit-test-secret",
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
}

func newTestAuthService() (*AuthService, *stubUserRepo, *stubResetRepo, *stubEmailSender) {
	userRepo := newStubUserRepo()
	resetRepo := newStubResetRepo()
	email := &stubEmailSender{}
	svc := NewAuthService(userRepo, newStubRoleRepo(), resetRepo, email, testConfig())
	return svc, userRepo, resetRepo, email
}

func registerTestUser(t *testing.T, svc *AuthService) *models.UserResponse {
	t.Helper()
	resp, err := svc.Register(context.Background(), &RegisterInput{
		Username:        "alice",
		Email:           "alice@example.com",
		Password:        "password123",
		ConfirmPassword: "password123",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	return resp
}

// ============================================================
// Register
// ============================================================

func TestRegisterGrantsDefaultRole(t *testing.T) {
	svc, _, _, _ := newTestAuthService()

	resp := registerTestUser(t, svc)
	if len(resp.Roles) != 1 || resp.Roles[0] != models.RoleUser {
		t.Errorf("Roles = %v, want [%s]", resp.Roles, models.RoleUser)
	}
	if resp.ID == "" {
		t.Error("expected generated user ID")
	}
}

func TestRegisterPasswordMismatch(t *testing.T) {
	svc, _, _, _ := newTestAuthService()

	_, err := svc.Register(context.Background(), &RegisterInput{
		Username:        "alice",
		Email:           "alice@example.com",
		Password:        "password123",
		ConfirmPassword: "different123",
	})
	ve, ok := domain.AsValidationError(err)
	if !ok {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if ve.Messages[0] != "Passwords do not match." {
		t.Errorf("unexpected message: %q", ve.Messages[0])
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, _, _ := newTestAuthService()
	registerTestUser(t, svc)

	_, err := svc.Register(context.Background(), &RegisterInput{
		Username:        "bob",
		Email:           "alice@example.com",
		Password:        "password123",
		ConfirmPassword: "password123",
	})
	if !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc, _, _, _ := newTestAuthService()
	registerTestUser(t, svc)

	_, err := svc.Register(context.Background(), &RegisterInput{
		Username:        "alice",
		Email:           "other@example.com",
		Password:        "password123",
		ConfirmPassword: "password123",
	})
	if !errors.Is(err, domain.ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestRegisterStoresHashedPassword(t *testing.T) {
	svc, userRepo, _, _ := newTestAuthService()
	resp := registerTestUser(t, svc)

	stored := userRepo.users[resp.ID]
	if stored.Password == "password123" {
		t.Fatal("password stored in plaintext")
	}
	if !password.Verify("password123", stored.Password) {
		t.Error("stored hash does not verify against the original password")
	}
}

// ============================================================
// Login
// ============================================================

func TestLoginSuccess(t *testing.T) {
	svc, _, _, _ := newTestAuthService()
	registerTestUser(t, svc)

	result, err := svc.Login(context.Background(), &LoginInput{Username: "alice", Password: "password123"})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if result.Token == "" {
		t.Error("expected a token")
	}

	claims, err := svc.ValidateToken(result.Token)
	if err != nil {
		t.Fatalf("token does not validate: %v", err)
	}
	if !claims.HasRole(models.RoleUser) {
		t.Errorf("claims roles = %v, want %s", claims.Roles, models.RoleUser)
	}
}

func TestLoginByEmail(t *testing.T) {
	svc, _, _, _ := newTestAuthService()
	registerTestUser(t, svc)

	if _, err := svc.Login(context.Background(), &LoginInput{Username: "alice@example.com", Password: "password123"}); err != nil {
		t.Fatalf("Login by email failed: %v", err)
	}
}

func TestLoginUnknownUserAndWrongPasswordLookAlike(t *testing.T) {
	svc, _, _, _ := newTestAuthService()
	registerTestUser(t, svc)

	_, errUnknown := svc.Login(context.Background(), &LoginInput{Username: "nobody", Password: "password123"})
	_, errWrong := svc.Login(context.Background(), &LoginInput{Username: "alice", Password: "wrong-password"})

	if !errors.Is(errUnknown, domain.ErrInvalidCredentials) {
		t.Errorf("unknown user: got %v", errUnknown)
	}
	if !errors.Is(errWrong, domain.ErrInvalidCredentials) {
		t.Errorf("wrong password: got %v", errWrong)
	}
}

func TestLoginLockoutAfterThreshold(t *testing.T) {
	svc, userRepo, _, _ := newTestAuthService()
	resp := registerTestUser(t, svc)

	for i := 0; i < 3; i++ {
		if _, err := svc.Login(context.Background(), &LoginInput{Username: "alice", Password: "wrong"}); !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Fatalf("attempt %d: got %v", i, err)
		}
	}

	user := userRepo.users[resp.ID]
	if user.LockedUntil == nil {
		t.Fatal("expected account to be locked after threshold")
	}

	// The correct password no longer works while locked.
	if _, err := svc.Login(context.Background(), &LoginInput{Username: "alice", Password: "password123"}); !errors.Is(err, domain.ErrAccountLocked) {
		t.Fatalf("expected ErrAccountLocked, got %v", err)
	}
}

func TestLoginResetsCountersOnSuccess(t *testing.T) {
	svc, userRepo, _, _ := newTestAuthService()
	resp := registerTestUser(t, svc)

	svc.Login(context.Background(), &LoginInput{Username: "alice", Password: "wrong"})
	if userRepo.users[resp.ID].FailedLogins != 1 {
		t.Fatalf("FailedLogins = %d, want 1", userRepo.users[resp.ID].FailedLogins)
	}

	if _, err := svc.Login(context.Background(), &LoginInput{Username: "alice", Password: "password123"}); err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if userRepo.users[resp.ID].FailedLogins != 0 {
		t.Errorf("FailedLogins = %d, want 0", userRepo.users[resp.ID].FailedLogins)
	}
}

func TestLoginExpiredLockoutReopens(t *testing.T) {
	svc, userRepo, _, _ := newTestAuthService()
	resp := registerTestUser(t, svc)

	past := time.Now().Add(-time.Minute)
	userRepo.users[resp.ID].LockedUntil = &past

	if _, err := svc.Login(context.Background(), &LoginInput{Username: "alice", Password: "password123"}); err != nil {
		t.Fatalf("expected login to succeed after lockout expiry, got %v", err)
	}
	if userRepo.users[resp.ID].LockedUntil != nil {
		t.Error("expected LockedUntil to be cleared")
	}
}

// ============================================================
// AssignRole
// ============================================================

func TestAssignRole(t *testing.T) {
	svc, userRepo, _, _ := newTestAuthService()
	resp := registerTestUser(t, svc)

	msg, err := svc.AssignRole(context.Background(), "alice", models.RoleAdmin)
	if err != nil {
		t.Fatalf("AssignRole failed: %v", err)
	}
	if !strings.Contains(msg, "assigned") {
		t.Errorf("unexpected message: %q", msg)
	}
	if !userRepo.users[resp.ID].HasRole(models.RoleAdmin) {
		t.Error("expected user to hold Admin role")
	}
}

func TestAssignRoleIdempotent(t *testing.T) {
	svc, userRepo, _, _ := newTestAuthService()
	resp := registerTestUser(t, svc)

	if _, err := svc.AssignRole(context.Background(), "alice", models.RoleAdmin); err != nil {
		t.Fatalf("first AssignRole failed: %v", err)
	}
	msg, err := svc.AssignRole(context.Background(), "alice", models.RoleAdmin)
	if err != nil {
		t.Fatalf("second AssignRole failed: %v", err)
	}
	if !strings.Contains(msg, "already assigned") {
		t.Errorf("unexpected message: %q", msg)
	}

	count := 0
	for _, r := range userRepo.users[resp.ID].Roles {
		if r.Name == models.RoleAdmin {
			count++
		}
	}
	if count != 1 {
		t.Errorf("Admin role held %d times, want 1", count)
	}
}

func TestAssignRoleUnknownUser(t *testing.T) {
	svc, _, _, _ := newTestAuthService()

	if _, err := svc.AssignRole(context.Background(), "nobody", models.RoleAdmin); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAssignRoleUnknownRole(t *testing.T) {
	svc, _, _, _ := newTestAuthService()
	registerTestUser(t, svc)

	if _, err := svc.AssignRole(context.Background(), "alice", "Superuser"); !errors.Is(err, domain.ErrRoleNotFound) {
		t.Fatalf("expected ErrRoleNotFound, got %v", err)
	}
}

// ============================================================
// Password reset
// ============================================================

// extractToken pulls the raw token out of the reset link sent by mail.
func extractToken(t *testing.T, body string) string {
	t.Helper()
	idx := strings.Index(body, "token=")
	if idx < 0 {
		t.Fatalf("no token in mail body: %q", body)
	}
	rest := body[idx+len("token="):]
	if end := strings.IndexAny(rest, "'&"); end >= 0 {
		rest = rest[:end]
	}
	return rest
}

func TestPasswordResetRoundTrip(t *testing.T) {
	svc, _, _, email := newTestAuthService()
	registerTestUser(t, svc)

	if err := svc.RequestPasswordReset(context.Background(), "alice@example.com"); err != nil {
		t.Fatalf("RequestPasswordReset failed: %v", err)
	}
	if len(email.sent) != 1 || email.sent[0] != "alice@example.com" {
		t.Fatalf("mail recipients = %v", email.sent)
	}

	token := extractToken(t, email.body)
	if err := svc.ResetPassword(context.Background(), "alice@example.com", token, "newpassword1"); err != nil {
		t.Fatalf("ResetPassword failed: %v", err)
	}

	if _, err := svc.Login(context.Background(), &LoginInput{Username: "alice", Password: "newpassword1"}); err != nil {
		t.Errorf("login with new password failed: %v", err)
	}
	if _, err := svc.Login(context.Background(), &LoginInput{Username: "alice", Password: "password123"}); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("old password still accepted: %v", err)
	}
}

func TestPasswordResetUnknownEmail(t *testing.T) {
	svc, _, _, email := newTestAuthService()

	err := svc.RequestPasswordReset(context.Background(), "nobody@example.com")
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if len(email.sent) != 0 {
		t.Error("no mail should be sent for unknown emails")
	}
}

func TestPasswordResetTokenSingleUse(t *testing.T) {
	svc, _, _, email := newTestAuthService()
	registerTestUser(t, svc)

	svc.RequestPasswordReset(context.Background(), "alice@example.com")
	token := extractToken(t, email.body)

	if err := svc.ResetPassword(context.Background(), "alice@example.com", token, "newpassword1"); err != nil {
		t.Fatalf("first reset failed: %v", err)
	}

	err := svc.ResetPassword(context.Background(), "alice@example.com", token, "newpassword2")
	ve, ok := domain.AsValidationError(err)
	if !ok {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if ve.Messages[0] != "Token has already been used." {
		t.Errorf("unexpected message: %q", ve.Messages[0])
	}
}

func TestPasswordResetOnlyLatestTokenValid(t *testing.T) {
	svc, _, _, email := newTestAuthService()
	registerTestUser(t, svc)

	svc.RequestPasswordReset(context.Background(), "alice@example.com")
	first := extractToken(t, email.body)

	svc.RequestPasswordReset(context.Background(), "alice@example.com")
	second := extractToken(t, email.body)

	if err := svc.ResetPassword(context.Background(), "alice@example.com", first, "newpassword1"); err == nil {
		t.Fatal("expected the superseded token to be rejected")
	}
	if err := svc.ResetPassword(context.Background(), "alice@example.com", second, "newpassword1"); err != nil {
		t.Fatalf("latest token rejected: %v", err)
	}
}

func TestPasswordResetTokenBoundToUser(t *testing.T) {
	svc, _, _, email := newTestAuthService()
	registerTestUser(t, svc)

	if _, err := svc.Register(context.Background(), &RegisterInput{
		Username:        "bob",
		Email:           "bob@example.com",
		Password:        "password456",
		ConfirmPassword: "password456",
	}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	svc.RequestPasswordReset(context.Background(), "alice@example.com")
	aliceToken := extractToken(t, email.body)

	err := svc.ResetPassword(context.Background(), "bob@example.com", aliceToken, "newpassword1")
	if _, ok := domain.AsValidationError(err); !ok {
		t.Fatalf("expected ValidationError for another user's token, got %v", err)
	}

	if _, err := svc.Login(context.Background(), &LoginInput{Username: "bob", Password: "password456"}); err != nil {
		t.Errorf("bob's password should be unchanged: %v", err)
	}
	if _, err := svc.Login(context.Background(), &LoginInput{Username: "bob", Password: "newpassword1"}); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("the attempted password must not work: %v", err)
	}
}

func TestPasswordResetExpiredToken(t *testing.T) {
	svc, _, resetRepo, email := newTestAuthService()
	registerTestUser(t, svc)

	svc.RequestPasswordReset(context.Background(), "alice@example.com")
	token := extractToken(t, email.body)

	resetRepo.resets[len(resetRepo.resets)-1].ExpiresAt = time.Now().Add(-time.Minute)

	err := svc.ResetPassword(context.Background(), "alice@example.com", token, "newpassword1")
	ve, ok := domain.AsValidationError(err)
	if !ok {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if ve.Messages[0] != "Token has expired." {
		t.Errorf("unexpected message: %q", ve.Messages[0])
	}
}

func TestPasswordResetWrongToken(t *testing.T) {
	svc, _, _, _ := newTestAuthService()
	registerTestUser(t, svc)

	svc.RequestPasswordReset(context.Background(), "alice@example.com")

	err := svc.ResetPassword(context.Background(), "alice@example.com", "made-up-token", "newpassword1")
	if _, ok := domain.AsValidationError(err); !ok {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestPasswordResetWeakPassword(t *testing.T) {
	svc, _, _, email := newTestAuthService()
	registerTestUser(t, svc)

	svc.RequestPasswordReset(context.Background(), "alice@example.com")
	token := extractToken(t, email.body)

	err := svc.ResetPassword(context.Background(), "alice@example.com", token, "short")
	ve, ok := domain.AsValidationError(err)
	if !ok {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if !strings.Contains(ve.Messages[0], "at least") {
		t.Errorf("unexpected message: %q", ve.Messages[0])
	}
}

func TestPasswordResetClearsLockout(t *testing.T) {
	svc, userRepo, _, email := newTestAuthService()
	resp := registerTestUser(t, svc)

	future := time.Now().Add(10 * time.Minute)
	userRepo.users[resp.ID].LockedUntil = &future
	userRepo.users[resp.ID].FailedLogins = 2

	svc.RequestPasswordReset(context.Background(), "alice@example.com")
	token := extractToken(t, email.body)
	if err := svc.ResetPassword(context.Background(), "alice@example.com", token, "newpassword1"); err != nil {
		t.Fatalf("ResetPassword failed: %v", err)
	}

	user := userRepo.users[resp.ID]
	if user.LockedUntil != nil || user.FailedLogins != 0 {
		t.Error("expected lockout state to be cleared by a completed reset")
	}
}
