package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"time"

	"companyhub/internal/adapters/persistence/models"
	"companyhub/internal/adapters/persistence/repositories"
	"companyhub/internal/config"
	"companyhub/internal/core/domain"
	"companyhub/internal/pkg/jwt"
	"companyhub/internal/pkg/password"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuthService handles registration, login, role assignment and the
// password reset lifecycle.
type AuthService struct {
	userRepo  repositories.UserRepository
	roleRepo  repositories.RoleRepository
	resetRepo repositories.PasswordResetRepository
	email     EmailSender
	cfg       *config.Config
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo repositories.UserRepository,
	roleRepo repositories.RoleRepository,
	resetRepo repositories.PasswordResetRepository,
	email EmailSender,
	cfg *config.Config,
) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		roleRepo:  roleRepo,
		resetRepo: resetRepo,
		email:     email,
		cfg:       cfg,
	}
}

// RegisterInput represents registration input
type RegisterInput struct {
	Username        string `json:"username" validate:"required,min=3,max=50"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
	PhoneNumber     string `json:"phoneNumber"`
}

// LoginInput represents login input. Username also accepts an email
// address.
type LoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResult represents a successful authentication
type LoginResult struct {
	Token string               `json:"token"`
	User  *models.UserResponse `json:"user"`
}

// Register creates a new user and grants the default "User" role.
// Expected rule violations come back as domain errors, never panics.
func (s *AuthService) Register(ctx context.Context, input *RegisterInput) (*models.UserResponse, error) {
	if input.Password != input.ConfirmPassword {
		return nil, domain.NewValidationError("Passwords do not match.")
	}

	exists, err := s.userRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrEmailTaken
	}

	exists, err = s.userRepo.ExistsByUsername(ctx, input.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrUsernameTaken
	}

	hashedPassword, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	defaultRole, err := s.roleRepo.GetByName(ctx, models.RoleUser)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:          uuid.New().String(),
		Username:    input.Username,
		Email:       input.Email,
		Password:    hashedPassword,
		PhoneNumber: input.PhoneNumber,
	}

	if err := s.userRepo.Create(ctx, user, []*models.Role{defaultRole}); err != nil {
		return nil, err
	}
	user.Roles = []models.Role{*defaultRole}

	log.Printf("User registered: %s", user.Username)

	return user.ToResponse(), nil
}

// Login authenticates a user by username or email and issues a signed
// token carrying the full role set the user holds right now. A missing
// user and a wrong password are deliberately indistinguishable.
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*LoginResult, error) {
	user, err := s.findByUsernameOrEmail(ctx, input.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	now := time.Now()
	if user.IsLocked(now) {
		return nil, domain.ErrAccountLocked
	}

	if !password.Verify(input.Password, user.Password) {
		if err := s.recordFailedLogin(ctx, user, now); err != nil {
			return nil, err
		}
		return nil, domain.ErrInvalidCredentials
	}

	if user.FailedLogins > 0 || user.LockedUntil != nil {
		user.FailedLogins = 0
		user.LockedUntil = nil
		if err := s.userRepo.Update(ctx, user); err != nil {
			return nil, err
		}
	}

	token, err := jwt.Generate(
		user.ID,
		user.Email,
		user.RoleNames(),
		s.cfg.JWT.Secret,
		s.cfg.JWT.Issuer,
		s.cfg.JWT.Audience,
		s.cfg.JWT.TTL,
	)
	if err != nil {
		return nil, err
	}

	log.Printf("User logged in: %s", user.Username)

	return &LoginResult{
		Token: token,
		User:  user.ToResponse(),
	}, nil
}

// AssignRole grants a role to a user. Re-assigning a role the user
// already holds is a success, not an error. Admin gating happens at the
// transport boundary before this method runs.
func (s *AuthService) AssignRole(ctx context.Context, username, roleName string) (string, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", domain.ErrUserNotFound
		}
		return "", err
	}

	role, err := s.roleRepo.GetByName(ctx, roleName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", domain.ErrRoleNotFound
		}
		return "", err
	}

	if user.HasRole(role.Name) {
		return fmt.Sprintf("Role %s already assigned to %s.", role.Name, user.Username), nil
	}

	if err := s.userRepo.AddRole(ctx, user, role); err != nil {
		return "", err
	}

	log.Printf("Role %s assigned to %s", role.Name, user.Username)

	return fmt.Sprintf("Role %s assigned to %s.", role.Name, user.Username), nil
}

// RequestPasswordReset issues a single-use, time-boxed reset token and
// mails a reset link. The raw token is never returned through the API;
// the handler masks ErrUserNotFound so unknown emails look identical to
// known ones.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}

	// Only the most recently issued token may be consumed.
	if err := s.resetRepo.InvalidateAllByUserID(ctx, user.ID); err != nil {
		return err
	}

	token := uuid.New().String()
	reset := &models.PasswordReset{
		UserID:    user.ID,
		TokenHash: password.HashToken(token),
		ExpiresAt: time.Now().Add(s.cfg.Auth.ResetTokenTTL),
	}

	if err := s.resetRepo.Create(ctx, reset); err != nil {
		return err
	}

	link := fmt.Sprintf("%s?email=%s&token=%s",
		s.cfg.Auth.ResetLinkBase,
		url.QueryEscape(user.Email),
		url.QueryEscape(token),
	)
	body := fmt.Sprintf("Click <a href='%s'>here</a> to reset your password. The link expires in %d minutes.",
		link, int(s.cfg.Auth.ResetTokenTTL.Minutes()))

	if err := s.email.Send(user.Email, "Password Reset Request", body); err != nil {
		return err
	}

	log.Printf("Password reset requested for %s", user.Username)

	return nil
}

// ResetPassword consumes a reset token and replaces the password hash.
// Failures are reported as a ValidationError listing the reasons.
func (s *AuthService) ResetPassword(ctx context.Context, email, token, newPassword string) error {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// A token issued for another user must not reveal anything.
			return domain.NewValidationError("Invalid token.")
		}
		return err
	}

	reset, err := s.resetRepo.GetLatestByUserID(ctx, user.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.NewValidationError("Invalid token.")
		}
		return err
	}

	if reset.TokenHash != password.HashToken(token) {
		return domain.NewValidationError("Invalid token.")
	}
	if reset.IsUsed() {
		return domain.NewValidationError("Token has already been used.")
	}
	if reset.IsExpired() {
		return domain.NewValidationError("Token has expired.")
	}
	if !password.Validate(newPassword) {
		return domain.NewValidationError(fmt.Sprintf("Password must be at least %d characters.", password.MinLength))
	}

	hashedPassword, err := password.Hash(newPassword)
	if err != nil {
		return err
	}

	user.Password = hashedPassword
	user.FailedLogins = 0
	user.LockedUntil = nil
	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}

	if err := s.resetRepo.MarkUsed(ctx, reset.ID); err != nil {
		return err
	}

	log.Printf("Password reset completed for %s", user.Username)

	return nil
}

// ValidateToken validates an access token
func (s *AuthService) ValidateToken(token string) (*jwt.Claims, error) {
	return jwt.Validate(token, s.cfg.JWT.Secret, s.cfg.JWT.Issuer, s.cfg.JWT.Audience)
}

// GetUserByID gets a user by ID
func (s *AuthService) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// findByUsernameOrEmail looks up by username first, then by email
func (s *AuthService) findByUsernameOrEmail(ctx context.Context, usernameOrEmail string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, usernameOrEmail)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	return s.userRepo.GetByEmail(ctx, usernameOrEmail)
}

// recordFailedLogin bumps the failure counter and opens the lockout
// window once the threshold is reached.
func (s *AuthService) recordFailedLogin(ctx context.Context, user *models.User, now time.Time) error {
	user.FailedLogins++
	if user.FailedLogins >= s.cfg.Auth.LockoutThreshold {
		lockedUntil := now.Add(s.cfg.Auth.LockoutDuration)
		user.LockedUntil = &lockedUntil
		user.FailedLogins = 0
		log.Printf("Account locked until %s: %s", lockedUntil.Format(time.RFC3339), user.Username)
	}
	return s.userRepo.Update(ctx, user)
}
