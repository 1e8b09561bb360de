package handlers

import (
	"errors"
	"log"
	"strings"

	"companyhub/internal/core/domain"
	"companyhub/internal/core/services"
	"companyhub/internal/pkg/response"
	"companyhub/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// AssignRoleRequest represents role assignment request body
type AssignRoleRequest struct {
	Username string `json:"username" validate:"required"`
	Role     string `json:"role" validate:"required"`
}

// PasswordResetRequest represents password reset request body
type PasswordResetRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPasswordRequest represents password reset completion body
type ResetPasswordRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required"`
}

// Register handles user registration
// @Summary Register new user
// @Description Register a new user with the default User role
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body services.RegisterInput true "Registration data"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req services.RegisterInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)

	if msgs := validation.Check(&req); msgs != nil {
		return response.ValidationFailed(c, msgs)
	}

	user, err := h.authService.Register(c.Context(), &req)
	if err != nil {
		if ve, ok := domain.AsValidationError(err); ok {
			return response.ValidationFailed(c, ve.Messages)
		}
		switch {
		case errors.Is(err, domain.ErrEmailTaken):
			return response.ValidationFailed(c, []string{"Email is already taken."})
		case errors.Is(err, domain.ErrUsernameTaken):
			return response.ValidationFailed(c, []string{"Username is already taken."})
		default:
			return response.InternalServerError(c, "Failed to register user")
		}
	}

	return response.Success(c, "User registered successfully", fiber.Map{
		"user": user,
	})
}

// Login handles user login
// @Summary Login user
// @Description Authenticate by username or email and return a bearer token
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body services.LoginInput true "Login credentials"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req services.LoginInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	req.Username = strings.TrimSpace(req.Username)

	if msgs := validation.Check(&req); msgs != nil {
		return response.ValidationFailed(c, msgs)
	}

	result, err := h.authService.Login(c.Context(), &req)
	if err != nil {
		// A locked account answers exactly like bad credentials so the
		// response shape leaks nothing about account state.
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials), errors.Is(err, domain.ErrAccountLocked):
			return response.Unauthorized(c, "Invalid username or password")
		default:
			return response.InternalServerError(c, "Failed to login")
		}
	}

	return response.Success(c, "Login successful", fiber.Map{
		"token": result.Token,
		"user":  result.User,
	})
}

// AssignRole handles role assignment (Admin only, enforced by middleware)
// @Summary Assign role to user
// @Description Grant a role to a user. Idempotent for already-held roles.
// @Tags Auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body AssignRoleRequest true "Assignment data"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /auth/assign-role [post]
func (h *AuthHandler) AssignRole(c *fiber.Ctx) error {
	var req AssignRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if msgs := validation.Check(&req); msgs != nil {
		return response.ValidationFailed(c, msgs)
	}

	message, err := h.authService.AssignRole(c.Context(), strings.TrimSpace(req.Username), strings.TrimSpace(req.Role))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			return response.NotFound(c, "User not found")
		case errors.Is(err, domain.ErrRoleNotFound):
			return response.NotFound(c, "Role not found")
		default:
			return response.InternalServerError(c, "Failed to assign role")
		}
	}

	return response.Success(c, message, nil)
}

// RequestPasswordReset handles password reset requests
// @Summary Request a password reset
// @Description Always answers 200 so registered emails cannot be enumerated
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body PasswordResetRequest true "Email"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /auth/request-password-reset [post]
func (h *AuthHandler) RequestPasswordReset(c *fiber.Ctx) error {
	var req PasswordResetRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if msgs := validation.Check(&req); msgs != nil {
		return response.ValidationFailed(c, msgs)
	}

	// Unknown emails and dispatch failures get the same answer as a
	// successful request; the failure is only visible server-side.
	if err := h.authService.RequestPasswordReset(c.Context(), strings.TrimSpace(req.Email)); err != nil {
		if !errors.Is(err, domain.ErrUserNotFound) {
			log.Printf("Password reset request failed: %v", err)
		}
	}

	return response.Success(c, "If the email exists, a reset link has been sent.", nil)
}

// ResetPassword handles password reset completion
// @Summary Complete a password reset
// @Description Consume a single-use reset token and set a new password
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body ResetPasswordRequest true "Reset data"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /auth/reset-password [post]
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var req ResetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if msgs := validation.Check(&req); msgs != nil {
		return response.ValidationFailed(c, msgs)
	}

	err := h.authService.ResetPassword(c.Context(), strings.TrimSpace(req.Email), req.Token, req.NewPassword)
	if err != nil {
		if ve, ok := domain.AsValidationError(err); ok {
			return response.ValidationFailed(c, ve.Messages)
		}
		return response.InternalServerError(c, "Failed to reset password")
	}

	return response.Success(c, "Password reset successful.", nil)
}

// Me returns the current user info
// @Summary Get current user
// @Description Get the currently authenticated user's information
// @Tags Auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(string)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	user, err := h.authService.GetUserByID(c.Context(), userID)
	if err != nil {
		return response.NotFound(c, "User not found")
	}

	return response.Success(c, "User retrieved successfully", fiber.Map{
		"user": user.ToResponse(),
	})
}
