package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/givehub/marketplace-api/internal/api/dto"
	"github.com/givehub/marketplace-api/internal/auth"
	"github.com/givehub/marketplace-api/internal/service"
	apperrors "github.com/givehub/marketplace-api/pkg/util/errorutil"
)

// AuthHandler exposes registration and login endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}

	account, token, exp, err := h.auth.Register(c.Context(), req.Email, req.Username, req.Password)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(dto.AuthResponse{
		Message:   "account created",
		User:      account.Public(),
		Token:     token,
		ExpiresAt: exp,
	})
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}

	account, token, exp, err := h.auth.Login(c.Context(), req.ResolveIdentifier(), req.Password)
	if err != nil {
		return err
	}

	return c.JSON(dto.AuthResponse{
		Message:   "login successful",
		User:      account.Public(),
		Token:     token,
		ExpiresAt: exp,
	})
}

// Me handles GET /auth/me for an authenticated caller. It reads the live
// account so a stale token still yields current public fields.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("not authenticated")
	}

	account, err := h.auth.GetAccount(c.Context(), claims.SubjectID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"user": account.Public()})
}
