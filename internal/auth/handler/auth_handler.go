package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/bdb-123/module13-is601/internal/auth/dto"
	"github.com/bdb-123/module13-is601/internal/auth/service"
	apperrors "github.com/bdb-123/module13-is601/internal/errors"
)

type AuthHandler struct {
	authService *service.AuthService
	tokens      service.TokenIssuer
}

func NewAuthHandler(authService *service.AuthService, tokens service.TokenIssuer) *AuthHandler {
	return &AuthHandler{authService: authService, tokens: tokens}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var input dto.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid input",
		})
	}

	resp, err := h.authService.Register(c.Context(), input)
	if err != nil {
		return writeError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input dto.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid input",
		})
	}

	resp, err := h.authService.Login(c.Context(), input)
	if err != nil {
		return writeError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}

// Me returns the account behind the access token validated by RequireAuth.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	accountID, _ := c.Locals(accountIDKey).(string)

	out, err := h.authService.Profile(c.Context(), accountID)
	if err != nil {
		return writeError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(out)
}

// writeError maps the closed service error set onto HTTP statuses. The
// invalid-credentials body is identical for unknown identifiers and wrong
// passwords.
func writeError(c *fiber.Ctx, err error) error {
	var verr *apperrors.ValidationError
	if errors.As(err, &verr) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  "validation failed",
			"fields": verr.Fields,
		})
	}

	switch {
	case errors.Is(err, apperrors.ErrEmailAlreadyInUse),
		errors.Is(err, apperrors.ErrUsernameAlreadyInUse):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	case errors.Is(err, apperrors.ErrInvalidCredentials),
		errors.Is(err, apperrors.ErrExpiredToken),
		errors.Is(err, apperrors.ErrInvalidToken):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": err.Error(),
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "an unexpected error occurred",
		})
	}
}
