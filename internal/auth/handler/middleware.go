package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/bdb-123/module13-is601/internal/auth/service"
	apperrors "github.com/bdb-123/module13-is601/internal/errors"
)

const accountIDKey = "accountID"

// RequireAuth validates the bearer access token and stores its subject in
// the request locals. Refresh tokens are rejected here.
func (h *AuthHandler) RequireAuth(c *fiber.Ctx) error {
	header := c.Get(fiber.HeaderAuthorization)
	tokenString, found := strings.CutPrefix(header, "Bearer ")
	if !found || tokenString == "" {
		return writeError(c, apperrors.ErrInvalidToken)
	}

	claims, err := h.tokens.Verify(tokenString)
	if err != nil {
		return writeError(c, err)
	}
	if claims.Kind != service.TokenKindAccess {
		return writeError(c, apperrors.ErrInvalidToken)
	}

	c.Locals(accountIDKey, claims.Subject)
	return c.Next()
}
