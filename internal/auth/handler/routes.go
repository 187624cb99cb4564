package handler

import (
	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(app *fiber.App, h *AuthHandler) {
	v1 := app.Group("/api/v1")
	v1.Post("/register", h.Register)
	v1.Post("/login", h.Login)

	// Protected endpoints
	v1.Get("/me", h.RequireAuth, h.Me)
}
