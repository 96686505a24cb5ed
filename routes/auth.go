package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/reportsink/reportsink/controllers"
	"github.com/reportsink/reportsink/middlewares"
)

func RegisterAuthRoutes(g fiber.Router, sessions *session.Store, h *controllers.Auth) {
	g.Use(middlewares.AuthLimiter())

	g.Post("/login", h.Login).Name("api.auth.login")
	g.Post("/logout", h.Logout).Name("api.auth.logout")
	g.Get("/me", middlewares.SessionProtected(sessions), h.Me).Name("api.auth.me")
}
