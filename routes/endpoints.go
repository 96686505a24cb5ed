package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/reportsink/reportsink/controllers"
	"github.com/reportsink/reportsink/middlewares"
)

func RegisterEndpointRoutes(g fiber.Router, sessions *session.Store, h *controllers.Endpoints) {
	protected := middlewares.SessionProtected(sessions)

	g.Get("/endpoints", protected, h.GetEndpoints).Name("api.endpoints.index")
	g.Post("/endpoints", protected, h.PostEndpoint).Name("api.endpoints.add")
	g.Delete("/endpoints", protected, h.DeleteEndpoint).Name("api.endpoints.delete")
}
