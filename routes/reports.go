package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/reportsink/reportsink/controllers"
	"github.com/reportsink/reportsink/middlewares"
)

func RegisterReportRoutes(g fiber.Router, sessions *session.Store, h *controllers.Reports) {
	// Public: gated by the endpoint token only
	g.Post("/report", h.PostLegacyReportDefault).Name("api.reports.legacy.default")
	g.Post("/report/:token", h.PostLegacyReport).Name("api.reports.legacy")
	g.Post("/v1/report/:token", h.PostReport).Name("api.reports.ingest")

	// Private
	g.Get("/reports", middlewares.SessionProtected(sessions), h.GetReports).Name("api.reports.index")
}
