package routes

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/encryptcookie"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/reportsink/reportsink/controllers"
	"github.com/reportsink/reportsink/utils"
)

func SetupRoutes(app *fiber.App, sessions *session.Store, reports *controllers.Reports, endpoints *controllers.Endpoints, auth *controllers.Auth) {
	isDebug := utils.IsDebug()

	recoverConfig := recover.Config{
		EnableStackTrace: isDebug,
	}

	corsConfig := cors.Config{
		AllowOrigins:     os.Getenv("APP_DOMAIN"),
		AllowCredentials: true,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With, X-CSRF-Token",
	}

	encryptedCookieConfig := encryptcookie.Config{
		Key: os.Getenv("COOKIE_SECRET_KEY"),
	}

	csrfConfig := csrf.Config{
		KeyLookup:         "cookie:csrf_",
		CookieName:        "csrf_",
		CookieDomain:      utils.CookieDomain(),
		CookiePath:        "/",
		CookieSecure:      !isDebug,
		CookieHTTPOnly:    true,
		CookieSessionOnly: true,
		Session:           sessions,
		SessionKey:        "csrf.token",
		CookieSameSite:    "Strict",
		// Browsers deliver reports without CSRF tokens; ingestion is gated
		// by the endpoint token instead.
		Next: func(c *fiber.Ctx) bool {
			return isDebug || isIngestionPath(c.Path())
		},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			slog.Error(fmt.Sprintf("CSRF error: %v", err))
			return c.Status(fiber.StatusForbidden).JSON(&fiber.Map{"error": "You do not have permission to access this resource."})
		},
	}

	loggerConfig := logger.Config{
		Format:     "[${time}] ${locals:requestid} ${status} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05 -07:00",
		TimeZone:   utils.DefaultTimeZone(),
	}

	if isDebug {
		corsConfig.AllowOrigins = "*"
		corsConfig.AllowCredentials = false
	}

	app.Use(recover.New(recoverConfig))
	app.Use(cors.New(corsConfig))
	app.Use(encryptcookie.New(encryptedCookieConfig))
	app.Use(csrf.New(csrfConfig))
	app.Use(requestid.New())
	app.Use(logger.New(loggerConfig))
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))

	api := app.Group("/api")

	// Report ingestion and reads
	RegisterReportRoutes(api, sessions, reports)

	// Endpoint registry management
	RegisterEndpointRoutes(api, sessions, endpoints)

	// Auth
	RegisterAuthRoutes(api.Group("/auth"), sessions, auth)

	// Health check
	RegisterHealthCheckRoutes(api)

	// Error handlers
	// Must be the last one!
	RegisterErrorHandlers(app)
}

func isIngestionPath(path string) bool {
	return strings.HasPrefix(path, "/api/report") || strings.HasPrefix(path, "/api/v1/report")
}
