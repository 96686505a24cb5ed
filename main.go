package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"
	"github.com/reportsink/reportsink/app"
	"github.com/reportsink/reportsink/controllers"
	"github.com/reportsink/reportsink/helpers"
	"github.com/reportsink/reportsink/routes"
	"github.com/reportsink/reportsink/stores"
	"github.com/reportsink/reportsink/utils"
)

func main() {
	// Set default timezone
	time.Local = utils.DefaultLocation()

	// Load environment variables
	if err := godotenv.Load(); err != nil {
		slog.Warn(fmt.Sprintf("Could not load .env file: %v", err))
	}

	// Error capture
	app.SetupSentry()
	defer sentry.Flush(2 * time.Second)

	// Database
	db, err := app.OpenDB()
	if err != nil {
		slog.Error(fmt.Sprintf("Could not open database: %v", err))
		os.Exit(1)
	}

	// Session backing store
	cache, err := app.NewCache()
	if err != nil {
		slog.Error(fmt.Sprintf("Could not open cache: %v", err))
		os.Exit(1)
	}

	sessions := app.NewSessionStore(cache)

	// Stores and services
	endpointStore := stores.NewEndpointStore(db)
	reportStore := stores.NewReportStore(db)
	userStore := stores.NewUserStore(db)

	registry := helpers.NewRegistry(endpointStore)
	normalizer := helpers.NewNormalizer(endpointStore, reportStore)
	queries := helpers.NewQueryService(endpointStore, reportStore)

	// Application initialization
	app.SetupDefaultData(context.Background(), registry, userStore)

	// Setup app
	server := fiber.New(fiber.Config{
		StrictRouting: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			slog.Error(fmt.Sprintf("Application error handler: %v", err))

			code := fiber.StatusInternalServerError
			msg := "The server has encountered an error that cannot be handled."

			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
				msg = e.Message
			}

			return c.Status(code).JSON(&fiber.Map{"error": msg})
		},
		AppName:     os.Getenv("APP_NAME"),
		JSONEncoder: json.Marshal,
		JSONDecoder: json.Unmarshal,
	})

	server.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))

	// Setup routes
	routes.SetupRoutes(
		server,
		sessions,
		controllers.NewReports(normalizer, registry, queries),
		controllers.NewEndpoints(registry),
		controllers.NewAuth(userStore, sessions),
	)

	// Setup server
	if err := server.Listen(os.Getenv("APP_ADDRESS")); err != nil {
		slog.Error(fmt.Sprintf("Could not setup server: %v", err))
		os.Exit(1)
	}
}
