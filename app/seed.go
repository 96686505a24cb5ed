package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/reportsink/reportsink/helpers"
	"github.com/reportsink/reportsink/models"
	"github.com/reportsink/reportsink/stores"
	"github.com/reportsink/reportsink/utils"
	"gopkg.in/yaml.v3"
)

type seedEndpoint struct {
	Label string `yaml:"label"`
}

type seedAdmin struct {
	Email string `yaml:"email"`
}

type seedConfig struct {
	Endpoints []seedEndpoint `yaml:"endpoints"`
	Admin     seedAdmin      `yaml:"admin"`
}

func loadSeedConfig(path string) (*seedConfig, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, err
	}

	config := &seedConfig{}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, err
	}

	return config, nil
}

// SetupDefaultData pre-registers the endpoints and the admin account the
// application needs before it can do anything useful: the default endpoint
// backing the deprecated no-token route always exists, and the dashboard
// has at least one account to sign in with.
func SetupDefaultData(ctx context.Context, registry *helpers.Registry, users stores.UserStore) {
	config, err := loadSeedConfig(utils.SeedFilePath())
	if err != nil {
		slog.Warn(fmt.Sprintf("Could not load seed file: %v", err))
		config = &seedConfig{}
	}

	labels := []string{utils.DefaultEndpointLabel()}

	for _, endpoint := range config.Endpoints {
		labels = append(labels, endpoint.Label)
	}

	setupEndpoints(ctx, registry, labels)
	setupAdmin(ctx, users, config.Admin)
}

func setupEndpoints(ctx context.Context, registry *helpers.Registry, labels []string) {
	for _, label := range labels {
		endpoint, err := registry.CreateEndpoint(ctx, label)
		if err != nil {
			var conflictErr *helpers.ConflictError
			if errors.As(err, &conflictErr) {
				continue
			}

			slog.Error(fmt.Sprintf("Could not create '%s' endpoint: %v", label, err))
			continue
		}

		slog.Info(fmt.Sprintf("Registered endpoint '%s' with token '%s'.", endpoint.Label, endpoint.Token))
	}
}

func setupAdmin(ctx context.Context, users stores.UserStore, admin seedAdmin) {
	email := strings.TrimSpace(admin.Email)

	if len(email) < 1 {
		email = strings.TrimSpace(os.Getenv("ADMIN_EMAIL"))
	}

	if !utils.IsValidEmail(email) {
		slog.Warn("No valid admin email configured. Skipping admin account setup.")
		return
	}

	if _, err := users.FindByEmail(ctx, email); err == nil {
		return
	} else if !errors.Is(err, stores.ErrNotFound) {
		slog.Error(fmt.Sprintf("Could not check admin account: %v", err))
		return
	}

	password := os.Getenv("ADMIN_PASSWORD")

	if len(password) > 0 {
		if ok, err := utils.ValidatePasswordStrength(password, []string{email}); !ok {
			slog.Error(fmt.Sprintf("Refusing to create admin account: %v", err))
			return
		}
	} else {
		generated, err := utils.RandomPassword(16)
		if err != nil {
			slog.Error(fmt.Sprintf("Could not generate admin password: %v", err))
			return
		}

		password = generated

		// Logged once on first boot only; rotate it from the dashboard.
		slog.Warn(fmt.Sprintf("Generated admin password for '%s': %s", email, password))
	}

	active := true
	user := &models.User{
		Email:    email,
		Password: utils.HashPassword(password),
		Active:   &active,
	}

	if err := users.Create(ctx, user); err != nil {
		slog.Error(fmt.Sprintf("Could not create admin account: %v", err))
	}
}
