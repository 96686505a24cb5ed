package helpers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/reportsink/reportsink/models"
	"github.com/reportsink/reportsink/stores"
	"github.com/reportsink/reportsink/utils"
)

const (
	maxLabelLength int = 100
	tokenLength    int = 40
)

// Registry manages the label-to-token mapping that gates report ingestion.
// Tokens are generated server-side and never accepted from callers.
type Registry struct {
	endpoints stores.EndpointStore
}

func NewRegistry(endpoints stores.EndpointStore) *Registry {
	return &Registry{endpoints: endpoints}
}

func (r *Registry) CreateEndpoint(ctx context.Context, label string) (*models.Endpoint, error) {
	label = strings.TrimSpace(label)

	if len(label) < 1 {
		return nil, NewValidationError("The endpoint label cannot be empty.")
	}

	if len(label) > maxLabelLength {
		return nil, NewValidationError(fmt.Sprintf("The endpoint label cannot exceed %d characters.", maxLabelLength))
	}

	token, err := utils.RandomString(tokenLength)
	if err != nil {
		return nil, fmt.Errorf("could not generate endpoint token: %w", err)
	}

	endpoint := &models.Endpoint{Label: label, Token: token}

	if err := r.endpoints.Create(ctx, endpoint); err != nil {
		if errors.Is(err, stores.ErrDuplicate) {
			return nil, NewConflictError(fmt.Sprintf("An endpoint labeled '%s' already exists.", label))
		}

		return nil, err
	}

	return endpoint, nil
}

func (r *Registry) FindByToken(ctx context.Context, token string) (*models.Endpoint, error) {
	endpoint, err := r.endpoints.FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, stores.ErrNotFound) {
			return nil, ErrEndpointNotFound
		}

		return nil, err
	}

	return endpoint, nil
}

func (r *Registry) FindByLabel(ctx context.Context, label string) (*models.Endpoint, error) {
	endpoint, err := r.endpoints.FindByLabel(ctx, label)
	if err != nil {
		if errors.Is(err, stores.ErrNotFound) {
			return nil, ErrEndpointNotFound
		}

		return nil, err
	}

	return endpoint, nil
}

func (r *Registry) ListEndpoints(ctx context.Context) ([]stores.EndpointWithCount, error) {
	return r.endpoints.List(ctx)
}

// DeleteEndpoint removes the endpoint and all of its reports in one unit and
// reports what was removed.
func (r *Registry) DeleteEndpoint(ctx context.Context, id uuid.UUID) (*stores.DeletionResult, error) {
	result, err := r.endpoints.DeleteCascade(ctx, id)
	if err != nil {
		if errors.Is(err, stores.ErrNotFound) {
			return nil, ErrEndpointNotFound
		}

		return nil, err
	}

	return result, nil
}
