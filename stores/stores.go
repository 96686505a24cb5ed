// Package stores defines the persistence contract for endpoints, reports and
// users, together with the GORM-backed implementations used in production.
// Every consumer depends on the interfaces so tests can swap in doubles.
package stores

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/reportsink/reportsink/models"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

// EndpointWithCount pairs an endpoint with a live aggregate of the reports
// referencing it.
type EndpointWithCount struct {
	models.Endpoint
	ReportCount int64 `json:"report_count"`
}

// DeletionResult describes a completed cascade delete, for the confirmation
// message shown to the caller.
type DeletionResult struct {
	Label          string `json:"label"`
	ReportsRemoved int64  `json:"reports_removed"`
}

type EndpointStore interface {
	Create(ctx context.Context, endpoint *models.Endpoint) error
	FindByToken(ctx context.Context, token string) (*models.Endpoint, error)
	FindByLabel(ctx context.Context, label string) (*models.Endpoint, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Endpoint, error)
	// List returns all endpoints ordered by label ascending.
	List(ctx context.Context) ([]EndpointWithCount, error)
	// DeleteCascade removes the endpoint and every report referencing it as
	// a single unit: either both complete or neither does.
	DeleteCascade(ctx context.Context, id uuid.UUID) (*DeletionResult, error)
}

// ReportQuery is the composable filter set understood by ReportStore. Nil
// fields impose no restriction. Offset and Limit apply to Find only; Count
// always covers the full matching set.
type ReportQuery struct {
	EndpointID  *uuid.UUID
	Type        *string
	ExcludeType *string
	Since       *time.Time
	Offset      int
	Limit       int
}

type ReportStore interface {
	Create(ctx context.Context, report *models.Report) error
	// Find returns matching reports sorted descending by creation time.
	// The ordering is an invariant of the store, not a caller option.
	Find(ctx context.Context, q ReportQuery) ([]models.Report, error)
	Count(ctx context.Context, q ReportQuery) (int64, error)
}

type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}
