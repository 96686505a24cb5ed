package helpers

import (
	"context"

	"github.com/google/uuid"
	"github.com/reportsink/reportsink/models"
	"github.com/reportsink/reportsink/stores"
)

// fakeEndpointStore is an in-memory stores.EndpointStore.
type fakeEndpointStore struct {
	endpoints    []*models.Endpoint
	reportCounts map[uuid.UUID]int64
	createErr    error
}

func newFakeEndpointStore(endpoints ...*models.Endpoint) *fakeEndpointStore {
	s := &fakeEndpointStore{reportCounts: map[uuid.UUID]int64{}}

	for _, endpoint := range endpoints {
		if endpoint.ID == uuid.Nil {
			endpoint.ID = uuid.New()
		}

		s.endpoints = append(s.endpoints, endpoint)
	}

	return s
}

func (s *fakeEndpointStore) Create(_ context.Context, endpoint *models.Endpoint) error {
	if s.createErr != nil {
		return s.createErr
	}

	for _, existing := range s.endpoints {
		if existing.Label == endpoint.Label || existing.Token == endpoint.Token {
			return stores.ErrDuplicate
		}
	}

	if endpoint.ID == uuid.Nil {
		endpoint.ID = uuid.New()
	}

	s.endpoints = append(s.endpoints, endpoint)

	return nil
}

func (s *fakeEndpointStore) FindByToken(_ context.Context, token string) (*models.Endpoint, error) {
	for _, endpoint := range s.endpoints {
		if endpoint.Token == token {
			return endpoint, nil
		}
	}

	return nil, stores.ErrNotFound
}

func (s *fakeEndpointStore) FindByLabel(_ context.Context, label string) (*models.Endpoint, error) {
	for _, endpoint := range s.endpoints {
		if endpoint.Label == label {
			return endpoint, nil
		}
	}

	return nil, stores.ErrNotFound
}

func (s *fakeEndpointStore) FindByID(_ context.Context, id uuid.UUID) (*models.Endpoint, error) {
	for _, endpoint := range s.endpoints {
		if endpoint.ID == id {
			return endpoint, nil
		}
	}

	return nil, stores.ErrNotFound
}

func (s *fakeEndpointStore) List(_ context.Context) ([]stores.EndpointWithCount, error) {
	rows := []stores.EndpointWithCount{}

	for _, endpoint := range s.endpoints {
		rows = append(rows, stores.EndpointWithCount{
			Endpoint:    *endpoint,
			ReportCount: s.reportCounts[endpoint.ID],
		})
	}

	return rows, nil
}

func (s *fakeEndpointStore) DeleteCascade(_ context.Context, id uuid.UUID) (*stores.DeletionResult, error) {
	for i, endpoint := range s.endpoints {
		if endpoint.ID != id {
			continue
		}

		s.endpoints = append(s.endpoints[:i], s.endpoints[i+1:]...)

		return &stores.DeletionResult{
			Label:          endpoint.Label,
			ReportsRemoved: s.reportCounts[id],
		}, nil
	}

	return nil, stores.ErrNotFound
}

// fakeReportStore records created reports and the queries it receives.
type fakeReportStore struct {
	created      []*models.Report
	createErr    error
	findQueries  []stores.ReportQuery
	countQueries []stores.ReportQuery
	findFn       func(q stores.ReportQuery) []models.Report
	countFn      func(q stores.ReportQuery) int64
}

func (s *fakeReportStore) Create(_ context.Context, report *models.Report) error {
	if s.createErr != nil {
		return s.createErr
	}

	s.created = append(s.created, report)

	return nil
}

func (s *fakeReportStore) Find(_ context.Context, q stores.ReportQuery) ([]models.Report, error) {
	s.findQueries = append(s.findQueries, q)

	if s.findFn != nil {
		return s.findFn(q), nil
	}

	return []models.Report{}, nil
}

func (s *fakeReportStore) Count(_ context.Context, q stores.ReportQuery) (int64, error) {
	s.countQueries = append(s.countQueries, q)

	if s.countFn != nil {
		return s.countFn(q), nil
	}

	return 0, nil
}
