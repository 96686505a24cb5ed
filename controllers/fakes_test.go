package controllers_test

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/reportsink/reportsink/models"
	"github.com/reportsink/reportsink/stores"
)

// fakeEndpointStore is an in-memory stores.EndpointStore.
type fakeEndpointStore struct {
	endpoints    []*models.Endpoint
	reportCounts map[uuid.UUID]int64
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

// fakeReportStore keeps created reports and answers queries from them.
type fakeReportStore struct {
	created []*models.Report
}

func (s *fakeReportStore) Create(_ context.Context, report *models.Report) error {
	if report.CreatedAt.IsZero() {
		report.CreatedAt = time.Now()
	}

	s.created = append(s.created, report)

	return nil
}

func (s *fakeReportStore) matching(q stores.ReportQuery) []models.Report {
	rows := []models.Report{}

	for _, report := range s.created {
		if q.EndpointID != nil && report.EndpointID != *q.EndpointID {
			continue
		}

		if q.Type != nil && report.Type != *q.Type {
			continue
		}

		if q.ExcludeType != nil && report.Type == *q.ExcludeType {
			continue
		}

		if q.Since != nil && report.CreatedAt.Before(*q.Since) {
			continue
		}

		rows = append(rows, *report)
	}

	return rows
}

func (s *fakeReportStore) Find(_ context.Context, q stores.ReportQuery) ([]models.Report, error) {
	rows := s.matching(q)

	if q.Offset > 0 {
		if q.Offset >= len(rows) {
			return []models.Report{}, nil
		}

		rows = rows[q.Offset:]
	}

	if q.Limit > 0 && q.Limit < len(rows) {
		rows = rows[:q.Limit]
	}

	return rows, nil
}

func (s *fakeReportStore) Count(_ context.Context, q stores.ReportQuery) (int64, error) {
	return int64(len(s.matching(q))), nil
}

// fakeUserStore is an in-memory stores.UserStore.
type fakeUserStore struct {
	users []*models.User
}

func (s *fakeUserStore) Create(_ context.Context, user *models.User) error {
	for _, existing := range s.users {
		if existing.Email == user.Email {
			return stores.ErrDuplicate
		}
	}

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}

	s.users = append(s.users, user)

	return nil
}

func (s *fakeUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	for _, user := range s.users {
		if user.Email == email {
			return user, nil
		}
	}

	return nil, stores.ErrNotFound
}

func (s *fakeUserStore) FindByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	for _, user := range s.users {
		if user.ID == id {
			return user, nil
		}
	}

	return nil, stores.ErrNotFound
}
