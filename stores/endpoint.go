package stores

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/reportsink/reportsink/models"
	"gorm.io/gorm"
)

type GormEndpointStore struct {
	db *gorm.DB
}

func NewEndpointStore(db *gorm.DB) *GormEndpointStore {
	return &GormEndpointStore{db: db}
}

func (s *GormEndpointStore) Create(ctx context.Context, endpoint *models.Endpoint) error {
	if err := s.db.WithContext(ctx).Create(endpoint).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicate
		}

		return err
	}

	return nil
}

func (s *GormEndpointStore) FindByToken(ctx context.Context, token string) (*models.Endpoint, error) {
	return s.first(ctx, "token = ?", token)
}

func (s *GormEndpointStore) FindByLabel(ctx context.Context, label string) (*models.Endpoint, error) {
	return s.first(ctx, "label = ?", label)
}

func (s *GormEndpointStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Endpoint, error) {
	return s.first(ctx, "id = ?", id)
}

func (s *GormEndpointStore) first(ctx context.Context, query string, arg interface{}) (*models.Endpoint, error) {
	endpoint := &models.Endpoint{}
	if err := s.db.WithContext(ctx).Where(query, arg).First(endpoint).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}

		return nil, err
	}

	return endpoint, nil
}

func (s *GormEndpointStore) List(ctx context.Context) ([]EndpointWithCount, error) {
	rows := []EndpointWithCount{}

	err := s.db.WithContext(ctx).Model(&models.Endpoint{}).
		Select("endpoints.*, count(reports.id) AS report_count").
		Joins("LEFT JOIN reports ON reports.endpoint_id = endpoints.id").
		Group("endpoints.id").
		Order("endpoints.label ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	return rows, nil
}

func (s *GormEndpointStore) DeleteCascade(ctx context.Context, id uuid.UUID) (*DeletionResult, error) {
	result := &DeletionResult{}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		endpoint := &models.Endpoint{}
		if err := tx.Where("id = ?", id).First(endpoint).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}

			return err
		}

		reports := tx.Where("endpoint_id = ?", id).Delete(&models.Report{})
		if reports.Error != nil {
			return reports.Error
		}

		if err := tx.Where("id = ?", id).Delete(&models.Endpoint{}).Error; err != nil {
			return err
		}

		result.Label = endpoint.Label
		result.ReportsRemoved = reports.RowsAffected

		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}
