package stores

import (
	"context"

	"github.com/reportsink/reportsink/models"
	"gorm.io/gorm"
)

type GormReportStore struct {
	db *gorm.DB
}

func NewReportStore(db *gorm.DB) *GormReportStore {
	return &GormReportStore{db: db}
}

func (s *GormReportStore) Create(ctx context.Context, report *models.Report) error {
	return s.db.WithContext(ctx).Create(report).Error
}

func (s *GormReportStore) Find(ctx context.Context, q ReportQuery) ([]models.Report, error) {
	reports := []models.Report{}

	query := s.apply(s.db.WithContext(ctx), q).Order("created_at DESC")

	if q.Offset > 0 {
		query = query.Offset(q.Offset)
	}

	if q.Limit > 0 {
		query = query.Limit(q.Limit)
	}

	if err := query.Find(&reports).Error; err != nil {
		return nil, err
	}

	return reports, nil
}

func (s *GormReportStore) Count(ctx context.Context, q ReportQuery) (int64, error) {
	var count int64

	if err := s.apply(s.db.WithContext(ctx), q).Model(&models.Report{}).Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}

func (s *GormReportStore) apply(query *gorm.DB, q ReportQuery) *gorm.DB {
	if q.EndpointID != nil {
		query = query.Where("endpoint_id = ?", *q.EndpointID)
	}

	if q.Type != nil {
		query = query.Where("type = ?", *q.Type)
	}

	if q.ExcludeType != nil {
		query = query.Where("type <> ?", *q.ExcludeType)
	}

	if q.Since != nil {
		query = query.Where("created_at >= ?", *q.Since)
	}

	return query
}
