package helpers

import (
	"context"
	"errors"
	"time"

	"github.com/reportsink/reportsink/models"
	"github.com/reportsink/reportsink/stores"
	"github.com/reportsink/reportsink/utils"
)

// TimeRange is a named relative window translated to a minimum-timestamp
// filter at query time.
type TimeRange string

const (
	TimeRangeLast30m TimeRange = "last_30m"
	TimeRangeLast1h  TimeRange = "last_1h"
	TimeRangeLast24h TimeRange = "last_24h"
	TimeRangeLast7d  TimeRange = "last_7d"
	TimeRangeLast30d TimeRange = "last_30d"
	TimeRangeAll     TimeRange = "all"
)

var timeRangeWindows = map[TimeRange]time.Duration{
	TimeRangeLast30m: 30 * time.Minute,
	TimeRangeLast1h:  time.Hour,
	TimeRangeLast24h: 24 * time.Hour,
	TimeRangeLast7d:  7 * 24 * time.Hour,
	TimeRangeLast30d: 30 * 24 * time.Hour,
}

type ReportTypeFilter string

const (
	ReportFilterAll     ReportTypeFilter = "all"
	ReportFilterCSP     ReportTypeFilter = "csp"
	ReportFilterGeneric ReportTypeFilter = "generic"
)

// QueryFilters are all optional and composable. Zero values mean "no
// restriction" except TimeRange, which defaults to the last hour.
type QueryFilters struct {
	EndpointToken string
	ReportType    ReportTypeFilter
	TimeRange     TimeRange
	Page          int
	Limit         int
}

type QueryResult struct {
	Reports      []models.Report `json:"reports"`
	TotalCount   int64           `json:"total_count"`
	TotalPages   int             `json:"total_pages"`
	CurrentPage  int             `json:"current_page"`
	ItemsPerPage int             `json:"items_per_page"`
	CSPCount     int64           `json:"csp_count"`
	GenericCount int64           `json:"generic_count"`
}

// QueryService assembles filtered, paginated report listings together with
// full-set csp/generic counts.
type QueryService struct {
	endpoints stores.EndpointStore
	reports   stores.ReportStore
	now       func() time.Time
}

func NewQueryService(endpoints stores.EndpointStore, reports stores.ReportStore) *QueryService {
	return &QueryService{
		endpoints: endpoints,
		reports:   reports,
		now:       time.Now,
	}
}

func (s *QueryService) QueryReports(ctx context.Context, f QueryFilters) (*QueryResult, error) {
	page := f.Page
	if page < 1 {
		page = 1
	}

	limit := f.Limit
	if limit < 1 {
		limit = utils.GetPaginationSize("")
	}

	base := stores.ReportQuery{}

	if len(f.EndpointToken) > 0 {
		endpoint, err := s.endpoints.FindByToken(ctx, f.EndpointToken)
		if err != nil {
			// An unknown token matches nothing rather than failing the query.
			if errors.Is(err, stores.ErrNotFound) {
				return emptyResult(page, limit), nil
			}

			return nil, err
		}

		id := endpoint.ID
		base.EndpointID = &id
	}

	timeRange := f.TimeRange
	if len(timeRange) < 1 {
		timeRange = TimeRangeLast1h
	}

	if timeRange != TimeRangeAll {
		window, ok := timeRangeWindows[timeRange]
		if !ok {
			window = timeRangeWindows[TimeRangeLast1h]
		}

		since := s.now().Add(-window)
		base.Since = &since
	}

	cspType := models.ReportTypeCSPViolation

	filtered := base

	switch f.ReportType {
	case ReportFilterCSP:
		filtered.Type = &cspType
	case ReportFilterGeneric:
		filtered.ExcludeType = &cspType
	}

	total, err := s.reports.Count(ctx, filtered)
	if err != nil {
		return nil, err
	}

	filtered.Offset = (page - 1) * limit
	filtered.Limit = limit

	reports, err := s.reports.Find(ctx, filtered)
	if err != nil {
		return nil, err
	}

	// The csp/generic counts cover the full matching set under the same
	// endpoint and time filters, never just the current page.
	cspQuery := base
	cspQuery.Type = &cspType

	cspCount, err := s.reports.Count(ctx, cspQuery)
	if err != nil {
		return nil, err
	}

	genericQuery := base
	genericQuery.ExcludeType = &cspType

	genericCount, err := s.reports.Count(ctx, genericQuery)
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))

	return &QueryResult{
		Reports:      reports,
		TotalCount:   total,
		TotalPages:   totalPages,
		CurrentPage:  page,
		ItemsPerPage: limit,
		CSPCount:     cspCount,
		GenericCount: genericCount,
	}, nil
}

func emptyResult(page int, limit int) *QueryResult {
	return &QueryResult{
		Reports:      []models.Report{},
		CurrentPage:  page,
		ItemsPerPage: limit,
	}
}
