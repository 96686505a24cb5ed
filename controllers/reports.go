package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/reportsink/reportsink/helpers"
	"github.com/reportsink/reportsink/utils"
)

type Reports struct {
	normalizer *helpers.Normalizer
	registry   *helpers.Registry
	queries    *helpers.QueryService
}

func NewReports(normalizer *helpers.Normalizer, registry *helpers.Registry, queries *helpers.QueryService) *Reports {
	return &Reports{normalizer: normalizer, registry: registry, queries: queries}
}

// PostLegacyReport ingests a csp-report wrapped payload for the endpoint
// named by the token path parameter.
func (h *Reports) PostLegacyReport(c *fiber.Ctx) error {
	result, err := h.normalizer.IngestLegacy(c.UserContext(), c.Params("token"), c.Body(), c.Get(fiber.HeaderUserAgent))
	if err != nil {
		return renderError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(result)
}

// PostLegacyReportDefault is the deprecated no-token route. It resolves the
// pre-registered default endpoint and behaves like PostLegacyReport.
func (h *Reports) PostLegacyReportDefault(c *fiber.Ctx) error {
	endpoint, err := h.registry.FindByLabel(c.UserContext(), utils.DefaultEndpointLabel())
	if err != nil {
		return renderError(c, err)
	}

	result, err := h.normalizer.IngestLegacy(c.UserContext(), endpoint.Token, c.Body(), c.Get(fiber.HeaderUserAgent))
	if err != nil {
		return renderError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(result)
}

// PostReport is the unified ingestion route accepting all three wire
// formats.
func (h *Reports) PostReport(c *fiber.Ctx) error {
	result, err := h.normalizer.Ingest(c.UserContext(), c.Params("token"), c.Body(), c.Get(fiber.HeaderUserAgent))
	if err != nil {
		return renderError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(result)
}

func (h *Reports) GetReports(c *fiber.Ctx) error {
	filters := helpers.QueryFilters{
		EndpointToken: c.Query("endpoint"),
		ReportType:    helpers.ReportTypeFilter(c.Query("type", string(helpers.ReportFilterAll))),
		TimeRange:     helpers.TimeRange(c.Query("timeRange")),
		Page:          utils.GetPage(c.Query("page")),
		Limit:         utils.GetPaginationSize(c.Query("limit")),
	}

	result, err := h.queries.QueryReports(c.UserContext(), filters)
	if err != nil {
		return renderError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(result)
}
