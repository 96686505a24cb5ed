package controllers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/reportsink/reportsink/helpers"
)

type Endpoints struct {
	registry *helpers.Registry
}

func NewEndpoints(registry *helpers.Registry) *Endpoints {
	return &Endpoints{registry: registry}
}

type endpointInput struct {
	Label string `json:"label"`
}

func (h *Endpoints) GetEndpoints(c *fiber.Ctx) error {
	endpoints, err := h.registry.ListEndpoints(c.UserContext())
	if err != nil {
		return renderError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(&fiber.Map{"endpoints": endpoints})
}

func (h *Endpoints) PostEndpoint(c *fiber.Ctx) error {
	input := &endpointInput{}
	if err := c.BodyParser(input); err != nil {
		return renderError(c, helpers.NewValidationError("The endpoint data is invalid."))
	}

	endpoint, err := h.registry.CreateEndpoint(c.UserContext(), input.Label)
	if err != nil {
		return renderError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(endpoint)
}

func (h *Endpoints) DeleteEndpoint(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Query("id"))
	if err != nil {
		return renderError(c, helpers.NewValidationError("The endpoint id is invalid."))
	}

	result, err := h.registry.DeleteEndpoint(c.UserContext(), id)
	if err != nil {
		return renderError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(&fiber.Map{
		"message":         fmt.Sprintf("Deleted endpoint '%s' and %d associated reports.", result.Label, result.ReportsRemoved),
		"label":           result.Label,
		"reports_removed": result.ReportsRemoved,
	})
}
