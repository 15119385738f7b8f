// Package web provides HTTP handlers for the workflow validation API.
package web

import (
	"maps"
	"net/http"
	"time"

	"github.com/dukex/flowlint/pkg/models"
	"github.com/dukex/flowlint/pkg/schema"
	"github.com/dukex/flowlint/pkg/services"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

type APIHandlers struct {
	validationService *services.Validation
	migrationService  *services.Migration
	validator         *validator.Validate
	registry          *schema.Registry
}

func NewAPIHandlers(
	validationService *services.Validation,
	migrationService *services.Migration,
	validator *validator.Validate,
	registry *schema.Registry,
) *APIHandlers {
	if validator == nil {
		validator = models.NewValidator()
	}

	return &APIHandlers{
		validationService: validationService,
		migrationService:  migrationService,
		validator:         validator,
		registry:          registry,
	}
}

// Register mounts the API routes on app.
func (h *APIHandlers) Register(app *fiber.App) {
	app.Post("/validate", h.Validate)
	app.Post("/connections/validate", h.ValidateConnection)
	app.Post("/field-values/validate", h.ValidateFieldValue)

	m := app.Group("/migrations")
	m.Post("/suggest", h.Suggest)
	m.Post("/plan", h.Plan)
	m.Post("/apply", h.Apply)

	app.Get("/health", h.HealthCheck)
}

func (h *APIHandlers) HealthCheck(c fiber.Ctx) error {
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"status":  "healthy",
		"message": "flowlint is healthy",
		"checkers": fiber.Map{
			"registry": fiber.Map{
				"object_types": h.registry.Len(),
			},
		},
		"timestamp": time.Now().UTC(),
	})
}

func (h *APIHandlers) Validate(c fiber.Ctx) error {
	var req ValidateRequest
	if err := h.bind(c, &req); err != nil {
		return badRequest(c, err.Error())
	}

	result, err := h.validationService.Validate(c.Context(), req.toService())
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(result)
}

func (h *APIHandlers) ValidateConnection(c fiber.Ctx) error {
	var req ConnectionRequest
	if err := h.bind(c, &req); err != nil {
		return badRequest(c, err.Error())
	}

	result, err := h.validationService.CheckConnection(c.Context(), req.toService())
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(result)
}

func (h *APIHandlers) ValidateFieldValue(c fiber.Ctx) error {
	var req FieldValueRequest
	if err := h.bind(c, &req); err != nil {
		return badRequest(c, err.Error())
	}

	result, err := h.validationService.ValidateFieldValue(c.Context(), req.toService())
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(result)
}

func (h *APIHandlers) Suggest(c fiber.Ctx) error {
	var req SuggestRequest
	if err := h.bind(c, &req); err != nil {
		return badRequest(c, err.Error())
	}

	suggestions, err := h.migrationService.Suggest(c.Context(), req.FieldPath)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(SuggestResponse{FieldPath: req.FieldPath, Suggestions: suggestions})
}

func (h *APIHandlers) Plan(c fiber.Ctx) error {
	var req PlanRequest
	if err := h.bind(c, &req); err != nil {
		return badRequest(c, err.Error())
	}

	plan, err := h.migrationService.Plan(c.Context(), req.Graph)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(plan)
}

func (h *APIHandlers) Apply(c fiber.Ctx) error {
	var req ApplyRequest
	if err := h.bind(c, &req); err != nil {
		return badRequest(c, err.Error())
	}

	mapping := make(map[string]string, len(req.Mapping))

	if req.Auto {
		plan, err := h.migrationService.Plan(c.Context(), req.Graph)
		if err != nil {
			return handleServiceError(c, err)
		}

		maps.Copy(mapping, plan.Mapping)
	}

	maps.Copy(mapping, req.Mapping)

	result, err := h.migrationService.Apply(c.Context(), req.Graph, mapping)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(ApplyResponse{Result: result, Mapping: mapping})
}

// bind decodes the JSON body into req and validates it.
func (h *APIHandlers) bind(c fiber.Ctx, req any) error {
	if err := c.Bind().JSON(req); err != nil {
		return errInvalidJSON
	}

	return h.validator.Struct(req)
}
