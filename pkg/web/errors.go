package web

import (
	"errors"

	"github.com/dukex/flowlint/pkg/services"
	"github.com/gofiber/fiber/v3"
	"github.com/moogar0880/problems"
)

var errInvalidJSON = errors.New("invalid JSON format")

func badRequest(c fiber.Ctx, detail string) error {
	problem := problems.NewStatusProblem(400).
		WithInstance(c.Path()).
		WithType("validation_error").
		WithDetail(detail)

	return c.Status(fiber.StatusBadRequest).JSON(problem)
}

func internalError(c fiber.Ctx, err error) error {
	problem := problems.NewStatusProblem(500).
		WithInstance(c.Path()).
		WithType("internal_error").
		WithError(err)

	return c.Status(fiber.StatusInternalServerError).JSON(problem)
}

// handleServiceError provides typed error handling for service layer errors.
func handleServiceError(c fiber.Ctx, err error) error {
	switch {
	case services.IsValidationError(err):
		return badRequest(c, err.Error())

	case services.IsNotFoundError(err):
		problemType := "not_found"

		switch {
		case errors.Is(err, services.ErrNodeNotFound):
			problemType = "node_not_found"
		case errors.Is(err, services.ErrObjectTypeNotFound):
			problemType = "object_type_not_found"
		case errors.Is(err, services.ErrFieldNotFound):
			problemType = "field_not_found"
		}

		problem := problems.NewStatusProblem(404).
			WithInstance(c.Path()).
			WithType(problemType).
			WithDetail(err.Error())

		return c.Status(fiber.StatusNotFound).JSON(problem)

	default:
		return internalError(c, err)
	}
}
