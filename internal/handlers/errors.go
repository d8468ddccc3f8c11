package handlers

import (
	"errors"

	"carvio/internal/repositories"
	"carvio/internal/services/access"
	"carvio/internal/services/company"
	"carvio/internal/services/verification"
	"carvio/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

// serviceError maps domain errors onto HTTP responses.
func serviceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, access.ErrUnauthorized):
		return response.Forbidden(c, "Admin privileges required")
	case errors.Is(err, repositories.ErrCompanyNotFound),
		errors.Is(err, repositories.ErrDocumentNotFound),
		errors.Is(err, repositories.ErrListingNotFound):
		return response.NotFound(c, err.Error())
	case errors.Is(err, company.ErrInvalidTransition):
		return response.Conflict(c, err.Error())
	case errors.Is(err, repositories.ErrVersionConflict):
		return response.Conflict(c, "Concurrent update, please retry")
	case errors.Is(err, company.ErrMissingReason),
		errors.Is(err, verification.ErrMissingReason),
		errors.Is(err, verification.ErrInvalidStatus),
		errors.Is(err, verification.ErrInvalidDocumentType):
		return response.BadRequest(c, err.Error())
	default:
		return response.ServerError(c, "Operation failed")
	}
}
