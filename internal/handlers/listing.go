package handlers

import (
	"carvio/internal/models"
	"carvio/internal/repositories"
	"carvio/internal/services/listing"
	"carvio/internal/utils/pagination"
	"carvio/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type ListingHandler struct {
	service   *listing.Service
	companies repositories.CompanyRepository
}

func NewListingHandler(service *listing.Service, companies repositories.CompanyRepository) *ListingHandler {
	return &ListingHandler{service: service, companies: companies}
}

// Browse returns active listings; ?verified_only=true restricts results to
// verified companies.
func (h *ListingHandler) Browse(c *fiber.Ctx) error {
	p := pagination.ParseFromRequest(c)
	verifiedOnly := c.Query("verified_only") == "true"

	listings, total, err := h.service.Browse(c.Context(), p.Offset, p.Limit, verifiedOnly)
	if err != nil {
		return serviceError(c, err)
	}

	p.Total = total
	return c.JSON(pagination.Response(p, listings))
}

// Create publishes a listing for the caller's rental company.
func (h *ListingHandler) Create(c *fiber.Ctx) error {
	claims, ok := c.Locals("claims").(*models.UserClaims)
	if !ok {
		return response.Unauthorized(c)
	}

	company, err := h.companies.GetByOwner(claims.UserID)
	if err != nil {
		return serviceError(c, err)
	}

	var input struct {
		Title       string  `json:"title"`
		Make        string  `json:"make"`
		Model       string  `json:"model"`
		Year        int     `json:"year"`
		PricePerDay float64 `json:"price_per_day"`
		IsPremium   bool    `json:"is_premium"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if input.Title == "" {
		return response.BadRequest(c, "Title is required")
	}

	l := &models.VehicleListing{
		CompanyID:    company.ID,
		Title:        input.Title,
		Make:         input.Make,
		VehicleModel: input.Model,
		Year:         input.Year,
		PricePerDay:  input.PricePerDay,
		IsPremium:    input.IsPremium,
	}
	if err := h.service.Create(c.Context(), l); err != nil {
		return serviceError(c, err)
	}

	return response.Success(c, "Listing created", l)
}
