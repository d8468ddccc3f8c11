package handlers

import (
	"strconv"

	"carvio/internal/models"
	"carvio/internal/services/access"
	"carvio/internal/services/company"
	"carvio/internal/services/verification"
	"carvio/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type CompanyHandler struct {
	companyService      *company.Service
	verificationService *verification.Service
}

func NewCompanyHandler(companyService *company.Service, verificationService *verification.Service) *CompanyHandler {
	return &CompanyHandler{
		companyService:      companyService,
		verificationService: verificationService,
	}
}

// RegisterCompany creates a rental company in PENDING status for the
// authenticated owner.
func (h *CompanyHandler) RegisterCompany(c *fiber.Ctx) error {
	claims, ok := c.Locals("claims").(*models.UserClaims)
	if !ok {
		return response.Unauthorized(c)
	}

	var input struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Phone   string `json:"phone"`
		Address string `json:"address"`
		TaxID   string `json:"tax_id"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if input.Name == "" {
		return response.BadRequest(c, "Company name is required")
	}

	comp := &models.RentalCompany{
		OwnerUserID: claims.UserID,
		Name:        input.Name,
		Email:       input.Email,
		Phone:       input.Phone,
		Address:     input.Address,
		TaxID:       input.TaxID,
	}
	if err := h.companyService.Register(c.Context(), comp); err != nil {
		return serviceError(c, err)
	}

	return response.Success(c, "Company registered", comp)
}

// GetCompany returns a company with its verification documents (admin only).
func (h *CompanyHandler) GetCompany(c *fiber.Ctx) error {
	companyID, err := parseUintParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid company id")
	}

	comp, err := h.companyService.Get(c.Context(), companyID)
	if err != nil {
		return serviceError(c, err)
	}

	docs, err := h.verificationService.ListDocuments(c.Context(), companyID)
	if err != nil {
		return serviceError(c, err)
	}

	return response.Success(c, "Company", fiber.Map{
		"company":   comp,
		"documents": docs,
	})
}

// TransitionCompany applies an administrator status action to a company.
func (h *CompanyHandler) TransitionCompany(c *fiber.Ctx) error {
	claims, ok := c.Locals("claims").(*models.UserClaims)
	if !ok {
		return response.Unauthorized(c)
	}

	companyID, err := parseUintParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid company id")
	}

	var input struct {
		Action string `json:"action"`
		Reason string `json:"reason"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	actor := access.Actor{ID: claims.UserID, Role: claims.Role}
	comp, err := h.companyService.Transition(c.Context(), companyID, company.Action(input.Action), input.Reason, actor)
	if err != nil {
		return serviceError(c, err)
	}

	return response.Success(c, "Company status updated", comp)
}

func parseUintParam(c *fiber.Ctx, name string) (uint, error) {
	v, err := strconv.ParseUint(c.Params(name), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(v), nil
}
