package handlers

import (
	"carvio/internal/models"
	"carvio/internal/services/access"
	"carvio/internal/services/verification"
	"carvio/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type VerificationHandler struct {
	service *verification.Service
}

func NewVerificationHandler(service *verification.Service) *VerificationHandler {
	return &VerificationHandler{service: service}
}

// SubmitDocument files a compliance document for a company in PENDING status.
func (h *VerificationHandler) SubmitDocument(c *fiber.Ctx) error {
	companyID, err := parseUintParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid company id")
	}

	var input struct {
		Type    string `json:"type"`
		FileURL string `json:"file_url"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	doc, err := h.service.SubmitDocument(c.Context(), companyID, models.DocumentType(input.Type), input.FileURL)
	if err != nil {
		return serviceError(c, err)
	}

	return response.Success(c, "Document submitted", doc)
}

// ReviewDocument applies an administrator's review decision to a document.
func (h *VerificationHandler) ReviewDocument(c *fiber.Ctx) error {
	claims, ok := c.Locals("claims").(*models.UserClaims)
	if !ok {
		return response.Unauthorized(c)
	}

	companyID, err := parseUintParam(c, "companyId")
	if err != nil {
		return response.BadRequest(c, "Invalid company id")
	}
	documentID, err := parseUintParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid document id")
	}

	var input struct {
		Status          string `json:"status"`
		RejectionReason string `json:"rejection_reason"`
		AdminNotes      string `json:"admin_notes"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	actor := access.Actor{ID: claims.UserID, Role: claims.Role}
	doc, err := h.service.ReviewDocument(c.Context(), verification.ReviewInput{
		DocumentID:      documentID,
		CompanyID:       companyID,
		Status:          models.DocumentStatus(input.Status),
		RejectionReason: input.RejectionReason,
		AdminNotes:      input.AdminNotes,
	}, actor)
	if err != nil {
		return serviceError(c, err)
	}

	return response.Success(c, "Document reviewed", doc)
}

// DeleteDocument removes a document without touching the company's
// verification status.
func (h *VerificationHandler) DeleteDocument(c *fiber.Ctx) error {
	claims, ok := c.Locals("claims").(*models.UserClaims)
	if !ok {
		return response.Unauthorized(c)
	}

	companyID, err := parseUintParam(c, "companyId")
	if err != nil {
		return response.BadRequest(c, "Invalid company id")
	}
	documentID, err := parseUintParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid document id")
	}

	actor := access.Actor{ID: claims.UserID, Role: claims.Role}
	if err := h.service.DeleteDocument(c.Context(), documentID, companyID, actor); err != nil {
		return serviceError(c, err)
	}

	return response.Success(c, "Document deleted", nil)
}
