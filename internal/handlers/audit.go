package handlers

import (
	"log"

	"carvio/internal/repositories"
	"carvio/internal/utils/pagination"
	"carvio/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type AuditHandler struct {
	repo repositories.AuditRepository
}

func NewAuditHandler(repo repositories.AuditRepository) *AuditHandler {
	return &AuditHandler{repo: repo}
}

// ListLogs returns admin action log entries, newest first (admin only).
func (h *AuditHandler) ListLogs(c *fiber.Ctx) error {
	p := pagination.ParseFromRequest(c)

	entries, total, err := h.repo.List(p.Offset, p.Limit)
	if err != nil {
		log.Printf("Error fetching audit logs: %v", err)
		return response.ServerError(c, "Failed to fetch audit logs")
	}

	p.Total = total
	return c.JSON(pagination.Response(p, entries))
}
