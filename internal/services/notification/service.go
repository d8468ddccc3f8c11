package notification

import (
	"context"
	"log"

	"carvio/internal/models"
)

// Service is a minimal notification service implementation. Delivery
// mechanics live outside this repository; decisions are surfaced through the
// process log.
type Service struct{}

// NewService creates a new notification service.
func NewService() *Service { return &Service{} }

// VerificationDecision logs a verification decision for the company owner.
func (s *Service) VerificationDecision(ctx context.Context, company *models.RentalCompany, reason string) {
	if reason != "" {
		log.Printf("Notify owner %d: company %q is now %s (%s)",
			company.OwnerUserID, company.Name, company.VerificationStatus, reason)
		return
	}
	log.Printf("Notify owner %d: company %q is now %s",
		company.OwnerUserID, company.Name, company.VerificationStatus)
}
