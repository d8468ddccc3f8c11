// Package company owns the rental company verification state machine. Every
// status change, whether administrator-initiated or triggered by the document
// gating rule, goes through this service.
package company

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"carvio/internal/models"
	"carvio/internal/repositories"
	"carvio/internal/repositories/cache"
	"carvio/internal/services/access"
	"carvio/internal/services/audit"
)

// Transitions retry on version conflicts; past this many attempts the caller
// gets the conflict back.
const maxTransitionAttempts = 3

type Service struct {
	companies repositories.CompanyRepository
	auditLog  audit.Logger
	cache     *cache.CacheService
	notifier  Notifier
}

// NewService creates the company status service. Cache and notifier are
// optional.
func NewService(companies repositories.CompanyRepository, auditLog audit.Logger, cacheSvc *cache.CacheService, notifier Notifier) *Service {
	if companies == nil {
		panic("company repository is required")
	}
	if auditLog == nil {
		panic("audit logger is required")
	}
	return &Service{
		companies: companies,
		auditLog:  auditLog,
		cache:     cacheSvc,
		notifier:  notifier,
	}
}

// Register creates a new rental company in PENDING status for the owner.
func (s *Service) Register(ctx context.Context, company *models.RentalCompany) error {
	company.VerificationStatus = models.CompanyStatusPending
	company.IsVerified = false
	if err := s.companies.Create(company); err != nil {
		return err
	}
	return nil
}

// Get retrieves a company by ID.
func (s *Service) Get(ctx context.Context, companyID uint) (*models.RentalCompany, error) {
	return s.companies.GetByID(companyID)
}

// Transition applies an explicit administrator action to the company's
// verification status. The read-modify-write is serialized per company
// through the status version column; a lost race is retried against the
// fresh state, so exactly one transition wins and is audited.
func (s *Service) Transition(ctx context.Context, companyID uint, action Action, reason string, actor access.Actor) (*models.RentalCompany, error) {
	if err := access.Authorize(actor, models.RoleAdmin); err != nil {
		return nil, err
	}
	if !action.Valid() {
		return nil, fmt.Errorf("%w: unknown action %q", ErrInvalidTransition, action)
	}
	if (action == ActionReject || action == ActionSuspend) && reason == "" {
		return nil, fmt.Errorf("%w: %s needs a reason", ErrMissingReason, action)
	}

	for attempt := 0; attempt < maxTransitionAttempts; attempt++ {
		company, err := s.companies.GetByID(companyID)
		if err != nil {
			return nil, err
		}

		from := company.VerificationStatus
		to, err := nextStatus(from, action)
		if err != nil {
			return nil, err
		}

		applyStatus(company, to, reason, actor.ID)
		if err := s.companies.UpdateStatus(company, company.StatusVersion); err != nil {
			if errors.Is(err, repositories.ErrVersionConflict) {
				continue
			}
			return nil, err
		}

		s.finishTransition(ctx, company, models.CompanyTransitionDetail{
			Action:     string(action),
			FromStatus: from,
			ToStatus:   to,
			Reason:     reason,
			Automatic:  actor.System,
		}, actor, reason)
		return company, nil
	}

	return nil, fmt.Errorf("transition attempts exhausted: %w", repositories.ErrVersionConflict)
}

// PromoteVerified is the gating rule's entry point. It promotes a company
// whose required documents are all approved, and is idempotent: an already
// APPROVED company is left untouched with no audit entry. SUSPENDED and
// REJECTED companies are never promoted this way; they require the explicit
// administrator actions.
func (s *Service) PromoteVerified(ctx context.Context, companyID uint, actor access.Actor) (*models.RentalCompany, error) {
	for attempt := 0; attempt < maxTransitionAttempts; attempt++ {
		company, err := s.companies.GetByID(companyID)
		if err != nil {
			return nil, err
		}

		switch company.VerificationStatus {
		case models.CompanyStatusApproved:
			return company, nil
		case models.CompanyStatusSuspended, models.CompanyStatusRejected:
			log.Printf("company %d is %s, skipping automatic promotion", companyID, company.VerificationStatus)
			return company, nil
		}

		from := company.VerificationStatus
		applyStatus(company, models.CompanyStatusApproved, "", actor.ID)
		if err := s.companies.UpdateStatus(company, company.StatusVersion); err != nil {
			if errors.Is(err, repositories.ErrVersionConflict) {
				continue
			}
			return nil, err
		}

		s.finishTransition(ctx, company, models.CompanyTransitionDetail{
			Action:     string(ActionApprove),
			FromStatus: from,
			ToStatus:   models.CompanyStatusApproved,
			Automatic:  true,
		}, actor, "")
		return company, nil
	}

	return nil, fmt.Errorf("promotion attempts exhausted: %w", repositories.ErrVersionConflict)
}

// nextStatus dispatches on the current state, not just the action name.
func nextStatus(current models.CompanyVerificationStatus, action Action) (models.CompanyVerificationStatus, error) {
	switch current {
	case models.CompanyStatusPending:
		if action == ActionApprove {
			return models.CompanyStatusUnderReview, nil
		}
	case models.CompanyStatusUnderReview:
		switch action {
		case ActionApprove:
			return models.CompanyStatusApproved, nil
		case ActionReject:
			return models.CompanyStatusRejected, nil
		}
	case models.CompanyStatusApproved:
		if action == ActionSuspend {
			return models.CompanyStatusSuspended, nil
		}
	case models.CompanyStatusSuspended:
		if action == ActionApprove || action == ActionReactivate {
			return models.CompanyStatusApproved, nil
		}
	case models.CompanyStatusRejected:
		// Terminal; resubmission is handled outside the verification flow.
	}
	return "", fmt.Errorf("%w: cannot %s a %s company", ErrInvalidTransition, action, current)
}

// applyStatus writes the status and its dependent fields, keeping the
// IsVerified invariant and the set-only-when rules for VerifiedAt/VerifiedBy
// and RejectionReason.
func applyStatus(company *models.RentalCompany, to models.CompanyVerificationStatus, reason string, actorID uint) {
	company.VerificationStatus = to
	company.IsVerified = to == models.CompanyStatusApproved
	company.VerifiedAt = nil
	company.VerifiedBy = nil
	company.RejectionReason = ""

	switch to {
	case models.CompanyStatusApproved:
		now := time.Now().UTC()
		company.VerifiedAt = &now
		company.VerifiedBy = &actorID
	case models.CompanyStatusRejected:
		company.RejectionReason = reason
	}
}

func (s *Service) finishTransition(ctx context.Context, company *models.RentalCompany, detail models.CompanyTransitionDetail, actor access.Actor, reason string) {
	audit.MustRecord(ctx, s.auditLog, actor.ID, models.ResourceCompany, company.ID, detail)

	if s.cache != nil {
		if err := s.cache.InvalidateCompanyVerification(ctx, company.ID); err != nil {
			log.Printf("Failed to invalidate company verification cache: %v", err)
		}
	}

	if s.notifier != nil {
		switch detail.ToStatus {
		case models.CompanyStatusApproved, models.CompanyStatusRejected, models.CompanyStatusSuspended:
			s.notifier.VerificationDecision(ctx, company, reason)
		}
	}
}
