// Package audit appends immutable records of administrative actions.
package audit

import (
	"context"
	"fmt"
	"log"

	"carvio/internal/models"
	"carvio/internal/repositories"
)

// Logger records administrative actions. Entries are append-only; there is no
// way to mutate or remove one through this service.
type Logger interface {
	Record(ctx context.Context, actorID uint, resourceType string, resourceID uint, detail models.AuditDetail) error
}

type logger struct {
	repo repositories.AuditRepository
}

// NewLogger creates an audit logger backed by the audit repository.
func NewLogger(repo repositories.AuditRepository) Logger {
	return &logger{repo: repo}
}

func (l *logger) Record(ctx context.Context, actorID uint, resourceType string, resourceID uint, detail models.AuditDetail) error {
	payload, err := models.DetailJSON(detail)
	if err != nil {
		return fmt.Errorf("failed to encode audit detail: %w", err)
	}

	entry := &models.AdminActionLog{
		ActorID:      actorID,
		Action:       detail.AuditKind(),
		ResourceType: resourceType,
		ResourceID:   resourceID,
		Detail:       payload,
	}
	if err := l.repo.Create(entry); err != nil {
		return fmt.Errorf("failed to record audit entry: %w", err)
	}
	return nil
}

// MustRecord records an entry after a domain mutation has already committed.
// A failed audit write must never roll back or fail the mutation, but it must
// not disappear silently either, so the full entry is written to the process
// log before giving up.
func MustRecord(ctx context.Context, l Logger, actorID uint, resourceType string, resourceID uint, detail models.AuditDetail) {
	if err := l.Record(ctx, actorID, resourceType, resourceID, detail); err != nil {
		log.Printf("AUDIT WRITE FAILED: actor=%d action=%s resource=%s/%d detail=%+v err=%v",
			actorID, detail.AuditKind(), resourceType, resourceID, detail, err)
	}
}
