package repositories

import (
	"carvio/internal/models"
)

// AuditRepository defines database operations for admin action logs. The log
// is append-only: there is deliberately no update or delete.
type AuditRepository interface {
	// Create appends an audit entry
	Create(entry *models.AdminActionLog) error

	// List retrieves entries newest-first with pagination
	List(offset, limit int) ([]models.AdminActionLog, int64, error)

	// ListByResource retrieves entries for one resource, newest-first
	ListByResource(resourceType string, resourceID uint) ([]models.AdminActionLog, error)
}

// Implementation is in audit_repository_impl.go
