package repositories

import (
	"errors"

	"carvio/internal/models"
)

var ErrDocumentNotFound = errors.New("verification document not found")

// DocumentRepository defines database operations for verification documents.
type DocumentRepository interface {
	// Create creates a new verification document
	Create(doc *models.VerificationDocument) error

	// GetByIDAndCompany retrieves a document by its ID, scoped to the owning
	// company. A document that exists under a different company is not found.
	GetByIDAndCompany(id, companyID uint) (*models.VerificationDocument, error)

	// ListByCompany retrieves all documents owned by the company
	ListByCompany(companyID uint) ([]models.VerificationDocument, error)

	// Update persists a mutated document
	Update(doc *models.VerificationDocument) error

	// Delete removes a document owned by the company
	Delete(id, companyID uint) error
}

// Implementation is in document_repository_impl.go
