package repositories

import (
	"errors"

	"carvio/internal/models"
)

var (
	ErrCompanyNotFound = errors.New("rental company not found")

	// ErrVersionConflict is returned when a conditional status update lost a
	// race against a concurrent transition; callers reload and retry.
	ErrVersionConflict = errors.New("company status version conflict")
)

// CompanyRepository defines database operations for rental companies.
type CompanyRepository interface {
	// Create creates a new rental company
	Create(company *models.RentalCompany) error

	// GetByID retrieves a company by its ID
	GetByID(id uint) (*models.RentalCompany, error)

	// GetByOwner retrieves the company owned by a user
	GetByOwner(ownerUserID uint) (*models.RentalCompany, error)

	// UpdateStatus writes the verification status fields of company,
	// conditional on the status version the caller read. Returns
	// ErrVersionConflict when a concurrent transition won.
	UpdateStatus(company *models.RentalCompany, expectedVersion int) error

	// List retrieves companies with pagination
	List(offset, limit int) ([]*models.RentalCompany, int64, error)
}

// Implementation is in company_repository_impl.go
