package repositories

import (
	"fmt"

	"carvio/internal/models"

	"gorm.io/gorm"
)

type companyRepository struct {
	db *gorm.DB
}

func NewCompanyRepository(db *gorm.DB) CompanyRepository {
	return &companyRepository{db: db}
}

func (r *companyRepository) Create(company *models.RentalCompany) error {
	if err := r.db.Create(company).Error; err != nil {
		return fmt.Errorf("failed to create company: %w", err)
	}
	return nil
}

func (r *companyRepository) GetByID(id uint) (*models.RentalCompany, error) {
	var company models.RentalCompany
	if err := r.db.First(&company, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrCompanyNotFound
		}
		return nil, fmt.Errorf("failed to get company: %w", err)
	}
	return &company, nil
}

func (r *companyRepository) GetByOwner(ownerUserID uint) (*models.RentalCompany, error) {
	var company models.RentalCompany
	if err := r.db.Where("owner_user_id = ?", ownerUserID).First(&company).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrCompanyNotFound
		}
		return nil, fmt.Errorf("failed to get company: %w", err)
	}
	return &company, nil
}

// UpdateStatus writes all verification fields in a single conditional UPDATE.
// The WHERE clause on status_version is what serializes concurrent
// transitions on the same company.
func (r *companyRepository) UpdateStatus(company *models.RentalCompany, expectedVersion int) error {
	result := r.db.Model(&models.RentalCompany{}).
		Where("id = ? AND status_version = ?", company.ID, expectedVersion).
		Updates(map[string]interface{}{
			"verification_status": company.VerificationStatus,
			"is_verified":         company.IsVerified,
			"verified_at":         company.VerifiedAt,
			"verified_by":         company.VerifiedBy,
			"rejection_reason":    company.RejectionReason,
			"status_version":      expectedVersion + 1,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update company status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		// Either the row vanished or another transition bumped the version.
		var count int64
		if err := r.db.Model(&models.RentalCompany{}).Where("id = ?", company.ID).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to update company status: %w", err)
		}
		if count == 0 {
			return ErrCompanyNotFound
		}
		return ErrVersionConflict
	}
	company.StatusVersion = expectedVersion + 1
	return nil
}

func (r *companyRepository) List(offset, limit int) ([]*models.RentalCompany, int64, error) {
	var companies []*models.RentalCompany
	var total int64

	if err := r.db.Model(&models.RentalCompany{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count companies: %w", err)
	}

	if err := r.db.Offset(offset).Limit(limit).Order("created_at DESC").Find(&companies).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list companies: %w", err)
	}

	return companies, total, nil
}
