package repositories

import (
	"errors"
	"fmt"

	"carvio/internal/models"

	"gorm.io/gorm"
)

var ErrListingNotFound = errors.New("listing not found")

// ListingRepository defines database operations for vehicle listings.
type ListingRepository interface {
	Create(listing *models.VehicleListing) error
	GetByID(id uint) (*models.VehicleListing, error)
	ListActive(offset, limit int, verifiedOnly bool) ([]models.VehicleListing, int64, error)
	ListByCompany(companyID uint) ([]models.VehicleListing, error)
}

type listingRepository struct {
	db *gorm.DB
}

func NewListingRepository(db *gorm.DB) ListingRepository {
	return &listingRepository{db: db}
}

func (r *listingRepository) Create(listing *models.VehicleListing) error {
	if err := r.db.Create(listing).Error; err != nil {
		return fmt.Errorf("failed to create listing: %w", err)
	}
	return nil
}

func (r *listingRepository) GetByID(id uint) (*models.VehicleListing, error) {
	var listing models.VehicleListing
	if err := r.db.First(&listing, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrListingNotFound
		}
		return nil, fmt.Errorf("failed to get listing: %w", err)
	}
	return &listing, nil
}

func (r *listingRepository) ListActive(offset, limit int, verifiedOnly bool) ([]models.VehicleListing, int64, error) {
	query := r.db.Model(&models.VehicleListing{}).Where("vehicle_listings.status = ?", "active")
	if verifiedOnly {
		query = query.
			Joins("JOIN rental_companies ON rental_companies.id = vehicle_listings.company_id").
			Where("rental_companies.is_verified = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count listings: %w", err)
	}

	var listings []models.VehicleListing
	err := query.Order("vehicle_listings.is_premium DESC, vehicle_listings.created_at DESC").
		Offset(offset).Limit(limit).
		Find(&listings).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list listings: %w", err)
	}

	return listings, total, nil
}

func (r *listingRepository) ListByCompany(companyID uint) ([]models.VehicleListing, error) {
	var listings []models.VehicleListing
	if err := r.db.Where("company_id = ?", companyID).Find(&listings).Error; err != nil {
		return nil, fmt.Errorf("failed to list company listings: %w", err)
	}
	return listings, nil
}
