// Package listing is the public browsing surface for vehicle listings. It
// reads the owning company's verification state as a display and filter
// field; it never writes it.
package listing

import (
	"context"
	"errors"
	"log"

	"carvio/internal/models"
	"carvio/internal/repositories"
	"carvio/internal/repositories/cache"
)

var ErrCompanyNotVerifiable = errors.New("company cannot publish listings")

type Service struct {
	listings  repositories.ListingRepository
	companies repositories.CompanyRepository
	cache     *cache.CacheService
}

func NewService(listings repositories.ListingRepository, companies repositories.CompanyRepository, cacheSvc *cache.CacheService) *Service {
	if listings == nil {
		panic("listing repository is required")
	}
	if companies == nil {
		panic("company repository is required")
	}
	return &Service{
		listings:  listings,
		companies: companies,
		cache:     cacheSvc,
	}
}

// Create publishes a listing for the company. Companies may list while still
// unverified; the verified badge is a display concern.
func (s *Service) Create(ctx context.Context, listing *models.VehicleListing) error {
	company, err := s.companies.GetByID(listing.CompanyID)
	if err != nil {
		return err
	}
	if company.VerificationStatus == models.CompanyStatusSuspended {
		return ErrCompanyNotVerifiable
	}

	listing.Status = "active"
	return s.listings.Create(listing)
}

// Browse returns active listings, optionally restricted to verified
// companies.
func (s *Service) Browse(ctx context.Context, offset, limit int, verifiedOnly bool) ([]models.VehicleListing, int64, error) {
	return s.listings.ListActive(offset, limit, verifiedOnly)
}

// VerifiedBadge reports whether the company behind a listing is verified,
// served from cache when possible.
func (s *Service) VerifiedBadge(ctx context.Context, companyID uint) (bool, error) {
	if s.cache != nil {
		if cv, err := s.cache.GetCompanyVerification(ctx, companyID); err == nil {
			return cv.IsVerified, nil
		}
	}

	company, err := s.companies.GetByID(companyID)
	if err != nil {
		return false, err
	}

	if s.cache != nil {
		if err := s.cache.CacheCompanyVerification(ctx, company); err != nil {
			log.Printf("Failed to cache company verification: %v", err)
		}
	}

	return company.IsVerified, nil
}
