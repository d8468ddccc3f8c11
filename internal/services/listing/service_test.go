package listing

import (
	"context"
	"testing"

	"carvio/internal/models"
	"carvio/internal/repositories"
	"carvio/internal/services/access"
	"carvio/internal/services/audit"
	"carvio/internal/services/company"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type fixture struct {
	svc       *Service
	companies *company.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, repositories.Migrate(db))

	companyRepo := repositories.NewCompanyRepository(db)
	auditLog := audit.NewLogger(repositories.NewAuditRepository(db))
	companies := company.NewService(companyRepo, auditLog, nil, nil)
	svc := NewService(repositories.NewListingRepository(db), companyRepo, nil)

	return &fixture{svc: svc, companies: companies}
}

func (f *fixture) registerCompany(t *testing.T, owner uint, status models.CompanyVerificationStatus) *models.RentalCompany {
	t.Helper()

	c := &models.RentalCompany{OwnerUserID: owner, Name: "Fleet"}
	require.NoError(t, f.companies.Register(context.Background(), c))

	admin := access.Actor{ID: 1, Role: models.RoleAdmin}
	ctx := context.Background()
	switch status {
	case models.CompanyStatusApproved:
		_, err := f.companies.Transition(ctx, c.ID, company.ActionApprove, "", admin)
		require.NoError(t, err)
		_, err = f.companies.Transition(ctx, c.ID, company.ActionApprove, "", admin)
		require.NoError(t, err)
	case models.CompanyStatusSuspended:
		_, err := f.companies.Transition(ctx, c.ID, company.ActionApprove, "", admin)
		require.NoError(t, err)
		_, err = f.companies.Transition(ctx, c.ID, company.ActionApprove, "", admin)
		require.NoError(t, err)
		_, err = f.companies.Transition(ctx, c.ID, company.ActionSuspend, "complaints", admin)
		require.NoError(t, err)
	}
	return c
}

func TestCreate(t *testing.T) {
	t.Run("unverified companies may list", func(t *testing.T) {
		f := newFixture(t)
		c := f.registerCompany(t, 1, models.CompanyStatusPending)

		listing := &models.VehicleListing{CompanyID: c.ID, Title: "Compact hatchback", PricePerDay: 35}
		require.NoError(t, f.svc.Create(context.Background(), listing))
		assert.Equal(t, "active", listing.Status)
	})

	t.Run("suspended companies may not list", func(t *testing.T) {
		f := newFixture(t)
		c := f.registerCompany(t, 1, models.CompanyStatusSuspended)

		err := f.svc.Create(context.Background(), &models.VehicleListing{CompanyID: c.ID, Title: "Van"})
		require.ErrorIs(t, err, ErrCompanyNotVerifiable)
	})

	t.Run("unknown company is not found", func(t *testing.T) {
		f := newFixture(t)

		err := f.svc.Create(context.Background(), &models.VehicleListing{CompanyID: 4242, Title: "Van"})
		require.ErrorIs(t, err, repositories.ErrCompanyNotFound)
	})
}

func TestBrowse(t *testing.T) {
	f := newFixture(t)
	verified := f.registerCompany(t, 1, models.CompanyStatusApproved)
	unverified := f.registerCompany(t, 2, models.CompanyStatusPending)

	ctx := context.Background()
	require.NoError(t, f.svc.Create(ctx, &models.VehicleListing{CompanyID: verified.ID, Title: "Sedan"}))
	require.NoError(t, f.svc.Create(ctx, &models.VehicleListing{CompanyID: unverified.ID, Title: "Truck"}))

	t.Run("all active listings", func(t *testing.T) {
		listings, total, err := f.svc.Browse(ctx, 0, 20, false)
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		assert.Len(t, listings, 2)
	})

	t.Run("verified only", func(t *testing.T) {
		listings, total, err := f.svc.Browse(ctx, 0, 20, true)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, listings, 1)
		assert.Equal(t, verified.ID, listings[0].CompanyID)
	})
}

func TestVerifiedBadge(t *testing.T) {
	f := newFixture(t)
	verified := f.registerCompany(t, 1, models.CompanyStatusApproved)
	unverified := f.registerCompany(t, 2, models.CompanyStatusPending)

	got, err := f.svc.VerifiedBadge(context.Background(), verified.ID)
	require.NoError(t, err)
	assert.True(t, got)

	got, err = f.svc.VerifiedBadge(context.Background(), unverified.ID)
	require.NoError(t, err)
	assert.False(t, got)
}
