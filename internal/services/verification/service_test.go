package verification

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
	"golang.org/x/sync/errgroup"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var admin = access.Actor{ID: 1, Role: models.RoleAdmin}

type fixture struct {
	svc       *Service
	companies *company.Service
	auditRepo repositories.AuditRepository
	company   *models.RentalCompany
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, repositories.Migrate(db))

	auditRepo := repositories.NewAuditRepository(db)
	auditLog := audit.NewLogger(auditRepo)
	companies := company.NewService(repositories.NewCompanyRepository(db), auditLog, nil, nil)
	svc := NewService(repositories.NewDocumentRepository(db), companies, auditLog)

	c := &models.RentalCompany{OwnerUserID: 5, Name: "Lakeside Rentals"}
	require.NoError(t, companies.Register(context.Background(), c))

	return &fixture{svc: svc, companies: companies, auditRepo: auditRepo, company: c}
}

func (f *fixture) submit(t *testing.T, docType models.DocumentType) *models.VerificationDocument {
	t.Helper()
	doc, err := f.svc.SubmitDocument(context.Background(), f.company.ID, docType, "s3://docs/"+string(docType))
	require.NoError(t, err)
	return doc
}

func (f *fixture) approve(t *testing.T, doc *models.VerificationDocument) {
	t.Helper()
	_, err := f.svc.ReviewDocument(context.Background(), ReviewInput{
		DocumentID: doc.ID,
		CompanyID:  f.company.ID,
		Status:     models.DocumentStatusApproved,
	}, admin)
	require.NoError(t, err)
}

func (f *fixture) companyStatus(t *testing.T) models.CompanyVerificationStatus {
	t.Helper()
	fresh, err := f.companies.Get(context.Background(), f.company.ID)
	require.NoError(t, err)
	return fresh.VerificationStatus
}

func (f *fixture) promotionCount(t *testing.T) int {
	t.Helper()
	entries, err := f.auditRepo.ListByResource(models.ResourceCompany, f.company.ID)
	require.NoError(t, err)
	n := 0
	for _, entry := range entries {
		if entry.Detail["automatic"] == true {
			n++
		}
	}
	return n
}

func TestSubmitDocument(t *testing.T) {
	t.Run("creates a pending document", func(t *testing.T) {
		f := newFixture(t)

		doc := f.submit(t, models.DocumentTypeBusinessLicense)
		assert.Equal(t, models.DocumentStatusPending, doc.Status)
		assert.Equal(t, f.company.ID, doc.CompanyID)

		docs, err := f.svc.ListDocuments(context.Background(), f.company.ID)
		require.NoError(t, err)
		require.Len(t, docs, 1)
	})

	t.Run("rejects unknown document types", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.SubmitDocument(context.Background(), f.company.ID, "DRIVER_SELFIE", "s3://docs/x")
		require.ErrorIs(t, err, ErrInvalidDocumentType)
	})

	t.Run("rejects unknown companies", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.SubmitDocument(context.Background(), 4242, models.DocumentTypeOther, "s3://docs/x")
		require.ErrorIs(t, err, repositories.ErrCompanyNotFound)
	})
}

func TestReviewDocument(t *testing.T) {
	t.Run("approval stamps the reviewer", func(t *testing.T) {
		f := newFixture(t)
		doc := f.submit(t, models.DocumentTypeIDDocument)

		got, err := f.svc.ReviewDocument(context.Background(), ReviewInput{
			DocumentID: doc.ID,
			CompanyID:  f.company.ID,
			Status:     models.DocumentStatusApproved,
			AdminNotes: "matches registry",
		}, admin)
		require.NoError(t, err)
		assert.Equal(t, models.DocumentStatusApproved, got.Status)
		require.NotNil(t, got.VerifiedAt)
		require.NotNil(t, got.VerifiedByID)
		assert.Equal(t, admin.ID, *got.VerifiedByID)
		assert.Equal(t, "matches registry", got.AdminNotes)

		entries, err := f.auditRepo.ListByResource(models.ResourceDocument, doc.ID)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, models.ActionDocumentReview, entries[0].Action)
	})

	t.Run("rejection records the reason", func(t *testing.T) {
		f := newFixture(t)
		doc := f.submit(t, models.DocumentTypeTaxCertificate)

		got, err := f.svc.ReviewDocument(context.Background(), ReviewInput{
			DocumentID:      doc.ID,
			CompanyID:       f.company.ID,
			Status:          models.DocumentStatusRejected,
			RejectionReason: "expired certificate",
		}, admin)
		require.NoError(t, err)
		assert.Equal(t, models.DocumentStatusRejected, got.Status)
		assert.Equal(t, "expired certificate", got.RejectionReason)
		assert.Nil(t, got.VerifiedAt)
		assert.Nil(t, got.VerifiedByID)
	})

	t.Run("rejection without a reason fails", func(t *testing.T) {
		f := newFixture(t)
		doc := f.submit(t, models.DocumentTypeTaxCertificate)

		_, err := f.svc.ReviewDocument(context.Background(), ReviewInput{
			DocumentID: doc.ID,
			CompanyID:  f.company.ID,
			Status:     models.DocumentStatusRejected,
		}, admin)
		require.ErrorIs(t, err, ErrMissingReason)

		docs, err := f.svc.ListDocuments(context.Background(), f.company.ID)
		require.NoError(t, err)
		assert.Equal(t, models.DocumentStatusPending, docs[0].Status, "a failed review must not mutate the document")
	})

	t.Run("invalid target status fails", func(t *testing.T) {
		f := newFixture(t)
		doc := f.submit(t, models.DocumentTypeOther)

		_, err := f.svc.ReviewDocument(context.Background(), ReviewInput{
			DocumentID: doc.ID,
			CompanyID:  f.company.ID,
			Status:     "MAYBE",
		}, admin)
		require.ErrorIs(t, err, ErrInvalidStatus)
	})

	t.Run("document under another company is not found", func(t *testing.T) {
		f := newFixture(t)
		doc := f.submit(t, models.DocumentTypeOther)

		other := &models.RentalCompany{OwnerUserID: 6, Name: "Other Fleet"}
		require.NoError(t, f.companies.Register(context.Background(), other))

		_, err := f.svc.ReviewDocument(context.Background(), ReviewInput{
			DocumentID: doc.ID,
			CompanyID:  other.ID,
			Status:     models.DocumentStatusApproved,
		}, admin)
		require.ErrorIs(t, err, repositories.ErrDocumentNotFound)
	})

	t.Run("non-admin actors are refused", func(t *testing.T) {
		f := newFixture(t)
		doc := f.submit(t, models.DocumentTypeOther)

		_, err := f.svc.ReviewDocument(context.Background(), ReviewInput{
			DocumentID: doc.ID,
			CompanyID:  f.company.ID,
			Status:     models.DocumentStatusApproved,
		}, access.Actor{ID: 9, Role: models.RoleCompany})
		require.ErrorIs(t, err, access.ErrUnauthorized)
	})
}

func TestGatingRule(t *testing.T) {
	t.Run("last required approval promotes the company", func(t *testing.T) {
		f := newFixture(t)
		license := f.submit(t, models.DocumentTypeBusinessLicense)
		tax := f.submit(t, models.DocumentTypeTaxCertificate)
		insurance := f.submit(t, models.DocumentTypeInsuranceCertificate)

		f.approve(t, tax)
		f.approve(t, insurance)
		assert.Equal(t, models.CompanyStatusPending, f.companyStatus(t), "two of three types must not promote")

		f.approve(t, license)
		assert.Equal(t, models.CompanyStatusApproved, f.companyStatus(t))
		assert.Equal(t, 1, f.promotionCount(t))
	})

	t.Run("optional types do not count toward the gate", func(t *testing.T) {
		f := newFixture(t)
		f.approve(t, f.submit(t, models.DocumentTypeBusinessLicense))
		f.approve(t, f.submit(t, models.DocumentTypeTaxCertificate))
		f.approve(t, f.submit(t, models.DocumentTypeIDDocument))
		f.approve(t, f.submit(t, models.DocumentTypeOther))

		assert.Equal(t, models.CompanyStatusPending, f.companyStatus(t))
		assert.Equal(t, 0, f.promotionCount(t))
	})

	t.Run("duplicate approvals of one type never stand in for a missing type", func(t *testing.T) {
		f := newFixture(t)
		f.approve(t, f.submit(t, models.DocumentTypeBusinessLicense))
		f.approve(t, f.submit(t, models.DocumentTypeBusinessLicense))
		f.approve(t, f.submit(t, models.DocumentTypeTaxCertificate))

		assert.Equal(t, models.CompanyStatusPending, f.companyStatus(t))
	})

	t.Run("a rejection never promotes", func(t *testing.T) {
		f := newFixture(t)
		f.approve(t, f.submit(t, models.DocumentTypeBusinessLicense))
		f.approve(t, f.submit(t, models.DocumentTypeTaxCertificate))
		insurance := f.submit(t, models.DocumentTypeInsuranceCertificate)

		_, err := f.svc.ReviewDocument(context.Background(), ReviewInput{
			DocumentID:      insurance.ID,
			CompanyID:       f.company.ID,
			Status:          models.DocumentStatusRejected,
			RejectionReason: "policy lapsed",
		}, admin)
		require.NoError(t, err)

		assert.Equal(t, models.CompanyStatusPending, f.companyStatus(t))
		assert.Equal(t, 0, f.promotionCount(t))
	})

	t.Run("repeat approval after promotion does not double-promote", func(t *testing.T) {
		f := newFixture(t)
		f.approve(t, f.submit(t, models.DocumentTypeBusinessLicense))
		f.approve(t, f.submit(t, models.DocumentTypeTaxCertificate))
		f.approve(t, f.submit(t, models.DocumentTypeInsuranceCertificate))
		require.Equal(t, models.CompanyStatusApproved, f.companyStatus(t))

		f.approve(t, f.submit(t, models.DocumentTypeBusinessLicense))
		assert.Equal(t, 1, f.promotionCount(t))
	})

	t.Run("no promotion of a suspended company", func(t *testing.T) {
		f := newFixture(t)
		f.approve(t, f.submit(t, models.DocumentTypeBusinessLicense))
		f.approve(t, f.submit(t, models.DocumentTypeTaxCertificate))
		require.Equal(t, models.CompanyStatusPending, f.companyStatus(t))

		// Promote then suspend through the explicit state machine.
		insurance := f.submit(t, models.DocumentTypeInsuranceCertificate)
		f.approve(t, insurance)
		require.Equal(t, models.CompanyStatusApproved, f.companyStatus(t))
		_, err := f.companies.Transition(context.Background(), f.company.ID, company.ActionSuspend, "fleet complaints", admin)
		require.NoError(t, err)

		// A further approved document satisfies the gate again, but a
		// suspension is only lifted by an administrator.
		f.approve(t, f.submit(t, models.DocumentTypeInsuranceCertificate))
		assert.Equal(t, models.CompanyStatusSuspended, f.companyStatus(t))
		assert.Equal(t, 1, f.promotionCount(t))
	})
}

func TestDeleteDocument(t *testing.T) {
	t.Run("removes the document and audits it", func(t *testing.T) {
		f := newFixture(t)
		doc := f.submit(t, models.DocumentTypeOther)

		require.NoError(t, f.svc.DeleteDocument(context.Background(), doc.ID, f.company.ID, admin))

		docs, err := f.svc.ListDocuments(context.Background(), f.company.ID)
		require.NoError(t, err)
		assert.Empty(t, docs)

		entries, err := f.auditRepo.ListByResource(models.ResourceDocument, doc.ID)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, models.ActionDocumentDelete, entries[0].Action)
	})

	t.Run("never downgrades a verified company", func(t *testing.T) {
		f := newFixture(t)
		license := f.submit(t, models.DocumentTypeBusinessLicense)
		f.approve(t, license)
		f.approve(t, f.submit(t, models.DocumentTypeTaxCertificate))
		f.approve(t, f.submit(t, models.DocumentTypeInsuranceCertificate))
		require.Equal(t, models.CompanyStatusApproved, f.companyStatus(t))

		require.NoError(t, f.svc.DeleteDocument(context.Background(), license.ID, f.company.ID, admin))

		fresh, err := f.companies.Get(context.Background(), f.company.ID)
		require.NoError(t, err)
		assert.Equal(t, models.CompanyStatusApproved, fresh.VerificationStatus)
		assert.True(t, fresh.IsVerified)
	})

	t.Run("document under another company is not found", func(t *testing.T) {
		f := newFixture(t)
		doc := f.submit(t, models.DocumentTypeOther)

		err := f.svc.DeleteDocument(context.Background(), doc.ID, f.company.ID+1, admin)
		require.ErrorIs(t, err, repositories.ErrDocumentNotFound)
	})

	t.Run("non-admin actors are refused", func(t *testing.T) {
		f := newFixture(t)
		doc := f.submit(t, models.DocumentTypeOther)

		err := f.svc.DeleteDocument(context.Background(), doc.ID, f.company.ID, access.Actor{ID: 9, Role: models.RoleCompany})
		require.ErrorIs(t, err, access.ErrUnauthorized)
	})
}

func TestConcurrentReviews(t *testing.T) {
	f := newFixture(t)
	f.approve(t, f.submit(t, models.DocumentTypeTaxCertificate))
	license := f.submit(t, models.DocumentTypeBusinessLicense)
	insurance := f.submit(t, models.DocumentTypeInsuranceCertificate)

	var g errgroup.Group
	for _, doc := range []*models.VerificationDocument{license, insurance} {
		doc := doc
		g.Go(func() error {
			_, err := f.svc.ReviewDocument(context.Background(), ReviewInput{
				DocumentID: doc.ID,
				CompanyID:  f.company.ID,
				Status:     models.DocumentStatusApproved,
			}, admin)
			return err
		})
	}
	require.NoError(t, g.Wait())

	assert.Equal(t, models.CompanyStatusApproved, f.companyStatus(t))
	assert.Equal(t, 1, f.promotionCount(t), "racing gating evaluations may promote exactly once")
}
