package audit

import (
	"context"
	"errors"
	"testing"

	"carvio/internal/models"
	"carvio/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestRepo(t *testing.T) repositories.AuditRepository {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, repositories.Migrate(db))

	return repositories.NewAuditRepository(db)
}

func TestRecord(t *testing.T) {
	repo := newTestRepo(t)
	l := NewLogger(repo)

	err := l.Record(context.Background(), 1, models.ResourceDocument, 10, models.DocumentReviewDetail{
		DocumentType: models.DocumentTypeBusinessLicense,
		FromStatus:   models.DocumentStatusPending,
		ToStatus:     models.DocumentStatusApproved,
	})
	require.NoError(t, err)

	entries, err := repo.ListByResource(models.ResourceDocument, 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	entry := entries[0]
	assert.Equal(t, models.ActionDocumentReview, entry.Action)
	assert.Equal(t, uint(1), entry.ActorID)
	assert.Equal(t, string(models.ActionDocumentReview), entry.Detail["kind"])
	assert.Equal(t, string(models.DocumentStatusApproved), entry.Detail["to_status"])
	assert.False(t, entry.CreatedAt.IsZero())
}

func TestList(t *testing.T) {
	repo := newTestRepo(t)
	l := NewLogger(repo)

	for i := uint(1); i <= 5; i++ {
		require.NoError(t, l.Record(context.Background(), 1, models.ResourceCompany, i, models.CompanyTransitionDetail{
			Action:     "approve",
			FromStatus: models.CompanyStatusPending,
			ToStatus:   models.CompanyStatusUnderReview,
		}))
	}

	entries, total, err := repo.List(0, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	require.Len(t, entries, 3)
	assert.Equal(t, uint(5), entries[0].ResourceID, "entries come back newest first")
}

type failingRepo struct{}

func (failingRepo) Create(*models.AdminActionLog) error { return errors.New("connection refused") }
func (failingRepo) List(int, int) ([]models.AdminActionLog, int64, error) {
	return nil, 0, errors.New("connection refused")
}
func (failingRepo) ListByResource(string, uint) ([]models.AdminActionLog, error) {
	return nil, errors.New("connection refused")
}

func TestMustRecord_SurvivesWriteFailure(t *testing.T) {
	l := NewLogger(failingRepo{})

	// The domain mutation has already committed; a failed audit write is
	// logged, not propagated.
	assert.NotPanics(t, func() {
		MustRecord(context.Background(), l, 1, models.ResourceCompany, 2, models.CompanyTransitionDetail{
			Action:     "approve",
			FromStatus: models.CompanyStatusUnderReview,
			ToStatus:   models.CompanyStatusApproved,
		})
	})
}
