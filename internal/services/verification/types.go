package verification

import "carvio/internal/models"

// ReviewInput carries an administrator's review decision for one document.
// The (DocumentID, CompanyID) pair must resolve to a document owned by that
// company.
type ReviewInput struct {
	DocumentID      uint
	CompanyID       uint
	Status          models.DocumentStatus
	RejectionReason string
	AdminNotes      string
}
