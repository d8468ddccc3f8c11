package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AdminAction identifies the kind of administrative mutation an audit entry
// records.
type AdminAction string

const (
	ActionDocumentReview    AdminAction = "document_review"
	ActionDocumentDelete    AdminAction = "document_delete"
	ActionCompanyTransition AdminAction = "company_transition"
)

// Audited resource types.
const (
	ResourceDocument = "verification_document"
	ResourceCompany  = "rental_company"
)

// AdminActionLog is an append-only record of a single administrative
// mutation. Entries are never updated or deleted.
type AdminActionLog struct {
	ID           uuid.UUID   `gorm:"type:uuid;primaryKey"`
	ActorID      uint        `gorm:"index;not null"`
	Action       AdminAction `gorm:"type:varchar(40);not null;index"`
	ResourceType string      `gorm:"type:varchar(40);not null"`
	ResourceID   uint        `gorm:"index;not null"`
	Detail       JSON        `gorm:"type:jsonb"`
	CreatedAt    time.Time
}

func (l *AdminActionLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// AuditDetail is the typed payload recorded with an audit entry. Each action
// kind has its own payload shape; the kind discriminator is persisted
// alongside the fields.
type AuditDetail interface {
	AuditKind() AdminAction
}

// DocumentReviewDetail records a document status change.
type DocumentReviewDetail struct {
	DocumentType    DocumentType   `json:"document_type"`
	FromStatus      DocumentStatus `json:"from_status"`
	ToStatus        DocumentStatus `json:"to_status"`
	RejectionReason string         `json:"rejection_reason,omitempty"`
	AdminNotes      string         `json:"admin_notes,omitempty"`
}

func (DocumentReviewDetail) AuditKind() AdminAction { return ActionDocumentReview }

// DocumentDeleteDetail records a document removal.
type DocumentDeleteDetail struct {
	DocumentType DocumentType   `json:"document_type"`
	Status       DocumentStatus `json:"status"`
}

func (DocumentDeleteDetail) AuditKind() AdminAction { return ActionDocumentDelete }

// CompanyTransitionDetail records a company verification status change.
// Automatic marks gating-rule-initiated promotions as opposed to explicit
// administrator transitions.
type CompanyTransitionDetail struct {
	Action     string                    `json:"action"`
	FromStatus CompanyVerificationStatus `json:"from_status"`
	ToStatus   CompanyVerificationStatus `json:"to_status"`
	Reason     string                    `json:"reason,omitempty"`
	Automatic  bool                      `json:"automatic"`
}

func (CompanyTransitionDetail) AuditKind() AdminAction { return ActionCompanyTransition }

// DetailJSON flattens a typed audit detail into its persisted JSON form,
// adding the kind discriminator.
func DetailJSON(d AuditDetail) (JSON, error) {
	raw, err := json.Marshal(d)
	if err != nil {
		return nil, err
	}
	var m JSON
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	m["kind"] = string(d.AuditKind())
	return m, nil
}
