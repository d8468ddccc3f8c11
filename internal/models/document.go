package models

import (
	"time"

	"gorm.io/gorm"
)

// DocumentType classifies an uploaded compliance document.
type DocumentType string

const (
	DocumentTypeBusinessLicense      DocumentType = "BUSINESS_LICENSE"
	DocumentTypeTaxCertificate       DocumentType = "TAX_CERTIFICATE"
	DocumentTypeInsuranceCertificate DocumentType = "INSURANCE_CERTIFICATE"
	DocumentTypeIDDocument           DocumentType = "ID_DOCUMENT"
	DocumentTypeOther                DocumentType = "OTHER"
)

// RequiredDocumentTypes are the types that must each have at least one
// approved document before a company qualifies for automatic promotion.
var RequiredDocumentTypes = []DocumentType{
	DocumentTypeBusinessLicense,
	DocumentTypeTaxCertificate,
	DocumentTypeInsuranceCertificate,
}

// Valid reports whether t is one of the known document types.
func (t DocumentType) Valid() bool {
	switch t {
	case DocumentTypeBusinessLicense, DocumentTypeTaxCertificate,
		DocumentTypeInsuranceCertificate, DocumentTypeIDDocument, DocumentTypeOther:
		return true
	}
	return false
}

// DocumentStatus is the review state of a single document.
type DocumentStatus string

const (
	DocumentStatusPending  DocumentStatus = "PENDING"
	DocumentStatusApproved DocumentStatus = "APPROVED"
	DocumentStatusRejected DocumentStatus = "REJECTED"
)

// Valid reports whether s is one of the known document statuses.
func (s DocumentStatus) Valid() bool {
	switch s {
	case DocumentStatusPending, DocumentStatusApproved, DocumentStatusRejected:
		return true
	}
	return false
}

// VerificationDocument is a compliance document uploaded for a rental company.
// Rows are created in PENDING by the upload flow and mutated only through the
// verification service.
type VerificationDocument struct {
	gorm.Model
	CompanyID uint         `gorm:"index;not null"`
	Type      DocumentType `gorm:"type:varchar(30);not null"`
	FileURL   string       `gorm:"type:text"`

	Status          DocumentStatus `gorm:"type:varchar(20);default:'PENDING';index"`
	VerifiedAt      *time.Time
	VerifiedByID    *uint
	RejectionReason string `gorm:"type:text"`
	AdminNotes      string `gorm:"type:text"`
}
