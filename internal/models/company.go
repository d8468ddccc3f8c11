package models

import (
	"time"

	"gorm.io/gorm"
)

// CompanyVerificationStatus is the overall verification state of a rental company.
type CompanyVerificationStatus string

const (
	CompanyStatusPending     CompanyVerificationStatus = "PENDING"
	CompanyStatusUnderReview CompanyVerificationStatus = "UNDER_REVIEW"
	CompanyStatusApproved    CompanyVerificationStatus = "APPROVED"
	CompanyStatusRejected    CompanyVerificationStatus = "REJECTED"
	CompanyStatusSuspended   CompanyVerificationStatus = "SUSPENDED"
)

// Valid reports whether s is one of the known verification statuses.
func (s CompanyVerificationStatus) Valid() bool {
	switch s {
	case CompanyStatusPending, CompanyStatusUnderReview, CompanyStatusApproved,
		CompanyStatusRejected, CompanyStatusSuspended:
		return true
	}
	return false
}

// RentalCompany is a company renting out vehicles on the platform.
// IsVerified must always equal (VerificationStatus == APPROVED); the company
// status service is the only writer of these fields.
type RentalCompany struct {
	gorm.Model
	OwnerUserID uint   `gorm:"index;not null"`
	Name        string `gorm:"not null"`
	Email       string
	Phone       string
	Address     string
	TaxID       string

	VerificationStatus CompanyVerificationStatus `gorm:"type:varchar(20);default:'PENDING';index"`
	IsVerified         bool                      `gorm:"default:false"`
	VerifiedAt         *time.Time
	VerifiedBy         *uint
	RejectionReason    string `gorm:"type:text"`

	// StatusVersion guards read-modify-write transitions; every status update
	// increments it and is conditional on the value read.
	StatusVersion int `gorm:"default:0;not null"`

	Documents []VerificationDocument `gorm:"foreignKey:CompanyID"`
}
