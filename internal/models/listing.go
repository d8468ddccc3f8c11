package models

import "gorm.io/gorm"

// VehicleListing is a vehicle offered for rent by a company. Listing content
// and pricing are plain CRUD; the listing layer only reads the owning
// company's verification state as a display/filter field.
type VehicleListing struct {
	gorm.Model
	CompanyID    uint   `gorm:"index;not null"`
	Title        string `gorm:"not null"`
	Make         string
	VehicleModel string `gorm:"column:vehicle_model"`
	Year         int
	PricePerDay  float64
	Status       string `gorm:"type:varchar(20);default:'active';index"`
	IsPremium    bool   `gorm:"default:false"`
}
