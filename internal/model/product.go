package model

import "time"

// ProductType selects the lifecycle rules that govern a product.
type ProductType string

const (
	ProductTypeNormal    ProductType = "NORMAL"
	ProductTypeSeasonal  ProductType = "SEASONAL"
	ProductTypeExpirable ProductType = "EXPIRABLE"
)

// Valid reports whether t is one of the known product types.
func (t ProductType) Valid() bool {
	switch t {
	case ProductTypeNormal, ProductTypeSeasonal, ProductTypeExpirable:
		return true
	default:
		return false
	}
}

// Product represents a catalogue item tracked for availability.
//
// ExpiryDate is only set for EXPIRABLE products, SeasonStartDate and
// SeasonEndDate only for SEASONAL products.
type Product struct {
	ID              int64       `json:"id" db:"id" gorm:"primaryKey;autoIncrement:false"`
	Type            ProductType `json:"type" db:"type" gorm:"type:text;not null"`
	Name            string      `json:"name" db:"name" gorm:"type:text;not null"`
	LeadTime        int         `json:"leadTime" db:"lead_time" gorm:"not null"`
	Available       int         `json:"available" db:"available" gorm:"not null;default:0"`
	ExpiryDate      *time.Time  `json:"expiryDate,omitempty" db:"expiry_date"`
	SeasonStartDate *time.Time  `json:"seasonStartDate,omitempty" db:"season_start_date"`
	SeasonEndDate   *time.Time  `json:"seasonEndDate,omitempty" db:"season_end_date"`
}

// TableName pins the gorm table name to the one used by the pgx repository.
func (Product) TableName() string { return "products" }
