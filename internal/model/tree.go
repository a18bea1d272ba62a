package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Tree is a plantable tree species sold as symbolic planting units.
// CO2/O2 are yearly absorption/production rates in kilograms, used for the
// per-user impact aggregation.
type Tree struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name           string    `gorm:"index;not null"`
	ScientificName string    `gorm:"not null"`
	Image          string    `gorm:"not null"`
	Category       string    `gorm:"not null"`
	CategorySlug   string    `gorm:"index;not null"`
	Description    string
	CO2            decimal.Decimal `gorm:"column:co2;type:decimal(10,2);not null"`
	O2             decimal.Decimal `gorm:"column:o2;type:decimal(10,2);not null"`
	Price          decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CreatedAt      time.Time
	UpdatedAt      time.Time `gorm:"index"`
}
