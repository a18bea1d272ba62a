package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Forest is a physical planting site run by a sponsor association.
// LocationX/LocationY are the site's geolocation (longitude/latitude).
type Forest struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string    `gorm:"index;not null"`
	Association string    `gorm:"not null"`
	Image       string    `gorm:"not null"`
	Description string
	Country     string          `gorm:"not null"`
	CountrySlug string          `gorm:"index;not null"`
	LocationX   decimal.Decimal `gorm:"type:decimal(9,6);not null"`
	LocationY   decimal.Decimal `gorm:"type:decimal(9,6);not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time `gorm:"index"`
}
