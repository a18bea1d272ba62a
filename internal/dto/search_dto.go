package dto

import "github.com/shopspring/decimal"

// SearchResult is a tagged union row: Type is "tree" or "forest" and only the
// fields belonging to that side are populated, the rest stay null — the same
// shape the UNION query produces.
type SearchResult struct {
	Type           string           `json:"type"`
	ID             string           `json:"id"`
	Name           string           `json:"name"`
	Image          string           `json:"image"`
	Description    string           `json:"description"`
	ScientificName *string          `json:"scientificName"`
	Category       *string          `json:"category"`
	CategorySlug   *string          `json:"categorySlug"`
	CO2            *decimal.Decimal `json:"co2"`
	O2             *decimal.Decimal `json:"o2"`
	Price          *decimal.Decimal `json:"price"`
	Association    *string          `json:"association"`
	Country        *string          `json:"country"`
	CountrySlug    *string          `json:"countrySlug"`
	LocationX      *decimal.Decimal `json:"locationX"`
	LocationY      *decimal.Decimal `json:"locationY"`
	CreatedAt      string           `json:"createdAt"`
	UpdatedAt      string           `json:"updatedAt"`
}
