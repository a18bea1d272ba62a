package dto

import "github.com/shopspring/decimal"

type CreateForestRequest struct {
	Name        string          `json:"name"        validate:"required,max=255"`
	Association string          `json:"association" validate:"required,max=255"`
	Image       string          `json:"image"       validate:"required"`
	Description string          `json:"description" validate:"required"`
	Country     string          `json:"country"     validate:"required,max=255"`
	LocationX   decimal.Decimal `json:"locationX"   validate:"required"`
	LocationY   decimal.Decimal `json:"locationY"   validate:"required"`
	// TreeAssociations is the complete desired set of tree species available
	// in this forest, each with its stock.
	TreeAssociations []StockAssignment `json:"treeAssociations" validate:"omitempty,dive"`
}

type UpdateForestRequest = CreateForestRequest

type ForestResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Association string          `json:"association"`
	Image       string          `json:"image"`
	Description string          `json:"description"`
	Country     string          `json:"country"`
	CountrySlug string          `json:"countrySlug"`
	LocationX   decimal.Decimal `json:"locationX"`
	LocationY   decimal.Decimal `json:"locationY"`
	CreatedAt   string          `json:"createdAt"`
	UpdatedAt   string          `json:"updatedAt"`
}

type ForestListResponse struct {
	Forests []ForestResponse `json:"forests"`
	Total   int64            `json:"total"`
}

// ForestWithStockResponse mirrors TreeWithStockResponse from the forest side:
// TreeNames[i] matches Stocks[i], both ordered by tree name.
type ForestWithStockResponse struct {
	ForestResponse
	TreeNames []string `json:"treesName"`
	Stocks    []int    `json:"stock"`
}

// ForestOfTree is a forest enriched with the stock it holds for one tree.
type ForestOfTree struct {
	ForestResponse
	Stock int `json:"stock"`
}
