package dto

import "github.com/shopspring/decimal"

// StockAssignment declares the desired stock for one counterpart of an
// association update. The full list is the complete desired state: pairs not
// listed are removed, listed pairs are upserted (last one wins on duplicates).
type StockAssignment struct {
	ID    string `json:"id"    validate:"required,uuid"`
	Stock int    `json:"stock" validate:"required,min=1"`
}

type CreateTreeRequest struct {
	Name           string          `json:"name"           validate:"required,max=255"`
	ScientificName string          `json:"scientificName" validate:"required,max=255"`
	Image          string          `json:"image"          validate:"required"`
	Category       string          `json:"category"       validate:"required,max=255"`
	Description    string          `json:"description"    validate:"required"`
	CO2            decimal.Decimal `json:"co2"            validate:"required"`
	O2             decimal.Decimal `json:"o2"             validate:"required"`
	Price          decimal.Decimal `json:"price"          validate:"required"`
	// ForestAssociations is the complete desired set of forests carrying this
	// tree, each with its stock.
	ForestAssociations []StockAssignment `json:"forestAssociations" validate:"omitempty,dive"`
}

// UpdateTreeRequest carries the same full payload as create: the original API
// PATCHes with the complete entity plus the complete association set.
type UpdateTreeRequest = CreateTreeRequest

type TreeResponse struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	ScientificName string          `json:"scientificName"`
	Image          string          `json:"image"`
	Category       string          `json:"category"`
	CategorySlug   string          `json:"categorySlug"`
	Description    string          `json:"description"`
	CO2            decimal.Decimal `json:"co2"`
	O2             decimal.Decimal `json:"o2"`
	Price          decimal.Decimal `json:"price"`
	CreatedAt      string          `json:"createdAt"`
	UpdatedAt      string          `json:"updatedAt"`
}

type TreeListResponse struct {
	Trees []TreeResponse `json:"trees"`
	Total int64          `json:"total"`
}

// TreeWithStockResponse is a tree plus parallel-indexed forest names and
// stocks (both ordered by forest name, so ForestNames[i] matches Stocks[i]).
type TreeWithStockResponse struct {
	TreeResponse
	ForestNames []string `json:"forestName"`
	Stocks      []int    `json:"stock"`
}

// ForestLink is one forest membership in the trees-with-forests listing.
type ForestLink struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Stock int    `json:"stock"`
}

// TreeWithForestsResponse nests the tree's forests with their stock, for the
// catalog listing that shows availability per site.
type TreeWithForestsResponse struct {
	TreeResponse
	Forests []ForestLink `json:"forests"`
}

// TreeInForest is a tree enriched with its stock in one specific forest.
type TreeInForest struct {
	TreeResponse
	Stock int `json:"stock"`
}

// ListFilter is bound from the query string of the list endpoints.
type ListFilter struct {
	Limit     int    `form:"limit,default=10"  validate:"min=1,max=100"`
	Offset    int    `form:"offset,default=0"  validate:"min=0"`
	SortBy    string `form:"sortBy"            validate:"omitempty,oneof=price"`
	WithCount bool   `form:"withCount"`
}
