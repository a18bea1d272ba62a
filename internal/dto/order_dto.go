package dto

import "github.com/shopspring/decimal"

type CreateOrderRequest struct {
	// ID may be supplied by the client for idempotent replay; creating an
	// order whose ID already exists is rejected as a conflict.
	ID         *string         `json:"id"         validate:"omitempty,uuid"`
	UserID     string          `json:"userId"     validate:"required,uuid"`
	TotalPrice decimal.Decimal `json:"totalPrice" validate:"required"`
	Status     int             `json:"status"     validate:"required,oneof=1 2 3"`
}

// UpdateOrderRequest is a partial update; nil fields are left untouched.
type UpdateOrderRequest struct {
	TotalPrice *decimal.Decimal `json:"totalPrice"`
	Status     *int             `json:"status" validate:"omitempty,oneof=1 2 3"`
}

type AddOrderItemRequest struct {
	TreeID   string          `json:"treeId"   validate:"required,uuid"`
	ForestID string          `json:"forestId" validate:"required,uuid"`
	Name     string          `json:"name"     validate:"required,max=255"`
	Quantity int             `json:"quantity" validate:"required,min=1"`
	Price    decimal.Decimal `json:"price"    validate:"required"`
}

type OrderResponse struct {
	ID         string          `json:"id"`
	UserID     string          `json:"userId"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
	Status     int             `json:"status"`
	CreatedAt  string          `json:"createdAt"`
	UpdatedAt  string          `json:"updatedAt"`
}

type OrderListResponse struct {
	Orders []OrderResponse `json:"orders"`
	Total  int64           `json:"total"`
}

type OrderItemResponse struct {
	ID       string          `json:"id"`
	OrderID  string          `json:"orderId"`
	TreeID   string          `json:"treeId"`
	ForestID string          `json:"forestId"`
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// OrderUserResponse is the owner summary embedded in the full-order view.
type OrderUserResponse struct {
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	Email     string `json:"email"`
}

// OrderItemLine is one regrouped line of the full-order view.
type OrderItemLine struct {
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

// FullOrderResponse is the order joined with its owning user and all line
// items, regrouped from the flattened join rows.
type FullOrderResponse struct {
	ID         string            `json:"id"`
	TotalPrice decimal.Decimal   `json:"totalPrice"`
	Status     int               `json:"status"`
	CreatedAt  string            `json:"createdAt"`
	UpdatedAt  string            `json:"updatedAt"`
	User       OrderUserResponse `json:"user"`
	Items      []OrderItemLine   `json:"items"`
}
