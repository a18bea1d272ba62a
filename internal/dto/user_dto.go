package dto

import "github.com/shopspring/decimal"

type CreateUserRequest struct {
	Email     string `json:"email"     validate:"required,email"`
	Password  string `json:"password"  validate:"required,min=8"`
	Firstname string `json:"firstname" validate:"omitempty,max=255"`
	Lastname  string `json:"lastname"  validate:"omitempty,max=255"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	Zipcode   string `json:"zipcode"`
	City      string `json:"city"`
	Role      string `json:"role" validate:"required,oneof=user admin"`
}

// UpdateUserRequest is a partial update: nil fields are left untouched.
type UpdateUserRequest struct {
	Email     *string `json:"email"     validate:"omitempty,email"`
	Password  *string `json:"password"  validate:"omitempty,min=8"`
	Firstname *string `json:"firstname" validate:"omitempty,max=255"`
	Lastname  *string `json:"lastname"  validate:"omitempty,max=255"`
	Phone     *string `json:"phone"`
	Address   *string `json:"address"`
	Zipcode   *string `json:"zipcode"`
	City      *string `json:"city"`
	Role      *string `json:"role" validate:"omitempty,oneof=user admin"`
}

type UserResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	Zipcode   string `json:"zipcode"`
	City      string `json:"city"`
	Role      string `json:"role"`
}

type UserListResponse struct {
	Users []UserResponse `json:"users"`
	Total int64          `json:"total"`
}

// ImpactResponse aggregates the environmental effect of every tree unit a
// user has purchased (kg of CO2 absorbed / O2 produced per year).
type ImpactResponse struct {
	TotalCO2 decimal.Decimal `json:"totalCo2"`
	TotalO2  decimal.Decimal `json:"totalO2"`
}
