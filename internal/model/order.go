package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order statuses.
const (
	OrderStatusPending   = 1
	OrderStatusPaid      = 2
	OrderStatusCancelled = 3
)

// Order is a customer purchase. The ID may be supplied by the client for
// idempotent replay; creating an order with an existing ID is a conflict.
type Order struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	TotalPrice decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Status     int             `gorm:"not null;default:1"`
	CreatedAt  time.Time
	UpdatedAt  time.Time `gorm:"index"`

	User  *User       `gorm:"foreignKey:UserID"`
	Items []OrderItem `gorm:"foreignKey:OrderID"`
}
