package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderItem is one order line. (TreeID, ForestID) points at the forest_trees
// stock cell that is decremented when the item is placed; Name and Price are
// snapshots taken at purchase time so later catalog edits don't rewrite
// history.
type OrderItem struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	TreeID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	ForestID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name      string          `gorm:"not null"`
	Quantity  int             `gorm:"not null"`
	Price     decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Tree   *Tree   `gorm:"foreignKey:TreeID"`
	Forest *Forest `gorm:"foreignKey:ForestID"`
}
