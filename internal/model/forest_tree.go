package model

import (
	"time"

	"github.com/google/uuid"
)

// ForestTree is the tree↔forest junction row. Stock counts the plantable units
// of the tree species still available in the forest; it must never go negative.
// The (forest_id, tree_id) pair is unique (idx_forest_tree_pair).
type ForestTree struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ForestID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_forest_tree_pair"`
	TreeID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_forest_tree_pair"`
	Stock     int       `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Forest *Forest `gorm:"foreignKey:ForestID"`
	Tree   *Tree   `gorm:"foreignKey:TreeID"`
}

// TableName keeps the junction table name explicit rather than relying on
// GORM's pluralization of the two-word struct name.
func (ForestTree) TableName() string { return "forest_trees" }
