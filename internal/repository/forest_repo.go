package repository

import (
	"context"

	"greenroots/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ForestWithStock is a forest enriched with the stock it holds for one tree.
type ForestWithStock struct {
	model.Forest `gorm:"embedded"`
	Stock        int
}

// ForestRepository mirrors TreeRepository from the forest side.
type ForestRepository interface {
	List(ctx context.Context, limit, offset int) ([]model.Forest, error)
	ListWithCount(ctx context.Context, limit, offset int) ([]model.Forest, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Forest, error)
	GetAllByField(ctx context.Context, wireField string, value any) ([]model.Forest, error)
	Insert(ctx context.Context, f *model.Forest) error
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) (*model.Forest, error)
	Remove(ctx context.Context, id uuid.UUID) (*model.Forest, error)

	// StockLines lists the forest's tree species with their stock, ordered
	// by tree name.
	StockLines(ctx context.Context, forestID uuid.UUID) ([]StockLine, error)
	// ByTree lists the forests carrying a tree with the stock held there.
	ByTree(ctx context.Context, treeID uuid.UUID) ([]ForestWithStock, error)
	HasOrderItems(ctx context.Context, forestID uuid.UUID) (bool, error)
}

type forestRepo struct {
	*Crud[model.Forest]
	db *gorm.DB
}

func NewForestRepository(db *gorm.DB) ForestRepository {
	return &forestRepo{Crud: NewCrud[model.Forest](db, "forests"), db: db}
}

func (r *forestRepo) StockLines(ctx context.Context, forestID uuid.UUID) ([]StockLine, error) {
	var lines []StockLine
	err := r.db.WithContext(ctx).Raw(`
		SELECT t.name, ft.stock
		FROM forest_trees ft
		JOIN trees t ON t.id = ft.tree_id
		WHERE ft.forest_id = ?
		ORDER BY t.name`, forestID).Scan(&lines).Error
	return lines, err
}

func (r *forestRepo) ByTree(ctx context.Context, treeID uuid.UUID) ([]ForestWithStock, error) {
	var rows []ForestWithStock
	err := r.db.WithContext(ctx).Raw(`
		SELECT DISTINCT f.*, ft.stock
		FROM forests f
		JOIN forest_trees ft ON ft.forest_id = f.id
		WHERE ft.tree_id = ?`, treeID).Scan(&rows).Error
	return rows, err
}

func (r *forestRepo) HasOrderItems(ctx context.Context, forestID uuid.UUID) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.OrderItem{}).
		Where("forest_id = ?", forestID).
		Count(&n).Error
	return n > 0, err
}
