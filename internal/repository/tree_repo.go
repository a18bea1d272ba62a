package repository

import (
	"context"

	"greenroots/internal/model"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// TreeWithStock is a catalog tree enriched with its stock in one forest.
type TreeWithStock struct {
	model.Tree `gorm:"embedded"`
	Stock      int
}

// StockLine is one (counterpart name, stock) pair of an entity's association
// listing, ordered by name so parallel slices built from it stay aligned.
type StockLine struct {
	Name  string
	Stock int
}

// TreeForestRow is one flattened row of the trees/forests join used by the
// nested catalog listing. Forest fields are pointers: a tree without links
// still yields one row (LEFT JOIN).
type TreeForestRow struct {
	model.Tree  `gorm:"embedded"`
	ForestID    *uuid.UUID
	ForestName  *string
	ForestStock *int
}

// TreeRepository is the data access contract for trees. Services depend on
// this interface, not on the concrete GORM implementation, enabling clean
// unit testing via stubs.
type TreeRepository interface {
	List(ctx context.Context, limit, offset int) ([]model.Tree, error)
	ListWithCount(ctx context.Context, limit, offset int) ([]model.Tree, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Tree, error)
	GetAllByField(ctx context.Context, wireField string, value any) ([]model.Tree, error)
	Insert(ctx context.Context, t *model.Tree) error
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) (*model.Tree, error)
	Remove(ctx context.Context, id uuid.UUID) (*model.Tree, error)

	// ListWithForests returns the whole catalog joined with each tree's
	// forests, newest tree first, rows of one tree contiguous.
	ListWithForests(ctx context.Context) ([]TreeForestRow, error)
	// ListByPrice pages the catalog ordered by ascending price, with total.
	ListByPrice(ctx context.Context, limit, offset int) ([]model.Tree, int64, error)
	// StockLines lists the tree's forests with their stock, ordered by
	// forest name.
	StockLines(ctx context.Context, treeID uuid.UUID) ([]StockLine, error)
	// ByForest lists the trees plantable in a forest with their stock there.
	ByForest(ctx context.Context, forestID uuid.UUID) ([]TreeWithStock, error)
	ByCountry(ctx context.Context, countrySlug string) ([]model.Tree, error)
	ByCategory(ctx context.Context, categorySlug string) ([]model.Tree, error)
	// HasOrderItems reports whether any order line references the tree.
	HasOrderItems(ctx context.Context, treeID uuid.UUID) (bool, error)
}

type treeRepo struct {
	*Crud[model.Tree]
	db *gorm.DB
}

func NewTreeRepository(db *gorm.DB) TreeRepository {
	return &treeRepo{Crud: NewCrud[model.Tree](db, "trees"), db: db}
}

func (r *treeRepo) ListWithForests(ctx context.Context) ([]TreeForestRow, error) {
	var rows []TreeForestRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			t.*,
			f.id     AS forest_id,
			f.name   AS forest_name,
			ft.stock AS forest_stock
		FROM trees t
		LEFT JOIN forest_trees ft ON ft.tree_id = t.id
		LEFT JOIN forests f ON f.id = ft.forest_id
		ORDER BY t.created_at DESC, t.id, f.name`).Scan(&rows).Error
	return rows, err
}

func (r *treeRepo) ListByPrice(ctx context.Context, limit, offset int) ([]model.Tree, int64, error) {
	var trees []model.Tree
	var total int64

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return r.db.WithContext(gctx).Model(&model.Tree{}).
			Order("price ASC").
			Limit(limit).Offset(offset).
			Find(&trees).Error
	})
	g.Go(func() error {
		return r.db.WithContext(gctx).Model(&model.Tree{}).Count(&total).Error
	})
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}
	return trees, total, nil
}

func (r *treeRepo) StockLines(ctx context.Context, treeID uuid.UUID) ([]StockLine, error) {
	var lines []StockLine
	err := r.db.WithContext(ctx).Raw(`
		SELECT f.name, ft.stock
		FROM forest_trees ft
		JOIN forests f ON f.id = ft.forest_id
		WHERE ft.tree_id = ?
		ORDER BY f.name`, treeID).Scan(&lines).Error
	return lines, err
}

func (r *treeRepo) ByForest(ctx context.Context, forestID uuid.UUID) ([]TreeWithStock, error) {
	var rows []TreeWithStock
	err := r.db.WithContext(ctx).Raw(`
		SELECT DISTINCT t.*, ft.stock
		FROM trees t
		JOIN forest_trees ft ON ft.tree_id = t.id
		WHERE ft.forest_id = ?`, forestID).Scan(&rows).Error
	return rows, err
}

func (r *treeRepo) ByCountry(ctx context.Context, countrySlug string) ([]model.Tree, error) {
	var trees []model.Tree
	err := r.db.WithContext(ctx).Raw(`
		SELECT DISTINCT t.*
		FROM trees t
		JOIN forest_trees ft ON t.id = ft.tree_id
		JOIN forests f ON ft.forest_id = f.id
		WHERE f.country_slug = ?`, countrySlug).Scan(&trees).Error
	return trees, err
}

func (r *treeRepo) ByCategory(ctx context.Context, categorySlug string) ([]model.Tree, error) {
	var trees []model.Tree
	err := r.db.WithContext(ctx).Model(&model.Tree{}).
		Where("category_slug = ?", categorySlug).
		Find(&trees).Error
	return trees, err
}

func (r *treeRepo) HasOrderItems(ctx context.Context, treeID uuid.UUID) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.OrderItem{}).
		Where("tree_id = ?", treeID).
		Count(&n).Error
	return n > 0, err
}
