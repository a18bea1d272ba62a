package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrStockNotUpdated is returned by DecrementStockTx when the guarded update
// touched zero rows: either no junction row exists for the (tree, forest)
// pair, or the remaining stock is smaller than the requested quantity.
var ErrStockNotUpdated = errors.New("stock not updated")

// Assignment declares the desired stock for one counterpart of a
// reconciliation. Which side is the counterpart depends on the call:
// ReconcileForTree takes forest ids, ReconcileForForest takes tree ids.
type Assignment struct {
	CounterpartID uuid.UUID
	Stock         int
}

// LinkRepository owns the forest_trees junction table: full-state
// reconciliation of one entity's association set and the guarded stock
// decrement used by order-item placement.
type LinkRepository interface {
	// ReconcileForTree replaces the set of forests carrying treeID with
	// exactly the desired list. Runs in one transaction: upserts in input
	// order (duplicate counterpart ids: last one wins), then prunes every
	// row whose forest is not in the list. An empty list removes all rows
	// for the tree.
	ReconcileForTree(ctx context.Context, treeID uuid.UUID, desired []Assignment) error
	// ReconcileForForest is the mirror operation from the forest side.
	ReconcileForForest(ctx context.Context, forestID uuid.UUID, desired []Assignment) error
	// DecrementStockTx atomically applies stock = stock - quantity to the
	// (tree, forest) cell, guarded by stock >= quantity so stock can never
	// go negative. Must run inside the caller's transaction.
	DecrementStockTx(tx *gorm.DB, treeID, forestID uuid.UUID, quantity int) error
	// HasLinksForTree / HasLinksForForest back the referential delete checks.
	HasLinksForTree(ctx context.Context, treeID uuid.UUID) (bool, error)
	HasLinksForForest(ctx context.Context, forestID uuid.UUID) (bool, error)
}

type linkRepo struct{ db *gorm.DB }

func NewLinkRepository(db *gorm.DB) LinkRepository { return &linkRepo{db: db} }

func (r *linkRepo) ReconcileForTree(ctx context.Context, treeID uuid.UUID, desired []Assignment) error {
	return r.reconcile(ctx, "tree_id", "forest_id", treeID, desired)
}

func (r *linkRepo) ReconcileForForest(ctx context.Context, forestID uuid.UUID, desired []Assignment) error {
	return r.reconcile(ctx, "forest_id", "tree_id", forestID, desired)
}

// reconcile is the shared upsert-then-prune implementation. ownerCol and
// counterCol are always the literal junction column names, never user input.
func (r *linkRepo) reconcile(ctx context.Context, ownerCol, counterCol string, ownerID uuid.UUID, desired []Assignment) error {
	upsert := fmt.Sprintf(`
		INSERT INTO forest_trees (%s, %s, stock, created_at, updated_at)
		VALUES (?, ?, ?, now(), now())
		ON CONFLICT (forest_id, tree_id)
		DO UPDATE SET stock = EXCLUDED.stock, updated_at = now()`,
		ownerCol, counterCol)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, a := range desired {
			if err := tx.Exec(upsert, ownerID, a.CounterpartID, a.Stock).Error; err != nil {
				return err
			}
		}

		keep := counterpartIDs(desired)
		if len(keep) == 0 {
			// Empty desired set: the payload is the complete state, so
			// every existing link of the owner goes away.
			return tx.Exec(
				fmt.Sprintf(`DELETE FROM forest_trees WHERE %s = ?`, ownerCol),
				ownerID).Error
		}
		return tx.Exec(
			fmt.Sprintf(`DELETE FROM forest_trees WHERE %s = ? AND %s NOT IN ?`, ownerCol, counterCol),
			ownerID, keep).Error
	})
}

// counterpartIDs returns the distinct counterpart ids of the desired set,
// in first-seen order. Duplicates are legal in the input (the later upsert
// wins); they collapse to one membership entry for the prune step.
func counterpartIDs(desired []Assignment) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(desired))
	ids := make([]uuid.UUID, 0, len(desired))
	for _, a := range desired {
		if _, dup := seen[a.CounterpartID]; dup {
			continue
		}
		seen[a.CounterpartID] = struct{}{}
		ids = append(ids, a.CounterpartID)
	}
	return ids
}

func (r *linkRepo) DecrementStockTx(tx *gorm.DB, treeID, forestID uuid.UUID, quantity int) error {
	res := tx.Exec(`
		UPDATE forest_trees
		SET stock = stock - ?, updated_at = now()
		WHERE tree_id = ? AND forest_id = ? AND stock >= ?`,
		quantity, treeID, forestID, quantity)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStockNotUpdated
	}
	return nil
}

func (r *linkRepo) HasLinksForTree(ctx context.Context, treeID uuid.UUID) (bool, error) {
	return r.exists(ctx, "tree_id", treeID)
}

func (r *linkRepo) HasLinksForForest(ctx context.Context, forestID uuid.UUID) (bool, error) {
	return r.exists(ctx, "forest_id", forestID)
}

func (r *linkRepo) exists(ctx context.Context, col string, id uuid.UUID) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Table("forest_trees").
		Where(col+" = ?", id).
		Count(&n).Error
	return n > 0, err
}
