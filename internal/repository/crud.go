package repository

import (
	"context"
	"time"

	"greenroots/internal/casing"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// Crud is the generic table-driven CRUD component shared by every entity
// repository. It is parametrized by the entity struct and its storage table;
// entity repositories embed it and add their composite queries on top.
//
// Field names crossing this boundary use the wire convention (lowerCamelCase)
// and are translated to storage columns via the casing package, so callers
// never deal in column names.
type Crud[T any] struct {
	db    *gorm.DB
	table string
}

func NewCrud[T any](db *gorm.DB, table string) *Crud[T] {
	return &Crud[T]{db: db, table: table}
}

// List returns at most limit rows starting at offset, most recently updated
// first.
func (r *Crud[T]) List(ctx context.Context, limit, offset int) ([]T, error) {
	var rows []T
	err := r.db.WithContext(ctx).Table(r.table).
		Order("updated_at DESC").
		Limit(limit).Offset(offset).
		Find(&rows).Error
	return rows, err
}

// ListWithCount returns the same page as List plus the total row count.
// The two queries run concurrently; gorm.DB is safe for concurrent use.
func (r *Crud[T]) ListWithCount(ctx context.Context, limit, offset int) ([]T, int64, error) {
	var rows []T
	var total int64

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return r.db.WithContext(gctx).Table(r.table).
			Order("updated_at DESC").
			Limit(limit).Offset(offset).
			Find(&rows).Error
	})
	g.Go(func() error {
		return r.db.WithContext(gctx).Table(r.table).Count(&total).Error
	})
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// GetByID returns the row or gorm.ErrRecordNotFound.
func (r *Crud[T]) GetByID(ctx context.Context, id uuid.UUID) (*T, error) {
	var row T
	err := r.db.WithContext(ctx).Table(r.table).Where("id = ?", id).First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// GetAllByField filters by a single wire-named field.
func (r *Crud[T]) GetAllByField(ctx context.Context, wireField string, value any) ([]T, error) {
	var rows []T
	err := r.db.WithContext(ctx).Table(r.table).
		Where(casing.ToSnake(wireField)+" = ?", value).
		Find(&rows).Error
	return rows, err
}

// Insert creates the row and backfills defaulted columns (id, timestamps).
func (r *Crud[T]) Insert(ctx context.Context, row *T) error {
	return r.db.WithContext(ctx).Table(r.table).Create(row).Error
}

// UpdateFields applies a partial update keyed by wire field names, stamps
// updated_at server-side and returns the updated row. Zero matched rows map
// to gorm.ErrRecordNotFound.
func (r *Crud[T]) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) (*T, error) {
	cols := casing.MapToSnake(fields)
	cols["updated_at"] = time.Now().UTC()

	res := r.db.WithContext(ctx).Table(r.table).Where("id = ?", id).Updates(cols)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(ctx, id)
}

// Remove deletes by id and returns the deleted row's snapshot, or
// gorm.ErrRecordNotFound when no row matched.
func (r *Crud[T]) Remove(ctx context.Context, id uuid.UUID) (*T, error) {
	row, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Table(r.table).Where("id = ?", id).Delete(new(T)).Error; err != nil {
		return nil, err
	}
	return row, nil
}

// DB exposes the underlying *gorm.DB so services can open transactions.
func (r *Crud[T]) DB() *gorm.DB { return r.db }
