package repository

import (
	"context"

	"greenroots/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Impact is the summed environmental effect of every tree unit across a
// user's order items. Sums are NULL-coalesced to zero for users without
// orders.
type Impact struct {
	TotalCO2 decimal.Decimal `gorm:"column:total_co2"`
	TotalO2  decimal.Decimal `gorm:"column:total_o2"`
}

type UserRepository interface {
	List(ctx context.Context, limit, offset int) ([]model.User, error)
	ListWithCount(ctx context.Context, limit, offset int) ([]model.User, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	Insert(ctx context.Context, u *model.User) error
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) (*model.User, error)
	Remove(ctx context.Context, id uuid.UUID) (*model.User, error)

	FindByEmail(ctx context.Context, email string) (*model.User, error)
	// ImpactByUser aggregates co2/o2 absorption over all the user's order
	// items, weighted by quantity.
	ImpactByUser(ctx context.Context, userID uuid.UUID) (*Impact, error)
	// HasOrders reports whether any order belongs to the user.
	HasOrders(ctx context.Context, userID uuid.UUID) (bool, error)
}

type userRepo struct {
	*Crud[model.User]
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepo{Crud: NewCrud[model.User](db, "users"), db: db}
}

func (r *userRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepo) ImpactByUser(ctx context.Context, userID uuid.UUID) (*Impact, error) {
	var impact Impact
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			COALESCE(SUM(t.co2 * oi.quantity), 0) AS total_co2,
			COALESCE(SUM(t.o2 * oi.quantity), 0)  AS total_o2
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		JOIN trees t ON t.id = oi.tree_id
		WHERE o.user_id = ?`, userID).Scan(&impact).Error
	if err != nil {
		return nil, err
	}
	return &impact, nil
}

func (r *userRepo) HasOrders(ctx context.Context, userID uuid.UUID) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("user_id = ?", userID).
		Count(&n).Error
	return n > 0, err
}
