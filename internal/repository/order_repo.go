package repository

import (
	"context"
	"time"

	"greenroots/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// FullOrderRow is one flattened row of the order/user/items join. Item fields
// are pointers because an order without items still yields one row (LEFT
// JOIN). The service regroups these rows into a single response.
type FullOrderRow struct {
	OrderID      uuid.UUID
	TotalPrice   decimal.Decimal
	Status       int
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Firstname    string
	Lastname     string
	Email        string
	ItemName     *string
	ItemPrice    *decimal.Decimal
	ItemQuantity *int
}

// OrderRepository covers orders and their line items. The line-item insert is
// transaction-scoped so order placement can pair it with the stock decrement
// in one atomic unit.
type OrderRepository interface {
	List(ctx context.Context, limit, offset int) ([]model.Order, error)
	ListWithCount(ctx context.Context, limit, offset int) ([]model.Order, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error)
	GetAllByField(ctx context.Context, wireField string, value any) ([]model.Order, error)
	Insert(ctx context.Context, o *model.Order) error
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) (*model.Order, error)

	// FullByID returns the flattened order/user/items join, empty when the
	// order does not exist.
	FullByID(ctx context.Context, id uuid.UUID) ([]FullOrderRow, error)
	ItemsByOrder(ctx context.Context, orderID uuid.UUID) ([]model.OrderItem, error)
	// InsertItemTx creates a line item inside the caller's transaction.
	InsertItemTx(tx *gorm.DB, item *model.OrderItem) error

	DB() *gorm.DB
}

type orderRepo struct {
	*Crud[model.Order]
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepo{Crud: NewCrud[model.Order](db, "orders"), db: db}
}

func (r *orderRepo) FullByID(ctx context.Context, id uuid.UUID) ([]FullOrderRow, error) {
	var rows []FullOrderRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			o.id          AS order_id,
			o.total_price,
			o.status,
			o.created_at,
			o.updated_at,
			u.firstname,
			u.lastname,
			u.email,
			oi.name     AS item_name,
			oi.price    AS item_price,
			oi.quantity AS item_quantity
		FROM orders o
		JOIN users u ON o.user_id = u.id
		LEFT JOIN order_items oi ON o.id = oi.order_id
		WHERE o.id = ?`, id).Scan(&rows).Error
	return rows, err
}

func (r *orderRepo) ItemsByOrder(ctx context.Context, orderID uuid.UUID) ([]model.OrderItem, error) {
	var items []model.OrderItem
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Find(&items).Error
	return items, err
}

func (r *orderRepo) InsertItemTx(tx *gorm.DB, item *model.OrderItem) error {
	return tx.Create(item).Error
}
