package service

import (
	"context"
	"testing"
	"time"

	"greenroots/internal/dto"
	"greenroots/internal/model"
	"greenroots/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func orderFixture(t *testing.T) (*stubOrderRepo, *stubLinkRepo, *stubUserRepo, OrderService, *model.Order) {
	t.Helper()
	orders := newStubOrderRepo()
	links := newStubLinkRepo()
	users := newStubUserRepo()
	owner := users.add(&model.User{Email: "ana@example.com", Firstname: "Ana", Role: "user"})
	order := orders.add(&model.Order{UserID: owner.ID, TotalPrice: decimal.NewFromInt(60), Status: model.OrderStatusPending})
	svc := NewOrderService(orders, links, users, nil, nil)
	return orders, links, users, svc, order
}

func TestAddItemDecrementsStock(t *testing.T) {
	_, links, _, svc, order := orderFixture(t)

	treeID, forestID := uuid.New(), uuid.New()
	links.stock[pairKey{tree: treeID, forest: forestID}] = 10

	resp, err := svc.AddItem(context.Background(), order.ID, dto.AddOrderItemRequest{
		TreeID:   treeID.String(),
		ForestID: forestID.String(),
		Name:     "Chêne vert",
		Quantity: 3,
		Price:    decimal.NewFromInt(30),
	})
	require.NoError(t, err)

	assert.Equal(t, 7, links.stock[pairKey{tree: treeID, forest: forestID}])
	assert.Equal(t, order.ID.String(), resp.OrderID)

	items, err := svc.Items(context.Background(), order.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)
}

func TestAddItemStockFailures(t *testing.T) {
	_, links, _, svc, order := orderFixture(t)

	treeID, forestID := uuid.New(), uuid.New()
	links.stock[pairKey{tree: treeID, forest: forestID}] = 2

	t.Run("insufficient stock", func(t *testing.T) {
		_, err := svc.AddItem(context.Background(), order.ID, dto.AddOrderItemRequest{
			TreeID: treeID.String(), ForestID: forestID.String(),
			Name: "Chêne vert", Quantity: 5, Price: decimal.NewFromInt(30),
		})
		assert.ErrorIs(t, err, ErrStockNotUpdated)
		assert.Equal(t, 2, links.stock[pairKey{tree: treeID, forest: forestID}], "stock unchanged on failure")
	})

	t.Run("pair never assigned", func(t *testing.T) {
		_, err := svc.AddItem(context.Background(), order.ID, dto.AddOrderItemRequest{
			TreeID: uuid.NewString(), ForestID: forestID.String(),
			Name: "Chêne vert", Quantity: 1, Price: decimal.NewFromInt(30),
		})
		assert.ErrorIs(t, err, ErrStockNotUpdated)
	})

	t.Run("unknown order", func(t *testing.T) {
		_, err := svc.AddItem(context.Background(), uuid.New(), dto.AddOrderItemRequest{
			TreeID: treeID.String(), ForestID: forestID.String(),
			Name: "Chêne vert", Quantity: 1, Price: decimal.NewFromInt(30),
		})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestOrderCreate(t *testing.T) {
	_, _, users, svc, existing := orderFixture(t)
	owner, err := users.GetByID(context.Background(), existing.UserID)
	require.NoError(t, err)

	t.Run("client-supplied id that already exists is a conflict", func(t *testing.T) {
		id := existing.ID.String()
		_, err := svc.Create(context.Background(), dto.CreateOrderRequest{
			ID: &id, UserID: owner.ID.String(),
			TotalPrice: decimal.NewFromInt(10), Status: model.OrderStatusPending,
		})
		assert.ErrorIs(t, err, ErrConflict)
	})

	t.Run("fresh client-supplied id is honored", func(t *testing.T) {
		id := uuid.NewString()
		resp, err := svc.Create(context.Background(), dto.CreateOrderRequest{
			ID: &id, UserID: owner.ID.String(),
			TotalPrice: decimal.NewFromInt(10), Status: model.OrderStatusPending,
		})
		require.NoError(t, err)
		assert.Equal(t, id, resp.ID)
	})

	t.Run("unknown user is not found", func(t *testing.T) {
		_, err := svc.Create(context.Background(), dto.CreateOrderRequest{
			UserID:     uuid.NewString(),
			TotalPrice: decimal.NewFromInt(10), Status: model.OrderStatusPending,
		})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestGetFullRegroupsRows(t *testing.T) {
	orders, links, users, _, order := orderFixture(t)
	svc := NewOrderService(orders, links, users, nil, nil)

	name1, name2 := "Chêne vert", "Baobab"
	price := decimal.NewFromInt(30)
	qty1, qty2 := 2, 1
	now := time.Now()
	orders.fullRows = []repository.FullOrderRow{
		{OrderID: order.ID, TotalPrice: order.TotalPrice, Status: order.Status, CreatedAt: now, UpdatedAt: now,
			Firstname: "Ana", Lastname: "García", Email: "ana@example.com",
			ItemName: &name1, ItemPrice: &price, ItemQuantity: &qty1},
		{OrderID: order.ID, TotalPrice: order.TotalPrice, Status: order.Status, CreatedAt: now, UpdatedAt: now,
			Firstname: "Ana", Lastname: "García", Email: "ana@example.com",
			ItemName: &name2, ItemPrice: &price, ItemQuantity: &qty2},
	}

	resp, err := svc.GetFull(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", resp.User.Email)
	require.Len(t, resp.Items, 2)
	assert.Equal(t, name1, resp.Items[0].Name)
	assert.Equal(t, qty2, resp.Items[1].Quantity)
}

func TestGetFullWithoutItems(t *testing.T) {
	orders, links, users, _, order := orderFixture(t)
	svc := NewOrderService(orders, links, users, nil, nil)

	now := time.Now()
	orders.fullRows = []repository.FullOrderRow{
		{OrderID: order.ID, TotalPrice: order.TotalPrice, Status: order.Status, CreatedAt: now, UpdatedAt: now,
			Firstname: "Ana", Lastname: "García", Email: "ana@example.com"},
	}

	resp, err := svc.GetFull(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Empty(t, resp.Items)

	orders.fullRows = nil
	_, err = svc.GetFull(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}
