package service

import (
	"context"
	"errors"

	"greenroots/internal/dto"
	"greenroots/internal/model"
	"greenroots/internal/repository"
	"greenroots/internal/worker"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type OrderService interface {
	List(ctx context.Context, filter dto.ListFilter) (*dto.OrderListResponse, error)
	ByUser(ctx context.Context, userID uuid.UUID) ([]dto.OrderResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.OrderResponse, error)
	// GetFull returns the order joined with its owner and line items,
	// regrouped from the flattened rows.
	GetFull(ctx context.Context, id uuid.UUID) (*dto.FullOrderResponse, error)
	Items(ctx context.Context, orderID uuid.UUID) ([]dto.OrderItemResponse, error)
	Create(ctx context.Context, req dto.CreateOrderRequest) (*dto.OrderResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateOrderRequest) (*dto.OrderResponse, error)
	// AddItem creates the line item and decrements the matching stock cell in
	// one transaction; either both land or neither does.
	AddItem(ctx context.Context, orderID uuid.UUID, req dto.AddOrderItemRequest) (*dto.OrderItemResponse, error)
}

type orderService struct {
	repo       repository.OrderRepository
	links      repository.LinkRepository
	users      repository.UserRepository
	dispatcher *worker.Dispatcher // nil disables the confirmation email
	rdb        *redis.Client      // nil disables impact-cache invalidation
}

func NewOrderService(
	repo repository.OrderRepository,
	links repository.LinkRepository,
	users repository.UserRepository,
	dispatcher *worker.Dispatcher,
	rdb *redis.Client,
) OrderService {
	return &orderService{repo: repo, links: links, users: users, dispatcher: dispatcher, rdb: rdb}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

func (s *orderService) List(ctx context.Context, filter dto.ListFilter) (*dto.OrderListResponse, error) {
	var (
		orders []model.Order
		total  int64
		err    error
	)
	if filter.WithCount {
		orders, total, err = s.repo.ListWithCount(ctx, filter.Limit, filter.Offset)
	} else {
		orders, err = s.repo.List(ctx, filter.Limit, filter.Offset)
		total = int64(len(orders))
	}
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, ErrNotFound
	}

	resp := &dto.OrderListResponse{Orders: make([]dto.OrderResponse, 0, len(orders)), Total: total}
	for i := range orders {
		resp.Orders = append(resp.Orders, orderToResponse(&orders[i]))
	}
	return resp, nil
}

func (s *orderService) ByUser(ctx context.Context, userID uuid.UUID) ([]dto.OrderResponse, error) {
	orders, err := s.repo.GetAllByField(ctx, "userId", userID)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, ErrNotFound
	}
	out := make([]dto.OrderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, orderToResponse(&orders[i]))
	}
	return out, nil
}

func (s *orderService) Get(ctx context.Context, id uuid.UUID) (*dto.OrderResponse, error) {
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, orNotFound(err)
	}
	resp := orderToResponse(order)
	return &resp, nil
}

func (s *orderService) GetFull(ctx context.Context, id uuid.UUID) (*dto.FullOrderResponse, error) {
	rows, err := s.repo.FullByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}

	head := rows[0]
	resp := &dto.FullOrderResponse{
		ID:         head.OrderID.String(),
		TotalPrice: head.TotalPrice,
		Status:     head.Status,
		CreatedAt:  isoTime(head.CreatedAt),
		UpdatedAt:  isoTime(head.UpdatedAt),
		User: dto.OrderUserResponse{
			Firstname: head.Firstname,
			Lastname:  head.Lastname,
			Email:     head.Email,
		},
		Items: make([]dto.OrderItemLine, 0, len(rows)),
	}
	for _, r := range rows {
		// An order without items yields one row with NULL item columns.
		if r.ItemName == nil {
			continue
		}
		resp.Items = append(resp.Items, dto.OrderItemLine{
			Name:     *r.ItemName,
			Price:    *r.ItemPrice,
			Quantity: *r.ItemQuantity,
		})
	}
	return resp, nil
}

func (s *orderService) Items(ctx context.Context, orderID uuid.UUID) ([]dto.OrderItemResponse, error) {
	if _, err := s.repo.GetByID(ctx, orderID); err != nil {
		return nil, orNotFound(err)
	}
	items, err := s.repo.ItemsByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.OrderItemResponse, 0, len(items))
	for i := range items {
		out = append(out, orderItemToResponse(&items[i]))
	}
	return out, nil
}

// Create accepts an optional client-supplied id so a retried checkout can be
// detected: an id that already exists is a conflict, not a second order.
func (s *orderService) Create(ctx context.Context, req dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return nil, ErrNotFound
	}
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, orNotFound(err)
	}

	order := &model.Order{
		UserID:     userID,
		TotalPrice: req.TotalPrice,
		Status:     req.Status,
	}
	if req.ID != nil {
		id, err := uuid.Parse(*req.ID)
		if err != nil {
			return nil, ErrConflict
		}
		if _, err := s.repo.GetByID(ctx, id); err == nil {
			return nil, ErrConflict
		} else if !errors.Is(err, gorm.ErrRecordNotFound) && !errors.Is(err, ErrNotFound) {
			return nil, err
		}
		order.ID = id
	}

	if err := s.repo.Insert(ctx, order); err != nil {
		return nil, err
	}
	resp := orderToResponse(order)
	return &resp, nil
}

func (s *orderService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateOrderRequest) (*dto.OrderResponse, error) {
	fields := map[string]any{}
	if req.TotalPrice != nil {
		fields["totalPrice"] = *req.TotalPrice
	}
	if req.Status != nil {
		fields["status"] = *req.Status
	}
	if len(fields) == 0 {
		return s.Get(ctx, id)
	}

	order, err := s.repo.UpdateFields(ctx, id, fields)
	if err != nil {
		return nil, orNotFound(err)
	}
	resp := orderToResponse(order)
	return &resp, nil
}

func (s *orderService) AddItem(ctx context.Context, orderID uuid.UUID, req dto.AddOrderItemRequest) (*dto.OrderItemResponse, error) {
	order, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, orNotFound(err)
	}
	treeID, err := uuid.Parse(req.TreeID)
	if err != nil {
		return nil, ErrNotFound
	}
	forestID, err := uuid.Parse(req.ForestID)
	if err != nil {
		return nil, ErrNotFound
	}

	item := &model.OrderItem{
		OrderID:  order.ID,
		TreeID:   treeID,
		ForestID: forestID,
		Name:     req.Name,
		Quantity: req.Quantity,
		Price:    req.Price,
	}
	err = runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.InsertItemTx(tx, item); err != nil {
			return err
		}
		return s.links.DecrementStockTx(tx, treeID, forestID, req.Quantity)
	})
	if err != nil {
		return nil, err
	}

	s.afterItemPlaced(ctx, order, item)

	resp := orderItemToResponse(item)
	return &resp, nil
}

// afterItemPlaced runs the best-effort side effects of a placed line item:
// the owner's cached impact aggregate is stale, and the confirmation email
// goes out through the async queue. Neither failure rolls back the purchase.
func (s *orderService) afterItemPlaced(ctx context.Context, order *model.Order, item *model.OrderItem) {
	if s.rdb != nil {
		if err := s.rdb.Del(ctx, impactKey(order.UserID)).Err(); err != nil {
			log.Warn().Err(err).Str("user_id", order.UserID.String()).Msg("impact cache invalidation failed")
		}
	}
	if s.dispatcher == nil {
		return
	}
	user, err := s.users.GetByID(ctx, order.UserID)
	if err != nil {
		log.Warn().Err(err).Str("order_id", order.ID.String()).Msg("confirmation email skipped: owner lookup failed")
		return
	}
	payload := worker.OrderConfirmationPayload{
		ToEmail:    user.Email,
		Firstname:  user.Firstname,
		OrderID:    order.ID.String(),
		ItemName:   item.Name,
		Quantity:   item.Quantity,
		TotalPrice: order.TotalPrice.StringFixed(2),
	}
	if err := s.dispatcher.EnqueueOrderConfirmation(ctx, payload); err != nil {
		log.Warn().Err(err).Str("order_id", order.ID.String()).Msg("confirmation email enqueue failed")
	}
}
