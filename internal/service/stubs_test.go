package service

// In-memory repository stubs shared by the service tests. They implement the
// repository interfaces over maps and record the calls the tests assert on.

import (
	"context"
	"time"

	"greenroots/internal/model"
	"greenroots/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ── LinkRepository stub ──────────────────────────────────────────────────────

type pairKey struct{ tree, forest uuid.UUID }

type stubLinkRepo struct {
	stock map[pairKey]int

	reconciledTree   map[uuid.UUID][]repository.Assignment
	reconciledForest map[uuid.UUID][]repository.Assignment
}

func newStubLinkRepo() *stubLinkRepo {
	return &stubLinkRepo{
		stock:            make(map[pairKey]int),
		reconciledTree:   make(map[uuid.UUID][]repository.Assignment),
		reconciledForest: make(map[uuid.UUID][]repository.Assignment),
	}
}

func (s *stubLinkRepo) ReconcileForTree(_ context.Context, treeID uuid.UUID, desired []repository.Assignment) error {
	s.reconciledTree[treeID] = desired
	// Mirror the real contract: upsert in order, prune the rest.
	keep := make(map[uuid.UUID]bool, len(desired))
	for _, a := range desired {
		s.stock[pairKey{tree: treeID, forest: a.CounterpartID}] = a.Stock
		keep[a.CounterpartID] = true
	}
	for k := range s.stock {
		if k.tree == treeID && !keep[k.forest] {
			delete(s.stock, k)
		}
	}
	return nil
}

func (s *stubLinkRepo) ReconcileForForest(_ context.Context, forestID uuid.UUID, desired []repository.Assignment) error {
	s.reconciledForest[forestID] = desired
	keep := make(map[uuid.UUID]bool, len(desired))
	for _, a := range desired {
		s.stock[pairKey{tree: a.CounterpartID, forest: forestID}] = a.Stock
		keep[a.CounterpartID] = true
	}
	for k := range s.stock {
		if k.forest == forestID && !keep[k.tree] {
			delete(s.stock, k)
		}
	}
	return nil
}

func (s *stubLinkRepo) DecrementStockTx(_ *gorm.DB, treeID, forestID uuid.UUID, quantity int) error {
	key := pairKey{tree: treeID, forest: forestID}
	cur, ok := s.stock[key]
	if !ok || cur < quantity {
		return repository.ErrStockNotUpdated
	}
	s.stock[key] = cur - quantity
	return nil
}

func (s *stubLinkRepo) HasLinksForTree(_ context.Context, treeID uuid.UUID) (bool, error) {
	for k := range s.stock {
		if k.tree == treeID {
			return true, nil
		}
	}
	return false, nil
}

func (s *stubLinkRepo) HasLinksForForest(_ context.Context, forestID uuid.UUID) (bool, error) {
	for k := range s.stock {
		if k.forest == forestID {
			return true, nil
		}
	}
	return false, nil
}

var _ repository.LinkRepository = (*stubLinkRepo)(nil)

// ── TreeRepository stub ──────────────────────────────────────────────────────

type stubTreeRepo struct {
	trees         map[uuid.UUID]*model.Tree
	stockLines    []repository.StockLine
	hasOrderItems bool

	updatedFields map[string]any
}

func newStubTreeRepo() *stubTreeRepo {
	return &stubTreeRepo{trees: make(map[uuid.UUID]*model.Tree)}
}

func (s *stubTreeRepo) List(_ context.Context, limit, offset int) ([]model.Tree, error) {
	out := make([]model.Tree, 0, len(s.trees))
	for _, t := range s.trees {
		out = append(out, *t)
	}
	return out, nil
}

func (s *stubTreeRepo) ListWithCount(ctx context.Context, limit, offset int) ([]model.Tree, int64, error) {
	out, err := s.List(ctx, limit, offset)
	return out, int64(len(out)), err
}

func (s *stubTreeRepo) GetByID(_ context.Context, id uuid.UUID) (*model.Tree, error) {
	t, ok := s.trees[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return t, nil
}

func (s *stubTreeRepo) GetAllByField(_ context.Context, _ string, _ any) ([]model.Tree, error) {
	return nil, nil
}

func (s *stubTreeRepo) Insert(_ context.Context, t *model.Tree) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	t.CreatedAt = time.Now()
	t.UpdatedAt = t.CreatedAt
	cloned := *t
	s.trees[t.ID] = &cloned
	return nil
}

func (s *stubTreeRepo) UpdateFields(_ context.Context, id uuid.UUID, fields map[string]any) (*model.Tree, error) {
	t, ok := s.trees[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	s.updatedFields = fields
	return t, nil
}

func (s *stubTreeRepo) Remove(_ context.Context, id uuid.UUID) (*model.Tree, error) {
	t, ok := s.trees[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	delete(s.trees, id)
	return t, nil
}

func (s *stubTreeRepo) ListWithForests(_ context.Context) ([]repository.TreeForestRow, error) {
	return nil, nil
}

func (s *stubTreeRepo) ListByPrice(ctx context.Context, limit, offset int) ([]model.Tree, int64, error) {
	return s.ListWithCount(ctx, limit, offset)
}

func (s *stubTreeRepo) StockLines(_ context.Context, _ uuid.UUID) ([]repository.StockLine, error) {
	return s.stockLines, nil
}

func (s *stubTreeRepo) ByForest(_ context.Context, _ uuid.UUID) ([]repository.TreeWithStock, error) {
	return nil, nil
}

func (s *stubTreeRepo) ByCountry(_ context.Context, _ string) ([]model.Tree, error) {
	return nil, nil
}

func (s *stubTreeRepo) ByCategory(_ context.Context, _ string) ([]model.Tree, error) {
	return nil, nil
}

func (s *stubTreeRepo) HasOrderItems(_ context.Context, _ uuid.UUID) (bool, error) {
	return s.hasOrderItems, nil
}

var _ repository.TreeRepository = (*stubTreeRepo)(nil)

// ── ForestRepository stub ────────────────────────────────────────────────────

type stubForestRepo struct {
	forests       map[uuid.UUID]*model.Forest
	stockLines    []repository.StockLine
	hasOrderItems bool
}

func newStubForestRepo() *stubForestRepo {
	return &stubForestRepo{forests: make(map[uuid.UUID]*model.Forest)}
}

func (s *stubForestRepo) List(_ context.Context, limit, offset int) ([]model.Forest, error) {
	out := make([]model.Forest, 0, len(s.forests))
	for _, f := range s.forests {
		out = append(out, *f)
	}
	return out, nil
}

func (s *stubForestRepo) ListWithCount(ctx context.Context, limit, offset int) ([]model.Forest, int64, error) {
	out, err := s.List(ctx, limit, offset)
	return out, int64(len(out)), err
}

func (s *stubForestRepo) GetByID(_ context.Context, id uuid.UUID) (*model.Forest, error) {
	f, ok := s.forests[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return f, nil
}

func (s *stubForestRepo) GetAllByField(_ context.Context, _ string, _ any) ([]model.Forest, error) {
	return nil, nil
}

func (s *stubForestRepo) Insert(_ context.Context, f *model.Forest) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	f.CreatedAt = time.Now()
	f.UpdatedAt = f.CreatedAt
	cloned := *f
	s.forests[f.ID] = &cloned
	return nil
}

func (s *stubForestRepo) UpdateFields(_ context.Context, id uuid.UUID, _ map[string]any) (*model.Forest, error) {
	f, ok := s.forests[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return f, nil
}

func (s *stubForestRepo) Remove(_ context.Context, id uuid.UUID) (*model.Forest, error) {
	f, ok := s.forests[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	delete(s.forests, id)
	return f, nil
}

func (s *stubForestRepo) StockLines(_ context.Context, _ uuid.UUID) ([]repository.StockLine, error) {
	return s.stockLines, nil
}

func (s *stubForestRepo) ByTree(_ context.Context, _ uuid.UUID) ([]repository.ForestWithStock, error) {
	return nil, nil
}

func (s *stubForestRepo) HasOrderItems(_ context.Context, _ uuid.UUID) (bool, error) {
	return s.hasOrderItems, nil
}

var _ repository.ForestRepository = (*stubForestRepo)(nil)

// ── UserRepository stub ──────────────────────────────────────────────────────

type stubUserRepo struct {
	users     map[uuid.UUID]*model.User
	byEmail   map[string]*model.User
	hasOrders bool
	impact    repository.Impact

	updatedFields map[string]any
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{
		users:   make(map[uuid.UUID]*model.User),
		byEmail: make(map[string]*model.User),
	}
}

func (s *stubUserRepo) add(u *model.User) *model.User {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	cloned := *u
	s.users[u.ID] = &cloned
	s.byEmail[u.Email] = s.users[u.ID]
	return s.users[u.ID]
}

func (s *stubUserRepo) List(_ context.Context, limit, offset int) ([]model.User, error) {
	out := make([]model.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, *u)
	}
	return out, nil
}

func (s *stubUserRepo) ListWithCount(ctx context.Context, limit, offset int) ([]model.User, int64, error) {
	out, err := s.List(ctx, limit, offset)
	return out, int64(len(out)), err
}

func (s *stubUserRepo) GetByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (s *stubUserRepo) Insert(_ context.Context, u *model.User) error {
	s.add(u)
	return nil
}

func (s *stubUserRepo) UpdateFields(_ context.Context, id uuid.UUID, fields map[string]any) (*model.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	s.updatedFields = fields
	return u, nil
}

func (s *stubUserRepo) Remove(_ context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	delete(s.users, id)
	delete(s.byEmail, u.Email)
	return u, nil
}

func (s *stubUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	u, ok := s.byEmail[email]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (s *stubUserRepo) ImpactByUser(_ context.Context, _ uuid.UUID) (*repository.Impact, error) {
	impact := s.impact
	return &impact, nil
}

func (s *stubUserRepo) HasOrders(_ context.Context, _ uuid.UUID) (bool, error) {
	return s.hasOrders, nil
}

var _ repository.UserRepository = (*stubUserRepo)(nil)

// ── OrderRepository stub ─────────────────────────────────────────────────────

type stubOrderRepo struct {
	orders   map[uuid.UUID]*model.Order
	items    []model.OrderItem
	fullRows []repository.FullOrderRow
}

func newStubOrderRepo() *stubOrderRepo {
	return &stubOrderRepo{orders: make(map[uuid.UUID]*model.Order)}
}

func (s *stubOrderRepo) add(o *model.Order) *model.Order {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	cloned := *o
	s.orders[o.ID] = &cloned
	return s.orders[o.ID]
}

func (s *stubOrderRepo) List(_ context.Context, limit, offset int) ([]model.Order, error) {
	out := make([]model.Order, 0, len(s.orders))
	for _, o := range s.orders {
		out = append(out, *o)
	}
	return out, nil
}

func (s *stubOrderRepo) ListWithCount(ctx context.Context, limit, offset int) ([]model.Order, int64, error) {
	out, err := s.List(ctx, limit, offset)
	return out, int64(len(out)), err
}

func (s *stubOrderRepo) GetByID(_ context.Context, id uuid.UUID) (*model.Order, error) {
	o, ok := s.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return o, nil
}

func (s *stubOrderRepo) GetAllByField(_ context.Context, _ string, value any) ([]model.Order, error) {
	userID, _ := value.(uuid.UUID)
	var out []model.Order
	for _, o := range s.orders {
		if o.UserID == userID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (s *stubOrderRepo) Insert(_ context.Context, o *model.Order) error {
	s.add(o)
	return nil
}

func (s *stubOrderRepo) UpdateFields(_ context.Context, id uuid.UUID, fields map[string]any) (*model.Order, error) {
	o, ok := s.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if v, ok := fields["status"].(int); ok {
		o.Status = v
	}
	return o, nil
}

func (s *stubOrderRepo) FullByID(_ context.Context, _ uuid.UUID) ([]repository.FullOrderRow, error) {
	return s.fullRows, nil
}

func (s *stubOrderRepo) ItemsByOrder(_ context.Context, orderID uuid.UUID) ([]model.OrderItem, error) {
	var out []model.OrderItem
	for _, it := range s.items {
		if it.OrderID == orderID {
			out = append(out, it)
		}
	}
	return out, nil
}

func (s *stubOrderRepo) InsertItemTx(_ *gorm.DB, item *model.OrderItem) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	s.items = append(s.items, *item)
	return nil
}

// DB returns nil so runTx takes the unit-test path.
func (s *stubOrderRepo) DB() *gorm.DB { return nil }

var _ repository.OrderRepository = (*stubOrderRepo)(nil)

// ── SearchRepository stub ────────────────────────────────────────────────────

type stubSearchRepo struct {
	lastPattern string
	rows        []repository.SearchRow
}

func (s *stubSearchRepo) Search(_ context.Context, pattern string) ([]repository.SearchRow, error) {
	s.lastPattern = pattern
	return s.rows, nil
}

var _ repository.SearchRepository = (*stubSearchRepo)(nil)
