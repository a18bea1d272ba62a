package service

import (
	"context"

	"greenroots/internal/dto"
	"greenroots/internal/model"
	"greenroots/internal/repository"
	"greenroots/internal/slug"

	"github.com/google/uuid"
)

type TreeService interface {
	List(ctx context.Context, filter dto.ListFilter) (*dto.TreeListResponse, error)
	ListWithForests(ctx context.Context) ([]dto.TreeWithForestsResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.TreeResponse, error)
	// GetWithStock returns the tree plus its forests and stocks as
	// parallel-indexed slices ordered by forest name.
	GetWithStock(ctx context.Context, id uuid.UUID) (*dto.TreeWithStockResponse, error)
	// ForestsOf lists the forests carrying the tree with the stock held there.
	ForestsOf(ctx context.Context, id uuid.UUID) ([]dto.ForestOfTree, error)
	ByCountry(ctx context.Context, countrySlug string) ([]dto.TreeResponse, error)
	ByCategory(ctx context.Context, categorySlug string) ([]dto.TreeResponse, error)
	Create(ctx context.Context, req dto.CreateTreeRequest) (*dto.TreeResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateTreeRequest) (*dto.TreeResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type treeService struct {
	repo    repository.TreeRepository
	forests repository.ForestRepository
	links   repository.LinkRepository
}

func NewTreeService(repo repository.TreeRepository, forests repository.ForestRepository, links repository.LinkRepository) TreeService {
	return &treeService{repo: repo, forests: forests, links: links}
}

func (s *treeService) List(ctx context.Context, filter dto.ListFilter) (*dto.TreeListResponse, error) {
	var (
		trees []model.Tree
		total int64
		err   error
	)
	switch {
	case filter.SortBy == "price":
		trees, total, err = s.repo.ListByPrice(ctx, filter.Limit, filter.Offset)
	case filter.WithCount:
		trees, total, err = s.repo.ListWithCount(ctx, filter.Limit, filter.Offset)
	default:
		trees, err = s.repo.List(ctx, filter.Limit, filter.Offset)
		total = int64(len(trees))
	}
	if err != nil {
		return nil, err
	}
	if len(trees) == 0 {
		return nil, ErrNotFound
	}

	resp := &dto.TreeListResponse{Trees: make([]dto.TreeResponse, 0, len(trees)), Total: total}
	for i := range trees {
		resp.Trees = append(resp.Trees, treeToResponse(&trees[i]))
	}
	return resp, nil
}

// ListWithForests regroups the flattened join rows: rows of one tree are
// contiguous, so a change of id starts a new entry.
func (s *treeService) ListWithForests(ctx context.Context) ([]dto.TreeWithForestsResponse, error) {
	rows, err := s.repo.ListWithForests(ctx)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}

	out := make([]dto.TreeWithForestsResponse, 0, len(rows))
	for i := range rows {
		r := &rows[i]
		if len(out) == 0 || out[len(out)-1].ID != r.Tree.ID.String() {
			out = append(out, dto.TreeWithForestsResponse{
				TreeResponse: treeToResponse(&r.Tree),
				Forests:      make([]dto.ForestLink, 0, 2),
			})
		}
		if r.ForestID == nil {
			continue
		}
		cur := &out[len(out)-1]
		cur.Forests = append(cur.Forests, dto.ForestLink{
			ID:    r.ForestID.String(),
			Name:  *r.ForestName,
			Stock: *r.ForestStock,
		})
	}
	return out, nil
}

func (s *treeService) Get(ctx context.Context, id uuid.UUID) (*dto.TreeResponse, error) {
	tree, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, orNotFound(err)
	}
	resp := treeToResponse(tree)
	return &resp, nil
}

func (s *treeService) GetWithStock(ctx context.Context, id uuid.UUID) (*dto.TreeWithStockResponse, error) {
	tree, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, orNotFound(err)
	}
	lines, err := s.repo.StockLines(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := &dto.TreeWithStockResponse{
		TreeResponse: treeToResponse(tree),
		ForestNames:  make([]string, 0, len(lines)),
		Stocks:       make([]int, 0, len(lines)),
	}
	for _, l := range lines {
		resp.ForestNames = append(resp.ForestNames, l.Name)
		resp.Stocks = append(resp.Stocks, l.Stock)
	}
	return resp, nil
}

func (s *treeService) ForestsOf(ctx context.Context, id uuid.UUID) ([]dto.ForestOfTree, error) {
	rows, err := s.forests.ByTree(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	out := make([]dto.ForestOfTree, 0, len(rows))
	for i := range rows {
		out = append(out, dto.ForestOfTree{
			ForestResponse: forestToResponse(&rows[i].Forest),
			Stock:          rows[i].Stock,
		})
	}
	return out, nil
}

func (s *treeService) ByCountry(ctx context.Context, countrySlug string) ([]dto.TreeResponse, error) {
	trees, err := s.repo.ByCountry(ctx, countrySlug)
	if err != nil {
		return nil, err
	}
	return treesToResponses(trees)
}

func (s *treeService) ByCategory(ctx context.Context, categorySlug string) ([]dto.TreeResponse, error) {
	trees, err := s.repo.ByCategory(ctx, categorySlug)
	if err != nil {
		return nil, err
	}
	return treesToResponses(trees)
}

func treesToResponses(trees []model.Tree) ([]dto.TreeResponse, error) {
	if len(trees) == 0 {
		return nil, ErrNotFound
	}
	out := make([]dto.TreeResponse, 0, len(trees))
	for i := range trees {
		out = append(out, treeToResponse(&trees[i]))
	}
	return out, nil
}

func (s *treeService) Create(ctx context.Context, req dto.CreateTreeRequest) (*dto.TreeResponse, error) {
	tree := &model.Tree{
		Name:           req.Name,
		ScientificName: req.ScientificName,
		Image:          req.Image,
		Category:       req.Category,
		CategorySlug:   slug.Make(req.Category),
		Description:    req.Description,
		CO2:            req.CO2,
		O2:             req.O2,
		Price:          req.Price,
	}
	if err := s.repo.Insert(ctx, tree); err != nil {
		return nil, err
	}
	if len(req.ForestAssociations) > 0 {
		desired, err := toAssignments(req.ForestAssociations)
		if err != nil {
			return nil, err
		}
		if err := s.links.ReconcileForTree(ctx, tree.ID, desired); err != nil {
			return nil, err
		}
	}
	resp := treeToResponse(tree)
	return &resp, nil
}

// Update replaces the tree's fields and, when the payload carries an
// association list, reconciles the junction set against it. An empty list is
// meaningful: it removes every forest link.
func (s *treeService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateTreeRequest) (*dto.TreeResponse, error) {
	fields := map[string]any{
		"name":           req.Name,
		"scientificName": req.ScientificName,
		"image":          req.Image,
		"category":       req.Category,
		"categorySlug":   slug.Make(req.Category),
		"description":    req.Description,
		"co2":            req.CO2,
		"o2":             req.O2,
		"price":          req.Price,
	}
	tree, err := s.repo.UpdateFields(ctx, id, fields)
	if err != nil {
		return nil, orNotFound(err)
	}

	if req.ForestAssociations != nil {
		desired, err := toAssignments(req.ForestAssociations)
		if err != nil {
			return nil, err
		}
		if err := s.links.ReconcileForTree(ctx, id, desired); err != nil {
			return nil, err
		}
	}
	resp := treeToResponse(tree)
	return &resp, nil
}

// Delete refuses while any forest link or order line still references the
// tree, so purchase history and plantable catalogs stay coherent.
func (s *treeService) Delete(ctx context.Context, id uuid.UUID) error {
	linked, err := s.links.HasLinksForTree(ctx, id)
	if err != nil {
		return err
	}
	if linked {
		return ErrReferentialBlock
	}
	ordered, err := s.repo.HasOrderItems(ctx, id)
	if err != nil {
		return err
	}
	if ordered {
		return ErrReferentialBlock
	}
	_, err = s.repo.Remove(ctx, id)
	return orNotFound(err)
}
