package service

import (
	"context"

	"greenroots/internal/dto"
	"greenroots/internal/model"
	"greenroots/internal/repository"
	"greenroots/internal/slug"

	"github.com/google/uuid"
)

type ForestService interface {
	List(ctx context.Context, filter dto.ListFilter) (*dto.ForestListResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.ForestResponse, error)
	// GetWithStock returns the forest plus its tree species and stocks as
	// parallel-indexed slices ordered by tree name.
	GetWithStock(ctx context.Context, id uuid.UUID) (*dto.ForestWithStockResponse, error)
	// TreesOf lists the trees plantable in the forest with their stock there.
	TreesOf(ctx context.Context, id uuid.UUID) ([]dto.TreeInForest, error)
	Create(ctx context.Context, req dto.CreateForestRequest) (*dto.ForestResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateForestRequest) (*dto.ForestResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type forestService struct {
	repo  repository.ForestRepository
	trees repository.TreeRepository
	links repository.LinkRepository
}

func NewForestService(repo repository.ForestRepository, trees repository.TreeRepository, links repository.LinkRepository) ForestService {
	return &forestService{repo: repo, trees: trees, links: links}
}

func (s *forestService) List(ctx context.Context, filter dto.ListFilter) (*dto.ForestListResponse, error) {
	var (
		forests []model.Forest
		total   int64
		err     error
	)
	if filter.WithCount {
		forests, total, err = s.repo.ListWithCount(ctx, filter.Limit, filter.Offset)
	} else {
		forests, err = s.repo.List(ctx, filter.Limit, filter.Offset)
		total = int64(len(forests))
	}
	if err != nil {
		return nil, err
	}
	if len(forests) == 0 {
		return nil, ErrNotFound
	}

	resp := &dto.ForestListResponse{Forests: make([]dto.ForestResponse, 0, len(forests)), Total: total}
	for i := range forests {
		resp.Forests = append(resp.Forests, forestToResponse(&forests[i]))
	}
	return resp, nil
}

func (s *forestService) Get(ctx context.Context, id uuid.UUID) (*dto.ForestResponse, error) {
	forest, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, orNotFound(err)
	}
	resp := forestToResponse(forest)
	return &resp, nil
}

func (s *forestService) GetWithStock(ctx context.Context, id uuid.UUID) (*dto.ForestWithStockResponse, error) {
	forest, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, orNotFound(err)
	}
	lines, err := s.repo.StockLines(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := &dto.ForestWithStockResponse{
		ForestResponse: forestToResponse(forest),
		TreeNames:      make([]string, 0, len(lines)),
		Stocks:         make([]int, 0, len(lines)),
	}
	for _, l := range lines {
		resp.TreeNames = append(resp.TreeNames, l.Name)
		resp.Stocks = append(resp.Stocks, l.Stock)
	}
	return resp, nil
}

func (s *forestService) TreesOf(ctx context.Context, id uuid.UUID) ([]dto.TreeInForest, error) {
	rows, err := s.trees.ByForest(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	out := make([]dto.TreeInForest, 0, len(rows))
	for i := range rows {
		out = append(out, dto.TreeInForest{
			TreeResponse: treeToResponse(&rows[i].Tree),
			Stock:        rows[i].Stock,
		})
	}
	return out, nil
}

func (s *forestService) Create(ctx context.Context, req dto.CreateForestRequest) (*dto.ForestResponse, error) {
	forest := &model.Forest{
		Name:        req.Name,
		Association: req.Association,
		Image:       req.Image,
		Description: req.Description,
		Country:     req.Country,
		CountrySlug: slug.Make(req.Country),
		LocationX:   req.LocationX,
		LocationY:   req.LocationY,
	}
	if err := s.repo.Insert(ctx, forest); err != nil {
		return nil, err
	}
	if len(req.TreeAssociations) > 0 {
		desired, err := toAssignments(req.TreeAssociations)
		if err != nil {
			return nil, err
		}
		if err := s.links.ReconcileForForest(ctx, forest.ID, desired); err != nil {
			return nil, err
		}
	}
	resp := forestToResponse(forest)
	return &resp, nil
}

// Update replaces the forest's fields and, when the payload carries an
// association list, reconciles the junction set against it. An empty list
// removes every tree link.
func (s *forestService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateForestRequest) (*dto.ForestResponse, error) {
	fields := map[string]any{
		"name":        req.Name,
		"association": req.Association,
		"image":       req.Image,
		"description": req.Description,
		"country":     req.Country,
		"countrySlug": slug.Make(req.Country),
		"locationX":   req.LocationX,
		"locationY":   req.LocationY,
	}
	forest, err := s.repo.UpdateFields(ctx, id, fields)
	if err != nil {
		return nil, orNotFound(err)
	}

	if req.TreeAssociations != nil {
		desired, err := toAssignments(req.TreeAssociations)
		if err != nil {
			return nil, err
		}
		if err := s.links.ReconcileForForest(ctx, id, desired); err != nil {
			return nil, err
		}
	}
	resp := forestToResponse(forest)
	return &resp, nil
}

// Delete refuses while any tree link or order line still references the
// forest.
func (s *forestService) Delete(ctx context.Context, id uuid.UUID) error {
	linked, err := s.links.HasLinksForForest(ctx, id)
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
