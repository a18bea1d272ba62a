package service

import (
	"context"
	"strings"

	"greenroots/internal/dto"
	"greenroots/internal/repository"
	"greenroots/internal/slug"
)

type SearchService interface {
	// Search matches the term against tree and forest names, accent- and
	// case-insensitively. Each hit carries a type discriminator.
	Search(ctx context.Context, term string) ([]dto.SearchResult, error)
}

type searchService struct {
	repo repository.SearchRepository
}

func NewSearchService(repo repository.SearchRepository) SearchService {
	return &searchService{repo: repo}
}

func (s *searchService) Search(ctx context.Context, term string) ([]dto.SearchResult, error) {
	// The term is folded here and the columns are folded with unaccent() in
	// SQL, so "chene" finds "Chêne" and vice versa.
	pattern := "%" + slug.Fold(strings.TrimSpace(term)) + "%"
	rows, err := s.repo.Search(ctx, pattern)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}

	out := make([]dto.SearchResult, 0, len(rows))
	for i := range rows {
		r := &rows[i]
		out = append(out, dto.SearchResult{
			Type:           r.Type,
			ID:             r.ID.String(),
			Name:           r.Name,
			Image:          r.Image,
			Description:    r.Description,
			ScientificName: r.ScientificName,
			Category:       r.Category,
			CategorySlug:   r.CategorySlug,
			CO2:            r.CO2,
			O2:             r.O2,
			Price:          r.Price,
			Association:    r.Association,
			Country:        r.Country,
			CountrySlug:    r.CountrySlug,
			LocationX:      r.LocationX,
			LocationY:      r.LocationY,
			CreatedAt:      isoTime(r.CreatedAt),
			UpdatedAt:      isoTime(r.UpdatedAt),
		})
	}
	return out, nil
}
