package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SearchRow is one row of the catalog search union. Type discriminates the
// side ("tree" or "forest"); fields of the other side come back NULL.
type SearchRow struct {
	Type           string
	ID             uuid.UUID
	Name           string
	Image          string
	Description    string
	ScientificName *string
	Category       *string
	CategorySlug   *string
	CO2            *decimal.Decimal `gorm:"column:co2"`
	O2             *decimal.Decimal `gorm:"column:o2"`
	Price          *decimal.Decimal
	Association    *string
	Country        *string
	CountrySlug    *string
	LocationX      *decimal.Decimal
	LocationY      *decimal.Decimal
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type SearchRepository interface {
	// Search matches pattern (an ILIKE pattern, already accent-folded by the
	// caller) against tree and forest names. Columns are folded with
	// Postgres unaccent() so accented names match unaccented queries.
	Search(ctx context.Context, pattern string) ([]SearchRow, error)
}

type searchRepo struct{ db *gorm.DB }

func NewSearchRepository(db *gorm.DB) SearchRepository { return &searchRepo{db: db} }

func (r *searchRepo) Search(ctx context.Context, pattern string) ([]SearchRow, error) {
	var rows []SearchRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			'tree' AS type,
			t.id,
			t.name,
			t.image,
			t.description,
			t.scientific_name,
			t.category,
			t.category_slug,
			t.co2,
			t.o2,
			t.price,
			NULL AS association,
			NULL AS country,
			NULL AS country_slug,
			NULL AS location_x,
			NULL AS location_y,
			t.created_at,
			t.updated_at
		FROM trees t
		WHERE unaccent(t.name) ILIKE ?
		UNION ALL
		SELECT
			'forest' AS type,
			f.id,
			f.name,
			f.image,
			f.description,
			NULL AS scientific_name,
			NULL AS category,
			NULL AS category_slug,
			NULL AS co2,
			NULL AS o2,
			NULL AS price,
			f.association,
			f.country,
			f.country_slug,
			f.location_x,
			f.location_y,
			f.created_at,
			f.updated_at
		FROM forests f
		WHERE unaccent(f.name) ILIKE ?`, pattern, pattern).Scan(&rows).Error
	return rows, err
}
