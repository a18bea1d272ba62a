package service

import (
	"errors"

	"greenroots/internal/repository"

	"gorm.io/gorm"
)

// Sentinel errors of the service layer. Handlers translate these onto HTTP
// statuses; everything else surfaces as an internal error.
var (
	ErrNotFound           = errors.New("resource not found")
	ErrConflict           = errors.New("resource already exists")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrReferentialBlock   = errors.New("resource is referenced and cannot be deleted")

	// ErrStockNotUpdated re-exports the ledger sentinel so handlers depend on
	// a single error surface.
	ErrStockNotUpdated = repository.ErrStockNotUpdated
)

// orNotFound maps gorm's record-not-found onto the service taxonomy.
func orNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
