package infra

import (
	"fmt"

	"greenroots/internal/model"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate
// for all tables, then applies idempotent SQL patches that GORM cannot
// express (extensions, check constraints).
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := applyPreMigrationPatches(db); err != nil {
		return nil, fmt.Errorf("pre-migration patches: %w", err)
	}

	if err := db.AutoMigrate(
		&model.Tree{},
		&model.Forest{},
		&model.ForestTree{},
		&model.User{},
		&model.Order{},
		&model.OrderItem{},
	); err != nil {
		return nil, fmt.Errorf("AutoMigrate: %w", err)
	}

	if err := applySchemaPatches(db); err != nil {
		return nil, fmt.Errorf("schema patches: %w", err)
	}

	return db, nil
}

// applyPreMigrationPatches installs the extensions the models depend on.
// gen_random_uuid() backs every primary key default and unaccent() backs the
// search queries, so both must exist before AutoMigrate runs.
func applyPreMigrationPatches(db *gorm.DB) error {
	patches := []struct{ descr, sql string }{
		{"pgcrypto extension (gen_random_uuid)", `CREATE EXTENSION IF NOT EXISTS pgcrypto`},
		{"unaccent extension (search folding)", `CREATE EXTENSION IF NOT EXISTS unaccent`},
	}
	return applyPatches(db, patches)
}

// applySchemaPatches adds the constraints AutoMigrate does not manage. Each
// statement is guarded by an existence check so re-running on an already
// patched schema is a no-op.
func applySchemaPatches(db *gorm.DB) error {
	patches := []struct{ descr, sql string }{
		{"forest_trees stock must stay non-negative", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'chk_forest_trees_stock') THEN
    ALTER TABLE forest_trees ADD CONSTRAINT chk_forest_trees_stock CHECK (stock >= 0);
  END IF;
END $$`},
		{"orders status limited to known values", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'chk_orders_status') THEN
    ALTER TABLE orders ADD CONSTRAINT chk_orders_status CHECK (status BETWEEN 1 AND 3);
  END IF;
END $$`},
		{"order_items quantity must be positive", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'chk_order_items_quantity') THEN
    ALTER TABLE order_items ADD CONSTRAINT chk_order_items_quantity CHECK (quantity > 0);
  END IF;
END $$`},
	}
	return applyPatches(db, patches)
}

func applyPatches(db *gorm.DB, patches []struct{ descr, sql string }) error {
	for _, p := range patches {
		if err := db.Exec(p.sql).Error; err != nil {
			return fmt.Errorf("%s: %w", p.descr, err)
		}
		log.Debug().Str("patch", p.descr).Msg("schema patch applied")
	}
	return nil
}
