package infra

import (
	"fmt"
	"time"

	"j5pharmacy/internal/config"
	"j5pharmacy/internal/model"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, bounds the
// connection pool, and runs AutoMigrate plus the idempotent SQL patches GORM
// cannot express (sequences, the NO CATEGORY sentinel seed).
//
// The initial ping is retried with a short backoff — this is the only retry
// loop in the system; business transactions are never retried.
func NewDatabase(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)

	for attempt := 1; ; attempt++ {
		if err = sqlDB.Ping(); err == nil {
			break
		}
		if attempt >= cfg.DBConnectRetries {
			return nil, fmt.Errorf("database unreachable after %d attempts: %w", attempt, err)
		}
		log.Warn().Err(err).Int("attempt", attempt).Msg("database ping failed, retrying")
		time.Sleep(time.Duration(attempt) * time.Second)
	}

	if err := db.AutoMigrate(
		&model.User{},
		&model.Branch{},
		&model.Category{},
		&model.CategoryBarcodeCounter{},
		&model.Product{},
		&model.BranchInventory{},
		&model.Customer{},
		&model.StarPoints{},
		&model.StarPointsTransaction{},
		&model.SalesSession{},
		&model.PharmacistSession{},
		&model.CashReconciliation{},
		&model.Sale{},
		&model.SaleItem{},
		&model.Prescription{},
		&model.PrescriptionItem{},
		&model.ProductArchive{},
		&model.BranchInventoryArchive{},
		&model.CategoryArchive{},
		&model.BranchArchive{},
		&model.CustomerArchive{},
	); err != nil {
		return nil, fmt.Errorf("AutoMigrate: %w", err)
	}

	if err := applySchemaPatches(db); err != nil {
		return nil, fmt.Errorf("schema patches: %w", err)
	}

	return db, nil
}

// applySchemaPatches runs idempotent DDL/seed statements that AutoMigrate
// cannot handle. Safe to re-run on an already-patched database.
func applySchemaPatches(db *gorm.DB) error {
	patches := []struct{ descr, sql string }{
		// Invoice numbers draw from a dedicated sequence so concurrent sales
		// never collide.
		{"invoice number sequence",
			`CREATE SEQUENCE IF NOT EXISTS sales_invoice_seq START 1`},
		// The sentinel category that absorbs products of archived categories.
		{"seed NO CATEGORY sentinel", `
INSERT INTO categories (id, name, prefix, created_at, updated_at)
SELECT gen_random_uuid(), 'NO CATEGORY', 'XX', now(), now()
WHERE NOT EXISTS (SELECT 1 FROM categories WHERE name = 'NO CATEGORY')`},
	}
	for _, p := range patches {
		if err := db.Exec(p.sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", p.descr, err)
		}
	}
	return nil
}
