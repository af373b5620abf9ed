package infra

import (
	"fmt"

	"github.com/Faroffweb/Gst-Trail/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate to
// create / update all tables, then applies the idempotent SQL patches that
// GORM cannot express (range check constraints on quantities and rates).
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

	if err := RunMigrations(db); err != nil {
		return nil, err
	}

	return db, nil
}

// RunMigrations applies the schema. Also used by integration tests against a
// scratch database.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Unit{},
		&model.Category{},
		&model.Product{},
		&model.Purchase{},
		&model.Customer{},
		&model.Invoice{},
		&model.InvoiceItem{},
		&model.StockMovement{},
		&model.CompanyProfile{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return applySchemaPatches(db)
}

// applySchemaPatches adds the range check constraints AutoMigrate cannot
// declare. Each statement is guarded by an existence check so re-running on
// an already-patched schema is a no-op.
func applySchemaPatches(db *gorm.DB) error {
	patches := []struct{ name, table, check string }{
		{"chk_purchases_quantity_positive", "purchases", "quantity > 0"},
		{"chk_invoice_items_quantity_positive", "invoice_items", "quantity > 0"},
		{"chk_invoice_items_unit_price_nonneg", "invoice_items", "unit_price >= 0"},
		{"chk_invoice_items_tax_rate_range", "invoice_items", "tax_rate >= 0 AND tax_rate <= 1"},
		{"chk_products_unit_price_nonneg", "products", "unit_price >= 0"},
		{"chk_products_tax_rate_range", "products", "tax_rate >= 0 AND tax_rate <= 1"},
	}

	for _, p := range patches {
		sql := fmt.Sprintf(`
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = '%s') THEN
    ALTER TABLE %s ADD CONSTRAINT %s CHECK (%s);
  END IF;
END $$`, p.name, p.table, p.name, p.check)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", p.name, err)
		}
	}
	return nil
}
