package database

import (
	"fmt"

	"gorm.io/gorm"
)

// Harden applies (idempotent) Postgres-level schema guarantees on top of
// AutoMigrate:
// - Money column types (NUMERIC(12,2); quantities NUMERIC(12,3))
// - Referential actions: order_items/payments cascade with their order,
//   order_items.fruit_id nulls when the fruit is deleted
// - Basic CHECK constraints
// - Indexes for the payment chain and item joins
// Other dialects (the tests run on SQLite) rely on the model constraint tags.
func Harden() error {
	if DB.Dialector.Name() != "postgres" {
		return nil
	}

	return DB.Transaction(func(tx *gorm.DB) error {
		// --- Enforce decimal scales (idempotent ALTERs) ---
		alters := []string{
			`ALTER TABLE fruits       ALTER COLUMN price         TYPE numeric(10,2)`,
			`ALTER TABLE fruits       ALTER COLUMN price_box     TYPE numeric(10,2)`,
			`ALTER TABLE fruits       ALTER COLUMN price_kg      TYPE numeric(10,2)`,
			`ALTER TABLE fruits       ALTER COLUMN price_bunch   TYPE numeric(10,2)`,
			`ALTER TABLE orders       ALTER COLUMN total         TYPE numeric(12,2)`,
			`ALTER TABLE orders       ALTER COLUMN total_paid    TYPE numeric(12,2)`,
			`ALTER TABLE order_items  ALTER COLUMN price         TYPE numeric(12,2)`,
			`ALTER TABLE order_items  ALTER COLUMN qty           TYPE numeric(12,3)`,
			`ALTER TABLE order_items  ALTER COLUMN total         TYPE numeric(12,2)`,
			`ALTER TABLE payments     ALTER COLUMN amount        TYPE numeric(12,2)`,
			`ALTER TABLE payments     ALTER COLUMN balance_after TYPE numeric(12,2)`,
		}
		for _, stmt := range alters {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("money type migration failed on: %s - %w", stmt, err)
			}
		}

		// --- Helpful indexes (idempotent) ---
		indexes := []string{
			`CREATE INDEX IF NOT EXISTS idx_payments_order_created ON payments (order_id, created_at)`,
			`CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items (order_id)`,
			`CREATE INDEX IF NOT EXISTS idx_order_items_fruit ON order_items (fruit_id)`,
			`CREATE UNIQUE INDEX IF NOT EXISTS idx_idempotency_keys_key ON idempotency_keys (key)`,
		}
		for _, stmt := range indexes {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("index migration failed on: %s - %w", stmt, err)
			}
		}

		// --- Referential actions ---
		fks := []struct{ name, stmt string }{
			{"fk_order_items_order", `
DO $$
BEGIN
	IF NOT EXISTS (
		SELECT 1 FROM pg_constraint
		WHERE conrelid = 'order_items'::regclass
		  AND conname  = 'fk_order_items_order'
	) THEN
		ALTER TABLE order_items
		ADD CONSTRAINT fk_order_items_order
		FOREIGN KEY (order_id) REFERENCES orders(id)
		ON DELETE CASCADE;
	END IF;
END $$;`},
			{"fk_order_items_fruit", `
DO $$
BEGIN
	IF NOT EXISTS (
		SELECT 1 FROM pg_constraint
		WHERE conrelid = 'order_items'::regclass
		  AND conname  = 'fk_order_items_fruit'
	) THEN
		ALTER TABLE order_items
		ADD CONSTRAINT fk_order_items_fruit
		FOREIGN KEY (fruit_id) REFERENCES fruits(id)
		ON DELETE SET NULL;
	END IF;
END $$;`},
			{"fk_payments_order", `
DO $$
BEGIN
	IF NOT EXISTS (
		SELECT 1 FROM pg_constraint
		WHERE conrelid = 'payments'::regclass
		  AND conname  = 'fk_payments_order'
	) THEN
		ALTER TABLE payments
		ADD CONSTRAINT fk_payments_order
		FOREIGN KEY (order_id) REFERENCES orders(id)
		ON DELETE CASCADE;
	END IF;
END $$;`},
		}
		for _, fk := range fks {
			if err := tx.Exec(fk.stmt).Error; err != nil {
				return fmt.Errorf("foreign key migration %s failed: %w", fk.name, err)
			}
		}

		// --- Basic CHECK constraints (idempotent) ---
		checks := []string{
			`DO $$
			BEGIN
				IF NOT EXISTS (
					SELECT 1 FROM pg_constraint
					WHERE conrelid = 'payments'::regclass
					  AND conname  = 'chk_payments_amount_positive'
				) THEN
					ALTER TABLE payments
					ADD CONSTRAINT chk_payments_amount_positive
					CHECK (amount > 0);
				END IF;
			END $$;`,
			`DO $$
			BEGIN
				IF NOT EXISTS (
					SELECT 1 FROM pg_constraint
					WHERE conrelid = 'order_items'::regclass
					  AND conname  = 'chk_order_items_qty_nonneg'
				) THEN
					ALTER TABLE order_items
					ADD CONSTRAINT chk_order_items_qty_nonneg
					CHECK (qty >= 0);
				END IF;
			END $$;`,
			`DO $$
			BEGIN
				IF NOT EXISTS (
					SELECT 1 FROM pg_constraint
					WHERE conrelid = 'fruits'::regclass
					  AND conname  = 'chk_fruits_prices_nonneg'
				) THEN
					ALTER TABLE fruits
					ADD CONSTRAINT chk_fruits_prices_nonneg
					CHECK (price >= 0 AND price_box >= 0 AND price_kg >= 0 AND price_bunch >= 0);
				END IF;
			END $$;`,
		}
		for _, stmt := range checks {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("check constraint migration failed: %w", err)
			}
		}

		return nil
	})
}
