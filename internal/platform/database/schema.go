package database

import (
	"database/sql"
	"fmt"
)

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS notifications (
		id TEXT PRIMARY KEY,
		source TEXT NOT NULL,
		order_id TEXT NOT NULL,
		payment_id TEXT NOT NULL,
		status TEXT NOT NULL,
		success INTEGER NOT NULL DEFAULT 0,
		amount INTEGER NOT NULL DEFAULT 0,
		error_code TEXT,
		payload TEXT,
		received_at INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_notifications_order_id ON notifications(order_id)`,
	`CREATE INDEX IF NOT EXISTS idx_notifications_payment_id ON notifications(payment_id, received_at)`,
}

// Migrate creates the notification store schema. Statements are idempotent.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to apply migration %d: %w", i, err)
		}
	}
	return nil
}
