package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"campuscare/internal/utils"
)

// Migrate applies the schema additively. Every statement is guarded so the
// function is safe to run on every startup against an existing database:
// tables are created only when missing and later columns are added only when
// absent from information_schema.
func Migrate(ctx context.Context, db *pgxpool.Pool) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE,
			password_h TEXT NOT NULL,
			role TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS requests (
			id BIGSERIAL PRIMARY KEY,
			student_id BIGINT NOT NULL REFERENCES users (id),
			title TEXT NOT NULL,
			location TEXT NOT NULL,
			status TEXT NOT NULL,
			priority TEXT NOT NULL,
			description TEXT NOT NULL,
			date DATE NOT NULL,
			worker_id BIGINT REFERENCES users (id),
			notes TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS lost_items (
			id BIGSERIAL PRIMARY KEY,
			student_id BIGINT NOT NULL REFERENCES users (id),
			item_name TEXT NOT NULL,
			description TEXT NOT NULL,
			location_found TEXT NOT NULL,
			date_found DATE NOT NULL,
			image_path TEXT,
			status TEXT NOT NULL DEFAULT 'Unclaimed'
		)`,
		`CREATE TABLE IF NOT EXISTS email_notifications (
			id BIGSERIAL PRIMARY KEY,
			request_id BIGINT REFERENCES requests (id),
			recipient_id BIGINT NOT NULL REFERENCES users (id),
			subject TEXT NOT NULL,
			message TEXT NOT NULL,
			sent_date DATE NOT NULL,
			status TEXT NOT NULL DEFAULT 'Sent'
		)`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(ctx, s); err != nil {
			return fmt.Errorf("create table: %w", err)
		}
	}

	// Columns added after the original schema shipped.
	addColumns := []struct{ table, column, ddl string }{
		{"users", "department", `ALTER TABLE users ADD COLUMN department TEXT`},
		{"users", "status", `ALTER TABLE users ADD COLUMN status TEXT DEFAULT 'Available'`},
		{"requests", "worker_notes", `ALTER TABLE requests ADD COLUMN worker_notes TEXT`},
		{"requests", "image_path", `ALTER TABLE requests ADD COLUMN image_path TEXT`},
		{"requests", "worker_image_path", `ALTER TABLE requests ADD COLUMN worker_image_path TEXT`},
		{"requests", "department", `ALTER TABLE requests ADD COLUMN department TEXT`},
		{"lost_items", "contact_info", `ALTER TABLE lost_items ADD COLUMN contact_info TEXT`},
	}
	for _, c := range addColumns {
		var exists bool
		err := db.QueryRow(ctx, `
			SELECT EXISTS (
				SELECT 1 FROM information_schema.columns
				WHERE table_name = $1 AND column_name = $2
			)`, c.table, c.column).Scan(&exists)
		if err != nil {
			return fmt.Errorf("check column %s.%s: %w", c.table, c.column, err)
		}
		if exists {
			continue
		}
		if _, err := db.Exec(ctx, c.ddl); err != nil {
			return fmt.Errorf("add column %s.%s: %w", c.table, c.column, err)
		}
	}

	return seedAdmin(ctx, db)
}

// seedAdmin creates the default administrator account when the users table
// is empty, so a fresh deployment can be logged into.
func seedAdmin(ctx context.Context, db *pgxpool.Pool) error {
	var n int
	if err := db.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	hash, err := utils.HashPassword("admin123")
	if err != nil {
		return err
	}
	_, err = db.Exec(ctx, `
		INSERT INTO users (name, email, password_h, role)
		VALUES ('Admin', 'admin@campuscare.com', $1, 'Admin')`, hash)
	return err
}
