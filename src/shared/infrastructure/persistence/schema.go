package persistence

import (
	"context"
	"database/sql"
	"fmt"
)

// EnsureSchema aplica el esquema completo una única vez al arranque,
// antes de aceptar tráfico. Ningún repositorio verifica el esquema
// por request.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS clients (
			id UUID PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT,
			phone TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS products (
			id UUID PRIMARY KEY,
			name TEXT NOT NULL,
			available_quantity INT NOT NULL CHECK (available_quantity >= 0),
			reserved_quantity INT NOT NULL DEFAULT 0 CHECK (reserved_quantity >= 0),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE SEQUENCE IF NOT EXISTS sale_sequence START 1`,
		`CREATE TABLE IF NOT EXISTS sales (
			id UUID PRIMARY KEY,
			sequence BIGINT NOT NULL UNIQUE,
			public_id TEXT NOT NULL UNIQUE,
			client_id UUID NOT NULL REFERENCES clients(id),
			discount NUMERIC(12,2) NOT NULL DEFAULT 0,
			value NUMERIC(12,2) NOT NULL,
			status TEXT NOT NULL,
			requires_approval BOOLEAN NOT NULL DEFAULT FALSE,
			delivery_date TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS sale_items (
			id UUID PRIMARY KEY,
			sale_id UUID NOT NULL REFERENCES sales(id),
			product_id UUID REFERENCES products(id),
			custom_name TEXT,
			is_custom BOOLEAN NOT NULL DEFAULT FALSE,
			requires_approval BOOLEAN NOT NULL DEFAULT FALSE,
			quantity INT NOT NULL CHECK (quantity > 0),
			unit_price NUMERIC(12,2) NOT NULL,
			discount NUMERIC(12,2) NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS sale_payments (
			id UUID PRIMARY KEY,
			sale_id UUID NOT NULL REFERENCES sales(id),
			method TEXT NOT NULL,
			amount NUMERIC(12,2) NOT NULL,
			installments INT NOT NULL DEFAULT 1 CHECK (installments >= 1)
		)`,
		`CREATE TABLE IF NOT EXISTS monthly_goals (
			id UUID PRIMARY KEY,
			month INT NOT NULL CHECK (month BETWEEN 1 AND 12),
			year INT NOT NULL,
			target NUMERIC(12,2) NOT NULL,
			UNIQUE (month, year)
		)`,
		`CREATE TABLE IF NOT EXISTS finance_expenses (
			id UUID PRIMARY KEY,
			description TEXT NOT NULL,
			category TEXT,
			amount NUMERIC(12,2) NOT NULL,
			spent_at TIMESTAMPTZ NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_sales_status ON sales(status)`,
		`CREATE INDEX IF NOT EXISTS idx_sales_client ON sales(client_id)`,
		`CREATE INDEX IF NOT EXISTS idx_sales_created_at ON sales(created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_sale_items_sale ON sale_items(sale_id)`,
		`CREATE INDEX IF NOT EXISTS idx_sale_payments_sale ON sale_payments(sale_id)`,
	}

	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("error applying schema: %w", err)
		}
	}

	return nil
}
