package persistence

import (
	"context"
	"database/sql"
	"fmt"

	"sales/src/shared/domain/transaction"
)

// PostgresTxManager implementa transaction.Manager sobre una transacción
// real de PostgreSQL. Todos los efectos ejecutados dentro de fn comparten
// la misma *sql.Tx y se confirman o revierten juntos.
type PostgresTxManager struct {
	db *sql.DB
}

// NewPostgresTxManager crea una nueva instancia del manager
func NewPostgresTxManager(db *sql.DB) *PostgresTxManager {
	return &PostgresTxManager{
		db: db,
	}
}

// WithTransaction ejecuta fn dentro de una transacción
func (m *PostgresTxManager) WithTransaction(ctx context.Context, fn func(tx transaction.Tx) error) error {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("error committing transaction: %w", err)
	}

	return nil
}
