package sequencer

import (
	"context"
	"database/sql"
	"fmt"
)

// PostgresSequencer asigna números de venta desde una secuencia nativa
// de PostgreSQL. nextval nunca repite valores aunque la transacción que
// lo pidió revierta, por eso los huecos en la numeración son normales.
type PostgresSequencer struct {
	db     *sql.DB
	prefix string
}

// NewPostgresSequencer crea una nueva instancia del secuenciador
func NewPostgresSequencer(db *sql.DB, prefix string) *PostgresSequencer {
	return &PostgresSequencer{
		db:     db,
		prefix: prefix,
	}
}

// Next retorna el próximo número de venta y su id público
func (s *PostgresSequencer) Next(ctx context.Context) (int64, string, error) {
	var sequence int64
	err := s.db.QueryRowContext(ctx, `SELECT nextval('sale_sequence')`).Scan(&sequence)
	if err != nil {
		return 0, "", fmt.Errorf("error fetching next sale number: %w", err)
	}

	return sequence, FormatPublicID(s.prefix, sequence), nil
}

// FormatPublicID arma el id público a partir del prefijo y la secuencia
func FormatPublicID(prefix string, sequence int64) string {
	return fmt.Sprintf("%s%04d", prefix, sequence)
}
