package directory

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"sales/src/sales/domain/entity"
)

// ClientPostgresDirectory implementa ClientDirectory usando PostgreSQL
type ClientPostgresDirectory struct {
	db *sql.DB
}

// NewClientPostgresDirectory crea una nueva instancia del directorio
func NewClientPostgresDirectory(db *sql.DB) *ClientPostgresDirectory {
	return &ClientPostgresDirectory{
		db: db,
	}
}

// GetClient busca un cliente por id
func (d *ClientPostgresDirectory) GetClient(ctx context.Context, clientID uuid.UUID) (*entity.Client, error) {
	query := `
		SELECT id, name, email, phone, created_at
		FROM clients
		WHERE id = $1
	`

	client := &entity.Client{}
	var email, phone sql.NullString
	err := d.db.QueryRowContext(ctx, query, clientID).Scan(
		&client.ID,
		&client.Name,
		&email,
		&phone,
		&client.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, entity.ErrClientNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error finding client: %w", err)
	}

	client.Email = email.String
	client.Phone = phone.String
	return client, nil
}
