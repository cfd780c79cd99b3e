package persistence

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAppendSearchClause_WithExistingWhere(t *testing.T) {
	query := "SELECT * FROM sales s LEFT JOIN clients c ON c.id = s.client_id WHERE s.status = $1 ORDER BY s.sequence DESC LIMIT 20 OFFSET 0"
	args := []interface{}{"PENDING"}

	got, gotArgs := appendSearchClause(query, args, "V00")

	require.Equal(t,
		"SELECT * FROM sales s LEFT JOIN clients c ON c.id = s.client_id WHERE s.status = $1 AND (s.public_id ILIKE $2 OR c.name ILIKE $2) ORDER BY s.sequence DESC LIMIT 20 OFFSET 0",
		got)
	require.Equal(t, []interface{}{"PENDING", "%V00%"}, gotArgs)
}

func TestAppendSearchClause_WithoutWhere(t *testing.T) {
	query := "SELECT * FROM sales s LEFT JOIN clients c ON c.id = s.client_id ORDER BY s.sequence DESC"

	got, gotArgs := appendSearchClause(query, nil, "maría")

	require.Equal(t,
		"SELECT * FROM sales s LEFT JOIN clients c ON c.id = s.client_id WHERE (s.public_id ILIKE $1 OR c.name ILIKE $1) ORDER BY s.sequence DESC",
		got)
	require.Equal(t, []interface{}{"%maría%"}, gotArgs)
}
