package usecase

import (
	"bytes"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestOrderedProductIDs(t *testing.T) {
	quantities := make(map[uuid.UUID]int)
	for i := 0; i < 10; i++ {
		quantities[uuid.New()] = i + 1
	}

	ids := orderedProductIDs(quantities)
	require.Len(t, ids, len(quantities))
	for i := 1; i < len(ids); i++ {
		require.Negative(t, bytes.Compare(ids[i-1][:], ids[i][:]))
	}

	// El orden es estable entre invocaciones
	require.Equal(t, ids, orderedProductIDs(quantities))
}
