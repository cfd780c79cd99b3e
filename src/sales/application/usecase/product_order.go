package usecase

import (
	"bytes"
	"sort"

	"github.com/google/uuid"
)

// orderedProductIDs devuelve las claves del mapa de cantidades en orden
// estable. El ledger lockea fila por fila: tocando los productos siempre
// en el mismo orden, dos transacciones concurrentes sobre los mismos
// productos no pueden quedar esperándose mutuamente.
func orderedProductIDs(quantities map[uuid.UUID]int) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(quantities))
	for id := range quantities {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return bytes.Compare(ids[i][:], ids[j][:]) < 0
	})
	return ids
}
