package sequencer

import (
	"context"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatPublicID(t *testing.T) {
	// Relleno a 4 dígitos, sin truncar cuando la secuencia crece
	require.Equal(t, "V0001", FormatPublicID("V", 1))
	require.Equal(t, "V0042", FormatPublicID("V", 42))
	require.Equal(t, "V9999", FormatPublicID("V", 9999))
	require.Equal(t, "V10000", FormatPublicID("V", 10000))
	require.Equal(t, "VENTA-0007", FormatPublicID("VENTA-", 7))
}

func TestMemorySequencer_ConcurrentNext(t *testing.T) {
	seq := NewMemorySequencer("V")
	ctx := context.Background()

	const workers = 20
	const perWorker = 50

	var mu sync.Mutex
	var wg sync.WaitGroup
	seen := make([]int64, 0, workers*perWorker)

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				n, publicID, err := seq.Next(ctx)
				require.NoError(t, err)
				require.Equal(t, FormatPublicID("V", n), publicID)

				mu.Lock()
				seen = append(seen, n)
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	// Sin duplicados y sin saltos: exactamente 1..N
	sort.Slice(seen, func(i, j int) bool { return seen[i] < seen[j] })
	require.Len(t, seen, workers*perWorker)
	for i, n := range seen {
		require.Equal(t, int64(i+1), n)
	}
}
