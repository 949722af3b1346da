package numerator

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockCounter struct {
	mu   sync.Mutex
	vals map[string]int64
	err  error
}

func (m *mockCounter) Next(_ context.Context, key string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return 0, m.err
	}
	if m.vals == nil {
		m.vals = map[string]int64{}
	}
	m.vals[key]++
	return m.vals[key], nil
}

var day = time.Date(2024, 5, 1, 15, 30, 0, 0, time.UTC)

func TestFormat(t *testing.T) {
	assert.Equal(t, "INV-20240501-0001", Format("INV", day, 1))
	assert.Equal(t, "PUR-20240501-0042", Format("PUR", day, 42))
	assert.Equal(t, "INV-20240501-12345", Format("INV", day, 12345))
}

func TestNext_SecuenciaPorDia(t *testing.T) {
	c := &mockCounter{}
	ctx := context.Background()

	n1, err := Next(ctx, c, "INV", day)
	require.NoError(t, err)
	n2, err := Next(ctx, c, "INV", day)
	require.NoError(t, err)
	assert.Equal(t, "INV-20240501-0001", n1)
	assert.Equal(t, "INV-20240501-0002", n2)

	// Otro prefijo y otro día reinician la cuenta.
	p1, err := Next(ctx, c, "PUR", day)
	require.NoError(t, err)
	assert.Equal(t, "PUR-20240501-0001", p1)

	next, err := Next(ctx, c, "INV", day.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Equal(t, "INV-20240502-0001", next)
}

func TestNext_Concurrente_SinDuplicados(t *testing.T) {
	c := &mockCounter{}
	ctx := context.Background()
	const n = 50

	var wg sync.WaitGroup
	var mu sync.Mutex
	seen := make(map[string]bool, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			num, err := Next(ctx, c, "INV", day)
			require.NoError(t, err)
			mu.Lock()
			seen[num] = true
			mu.Unlock()
		}()
	}
	wg.Wait()
	assert.Len(t, seen, n)
}

func TestNext_ErrorDelContador(t *testing.T) {
	boom := errors.New("db caída")
	_, err := Next(context.Background(), &mockCounter{err: boom}, "INV", day)
	assert.ErrorIs(t, err, boom)
}
