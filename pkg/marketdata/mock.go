package marketdata

import (
	"context"
	"sync"
)

// Mock implements Provider for testing.
type Mock struct {
	// SnapshotFunc is called when Snapshot is invoked.
	SnapshotFunc func(ctx context.Context, symbol string) (*Snapshot, error)

	mu      sync.Mutex
	symbols []string
}

// NewMock creates a mock that returns a fixed snapshot per symbol.
func NewMock() *Mock {
	return &Mock{
		SnapshotFunc: func(_ context.Context, symbol string) (*Snapshot, error) {
			return New(symbol, symbol+" Inc.", 100, 120, "Buy", "20"), nil
		},
	}
}

// WithError returns a mock whose lookups always fail with err.
func WithError(err error) *Mock {
	return &Mock{
		SnapshotFunc: func(context.Context, string) (*Snapshot, error) {
			return nil, err
		},
	}
}

// Snapshot calls SnapshotFunc and records the symbol.
func (m *Mock) Snapshot(ctx context.Context, symbol string) (*Snapshot, error) {
	m.mu.Lock()
	m.symbols = append(m.symbols, symbol)
	m.mu.Unlock()
	return m.SnapshotFunc(ctx, symbol)
}

// Symbols returns every symbol looked up so far.
func (m *Mock) Symbols() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.symbols))
	copy(out, m.symbols)
	return out
}

// Verify Mock implements Provider at compile time.
var _ Provider = (*Mock)(nil)
