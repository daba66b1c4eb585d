package marketdata

import (
	"context"
	"log/slog"
)

// Resolver composes a live provider with the deterministic fallback.
// Resolve is total: live failures are logged and absorbed, never surfaced,
// so a caller always receives a snapshot with a positive price.
type Resolver struct {
	live     Provider
	fallback Provider
	logger   *slog.Logger
}

// NewResolver creates a resolver over the given live provider.
// A nil fallback uses the built-in simulated table; a nil logger uses the default.
func NewResolver(live Provider, fallback Provider, logger *slog.Logger) *Resolver {
	if fallback == nil {
		fallback = NewFallback()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{
		live:     live,
		fallback: fallback,
		logger:   logger.With("component", "marketdata.resolver"),
	}
}

// Resolve returns the best available snapshot for symbol.
func (r *Resolver) Resolve(ctx context.Context, symbol string) *Snapshot {
	snap, err := r.live.Snapshot(ctx, symbol)
	if err == nil && snap != nil && snap.Price > 0 {
		return snap
	}

	r.logger.Warn("live market data failed, using fallback",
		"symbol", symbol,
		"error", err,
	)

	snap, err = r.fallback.Snapshot(ctx, symbol)
	if err != nil || snap == nil {
		// The built-in fallback cannot fail; this guards custom fallbacks.
		return New(symbol, symbol, defaultBasePrice, defaultBasePrice*fallbackTargetRatio, fallbackRating, fallbackPERatio)
	}
	return snap
}
