package tts

import (
	"context"
	"sync"
)

// Mock implements Provider for testing.
type Mock struct {
	mu sync.Mutex

	// SynthesizeFunc allows customizing Synthesize behavior.
	SynthesizeFunc func(ctx context.Context, text string) ([]byte, error)

	// HealthFunc allows customizing Health behavior.
	HealthFunc func(ctx context.Context) error

	// CloseFunc allows customizing Close behavior.
	CloseFunc func() error

	// Call tracking
	synthesizeCalls int
	healthCalls     int
	closeCalls      int
	texts           []string
}

// NewMock creates a mock provider that echoes the input text as audio bytes.
func NewMock() *Mock {
	return &Mock{
		SynthesizeFunc: func(_ context.Context, text string) ([]byte, error) {
			return []byte("audio:" + text), nil
		},
	}
}

// Synthesize implements Provider.
func (m *Mock) Synthesize(ctx context.Context, text string) ([]byte, error) {
	m.mu.Lock()
	m.synthesizeCalls++
	m.texts = append(m.texts, text)
	fn := m.SynthesizeFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, text)
	}
	return nil, nil
}

// Health implements Provider.
func (m *Mock) Health(ctx context.Context) error {
	m.mu.Lock()
	m.healthCalls++
	fn := m.HealthFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx)
	}
	return nil
}

// Close implements Provider.
func (m *Mock) Close() error {
	m.mu.Lock()
	m.closeCalls++
	fn := m.CloseFunc
	m.mu.Unlock()

	if fn != nil {
		return fn()
	}
	return nil
}

// SynthesizeCalls returns the number of times Synthesize was called.
func (m *Mock) SynthesizeCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.synthesizeCalls
}

// Texts returns the texts passed to Synthesize, in call order.
func (m *Mock) Texts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.texts))
	copy(out, m.texts)
	return out
}

// WithError configures the mock to always return the given error.
func (m *Mock) WithError(err error) *Mock {
	m.SynthesizeFunc = func(context.Context, string) ([]byte, error) {
		return nil, err
	}
	m.HealthFunc = func(context.Context) error {
		return err
	}
	return m
}

// Verify Mock implements Provider at compile time.
var _ Provider = (*Mock)(nil)
