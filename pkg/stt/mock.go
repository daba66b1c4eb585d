package stt

import (
	"context"
	"sync"
)

// MockStream implements Stream for testing. Events queued with PushEvent are
// returned by ReadEvent in order; after the queue drains, ReadEvent blocks
// until Close.
type MockStream struct {
	mu sync.Mutex

	// SendAudioFunc allows customizing SendAudio behavior.
	SendAudioFunc func(data []byte) error

	events chan eventOrErr
	done   chan struct{}
	once   sync.Once

	audioFrames [][]byte
}

type eventOrErr struct {
	event TranscriptEvent
	err   error
}

// NewMockStream creates a mock stream with room for the given number of
// queued events.
func NewMockStream(buffer int) *MockStream {
	return &MockStream{
		events: make(chan eventOrErr, buffer),
		done:   make(chan struct{}),
	}
}

// PushEvent queues a transcript event for ReadEvent to return.
func (m *MockStream) PushEvent(event TranscriptEvent) {
	m.events <- eventOrErr{event: event}
}

// PushError queues an error for ReadEvent to return.
func (m *MockStream) PushError(err error) {
	m.events <- eventOrErr{err: err}
}

// SendAudio implements Stream.
func (m *MockStream) SendAudio(data []byte) error {
	m.mu.Lock()
	frame := make([]byte, len(data))
	copy(frame, data)
	m.audioFrames = append(m.audioFrames, frame)
	fn := m.SendAudioFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(data)
	}
	return nil
}

// ReadEvent implements Stream.
func (m *MockStream) ReadEvent() (TranscriptEvent, error) {
	select {
	case e := <-m.events:
		return e.event, e.err
	case <-m.done:
		return TranscriptEvent{}, ErrStreamClosed
	}
}

// Close implements Stream.
func (m *MockStream) Close() error {
	m.once.Do(func() { close(m.done) })
	return nil
}

// AudioFrames returns the audio chunks passed to SendAudio, in order.
func (m *MockStream) AudioFrames() [][]byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([][]byte, len(m.audioFrames))
	copy(out, m.audioFrames)
	return out
}

// MockDialer implements Dialer, handing out a fixed stream.
type MockDialer struct {
	// DialFunc allows customizing Dial behavior.
	DialFunc func(ctx context.Context) (Stream, error)

	// Stream is returned by Dial when DialFunc is nil.
	Stream Stream

	mu        sync.Mutex
	dialCalls int
}

// Dial implements Dialer.
func (m *MockDialer) Dial(ctx context.Context) (Stream, error) {
	m.mu.Lock()
	m.dialCalls++
	m.mu.Unlock()

	if m.DialFunc != nil {
		return m.DialFunc(ctx)
	}
	return m.Stream, nil
}

// DialCalls returns the number of times Dial was called.
func (m *MockDialer) DialCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.dialCalls
}

// Verify interfaces at compile time.
var (
	_ Stream = (*MockStream)(nil)
	_ Dialer = (*MockDialer)(nil)
)
