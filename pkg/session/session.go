// Package session runs one voice conversation end to end: client audio in,
// live transcription upstream, and one ordered JSON reply per finished
// utterance back to the client.
//
// Each Session owns exactly one client connection and one transcription
// stream. Two goroutines do the work: the relay loop pumps client audio
// upstream, and the processor loop turns final transcripts into replies.
// Either loop dying tears down the whole session.
package session

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/voxfin/go-voxfin/pkg/agent"
	"github.com/voxfin/go-voxfin/pkg/marketdata"
	"github.com/voxfin/go-voxfin/pkg/sentiment"
	"github.com/voxfin/go-voxfin/pkg/stt"
	"github.com/voxfin/go-voxfin/pkg/tts"
)

// WebSocket opcodes per RFC 6455, shared by the client and upstream
// websocket libraries.
const (
	textMessage   = 1
	binaryMessage = 2
)

// ClientConn is the subset of a server-side websocket connection the session
// needs. Satisfied by *websocket.Conn from gofiber/websocket.
type ClientConn interface {
	ReadMessage() (messageType int, p []byte, err error)
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// MoodClassifier scores the emotional tone of a transcript.
type MoodClassifier interface {
	Classify(text string) sentiment.Mood
}

// IntentClassifier routes a transcript to an action.
type IntentClassifier interface {
	Classify(ctx context.Context, transcript string, mood sentiment.Mood) (*agent.Intent, error)
}

// Briefer renders a market snapshot into spoken-style text.
type Briefer interface {
	Briefing(ctx context.Context, snap *marketdata.Snapshot, mood sentiment.Mood) (string, error)
}

// SnapshotResolver produces a market snapshot for a symbol. It never fails;
// degraded data is still data.
type SnapshotResolver interface {
	Resolve(ctx context.Context, symbol string) *marketdata.Snapshot
}

// Pipeline bundles the stages an utterance passes through. All fields are
// required except Logger.
type Pipeline struct {
	Mood    MoodClassifier
	Intents IntentClassifier
	Market  SnapshotResolver
	Briefer Briefer
	TTS     tts.Provider
	Logger  *slog.Logger
}

// Session is one live conversation.
type Session struct {
	id       string
	client   ClientConn
	upstream stt.Stream
	pipeline Pipeline
	logger   *slog.Logger

	// writeMu serializes client writes so each reply lands as one frame.
	writeMu sync.Mutex
}

// New creates a session over an accepted client connection and an open
// transcription stream.
func New(client ClientConn, upstream stt.Stream, pipeline Pipeline) *Session {
	id := uuid.NewString()

	logger := pipeline.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Session{
		id:       id,
		client:   client,
		upstream: upstream,
		pipeline: pipeline,
		logger:   logger.With("component", "session", "session_id", id),
	}
}

// ID returns the session's unique identifier.
func (s *Session) ID() string {
	return s.id
}

// Run drives the session until either side disconnects or the context is
// canceled. It closes both connections before returning; the caller owns
// neither afterwards.
func (s *Session) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	s.logger.Info("session started")

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		defer cancel()
		s.relayLoop()
	}()

	go func() {
		defer wg.Done()
		defer cancel()
		s.processLoop(ctx)
	}()

	// First loop to exit cancels the context; closing both connections
	// unblocks whichever loop is still parked on a read.
	<-ctx.Done()
	s.upstream.Close()
	s.client.Close()
	wg.Wait()

	s.logger.Info("session ended")
}

// sendReply writes one reply frame to the client.
func (s *Session) sendReply(reply Reply) error {
	data, err := reply.Encode()
	if err != nil {
		return err
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.client.WriteMessage(textMessage, data)
}

// Factory builds and runs sessions for incoming client connections.
type Factory struct {
	Dialer   stt.Dialer
	Pipeline Pipeline
	Logger   *slog.Logger
}

// Serve dials a fresh transcription stream and runs a session over the
// client connection. It returns once the session ends; the dial failing is
// the only error path.
func (f *Factory) Serve(ctx context.Context, client ClientConn) error {
	stream, err := f.Dialer.Dial(ctx)
	if err != nil {
		return err
	}

	pipeline := f.Pipeline
	if pipeline.Logger == nil {
		pipeline.Logger = f.Logger
	}

	New(client, stream, pipeline).Run(ctx)
	return nil
}
