package stt

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const deepgramBaseURL = "wss://api.deepgram.com"

// Deepgram dials Deepgram's realtime transcription endpoint.
type Deepgram struct {
	config  *Config
	logger  *slog.Logger
	baseURL string
}

// NewDeepgram creates a new Deepgram STT dialer.
func NewDeepgram(opts ...Option) (*Deepgram, error) {
	cfg := DefaultConfig()
	cfg.Apply(opts...)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = deepgramBaseURL
	}

	return &Deepgram{
		config:  cfg,
		logger:  cfg.Logger.With("component", "stt.deepgram"),
		baseURL: baseURL,
	}, nil
}

// Dial opens a transcription stream. The stream lives until Close or a
// read/write failure; one stream serves exactly one conversation.
func (d *Deepgram) Dial(ctx context.Context) (Stream, error) {
	u := fmt.Sprintf("%s/v1/listen?model=%s&smart_format=%t",
		d.baseURL, url.QueryEscape(d.config.Model), d.config.SmartFormat)

	dialer := websocket.Dialer{
		HandshakeTimeout: d.config.DialTimeout,
	}
	header := http.Header{}
	header.Set("Authorization", "Token "+d.config.APIKey)

	conn, resp, err := dialer.DialContext(ctx, u, header)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("stt: dial deepgram: %w (status %d)", err, resp.StatusCode)
		}
		return nil, fmt.Errorf("stt: dial deepgram: %w", err)
	}

	d.logger.Debug("transcription stream opened", "model", d.config.Model)

	return &deepgramStream{
		conn:   conn,
		logger: d.logger,
		closed: make(chan struct{}),
	}, nil
}

// deepgramStream is a live connection to the transcription endpoint.
type deepgramStream struct {
	conn   *websocket.Conn
	logger *slog.Logger

	closeOnce sync.Once
	closed    chan struct{}
}

// SendAudio forwards a raw audio chunk as a binary frame.
func (s *deepgramStream) SendAudio(data []byte) error {
	select {
	case <-s.closed:
		return ErrStreamClosed
	default:
	}
	if err := s.conn.WriteMessage(websocket.BinaryMessage, data); err != nil {
		return fmt.Errorf("stt: send audio: %w", err)
	}
	return nil
}

// ReadEvent blocks for the next transcript event.
func (s *deepgramStream) ReadEvent() (TranscriptEvent, error) {
	msgType, data, err := s.conn.ReadMessage()
	if err != nil {
		return TranscriptEvent{}, fmt.Errorf("stt: read event: %w", err)
	}
	if msgType != websocket.TextMessage {
		return TranscriptEvent{}, fmt.Errorf("%w: non-text frame", ErrBadEvent)
	}
	return ParseEvent(data)
}

// Close sends a close frame and tears down the connection. Safe to call
// concurrently with SendAudio and ReadEvent, and more than once.
func (s *deepgramStream) Close() error {
	var err error
	s.closeOnce.Do(func() {
		close(s.closed)
		deadline := time.Now().Add(time.Second)
		s.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline)
		err = s.conn.Close()
	})
	return err
}

// Verify interfaces at compile time.
var (
	_ Dialer = (*Deepgram)(nil)
	_ Stream = (*deepgramStream)(nil)
)
