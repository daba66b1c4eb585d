// Package stt provides streaming speech-to-text over Deepgram's realtime
// WebSocket API.
//
// A Dialer opens one Stream per conversation. Audio chunks go up as binary
// frames; transcript events come back as JSON text frames. Interim events
// carry partial text and are typically dropped; only final, non-empty
// transcripts are worth acting on.
package stt

import (
	"context"
	"encoding/json"
	"fmt"
)

// TranscriptEvent is a single transcription result from the upstream engine.
type TranscriptEvent struct {
	// Text is the transcript of the processed audio window.
	Text string

	// IsFinal reports whether the engine has settled on this text.
	IsFinal bool
}

// Final reports whether the event carries an actionable utterance:
// a settled, non-empty transcript.
func (e TranscriptEvent) Final() bool {
	return e.IsFinal && e.Text != ""
}

// Stream is a live transcription stream for one conversation.
type Stream interface {
	// SendAudio forwards a raw audio chunk upstream.
	SendAudio(data []byte) error

	// ReadEvent blocks for the next transcript event. Malformed frames
	// return an error wrapping ErrBadEvent; callers should drop those and
	// keep reading. Any other error means the stream is dead.
	ReadEvent() (TranscriptEvent, error)

	// Close tears down the stream.
	Close() error
}

// Dialer opens transcription streams.
type Dialer interface {
	Dial(ctx context.Context) (Stream, error)
}

// deepgramResult is the wire shape of a Deepgram transcription message.
type deepgramResult struct {
	Channel struct {
		Alternatives []struct {
			Transcript string `json:"transcript"`
		} `json:"alternatives"`
	} `json:"channel"`
	IsFinal bool `json:"is_final"`
}

// ParseEvent decodes a transcription frame. Frames without a transcript
// alternative (metadata, keepalives) come back wrapping ErrBadEvent.
func ParseEvent(data []byte) (TranscriptEvent, error) {
	var result deepgramResult
	if err := json.Unmarshal(data, &result); err != nil {
		return TranscriptEvent{}, fmt.Errorf("%w: %v", ErrBadEvent, err)
	}
	if len(result.Channel.Alternatives) == 0 {
		return TranscriptEvent{}, fmt.Errorf("%w: no alternatives", ErrBadEvent)
	}
	return TranscriptEvent{
		Text:    result.Channel.Alternatives[0].Transcript,
		IsFinal: result.IsFinal,
	}, nil
}
