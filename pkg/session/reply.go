package session

import (
	"encoding/base64"
	"encoding/json"

	"github.com/voxfin/go-voxfin/pkg/sentiment"
)

// Reply is the single JSON message sent to the client per utterance.
// Audio is base64-encoded; it is always present, empty when synthesis
// produced nothing.
type Reply struct {
	Text    string `json:"text"`
	Emotion string `json:"emotion"`
	Audio   string `json:"audio"`
}

// NewReply builds a reply, encoding the raw audio bytes.
func NewReply(text string, mood sentiment.Mood, audio []byte) Reply {
	return Reply{
		Text:    text,
		Emotion: string(mood),
		Audio:   base64.StdEncoding.EncodeToString(audio),
	}
}

// Encode serializes the reply for the wire.
func (r Reply) Encode() ([]byte, error) {
	return json.Marshal(r)
}
