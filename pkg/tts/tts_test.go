package tts_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/voxfin/go-voxfin/pkg/tts"
)

func TestDeepgramSynthesize(t *testing.T) {
	wantAudio := []byte{0x52, 0x49, 0x46, 0x46, 0x01, 0x02}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/speak" {
			t.Errorf("path = %q, want /v1/speak", r.URL.Path)
		}
		if got := r.URL.Query().Get("model"); got != "aura-asteria-en" {
			t.Errorf("model = %q, want aura-asteria-en", got)
		}
		if got := r.Header.Get("Authorization"); got != "Token test-key" {
			t.Errorf("Authorization = %q, want Token test-key", got)
		}

		var payload map[string]string
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("decode payload: %v", err)
		}
		if payload["text"] != "Markets are open." {
			t.Errorf("text = %q", payload["text"])
		}

		w.Header().Set("Content-Type", "audio/mpeg")
		w.Write(wantAudio)
	}))
	defer server.Close()

	provider, err := tts.NewDeepgram(
		tts.WithAPIKey("test-key"),
		tts.WithBaseURL(server.URL),
	)
	if err != nil {
		t.Fatalf("NewDeepgram: %v", err)
	}
	defer provider.Close()

	audio, err := provider.Synthesize(context.Background(), "Markets are open.")
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	if string(audio) != string(wantAudio) {
		t.Errorf("audio = %v, want %v", audio, wantAudio)
	}
}

func TestDeepgramSynthesizeErrors(t *testing.T) {
	t.Run("empty text", func(t *testing.T) {
		provider, err := tts.NewDeepgram(tts.WithAPIKey("test-key"))
		if err != nil {
			t.Fatalf("NewDeepgram: %v", err)
		}
		_, err = provider.Synthesize(context.Background(), "")
		if !errors.Is(err, tts.ErrEmptyText) {
			t.Errorf("err = %v, want ErrEmptyText", err)
		}
	})

	t.Run("single attempt on server error", func(t *testing.T) {
		var attempts int
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			attempts++
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(map[string]string{
				"err_code": "INTERNAL",
				"err_msg":  "synthesis failed",
			})
		}))
		defer server.Close()

		provider, err := tts.NewDeepgram(
			tts.WithAPIKey("test-key"),
			tts.WithBaseURL(server.URL),
		)
		if err != nil {
			t.Fatalf("NewDeepgram: %v", err)
		}

		_, err = provider.Synthesize(context.Background(), "hello")
		var apiErr *tts.APIError
		if !errors.As(err, &apiErr) {
			t.Fatalf("err = %v, want *APIError", err)
		}
		if apiErr.StatusCode != 500 || !apiErr.IsServerError() {
			t.Errorf("StatusCode = %d, want 500", apiErr.StatusCode)
		}
		if apiErr.Message != "synthesis failed" {
			t.Errorf("Message = %q", apiErr.Message)
		}
		if attempts != 1 {
			t.Errorf("attempts = %d, want 1", attempts)
		}
	})

	t.Run("missing API key", func(t *testing.T) {
		_, err := tts.NewDeepgram()
		if !errors.Is(err, tts.ErrNoAPIKey) {
			t.Errorf("err = %v, want ErrNoAPIKey", err)
		}
	})
}

func TestDeepgramHealth(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/projects" {
			t.Errorf("path = %q, want /v1/projects", r.URL.Path)
		}
		w.Write([]byte(`{"projects":[]}`))
	}))
	defer server.Close()

	provider, err := tts.NewDeepgram(
		tts.WithAPIKey("test-key"),
		tts.WithBaseURL(server.URL),
	)
	if err != nil {
		t.Fatalf("NewDeepgram: %v", err)
	}
	if err := provider.Health(context.Background()); err != nil {
		t.Errorf("Health: %v", err)
	}
}

func TestMockTracking(t *testing.T) {
	mock := tts.NewMock()

	audio, err := mock.Synthesize(context.Background(), "first")
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	if string(audio) != "audio:first" {
		t.Errorf("audio = %q", audio)
	}
	mock.Synthesize(context.Background(), "second")

	if got := mock.SynthesizeCalls(); got != 2 {
		t.Errorf("SynthesizeCalls = %d, want 2", got)
	}
	texts := mock.Texts()
	if len(texts) != 2 || texts[0] != "first" || texts[1] != "second" {
		t.Errorf("Texts = %v", texts)
	}
}
