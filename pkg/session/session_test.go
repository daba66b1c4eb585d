package session_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/voxfin/go-voxfin/pkg/agent"
	"github.com/voxfin/go-voxfin/pkg/marketdata"
	"github.com/voxfin/go-voxfin/pkg/sentiment"
	"github.com/voxfin/go-voxfin/pkg/session"
	"github.com/voxfin/go-voxfin/pkg/stt"
	"github.com/voxfin/go-voxfin/pkg/tts"
)

// fakeClient is an in-memory ClientConn. Frames queued on in come out of
// ReadMessage; every WriteMessage is decoded as a Reply and published on
// replies.
type fakeClient struct {
	in      chan inFrame
	replies chan session.Reply

	once sync.Once
	done chan struct{}
}

type inFrame struct {
	msgType int
	data    []byte
}

func newFakeClient() *fakeClient {
	return &fakeClient{
		in:      make(chan inFrame, 16),
		replies: make(chan session.Reply, 16),
		done:    make(chan struct{}),
	}
}

func (c *fakeClient) ReadMessage() (int, []byte, error) {
	select {
	case f := <-c.in:
		return f.msgType, f.data, nil
	case <-c.done:
		return 0, nil, errors.New("connection closed")
	}
}

func (c *fakeClient) WriteMessage(msgType int, data []byte) error {
	select {
	case <-c.done:
		return errors.New("connection closed")
	default:
	}
	var reply session.Reply
	if err := json.Unmarshal(data, &reply); err != nil {
		return fmt.Errorf("non-JSON reply frame: %w", err)
	}
	c.replies <- reply
	return nil
}

func (c *fakeClient) Close() error {
	c.once.Do(func() { close(c.done) })
	return nil
}

func (c *fakeClient) nextReply(t *testing.T) session.Reply {
	t.Helper()
	select {
	case r := <-c.replies:
		return r
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for reply")
		return session.Reply{}
	}
}

// fixedMood classifies everything as one mood.
type fixedMood struct{ mood sentiment.Mood }

func (f fixedMood) Classify(string) sentiment.Mood { return f.mood }

// stubIntents delegates to a function.
type stubIntents struct {
	fn func(ctx context.Context, transcript string, mood sentiment.Mood) (*agent.Intent, error)
}

func (s stubIntents) Classify(ctx context.Context, transcript string, mood sentiment.Mood) (*agent.Intent, error) {
	return s.fn(ctx, transcript, mood)
}

// stubBriefer renders a fixed-format briefing.
type stubBriefer struct{ err error }

func (s stubBriefer) Briefing(_ context.Context, snap *marketdata.Snapshot, _ sentiment.Mood) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return fmt.Sprintf("Analysis for %s complete.", snap.Company), nil
}

// recordingMarket records resolved symbols and returns a fixed snapshot.
type recordingMarket struct {
	mu      sync.Mutex
	symbols []string
	snap    *marketdata.Snapshot
}

func (r *recordingMarket) Resolve(_ context.Context, symbol string) *marketdata.Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.symbols = append(r.symbols, symbol)
	if r.snap != nil {
		return r.snap
	}
	return marketdata.New(symbol, symbol, 100, 112, "Buy", "28.4")
}

func (r *recordingMarket) resolved() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.symbols))
	copy(out, r.symbols)
	return out
}

// harness wires a session over fakes and runs it in the background.
type harness struct {
	client   *fakeClient
	upstream *stt.MockStream
	market   *recordingMarket
	ttsMock  *tts.Mock
	runDone  chan struct{}
}

func startSession(t *testing.T, mood sentiment.Mood, intents stubIntents, briefer stubBriefer) *harness {
	t.Helper()

	h := &harness{
		client:   newFakeClient(),
		upstream: stt.NewMockStream(16),
		market:   &recordingMarket{},
		ttsMock:  tts.NewMock(),
		runDone:  make(chan struct{}),
	}

	sess := session.New(h.client, h.upstream, session.Pipeline{
		Mood:    fixedMood{mood: mood},
		Intents: intents,
		Market:  h.market,
		Briefer: briefer,
		TTS:     h.ttsMock,
	})

	go func() {
		defer close(h.runDone)
		sess.Run(context.Background())
	}()

	t.Cleanup(func() {
		h.client.Close()
		h.waitDone(t)
	})
	return h
}

func (h *harness) waitDone(t *testing.T) {
	t.Helper()
	select {
	case <-h.runDone:
	case <-time.After(2 * time.Second):
		t.Fatal("session did not shut down")
	}
}

func (h *harness) pushFinal(text string) {
	h.upstream.PushEvent(stt.TranscriptEvent{Text: text, IsFinal: true})
}

func chatIntent(response string) stubIntents {
	return stubIntents{fn: func(context.Context, string, sentiment.Mood) (*agent.Intent, error) {
		return &agent.Intent{Action: agent.ActionChat, Response: response}, nil
	}}
}

func analyzeIntent(symbol string) stubIntents {
	return stubIntents{fn: func(context.Context, string, sentiment.Mood) (*agent.Intent, error) {
		return &agent.Intent{Action: agent.ActionAnalyzeStock, Symbol: symbol}, nil
	}}
}

func TestSessionChatReply(t *testing.T) {
	h := startSession(t, sentiment.MoodAngry, chatIntent("Take a deep breath. Markets recover."), stubBriefer{})

	h.pushFinal("I'm furious about my portfolio")
	reply := h.client.nextReply(t)

	if reply.Text != "Take a deep breath. Markets recover." {
		t.Errorf("text = %q", reply.Text)
	}
	if reply.Emotion != "angry" {
		t.Errorf("emotion = %q, want angry", reply.Emotion)
	}
	wantAudio := base64.StdEncoding.EncodeToString([]byte("audio:Take a deep breath. Markets recover."))
	if reply.Audio != wantAudio {
		t.Errorf("audio = %q, want %q", reply.Audio, wantAudio)
	}
}

func TestSessionAnalyzeStock(t *testing.T) {
	h := startSession(t, sentiment.MoodNeutral, analyzeIntent("AAPL"), stubBriefer{})

	h.pushFinal("What do you think about Apple?")
	reply := h.client.nextReply(t)

	if reply.Text != "Analysis for AAPL complete." {
		t.Errorf("text = %q", reply.Text)
	}
	if got := h.market.resolved(); len(got) != 1 || got[0] != "AAPL" {
		t.Errorf("resolved symbols = %v, want [AAPL]", got)
	}
	if reply.Audio == "" {
		t.Error("audio empty, want synthesized bytes")
	}
}

func TestSessionParseErrorKeepsSessionOpen(t *testing.T) {
	var calls int
	intents := stubIntents{fn: func(_ context.Context, transcript string, _ sentiment.Mood) (*agent.Intent, error) {
		calls++
		if calls == 1 {
			return nil, &agent.ParsingError{Raw: "not json", Err: errors.New("bad")}
		}
		return &agent.Intent{Action: agent.ActionChat, Response: "Still here."}, nil
	}}
	h := startSession(t, sentiment.MoodHappy, intents, stubBriefer{})

	h.pushFinal("first utterance")
	degraded := h.client.nextReply(t)
	if degraded.Text != agent.ParseErrorReply {
		t.Errorf("text = %q, want %q", degraded.Text, agent.ParseErrorReply)
	}
	if degraded.Emotion != "neutral" {
		t.Errorf("emotion = %q, want neutral", degraded.Emotion)
	}
	if degraded.Audio != "" {
		t.Errorf("audio = %q, want empty", degraded.Audio)
	}

	// Session survives for the next utterance.
	h.pushFinal("second utterance")
	next := h.client.nextReply(t)
	if next.Text != "Still here." {
		t.Errorf("text = %q", next.Text)
	}
}

func TestSessionRepliesInOrder(t *testing.T) {
	intents := stubIntents{fn: func(_ context.Context, transcript string, _ sentiment.Mood) (*agent.Intent, error) {
		return &agent.Intent{Action: agent.ActionChat, Response: "reply to " + transcript}, nil
	}}
	h := startSession(t, sentiment.MoodNeutral, intents, stubBriefer{})

	h.pushFinal("one")
	h.pushFinal("two")
	h.pushFinal("three")

	for _, want := range []string{"reply to one", "reply to two", "reply to three"} {
		if got := h.client.nextReply(t).Text; got != want {
			t.Errorf("reply = %q, want %q", got, want)
		}
	}
}

func TestSessionDropsNonActionableEvents(t *testing.T) {
	h := startSession(t, sentiment.MoodNeutral, chatIntent("hello"), stubBriefer{})

	h.upstream.PushEvent(stt.TranscriptEvent{Text: "interim", IsFinal: false})
	h.upstream.PushEvent(stt.TranscriptEvent{Text: "", IsFinal: true})
	h.upstream.PushError(fmt.Errorf("%w: keepalive", stt.ErrBadEvent))
	h.pushFinal("actionable")

	if got := h.client.nextReply(t).Text; got != "hello" {
		t.Errorf("text = %q", got)
	}
	select {
	case r := <-h.client.replies:
		t.Errorf("unexpected extra reply %+v", r)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestSessionTTSFailureDegradesToText(t *testing.T) {
	h := startSession(t, sentiment.MoodNeutral, chatIntent("no voice today"), stubBriefer{})
	h.ttsMock.WithError(errors.New("synthesis down"))

	h.pushFinal("anything")
	reply := h.client.nextReply(t)

	if reply.Text != "no voice today" {
		t.Errorf("text = %q", reply.Text)
	}
	if reply.Audio != "" {
		t.Errorf("audio = %q, want empty", reply.Audio)
	}
}

func TestSessionRelayForwardsAudio(t *testing.T) {
	h := startSession(t, sentiment.MoodNeutral, chatIntent("unused"), stubBriefer{})

	frames := [][]byte{{0x01}, {0x02, 0x03}, {0x04}}
	for _, f := range frames {
		h.client.in <- inFrame{msgType: 2, data: f}
	}
	// Text frames from the client are ignored.
	h.client.in <- inFrame{msgType: 1, data: []byte("ping")}

	deadline := time.After(2 * time.Second)
	for len(h.upstream.AudioFrames()) < len(frames) {
		select {
		case <-deadline:
			t.Fatalf("forwarded %d frames, want %d", len(h.upstream.AudioFrames()), len(frames))
		case <-time.After(5 * time.Millisecond):
		}
	}

	got := h.upstream.AudioFrames()
	for i, f := range frames {
		if string(got[i]) != string(f) {
			t.Errorf("frame %d = %v, want %v", i, got[i], f)
		}
	}
	select {
	case r := <-h.client.replies:
		t.Errorf("relay produced a reply: %+v", r)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestSessionTeardownOnClientDisconnect(t *testing.T) {
	h := startSession(t, sentiment.MoodNeutral, chatIntent("unused"), stubBriefer{})

	h.client.Close()
	h.waitDone(t)
}

func TestSessionEndsOnPipelineFailure(t *testing.T) {
	intents := stubIntents{fn: func(context.Context, string, sentiment.Mood) (*agent.Intent, error) {
		return nil, errors.New("llm transport down")
	}}
	h := startSession(t, sentiment.MoodNeutral, intents, stubBriefer{})

	h.pushFinal("anything")
	h.waitDone(t)
}

func TestFactoryDialFailure(t *testing.T) {
	wantErr := errors.New("upstream unavailable")
	factory := &session.Factory{
		Dialer: &stt.MockDialer{DialFunc: func(context.Context) (stt.Stream, error) {
			return nil, wantErr
		}},
	}

	if err := factory.Serve(context.Background(), newFakeClient()); !errors.Is(err, wantErr) {
		t.Errorf("err = %v, want %v", err, wantErr)
	}
}
