package session

import (
	"context"
	"errors"
	"time"

	"github.com/voxfin/go-voxfin/pkg/agent"
	"github.com/voxfin/go-voxfin/pkg/sentiment"
	"github.com/voxfin/go-voxfin/pkg/stt"
)

// processLoop consumes transcript events and answers each finished utterance
// in order. Utterances are handled strictly sequentially: a new final
// transcript waits until the previous reply has been written.
func (s *Session) processLoop(ctx context.Context) {
	for {
		event, err := s.upstream.ReadEvent()
		if err != nil {
			if errors.Is(err, stt.ErrBadEvent) {
				s.logger.Debug("dropping unparseable event", "error", err)
				continue
			}
			s.logger.Debug("upstream read ended", "error", err)
			return
		}

		if !event.Final() {
			continue
		}

		if err := s.handleUtterance(ctx, event.Text); err != nil {
			s.logger.Error("utterance processing failed", "error", err)
			return
		}
	}
}

// handleUtterance runs one transcript through the full pipeline and writes
// the reply. A malformed routing decision degrades to a parse-error reply and
// keeps the session alive; any other failure ends it.
func (s *Session) handleUtterance(ctx context.Context, transcript string) error {
	start := time.Now()
	mood := s.pipeline.Mood.Classify(transcript)

	s.logger.Info("processing utterance", "chars", len(transcript), "mood", mood)

	intent, err := s.pipeline.Intents.Classify(ctx, transcript, mood)
	if err != nil {
		if agent.IsParsingError(err) {
			s.logger.Warn("intent parsing failed, sending degraded reply", "error", err)
			return s.reply(ctx, agent.ParseErrorReply, sentiment.MoodNeutral, false)
		}
		return err
	}

	var text string
	switch intent.Action {
	case agent.ActionAnalyzeStock:
		snap := s.pipeline.Market.Resolve(ctx, intent.Symbol)
		text, err = s.pipeline.Briefer.Briefing(ctx, snap, mood)
		if err != nil {
			return err
		}
	case agent.ActionChat:
		text = intent.Response
		if text == "" {
			text = agent.DefaultChatReply
		}
	default:
		s.logger.Warn("unknown intent action", "action", intent.Action)
		return s.reply(ctx, agent.ParseErrorReply, sentiment.MoodNeutral, false)
	}

	if err := s.reply(ctx, text, mood, true); err != nil {
		return err
	}

	s.logger.Info("utterance answered",
		"action", intent.Action,
		"latency_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// reply synthesizes audio for the text (when wanted) and writes the frame.
// TTS failure is not fatal: the reply ships with empty audio.
func (s *Session) reply(ctx context.Context, text string, mood sentiment.Mood, withAudio bool) error {
	var audio []byte
	if withAudio {
		var err error
		audio, err = s.pipeline.TTS.Synthesize(ctx, text)
		if err != nil {
			s.logger.Warn("speech synthesis failed, replying without audio", "error", err)
			audio = nil
		}
	}
	return s.sendReply(NewReply(text, mood, audio))
}
