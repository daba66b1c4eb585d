// VoxFin - voice-driven financial analyst service.
// Streams client audio to Deepgram for transcription, routes each utterance
// through a Groq-backed analyst agent, and answers with text and speech.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/voxfin/go-voxfin/internal/config"
	"github.com/voxfin/go-voxfin/internal/log"
	"github.com/voxfin/go-voxfin/pkg/agent"
	"github.com/voxfin/go-voxfin/pkg/inference"
	"github.com/voxfin/go-voxfin/pkg/marketdata"
	"github.com/voxfin/go-voxfin/pkg/sentiment"
	"github.com/voxfin/go-voxfin/pkg/session"
	"github.com/voxfin/go-voxfin/pkg/stt"
	"github.com/voxfin/go-voxfin/pkg/tts"
	"github.com/voxfin/go-voxfin/pkg/web"
)

func main() {
	// Best effort; real deployments set the environment directly.
	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Error("configuration error", "error", err)
		os.Exit(1)
	}

	log.Init(cfg.LogLevel)
	logger := log.L()

	llm, err := inference.NewClient(
		inference.WithAPIKey(cfg.GroqAPIKey),
		inference.WithLogger(logger),
	)
	if err != nil {
		log.Error("inference client error", "error", err)
		os.Exit(1)
	}
	defer llm.Close()

	speech, err := tts.NewDeepgram(
		tts.WithAPIKey(cfg.DeepgramAPIKey),
		tts.WithLogger(logger),
	)
	if err != nil {
		log.Error("tts provider error", "error", err)
		os.Exit(1)
	}
	defer speech.Close()

	transcriber, err := stt.NewDeepgram(
		stt.WithAPIKey(cfg.DeepgramAPIKey),
		stt.WithLogger(logger),
	)
	if err != nil {
		log.Error("stt dialer error", "error", err)
		os.Exit(1)
	}

	market := marketdata.NewResolver(
		marketdata.NewYahoo(marketdata.WithLogger(logger)),
		marketdata.NewFallback(),
		logger,
	)

	factory := &session.Factory{
		Dialer: transcriber,
		Pipeline: session.Pipeline{
			Mood:    sentiment.NewAnalyzer(),
			Intents: agent.NewClassifier(llm, logger),
			Market:  market,
			Briefer: agent.NewSynthesizer(llm, logger),
			TTS:     speech,
			Logger:  logger,
		},
		Logger: logger,
	}

	server := web.NewServer(cfg.Port, factory, logger)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	errCh := make(chan error, 1)
	go func() { errCh <- server.Start() }()

	select {
	case <-ctx.Done():
		log.Info("shutting down")
		if err := server.Shutdown(); err != nil {
			log.Error("shutdown error", "error", err)
		}
	case err := <-errCh:
		if err != nil {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}
}
