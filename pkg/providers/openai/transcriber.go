package openai

import (
	"bytes"
	"context"
	"log/slog"
	"strings"

	goopenai "github.com/sashabaranov/go-openai"

	"github.com/harunnryd/parley/pkg/adapters/transcribe"
	"github.com/harunnryd/parley/pkg/logging"
)

type TranscriberConfig struct {
	APIKey  string
	BaseURL string
	// Model defaults to whisper-1.
	Model string
	// Hint names the clip for container-format sniffing ("clip.wav").
	Hint string
}

// Transcriber wraps the Whisper translation endpoint, which transcribes any
// spoken language and renders the result directly in English. That endpoint
// is what makes Whisper a single hop to the pivot language.
type Transcriber struct {
	cfg    TranscriberConfig
	client *goopenai.Client
	logger *slog.Logger
}

func NewTranscriber(cfg TranscriberConfig) *Transcriber {
	if cfg.Model == "" {
		cfg.Model = goopenai.Whisper1
	}
	if cfg.Hint == "" {
		cfg.Hint = "clip.wav"
	}
	clientCfg := goopenai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	return &Transcriber{
		cfg:    cfg,
		client: goopenai.NewClientWithConfig(clientCfg),
		logger: logging.NewComponentLogger(slog.Default(), "openai_transcriber"),
	}
}

func (t *Transcriber) Name() string { return "openai_whisper" }

func (t *Transcriber) Transcribe(ctx context.Context, audio []byte) (string, error) {
	resp, err := t.client.CreateTranslation(ctx, goopenai.AudioRequest{
		Model:    t.cfg.Model,
		FilePath: t.cfg.Hint,
		Reader:   bytes.NewReader(audio),
	})
	if err != nil {
		t.logger.Error("whisper_translation_failed",
			slog.Int("clip_bytes", len(audio)),
			slog.String("error", err.Error()))
		return "", transcribe.TranscriptionError{Provider: t.Name(), Err: err}
	}
	return strings.TrimSpace(resp.Text), nil
}

var _ transcribe.Transcriber = (*Transcriber)(nil)
