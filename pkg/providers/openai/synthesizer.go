package openai

import (
	"context"
	"io"
	"log/slog"

	goopenai "github.com/sashabaranov/go-openai"

	"github.com/harunnryd/parley/pkg/adapters/synth"
	"github.com/harunnryd/parley/pkg/logging"
)

type SynthesizerConfig struct {
	APIKey  string
	BaseURL string
	// Model defaults to tts-1.
	Model string
	// Voice defaults to alloy. The same voice speaks every language; the
	// endpoint picks pronunciation from the input text.
	Voice string
}

// Synthesizer renders text as mp3 speech.
type Synthesizer struct {
	cfg    SynthesizerConfig
	client *goopenai.Client
	logger *slog.Logger
}

func NewSynthesizer(cfg SynthesizerConfig) *Synthesizer {
	if cfg.Model == "" {
		cfg.Model = string(goopenai.TTSModel1)
	}
	if cfg.Voice == "" {
		cfg.Voice = string(goopenai.VoiceAlloy)
	}
	clientCfg := goopenai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	return &Synthesizer{
		cfg:    cfg,
		client: goopenai.NewClientWithConfig(clientCfg),
		logger: logging.NewComponentLogger(slog.Default(), "openai_synthesizer"),
	}
}

func (s *Synthesizer) Name() string { return "openai_tts" }

func (s *Synthesizer) Synthesize(ctx context.Context, text, lang string) ([]byte, error) {
	resp, err := s.client.CreateSpeech(ctx, goopenai.CreateSpeechRequest{
		Model:          goopenai.SpeechModel(s.cfg.Model),
		Voice:          goopenai.SpeechVoice(s.cfg.Voice),
		Input:          text,
		ResponseFormat: goopenai.SpeechResponseFormatMp3,
	})
	if err != nil {
		return nil, err
	}
	defer resp.Close()

	audio, err := io.ReadAll(resp)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("speech_synthesized",
		slog.String("lang", lang),
		slog.Int("bytes", len(audio)))
	return audio, nil
}

var _ synth.Synthesizer = (*Synthesizer)(nil)
