package deepgram

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"

	api "github.com/deepgram/deepgram-go-sdk/v3/pkg/api/listen/v1/rest"
	interfaces "github.com/deepgram/deepgram-go-sdk/v3/pkg/client/interfaces"
	client "github.com/deepgram/deepgram-go-sdk/v3/pkg/client/listen"

	"github.com/harunnryd/parley/pkg/adapters/transcribe"
	"github.com/harunnryd/parley/pkg/adapters/translate"
	"github.com/harunnryd/parley/pkg/langs"
	"github.com/harunnryd/parley/pkg/logging"
)

type Config struct {
	APIKey string
	// Model defaults to nova-2.
	Model string
	// PivotTranslator lifts transcripts whose detected language is not
	// the pivot. Deepgram transcribes in the spoken language, so the
	// pivot hop happens here instead of inside the speech model.
	PivotTranslator translate.Translator
}

// Transcriber runs prerecorded transcription with language detection.
type Transcriber struct {
	cfg    Config
	dg     *api.Client
	logger *slog.Logger
}

func New(cfg Config) *Transcriber {
	if cfg.Model == "" {
		cfg.Model = "nova-2"
	}
	dgClient := client.NewREST(cfg.APIKey, &interfaces.ClientOptions{})
	return &Transcriber{
		cfg:    cfg,
		dg:     api.New(dgClient),
		logger: logging.NewComponentLogger(slog.Default(), "deepgram_transcriber"),
	}
}

func (t *Transcriber) Name() string { return "deepgram_prerecorded" }

func (t *Transcriber) Transcribe(ctx context.Context, audio []byte) (string, error) {
	res, err := t.dg.FromStream(ctx, bytes.NewReader(audio), &interfaces.PreRecordedTranscriptionOptions{
		Model:          t.cfg.Model,
		SmartFormat:    true,
		DetectLanguage: true,
	})
	if err != nil {
		t.logger.Error("deepgram_request_failed",
			slog.Int("clip_bytes", len(audio)),
			slog.String("error", err.Error()))
		return "", transcribe.TranscriptionError{Provider: t.Name(), Err: err}
	}

	if len(res.Results.Channels) == 0 || len(res.Results.Channels[0].Alternatives) == 0 {
		return "", transcribe.TranscriptionError{Provider: t.Name(), Err: errors.New("no transcript in response")}
	}
	channel := res.Results.Channels[0]
	text := strings.TrimSpace(channel.Alternatives[0].Transcript)
	detected := normalizeLang(channel.DetectedLanguage)

	if text == "" || detected == langs.Pivot || detected == "" {
		return text, nil
	}
	if t.cfg.PivotTranslator == nil {
		t.logger.Warn("pivot_translator_missing",
			slog.String("detected_lang", detected))
		return text, nil
	}
	pivot, err := t.cfg.PivotTranslator.Translate(ctx, text, detected, langs.Pivot)
	if err != nil {
		// Fail open with the raw transcript rather than losing the clip.
		t.logger.Warn("pivot_translation_failed",
			slog.String("detected_lang", detected),
			slog.String("error", err.Error()))
		return text, nil
	}
	return strings.TrimSpace(pivot), nil
}

// normalizeLang reduces regional tags ("en-US") to the bare code.
func normalizeLang(lang string) string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if i := strings.IndexByte(lang, '-'); i > 0 {
		lang = lang[:i]
	}
	return lang
}

var _ transcribe.Transcriber = (*Transcriber)(nil)
