package parley

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/harunnryd/parley/pkg/adapters/synth"
	"github.com/harunnryd/parley/pkg/adapters/transcribe"
	"github.com/harunnryd/parley/pkg/adapters/translate"
	"github.com/harunnryd/parley/pkg/chat"
	"github.com/harunnryd/parley/pkg/errorsx"
	"github.com/harunnryd/parley/pkg/langs"
	"github.com/harunnryd/parley/pkg/logging"
	"github.com/harunnryd/parley/pkg/metrics"
	"github.com/harunnryd/parley/pkg/pipeline"
	"github.com/harunnryd/parley/pkg/redact"
	"github.com/harunnryd/parley/pkg/render"
)

// Engine owns one chat session end to end: the mutable session state, the
// ingest pipeline, and the input-boundary rules. All mutations run through
// it synchronously; the UI reflects state only after an ingest completes.
type Engine struct {
	cfg      Config
	session  *chat.Session
	ingestor *pipeline.Ingestor
	obs      *metrics.AsyncObserver
	metrics  *os.File
	log      *slog.Logger
}

type Options struct {
	Config    Config
	Providers *ProviderRegistry
	// Observer receives pipeline stage events in addition to the
	// engine's own logger observer.
	Observer metrics.Observer
	Logger   *slog.Logger
}

func NewEngine(opts Options) (*Engine, error) {
	cfg := opts.Config
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.InitLogger(cfg.LogLevel, cfg.LogFormat)
	}
	redact.SetEnabled(cfg.Privacy.RedactPII)

	providers := opts.Providers
	if providers == nil {
		providers = DefaultRegistry()
	}

	transcriber, translator, synthesizer, err := buildVendors(providers, cfg)
	if err != nil {
		return nil, err
	}

	logger.Info("parley_init",
		slog.String("environment", cfg.Environment),
		slog.String("transcriber", transcriber.Name()),
		slog.String("translator", translator.Name()),
		slog.String("synthesizer", synthesizer.Name()),
		slog.String("party_a_lang", cfg.PartyALang),
		slog.String("party_b_lang", cfg.PartyBLang),
	)

	obsList := []metrics.Observer{metrics.NewLoggerObserver(logger)}
	if opts.Observer != nil {
		obsList = append(obsList, opts.Observer)
	}
	var metricsFile *os.File
	if path := strings.TrimSpace(cfg.Observability.MetricsPath); path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err == nil {
			if f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644); err == nil {
				metricsFile = f
				obsList = append(obsList, metrics.NewJSONLObserver(f))
			} else {
				logger.Warn("metrics_file_open_failed", slog.String("path", path), slog.String("error", err.Error()))
			}
		}
	}
	asyncObs := metrics.NewAsyncObserver(metrics.NewMultiObserver(obsList...), 1024)

	session := chat.NewSession(cfg.PartyALang, cfg.PartyBLang)
	ingestor := pipeline.NewIngestor(pipeline.Options{
		Transcriber: transcriber,
		Translator:  translator,
		Synthesizer: synthesizer,
		Session:     session,
		Observer:    asyncObs,
		Logger:      logger,
	})

	return &Engine{
		cfg:      cfg,
		session:  session,
		ingestor: ingestor,
		obs:      asyncObs,
		metrics:  metricsFile,
		log:      logging.NewComponentLogger(logger, "engine"),
	}, nil
}

func buildVendors(providers *ProviderRegistry, cfg Config) (transcribe.Transcriber, translate.Translator, synth.Synthesizer, error) {
	transcriber, err := providers.BuildTranscriber(cfg.Vendors.Transcriber.Provider, cfg, cfg.Vendors.Transcriber.Settings)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("build transcriber: %w", err)
	}
	translator, err := providers.BuildTranslator(cfg.Vendors.Translator.Provider, cfg, cfg.Vendors.Translator.Settings)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("build translator: %w", err)
	}
	synthesizer, err := providers.BuildSynthesizer(cfg.Vendors.Synthesizer.Provider, cfg, cfg.Vendors.Synthesizer.Settings)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("build synthesizer: %w", err)
	}
	return transcriber, translator, synthesizer, nil
}

// Close flushes and stops the metrics plumbing.
func (e *Engine) Close() error {
	if e.obs != nil {
		e.obs.Close()
	}
	if e.metrics != nil {
		return e.metrics.Close()
	}
	return nil
}

// SendText ingests a typed message from party.
func (e *Engine) SendText(ctx context.Context, party chat.Party, text string) (chat.Message, error) {
	if !party.Valid() {
		return chat.Message{}, ErrUnknownParty
	}
	msg, err := e.ingestor.Ingest(ctx, party, pipeline.Input{Kind: pipeline.KindText, Text: text})
	if err != nil {
		return chat.Message{}, err
	}
	e.session.NextInputSeq(party)
	return msg, nil
}

// SendUpload ingests an uploaded audio file. The extension gate mirrors the
// upload widget's wav/mp3/m4a constraint.
func (e *Engine) SendUpload(ctx context.Context, party chat.Party, filename string, data []byte) (chat.Message, error) {
	if !party.Valid() {
		return chat.Message{}, ErrUnknownParty
	}
	if !e.uploadAllowed(filename) {
		return chat.Message{}, errorsx.Wrap(fmt.Errorf("%w: %s", ErrUnsupportedAudio, filepath.Ext(filename)), errorsx.ReasonUnsupportedAudio)
	}
	return e.sendAudio(ctx, party, data)
}

// SendRecording ingests a clip from the live recorder, dropping clips under
// the minimum size.
func (e *Engine) SendRecording(ctx context.Context, party chat.Party, data []byte) (chat.Message, error) {
	if !party.Valid() {
		return chat.Message{}, ErrUnknownParty
	}
	if len(data) < e.cfg.Input.MinClipBytes {
		return chat.Message{}, errorsx.Wrap(fmt.Errorf("%w: %d bytes", ErrClipTooShort, len(data)), errorsx.ReasonClipTooShort)
	}
	return e.sendAudio(ctx, party, data)
}

func (e *Engine) sendAudio(ctx context.Context, party chat.Party, data []byte) (chat.Message, error) {
	msg, err := e.ingestor.Ingest(ctx, party, pipeline.Input{Kind: pipeline.KindAudio, Audio: data})
	if err != nil {
		return chat.Message{}, err
	}
	e.session.NextInputSeq(party)
	return msg, nil
}

func (e *Engine) uploadAllowed(filename string) bool {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	for _, allowed := range e.cfg.Input.UploadExtensions {
		if ext == strings.ToLower(allowed) {
			return true
		}
	}
	return false
}

// View projects the log for one viewer.
func (e *Engine) View(party chat.Party) []render.Bubble {
	return render.Project(e.session.Store().Messages(), party)
}

// SetLanguage changes a party's display language for future messages only;
// stored messages keep their original translation.
func (e *Engine) SetLanguage(party chat.Party, code string) error {
	if !party.Valid() {
		return ErrUnknownParty
	}
	if !langs.Supported(code) {
		return errorsx.Wrap(fmt.Errorf("%w: %s", ErrUnknownLanguage, code), errorsx.ReasonUnknownLanguage)
	}
	e.session.SetLang(party, code)
	e.log.Info("language_changed",
		slog.String("party", party.String()),
		slog.String("lang", code))
	return nil
}

// Language returns a party's configured language code.
func (e *Engine) Language(party chat.Party) string {
	return e.session.Lang(party)
}

// Languages returns both parties' configured language codes.
func (e *Engine) Languages() map[chat.Party]string {
	return map[chat.Party]string{
		chat.PartyA: e.session.Lang(chat.PartyA),
		chat.PartyB: e.session.Lang(chat.PartyB),
	}
}

// Clear empties the session: the whole log plus both input counters.
func (e *Engine) Clear() {
	e.session.Clear()
	e.log.Info("session_cleared")
}

// Session exposes the underlying session state.
func (e *Engine) Session() *chat.Session {
	return e.session
}

// Config returns the engine configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// PauseThreshold is the recorder's silence-to-stop duration for the
// capture front end.
func (e *Engine) PauseThreshold() time.Duration {
	return time.Duration(e.cfg.Input.PauseThresholdSec * float64(time.Second))
}
