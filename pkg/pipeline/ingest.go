package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/harunnryd/parley/pkg/adapters/synth"
	"github.com/harunnryd/parley/pkg/adapters/transcribe"
	"github.com/harunnryd/parley/pkg/adapters/translate"
	"github.com/harunnryd/parley/pkg/chat"
	"github.com/harunnryd/parley/pkg/errorsx"
	"github.com/harunnryd/parley/pkg/langs"
	"github.com/harunnryd/parley/pkg/logging"
	"github.com/harunnryd/parley/pkg/metrics"
	"github.com/harunnryd/parley/pkg/redact"
)

type InputKind string

const (
	KindText  InputKind = "text"
	KindAudio InputKind = "audio"
)

// Input is one inbound event: either typed text or a complete audio clip.
type Input struct {
	Kind  InputKind
	Text  string
	Audio []byte
}

// ErrEmptyUtterance is returned when the canonical text comes out empty
// after trimming. Empty utterances are discarded, not stored.
var ErrEmptyUtterance = errors.New("empty utterance")

// Ingestor turns inbound events into stored messages: transcribe to the
// pivot language, translate for the receiver, synthesize speech for spoken
// messages. Translation and synthesis failures degrade the message;
// transcription failures abort it.
type Ingestor struct {
	transcriber transcribe.Transcriber
	translator  translate.Translator
	synthesizer synth.Synthesizer
	session     *chat.Session
	receiver    chat.ReceiverResolver
	obs         metrics.Observer
	log         *slog.Logger
	now         func() time.Time
}

type Options struct {
	Transcriber transcribe.Transcriber
	Translator  translate.Translator
	Synthesizer synth.Synthesizer
	Session     *chat.Session

	// Receiver resolves the receiving party for a sender. Defaults to
	// the sender's counterpart.
	Receiver chat.ReceiverResolver
	Observer metrics.Observer
	Logger   *slog.Logger

	// Now overrides the message timestamp source.
	Now func() time.Time
}

func NewIngestor(opts Options) *Ingestor {
	receiver := opts.Receiver
	if receiver == nil {
		receiver = chat.Party.Other
	}
	obs := opts.Observer
	if obs == nil {
		obs = metrics.NoopObserver{}
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Ingestor{
		transcriber: opts.Transcriber,
		translator:  opts.Translator,
		synthesizer: opts.Synthesizer,
		session:     opts.Session,
		receiver:    receiver,
		obs:         obs,
		log:         logging.NewComponentLogger(opts.Logger, "pipeline"),
		now:         now,
	}
}

// Ingest runs one full synchronous pass: resolve canonical text, translate
// for the receiver, synthesize when the input was spoken, then append
// exactly one message to the log. Re-ingesting the same input produces a
// new equivalent message; stored messages are never mutated.
func (ing *Ingestor) Ingest(ctx context.Context, sender chat.Party, input Input) (chat.Message, error) {
	ing.log.Debug("ingest_start",
		slog.String("sender", sender.String()),
		slog.String("kind", string(input.Kind)))

	canonical, err := ing.canonicalText(ctx, sender, input)
	if err != nil {
		return chat.Message{}, err
	}

	receiverLang := ing.session.Lang(ing.receiver(sender))
	translated := ing.translateFor(ctx, sender, canonical, receiverLang)

	var voice []byte
	if input.Kind == KindAudio {
		voice = ing.synthesizeFor(ctx, sender, translated, receiverLang)
	}

	msg := chat.Message{
		ID:               uuid.NewString(),
		Sender:           sender,
		CanonicalText:    canonical,
		TranslatedText:   translated,
		OriginalAudio:    input.Audio,
		SynthesizedAudio: voice,
		CreatedAt:        ing.now(),
	}
	ing.session.Store().Append(msg)

	ing.log.Info("message_stored",
		slog.String("message_id", msg.ID),
		slog.String("sender", sender.String()),
		slog.String("kind", string(input.Kind)),
		slog.String("receiver_lang", receiverLang),
		slog.Bool("spoken", msg.Spoken()),
		slog.Bool("voiced", len(voice) > 0),
		slog.String("text", redact.Message(canonical)))
	return msg, nil
}

func (ing *Ingestor) canonicalText(ctx context.Context, sender chat.Party, input Input) (string, error) {
	var text string
	switch input.Kind {
	case KindText:
		text = input.Text
	case KindAudio:
		start := time.Now()
		out, err := ing.transcriber.Transcribe(ctx, input.Audio)
		ing.obs.RecordEvent(metrics.StageEvent("transcribe", ing.transcriber.Name(), sender.String(), time.Since(start), err == nil))
		if err != nil {
			ing.log.Error("transcribe_failed",
				slog.String("sender", sender.String()),
				slog.String("provider", ing.transcriber.Name()),
				slog.String("error", err.Error()))
			return "", errorsx.Wrap(err, errorsx.ReasonTranscribe)
		}
		text = out
	default:
		return "", errors.New("unknown input kind: " + string(input.Kind))
	}

	text = strings.TrimSpace(text)
	if text == "" {
		ing.log.Warn("empty_utterance_discarded",
			slog.String("sender", sender.String()),
			slog.String("kind", string(input.Kind)))
		return "", errorsx.Wrap(ErrEmptyUtterance, errorsx.ReasonEmptyTranscript)
	}
	return text, nil
}

// translateFor renders canonical text in the receiver's language. An
// identical language pair short-circuits without touching the adapter; a
// backend failure falls back to the untranslated pivot text so delivery is
// never blocked on translation.
func (ing *Ingestor) translateFor(ctx context.Context, sender chat.Party, canonical, receiverLang string) string {
	if receiverLang == langs.Pivot {
		return canonical
	}
	start := time.Now()
	out, err := ing.translator.Translate(ctx, canonical, langs.Pivot, receiverLang)
	ing.obs.RecordEvent(metrics.StageEvent("translate", ing.translator.Name(), sender.String(), time.Since(start), err == nil))
	if err != nil {
		ing.log.Warn("translate_fallback",
			slog.String("sender", sender.String()),
			slog.String("provider", ing.translator.Name()),
			slog.String("target_lang", receiverLang),
			slog.String("error", err.Error()))
		return canonical
	}
	return out
}

// synthesizeFor produces the receiver-language voice track. Failure leaves
// the message text-only.
func (ing *Ingestor) synthesizeFor(ctx context.Context, sender chat.Party, translated, receiverLang string) []byte {
	start := time.Now()
	audio, err := ing.synthesizer.Synthesize(ctx, translated, receiverLang)
	ing.obs.RecordEvent(metrics.StageEvent("synthesize", ing.synthesizer.Name(), sender.String(), time.Since(start), err == nil))
	if err != nil {
		ing.log.Warn("synthesize_fallback",
			slog.String("sender", sender.String()),
			slog.String("provider", ing.synthesizer.Name()),
			slog.String("lang", receiverLang),
			slog.String("error", err.Error()))
		return nil
	}
	return audio
}
