package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/harunnryd/parley/pkg/adapters/transcribe"
	"github.com/harunnryd/parley/pkg/chat"
	"github.com/harunnryd/parley/pkg/errorsx"
	"github.com/harunnryd/parley/pkg/metrics"
	"github.com/harunnryd/parley/pkg/providers/mock"
)

type fixture struct {
	session     *chat.Session
	transcriber *mock.Transcriber
	translator  *mock.Translator
	synthesizer *mock.Synthesizer
	obs         *metrics.MemoryObserver
	ingestor    *Ingestor
}

func newFixture(t *testing.T, partyALang, partyBLang string, mutate func(*fixture)) *fixture {
	t.Helper()
	f := &fixture{
		session:     chat.NewSession(partyALang, partyBLang),
		transcriber: mock.NewTranscriber(mock.TranscriberConfig{Transcript: "Hello"}),
		translator: mock.NewTranslator(mock.TranslatorConfig{
			Dictionary: map[string]map[string]string{
				"hi": {"Hello": "नमस्ते"},
			},
		}),
		synthesizer: mock.NewSynthesizer(mock.SynthesizerConfig{Audio: []byte("voice")}),
		obs:         metrics.NewMemoryObserver(),
	}
	if mutate != nil {
		mutate(f)
	}
	f.ingestor = NewIngestor(Options{
		Transcriber: f.transcriber,
		Translator:  f.translator,
		Synthesizer: f.synthesizer,
		Session:     f.session,
		Observer:    f.obs,
	})
	return f
}

func TestIngestTextTranslatesForReceiver(t *testing.T) {
	f := newFixture(t, "en", "hi", nil)

	msg, err := f.ingestor.Ingest(context.Background(), chat.PartyA, Input{Kind: KindText, Text: "Hello"})
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}
	if msg.CanonicalText != "Hello" {
		t.Fatalf("canonical text = %q", msg.CanonicalText)
	}
	if msg.TranslatedText != "नमस्ते" {
		t.Fatalf("translated text = %q", msg.TranslatedText)
	}
	if msg.SynthesizedAudio != nil {
		t.Fatalf("text message must not carry synthesized audio")
	}
	if f.session.Store().Len() != 1 {
		t.Fatalf("expected exactly one stored message, got %d", f.session.Store().Len())
	}
}

func TestIngestTextNeverSynthesizes(t *testing.T) {
	f := newFixture(t, "en", "hi", nil)

	if _, err := f.ingestor.Ingest(context.Background(), chat.PartyA, Input{Kind: KindText, Text: "Hello"}); err != nil {
		t.Fatalf("ingest: %v", err)
	}
	if f.synthesizer.Calls() != 0 {
		t.Fatalf("synthesizer invoked %d times for a text message", f.synthesizer.Calls())
	}
}

func TestIngestIdentityLanguageSkipsTranslator(t *testing.T) {
	f := newFixture(t, "en", "en", nil)

	msg, err := f.ingestor.Ingest(context.Background(), chat.PartyA, Input{Kind: KindText, Text: "same words"})
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}
	if msg.TranslatedText != msg.CanonicalText {
		t.Fatalf("identity pair must pass text through unchanged")
	}
	if f.translator.Calls() != 0 {
		t.Fatalf("translator invoked %d times for identity pair", f.translator.Calls())
	}
}

func TestIngestAudioTranscribesAndVoices(t *testing.T) {
	f := newFixture(t, "en", "hi", nil)
	clip := []byte("pcm-bytes")

	msg, err := f.ingestor.Ingest(context.Background(), chat.PartyB, Input{Kind: KindAudio, Audio: clip})
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}
	// PartyB's receiver is PartyA (English): identity translation.
	if msg.CanonicalText != "Hello" || msg.TranslatedText != "Hello" {
		t.Fatalf("got canonical %q translated %q", msg.CanonicalText, msg.TranslatedText)
	}
	if string(msg.OriginalAudio) != string(clip) {
		t.Fatalf("original audio not preserved")
	}
	if len(msg.SynthesizedAudio) == 0 {
		t.Fatalf("expected synthesized audio for spoken message")
	}
	if f.transcriber.Calls() != 1 {
		t.Fatalf("transcriber calls = %d", f.transcriber.Calls())
	}
}

func TestIngestAudioSynthesisFailureDegradesToText(t *testing.T) {
	f := newFixture(t, "en", "hi", func(f *fixture) {
		f.synthesizer = mock.NewSynthesizer(mock.SynthesizerConfig{Fail: true})
	})

	msg, err := f.ingestor.Ingest(context.Background(), chat.PartyA, Input{Kind: KindAudio, Audio: []byte("clip")})
	if err != nil {
		t.Fatalf("synthesis failure must not fail the ingest: %v", err)
	}
	if msg.SynthesizedAudio != nil {
		t.Fatalf("expected text-only degrade")
	}
	if f.session.Store().Len() != 1 {
		t.Fatalf("degraded message must still be stored")
	}
}

func TestIngestTranslationFailureFallsBackToPivot(t *testing.T) {
	f := newFixture(t, "en", "hi", func(f *fixture) {
		f.translator = mock.NewTranslator(mock.TranslatorConfig{Fail: true})
	})

	msg, err := f.ingestor.Ingest(context.Background(), chat.PartyA, Input{Kind: KindText, Text: "Hello"})
	if err != nil {
		t.Fatalf("translation failure must not fail the ingest: %v", err)
	}
	if msg.TranslatedText != "Hello" {
		t.Fatalf("expected pivot fallback, got %q", msg.TranslatedText)
	}
}

func TestIngestTranscriptionFailureAborts(t *testing.T) {
	f := newFixture(t, "en", "hi", func(f *fixture) {
		f.transcriber = mock.NewTranscriber(mock.TranscriberConfig{Fail: true})
	})

	_, err := f.ingestor.Ingest(context.Background(), chat.PartyA, Input{Kind: KindAudio, Audio: []byte("garbage")})
	if err == nil {
		t.Fatalf("expected transcription error")
	}
	if !transcribe.IsTranscriptionError(err) {
		t.Fatalf("expected TranscriptionError, got %T", err)
	}
	if !errorsx.HasReason(err, errorsx.ReasonTranscribe) {
		t.Fatalf("expected transcribe reason, got %s", errorsx.Reason(err))
	}
	if f.session.Store().Len() != 0 {
		t.Fatalf("failed ingest must not store a message")
	}
}

func TestIngestEmptyTranscriptDiscarded(t *testing.T) {
	f := newFixture(t, "en", "hi", func(f *fixture) {
		f.transcriber = mock.NewTranscriber(mock.TranscriberConfig{Transcript: "   "})
	})

	_, err := f.ingestor.Ingest(context.Background(), chat.PartyA, Input{Kind: KindAudio, Audio: []byte("silence")})
	if !errors.Is(err, ErrEmptyUtterance) {
		t.Fatalf("expected ErrEmptyUtterance, got %v", err)
	}
	if f.session.Store().Len() != 0 {
		t.Fatalf("empty utterance must be discarded")
	}
}

func TestIngestEmptyTextDiscarded(t *testing.T) {
	f := newFixture(t, "en", "hi", nil)

	_, err := f.ingestor.Ingest(context.Background(), chat.PartyA, Input{Kind: KindText, Text: "  \n "})
	if !errors.Is(err, ErrEmptyUtterance) {
		t.Fatalf("expected ErrEmptyUtterance, got %v", err)
	}
}

func TestIngestLanguageChangeOnlyAffectsLaterMessages(t *testing.T) {
	f := newFixture(t, "en", "hi", nil)

	first, err := f.ingestor.Ingest(context.Background(), chat.PartyA, Input{Kind: KindText, Text: "Hello"})
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}

	f.session.SetLang(chat.PartyB, "fr")
	second, err := f.ingestor.Ingest(context.Background(), chat.PartyA, Input{Kind: KindText, Text: "Hello"})
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}

	stored := f.session.Store().Messages()
	if stored[0].TranslatedText != first.TranslatedText || stored[0].TranslatedText != "नमस्ते" {
		t.Fatalf("historical translation must stay frozen, got %q", stored[0].TranslatedText)
	}
	if second.TranslatedText != "[fr] Hello" {
		t.Fatalf("new message must use the new language, got %q", second.TranslatedText)
	}
}

func TestIngestRecordsStageMetrics(t *testing.T) {
	f := newFixture(t, "en", "hi", nil)

	if _, err := f.ingestor.Ingest(context.Background(), chat.PartyA, Input{Kind: KindAudio, Audio: []byte("clip")}); err != nil {
		t.Fatalf("ingest: %v", err)
	}
	stages := map[string]bool{}
	for _, ev := range f.obs.Events {
		stages[ev.Tags["stage"]] = true
	}
	for _, want := range []string{"transcribe", "translate", "synthesize"} {
		if !stages[want] {
			t.Fatalf("missing %s stage event; got %v", want, stages)
		}
	}
}

func TestIngestCustomReceiverResolver(t *testing.T) {
	session := chat.NewSession("en", "hi")
	translator := mock.NewTranslator(mock.TranslatorConfig{})
	ing := NewIngestor(Options{
		Transcriber: mock.NewTranscriber(mock.TranscriberConfig{}),
		Translator:  translator,
		Synthesizer: mock.NewSynthesizer(mock.SynthesizerConfig{}),
		Session:     session,
		// Echo routing: the sender is their own receiver.
		Receiver: func(sender chat.Party) chat.Party { return sender },
	})

	msg, err := ing.Ingest(context.Background(), chat.PartyA, Input{Kind: KindText, Text: "Hello"})
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}
	// PartyA reads English, so echo routing is an identity pair.
	if msg.TranslatedText != "Hello" || translator.Calls() != 0 {
		t.Fatalf("resolver not honored: %q, %d calls", msg.TranslatedText, translator.Calls())
	}
}
