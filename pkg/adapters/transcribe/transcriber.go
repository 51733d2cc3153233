package transcribe

import (
	"context"
	"errors"
)

// Transcriber defines the contract for any speech-to-text vendor
// implementation. Output is always pivot-language text regardless of the
// spoken language; vendors are expected to auto-detect it.
type Transcriber interface {
	// Name returns adapter name for logging/metrics.
	Name() string
	// Transcribe converts a complete audio clip to pivot-language text.
	Transcribe(ctx context.Context, audio []byte) (string, error)
}

// Config contains vendor-agnostic transcription configuration.
type Config struct {
	// PivotLang is the language all transcripts are normalized to.
	PivotLang string
	// Hint is an optional filename hint ("clip.wav") for vendors that
	// sniff the container format from the extension.
	Hint string
}

// TranscriptionError reports audio the speech model could not decode. It is
// fatal to the ingestion attempt that produced it.
type TranscriptionError struct {
	Provider string
	Err      error
}

func (e TranscriptionError) Error() string {
	if e.Err == nil {
		return "transcription failed"
	}
	return "transcription failed: " + e.Err.Error()
}

func (e TranscriptionError) Unwrap() error {
	return e.Err
}

// IsTranscriptionError returns true when err is a TranscriptionError.
func IsTranscriptionError(err error) bool {
	var te TranscriptionError
	return errors.As(err, &te)
}
