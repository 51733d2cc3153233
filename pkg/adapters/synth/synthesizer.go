package synth

import "context"

// Synthesizer defines the contract for any text-to-speech vendor
// implementation. A failed synthesis is reported as an error; callers
// degrade to text-only rather than failing the message.
type Synthesizer interface {
	// Name returns adapter name for logging/metrics.
	Name() string
	// Synthesize renders text as speech in the given language and
	// returns encoded audio bytes.
	Synthesize(ctx context.Context, text, lang string) ([]byte, error)
}

// Config contains vendor-agnostic synthesis configuration.
type Config struct {
	// Voice overrides automatic language-based voice selection.
	Voice string
	// Format is the requested container format ("mp3" by default).
	Format string
}
