package translate

import "context"

// Translator defines the contract for any machine-translation vendor
// implementation. Providers surface backend failures as errors; the fallback
// policy (deliver the input unchanged) belongs to the pipeline, not here.
type Translator interface {
	// Name returns adapter name for logging/metrics.
	Name() string
	// Translate converts text from sourceLang to targetLang.
	Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error)
}

// Config contains vendor-agnostic translation configuration.
type Config struct {
	// Formality is an optional vendor hint ("formal", "informal").
	Formality string
}
