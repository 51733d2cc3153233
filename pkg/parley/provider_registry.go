package parley

import (
	"fmt"
	"strings"

	"github.com/harunnryd/parley/pkg/adapters/synth"
	"github.com/harunnryd/parley/pkg/adapters/transcribe"
	"github.com/harunnryd/parley/pkg/adapters/translate"
)

type TranscriberFactory func(cfg Config, settings map[string]any) (transcribe.Transcriber, error)
type TranslatorFactory func(cfg Config, settings map[string]any) (translate.Translator, error)
type SynthesizerFactory func(cfg Config, settings map[string]any) (synth.Synthesizer, error)

// ProviderRegistry maps vendor names from the config to adapter factories.
type ProviderRegistry struct {
	transcribers map[string]TranscriberFactory
	translators  map[string]TranslatorFactory
	synthesizers map[string]SynthesizerFactory
}

func NewProviderRegistry() *ProviderRegistry {
	return &ProviderRegistry{
		transcribers: make(map[string]TranscriberFactory),
		translators:  make(map[string]TranslatorFactory),
		synthesizers: make(map[string]SynthesizerFactory),
	}
}

func (r *ProviderRegistry) RegisterTranscriber(name string, factory TranscriberFactory) {
	r.transcribers[normalizeName(name)] = factory
}

func (r *ProviderRegistry) RegisterTranslator(name string, factory TranslatorFactory) {
	r.translators[normalizeName(name)] = factory
}

func (r *ProviderRegistry) RegisterSynthesizer(name string, factory SynthesizerFactory) {
	r.synthesizers[normalizeName(name)] = factory
}

func (r *ProviderRegistry) BuildTranscriber(provider string, cfg Config, settings map[string]any) (transcribe.Transcriber, error) {
	fn := r.transcribers[normalizeName(provider)]
	if fn == nil {
		return nil, fmt.Errorf("transcriber provider not registered: %s", provider)
	}
	return fn(cfg, settings)
}

func (r *ProviderRegistry) BuildTranslator(provider string, cfg Config, settings map[string]any) (translate.Translator, error) {
	fn := r.translators[normalizeName(provider)]
	if fn == nil {
		return nil, fmt.Errorf("translator provider not registered: %s", provider)
	}
	return fn(cfg, settings)
}

func (r *ProviderRegistry) BuildSynthesizer(provider string, cfg Config, settings map[string]any) (synth.Synthesizer, error) {
	fn := r.synthesizers[normalizeName(provider)]
	if fn == nil {
		return nil, fmt.Errorf("synthesizer provider not registered: %s", provider)
	}
	return fn(cfg, settings)
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
