package parley

import (
	"time"

	"github.com/harunnryd/parley/pkg/adapters/synth"
	"github.com/harunnryd/parley/pkg/adapters/transcribe"
	"github.com/harunnryd/parley/pkg/adapters/translate"
	"github.com/harunnryd/parley/pkg/configutil"
	"github.com/harunnryd/parley/pkg/providers/deepgram"
	"github.com/harunnryd/parley/pkg/providers/google"
	"github.com/harunnryd/parley/pkg/providers/mock"
	"github.com/harunnryd/parley/pkg/providers/openai"
)

type openAISettings struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
	Model   string `mapstructure:"model"`
	Voice   string `mapstructure:"voice"`
}

type deepgramSettings struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

type googleSettings struct {
	Endpoint  string `mapstructure:"endpoint"`
	TimeoutMS int    `mapstructure:"timeout_ms"`
}

type mockSettings struct {
	Transcript string `mapstructure:"transcript"`
	Fail       *bool  `mapstructure:"fail"`
}

// DefaultRegistry wires the built-in providers: mock for development and
// tests, google for the free web endpoints, openai for Whisper/chat/TTS,
// deepgram for prerecorded transcription.
func DefaultRegistry() *ProviderRegistry {
	r := NewProviderRegistry()

	r.RegisterTranscriber("mock", func(cfg Config, settings map[string]any) (transcribe.Transcriber, error) {
		var s mockSettings
		if err := configutil.DecodeSettings(settings, &s); err != nil {
			return nil, err
		}
		return mock.NewTranscriber(mock.TranscriberConfig{
			Transcript: s.Transcript,
			Fail:       configutil.BoolValue(s.Fail, false),
		}), nil
	})
	r.RegisterTranslator("mock", func(cfg Config, settings map[string]any) (translate.Translator, error) {
		var s mockSettings
		if err := configutil.DecodeSettings(settings, &s); err != nil {
			return nil, err
		}
		return mock.NewTranslator(mock.TranslatorConfig{Fail: configutil.BoolValue(s.Fail, false)}), nil
	})
	r.RegisterSynthesizer("mock", func(cfg Config, settings map[string]any) (synth.Synthesizer, error) {
		var s mockSettings
		if err := configutil.DecodeSettings(settings, &s); err != nil {
			return nil, err
		}
		return mock.NewSynthesizer(mock.SynthesizerConfig{Fail: configutil.BoolValue(s.Fail, false)}), nil
	})

	r.RegisterTranslator("google", func(cfg Config, settings map[string]any) (translate.Translator, error) {
		var s googleSettings
		if err := configutil.DecodeSettings(settings, &s); err != nil {
			return nil, err
		}
		return google.NewTranslator(google.TranslatorConfig{
			Endpoint: s.Endpoint,
			Timeout:  time.Duration(s.TimeoutMS) * time.Millisecond,
		}), nil
	})
	r.RegisterSynthesizer("google", func(cfg Config, settings map[string]any) (synth.Synthesizer, error) {
		var s googleSettings
		if err := configutil.DecodeSettings(settings, &s); err != nil {
			return nil, err
		}
		return google.NewSynthesizer(google.SynthesizerConfig{
			Endpoint: s.Endpoint,
			Timeout:  time.Duration(s.TimeoutMS) * time.Millisecond,
		}), nil
	})

	r.RegisterTranscriber("openai", func(cfg Config, settings map[string]any) (transcribe.Transcriber, error) {
		if err := configutil.ValidateSettings(settings, configutil.Schema{
			Required: []string{"api_key"},
			Optional: []string{"base_url", "model", "voice"},
		}); err != nil {
			return nil, err
		}
		var s openAISettings
		if err := configutil.DecodeSettings(settings, &s); err != nil {
			return nil, err
		}
		return openai.NewTranscriber(openai.TranscriberConfig{
			APIKey:  s.APIKey,
			BaseURL: s.BaseURL,
			Model:   s.Model,
		}), nil
	})
	r.RegisterTranslator("openai", func(cfg Config, settings map[string]any) (translate.Translator, error) {
		if err := configutil.ValidateSettings(settings, configutil.Schema{
			Required: []string{"api_key"},
			Optional: []string{"base_url", "model", "voice"},
		}); err != nil {
			return nil, err
		}
		var s openAISettings
		if err := configutil.DecodeSettings(settings, &s); err != nil {
			return nil, err
		}
		return openai.NewTranslator(openai.TranslatorConfig{
			APIKey:  s.APIKey,
			BaseURL: s.BaseURL,
			Model:   s.Model,
		}), nil
	})
	r.RegisterSynthesizer("openai", func(cfg Config, settings map[string]any) (synth.Synthesizer, error) {
		if err := configutil.ValidateSettings(settings, configutil.Schema{
			Required: []string{"api_key"},
			Optional: []string{"base_url", "model", "voice"},
		}); err != nil {
			return nil, err
		}
		var s openAISettings
		if err := configutil.DecodeSettings(settings, &s); err != nil {
			return nil, err
		}
		return openai.NewSynthesizer(openai.SynthesizerConfig{
			APIKey:  s.APIKey,
			BaseURL: s.BaseURL,
			Model:   s.Model,
			Voice:   s.Voice,
		}), nil
	})

	r.RegisterTranscriber("deepgram", func(cfg Config, settings map[string]any) (transcribe.Transcriber, error) {
		if err := configutil.ValidateSettings(settings, configutil.Schema{
			Required: []string{"api_key"},
			Optional: []string{"model"},
		}); err != nil {
			return nil, err
		}
		var s deepgramSettings
		if err := configutil.DecodeSettings(settings, &s); err != nil {
			return nil, err
		}
		// Deepgram transcribes in the spoken language; the google web
		// translator supplies the hop to the pivot.
		return deepgram.New(deepgram.Config{
			APIKey:          s.APIKey,
			Model:           s.Model,
			PivotTranslator: google.NewTranslator(google.TranslatorConfig{}),
		}), nil
	})

	return r
}
