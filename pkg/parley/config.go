package parley

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/harunnryd/parley/pkg/langs"
)

type Config struct {
	Environment string `mapstructure:"environment"`
	LogLevel    string `mapstructure:"log_level"`
	LogFormat   string `mapstructure:"log_format"`

	PartyALang string `mapstructure:"party_a_lang"`
	PartyBLang string `mapstructure:"party_b_lang"`

	Vendors       VendorsConfig       `mapstructure:"vendors"`
	Input         InputConfig         `mapstructure:"input"`
	HTTP          HTTPConfig          `mapstructure:"http"`
	Privacy       PrivacyConfig       `mapstructure:"privacy"`
	Observability ObservabilityConfig `mapstructure:"observability"`
}

type VendorConfig struct {
	Provider string         `mapstructure:"provider"`
	Settings map[string]any `mapstructure:"settings"`
}

type VendorsConfig struct {
	Transcriber VendorConfig `mapstructure:"transcriber"`
	Translator  VendorConfig `mapstructure:"translator"`
	Synthesizer VendorConfig `mapstructure:"synthesizer"`
}

type InputConfig struct {
	// MinClipBytes filters out accidental taps on the record button.
	MinClipBytes int `mapstructure:"min_clip_bytes"`
	// PauseThresholdSec is the recorder's silence-to-stop threshold,
	// carried here for the capture front end.
	PauseThresholdSec float64 `mapstructure:"pause_threshold_sec"`
	// UploadExtensions lists the accepted audio upload extensions.
	UploadExtensions []string `mapstructure:"upload_extensions"`
}

type HTTPConfig struct {
	Addr string `mapstructure:"addr"`
}

type PrivacyConfig struct {
	RedactPII bool `mapstructure:"redact_pii"`
}

type ObservabilityConfig struct {
	// MetricsPath appends pipeline stage events as JSON lines.
	MetricsPath string `mapstructure:"metrics_path"`
}

// LoadConfig reads a YAML config file, applying defaults and PARLEY_*
// environment overrides.
func LoadConfig(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix("PARLEY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("environment", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
	v.SetDefault("party_a_lang", langs.Pivot)
	v.SetDefault("party_b_lang", "hi")
	v.SetDefault("vendors.transcriber.provider", "mock")
	v.SetDefault("vendors.translator.provider", "google")
	v.SetDefault("vendors.synthesizer.provider", "google")
	v.SetDefault("input.min_clip_bytes", 2000)
	v.SetDefault("input.pause_threshold_sec", 2.0)
	v.SetDefault("input.upload_extensions", []string{"wav", "mp3", "m4a"})
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("privacy.redact_pii", true)
	v.SetDefault("observability.metrics_path", "")

	if err := v.ReadInConfig(); err != nil {
		if _, statErr := os.Stat(path); statErr == nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		// Missing file falls back to defaults and env.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects language codes outside the registry.
func (c Config) Validate() error {
	for _, code := range []string{c.PartyALang, c.PartyBLang} {
		if !langs.Supported(code) {
			return fmt.Errorf("%w: %s", ErrUnknownLanguage, code)
		}
	}
	if c.Input.MinClipBytes < 0 {
		return fmt.Errorf("input.min_clip_bytes must not be negative")
	}
	return nil
}
