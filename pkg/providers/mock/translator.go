package mock

import (
	"context"
	"errors"
	"sync"

	"github.com/harunnryd/parley/pkg/adapters/translate"
)

type TranslatorConfig struct {
	// Dictionary maps target language to source text to translated text.
	// Misses fall back to a "[target] " prefix.
	Dictionary map[string]map[string]string
	// Fail makes every call return an error.
	Fail bool
}

type Translator struct {
	cfg   TranslatorConfig
	mu    sync.Mutex
	calls int
}

func NewTranslator(cfg TranslatorConfig) *Translator {
	return &Translator{cfg: cfg}
}

func (m *Translator) Name() string { return "mock_translator" }

func (m *Translator) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	if m.cfg.Fail {
		return "", errors.New("translation backend unavailable")
	}
	if dict, ok := m.cfg.Dictionary[targetLang]; ok {
		if out, ok := dict[text]; ok {
			return out, nil
		}
	}
	return "[" + targetLang + "] " + text, nil
}

// Calls returns how many times Translate was invoked.
func (m *Translator) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

var _ translate.Translator = (*Translator)(nil)
