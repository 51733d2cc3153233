package mock

import (
	"context"
	"errors"
	"sync"

	"github.com/harunnryd/parley/pkg/adapters/synth"
)

type SynthesizerConfig struct {
	// Audio is returned for every synthesis call.
	Audio []byte
	// Fail makes every call return an error.
	Fail bool
}

type Synthesizer struct {
	cfg   SynthesizerConfig
	mu    sync.Mutex
	calls int
	texts []string
}

func NewSynthesizer(cfg SynthesizerConfig) *Synthesizer {
	if len(cfg.Audio) == 0 && !cfg.Fail {
		cfg.Audio = []byte("mock-mp3")
	}
	return &Synthesizer{cfg: cfg}
}

func (m *Synthesizer) Name() string { return "mock_synthesizer" }

func (m *Synthesizer) Synthesize(ctx context.Context, text, lang string) ([]byte, error) {
	m.mu.Lock()
	m.calls++
	m.texts = append(m.texts, text)
	m.mu.Unlock()
	if m.cfg.Fail {
		return nil, errors.New("tts backend unavailable")
	}
	return append([]byte(nil), m.cfg.Audio...), nil
}

// Calls returns how many times Synthesize was invoked.
func (m *Synthesizer) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// Texts returns the texts submitted for synthesis, in order.
func (m *Synthesizer) Texts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.texts...)
}

var _ synth.Synthesizer = (*Synthesizer)(nil)
