package mock

import (
	"context"
	"errors"
	"sync"

	"github.com/harunnryd/parley/pkg/adapters/transcribe"
)

type TranscriberConfig struct {
	// Transcript is returned for every clip.
	Transcript string
	// Fail makes every call return a TranscriptionError.
	Fail bool
}

type Transcriber struct {
	cfg   TranscriberConfig
	mu    sync.Mutex
	calls int
}

func NewTranscriber(cfg TranscriberConfig) *Transcriber {
	if cfg.Transcript == "" && !cfg.Fail {
		cfg.Transcript = "mock transcript"
	}
	return &Transcriber{cfg: cfg}
}

func (m *Transcriber) Name() string { return "mock_transcriber" }

func (m *Transcriber) Transcribe(ctx context.Context, audio []byte) (string, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	if m.cfg.Fail {
		return "", transcribe.TranscriptionError{Provider: m.Name(), Err: errors.New("undecodable audio")}
	}
	return m.cfg.Transcript, nil
}

// Calls returns how many times Transcribe was invoked.
func (m *Transcriber) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

var _ transcribe.Transcriber = (*Transcriber)(nil)
