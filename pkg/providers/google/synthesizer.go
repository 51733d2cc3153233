package google

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/harunnryd/parley/pkg/adapters/synth"
)

const ttsEndpoint = "https://translate.google.com/translate_tts"

// ttsChunkRunes is the web endpoint's effective per-request text limit.
const ttsChunkRunes = 180

type SynthesizerConfig struct {
	// Endpoint overrides the default web endpoint, mainly for tests.
	Endpoint string
	Timeout  time.Duration
	Client   *http.Client
}

// Synthesizer fetches mp3 speech from the Google Translate TTS endpoint.
// Long texts are split into chunks and the mp3 segments concatenated, which
// players accept as a single stream.
type Synthesizer struct {
	cfg    SynthesizerConfig
	client *http.Client
}

func NewSynthesizer(cfg SynthesizerConfig) *Synthesizer {
	if cfg.Endpoint == "" {
		cfg.Endpoint = ttsEndpoint
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 15 * time.Second
	}
	client := cfg.Client
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	return &Synthesizer{cfg: cfg, client: client}
}

func (s *Synthesizer) Name() string { return "google_tts" }

func (s *Synthesizer) Synthesize(ctx context.Context, text, lang string) ([]byte, error) {
	var audio []byte
	for _, chunk := range splitChunks(text, ttsChunkRunes) {
		part, err := s.fetchChunk(ctx, chunk, lang)
		if err != nil {
			return nil, err
		}
		audio = append(audio, part...)
	}
	if len(audio) == 0 {
		return nil, fmt.Errorf("nothing to synthesize")
	}
	return audio, nil
}

func (s *Synthesizer) fetchChunk(ctx context.Context, text, lang string) ([]byte, error) {
	q := url.Values{}
	q.Set("ie", "UTF-8")
	q.Set("client", "tw-ob")
	q.Set("tl", lang)
	q.Set("q", text)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.cfg.Endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tts endpoint status %s", resp.Status)
	}
	return io.ReadAll(resp.Body)
}

// splitChunks breaks text into runs of at most max runes, preferring word
// boundaries.
func splitChunks(text string, max int) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if utf8.RuneCountInString(text) <= max {
		return []string{text}
	}
	var chunks []string
	var current strings.Builder
	currentLen := 0
	for _, word := range strings.Fields(text) {
		wordLen := utf8.RuneCountInString(word)
		if currentLen > 0 && currentLen+1+wordLen > max {
			chunks = append(chunks, current.String())
			current.Reset()
			currentLen = 0
		}
		if currentLen > 0 {
			current.WriteByte(' ')
			currentLen++
		}
		// A single oversized word still goes out whole; the endpoint
		// tolerates mild overshoot better than a mid-word split.
		current.WriteString(word)
		currentLen += wordLen
	}
	if currentLen > 0 {
		chunks = append(chunks, current.String())
	}
	return chunks
}

var _ synth.Synthesizer = (*Synthesizer)(nil)
