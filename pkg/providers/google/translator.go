package google

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/harunnryd/parley/pkg/adapters/translate"
)

const translateEndpoint = "https://translate.googleapis.com/translate_a/single"

type TranslatorConfig struct {
	// Endpoint overrides the default web endpoint, mainly for tests.
	Endpoint string
	Timeout  time.Duration
	Client   *http.Client
}

// Translator calls the free Google Translate web endpoint, the same backend
// the product originally shipped with.
type Translator struct {
	cfg    TranslatorConfig
	client *http.Client
}

func NewTranslator(cfg TranslatorConfig) *Translator {
	if cfg.Endpoint == "" {
		cfg.Endpoint = translateEndpoint
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	client := cfg.Client
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	return &Translator{cfg: cfg, client: client}
}

func (t *Translator) Name() string { return "google_web" }

func (t *Translator) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	q := url.Values{}
	q.Set("client", "gtx")
	q.Set("sl", sourceLang)
	q.Set("tl", targetLang)
	q.Set("dt", "t")
	q.Set("q", text)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.cfg.Endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return "", err
	}
	resp, err := t.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("translate endpoint status %s", resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return parseTranslateResponse(body)
}

// parseTranslateResponse flattens the endpoint's nested-array payload:
// [[["translated","source",...],...],...] with one entry per sentence.
func parseTranslateResponse(body []byte) (string, error) {
	var payload []json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", fmt.Errorf("malformed translate payload: %w", err)
	}
	if len(payload) == 0 {
		return "", fmt.Errorf("empty translate payload")
	}
	var sentences [][]json.RawMessage
	if err := json.Unmarshal(payload[0], &sentences); err != nil {
		return "", fmt.Errorf("malformed sentence list: %w", err)
	}
	var b strings.Builder
	for _, s := range sentences {
		if len(s) == 0 {
			continue
		}
		var segment string
		if err := json.Unmarshal(s[0], &segment); err != nil {
			continue
		}
		b.WriteString(segment)
	}
	out := b.String()
	if strings.TrimSpace(out) == "" {
		return "", fmt.Errorf("no translation in payload")
	}
	return out, nil
}

var _ translate.Translator = (*Translator)(nil)
