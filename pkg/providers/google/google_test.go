package google

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestParseTranslateResponse(t *testing.T) {
	body := []byte(`[[["नमस्ते","Hello",null,null,10]],null,"en"]`)
	got, err := parseTranslateResponse(body)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got != "नमस्ते" {
		t.Fatalf("got %q", got)
	}
}

func TestParseTranslateResponseMultiSentence(t *testing.T) {
	body := []byte(`[[["Bonjour. ","Hello. ",null,null,10],["Ça va ?","How are you?",null,null,10]],null,"en"]`)
	got, err := parseTranslateResponse(body)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got != "Bonjour. Ça va ?" {
		t.Fatalf("got %q", got)
	}
}

func TestParseTranslateResponseMalformed(t *testing.T) {
	if _, err := parseTranslateResponse([]byte(`{"not":"an array"}`)); err == nil {
		t.Fatalf("expected error for malformed payload")
	}
	if _, err := parseTranslateResponse([]byte(`[]`)); err == nil {
		t.Fatalf("expected error for empty payload")
	}
}

func TestTranslatorAgainstServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("sl") != "en" || r.URL.Query().Get("tl") != "hi" {
			t.Errorf("unexpected language pair: %s", r.URL.RawQuery)
		}
		if r.URL.Query().Get("q") != "Hello" {
			t.Errorf("unexpected query text: %s", r.URL.Query().Get("q"))
		}
		w.Write([]byte(`[[["नमस्ते","Hello",null,null,10]],null,"en"]`))
	}))
	defer srv.Close()

	tr := NewTranslator(TranslatorConfig{Endpoint: srv.URL})
	got, err := tr.Translate(context.Background(), "Hello", "en", "hi")
	if err != nil {
		t.Fatalf("translate: %v", err)
	}
	if got != "नमस्ते" {
		t.Fatalf("got %q", got)
	}
}

func TestTranslatorBackendError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "slow down", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	tr := NewTranslator(TranslatorConfig{Endpoint: srv.URL})
	if _, err := tr.Translate(context.Background(), "Hello", "en", "hi"); err == nil {
		t.Fatalf("expected error on backend failure")
	}
}

func TestSynthesizerConcatenatesChunks(t *testing.T) {
	var requests int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		if r.URL.Query().Get("tl") != "hi" {
			t.Errorf("unexpected lang: %s", r.URL.Query().Get("tl"))
		}
		w.Write([]byte("mp3|"))
	}))
	defer srv.Close()

	s := NewSynthesizer(SynthesizerConfig{Endpoint: srv.URL})
	long := strings.Repeat("word ", 100)
	audio, err := s.Synthesize(context.Background(), long, "hi")
	if err != nil {
		t.Fatalf("synthesize: %v", err)
	}
	if requests < 2 {
		t.Fatalf("expected chunked requests, got %d", requests)
	}
	if len(audio) != requests*4 {
		t.Fatalf("expected concatenated audio, got %d bytes for %d requests", len(audio), requests)
	}
}

func TestSplitChunks(t *testing.T) {
	chunks := splitChunks("one two three four", 9)
	if len(chunks) != 2 || chunks[0] != "one two" || chunks[1] != "three four" {
		t.Fatalf("unexpected chunks: %q", chunks)
	}
	for _, c := range chunks {
		if utf8.RuneCountInString(c) > 9 {
			t.Fatalf("chunk over limit: %q", c)
		}
	}
	if splitChunks("   ", 10) != nil {
		t.Fatalf("blank input must produce no chunks")
	}
	if got := splitChunks("short", 10); len(got) != 1 || got[0] != "short" {
		t.Fatalf("short input must stay whole: %q", got)
	}
}
