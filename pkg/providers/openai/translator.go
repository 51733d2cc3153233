package openai

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	goopenai "github.com/sashabaranov/go-openai"

	"github.com/harunnryd/parley/pkg/adapters/translate"
	"github.com/harunnryd/parley/pkg/langs"
	"github.com/harunnryd/parley/pkg/logging"
)

type TranslatorConfig struct {
	APIKey  string
	BaseURL string
	// Model defaults to gpt-4o-mini.
	Model       string
	Temperature float32
}

// Translator performs machine translation through a chat completion.
type Translator struct {
	cfg    TranslatorConfig
	client *goopenai.Client
	logger *slog.Logger
}

func NewTranslator(cfg TranslatorConfig) *Translator {
	if cfg.Model == "" {
		cfg.Model = goopenai.GPT4oMini
	}
	clientCfg := goopenai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	return &Translator{
		cfg:    cfg,
		client: goopenai.NewClientWithConfig(clientCfg),
		logger: logging.NewComponentLogger(slog.Default(), "openai_translator"),
	}
}

func (t *Translator) Name() string { return "openai_chat" }

func (t *Translator) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	resp, err := t.client.CreateChatCompletion(ctx, goopenai.ChatCompletionRequest{
		Model:       t.cfg.Model,
		Temperature: t.cfg.Temperature,
		Messages: []goopenai.ChatCompletionMessage{
			{
				Role:    goopenai.ChatMessageRoleSystem,
				Content: translationPrompt(sourceLang, targetLang),
			},
			{
				Role:    goopenai.ChatMessageRoleUser,
				Content: text,
			},
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty completion for %s->%s", sourceLang, targetLang)
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func translationPrompt(sourceLang, targetLang string) string {
	src := languageLabel(sourceLang)
	tgt := languageLabel(targetLang)
	return fmt.Sprintf(
		"You are a translation engine. Translate the user's message from %s to %s. "+
			"Reply with the translation only, no commentary.", src, tgt)
}

func languageLabel(code string) string {
	if name, ok := langs.Name(code); ok {
		return name
	}
	return code
}

var _ translate.Translator = (*Translator)(nil)
