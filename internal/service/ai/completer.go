// Package ai provides the completion client used for BOQ extraction: a live
// variant backed by a provider-selected chat model, and a mock variant that
// answers without any network call.
package ai

import (
	"context"
	"errors"
	"fmt"

	"github.com/cloudwego/eino-ext/components/model/claude"
	"github.com/cloudwego/eino-ext/components/model/gemini"
	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"google.golang.org/genai"
)

const (
	// Low temperature favours consistent extraction over creativity.
	completionTemperature float32 = 0.3
	completionMaxTokens           = 2000
)

// Request carries one completion call. SourceFile is only consulted by the
// mock variant, which echoes it into the canned project name.
type Request struct {
	System     string
	Prompt     string
	SourceFile string
}

// Completer issues a single completion request and returns the raw model
// reply. Implementations do not retry.
type Completer interface {
	Complete(ctx context.Context, req Request) (string, error)
	Mock() bool
}

// ProviderConfig selects and authenticates the remote model.
type ProviderConfig struct {
	Provider string
	APIKey   string
	BaseURL  string
	Model    string
}

// NewChatModel builds the provider-specific eino chat model.
func NewChatModel(ctx context.Context, cfg ProviderConfig) (model.BaseChatModel, error) {
	temp := completionTemperature
	maxTokens := completionMaxTokens

	switch cfg.Provider {
	case "openai":
		return openai.NewChatModel(ctx, &openai.ChatModelConfig{
			BaseURL:     cfg.BaseURL,
			Model:       cfg.Model,
			APIKey:      cfg.APIKey,
			Temperature: &temp,
			MaxTokens:   &maxTokens,
		})
	case "gemini":
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey: cfg.APIKey,
		})
		if err != nil {
			return nil, fmt.Errorf("create gemini client: %w", err)
		}
		return gemini.NewChatModel(ctx, &gemini.Config{
			Client: client,
			Model:  cfg.Model,
		})
	case "claude":
		var baseURLPtr *string
		if cfg.BaseURL != "" {
			baseURLPtr = &cfg.BaseURL
		}
		return claude.NewChatModel(ctx, &claude.Config{
			APIKey:      cfg.APIKey,
			Model:       cfg.Model,
			BaseURL:     baseURLPtr,
			MaxTokens:   maxTokens,
			Temperature: &temp,
		})
	default:
		return nil, fmt.Errorf("invalid provider: %s", cfg.Provider)
	}
}

// LiveCompleter sends the prompt to the remote model in one shot.
type LiveCompleter struct {
	model model.BaseChatModel
}

func NewLiveCompleter(m model.BaseChatModel) *LiveCompleter {
	return &LiveCompleter{model: m}
}

func (c *LiveCompleter) Complete(ctx context.Context, req Request) (string, error) {
	messages := []*schema.Message{
		schema.SystemMessage(req.System),
		schema.UserMessage(req.Prompt),
	}
	resp, err := c.model.Generate(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("generate completion: %w", err)
	}
	if resp == nil || resp.Content == "" {
		return "", errors.New("empty completion response")
	}
	return resp.Content, nil
}

func (c *LiveCompleter) Mock() bool { return false }
