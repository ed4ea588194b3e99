// Package generator wraps the hosted multimodal models that turn a wireframe
// image and a prompt into text. Implementations are interchangeable; the
// service layer only sees Generator.
package generator

import (
	"context"
	"fmt"

	"wiregen/internal/config"
	"wiregen/pkg/types"
)

// Generator produces text from a wireframe image and a prompt.
// Errors from the remote service are returned as-is (wrapped); there is no retry.
type Generator interface {
	Generate(ctx context.Context, req types.GenerateRequest) (string, error)
	// Name identifies the provider for logs and status.
	Name() string
}

// Options carries the generation parameters shared by all providers.
// Zero values leave the provider default.
type Options struct {
	Temperature       float32
	MaxOutputTokens   int32
	SystemInstruction string
}

// OptionsFromConfig extracts generation parameters from cfg.
func OptionsFromConfig(cfg config.Config) Options {
	return Options{
		Temperature:       cfg.Temperature,
		MaxOutputTokens:   cfg.MaxOutputTokens,
		SystemInstruction: cfg.SystemInstruction,
	}
}

// New constructs the Generator selected by cfg.Provider.
func New(ctx context.Context, cfg config.Config) (Generator, error) {
	opts := OptionsFromConfig(cfg)
	switch cfg.Provider {
	case config.ProviderVertex:
		return NewVertex(ctx, cfg.Project, cfg.Location, cfg.BaseURL, opts)
	case config.ProviderGemini:
		return NewGemini(ctx, cfg.APIKey, cfg.BaseURL, opts)
	case config.ProviderOpenAI:
		return NewOpenAI(cfg.OpenAIAPIKey, cfg.BaseURL, opts), nil
	case config.ProviderStub:
		return NewStub(), nil
	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
	}
}
