package ai

import (
	"fmt"
	"net/http"

	"github.com/j0lvera/relaybot/internal/config"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

// Params for creating a Generator
type Params struct {
	fx.In

	Config *config.Config
	Logger zerolog.Logger
}

// Result of creating a Generator
type Result struct {
	fx.Out

	Generator Generator
}

// New creates the Generator selected by configuration
func New(p Params) (Result, error) {
	var gen Generator

	switch p.Config.Provider {
	case config.ProviderGemini:
		gen = NewGeminiService(&http.Client{}, p.Config.BaseURL, p.Config.APIVersion, p.Config.Model, p.Config.APIKey)
	case config.ProviderOpenAI:
		gen = NewOpenAIService(p.Config.APIKey, p.Config.OpenAIBaseURL, p.Config.Model)
	default:
		return Result{}, fmt.Errorf("unknown provider %q", p.Config.Provider)
	}

	p.Logger.Info().
		Str("provider", p.Config.Provider).
		Str("model", p.Config.Model).
		Msg("generator configured")

	return Result{
		Generator: gen,
	}, nil
}

// Module provides the Generator
func Module() fx.Option {
	return fx.Module(
		"ai",
		fx.Provide(
			New,
		),
	)
}
