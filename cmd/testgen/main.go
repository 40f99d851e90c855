// Package main provides the testgen command-line interface.
// analyze hands a repository's working set to generate, which runs the
// interactive workbench or a headless generation pass.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/Cyclone1070/testgen/internal/config"
	"github.com/Cyclone1070/testgen/internal/provider/gemini"
	provider "github.com/Cyclone1070/testgen/internal/provider/models"
	"github.com/Cyclone1070/testgen/internal/provider/openai"
	"github.com/Cyclone1070/testgen/internal/session"
	"github.com/Cyclone1070/testgen/internal/ui"
)

// ProviderFactory builds a model provider. It returns nil, nil when the
// provider is not configured.
type ProviderFactory func(ctx context.Context, cfg *config.Config, getenv func(string) string) (provider.Provider, error)

// Dependencies holds the components required to run the application.
type Dependencies struct {
	Stdout            io.Writer
	Stderr            io.Writer
	Getenv            func(string) string
	LoadConfig        func(overridePath string) (*config.Config, error)
	ConfigDir         func() (string, error)
	ProviderFactories []ProviderFactory
	RunUI             func(ctx context.Context, st *session.State, deps ui.Dependencies) error
}

func createRealUI(ctx context.Context, st *session.State, deps ui.Dependencies) error {
	return ui.NewUI(ctx, st, deps).Start()
}

func createGeminiProvider(ctx context.Context, cfg *config.Config, getenv func(string) string) (provider.Provider, error) {
	apiKey := getenv("GEMINI_API_KEY")
	if apiKey == "" || cfg.Providers.GeminiModel == "" {
		return nil, nil
	}
	client, err := gemini.NewFromAPIKey(ctx, apiKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return gemini.New(client, cfg.Providers.GeminiModel), nil
}

func createOpenAIProvider(_ context.Context, cfg *config.Config, getenv func(string) string) (provider.Provider, error) {
	apiKey := getenv("OPENAI_API_KEY")
	if apiKey == "" || cfg.Providers.OpenAIModel == "" {
		return nil, nil
	}
	return openai.NewFromAPIKey(apiKey, cfg.Providers.OpenAIBaseURL, cfg.Providers.OpenAIModel), nil
}

func realDependencies() Dependencies {
	return Dependencies{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Getenv: os.Getenv,
		LoadConfig: func(overridePath string) (*config.Config, error) {
			return config.NewLoader().LoadWithOverride(overridePath)
		},
		ConfigDir:         config.NewLoader().Dir,
		ProviderFactories: []ProviderFactory{createGeminiProvider, createOpenAIProvider},
		RunUI:             createRealUI,
	}
}

func main() {
	if err := newRootCmd(realDependencies()).Execute(); err != nil {
		os.Exit(1)
	}
}
