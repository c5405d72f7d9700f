// Package app builds every long-lived component from configuration once at start-up.
package app

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"

	"summagraph/composer"
	"summagraph/config"
	"summagraph/generator"
	"summagraph/guideline"
	"summagraph/pipeline"
	"summagraph/render"
	"summagraph/workspace"
)

// LLM providers accepted in llm.provider.
const (
	ProviderMock     = "mock"
	ProviderOpenAI   = "openai"
	ProviderDoubao   = "doubao"
	ProviderDeepSeek = "deepseek"
)

// App holds the wired pipeline and the pieces the front ends need directly.
type App struct {
	Config       config.Config
	Logger       zerolog.Logger
	Guidelines   *guideline.FileStore
	Orchestrator *pipeline.Orchestrator
	Registry     *prometheus.Registry
	Backend      string
}

// New wires the pipeline. The image backend is built first, so a bad t2i_backend or missing
// image credentials fail before any LLM client exists.
func New(cfg config.Config, logger zerolog.Logger) (*App, error) {
	return build(cfg, logger, nil)
}

// build lets tests substitute the LLM client.
func build(cfg config.Config, logger zerolog.Logger, llm generator.LLMClient) (*App, error) {
	renderer, err := render.FromConfig(cfg, logger.With().Str("component", "render").Logger())
	if err != nil {
		return nil, fmt.Errorf("image backend: %w", err)
	}

	if llm == nil {
		llm, err = buildLLM(cfg.LLM)
		if err != nil {
			return nil, err
		}
	}
	analyzer, err := generator.NewAnalyzer(llm)
	if err != nil {
		return nil, err
	}

	guides := guideline.NewFileStore(cfg.ReferencesDirs, logger.With().Str("component", "guideline").Logger())
	if dir, ok := guides.Dir(); ok {
		logger.Info().Str("dir", dir).Msg("using references directory")
	} else {
		logger.Warn().Strs("candidates", cfg.ReferencesDirs).Msg("no references directory; guideline fallbacks apply")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	orch := pipeline.New(pipeline.Deps{
		Analyzer:   analyzer,
		Composer:   composer.New(guides),
		Workspaces: workspace.NewManager(cfg.OutputRoot, cfg.NamingPolicy),
		Renderer:   renderer,
		Metrics:    pipeline.NewMetrics(reg),
		Logger:     logger.With().Str("component", "pipeline").Logger(),
	})

	return &App{
		Config:       cfg,
		Logger:       logger,
		Guidelines:   guides,
		Orchestrator: orch,
		Registry:     reg,
		Backend:      renderer.Backend(),
	}, nil
}

func buildLLM(cfg config.LLMConfig) (generator.LLMClient, error) {
	settings := &generator.LLMSettings{
		Provider:    cfg.Provider,
		Model:       cfg.Model,
		APIKey:      cfg.APIKey,
		BaseURL:     cfg.BaseURL,
		Temperature: cfg.Temperature,
		Timeout:     cfg.Timeout,
	}
	switch cfg.Provider {
	case ProviderMock:
		return generator.MockLLM{}, nil
	case ProviderOpenAI, ProviderDoubao:
		return generator.NewOpenAILLMFromConfig(settings)
	case ProviderDeepSeek:
		// DeepSeek 提供 OpenAI 兼容接口，需填写 base_url
		if cfg.BaseURL == "" {
			return nil, fmt.Errorf("%w: llm provider deepseek requires base_url", config.ErrInvalidConfig)
		}
		return generator.NewOpenAILLMFromConfig(settings)
	default:
		return nil, fmt.Errorf("%w: llm provider %q not supported", config.ErrInvalidConfig, cfg.Provider)
	}
}
