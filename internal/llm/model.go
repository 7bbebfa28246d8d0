// Package llm implements goal insights on top of a language model, as an
// alternative to the HTTP AI backend.
package llm

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/raphaelgruber/visionboard/internal/config"
	"github.com/raphaelgruber/visionboard/internal/metrics"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/anthropic"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
)

// Model wraps a langchaingo model and answers insight requests with prompts.
type Model struct {
	llm       llms.Model
	modelName string
	metrics   *metrics.Collector
	logger    *slog.Logger
}

// Option configures a Model.
type Option func(*Model)

// WithMetrics records per-operation timings into m.
func WithMetrics(m *metrics.Collector) Option {
	return func(model *Model) { model.metrics = m }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(model *Model) { model.logger = l }
}

// NewModel creates a model for the configured insight provider.
func NewModel(cfg config.Config, opts ...Option) (*Model, error) {
	var model llms.Model
	var err error

	switch cfg.InsightProvider {
	case config.ProviderOllama:
		model, err = ollama.New(
			ollama.WithModel(cfg.LLMModel),
			ollama.WithServerURL(cfg.OllamaHost),
		)
		if err != nil {
			return nil, fmt.Errorf("create ollama model: %w", err)
		}

	case config.ProviderOpenAI:
		if cfg.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("OpenAI API key required")
		}
		model, err = openai.New(
			openai.WithToken(cfg.OpenAIAPIKey),
			openai.WithModel(cfg.LLMModel),
		)
		if err != nil {
			return nil, fmt.Errorf("create openai model: %w", err)
		}

	case config.ProviderAnthropic:
		if cfg.AnthropicAPIKey == "" {
			return nil, fmt.Errorf("Anthropic API key required")
		}
		model, err = anthropic.New(
			anthropic.WithToken(cfg.AnthropicAPIKey),
			anthropic.WithModel(cfg.LLMModel),
		)
		if err != nil {
			return nil, fmt.Errorf("create anthropic model: %w", err)
		}

	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.InsightProvider)
	}

	return New(model, cfg.LLMModel, opts...), nil
}

// New wraps an existing langchaingo model.
func New(model llms.Model, name string, opts ...Option) *Model {
	m := &Model{llm: model, modelName: name}
	for _, opt := range opts {
		opt(m)
	}
	if m.logger == nil {
		m.logger = slog.Default()
	}
	return m
}

// Model returns the LLM model name.
func (m *Model) Model() string {
	return m.modelName
}

// generate sends a system and user prompt and returns the first choice.
func (m *Model) generate(ctx context.Context, op, systemPrompt, userPrompt string) (string, error) {
	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, systemPrompt),
		llms.TextParts(llms.ChatMessageTypeHuman, userPrompt),
	}

	start := time.Now()
	response, err := m.llm.GenerateContent(ctx, messages, llms.WithTemperature(0))
	m.metrics.RecordTiming(op, time.Since(start), err != nil)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, wrapFatalError(err))
	}

	if len(response.Choices) == 0 {
		return "", fmt.Errorf("%s: no response choices", op)
	}

	m.logger.Debug("llm response", "op", op, "model", m.modelName, "duration_ms", time.Since(start).Milliseconds())
	return response.Choices[0].Content, nil
}
