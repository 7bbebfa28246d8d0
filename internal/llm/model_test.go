package llm

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/raphaelgruber/visionboard/internal/metrics"
	"github.com/raphaelgruber/visionboard/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
)

// fakeLLM answers every request with a fixed reply and records prompts.
type fakeLLM struct {
	mu      sync.Mutex
	reply   string
	err     error
	prompts []string
	system  []string
}

func (f *fakeLLM) GenerateContent(_ context.Context, messages []llms.MessageContent, _ ...llms.CallOption) (*llms.ContentResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, msg := range messages {
		var text strings.Builder
		for _, part := range msg.Parts {
			if tc, ok := part.(llms.TextContent); ok {
				text.WriteString(tc.Text)
			}
		}
		if msg.Role == llms.ChatMessageTypeSystem {
			f.system = append(f.system, text.String())
		} else {
			f.prompts = append(f.prompts, text.String())
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return &llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: f.reply}}}, nil
}

func (f *fakeLLM) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, f, prompt, options...)
}

func TestSentiment(t *testing.T) {
	tests := []struct {
		reply string
		want  models.Sentiment
	}{
		{"POSITIVE", models.SentimentPositive},
		{"negative.", models.SentimentNegative},
		{"The sentiment is Neutral", models.SentimentNeutral},
	}

	for _, tt := range tests {
		t.Run(tt.reply, func(t *testing.T) {
			m := New(&fakeLLM{reply: tt.reply}, "fake")
			got, err := m.Sentiment(context.Background(), "Run a marathon")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("unrecognized label", func(t *testing.T) {
		m := New(&fakeLLM{reply: "excited!"}, "fake")
		_, err := m.Sentiment(context.Background(), "Run a marathon")
		assert.Error(t, err)
	})
}

func TestSuccessScore(t *testing.T) {
	tests := []struct {
		reply string
		want  float64
	}{
		{"72", 72},
		{"Score: 64.5 out of 100", 64.5},
		{"150", 100},
		{"-3", 0},
	}

	for _, tt := range tests {
		t.Run(tt.reply, func(t *testing.T) {
			fake := &fakeLLM{reply: tt.reply}
			m := New(fake, "fake")
			got, err := m.SuccessScore(context.Background(), "Learn Go", "Finish the tour")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			require.Len(t, fake.prompts, 1)
			assert.Contains(t, fake.prompts[0], "Learn Go")
			assert.Contains(t, fake.prompts[0], "Finish the tour")
		})
	}

	t.Run("no number", func(t *testing.T) {
		m := New(&fakeLLM{reply: "likely"}, "fake")
		_, err := m.SuccessScore(context.Background(), "Learn Go", "")
		assert.Error(t, err)
	})
}

func TestKeywords(t *testing.T) {
	fake := &fakeLLM{reply: "Fitness, running\n- Marathon, running, health, endurance"}
	m := New(fake, "fake")

	got, err := m.Keywords(context.Background(), "Run a marathon", 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"fitness", "running", "marathon"}, got)
	require.Len(t, fake.system, 1)
	assert.Contains(t, fake.system[0], "at most 3")
}

func TestPlanAndRephrase(t *testing.T) {
	m := New(&fakeLLM{reply: "  \"I will run a marathon.\"\n"}, "fake")

	plan, err := m.Plan(context.Background(), "marathon")
	require.NoError(t, err)
	assert.Equal(t, `"I will run a marathon."`, plan)

	rephrased, err := m.Rephrase(context.Background(), "marathon")
	require.NoError(t, err)
	assert.Equal(t, "I will run a marathon.", rephrased)
}

func TestGenerateError(t *testing.T) {
	collector := metrics.NewCollector()
	m := New(&fakeLLM{err: errors.New("HTTP 401: bad key")}, "fake", WithMetrics(collector))

	_, err := m.Sentiment(context.Background(), "x")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFatalAPI)

	op, ok := collector.Snapshot().Op(metrics.OpSentiment)
	require.True(t, ok)
	assert.Equal(t, int64(1), op.Failures)
}

func TestEmptyChoices(t *testing.T) {
	m := New(emptyLLM{}, "fake")
	_, err := m.Rephrase(context.Background(), "x")
	assert.ErrorContains(t, err, "no response choices")
}

type emptyLLM struct{}

func (emptyLLM) GenerateContent(context.Context, []llms.MessageContent, ...llms.CallOption) (*llms.ContentResponse, error) {
	return &llms.ContentResponse{}, nil
}

func (emptyLLM) Call(context.Context, string, ...llms.CallOption) (string, error) {
	return "", nil
}
