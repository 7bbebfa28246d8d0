package client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/raphaelgruber/visionboard/internal/client"
	"github.com/raphaelgruber/visionboard/internal/models"
	"github.com/raphaelgruber/visionboard/internal/testbackend"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsightSentiment(t *testing.T) {
	ai := testbackend.NewAI(t)
	ai.SetSentiment("Run a marathon", "POSITIVE")

	label, err := client.NewInsightClient(ai.URL()).Sentiment(context.Background(), "Run a marathon")
	require.NoError(t, err)
	assert.Equal(t, models.SentimentPositive, label)

	calls := ai.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "/sentiment", calls[0].Path)
	assert.Equal(t, "Run a marathon", calls[0].Text())
}

func TestInsightSuccessScore(t *testing.T) {
	ai := testbackend.NewAI(t)
	ai.SetScore("Run", 80)

	score, err := client.NewInsightClient(ai.URL()).SuccessScore(context.Background(), "Run", "")
	require.NoError(t, err)
	assert.Equal(t, 80.0, score)

	calls := ai.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "/predict", calls[0].Path)
	assert.Equal(t, map[string]any{"title": "Run", "description": ""}, calls[0].Body)
}

func TestInsightKeywords(t *testing.T) {
	ai := testbackend.NewAI(t)
	ai.SetKeywords("Run", "run", "marathon", "fitness")
	insights := client.NewInsightClient(ai.URL())

	kws, err := insights.Keywords(context.Background(), "Run", 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"run", "marathon", "fitness"}, kws)

	calls := ai.Calls()
	require.Len(t, calls, 1)
	assert.EqualValues(t, 3, calls[0].Body["top_n"])
}

func TestInsightKeywordsDefaultsAndTruncates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			TopN int `json:"top_n"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, client.DefaultKeywordCount, body.TopN)
		_, _ = w.Write([]byte(`{"keywords":["a","b","c","d","e","f","g"]}`))
	}))
	defer srv.Close()

	kws, err := client.NewInsightClient(srv.URL).Keywords(context.Background(), "text", 0)
	require.NoError(t, err)
	assert.Len(t, kws, client.DefaultKeywordCount)
}

func TestInsightPlanAndRephrase(t *testing.T) {
	ai := testbackend.NewAI(t)
	insights := client.NewInsightClient(ai.URL())
	ctx := context.Background()

	plan, err := insights.Plan(ctx, "Learn Go")
	require.NoError(t, err)
	assert.Equal(t, "Plan: Learn Go", plan)

	rephrased, err := insights.Rephrase(ctx, "Learn Go")
	require.NoError(t, err)
	assert.Equal(t, "I will learn go", rephrased)

	calls := ai.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, "/generate_goal_plan", calls[0].Path)
	assert.Equal(t, "/rephrase", calls[1].Path)
}

func TestInsightFailureIsTransportError(t *testing.T) {
	ai := testbackend.NewAI(t)
	ai.FailWhen(func(testbackend.Call) bool { return true })

	_, err := client.NewInsightClient(ai.URL()).Sentiment(context.Background(), "x")
	var te *client.TransportError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, http.StatusInternalServerError, te.StatusCode)
	assert.Equal(t, "ai_sentiment: API error: 500 - Internal Server Error", err.Error())
}
