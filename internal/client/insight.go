package client

import (
	"context"
	"net/http"

	"github.com/raphaelgruber/visionboard/internal/metrics"
	"github.com/raphaelgruber/visionboard/internal/models"
)

// DefaultKeywordCount is used when Keywords is called with topN <= 0.
const DefaultKeywordCount = 5

// InsightClient talks to the AI backend. Each method is one independent
// request/response round trip.
type InsightClient struct {
	c *Client
}

// NewInsightClient creates an AI backend client for baseURL.
func NewInsightClient(baseURL string, opts ...Option) *InsightClient {
	return &InsightClient{c: New(baseURL, opts...)}
}

type textRequest struct {
	Text string `json:"text"`
}

type sentimentResponse struct {
	Sentiment models.Sentiment `json:"sentiment"`
}

// Sentiment classifies text.
func (c *InsightClient) Sentiment(ctx context.Context, text string) (models.Sentiment, error) {
	var resp sentimentResponse
	if err := c.c.do(ctx, metrics.OpSentiment, http.MethodPost, "/sentiment", textRequest{Text: text}, &resp); err != nil {
		return "", err
	}
	return resp.Sentiment, nil
}

type predictRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type predictResponse struct {
	Score float64 `json:"score"`
}

// SuccessScore predicts the probability (0-100) that a goal is achieved.
func (c *InsightClient) SuccessScore(ctx context.Context, title, description string) (float64, error) {
	var resp predictResponse
	body := predictRequest{Title: title, Description: description}
	if err := c.c.do(ctx, metrics.OpPredict, http.MethodPost, "/predict", body, &resp); err != nil {
		return 0, err
	}
	return resp.Score, nil
}

type keywordsRequest struct {
	Text string `json:"text"`
	TopN int    `json:"top_n"`
}

type keywordsResponse struct {
	Keywords []string `json:"keywords"`
}

// Keywords extracts up to topN keywords from text, most relevant first.
func (c *InsightClient) Keywords(ctx context.Context, text string, topN int) ([]string, error) {
	if topN <= 0 {
		topN = DefaultKeywordCount
	}
	var resp keywordsResponse
	body := keywordsRequest{Text: text, TopN: topN}
	if err := c.c.do(ctx, metrics.OpKeywords, http.MethodPost, "/keywords", body, &resp); err != nil {
		return nil, err
	}
	keywords := resp.Keywords
	if keywords == nil {
		keywords = []string{}
	}
	if len(keywords) > topN {
		keywords = keywords[:topN]
	}
	return keywords, nil
}

type planResponse struct {
	Plan string `json:"plan"`
}

// Plan generates a free-form plan for a goal, used to prefill descriptions.
func (c *InsightClient) Plan(ctx context.Context, text string) (string, error) {
	var resp planResponse
	if err := c.c.do(ctx, metrics.OpPlan, http.MethodPost, "/generate_goal_plan", textRequest{Text: text}, &resp); err != nil {
		return "", err
	}
	return resp.Plan, nil
}

type rephraseResponse struct {
	Rephrased string `json:"rephrased"`
}

// Rephrase rewrites a goal statement.
func (c *InsightClient) Rephrase(ctx context.Context, text string) (string, error) {
	var resp rephraseResponse
	if err := c.c.do(ctx, metrics.OpRephrase, http.MethodPost, "/rephrase", textRequest{Text: text}, &resp); err != nil {
		return "", err
	}
	return resp.Rephrased, nil
}
