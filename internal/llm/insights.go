package llm

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/raphaelgruber/visionboard/internal/metrics"
	"github.com/raphaelgruber/visionboard/internal/models"
)

const sentimentPrompt = `You classify the sentiment of personal goals.
Answer with exactly one word: POSITIVE, NEGATIVE or NEUTRAL.`

// Sentiment classifies text as POSITIVE, NEGATIVE or NEUTRAL.
func (m *Model) Sentiment(ctx context.Context, text string) (models.Sentiment, error) {
	out, err := m.generate(ctx, metrics.OpSentiment, sentimentPrompt, text)
	if err != nil {
		return "", err
	}
	return parseSentiment(out)
}

const predictPrompt = `You estimate how likely a person is to achieve a goal.
Consider how specific, measurable and realistic it is.
Answer with a single integer from 0 to 100 and nothing else.`

// SuccessScore estimates the probability (0-100) that a goal is achieved.
func (m *Model) SuccessScore(ctx context.Context, title, description string) (float64, error) {
	user := fmt.Sprintf("Goal: %s\nDescription: %s", title, description)
	out, err := m.generate(ctx, metrics.OpPredict, predictPrompt, user)
	if err != nil {
		return 0, err
	}
	return parseScore(out)
}

const keywordsPrompt = `You extract keyword tags from personal goals.
Answer with at most %d lowercase keywords, most relevant first, separated by commas.`

// Keywords extracts up to topN keywords from text.
func (m *Model) Keywords(ctx context.Context, text string, topN int) ([]string, error) {
	if topN <= 0 {
		topN = 5
	}
	out, err := m.generate(ctx, metrics.OpKeywords, fmt.Sprintf(keywordsPrompt, topN), text)
	if err != nil {
		return nil, err
	}
	return parseKeywords(out, topN), nil
}

const planPrompt = `You are a supportive coach. Write a short, concrete plan (3-5 steps)
for achieving the user's goal. Plain text, no headings.`

// Plan generates a short plan used to prefill a goal description.
func (m *Model) Plan(ctx context.Context, text string) (string, error) {
	out, err := m.generate(ctx, metrics.OpPlan, planPrompt, text)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

const rephrasePrompt = `Rewrite the user's goal as one clear, positive, first-person sentence.
Answer with the sentence only.`

// Rephrase rewrites a goal statement.
func (m *Model) Rephrase(ctx context.Context, text string) (string, error) {
	out, err := m.generate(ctx, metrics.OpRephrase, rephrasePrompt, text)
	if err != nil {
		return "", err
	}
	return strings.Trim(strings.TrimSpace(out), `"`), nil
}

var labelPattern = regexp.MustCompile(`\b(POSITIVE|NEGATIVE|NEUTRAL)\b`)

func parseSentiment(out string) (models.Sentiment, error) {
	match := labelPattern.FindString(strings.ToUpper(out))
	if match == "" {
		return "", fmt.Errorf("unrecognized sentiment %q", truncate(out, 40))
	}
	return models.Sentiment(match), nil
}

var numberPattern = regexp.MustCompile(`-?\d+(\.\d+)?`)

func parseScore(out string) (float64, error) {
	match := numberPattern.FindString(out)
	if match == "" {
		return 0, fmt.Errorf("no score in %q", truncate(out, 40))
	}
	score, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0, fmt.Errorf("parse score: %w", err)
	}
	return min(max(score, 0), 100), nil
}

func parseKeywords(out string, topN int) []string {
	fields := strings.FieldsFunc(out, func(r rune) bool {
		return r == ',' || r == '\n' || r == ';'
	})

	seen := make(map[string]bool)
	keywords := make([]string, 0, topN)
	for _, f := range fields {
		kw := strings.ToLower(strings.Trim(strings.TrimSpace(f), `-*."'`))
		kw = strings.TrimSpace(kw)
		if kw == "" || seen[kw] {
			continue
		}
		seen[kw] = true
		keywords = append(keywords, kw)
		if len(keywords) == topN {
			break
		}
	}
	return keywords
}

// truncate shortens a string to maxLen, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen < 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
