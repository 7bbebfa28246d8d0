package models

import "strings"

// AnnotationText returns the text used for sentiment and keyword requests:
// the description when it has content, otherwise the title.
func (g Goal) AnnotationText() string {
	if strings.TrimSpace(g.Description) != "" {
		return g.Description
	}
	return g.Title
}

// Tier buckets a success score for display.
type Tier string

const (
	TierHigh   Tier = "high"
	TierMedium Tier = "medium"
	TierLow    Tier = "low"
)

// ScoreTier returns TierHigh for scores >= 75, TierMedium for >= 40, TierLow otherwise.
func ScoreTier(score float64) Tier {
	switch {
	case score >= 75:
		return TierHigh
	case score >= 40:
		return TierMedium
	default:
		return TierLow
	}
}

// Tone normalizes a sentiment label for display. Unknown labels are neutral.
func (s Sentiment) Tone() Sentiment {
	switch Sentiment(strings.ToUpper(string(s))) {
	case SentimentPositive:
		return SentimentPositive
	case SentimentNegative:
		return SentimentNegative
	default:
		return SentimentNeutral
	}
}
