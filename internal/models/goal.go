// Package models defines data structures shared by the VisionBoard client.
package models

// Status is the lifecycle state of a goal as reported by the goals backend.
// Values other than the constants below are preserved verbatim.
type Status string

const (
	StatusPending   Status = "Pending"
	StatusCompleted Status = "Completed"
)

// Sentiment is the label returned by the sentiment model.
type Sentiment string

const (
	SentimentPositive Sentiment = "POSITIVE"
	SentimentNegative Sentiment = "NEGATIVE"
	SentimentNeutral  Sentiment = "NEUTRAL"
)

// Goal is a user-created target as stored by the goals backend.
type Goal struct {
	ID          string `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Status      Status `json:"status" yaml:"status"`
}

// EnrichedGoal is a goal plus the annotations produced by one enrichment pass.
// Annotation fields are nil when they were not computed or the pass failed.
// In JSON, missing keywords are null and an empty keyword list is [].
// YAML cannot tell the two apart and omits both.
type EnrichedGoal struct {
	Goal `yaml:",inline"`

	Sentiment    *Sentiment `json:"sentiment,omitempty" yaml:"sentiment,omitempty"`
	SuccessScore *float64   `json:"successScore,omitempty" yaml:"successScore,omitempty"`
	Keywords     []string   `json:"keywords" yaml:"keywords,omitempty"`
}

// Enriched reports whether all three annotations are present.
func (g EnrichedGoal) Enriched() bool {
	return g.Sentiment != nil && g.SuccessScore != nil && g.Keywords != nil
}

// Plain wraps goals as un-annotated enriched goals, preserving order.
func Plain(goals []Goal) []EnrichedGoal {
	out := make([]EnrichedGoal, len(goals))
	for i, g := range goals {
		out[i] = EnrichedGoal{Goal: g}
	}
	return out
}
