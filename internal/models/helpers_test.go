package models

import "testing"

func TestAnnotationText(t *testing.T) {
	tests := []struct {
		name string
		goal Goal
		want string
	}{
		{"description preferred", Goal{Title: "Run", Description: "Finish a marathon"}, "Finish a marathon"},
		{"empty description falls back", Goal{Title: "Run"}, "Run"},
		{"blank description falls back", Goal{Title: "Run", Description: "  \n"}, "Run"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.goal.AnnotationText(); got != tt.want {
				t.Errorf("AnnotationText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestScoreTier(t *testing.T) {
	tests := []struct {
		score float64
		want  Tier
	}{
		{100, TierHigh},
		{75, TierHigh},
		{74.9, TierMedium},
		{40, TierMedium},
		{39, TierLow},
		{0, TierLow},
	}

	for _, tt := range tests {
		if got := ScoreTier(tt.score); got != tt.want {
			t.Errorf("ScoreTier(%v) = %q, want %q", tt.score, got, tt.want)
		}
	}
}

func TestSentimentTone(t *testing.T) {
	tests := []struct {
		in   Sentiment
		want Sentiment
	}{
		{"POSITIVE", SentimentPositive},
		{"negative", SentimentNegative},
		{"NEUTRAL", SentimentNeutral},
		{"MIXED", SentimentNeutral},
		{"", SentimentNeutral},
	}

	for _, tt := range tests {
		if got := tt.in.Tone(); got != tt.want {
			t.Errorf("Sentiment(%q).Tone() = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPlainAndEnriched(t *testing.T) {
	goals := []Goal{{ID: "1", Title: "a"}, {ID: "2", Title: "b"}}
	plain := Plain(goals)
	if len(plain) != 2 || plain[0].ID != "1" || plain[1].ID != "2" {
		t.Fatalf("Plain() = %+v", plain)
	}
	if plain[0].Enriched() {
		t.Error("plain goal should not report Enriched")
	}

	s := SentimentPositive
	score := 80.0
	g := EnrichedGoal{Goal: goals[0], Sentiment: &s, SuccessScore: &score, Keywords: []string{}}
	if !g.Enriched() {
		t.Error("fully annotated goal should report Enriched")
	}
}
