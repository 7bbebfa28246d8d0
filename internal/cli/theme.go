package cli

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/raphaelgruber/visionboard/internal/models"
)

// Theme holds the color scheme for goal output.
type Theme struct {
	Title    lipgloss.Color
	Positive lipgloss.Color
	Negative lipgloss.Color
	Neutral  lipgloss.Color
	High     lipgloss.Color
	Medium   lipgloss.Color
	Low      lipgloss.Color
	Error    lipgloss.Color
	Hint     lipgloss.Color
}

// defaultTheme provides default colors.
var defaultTheme = Theme{
	Title:    lipgloss.Color("#5FAFD7"), // light blue
	Positive: lipgloss.Color("#00D787"), // green
	Negative: lipgloss.Color("#FF005F"), // red
	Neutral:  lipgloss.Color("#A8A8A8"), // gray
	High:     lipgloss.Color("#00D787"),
	Medium:   lipgloss.Color("#FFD75F"), // yellow
	Low:      lipgloss.Color("#FF875F"), // orange
	Error:    lipgloss.Color("#FF005F"),
	Hint:     lipgloss.Color("#6C6C6C"), // dim gray
}

func (t Theme) titleStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Title).Bold(true)
}

func (t Theme) errorStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Error).Bold(true)
}

func (t Theme) hintStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Hint).Italic(true)
}

func (t Theme) sentimentStyle(s models.Sentiment) lipgloss.Style {
	switch s.Tone() {
	case models.SentimentPositive:
		return lipgloss.NewStyle().Foreground(t.Positive)
	case models.SentimentNegative:
		return lipgloss.NewStyle().Foreground(t.Negative)
	default:
		return lipgloss.NewStyle().Foreground(t.Neutral)
	}
}

func (t Theme) scoreStyle(score float64) lipgloss.Style {
	switch models.ScoreTier(score) {
	case models.TierHigh:
		return lipgloss.NewStyle().Foreground(t.High).Bold(true)
	case models.TierMedium:
		return lipgloss.NewStyle().Foreground(t.Medium)
	default:
		return lipgloss.NewStyle().Foreground(t.Low)
	}
}
