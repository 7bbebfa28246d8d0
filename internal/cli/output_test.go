package cli

import (
	"bytes"
	"testing"
	"time"

	"github.com/raphaelgruber/visionboard/internal/metrics"
	"github.com/raphaelgruber/visionboard/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleGoals() []models.EnrichedGoal {
	positive := models.SentimentPositive
	score := 72.5
	return []models.EnrichedGoal{
		{
			Goal:         models.Goal{ID: "1", Title: "Run a marathon", Description: "Autumn race", Status: models.StatusPending},
			Sentiment:    &positive,
			SuccessScore: &score,
			Keywords:     []string{"run", "marathon"},
		},
		{Goal: models.Goal{ID: "2", Title: "Read more", Status: models.StatusCompleted}},
	}
}

func TestPrintTable(t *testing.T) {
	var buf bytes.Buffer
	p := goalPrinter{format: formatTable, theme: defaultTheme}

	require.NoError(t, p.print(&buf, sampleGoals()))

	out := buf.String()
	assert.Contains(t, out, "SENTIMENT")
	assert.Contains(t, out, "Run a marathon")
	assert.Contains(t, out, "POSITIVE")
	assert.Contains(t, out, "72.5%")
	assert.Contains(t, out, "run, marathon")
	assert.NotContains(t, out, "Autumn race")
}

func TestPrintTableVerbose(t *testing.T) {
	var buf bytes.Buffer
	p := goalPrinter{format: formatTable, verbose: true, theme: defaultTheme}

	require.NoError(t, p.print(&buf, sampleGoals()))
	assert.Contains(t, buf.String(), "Autumn race")
}

func TestPrintTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, goalPrinter{format: formatTable}.print(&buf, nil))
	assert.Equal(t, "No goals found.\n", buf.String())
}

func TestPrintYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, goalPrinter{format: formatYAML}.print(&buf, sampleGoals()))

	out := buf.String()
	assert.Contains(t, out, "title: Run a marathon")
	assert.Contains(t, out, "sentiment: POSITIVE")
	assert.Contains(t, out, "successScore: 72.5")
	assert.Contains(t, out, "status: Completed")
}

func TestPrintJSONMissingAnnotations(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, goalPrinter{format: formatJSON}.print(&buf, sampleGoals()[1:]))

	out := buf.String()
	assert.Contains(t, out, `"title": "Read more"`)
	assert.NotContains(t, out, "sentiment")
	assert.NotContains(t, out, "successScore")
	assert.Contains(t, out, `"keywords": null`)
}

func TestFormatScore(t *testing.T) {
	assert.Equal(t, "80%", formatScore(80))
	assert.Equal(t, "64.5%", formatScore(64.5))
	assert.Equal(t, "0%", formatScore(0))
}

func TestNormalizeStatus(t *testing.T) {
	tests := []struct {
		in   string
		want models.Status
	}{
		{"completed", models.StatusCompleted},
		{" PENDING ", models.StatusPending},
		{"In Progress", models.Status("In Progress")},
		{"", models.Status("")},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeStatus(tt.in))
		})
	}
}

func TestPrintStats(t *testing.T) {
	c := metrics.NewCollector()
	c.RecordTiming(metrics.OpGoalsList, 12*time.Millisecond, false)
	c.RecordTiming(metrics.OpSentiment, 30*time.Millisecond, true)

	var buf bytes.Buffer
	printStats(&buf, c.Snapshot())

	out := buf.String()
	assert.Contains(t, out, "goals_list")
	assert.Contains(t, out, "ai_sentiment")
}

func TestPrintStatsEmpty(t *testing.T) {
	var buf bytes.Buffer
	printStats(&buf, metrics.NewCollector().Snapshot())
	assert.Contains(t, buf.String(), "No requests recorded.")
}
