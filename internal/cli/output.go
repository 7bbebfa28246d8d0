package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/raphaelgruber/visionboard/internal/metrics"
	"github.com/raphaelgruber/visionboard/internal/models"
	"gopkg.in/yaml.v3"
)

// Output formats for goal listings.
const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

// placeholder is shown for annotations that were not computed.
const placeholder = "-"

// goalPrinter renders goals in one output format.
type goalPrinter struct {
	format  string
	color   bool
	verbose bool
	theme   Theme
}

func (p goalPrinter) print(w io.Writer, goals []models.EnrichedGoal) error {
	switch p.format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(goals); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(goals); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case formatTable, "":
		p.printTable(w, goals)
		return nil
	default:
		return fmt.Errorf("unknown output format %q (want table, json or yaml)", p.format)
	}
}

func (p goalPrinter) printTable(w io.Writer, goals []models.EnrichedGoal) {
	if len(goals) == 0 {
		fmt.Fprintln(w, "No goals found.")
		return
	}

	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	header := table.Row{"ID", "Title", "Status", "Sentiment", "Success", "Keywords"}
	if p.verbose {
		header = append(header, "Description")
	}
	tw.AppendHeader(header)

	for _, g := range goals {
		row := table.Row{g.ID, g.Title, g.Status, p.sentiment(g), p.score(g), keywordText(g)}
		if p.verbose {
			row = append(row, g.Description)
		}
		tw.AppendRow(row)
	}
	tw.Render()
}

func (p goalPrinter) sentiment(g models.EnrichedGoal) string {
	if g.Sentiment == nil {
		return placeholder
	}
	s := string(*g.Sentiment)
	if p.color {
		return p.theme.sentimentStyle(*g.Sentiment).Render(s)
	}
	return s
}

func (p goalPrinter) score(g models.EnrichedGoal) string {
	if g.SuccessScore == nil {
		return placeholder
	}
	s := formatScore(*g.SuccessScore)
	if p.color {
		return p.theme.scoreStyle(*g.SuccessScore).Render(s)
	}
	return s
}

// formatScore renders a score as a percentage, e.g. "72%" or "64.5%".
func formatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', -1, 64) + "%"
}

func keywordText(g models.EnrichedGoal) string {
	if g.Keywords == nil {
		return placeholder
	}
	return strings.Join(g.Keywords, ", ")
}

// printStats renders per-operation timings.
func printStats(w io.Writer, snap metrics.Snapshot) {
	fmt.Fprintf(w, "Statistics (uptime %.1fs)\n", snap.UptimeSeconds)
	if len(snap.Operations) == 0 {
		fmt.Fprintln(w, "No requests recorded.")
		return
	}

	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.AppendHeader(table.Row{"Operation", "Calls", "Failures", "Avg ms", "Min ms", "Max ms"})
	for _, op := range snap.Operations {
		tw.AppendRow(table.Row{op.Name, op.Count, op.Failures, fmt.Sprintf("%.1f", op.AvgTimeMs), op.MinTimeMs, op.MaxTimeMs})
	}
	tw.Render()
}
