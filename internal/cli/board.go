package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"charm.land/bubbles/v2/progress"
	tea "charm.land/bubbletea/v2"
	"github.com/raphaelgruber/visionboard/internal/enrich"
	"github.com/raphaelgruber/visionboard/internal/metrics"
	"github.com/raphaelgruber/visionboard/internal/models"
	"github.com/raphaelgruber/visionboard/internal/service"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const pollInterval = 200 * time.Millisecond

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Interactive goal board",
	Long: `Show the goal board in the terminal. Insights load in the background
while the goals are already visible.

Keys:
  ↑/↓ or k/j  select a goal
  r           refresh
  c           mark the selected goal completed
  x           delete the selected goal
  q           quit`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			return fmt.Errorf("board needs a terminal; use 'visionboard list' instead")
		}
		return runBoard(cmd.Context(), board, collector)
	},
}

// tickMsg triggers polling the board state.
type tickMsg time.Time

// actionMsg reports the end of a refresh or mutation.
type actionMsg struct {
	status string
	err    error
}

// boardModel is the bubbletea model for the goal board.
type boardModel struct {
	ctx      context.Context
	board    *service.Board
	metrics  *metrics.Collector
	view     service.View
	cursor   int
	progress progress.Model
	theme    Theme
	busy     bool
	status   string
	err      error
}

func newBoardModel(ctx context.Context, b *service.Board, m *metrics.Collector) boardModel {
	return boardModel{
		ctx:     ctx,
		board:   b,
		metrics: m,
		view:    b.Snapshot(),
		progress: progress.New(
			progress.WithDefaultBlend(),
			progress.WithWidth(40),
		),
		theme: defaultTheme,
		busy:  true,
	}
}

// Init loads the board and starts polling.
func (m boardModel) Init() tea.Cmd {
	return tea.Batch(
		m.run(m.board.Refresh, ""),
		tickCmd(),
		m.progress.Init(),
	)
}

// Update handles messages and returns the updated model.
func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		return m.handleKey(msg.String())

	case tickMsg:
		m.view = m.board.Snapshot()
		m.clampCursor()
		return m, tickCmd()

	case actionMsg:
		m.busy = false
		m.err = msg.err
		if msg.err == nil {
			m.status = msg.status
		}
		m.view = m.board.Snapshot()
		m.clampCursor()
		return m, nil

	case progress.FrameMsg:
		var cmd tea.Cmd
		m.progress, cmd = m.progress.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m boardModel) handleKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case "down", "j":
		if m.cursor < len(m.view.Goals)-1 {
			m.cursor++
		}
		return m, nil
	}

	// Mutations wait for the previous one.
	if m.busy {
		return m, nil
	}

	switch key {
	case "r":
		m.busy = true
		return m, m.run(m.board.Refresh, "Refreshed")
	case "c":
		goal, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.busy = true
		return m, m.run(func(ctx context.Context) error {
			return m.board.CompleteGoal(ctx, goal.ID)
		}, "Completed: "+goal.Title)
	case "x":
		goal, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.busy = true
		return m, m.run(func(ctx context.Context) error {
			return m.board.DeleteGoal(ctx, goal.ID)
		}, "Deleted: "+goal.Title)
	}
	return m, nil
}

func (m boardModel) selected() (models.EnrichedGoal, bool) {
	if m.cursor < 0 || m.cursor >= len(m.view.Goals) {
		return models.EnrichedGoal{}, false
	}
	return m.view.Goals[m.cursor], true
}

func (m *boardModel) clampCursor() {
	if m.cursor >= len(m.view.Goals) {
		m.cursor = len(m.view.Goals) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// run executes fn off the update loop and reports back with an actionMsg.
func (m boardModel) run(fn func(context.Context) error, status string) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		return actionMsg{status: status, err: fn(ctx)}
	}
}

// View renders the board.
func (m boardModel) View() tea.View {
	return tea.NewView(m.renderContent())
}

func (m boardModel) renderContent() string {
	var b strings.Builder

	b.WriteString(m.theme.titleStyle().Render("VisionBoard"))
	b.WriteString("\n\n")

	if len(m.view.Goals) == 0 {
		if m.busy {
			b.WriteString("Loading goals...\n")
		} else {
			b.WriteString("No goals yet. Add one with 'visionboard add <title>'.\n")
		}
	}

	for i, g := range m.view.Goals {
		b.WriteString(m.renderGoal(g, i == m.cursor))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	batch := m.view.Batch
	switch {
	case batch.InFlight():
		var pct float64
		if batch.Total > 0 {
			pct = float64(batch.Done) / float64(batch.Total)
		}
		fmt.Fprintf(&b, "%s %d/%d goals\n", m.progress.ViewAs(pct), batch.Done, batch.Total)
	case batch.State == enrich.StateFailed:
		b.WriteString(m.theme.errorStyle().Render(fmt.Sprintf("Insights unavailable: %v", batch.Err)))
		b.WriteString("\n")
	}

	if m.err != nil {
		b.WriteString(m.theme.errorStyle().Render(fmt.Sprintf("✗ %v", m.err)))
		b.WriteString("\n")
	} else if m.status != "" {
		b.WriteString(m.status)
		b.WriteString("\n")
	}

	b.WriteString(m.theme.hintStyle().Render(m.footer()))
	b.WriteString("\n")
	return b.String()
}

func (m boardModel) renderGoal(g models.EnrichedGoal, selected bool) string {
	cursor := "  "
	if selected {
		cursor = "> "
	}
	check := "[ ]"
	if g.Status == models.StatusCompleted {
		check = "[x]"
	}

	line := fmt.Sprintf("%s%s %s", cursor, check, g.Title)
	if g.Sentiment != nil {
		line += "  " + m.theme.sentimentStyle(*g.Sentiment).Render(string(g.Sentiment.Tone()))
	}
	if g.SuccessScore != nil {
		line += "  " + m.theme.scoreStyle(*g.SuccessScore).Render(formatScore(*g.SuccessScore))
	}
	if len(g.Keywords) > 0 {
		line += "  " + m.theme.hintStyle().Render(strings.Join(g.Keywords, ", "))
	}
	return line
}

func (m boardModel) footer() string {
	keys := "↑/↓ select • r refresh • c complete • x delete • q quit"
	if m.metrics == nil {
		return keys
	}

	var calls, failures int64
	for _, op := range m.metrics.Snapshot().Operations {
		if op.Name == metrics.OpEnrichBatch {
			continue
		}
		calls += op.Count
		failures += op.Failures
	}
	return fmt.Sprintf("%s • %d requests, %d failed", keys, calls, failures)
}

// tickCmd returns a command that sends a tick after the poll interval.
func tickCmd() tea.Cmd {
	return tea.Tick(pollInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// runBoard runs the interactive board until the user quits.
func runBoard(ctx context.Context, b *service.Board, m *metrics.Collector) error {
	p := tea.NewProgram(newBoardModel(ctx, b, m), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("board UI error: %w", err)
	}
	return nil
}
