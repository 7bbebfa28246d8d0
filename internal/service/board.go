// Package service provides the goal board: the displayed goal list and the
// operations that change it.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/raphaelgruber/visionboard/internal/enrich"
	"github.com/raphaelgruber/visionboard/internal/models"
)

// GoalStore persists goals.
type GoalStore interface {
	List(ctx context.Context) ([]models.Goal, error)
	Create(ctx context.Context, title, description string) error
	Update(ctx context.Context, id string, status models.Status) error
	Delete(ctx context.Context, id string) error
}

// Assistant writes goal text.
type Assistant interface {
	Plan(ctx context.Context, text string) (string, error)
	Rephrase(ctx context.Context, text string) (string, error)
}

// View is what a renderer needs to draw the board.
type View struct {
	Goals []models.EnrichedGoal
	Batch enrich.BatchSnapshot
}

// Board holds the displayed goal sequence.
type Board struct {
	store     GoalStore
	enricher  *enrich.Orchestrator
	assistant Assistant
	logger    *slog.Logger

	mu        sync.RWMutex
	goals     []models.EnrichedGoal
	installed uint64 // batch id of the displayed sequence
	epoch     uint64 // latest Refresh or Enrich call
}

// NewBoard creates an empty board. A nil logger uses slog.Default.
func NewBoard(store GoalStore, enricher *enrich.Orchestrator, assistant Assistant, logger *slog.Logger) *Board {
	if logger == nil {
		logger = slog.Default()
	}
	return &Board{
		store:     store,
		enricher:  enricher,
		assistant: assistant,
		logger:    logger,
		goals:     []models.EnrichedGoal{},
	}
}

// Refresh fetches the goal list, shows it without annotations and then
// enriches it. List errors are returned; enrichment errors are logged and
// leave the plain list on display.
//
// A Refresh overtaken by a later Refresh or Enrich while listing is dropped
// without starting a batch.
func (b *Board) Refresh(ctx context.Context) error {
	epoch := b.nextEpoch()

	goals, err := b.store.List(ctx)
	if err != nil {
		return fmt.Errorf("list goals: %w", err)
	}
	if !b.isLatest(epoch) {
		b.logger.Debug("discarding stale goal list", "goals", len(goals))
		return nil
	}

	batch := b.enricher.Begin(len(goals))
	b.install(epoch, batch.ID, models.Plain(goals))

	if err := b.run(ctx, epoch, batch, goals); err != nil {
		b.logger.Error("enrichment failed", "batch", batch.ID, "goals", len(goals), "error", err)
	}
	return nil
}

// Enrich runs one enrichment batch over goals and displays the result. On
// failure the displayed sequence is unchanged and the error is returned.
func (b *Board) Enrich(ctx context.Context, goals []models.Goal) error {
	epoch := b.nextEpoch()
	return b.run(ctx, epoch, b.enricher.Begin(len(goals)), goals)
}

func (b *Board) run(ctx context.Context, epoch uint64, batch *enrich.Batch, goals []models.Goal) error {
	enriched, err := b.enricher.Run(ctx, batch, goals)
	if err != nil {
		return err
	}
	if !b.install(epoch, batch.ID, enriched) {
		b.logger.Debug("discarding stale enrichment", "batch", batch.ID)
	}
	return nil
}

func (b *Board) nextEpoch() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.epoch++
	return b.epoch
}

func (b *Board) isLatest(epoch uint64) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.epoch == epoch
}

// install replaces the displayed goals unless a newer call or batch got
// there first.
func (b *Board) install(epoch, batchID uint64, goals []models.EnrichedGoal) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if epoch != b.epoch || batchID < b.installed || !b.enricher.Tracker().IsCurrent(batchID) {
		return false
	}
	b.installed = batchID
	b.goals = goals
	return true
}

// AddGoal creates a goal and refreshes the board.
func (b *Board) AddGoal(ctx context.Context, title, description string) error {
	if err := b.store.Create(ctx, title, description); err != nil {
		return fmt.Errorf("create goal: %w", err)
	}
	return b.Refresh(ctx)
}

// CompleteGoal marks a goal completed and refreshes the board.
func (b *Board) CompleteGoal(ctx context.Context, id string) error {
	return b.SetStatus(ctx, id, models.StatusCompleted)
}

// SetStatus changes a goal's status and refreshes the board.
func (b *Board) SetStatus(ctx context.Context, id string, status models.Status) error {
	if err := b.store.Update(ctx, id, status); err != nil {
		return fmt.Errorf("update goal: %w", err)
	}
	return b.Refresh(ctx)
}

// DeleteGoal deletes a goal and refreshes the board.
func (b *Board) DeleteGoal(ctx context.Context, id string) error {
	if err := b.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete goal: %w", err)
	}
	return b.Refresh(ctx)
}

// SuggestDescription asks for a plan to use as the description of a goal
// titled title.
func (b *Board) SuggestDescription(ctx context.Context, title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", fmt.Errorf("suggest description: empty title")
	}
	plan, err := b.assistant.Plan(ctx, title)
	if err != nil {
		return "", fmt.Errorf("suggest description: %w", err)
	}
	return plan, nil
}

// Rephrase rewrites a goal statement.
func (b *Board) Rephrase(ctx context.Context, text string) (string, error) {
	out, err := b.assistant.Rephrase(ctx, text)
	if err != nil {
		return "", fmt.Errorf("rephrase: %w", err)
	}
	return out, nil
}

// Goals returns a copy of the displayed goals.
func (b *Board) Goals() []models.EnrichedGoal {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]models.EnrichedGoal, len(b.goals))
	copy(out, b.goals)
	return out
}

// Snapshot returns the displayed goals together with the batch state.
func (b *Board) Snapshot() View {
	return View{
		Goals: b.Goals(),
		Batch: b.enricher.Tracker().Snapshot(),
	}
}
