// Package enrich annotates goals with sentiment, success score and keywords
// by fanning out independent requests to an insight provider.
package enrich

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/raphaelgruber/visionboard/internal/metrics"
	"github.com/raphaelgruber/visionboard/internal/models"
	"golang.org/x/sync/errgroup"
)

// ErrEnrichmentFailed reports that a batch produced no usable result.
// The underlying request error is wrapped alongside it.
var ErrEnrichmentFailed = errors.New("enrichment failed")

// Insights is the subset of the insight provider used for enrichment.
type Insights interface {
	Sentiment(ctx context.Context, text string) (models.Sentiment, error)
	SuccessScore(ctx context.Context, title, description string) (float64, error)
	Keywords(ctx context.Context, text string, topN int) ([]string, error)
}

// Policy decides what a failed request does to the batch.
type Policy string

const (
	// PolicyBatch fails the whole batch on any failed request.
	PolicyBatch Policy = "batch"
	// PolicyPerGoal leaves only the affected goal un-annotated.
	PolicyPerGoal Policy = "per-goal"
)

// ParsePolicy converts a configuration value into a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch p := Policy(strings.ToLower(strings.TrimSpace(s))); p {
	case PolicyBatch, PolicyPerGoal:
		return p, nil
	case "":
		return PolicyBatch, nil
	default:
		return "", fmt.Errorf("unknown enrichment policy %q", s)
	}
}

// DefaultKeywordCount is the number of keywords requested per goal.
const DefaultKeywordCount = 3

// Orchestrator runs enrichment batches.
type Orchestrator struct {
	insights Insights
	tracker  *Tracker
	policy   Policy
	limit    int
	keywords int
	metrics  *metrics.Collector
	logger   *slog.Logger
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithPolicy sets the failure policy. The default is PolicyBatch.
func WithPolicy(p Policy) Option {
	return func(o *Orchestrator) { o.policy = p }
}

// WithConcurrency caps the number of requests in flight. Zero means no cap.
func WithConcurrency(n int) Option {
	return func(o *Orchestrator) { o.limit = n }
}

// WithKeywordCount sets how many keywords are requested per goal.
func WithKeywordCount(n int) Option {
	return func(o *Orchestrator) {
		if n > 0 {
			o.keywords = n
		}
	}
}

// WithTracker shares a tracker between orchestrators.
func WithTracker(t *Tracker) Option {
	return func(o *Orchestrator) { o.tracker = t }
}

// WithMetrics records batch timings into m.
func WithMetrics(m *metrics.Collector) Option {
	return func(o *Orchestrator) { o.metrics = m }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *Orchestrator) { o.logger = l }
}

// New creates an orchestrator over insights.
func New(insights Insights, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		insights: insights,
		policy:   PolicyBatch,
		keywords: DefaultKeywordCount,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.tracker == nil {
		o.tracker = NewTracker()
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	return o
}

// Tracker returns the batch tracker.
func (o *Orchestrator) Tracker() *Tracker {
	return o.tracker
}

// Policy returns the configured failure policy.
func (o *Orchestrator) Policy() Policy {
	return o.policy
}

// Enrich begins a batch for goals and runs it. See Run.
func (o *Orchestrator) Enrich(ctx context.Context, goals []models.Goal) ([]models.EnrichedGoal, error) {
	return o.Run(ctx, o.Begin(len(goals)), goals)
}

// Begin marks a new batch of total goals in flight.
func (o *Orchestrator) Begin(total int) *Batch {
	return o.tracker.Begin(total)
}

// Run requests sentiment, success score and keywords for every goal
// concurrently and returns the enriched goals in input order.
//
// Requests are never cancelled because a sibling failed; every request in
// the batch runs to completion. The batch is finished on the tracker before
// Run returns, whatever the outcome.
func (o *Orchestrator) Run(ctx context.Context, batch *Batch, goals []models.Goal) ([]models.EnrichedGoal, error) {
	start := time.Now()

	out, err := o.fanOut(ctx, batch, goals)

	current := o.tracker.Finish(batch, err)
	duration := time.Since(start)
	o.metrics.RecordTiming(metrics.OpEnrichBatch, duration, err != nil)

	o.logger.Debug("enrichment batch finished",
		"batch", batch.ID,
		"goals", len(goals),
		"policy", o.policy,
		"current", current,
		"duration_ms", duration.Milliseconds(),
		"failed", err != nil,
	)

	if err != nil {
		return nil, err
	}
	return out, nil
}

// annotations collects the three responses for one goal. Each request
// goroutine writes only its own fields.
type annotations struct {
	sentiment models.Sentiment
	score     float64
	keywords  []string
	errs      [3]error
	pending   atomic.Int32
}

func (a *annotations) err() error {
	return errors.Join(a.errs[:]...)
}

func (o *Orchestrator) fanOut(ctx context.Context, batch *Batch, goals []models.Goal) ([]models.EnrichedGoal, error) {
	results := make([]annotations, len(goals))

	var g errgroup.Group
	if o.limit > 0 {
		g.SetLimit(o.limit)
	}

	for i, goal := range goals {
		r := &results[i]
		r.pending.Store(3)
		text := goal.AnnotationText()

		finish := func(slot int, what string, err error) error {
			if err != nil {
				err = fmt.Errorf("%s for goal %s: %w", what, goal.ID, err)
				r.errs[slot] = err
			}
			if r.pending.Add(-1) == 0 {
				batch.advance()
			}
			if o.policy == PolicyBatch {
				return err
			}
			return nil
		}

		g.Go(func() error {
			s, err := o.insights.Sentiment(ctx, text)
			r.sentiment = s
			return finish(0, "sentiment", err)
		})
		g.Go(func() error {
			score, err := o.insights.SuccessScore(ctx, goal.Title, goal.Description)
			r.score = score
			return finish(1, "success score", err)
		})
		g.Go(func() error {
			kws, err := o.insights.Keywords(ctx, text, o.keywords)
			r.keywords = kws
			return finish(2, "keywords", err)
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEnrichmentFailed, err)
	}

	out := make([]models.EnrichedGoal, len(goals))
	var failed []error
	for i, goal := range goals {
		out[i] = models.EnrichedGoal{Goal: goal}

		r := &results[i]
		if err := r.err(); err != nil {
			failed = append(failed, err)
			o.logger.Warn("goal left without annotations", "batch", batch.ID, "goal", goal.ID, "error", err)
			continue
		}

		sentiment := r.sentiment
		score := r.score
		keywords := r.keywords
		if keywords == nil {
			keywords = []string{}
		}
		out[i].Sentiment = &sentiment
		out[i].SuccessScore = &score
		out[i].Keywords = keywords
	}

	if len(goals) > 0 && len(failed) == len(goals) {
		return nil, fmt.Errorf("%w: %w", ErrEnrichmentFailed, errors.Join(failed...))
	}
	return out, nil
}
