// Package cli provides the command-line interface for visionboard.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/raphaelgruber/visionboard/internal/client"
	"github.com/raphaelgruber/visionboard/internal/config"
	"github.com/raphaelgruber/visionboard/internal/enrich"
	"github.com/raphaelgruber/visionboard/internal/llm"
	"github.com/raphaelgruber/visionboard/internal/metrics"
	"github.com/raphaelgruber/visionboard/internal/service"
	"github.com/spf13/cobra"
)

var (
	// Version is set at build time.
	Version = "0.1.0"

	// Global flags
	verbose bool

	// Global config and services
	cfg        config.Config
	logger     *slog.Logger
	collector  *metrics.Collector
	store      *client.GoalStore
	board      *service.Board
	logCleanup func() error
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "visionboard",
	Short: "Personal goals with AI insights",
	Long: `VisionBoard keeps a list of personal goals and annotates each one with
AI insights: the sentiment of the goal, an estimated chance of success and
a few keywords.

Goals live in the goals backend; insights come from the AI backend or,
with VISIONBOARD_INSIGHT_PROVIDER, straight from a language model.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip setup for version and help commands
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		envFile := os.Getenv("VISIONBOARD_ENV_FILE")
		if envFile == "" {
			envFile = ".env"
		}
		if err := config.LoadDotEnv(envFile); err != nil {
			return err
		}

		cfg = config.Load()
		if verbose {
			cfg.LogLevel = slog.LevelDebug
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}

		logger, logCleanup = config.SetupLogger(cfg)
		slog.SetDefault(logger)

		collector = metrics.NewCollector()

		var err error
		store, board, err = newBoard(cfg, logger, collector)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logCleanup != nil {
			if err := logCleanup(); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to close log file: %v\n", err)
			}
		}
	},
}

// insightProvider answers both enrichment and writing requests.
type insightProvider interface {
	enrich.Insights
	service.Assistant
}

// newBoard wires the backends, the enrichment orchestrator and the board.
func newBoard(cfg config.Config, logger *slog.Logger, collector *metrics.Collector) (*client.GoalStore, *service.Board, error) {
	opts := []client.Option{
		client.WithTimeout(cfg.HTTPTimeout),
		client.WithSlowThreshold(cfg.SlowRequestThreshold),
		client.WithLogger(logger),
		client.WithMetrics(collector),
	}

	goals := client.NewGoalStore(cfg.APIBaseURL, opts...)

	var insights insightProvider
	if cfg.InsightProvider == config.ProviderHTTP {
		insights = client.NewInsightClient(cfg.AIAPIBaseURL, opts...)
	} else {
		model, err := llm.NewModel(cfg, llm.WithMetrics(collector), llm.WithLogger(logger))
		if err != nil {
			return nil, nil, fmt.Errorf("init model: %w", err)
		}
		insights = model
	}

	policy, err := enrich.ParsePolicy(cfg.EnrichPolicy)
	if err != nil {
		return nil, nil, err
	}

	orch := enrich.New(insights,
		enrich.WithPolicy(policy),
		enrich.WithConcurrency(cfg.EnrichConcurrency),
		enrich.WithKeywordCount(cfg.KeywordCount),
		enrich.WithMetrics(collector),
		enrich.WithLogger(logger),
	)

	return goals, service.NewBoard(goals, orch, insights, logger), nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(completeCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(rephraseCmd)
	rootCmd.AddCommand(boardCmd)
}
