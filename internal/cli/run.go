package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/mmfb/entitylogger/internal/config"
	"github.com/mmfb/entitylogger/internal/engine"
	"github.com/mmfb/entitylogger/internal/host"
	"github.com/mmfb/entitylogger/internal/store"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Feed     string
	Database string
	MaxTicks int
	Interval time.Duration

	// CycleIDs allows overriding the cycle id generator (for testing).
	// If nil, defaults to UUIDv7Generator.
	CycleIDs engine.CycleIDGenerator
}

// RunSummary is printed when the host loop stops.
type RunSummary struct {
	Script   string `json:"script"`
	Database string `json:"database"`
	Ticks    int    `json:"ticks"`
	Cycles   int    `json:"cycles"`
	Failed   int    `json:"failed"`
	Disabled bool   `json:"disabled"`
	World    string `json:"world"`
}

func (s RunSummary) String() string {
	if s.Disabled {
		return fmt.Sprintf("%s: %d ticks, snapshots disabled (%s)", s.Script, s.Ticks, s.World)
	}
	return fmt.Sprintf("%s: %d ticks, %d cycles (%d failed) into %s (%s)",
		s.Script, s.Ticks, s.Cycles, s.Failed, s.Database, s.World)
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Drive a scripted world and snapshot it",
		Long: `Play a scripted world feed tick by tick and refresh the snapshot
database every cadence.

The loop stops when the script ends, after --ticks host ticks, or on
SIGINT. A database that cannot be opened disables snapshotting but the
world keeps ticking.

Example:
  entitylogger run --feed ./night.yaml
  entitylogger run --feed ./night.yaml --db /tmp/snap.db --ticks 200`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWorld(cmd.Context(), opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Feed, "feed", "", "path to scripted world YAML (required)")
	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (default from config)")
	cmd.Flags().IntVar(&opts.MaxTicks, "ticks", 0, "stop after this many host ticks (0 = until the script ends)")
	cmd.Flags().DurationVar(&opts.Interval, "interval", 0, "tick pacing (default from config)")
	_ = cmd.MarkFlagRequired("feed")

	return cmd
}

func runWorld(ctx context.Context, opts *RunOptions, cmd *cobra.Command) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadConfig(opts.RootOptions)
	if err != nil {
		return err
	}
	applyRunFlags(cfg, opts)

	logger := newLogger(cmd.ErrOrStderr(), cfg)

	script, err := host.LoadScript(opts.Feed)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load feed", err)
	}
	world := host.NewScriptedWorld(script)

	driver, closeStore := openDriver(cfg, world, opts, logger)
	defer closeStore()

	logger.Info("world running",
		"script", script.Name,
		"db", cfg.Database,
		"cadence", cfg.CadenceTicks,
		"interval", cfg.TickInterval,
	)

	ticks, err := driveWorld(ctx, driver, world, cfg.TickInterval, opts.MaxTicks)
	if err != nil && !errors.Is(err, context.Canceled) {
		return WrapExitError(ExitFailure, "host loop failed", err)
	}
	if errors.Is(err, context.Canceled) {
		logger.Info("interrupted, shutting down", "ticks", ticks)
	}

	stats := driver.Stats()
	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	return formatter.Success(RunSummary{
		Script:   script.Name,
		Database: cfg.Database,
		Ticks:    ticks,
		Cycles:   stats.Cycles,
		Failed:   stats.Failed,
		Disabled: driver.Disabled(),
		World:    worldSummary(world),
	})
}

func applyRunFlags(cfg *config.Config, opts *RunOptions) {
	if opts.Database != "" {
		cfg.Database = opts.Database
	}
	if opts.Interval > 0 {
		cfg.TickInterval = opts.Interval
	}
}

// openDriver opens the store and wires the engine to it. If the store cannot
// be opened the returned driver is disabled and the world runs unobserved.
func openDriver(cfg *config.Config, world host.World, opts *RunOptions, logger *slog.Logger) (*engine.Driver, func()) {
	st, err := store.Open(cfg.Database)
	if err != nil {
		return engine.NewDisabledDriver(err, engine.WithDriverLogger(logger)), func() {}
	}

	engineOpts := []engine.Option{engine.WithLogger(logger)}
	if opts.CycleIDs != nil {
		engineOpts = append(engineOpts, engine.WithCycleIDs(opts.CycleIDs))
	}
	e := engine.New(st, engineOpts...)

	closeStore := func() {
		if err := st.Close(); err != nil {
			logger.Warn("closing store", "error", err)
		}
	}
	return engine.NewDriver(e, world, cfg.CadenceTicks, engine.WithDriverLogger(logger)), closeStore
}

// driveWorld invokes the tick callback once per interval until the script
// ends, maxTicks host ticks have passed, or ctx is cancelled. It returns the
// number of host ticks issued.
func driveWorld(ctx context.Context, driver *engine.Driver, world *host.ScriptedWorld, interval time.Duration, maxTicks int) (int, error) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	ticks := 0
	for !world.Done() && (maxTicks <= 0 || ticks < maxTicks) {
		select {
		case <-ctx.Done():
			return ticks, ctx.Err()
		case <-ticker.C:
		}
		driver.Tick(ctx)
		world.Advance()
		ticks++
	}
	return ticks, nil
}

func worldSummary(world *host.ScriptedWorld) string {
	return fmt.Sprintf("raw ticks %d", world.WorldTicks())
}
