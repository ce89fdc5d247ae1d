package engine

import (
	"context"
	"log/slog"

	"github.com/mmfb/entitylogger/internal/host"
)

// DefaultCadence is the number of loaded host ticks between cycles
// (one second at 20 ticks per second).
const DefaultCadence = 20

// Cycler runs one refresh cycle. *Engine implements it.
type Cycler interface {
	RunCycle(ctx context.Context, snap host.Snapshot) error
}

var _ Cycler = (*Engine)(nil)

// Stats counts what a Driver has done so far.
type Stats struct {
	Ticks  int // loaded ticks observed
	Cycles int // cycles attempted
	Failed int // cycles rolled back
}

// Driver is the tick callback the host invokes once per simulation tick.
//
// It owns the cadence counter and nothing else. Tick must be called from a
// single goroutine; a cycle always finishes before Tick returns, so the
// next cycle can never overlap it.
type Driver struct {
	cycler  Cycler
	world   host.World
	every   int
	counter int
	stats   Stats

	disabled bool
	logger   *slog.Logger
}

// DriverOption allows configuration of driver parameters.
type DriverOption func(*Driver)

// WithDriverLogger sets the driver logger. Default: slog.Default().
func WithDriverLogger(logger *slog.Logger) DriverOption {
	return func(d *Driver) {
		d.logger = logger
	}
}

// NewDriver creates a driver that runs a cycle every `every` loaded ticks.
// Values below 1 fall back to DefaultCadence.
func NewDriver(cycler Cycler, world host.World, every int, opts ...DriverOption) *Driver {
	if every < 1 {
		every = DefaultCadence
	}
	d := &Driver{
		cycler: cycler,
		world:  world,
		every:  every,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// NewDisabledDriver returns a driver whose Tick does nothing.
// It is used when the store failed to initialize: the host keeps running,
// snapshotting is off, and the cause is logged exactly once, here.
func NewDisabledDriver(cause error, opts ...DriverOption) *Driver {
	d := &Driver{disabled: true, every: DefaultCadence, logger: slog.Default()}
	for _, opt := range opts {
		opt(d)
	}
	d.logger.Error("entity snapshots disabled",
		"code", ErrCodeStoreUnavailable,
		"error", cause,
	)
	return d
}

// Tick advances the cadence counter and runs a cycle when it is due.
// It reports whether a cycle was attempted. Ticks without a loaded world
// are not counted.
func (d *Driver) Tick(ctx context.Context) bool {
	if d.disabled {
		return false
	}

	snap, ok := d.world.Snapshot()
	if !ok {
		return false
	}

	d.stats.Ticks++
	d.counter++
	if d.counter < d.every {
		return false
	}
	d.counter = 0

	d.stats.Cycles++
	if err := d.cycler.RunCycle(ctx, snap); err != nil {
		d.stats.Failed++
		d.logger.Warn("cycle skipped, retrying next cadence",
			"error", err,
			"failed", d.stats.Failed,
		)
	}
	return true
}

// Stats returns the counters accumulated so far.
func (d *Driver) Stats() Stats {
	return d.stats
}

// Disabled reports whether the driver was built without a store.
func (d *Driver) Disabled() bool {
	return d.disabled
}
