package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/mmfb/entitylogger/internal/engine"
	"github.com/mmfb/entitylogger/internal/host"
	"github.com/mmfb/entitylogger/internal/store"
	"github.com/mmfb/entitylogger/internal/testutil"
)

// Epoch is the wall clock instant of the first cycle in every scenario.
// Each later cycle is one second after the previous one.
var Epoch = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

// Harness holds the per-run wiring.
type Harness struct {
	store  *store.Store
	driver *engine.Driver
	world  *host.ScriptedWorld
	logger *slog.Logger
}

// Run plays a scenario against a fresh database and evaluates its
// assertions.
//
// Execution flow:
// 1. Create a database in a temporary directory
// 2. Wire engine and driver with a deterministic clock and cycle id
// 3. Tick the scripted world until it ends
// 4. Read back the persisted state and evaluate assertions
func Run(scenario *Scenario) (*Result, error) {
	return RunContext(context.Background(), scenario)
}

// RunContext is Run with a caller supplied context.
func RunContext(ctx context.Context, scenario *Scenario) (*Result, error) {
	dir, err := os.MkdirTemp("", "entitylogger-harness-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create scratch dir: %w", err)
	}
	defer os.RemoveAll(dir)

	st, err := store.Open(filepath.Join(dir, "harness.db"))
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	defer st.Close()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	clock := testutil.NewDeterministicClock(Epoch, time.Second)

	eng := engine.New(st,
		engine.WithNow(clock.Now),
		engine.WithCycleIDs(testutil.NewFixedCycleIDGenerator(scenario.CycleID)),
		engine.WithLogger(logger),
	)
	world := host.NewScriptedWorld(scenario.World)

	h := &Harness{
		store:  st,
		driver: engine.NewDriver(eng, world, scenario.Cadence, engine.WithDriverLogger(logger)),
		world:  world,
		logger: logger,
	}

	result := NewResult()
	result.Ticks = h.play(ctx)
	result.Stats = h.driver.Stats()

	if err := h.collect(ctx, result); err != nil {
		return nil, err
	}

	for _, msg := range EvaluateAssertions(result, scenario.Assertions) {
		result.AddError(msg)
	}
	return result, nil
}

// play ticks the world to its end without pacing.
func (h *Harness) play(ctx context.Context) int {
	ticks := 0
	for !h.world.Done() {
		h.driver.Tick(ctx)
		h.world.Advance()
		ticks++
	}
	return ticks
}

// collect reads the persisted tables into result.
func (h *Harness) collect(ctx context.Context, result *Result) error {
	rows, err := h.store.Entities(ctx)
	if err != nil {
		return fmt.Errorf("failed to read entities: %w", err)
	}
	result.Entities = rows

	info, ok, err := h.store.WorldInfo(ctx)
	if err != nil {
		return fmt.Errorf("failed to read world info: %w", err)
	}
	if ok {
		result.World = &info
	}
	return nil
}
