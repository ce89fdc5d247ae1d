package engine

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"github.com/mmfb/entitylogger/internal/classify"
	"github.com/mmfb/entitylogger/internal/geometry"
	"github.com/mmfb/entitylogger/internal/host"
	"github.com/mmfb/entitylogger/internal/snapshot"
	"github.com/mmfb/entitylogger/internal/store"
	"github.com/mmfb/entitylogger/internal/worldclock"
)

// Snapshots is the storage the engine refreshes. *store.Store implements it.
type Snapshots interface {
	WithRefresh(ctx context.Context, fn func(store.Refresher) error) error
}

var _ Snapshots = (*store.Store)(nil)

// Engine runs refresh cycles against one store.
//
// Thread-safety model: RunCycle must not be called concurrently. The host
// tick contract already guarantees this; the engine adds no locking.
type Engine struct {
	snapshots Snapshots
	now       func() time.Time
	cycleIDs  CycleIDGenerator
	logger    *slog.Logger
}

// Option allows configuration of engine parameters.
type Option func(*Engine)

// WithNow overrides the wall clock used for last_update.
func WithNow(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// WithCycleIDs overrides the cycle id generator.
// Default: UUIDv7Generator.
func WithCycleIDs(gen CycleIDGenerator) Option {
	return func(e *Engine) {
		e.cycleIDs = gen
	}
}

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// New creates an Engine that writes to snapshots.
func New(snapshots Snapshots, opts ...Option) *Engine {
	e := &Engine{
		snapshots: snapshots,
		now:       time.Now,
		cycleIDs:  UUIDv7Generator{},
		logger:    slog.Default(),
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// RunCycle replaces the persisted snapshot with the state in snap.
//
// Either the whole new snapshot commits or nothing changes. On failure the
// returned error is a *CycleError wrapping the store error; the caller is
// expected to log and try again on the next cadence.
func (e *Engine) RunCycle(ctx context.Context, snap host.Snapshot) error {
	cycleID := e.cycleIDs.Generate()

	clock := worldclock.Derive(snap.RawWorldTicks)

	var entities []host.Entity
	if snap.Entities != nil {
		entities = slices.Collect(snap.Entities)
	}

	records := BuildRecords(entities, snap.ReferenceID, snap.HasReference)

	info := snapshot.WorldInfo{
		Day:        clock.Day,
		TimeOfDay:  clock.TimeOfDay,
		MoonPhase:  clock.MoonPhase,
		LastUpdate: e.now().UnixMilli(),
	}

	e.logger.Debug("cycle starting",
		"cycle", cycleID,
		"observed", len(entities),
		"recorded", len(records),
		"raw_ticks", snap.RawWorldTicks,
	)

	err := e.snapshots.WithRefresh(ctx, func(r store.Refresher) error {
		if err := r.ClearEntities(ctx); err != nil {
			return err
		}
		if err := r.InsertEntities(ctx, records); err != nil {
			return err
		}
		return r.UpsertWorldInfo(ctx, info)
	})
	if err != nil {
		e.logger.Error("cycle rolled back",
			"cycle", cycleID,
			"op", "refresh",
			"error", err,
		)
		return NewTransactionError(cycleID, err)
	}

	e.logger.Debug("cycle committed",
		"cycle", cycleID,
		"entities", len(records),
		"world", clock.String(),
	)

	return nil
}

// BuildRecords classifies entities and measures their distance to the
// reference entity. Entities that are neither monsters by name nor players
// by type are dropped. The reference position is looked up once, so every
// record is measured against the same point.
func BuildRecords(entities []host.Entity, referenceID string, hasReference bool) []snapshot.EntityRecord {
	ref, refFound := findReference(entities, referenceID, hasReference)

	records := make([]snapshot.EntityRecord, 0, len(entities))
	for _, ent := range entities {
		name := ent.Name()
		category := classify.Resolve(name, ent.Kind() == host.KindPlayer)
		if !category.Persisted() {
			continue
		}

		rec := snapshot.EntityRecord{
			Name:     name,
			Position: ent.Position(),
			Category: category,
		}

		id, hasID := ent.ID()
		if hasID {
			rec.Identifier = &id
		}
		if hp, ok := ent.Health(); ok {
			rec.Health = &hp
		}

		isReference := hasID && hasReference && id == referenceID
		if refFound && !isReference {
			rec.Distance = geometry.Distance(rec.Position, ref)
		}

		records = append(records, rec)
	}
	return records
}

// findReference returns the position of the entity whose id is referenceID.
func findReference(entities []host.Entity, referenceID string, hasReference bool) (geometry.Point3, bool) {
	if !hasReference {
		return geometry.Point3{}, false
	}
	for _, ent := range entities {
		if id, ok := ent.ID(); ok && id == referenceID {
			return ent.Position(), true
		}
	}
	return geometry.Point3{}, false
}
