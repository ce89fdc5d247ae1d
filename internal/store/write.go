package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/mmfb/entitylogger/internal/snapshot"
)

// worldInfoID is the sentinel primary key of the only world_time row.
const worldInfoID = 1

// insertBatchSize bounds the rows per INSERT statement so the bound
// parameter count stays well under SQLite's variable limit.
const insertBatchSize = 1000

const insertEntitySQL = `
	INSERT INTO entities
	(name, x, y, z, entity_type, identifier, health, distance_to_player)
	VALUES (:name, :x, :y, :z, :entity_type, :identifier, :health, :distance_to_player)
`

const upsertWorldInfoSQL = `
	INSERT INTO world_time (id, game_day, game_ticks, moon_phase, last_update)
	VALUES (:id, :game_day, :game_ticks, :moon_phase, :last_update)
	ON CONFLICT(id) DO UPDATE SET
		game_day    = excluded.game_day,
		game_ticks  = excluded.game_ticks,
		moon_phase  = excluded.moon_phase,
		last_update = excluded.last_update
`

// Refresher is the set of writes allowed inside a refresh transaction.
type Refresher interface {
	ClearEntities(ctx context.Context) error
	InsertEntities(ctx context.Context, records []snapshot.EntityRecord) error
	UpsertWorldInfo(ctx context.Context, info snapshot.WorldInfo) error
}

// Refresh is an open refresh transaction.
// Exactly one of Commit or Rollback takes effect; later calls are no-ops.
type Refresh struct {
	tx   *sqlx.Tx
	done bool
}

var _ Refresher = (*Refresh)(nil)

// BeginRefresh starts a refresh transaction.
// Callers must Commit or Rollback; deferring Rollback is always safe.
func (s *Store) BeginRefresh(ctx context.Context) (*Refresh, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, txError("begin", err)
	}
	return &Refresh{tx: tx}, nil
}

// WithRefresh runs fn inside one refresh transaction.
// The transaction commits only if fn returns nil; otherwise it is rolled
// back in full and the error is returned as an *Error of KindTransaction.
func (s *Store) WithRefresh(ctx context.Context, fn func(Refresher) error) error {
	r, err := s.BeginRefresh(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback() // No-op if committed

	if err := fn(r); err != nil {
		var se *Error
		if errors.As(err, &se) {
			return err
		}
		return txError("refresh", err)
	}

	return r.Commit()
}

// ClearEntities deletes every entity row.
func (r *Refresh) ClearEntities(ctx context.Context) error {
	if _, err := r.tx.ExecContext(ctx, `DELETE FROM entities`); err != nil {
		return txError("clear entities", err)
	}
	return nil
}

// InsertEntities writes records with batched multi-row INSERTs.
// Row order carries no meaning. An empty slice writes nothing.
func (r *Refresh) InsertEntities(ctx context.Context, records []snapshot.EntityRecord) error {
	if len(records) == 0 {
		return nil
	}

	rows := make([]entityRow, len(records))
	for i, rec := range records {
		rows[i] = toEntityRow(rec)
	}

	for start := 0; start < len(rows); start += insertBatchSize {
		end := min(start+insertBatchSize, len(rows))
		if _, err := r.tx.NamedExecContext(ctx, insertEntitySQL, rows[start:end]); err != nil {
			return txError("insert entities", err)
		}
	}

	return nil
}

// UpsertWorldInfo writes the singleton world_time row.
func (r *Refresh) UpsertWorldInfo(ctx context.Context, info snapshot.WorldInfo) error {
	row := worldRow{
		ID:         worldInfoID,
		Day:        info.Day,
		Ticks:      info.TimeOfDay,
		MoonPhase:  nullString(info.MoonPhase),
		LastUpdate: info.LastUpdate,
	}
	if _, err := r.tx.NamedExecContext(ctx, upsertWorldInfoSQL, row); err != nil {
		return txError("upsert world info", err)
	}
	return nil
}

// Commit makes the refresh visible to readers.
func (r *Refresh) Commit() error {
	if r.done {
		return nil
	}
	r.done = true
	if err := r.tx.Commit(); err != nil {
		return txError("commit", err)
	}
	return nil
}

// Rollback discards every write of the refresh.
func (r *Refresh) Rollback() error {
	if r.done {
		return nil
	}
	r.done = true
	if err := r.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return txError("rollback", err)
	}
	return nil
}
