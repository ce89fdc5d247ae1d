package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mmfb/entitylogger/internal/geometry"
	"github.com/mmfb/entitylogger/internal/snapshot"
)

// entityRow mirrors one row of the entities table.
type entityRow struct {
	ID         int64           `db:"id"`
	Name       string          `db:"name"`
	X          float64         `db:"x"`
	Y          float64         `db:"y"`
	Z          float64         `db:"z"`
	EntityType string          `db:"entity_type"`
	Identifier sql.NullString  `db:"identifier"`
	Health     sql.NullFloat64 `db:"health"`
	Distance   float64         `db:"distance_to_player"`
}

// worldRow mirrors the world_time row.
type worldRow struct {
	ID         int64          `db:"id"`
	Day        int64          `db:"game_day"`
	Ticks      int64          `db:"game_ticks"`
	MoonPhase  sql.NullString `db:"moon_phase"`
	LastUpdate int64          `db:"last_update"`
}

func toEntityRow(rec snapshot.EntityRecord) entityRow {
	row := entityRow{
		Name:       rec.Name,
		X:          rec.Position.X,
		Y:          rec.Position.Y,
		Z:          rec.Position.Z,
		EntityType: rec.Category.String(),
		Identifier: nullString(rec.Identifier),
		Distance:   rec.Distance,
	}
	if rec.Health != nil {
		row.Health = sql.NullFloat64{Float64: *rec.Health, Valid: true}
	}
	return row
}

func (row entityRow) record() (snapshot.EntityRecord, error) {
	category, ok := snapshot.ParseCategory(row.EntityType)
	if !ok {
		return snapshot.EntityRecord{}, fmt.Errorf("entity %d: unknown entity_type %q", row.ID, row.EntityType)
	}
	rec := snapshot.EntityRecord{
		Name:     row.Name,
		Position: geometry.Point3{X: row.X, Y: row.Y, Z: row.Z},
		Category: category,
		Distance: row.Distance,
	}
	if row.Identifier.Valid {
		id := row.Identifier.String
		rec.Identifier = &id
	}
	if row.Health.Valid {
		h := row.Health.Float64
		rec.Health = &h
	}
	return rec, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

// Entities returns the persisted entity rows in insertion order.
// Read access exists for verification; the refresh path never reads.
func (s *Store) Entities(ctx context.Context) ([]snapshot.EntityRecord, error) {
	var rows []entityRow
	err := s.db.SelectContext(ctx, &rows, `
		SELECT id, name, x, y, z, entity_type, identifier, health, distance_to_player
		FROM entities
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("read entities: %w", err)
	}

	records := make([]snapshot.EntityRecord, 0, len(rows))
	for _, row := range rows {
		rec, err := row.record()
		if err != nil {
			return nil, fmt.Errorf("read entities: %w", err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// WorldInfo returns the world_time row. ok is false before the first
// successful refresh.
func (s *Store) WorldInfo(ctx context.Context) (info snapshot.WorldInfo, ok bool, err error) {
	var row worldRow
	err = s.db.GetContext(ctx, &row, `
		SELECT id, game_day, game_ticks, moon_phase, last_update
		FROM world_time
		WHERE id = ?
	`, worldInfoID)
	if errors.Is(err, sql.ErrNoRows) {
		return snapshot.WorldInfo{}, false, nil
	}
	if err != nil {
		return snapshot.WorldInfo{}, false, fmt.Errorf("read world info: %w", err)
	}

	info = snapshot.WorldInfo{
		Day:        row.Day,
		TimeOfDay:  row.Ticks,
		LastUpdate: row.LastUpdate,
	}
	if row.MoonPhase.Valid {
		phase := row.MoonPhase.String
		info.MoonPhase = &phase
	}
	return info, true, nil
}

// countRows returns the row count of table. Used for testing.
func (s *Store) countRows(table string) (int, error) {
	var n int
	if err := s.db.Get(&n, fmt.Sprintf("SELECT COUNT(*) FROM %s", table)); err != nil {
		return 0, err
	}
	return n, nil
}
