package harness

import (
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/mmfb/entitylogger/internal/snapshot"
)

// StateSnapshot is the persisted state of a scenario run in column terms.
// Optional columns marshal as null so the dump mirrors the tables.
type StateSnapshot struct {
	Scenario string        `json:"scenario"`
	Ticks    int           `json:"ticks"`
	Cycles   int           `json:"cycles"`
	Failed   int           `json:"failed"`
	Entities []EntityState `json:"entities"`
	World    *WorldState   `json:"world_time"`
}

// EntityState is one entities row.
type EntityState struct {
	Name       string   `json:"name"`
	X          float64  `json:"x"`
	Y          float64  `json:"y"`
	Z          float64  `json:"z"`
	EntityType string   `json:"entity_type"`
	Identifier *string  `json:"identifier"`
	Health     *float64 `json:"health"`
	Distance   float64  `json:"distance_to_player"`
}

// WorldState is the world_time row.
type WorldState struct {
	GameDay    int64   `json:"game_day"`
	GameTicks  int64   `json:"game_ticks"`
	MoonPhase  *string `json:"moon_phase"`
	LastUpdate int64   `json:"last_update"`
}

// NewStateSnapshot builds the dump for a result.
func NewStateSnapshot(name string, result *Result) StateSnapshot {
	snap := StateSnapshot{
		Scenario: name,
		Ticks:    result.Ticks,
		Cycles:   result.Stats.Cycles,
		Failed:   result.Stats.Failed,
		Entities: make([]EntityState, 0, len(result.Entities)),
	}
	for _, rec := range result.Entities {
		snap.Entities = append(snap.Entities, entityState(rec))
	}
	if result.World != nil {
		snap.World = &WorldState{
			GameDay:    result.World.Day,
			GameTicks:  result.World.TimeOfDay,
			MoonPhase:  result.World.MoonPhase,
			LastUpdate: result.World.LastUpdate,
		}
	}
	return snap
}

func entityState(rec snapshot.EntityRecord) EntityState {
	return EntityState{
		Name:       rec.Name,
		X:          rec.Position.X,
		Y:          rec.Position.Y,
		Z:          rec.Position.Z,
		EntityType: rec.Category.String(),
		Identifier: rec.Identifier,
		Health:     rec.Health,
		Distance:   rec.Distance,
	}
}

// MarshalState renders a snapshot as indented JSON with a trailing newline.
func MarshalState(snap StateSnapshot) ([]byte, error) {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// RunWithGolden executes a scenario and compares the persisted state against
// testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}
	if err := AssertGolden(t, scenario.Name, result); err != nil {
		return nil, err
	}
	return result, nil
}

// AssertGolden compares an existing result against a golden file.
func AssertGolden(t *testing.T, name string, result *Result) error {
	t.Helper()

	data, err := MarshalState(NewStateSnapshot(name, result))
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, data)
	return nil
}
