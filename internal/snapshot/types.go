package snapshot

import "github.com/mmfb/entitylogger/internal/geometry"

// Category is the classification of a host entity.
type Category int

const (
	// Ignored entities are never persisted.
	Ignored Category = iota
	// Monster entities matched the monster-name set.
	Monster
	// Player entities are player-controlled according to the host.
	Player
)

// String returns the value stored in the entity_type column.
func (c Category) String() string {
	switch c {
	case Monster:
		return "MONSTER"
	case Player:
		return "PLAYER"
	default:
		return "IGNORED"
	}
}

// Persisted reports whether records of this category are written to the store.
func (c Category) Persisted() bool {
	return c == Monster || c == Player
}

// ParseCategory is the inverse of Category.String.
func ParseCategory(s string) (Category, bool) {
	switch s {
	case "MONSTER":
		return Monster, true
	case "PLAYER":
		return Player, true
	case "IGNORED":
		return Ignored, true
	default:
		return Ignored, false
	}
}

// EntityRecord is one classified entity observed during a cycle.
// Records are built once per cycle and never mutated afterwards.
type EntityRecord struct {
	Name       string          `json:"name"`
	Position   geometry.Point3 `json:"position"`
	Category   Category        `json:"-"`
	Distance   float64         `json:"distance_to_player"`
	Health     *float64        `json:"health,omitempty"`
	Identifier *string         `json:"identifier,omitempty"`
}

// WorldInfo is the most recent world clock reading.
type WorldInfo struct {
	Day        int64   `json:"game_day"`
	TimeOfDay  int64   `json:"game_ticks"`
	MoonPhase  *string `json:"moon_phase,omitempty"`
	LastUpdate int64   `json:"last_update"` // epoch millis
}
