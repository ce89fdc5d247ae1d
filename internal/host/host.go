// Package host describes what the refresh engine needs from the simulation
// it observes.
//
// A real game client binds these interfaces to its live entity list. The
// scripted world in this package plays back recorded frames instead.
package host

import (
	"iter"

	"github.com/mmfb/entitylogger/internal/geometry"
)

// Kind is the host's runtime type of an entity.
type Kind int

const (
	KindOther Kind = iota
	KindMonster
	KindPlayer
)

// String returns the lower-case kind name used in script files.
func (k Kind) String() string {
	switch k {
	case KindMonster:
		return "monster"
	case KindPlayer:
		return "player"
	default:
		return "other"
	}
}

// Entity is a handle to one live host entity.
//
// ID and Health are capability queries: the second result is false when
// the entity has no stable id or exposes no health attribute.
type Entity interface {
	Name() string
	Position() geometry.Point3
	ID() (string, bool)
	Health() (float64, bool)
	Kind() Kind
}

// Snapshot is what the host hands to one refresh cycle.
type Snapshot struct {
	// Entities enumerates the host's entity list. It may be backed by a
	// live collection, so consumers must collect it before processing.
	Entities iter.Seq[Entity]

	// ReferenceID names the entity distances are measured from,
	// usually the local player. Ignored when HasReference is false.
	ReferenceID  string
	HasReference bool

	RawWorldTicks int64
}

// World is the host simulation as seen by the tick driver.
type World interface {
	// Snapshot returns the current state, or false when no world is loaded.
	Snapshot() (Snapshot, bool)
}
