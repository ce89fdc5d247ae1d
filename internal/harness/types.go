package harness

import (
	"github.com/mmfb/entitylogger/internal/engine"
	"github.com/mmfb/entitylogger/internal/snapshot"
)

// Result is the outcome of a scenario run.
type Result struct {
	// Pass is true if every assertion held.
	Pass bool

	// Errors contains assertion failure messages.
	Errors []string

	// Ticks is the number of host ticks played.
	Ticks int

	// Stats are the driver counters at the end of the run.
	Stats engine.Stats

	// Entities are the persisted rows in insertion order.
	Entities []snapshot.EntityRecord

	// World is the world_time row, nil if no cycle ever committed.
	World *snapshot.WorldInfo
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:     true,
		Errors:   []string{},
		Entities: []snapshot.EntityRecord{},
	}
}

// AddError adds a failure message and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
