package testutil

// FixedCycleIDGenerator returns the same cycle id every time.
//
// Unlike engine.FixedGenerator, which hands out ids in sequence and panics
// when exhausted, this generator never runs out. Scenario runs use it when
// the number of cycles depends on the script length.
//
// Thread-safety: FixedCycleIDGenerator is stateless and safe for concurrent use.
type FixedCycleIDGenerator struct {
	id string
}

// NewFixedCycleIDGenerator creates a generator for id.
// If id is empty, Generate returns "test-cycle".
func NewFixedCycleIDGenerator(id string) *FixedCycleIDGenerator {
	if id == "" {
		id = "test-cycle"
	}
	return &FixedCycleIDGenerator{id: id}
}

// Generate returns the fixed id. Implements engine.CycleIDGenerator.
func (g *FixedCycleIDGenerator) Generate() string {
	return g.id
}
