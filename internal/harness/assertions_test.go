package harness

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmfb/entitylogger/internal/engine"
	"github.com/mmfb/entitylogger/internal/geometry"
	"github.com/mmfb/entitylogger/internal/snapshot"
)

func ptr[T any](v T) *T { return &v }

func sampleResult() *Result {
	r := NewResult()
	r.Stats = engine.Stats{Ticks: 40, Cycles: 2, Failed: 0}
	r.Entities = []snapshot.EntityRecord{
		{Name: "Alex", Category: snapshot.Player, Identifier: ptr("p1"), Health: ptr(20.0)},
		{Name: "Zombie", Category: snapshot.Monster, Position: geometry.Point3{X: 3, Z: 4}, Distance: 5},
		{Name: "Zombie", Category: snapshot.Monster, Position: geometry.Point3{X: 6, Z: 8}, Distance: 10},
	}
	r.World = &snapshot.WorldInfo{Day: 1, TimeOfDay: 13009, MoonPhase: ptr("Vollmond 8/8")}
	return r
}

func TestEvaluateAssertions_AllPass(t *testing.T) {
	errs := EvaluateAssertions(sampleResult(), []Assertion{
		{Type: AssertCycles, Count: 2},
		{Type: AssertEntityCount, Count: 3},
		{Type: AssertEntityCount, Category: "MONSTER", Count: 2},
		{Type: AssertEntity, Name: "Alex", Category: "PLAYER", Health: ptr(20.0), Identifier: ptr("p1")},
		{Type: AssertEntity, Name: "Zombie", Distance: ptr(10.0)},
		{Type: AssertWorldTime, Day: ptr(int64(1)), TimeOfDay: ptr(int64(13009)), MoonPhase: ptr("Vollmond 8/8")},
	})
	assert.Empty(t, errs)
}

func TestEvaluateAssertions_Cycles(t *testing.T) {
	errs := EvaluateAssertions(sampleResult(), []Assertion{{Type: AssertCycles, Count: 3, Failed: 1}})
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "Expected: 3 cycles, 1 failed")
	assert.Contains(t, errs[0], "Actual: 2 cycles, 0 failed")
}

func TestEvaluateAssertions_EntityCountByCategory(t *testing.T) {
	errs := EvaluateAssertions(sampleResult(), []Assertion{{Type: AssertEntityCount, Category: "PLAYER", Count: 2}})
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "Expected: 2 PLAYER rows")
	assert.Contains(t, errs[0], "Actual: 1 PLAYER rows")
	assert.Contains(t, errs[0], "Persisted entities:")
}

func TestEvaluateAssertions_EntityMissing(t *testing.T) {
	errs := EvaluateAssertions(sampleResult(), []Assertion{{Type: AssertEntity, Name: "Creeper"}})
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "no row with that name")
}

func TestEvaluateAssertions_EntityFieldMismatch(t *testing.T) {
	errs := EvaluateAssertions(sampleResult(), []Assertion{
		{Type: AssertEntity, Name: "Zombie", Distance: ptr(7.0), Health: ptr(1.0)},
	})
	require.Len(t, errs, 1)
	// Both Zombie rows are reported.
	assert.Equal(t, 2, strings.Count(errs[0], "health NULL"))
	assert.Contains(t, errs[0], "distance 5")
	assert.Contains(t, errs[0], "distance 10")
}

func TestEvaluateAssertions_DistanceTolerance(t *testing.T) {
	errs := EvaluateAssertions(sampleResult(), []Assertion{
		{Type: AssertEntity, Name: "Zombie", Distance: ptr(5.0 + 1e-12)},
	})
	assert.Empty(t, errs)
}

func TestEvaluateAssertions_WorldTime(t *testing.T) {
	r := sampleResult()

	errs := EvaluateAssertions(r, []Assertion{{Type: AssertWorldTime, Daytime: true}})
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "want NULL")

	errs = EvaluateAssertions(r, []Assertion{{Type: AssertWorldTime, Day: ptr(int64(2)), MoonPhase: ptr("Neumond 4/8")}})
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "day 1, want 2")
	assert.Contains(t, errs[0], `want "Neumond 4/8"`)

	r.World = nil
	errs = EvaluateAssertions(r, []Assertion{{Type: AssertWorldTime}})
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "no row")
}

func TestEvaluateAssertions_UnknownType(t *testing.T) {
	errs := EvaluateAssertions(sampleResult(), []Assertion{{Type: "bogus"}})
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], `unknown assertion type "bogus"`)
}

func TestResult_AddError(t *testing.T) {
	r := NewResult()
	assert.True(t, r.Pass)
	r.AddError("boom")
	assert.False(t, r.Pass)
	assert.Equal(t, []string{"boom"}, r.Errors)
}
