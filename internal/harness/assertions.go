package harness

import (
	"fmt"
	"strings"

	"github.com/mmfb/entitylogger/internal/snapshot"
)

// distanceTolerance absorbs float rounding in expected distances.
const distanceTolerance = 1e-9

// AssertionError is returned when an assertion fails.
type AssertionError struct {
	Type     string                  // Assertion type for categorization
	Expected string                  // Human-readable expected outcome
	Actual   string                  // Human-readable actual outcome
	Entities []snapshot.EntityRecord // Persisted rows for context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if len(e.Entities) > 0 {
		fmt.Fprintf(&buf, "\nPersisted entities:\n")
		for i, rec := range e.Entities {
			fmt.Fprintf(&buf, "  [%d] %s %s d=%g\n", i+1, rec.Category, rec.Name, rec.Distance)
		}
	}
	return buf.String()
}

// EvaluateAssertions checks every assertion and returns one message per
// failure.
func EvaluateAssertions(result *Result, assertions []Assertion) []string {
	var errs []string
	for i, a := range assertions {
		var err error
		switch a.Type {
		case AssertCycles:
			err = assertCycles(result, a)
		case AssertEntityCount:
			err = assertEntityCount(result, a)
		case AssertEntity:
			err = assertEntity(result, a)
		case AssertWorldTime:
			err = assertWorldTime(result, a)
		default:
			err = fmt.Errorf("unknown assertion type %q", a.Type)
		}
		if err != nil {
			errs = append(errs, fmt.Sprintf("assertion %d (%s): %v", i, a.Type, err))
		}
	}
	return errs
}

func assertCycles(result *Result, a Assertion) error {
	if result.Stats.Cycles != a.Count || result.Stats.Failed != a.Failed {
		return &AssertionError{
			Type:     AssertCycles,
			Expected: fmt.Sprintf("%d cycles, %d failed", a.Count, a.Failed),
			Actual:   fmt.Sprintf("%d cycles, %d failed", result.Stats.Cycles, result.Stats.Failed),
		}
	}
	return nil
}

func assertEntityCount(result *Result, a Assertion) error {
	n := 0
	for _, rec := range result.Entities {
		if a.Category == "" || rec.Category.String() == a.Category {
			n++
		}
	}
	if n != a.Count {
		what := "rows"
		if a.Category != "" {
			what = a.Category + " rows"
		}
		return &AssertionError{
			Type:     AssertEntityCount,
			Expected: fmt.Sprintf("%d %s", a.Count, what),
			Actual:   fmt.Sprintf("%d %s", n, what),
			Entities: result.Entities,
		}
	}
	return nil
}

func assertEntity(result *Result, a Assertion) error {
	var mismatches []string
	for _, rec := range result.Entities {
		if rec.Name != a.Name {
			continue
		}
		diff := entityDiff(rec, a)
		if len(diff) == 0 {
			return nil
		}
		mismatches = append(mismatches, strings.Join(diff, ", "))
	}

	actual := "no row with that name"
	if len(mismatches) > 0 {
		actual = strings.Join(mismatches, "; ")
	}
	return &AssertionError{
		Type:     AssertEntity,
		Expected: fmt.Sprintf("row %q", a.Name),
		Actual:   actual,
		Entities: result.Entities,
	}
}

// entityDiff lists the fields of rec that do not match a.
func entityDiff(rec snapshot.EntityRecord, a Assertion) []string {
	var diff []string
	if a.Category != "" && rec.Category.String() != a.Category {
		diff = append(diff, fmt.Sprintf("category %s", rec.Category))
	}
	if a.Distance != nil {
		d := rec.Distance - *a.Distance
		if d > distanceTolerance || d < -distanceTolerance {
			diff = append(diff, fmt.Sprintf("distance %g", rec.Distance))
		}
	}
	if a.Health != nil && (rec.Health == nil || *rec.Health != *a.Health) {
		diff = append(diff, fmt.Sprintf("health %s", formatFloatPtr(rec.Health)))
	}
	if a.Identifier != nil && (rec.Identifier == nil || *rec.Identifier != *a.Identifier) {
		diff = append(diff, fmt.Sprintf("identifier %s", formatStringPtr(rec.Identifier)))
	}
	return diff
}

func assertWorldTime(result *Result, a Assertion) error {
	if result.World == nil {
		return &AssertionError{
			Type:     AssertWorldTime,
			Expected: "a world_time row",
			Actual:   "no row",
		}
	}

	w := result.World
	var diff []string
	if a.Day != nil && w.Day != *a.Day {
		diff = append(diff, fmt.Sprintf("day %d, want %d", w.Day, *a.Day))
	}
	if a.TimeOfDay != nil && w.TimeOfDay != *a.TimeOfDay {
		diff = append(diff, fmt.Sprintf("time_of_day %d, want %d", w.TimeOfDay, *a.TimeOfDay))
	}
	if a.MoonPhase != nil && (w.MoonPhase == nil || *w.MoonPhase != *a.MoonPhase) {
		diff = append(diff, fmt.Sprintf("moon_phase %s, want %q", formatStringPtr(w.MoonPhase), *a.MoonPhase))
	}
	if a.Daytime && w.MoonPhase != nil {
		diff = append(diff, fmt.Sprintf("moon_phase %q, want NULL", *w.MoonPhase))
	}
	if len(diff) > 0 {
		return &AssertionError{
			Type:     AssertWorldTime,
			Expected: "matching world_time row",
			Actual:   strings.Join(diff, ", "),
		}
	}
	return nil
}

func formatFloatPtr(f *float64) string {
	if f == nil {
		return "NULL"
	}
	return fmt.Sprintf("%g", *f)
}

func formatStringPtr(s *string) string {
	if s == nil {
		return "NULL"
	}
	return fmt.Sprintf("%q", *s)
}
