package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mmfb/entitylogger/internal/host"
	"github.com/mmfb/entitylogger/internal/snapshot"
)

// Scenario defines one scripted run and the state expected afterwards.
type Scenario struct {
	// Name uniquely identifies this scenario. It also names the golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Cadence is the number of loaded ticks between cycles.
	// Zero uses the engine default.
	Cadence int `yaml:"cadence,omitempty"`

	// CycleID is the fixed cycle id used for every cycle.
	// If empty, defaults to "test-cycle".
	CycleID string `yaml:"cycle_id,omitempty"`

	// World is the host script to play.
	World *host.Script `yaml:"-"`

	// Assertions validate the persisted state after the run.
	Assertions []Assertion `yaml:"assertions"`
}

// scenarioFile is the on-disk shape. The world is kept as a raw node so it
// can be validated by the host script parser.
type scenarioFile struct {
	Name        string      `yaml:"name"`
	Description string      `yaml:"description"`
	Cadence     int         `yaml:"cadence,omitempty"`
	CycleID     string      `yaml:"cycle_id,omitempty"`
	World       yaml.Node   `yaml:"world"`
	Assertions  []Assertion `yaml:"assertions"`
}

// Assertion validates the final state.
type Assertion struct {
	// Type specifies the assertion type:
	// - "cycles": number of cycles attempted (and optionally failed)
	// - "entity_count": number of persisted rows, optionally per category
	// - "entity": a row with Name exists and matches the given fields
	// - "world_time": the world_time row matches the given fields
	Type string `yaml:"type"`

	// Count is used by cycles and entity_count.
	Count int `yaml:"count,omitempty"`

	// Failed is the expected number of rolled back cycles (cycles).
	Failed int `yaml:"failed,omitempty"`

	// Category filters entity_count and checks entity ("MONSTER" or "PLAYER").
	Category string `yaml:"category,omitempty"`

	// Name selects the row for entity.
	Name string `yaml:"name,omitempty"`

	// Distance, Health and Identifier are checked by entity when set.
	Distance   *float64 `yaml:"distance,omitempty"`
	Health     *float64 `yaml:"health,omitempty"`
	Identifier *string  `yaml:"identifier,omitempty"`

	// Day, TimeOfDay and MoonPhase are checked by world_time when set.
	// Daytime asserts that moon_phase is NULL.
	Day       *int64  `yaml:"day,omitempty"`
	TimeOfDay *int64  `yaml:"time_of_day,omitempty"`
	MoonPhase *string `yaml:"moon_phase,omitempty"`
	Daytime   bool    `yaml:"daytime,omitempty"`
}

// Assertion type constants.
const (
	AssertCycles      = "cycles"
	AssertEntityCount = "entity_count"
	AssertEntity      = "entity"
	AssertWorldTime   = "world_time"
)

// LoadScenario reads and parses a scenario YAML file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses scenario YAML. Unknown fields are rejected, in the
// scenario and in its world script.
func ParseScenario(data []byte) (*Scenario, error) {
	var file scenarioFile
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&file); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if file.World.Kind == 0 {
		return nil, fmt.Errorf("invalid scenario: world is required")
	}
	raw, err := yaml.Marshal(&file.World)
	if err != nil {
		return nil, fmt.Errorf("failed to re-encode world: %w", err)
	}
	script, err := host.ParseScript(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid scenario: world: %w", err)
	}
	if script.Name == "" {
		script.Name = file.Name
	}

	scenario := &Scenario{
		Name:        file.Name,
		Description: file.Description,
		Cadence:     file.Cadence,
		CycleID:     file.CycleID,
		World:       script,
		Assertions:  file.Assertions,
	}
	if err := validateScenario(scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if s.World == nil {
		return fmt.Errorf("world is required")
	}
	if s.Cadence < 0 {
		return fmt.Errorf("cadence must be non-negative")
	}
	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}
	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}
	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}
	if a.Category != "" {
		if c, ok := snapshot.ParseCategory(a.Category); !ok || !c.Persisted() {
			return fmt.Errorf("assertions[%d]: category must be MONSTER or PLAYER, got %q", index, a.Category)
		}
	}

	switch a.Type {
	case AssertCycles:
		if a.Count < 0 || a.Failed < 0 {
			return fmt.Errorf("assertions[%d]: counts must be non-negative for cycles", index)
		}
	case AssertEntityCount:
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for entity_count", index)
		}
	case AssertEntity:
		if a.Name == "" {
			return fmt.Errorf("assertions[%d]: name is required for entity", index)
		}
	case AssertWorldTime:
		if a.Daytime && a.MoonPhase != nil {
			return fmt.Errorf("assertions[%d]: daytime and moon_phase are mutually exclusive", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}
	return nil
}
