package config

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// schemaCUE constrains a loaded Config. Field names follow the YAML keys;
// tick_interval is checked in milliseconds.
const schemaCUE = `
#Config: {
	database:         string & !=""
	cadence_ticks:    int & >=1 & <=72000
	tick_interval_ms: int & >=1 & <=60000
	log_level:        "debug" | "info" | "warn" | "error"
}
`

// Validate checks c against the CUE schema.
func (c *Config) Validate() error {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaCUE).LookupPath(cue.ParsePath("#Config"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("config schema: %w", err)
	}

	value := ctx.Encode(map[string]any{
		"database":         c.Database,
		"cadence_ticks":    c.CadenceTicks,
		"tick_interval_ms": c.TickInterval.Milliseconds(),
		"log_level":        c.LogLevel,
	})

	if err := schema.Unify(value).Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
