// Package harness runs scripted worlds through the refresh engine and checks
// the persisted snapshot.
//
// Each scenario gets a fresh database, a deterministic wall clock and a fixed
// cycle id, so two runs of the same scenario leave byte-identical state.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: scenario_name
//	description: "What this scenario validates"
//	cadence: 20            # optional, loaded ticks per cycle
//	cycle_id: night-001    # optional, fixed cycle id
//	world:                 # a host script
//	  start_ticks: 12990
//	  reference: p1
//	  frames:
//	    - ticks: 20
//	      entities:
//	        - {name: Alex, id: p1, kind: player, pos: {x: 0, y: 64, z: 0}}
//	        - {name: Zombie, kind: monster, pos: {x: 3, y: 64, z: 4}}
//	assertions:
//	  - type: cycles
//	    count: 1
//	  - type: entity_count
//	    category: MONSTER
//	    count: 1
//	  - type: entity
//	    name: Zombie
//	    distance: 5
//	  - type: world_time
//	    time_of_day: 13009
//	    moon_phase: "Vollmond 8/8"
//
// # Golden Files
//
// RunWithGolden dumps the persisted tables as indented JSON and compares them
// against testdata/golden/<name>.golden. Regenerate with:
//
//	go test ./internal/harness -update
package harness
