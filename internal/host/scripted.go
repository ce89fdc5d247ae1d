package host

import (
	"bytes"
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/mmfb/entitylogger/internal/geometry"
)

// Script is a recorded sequence of host frames.
type Script struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`

	// StartTicks is the world tick counter at the first frame.
	StartTicks int64 `yaml:"start_ticks"`

	// Reference is the id of the reference entity in every frame.
	Reference string `yaml:"reference,omitempty"`

	Frames []Frame `yaml:"frames"`
}

// Frame is the host state held for a number of ticks.
type Frame struct {
	// Ticks is how many host ticks the frame lasts. Zero means one.
	Ticks int `yaml:"ticks,omitempty"`

	// Unloaded simulates the client sitting in a menu with no world.
	Unloaded bool `yaml:"unloaded,omitempty"`

	Entities []ScriptedEntity `yaml:"entities"`
}

// ScriptedEntity is a recorded entity. It implements Entity.
type ScriptedEntity struct {
	EntityName string          `yaml:"name"`
	Pos        geometry.Point3 `yaml:"pos"`
	EntityID   *string         `yaml:"id,omitempty"`
	HP         *float64        `yaml:"health,omitempty"`
	Type       string          `yaml:"kind,omitempty"`
}

var _ Entity = ScriptedEntity{}

func (e ScriptedEntity) Name() string              { return e.EntityName }
func (e ScriptedEntity) Position() geometry.Point3 { return e.Pos }

func (e ScriptedEntity) ID() (string, bool) {
	if e.EntityID == nil {
		return "", false
	}
	return *e.EntityID, true
}

func (e ScriptedEntity) Health() (float64, bool) {
	if e.HP == nil {
		return 0, false
	}
	return *e.HP, true
}

func (e ScriptedEntity) Kind() Kind {
	switch e.Type {
	case "monster":
		return KindMonster
	case "player":
		return KindPlayer
	default:
		return KindOther
	}
}

// LoadScript reads a YAML script file.
func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return ParseScript(data)
}

// ParseScript decodes and validates a YAML script.
// Unknown fields are rejected so typos in recorded frames surface early.
func ParseScript(data []byte) (*Script, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var s Script
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if err := s.validate(); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	return &s, nil
}

func (s *Script) validate() error {
	if len(s.Frames) == 0 {
		return fmt.Errorf("script %q has no frames", s.Name)
	}
	if s.StartTicks < 0 {
		return fmt.Errorf("start_ticks must not be negative, got %d", s.StartTicks)
	}
	for i, f := range s.Frames {
		if f.Ticks < 0 {
			return fmt.Errorf("frame %d: ticks must not be negative", i)
		}
		for j, e := range f.Entities {
			switch e.Type {
			case "", "other", "monster", "player":
			default:
				return fmt.Errorf("frame %d entity %d: unknown kind %q", i, j, e.Type)
			}
		}
	}
	return nil
}

// TotalTicks is the number of host ticks the script covers.
func (s *Script) TotalTicks() int {
	total := 0
	for _, f := range s.Frames {
		total += max(f.Ticks, 1)
	}
	return total
}

// ScriptedWorld plays a Script back one host tick at a time.
// It is not safe for concurrent use; the tick loop owns it.
type ScriptedWorld struct {
	script *Script
	frame  int
	held   int // ticks spent in the current frame
	ticks  int64
}

var _ World = (*ScriptedWorld)(nil)

// NewScriptedWorld positions a world at the first frame of s.
func NewScriptedWorld(s *Script) *ScriptedWorld {
	return &ScriptedWorld{script: s, ticks: s.StartTicks}
}

// Snapshot returns the current frame. Entities are copied so the caller
// never observes a later Advance.
func (w *ScriptedWorld) Snapshot() (Snapshot, bool) {
	if w.Done() {
		return Snapshot{}, false
	}
	f := w.script.Frames[w.frame]
	if f.Unloaded {
		return Snapshot{}, false
	}

	entities := make([]Entity, len(f.Entities))
	for i, e := range f.Entities {
		entities[i] = e
	}
	return Snapshot{
		Entities:      slices.Values(entities),
		ReferenceID:   w.script.Reference,
		HasReference:  w.script.Reference != "",
		RawWorldTicks: w.ticks,
	}, true
}

// Advance moves the world forward by one host tick.
// The world clock only runs while a world is loaded.
func (w *ScriptedWorld) Advance() {
	if w.Done() {
		return
	}
	f := w.script.Frames[w.frame]
	if !f.Unloaded {
		w.ticks++
	}
	w.held++
	if w.held >= max(f.Ticks, 1) {
		w.frame++
		w.held = 0
	}
}

// Done reports whether every frame has been played.
func (w *ScriptedWorld) Done() bool {
	return w.frame >= len(w.script.Frames)
}

// WorldTicks returns the current raw world tick counter.
func (w *ScriptedWorld) WorldTicks() int64 {
	return w.ticks
}
