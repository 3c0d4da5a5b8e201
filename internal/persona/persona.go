// Package persona manages the project's selected persona: a named preset
// that only selects descriptive text inserted into generated agent context
// files.
package persona

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goalkit-labs/goalkit/internal/fsx"
)

// StateFile is the persona state file name under .goalkit/personas/.
const StateFile = "current_persona.txt"

// Default is the persona selected when none has been set.
const Default = "builder"

// Persona is one selectable preset.
type Persona struct {
	Name        string
	Byline      string
	ContextText string // inserted verbatim into agent context files
}

// registry is the built-in persona set. Persona names are the only values
// accepted in the state file.
var registry = map[string]Persona{
	"planner": {
		Name:        "planner",
		Byline:      "Strategy-first: challenges scope before writing code",
		ContextText: "Favor planning depth over speed. Question goal scope, surface tradeoffs between strategies, and insist on measurable milestones before implementation work starts.",
	},
	"builder": {
		Name:        "builder",
		Byline:      "Execution-focused: smallest change that moves the milestone",
		ContextText: "Favor working increments over exhaustive analysis. Prefer the smallest change that advances the current milestone, and keep the execution log in execution.md current.",
	},
	"reviewer": {
		Name:        "reviewer",
		Byline:      "Quality gate: risks, edge cases, and regressions first",
		ContextText: "Read the risk register before proposing changes. Call out edge cases, missing tests, and regressions; treat every milestone check as a hard gate.",
	},
	"shipper": {
		Name:        "shipper",
		Byline:      "Delivery-focused: cuts scope to hit the date",
		ContextText: "Optimize for landing the goal. Propose scope cuts when milestones slip, and route discovered-but-deferrable work into the risk register instead of the current branch.",
	},
}

// Names returns all persona names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Get looks up a persona by name.
func Get(name string) (Persona, bool) {
	p, ok := registry[name]
	return p, ok
}

// All returns every persona sorted by name.
func All() []Persona {
	var ps []Persona
	for _, name := range Names() {
		ps = append(ps, registry[name])
	}
	return ps
}

// Store reads and writes the persona state file.
type Store struct {
	dir string // .goalkit/personas
}

// NewStore returns a Store rooted at the .goalkit directory.
func NewStore(goalkitDir string) *Store {
	return &Store{dir: filepath.Join(goalkitDir, "personas")}
}

// Path returns the state file path.
func (s *Store) Path() string {
	return filepath.Join(s.dir, StateFile)
}

// Current returns the selected persona. An absent or empty state file
// yields the default; an invalid name is an error so a corrupted state
// file is caught rather than silently remapped.
func (s *Store) Current() (Persona, error) {
	data, err := os.ReadFile(s.Path())
	if os.IsNotExist(err) {
		return registry[Default], nil
	}
	if err != nil {
		return Persona{}, fmt.Errorf("read persona state: %w", err)
	}

	name := strings.TrimSpace(string(data))
	if name == "" {
		return registry[Default], nil
	}
	p, ok := registry[name]
	if !ok {
		return Persona{}, fmt.Errorf("persona state file names unknown persona %q (valid: %s)", name, strings.Join(Names(), ", "))
	}
	return p, nil
}

// Set validates and persists the selected persona atomically.
func (s *Store) Set(name string) error {
	if _, ok := registry[name]; !ok {
		return fmt.Errorf("unknown persona %q (valid: %s)", name, strings.Join(Names(), ", "))
	}
	return fsx.WriteFileAtomic(s.Path(), []byte(name+"\n"), 0644)
}
