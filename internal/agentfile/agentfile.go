// Package agentfile regenerates the context files consumed by AI coding
// assistants. Each file is a well-known path at the repo root, overwritten
// wholesale from current project state on every update.
package agentfile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/goalkit-labs/goalkit/internal/fsx"
	"github.com/goalkit-labs/goalkit/internal/persona"
	"github.com/goalkit-labs/goalkit/internal/worker"
)

// Agent is one registered context file target.
type Agent struct {
	Name string // short name used by --agent and config
	Path string // path relative to the project root
}

// Registry is the fixed set of agent context files gk maintains.
var Registry = []Agent{
	{Name: "claude", Path: "CLAUDE.md"},
	{Name: "agents", Path: "AGENTS.md"},
	{Name: "gemini", Path: "GEMINI.md"},
	{Name: "qwen", Path: "QWEN.md"},
	{Name: "cursor", Path: filepath.Join(".cursor", "context.md")},
	{Name: "copilot", Path: filepath.Join(".github", "copilot-instructions.md")},
	{Name: "windsurf", Path: filepath.Join(".windsurf", "rules", "goalkit.md")},
}

// Select filters the registry by agent names. An empty list selects all.
func Select(names []string) ([]Agent, error) {
	if len(names) == 0 {
		return Registry, nil
	}
	byName := make(map[string]Agent, len(Registry))
	for _, a := range Registry {
		byName[a.Name] = a
	}
	var agents []Agent
	for _, name := range names {
		a, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("unknown agent %q (valid: %s)", name, strings.Join(AgentNames(), ", "))
		}
		agents = append(agents, a)
	}
	return agents, nil
}

// AgentNames returns the registered agent names in registry order.
func AgentNames() []string {
	names := make([]string, len(Registry))
	for i, a := range Registry {
		names[i] = a.Name
	}
	return names
}

// GoalSummary is one goal line in the generated context.
type GoalSummary struct {
	Name  string // "003-improve-onboarding"
	Title string
	Docs  []string // planning docs present
}

// State is the project snapshot a context file is generated from.
type State struct {
	ProjectName string
	Branch      string
	GoalCount   int
	CurrentGoal string // directory name of the active goal, empty if none
	RecentGoals []GoalSummary
	Persona     persona.Persona
	GeneratedAt time.Time
}

// Render produces the full context file content for one agent. The whole
// file is regenerated; nothing from a previous version survives.
func Render(a Agent, st State) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s — Goal Kit project context\n\n", st.ProjectName)
	fmt.Fprintf(&b, "Generated by gk on %s. Do not edit by hand; run `gk context update`.\n\n", st.GeneratedAt.Format("2006-01-02"))

	b.WriteString("## Current state\n\n")
	fmt.Fprintf(&b, "- Branch: `%s`\n", st.Branch)
	fmt.Fprintf(&b, "- Goals: %d\n", st.GoalCount)
	if st.CurrentGoal != "" {
		fmt.Fprintf(&b, "- Active goal: `%s`\n", st.CurrentGoal)
	} else {
		b.WriteString("- Active goal: none (not on a goal branch)\n")
	}
	fmt.Fprintf(&b, "- Persona: %s\n\n", st.Persona.Name)

	if len(st.RecentGoals) > 0 {
		b.WriteString("## Recent goals\n\n")
		for _, g := range st.RecentGoals {
			title := g.Title
			if title == "" {
				title = g.Name
			}
			fmt.Fprintf(&b, "- `%s` — %s", g.Name, title)
			if len(g.Docs) > 0 {
				fmt.Fprintf(&b, " (%s)", strings.Join(g.Docs, ", "))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString("## Working style\n\n")
	b.WriteString(st.Persona.ContextText)
	b.WriteString("\n\n")

	b.WriteString("## Workflow\n\n")
	b.WriteString("Goals live under `.goalkit/goals/NNN-slug/`. Each goal gets its own\n")
	b.WriteString("branch named after its directory. Scaffold planning documents in order:\n")
	b.WriteString("`gk goal new`, `gk strategies`, `gk milestones`, `gk execution`.\n")
	b.WriteString("Check prerequisites with `gk check` before execution work.\n")

	return b.String()
}

// UpdateResult reports the outcome for one agent file.
type UpdateResult struct {
	Agent   Agent
	Path    string // absolute path written
	Written bool
	Err     error
}

// Update regenerates the given agents' context files under root, fanning
// out across a worker pool. With dryRun set, no file is written and each
// result reports Written=false.
func Update(root string, agents []Agent, st State, dryRun bool) []UpdateResult {
	pool := worker.NewPool[Agent, UpdateResult](0)
	results := pool.Process(agents, func(a Agent) (UpdateResult, error) {
		path := filepath.Join(root, a.Path)
		res := UpdateResult{Agent: a, Path: path}
		if dryRun {
			return res, nil
		}
		content := Render(a, st)
		if err := fsx.WriteFileAtomic(path, []byte(content), 0644); err != nil {
			return res, fmt.Errorf("write %s: %w", a.Path, err)
		}
		res.Written = true
		return res, nil
	})

	out := make([]UpdateResult, len(results))
	for i, r := range results {
		res := r.Value
		if r.Err != nil {
			res.Err = r.Err
			if res.Agent.Name == "" {
				res.Agent = agents[i]
			}
		}
		out[i] = res
	}
	return out
}

// Freshness returns the modification time of an agent's context file under
// root, and whether the file exists at all.
func Freshness(root string, a Agent) (time.Time, bool) {
	info, err := os.Stat(filepath.Join(root, a.Path))
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}
