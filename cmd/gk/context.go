package main

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/goalkit-labs/goalkit/internal/agentfile"
	"github.com/goalkit-labs/goalkit/internal/console"
	"github.com/goalkit-labs/goalkit/internal/git"
	"github.com/goalkit-labs/goalkit/internal/goal"
	"github.com/goalkit-labs/goalkit/internal/persona"
	"github.com/goalkit-labs/goalkit/internal/project"
)

// recentGoalLimit bounds how many goals the generated context lists.
const recentGoalLimit = 5

var contextAgents []string

var contextCmd = &cobra.Command{
	Use:   "context",
	Short: "Maintain agent context files",
	Long: `Agent context files (CLAUDE.md, AGENTS.md, .cursor/context.md, ...) are
regenerated wholesale from project state: current branch, goal count,
recent goals, and the selected persona. Never edit them by hand.`,
}

var contextUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Regenerate agent context files from project state",
	Args:  cobra.NoArgs,
	RunE:  runContextUpdate,
}

var contextListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the agent registry and per-file freshness",
	Args:  cobra.NoArgs,
	RunE:  runContextList,
}

func init() {
	contextUpdateCmd.Flags().StringSliceVar(&contextAgents, "agent", nil, "Restrict to the named agents (repeatable)")
	contextCmd.AddCommand(contextUpdateCmd)
	contextCmd.AddCommand(contextListCmd)
	rootCmd.AddCommand(contextCmd)
}

func runContextUpdate(cmd *cobra.Command, args []string) error {
	p, err := requireProject()
	if err != nil {
		return err
	}

	names := contextAgents
	if len(names) == 0 {
		names = p.Config.ContextAgents
	}
	agents, err := agentfile.Select(names)
	if err != nil {
		return err
	}

	if jsonOut {
		paths := make([]string, len(agents))
		for i, a := range agents {
			paths[i] = filepath.Join(p.Root, a.Path)
		}
		return emitJSON(map[string]interface{}{"CONTEXT_FILES": paths})
	}

	st, err := gatherState(cmd.Context(), p)
	if err != nil {
		return err
	}

	results := agentfile.Update(p.Root, agents, st, dryRun)
	var failed int
	for _, r := range results {
		switch {
		case r.Err != nil:
			console.Errorf("%s: %v", r.Agent.Name, r.Err)
			failed++
		case dryRun:
			console.DryRunf("would regenerate %s", r.Agent.Path)
		default:
			console.Okf("regenerated %s", r.Agent.Path)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d context files failed", failed, len(results))
	}
	return nil
}

func runContextList(cmd *cobra.Command, args []string) error {
	p, err := requireProject()
	if err != nil {
		return err
	}

	if jsonOut {
		type entry struct {
			Name    string `json:"AGENT"`
			Path    string `json:"PATH"`
			Exists  bool   `json:"EXISTS"`
			ModTime string `json:"MODIFIED,omitempty"`
		}
		entries := make([]entry, 0, len(agentfile.Registry))
		for _, a := range agentfile.Registry {
			e := entry{Name: a.Name, Path: filepath.Join(p.Root, a.Path)}
			if mtime, ok := agentfile.Freshness(p.Root, a); ok {
				e.Exists = true
				e.ModTime = mtime.Format(time.RFC3339)
			}
			entries = append(entries, e)
		}
		return emitJSON(map[string]interface{}{"AGENTS": entries})
	}

	for _, a := range agentfile.Registry {
		if mtime, ok := agentfile.Freshness(p.Root, a); ok {
			fmt.Printf("%-10s %s  %s\n", a.Name, a.Path, console.Faint.Render("updated "+mtime.Format("2006-01-02 15:04")))
		} else {
			fmt.Printf("%-10s %s  %s\n", a.Name, a.Path, console.Faint.Render("missing"))
		}
	}
	return nil
}

// gatherState snapshots the project for context generation and status.
func gatherState(ctx context.Context, p *project.Project) (agentfile.State, error) {
	st := agentfile.State{
		ProjectName: p.Name(),
		GeneratedAt: time.Now(),
	}

	// Branch is best-effort: context files still regenerate outside git.
	repo := git.NewRepo(gitRunner, p.Root)
	if branch, err := repo.CurrentBranch(ctx); err == nil {
		st.Branch = branch
	} else {
		console.Debugf("no current branch: %v", err)
		st.Branch = "(none)"
	}

	goals, err := goal.List(p.GoalsDir())
	if err != nil {
		return st, err
	}
	st.GoalCount = len(goals)
	if g, err := goal.FromBranch(p.GoalsDir(), st.Branch); err == nil && g != nil {
		st.CurrentGoal = g.Name()
	}

	start := 0
	if len(goals) > recentGoalLimit {
		start = len(goals) - recentGoalLimit
	}
	for _, g := range goals[start:] {
		st.RecentGoals = append(st.RecentGoals, agentfile.GoalSummary{
			Name:  g.Name(),
			Title: g.Title,
			Docs:  presentDocs(g),
		})
	}

	current, err := persona.NewStore(p.GoalKitDir()).Current()
	if err != nil {
		return st, err
	}
	st.Persona = current
	return st, nil
}
