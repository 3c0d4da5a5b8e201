package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goalkit-labs/goalkit/internal/agentfile"
	"github.com/goalkit-labs/goalkit/internal/console"
	"github.com/goalkit-labs/goalkit/internal/project"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show project status",
	Long: `Display the current state of the Goal Kit project: branch, goal count,
active goal, persona, and agent context file freshness.

Examples:
  gk status
  gk status --json`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

type statusOutput struct {
	Initialized  bool     `json:"INITIALIZED"`
	Root         string   `json:"PROJECT_ROOT,omitempty"`
	Branch       string   `json:"BRANCH_NAME,omitempty"`
	GoalCount    int      `json:"GOAL_COUNT"`
	CurrentGoal  string   `json:"CURRENT_GOAL,omitempty"`
	Persona      string   `json:"PERSONA,omitempty"`
	ContextFresh []string `json:"CONTEXT_PRESENT,omitempty"`
	ContextStale []string `json:"CONTEXT_MISSING,omitempty"`
	RecentGoals  []string `json:"RECENT_GOALS,omitempty"`
}

func runStatus(cmd *cobra.Command, args []string) error {
	cwd, err := project.Cwd()
	if err != nil {
		return err
	}
	p, err := project.Find(cwd)
	if err != nil {
		if jsonOut {
			return emitJSON(statusOutput{Initialized: false})
		}
		fmt.Println("Not a Goal Kit project. Run: gk init")
		return nil
	}

	st, err := gatherState(cmd.Context(), p)
	if err != nil {
		return err
	}

	out := statusOutput{
		Initialized: true,
		Root:        p.Root,
		Branch:      st.Branch,
		GoalCount:   st.GoalCount,
		CurrentGoal: st.CurrentGoal,
		Persona:     st.Persona.Name,
	}
	for _, a := range agentfile.Registry {
		if _, ok := agentfile.Freshness(p.Root, a); ok {
			out.ContextFresh = append(out.ContextFresh, a.Name)
		} else {
			out.ContextStale = append(out.ContextStale, a.Name)
		}
	}
	for _, g := range st.RecentGoals {
		out.RecentGoals = append(out.RecentGoals, g.Name)
	}

	if jsonOut {
		return emitJSON(out)
	}

	fmt.Printf("Project:  %s\n", console.Accent.Render(p.Name()))
	fmt.Printf("Root:     %s\n", p.Root)
	fmt.Printf("Branch:   %s\n", st.Branch)
	fmt.Printf("Goals:    %d\n", st.GoalCount)
	if st.CurrentGoal != "" {
		fmt.Printf("Active:   %s\n", st.CurrentGoal)
	}
	fmt.Printf("Persona:  %s\n", st.Persona.Name)
	if len(out.ContextStale) > 0 {
		fmt.Printf("Context:  %d of %d files present %s\n", len(out.ContextFresh), len(agentfile.Registry),
			console.Faint.Render("(run gk context update)"))
	} else {
		fmt.Printf("Context:  all %d files present\n", len(agentfile.Registry))
	}
	if len(st.RecentGoals) > 0 {
		fmt.Println("\nRecent goals:")
		for _, g := range st.RecentGoals {
			title := g.Title
			if title == "" {
				title = g.Name
			}
			fmt.Printf("  %s  %s\n", g.Name, console.Faint.Render(title))
		}
	}
	return nil
}
