package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goalkit-labs/goalkit/internal/console"
	"github.com/goalkit-labs/goalkit/internal/fsx"
	"github.com/goalkit-labs/goalkit/internal/git"
	"github.com/goalkit-labs/goalkit/internal/goal"
	"github.com/goalkit-labs/goalkit/internal/template"
)

var goalNewForce bool

var goalCmd = &cobra.Command{
	Use:   "goal",
	Short: "Create and inspect goals",
}

var goalNewCmd = &cobra.Command{
	Use:   "new <description>...",
	Short: "Create a numbered goal with its own branch",
	Long: `Allocate the next goal number, create .goalkit/goals/NNN-slug/goal.md
from the goal template, create and check out branch NNN-slug, and commit.

The description is slugified for the directory and branch name. Creating a
second goal with a description that slugifies to an existing goal's slug
fails unless --force is given, in which case a new number is allocated for
the duplicate slug.

Examples:
  gk goal new Improve user onboarding
  gk goal new --json "Improve user onboarding"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runGoalNew,
}

var goalListCmd = &cobra.Command{
	Use:   "list",
	Short: "List goals and their planning documents",
	Args:  cobra.NoArgs,
	RunE:  runGoalList,
}

func init() {
	goalNewCmd.Flags().BoolVar(&goalNewForce, "force", false, "Allow a duplicate description by allocating a new number")
	goalCmd.AddCommand(goalNewCmd)
	goalCmd.AddCommand(goalListCmd)
	rootCmd.AddCommand(goalCmd)
}

func runGoalNew(cmd *cobra.Command, args []string) error {
	description := strings.TrimSpace(strings.Join(args, " "))
	slug := goal.Slugify(description)
	if slug == "" {
		return fmt.Errorf("description %q produces an empty slug", description)
	}

	p, err := requireProject()
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if _, err := requireRepo(ctx, p.Root); err != nil {
		return err
	}

	existing, err := goal.FindBySlug(p.GoalsDir(), slug)
	if err != nil {
		return err
	}
	if existing != nil && !goalNewForce {
		return fmt.Errorf("goal %s already exists for this description (use --force to add another)", existing.Name())
	}

	if jsonOut {
		// JSON mode computes paths only and never mutates.
		num, err := goal.NextNumber(p.GoalsDir())
		if err != nil {
			return err
		}
		name := goal.DirName(num, slug)
		dir := filepath.Join(p.GoalsDir(), name)
		return emitJSON(map[string]string{
			"GOAL_NUM":    goal.FormatNumber(num),
			"GOAL_DIR":    dir,
			"GOAL_FILE":   filepath.Join(dir, goal.DocGoal),
			"BRANCH_NAME": name,
		})
	}

	return withProjectLock(p, "goal new", func() error {
		num, err := goal.NextNumber(p.GoalsDir())
		if err != nil {
			return err
		}
		g := &goal.Goal{Number: num, Slug: slug}
		g.Dir = filepath.Join(p.GoalsDir(), g.Name())
		goalFile := filepath.Join(g.Dir, goal.DocGoal)

		if dryRun {
			console.DryRunf("would create %s", p.Rel(goalFile))
			console.DryRunf("would create and check out branch %s", g.Branch())
			console.DryRunf("would commit the new goal")
			return nil
		}

		content, err := template.RenderNamed(p.TemplatesDir(), "goal", goalTokens(p, g, description))
		if err != nil {
			return err
		}
		if err := fsx.WriteFileAtomic(goalFile, content, 0644); err != nil {
			return err
		}

		repo := git.NewRepo(gitRunner, p.Root)
		if err := repo.CreateBranch(ctx, g.Branch()); err != nil {
			return err
		}
		if err := commitPaths(ctx, p, fmt.Sprintf("Add goal %s: %s", goal.FormatNumber(num), description), p.Rel(goalFile)); err != nil {
			return err
		}

		console.Okf("created goal %s on branch %s", g.Name(), g.Branch())
		fmt.Printf("  %s\n", p.Rel(goalFile))
		return nil
	})
}

func runGoalList(cmd *cobra.Command, args []string) error {
	p, err := requireProject()
	if err != nil {
		return err
	}
	goals, err := goal.List(p.GoalsDir())
	if err != nil {
		return err
	}

	if jsonOut {
		type entry struct {
			Num    string   `json:"GOAL_NUM"`
			Slug   string   `json:"SLUG"`
			Title  string   `json:"TITLE"`
			Dir    string   `json:"GOAL_DIR"`
			Docs   []string `json:"DOCS"`
			Branch string   `json:"BRANCH_NAME"`
		}
		entries := make([]entry, 0, len(goals))
		for _, g := range goals {
			entries = append(entries, entry{
				Num:    goal.FormatNumber(g.Number),
				Slug:   g.Slug,
				Title:  g.Title,
				Dir:    g.Dir,
				Docs:   presentDocs(g),
				Branch: g.Branch(),
			})
		}
		return emitJSON(map[string]interface{}{"GOALS": entries})
	}

	if len(goals) == 0 {
		fmt.Println("No goals yet. Create one with: gk goal new <description>")
		return nil
	}
	for _, g := range goals {
		title := g.Title
		if title == "" {
			title = console.Faint.Render("(no goal.md)")
		}
		fmt.Printf("%s  %s\n", console.Accent.Render(g.Name()), title)
		if docs := presentDocs(g); len(docs) > 0 {
			fmt.Printf("     %s\n", console.Faint.Render(strings.Join(docs, ", ")))
		}
	}
	return nil
}

// presentDocs returns the planning documents present for a goal, in
// workflow order, goal.md included.
func presentDocs(g *goal.Goal) []string {
	var docs []string
	for _, name := range append([]string{goal.DocGoal}, goal.PlanningDocs...) {
		if g.Docs[name] {
			docs = append(docs, name)
		}
	}
	return docs
}
