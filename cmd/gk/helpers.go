package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/goalkit-labs/goalkit/internal/console"
	"github.com/goalkit-labs/goalkit/internal/git"
	"github.com/goalkit-labs/goalkit/internal/goal"
	"github.com/goalkit-labs/goalkit/internal/lock"
	"github.com/goalkit-labs/goalkit/internal/project"
	"github.com/goalkit-labs/goalkit/internal/template"
)

// gitRunner is swapped for a stub in tests.
var gitRunner git.Runner = git.NewRunner()

// stdin is the confirmation prompt source, swappable in tests.
var stdin io.Reader = os.Stdin

// requireProject locates the project from the working directory.
func requireProject() (*project.Project, error) {
	cwd, err := project.Cwd()
	if err != nil {
		return nil, err
	}
	return project.Find(cwd)
}

// requireRepo verifies the project root is inside a git work tree and
// returns the repo handle.
func requireRepo(ctx context.Context, dir string) (*git.Repo, error) {
	repo := git.NewRepo(gitRunner, dir)
	if _, err := repo.Root(ctx); err != nil {
		return nil, err
	}
	return repo, nil
}

// resolveGoal finds the goal addressed by ref, or falls back to the goal
// matching the current branch when ref is empty.
func resolveGoal(ctx context.Context, p *project.Project, ref string) (*goal.Goal, error) {
	if ref != "" {
		return goal.Find(p.GoalsDir(), ref)
	}

	repo := git.NewRepo(gitRunner, p.Root)
	branch, err := repo.CurrentBranch(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolve current goal: %w (use --goal)", err)
	}
	g, err := goal.FromBranch(p.GoalsDir(), branch)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, fmt.Errorf("branch %q is not a goal branch; use --goal to name one", branch)
	}
	return g, nil
}

// emitJSON writes a single-line JSON object to stdout. This is the
// orchestrator contract: one line, stable uppercase keys.
func emitJSON(payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal JSON output: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

// confirmOverwrite prompts for y/N confirmation before clobbering path.
// Returns true when the write may proceed. A decline is not an error:
// callers should report the skip and return nil.
func confirmOverwrite(path string, force bool) (bool, error) {
	if force {
		return true, nil
	}
	fmt.Fprintf(os.Stderr, "%s already exists. Overwrite? [y/N] ", path)
	reader := bufio.NewReader(stdin)
	line, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("read confirmation: %w", err)
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}

// goalTokens builds the standard substitution set for a goal's documents.
func goalTokens(p *project.Project, g *goal.Goal, description string) template.Tokens {
	return template.Tokens{
		"DATE":             time.Now().Format("2006-01-02"),
		"PROJECT NAME":     p.Name(),
		"GOAL NUMBER":      goal.FormatNumber(g.Number),
		"GOAL DESCRIPTION": description,
		"BRANCH NAME":      g.Branch(),
	}
}

// withProjectLock runs fn while holding the project's advisory lock.
func withProjectLock(p *project.Project, cmd string, fn func() error) error {
	unlock, err := lock.New(p.GoalKitDir()).Acquire(cmd)
	if err != nil {
		return err
	}
	defer func() {
		if uerr := unlock(); uerr != nil {
			console.Warnf("release project lock: %v", uerr)
		}
	}()
	return fn()
}

// commitPaths stages and commits paths unless committing is disabled by
// config. Paths are given relative to the project root.
func commitPaths(ctx context.Context, p *project.Project, message string, paths ...string) error {
	if !p.Config.GitCommit {
		console.Debugf("git.commit disabled; skipping commit")
		return nil
	}
	repo := git.NewRepo(gitRunner, p.Root)
	if err := repo.Add(ctx, paths...); err != nil {
		return err
	}
	if err := repo.Commit(ctx, message); err != nil {
		return err
	}
	return nil
}
