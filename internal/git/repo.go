package git

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
)

// Repo performs git operations rooted at a working directory.
type Repo struct {
	runner Runner
	dir    string
}

// NewRepo returns a Repo that runs git commands in dir through r.
func NewRepo(r Runner, dir string) *Repo {
	return &Repo{runner: r, dir: dir}
}

// Root returns the absolute path to the repository toplevel, or an error
// when dir is not inside a git work tree.
func (g *Repo) Root(ctx context.Context) (string, error) {
	res, err := g.runner.Run(ctx, g.dir, "git", "rev-parse", "--show-toplevel")
	if err != nil {
		return "", fmt.Errorf("run git rev-parse: %w", err)
	}
	if res.ExitCode != 0 {
		return "", fmt.Errorf("not inside a git repository")
	}
	out := strings.TrimSpace(res.Stdout)
	if out == "" || strings.Contains(out, "\n") {
		return "", fmt.Errorf("unexpected git rev-parse output %q", out)
	}
	abs, err := filepath.Abs(out)
	if err != nil {
		return "", fmt.Errorf("resolve repo root: %w", err)
	}
	return abs, nil
}

// CurrentBranch returns the abbreviated name of the checked-out branch.
// Returns "HEAD" in a detached state, matching git's own output.
func (g *Repo) CurrentBranch(ctx context.Context) (string, error) {
	res, err := g.runner.Run(ctx, g.dir, "git", "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", fmt.Errorf("run git rev-parse: %w", err)
	}
	if res.ExitCode != 0 {
		return "", fmt.Errorf("read current branch: %s", strings.TrimSpace(res.Stderr))
	}
	return strings.TrimSpace(res.Stdout), nil
}

// BranchExists reports whether a local branch with the given name exists.
func (g *Repo) BranchExists(ctx context.Context, name string) (bool, error) {
	res, err := g.runner.Run(ctx, g.dir, "git", "show-ref", "--verify", "refs/heads/"+name)
	if err != nil {
		return false, fmt.Errorf("run git show-ref: %w", err)
	}
	return res.ExitCode == 0, nil
}

// CreateBranch creates and checks out a new branch.
func (g *Repo) CreateBranch(ctx context.Context, name string) error {
	res, err := g.runner.Run(ctx, g.dir, "git", "checkout", "-b", name)
	if err != nil {
		return fmt.Errorf("run git checkout: %w", err)
	}
	if res.ExitCode != 0 {
		return fmt.Errorf("create branch %s: %s", name, strings.TrimSpace(res.Stderr))
	}
	return nil
}

// Add stages the given paths.
func (g *Repo) Add(ctx context.Context, paths ...string) error {
	args := append([]string{"add", "--"}, paths...)
	res, err := g.runner.Run(ctx, g.dir, "git", args...)
	if err != nil {
		return fmt.Errorf("run git add: %w", err)
	}
	if res.ExitCode != 0 {
		return fmt.Errorf("stage files: %s", strings.TrimSpace(res.Stderr))
	}
	return nil
}

// Commit records staged changes with the given message.
func (g *Repo) Commit(ctx context.Context, message string) error {
	res, err := g.runner.Run(ctx, g.dir, "git", "commit", "-m", message)
	if err != nil {
		return fmt.Errorf("run git commit: %w", err)
	}
	if res.ExitCode != 0 {
		return fmt.Errorf("commit: %s", strings.TrimSpace(res.Stderr))
	}
	return nil
}

// Init initializes a new repository in the Repo's directory.
func (g *Repo) Init(ctx context.Context) error {
	res, err := g.runner.Run(ctx, g.dir, "git", "init")
	if err != nil {
		return fmt.Errorf("run git init: %w", err)
	}
	if res.ExitCode != 0 {
		return fmt.Errorf("git init: %s", strings.TrimSpace(res.Stderr))
	}
	return nil
}

// Installed reports whether the git binary can be executed at all.
func Installed(ctx context.Context, r Runner) bool {
	res, err := r.Run(ctx, "", "git", "--version")
	return err == nil && res.ExitCode == 0
}
