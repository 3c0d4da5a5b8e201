// Package goal models numbered goal directories and the planning documents
// inside them.
package goal

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// Well-known planning document file names inside a goal directory.
const (
	DocGoal       = "goal.md"
	DocStrategies = "strategies.md"
	DocMilestones = "milestones.md"
	DocExecution  = "execution.md"
	DocRisks      = "risk-register.md"
)

// PlanningDocs lists the documents scaffolded after goal.md, in the order
// the workflow produces them.
var PlanningDocs = []string{DocStrategies, DocMilestones, DocExecution, DocRisks}

// Goal is one numbered goal directory.
type Goal struct {
	Number int
	Slug   string
	Dir    string // absolute path
	Title  string // first heading of goal.md, empty if unreadable
	Docs   map[string]bool
}

// Name returns the directory name "NNN-slug".
func (g *Goal) Name() string {
	return DirName(g.Number, g.Slug)
}

// Branch returns the git branch name for the goal, which matches its
// directory name.
func (g *Goal) Branch() string {
	return g.Name()
}

// List enumerates goal directories under goalsRoot sorted by number.
// A missing root yields an empty list, not an error.
func List(goalsRoot string) ([]*Goal, error) {
	entries, err := os.ReadDir(goalsRoot)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read goals directory %s: %w", goalsRoot, err)
	}

	var goals []*Goal
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		g, ok := parseDirName(e.Name())
		if !ok {
			continue
		}
		g.Dir = filepath.Join(goalsRoot, e.Name())
		g.Title = readTitle(filepath.Join(g.Dir, DocGoal))
		g.Docs = docPresence(g.Dir)
		goals = append(goals, g)
	}

	sort.Slice(goals, func(i, j int) bool { return goals[i].Number < goals[j].Number })
	return goals, nil
}

// Find resolves a goal by reference: a bare number ("3", "003"), a slug,
// or a full directory name ("003-improve-onboarding").
func Find(goalsRoot, ref string) (*Goal, error) {
	goals, err := List(goalsRoot)
	if err != nil {
		return nil, err
	}

	if n, err := strconv.Atoi(ref); err == nil {
		for _, g := range goals {
			if g.Number == n {
				return g, nil
			}
		}
		return nil, fmt.Errorf("no goal numbered %d", n)
	}

	for _, g := range goals {
		if g.Slug == ref || g.Name() == ref {
			return g, nil
		}
	}
	return nil, fmt.Errorf("no goal matching %q", ref)
}

// FindBySlug returns the goal whose slug equals slug, or nil.
func FindBySlug(goalsRoot, slug string) (*Goal, error) {
	goals, err := List(goalsRoot)
	if err != nil {
		return nil, err
	}
	for _, g := range goals {
		if g.Slug == slug {
			return g, nil
		}
	}
	return nil, nil
}

// FromBranch resolves the goal matching a git branch named "NNN-slug".
// Returns nil without error when the branch does not follow the pattern
// or no such goal directory exists.
func FromBranch(goalsRoot, branch string) (*Goal, error) {
	parsed, ok := parseDirName(branch)
	if !ok {
		return nil, nil
	}
	goals, err := List(goalsRoot)
	if err != nil {
		return nil, err
	}
	for _, g := range goals {
		if g.Number == parsed.Number && g.Slug == parsed.Slug {
			return g, nil
		}
	}
	return nil, nil
}

// parseDirName splits "NNN-slug" into number and slug.
func parseDirName(name string) (*Goal, bool) {
	m := numberedDirRe.FindStringSubmatch(name)
	if m == nil {
		return nil, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return nil, false
	}
	slug := strings.TrimPrefix(name, m[0])
	if slug == "" {
		return nil, false
	}
	return &Goal{Number: n, Slug: slug}, true
}

// docPresence reports which planning documents exist in dir.
func docPresence(dir string) map[string]bool {
	docs := make(map[string]bool, len(PlanningDocs)+1)
	for _, name := range append([]string{DocGoal}, PlanningDocs...) {
		_, err := os.Stat(filepath.Join(dir, name))
		docs[name] = err == nil
	}
	return docs
}

// readTitle returns the text of the first markdown heading in path.
func readTitle(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, "#") {
			return strings.TrimSpace(strings.TrimLeft(line, "#"))
		}
	}
	return ""
}
