package main

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestGoalNewCreatesGoal(t *testing.T) {
	tmp, fg := newTestProject(t)
	goalNewCmd.SetContext(context.Background())

	out, err := captureStdout(t, func() error {
		return runGoalNew(goalNewCmd, []string{"Improve", "user", "onboarding"})
	})
	if err != nil {
		t.Fatalf("runGoalNew: %v", err)
	}

	goalFile := filepath.Join(tmp, ".goalkit", "goals", "001-improve-user-onboarding", "goal.md")
	data, err := os.ReadFile(goalFile)
	if err != nil {
		t.Fatalf("goal.md not written: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "Improve user onboarding") {
		t.Error("goal.md missing the description")
	}
	if !strings.Contains(content, "001") {
		t.Error("goal.md missing the goal number")
	}
	if strings.Contains(content, "[GOAL") {
		t.Error("goal.md still contains unrendered tokens")
	}

	if fg.branch != "001-improve-user-onboarding" {
		t.Errorf("branch = %q, want 001-improve-user-onboarding", fg.branch)
	}
	if !fg.called("commit") {
		t.Error("expected a commit")
	}
	if !strings.Contains(out, "001-improve-user-onboarding") {
		t.Errorf("output missing goal name: %q", out)
	}
}

func TestGoalNewSequentialNumbers(t *testing.T) {
	tmp, _ := newTestProject(t)
	addGoal(t, tmp, 1, "first")
	addGoal(t, tmp, 4, "fourth") // gap: next number continues from the max
	goalNewCmd.SetContext(context.Background())

	if _, err := captureStdout(t, func() error {
		return runGoalNew(goalNewCmd, []string{"fifth", "goal"})
	}); err != nil {
		t.Fatalf("runGoalNew: %v", err)
	}
	dir := filepath.Join(tmp, ".goalkit", "goals", "005-fifth-goal")
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("expected 005-fifth-goal after 004, got: %v", err)
	}
}

func TestGoalNewJSONDoesNotMutate(t *testing.T) {
	tmp, fg := newTestProject(t)
	jsonOut = true
	goalNewCmd.SetContext(context.Background())

	out, err := captureStdout(t, func() error {
		return runGoalNew(goalNewCmd, []string{"Improve user onboarding"})
	})
	if err != nil {
		t.Fatalf("runGoalNew: %v", err)
	}

	var payload map[string]string
	if err := json.Unmarshal([]byte(strings.TrimSpace(out)), &payload); err != nil {
		t.Fatalf("output is not a JSON object: %v\n%s", err, out)
	}
	if payload["GOAL_NUM"] != "001" {
		t.Errorf("GOAL_NUM = %q, want 001", payload["GOAL_NUM"])
	}
	if payload["BRANCH_NAME"] != "001-improve-user-onboarding" {
		t.Errorf("BRANCH_NAME = %q", payload["BRANCH_NAME"])
	}
	if strings.Count(strings.TrimSpace(out), "\n") != 0 {
		t.Error("JSON output must be a single line")
	}

	entries, err := os.ReadDir(filepath.Join(tmp, ".goalkit", "goals"))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("JSON mode created %d goal dirs, want none", len(entries))
	}
	if fg.called("checkout") || fg.called("commit") {
		t.Error("JSON mode must not touch git")
	}
}

func TestGoalNewDryRunDoesNotMutate(t *testing.T) {
	tmp, fg := newTestProject(t)
	dryRun = true
	goalNewCmd.SetContext(context.Background())

	if _, err := captureStdout(t, func() error {
		return runGoalNew(goalNewCmd, []string{"dry", "run", "goal"})
	}); err != nil {
		t.Fatalf("runGoalNew: %v", err)
	}

	entries, err := os.ReadDir(filepath.Join(tmp, ".goalkit", "goals"))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Error("dry run created goal dirs")
	}
	if fg.called("checkout") || fg.called("commit") {
		t.Error("dry run must not touch git")
	}
}

func TestGoalNewDuplicateSlug(t *testing.T) {
	tmp, _ := newTestProject(t)
	addGoal(t, tmp, 1, "improve-user-onboarding")
	goalNewCmd.SetContext(context.Background())

	_, err := captureStdout(t, func() error {
		return runGoalNew(goalNewCmd, []string{"Improve", "User", "Onboarding"})
	})
	if err == nil {
		t.Fatal("expected duplicate-slug error without --force")
	}
	if !strings.Contains(err.Error(), "--force") {
		t.Errorf("error should suggest --force: %v", err)
	}

	goalNewForce = true
	if _, err := captureStdout(t, func() error {
		return runGoalNew(goalNewCmd, []string{"Improve", "User", "Onboarding"})
	}); err != nil {
		t.Fatalf("forced duplicate: %v", err)
	}
	if _, err := os.Stat(filepath.Join(tmp, ".goalkit", "goals", "002-improve-user-onboarding")); err != nil {
		t.Errorf("forced duplicate should get number 002: %v", err)
	}
}

func TestGoalNewEmptySlug(t *testing.T) {
	newTestProject(t)
	goalNewCmd.SetContext(context.Background())

	if err := runGoalNew(goalNewCmd, []string{"!!!"}); err == nil {
		t.Fatal("expected error for a description that slugifies to nothing")
	}
}

func TestGoalNewOutsideProject(t *testing.T) {
	resetFlags(t)
	tmp := t.TempDir()
	orig, _ := os.Getwd()
	defer func() { _ = os.Chdir(orig) }()
	if err := os.Chdir(tmp); err != nil {
		t.Fatal(err)
	}
	goalNewCmd.SetContext(context.Background())

	if err := runGoalNew(goalNewCmd, []string{"some", "goal"}); err == nil {
		t.Fatal("expected error outside a project")
	}
}

func TestGoalListJSON(t *testing.T) {
	tmp, _ := newTestProject(t)
	addGoal(t, tmp, 1, "first-goal", "strategies.md")
	addGoal(t, tmp, 2, "second-goal")
	jsonOut = true

	out, err := captureStdout(t, func() error {
		return runGoalList(goalListCmd, nil)
	})
	if err != nil {
		t.Fatalf("runGoalList: %v", err)
	}

	var payload struct {
		Goals []struct {
			Num    string   `json:"GOAL_NUM"`
			Slug   string   `json:"SLUG"`
			Docs   []string `json:"DOCS"`
			Branch string   `json:"BRANCH_NAME"`
		} `json:"GOALS"`
	}
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("parse output: %v\n%s", err, out)
	}
	if len(payload.Goals) != 2 {
		t.Fatalf("got %d goals, want 2", len(payload.Goals))
	}
	if payload.Goals[0].Num != "001" || payload.Goals[1].Num != "002" {
		t.Error("goals not sorted by number")
	}
	if want := []string{"goal.md", "strategies.md"}; !equalStrings(payload.Goals[0].Docs, want) {
		t.Errorf("docs = %v, want %v", payload.Goals[0].Docs, want)
	}
}

func TestGoalListEmpty(t *testing.T) {
	newTestProject(t)

	out, err := captureStdout(t, func() error {
		return runGoalList(goalListCmd, nil)
	})
	if err != nil {
		t.Fatalf("runGoalList: %v", err)
	}
	if !strings.Contains(out, "No goals yet") {
		t.Errorf("output = %q, want empty-state hint", out)
	}
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
