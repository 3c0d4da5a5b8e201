package main

import (
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
)

func TestCheckJSONReportsDocs(t *testing.T) {
	tmp, fg := newTestProject(t)
	addGoal(t, tmp, 1, "first-goal", "strategies.md")
	fg.branch = "001-first-goal"
	jsonOut = true
	checkCmd.SetContext(context.Background())

	out, err := captureStdout(t, func() error {
		return runCheck(checkCmd, nil)
	})
	if err != nil {
		t.Fatalf("runCheck: %v", err)
	}

	var payload map[string]interface{}
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("parse output: %v\n%s", err, out)
	}
	if payload["GOAL"] != true {
		t.Error("GOAL should be true")
	}
	if payload["STRATEGIES"] != true {
		t.Error("STRATEGIES should be true")
	}
	if payload["MILESTONES"] != false {
		t.Error("MILESTONES should be false")
	}
	if payload["RISK_REGISTER"] != false {
		t.Error("RISK_REGISTER should be false")
	}
	if payload["GOAL_NUM"] != "001" {
		t.Errorf("GOAL_NUM = %v, want 001", payload["GOAL_NUM"])
	}
}

func TestCheckRequireMissingDoc(t *testing.T) {
	tmp, fg := newTestProject(t)
	addGoal(t, tmp, 1, "first-goal", "strategies.md")
	fg.branch = "001-first-goal"
	checkRequireMilestones = true
	checkCmd.SetContext(context.Background())

	_, err := captureStdout(t, func() error {
		return runCheck(checkCmd, nil)
	})
	if err == nil {
		t.Fatal("expected error when a required doc is missing")
	}
	if !strings.Contains(err.Error(), "milestones.md") {
		t.Errorf("error should name milestones.md: %v", err)
	}
}

func TestCheckRequirePresentDoc(t *testing.T) {
	tmp, fg := newTestProject(t)
	addGoal(t, tmp, 1, "first-goal", "strategies.md", "milestones.md")
	fg.branch = "001-first-goal"
	checkRequireStrategies = true
	checkRequireMilestones = true
	checkCmd.SetContext(context.Background())

	if _, err := captureStdout(t, func() error {
		return runCheck(checkCmd, nil)
	}); err != nil {
		t.Fatalf("runCheck: %v", err)
	}
}

func TestPathsEmitsFullSet(t *testing.T) {
	tmp, _ := newTestProject(t)
	dir := addGoal(t, tmp, 7, "lucky-goal")
	pathsGoalRef = "7"
	pathsCmd.SetContext(context.Background())

	out, err := captureStdout(t, func() error {
		return runPaths(pathsCmd, nil)
	})
	if err != nil {
		t.Fatalf("runPaths: %v", err)
	}

	var payload map[string]string
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("parse output: %v\n%s", err, out)
	}
	want := map[string]string{
		"GOAL_NUM":        "007",
		"GOAL_DIR":        dir,
		"GOAL_FILE":       filepath.Join(dir, "goal.md"),
		"STRATEGIES_FILE": filepath.Join(dir, "strategies.md"),
		"MILESTONES_FILE": filepath.Join(dir, "milestones.md"),
		"EXECUTION_FILE":  filepath.Join(dir, "execution.md"),
		"RISKS_FILE":      filepath.Join(dir, "risk-register.md"),
		"BRANCH_NAME":     "007-lucky-goal",
	}
	for key, val := range want {
		if payload[key] != val {
			t.Errorf("%s = %q, want %q", key, payload[key], val)
		}
	}
	if strings.Count(strings.TrimSpace(out), "\n") != 0 {
		t.Error("paths output must be a single line")
	}
}

func TestPathsUnknownGoal(t *testing.T) {
	newTestProject(t)
	pathsGoalRef = "42"
	pathsCmd.SetContext(context.Background())

	if _, err := captureStdout(t, func() error {
		return runPaths(pathsCmd, nil)
	}); err == nil {
		t.Fatal("expected error for an unknown goal")
	}
}
