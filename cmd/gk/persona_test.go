package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestPersonaSetAndShow(t *testing.T) {
	tmp, _ := newTestProject(t)

	if _, err := captureStdout(t, func() error {
		return runPersonaSet(personaSetCmd, []string{"reviewer"})
	}); err != nil {
		t.Fatalf("runPersonaSet: %v", err)
	}

	state, err := os.ReadFile(filepath.Join(tmp, ".goalkit", "personas", "current_persona.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.TrimSpace(string(state)); got != "reviewer" {
		t.Errorf("persona state = %q, want reviewer", got)
	}

	out, err := captureStdout(t, func() error {
		return runPersonaShow(personaShowCmd, nil)
	})
	if err != nil {
		t.Fatalf("runPersonaShow: %v", err)
	}
	if !strings.Contains(out, "reviewer") {
		t.Errorf("show output = %q, want reviewer", out)
	}
}

func TestPersonaSetUnknown(t *testing.T) {
	newTestProject(t)
	if _, err := captureStdout(t, func() error {
		return runPersonaSet(personaSetCmd, []string{"wizard"})
	}); err == nil {
		t.Fatal("expected error for an unknown persona")
	}
}

func TestPersonaSetNoArgNoTTY(t *testing.T) {
	newTestProject(t)
	// Stdout is a pipe under captureStdout, so the picker must refuse.
	if _, err := captureStdout(t, func() error {
		return runPersonaSet(personaSetCmd, nil)
	}); err == nil {
		t.Fatal("expected error without a name or a terminal")
	}
}

func TestPersonaSetDryRun(t *testing.T) {
	tmp, _ := newTestProject(t)
	dryRun = true

	if _, err := captureStdout(t, func() error {
		return runPersonaSet(personaSetCmd, []string{"shipper"})
	}); err != nil {
		t.Fatalf("runPersonaSet: %v", err)
	}
	if _, err := os.Stat(filepath.Join(tmp, ".goalkit", "personas", "current_persona.txt")); !os.IsNotExist(err) {
		t.Error("dry run wrote the persona state")
	}
}

func TestPersonaListJSON(t *testing.T) {
	newTestProject(t)
	jsonOut = true

	out, err := captureStdout(t, func() error {
		return runPersonaList(personaListCmd, nil)
	})
	if err != nil {
		t.Fatalf("runPersonaList: %v", err)
	}

	var payload struct {
		Personas []string `json:"PERSONAS"`
		Current  string   `json:"CURRENT"`
	}
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("parse output: %v\n%s", err, out)
	}
	if payload.Current != "builder" {
		t.Errorf("CURRENT = %q, want builder", payload.Current)
	}
	if !contains(payload.Personas, "planner") || !contains(payload.Personas, "shipper") {
		t.Errorf("PERSONAS = %v, missing expected names", payload.Personas)
	}
}
