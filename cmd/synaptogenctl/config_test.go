package main

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadRunRequestJSON(t *testing.T) {
	path := writeConfig(t, "run.json", `{
		"run_id": "run-1",
		"ticks": 500,
		"neurons": 24,
		"formation_cutoff": 1.0,
		"formation_window": 3
	}`)

	req, err := loadRunRequest(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if req.RunID != "run-1" || req.Ticks != 500 || req.Neurons != 24 {
		t.Fatalf("unexpected request: %+v", req)
	}
	if req.FormationCutoff != 1.0 || req.FormationWindow != 3 {
		t.Fatalf("unexpected formation settings: %+v", req)
	}
}

func TestLoadRunRequestYAML(t *testing.T) {
	path := writeConfig(t, "run.yaml", `
run_id: run-2
ticks: 100
workers: 4
neurites_per_neuron: 3
search_radius: 5.0
`)

	req, err := loadRunRequest(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if req.RunID != "run-2" || req.Workers != 4 || req.NeuritesPerNeuron != 3 {
		t.Fatalf("unexpected request: %+v", req)
	}
	if req.SearchRadius != 5.0 {
		t.Fatalf("unexpected radius: %v", req.SearchRadius)
	}
}

func TestLoadRunRequestUnsupportedExtension(t *testing.T) {
	path := writeConfig(t, "run.toml", "run_id = \"x\"")
	if _, err := loadRunRequest(path); err == nil {
		t.Fatal("expected error for unsupported extension")
	}
}

func TestLoadRunRequestMissingFile(t *testing.T) {
	if _, err := loadRunRequest(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadRunRequestMalformed(t *testing.T) {
	path := writeConfig(t, "run.json", "{not json")
	if _, err := loadRunRequest(path); err == nil {
		t.Fatal("expected parse error")
	}
}
