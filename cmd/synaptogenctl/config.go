package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	synapi "synaptogen/pkg/synaptogen"
)

// runRequestFile mirrors synaptogen.RunRequest with file-friendly keys.
type runRequestFile struct {
	RunID             string  `json:"run_id" yaml:"run_id"`
	Ticks             int64   `json:"ticks" yaml:"ticks"`
	Workers           int     `json:"workers" yaml:"workers"`
	Seed              int64   `json:"seed" yaml:"seed"`
	Neurons           int     `json:"neurons" yaml:"neurons"`
	NeuritesPerNeuron int     `json:"neurites_per_neuron" yaml:"neurites_per_neuron"`
	MaxTreeDepth      int     `json:"max_tree_depth" yaml:"max_tree_depth"`
	Bounds            float64 `json:"bounds" yaml:"bounds"`
	Elongation        float64 `json:"elongation" yaml:"elongation"`
	SearchRadius      float64 `json:"search_radius" yaml:"search_radius"`
	FormationCutoff   float64 `json:"formation_cutoff" yaml:"formation_cutoff"`
	FormationWindow   int64   `json:"formation_window" yaml:"formation_window"`
}

// loadRunRequest reads a run config in JSON or YAML, chosen by extension.
func loadRunRequest(path string) (synapi.RunRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return synapi.RunRequest{}, err
	}

	var file runRequestFile
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		if err := json.Unmarshal(data, &file); err != nil {
			return synapi.RunRequest{}, fmt.Errorf("parse %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &file); err != nil {
			return synapi.RunRequest{}, fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		return synapi.RunRequest{}, fmt.Errorf("unsupported config extension: %s", ext)
	}

	return synapi.RunRequest{
		RunID:             file.RunID,
		Ticks:             file.Ticks,
		Workers:           file.Workers,
		Seed:              file.Seed,
		Neurons:           file.Neurons,
		NeuritesPerNeuron: file.NeuritesPerNeuron,
		MaxTreeDepth:      file.MaxTreeDepth,
		Bounds:            file.Bounds,
		Elongation:        file.Elongation,
		SearchRadius:      file.SearchRadius,
		FormationCutoff:   file.FormationCutoff,
		FormationWindow:   file.FormationWindow,
	}, nil
}
