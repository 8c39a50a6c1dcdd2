package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/veridian-labs/regent/engine"
)

// loadSnapshot reads a snapshot file, dispatching on extension. YAML covers
// .yaml and .yml; everything else is treated as JSON.
func loadSnapshot(path string) (engine.Snapshot, error) {
	var snap engine.Snapshot

	data, err := os.ReadFile(path)
	if err != nil {
		return snap, fmt.Errorf("read snapshot: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &snap); err != nil {
			return snap, fmt.Errorf("parse snapshot %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(data, &snap); err != nil {
			return snap, fmt.Errorf("parse snapshot %s: %w", path, err)
		}
	}

	return snap, nil
}

// parseAsOf resolves the evaluation reference time, defaulting to now.
func parseAsOf(value string) (time.Time, error) {
	if value == "" {
		return time.Now().UTC(), nil
	}

	asOf, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse as-of time: %w", err)
	}
	return asOf, nil
}

func writeJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	fmt.Println(string(data))
	return nil
}
