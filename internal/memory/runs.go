// Package memory persists conversion run records under the user's home
// directory so past runs can be listed, inspected, and searched.
package memory

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	MaxRuns    = 50
	ExpiryDays = 30
	RunsFolder = ".ontoflow/runs"
)

// Artifact records one generated output file (or its failure).
type Artifact struct {
	Target string `json:"target"`
	Path   string `json:"path,omitempty"`
	Error  string `json:"error,omitempty"`
}

// Run is one graph-to-code conversion.
type Run struct {
	ID        string     `json:"id"`
	Source    string     `json:"source"`
	Name      string     `json:"name,omitempty"`
	Agents    []string   `json:"agents,omitempty"` // agent roles, for search
	Tasks     []string   `json:"tasks,omitempty"`  // task descriptions, for search
	Artifacts []Artifact `json:"artifacts"`
	CreatedAt time.Time  `json:"created_at"`
}

// runsDir is a variable so tests can redirect persistence to a temp dir.
var runsDir = func() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, RunsFolder)
}

// SetRunsDir overrides the storage directory. Intended for tests.
func SetRunsDir(dir string) {
	runsDir = func() string { return dir }
}

// GetRunsDir returns the path to the runs directory.
func GetRunsDir() string {
	return runsDir()
}

// NewRun creates a run record for a source graph.
func NewRun(source string) *Run {
	return &Run{
		ID:        uuid.NewString()[:8],
		Source:    source,
		CreatedAt: time.Now(),
	}
}

// AddArtifact records one target's outcome.
func (r *Run) AddArtifact(target, path string, err error) {
	a := Artifact{Target: target, Path: path}
	if err != nil {
		a.Error = err.Error()
	}
	r.Artifacts = append(r.Artifacts, a)
}

// Summary returns the searchable text of a run: workflow name, agent roles
// and task descriptions joined into one document.
func (r *Run) Summary() string {
	parts := []string{r.Name, r.Source}
	parts = append(parts, r.Agents...)
	parts = append(parts, r.Tasks...)
	var kept []string
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, "\n")
}

// Save persists the run to disk.
func (r *Run) Save() error {
	dir := GetRunsDir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}

	path := filepath.Join(dir, r.ID+".json")
	return os.WriteFile(path, data, 0644)
}

// LoadRun loads a run by ID.
func LoadRun(id string) (*Run, error) {
	path := filepath.Join(GetRunsDir(), id+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var run Run
	if err := json.Unmarshal(data, &run); err != nil {
		return nil, fmt.Errorf("corrupt run record %s: %w", id, err)
	}
	return &run, nil
}

// ListRuns returns all runs sorted newest first.
func ListRuns() ([]Run, error) {
	dir := GetRunsDir()
	files, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []Run{}, nil
		}
		return nil, err
	}

	var runs []Run
	for _, f := range files {
		if filepath.Ext(f.Name()) != ".json" {
			continue
		}

		id := strings.TrimSuffix(f.Name(), ".json")
		run, err := LoadRun(id)
		if err != nil {
			continue
		}
		runs = append(runs, *run)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].CreatedAt.After(runs[j].CreatedAt)
	})

	return runs, nil
}

// CleanupOldRuns removes expired and excess run records.
func CleanupOldRuns() error {
	runs, err := ListRuns()
	if err != nil {
		return err
	}

	cutoff := time.Now().AddDate(0, 0, -ExpiryDays)
	dir := GetRunsDir()

	for i, r := range runs {
		if r.CreatedAt.Before(cutoff) || i >= MaxRuns {
			os.Remove(filepath.Join(dir, r.ID+".json"))
		}
	}

	return nil
}

// DeleteRun removes a run record by ID.
func DeleteRun(id string) error {
	return os.Remove(filepath.Join(GetRunsDir(), id+".json"))
}
