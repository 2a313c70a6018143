// Package engine sequences extraction and code generation for one graph.
package engine

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"Ontoflow/internal/extractor"
	"Ontoflow/internal/generator"
	"Ontoflow/internal/logging"
	"Ontoflow/pkg/types"
)

// Runner converts one knowledge graph into framework scripts.
type Runner struct {
	Targets      []generator.Target
	OutputDir    string
	ParseTimeout time.Duration
	Logger       *logging.Logger

	State *State
	Stats *ConversionStats
}

// Result is the outcome for a single target.
type Result struct {
	Target generator.Target
	Path   string // written artifact, empty on failure
	Err    error
}

// OK reports whether the target produced its artifact.
func (r Result) OK() bool { return r.Err == nil }

// NewRunner creates a runner for the given targets.
func NewRunner(targets []generator.Target, outputDir string) *Runner {
	return &Runner{
		Targets:   targets,
		OutputDir: outputDir,
		State:     NewState(1 + len(targets)), // extract + one step per target
		Stats:     NewConversionStats(),
	}
}

// Convert runs the full pipeline: extract once, then render every target
// over the same immutable model. An extractor error is fatal and no mapper
// runs. Mapper failures are isolated: each result carries its own error and
// the remaining targets still produce output.
func (r *Runner) Convert(graphPath string) (*types.Project, []Result, error) {
	r.State.Start()
	if r.Logger != nil {
		r.Logger.LogSection("EXTRACTION")
	}
	r.log("Extracting %s", graphPath)

	project, err := extractor.Extract(graphPath, extractor.Options{
		ParseTimeout: r.ParseTimeout,
	})
	if err != nil {
		r.State.Fail(err)
		if r.Logger != nil {
			r.Logger.LogError(err)
		}
		return nil, nil, err
	}
	r.State.NextStep()
	r.Stats.RecordModel(project)
	r.log("Extracted %d agents, %d tasks, %d tools, %d workflows",
		len(project.Agents), len(project.Tasks), len(project.Tools), len(project.Workflows))

	if r.Logger != nil {
		r.Logger.LogSection("GENERATION")
	}

	// Both mappers read the same immutable model and write disjoint
	// artifacts, so they run concurrently.
	results := make([]Result, len(r.Targets))
	var wg sync.WaitGroup
	for i, target := range r.Targets {
		wg.Add(1)
		go func(i int, target generator.Target) {
			defer wg.Done()
			results[i] = r.renderTarget(target, project, graphPath)
		}(i, target)
	}
	wg.Wait()

	failed := 0
	for _, res := range results {
		r.State.NextStep()
		if res.Err != nil {
			failed++
			r.log("%s mapper failed: %v", res.Target, res.Err)
		} else if r.Logger != nil {
			stat := r.Stats.Targets[string(res.Target)]
			if stat != nil {
				r.Logger.LogArtifact(string(res.Target), res.Path, stat.Bytes)
			}
		}
	}

	if failed == len(results) && len(results) > 0 {
		r.State.Fail(errors.New("all mappers failed"))
	} else {
		r.State.Complete()
	}
	return project, results, nil
}

// renderTarget generates code fully in memory and only then touches the
// filesystem, so a failing mapper never leaves a partial artifact behind.
func (r *Runner) renderTarget(target generator.Target, project *types.Project, graphPath string) Result {
	start := time.Now()

	mapper, err := generator.Get(target)
	if err != nil {
		return Result{Target: target, Err: err}
	}

	code, err := mapper.Generate(project)
	if err != nil {
		return Result{Target: target, Err: err}
	}

	path := r.artifactPath(target, graphPath)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return Result{Target: target, Err: fmt.Errorf("create output directory: %w", err)}
	}
	if err := os.WriteFile(path, []byte(code), 0644); err != nil {
		return Result{Target: target, Err: fmt.Errorf("write %s: %w", path, err)}
	}

	r.Stats.RecordTarget(string(target), len(code), time.Since(start))
	return Result{Target: target, Path: path}
}

// artifactPath names outputs <target>_<graph base>.py, e.g.
// crewai_email_workflow.py.
func (r *Runner) artifactPath(target generator.Target, graphPath string) string {
	base := filepath.Base(graphPath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(r.OutputDir, fmt.Sprintf("%s_%s.py", target, base))
}

func (r *Runner) log(format string, args ...interface{}) {
	if r.Logger != nil {
		r.Logger.Log(format, args...)
	}
}
