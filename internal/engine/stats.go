package engine

import (
	"sync"
	"time"

	"Ontoflow/pkg/types"
)

// ConversionStats tracks timing and output size for a conversion run.
type ConversionStats struct {
	mu        sync.Mutex
	StartTime time.Time
	Targets   map[string]*TargetStat

	// model counts, filled after extraction
	AgentCount    int
	TaskCount     int
	ToolCount     int
	WorkflowCount int
}

// TargetStat tracks per-target generation results.
type TargetStat struct {
	Target   string
	Bytes    int
	Duration time.Duration
}

// NewConversionStats creates a stats tracker.
func NewConversionStats() *ConversionStats {
	return &ConversionStats{
		StartTime: time.Now(),
		Targets:   make(map[string]*TargetStat),
	}
}

// RecordModel stores the extracted entity counts.
func (s *ConversionStats) RecordModel(p *types.Project) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.AgentCount = len(p.Agents)
	s.TaskCount = len(p.Tasks)
	s.ToolCount = len(p.Tools)
	s.WorkflowCount = len(p.Workflows)
}

// RecordTarget stores one target's generation outcome.
func (s *ConversionStats) RecordTarget(target string, bytes int, d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Targets[target] = &TargetStat{Target: target, Bytes: bytes, Duration: d}
}

// GetElapsedTime returns total elapsed time.
func (s *ConversionStats) GetElapsedTime() time.Duration {
	return time.Since(s.StartTime)
}

// TotalBytes returns the size of all generated artifacts.
func (s *ConversionStats) TotalBytes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, t := range s.Targets {
		total += t.Bytes
	}
	return total
}
