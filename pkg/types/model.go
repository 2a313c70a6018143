package types

// Process is the orchestration style declared (or implied) by the graph.
type Process string

const (
	ProcessSequential   Process = "sequential"
	ProcessHierarchical Process = "hierarchical"
)

type Agent struct {
	IRI           string
	AgentID       string
	Role          string
	Goal          string
	Backstory     string
	Tools         []string // Tool IRIs
	InteractsWith []string // Agent IRIs
}

type Task struct {
	IRI            string
	Title          string
	Description    string
	ExpectedOutput string
	AgentIRI       string
	DependsOn      []string // Task IRIs that must complete first
}

type Tool struct {
	IRI         string
	Name        string
	Description string
	Resource    string
}

type WorkflowStep struct {
	IRI      string
	Order    int
	TaskIRI  string
	AgentIRI string
	NextIRI  string
}

type Workflow struct {
	IRI         string
	Title       string
	Description string
	Steps       []WorkflowStep
}

// Project is the intermediate model extracted from one knowledge graph.
// It is built once by the extractor and read-only afterwards, so both
// mappers can consume it concurrently.
type Project struct {
	Source  string
	Name    string
	Process Process

	Agents    []Agent
	Tasks     []Task
	Tools     []Tool
	Workflows []Workflow
}

// AgentByIRI returns the agent with the given IRI, or nil.
func (p *Project) AgentByIRI(iri string) *Agent {
	for i := range p.Agents {
		if p.Agents[i].IRI == iri {
			return &p.Agents[i]
		}
	}
	return nil
}

// TaskByIRI returns the task with the given IRI, or nil.
func (p *Project) TaskByIRI(iri string) *Task {
	for i := range p.Tasks {
		if p.Tasks[i].IRI == iri {
			return &p.Tasks[i]
		}
	}
	return nil
}

// ToolByIRI returns the tool with the given IRI, or nil.
func (p *Project) ToolByIRI(iri string) *Tool {
	for i := range p.Tools {
		if p.Tools[i].IRI == iri {
			return &p.Tools[i]
		}
	}
	return nil
}

// OrderedTasks returns the tasks to render, in execution order.
//
// When the graph declares a workflow, only tasks referenced by its steps are
// returned, in step order. Entities the workflow never references stay in the
// model but are excluded from generated code. Without a workflow every task
// is live, ordered by dependsOn edges (dependencies before dependents).
func (p *Project) OrderedTasks() []Task {
	if len(p.Workflows) > 0 {
		var ordered []Task
		seen := make(map[string]bool)
		for _, wf := range p.Workflows {
			for _, step := range wf.Steps {
				if step.TaskIRI == "" || seen[step.TaskIRI] {
					continue
				}
				if t := p.TaskByIRI(step.TaskIRI); t != nil {
					ordered = append(ordered, *t)
					seen[step.TaskIRI] = true
				}
			}
		}
		return ordered
	}

	// No workflow: topological order over dependsOn, stable on input order.
	var ordered []Task
	placed := make(map[string]bool)
	for len(ordered) < len(p.Tasks) {
		progressed := false
		for _, t := range p.Tasks {
			if placed[t.IRI] {
				continue
			}
			ready := true
			for _, dep := range t.DependsOn {
				if p.TaskByIRI(dep) != nil && !placed[dep] {
					ready = false
					break
				}
			}
			if ready {
				ordered = append(ordered, t)
				placed[t.IRI] = true
				progressed = true
			}
		}
		if !progressed {
			// Cycles are rejected by the extractor; this keeps the
			// function total if called on an unvalidated model.
			for _, t := range p.Tasks {
				if !placed[t.IRI] {
					ordered = append(ordered, t)
					placed[t.IRI] = true
				}
			}
		}
	}
	return ordered
}

// LiveAgents returns the agents owning at least one live task, in the order
// their first task appears. Agents unreferenced by the workflow are excluded
// from generated code, matching the policy for tasks.
func (p *Project) LiveAgents() []Agent {
	tasks := p.OrderedTasks()
	var agents []Agent
	seen := make(map[string]bool)
	for _, t := range tasks {
		if t.AgentIRI == "" || seen[t.AgentIRI] {
			continue
		}
		if a := p.AgentByIRI(t.AgentIRI); a != nil {
			agents = append(agents, *a)
			seen[t.AgentIRI] = true
		}
	}
	// A graph with agents but no tasks still describes a team; render it.
	if len(tasks) == 0 {
		return p.Agents
	}
	return agents
}

// LiveTools returns the tools referenced by live agents, deduplicated, in
// agent order.
func (p *Project) LiveTools() []Tool {
	var tools []Tool
	seen := make(map[string]bool)
	for _, a := range p.LiveAgents() {
		for _, iri := range a.Tools {
			if seen[iri] {
				continue
			}
			if t := p.ToolByIRI(iri); t != nil {
				tools = append(tools, *t)
				seen[iri] = true
			}
		}
	}
	return tools
}
