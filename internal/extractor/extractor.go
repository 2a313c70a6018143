// Package extractor builds the intermediate model from a knowledge graph.
package extractor

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"Ontoflow/internal/graph"
	"Ontoflow/internal/ontology"
	"Ontoflow/pkg/types"
)

// Options tune the extraction.
type Options struct {
	// ParseTimeout bounds the RDF decode step. Zero means the loader default.
	ParseTimeout time.Duration
}

// Extract parses the graph file at path and returns the intermediate model.
// Returns *types.ParseError when the file is not valid RDF and
// *types.SchemaError when a required ontology relationship is missing.
func Extract(path string, opts Options) (*types.Project, error) {
	g, err := graph.Load(path, opts.ParseTimeout)
	if err != nil {
		return nil, err
	}
	return build(g, path)
}

func build(g *graph.Graph, source string) (*types.Project, error) {
	p := &types.Project{
		Source:  filepath.Base(source),
		Process: types.ProcessSequential,
	}

	extractAgents(g, p)
	if err := extractTasks(g, p); err != nil {
		return nil, err
	}
	extractTools(g, p)
	extractWorkflows(g, p)

	p.Name = projectName(g, source)
	p.Process = inferProcess(g)

	if err := validate(p); err != nil {
		return nil, err
	}
	return p, nil
}

func extractAgents(g *graph.Graph, p *types.Project) {
	for _, iri := range g.Subjects(ontology.RDFType, ontology.AgentClasses...) {
		a := types.Agent{
			IRI:     iri,
			AgentID: g.Value(iri, ontology.AgentID),
			Role: g.FirstValue(iri,
				ontology.AgentRole, ontology.HasRole,
				ontology.RDFSLabel, ontology.Title),
			Backstory: g.FirstValue(iri,
				ontology.Description, ontology.HasDescription,
				ontology.RDFSComment),
			Tools:         g.ObjectsAny(iri, ontology.UsesTool, ontology.HasTool),
			InteractsWith: g.Objects(iri, ontology.InteractsWith),
		}

		// hasGoal may point to a :Goal individual or carry the text inline.
		for _, goal := range g.ObjectsAny(iri, ontology.HasGoal, ontology.HasAgentGoal) {
			if text := g.FirstValue(goal, ontology.Description, ontology.Title); text != "" {
				a.Goal = text
			} else {
				a.Goal = goal
			}
			break
		}

		p.Agents = append(p.Agents, a)
	}
}

func extractTasks(g *graph.Graph, p *types.Project) error {
	agentSet := make(map[string]bool, len(p.Agents))
	for _, a := range p.Agents {
		agentSet[a.IRI] = true
	}

	for _, iri := range g.Subjects(ontology.RDFType, ontology.ClassTask) {
		t := types.Task{
			IRI:            iri,
			Title:          g.FirstValue(iri, ontology.Title, ontology.RDFSLabel),
			Description:    g.FirstValue(iri, ontology.Description, ontology.HasDescription),
			ExpectedOutput: g.Value(iri, ontology.TaskExpectedOutput),
			DependsOn:      g.Objects(iri, ontology.DependsOn),
		}

		owner, err := resolveOwner(g, iri, agentSet)
		if err != nil {
			return err
		}
		t.AgentIRI = owner

		p.Tasks = append(p.Tasks, t)
	}
	return nil
}

// resolveOwner finds the single agent a task belongs to: an explicit
// assignment predicate first, then the reverse of the agents' :hasTask.
func resolveOwner(g *graph.Graph, task string, agents map[string]bool) (string, error) {
	owners := make(map[string]bool)
	for _, o := range g.ObjectsAny(task,
		ontology.AssignedTo, ontology.PerformedByAgent, ontology.PerformedBy) {
		if agents[o] {
			owners[o] = true
		}
	}
	if len(owners) == 0 {
		for _, s := range g.SubjectsWith(ontology.HasTask, task) {
			if agents[s] {
				owners[s] = true
			}
		}
	}

	switch len(owners) {
	case 0:
		return "", &types.SchemaError{
			Entity:   task,
			Relation: "assignedTo",
			Reason:   "task has no assigned agent",
		}
	case 1:
		for o := range owners {
			return o, nil
		}
	}
	return "", &types.SchemaError{
		Entity:   task,
		Relation: "assignedTo",
		Reason:   "task is assigned to " + strconv.Itoa(len(owners)) + " agents, want exactly one",
	}
}

func extractTools(g *graph.Graph, p *types.Project) {
	for _, iri := range g.Subjects(ontology.RDFType, ontology.ClassTool) {
		p.Tools = append(p.Tools, types.Tool{
			IRI:         iri,
			Name:        g.FirstValue(iri, ontology.Title, ontology.RDFSLabel),
			Description: g.FirstValue(iri, ontology.Description, ontology.RDFSComment),
			Resource:    g.Value(iri, ontology.AccessesResource),
		})
	}
}

func extractWorkflows(g *graph.Graph, p *types.Project) {
	for _, iri := range g.Subjects(ontology.RDFType, ontology.ClassWorkflowPattern) {
		wf := types.Workflow{
			IRI:         iri,
			Title:       g.FirstValue(iri, ontology.Title, ontology.RDFSLabel),
			Description: g.Value(iri, ontology.Description),
		}

		declared := g.Objects(iri, ontology.HasWorkflowStep)
		stepSet := make(map[string]bool, len(declared))
		for _, s := range declared {
			stepSet[s] = true
		}

		var steps []types.WorkflowStep
		for _, stepIRI := range g.Subjects(ontology.RDFType, ontology.StepClasses...) {
			if len(declared) > 0 && !stepSet[stepIRI] {
				continue
			}
			steps = append(steps, types.WorkflowStep{
				IRI:      stepIRI,
				Order:    atoi(g.Value(stepIRI, ontology.StepOrder)),
				TaskIRI:  g.Value(stepIRI, ontology.HasAssociatedTask),
				AgentIRI: g.Value(stepIRI, ontology.PerformedBy),
				NextIRI:  g.Value(stepIRI, ontology.NextStep),
			})
		}

		wf.Steps = orderSteps(steps)
		p.Workflows = append(p.Workflows, wf)
	}
}

// orderSteps sorts by the explicit stepOrder; steps without one are chained
// via nextStep starting from the step nothing points to.
func orderSteps(steps []types.WorkflowStep) []types.WorkflowStep {
	if len(steps) == 0 {
		return steps
	}

	explicit := true
	for _, s := range steps {
		if s.Order == 0 {
			explicit = false
			break
		}
	}
	if explicit {
		sorted := make([]types.WorkflowStep, len(steps))
		copy(sorted, steps)
		for i := 1; i < len(sorted); i++ {
			for j := i; j > 0 && sorted[j].Order < sorted[j-1].Order; j-- {
				sorted[j], sorted[j-1] = sorted[j-1], sorted[j]
			}
		}
		return sorted
	}

	byIRI := make(map[string]types.WorkflowStep, len(steps))
	pointedTo := make(map[string]bool)
	for _, s := range steps {
		byIRI[s.IRI] = s
		if s.NextIRI != "" {
			pointedTo[s.NextIRI] = true
		}
	}

	var head string
	for _, s := range steps {
		if !pointedTo[s.IRI] {
			head = s.IRI
			break
		}
	}
	if head == "" {
		// Every step is pointed to: the chain is cyclic. Return input
		// order; validate() reports the cycle.
		return steps
	}

	var ordered []types.WorkflowStep
	visited := make(map[string]bool)
	for cur := head; cur != "" && !visited[cur]; {
		s, ok := byIRI[cur]
		if !ok {
			break
		}
		ordered = append(ordered, s)
		visited[cur] = true
		cur = s.NextIRI
	}
	// Steps unreachable from the head keep their input order at the tail.
	for _, s := range steps {
		if !visited[s.IRI] {
			ordered = append(ordered, s)
		}
	}
	return ordered
}

func projectName(g *graph.Graph, source string) string {
	var label string
	for _, team := range g.Subjects(ontology.RDFType, ontology.ClassTeam) {
		label = g.FirstValue(team, ontology.RDFSLabel, ontology.Title)
		break
	}
	if label == "" {
		for _, wf := range g.Subjects(ontology.RDFType, ontology.ClassWorkflowPattern) {
			label = g.FirstValue(wf, ontology.Title, ontology.RDFSLabel)
			break
		}
	}
	if label == "" {
		base := filepath.Base(source)
		label = strings.TrimSuffix(base, filepath.Ext(base))
	}

	name := nonAlnum.ReplaceAllString(label, "")
	if name == "" {
		name = "GeneratedWorkflow"
	}
	return name
}

var nonAlnum = regexp.MustCompile(`[^a-zA-Z0-9]`)

// inferProcess recovers the orchestration style from workflow or team text.
// "hierarchical" wins over "sequential" as the rarer, more specific marker.
func inferProcess(g *graph.Graph) types.Process {
	subjects := g.Subjects(ontology.RDFType, ontology.ClassWorkflowPattern)
	subjects = append(subjects, g.Subjects(ontology.RDFType, ontology.ClassTeam)...)

	found := types.ProcessSequential
	for _, s := range subjects {
		for _, pred := range []string{
			ontology.Title, ontology.RDFSLabel,
			ontology.Description, ontology.RDFSComment,
		} {
			text := strings.ToLower(g.Value(s, pred))
			if strings.Contains(text, "hierarchical") {
				return types.ProcessHierarchical
			}
			if strings.Contains(text, "sequential") {
				found = types.ProcessSequential
			}
		}
	}
	return found
}

func atoi(s string) int {
	n, _ := strconv.Atoi(strings.TrimSpace(s))
	return n
}
