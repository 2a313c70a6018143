package extractor

import (
	"Ontoflow/pkg/types"
)

// validate enforces the model invariants: unique agent and tool identifiers,
// resolvable task dependencies, and an acyclic execution order.
func validate(p *types.Project) error {
	agentIDs := make(map[string]string)
	for _, a := range p.Agents {
		if a.AgentID == "" {
			continue
		}
		if prev, dup := agentIDs[a.AgentID]; dup {
			return &types.SchemaError{
				Entity:   a.IRI,
				Relation: "agentID",
				Reason:   "duplicate agent identifier " + a.AgentID + " (also on <" + prev + ">)",
			}
		}
		agentIDs[a.AgentID] = a.IRI
	}

	toolNames := make(map[string]string)
	for _, t := range p.Tools {
		if t.Name == "" {
			continue
		}
		if prev, dup := toolNames[t.Name]; dup {
			return &types.SchemaError{
				Entity:   t.IRI,
				Relation: "title",
				Reason:   "duplicate tool identifier " + t.Name + " (also on <" + prev + ">)",
			}
		}
		toolNames[t.Name] = t.IRI
	}

	taskSet := make(map[string]bool, len(p.Tasks))
	for _, t := range p.Tasks {
		taskSet[t.IRI] = true
	}
	for _, t := range p.Tasks {
		for _, dep := range t.DependsOn {
			if !taskSet[dep] {
				return &types.SchemaError{
					Entity:   t.IRI,
					Relation: "dependsOn",
					Reason:   "dependency <" + dep + "> is not a task in this graph",
				}
			}
		}
	}

	for _, wf := range p.Workflows {
		for _, step := range wf.Steps {
			if step.TaskIRI != "" && !taskSet[step.TaskIRI] {
				return &types.SchemaError{
					Entity:   step.IRI,
					Relation: "hasAssociatedTask",
					Reason:   "associated task <" + step.TaskIRI + "> is not a task in this graph",
				}
			}
		}
		if cyc := stepCycle(wf.Steps); cyc != "" {
			return &types.SchemaError{
				Entity:   cyc,
				Relation: "nextStep",
				Reason:   "workflow step chain forms a cycle",
			}
		}
	}

	if cyc := dependencyCycle(p.Tasks); cyc != "" {
		return &types.SchemaError{
			Entity:   cyc,
			Relation: "dependsOn",
			Reason:   "task dependencies form a cycle",
		}
	}

	return nil
}

// dependencyCycle returns the IRI of a task on a dependsOn cycle, or "".
func dependencyCycle(tasks []types.Task) string {
	deps := make(map[string][]string, len(tasks))
	for _, t := range tasks {
		deps[t.IRI] = t.DependsOn
	}

	const (
		unvisited = 0
		inStack   = 1
		done      = 2
	)
	state := make(map[string]int, len(tasks))

	var visit func(string) string
	visit = func(iri string) string {
		state[iri] = inStack
		for _, dep := range deps[iri] {
			switch state[dep] {
			case inStack:
				return dep
			case unvisited:
				if _, known := deps[dep]; !known {
					continue
				}
				if cyc := visit(dep); cyc != "" {
					return cyc
				}
			}
		}
		state[iri] = done
		return ""
	}

	for _, t := range tasks {
		if state[t.IRI] == unvisited {
			if cyc := visit(t.IRI); cyc != "" {
				return cyc
			}
		}
	}
	return ""
}

// stepCycle returns the IRI of a step whose nextStep chain loops, or "".
func stepCycle(steps []types.WorkflowStep) string {
	next := make(map[string]string, len(steps))
	for _, s := range steps {
		if s.NextIRI != "" {
			next[s.IRI] = s.NextIRI
		}
	}
	for _, s := range steps {
		visited := map[string]bool{s.IRI: true}
		for cur := next[s.IRI]; cur != ""; cur = next[cur] {
			if visited[cur] {
				return cur
			}
			visited[cur] = true
		}
	}
	return ""
}
