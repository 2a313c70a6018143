// Package crewai renders the intermediate model as a CrewAI script.
package crewai

import (
	"bytes"
	"fmt"
	"text/template"

	"Ontoflow/internal/generator"
	"Ontoflow/internal/tools"
	"Ontoflow/pkg/types"
)

func init() {
	generator.Register(&Mapper{})
}

// Mapper generates CrewAI Python code.
type Mapper struct{}

func (m *Mapper) Target() generator.Target {
	return generator.TargetCrewAI
}

type toolData struct {
	Var         string
	Class       string
	Module      string // empty for stub tools defined inline
	Name        string
	Description string
}

type agentData struct {
	Var       string
	Role      string
	Goal      string
	Backstory string
	ToolVars  []string
}

type taskData struct {
	Var            string
	Title          string
	Description    string
	ExpectedOutput string
	AgentVar       string
	ContextVars    []string
}

type scriptData struct {
	Source      string
	Name        string
	Process     string
	Imports     map[string][]string // module → classes
	StubTools   []toolData
	BoundTools  []toolData
	Agents      []agentData
	Tasks       []taskData
	HasStubs    bool
	AgentVars   []string
	TaskVars    []string
}

// Generate renders the model. Pure function of its input: no clocks, no
// shared state, byte-identical output for identical models.
func (m *Mapper) Generate(p *types.Project) (string, error) {
	vars, err := generator.VarTable(m.Target(), p)
	if err != nil {
		return "", err
	}

	data := scriptData{
		Source:  p.Source,
		Name:    p.Name,
		Process: string(p.Process),
		Imports: make(map[string][]string),
	}

	liveTasks := p.OrderedTasks()
	liveTaskSet := make(map[string]bool, len(liveTasks))
	for _, t := range liveTasks {
		liveTaskSet[t.IRI] = true
	}

	for _, t := range p.LiveTools() {
		name := t.Name
		if name == "" {
			name = generator.Fragment(t.IRI)
		}
		td := toolData{
			Var:         vars[t.IRI],
			Name:        name,
			Description: t.Description,
		}
		if b, ok := tools.Resolve(name); ok {
			td.Module = b.Module
			td.Class = b.Class
			data.Imports[b.Module] = appendUnique(data.Imports[b.Module], b.Class)
			data.BoundTools = append(data.BoundTools, td)
		} else {
			td.Class = generator.PyClass(name)
			if td.Description == "" {
				td.Description = name
			}
			data.StubTools = append(data.StubTools, td)
		}
	}
	data.HasStubs = len(data.StubTools) > 0

	for _, a := range p.LiveAgents() {
		role := a.Role
		if role == "" {
			role = "Unnamed Agent"
		}
		goal := a.Goal
		if goal == "" {
			goal = "Undefined goal"
		}
		backstory := a.Backstory
		if backstory == "" {
			backstory = role + " is part of an automatically generated agentic AI workflow."
		}
		ad := agentData{
			Var:       vars[a.IRI],
			Role:      role,
			Goal:      goal,
			Backstory: backstory,
		}
		for _, toolIRI := range a.Tools {
			v, ok := vars[toolIRI]
			if !ok {
				return "", &types.MappingError{
					Target: string(m.Target()),
					Entity: a.IRI,
					Reason: "references tool <" + toolIRI + "> missing from the model",
				}
			}
			ad.ToolVars = append(ad.ToolVars, v)
		}
		data.Agents = append(data.Agents, ad)
		data.AgentVars = append(data.AgentVars, ad.Var)
	}

	for _, t := range liveTasks {
		agentVar, ok := vars[t.AgentIRI]
		if !ok {
			return "", &types.MappingError{
				Target: string(m.Target()),
				Entity: t.IRI,
				Reason: "assigned agent <" + t.AgentIRI + "> is not renderable",
			}
		}
		desc := t.Description
		if desc == "" {
			desc = "No description provided."
		}
		expected := t.ExpectedOutput
		if expected == "" {
			expected = "Undefined output."
		}
		td := taskData{
			Var:            vars[t.IRI],
			Title:          t.Title,
			Description:    desc,
			ExpectedOutput: expected,
			AgentVar:       agentVar,
		}
		for _, dep := range t.DependsOn {
			if liveTaskSet[dep] {
				td.ContextVars = append(td.ContextVars, vars[dep])
			}
		}
		data.Tasks = append(data.Tasks, td)
		data.TaskVars = append(data.TaskVars, td.Var)
	}

	var buf bytes.Buffer
	if err := scriptTmpl.Execute(&buf, data); err != nil {
		return "", &types.MappingError{
			Target: string(m.Target()),
			Entity: p.Source,
			Reason: fmt.Sprintf("template execution failed: %v", err),
		}
	}
	return buf.String(), nil
}

func appendUnique(list []string, v string) []string {
	for _, item := range list {
		if item == v {
			return list
		}
	}
	return append(list, v)
}

var scriptTmpl = template.Must(template.New("crewai").Funcs(template.FuncMap{
	"pystr": generator.PyString,
	"join":  joinVars,
}).Parse(script))

func joinVars(vars []string) string {
	out := ""
	for i, v := range vars {
		if i > 0 {
			out += ", "
		}
		out += v
	}
	return out
}

const script = `"""
Auto-generated CrewAI script: {{.Name}}
Source: {{.Source}} (AgentO knowledge graph)
"""

from crewai import Agent, Crew, Process, Task
{{- range $module, $classes := .Imports}}
from {{$module}} import {{join $classes}}
{{- end}}
{{- if .HasStubs}}
from crewai.tools import BaseTool
{{- end}}

{{range .StubTools}}
# Tool: {{.Name}}
class {{.Class}}(BaseTool):
    name: str = "{{pystr .Name}}"
    description: str = "{{pystr .Description}}"

    def _run(self, argument: str) -> str:
        # Tool logic is not described by the knowledge graph.
        raise NotImplementedError("{{pystr .Name}} is not implemented")

{{.Var}} = {{.Class}}()

{{end}}
{{- range .BoundTools}}
{{.Var}} = {{.Class}}()
{{end}}
{{range .Agents}}
# Agent: {{.Role}}
{{.Var}} = Agent(
    role="{{pystr .Role}}",
    goal="{{pystr .Goal}}",
    backstory="{{pystr .Backstory}}",
    tools=[{{join .ToolVars}}],
)

{{end}}
{{range .Tasks}}
# Task: {{if .Title}}{{.Title}}{{else}}{{.Var}}{{end}}
{{.Var}} = Task(
    description="{{pystr .Description}}",
    expected_output="{{pystr .ExpectedOutput}}",
    agent={{.AgentVar}},
{{- if .ContextVars}}
    context=[{{join .ContextVars}}],
{{- end}}
)

{{end}}
crew = Crew(
    agents=[{{join .AgentVars}}],
    tasks=[{{join .TaskVars}}],
    process=Process.{{.Process}},
)

if __name__ == "__main__":
    print("Running {{.Name}} crew...")
    result = crew.kickoff()
    print(result)
`
