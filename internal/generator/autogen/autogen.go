// Package autogen renders the intermediate model as an AutoGen group chat
// script.
package autogen

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"Ontoflow/internal/generator"
	"Ontoflow/pkg/types"
)

func init() {
	generator.Register(&Mapper{})
}

// Mapper generates AutoGen Python code.
type Mapper struct{}

func (m *Mapper) Target() generator.Target {
	return generator.TargetAutoGen
}

type agentData struct {
	Var           string
	Name          string
	SystemMessage string
}

type scriptData struct {
	Source    string
	Name      string
	Agents    []agentData
	AgentVars []string
	Mission   string
	MaxRound  int
}

// Generate renders the model. Same purity guarantees as the CrewAI mapper.
func (m *Mapper) Generate(p *types.Project) (string, error) {
	vars, err := generator.VarTable(m.Target(), p)
	if err != nil {
		return "", err
	}

	data := scriptData{
		Source: p.Source,
		Name:   p.Name,
	}

	liveTasks := p.OrderedTasks()

	// Agents join the group chat in workflow order; with round-robin
	// turn-taking a downstream agent only speaks after its predecessors.
	for _, a := range p.LiveAgents() {
		ad := agentData{
			Var:           vars[a.IRI],
			Name:          generator.Fragment(a.IRI),
			SystemMessage: systemMessage(p, a),
		}
		data.Agents = append(data.Agents, ad)
		data.AgentVars = append(data.AgentVars, ad.Var)
	}
	if len(data.Agents) == 0 {
		return "", &types.MappingError{
			Target: string(m.Target()),
			Entity: p.Source,
			Reason: "model has no agents to converse",
		}
	}

	var mission strings.Builder
	if len(liveTasks) > 0 {
		mission.WriteString("Complete the following steps in order:\n")
		for i, t := range liveTasks {
			agentName := generator.Fragment(t.AgentIRI)
			desc := t.Description
			if desc == "" {
				desc = t.Title
			}
			if desc == "" {
				desc = "No description provided."
			}
			fmt.Fprintf(&mission, "%d. [%s] %s", i+1, agentName, desc)
			if t.ExpectedOutput != "" {
				fmt.Fprintf(&mission, " (Expected output: %s)", t.ExpectedOutput)
			}
			mission.WriteString("\n")
		}
	} else {
		mission.WriteString("Begin your assigned work and report the result.\n")
	}
	data.Mission = mission.String()

	// One round-robin pass per task plus room for the manager turns.
	data.MaxRound = 2*len(liveTasks) + len(data.Agents) + 1

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

func systemMessage(p *types.Project, a types.Agent) string {
	role := a.Role
	if role == "" {
		role = "Unnamed Agent"
	}
	goal := a.Goal
	if goal == "" {
		goal = "Undefined goal"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You are %s.", role)
	if a.Backstory != "" {
		b.WriteString(" " + a.Backstory)
	} else {
		fmt.Fprintf(&b, " %s is part of an automatically generated agentic AI workflow.", role)
	}
	fmt.Fprintf(&b, " Your main goal: %s.", goal)

	if len(a.Tools) > 0 {
		var names []string
		for _, iri := range a.Tools {
			if t := p.ToolByIRI(iri); t != nil && t.Name != "" {
				names = append(names, t.Name)
			} else {
				names = append(names, generator.Fragment(iri))
			}
		}
		fmt.Fprintf(&b, " You can use these tools: %s.", strings.Join(names, ", "))
	}
	return b.String()
}

var scriptTmpl = template.Must(template.New("autogen").Funcs(template.FuncMap{
	"pystr": generator.PyString,
	"join":  strings.Join,
}).Parse(script))

const script = `"""
Auto-generated AutoGen script: {{.Name}}
Source: {{.Source}} (AgentO knowledge graph)
"""

import autogen

llm_config = {"config_list": autogen.config_list_from_json("OAI_CONFIG_LIST")}

{{range .Agents}}
{{.Var}} = autogen.AssistantAgent(
    name="{{pystr .Name}}",
    system_message="{{pystr .SystemMessage}}",
    llm_config=llm_config,
)
{{end}}
user_proxy = autogen.UserProxyAgent(
    name="manager",
    human_input_mode="NEVER",
    code_execution_config=False,
)

groupchat = autogen.GroupChat(
    agents=[user_proxy, {{join .AgentVars ", "}}],
    messages=[],
    max_round={{.MaxRound}},
    speaker_selection_method="round_robin",
)
manager = autogen.GroupChatManager(groupchat=groupchat, llm_config=llm_config)

if __name__ == "__main__":
    print("Starting {{.Name}} group chat...")
    user_proxy.initiate_chat(
        manager,
        message="{{pystr .Mission}}",
    )
`
