package generator

import (
	"errors"
	"strings"
	"testing"

	"Ontoflow/pkg/types"
)

func TestFragment(t *testing.T) {
	cases := []struct {
		iri  string
		want string
	}{
		{"http://example.org/onto#EmailClassifier", "EmailClassifier"},
		{"http://example.org/agents/Responder", "Responder"},
		{"PlainName", "PlainName"},
	}
	for _, c := range cases {
		if got := Fragment(c.iri); got != c.want {
			t.Errorf("Fragment(%q) = %q, want %q", c.iri, got, c.want)
		}
	}
}

func TestPyVar(t *testing.T) {
	cases := []struct {
		iri  string
		want string
	}{
		{"http://example.org/onto#EmailClassifier", "email_classifier"},
		{"http://example.org/onto#SeniorEngineerAgent", "senior_engineer_agent"},
		{"http://example.org/onto#PDFSearchTool", "pdf_search_tool"},
		{"http://example.org/onto#classify-task", "classify_task"},
		{"http://example.org/onto#2ndStep", "_2nd_step"},
		{"http://example.org/onto#", "unnamed"},
	}
	for _, c := range cases {
		if got := PyVar(c.iri); got != c.want {
			t.Errorf("PyVar(%q) = %q, want %q", c.iri, got, c.want)
		}
	}
}

func TestPyClass(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"email fetch tool", "EmailFetchTool"},
		{"WebScraper", "WebScraper"},
		{"", "Unnamed"},
	}
	for _, c := range cases {
		if got := PyClass(c.in); got != c.want {
			t.Errorf("PyClass(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestPyString(t *testing.T) {
	got := PyString("say \"hi\"\nnew\tline \\ end")
	want := `say \"hi\"\nnew\tline \\ end`
	if got != want {
		t.Errorf("PyString = %q, want %q", got, want)
	}
}

func TestVarTableCollision(t *testing.T) {
	// Two IRIs reducing to the same identifier cannot both be rendered.
	p := &types.Project{
		Agents: []types.Agent{
			{IRI: "http://a.org#Writer"},
			{IRI: "http://b.org#writer"},
		},
	}

	_, err := VarTable(TargetCrewAI, p)
	if err == nil {
		t.Fatal("Expected a collision error")
	}
	var mapErr *types.MappingError
	if !strings.Contains(err.Error(), "collides") {
		t.Errorf("Error does not mention the collision: %v", err)
	}
	if !errors.As(err, &mapErr) {
		t.Fatalf("Expected *types.MappingError, got %T", err)
	}
}

func TestVarTableAssignsAllLiveEntities(t *testing.T) {
	p := &types.Project{
		Agents: []types.Agent{{IRI: "http://x.org#Agent1", Tools: []string{"http://x.org#ToolA"}}},
		Tasks:  []types.Task{{IRI: "http://x.org#Task1", AgentIRI: "http://x.org#Agent1"}},
		Tools:  []types.Tool{{IRI: "http://x.org#ToolA"}},
	}

	vars, err := VarTable(TargetAutoGen, p)
	if err != nil {
		t.Fatalf("VarTable failed: %v", err)
	}
	for _, iri := range []string{"http://x.org#Agent1", "http://x.org#Task1", "http://x.org#ToolA"} {
		if vars[iri] == "" {
			t.Errorf("No variable assigned for %s", iri)
		}
	}
}
