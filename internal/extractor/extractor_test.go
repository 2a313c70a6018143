package extractor

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"Ontoflow/pkg/types"
)

func writeGraph(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write test graph: %v", err)
	}
	return path
}

const preamble = `@prefix onto: <http://www.w3id.org/agentic-ai/onto#> .
@prefix dct: <http://purl.org/dc/terms/> .
@prefix ex: <http://example.org/email#> .

`

// Two agents, two chained tasks, one tool and an explicit workflow: the
// smallest graph exercising every extraction path.
const emailGraph = preamble + `ex:Classifier a onto:Agent ;
    onto:agentID "agent-classifier" ;
    onto:agentRole "Email Classifier" ;
    onto:hasGoal ex:ClassifyGoal ;
    onto:usesTool ex:EmailFetchTool .

ex:ClassifyGoal a onto:Goal ;
    dct:description "Sort incoming email by intent" .

ex:Responder a onto:Agent ;
    onto:agentID "agent-responder" ;
    onto:agentRole "Email Responder" ;
    dct:description "Writes polite replies to classified email." .

ex:ClassifyTask a onto:Task ;
    dct:title "Classify Email" ;
    dct:description "Read the inbox and label each email by intent." ;
    onto:taskExpectedOutput "A labeled list of emails" ;
    onto:assignedTo ex:Classifier .

ex:RespondTask a onto:Task ;
    dct:title "Respond to Email" ;
    dct:description "Draft a reply for each labeled email." ;
    onto:taskExpectedOutput "Draft replies" ;
    onto:assignedTo ex:Responder ;
    onto:dependsOn ex:ClassifyTask .

ex:EmailFetchTool a onto:Tool ;
    dct:title "Email Fetch Tool" ;
    dct:description "Fetches email over IMAP." ;
    onto:accessesResource "imap://mail.example.org" .

ex:Triage a onto:WorkflowPattern ;
    dct:title "Email Triage Workflow" ;
    onto:hasWorkflowStep ex:Step1, ex:Step2 .

ex:Step1 a onto:WorkflowStep ;
    onto:stepOrder "1" ;
    onto:hasAssociatedTask ex:ClassifyTask ;
    onto:nextStep ex:Step2 .

ex:Step2 a onto:WorkflowStep ;
    onto:stepOrder "2" ;
    onto:hasAssociatedTask ex:RespondTask .
`

func TestExtractEmailGraph(t *testing.T) {
	path := writeGraph(t, "email.ttl", emailGraph)

	p, err := Extract(path, Options{})
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	t.Run("Agents", func(t *testing.T) {
		if len(p.Agents) != 2 {
			t.Fatalf("Expected 2 agents, got %d", len(p.Agents))
		}
		classifier := p.Agents[0]
		if classifier.Role != "Email Classifier" {
			t.Errorf("Role = %q", classifier.Role)
		}
		if classifier.AgentID != "agent-classifier" {
			t.Errorf("AgentID = %q", classifier.AgentID)
		}
		// hasGoal points at a Goal node; its description is the goal text.
		if classifier.Goal != "Sort incoming email by intent" {
			t.Errorf("Goal = %q", classifier.Goal)
		}
		if len(classifier.Tools) != 1 || classifier.Tools[0] != "http://example.org/email#EmailFetchTool" {
			t.Errorf("Tools = %v", classifier.Tools)
		}
		if p.Agents[1].Backstory != "Writes polite replies to classified email." {
			t.Errorf("Backstory = %q", p.Agents[1].Backstory)
		}
	})

	t.Run("Tasks", func(t *testing.T) {
		if len(p.Tasks) != 2 {
			t.Fatalf("Expected 2 tasks, got %d", len(p.Tasks))
		}
		respond := p.TaskByIRI("http://example.org/email#RespondTask")
		if respond == nil {
			t.Fatal("RespondTask missing")
		}
		if respond.AgentIRI != "http://example.org/email#Responder" {
			t.Errorf("AgentIRI = %q", respond.AgentIRI)
		}
		if respond.ExpectedOutput != "Draft replies" {
			t.Errorf("ExpectedOutput = %q", respond.ExpectedOutput)
		}
		if len(respond.DependsOn) != 1 || respond.DependsOn[0] != "http://example.org/email#ClassifyTask" {
			t.Errorf("DependsOn = %v", respond.DependsOn)
		}
	})

	t.Run("Tools", func(t *testing.T) {
		if len(p.Tools) != 1 {
			t.Fatalf("Expected 1 tool, got %d", len(p.Tools))
		}
		tool := p.Tools[0]
		if tool.Name != "Email Fetch Tool" {
			t.Errorf("Name = %q", tool.Name)
		}
		if tool.Resource != "imap://mail.example.org" {
			t.Errorf("Resource = %q", tool.Resource)
		}
	})

	t.Run("Workflow step order", func(t *testing.T) {
		if len(p.Workflows) != 1 {
			t.Fatalf("Expected 1 workflow, got %d", len(p.Workflows))
		}
		steps := p.Workflows[0].Steps
		if len(steps) != 2 {
			t.Fatalf("Expected 2 steps, got %d", len(steps))
		}
		if steps[0].TaskIRI != "http://example.org/email#ClassifyTask" {
			t.Errorf("First step task = %q", steps[0].TaskIRI)
		}
		if steps[1].TaskIRI != "http://example.org/email#RespondTask" {
			t.Errorf("Second step task = %q", steps[1].TaskIRI)
		}
	})

	t.Run("Ordered tasks follow workflow", func(t *testing.T) {
		ordered := p.OrderedTasks()
		if len(ordered) != 2 {
			t.Fatalf("Expected 2 ordered tasks, got %d", len(ordered))
		}
		if ordered[0].Title != "Classify Email" || ordered[1].Title != "Respond to Email" {
			t.Errorf("Order = %q, %q", ordered[0].Title, ordered[1].Title)
		}
	})

	t.Run("Project name and process", func(t *testing.T) {
		if p.Name != "EmailTriageWorkflow" {
			t.Errorf("Name = %q", p.Name)
		}
		if p.Process != types.ProcessSequential {
			t.Errorf("Process = %q", p.Process)
		}
	})
}

// The same facts serialized as RDF/XML must yield the same model: extraction
// order is pinned to IRIs, not to the order triples appear in the file.
func TestExtractFormatIndependence(t *testing.T) {
	rdfxml := `<?xml version="1.0"?>
<rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#"
         xmlns:onto="http://www.w3id.org/agentic-ai/onto#"
         xmlns:dct="http://purl.org/dc/terms/">
  <rdf:Description rdf:about="http://example.org/email#Responder">
    <rdf:type rdf:resource="http://www.w3id.org/agentic-ai/onto#Agent"/>
    <onto:agentID>agent-responder</onto:agentID>
    <onto:agentRole>Email Responder</onto:agentRole>
  </rdf:Description>
  <rdf:Description rdf:about="http://example.org/email#Classifier">
    <rdf:type rdf:resource="http://www.w3id.org/agentic-ai/onto#Agent"/>
    <onto:agentID>agent-classifier</onto:agentID>
    <onto:agentRole>Email Classifier</onto:agentRole>
  </rdf:Description>
  <rdf:Description rdf:about="http://example.org/email#RespondTask">
    <rdf:type rdf:resource="http://www.w3id.org/agentic-ai/onto#Task"/>
    <dct:title>Respond to Email</dct:title>
    <onto:assignedTo rdf:resource="http://example.org/email#Responder"/>
    <onto:dependsOn rdf:resource="http://example.org/email#ClassifyTask"/>
  </rdf:Description>
  <rdf:Description rdf:about="http://example.org/email#ClassifyTask">
    <rdf:type rdf:resource="http://www.w3id.org/agentic-ai/onto#Task"/>
    <dct:title>Classify Email</dct:title>
    <onto:assignedTo rdf:resource="http://example.org/email#Classifier"/>
  </rdf:Description>
</rdf:RDF>
`
	turtle := preamble + `ex:Classifier a onto:Agent ;
    onto:agentID "agent-classifier" ;
    onto:agentRole "Email Classifier" .

ex:Responder a onto:Agent ;
    onto:agentID "agent-responder" ;
    onto:agentRole "Email Responder" .

ex:ClassifyTask a onto:Task ;
    dct:title "Classify Email" ;
    onto:assignedTo ex:Classifier .

ex:RespondTask a onto:Task ;
    dct:title "Respond to Email" ;
    onto:assignedTo ex:Responder ;
    onto:dependsOn ex:ClassifyTask .
`

	ttlProject, err := Extract(writeGraph(t, "same.ttl", turtle), Options{})
	if err != nil {
		t.Fatalf("Turtle extract failed: %v", err)
	}
	xmlProject, err := Extract(writeGraph(t, "same.rdf", rdfxml), Options{})
	if err != nil {
		t.Fatalf("RDF/XML extract failed: %v", err)
	}

	// Only the source file name may differ.
	ttlProject.Source = ""
	xmlProject.Source = ""
	ttlProject.Name = ""
	xmlProject.Name = ""
	if !reflect.DeepEqual(ttlProject, xmlProject) {
		t.Errorf("Models differ across serializations:\n  ttl: %+v\n  rdf: %+v", ttlProject, xmlProject)
	}
}

func TestExtractUnassignedTask(t *testing.T) {
	graph := preamble + `ex:Classifier a onto:Agent ;
    onto:agentRole "Email Classifier" .

ex:OrphanTask a onto:Task ;
    dct:title "Orphan" .
`
	_, err := Extract(writeGraph(t, "orphan.ttl", graph), Options{})
	if err == nil {
		t.Fatal("Expected a schema error for the unassigned task")
	}

	var schemaErr *types.SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("Expected *types.SchemaError, got %T: %v", err, err)
	}
	if schemaErr.Relation != "assignedTo" {
		t.Errorf("Relation = %q, want assignedTo", schemaErr.Relation)
	}
	if schemaErr.Entity != "http://example.org/email#OrphanTask" {
		t.Errorf("Entity = %q", schemaErr.Entity)
	}
}

func TestExtractTaskAssignedTwice(t *testing.T) {
	graph := preamble + `ex:A a onto:Agent .
ex:B a onto:Agent .

ex:SharedTask a onto:Task ;
    onto:assignedTo ex:A, ex:B .
`
	_, err := Extract(writeGraph(t, "shared.ttl", graph), Options{})
	var schemaErr *types.SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("Expected *types.SchemaError, got %T: %v", err, err)
	}
}

// Ownership can also be declared from the agent side via :hasTask.
func TestExtractReverseOwnership(t *testing.T) {
	graph := preamble + `ex:Classifier a onto:Agent ;
    onto:agentRole "Email Classifier" ;
    onto:hasTask ex:ClassifyTask .

ex:ClassifyTask a onto:Task ;
    dct:title "Classify Email" .
`
	p, err := Extract(writeGraph(t, "reverse.ttl", graph), Options{})
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if p.Tasks[0].AgentIRI != "http://example.org/email#Classifier" {
		t.Errorf("AgentIRI = %q", p.Tasks[0].AgentIRI)
	}
}

func TestExtractDuplicateAgentID(t *testing.T) {
	graph := preamble + `ex:A a onto:Agent ;
    onto:agentID "agent-1" .

ex:B a onto:Agent ;
    onto:agentID "agent-1" .
`
	_, err := Extract(writeGraph(t, "dup.ttl", graph), Options{})
	var schemaErr *types.SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("Expected *types.SchemaError, got %T: %v", err, err)
	}
	if schemaErr.Relation != "agentID" {
		t.Errorf("Relation = %q, want agentID", schemaErr.Relation)
	}
}

func TestExtractDependencyCycle(t *testing.T) {
	graph := preamble + `ex:A a onto:Agent .

ex:T1 a onto:Task ;
    onto:assignedTo ex:A ;
    onto:dependsOn ex:T2 .

ex:T2 a onto:Task ;
    onto:assignedTo ex:A ;
    onto:dependsOn ex:T1 .
`
	_, err := Extract(writeGraph(t, "cycle.ttl", graph), Options{})
	var schemaErr *types.SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("Expected *types.SchemaError, got %T: %v", err, err)
	}
	if schemaErr.Relation != "dependsOn" {
		t.Errorf("Relation = %q, want dependsOn", schemaErr.Relation)
	}
}

func TestExtractUnknownDependency(t *testing.T) {
	graph := preamble + `ex:A a onto:Agent .

ex:T1 a onto:Task ;
    onto:assignedTo ex:A ;
    onto:dependsOn ex:Ghost .
`
	_, err := Extract(writeGraph(t, "ghost.ttl", graph), Options{})
	var schemaErr *types.SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("Expected *types.SchemaError, got %T: %v", err, err)
	}
}

// Steps without stepOrder are chained via nextStep from the head.
func TestExtractNextStepChain(t *testing.T) {
	graph := preamble + `ex:A a onto:Agent .

ex:First a onto:Task ;
    onto:assignedTo ex:A .
ex:Second a onto:Task ;
    onto:assignedTo ex:A .

ex:Flow a onto:WorkflowPattern ;
    dct:title "Chained" ;
    onto:hasWorkflowStep ex:S1, ex:S2 .

ex:S2 a onto:WorkflowStep ;
    onto:hasAssociatedTask ex:Second .

ex:S1 a onto:WorkflowStep ;
    onto:hasAssociatedTask ex:First ;
    onto:nextStep ex:S2 .
`
	p, err := Extract(writeGraph(t, "chain.ttl", graph), Options{})
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	steps := p.Workflows[0].Steps
	if steps[0].TaskIRI != "http://example.org/email#First" {
		t.Errorf("Head step task = %q", steps[0].TaskIRI)
	}
	if steps[1].TaskIRI != "http://example.org/email#Second" {
		t.Errorf("Tail step task = %q", steps[1].TaskIRI)
	}
}

func TestExtractHierarchicalProcess(t *testing.T) {
	graph := preamble + `ex:A a onto:Agent .

ex:T a onto:Task ;
    onto:assignedTo ex:A .

ex:Flow a onto:WorkflowPattern ;
    dct:title "Hierarchical Review Flow" .
`
	p, err := Extract(writeGraph(t, "hier.ttl", graph), Options{})
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if p.Process != types.ProcessHierarchical {
		t.Errorf("Process = %q, want hierarchical", p.Process)
	}
}

func TestExtractNameFallsBackToFilename(t *testing.T) {
	graph := preamble + `ex:A a onto:Agent ;
    onto:agentRole "Solo" .
`
	p, err := Extract(writeGraph(t, "my-solo_graph.ttl", graph), Options{})
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if p.Name != "mysolograph" {
		t.Errorf("Name = %q", p.Name)
	}
}
