// Package ontology holds the vocabulary of the agentic AI ontology (agentO).
// The IRIs are an external contract with the ontology publisher and must not
// be changed here.
package ontology

// Namespaces.
const (
	AgentO  = "http://www.w3id.org/agentic-ai/onto#"
	DCTerms = "http://purl.org/dc/terms/"
	RDFNS   = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	RDFSNS  = "http://www.w3.org/2000/01/rdf-schema#"
)

// rdf / rdfs / dcterms predicates.
const (
	RDFType     = RDFNS + "type"
	RDFSLabel   = RDFSNS + "label"
	RDFSComment = RDFSNS + "comment"
	Title       = DCTerms + "title"
	Description = DCTerms + "description"
)

// agentO classes.
const (
	ClassAgent           = AgentO + "Agent"
	ClassLLMAgent        = AgentO + "LLMAgent"
	ClassTask            = AgentO + "Task"
	ClassTool            = AgentO + "Tool"
	ClassGoal            = AgentO + "Goal"
	ClassTeam            = AgentO + "Team"
	ClassWorkflowPattern = AgentO + "WorkflowPattern"
	ClassWorkflowStep    = AgentO + "WorkflowStep"
	ClassStartStep       = AgentO + "StartStep"
	ClassEndStep         = AgentO + "EndStep"
)

// agentO properties.
const (
	AgentRole          = AgentO + "agentRole"
	AgentID            = AgentO + "agentID"
	HasRole            = AgentO + "hasRole"
	HasGoal            = AgentO + "hasGoal"
	HasAgentGoal       = AgentO + "hasAgentGoal"
	HasTask            = AgentO + "hasTask"
	HasAgent           = AgentO + "hasAgent"
	HasTool            = AgentO + "hasTool"
	UsesTool           = AgentO + "usesTool"
	InteractsWith      = AgentO + "interactsWith"
	AssignedTo         = AgentO + "assignedTo"
	DependsOn          = AgentO + "dependsOn"
	TaskExpectedOutput = AgentO + "taskExpectedOutput"
	AccessesResource   = AgentO + "accessesResource"
	HasDescription     = AgentO + "hasDescription"
	HasWorkflowStep    = AgentO + "hasWorkflowStep"
	PerformedBy        = AgentO + "performedBy"
	PerformedByAgent   = AgentO + "performedByAgent"
	NextStep           = AgentO + "nextStep"
	StepOrder          = AgentO + "stepOrder"
	HasAssociatedTask  = AgentO + "hasAssociatedTask"
)

// AgentClasses lists the classes whose instances are agents. Some published
// graphs type agents as :Agent, others as the :LLMAgent subclass.
var AgentClasses = []string{ClassAgent, ClassLLMAgent}

// StepClasses lists the classes whose instances are workflow steps.
var StepClasses = []string{ClassWorkflowStep, ClassStartStep, ClassEndStep}
