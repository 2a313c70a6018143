package types

import "fmt"

// ParseError reports a knowledge graph file that could not be decoded.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// SchemaError reports a graph that decoded cleanly but violates a required
// ontology relationship. Entity and Relation identify the offending node so
// the user can find it in the source graph.
type SchemaError struct {
	Entity   string
	Relation string
	Reason   string
}

func (e *SchemaError) Error() string {
	if e.Relation != "" {
		return fmt.Sprintf("schema violation at <%s> (%s): %s", e.Entity, e.Relation, e.Reason)
	}
	return fmt.Sprintf("schema violation at <%s>: %s", e.Entity, e.Reason)
}

// MappingError reports a valid intermediate model that a mapper could not
// render for its target framework.
type MappingError struct {
	Target string
	Entity string
	Reason string
}

func (e *MappingError) Error() string {
	return fmt.Sprintf("%s mapper: cannot render <%s>: %s", e.Target, e.Entity, e.Reason)
}
