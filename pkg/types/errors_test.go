package types

import (
	"errors"
	"io/fs"
	"strings"
	"testing"
)

func TestParseErrorUnwrap(t *testing.T) {
	inner := fs.ErrNotExist
	err := error(&ParseError{Path: "missing.ttl", Err: inner})

	if !errors.Is(err, fs.ErrNotExist) {
		t.Error("ParseError should unwrap to its cause")
	}
	if !strings.Contains(err.Error(), "missing.ttl") {
		t.Errorf("Error = %q", err.Error())
	}
}

func TestSchemaErrorMessage(t *testing.T) {
	err := &SchemaError{
		Entity:   "http://example.org#OrphanTask",
		Relation: "assignedTo",
		Reason:   "task has no assigned agent",
	}
	msg := err.Error()
	for _, want := range []string{"<http://example.org#OrphanTask>", "assignedTo", "no assigned agent"} {
		if !strings.Contains(msg, want) {
			t.Errorf("Message missing %q: %q", want, msg)
		}
	}

	bare := &SchemaError{Entity: "x", Reason: "broken"}
	if strings.Contains(bare.Error(), "()") {
		t.Errorf("Empty relation should be omitted: %q", bare.Error())
	}
}

func TestMappingErrorMessage(t *testing.T) {
	err := &MappingError{Target: "crewai", Entity: "x", Reason: "identifier clash"}
	if !strings.Contains(err.Error(), "crewai mapper") {
		t.Errorf("Message = %q", err.Error())
	}
}
