// Package graph loads RDF knowledge graphs into an in-memory triple index.
package graph

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"Ontoflow/pkg/types"

	"github.com/knakk/rdf"
)

// DefaultParseTimeout bounds the decode step against pathological input.
const DefaultParseTimeout = 30 * time.Second

// Graph indexes triples as subject → predicate → objects, the shape every
// extractor query needs: "give me the objects of (s, p)".
type Graph struct {
	index map[string]map[string][]string
	// subjects in first-seen order, for deterministic iteration helpers
	subjects []string
}

// Load reads a Turtle (.ttl) or RDF/XML (.rdf) file into a Graph.
// A zero timeout falls back to DefaultParseTimeout.
func Load(path string, timeout time.Duration) (*Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &types.ParseError{Path: path, Err: err}
	}
	if timeout <= 0 {
		timeout = DefaultParseTimeout
	}

	primary, secondary := formatsFor(path)

	triples, err := decodeWithTimeout(data, primary, timeout)
	if err == nil && len(triples) == 0 {
		// The RDF/XML decoder yields no triples and no error on input that
		// is not XML at all, so "decoded nothing" must count as a parse
		// failure or malformed files would load as empty graphs.
		err = fmt.Errorf("no triples decoded as %s", formatName(primary))
	}
	if err != nil {
		// The original pipeline retried the other serialization before
		// giving up; keep that behavior so a .ttl extension on RDF/XML
		// content (and vice versa) still loads. The retry only counts if
		// it actually produces triples.
		retried, retryErr := decodeWithTimeout(data, secondary, timeout)
		if retryErr != nil || len(retried) == 0 {
			return nil, &types.ParseError{Path: path, Err: err}
		}
		triples = retried
	}

	g := &Graph{index: make(map[string]map[string][]string)}
	for _, t := range triples {
		g.add(t.Subj.String(), t.Pred.String(), t.Obj.String())
	}
	return g, nil
}

func formatsFor(path string) (rdf.Format, rdf.Format) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".rdf", ".xml", ".owl":
		return rdf.RDFXML, rdf.Turtle
	default:
		return rdf.Turtle, rdf.RDFXML
	}
}

func formatName(f rdf.Format) string {
	if f == rdf.RDFXML {
		return "RDF/XML"
	}
	return "Turtle"
}

type decodeResult struct {
	triples []rdf.Triple
	err     error
}

func decodeWithTimeout(data []byte, format rdf.Format, timeout time.Duration) ([]rdf.Triple, error) {
	done := make(chan decodeResult, 1)
	go func() {
		dec := rdf.NewTripleDecoder(bytes.NewReader(data), format)
		triples, err := dec.DecodeAll()
		done <- decodeResult{triples, err}
	}()

	select {
	case res := <-done:
		return res.triples, res.err
	case <-time.After(timeout):
		return nil, fmt.Errorf("decoding exceeded %s", timeout)
	}
}

func (g *Graph) add(s, p, o string) {
	preds, ok := g.index[s]
	if !ok {
		preds = make(map[string][]string)
		g.index[s] = preds
		g.subjects = append(g.subjects, s)
	}
	preds[p] = append(preds[p], o)
}

// Objects returns all objects of (subject, predicate).
func (g *Graph) Objects(subject, predicate string) []string {
	return g.index[subject][predicate]
}

// Value returns the first object of (subject, predicate), or "".
func (g *Graph) Value(subject, predicate string) string {
	if objs := g.index[subject][predicate]; len(objs) > 0 {
		return objs[0]
	}
	return ""
}

// FirstValue returns the first non-empty Value across the given predicates.
func (g *Graph) FirstValue(subject string, predicates ...string) string {
	for _, p := range predicates {
		if v := g.Value(subject, p); v != "" {
			return v
		}
	}
	return ""
}

// ObjectsAny returns the merged objects of (subject, p) for every predicate,
// deduplicated, preserving predicate then insertion order.
func (g *Graph) ObjectsAny(subject string, predicates ...string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, p := range predicates {
		for _, o := range g.index[subject][p] {
			if !seen[o] {
				out = append(out, o)
				seen[o] = true
			}
		}
	}
	return out
}

// Subjects returns every subject typed rdf:type class, sorted by IRI.
// Sorting makes extraction order independent of the serialization format.
func (g *Graph) Subjects(typePredicate string, classes ...string) []string {
	var out []string
	for _, s := range g.subjects {
		for _, o := range g.index[s][typePredicate] {
			if contains(classes, o) {
				out = append(out, s)
				break
			}
		}
	}
	sort.Strings(out)
	return out
}

// SubjectsWith returns every subject holding (predicate, object), sorted.
// This is the reverse lookup used to resolve task ownership from :hasTask.
func (g *Graph) SubjectsWith(predicate, object string) []string {
	var out []string
	for _, s := range g.subjects {
		if contains(g.index[s][predicate], object) {
			out = append(out, s)
		}
	}
	sort.Strings(out)
	return out
}

// Len returns the number of distinct subjects.
func (g *Graph) Len() int { return len(g.subjects) }

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
