package generator

import (
	"regexp"
	"strings"

	"Ontoflow/pkg/types"
)

var (
	camelBoundary  = regexp.MustCompile(`(?:[a-z0-9])([A-Z])`)
	abbrevBoundary = regexp.MustCompile(`([A-Z])([A-Z][a-z])`)
	invalidChars   = regexp.MustCompile(`[^a-zA-Z0-9_]`)
	underscoreRuns = regexp.MustCompile(`_+`)
)

// Fragment returns the local name of an IRI: the part after the last '#',
// or after the last '/' when there is no fragment.
func Fragment(iri string) string {
	if i := strings.LastIndex(iri, "#"); i >= 0 {
		return iri[i+1:]
	}
	if i := strings.LastIndex(iri, "/"); i >= 0 {
		return iri[i+1:]
	}
	return iri
}

// PyVar converts an IRI fragment into a snake_case Python identifier:
// "http://…/onto#SeniorEngineerAgent" → "senior_engineer_agent".
func PyVar(iri string) string {
	name := Fragment(iri)
	name = insertUnderscores(name)
	name = invalidChars.ReplaceAllString(name, "_")
	name = underscoreRuns.ReplaceAllString(name, "_")
	name = strings.Trim(name, "_")
	name = strings.ToLower(name)
	if name == "" {
		return "unnamed"
	}
	if name[0] >= '0' && name[0] <= '9' {
		name = "_" + name
	}
	return name
}

func insertUnderscores(s string) string {
	s = camelBoundary.ReplaceAllStringFunc(s, func(m string) string {
		return m[:1] + "_" + m[1:]
	})
	s = abbrevBoundary.ReplaceAllString(s, "${1}_${2}")
	return s
}

// PyClass converts a label or IRI fragment into a CamelCase class name:
// "email fetch tool" → "EmailFetchTool".
func PyClass(s string) string {
	s = invalidChars.ReplaceAllString(strings.ReplaceAll(s, " ", "_"), "_")
	var b strings.Builder
	for _, w := range strings.Split(s, "_") {
		if w == "" {
			continue
		}
		b.WriteString(strings.ToUpper(w[:1]))
		b.WriteString(w[1:])
	}
	if b.Len() == 0 {
		return "Unnamed"
	}
	return b.String()
}

// PyString escapes a value for a double-quoted Python string literal.
func PyString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	s = strings.ReplaceAll(s, "\n", `\n`)
	s = strings.ReplaceAll(s, "\t", `\t`)
	return s
}

// VarTable assigns a unique Python variable to every live entity in the
// model. A collision after sanitization (two IRIs reducing to the same
// identifier) is a construct the mappers cannot render.
func VarTable(target Target, p *types.Project) (map[string]string, error) {
	vars := make(map[string]string)
	taken := make(map[string]string)

	assign := func(iri string) error {
		if _, ok := vars[iri]; ok {
			return nil
		}
		v := PyVar(iri)
		if prev, clash := taken[v]; clash {
			return &types.MappingError{
				Target: string(target),
				Entity: iri,
				Reason: "identifier " + v + " collides with <" + prev + ">",
			}
		}
		vars[iri] = v
		taken[v] = iri
		return nil
	}

	for _, a := range p.LiveAgents() {
		if err := assign(a.IRI); err != nil {
			return nil, err
		}
	}
	for _, t := range p.OrderedTasks() {
		if err := assign(t.IRI); err != nil {
			return nil, err
		}
	}
	for _, tool := range p.LiveTools() {
		if err := assign(tool.IRI); err != nil {
			return nil, err
		}
	}
	return vars, nil
}
