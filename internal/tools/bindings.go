// Package tools maps knowledge graph tool labels onto concrete classes of
// the target frameworks, so generated code imports a real implementation
// when one exists instead of emitting a stub.
package tools

import (
	"strings"
	"sync"
)

// Binding describes a known target-framework tool class.
type Binding struct {
	Module string // Python module to import from, e.g. "crewai_tools"
	Class  string // class name, e.g. "SerperDevTool"
}

// Registry holds label → binding mappings.
type Registry struct {
	mu       sync.RWMutex
	bindings map[string]Binding
}

var globalRegistry = &Registry{
	bindings: make(map[string]Binding),
}

// Register adds a binding to the global registry under its class name.
func Register(b Binding) {
	globalRegistry.mu.Lock()
	defer globalRegistry.mu.Unlock()
	globalRegistry.bindings[b.Class] = b
}

// Resolve looks a KG tool label up, exact match first, then fuzzy:
// "Serper Dev Tool" and "SerperDev" both resolve to SerperDevTool.
func Resolve(label string) (Binding, bool) {
	globalRegistry.mu.RLock()
	defer globalRegistry.mu.RUnlock()

	if b, ok := globalRegistry.bindings[label]; ok {
		return b, true
	}

	needle := normalize(label)
	if needle == "" {
		return Binding{}, false
	}
	for class, b := range globalRegistry.bindings {
		key := normalize(class)
		if key == needle || key == needle+"tool" || needle == key+"tool" {
			return b, true
		}
	}
	return Binding{}, false
}

// Names returns every registered class name.
func Names() []string {
	globalRegistry.mu.RLock()
	defer globalRegistry.mu.RUnlock()

	out := make([]string, 0, len(globalRegistry.bindings))
	for name := range globalRegistry.bindings {
		out = append(out, name)
	}
	return out
}

func normalize(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// The crewai_tools classes the agentO graphs in the wild reference.
func init() {
	for _, class := range []string{
		"SerperDevTool",
		"ScrapeWebsiteTool",
		"WebsiteSearchTool",
		"FileReadTool",
		"TXTSearchTool",
		"DirectoryReadTool",
		"DOCXSearchTool",
		"PDFSearchTool",
		"CSVSearchTool",
		"JSONSearchTool",
		"MDXSearchTool",
		"YoutubeVideoSearchTool",
	} {
		Register(Binding{Module: "crewai_tools", Class: class})
	}
}
