/*
Copyright © 2026 Ontoflow Authors
*/
package main

import (
	"Ontoflow/internal/cli"

	// Mappers register themselves with the generator registry.
	_ "Ontoflow/internal/generator/autogen"
	_ "Ontoflow/internal/generator/crewai"
)

func main() {
	cli.Execute()
}
