/*
Copyright © 2026 Ontoflow Authors
*/
package cli

import (
	"errors"
	"fmt"
	"os"
	"time"

	"Ontoflow/internal/extractor"
	"Ontoflow/pkg/types"

	"github.com/spf13/cobra"
)

var validateTimeout time.Duration

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate <graph.(ttl|rdf)>",
	Short: "Validate a knowledge graph file",
	Long: `Validate parses a knowledge graph and checks it against the agentO
ontology without generating any code.

It reports syntax errors (malformed Turtle/RDF-XML) and schema violations
such as a task with no assigned agent, duplicate identifiers, or a cyclic
workflow ordering.

Examples:
  onto validate workflow.ttl
  onto validate examples/email_workflow.rdf`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		graphFile := args[0]
		fmt.Printf("Validating graph: %s\n", graphFile)

		project, err := extractor.Extract(graphFile, extractor.Options{
			ParseTimeout: validateTimeout,
		})
		if err != nil {
			var parseErr *types.ParseError
			var schemaErr *types.SchemaError
			switch {
			case errors.As(err, &parseErr):
				fmt.Printf("%s✗ Syntax error:%s %v\n", ColorRed, ColorReset, parseErr.Err)
			case errors.As(err, &schemaErr):
				fmt.Printf("%s✗ Schema violation:%s %v\n", ColorRed, ColorReset, schemaErr)
			default:
				fmt.Printf("%s✗ Error:%s %v\n", ColorRed, ColorReset, err)
			}
			os.Exit(1)
		}

		fmt.Printf("%s✓ Graph is valid%s\n\n", ColorGreen, ColorReset)
		fmt.Printf("  Workflow: %s (%s)\n", project.Name, project.Process)
		fmt.Printf("  Agents:   %d\n", len(project.Agents))
		fmt.Printf("  Tasks:    %d (%d in workflow order)\n", len(project.Tasks), len(project.OrderedTasks()))
		fmt.Printf("  Tools:    %d\n", len(project.Tools))

		dead := len(project.Tasks) - len(project.OrderedTasks())
		if dead > 0 {
			note := fmt.Sprintf("Note: %d task(s) are not referenced by any workflow and will be excluded from generated code.", dead)
			fmt.Printf("\n  %s\n", ColorText(note, ColorYellow))
		}
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().DurationVar(&validateTimeout, "parse-timeout", 0, "wall-clock ceiling for the RDF parse step (default 30s)")
}
