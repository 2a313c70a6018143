/*
Copyright © 2026 Ontoflow Authors
*/
package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "onto",
	Short: "Generate agentic AI scripts from knowledge graphs",
	Long: `Onto converts RDF/Turtle knowledge graphs that follow the agentic AI
ontology (agentO) into runnable multi-agent Python scripts, targeting the
CrewAI and AutoGen frameworks.

Examples:
  onto run workflow.ttl              Convert a graph for both frameworks
  onto run workflow.rdf -o scripts   Write scripts to a directory
  onto validate workflow.ttl         Check a graph without generating code
  onto --help                        Show this help message`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	// Global flags available to all commands
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.ontoflow.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
}
