/*
Copyright © 2026 Ontoflow Authors
*/
package cli

import (
	"errors"
	"fmt"
	"os"
	"time"

	"Ontoflow/internal/engine"
	"Ontoflow/internal/generator"
	"Ontoflow/internal/logging"
	"Ontoflow/internal/memory"
	"Ontoflow/internal/vectorstore"
	"Ontoflow/pkg/types"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// Exit codes. Partial failure is distinguishable from a fatal one so
// callers can keep the artifact that did generate.
const (
	ExitOK      = 0
	ExitFatal   = 1 // extractor failed, or every mapper failed
	ExitPartial = 2 // at least one mapper failed, at least one succeeded
)

var (
	outputDir     string
	targetFlag    string
	parseTimeout  time.Duration
	enableLogging bool
	noHistory     bool
)

var runCmd = &cobra.Command{
	Use:   "run <graph.(ttl|rdf)>",
	Short: "Convert a knowledge graph into agent scripts",
	Long: `Run parses a knowledge graph file, extracts the agents, tasks, tools
and workflow it describes, and generates one Python script per target
framework.

The extraction happens once; both mappers render the same model, so one
framework failing does not block the other.

Targets:
  --target crewai     Generate only the CrewAI script
  --target autogen    Generate only the AutoGen script
  --target all        Generate both (default)

Exit codes:
  0  all requested scripts generated
  1  the graph could not be parsed or violates the ontology
  2  some scripts generated, some mappers failed

Examples:
  onto run email_workflow.ttl
  onto run email_workflow.rdf -o generated --target crewai
  onto run big_graph.ttl --parse-timeout 2m --log`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		graphFile := args[0]

		// Generated scripts read API keys from the environment at their
		// own runtime; load .env here only so we can warn early.
		godotenv.Load()
		if os.Getenv("OPENAI_API_KEY") == "" {
			fmt.Println("Note: OPENAI_API_KEY is not set. The generated scripts will need it (or an equivalent provider key) to run.")
		}

		targets, err := resolveTargets(targetFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(ExitFatal)
		}

		if outputDir == "" {
			outputDir = LoadEffectiveConfig().OutputDir
		}
		if outputDir == "" {
			outputDir = "output"
		}

		if verbose {
			fmt.Printf("Converting %s → %v (output: %s)\n", graphFile, targets, outputDir)
		}

		run := memory.NewRun(graphFile)

		var logger *logging.Logger
		if enableLogging {
			logger, err = logging.NewLogger(run.ID, "")
			if err != nil {
				fmt.Printf("Warning: failed to create logger: %v\n", err)
			} else {
				fmt.Printf("Logging conversion to: %s\n", logger.GetFilePath())
				defer logger.Close()
			}
		}

		runner := engine.NewRunner(targets, outputDir)
		runner.ParseTimeout = parseTimeout
		runner.Logger = logger

		project, results, err := runner.Convert(graphFile)
		if err != nil {
			reportFatal(graphFile, err)
			os.Exit(ExitFatal)
		}

		run.Name = project.Name
		for _, a := range project.Agents {
			run.Agents = append(run.Agents, a.Role)
		}
		for _, t := range project.Tasks {
			run.Tasks = append(run.Tasks, t.Description)
		}

		succeeded, failed := 0, 0
		for _, res := range results {
			run.AddArtifact(string(res.Target), res.Path, res.Err)
			if res.OK() {
				succeeded++
				fmt.Printf("%s✓%s %-8s → %s\n", ColorGreen, ColorReset, res.Target, res.Path)
			} else {
				failed++
				fmt.Printf("%s✗%s %-8s → %v\n", ColorRed, ColorReset, res.Target, res.Err)
			}
		}

		if verbose {
			fmt.Printf("Pipeline %s (%d/%d steps)\n",
				runner.State.Status, runner.State.CurrentStep, runner.State.TotalSteps)
		}

		if !noHistory {
			if err := run.Save(); err != nil {
				fmt.Printf("Warning: could not save run record: %v\n", err)
			}
			indexRun(run)
			memory.CleanupOldRuns()
		}

		elapsed := runner.Stats.GetElapsedTime()
		fmt.Printf("\nRun %s: %d agents, %d tasks, %d tools → %d/%d scripts in %s\n",
			run.ID,
			runner.Stats.AgentCount, runner.Stats.TaskCount, runner.Stats.ToolCount,
			succeeded, len(results), FormatDuration(elapsed.Seconds()))

		switch {
		case failed == 0:
			os.Exit(ExitOK)
		case succeeded == 0:
			os.Exit(ExitFatal)
		default:
			os.Exit(ExitPartial)
		}
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVarP(&outputDir, "output", "o", "", "output directory for generated scripts (default \"output\")")
	runCmd.Flags().StringVar(&targetFlag, "target", "all", "target framework: crewai, autogen, or all")
	runCmd.Flags().DurationVar(&parseTimeout, "parse-timeout", 0, "wall-clock ceiling for the RDF parse step (default 30s)")
	runCmd.Flags().BoolVar(&enableLogging, "log", false, "enable file-based conversion logging")
	runCmd.Flags().BoolVar(&noHistory, "no-history", false, "do not record this run in the run history")
}

func resolveTargets(flag string) ([]generator.Target, error) {
	switch flag {
	case "all", "":
		return generator.Targets(), nil
	default:
		t := generator.Target(flag)
		if _, err := generator.Get(t); err != nil {
			return nil, fmt.Errorf("unknown target %q (want crewai, autogen, or all)", flag)
		}
		return []generator.Target{t}, nil
	}
}

func reportFatal(graphFile string, err error) {
	var parseErr *types.ParseError
	var schemaErr *types.SchemaError
	switch {
	case errors.As(err, &parseErr):
		fmt.Fprintf(os.Stderr, "Error: %s is not valid RDF: %v\n", graphFile, parseErr.Err)
		fmt.Fprintln(os.Stderr, "Check the Turtle/RDF-XML syntax; no scripts were written.")
	case errors.As(err, &schemaErr):
		fmt.Fprintf(os.Stderr, "Error: the graph violates the agentO ontology:\n  %v\n", schemaErr)
		fmt.Fprintln(os.Stderr, "Fix the graph and run `onto validate` to re-check; no scripts were written.")
	default:
		fmt.Fprintf(os.Stderr, "Error converting %s: %v\n", graphFile, err)
	}
}

// indexRun adds the run summary to the vector store so `onto runs search`
// can find it. Embeddings need a local Ollama; failure is non-fatal.
func indexRun(run *memory.Run) {
	cfg := LoadEffectiveConfig()
	model := cfg.EmbeddingModel
	if model == "" {
		model = "nomic-embed-text"
	}
	store, err := vectorstore.NewChromemStoreWithOllama(model)
	if err != nil {
		return
	}
	defer store.Close()
	if err := vectorstore.IndexRun(store, run); err != nil && verbose {
		fmt.Printf("Warning: could not index run: %v\n", err)
	}
}
