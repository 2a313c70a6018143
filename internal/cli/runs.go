/*
Copyright © 2026 Ontoflow Authors
*/
package cli

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"Ontoflow/internal/memory"

	"github.com/spf13/cobra"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Manage conversion runs",
	Long:  `List, view, and search past knowledge graph conversions.`,
}

var runsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all recorded runs",
	Run: func(cmd *cobra.Command, args []string) {
		runs, err := memory.ListRuns()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error listing runs: %v\n", err)
			os.Exit(1)
		}

		if len(runs) == 0 {
			fmt.Println("No recorded runs found.")
			fmt.Println("Convert a graph with `onto run` to create one.")
			return
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tSOURCE\tWORKFLOW\tSCRIPTS\tWHEN")
		fmt.Fprintln(w, "--\t------\t--------\t-------\t----")

		for _, r := range runs {
			ok := 0
			for _, a := range r.Artifacts {
				if a.Error == "" {
					ok++
				}
			}
			ago := time.Since(r.CreatedAt).Round(time.Minute)
			fmt.Fprintf(w, "%s\t%s\t%s\t%d/%d\t%s ago\n",
				r.ID, r.Source, r.Name, ok, len(r.Artifacts), ago)
		}
		w.Flush()
	},
}

var runsShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show details of a run",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		run, err := memory.LoadRun(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading run: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Run:      %s\n", run.ID)
		fmt.Printf("Source:   %s\n", run.Source)
		fmt.Printf("Workflow: %s\n", run.Name)
		fmt.Printf("Created:  %s\n", run.CreatedAt.Format("Jan 02 15:04"))
		fmt.Println()

		fmt.Printf("Agents (%d):\n", len(run.Agents))
		for _, role := range run.Agents {
			fmt.Printf("  - %s\n", role)
		}
		fmt.Println()

		fmt.Println("Artifacts:")
		for _, a := range run.Artifacts {
			if a.Error == "" {
				fmt.Printf("  %s✓%s %-8s %s\n", ColorGreen, ColorReset, a.Target, a.Path)
			} else {
				fmt.Printf("  %s✗%s %-8s %s\n", ColorRed, ColorReset, a.Target, a.Error)
			}
		}
	},
}

var runsDeleteCmd = &cobra.Command{
	Use:   "delete <run-id>",
	Short: "Delete a run record",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := memory.DeleteRun(args[0]); err != nil {
			fmt.Fprintf(os.Stderr, "Error deleting run: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Deleted run %s\n", args[0])
	},
}

func init() {
	rootCmd.AddCommand(runsCmd)
	runsCmd.AddCommand(runsListCmd)
	runsCmd.AddCommand(runsShowCmd)
	runsCmd.AddCommand(runsDeleteCmd)
}
