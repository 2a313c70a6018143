/*
Copyright © 2026 Ontoflow Authors
*/
package cli

import (
	"fmt"
	"os"

	"Ontoflow/internal/vectorstore"

	"github.com/spf13/cobra"
)

var searchLimit int

var runsSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search past conversions semantically",
	Long: `Search through past conversion runs by workflow topic, agent role,
or task wording using semantic similarity.

Requires Ollama running locally with an embedding model (e.g., nomic-embed-text).

Examples:
  onto runs search "email triage"
  onto runs search "stock analysis agents" --limit 5`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		query := args[0]

		model := LoadEffectiveConfig().EmbeddingModel
		if model == "" {
			model = "nomic-embed-text"
		}

		store, err := vectorstore.NewChromemStoreWithOllama(model)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: Could not connect to vector store: %v\n", err)
			fmt.Println("\nMake sure Ollama is running with an embedding model:")
			fmt.Printf("   ollama pull %s\n", model)
			os.Exit(1)
		}
		defer store.Close()

		fmt.Printf("Searching for: %q\n\n", query)

		results, err := store.Search(query, searchLimit)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error searching: %v\n", err)
			os.Exit(1)
		}

		if len(results) == 0 {
			fmt.Println("No matching runs found.")
			fmt.Println("Convert some graphs first to build up run history.")
			return
		}

		for i, r := range results {
			fmt.Printf("─── Result %d (%.1f%% match) ───\n", i+1, r.Score*100)
			if runID, ok := r.Metadata["run_id"]; ok {
				fmt.Printf("Run:    %s\n", runID)
			}
			if source, ok := r.Metadata["source"]; ok {
				fmt.Printf("Source: %s\n", source)
			}

			content := r.Content
			if len(content) > 300 {
				content = content[:300] + "..."
			}
			fmt.Printf("\n%s\n\n", content)
		}
	},
}

func init() {
	runsCmd.AddCommand(runsSearchCmd)
	runsSearchCmd.Flags().IntVarP(&searchLimit, "limit", "l", 3, "Number of results to return")
}
