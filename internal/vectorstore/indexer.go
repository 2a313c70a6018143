package vectorstore

import (
	"fmt"

	"Ontoflow/internal/memory"
)

// IndexRun indexes a conversion run's summary so `onto runs search` can find
// it by workflow topic, agent role, or task wording.
func IndexRun(store VectorStore, run *memory.Run) error {
	content := run.Summary()
	if content == "" {
		return nil
	}

	metadata := map[string]string{
		"run_id": run.ID,
		"source": run.Source,
		"name":   run.Name,
	}

	if err := store.AddDocument(run.ID, content, metadata); err != nil {
		return fmt.Errorf("failed to index run %s: %w", run.ID, err)
	}
	return nil
}
