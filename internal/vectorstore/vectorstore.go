package vectorstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/philippgille/chromem-go"
)

const (
	CollectionName = "ontoflow_runs"
	VectorDBPath   = ".ontoflow/vectordb"
)

// VectorStore interface for vector storage backends
type VectorStore interface {
	AddDocument(id string, content string, metadata map[string]string) error
	Search(query string, limit int) ([]SearchResult, error)
	DeleteDocument(id string) error
	Close() error
}

// SearchResult represents a search result from vector store
type SearchResult struct {
	ID       string
	Content  string
	Score    float32
	Metadata map[string]string
}

// ChromemStore implements VectorStore using chromem-go (embedded)
type ChromemStore struct {
	db         *chromem.DB
	collection *chromem.Collection
	ctx        context.Context
}

// NewChromemStoreWithOllama creates a store with Ollama embeddings
func NewChromemStoreWithOllama(model string) (*ChromemStore, error) {
	ef := chromem.NewEmbeddingFuncOllama(model, "")
	return NewChromemStore(defaultDBPath(), ef)
}

// NewChromemStoreWithOpenAI creates a store with OpenAI-compatible embeddings
func NewChromemStoreWithOpenAI(apiKey string) (*ChromemStore, error) {
	ef := chromem.NewEmbeddingFuncOpenAI(apiKey, chromem.EmbeddingModelOpenAI3Small)
	return NewChromemStore(defaultDBPath(), ef)
}

func defaultDBPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, VectorDBPath)
}

// NewChromemStore creates a persistent store at dbPath with the given
// embedding function.
func NewChromemStore(dbPath string, ef chromem.EmbeddingFunc) (*ChromemStore, error) {
	if err := os.MkdirAll(dbPath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create vectordb directory: %w", err)
	}

	db, err := chromem.NewPersistentDB(dbPath, false)
	if err != nil {
		return nil, fmt.Errorf("failed to create chromem db: %w", err)
	}

	collection, err := db.GetOrCreateCollection(CollectionName, nil, ef)
	if err != nil {
		return nil, fmt.Errorf("failed to get/create collection: %w", err)
	}

	return &ChromemStore{
		db:         db,
		collection: collection,
		ctx:        context.Background(),
	}, nil
}

// AddDocument adds a document to the collection
func (s *ChromemStore) AddDocument(id string, content string, metadata map[string]string) error {
	doc := chromem.Document{
		ID:       id,
		Content:  content,
		Metadata: metadata,
	}
	return s.collection.AddDocument(s.ctx, doc)
}

// Search performs a semantic similarity search
func (s *ChromemStore) Search(query string, limit int) ([]SearchResult, error) {
	if s.collection.Count() == 0 {
		return nil, nil
	}
	if limit > s.collection.Count() {
		limit = s.collection.Count()
	}

	results, err := s.collection.Query(s.ctx, query, limit, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	out := make([]SearchResult, 0, len(results))
	for _, r := range results {
		out = append(out, SearchResult{
			ID:       r.ID,
			Content:  r.Content,
			Score:    r.Similarity,
			Metadata: r.Metadata,
		})
	}
	return out, nil
}

// DeleteDocument removes a document by ID
func (s *ChromemStore) DeleteDocument(id string) error {
	return s.collection.Delete(s.ctx, nil, nil, id)
}

// Close releases the store. chromem persists on write, so this is a no-op
// kept for the VectorStore interface.
func (s *ChromemStore) Close() error {
	return nil
}
