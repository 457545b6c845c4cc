// Package retrieval issues similarity search against the knowledge store.
package retrieval

import (
	"context"
	"fmt"

	"github.com/movelab/physiorag/internal/config"
	"github.com/movelab/physiorag/internal/core/model"
	"github.com/movelab/physiorag/internal/driver"
	"github.com/movelab/physiorag/internal/llm"
)

// Retriever embeds the query and runs vector-only or hybrid search over
// the configured indexes. Index names and topK are fixed per deployment.
type Retriever struct {
	Driver   driver.GraphDriver
	Embedder llm.EmbedderClient
	Config   config.RetrievalConfig
}

func NewRetriever(d driver.GraphDriver, embedder llm.EmbedderClient, cfg config.RetrievalConfig) *Retriever {
	return &Retriever{
		Driver:   d,
		Embedder: embedder,
		Config:   cfg,
	}
}

// Search returns the raw result records for the normalizer. Embedding and
// store failures propagate: retrieval failure means no partial answer.
func (r *Retriever) Search(ctx context.Context, query string, mode model.RetrievalMode) ([]interface{}, error) {
	embedding, err := r.Embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	params := map[string]interface{}{
		"vector_index": r.Config.VectorIndex,
		"embedding":    embedding,
		"top_k":        r.Config.TopK,
	}

	cypher := driver.VectorSearchQuery
	if mode == model.ModeHybrid {
		cypher = driver.HybridSearchQuery
		params["fulltext_index"] = r.Config.FulltextIndex
		params["query"] = query
	}

	result, err := r.Driver.ExecuteQuery(ctx, cypher, params)
	if err != nil {
		return nil, fmt.Errorf("similarity search failed: %w", err)
	}

	raw := make([]interface{}, 0, len(result.Records))
	for _, rec := range result.Records {
		raw = append(raw, rec)
	}
	return raw, nil
}
