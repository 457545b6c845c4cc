// Package core wires the retrieval-to-answer pipeline: similarity search,
// evidence normalization, answer generation and evidence-subgraph
// reconciliation.
package core

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/movelab/physiorag/internal/config"
	"github.com/movelab/physiorag/internal/core/answer"
	"github.com/movelab/physiorag/internal/core/identity"
	"github.com/movelab/physiorag/internal/core/model"
	"github.com/movelab/physiorag/internal/core/normalize"
	"github.com/movelab/physiorag/internal/core/retrieval"
	"github.com/movelab/physiorag/internal/core/subgraph"
	"github.com/movelab/physiorag/internal/driver"
	"github.com/movelab/physiorag/internal/llm"
	"github.com/movelab/physiorag/internal/logger"
)

// Pipeline owns the per-query flow. The driver and model handles it holds
// are process-wide and safe for concurrent queries; everything else is
// created and released within one AnswerQuery call.
type Pipeline struct {
	Retriever  *retrieval.Retriever
	Generator  *answer.Generator
	Reconciler *subgraph.Reconciler
	log        *logger.Logger
}

func NewPipeline(d driver.GraphDriver, llmClient llm.LLMClient, embedder llm.EmbedderClient, cfg *config.Config, log *logger.Logger) *Pipeline {
	return &Pipeline{
		Retriever:  retrieval.NewRetriever(d, embedder, cfg.Retrieval),
		Generator:  answer.NewGenerator(llmClient, log),
		Reconciler: subgraph.NewReconciler(d),
		log:        log.With("component", "pipeline"),
	}
}

// AnswerQuery runs retrieve → normalize → generate + reconcile → assemble.
// Generation and reconciliation read only the normalized items, so they
// run concurrently. Retrieval and store failures propagate; generation
// failures degrade inside the generator and never abort the query.
func (p *Pipeline) AnswerQuery(ctx context.Context, query string, mode model.RetrievalMode) (*model.QueryResult, error) {
	raw, err := p.Retriever.Search(ctx, query, mode)
	if err != nil {
		return nil, fmt.Errorf("retrieval failed: %w", err)
	}

	items := normalize.Items(raw)
	p.log.Debug("retrieval normalized", "query", query, "mode", mode, "items", len(items))

	var answerText string
	nodes := []model.GraphNode{}
	edges := []model.GraphEdge{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		answerText = p.Generator.Generate(gctx, query, items)
		return nil
	})
	g.Go(func() error {
		ids := identity.Collect(items)
		n, e, err := p.Reconciler.Reconcile(gctx, query, ids)
		if err != nil {
			return err
		}
		nodes, edges = n, e
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	contexts := make([]string, 0, len(items))
	for _, item := range items {
		contexts = append(contexts, item.Text)
	}

	return &model.QueryResult{
		Answer:  answerText,
		Context: contexts,
		Nodes:   nodes,
		Edges:   edges,
	}, nil
}
