// Package subgraph reconstructs the evidence graph shown alongside an
// answer. When retrieval exposed entity identifiers the reconciliation is
// exact; otherwise it falls back to fuzzy text matching so the UI never
// renders an empty panel just because metadata lacked identifiers.
package subgraph

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/movelab/physiorag/internal/core/model"
	"github.com/movelab/physiorag/internal/driver"
)

// labelKeys is the probe order for a node's human-readable label.
var labelKeys = []string{"name", "title", "text", "content", "chunk"}

type Reconciler struct {
	Driver driver.GraphDriver
}

func NewReconciler(d driver.GraphDriver) *Reconciler {
	return &Reconciler{Driver: d}
}

// Reconcile fetches a bounded one-hop neighborhood around the identified
// evidence entities, or around text matches of the query when no identity
// was recoverable. The two strategies are mutually exclusive. Store
// failures propagate; an empty graph is a valid result, not an error.
func (r *Reconciler) Reconcile(ctx context.Context, queryText string, ids model.IdentitySet) ([]model.GraphNode, []model.GraphEdge, error) {
	var result neo4j.EagerResult
	var err error

	if ids.Empty() {
		result, err = r.Driver.ExecuteQuery(ctx, driver.TextFallbackSubgraphQuery, map[string]interface{}{
			"q": queryText,
		})
	} else {
		result, err = r.Driver.ExecuteQuery(ctx, driver.IdentitySubgraphQuery, map[string]interface{}{
			"strong_ids": ids.StrongList(),
			"legacy_ids": ids.LegacyList(),
		})
	}
	if err != nil {
		return nil, nil, fmt.Errorf("subgraph query failed: %w", err)
	}

	nodes, edges := collate(result.Records)
	return nodes, edges, nil
}

// collate deduplicates nodes by element id (first-seen field values win)
// and appends one edge per complete (node, relationship, neighbor) triple.
// Edges are intentionally not deduplicated: the same pair+relation may
// legitimately recur across rows.
func collate(records []*neo4j.Record) ([]model.GraphNode, []model.GraphEdge) {
	nodes := make([]model.GraphNode, 0, len(records))
	edges := make([]model.GraphEdge, 0, len(records))
	seen := make(map[string]struct{})

	addNode := func(n neo4j.Node) {
		if _, ok := seen[n.ElementId]; ok {
			return
		}
		seen[n.ElementId] = struct{}{}
		nodes = append(nodes, model.GraphNode{
			ID:    n.ElementId,
			Label: nodeLabel(n),
			Type:  nodeType(n),
		})
	}

	for _, rec := range records {
		nv, _ := rec.Get("n")
		rv, _ := rec.Get("r")
		mv, _ := rec.Get("m")

		n, nOK := nv.(neo4j.Node)
		m, mOK := mv.(neo4j.Node)
		rel, relOK := rv.(neo4j.Relationship)

		if nOK {
			addNode(n)
		}
		if mOK {
			addNode(m)
		}
		if nOK && mOK && relOK {
			edges = append(edges, model.GraphEdge{
				Source:   n.ElementId,
				Target:   m.ElementId,
				Relation: rel.Type,
			})
		}
	}

	return nodes, edges
}

func nodeLabel(n neo4j.Node) string {
	for _, key := range labelKeys {
		if s, ok := n.Props[key].(string); ok && s != "" {
			return s
		}
	}
	return n.ElementId
}

func nodeType(n neo4j.Node) string {
	if len(n.Labels) > 0 {
		return n.Labels[0]
	}
	return ""
}
