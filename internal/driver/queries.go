package driver

// Cypher run by the retriever and the subgraph reconciler. Both subgraph
// queries carry a hard LIMIT 50: it bounds the response graph, it is not a
// tunable default.

const (
	// VectorSearchQuery ranks candidates by similarity over the named
	// vector index.
	VectorSearchQuery = `
		CALL db.index.vector.queryNodes($vector_index, $top_k, $embedding)
		YIELD node, score
		RETURN node, score
		ORDER BY score DESC
	`

	// HybridSearchQuery blends vector and fulltext candidates. Scores are
	// normalized by each set's maximum before merging, so neither index
	// dominates on raw magnitude; a node found by both keeps its best
	// normalized score.
	HybridSearchQuery = `
		CALL db.index.vector.queryNodes($vector_index, $top_k, $embedding)
		YIELD node, score
		WITH collect({node: node, score: score}) AS vectorHits
		WITH vectorHits,
			reduce(m = 0.0, hit IN vectorHits | CASE WHEN hit.score > m THEN hit.score ELSE m END) AS vectorMax
		CALL db.index.fulltext.queryNodes($fulltext_index, $query, {limit: $top_k})
		YIELD node, score
		WITH vectorHits, vectorMax, collect({node: node, score: score}) AS textHits
		WITH vectorHits, vectorMax, textHits,
			reduce(m = 0.0, hit IN textHits | CASE WHEN hit.score > m THEN hit.score ELSE m END) AS textMax
		WITH [hit IN vectorHits | {node: hit.node, score: CASE WHEN vectorMax > 0 THEN hit.score / vectorMax ELSE 0.0 END}]
			+ [hit IN textHits | {node: hit.node, score: CASE WHEN textMax > 0 THEN hit.score / textMax ELSE 0.0 END}] AS hits
		UNWIND hits AS hit
		WITH hit.node AS node, max(hit.score) AS score
		RETURN node, score
		ORDER BY score DESC
		LIMIT $top_k
	`

	// IdentitySubgraphQuery reconstructs the one-hop neighborhood of the
	// entities the evidence actually referenced. An empty list on either
	// side of the OR is safe: Cypher defines `x IN []` as false.
	IdentitySubgraphQuery = `
		MATCH (n)
		WHERE elementId(n) IN $strong_ids OR id(n) IN $legacy_ids
		OPTIONAL MATCH (n)-[r]-(m)
		RETURN n, r, m
		LIMIT 50
	`

	// TextFallbackSubgraphQuery approximates the evidence neighborhood by
	// substring-matching the raw query text against common textual
	// properties. Used only when no identifiers were recoverable.
	TextFallbackSubgraphQuery = `
		MATCH (n)
		WHERE any(p IN ['name', 'title', 'text', 'content', 'chunk']
			WHERE n[p] IS NOT NULL AND toLower(toString(n[p])) CONTAINS toLower($q))
		OPTIONAL MATCH (n)-[r]-(m)
		RETURN n, r, m
		LIMIT 50
	`
)
