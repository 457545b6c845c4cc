package model

// GraphNode is a presentation-ready graph entity, keyed by the store's
// element id and deduplicated per response.
type GraphNode struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Type  string `json:"type,omitempty"`
}

type GraphEdge struct {
	Source   string `json:"source"`
	Target   string `json:"target"`
	Relation string `json:"relation"`
}

// QueryResult is the composite answer for one pipeline invocation.
// Context preserves retrieval order. Slices are never nil so the JSON
// encoding is [] rather than null; an empty graph is a valid response.
type QueryResult struct {
	Answer  string      `json:"answer"`
	Context []string    `json:"context"`
	Nodes   []GraphNode `json:"nodes"`
	Edges   []GraphEdge `json:"edges"`
}
