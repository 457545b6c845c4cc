package driver

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// GraphDriver is the knowledge-store boundary shared by the retriever and
// the subgraph reconciler. One implementation handle is created at startup
// and reused across concurrent queries.
type GraphDriver interface {
	ExecuteQuery(ctx context.Context, query string, params map[string]interface{}) (neo4j.EagerResult, error)
	VerifyIndexes(ctx context.Context, names ...string) error
	Close(ctx context.Context) error
}
