package subgraph

import (
	"context"
	"fmt"
	"testing"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/movelab/physiorag/internal/core/model"
	"github.com/movelab/physiorag/internal/driver"
)

type MockDriver struct {
	QueryExecuted string
	QueryParams   map[string]interface{}
	MockResult    neo4j.EagerResult
	Err           error
}

func (m *MockDriver) ExecuteQuery(ctx context.Context, query string, params map[string]interface{}) (neo4j.EagerResult, error) {
	m.QueryExecuted = query
	m.QueryParams = params
	if m.Err != nil {
		return neo4j.EagerResult{}, m.Err
	}
	return m.MockResult, nil
}

func (m *MockDriver) VerifyIndexes(ctx context.Context, names ...string) error { return nil }

func (m *MockDriver) Close(ctx context.Context) error { return nil }

func row(n, r, m interface{}) *neo4j.Record {
	return &neo4j.Record{
		Keys:   []string{"n", "r", "m"},
		Values: []interface{}{n, r, m},
	}
}

func testNode(elementID, name string, labels ...string) neo4j.Node {
	return neo4j.Node{
		ElementId: elementID,
		Labels:    labels,
		Props:     map[string]interface{}{"name": name},
	}
}

func identitySet(strong []string, legacy []int64) model.IdentitySet {
	ids := model.NewIdentitySet()
	for _, s := range strong {
		ids.AddStrong(s)
	}
	for _, l := range legacy {
		ids.AddLegacy(l)
	}
	return ids
}

// Identity path is taken if and only if the identity set is non-empty.
func TestReconcilePathSelection(t *testing.T) {
	mockDriver := &MockDriver{}
	r := NewReconciler(mockDriver)
	ctx := context.Background()

	_, _, err := r.Reconcile(ctx, "squat", model.NewIdentitySet())
	require.NoError(t, err)
	assert.Equal(t, driver.TextFallbackSubgraphQuery, mockDriver.QueryExecuted)
	assert.Equal(t, "squat", mockDriver.QueryParams["q"])

	_, _, err = r.Reconcile(ctx, "squat", identitySet([]string{"4:abc:12"}, nil))
	require.NoError(t, err)
	assert.Equal(t, driver.IdentitySubgraphQuery, mockDriver.QueryExecuted)
	assert.Equal(t, []string{"4:abc:12"}, mockDriver.QueryParams["strong_ids"])
	assert.Equal(t, []int64{}, mockDriver.QueryParams["legacy_ids"])

	_, _, err = r.Reconcile(ctx, "squat", identitySet(nil, []int64{7}))
	require.NoError(t, err)
	assert.Equal(t, driver.IdentitySubgraphQuery, mockDriver.QueryExecuted)
}

func TestReconcileCollatesRows(t *testing.T) {
	n1 := testNode("n1", "Squat", "Exercise")
	n2 := testNode("n2", "Quadriceps", "Muscle")
	rel := neo4j.Relationship{Type: "TARGETS"}

	mockDriver := &MockDriver{
		MockResult: neo4j.EagerResult{Records: []*neo4j.Record{row(n1, rel, n2)}},
	}
	r := NewReconciler(mockDriver)

	nodes, edges, err := r.Reconcile(context.Background(), "q", identitySet([]string{"n1"}, nil))
	require.NoError(t, err)

	require.Len(t, nodes, 2)
	assert.Equal(t, model.GraphNode{ID: "n1", Label: "Squat", Type: "Exercise"}, nodes[0])
	assert.Equal(t, model.GraphNode{ID: "n2", Label: "Quadriceps", Type: "Muscle"}, nodes[1])

	require.Len(t, edges, 1)
	assert.Equal(t, model.GraphEdge{Source: "n1", Target: "n2", Relation: "TARGETS"}, edges[0])
}

// Node dedup is by id; the first-observed label wins.
func TestReconcileNodeDedupFirstSeenWins(t *testing.T) {
	first := testNode("n1", "Back Pain", "Condition")
	second := testNode("n1", "Lower Back Pain", "Condition")
	other := testNode("n2", "Bridge", "Exercise")
	rel := neo4j.Relationship{Type: "TREATED_BY"}

	mockDriver := &MockDriver{
		MockResult: neo4j.EagerResult{Records: []*neo4j.Record{
			row(first, rel, other),
			row(second, rel, other),
		}},
	}
	r := NewReconciler(mockDriver)

	nodes, edges, err := r.Reconcile(context.Background(), "q", identitySet([]string{"n1"}, nil))
	require.NoError(t, err)

	require.Len(t, nodes, 2)
	assert.Equal(t, "Back Pain", nodes[0].Label)

	// Edges are appended positionally and may legitimately duplicate.
	assert.Len(t, edges, 2)
}

func TestReconcileNodeOnlyRows(t *testing.T) {
	n := testNode("n1", "Plank", "Exercise")

	mockDriver := &MockDriver{
		MockResult: neo4j.EagerResult{Records: []*neo4j.Record{row(n, nil, nil)}},
	}
	r := NewReconciler(mockDriver)

	nodes, edges, err := r.Reconcile(context.Background(), "plank", model.NewIdentitySet())
	require.NoError(t, err)

	require.Len(t, nodes, 1)
	assert.Empty(t, edges)
}

func TestReconcileLabelFallsBackToID(t *testing.T) {
	n := neo4j.Node{ElementId: "n9", Props: map[string]interface{}{}}

	mockDriver := &MockDriver{
		MockResult: neo4j.EagerResult{Records: []*neo4j.Record{row(n, nil, nil)}},
	}
	r := NewReconciler(mockDriver)

	nodes, _, err := r.Reconcile(context.Background(), "q", model.NewIdentitySet())
	require.NoError(t, err)

	require.Len(t, nodes, 1)
	assert.Equal(t, "n9", nodes[0].Label)
	assert.Empty(t, nodes[0].Type)
}

func TestReconcileEmptyResultIsValid(t *testing.T) {
	mockDriver := &MockDriver{}
	r := NewReconciler(mockDriver)

	nodes, edges, err := r.Reconcile(context.Background(), "nothing matches", model.NewIdentitySet())
	require.NoError(t, err)

	assert.NotNil(t, nodes)
	assert.NotNil(t, edges)
	assert.Empty(t, nodes)
	assert.Empty(t, edges)
}

func TestReconcileStoreErrorPropagates(t *testing.T) {
	mockDriver := &MockDriver{Err: fmt.Errorf("store down")}
	r := NewReconciler(mockDriver)

	_, _, err := r.Reconcile(context.Background(), "q", model.NewIdentitySet())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "store down")
}

// Both reconciliation queries carry the hard 50-row bound.
func TestSubgraphQueriesAreBounded(t *testing.T) {
	assert.Contains(t, driver.IdentitySubgraphQuery, "LIMIT 50")
	assert.Contains(t, driver.TextFallbackSubgraphQuery, "LIMIT 50")
}
