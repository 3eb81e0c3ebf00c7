// internal/menu/tree_test.go
package menu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func countNodes(forest []*Node) int {
	n := 0
	for _, root := range forest {
		n++
		n += countNodes(root.Children)
	}
	return n
}

func node(id, parent string, level, order int) *Node {
	return &Node{MenuID: id, Name: id, ParentID: parent, Level: level, Order: order, Active: true}
}

func TestBuildTreeNestsChildrenUnderParents(t *testing.T) {
	flat := []*Node{
		node("FW0001", "", 1, 1),
		node("FW0002", "", 1, 2),
		node("FW0101", "FW0001", 2, 1),
		node("FW0102", "FW0001", 2, 2),
		node("FW0201", "FW0002", 2, 1),
	}
	forest := BuildTree(flat, zap.NewNop().Sugar())

	require.Len(t, forest, 2)
	assert.Equal(t, "FW0001", forest[0].MenuID)
	require.Len(t, forest[0].Children, 2)
	assert.Equal(t, "FW0101", forest[0].Children[0].MenuID)
	assert.Equal(t, "FW0102", forest[0].Children[1].MenuID)
	require.Len(t, forest[1].Children, 1)
	assert.Equal(t, "FW0201", forest[1].Children[0].MenuID)
}

func TestBuildTreeDanglingParentBecomesRoot(t *testing.T) {
	flat := []*Node{
		node("FW0001", "", 1, 1),
		node("FW0999", "GONE", 2, 1),
	}
	forest := BuildTree(flat, zap.NewNop().Sugar())

	require.Len(t, forest, 2)
	assert.Equal(t, "FW0999", forest[1].MenuID)
	assert.Empty(t, forest[1].Children)
}

func TestBuildTreeIsBijective(t *testing.T) {
	inputs := [][]*Node{
		nil,
		{node("A", "", 1, 1)},
		{node("A", "", 1, 1), node("B", "A", 2, 1), node("C", "B", 3, 1)},
		{node("A", "", 1, 1), node("X", "MISSING", 2, 1), node("B", "A", 2, 2)},
		{node("X", "MISSING", 1, 1), node("Y", "MISSING", 1, 2)},
		{node("LOOP", "LOOP", 1, 1)},
		{node("A", "B", 1, 1), node("B", "A", 1, 2)},
		{node("A", "B", 1, 1), node("B", "A", 1, 2), node("C", "A", 2, 1)},
	}
	for _, flat := range inputs {
		forest := BuildTree(flat, zap.NewNop().Sugar())
		assert.Equal(t, len(flat), countNodes(forest))
	}
}

func TestBuildTreeSelfReferenceBecomesRoot(t *testing.T) {
	flat := []*Node{
		node("FW0001", "", 1, 1),
		node("LOOP", "LOOP", 2, 1),
	}
	forest := BuildTree(flat, zap.NewNop().Sugar())

	require.Len(t, forest, 2)
	assert.Equal(t, "LOOP", forest[1].MenuID)
	assert.Empty(t, forest[1].Children)
}

func TestBuildTreeParentCycleBecomesRoots(t *testing.T) {
	// A and B reference each other; attaching either would bury it inside
	// its own subtree, unreachable from any root.
	flat := []*Node{
		node("A", "B", 1, 1),
		node("B", "A", 1, 2),
		node("C", "A", 2, 1),
	}
	forest := BuildTree(flat, zap.NewNop().Sugar())

	require.Len(t, forest, 2)
	assert.Equal(t, "A", forest[0].MenuID)
	assert.Equal(t, "B", forest[1].MenuID)
	// A plain descendant of a cycle member stays attached.
	require.Len(t, forest[0].Children, 1)
	assert.Equal(t, "C", forest[0].Children[0].MenuID)
	assert.Equal(t, 3, countNodes(forest))
}

func TestBuildTreePreservesInputOrder(t *testing.T) {
	flat := []*Node{
		node("R1", "", 1, 1),
		node("R2", "", 1, 2),
		node("C3", "R1", 2, 3),
		node("C1", "R1", 2, 1), // callers pre-sort; the assembler must not re-sort
	}
	forest := BuildTree(flat, zap.NewNop().Sugar())

	require.Len(t, forest, 2)
	require.Len(t, forest[0].Children, 2)
	assert.Equal(t, "C3", forest[0].Children[0].MenuID)
	assert.Equal(t, "C1", forest[0].Children[1].MenuID)
}

func TestBuildTreeInitializesChildren(t *testing.T) {
	forest := BuildTree([]*Node{node("A", "", 1, 1)}, zap.NewNop().Sugar())
	require.Len(t, forest, 1)
	assert.NotNil(t, forest[0].Children)
	assert.Empty(t, forest[0].Children)
}
