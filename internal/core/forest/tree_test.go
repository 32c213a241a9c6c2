package forest

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGrowTreeRegressionFitsTrainingData(t *testing.T) {
	x := [][]float64{{1}, {2}, {3}, {4}}
	y := []float64{10, 10, 20, 30}
	samples := []int{0, 1, 2, 3}

	tree, err := growTree(x, y, samples, squaredError, 0, 0, rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	for i, row := range x {
		leaf, err := tree.leaf(row)
		require.NoError(t, err)
		assert.Equal(t, y[i], leaf.Value[0])
	}
	assert.Equal(t, 10.0, tree.Nodes[1].Value[0], "first split separates the two 10s")
	assert.Equal(t, 2.5, tree.Nodes[0].Threshold)
	assert.Equal(t, 2, tree.Depth())
}

func TestGrowTreeGiniPureLeaves(t *testing.T) {
	x := [][]float64{{0, 5}, {1, 5}, {2, 5}, {3, 5}}
	y := []float64{0, 0, 1, 1}

	tree, err := growTree(x, y, []int{0, 1, 2, 3}, gini, 2, 1, rand.New(rand.NewSource(7)))
	require.NoError(t, err)

	leaf, err := tree.leaf([]float64{0.5, 5})
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 0}, leaf.Value)

	leaf, err = tree.leaf([]float64{2.5, 5})
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1}, leaf.Value)
}

func TestGrowTreeConstantFeaturesMakeLeaf(t *testing.T) {
	x := [][]float64{{1, 1}, {1, 1}, {1, 1}}
	y := []float64{1, 2, 3}

	tree, err := growTree(x, y, []int{0, 1, 2}, squaredError, 0, 0, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	require.Len(t, tree.Nodes, 1)
	assert.Equal(t, 2.0, tree.Nodes[0].Value[0])
}

func TestMidpoint(t *testing.T) {
	assert.Equal(t, 1.5, midpoint(1, 2))
	assert.Equal(t, 1.0, midpoint(1, 1.0000000000000002))
}
