package ml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/D3XTRO12/miel-ia/internal/features"
)

func testRow(values map[int]float64) features.Row {
	row := make(features.Row, features.FeatureCount)
	for i, v := range values {
		row[i] = v
	}
	return row
}

// stumpTree дерево-пенек: разбиение по одному признаку и два листа
func stumpTree(feature int, threshold float64, left, right []float64) tree {
	return tree{Nodes: []treeNode{
		{Feature: feature, Threshold: threshold, Left: 1, Right: 2},
		{Feature: -1, Value: left},
		{Feature: -1, Value: right},
	}}
}

func leafTree(value []float64) tree {
	return tree{Nodes: []treeNode{{Feature: -1, Value: value}}}
}

func TestForestPredictProbaAveragesLeaves(t *testing.T) {
	forest, err := newForest("random_forest", 2, &forestSpec{Trees: []tree{
		stumpTree(0, 0.5, []float64{3, 1}, []float64{1, 3}),
		leafTree([]float64{1, 1}),
	}})
	require.NoError(t, err)

	// левая ветка: (0.75 + 0.5) / 2, правая: (0.25 + 0.5) / 2
	proba, err := forest.PredictProba(testRow(map[int]float64{0: 0.0}))
	require.NoError(t, err)
	assert.InDelta(t, 0.625, proba[0], 1e-9)
	assert.InDelta(t, 0.375, proba[1], 1e-9)

	proba, err = forest.PredictProba(testRow(map[int]float64{0: 1.0}))
	require.NoError(t, err)
	assert.InDelta(t, 0.375, proba[0], 1e-9)
	assert.InDelta(t, 0.625, proba[1], 1e-9)
}

func TestForestProbaSumsToOne(t *testing.T) {
	forest, err := newForest("random_forest", 3, &forestSpec{Trees: []tree{
		stumpTree(5, 10, []float64{5, 3, 2}, []float64{0, 1, 9}),
		leafTree([]float64{2, 2, 6}),
	}})
	require.NoError(t, err)

	proba, err := forest.PredictProba(testRow(map[int]float64{5: 20}))
	require.NoError(t, err)
	require.Len(t, proba, 3)

	sum := 0.0
	for _, p := range proba {
		sum += p
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
}

func TestForestRejectsBadLeaf(t *testing.T) {
	_, err := newForest("random_forest", 2, &forestSpec{Trees: []tree{
		leafTree([]float64{1, 2, 3}), // три значения для бинарной модели
	}})
	require.Error(t, err)
}

func TestForestRejectsEmptySpec(t *testing.T) {
	_, err := newForest("random_forest", 2, &forestSpec{})
	require.Error(t, err)

	_, err = newForest("random_forest", 2, nil)
	require.Error(t, err)
}

func TestTreeSplitRule(t *testing.T) {
	// влево при x <= threshold, как в sklearn
	tr := stumpTree(3, 1.0, []float64{1, 0}, []float64{0, 1})

	leaf, err := tr.leaf(testRow(map[int]float64{3: 1.0}))
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 0}, leaf.Value)

	leaf, err = tr.leaf(testRow(map[int]float64{3: 1.000001}))
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1}, leaf.Value)
}

func TestTreeDetectsCycle(t *testing.T) {
	broken := tree{Nodes: []treeNode{
		{Feature: 0, Threshold: 0.5, Left: 0, Right: 0},
	}}
	_, err := broken.leaf(testRow(nil))
	require.Error(t, err)
}
