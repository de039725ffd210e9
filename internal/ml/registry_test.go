package ml

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRegistry(t *testing.T) {
	reg, err := LoadRegistry(filepath.Join("testdata", "models"))
	require.NoError(t, err)

	binary := reg.Binary()
	classify := reg.Classify()
	for i, name := range EvaluationOrder {
		assert.Equal(t, name, binary[i].Name())
		assert.Equal(t, 2, binary[i].Classes())
		assert.Equal(t, name, classify[i].Name())
		assert.Equal(t, 3, classify[i].Classes())
	}

	require.NotNil(t, reg.Stats())
	assert.Equal(t, 0.0, reg.Stats().Baseline(0))
	assert.InDelta(t, 2.5, reg.Stats().ZScore(3, 2.5), 1e-9)
}

func TestLoadRegistryMissingArtifactIsFatal(t *testing.T) {
	dir := t.TempDir()
	_, err := LoadRegistry(dir)
	require.Error(t, err)

	var lerr *LoadError
	assert.True(t, errors.As(err, &lerr))
}

func TestLoadRegistryWithoutStats(t *testing.T) {
	// копия каталога моделей без feature_stats.json
	src := filepath.Join("testdata", "models")
	dir := t.TempDir()
	for _, sub := range []string{"binary", "classify"} {
		require.NoError(t, os.MkdirAll(filepath.Join(dir, sub), 0o755))
		for _, name := range EvaluationOrder {
			data, err := os.ReadFile(filepath.Join(src, sub, name+".json"))
			require.NoError(t, err)
			require.NoError(t, os.WriteFile(filepath.Join(dir, sub, name+".json"), data, 0o644))
		}
	}

	reg, err := LoadRegistry(dir)
	require.NoError(t, err)
	assert.Nil(t, reg.Stats())
}

func TestLoadModelRejectsGarbage(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))
	_, err := LoadModel(path)
	var lerr *LoadError
	require.True(t, errors.As(err, &lerr))

	path = filepath.Join(dir, "kind.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"name":"x","kind":"svm","classes":2}`), 0o644))
	_, err = LoadModel(path)
	require.True(t, errors.As(err, &lerr))

	path = filepath.Join(dir, "classes.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"name":"x","kind":"forest","classes":5}`), 0o644))
	_, err = LoadModel(path)
	require.True(t, errors.As(err, &lerr))
}

func TestLoadRegistryNameMismatch(t *testing.T) {
	src := filepath.Join("testdata", "models")
	dir := t.TempDir()
	for _, sub := range []string{"binary", "classify"} {
		require.NoError(t, os.MkdirAll(filepath.Join(dir, sub), 0o755))
		for _, name := range EvaluationOrder {
			data, err := os.ReadFile(filepath.Join(src, sub, name+".json"))
			require.NoError(t, err)
			require.NoError(t, os.WriteFile(filepath.Join(dir, sub, name+".json"), data, 0o644))
		}
	}

	// подменяем артефакт xgboost артефактом леса
	data, err := os.ReadFile(filepath.Join(src, "binary", "random_forest.json"))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "binary", "xgboost.json"), data, 0o644))

	_, err = LoadRegistry(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "xgboost")
}

func TestPredictLabelThreshold(t *testing.T) {
	reg, err := LoadRegistry(filepath.Join("testdata", "models"))
	require.NoError(t, err)

	rf := reg.Binary()[0]

	label, proba, err := PredictLabel(rf, testRow(map[int]float64{0: 0.0}))
	require.NoError(t, err)
	assert.Equal(t, 0, label)
	assert.InDelta(t, 0.25, proba, 1e-9)

	label, proba, err = PredictLabel(rf, testRow(map[int]float64{0: 1.0}))
	require.NoError(t, err)
	assert.Equal(t, 1, label)
	assert.InDelta(t, 0.75, proba, 1e-9)
}

func TestPredictClassArgmax(t *testing.T) {
	reg, err := LoadRegistry(filepath.Join("testdata", "models"))
	require.NoError(t, err)

	rf := reg.Classify()[0]

	class, proba, err := PredictClass(rf, testRow(map[int]float64{1: 1.0}))
	require.NoError(t, err)
	require.Len(t, proba, 3)
	assert.Equal(t, 2, class)

	class, _, err = PredictClass(rf, testRow(map[int]float64{1: 0.0}))
	require.NoError(t, err)
	assert.Equal(t, 0, class)
}
