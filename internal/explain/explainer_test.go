package explain

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/D3XTRO12/miel-ia/internal/features"
	"github.com/D3XTRO12/miel-ia/internal/ml"
	"github.com/D3XTRO12/miel-ia/internal/models"
)

// linearModel детерминированная бинарная модель: sigmoid(w*x + b)
type linearModel struct {
	name    string
	weights map[int]float64
	bias    float64
	failing bool
}

func (m *linearModel) Name() string { return m.name }

func (m *linearModel) Classes() int { return 2 }

func (m *linearModel) PredictProba(row features.Row) ([]float64, error) {
	if m.failing {
		return nil, &ml.InferenceError{Model: m.name, Err: fmt.Errorf("искусственный сбой")}
	}
	sum := m.bias
	for i, w := range m.weights {
		sum += w * row[i]
	}
	p := 1.0 / (1.0 + math.Exp(-sum))
	return []float64{1 - p, p}, nil
}

func unitStats() *ml.FeatureStats {
	stats := &ml.FeatureStats{
		Mean: make([]float64, features.FeatureCount),
		Std:  make([]float64, features.FeatureCount),
	}
	for i := range stats.Std {
		stats.Std[i] = 1
	}
	return stats
}

func zeroRow() features.Row {
	return make(features.Row, features.FeatureCount)
}

func TestExplainAttributionSign(t *testing.T) {
	explainer := New(unitStats())
	model := &linearModel{name: "random_forest", weights: map[int]float64{0: 2.0, 1: -2.0}}

	row := zeroRow()
	row[0] = 1.0
	row[1] = 1.0

	explanations, err := explainer.Explain(row, []Prediction{{Model: model, Class: 1}}, nil)
	require.NoError(t, err)
	require.Len(t, explanations.BinaryDecisionFactors, 1)

	factors := explanations.BinaryDecisionFactors[0].Factors
	require.NotEmpty(t, factors)

	byName := make(map[string]models.Factor)
	for _, f := range factors {
		byName[f.Feature] = f
	}

	// признак 0 толкает вероятность класса 1 вверх, признак 1 — вниз
	f0, ok := byName["standard_deviation_e1"]
	require.True(t, ok)
	assert.Greater(t, f0.Attribution, 0.0)

	f1, ok := byName["standard_deviation_e2"]
	require.True(t, ok)
	assert.Less(t, f1.Attribution, 0.0)

	// нулевые признаки совпадают с базовой линией и не попадают в топ
	for _, f := range factors[2:] {
		assert.InDelta(t, 0.0, f.Attribution, 1e-9)
	}
}

func TestExplainDeviationStatus(t *testing.T) {
	explainer := New(unitStats())
	model := &linearModel{name: "random_forest", weights: map[int]float64{0: 1.0, 1: 1.0}}

	row := zeroRow()
	row[0] = 3.0  // выше нормы (z = 3)
	row[1] = -3.0 // ниже нормы (z = -3)
	row[2] = 1.0  // в пределах нормы

	explanations, err := explainer.Explain(row, []Prediction{{Model: model, Class: 1}}, nil)
	require.NoError(t, err)

	byName := make(map[string]models.Factor)
	for _, f := range explanations.BinaryDecisionFactors[0].Factors {
		byName[f.Feature] = f
	}

	assert.Equal(t, models.StatusAboveNormal, byName["standard_deviation_e1"].Status)
	assert.InDelta(t, 3.0, byName["standard_deviation_e1"].Deviation, 1e-9)
	assert.Equal(t, models.StatusBelowNormal, byName["standard_deviation_e2"].Status)
}

func TestExplainFactorsLimitedAndSorted(t *testing.T) {
	weights := make(map[int]float64, 20)
	for i := 0; i < 20; i++ {
		weights[i] = float64(i + 1) * 0.1
	}
	model := &linearModel{name: "random_forest", weights: weights}

	row := zeroRow()
	for i := 0; i < 20; i++ {
		row[i] = 1.0
	}

	explainer := New(unitStats())
	explanations, err := explainer.Explain(row, []Prediction{{Model: model, Class: 1}}, nil)
	require.NoError(t, err)

	factors := explanations.BinaryDecisionFactors[0].Factors
	assert.Len(t, factors, topFactors)
	for i := 1; i < len(factors); i++ {
		assert.GreaterOrEqual(t,
			math.Abs(factors[i-1].Attribution),
			math.Abs(factors[i].Attribution))
	}
}

func TestExplainWithoutStatsFails(t *testing.T) {
	explainer := New(nil)
	model := &linearModel{name: "random_forest"}

	_, err := explainer.Explain(zeroRow(), []Prediction{{Model: model, Class: 1}}, nil)
	require.Error(t, err)
}

func TestExplainModelFailurePropagates(t *testing.T) {
	explainer := New(unitStats())
	model := &linearModel{name: "xgboost", failing: true}

	_, err := explainer.Explain(zeroRow(), []Prediction{{Model: model, Class: 0}}, nil)
	require.Error(t, err)
}

func TestExplainSummaryAggregatesAcrossModels(t *testing.T) {
	explainer := New(unitStats())
	m1 := &linearModel{name: "random_forest", weights: map[int]float64{0: 2.0}}
	m2 := &linearModel{name: "xgboost", weights: map[int]float64{0: 2.0}}

	row := zeroRow()
	row[0] = 1.0

	explanations, err := explainer.Explain(row,
		[]Prediction{{Model: m1, Class: 1}},
		[]Prediction{{Model: m2, Class: 1}},
	)
	require.NoError(t, err)

	assert.Equal(t, 2, explanations.SummaryInsights.ModelsConsidered)
	require.NotEmpty(t, explanations.SummaryInsights.TopFeatures)
	assert.Equal(t, "standard_deviation_e1", explanations.SummaryInsights.TopFeatures[0].Feature)
	assert.Greater(t, explanations.SummaryInsights.TopFeatures[0].MeanAbsAttribution, 0.0)

	assert.Equal(t, Method, explanations.Metadata.ExplanationMethod)
	assert.Equal(t, 2, explanations.Metadata.ModelsExplained)
}

func TestExplainIsDeterministic(t *testing.T) {
	explainer := New(unitStats())
	model := &linearModel{name: "random_forest", weights: map[int]float64{0: 1.0, 5: -0.5, 17: 0.8}}

	row := zeroRow()
	row[0], row[5], row[17] = 1, 2, 3

	first, err := explainer.Explain(row, []Prediction{{Model: model, Class: 1}}, nil)
	require.NoError(t, err)
	second, err := explainer.Explain(row, []Prediction{{Model: model, Class: 1}}, nil)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
