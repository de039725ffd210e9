package ml

import (
	"fmt"

	"github.com/D3XTRO12/miel-ia/internal/features"
)

// forestSpec JSON структура артефакта случайного леса
type forestSpec struct {
	Trees []tree `json:"trees"`
}

// Forest ансамбль решающих деревьев (random forest).
// Вероятности — среднее нормированных распределений листьев.
type Forest struct {
	name    string
	classes int
	trees   []tree
}

func newForest(name string, classes int, spec *forestSpec) (*Forest, error) {
	if spec == nil || len(spec.Trees) == 0 {
		return nil, fmt.Errorf("артефакт леса не содержит деревьев")
	}
	for i := range spec.Trees {
		if err := spec.Trees[i].validate(classes, false); err != nil {
			return nil, fmt.Errorf("дерево %d: %w", i, err)
		}
	}

	return &Forest{name: name, classes: classes, trees: spec.Trees}, nil
}

func (f *Forest) Name() string { return f.name }

func (f *Forest) Classes() int { return f.classes }

func (f *Forest) PredictProba(row features.Row) ([]float64, error) {
	proba := make([]float64, f.classes)

	for i := range f.trees {
		leaf, err := f.trees[i].leaf(row)
		if err != nil {
			return nil, &InferenceError{Model: f.name, Err: err}
		}

		total := 0.0
		for _, v := range leaf.Value {
			total += v
		}
		if total <= 0 {
			return nil, &InferenceError{Model: f.name, Err: fmt.Errorf("лист с нулевым распределением классов")}
		}
		for c, v := range leaf.Value {
			proba[c] += v / total
		}
	}

	n := float64(len(f.trees))
	for c := range proba {
		proba[c] /= n
	}
	return proba, nil
}
