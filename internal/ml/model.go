package ml

import (
	"fmt"

	"github.com/D3XTRO12/miel-ia/internal/features"
	"github.com/D3XTRO12/miel-ia/pkg/utils"
)

// Model единый контракт предсказания для всех трех технологий
// (случайный лес, градиентный бустинг, нейронная сеть).
type Model interface {
	// Name человекочитаемое имя модели (random_forest, xgboost, logistic_regression)
	Name() string
	// Classes число классов: 2 для бинарных, 3 для классификационных моделей
	Classes() int
	// PredictProba возвращает распределение вероятностей по классам.
	// Длина вектора равна Classes(), сумма равна 1.
	PredictProba(row features.Row) ([]float64, error)
}

// PredictLabel бинарная метка: 1 если вероятность класса 1 выше 0.5
func PredictLabel(m Model, row features.Row) (int, float64, error) {
	proba, err := m.PredictProba(row)
	if err != nil {
		return 0, 0, err
	}
	if len(proba) != 2 {
		return 0, 0, &InferenceError{Model: m.Name(), Err: fmt.Errorf("ожидался бинарный вектор вероятностей, получено %d классов", len(proba))}
	}

	label := 0
	if proba[1] > 0.5 {
		label = 1
	}
	return label, proba[1], nil
}

// PredictClass класс с максимальной вероятностью (argmax)
func PredictClass(m Model, row features.Row) (int, []float64, error) {
	proba, err := m.PredictProba(row)
	if err != nil {
		return 0, nil, err
	}
	if len(proba) == 0 {
		return 0, nil, &InferenceError{Model: m.Name(), Err: fmt.Errorf("пустой вектор вероятностей")}
	}
	return utils.ArgMax(proba), proba, nil
}
