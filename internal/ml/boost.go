package ml

import (
	"fmt"
	"math"

	"github.com/D3XTRO12/miel-ia/internal/features"
)

// boostTree одно дерево аддитивного ансамбля. Для мультиклассовых
// моделей Class указывает, к скору какого класса прибавляется лист.
type boostTree struct {
	Class int  `json:"class"`
	Tree  tree `json:"tree"`
}

// boostSpec JSON структура артефакта градиентного бустинга
type boostSpec struct {
	BaseScore float64     `json:"base_score"`
	Trees     []boostTree `json:"trees"`
}

// Boost градиентный бустинг (xgboost). Бинарный вариант — сигмоида от
// суммы скоров, мультиклассовый — софтмакс по скорам классов.
type Boost struct {
	name      string
	classes   int
	baseScore float64
	trees     []boostTree
}

func newBoost(name string, classes int, spec *boostSpec) (*Boost, error) {
	if spec == nil || len(spec.Trees) == 0 {
		return nil, fmt.Errorf("артефакт бустинга не содержит деревьев")
	}
	for i := range spec.Trees {
		bt := &spec.Trees[i]
		if bt.Class < 0 || bt.Class >= classes {
			return nil, fmt.Errorf("дерево %d привязано к несуществующему классу %d", i, bt.Class)
		}
		if err := bt.Tree.validate(classes, true); err != nil {
			return nil, fmt.Errorf("дерево %d: %w", i, err)
		}
	}

	return &Boost{name: name, classes: classes, baseScore: spec.BaseScore, trees: spec.Trees}, nil
}

func (b *Boost) Name() string { return b.name }

func (b *Boost) Classes() int { return b.classes }

func (b *Boost) PredictProba(row features.Row) ([]float64, error) {
	scores := make([]float64, b.classes)
	for c := range scores {
		scores[c] = b.baseScore
	}

	for i := range b.trees {
		leaf, err := b.trees[i].Tree.leaf(row)
		if err != nil {
			return nil, &InferenceError{Model: b.name, Err: err}
		}
		cls := b.trees[i].Class
		if b.classes == 2 {
			// у бинарного бустинга все деревья дают один маргин класса 1
			cls = 1
		}
		scores[cls] += leaf.Value[0]
	}

	if b.classes == 2 {
		p := sigmoid(scores[1])
		return []float64{1 - p, p}, nil
	}
	return softmax(scores), nil
}

func sigmoid(x float64) float64 {
	return 1.0 / (1.0 + math.Exp(-x))
}

func softmax(scores []float64) []float64 {
	maxScore := scores[0]
	for _, s := range scores[1:] {
		if s > maxScore {
			maxScore = s
		}
	}

	out := make([]float64, len(scores))
	sum := 0.0
	for i, s := range scores {
		out[i] = math.Exp(s - maxScore)
		sum += out[i]
	}
	for i := range out {
		out[i] /= sum
	}
	return out
}
