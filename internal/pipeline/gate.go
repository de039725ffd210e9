package pipeline

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/D3XTRO12/miel-ia/internal/features"
	"github.com/D3XTRO12/miel-ia/internal/ml"
	"github.com/D3XTRO12/miel-ia/pkg/utils"
)

// GateDecision решение бинарного скрининга: стоит ли уточнять диагноз
type GateDecision struct {
	Positive bool
	// Labels метки моделей в порядке ml.EvaluationOrder
	Labels [3]int
	// Probas сырые вероятности положительного класса в том же порядке
	Probas [3]float64
	// Votes карта имя модели -> метка для прозрачности вердикта
	Votes map[string]int
	// Confidence среднее сырых вероятностей, не бинаризованных голосов
	Confidence float64
}

// screen прогоняет три бинарные модели по одной строке. Модели
// независимы, поэтому выполняются параллельно; результаты пишутся в
// фиксированные слоты и от порядка завершения не зависят.
func (p *Pipeline) screen(ctx context.Context, row features.Row) (*GateDecision, error) {
	binary := p.registry.Binary()

	var labels [3]int
	var probas [3]float64

	var g errgroup.Group
	for i := range binary {
		i := i
		g.Go(func() error {
			label, proba, err := ml.PredictLabel(binary[i], row)
			if err != nil {
				return err
			}
			labels[i] = label
			probas[i] = proba
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	positives := 0
	votes := make(map[string]int, len(binary))
	for i, name := range ml.EvaluationOrder {
		votes[name] = labels[i]
		positives += labels[i]
	}

	return &GateDecision{
		Positive:   positives >= 2, // простое большинство из трех
		Labels:     labels,
		Probas:     probas,
		Votes:      votes,
		Confidence: utils.Mean(probas[:]),
	}, nil
}
