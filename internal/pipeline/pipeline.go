package pipeline

import (
	"context"
	"log/slog"

	"github.com/D3XTRO12/miel-ia/internal/explain"
	"github.com/D3XTRO12/miel-ia/internal/features"
	"github.com/D3XTRO12/miel-ia/internal/ml"
	"github.com/D3XTRO12/miel-ia/internal/models"
)

// Explainer вычисляет атрибуции признаков для набора предсказаний.
// Единственная попытка на запрос, без повторов.
type Explainer interface {
	Explain(row features.Row, binary []explain.Prediction, classify []explain.Prediction) (*models.Explanations, error)
}

// Pipeline двухэтапный конвейер диагностики: бинарный скрининг,
// затем (при положительном решении) классификация степени тяжести.
type Pipeline struct {
	registry  *ml.Registry
	explainer Explainer // nil — объяснения отключены
}

// New создает конвейер поверх загруженного реестра моделей
func New(registry *ml.Registry, explainer Explainer) *Pipeline {
	return &Pipeline{registry: registry, explainer: explainer}
}

// Diagnose выполняет полный цикл для одной валидированной строки.
// Ошибка предсказания любой обязательной модели завершает запрос явно:
// она никогда не превращается в молчаливый отрицательный голос.
func (p *Pipeline) Diagnose(ctx context.Context, row features.Row) (*models.FinalVerdict, error) {
	gate, err := p.screen(ctx, row)
	if err != nil {
		return nil, err
	}

	// классификация строго после решения скрининга: при отрицательном
	// результате она не запускается вовсе
	var refinement *RefinementResult
	if gate.Positive {
		refinement, err = p.refine(ctx, row)
		if err != nil {
			return nil, err
		}
	}

	explanations := p.tryExplain(row, gate, refinement)

	verdict := BuildVerdict(gate, refinement, explanations)
	slog.Info("Диагностика завершена",
		"positive", gate.Positive,
		"level", verdict.ClassificationLevel,
		"confidence", EnsembleConfidence(gate, refinement),
		"explained", explanations != nil,
	)
	return verdict, nil
}

// tryExplain единственная best-effort попытка объяснить предсказания.
// Любая ошибка логируется и приводит к полному отсутствию блока
// explanations — частичная структура никогда не прикрепляется.
func (p *Pipeline) tryExplain(row features.Row, gate *GateDecision, refinement *RefinementResult) *models.Explanations {
	if p.explainer == nil {
		return nil
	}

	binary := p.registry.Binary()
	binaryPreds := make([]explain.Prediction, 0, len(binary))
	for i := range binary {
		binaryPreds = append(binaryPreds, explain.Prediction{Model: binary[i], Class: gate.Labels[i]})
	}

	var classifyPreds []explain.Prediction
	if refinement != nil {
		classify := p.registry.Classify()
		classifyPreds = make([]explain.Prediction, 0, len(classify))
		for i := range classify {
			classifyPreds = append(classifyPreds, explain.Prediction{Model: classify[i], Class: refinement.Votes[i].Class})
		}
	}

	explanations, err := p.explainer.Explain(row, binaryPreds, classifyPreds)
	if err != nil {
		slog.Warn("Объяснения недоступны, вердикт возвращается без них", "error", err)
		return nil
	}
	return explanations
}
