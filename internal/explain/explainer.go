package explain

import (
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/D3XTRO12/miel-ia/internal/features"
	"github.com/D3XTRO12/miel-ia/internal/ml"
	"github.com/D3XTRO12/miel-ia/internal/models"
	"github.com/D3XTRO12/miel-ia/pkg/utils"
)

// Method имя метода атрибуции, попадает в метаданные вердикта
const Method = "baseline_occlusion"

const (
	// topFactors сколько признаков оставлять в объяснении каждой модели
	topFactors = 10
	// deviationSigmas граница нормы в сигмах обучающей выборки
	deviationSigmas = 2.0
)

// Prediction модель вместе с классом, который она предсказала для
// объясняемой строки
type Prediction struct {
	Model ml.Model
	Class int
}

// Explainer считает атрибуции методом окклюзии: вклад признака — это
// изменение вероятности предсказанного класса при замене значения
// признака на среднее обучающей выборки. Детерминированно и одинаково
// работает для всех трех технологий моделей.
type Explainer struct {
	stats *ml.FeatureStats
}

// New создает эксплейнер. stats может быть nil — тогда каждая попытка
// объяснения завершится ошибкой, которую пайплайн поглотит.
func New(stats *ml.FeatureStats) *Explainer {
	return &Explainer{stats: stats}
}

// Explain вычисляет атрибуции для всех переданных предсказаний и
// сводку по самым влиятельным признакам. Любая ошибка означает полный
// отказ от объяснений — частичных результатов не бывает.
func (e *Explainer) Explain(row features.Row, binary []Prediction, classify []Prediction) (*models.Explanations, error) {
	if e.stats == nil {
		return nil, fmt.Errorf("статистики признаков не загружены")
	}
	if len(row) != features.FeatureCount {
		return nil, fmt.Errorf("ожидалась строка из %d признаков, получено %d", features.FeatureCount, len(row))
	}

	binaryFactors, err := e.explainAll(row, binary)
	if err != nil {
		return nil, err
	}
	classifyFactors, err := e.explainAll(row, classify)
	if err != nil {
		return nil, err
	}

	insights := e.summarize(binaryFactors, classifyFactors)

	return &models.Explanations{
		BinaryDecisionFactors: binaryFactors,
		ClassificationFactors: classifyFactors,
		SummaryInsights:       insights,
		Metadata: models.ExplanationMeta{
			ExplanationMethod: Method,
			ModelsExplained:   len(binaryFactors) + len(classifyFactors),
			FeaturesRanked:    features.FeatureCount,
		},
	}, nil
}

// explainAll объясняет группу моделей. Модели независимы, поэтому
// считаются параллельно с результатами в фиксированных слотах.
func (e *Explainer) explainAll(row features.Row, preds []Prediction) ([]models.ModelExplanation, error) {
	out := make([]models.ModelExplanation, len(preds))

	var g errgroup.Group
	for i := range preds {
		i := i
		g.Go(func() error {
			explanation, err := e.explainOne(row, preds[i])
			if err != nil {
				return err
			}
			out[i] = explanation
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (e *Explainer) explainOne(row features.Row, pred Prediction) (models.ModelExplanation, error) {
	base, err := pred.Model.PredictProba(row)
	if err != nil {
		return models.ModelExplanation{}, err
	}
	if pred.Class < 0 || pred.Class >= len(base) {
		return models.ModelExplanation{}, fmt.Errorf("модель %s: объясняемый класс %d вне диапазона", pred.Model.Name(), pred.Class)
	}
	baseProba := base[pred.Class]

	factors := make([]models.Factor, 0, features.FeatureCount)
	occluded := row.Clone()
	for i := 0; i < features.FeatureCount; i++ {
		original := occluded[i]
		occluded[i] = e.stats.Baseline(i)

		proba, err := pred.Model.PredictProba(occluded)
		if err != nil {
			return models.ModelExplanation{}, err
		}
		occluded[i] = original

		deviation := e.stats.ZScore(i, row[i])
		factors = append(factors, models.Factor{
			Feature:     features.Name(i),
			Attribution: utils.SafeFloat(baseProba - proba[pred.Class]),
			Status:      deviationStatus(deviation),
			Deviation:   utils.SafeFloat(deviation),
		})
	}

	// сортировка по влиянию; при равенстве — канонический порядок
	// признаков, чтобы объяснение было воспроизводимым
	sort.SliceStable(factors, func(a, b int) bool {
		return utils.Abs(factors[a].Attribution) > utils.Abs(factors[b].Attribution)
	})
	if len(factors) > topFactors {
		factors = factors[:topFactors]
	}

	return models.ModelExplanation{
		Model:          pred.Model.Name(),
		PredictedClass: pred.Class,
		Factors:        factors,
	}, nil
}

func deviationStatus(z float64) string {
	switch {
	case z > deviationSigmas:
		return models.StatusAboveNormal
	case z < -deviationSigmas:
		return models.StatusBelowNormal
	default:
		return models.StatusNormal
	}
}
