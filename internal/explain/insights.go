package explain

import (
	"sort"

	"github.com/D3XTRO12/miel-ia/internal/models"
	"github.com/D3XTRO12/miel-ia/pkg/utils"
)

// topSummary сколько признаков попадает в кросс-модельную сводку
const topSummary = 10

// summarize агрегирует факторы всех моделей в сводку: признаки
// ранжируются по среднему абсолютному вкладу среди моделей, в чьи
// объяснения они попали.
func (e *Explainer) summarize(groups ...[]models.ModelExplanation) models.SummaryInsights {
	type accum struct {
		total  float64
		count  int
		status string
	}

	modelsConsidered := 0
	byFeature := make(map[string]*accum)
	order := make([]string, 0)

	for _, group := range groups {
		modelsConsidered += len(group)
		for _, explanation := range group {
			for _, factor := range explanation.Factors {
				acc, ok := byFeature[factor.Feature]
				if !ok {
					acc = &accum{status: factor.Status}
					byFeature[factor.Feature] = acc
					order = append(order, factor.Feature)
				}
				acc.total += utils.Abs(factor.Attribution)
				acc.count++
			}
		}
	}

	top := make([]models.TopFeature, 0, len(order))
	for _, feature := range order {
		acc := byFeature[feature]
		top = append(top, models.TopFeature{
			Feature:            feature,
			MeanAbsAttribution: utils.SafeFloat(acc.total / float64(acc.count)),
			Status:             acc.status,
		})
	}

	// стабильная сортировка поверх детерминированного порядка вставки
	sort.SliceStable(top, func(a, b int) bool {
		return top[a].MeanAbsAttribution > top[b].MeanAbsAttribution
	})
	if len(top) > topSummary {
		top = top[:topSummary]
	}

	return models.SummaryInsights{
		TopFeatures:      top,
		ModelsConsidered: modelsConsidered,
	}
}
