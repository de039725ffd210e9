package ml

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/D3XTRO12/miel-ia/internal/features"
)

// FeatureStats статистики признаков из обучающей выборки (среднее и
// стандартное отклонение в каноническом порядке). Используются
// эксплейнером как базовая линия окклюзии и физиологическая норма.
type FeatureStats struct {
	Mean []float64 `json:"mean"`
	Std  []float64 `json:"std"`
}

// LoadFeatureStats читает статистики из JSON файла
func LoadFeatureStats(path string) (*FeatureStats, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения статистик признаков %s: %w", path, err)
	}

	var stats FeatureStats
	if err := json.Unmarshal(data, &stats); err != nil {
		return nil, fmt.Errorf("некорректный JSON статистик признаков %s: %w", path, err)
	}

	if len(stats.Mean) != features.FeatureCount || len(stats.Std) != features.FeatureCount {
		return nil, fmt.Errorf("статистики признаков %s: ожидалось %d значений, получено mean=%d std=%d",
			path, features.FeatureCount, len(stats.Mean), len(stats.Std))
	}
	for i, s := range stats.Std {
		if s <= 0 {
			return nil, fmt.Errorf("статистики признаков %s: неположительное отклонение для %s", path, features.Name(i))
		}
	}

	return &stats, nil
}

// Baseline среднее обучающей выборки для признака i
func (s *FeatureStats) Baseline(i int) float64 { return s.Mean[i] }

// ZScore отклонение значения признака i от нормы в сигмах
func (s *FeatureStats) ZScore(i int, value float64) float64 {
	return (value - s.Mean[i]) / s.Std[i]
}
