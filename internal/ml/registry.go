package ml

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// EvaluationOrder фиксированный порядок обхода моделей ансамбля.
// От него зависит разрешение ничьих при голосовании, менять нельзя.
var EvaluationOrder = [3]string{"random_forest", "xgboost", "logistic_regression"}

// Registry реестр из шести загруженных моделей: три бинарных скрининга
// и три классификации степени тяжести. Создается один раз на старте
// процесса и дальше только читается, блокировки не нужны.
type Registry struct {
	binary   [3]Model
	classify [3]Model
	stats    *FeatureStats
}

// NewRegistry собирает реестр из уже загруженных моделей. Порядок
// слотов должен соответствовать EvaluationOrder.
func NewRegistry(binary, classify [3]Model, stats *FeatureStats) (*Registry, error) {
	for i := range binary {
		if binary[i] == nil || classify[i] == nil {
			return nil, fmt.Errorf("реестр неполон: отсутствует модель в слоте %d", i)
		}
		if binary[i].Classes() != 2 {
			return nil, fmt.Errorf("бинарная модель %q имеет %d классов", binary[i].Name(), binary[i].Classes())
		}
		if classify[i].Classes() != 3 {
			return nil, fmt.Errorf("классификационная модель %q имеет %d классов", classify[i].Name(), classify[i].Classes())
		}
	}
	return &Registry{binary: binary, classify: classify, stats: stats}, nil
}

// LoadRegistry загружает все артефакты из каталога моделей:
//
//	<dir>/binary/{random_forest,xgboost,logistic_regression}.json
//	<dir>/classify/{random_forest,xgboost,logistic_regression}.json
//	<dir>/feature_stats.json (опционально, нужен только эксплейнеру)
//
// Ошибка загрузки любой модели фатальна: сервис не должен принимать
// трафик с частично собранным реестром.
func LoadRegistry(dir string) (*Registry, error) {
	var binary, classify [3]Model

	for i, name := range EvaluationOrder {
		model, err := loadNamed(filepath.Join(dir, "binary", name+".json"), name, 2)
		if err != nil {
			return nil, err
		}
		binary[i] = model
	}

	for i, name := range EvaluationOrder {
		model, err := loadNamed(filepath.Join(dir, "classify", name+".json"), name, 3)
		if err != nil {
			return nil, err
		}
		classify[i] = model
	}

	var stats *FeatureStats
	statsPath := filepath.Join(dir, "feature_stats.json")
	if _, err := os.Stat(statsPath); err == nil {
		stats, err = LoadFeatureStats(statsPath)
		if err != nil {
			return nil, err
		}
	} else {
		// без статистик работает все, кроме объяснений
		slog.Warn("Статистики признаков не найдены, объяснения будут недоступны", "path", statsPath)
	}

	reg, err := NewRegistry(binary, classify, stats)
	if err != nil {
		return nil, err
	}

	slog.Info("Реестр моделей загружен", "binary", len(binary), "classify", len(classify), "stats", stats != nil)
	return reg, nil
}

func loadNamed(path, name string, classes int) (Model, error) {
	model, err := LoadModel(path)
	if err != nil {
		return nil, err
	}
	if model.Name() != name {
		return nil, &LoadError{Path: path, Err: fmt.Errorf("ожидалась модель %q, в артефакте %q", name, model.Name())}
	}
	if model.Classes() != classes {
		return nil, &LoadError{Path: path, Err: fmt.Errorf("модель %q: ожидалось %d классов, в артефакте %d", name, classes, model.Classes())}
	}
	return model, nil
}

// Binary три модели бинарного скрининга в порядке EvaluationOrder
func (r *Registry) Binary() [3]Model { return r.binary }

// Classify три модели классификации в порядке EvaluationOrder
func (r *Registry) Classify() [3]Model { return r.classify }

// Stats статистики признаков или nil, если файл не поставлялся
func (r *Registry) Stats() *FeatureStats { return r.stats }
