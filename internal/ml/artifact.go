package ml

import (
	"encoding/json"
	"fmt"
	"os"
)

// Виды артефактов моделей
const (
	KindForest  = "forest"
	KindBoost   = "boost"
	KindNetwork = "network"
)

// artifactFile общий конверт JSON артефакта модели
type artifactFile struct {
	Name    string       `json:"name"`
	Kind    string       `json:"kind"`
	Classes int          `json:"classes"`
	Forest  *forestSpec  `json:"forest,omitempty"`
	Boost   *boostSpec   `json:"boost,omitempty"`
	Network *networkSpec `json:"network,omitempty"`
}

// LoadModel загружает один артефакт модели из JSON файла.
// Любая проблема с файлом или структурой — *LoadError.
func LoadModel(path string) (Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	var artifact artifactFile
	if err := json.Unmarshal(data, &artifact); err != nil {
		return nil, &LoadError{Path: path, Err: fmt.Errorf("некорректный JSON: %w", err)}
	}

	if artifact.Name == "" {
		return nil, &LoadError{Path: path, Err: fmt.Errorf("артефакт без имени модели")}
	}
	if artifact.Classes != 2 && artifact.Classes != 3 {
		return nil, &LoadError{Path: path, Err: fmt.Errorf("недопустимое число классов %d", artifact.Classes)}
	}

	var (
		model    Model
		buildErr error
	)
	switch artifact.Kind {
	case KindForest:
		model, buildErr = newForest(artifact.Name, artifact.Classes, artifact.Forest)
	case KindBoost:
		model, buildErr = newBoost(artifact.Name, artifact.Classes, artifact.Boost)
	case KindNetwork:
		model, buildErr = newNetwork(artifact.Name, artifact.Classes, artifact.Network)
	default:
		buildErr = fmt.Errorf("неизвестный вид артефакта %q", artifact.Kind)
	}
	if buildErr != nil {
		return nil, &LoadError{Path: path, Err: buildErr}
	}

	return model, nil
}
