package ml

import "fmt"

// LoadError фатальная ошибка загрузки артефакта модели.
// Сервис не должен стартовать с частично загруженным реестром.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("ошибка загрузки модели %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// InferenceError ошибка предсказания конкретной модели. Никогда не
// превращается в молчаливый отрицательный голос: имя модели сохраняется,
// а запрос завершается явной ошибкой.
type InferenceError struct {
	Model string
	Err   error
}

func (e *InferenceError) Error() string {
	return fmt.Sprintf("ошибка предсказания модели %s: %v", e.Model, e.Err)
}

func (e *InferenceError) Unwrap() error { return e.Err }
