package features

import (
	"fmt"
	"strings"
)

// Метрики ЭМГ сигнала, по 8 каналов (e1..e8) на каждую.
// Порядок фиксированный — модели обучены именно на нем.
var metricNames = [...]string{
	"standard_deviation",
	"root_mean_square",
	"minimum",
	"maximum",
	"zero_crossings",
	"average_amplitude_change",
	"amplitude_first_burst",
	"mean_absolute_value",
	"wave_form_length",
	"willison_amplitude",
}

const channelCount = 8

// FeatureCount количество обязательных признаков (10 метрик x 8 каналов)
const FeatureCount = len(metricNames) * channelCount

// FeatureColumns канонический упорядоченный список из 80 имен признаков
var FeatureColumns = buildColumns()

func buildColumns() []string {
	cols := make([]string, 0, FeatureCount)
	for _, metric := range metricNames {
		for ch := 1; ch <= channelCount; ch++ {
			cols = append(cols, fmt.Sprintf("%s_e%d", metric, ch))
		}
	}
	return cols
}

// columnIndex индекс колонки в каноническом порядке
var columnIndex = buildIndex()

func buildIndex() map[string]int {
	idx := make(map[string]int, FeatureCount)
	for i, name := range FeatureColumns {
		idx[name] = i
	}
	return idx
}

// Row валидированная строка признаков в каноническом порядке
type Row []float64

// Clone возвращает копию строки (нужно эксплейнеру для окклюзии признаков)
func (r Row) Clone() Row {
	out := make(Row, len(r))
	copy(out, r)
	return out
}

// ValidationError ошибка схемы признаков: перечисляет ВСЕ недостающие колонки
type ValidationError struct {
	MissingColumns []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required feature columns: %s", strings.Join(e.MissingColumns, ", "))
}

// Validate проверяет строку против схемы и возвращает 80 значений
// в каноническом порядке. Лишние колонки игнорируются.
func Validate(row map[string]float64) (Row, error) {
	var missing []string
	for _, col := range FeatureColumns {
		if _, ok := row[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &ValidationError{MissingColumns: missing}
	}

	out := make(Row, FeatureCount)
	for i, col := range FeatureColumns {
		out[i] = row[col]
	}
	return out, nil
}

// Name имя признака по индексу канонического порядка
func Name(i int) string {
	if i < 0 || i >= FeatureCount {
		return fmt.Sprintf("feature_%d", i)
	}
	return FeatureColumns[i]
}
