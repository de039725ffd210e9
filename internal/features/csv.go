package features

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrBadCSV некорректный входной CSV (ошибка клиента, не сервера)
var ErrBadCSV = errors.New("invalid CSV input")

// ParseCSV читает CSV с заголовком и возвращает первую строку данных
// как отображение колонка -> значение. Дальше по пайплайну используется
// только первый семпл (single-sample inference), остальные строки
// игнорируются.
func ParseCSV(r io.Reader) (map[string]float64, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: ошибка чтения заголовка: %v", ErrBadCSV, err)
	}

	record, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: нет строк данных", ErrBadCSV)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: ошибка чтения строки данных: %v", ErrBadCSV, err)
	}

	if len(record) != len(header) {
		return nil, fmt.Errorf("%w: число значений (%d) не совпадает с числом колонок (%d)", ErrBadCSV, len(record), len(header))
	}

	row := make(map[string]float64, len(header))
	for i, col := range header {
		name := strings.TrimSpace(col)
		value, err := strconv.ParseFloat(strings.TrimSpace(record[i]), 64)
		if err != nil {
			// Нечисловые значения допустимы только в необязательных колонках
			if _, required := columnIndex[name]; required {
				return nil, fmt.Errorf("%w: колонка %q содержит нечисловое значение %q", ErrBadCSV, name, record[i])
			}
			continue
		}
		row[name] = value
	}

	return row, nil
}
