package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/D3XTRO12/miel-ia/internal/features"
	"github.com/D3XTRO12/miel-ia/internal/models"
	"github.com/D3XTRO12/miel-ia/internal/pipeline"
)

// ErrStudyNotPending диагностика допустима только для PENDING исследований
var ErrStudyNotPending = errors.New("medical study is not in PENDING state")

// DiagnoseService связывает конвейер диагностики с жизненным циклом
// исследования: проверяет статус, запускает предсказание и сохраняет
// сериализованный вердикт.
type DiagnoseService struct {
	studies  *StudyService
	pipeline *pipeline.Pipeline
}

// NewDiagnoseService создает новый сервис диагностики
func NewDiagnoseService(studies *StudyService, p *pipeline.Pipeline) *DiagnoseService {
	return &DiagnoseService{studies: studies, pipeline: p}
}

// Run выполняет полный цикл диагностики для исследования: CSV с
// признаками ЭМГ -> валидация -> конвейер -> сохранение вердикта.
func (s *DiagnoseService) Run(ctx context.Context, studyID uuid.UUID, csv io.Reader) (*models.MedicalStudy, *models.FinalVerdict, error) {
	study, err := s.studies.GetByID(ctx, studyID)
	if err != nil {
		return nil, nil, err
	}
	if study.Status != models.StudyStatusPending {
		return nil, nil, fmt.Errorf("%w: study %s has status %s", ErrStudyNotPending, study.ID, study.Status)
	}

	rawRow, err := features.ParseCSV(csv)
	if err != nil {
		return nil, nil, err
	}

	// валидация схемы до запуска любой модели
	row, err := features.Validate(rawRow)
	if err != nil {
		return nil, nil, err
	}

	verdict, err := s.pipeline.Diagnose(ctx, row)
	if err != nil {
		return nil, nil, err
	}

	serialized, err := json.Marshal(verdict)
	if err != nil {
		return nil, nil, fmt.Errorf("ошибка сериализации вердикта: %w", err)
	}

	if err := s.studies.Complete(ctx, study, string(serialized)); err != nil {
		return nil, nil, err
	}

	slog.Info("Диагностика исследования завершена",
		"study_id", study.ID,
		"diagnosis", verdict.FinalDiagnosis,
		"level", verdict.ClassificationLevel,
	)
	return study, verdict, nil
}
