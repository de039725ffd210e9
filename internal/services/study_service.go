package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/D3XTRO12/miel-ia/internal/models"
)

// ErrStudyNotFound исследование с таким ID не существует
var ErrStudyNotFound = errors.New("medical study not found")

// StudyService отвечает за работу с медицинскими исследованиями
type StudyService struct {
	db *gorm.DB
}

// NewStudyService создает новый сервис исследований
func NewStudyService(db *gorm.DB) *StudyService {
	return &StudyService{db: db}
}

// Create создает исследование в статусе PENDING
func (s *StudyService) Create(ctx context.Context, req *models.CreateStudyRequest) (*models.MedicalStudy, error) {
	study := &models.MedicalStudy{
		PatientName:     req.PatientName,
		PatientLastName: req.PatientLastName,
		Description:     req.Description,
		Status:          models.StudyStatusPending,
	}

	if err := s.db.WithContext(ctx).Create(study).Error; err != nil {
		return nil, fmt.Errorf("ошибка создания исследования: %w", err)
	}

	slog.Info("Исследование создано", "study_id", study.ID, "patient", study.PatientLastName)
	return study, nil
}

// GetByID возвращает исследование по идентификатору
func (s *StudyService) GetByID(ctx context.Context, id uuid.UUID) (*models.MedicalStudy, error) {
	var study models.MedicalStudy
	err := s.db.WithContext(ctx).First(&study, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrStudyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка получения исследования: %w", err)
	}
	return &study, nil
}

// List возвращает исследования, опционально фильтруя по статусу
func (s *StudyService) List(ctx context.Context, status string) ([]models.MedicalStudy, error) {
	query := s.db.WithContext(ctx).Order("created_at DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var studies []models.MedicalStudy
	if err := query.Find(&studies).Error; err != nil {
		return nil, fmt.Errorf("ошибка получения списка исследований: %w", err)
	}
	return studies, nil
}

// Complete сохраняет результаты диагностики и переводит исследование
// в статус COMPLETED
func (s *StudyService) Complete(ctx context.Context, study *models.MedicalStudy, mlResults string) error {
	updates := map[string]interface{}{
		"status":     models.StudyStatusCompleted,
		"ml_results": mlResults,
	}
	if err := s.db.WithContext(ctx).Model(study).Updates(updates).Error; err != nil {
		return fmt.Errorf("ошибка сохранения результатов: %w", err)
	}

	study.Status = models.StudyStatusCompleted
	study.MLResults = &mlResults
	return nil
}
