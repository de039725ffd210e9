package models

import (
	"time"

	"github.com/google/uuid"
)

// Статусы медицинского исследования
const (
	StudyStatusPending   = "PENDING"
	StudyStatusCompleted = "COMPLETED"
)

// MedicalStudy медицинское исследование ЭМГ. Диагностика выполняется
// только для исследований в статусе PENDING; результат пайплайна
// сохраняется в MLResults как сериализованный JSON. Поле указательное:
// пустая строка не является валидным jsonb, до завершения диагностики
// в колонке должен лежать NULL.
type MedicalStudy struct {
	ID              uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PatientName     string    `json:"patient_name" gorm:"type:varchar(100);not null"`
	PatientLastName string    `json:"patient_last_name" gorm:"type:varchar(100);not null"`
	Description     string    `json:"description" gorm:"type:text"`
	Status          string    `json:"status" gorm:"type:varchar(20);not null;default:'PENDING';index"`
	MLResults       *string   `json:"ml_results,omitempty" gorm:"type:jsonb"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (MedicalStudy) TableName() string {
	return "medical_studies"
}
