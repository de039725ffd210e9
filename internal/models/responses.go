package models

// ErrorResponse стандартная структура ошибки
type ErrorResponse struct {
	Error   string `json:"error" example:"validation error"`                    // Сообщение об ошибке
	Details string `json:"details,omitempty" example:"field validation failed"` // Дополнительные детали
}

// CreateStudyRequest запрос на создание исследования
type CreateStudyRequest struct {
	PatientName     string `json:"patient_name" binding:"required" example:"Ivan"`
	PatientLastName string `json:"patient_last_name" binding:"required" example:"Petrov"`
	Description     string `json:"description" example:"Плановое ЭМГ обследование"`
}

// StudyListResponse список исследований
type StudyListResponse struct {
	Studies []MedicalStudy `json:"studies"`
	Count   int            `json:"count" example:"5"`
}
