package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/D3XTRO12/miel-ia/internal/features"
	"github.com/D3XTRO12/miel-ia/internal/ml"
	"github.com/D3XTRO12/miel-ia/internal/models"
	"github.com/D3XTRO12/miel-ia/internal/services"
)

// DiagnoseHandler обрабатывает HTTP запросы диагностики
type DiagnoseHandler struct {
	diagnoseService *services.DiagnoseService
}

// NewDiagnoseHandler создает новый обработчик диагностики
func NewDiagnoseHandler(diagnoseService *services.DiagnoseService) *DiagnoseHandler {
	return &DiagnoseHandler{diagnoseService: diagnoseService}
}

// DiagnoseResponse результат диагностики исследования
type DiagnoseResponse struct {
	Study   *models.MedicalStudy `json:"study"`
	Verdict *models.FinalVerdict `json:"verdict"`
}

// Diagnose выполняет диагностику ЭМГ исследования
// @Summary Диагностика ЭМГ исследования
// @Description Принимает CSV с признаками ЭМГ, прогоняет ансамбль моделей и сохраняет вердикт в исследовании
// @Tags diagnosis
// @Accept mpfd
// @Produce json
// @Param study_id path string true "UUID исследования"
// @Param file formData file true "CSV файл с 80 признаками ЭМГ"
// @Success 200 {object} DiagnoseResponse "Вердикт диагностики"
// @Failure 400 {object} models.ErrorResponse "Ошибка валидации признаков"
// @Failure 404 {object} models.ErrorResponse "Исследование не найдено"
// @Failure 409 {object} models.ErrorResponse "Исследование не в статусе PENDING"
// @Failure 500 {object} models.ErrorResponse "Ошибка предсказания"
// @Security BearerAuth
// @Router /diagnose/{study_id} [post]
func (h *DiagnoseHandler) Diagnose(c *gin.Context) {
	studyID, err := uuid.Parse(c.Param("study_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid study id",
			Details: err.Error(),
		})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "file is required",
			Details: err.Error(),
		})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "cannot read uploaded file",
			Details: err.Error(),
		})
		return
	}
	defer file.Close()

	study, verdict, err := h.diagnoseService.Run(c.Request.Context(), studyID, file)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, DiagnoseResponse{Study: study, Verdict: verdict})
}

// writeError сопоставляет типизированные ошибки конвейера с HTTP статусами
func (h *DiagnoseHandler) writeError(c *gin.Context, err error) {
	var verr *features.ValidationError
	var ierr *ml.InferenceError

	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "feature validation error",
			Details: verr.Error(),
		})
	case errors.Is(err, services.ErrStudyNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "study not found",
			Details: err.Error(),
		})
	case errors.Is(err, services.ErrStudyNotPending):
		c.JSON(http.StatusConflict, models.ErrorResponse{
			Error:   "study is not pending",
			Details: err.Error(),
		})
	case errors.Is(err, features.ErrBadCSV):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid CSV file",
			Details: err.Error(),
		})
	case errors.As(err, &ierr):
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "model inference error",
			Details: ierr.Error(),
		})
	default:
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "diagnosis error",
			Details: err.Error(),
		})
	}
}
