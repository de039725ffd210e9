package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/D3XTRO12/miel-ia/internal/models"
	"github.com/D3XTRO12/miel-ia/internal/services"
)

// StudyHandler обрабатывает HTTP запросы медицинских исследований
type StudyHandler struct {
	studyService *services.StudyService
}

// NewStudyHandler создает новый обработчик исследований
func NewStudyHandler(studyService *services.StudyService) *StudyHandler {
	return &StudyHandler{studyService: studyService}
}

// Create создает новое исследование
// @Summary Создание ЭМГ исследования
// @Description Создает исследование в статусе PENDING для последующей диагностики
// @Tags studies
// @Accept json
// @Produce json
// @Param request body models.CreateStudyRequest true "Данные исследования"
// @Success 201 {object} models.MedicalStudy "Созданное исследование"
// @Failure 400 {object} models.ErrorResponse "Неверный запрос"
// @Security BearerAuth
// @Router /studies [post]
func (h *StudyHandler) Create(c *gin.Context) {
	var req models.CreateStudyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid request",
			Details: err.Error(),
		})
		return
	}

	study, err := h.studyService.Create(c.Request.Context(), &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to create study",
			Details: err.Error(),
		})
		return
	}
	c.JSON(http.StatusCreated, study)
}

// Get возвращает исследование по ID
// @Summary Получение исследования
// @Description Возвращает исследование вместе с результатами диагностики, если они есть
// @Tags studies
// @Produce json
// @Param id path string true "UUID исследования"
// @Success 200 {object} models.MedicalStudy "Исследование"
// @Failure 404 {object} models.ErrorResponse "Исследование не найдено"
// @Security BearerAuth
// @Router /studies/{id} [get]
func (h *StudyHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid study id",
			Details: err.Error(),
		})
		return
	}

	study, err := h.studyService.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrStudyNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "study not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to get study",
			Details: err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, study)
}

// List возвращает список исследований
// @Summary Список исследований
// @Description Возвращает исследования, опционально фильтруя по статусу
// @Tags studies
// @Produce json
// @Param status query string false "Фильтр по статусу" Enums(PENDING, COMPLETED)
// @Success 200 {object} models.StudyListResponse "Список исследований"
// @Security BearerAuth
// @Router /studies [get]
func (h *StudyHandler) List(c *gin.Context) {
	studies, err := h.studyService.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to list studies",
			Details: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.StudyListResponse{
		Studies: studies,
		Count:   len(studies),
	})
}
