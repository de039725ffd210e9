package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Health проверяет состояние сервиса
// @Summary Проверка состояния сервиса диагностики
// @Description Возвращает статус работы сервиса
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{} "Сервис работает"
// @Router /health [get]
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   "miel-ia",
		"timestamp": time.Now().UTC(),
	})
}
