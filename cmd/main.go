// main.go
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/D3XTRO12/miel-ia/config"
	_ "github.com/D3XTRO12/miel-ia/docs"
	"github.com/D3XTRO12/miel-ia/internal/database"
	"github.com/D3XTRO12/miel-ia/internal/explain"
	"github.com/D3XTRO12/miel-ia/internal/handlers"
	"github.com/D3XTRO12/miel-ia/internal/middleware"
	"github.com/D3XTRO12/miel-ia/internal/ml"
	"github.com/D3XTRO12/miel-ia/internal/models"
	"github.com/D3XTRO12/miel-ia/internal/pipeline"
	"github.com/D3XTRO12/miel-ia/internal/services"
)

func main() {
	config.InitLogger()
	slog.Info("Starting application", "version", "1.0.0")

	cfg := config.Load()
	slog.Info("Configuration loaded successfully",
		"server_port", cfg.Server.Port,
		"gin_mode", cfg.Server.Mode,
		"db_host", cfg.Database.Host,
		"models_dir", cfg.Models.Dir,
	)

	db, err := database.Connect(cfg.Database)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(db, &models.MedicalStudy{}); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Загрузка всех шести моделей. Ошибка любой из них фатальна:
	// с частичным реестром сервис трафик не принимает.
	registry, err := ml.LoadRegistry(cfg.Models.Dir)
	if err != nil {
		slog.Error("Failed to load model registry", "error", err)
		os.Exit(1)
	}

	var explainer pipeline.Explainer
	if cfg.Models.Explanations {
		if registry.Stats() != nil {
			explainer = explain.New(registry.Stats())
		} else {
			slog.Warn("Статистика признаков не загружена, объяснения отключены")
		}
	}
	diagnosisPipeline := pipeline.New(registry, explainer)

	// Инициализация сервисов
	studyService := services.NewStudyService(db)
	diagnoseService := services.NewDiagnoseService(studyService, diagnosisPipeline)

	// Инициализация обработчиков
	studyHandler := handlers.NewStudyHandler(studyService)
	diagnoseHandler := handlers.NewDiagnoseHandler(diagnoseService)
	jwtMiddleware := middleware.NewJWTMiddleware(cfg.JWT.Secret)

	gin.SetMode(cfg.Server.Mode)
	router := setupRouter(studyHandler, diagnoseHandler, jwtMiddleware)

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("Starting HTTP server", "port", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	slog.Info("Server started successfully", "port", cfg.Server.Port)

	waitForShutdown(server)
}

func setupRouter(studies *handlers.StudyHandler, diagnose *handlers.DiagnoseHandler, jwt *middleware.JWTMiddleware) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(cors.Default())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))

	api := router.Group("/api/v1")
	{
		api.GET("/health", handlers.Health)

		protected := api.Group("")
		protected.Use(jwt.RequireAuth())
		{
			protected.POST("/studies", studies.Create)
			protected.GET("/studies", studies.List)
			protected.GET("/studies/:id", studies.Get)
			protected.POST("/diagnose/:study_id", diagnose.Diagnose)
		}
	}

	return router
}

func waitForShutdown(server *http.Server) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	slog.Info("Shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server gracefully stopped")
}
