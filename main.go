package main

import (
	"log"

	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	_ "github.com/lib/pq"

	"taskmail/internal/ai"
	"taskmail/internal/config"
	"taskmail/internal/handler"
	"taskmail/internal/logger"
	"taskmail/internal/repository"
	"taskmail/internal/repository/memory"
	"taskmail/internal/repository/postgres"
	"taskmail/internal/router"
	"taskmail/internal/security"
	"taskmail/internal/service"
	"taskmail/internal/strategy"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal("Config validation failed:", err)
	}

	appLogger := logger.New(cfg.LogLevel)

	// Repositories: postgres when DATABASE_URL is set, in-memory otherwise.
	var emailRepo repository.EmailRepository
	var taskRepo repository.TaskRepository
	var configRepo repository.WebhookConfigRepository

	if cfg.DatabaseURL != "" {
		db, err := sqlx.Connect("postgres", cfg.DatabaseURL)
		if err != nil {
			log.Fatal("Failed to connect to database:", err)
		}
		defer db.Close()

		if err := postgres.InitializeDatabase(db); err != nil {
			log.Fatal("Failed to initialize database:", err)
		}

		emailRepo = postgres.NewPostgresEmailRepository(db)
		taskRepo = postgres.NewPostgresTaskRepository(db)
		configRepo = postgres.NewPostgresWebhookConfigRepository(db)
		appLogger.Info().Msg("using postgres repositories")
	} else {
		emailRepo = memory.NewInMemoryEmailRepository()
		taskRepo = memory.NewInMemoryTaskRepository()
		configRepo = memory.NewInMemoryWebhookConfigRepository()
		appLogger.Info().Msg("using in-memory repositories")
	}

	// The AI client is optional; without a key every pipeline stage uses
	// its rule-based path.
	var aiClient service.AIClient
	if cfg.OpenAIKey != "" {
		aiClient = ai.NewOpenAIClient(cfg.OpenAIKey, cfg.OpenAIModel)
	}

	spamClassifier := service.NewSpamClassifier(cfg.SpamKeywords)
	classifier := service.NewContextClassifier(aiClient, cfg.UseAIContext, appLogger)
	summarizer := service.NewSummarizer(aiClient, cfg.UseAISummary, appLogger)
	suggester := service.NewActionSuggester(strategy.NewDefaultRegistry(), aiClient, cfg.UseAIActions, appLogger)
	mapper := service.NewTaskMapper(spamClassifier, classifier, summarizer, suggester, emailRepo, appLogger)
	duplicates := service.NewDuplicateDetector(emailRepo, cfg.DuplicateThreshold, appLogger)

	emailService := service.NewEmailService(emailRepo, taskRepo, duplicates, mapper, appLogger)
	taskService := service.NewTaskService(taskRepo, appLogger)

	tracker := security.NewFailureTracker(cfg.FailureThreshold, cfg.FailureWindow, appLogger)
	gate := security.NewGate(configRepo, tracker, cfg.EmergencyAPIKey, cfg.IsTest(), appLogger)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Logger())

	emailHandler := handler.NewEmailHandler(emailService, gate, cfg.DefaultUserID, appLogger)
	taskHandler := handler.NewTaskHandler(taskService, cfg.DefaultUserID, appLogger)
	adminHandler := handler.NewAdminHandler(configRepo, appLogger)

	router.SetupRoutes(e, emailHandler, taskHandler, adminHandler)

	appLogger.Info().Str("port", cfg.Port).Msg("starting server")
	if err := e.Start(":" + cfg.Port); err != nil {
		appLogger.Fatal().Err(err).Msg("server stopped")
	}
}
