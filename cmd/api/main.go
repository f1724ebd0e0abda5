package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/eduai-labs/eduai-api/internal/config"
	"github.com/eduai-labs/eduai-api/internal/database"
	"github.com/eduai-labs/eduai-api/internal/handler"
	"github.com/eduai-labs/eduai-api/internal/middleware"
	"github.com/eduai-labs/eduai-api/internal/router"
	"github.com/eduai-labs/eduai-api/internal/service"
	"github.com/eduai-labs/eduai-api/internal/workspace"
	"github.com/eduai-labs/eduai-api/pkg/detector"
	"github.com/eduai-labs/eduai-api/pkg/llm"
	"github.com/eduai-labs/eduai-api/pkg/lms"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	// Integrations are optional at boot. A facade whose credential is absent
	// answers with a configuration error instead of keeping the whole service
	// from starting.
	var lmsClient lms.API
	if cfg.LMSToken != "" {
		client, err := lms.New(lms.Config{
			BaseURL: cfg.LMSBaseURL,
			Token:   cfg.LMSToken,
			Logger:  logger,
		})
		if err != nil {
			log.Fatalf("failed to create lms client: %v", err)
		}
		lmsClient = client
	} else {
		logger.Warn().Msg("EDUAI_LMS_TOKEN not set, LMS routes will return configuration errors")
	}

	var completer llm.Completer
	if cfg.GroqAPIKey != "" {
		client, err := llm.New(llm.Config{
			APIKey:  cfg.GroqAPIKey,
			BaseURL: cfg.GroqBaseURL,
			Model:   cfg.GroqModel,
			Logger:  logger,
		})
		if err != nil {
			log.Fatalf("failed to create model client: %v", err)
		}
		completer = client
	} else {
		logger.Warn().Msg("EDUAI_GROQ_API_KEY not set, grading/lesson/chat routes will return configuration errors")
	}

	var detectorClient detector.API
	if cfg.SaplingAPIKey != "" {
		client, err := detector.New(detector.Config{
			BaseURL: cfg.SaplingBaseURL,
			APIKey:  cfg.SaplingAPIKey,
			Logger:  logger,
		})
		if err != nil {
			log.Fatalf("failed to create detector client: %v", err)
		}
		detectorClient = client
	} else {
		logger.Warn().Msg("EDUAI_SAPLING_API_KEY not set, detection route will return configuration errors")
	}

	var redisClient *goredis.Client
	if cfg.RedisURL != "" {
		redisClient, err = database.ConnectRedis(cfg.RedisURL)
		if err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		defer redisClient.Close()
	} else {
		logger.Info().Msg("EDUAI_REDIS_URL not set, analytics caching disabled")
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	store := workspace.NewStore()

	lmsService := service.NewLMSService(lmsClient, redisClient, cfg.AnalyticsCacheTTL, logger)
	gradingService := service.NewGradingService(completer, logger)
	lessonService := service.NewLessonService(completer, logger)
	chatService := service.NewChatService(completer, logger)
	detectService := service.NewDetectService(detectorClient, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		HealthHandler:    handler.NewHealthHandler(cfg.AppName),
		LMSHandler:       handler.NewLMSHandler(lmsService, validate, logger),
		GradingHandler:   handler.NewGradingHandler(gradingService, validate, logger),
		LessonHandler:    handler.NewLessonHandler(lessonService, validate, logger),
		ChatHandler:      handler.NewChatHandler(chatService, validate, logger),
		DetectHandler:    handler.NewDetectHandler(detectService, logger),
		WorkspaceHandler: handler.NewWorkspaceHandler(store, lmsService, validate, logger),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
