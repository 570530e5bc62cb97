package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/onedayhr/crm-api/internal/config"
	"github.com/onedayhr/crm-api/internal/infra/database"
	"github.com/onedayhr/crm-api/internal/infra/export"
	"github.com/onedayhr/crm-api/internal/infra/http/handlers"
	"github.com/onedayhr/crm-api/internal/infra/http/middleware"
	"github.com/onedayhr/crm-api/internal/infra/http/router"
	"github.com/onedayhr/crm-api/internal/infra/integration/openai"
	"github.com/onedayhr/crm-api/internal/infra/integration/telegram"
	"github.com/onedayhr/crm-api/internal/infra/mail"
	"github.com/onedayhr/crm-api/internal/infra/queue"
	"github.com/onedayhr/crm-api/internal/infra/security"
	"github.com/onedayhr/crm-api/internal/usecase"
)

func main() {
	godotenv.Load()
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewDBConnection(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("❌ database: %v", err)
	}
	defer db.Close()

	if err := database.CreateSchema(ctx, db); err != nil {
		log.Fatalf("❌ schema: %v", err)
	}

	// 1. Repositories
	leadRepo := database.NewLeadRepository(db)
	stageRepo := database.NewStageRepository(db)
	taskRepo := database.NewTaskRepository(db)
	commentRepo := database.NewCommentRepository(db)
	callRepo := database.NewCallRepository(db)
	userRepo := database.NewUserRepository(db)
	inviteRepo := database.NewInviteRepository(db)
	resetRepo := database.NewPasswordResetRepository(db)

	health := handlers.NewHealthHandler(db)

	// 2. Optional infrastructure
	captureUC := &usecase.CaptureLeadUseCase{
		Repo:       leadRepo,
		OnCaptured: middleware.RecordLeadCaptured,
		Now:        time.Now,
	}

	health.Checks["rabbitmq"] = nil
	if cfg.RabbitMQURL != "" {
		rabbitMQ, err := queue.NewRabbitMQ(cfg.RabbitMQURL)
		if err != nil {
			log.Printf("⚠️ RabbitMQ unavailable, lead events disabled: %v", err)
		} else {
			defer rabbitMQ.Close()
			captureUC.Queue = queue.NewProducer(rabbitMQ.Ch)
			health.Checks["rabbitmq"] = func(context.Context) error {
				if !rabbitMQ.Healthy() {
					return errors.New("connection closed")
				}
				return nil
			}
		}
	}

	var limiter middleware.Limiter
	health.Checks["redis"] = nil
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatalf("❌ REDIS_URL: %v", err)
		}
		rdb := redis.NewClient(opts)
		defer rdb.Close()
		limiter = middleware.NewRedisLimiter(rdb, cfg.CaptureRateLimit, cfg.CaptureRateWindow)
		health.Checks["redis"] = func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		}
	} else {
		mem := middleware.NewMemoryLimiter(cfg.CaptureRateLimit, cfg.CaptureRateWindow)
		go mem.Cleanup(ctx, 10*time.Minute)
		limiter = mem
	}

	// 3. Gateways
	assistant := &usecase.AssistantService{
		Leads:      leadRepo,
		Repo:       database.NewAssistantRepository(db),
		OnFallback: middleware.RecordAIFallback,
	}
	if llm := openai.NewClient(cfg.OpenAIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel, cfg.AITimeout); llm != nil {
		assistant.Model = llm
	}
	health.Upstreams["openai"] = assistant.Model != nil

	telegramHandler := &handlers.TelegramHandler{}
	if bot, err := telegram.NewClient(cfg.TelegramToken, cfg.TelegramChatID, cfg.TelegramEndpoint, cfg.TelegramTimeout); err == nil {
		telegramHandler.Messenger = bot
	}
	health.Upstreams["telegram"] = cfg.TelegramConfigured()

	auth := &usecase.AuthService{
		Users:         userRepo,
		Invites:       inviteRepo,
		Resets:        resetRepo,
		Hasher:        security.NewPasswordHasher(),
		Tokens:        security.TokenGenerator{},
		InviteBaseURL: cfg.InviteBaseURL,
		ResetBaseURL:  cfg.ResetBaseURL,
		Now:           time.Now,
	}
	if cfg.SMTPConfigured() {
		auth.Mailer = mail.NewEmailSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom)
	}
	health.Upstreams["smtp"] = cfg.SMTPConfigured()

	// 4. Router
	handler := router.New(router.Handlers{
		Capture:       handlers.NewCaptureHandler(captureUC),
		Leads:         &handlers.LeadHandler{Leads: leadRepo, Stages: stageRepo, Tasks: taskRepo, Comments: commentRepo, Calls: callRepo},
		Stages:        &handlers.StageHandler{Stages: stageRepo},
		Tasks:         &handlers.TaskHandler{Tasks: taskRepo},
		Comments:      &handlers.CommentHandler{Comments: commentRepo},
		Calls:         &handlers.CallHandler{Calls: callRepo, Leads: leadRepo},
		Notifications: &handlers.NotificationHandler{Service: usecase.NewNotificationService(database.NewNotificationRepository(db))},
		AI:            &handlers.AIHandler{Service: assistant},
		Export: &handlers.ExportHandler{Service: &usecase.ExportService{
			Repo:     database.NewExportRepository(db),
			Renderer: export.NewXLSXRenderer(),
		}},
		Auth:     &handlers.AuthHandler{Service: auth},
		Telegram: telegramHandler,
		Health:   health,
	}, router.Options{CORSOrigin: cfg.CORSOrigin, CaptureLimiter: limiter})

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	log.Printf("🔥 CRM API listening on %s", cfg.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("❌ server: %v", err)
	}
}
