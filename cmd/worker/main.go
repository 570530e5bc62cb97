package main

import (
	"context"
	"log"
	"os/signal"
	"sync"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/onedayhr/crm-api/internal/config"
	"github.com/onedayhr/crm-api/internal/infra/database"
	"github.com/onedayhr/crm-api/internal/infra/integration/telegram"
	"github.com/onedayhr/crm-api/internal/infra/queue"
	"github.com/onedayhr/crm-api/internal/infra/worker"
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

	var wg sync.WaitGroup

	cleanup := worker.NewTokenCleanupWorker(
		database.NewInviteRepository(db),
		database.NewPasswordResetRepository(db),
		cfg.CleanupInterval,
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		cleanup.Start(ctx)
	}()

	switch {
	case cfg.RabbitMQURL == "":
		log.Println("⚠️ RABBITMQ_URL not set, lead events will not be relayed")
	case !cfg.TelegramConfigured():
		log.Println("⚠️ Telegram credentials not configured, lead events will not be relayed")
	default:
		rabbitMQ, err := queue.NewRabbitMQ(cfg.RabbitMQURL)
		if err != nil {
			log.Fatalf("❌ rabbitmq: %v", err)
		}
		defer rabbitMQ.Close()

		bot, err := telegram.NewClient(cfg.TelegramToken, cfg.TelegramChatID, cfg.TelegramEndpoint, cfg.TelegramTimeout)
		if err != nil {
			log.Fatalf("❌ telegram: %v", err)
		}

		consumer := queue.NewWorker(rabbitMQ.Ch, bot)
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := consumer.Start(ctx, queue.QueueName); err != nil {
				log.Printf("❌ [WORKER] consumer stopped: %v", err)
				stop()
			}
		}()
	}

	log.Println("🐇 CRM worker running")
	wg.Wait()
}
