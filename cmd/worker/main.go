package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	_ "time/tzdata"

	"payproof/internal/config"
	"payproof/internal/notify"
	"payproof/internal/tasks"

	"github.com/hibiken/asynq"
	_ "github.com/joho/godotenv/autoload"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	redisOpt, err := asynq.ParseRedisURI(cfg.RedisURL)
	if err != nil {
		log.Fatalf("Failed to parse Redis URL: %v", err)
	}

	email, err := notify.NewEmailNotifier(cfg.ResendAPIKey, cfg.EmailFrom, cfg.EmailTo, notify.LoadLocation(cfg.NotifyTimezone))
	if err != nil {
		log.Fatalf("Failed to create email notifier: %v", err)
	}

	srv := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Queues: map[string]int{
				"default": 3,
			},
			Concurrency: 10, // Max 10 concurrent jobs
		},
	)

	taskProcessor := tasks.NewTaskProcessor(email)

	mux := asynq.NewServeMux()
	mux.HandleFunc(
		tasks.TypeTaskSendPaymentNotification,
		taskProcessor.HandleSendPaymentNotificationTask,
	)

	log.Println("Starting Asynq worker server...")
	if err := srv.Start(mux); err != nil {
		log.Fatalf("Could not start Asynq worker server: %v", err)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit

	log.Println("Shutdown signal received, shutting down gracefully...")

	srv.Shutdown()
	log.Println("Asynq worker server shut down.")

	log.Println("Worker process shut down complete.")
}
