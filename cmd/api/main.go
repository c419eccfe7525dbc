package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"payproof/internal/config"
	"payproof/internal/db"
	"payproof/internal/notify"
	"payproof/internal/objectstore"
	"payproof/internal/payments"
	"payproof/internal/records"
	"payproof/internal/routes"
	"payproof/internal/tasks"

	"github.com/hibiken/asynq"
	_ "github.com/joho/godotenv/autoload"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	startupCtx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	gormDB, err := db.Connect(startupCtx, db.RetryPolicy{
		Attempts: cfg.DBConnectAttempts,
		Delay:    cfg.DBConnectDelay,
	}, func() (*gorm.DB, error) {
		return db.InitDB(cfg.DBDriver, cfg.DatabaseURL, cfg.DBLogLevel)
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	store := records.NewGormStore(gormDB)
	if err := store.Migrate(); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	objects, uploadDir, err := newObjectStore(startupCtx, cfg)
	if err != nil {
		log.Fatalf("Failed to set up object store: %v", err)
	}

	notifier, closeNotifier, err := newNotifier(cfg)
	if err != nil {
		log.Fatalf("Failed to set up notifier: %v", err)
	}
	defer closeNotifier()

	svc := payments.NewService(objects, store, notifier, payments.WithNotifyTimeout(cfg.NotifyTimeout))

	router := routes.SetupRouter(routes.Deps{
		Service:   svc,
		Health:    store,
		UploadDir: uploadDir,
	}, cfg)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	srvErr := make(chan error, 1)
	go func() {
		log.Printf("Starting server on %s", server.Addr)
		srvErr <- server.ListenAndServe()
	}()

	stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := awaitStop(srvErr, stopCtx.Done()); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := gormDB.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Println("Server stopped")
}

// awaitStop blocks until the server exits or a signal arrives. It returns
// the server error unless the server was closed normally.
func awaitStop(srvErr <-chan error, signaled <-chan struct{}) error {
	select {
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-signaled:
		log.Println("Shutdown signal received, stopping server")
	}
	return nil
}

func newObjectStore(ctx context.Context, cfg *config.Config) (payments.ObjectStore, string, error) {
	switch cfg.StorageDriver {
	case "s3":
		s, err := objectstore.NewS3Store(ctx, objectstore.S3Config{
			Bucket:          cfg.S3Bucket,
			Region:          cfg.S3Region,
			Endpoint:        cfg.S3Endpoint,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
			PublicBaseURL:   cfg.S3PublicBaseURL,
			ForcePathStyle:  cfg.S3ForcePathStyle,
		})
		return s, "", err
	case "local":
		s, err := objectstore.NewLocalStore(cfg.UploadDir, cfg.PublicBaseURL)
		return s, cfg.UploadDir, err
	default:
		return nil, "", fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}

// newNotifier builds one sender per configured driver. The returned func
// releases queue and broker connections.
func newNotifier(cfg *config.Config) (payments.Notifier, func(), error) {
	loc := notify.LoadLocation(cfg.NotifyTimezone)

	var senders notify.Multi
	var closers []func()
	closeAll := func() {
		for _, c := range closers {
			c()
		}
	}

	for _, driver := range cfg.NotifyDrivers {
		switch driver {
		case "log":
			senders = append(senders, notify.LogNotifier{Location: loc})
		case "email":
			n, err := notify.NewEmailNotifier(cfg.ResendAPIKey, cfg.EmailFrom, cfg.EmailTo, loc)
			if err != nil {
				closeAll()
				return nil, nil, err
			}
			senders = append(senders, n)
		case "queue":
			redisOpt, err := asynq.ParseRedisURI(cfg.RedisURL)
			if err != nil {
				closeAll()
				return nil, nil, fmt.Errorf("failed to parse Redis URL: %w", err)
			}
			client := asynq.NewClient(redisOpt)
			closers = append(closers, func() { _ = client.Close() })
			senders = append(senders, tasks.NewQueueNotifier(client, "default"))
		case "kafka":
			producer, err := notify.NewKafkaProducer(cfg.KafkaBrokers, cfg.NotifyTimeout)
			if err != nil {
				closeAll()
				return nil, nil, err
			}
			n := notify.NewKafkaNotifier(producer, cfg.KafkaTopic, loc)
			closers = append(closers, func() { _ = n.Close() })
			senders = append(senders, n)
		default:
			closeAll()
			return nil, nil, fmt.Errorf("unknown notify driver %q", driver)
		}
	}

	if len(senders) == 0 {
		senders = append(senders, notify.LogNotifier{Location: loc})
	}
	return senders, closeAll, nil
}
