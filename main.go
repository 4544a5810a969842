package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dine-on-time-api/config"
	"dine-on-time-api/events"
	"dine-on-time-api/handlers"
	"dine-on-time-api/images"
	"dine-on-time-api/logging"
	"dine-on-time-api/metrics"
	"dine-on-time-api/middleware"
	"dine-on-time-api/routes"
	"dine-on-time-api/services"
	"dine-on-time-api/store"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load error: %v\n", err)
		os.Exit(1)
	}
	logger := logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)

	if err := run(cfg, logger); err != nil {
		logger.WithError(err).Fatal("server stopped")
	}
}

func run(cfg *config.Config, logger *log.Logger) error {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	db, err := config.OpenDB(cfg.DBDriver, cfg.DBSource)
	if err != nil {
		return err
	}
	logger.WithFields(log.Fields{"driver": cfg.DBDriver}).Info("database connected and migrated")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	backend, uploadDir, err := imageBackend(ctx, cfg.Images)
	if err != nil {
		return err
	}

	var publisher events.Publisher = events.Nop{}
	if len(cfg.Kafka.Brokers) > 0 {
		publisher = events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		logger.WithFields(log.Fields{"brokers": cfg.Kafka.Brokers, "topic": cfg.Kafka.Topic}).Info("publishing reservation events to kafka")
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			logger.WithError(err).Warn("close event publisher")
		}
	}()

	m := metrics.New(prometheus.DefaultRegisterer)
	jwt := middleware.NewJWT(cfg.JWTSecret, cfg.JWTTTL)
	st := store.New(db)
	svc := services.New(services.Deps{
		Store:   st,
		Images:  images.NewUploader(backend),
		Tokens:  jwt,
		Events:  publisher,
		Metrics: m,
		Logger:  logger,
	})

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(logging.Component(logger, "http"), m), middleware.CORS(cfg.CORSOrigins))
	routes.SetupRoutes(r, handlers.New(svc, st, logging.Component(logger, "handlers")), routes.Options{
		JWT:       jwt,
		UploadDir: uploadDir,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		logger.Infof("Server running on http://localhost:%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// imageBackend returns the configured backend and, for local storage, the
// directory to serve under /uploads.
func imageBackend(ctx context.Context, cfg config.ImagesConfig) (images.Backend, string, error) {
	if cfg.Backend == config.ImagesS3 {
		b, err := images.NewS3Backend(ctx, images.S3Options{
			Bucket:          cfg.S3Bucket,
			Region:          cfg.S3Region,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
			Endpoint:        cfg.S3Endpoint,
		})
		return b, "", err
	}
	return images.NewLocalBackend(cfg.UploadDir, cfg.PublicBaseURL), cfg.UploadDir, nil
}
