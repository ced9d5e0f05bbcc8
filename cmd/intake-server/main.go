// cmd/intake-server/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"inscricao-saude/internal/catalog"
	"inscricao-saude/internal/common/config"
	"inscricao-saude/internal/common/database"
	"inscricao-saude/internal/common/logger"
	"inscricao-saude/internal/common/observability"
	"inscricao-saude/internal/pipeline"
	createenrollmentrecord "inscricao-saude/internal/pipeline/create-enrollment-record"
	indexenrollment "inscricao-saude/internal/pipeline/index-enrollment"
	sendconfirmation "inscricao-saude/internal/pipeline/send-confirmation"
	storedocuments "inscricao-saude/internal/pipeline/store-documents"
	validatesubmission "inscricao-saude/internal/pipeline/validate-submission"
	"inscricao-saude/internal/server"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting intake server...")

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	ctx := context.Background()

	// The role catalog is fixed data; an invariant violation here is a
	// build defect and must stop the process.
	cat, err := catalog.New()
	if err != nil {
		zapLog.Fatal("catalog invariant violated", zap.Error(err))
	}

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")

	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	// --- Init Redis with retry; the pipeline degrades without it ---
	var redisClient *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		redisClient, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		return redisClient.Ping(ctx)
	}, 5, 2*time.Second, zapLog, "Redis connection")

	if err != nil {
		zapLog.Warn("redis unavailable, protocol lookup disabled", zap.Error(err))
		redisClient = nil
	} else {
		defer redisClient.Close()
		zapLog.Info("Redis connected successfully")
	}

	// --- Init Elasticsearch when enabled ---
	var indexHandler *indexenrollment.Handler
	if cfg.Database.Elasticsearch.Enabled {
		var esClient *database.ElasticsearchClient
		err = retryWithBackoff(func() error {
			var err error
			esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
			if err != nil {
				return err
			}
			return esClient.Ping()
		}, 5, 2*time.Second, zapLog, "Elasticsearch connection")

		if err != nil {
			zapLog.Warn("elasticsearch unavailable, indexing disabled", zap.Error(err))
		} else {
			indexHandler = indexenrollment.NewHandler(
				&indexenrollment.Config{
					Index:   cfg.Database.Elasticsearch.Index,
					Timeout: config.GetDuration(cfg.Stages.Index.Timeout),
				},
				esClient.Client, log,
			)
			zapLog.Info("Elasticsearch connected successfully")
		}
	}

	// --- Init confirmation sender when enabled ---
	var notifyHandler *sendconfirmation.Handler
	if cfg.Notifications.Enabled {
		notifyHandler, err = sendconfirmation.NewHandler(
			&sendconfirmation.Config{
				EmailEnabled: cfg.Notifications.EmailEnabled,
				SMSEnabled:   cfg.Notifications.SMSEnabled,
				FromEmail:    cfg.Notifications.FromEmail,
				AWSRegion:    cfg.Notifications.AWSRegion,
				Timeout:      config.GetDuration(cfg.Stages.Notify.Timeout),
			},
			log,
		)
		if err != nil {
			zapLog.Warn("notification sender unavailable", zap.Error(err))
			notifyHandler = nil
		}
	}

	stages := pipeline.Stages{
		Validate: validatesubmission.NewHandler(
			&validatesubmission.Config{
				Timeout: config.GetDuration(cfg.Stages.Validate.Timeout),
			},
			log,
		),
		Persist: createenrollmentrecord.NewHandler(
			&createenrollmentrecord.Config{
				Timeout: config.GetDuration(cfg.Stages.Persist.Timeout),
			},
			pg.DB, log,
		),
		Store: storedocuments.NewHandler(
			&storedocuments.Config{
				Root:    cfg.Storage.Root,
				Timeout: config.GetDuration(cfg.Stages.Store.Timeout),
			},
			afero.NewOsFs(), log,
		),
		Index:  indexHandler,
		Notify: notifyHandler,
	}

	p := pipeline.New(cat, stages, redisClient, obs, pipeline.Config{
		ProtocolPrefix: cfg.Protocol.Prefix,
		ProtocolTTL:    time.Duration(cfg.Database.Redis.ProtocolTTLHours) * time.Hour,
		StageTimeout:   config.GetDuration(cfg.Stages.Persist.Timeout),
	}, log)

	srv := server.New(cfg.HTTP, p, cat, redisClient, log)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			zapLog.Fatal("http server failed", zap.Error(err))
		}
	case sig := <-stop:
		zapLog.Info("shutting down", zap.String("signal", sig.String()))
		shutdownCtx, cancel := context.WithTimeout(ctx, config.GetDuration(cfg.HTTP.ShutdownTimeout))
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			zapLog.Error("graceful shutdown failed", zap.Error(err))
		}
	}

	zapLog.Info("intake server stopped")
}
