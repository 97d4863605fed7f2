// Package scheduler собирает планировщик уведомлений об окончании абонементов
// и перевода просроченных подписок в expired.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/streadway/amqp"

	"github.com/PoorDoomer/gym-saas-sub000/internal/config"
	"github.com/PoorDoomer/gym-saas-sub000/internal/lib/rabbitmq"
	"github.com/PoorDoomer/gym-saas-sub000/internal/lib/sl"
	"github.com/PoorDoomer/gym-saas-sub000/internal/metrics"
	schedulerservice "github.com/PoorDoomer/gym-saas-sub000/internal/services/scheduler"
	"github.com/PoorDoomer/gym-saas-sub000/internal/storage/repository"
)

const (
	dbReadyAttempts = 10
	dbReadyDelay    = 3 * time.Second
)

// App представляет приложение планировщика.
type App struct {
	schedulerService *schedulerservice.SchedulerService
	db               *repository.Storage
	conn             *amqp.Connection
	ch               *amqp.Channel
	metrics          *metrics.Metrics
	metricsAddress   string
	expiringInterval time.Duration
	overdueInterval  time.Duration
	logger           *slog.Logger
}

// waitForDB ждёт, пока API применит миграции.
func waitForDB(ctx context.Context, db *repository.Storage) error {
	var err error
	for range dbReadyAttempts {
		if err = repository.CheckDatabaseReady(ctx, db); err == nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(dbReadyDelay):
		}
	}
	return fmt.Errorf("database not ready after retries: %w", err)
}

// New создает новый экземпляр приложения планировщика.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	conn, err := rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
	if err != nil {
		return nil, fmt.Errorf("failed to connect RabbitMQ: %w", err)
	}

	ch, err := rabbitmq.SetupChannel(conn, rabbitmq.GetNotificationQueues())
	if err != nil {
		closeResources(nil, conn, logger)
		return nil, fmt.Errorf("failed to setup RabbitMQ channel: %w", err)
	}

	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		closeResources(ch, conn, logger)
		return nil, fmt.Errorf("failed to connect storage: %w", err)
	}

	if err := waitForDB(ctx, db); err != nil {
		_ = db.Close()
		closeResources(ch, conn, logger)
		return nil, err
	}

	m := metrics.New()
	schedulerService := schedulerservice.NewSchedulerService(db, rabbitmq.NewPublisher(ch), m, logger)

	return &App{
		schedulerService: schedulerService,
		db:               db,
		conn:             conn,
		ch:               ch,
		metrics:          m,
		metricsAddress:   cfg.MetricsAddress,
		expiringInterval: cfg.ExpiringCheckInterval,
		overdueInterval:  cfg.OverdueCheckInterval,
		logger:           logger,
	}, nil
}

func closeResources(ch *amqp.Channel, conn *amqp.Connection, logger *slog.Logger) {
	if ch != nil {
		if err := ch.Close(); err != nil {
			logger.Error("failed to close channel", sl.Err(err))
		}
	}
	if conn != nil {
		if err := conn.Close(); err != nil {
			logger.Error("failed to close connection", sl.Err(err))
		}
	}
}

// Run запускает периодические задачи и ждёт их завершения после отмены ctx.
func (a *App) Run(ctx context.Context) error {
	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		a.logger.Info("metrics server starting on", slog.String("address", a.metricsAddress))
		if err := a.metrics.Serve(ctx, a.metricsAddress); err != nil {
			a.logger.Error("metrics server stopped", sl.Err(err))
		}
	}()
	go func() {
		defer wg.Done()
		a.schedulerService.RunExpiring(ctx, a.expiringInterval)
	}()
	go func() {
		defer wg.Done()
		a.schedulerService.RunOverdue(ctx, a.overdueInterval)
	}()

	<-ctx.Done()
	wg.Wait()

	a.logger.Info("shutting down scheduler service")
	closeResources(a.ch, a.conn, a.logger)
	if err := a.db.Close(); err != nil {
		a.logger.Error("failed to close storage", sl.Err(err))
	}
	return nil
}
