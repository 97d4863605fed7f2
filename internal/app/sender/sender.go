// Package sender собирает отправщик писем: потребители очередей уведомлений и SMTP транспорт.
package sender

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/streadway/amqp"

	"github.com/PoorDoomer/gym-saas-sub000/internal/config"
	"github.com/PoorDoomer/gym-saas-sub000/internal/lib/rabbitmq"
	"github.com/PoorDoomer/gym-saas-sub000/internal/lib/sl"
	"github.com/PoorDoomer/gym-saas-sub000/internal/lib/smtp"
	"github.com/PoorDoomer/gym-saas-sub000/internal/metrics"
	senderservice "github.com/PoorDoomer/gym-saas-sub000/internal/services/sender"
)

// App отправщик писем.
type App struct {
	conn          *amqp.Connection
	ch            *amqp.Channel
	senderService *senderservice.SenderService
	metrics       *metrics.Metrics
	metricsAddr   string
	logger        *slog.Logger
}

// New подключается к брокеру и настраивает SMTP транспорт.
func New(_ context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	conn, err := rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
	if err != nil {
		return nil, err
	}

	ch, err := rabbitmq.SetupChannel(conn, rabbitmq.GetNotificationQueues())
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	transport := smtp.NewTransport(cfg.SMTP, logger)
	m := metrics.New()
	senderService := senderservice.NewSenderService(transport, m, logger)

	return &App{
		conn:          conn,
		ch:            ch,
		senderService: senderService,
		metrics:       m,
		metricsAddr:   cfg.MetricsAddress,
		logger:        logger,
	}, nil
}

// permanent помечает неразборчивые сообщения, чтобы потребитель не возвращал их в очередь.
func permanent(handler func([]byte) error) func([]byte) error {
	return func(body []byte) error {
		err := handler(body)
		if errors.Is(err, senderservice.ErrMalformedMessage) {
			return fmt.Errorf("%w: %w", rabbitmq.ErrPermanent, err)
		}
		return err
	}
}

// Run потребляет очереди до отмены ctx.
func (a *App) Run(ctx context.Context) error {
	consumers := map[string]func([]byte) error{
		rabbitmq.QueueExpiring: a.senderService.SendExpiring,
		rabbitmq.QueueWelcome:  a.senderService.SendWelcome,
	}
	for queue, handler := range consumers {
		if err := rabbitmq.ConsumerMessage(ctx, a.logger, a.ch, queue, permanent(handler)); err != nil {
			a.logger.Error("failed to start consumer", slog.String("queue", queue), sl.Err(err))
			return err
		}
	}

	metricsDone := make(chan struct{})
	go func() {
		defer close(metricsDone)
		a.logger.Info("metrics server starting on", slog.String("address", a.metricsAddr))
		if err := a.metrics.Serve(ctx, a.metricsAddr); err != nil {
			a.logger.Error("metrics server stopped", sl.Err(err))
		}
	}()

	<-ctx.Done()
	<-metricsDone
	a.logger.Info("Sender service shutting down gracefully")

	if err := a.ch.Close(); err != nil {
		a.logger.Error("failed to close channel", sl.Err(err))
	}

	if err := a.conn.Close(); err != nil {
		a.logger.Error("failed to close connection", sl.Err(err))
	}

	return nil
}
