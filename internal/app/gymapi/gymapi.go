// Package gymapi собирает HTTP API клуба: хранилище, кэш, клиент сервиса идентификации,
// публикацию уведомлений и маршруты.
package gymapi

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/PoorDoomer/gym-saas-sub000/internal/access"
	"github.com/PoorDoomer/gym-saas-sub000/internal/cache"
	"github.com/PoorDoomer/gym-saas-sub000/internal/config"
	"github.com/PoorDoomer/gym-saas-sub000/internal/grpc/client"
	"github.com/PoorDoomer/gym-saas-sub000/internal/http/handlers/health"
	"github.com/PoorDoomer/gym-saas-sub000/internal/lib/rabbitmq"
	"github.com/PoorDoomer/gym-saas-sub000/internal/lib/sl"
	"github.com/PoorDoomer/gym-saas-sub000/internal/metrics"
	"github.com/PoorDoomer/gym-saas-sub000/internal/migrations"
	accountservice "github.com/PoorDoomer/gym-saas-sub000/internal/services/account"
	checkinservice "github.com/PoorDoomer/gym-saas-sub000/internal/services/checkin"
	classservice "github.com/PoorDoomer/gym-saas-sub000/internal/services/class"
	gymservice "github.com/PoorDoomer/gym-saas-sub000/internal/services/gym"
	gymdata "github.com/PoorDoomer/gym-saas-sub000/internal/services/gymdata"
	memberservice "github.com/PoorDoomer/gym-saas-sub000/internal/services/member"
	paymentservice "github.com/PoorDoomer/gym-saas-sub000/internal/services/payment"
	planservice "github.com/PoorDoomer/gym-saas-sub000/internal/services/plan"
	sportservice "github.com/PoorDoomer/gym-saas-sub000/internal/services/sport"
	subservice "github.com/PoorDoomer/gym-saas-sub000/internal/services/subscription"
	trainerservice "github.com/PoorDoomer/gym-saas-sub000/internal/services/trainer"
	"github.com/PoorDoomer/gym-saas-sub000/internal/storage/repository"
)

const shutdownTimeout = 15 * time.Second

// App HTTP API клуба.
type App struct {
	server     *http.Server
	logger     *slog.Logger
	db         *repository.Storage
	cache      *cache.Cache
	authClient *client.AuthClient
	conn       *amqp.Connection
	ch         *amqp.Channel
}

// New подключает зависимости и собирает маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "gymapi.New"

	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	authClient, err := client.NewAuthClient(cfg.GRPCAuthAddress)
	if err != nil {
		_ = cacheRedis.Close()
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	app := &App{
		logger:     logger,
		db:         db,
		cache:      cacheRedis,
		authClient: authClient,
	}

	// Приветственные письма не обязательны для работы API: без брокера
	// учётные записи создаются, а уведомления пропускаются.
	var publisher accountservice.Publisher
	if cfg.RabbitMQURL != "" {
		conn, ch, err := connectBroker(cfg)
		if err != nil {
			logger.Warn("notifications disabled, broker unavailable", sl.Err(err))
		} else {
			app.conn, app.ch = conn, ch
			publisher = rabbitmq.NewPublisher(ch)
		}
	}

	m := metrics.New()
	gymData := gymdata.NewGymDataService(db, cacheRedis, logger)
	memberService := memberservice.NewMemberService(db, gymData, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, Services{
		Auth:          authClient,
		Tenants:       db,
		Gate:          access.NewGate(db),
		Accounts:      accountservice.NewAccountService(authClient, db, memberService, publisher, m, logger),
		Members:       memberService,
		Trainers:      trainerservice.NewTrainerService(db, logger),
		Classes:       classservice.NewClassService(db, logger),
		Sports:        sportservice.NewSportService(db, logger),
		Plans:         planservice.NewPlanService(db, logger),
		Subscriptions: subservice.NewSubscriptionService(db, logger),
		Payments:      paymentservice.NewPaymentService(db, gymData, logger),
		CheckIns:      checkinservice.NewCheckInService(db, m, logger),
		Gyms:          gymservice.NewGymService(db, logger),
		GymData:       gymData,
		Health: map[string]health.Pinger{
			"postgres": db,
			"redis":    cacheRedis,
		},
		Metrics:      m,
		RateLimitRPS: cfg.RateLimitRPS,
		RateBurst:    cfg.RateLimitBurst,
	})

	app.server = &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}
	return app, nil
}

func connectBroker(cfg *config.Config) (*amqp.Connection, *amqp.Channel, error) {
	conn, err := rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
	if err != nil {
		return nil, nil, err
	}
	ch, err := rabbitmq.SetupChannel(conn, rabbitmq.GetNotificationQueues())
	if err != nil {
		_ = conn.Close()
		return nil, nil, err
	}
	return conn, ch, nil
}

// Run обслуживает запросы до отмены ctx, затем останавливает сервер и закрывает ресурсы.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	var err error
	select {
	case err = <-errCh:
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err = a.server.Shutdown(timeoutCtx)
	}
	a.close()
	return err
}

func (a *App) close() {
	if a.ch != nil {
		if err := a.ch.Close(); err != nil {
			a.logger.Error("failed to close channel", sl.Err(err))
		}
	}
	if a.conn != nil {
		if err := a.conn.Close(); err != nil {
			a.logger.Error("failed to close connection", sl.Err(err))
		}
	}
	if err := a.authClient.Close(); err != nil {
		a.logger.Error("failed to close auth client", sl.Err(err))
	}
	if err := a.cache.Close(); err != nil {
		a.logger.Error("failed to close cache", sl.Err(err))
	}
	if err := a.db.Close(); err != nil {
		a.logger.Error("failed to close storage", sl.Err(err))
	}
}
