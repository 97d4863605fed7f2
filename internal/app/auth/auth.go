// Package auth собирает gRPC-сервис идентификации.
package auth

import (
	"context"
	"fmt"
	"log/slog"
	"net"

	"google.golang.org/grpc"

	"github.com/PoorDoomer/gym-saas-sub000/internal/cache"
	"github.com/PoorDoomer/gym-saas-sub000/internal/config"
	"github.com/PoorDoomer/gym-saas-sub000/internal/grpc/authpb"
	"github.com/PoorDoomer/gym-saas-sub000/internal/grpc/server"
	"github.com/PoorDoomer/gym-saas-sub000/internal/lib/jwt"
	"github.com/PoorDoomer/gym-saas-sub000/internal/lib/sl"
	"github.com/PoorDoomer/gym-saas-sub000/internal/migrations"
	authservices "github.com/PoorDoomer/gym-saas-sub000/internal/services/auth"
	"github.com/PoorDoomer/gym-saas-sub000/internal/storage/repository"
)

// App сервис идентификации.
type App struct {
	grpcServer *grpc.Server
	listener   net.Listener
	db         *repository.Storage
	cache      *cache.Cache
	logger     *slog.Logger
}

// New подключает хранилище учётных записей и чёрный список токенов в Redis.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "app.auth.New"

	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	blacklist, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)
	authService := authservices.NewAuthService(db, jwtMaker, blacklist, logger)

	lis, err := net.Listen("tcp", cfg.GRPCAuthAddress)
	if err != nil {
		_ = blacklist.Close()
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	grpcServer := grpc.NewServer()
	authpb.RegisterAuthServiceServer(grpcServer, server.NewAuthServer(authService, logger))

	return &App{
		grpcServer: grpcServer,
		listener:   lis,
		db:         db,
		cache:      blacklist,
		logger:     logger,
	}, nil
}

// Run обслуживает gRPC до отмены ctx.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("Auth gRPC service listening on", slog.String("address", a.listener.Addr().String()))
		errCh <- a.grpcServer.Serve(a.listener)
	}()

	var err error
	select {
	case <-ctx.Done():
		a.logger.Info("stopping auth gRPC service")
		a.grpcServer.GracefulStop()
	case err = <-errCh:
	}

	if cerr := a.cache.Close(); cerr != nil {
		a.logger.Error("failed to close cache", sl.Err(cerr))
	}
	if cerr := a.db.Close(); cerr != nil {
		a.logger.Error("failed to close storage", sl.Err(cerr))
	}
	return err
}
