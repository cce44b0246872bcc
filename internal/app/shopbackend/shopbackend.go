// Package shopbackend собирает основное приложение магазина: хранилище,
// кэш, очередь уведомлений, сервисы и HTTP-сервер.
package shopbackend

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/avshapoval/shop-backend/internal/cache"
	"github.com/avshapoval/shop-backend/internal/config"
	"github.com/avshapoval/shop-backend/internal/lib/jwt"
	"github.com/avshapoval/shop-backend/internal/migrations"
	"github.com/avshapoval/shop-backend/internal/notify"
	"github.com/avshapoval/shop-backend/internal/rabbitmq"
	authservice "github.com/avshapoval/shop-backend/internal/services/auth"
	cartservice "github.com/avshapoval/shop-backend/internal/services/cart"
	itemservice "github.com/avshapoval/shop-backend/internal/services/item"
	"github.com/avshapoval/shop-backend/internal/storage/repository"
)

// App представляет основное приложение магазина.
type App struct {
	server *http.Server
	conn   *amqp.Connection
	ch     *amqp.Channel
	db     *repository.Storage
	logger *slog.Logger
}

// New создает новый экземпляр приложения.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	conn, err := rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
	if err != nil {
		return nil, err
	}
	ch, err := rabbitmq.SetupChannel(conn)
	if err != nil {
		if cerr := conn.Close(); cerr != nil {
			logger.Error("failed to close connection", slog.Any("err", cerr))
		}
		return nil, err
	}

	jwtMaker := jwt.NewMaker(cfg.AppSecret)
	resetNotifier := notify.NewResetNotifier(ch, cfg.FrontendURL)

	authService := authservice.New(db, jwtMaker, resetNotifier, logger)
	cartService := cartservice.New(db, logger)
	itemService := itemservice.New(db, cacheRedis, authService, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, jwtMaker, authService, cartService, itemService)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		conn:   conn,
		ch:     ch,
		db:     db,
		logger: logger,
	}, nil
}

// Run запускает HTTP-сервер и останавливает его по отмене контекста.
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

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		if cerr := a.ch.Close(); cerr != nil {
			a.logger.Error("failed to close channel", slog.Any("err", cerr))
		}
		if cerr := a.conn.Close(); cerr != nil {
			a.logger.Error("failed to close connection", slog.Any("err", cerr))
		}
		if cerr := a.db.DB.Close(); cerr != nil {
			a.logger.Error("failed to close database", slog.Any("err", cerr))
		}
		return err
	}
}
