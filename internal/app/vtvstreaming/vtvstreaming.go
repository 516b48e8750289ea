package vtvstreaming

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"
	"golang.org/x/time/rate"

	"github.com/magabrotheeeer/vtv-streaming/internal/config"
	"github.com/magabrotheeeer/vtv-streaming/internal/imageedit"
	"github.com/magabrotheeeer/vtv-streaming/internal/lib/jwt"
	"github.com/magabrotheeeer/vtv-streaming/internal/lib/sl"
	"github.com/magabrotheeeer/vtv-streaming/internal/rabbitmq"
	"github.com/magabrotheeeer/vtv-streaming/internal/services/auth"
	"github.com/magabrotheeeer/vtv-streaming/internal/services/catalog"
	"github.com/magabrotheeeer/vtv-streaming/internal/services/entitlement"
	"github.com/magabrotheeeer/vtv-streaming/internal/storage/memory"
)

type App struct {
	server *http.Server
	logger *slog.Logger
	cfg    *config.Config
	conn   *amqp.Connection
}

// New создаёт хранилища, сервисы и HTTP-сервер. Брокер подключается,
// только если задан RabbitMQ URL.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "vtvstreaming.New"

	app := &App{logger: logger, cfg: cfg}

	var opts []entitlement.Option
	if cfg.RabbitMQURL != "" {
		publisher, err := app.connectBroker()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		opts = append(opts, entitlement.WithEvents(publisher))
	}

	accounts := entitlement.NewManager(memory.NewAccounts(), logger, opts...)
	if err := accounts.Seed(ctx, entitlement.SeedOptions{
		AdminEmail:   cfg.AdminEmail,
		AdminPIN:     cfg.AdminPIN,
		DemoAccounts: cfg.SeedDemoData,
	}); err != nil {
		app.closeBroker()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	editor, err := imageedit.NewGemini(ctx, cfg.GeminiAPIKey, cfg.Model, logger)
	if err != nil {
		app.closeBroker()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	svc := Services{
		Accounts:     accounts,
		Auth:         auth.NewAuthService(accounts, jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)),
		Catalog:      catalog.NewContentService(memory.NewContents(catalog.SeedContent()...), accounts, logger),
		Editor:       editor,
		ImageLimiter: rate.NewLimiter(rate.Every(cfg.RateInterval), cfg.RateBurst),
	}

	router := chi.NewRouter()
	RegisterRoutes(router, logger, svc)

	app.server = &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}
	return app, nil
}

func (a *App) connectBroker() (*rabbitmq.Publisher, error) {
	conn, err := rabbitmq.Connect(a.cfg.RabbitMQURL, a.cfg.Retries, a.cfg.RetryDelay)
	if err != nil {
		return nil, err
	}
	ch, err := rabbitmq.SetupChannel(conn, a.cfg.Exchange, rabbitmq.AccountQueues())
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	a.conn = conn
	a.logger.Info("account events are published to rabbitmq", slog.String("exchange", a.cfg.Exchange))
	return rabbitmq.NewPublisher(ch, a.cfg.Exchange), nil
}

func (a *App) closeBroker() {
	if a.conn == nil {
		return
	}
	if err := a.conn.Close(); err != nil {
		a.logger.Warn("failed to close rabbitmq connection", sl.Err(err))
	}
}

// Run обслуживает запросы до отмены ctx, затем останавливает сервер.
func (a *App) Run(ctx context.Context) error {
	if a.conn != nil && a.cfg.AuditEnabled {
		if err := a.startAudit(ctx); err != nil {
			a.logger.Error("audit consumer is not started", sl.Err(err))
		}
	}

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
		a.closeBroker()
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.closeBroker()
		return err
	}
}

// startAudit читает очередь аудита, пока не отменён ctx.
func (a *App) startAudit(ctx context.Context) error {
	ch, err := a.conn.Channel()
	if err != nil {
		return err
	}
	if err := rabbitmq.ConsumerMessage(ctx, a.logger, ch, rabbitmq.AuditQueue, rabbitmq.AuditHandler(a.logger)); err != nil {
		_ = ch.Close()
		return err
	}
	go func() {
		<-ctx.Done()
		_ = ch.Close()
	}()
	a.logger.Info("audit consumer started", slog.String("queue", rabbitmq.AuditQueue))
	return nil
}
