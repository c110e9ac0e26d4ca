package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/recouvro/recouvro/internal/ledger/http"
	"github.com/recouvro/recouvro/internal/ledger/notify"
	"github.com/recouvro/recouvro/internal/ledger/service"
	"github.com/recouvro/recouvro/internal/ledger/store"
	"github.com/recouvro/recouvro/internal/ledger/store/drivers/sqlite"
	"github.com/recouvro/recouvro/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v0.1.0"
)

// Application encapsulates the ledger service with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	db         store.Store
	dispatcher service.Notifier
	amqpCloser interface{ Close() error }

	clientService       *service.ClientService
	queryService        *service.QueryService
	csvService          *service.CSVService
	statsService        *service.StatsService
	connexionService    *service.ConnexionService
	userService         *service.UserService
	housekeepingService *service.HousekeepingService

	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "ledger-service",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	if err := app.initDispatcher(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("ledger service starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down ledger service...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.housekeepingService.Stop()

	if app.amqpCloser != nil {
		if err := app.amqpCloser.Close(); err != nil {
			app.logger.Error("error closing AMQP dispatcher", "error", err)
		}
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("ledger service stopped")
	return nil
}

// initDatabase initializes the database and applies migrations
func (app *Application) initDatabase() error {
	host := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(host)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

// initDispatcher picks the reminder dispatcher: AMQP when a broker URL
// is configured, the logging fallback otherwise.
func (app *Application) initDispatcher() error {
	if app.cfg.AMQPURL == "" {
		app.dispatcher = &notify.LogDispatcher{Logger: app.logger}
		app.logger.Info("no AMQP broker configured, reminders will only be logged")
		return nil
	}

	dispatcher, err := notify.NewAMQPDispatcher(app.cfg.AMQPURL, app.cfg.AMQPExchange, app.cfg.AMQPQueue)
	if err != nil {
		return fmt.Errorf("failed to connect reminder dispatcher: %w", err)
	}
	app.dispatcher = dispatcher
	app.amqpCloser = dispatcher
	app.logger.Info("AMQP reminder dispatcher connected",
		"exchange", app.cfg.AMQPExchange, "queue", app.cfg.AMQPQueue)
	return nil
}

// initServices initializes all business logic services
func (app *Application) initServices() {
	app.clientService = &service.ClientService{
		Store:    app.db,
		Notifier: app.dispatcher,
	}
	app.queryService = &service.QueryService{Store: app.db}
	app.csvService = &service.CSVService{Store: app.db}
	app.statsService = &service.StatsService{Store: app.db}
	app.connexionService = &service.ConnexionService{Store: app.db}
	app.userService = &service.UserService{Store: app.db}

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
		app.cfg.ConnexionRetention,
	)
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(BuildVersion, app.db, app.logger)

	router.ClientService = app.clientService
	router.QueryService = app.queryService
	router.CSVService = app.csvService
	router.StatsService = app.statsService
	router.ConnexionService = app.connexionService
	router.UserService = app.userService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
