package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"

	"github.com/mbRabaa/microservice-paiement/internal"
	"github.com/mbRabaa/microservice-paiement/internal/payment"
	paymentPostgres "github.com/mbRabaa/microservice-paiement/internal/payment/postgres"
	"github.com/mbRabaa/microservice-paiement/internal/transport"
	"github.com/mbRabaa/microservice-paiement/internal/transport/rest"
	"github.com/mbRabaa/microservice-paiement/pkg/logger"
	"github.com/mbRabaa/microservice-paiement/pkg/metrics"
)

const metricsNamespace = "paiement"

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config  *internal.Config
	DB      *sqlx.DB
	Router  *chi.Mux
	Logger  *slog.Logger
	Metrics *metrics.Metrics
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	setupRoutes(deps)

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("Starting HTTP server",
		"address", addr,
		"env", deps.Config.App.Env,
		"allowed_origins", deps.Config.Server.Origins())

	server := &http.Server{
		Addr:              addr,
		Handler:           deps.Router,
		ReadHeaderTimeout: deps.Config.Server.ReadHeaderTimeout,
		ReadTimeout:       deps.Config.Server.ReadTimeout,
		WriteTimeout:      deps.Config.Server.WriteTimeout,
		IdleTimeout:       deps.Config.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("Server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			deps.Logger.Error("Database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("Server failed to start", "error", err)
			_ = deps.DB.Close()
			os.Exit(1)
		}
	}

	deps.Logger.Info("Server stopped")
}

func setupRoutes(deps *Dependencies) {
	store := paymentPostgres.NewPaymentStore(deps.DB)
	base := transport.NewBaseHandler(deps.Logger, deps.Config.IsProduction())
	service := payment.NewService(store, deps.Logger, deps.Metrics)

	metricsPath := ""
	if deps.Config.Observability.Metrics.Enabled {
		metricsPath = deps.Config.Observability.Metrics.Path
	}

	rest.RegisterAllRoutes(deps.Router, rest.RouterDeps{
		Base:           base,
		Prober:         store,
		PaymentHandler: payment.NewHandler(base, service),
		Metrics:        deps.Metrics,
		MetricsPath:    metricsPath,
		AllowedOrigins: deps.Config.Server.Origins(),
	})
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(config.App.Env,
		logger.WithLevel(config.Observability.Logging.Level),
		logger.WithFormat(config.Observability.Logging.Format))
	lg := logger.LoggerWrapper().With("service", config.App.Name)

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	lg.Info("Database connected",
		"max_open_conns", config.Database.MaxOpenConns,
		"conn_max_idle_time", config.Database.ConnMaxIdleTime)

	return &Dependencies{
		Config:  config,
		DB:      db,
		Router:  chi.NewRouter(),
		Logger:  lg,
		Metrics: metrics.New(metricsNamespace),
	}, nil
}

// initDB opens the shared pool and verifies it within the connect timeout.
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	timeout := cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	db, err := sqlx.ConnectContext(ctx, driver, cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	return db, nil
}
