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

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/meetocure/admin-api/internal/app"
	"github.com/meetocure/admin-api/internal/config"
	"github.com/meetocure/admin-api/internal/model"
	"github.com/meetocure/admin-api/internal/repository"
	"github.com/meetocure/admin-api/internal/repository/memory"
	"github.com/meetocure/admin-api/internal/repository/mongodb"
	"github.com/meetocure/admin-api/pkg/logger"
	"github.com/meetocure/admin-api/pkg/messaging"
	"github.com/meetocure/admin-api/pkg/messaging/redis"
	"github.com/meetocure/admin-api/pkg/metrics"
)

const shutdownTimeout = 10 * time.Second

var configPath string

func main() {
	rootCmd := &cobra.Command{
		Use:   "admin-api",
		Short: "Healthcare admin back-office API",
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a config file")

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(seedAdminCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the unique and lookup indexes",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if cfg.Database.Driver != config.DriverMongo {
				log.Info().Str("driver", cfg.Database.Driver).Msg("nothing to migrate")
				return nil
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Database.ConnectTimeout+30*time.Second)
			defer cancel()

			db, err := mongodb.Connect(ctx, cfg.Database, nil)
			if err != nil {
				return err
			}
			defer db.Close(context.Background())

			if err := db.EnsureIndexes(ctx); err != nil {
				return fmt.Errorf("failed to create indexes: %w", err)
			}
			log.Info().Msg("indexes created")
			return nil
		},
	}
}

func seedAdminCmd() *cobra.Command {
	var req model.CreateAdminRequest
	var role string

	cmd := &cobra.Command{
		Use:   "seed-admin",
		Short: "Create a back-office account",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if cfg.Database.Driver != config.DriverMongo {
				return errors.New("seed-admin needs the mongo driver")
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Database.ConnectTimeout+30*time.Second)
			defer cancel()

			db, err := mongodb.Connect(ctx, cfg.Database, nil)
			if err != nil {
				return err
			}
			defer db.Close(context.Background())

			a := app.New(app.Options{Config: cfg, Repos: db.Repositories()})
			req.Role = model.AdminRole(role)
			created, err := a.Admins.Create(ctx, req)
			if err != nil {
				return err
			}
			log.Info().Str("id", created.ID.Hex()).Str("email", created.Email).Msg("admin created")
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Email, "email", "", "login email")
	cmd.Flags().StringVar(&req.Password, "password", "", "password, at least 6 characters")
	cmd.Flags().StringVar(&req.Name, "name", "", "display name, defaults to the email's local part")
	cmd.Flags().StringVar(&role, "role", string(model.AdminRoleAdmin), "Admin, Moderator, Analyst or Support")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	logger.Init(cfg.Log.ToLoggerConfig())
	return cfg, nil
}

func runServer() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var (
		registry *prometheus.Registry
		m        *metrics.Metrics
	)
	if cfg.Metrics.Enabled {
		registry = prometheus.NewRegistry()
		registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		m = metrics.New(cfg.Metrics.Namespace, registry)
	}

	repos, closeStore, err := openStore(ctx, cfg, m)
	if err != nil {
		return err
	}
	defer closeStore()

	broker, err := openBroker(ctx, cfg)
	if err != nil {
		return err
	}
	defer broker.Close()

	a := app.New(app.Options{
		Config:   cfg,
		Repos:    repos,
		Broker:   broker,
		Registry: registry,
		Metrics:  m,
	})

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      a.Router.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("driver", cfg.Database.Driver).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
	case <-ctx.Done():
	}
	log.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info().Msg("server exited properly")
	return nil
}

func openStore(ctx context.Context, cfg *config.Config, m *metrics.Metrics) (*repository.Repositories, func(), error) {
	if cfg.Database.Driver == config.DriverMemory {
		log.Warn().Msg("using the in-memory store, data is lost on exit")
		return memory.New(time.Now).Repositories(), func() {}, nil
	}

	db, err := mongodb.Connect(ctx, cfg.Database, m)
	if err != nil {
		return nil, nil, err
	}
	if err := db.EnsureIndexes(ctx); err != nil {
		_ = db.Close(context.Background())
		return nil, nil, fmt.Errorf("failed to create indexes: %w", err)
	}

	closeFn := func() {
		if err := db.Close(context.Background()); err != nil {
			log.Error().Err(err).Msg("failed to disconnect from MongoDB")
		}
	}
	return db.Repositories(), closeFn, nil
}

func openBroker(ctx context.Context, cfg *config.Config) (messaging.Broker, error) {
	if cfg.Redis.URL == "" {
		log.Info().Msg("redis not configured, domain events are dropped")
		return messaging.NoopBroker{}, nil
	}
	broker, err := redis.NewRedisBroker(ctx, cfg.Redis.ToBrokerConfig())
	if err != nil {
		return nil, err
	}
	return broker, nil
}
