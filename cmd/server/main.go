/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the accounting time server.
  Handles configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Load configuration (file, ACCOUNTING_TIME_* env, flags)
  2. Initialize SQLite store
  3. Build the conversion index from stored associations
  4. Apply the seed file, if any
  5. Configure HTTP router
  6. Start server with graceful shutdown

COMMAND-LINE FLAGS:
  --config   YAML config file (optional)
  --port     HTTP server port (overrides server.port)
  --db       SQLite database path (overrides database.path)
             Use ":memory:" for in-memory database
  --seed     YAML seed file of associations (overrides seed.path)

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (server.shutdown_timeout)
  3. Close database connection
  4. Exit

EXAMPLES:
  # Run with file database and a seed
  ./server --db=./data/accounting-time.db --seed=./fiscal-calendar.yaml

  # Run with in-memory database
  ./server --db=":memory:"

  # Run on different port
  ACCOUNTING_TIME_SERVER_PORT=3000 ./server

SEE ALSO:
  - api/server.go: Router configuration
  - config/config.go: Configuration keys and defaults
  - store/sqlite/sqlite.go: Database implementation
*/
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

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/warp/accounting-time/accounting"
	"github.com/warp/accounting-time/api"
	"github.com/warp/accounting-time/config"
	"github.com/warp/accounting-time/seed"
	"github.com/warp/accounting-time/store/sqlite"
)

type flags struct {
	configPath string
	port       int
	dbPath     string
	seedPath   string
}

func main() {
	var f flags
	rootCmd := &cobra.Command{
		Use:   "accounting-time-server",
		Short: "Serve reporting period expansion and cross-kind conversion",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServer(cmd, f)
		},
		SilenceUsage: true,
	}

	rootCmd.Flags().StringVarP(&f.configPath, "config", "c", "", "Path to a YAML config file")
	rootCmd.Flags().IntVar(&f.port, "port", 0, "HTTP server port")
	rootCmd.Flags().StringVar(&f.dbPath, "db", "", "SQLite database path")
	rootCmd.Flags().StringVar(&f.seedPath, "seed", "", "YAML file of associations applied on startup")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, f flags) error {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("port") {
		cfg.Server.Port = f.port
	}
	if cmd.Flags().Changed("db") {
		cfg.Database.Path = f.dbPath
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed.Path = f.seedPath
	}

	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.Log.Level, err)
	}
	logger := zerolog.New(os.Stdout).Level(level).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	// Initialize store
	store, err := sqlite.New(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer store.Close()

	// Load existing associations into the index
	catalog := accounting.NewCatalog(store)
	if err := catalog.Reload(ctx); err != nil {
		return fmt.Errorf("failed to load associations: %w", err)
	}

	if cfg.Seed.Path != "" {
		associations, err := seed.LoadFile(cfg.Seed.Path)
		if err != nil {
			return err
		}
		added, err := seed.Apply(ctx, catalog, associations)
		if err != nil {
			return fmt.Errorf("failed to apply seed %s: %w", cfg.Seed.Path, err)
		}
		logger.Info().
			Str("path", cfg.Seed.Path).
			Int("read", len(associations)).
			Int("added", len(added)).
			Msg("seed applied")
	}

	handler := api.NewHandler(catalog)
	router := api.NewRouter(handler, api.Options{
		Logger:         logger,
		AllowedOrigins: cfg.Server.AllowedOrigins,
	})

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", server.Addr).Int("entries", catalog.Index().Len()).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-serveErr:
		return fmt.Errorf("server failed: %w", err)
	case <-quit:
	}

	logger.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	logger.Info().Msg("server stopped")
	return nil
}
