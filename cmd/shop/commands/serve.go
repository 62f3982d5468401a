package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shop/internal/http/handlers"
	applog "shop/internal/log"
	"shop/internal/repos"
	"shop/internal/services"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Open the database, create the schema if needed, optionally seed the demo
catalog and serve the API until SIGINT or SIGTERM.

Examples:
  shop serve                   # defaults: :8080, ./shop.db, sql sessions
  shop serve --port 9000 --db /tmp/shop.db
  SHOP_SESSION_BACKEND=redis shop serve`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Listen port (overrides server.port)")
}

func runServe() error {
	if servePort != 0 {
		cfg.Server.Port = servePort
	}
	logger := applog.Logger()

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	if cfg.Database.Seed {
		if err := repos.SeedIfEmpty(db); err != nil {
			return fmt.Errorf("failed to seed: %w", err)
		}
	}

	sessions, closeSessions, err := sessionStore(db)
	if err != nil {
		return err
	}
	defer closeSessions()

	app := handlers.NewApp(handlers.NewDeps(db, cfg, sessions), cfg)

	errCh := make(chan error, 1)
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		logger.Info().Str("addr", addr).Str("session_backend", cfg.Session.Backend).Msg("listening")
		errCh <- app.Listen(addr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		logger.Info().Str("signal", sig.String()).Msg("shutting down")
	}
	return app.ShutdownWithTimeout(10 * time.Second)
}

// sessionStore picks the session backend named by session.backend.
func sessionStore(db *sqlx.DB) (services.SessionStore, func(), error) {
	switch cfg.Session.Backend {
	case "redis":
		rdb, err := repos.OpenRedis(cfg.Redis.Address, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Redis.Address, err)
		}
		return repos.NewRedisSessionStore(rdb), func() { _ = rdb.Close() }, nil
	case "sql", "":
		store := repos.NewSessionRepo(db)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if n, err := store.DeleteExpired(ctx, time.Now()); err != nil {
			return nil, nil, fmt.Errorf("failed to purge sessions: %w", err)
		} else if n > 0 {
			applog.Logger().Info().Int64("purged", n).Msg("expired sessions removed")
		}
		return store, func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown session backend %q", cfg.Session.Backend)
	}
}
