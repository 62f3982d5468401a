package commands

import (
	"fmt"
	"io"
	"os"

	"shop/internal/config"
	applog "shop/internal/log"
	"shop/internal/repos"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath string
	dsn        string

	cfg config.Config
)

var rootCmd = &cobra.Command{
	Use:   "shop",
	Short: "Shop - e-commerce JSON API",
	Long: `Shop serves categories, products, carts, orders, wishlists, comments and
replies over a JSON API with cookie sessions, backed by SQLite.

Configuration comes from an optional yaml file, SHOP_* environment variables
and built-in defaults, in that order of precedence (env wins).`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if dsn != "" {
			cfg.Database.DSN = dsn
		}
		return setupLogging()
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a yaml config file")
	rootCmd.PersistentFlags().StringVar(&dsn, "db", "", "SQLite database path (overrides database.dsn)")
}

// setupLogging sends logs to stdout and, when log.file is set, to that file too.
func setupLogging() error {
	var w io.Writer = os.Stdout
	if cfg.Log.File != "" {
		f, err := os.OpenFile(cfg.Log.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return fmt.Errorf("could not open log file %s: %w", cfg.Log.File, err)
		}
		w = io.MultiWriter(os.Stdout, f)
	}
	applog.Setup(w, cfg.Log.Level)
	applog.Logger().Debug().
		Int("port", cfg.Server.Port).
		Str("dsn", cfg.Database.DSN).
		Str("session", cfg.Session.Backend).
		Msg("config loaded")
	return nil
}

func openDB() (*sqlx.DB, error) {
	db, err := repos.OpenDB(cfg.Database.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", cfg.Database.DSN, err)
	}
	return db, nil
}
