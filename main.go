package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"commander/api"
	"commander/config"
	"commander/db"
	"commander/ui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"
	gormlogger "gorm.io/gorm/logger"
)

var version = "dev"

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

type rootOptions struct {
	verbose bool
	cfg     config.Config
	logger  *zap.Logger
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "commander",
		Short: "commander - remember how to run terminal commands",
		Long: `commander stores short "how to" reminders for terminal commands, each with
the literal command line and the platform it runs on.

Configuration is read from COMMANDER_* environment variables.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			opts.cfg = cfg

			// The browser owns the terminal; logging would corrupt it.
			if cmd.Name() == "browse" {
				opts.logger = zap.NewNop()
				return nil
			}
			logger, err := buildLogger(cfg, opts.verbose)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			opts.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.logger != nil {
				_ = opts.logger.Sync()
			}
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging")

	cmd.AddCommand(newServeCommand(opts))
	cmd.AddCommand(newBrowseCommand(opts))
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	})

	return cmd
}

func buildLogger(cfg config.Config, verbose bool) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	if cfg.Development() {
		zcfg = zap.NewDevelopmentConfig()
	}
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	if verbose {
		level = zapcore.DebugLevel
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)
	return zcfg.Build()
}

func openStore(cfg config.Config, logger *zap.Logger) (db.Store, error) {
	opts := cfg.StoreOptions()
	if logger.Core().Enabled(zapcore.DebugLevel) {
		opts.Logger = gormlogger.New(zap.NewStdLog(logger), gormlogger.Config{
			SlowThreshold: 200 * time.Millisecond,
			LogLevel:      gormlogger.Info,
		})
	}
	return db.Open(opts)
}

func newServeCommand(opts *rootOptions) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the command API over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := opts.cfg
			if addr != "" {
				cfg.Addr = addr
			}
			logger := opts.logger

			store, err := openStore(cfg, logger)
			if err != nil {
				return err
			}
			defer store.Close()
			logger.Info("store opened", zap.String("driver", cfg.DBDriver))

			srv := api.NewServer(store, api.ServerOptions{
				Addr:            cfg.Addr,
				ReadTimeout:     cfg.ReadTimeout,
				WriteTimeout:    cfg.WriteTimeout,
				IdleTimeout:     cfg.IdleTimeout,
				ShutdownTimeout: cfg.ShutdownTimeout,
				Logger:          logger,
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			g, ctx := errgroup.WithContext(ctx)
			g.Go(srv.ListenAndServe)
			g.Go(func() error {
				<-ctx.Done()
				logger.Info("shutting down")
				return srv.Stop(context.Background())
			})
			if err := g.Wait(); err != nil {
				logger.Error("server stopped", zap.Error(err))
				return err
			}
			logger.Info("stopped")
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides COMMANDER_ADDR)")
	return cmd
}

func newBrowseCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse, edit and run stored commands in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(opts.cfg, opts.logger)
			if err != nil {
				return err
			}
			defer store.Close()

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			app, err := ui.NewApp(ctx, store)
			if err != nil {
				return fmt.Errorf("creating app: %w", err)
			}

			p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("running app: %w", err)
			}
			return nil
		},
	}
}
