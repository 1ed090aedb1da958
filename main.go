package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/meinhoongagan/homeconnect-pro/config"
	"github.com/meinhoongagan/homeconnect-pro/cron"
	"github.com/meinhoongagan/homeconnect-pro/db"
	"github.com/meinhoongagan/homeconnect-pro/logger"
	"github.com/meinhoongagan/homeconnect-pro/redis"
	"github.com/meinhoongagan/homeconnect-pro/routes"
)

var (
	verbose    bool
	noReminder bool
	cfg        *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "homeconnect",
	Short: "HomeConnect Pro marketplace API",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg = config.Load()
		if verbose {
			cfg.Debug = true
		}
		return logger.Init(cfg.Debug)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Sync()
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE:  runServe,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := db.Init(cfg.DatabaseURL); err != nil {
			return err
		}
		defer db.Close()
		return db.Migrate(db.DB)
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert demo contractors into an empty database",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := db.Init(cfg.DatabaseURL); err != nil {
			return err
		}
		defer db.Close()
		n, err := db.Seed(db.DB)
		if err != nil {
			return err
		}
		fmt.Printf("Seeded %d contractors\n", n)
		return nil
	},
}

func runServe(cmd *cobra.Command, args []string) error {
	if err := db.Init(cfg.DatabaseURL); err != nil {
		return err
	}
	defer db.Close()

	if err := redis.Init(cfg.RedisAddr); err != nil {
		logger.Log.Warn("redis unavailable, sign-out and stats caching disabled", zap.Error(err))
	}
	defer redis.Close()

	if cfg.UsingDefaultSecret() {
		logger.Log.Warn("JWT_SECRET not set, using development secret")
	}

	if !noReminder {
		scheduler, err := cron.StartCronJobs(cfg.ReminderSchedule)
		if err != nil {
			return err
		}
		defer scheduler.Stop()
	}

	app := routes.NewApp(cfg)

	errCh := make(chan error, 1)
	go func() {
		logger.Log.Info("server starting", zap.String("port", cfg.Port))
		errCh <- app.Listen(":" + cfg.Port)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-quit:
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	logger.Log.Info("shutting down")
	return app.ShutdownWithContext(ctx)
}

func main() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	serveCmd.Flags().BoolVar(&noReminder, "no-reminders", false, "do not schedule booking reminder emails")
	rootCmd.AddCommand(serveCmd, migrateCmd, seedCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
