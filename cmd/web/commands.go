package main

import (
	"context"
	"fmt"

	"kalasangam_backend/database"
	"kalasangam_backend/internal/app"
	"kalasangam_backend/internal/config"
	"kalasangam_backend/internal/logger"

	"github.com/urfave/cli/v3"
)

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:   "serve",
		Usage:  "Start the HTTP API (setup mode until the connection is configured)",
		Action: serve,
	}
}

func migrateCommand() *cli.Command {
	return &cli.Command{
		Name:   "migrate",
		Usage:  "Apply the database schema using the saved connection",
		Action: migrate,
	}
}

func setupCommand() *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Save the backend connection URL and anon key",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "url",
				Usage:    "Backend connection URL (database DSN)",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "key",
				Usage:    "Anonymous API key expected in the apikey header",
				Required: true,
			},
		},
		Action: setup,
	}
}

func loadConfig(cmd *cli.Command) (*config.Config, error) {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return nil, err
	}
	logger.Init(cfg.Server.Env)
	config.AppConfig = cfg
	return cfg, nil
}

func serve(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger.Info("Logger initialized", "env", cfg.Server.Env)
	return app.Run(ctx, cfg)
}

func migrate(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	conn, err := cfg.ResolveConnection()
	if err != nil {
		return err
	}
	if conn.URL == "" {
		return fmt.Errorf("database url is not configured, run setup first")
	}

	db, err := database.Connect(database.Options{
		Driver: cfg.Database.Driver,
		DSN:    conn.URL,
		LogSQL: cfg.Database.LogSQL,
	})
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	logger.Info("running database migrations")
	if err := database.AutoMigrate(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	logger.Info("migrations applied")
	return nil
}

func setup(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	conn := config.Connection{URL: cmd.String("url"), AnonKey: cmd.String("key")}
	if err := config.SaveConnection(cfg.ConnectionFile, conn); err != nil {
		return fmt.Errorf("failed to save connection: %w", err)
	}
	logger.Info("connection saved", "path", cfg.ConnectionFile)
	return nil
}
