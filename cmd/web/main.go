// @title           Kalā Sangam API
// @version         1.0
// @description     Бэкенд площадки кастинга: профили, проекты, отклики, медиа.
// @license.name    MIT
// @license.url     https://opensource.org/licenses/MIT
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name apikey

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	_ "kalasangam_backend/docs"
	"kalasangam_backend/internal/logger"

	"github.com/urfave/cli/v3"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := &cli.Command{
		Name:  "kalasangam",
		Usage: "Kalā Sangam casting marketplace backend",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config/config.yaml",
				Sources: cli.EnvVars("CONFIG_PATH"),
			},
		},
		Commands: []*cli.Command{
			serveCommand(),
			migrateCommand(),
			setupCommand(),
		},
		// без подкоманды запускаем сервер
		Action: serve,
	}

	if err := app.Run(ctx, os.Args); err != nil {
		logger.Fatal("application error", "error", err)
	}
}
