package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/dukex/flowlint/pkg/services"
	"github.com/dukex/flowlint/pkg/web"
	"github.com/gofiber/fiber/v3"
	cli "github.com/urfave/cli/v3"
)

const (
	defaultPort     = 9091
	shutdownTimeout = 10 * time.Second
)

func NewServeCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the validation and migration API over HTTP",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Port to run the API server on",
				Value:   defaultPort,
				Sources: cli.EnvVars("PORT"),
			},
			&cli.BoolFlag{
				Name:    "strict",
				Usage:   "Report legacy field references as errors",
				Sources: cli.EnvVars("FLOWLINT_STRICT"),
			},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			e, err := newEnv(ctx, command, "serve")
			if err != nil {
				return err
			}
			defer e.close(ctx)

			ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			handlers := web.NewAPIHandlers(
				e.validation(services.WithStrict(command.Bool("strict"))),
				e.migration(),
				nil,
				e.registry,
			)

			app := web.NewApp(handlers, e.logger)

			go func() {
				<-ctx.Done()

				shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()

				if err := app.ShutdownWithContext(shutdownCtx); err != nil {
					e.logger.Error("Failed to shutdown server", "error", err)
				}
			}()

			addr := fmt.Sprintf(":%d", command.Int("port"))
			e.logger.InfoContext(ctx, "Starting flowlint API", "addr", addr, "object_types", e.registry.Len())

			return app.Listen(addr, fiber.ListenConfig{DisableStartupMessage: true})
		},
	}
}
