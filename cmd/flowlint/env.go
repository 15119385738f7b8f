package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dukex/flowlint/pkg/cmd"
	"github.com/dukex/flowlint/pkg/graph"
	"github.com/dukex/flowlint/pkg/log"
	"github.com/dukex/flowlint/pkg/otelhelper"
	"github.com/dukex/flowlint/pkg/schema"
	"github.com/dukex/flowlint/pkg/services"
	"github.com/google/uuid"
	cli "github.com/urfave/cli/v3"
)

var (
	ErrInvalidWorkflow   = errors.New("workflow is invalid")
	ErrConnectionInvalid = errors.New("connection is not allowed")
	ErrMigrationFailed   = errors.New("some references could not be migrated")
	ErrMissingArgument   = errors.New("missing argument")
)

// env holds what every command needs, built from the root flags.
type env struct {
	logger   *slog.Logger
	registry *schema.Registry
	defs     graph.Definitions
	options  []services.Option
	shutdown otelhelper.ShutdownFunc
	out      *printer
}

func newEnv(ctx context.Context, command *cli.Command, action string) (*env, error) {
	log.Setup(command.String("log-level"))

	logger := log.WithModule("flowlint").With(
		"action", action,
		"run_id", uuid.NewString(),
	)

	reg, err := cmd.NewRegistry(ctx, logger, command.String("registry"))
	if err != nil {
		return nil, err
	}

	defs, err := cmd.NewDefinitions(ctx, logger, command.String("node-types"))
	if err != nil {
		return nil, err
	}

	tracer, shutdown, err := cmd.NewTracer(ctx, logger, "flowlint", command.Bool("otel"))
	if err != nil {
		return nil, err
	}

	out, err := newPrinter(command.Root().Writer, command.String("output"))
	if err != nil {
		return nil, err
	}

	return &env{
		logger:   logger,
		registry: reg,
		defs:     defs,
		options:  []services.Option{services.WithLogger(logger), services.WithTracer(tracer)},
		shutdown: shutdown,
		out:      out,
	}, nil
}

func (e *env) close(ctx context.Context) {
	if err := e.shutdown(ctx); err != nil {
		e.logger.ErrorContext(ctx, "Failed to shutdown tracer", "error", err)
	}
}

func (e *env) validation(extra ...services.Option) *services.Validation {
	return services.NewValidation(graph.NewValidator(e.defs), e.registry, append(e.options, extra...)...)
}

func (e *env) migration(extra ...services.Option) *services.Migration {
	return services.NewMigration(e.registry, append(e.options, extra...)...)
}

func firstArg(command *cli.Command, name string) (string, error) {
	arg := command.Args().First()
	if arg == "" {
		return "", fmt.Errorf("%w: %s", ErrMissingArgument, name)
	}

	return arg, nil
}
