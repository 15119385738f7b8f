package main

import (
	"context"

	"github.com/dukex/flowlint/pkg/loader"
	"github.com/dukex/flowlint/pkg/services"
	cli "github.com/urfave/cli/v3"
)

func NewValidateCommand() *cli.Command {
	return &cli.Command{
		Name:      "validate",
		Usage:     "Validate the structure, configuration and field references of a workflow graph",
		ArgsUsage: "<graph-file>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "strict",
				Usage:   "Report legacy field references as errors",
				Sources: cli.EnvVars("FLOWLINT_STRICT"),
			},
			&cli.BoolFlag{
				Name:  "skip-references",
				Usage: "Only validate the graph structure and node configuration",
			},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			path, err := firstArg(command, "graph-file")
			if err != nil {
				return err
			}

			e, err := newEnv(ctx, command, "validate")
			if err != nil {
				return err
			}
			defer e.close(ctx)

			g, err := loader.LoadGraph(path)
			if err != nil {
				return err
			}

			result, err := e.validation(services.WithStrict(command.Bool("strict"))).Validate(ctx, services.ValidateRequest{
				Graph:          g,
				SkipReferences: command.Bool("skip-references"),
			})
			if err != nil {
				return err
			}

			e.logger.InfoContext(ctx, "Validated workflow",
				"path", path,
				"valid", result.IsValid,
				"findings", len(result.Errors),
			)

			if err := e.out.validation(result); err != nil {
				return err
			}

			if !result.IsValid {
				return ErrInvalidWorkflow
			}

			return nil
		},
	}
}
