package main

import (
	"context"

	"github.com/dukex/flowlint/pkg/loader"
	"github.com/dukex/flowlint/pkg/services"
	cli "github.com/urfave/cli/v3"
)

func NewCheckConnectionCommand() *cli.Command {
	return &cli.Command{
		Name:      "check-connection",
		Usage:     "Check whether an edge may be added between two nodes of a graph",
		ArgsUsage: "<graph-file>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "source",
				Aliases:  []string{"s"},
				Usage:    "ID of the source node",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "target",
				Aliases:  []string{"t"},
				Usage:    "ID of the target node",
				Required: true,
			},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			path, err := firstArg(command, "graph-file")
			if err != nil {
				return err
			}

			e, err := newEnv(ctx, command, "check-connection")
			if err != nil {
				return err
			}
			defer e.close(ctx)

			g, err := loader.LoadGraph(path)
			if err != nil {
				return err
			}

			result, err := e.validation().CheckConnection(ctx, services.ConnectionRequest{
				Graph:    g,
				SourceID: command.String("source"),
				TargetID: command.String("target"),
			})
			if err != nil {
				return err
			}

			if err := e.out.connection(result); err != nil {
				return err
			}

			if !result.IsValid {
				return ErrConnectionInvalid
			}

			return nil
		},
	}
}
