package main

import (
	"context"

	cli "github.com/urfave/cli/v3"
)

func NewSuggestCommand() *cli.Command {
	return &cli.Command{
		Name:      "suggest",
		Usage:     "Rank registered object types as owners of a legacy field path",
		ArgsUsage: "<field-path>",
		Action: func(ctx context.Context, command *cli.Command) error {
			fieldPath, err := firstArg(command, "field-path")
			if err != nil {
				return err
			}

			e, err := newEnv(ctx, command, "suggest")
			if err != nil {
				return err
			}
			defer e.close(ctx)

			suggestions, err := e.migration().Suggest(ctx, fieldPath)
			if err != nil {
				return err
			}

			return e.out.suggestions(fieldPath, suggestions)
		},
	}
}
