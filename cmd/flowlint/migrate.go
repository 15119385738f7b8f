package main

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"strings"

	"github.com/dukex/flowlint/pkg/loader"
	"github.com/dukex/flowlint/pkg/services"
	cli "github.com/urfave/cli/v3"
)

var ErrInvalidMapping = errors.New("invalid mapping")

func NewMigrateCommand() *cli.Command {
	return &cli.Command{
		Name:      "migrate",
		Usage:     "Rewrite legacy field references of a workflow graph into typed references",
		ArgsUsage: "<graph-file>",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:    "map",
				Aliases: []string{"m"},
				Usage:   "Assign a legacy field path to an object type (path=objectTypeId)",
			},
			&cli.BoolFlag{
				Name:  "auto",
				Usage: "Use the confident suggestions for paths not given with --map",
			},
			&cli.IntFlag{
				Name:  "min-confidence",
				Usage: "Lowest suggestion score --auto accepts",
				Value: services.DefaultMinConfidence,
			},
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "Print the migration plan without rewriting anything",
			},
			&cli.StringFlag{
				Name:    "write",
				Aliases: []string{"w"},
				Usage:   "Write the migrated graph to this file (JSON or YAML)",
			},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			path, err := firstArg(command, "graph-file")
			if err != nil {
				return err
			}

			mapping, err := parseMapping(command.StringSlice("map"))
			if err != nil {
				return err
			}

			e, err := newEnv(ctx, command, "migrate")
			if err != nil {
				return err
			}
			defer e.close(ctx)

			g, err := loader.LoadGraph(path)
			if err != nil {
				return err
			}

			svc := e.migration(services.WithMinConfidence(command.Int("min-confidence")))

			if command.Bool("dry-run") || command.Bool("auto") {
				plan, err := svc.Plan(ctx, g)
				if err != nil {
					return err
				}

				if command.Bool("dry-run") {
					return e.out.plan(plan)
				}

				mapping = withDefaults(mapping, plan.Mapping)
			}

			result, err := svc.Apply(ctx, g, mapping)
			if err != nil {
				return err
			}

			e.logger.InfoContext(ctx, "Migrated workflow",
				"path", path,
				"references", len(result.Results),
				"errors", len(result.Errors),
			)

			if out := command.String("write"); out != "" {
				if err := loader.WriteGraph(out, result.Graph); err != nil {
					return err
				}
			}

			if err := e.out.migration(result); err != nil {
				return err
			}

			if len(result.Errors) > 0 {
				return ErrMigrationFailed
			}

			return nil
		},
	}
}

// parseMapping reads path=objectTypeId pairs. The path may itself contain
// dots, so only the last '=' separates the two.
func parseMapping(pairs []string) (map[string]string, error) {
	mapping := make(map[string]string, len(pairs))

	for _, pair := range pairs {
		i := strings.LastIndex(pair, "=")
		if i <= 0 || i == len(pair)-1 {
			return nil, fmt.Errorf("%w: %q, expected path=objectTypeId", ErrInvalidMapping, pair)
		}

		mapping[pair[:i]] = pair[i+1:]
	}

	return mapping, nil
}

// withDefaults fills mapping with the entries of defaults it does not set.
func withDefaults(mapping, defaults map[string]string) map[string]string {
	merged := maps.Clone(defaults)
	if merged == nil {
		merged = make(map[string]string, len(mapping))
	}

	maps.Copy(merged, mapping)

	return merged
}
