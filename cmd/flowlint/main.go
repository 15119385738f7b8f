package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dukex/flowlint/pkg/log"
	cli "github.com/urfave/cli/v3"
)

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		log.WithModule("flowlint").Error("Command failed", "error", err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:                  "flowlint",
		Usage:                 "Validate workflow graphs and migrate their field references",
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "registry",
				Aliases: []string{"r"},
				Usage:   "Path to the object type registry (JSON or YAML)",
				Sources: cli.EnvVars("FLOWLINT_REGISTRY"),
			},
			&cli.StringFlag{
				Name:    "node-types",
				Usage:   "Path to extra node type definitions (JSON or YAML)",
				Sources: cli.EnvVars("FLOWLINT_NODE_TYPES"),
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output format (text, json)",
				Value:   outputText,
				Sources: cli.EnvVars("FLOWLINT_OUTPUT"),
			},
			&cli.BoolFlag{
				Name:    "otel",
				Usage:   "Export traces over OTLP/HTTP",
				Sources: cli.EnvVars("OTEL_ENABLED"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Value:   "warn",
				Sources: cli.EnvVars("LOG_LEVEL"),
			},
		},
		Commands: []*cli.Command{
			NewValidateCommand(),
			NewCheckConnectionCommand(),
			NewSuggestCommand(),
			NewMigrateCommand(),
			NewServeCommand(),
		},
	}
}
