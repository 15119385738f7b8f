// Package cmd provides common initialization functions for command-line applications.
package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dukex/flowlint/pkg/graph"
	"github.com/dukex/flowlint/pkg/loader"
	"github.com/dukex/flowlint/pkg/schema"
)

// NewRegistry loads the object-type registry at path. An empty path yields an
// empty registry, which disables field-reference checks.
func NewRegistry(ctx context.Context, logger *slog.Logger, path string) (*schema.Registry, error) {
	if path == "" {
		logger.DebugContext(ctx, "No object type registry configured")

		return schema.NewRegistry(), nil
	}

	reg, err := loader.LoadRegistry(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load registry: %w", err)
	}

	logger.InfoContext(ctx, "Loaded object type registry", "path", path, "object_types", reg.Len())

	return reg, nil
}

// NewDefinitions returns the built-in node types, extended with the document
// at path when one is given.
func NewDefinitions(ctx context.Context, logger *slog.Logger, path string) (graph.Definitions, error) {
	if path == "" {
		return graph.DefaultDefinitions(), nil
	}

	defs, err := loader.LoadDefinitions(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load node types: %w", err)
	}

	logger.InfoContext(ctx, "Loaded node types", "path", path, "node_types", len(defs))

	return defs, nil
}
