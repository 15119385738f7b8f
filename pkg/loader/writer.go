package loader

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dukex/flowlint/pkg/models"
	"gopkg.in/yaml.v3"
)

// EncodeGraph serializes g in format. YAML output carries the same keys as
// JSON output so that either can be read back by ParseGraph.
func EncodeGraph(g *models.WorkflowGraph, format Format) ([]byte, error) {
	raw, err := json.MarshalIndent(g, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode graph: %w", err)
	}

	switch format {
	case FormatJSON:
		return append(raw, '\n'), nil
	case FormatYAML:
		var doc map[string]any
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("failed to encode graph: %w", err)
		}

		return yaml.Marshal(doc)
	}

	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}

// WriteGraph writes g to path, choosing the format from its extension.
func WriteGraph(path string, g *models.WorkflowGraph) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	data, err := EncodeGraph(g, format)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return nil
}
