package loader

import (
	"fmt"

	"github.com/dukex/flowlint/pkg/graph"
	"github.com/dukex/flowlint/pkg/models"
)

// definitionsDocument is the top-level shape of a node-type document.
type definitionsDocument struct {
	NodeTypes []graph.Definition `json:"node_types" validate:"required,dive"`
}

// LoadDefinitions reads node-type definitions from path and layers them over
// the built-in table. Entries for an existing type replace it.
func LoadDefinitions(path string) (graph.DefinitionTable, error) {
	data, format, err := read(path)
	if err != nil {
		return nil, err
	}

	return ParseDefinitions(data, format)
}

// ParseDefinitions decodes a node-type document.
func ParseDefinitions(data []byte, format Format) (graph.DefinitionTable, error) {
	doc, err := decode(data, format)
	if err != nil {
		return nil, err
	}

	var dd definitionsDocument
	if err := toModel(doc, &dd); err != nil {
		return nil, fmt.Errorf("failed to decode node types: %w", err)
	}

	if err := models.NewValidator().Struct(&dd); err != nil {
		return nil, structError("node types", err)
	}

	return graph.DefaultDefinitions().With(dd.NodeTypes...), nil
}
