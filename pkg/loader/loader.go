// Package loader reads workflow graphs and object-type registries from JSON or
// YAML documents. Documents are checked against an embedded JSON Schema before
// they are decoded, and the decoded models are validated again.
package loader

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dukex/flowlint/pkg/models"
	"github.com/dukex/flowlint/pkg/schema"
	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

// Format is a document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

//go:embed schemas/*.json
var schemaFS embed.FS

var (
	graphSchema    = mustSchema("schemas/graph.schema.json")
	registrySchema = mustSchema("schemas/registry.schema.json")
)

func mustSchema(name string) *gojsonschema.Schema {
	raw, err := schemaFS.ReadFile(name)
	if err != nil {
		panic(err)
	}

	s, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		panic(fmt.Sprintf("loader: compile %s: %v", name, err))
	}

	return s
}

// registryDocument is the top-level shape of a registry document.
type registryDocument struct {
	ObjectTypes []*models.ObjectTypeSchema `json:"objectTypes"`
}

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, path)
}

// LoadGraph reads a workflow graph from path.
func LoadGraph(path string) (*models.WorkflowGraph, error) {
	data, format, err := read(path)
	if err != nil {
		return nil, err
	}

	return ParseGraph(data, format)
}

// LoadRegistry reads an object-type registry from path.
func LoadRegistry(path string) (*schema.Registry, error) {
	data, format, err := read(path)
	if err != nil {
		return nil, err
	}

	return ParseRegistry(data, format)
}

// ParseGraph decodes and validates a workflow graph document.
func ParseGraph(data []byte, format Format) (*models.WorkflowGraph, error) {
	doc, err := decode(data, format)
	if err != nil {
		return nil, err
	}

	if err := check(graphSchema, "graph", doc); err != nil {
		return nil, err
	}

	var g models.WorkflowGraph
	if err := toModel(doc, &g); err != nil {
		return nil, fmt.Errorf("failed to decode graph: %w", err)
	}

	if err := models.NewValidator().Struct(&g); err != nil {
		return nil, structError("graph", err)
	}

	return &g, nil
}

// ParseRegistry decodes a registry document and checks the schema definitions
// it holds.
func ParseRegistry(data []byte, format Format) (*schema.Registry, error) {
	doc, err := decode(data, format)
	if err != nil {
		return nil, err
	}

	if err := check(registrySchema, "registry", doc); err != nil {
		return nil, err
	}

	var rd registryDocument
	if err := toModel(doc, &rd); err != nil {
		return nil, fmt.Errorf("failed to decode registry: %w", err)
	}

	reg := schema.NewRegistry(rd.ObjectTypes...)

	if err := schema.ValidateDefinitions(reg); err != nil {
		return nil, fmt.Errorf("failed to load registry: %w", err)
	}

	return reg, nil
}

func read(path string) ([]byte, Format, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, "", err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read %s: %w", path, err)
	}

	return data, format, nil
}

func decode(data []byte, format Format) (map[string]any, error) {
	var doc map[string]any

	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	if doc == nil {
		return nil, &DocumentError{Kind: "empty", Problems: []string{"document has no content"}}
	}

	return doc, nil
}

func check(s *gojsonschema.Schema, kind string, doc map[string]any) error {
	result, err := s.Validate(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return fmt.Errorf("failed to check %s document: %w", kind, err)
	}

	if result.Valid() {
		return nil
	}

	problems := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		problems = append(problems, desc.String())
	}

	return &DocumentError{Kind: kind, Problems: problems}
}

// toModel decodes a generic document into out using the models' json tags.
func toModel(doc map[string]any, out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "json",
		Result:  out,
	})
	if err != nil {
		return err
	}

	return decoder.Decode(doc)
}

func structError(kind string, err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("failed to validate %s: %w", kind, err)
	}

	problems := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		problems = append(problems, fmt.Sprintf("%s failed on %q", fe.Namespace(), fe.Tag()))
	}

	return &DocumentError{Kind: kind, Problems: problems}
}
