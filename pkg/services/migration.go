package services

import (
	"context"

	"github.com/dukex/flowlint/pkg/migration"
	"github.com/dukex/flowlint/pkg/models"
	"github.com/dukex/flowlint/pkg/otelhelper"
	"github.com/dukex/flowlint/pkg/schema"
	"go.opentelemetry.io/otel/attribute"
)

// DefaultMinConfidence is the lowest suggestion score a plan adopts on its own.
// It requires the path's first segment to name the object type.
const DefaultMinConfidence = 50

// Plan proposes an object type for every legacy path found in a graph.
type Plan struct {
	Detections  []migration.Detection          `json:"detections"`
	Suggestions map[string][]models.Suggestion `json:"suggestions"`
	// Mapping holds the top suggestion per path that reached the minimum confidence.
	Mapping map[string]string `json:"mapping"`
	// Unresolved lists the paths left out of Mapping, in detection order.
	Unresolved []string `json:"unresolved"`
}

// Migration suggests and applies legacy field-reference migrations.
type Migration struct {
	base

	registry *schema.Registry
}

// NewMigration creates a migration service over reg.
func NewMigration(reg *schema.Registry, opts ...Option) *Migration {
	return &Migration{
		base:     newBase("migration", opts),
		registry: reg,
	}
}

// Suggest ranks the registered object types as owners of fieldPath.
func (m *Migration) Suggest(ctx context.Context, fieldPath string) ([]models.Suggestion, error) {
	_, span := otelhelper.StartSpan(ctx, m.tracer, "migration.suggest",
		attribute.String(otelhelper.FieldPathKey, fieldPath),
	)
	defer span.End()

	if fieldPath == "" {
		err := NewValidationError("suggest", "field_path_required", "", ErrFieldPathRequired)
		otelhelper.SetError(span, err)

		return nil, err
	}

	return migration.SuggestObjectTypes(fieldPath, m.registry), nil
}

// Plan detects the legacy references of g and picks an object type for each
// distinct path whose best suggestion is confident enough.
func (m *Migration) Plan(ctx context.Context, g *models.WorkflowGraph) (*Plan, error) {
	ctx, span := otelhelper.StartSpan(ctx, m.tracer, "migration.plan")
	defer span.End()

	if g == nil {
		err := NewValidationError("plan", "graph_required", "", ErrGraphRequired)
		otelhelper.SetError(span, err)

		return nil, err
	}

	if m.registry.Len() == 0 {
		err := NewValidationError("plan", "registry_required", "", ErrRegistryRequired)
		otelhelper.SetError(span, err)

		return nil, err
	}

	plan := &Plan{
		Detections:  migration.DetectFieldReferences(g),
		Suggestions: make(map[string][]models.Suggestion),
		Mapping:     make(map[string]string),
		Unresolved:  make([]string, 0),
	}

	for _, detection := range plan.Detections {
		if _, seen := plan.Suggestions[detection.Value]; seen {
			continue
		}

		suggestions := migration.SuggestObjectTypes(detection.Value, m.registry)
		plan.Suggestions[detection.Value] = suggestions

		if len(suggestions) > 0 && suggestions[0].Confidence >= m.minConfidence {
			plan.Mapping[detection.Value] = suggestions[0].SuggestedObjectTypeID
		} else {
			plan.Unresolved = append(plan.Unresolved, detection.Value)
		}
	}

	span.SetAttributes(attribute.String(otelhelper.WorkflowIDKey, g.ID))

	m.logger.DebugContext(ctx, "migration planned",
		"workflow_id", g.ID,
		"detections", len(plan.Detections),
		"mapped", len(plan.Mapping),
		"unresolved", len(plan.Unresolved),
	)

	return plan, nil
}

// Apply migrates g with mapping. The returned graph is new; g is not modified.
func (m *Migration) Apply(ctx context.Context, g *models.WorkflowGraph, mapping map[string]string) (migration.Result, error) {
	ctx, span := otelhelper.StartSpan(ctx, m.tracer, "migration.apply")
	defer span.End()

	if g == nil {
		err := NewValidationError("apply", "graph_required", "", ErrGraphRequired)
		otelhelper.SetError(span, err)

		return migration.Result{}, err
	}

	result := migration.BulkMigrateWorkflow(g, mapping)

	span.SetAttributes(
		attribute.String(otelhelper.WorkflowIDKey, g.ID),
		attribute.Int(otelhelper.ErrorCountKey, len(result.Errors)),
	)

	m.logger.InfoContext(ctx, "workflow migrated",
		"workflow_id", g.ID,
		"references", len(result.Results),
		"errors", len(result.Errors),
	)

	return result, nil
}
