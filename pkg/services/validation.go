package services

import (
	"context"
	"fmt"

	"github.com/dukex/flowlint/pkg/graph"
	"github.com/dukex/flowlint/pkg/models"
	"github.com/dukex/flowlint/pkg/otelhelper"
	"github.com/dukex/flowlint/pkg/refcheck"
	"github.com/dukex/flowlint/pkg/schema"
	"go.opentelemetry.io/otel/attribute"
)

// ValidateRequest asks for a full validation of a workflow graph.
type ValidateRequest struct {
	Graph *models.WorkflowGraph `json:"graph" validate:"required"`
	// SkipReferences limits validation to the graph structure.
	SkipReferences bool `json:"skip_references"`
	// Strict rejects legacy references for this request only.
	Strict bool `json:"strict"`
}

// ConnectionRequest asks whether an edge may be added between two nodes of a graph.
type ConnectionRequest struct {
	Graph    *models.WorkflowGraph `json:"graph"     validate:"required"`
	SourceID string                `json:"source_id" validate:"required"`
	TargetID string                `json:"target_id" validate:"required"`
}

// FieldValueRequest asks whether value is acceptable for a schema field.
type FieldValueRequest struct {
	ObjectTypeID string `json:"object_type_id" validate:"required"`
	FieldPath    string `json:"field_path"     validate:"required"`
	Value        any    `json:"value"`
}

// Validation runs structural and field-reference validation.
type Validation struct {
	base

	validator *graph.Validator
	registry  *schema.Registry
}

// NewValidation creates a validation service. reg may be nil or empty, in
// which case field references are not checked. A nil validator uses the
// built-in node definitions.
func NewValidation(validator *graph.Validator, reg *schema.Registry, opts ...Option) *Validation {
	if validator == nil {
		validator = graph.NewValidator(nil)
	}

	return &Validation{
		base:      newBase("validation", opts),
		validator: validator,
		registry:  reg,
	}
}

// Validate checks the graph structure and, unless skipped, its field references.
func (v *Validation) Validate(ctx context.Context, req ValidateRequest) (models.ValidationResult, error) {
	ctx, span := otelhelper.StartSpan(ctx, v.tracer, "validation.validate")
	defer span.End()

	if req.Graph == nil {
		err := NewValidationError("validate", "graph_required", "", ErrGraphRequired)
		otelhelper.SetError(span, err)

		return models.ValidationResult{}, err
	}

	span.SetAttributes(
		attribute.String(otelhelper.WorkflowIDKey, req.Graph.ID),
		attribute.Int(otelhelper.NodeCountKey, len(req.Graph.Nodes)),
		attribute.Int(otelhelper.EdgeCountKey, len(req.Graph.Edges)),
	)

	var result models.ValidationResult

	if req.SkipReferences || v.registry.Len() == 0 {
		result = v.validator.ValidateStructure(req.Graph)
	} else {
		opts := refcheck.DefaultOptions(v.registry)
		opts.AllowOldFormat = !(v.strict || req.Strict)

		result = refcheck.ValidateWorkflow(v.validator, req.Graph, opts)
	}

	warnings := len(result.Warnings())
	otelhelper.SetResult(span, result.IsValid, len(result.Errors)-warnings, warnings)

	v.logger.DebugContext(ctx, "workflow validated",
		"workflow_id", req.Graph.ID,
		"valid", result.IsValid,
		"findings", len(result.Errors),
		"warnings", warnings,
	)

	return result, nil
}

// CheckConnection validates a proposed edge between two nodes of req.Graph.
func (v *Validation) CheckConnection(ctx context.Context, req ConnectionRequest) (models.ConnectionResult, error) {
	_, span := otelhelper.StartSpan(ctx, v.tracer, "validation.check_connection",
		attribute.String(otelhelper.NodeIDKey, req.TargetID),
	)
	defer span.End()

	if req.Graph == nil {
		err := NewValidationError("check_connection", "graph_required", "", ErrGraphRequired)
		otelhelper.SetError(span, err)

		return models.ConnectionResult{}, err
	}

	source := req.Graph.NodeByID(req.SourceID)
	if source == nil {
		err := NewNotFoundError("check_connection", fmt.Sprintf("source node %q not found", req.SourceID), ErrNodeNotFound)
		otelhelper.SetError(span, err)

		return models.ConnectionResult{}, err
	}

	target := req.Graph.NodeByID(req.TargetID)
	if target == nil {
		err := NewNotFoundError("check_connection", fmt.Sprintf("target node %q not found", req.TargetID), ErrNodeNotFound)
		otelhelper.SetError(span, err)

		return models.ConnectionResult{}, err
	}

	return v.validator.ValidateConnection(source, target, req.Graph.Edges), nil
}

// ValidateFieldValue checks value against the field at req.FieldPath.
func (v *Validation) ValidateFieldValue(ctx context.Context, req FieldValueRequest) (models.ValueResult, error) {
	_, span := otelhelper.StartSpan(ctx, v.tracer, "validation.field_value",
		attribute.String(otelhelper.ObjectTypeIDKey, req.ObjectTypeID),
		attribute.String(otelhelper.FieldPathKey, req.FieldPath),
	)
	defer span.End()

	if req.FieldPath == "" {
		err := NewValidationError("field_value", "field_path_required", "", ErrFieldPathRequired)
		otelhelper.SetError(span, err)

		return models.ValueResult{}, err
	}

	objectType, ok := v.registry.Get(req.ObjectTypeID)
	if !ok {
		err := NewNotFoundError("field_value", fmt.Sprintf("object type %q not found", req.ObjectTypeID), ErrObjectTypeNotFound)
		otelhelper.SetError(span, err)

		return models.ValueResult{}, err
	}

	field := schema.ResolveField(objectType.Fields, req.FieldPath, v.registry)
	if field == nil {
		err := NewNotFoundError("field_value",
			fmt.Sprintf("field %q not found in object type %q", req.FieldPath, req.ObjectTypeID), ErrFieldNotFound)
		otelhelper.SetError(span, err)

		return models.ValueResult{}, err
	}

	return schema.ValidateFieldValue(req.Value, *field), nil
}
