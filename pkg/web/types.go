// Package web provides HTTP request and response types for the validation API.
package web

import (
	"github.com/dukex/flowlint/pkg/migration"
	"github.com/dukex/flowlint/pkg/models"
	"github.com/dukex/flowlint/pkg/services"
)

// ValidateRequest represents the request body for validating a workflow graph.
type ValidateRequest struct {
	Graph          *models.WorkflowGraph `json:"graph"           validate:"required"`
	SkipReferences bool                  `json:"skip_references"`
	Strict         bool                  `json:"strict"`
}

// ConnectionRequest represents the request body for checking a proposed edge.
type ConnectionRequest struct {
	Graph    *models.WorkflowGraph `json:"graph"     validate:"required"`
	SourceID string                `json:"source_id" validate:"required"`
	TargetID string                `json:"target_id" validate:"required"`
}

// FieldValueRequest represents the request body for checking a value against a field.
type FieldValueRequest struct {
	ObjectTypeID string `json:"object_type_id" validate:"required"`
	FieldPath    string `json:"field_path"     validate:"required"`
	Value        any    `json:"value"`
}

// SuggestRequest represents the request body for object type suggestions.
type SuggestRequest struct {
	FieldPath string `json:"field_path" validate:"required"`
}

// SuggestResponse lists the ranked suggestions for a field path.
type SuggestResponse struct {
	FieldPath   string              `json:"field_path"`
	Suggestions []models.Suggestion `json:"suggestions"`
}

// PlanRequest represents the request body for planning a migration.
type PlanRequest struct {
	Graph *models.WorkflowGraph `json:"graph" validate:"required"`
}

// ApplyRequest represents the request body for migrating a graph. With Auto set,
// the planned mapping is used for every path Mapping does not name.
type ApplyRequest struct {
	Graph   *models.WorkflowGraph `json:"graph"   validate:"required"`
	Mapping map[string]string     `json:"mapping" validate:"omitempty,dive,keys,required,endkeys,required"`
	Auto    bool                  `json:"auto"`
}

// ApplyResponse is the migrated graph together with the per-reference outcome.
type ApplyResponse struct {
	migration.Result

	Mapping map[string]string `json:"mapping"`
}

// ErrorResponse represents a standardized API error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func (r ValidateRequest) toService() services.ValidateRequest {
	return services.ValidateRequest{
		Graph:          r.Graph,
		SkipReferences: r.SkipReferences,
		Strict:         r.Strict,
	}
}

func (r ConnectionRequest) toService() services.ConnectionRequest {
	return services.ConnectionRequest{
		Graph:    r.Graph,
		SourceID: r.SourceID,
		TargetID: r.TargetID,
	}
}

func (r FieldValueRequest) toService() services.FieldValueRequest {
	return services.FieldValueRequest{
		ObjectTypeID: r.ObjectTypeID,
		FieldPath:    r.FieldPath,
		Value:        r.Value,
	}
}
