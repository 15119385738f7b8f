// Package graph checks the shape of a workflow graph: trigger cardinality,
// connectivity, cycles, per-node configuration and proposed connections.
package graph

import (
	"fmt"

	"github.com/dukex/flowlint/pkg/models"
)

// Validator checks workflow graphs against a node-type registry.
type Validator struct {
	defs Definitions
}

// NewValidator creates a validator backed by defs. A nil defs uses
// DefaultDefinitions.
func NewValidator(defs Definitions) *Validator {
	if defs == nil {
		defs = DefaultDefinitions()
	}

	return &Validator{defs: defs}
}

// Category returns the node's category, falling back to its type definition.
// It is empty for unknown types without an explicit category.
func (v *Validator) Category(node *models.WorkflowNode) models.CategoryType {
	if node.Category != "" {
		return node.Category
	}

	if def, ok := v.defs.Lookup(node.Type); ok {
		return def.Category
	}

	return ""
}

// ValidateStructure runs the trigger, connectivity, cycle and configuration
// rules over g.
func (v *Validator) ValidateStructure(g *models.WorkflowGraph) models.ValidationResult {
	if g == nil {
		return models.NewValidationResult([]models.ValidationError{
			structural("", "Workflow must have exactly one trigger node"),
		})
	}

	errs := make([]models.ValidationError, 0)
	errs = append(errs, v.validateTriggers(g)...)
	errs = append(errs, v.validateConnectivity(g)...)
	errs = append(errs, detectCycles(g)...)

	for _, node := range g.Nodes {
		errs = append(errs, v.ValidateNodeConfig(node)...)
	}

	return models.NewValidationResult(errs)
}

func (v *Validator) validateTriggers(g *models.WorkflowGraph) []models.ValidationError {
	triggers := 0

	for _, node := range g.Nodes {
		if v.Category(node) == models.CategoryTypeTrigger {
			triggers++
		}
	}

	switch {
	case triggers == 0:
		return []models.ValidationError{structural("", "Workflow must have exactly one trigger node")}
	case triggers > 1:
		return []models.ValidationError{
			structural("", fmt.Sprintf("Workflow can only have one trigger node, but found %d", triggers)),
		}
	}

	return nil
}

// validateConnectivity skips unknown node types.
func (v *Validator) validateConnectivity(g *models.WorkflowGraph) []models.ValidationError {
	var errs []models.ValidationError

	for _, node := range g.Nodes {
		category := v.Category(node)
		if category == "" || category == models.CategoryTypeTrigger {
			continue
		}

		if g.IncomingEdges(node.ID) == 0 {
			errs = append(errs, structural(node.ID, fmt.Sprintf("Node %q is not connected", node.DisplayName())))
		}
	}

	return errs
}

func structural(nodeID, msg string) models.ValidationError {
	return models.ValidationError{
		NodeID:   nodeID,
		Message:  msg,
		Severity: models.SeverityError,
		Kind:     models.ErrorKindStructural,
	}
}

func configError(nodeID, msg string) models.ValidationError {
	return models.ValidationError{
		NodeID:   nodeID,
		Message:  msg,
		Severity: models.SeverityError,
		Kind:     models.ErrorKindConfig,
	}
}
