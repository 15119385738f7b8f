package graph

import (
	"fmt"

	"github.com/dukex/flowlint/pkg/models"
)

const defaultInputLimit = 1

// ValidateConnection decides whether an edge from source to target may be
// added to a graph that already holds edges.
func (v *Validator) ValidateConnection(source, target *models.WorkflowNode, edges []*models.Edge) models.ConnectionResult {
	if source == nil || target == nil {
		return rejected("Invalid node types")
	}

	sourceCategory := v.Category(source)
	targetCategory := v.Category(target)

	if sourceCategory == "" || targetCategory == "" {
		return rejected("Invalid node types")
	}

	if sourceCategory == models.CategoryTypeTrigger && targetCategory == models.CategoryTypeTrigger {
		return rejected("Cannot connect trigger to trigger")
	}

	if targetCategory == models.CategoryTypeTrigger {
		return rejected("Cannot connect to trigger node")
	}

	if source.ID == target.ID {
		return rejected("Cannot connect node to itself")
	}

	for _, edge := range edges {
		if edge.Source == source.ID && edge.Target == target.ID {
			return rejected("Connection already exists")
		}
	}

	limit := defaultInputLimit
	if def, ok := v.defs.Lookup(target.Type); ok && def.Inputs > 0 {
		limit = def.Inputs
	}

	if models.CountIncoming(edges, target.ID) >= limit {
		return rejected(inputLimitMessage(targetCategory, limit))
	}

	return models.ConnectionResult{IsValid: true}
}

func inputLimitMessage(category models.CategoryType, limit int) string {
	switch category {
	case models.CategoryTypeAction:
		return fmt.Sprintf("Action nodes can only have %d input connection(s)", limit)
	case models.CategoryTypeLogic:
		return fmt.Sprintf("Logic node can only have %d input connection(s)", limit)
	case models.CategoryTypeData:
		return fmt.Sprintf("Data node can only have %d input connection(s)", limit)
	}

	return fmt.Sprintf("Node can only have %d input connection(s)", limit)
}

func rejected(msg string) models.ConnectionResult {
	return models.ConnectionResult{IsValid: false, Message: msg}
}
