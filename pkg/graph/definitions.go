package graph

import "github.com/dukex/flowlint/pkg/models"

// Definition describes a node type as published by the node-type registry.
// RequiredMessage, when set, replaces the generated "<Label> must have <keys>"
// text reported for missing RequiredConfig keys.
type Definition struct {
	Type            models.NodeType     `json:"type"                       validate:"required"`
	Category        models.CategoryType `json:"category"                   validate:"required,oneof=trigger action logic data"`
	Label           string              `json:"label"`
	Inputs          int                 `json:"inputs"                     validate:"min=0"`
	Outputs         int                 `json:"outputs"                    validate:"min=0"`
	RequiredConfig  []string            `json:"required_config,omitempty"  validate:"dive,required"`
	RequiredMessage string              `json:"required_message,omitempty"`
}

// Definitions is the read-only node-type registry consulted by the validator.
// Unknown types are treated permissively: no category, no required config.
type Definitions interface {
	Lookup(nodeType models.NodeType) (Definition, bool)
}

// DefinitionTable is a static Definitions keyed by node type.
type DefinitionTable map[models.NodeType]Definition

// Lookup implements Definitions.
func (t DefinitionTable) Lookup(nodeType models.NodeType) (Definition, bool) {
	def, ok := t[nodeType]

	return def, ok
}

// With returns a copy of the table with defs added or replaced.
func (t DefinitionTable) With(defs ...Definition) DefinitionTable {
	out := make(DefinitionTable, len(t)+len(defs))

	for k, v := range t {
		out[k] = v
	}

	for _, def := range defs {
		out[def.Type] = def
	}

	return out
}

// DefaultDefinitions returns the built-in node types of the workflow builder.
func DefaultDefinitions() DefinitionTable {
	return DefinitionTable{}.With(
		// Triggers are graph sources.
		Definition{Type: models.NodeTypeAPITrigger, Category: models.CategoryTypeTrigger, Label: "API Trigger", Outputs: 1},
		Definition{Type: models.NodeTypeScheduleTrigger, Category: models.CategoryTypeTrigger, Label: "Schedule Trigger", Outputs: 1},
		Definition{Type: models.NodeTypeFileTrigger, Category: models.CategoryTypeTrigger, Label: "File Trigger", Outputs: 1},
		Definition{Type: models.NodeTypeEventTrigger, Category: models.CategoryTypeTrigger, Label: "Event Trigger", Outputs: 1},

		// Actions are validated against their registry template.
		Definition{Type: models.NodeTypeSendEmail, Category: models.CategoryTypeAction, Label: "Send Email", Inputs: 1, Outputs: 1, RequiredConfig: []string{"recipients"}},
		Definition{Type: models.NodeTypeSendSMS, Category: models.CategoryTypeAction, Label: "Send SMS", Inputs: 1, Outputs: 1, RequiredConfig: []string{"recipients"}},
		Definition{Type: models.NodeTypeSendPush, Category: models.CategoryTypeAction, Label: "Send Push", Inputs: 1, Outputs: 1, RequiredConfig: []string{"recipients"}},
		Definition{Type: models.NodeTypeSendInApp, Category: models.CategoryTypeAction, Label: "Send In-App", Inputs: 1, Outputs: 1, RequiredConfig: []string{"recipients"}},
		Definition{Type: models.NodeTypeSendSlack, Category: models.CategoryTypeAction, Label: "Slack message", Inputs: 1, Outputs: 1, RequiredConfig: []string{"channel", "message"}, RequiredMessage: "Slack message must have channel and message"},
		Definition{Type: models.NodeTypeSendDiscord, Category: models.CategoryTypeAction, Label: "Discord message", Inputs: 1, Outputs: 1, RequiredConfig: []string{"channelId", "content"}, RequiredMessage: "Discord message must have channel ID and content"},
		Definition{Type: models.NodeTypeSendTeams, Category: models.CategoryTypeAction, Label: "Teams message", Inputs: 1, Outputs: 1, RequiredConfig: []string{"title", "text"}, RequiredMessage: "Teams message must have title and text"},
		Definition{Type: models.NodeTypeSendWebhook, Category: models.CategoryTypeAction, Label: "Webhook", Inputs: 1, Outputs: 1, RequiredConfig: []string{"url"}, RequiredMessage: "Webhook must have a URL"},

		Definition{Type: models.NodeTypeABTest, Category: models.CategoryTypeLogic, Label: "A/B Test", Inputs: 1, Outputs: 2},
		Definition{Type: models.NodeTypeCondition, Category: models.CategoryTypeLogic, Label: "Condition", Inputs: 1, Outputs: 2},
		Definition{Type: models.NodeTypeSwitch, Category: models.CategoryTypeLogic, Label: "Switch", Inputs: 1, Outputs: 3},
		Definition{Type: models.NodeTypeLoop, Category: models.CategoryTypeLogic, Label: "Loop", Inputs: 1, Outputs: 1},
		Definition{Type: models.NodeTypeDelay, Category: models.CategoryTypeLogic, Label: "Delay", Inputs: 1, Outputs: 1},
		Definition{Type: models.NodeTypeMerge, Category: models.CategoryTypeLogic, Label: "Merge", Inputs: 2, Outputs: 1},
		Definition{Type: models.NodeTypeWaitEvents, Category: models.CategoryTypeLogic, Label: "Wait for Events", Inputs: 1, Outputs: 1},

		Definition{Type: models.NodeTypeMap, Category: models.CategoryTypeData, Label: "Map", Inputs: 1, Outputs: 1},
		Definition{Type: models.NodeTypeFilter, Category: models.CategoryTypeData, Label: "Filter", Inputs: 1, Outputs: 1},
		Definition{Type: models.NodeTypeTransform, Category: models.CategoryTypeData, Label: "Transform", Inputs: 1, Outputs: 1},
		Definition{Type: models.NodeTypeReadFile, Category: models.CategoryTypeData, Label: "Read File", Inputs: 1, Outputs: 1},
	)
}
