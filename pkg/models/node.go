// Package models defines core node-based workflow models for graph validation
package models

// CategoryType represents the category of node.
type CategoryType string

const (
	CategoryTypeTrigger CategoryType = "trigger" // Graph sources (api, schedule, file, event)
	CategoryTypeAction  CategoryType = "action"  // Delivery nodes (email, sms, slack, etc.)
	CategoryTypeLogic   CategoryType = "logic"   // Flow control (condition, loop, merge, etc.)
	CategoryTypeData    CategoryType = "data"    // Data shaping (map, filter, transform, read-file)
)

// NodeType identifies the concrete behavior of a node within its category.
type NodeType string

// Built-in trigger node types.
const (
	NodeTypeAPITrigger      NodeType = "api-trigger"
	NodeTypeScheduleTrigger NodeType = "schedule-trigger"
	NodeTypeFileTrigger     NodeType = "file-trigger"
	NodeTypeEventTrigger    NodeType = "event-trigger"
)

// Built-in action node types.
const (
	NodeTypeSendEmail   NodeType = "send-email"
	NodeTypeSendSMS     NodeType = "send-sms"
	NodeTypeSendPush    NodeType = "send-push"
	NodeTypeSendInApp   NodeType = "send-in-app"
	NodeTypeSendSlack   NodeType = "send-slack"
	NodeTypeSendDiscord NodeType = "send-discord"
	NodeTypeSendTeams   NodeType = "send-teams"
	NodeTypeSendWebhook NodeType = "send-webhook"
)

// Built-in logic node types.
const (
	NodeTypeCondition  NodeType = "condition"
	NodeTypeSwitch     NodeType = "switch"
	NodeTypeLoop       NodeType = "loop"
	NodeTypeDelay      NodeType = "delay"
	NodeTypeMerge      NodeType = "merge"
	NodeTypeABTest     NodeType = "ab-test"
	NodeTypeWaitEvents NodeType = "wait-events"
)

// Built-in data node types.
const (
	NodeTypeMap       NodeType = "map"
	NodeTypeFilter    NodeType = "filter"
	NodeTypeTransform NodeType = "transform"
	NodeTypeReadFile  NodeType = "read-file"
)

// Edge connects the output of one node to the input of another.
type Edge struct {
	ID           string `json:"id"`
	Source       string `json:"source"                  validate:"required"`
	Target       string `json:"target"                  validate:"required"`
	SourceHandle string `json:"source_handle,omitempty"`
	TargetHandle string `json:"target_handle,omitempty"`
}

// WorkflowNode represents a node instance in a workflow.
type WorkflowNode struct {
	ID        string         `json:"id"                 validate:"required"`
	Type      NodeType       `json:"type"               validate:"required"`
	Category  CategoryType   `json:"category,omitempty" validate:"omitempty,oneof=trigger action logic data"`
	Label     string         `json:"label"`
	Config    map[string]any `json:"config"`
	PositionX int            `json:"position_x"`
	PositionY int            `json:"position_y"`
}

// Helper methods for category checking.
func (n *WorkflowNode) IsTriggerNode() bool {
	return n.Category == CategoryTypeTrigger
}

func (n *WorkflowNode) IsActionNode() bool {
	return n.Category == CategoryTypeAction
}

// DisplayName returns the label when set, otherwise the node id.
func (n *WorkflowNode) DisplayName() string {
	if n.Label != "" {
		return n.Label
	}

	return n.ID
}

// ConfigValue returns the config entry for key and whether it is set.
func (n *WorkflowNode) ConfigValue(key string) (any, bool) {
	if n.Config == nil {
		return nil, false
	}

	value, ok := n.Config[key]

	return value, ok
}
