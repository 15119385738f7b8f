package graph

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/dukex/flowlint/pkg/models"
	"github.com/robfig/cron/v3"
	"github.com/spf13/cast"
)

const (
	defaultMergeInputs = 2
	maxMergeInputs     = 10
)

// cronParser accepts standard five-field expressions and an optional leading
// seconds field, plus descriptors such as @daily.
var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// ValidateNodeConfig checks the configuration a node needs for its subtype.
// Unknown subtypes are not checked.
func (v *Validator) ValidateNodeConfig(node *models.WorkflowNode) []models.ValidationError {
	if node == nil {
		return nil
	}

	def, known := v.defs.Lookup(node.Type)

	name := def.Label
	if name == "" {
		name = string(node.Type)
	}

	c := &configCheck{node: node}

	if known && strings.TrimSpace(node.Label) == "" {
		c.fail(fmt.Sprintf("Node %q must have a label", name))
	}

	switch node.Type {
	case models.NodeTypeAPITrigger:
		c.require("path", "API Trigger must have a path")
	case models.NodeTypeScheduleTrigger:
		c.cron()
	case models.NodeTypeFileTrigger:
		c.require("acceptedFormats", "File Trigger must have accepted file formats")
	case models.NodeTypeEventTrigger:
		c.requireAll("Event Trigger must have event type and topic/queue name", "eventType", "topic")

	case models.NodeTypeCondition:
		c.requireAll("Condition must have field and operator", "field", "operator")
	case models.NodeTypeSwitch:
		c.require("field", "Switch must have a field to evaluate")
	case models.NodeTypeLoop:
		c.requireAll("Loop must have array field and item variable name", "arrayField", "itemVariable")
	case models.NodeTypeMerge:
		c.mergeInputs()
	case models.NodeTypeDelay:
		c.delay()
	case models.NodeTypeABTest:
		c.require("test_id", "A/B Test must have a test ID")
	case models.NodeTypeWaitEvents:

	case models.NodeTypeTransform:
		c.requireAll("Transform must have source and target fields", "sourceField", "targetField")
	case models.NodeTypeMap:
		c.mapping()
	case models.NodeTypeFilter:
		c.requireAll("Filter must have array field, filter field, and operator", "arrayField", "field", "operator")
	case models.NodeTypeReadFile:
		c.requireAll("Read File must have file format and output field", "fileFormat", "outputField")

	default:
		if known && def.Category == models.CategoryTypeAction && len(def.RequiredConfig) > 0 {
			msg := def.RequiredMessage
			if msg == "" {
				msg = fmt.Sprintf("%s must have %s", name, strings.Join(def.RequiredConfig, " and "))
			}

			c.requireAll(msg, def.RequiredConfig...)
		}
	}

	return c.errs
}

type configCheck struct {
	node *models.WorkflowNode
	errs []models.ValidationError
}

func (c *configCheck) fail(msg string) {
	c.errs = append(c.errs, configError(c.node.ID, msg))
}

func (c *configCheck) present(key string) bool {
	value, ok := c.node.ConfigValue(key)

	return ok && !isBlank(value)
}

func (c *configCheck) require(key, msg string) {
	if !c.present(key) {
		c.fail(msg)
	}
}

func (c *configCheck) requireAll(msg string, keys ...string) {
	for _, key := range keys {
		if !c.present(key) {
			c.fail(msg)

			return
		}
	}
}

func (c *configCheck) cron() {
	if !c.present("cron") {
		c.fail("Schedule Trigger must have a cron expression")

		return
	}

	value, _ := c.node.ConfigValue("cron")

	expr, ok := value.(string)
	if !ok {
		c.fail("Schedule Trigger cron expression must be a string")

		return
	}

	if _, err := cronParser.Parse(expr); err != nil {
		c.fail(fmt.Sprintf("Schedule Trigger has an invalid cron expression: %s", err))
	}
}

// mergeInputs treats a missing or non-numeric count as the default.
func (c *configCheck) mergeInputs() {
	count := float64(defaultMergeInputs)

	if value, ok := c.node.ConfigValue("inputCount"); ok && !isBlank(value) {
		if n, err := cast.ToFloat64E(value); err == nil && n != 0 && !math.IsNaN(n) {
			count = n
		}
	}

	if count < defaultMergeInputs || count > maxMergeInputs {
		c.fail(fmt.Sprintf("Merge must have between %d and %d inputs", defaultMergeInputs, maxMergeInputs))
	}
}

func (c *configCheck) delay() {
	value, ok := c.node.ConfigValue("duration")
	if !ok || isBlank(value) {
		c.fail("Delay must have a valid duration")

		return
	}

	n, err := cast.ToFloat64E(value)
	if err != nil || math.IsNaN(n) || n < 1 {
		c.fail("Delay must have a valid duration")
	}
}

func (c *configCheck) mapping() {
	value, ok := c.node.ConfigValue("mapping")
	if !ok || isBlank(value) {
		c.fail("Map must have field mappings")

		return
	}

	switch m := value.(type) {
	case string:
		if !json.Valid([]byte(m)) {
			c.fail("Map mappings must be valid JSON")
		}
	case map[string]any, map[string]string:
	default:
		c.fail("Map mappings must be valid JSON")
	}
}

// isBlank mirrors what an editor form considers unset: nil, empty string,
// false and numeric zero.
func isBlank(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case bool:
		return !v
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		n, err := cast.ToFloat64E(v)

		return err == nil && (n == 0 || math.IsNaN(n))
	}

	return false
}
