package refcheck

import (
	"testing"

	"github.com/dukex/flowlint/pkg/graph"
	"github.com/dukex/flowlint/pkg/models"
	"github.com/dukex/flowlint/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRegistry() *schema.Registry {
	return schema.NewRegistry(
		&models.ObjectTypeSchema{
			ID:   "customer",
			Name: "Customer",
			Fields: []models.FieldDefinition{
				{Name: "email", Type: models.FieldTypeEmail},
				{Name: "orders", Type: models.FieldTypeArray, Validation: &models.FieldValidation{ItemObjectTypeID: "order"}},
				{Name: "address", Type: models.FieldTypeObject, Validation: &models.FieldValidation{ObjectTypeID: "address"}},
			},
		},
		&models.ObjectTypeSchema{
			ID:     "address",
			Name:   "Address",
			Fields: []models.FieldDefinition{{Name: "city", Type: models.FieldTypeString}},
		},
		&models.ObjectTypeSchema{
			ID:     "order",
			Name:   "Order",
			Fields: []models.FieldDefinition{{Name: "total", Type: models.FieldTypeNumber}},
		},
	)
}

func condition(field any) *models.WorkflowNode {
	return &models.WorkflowNode{
		ID:     "c1",
		Type:   models.NodeTypeCondition,
		Label:  "Check",
		Config: map[string]any{"field": field, "operator": "equals"},
	}
}

func TestValidateNode(t *testing.T) {
	strict := DefaultOptions(testRegistry())
	strict.AllowOldFormat = false

	testCases := []struct {
		name     string
		node     *models.WorkflowNode
		opts     Options
		expected []string
		severity models.Severity
	}{
		{
			name: "resolved new format",
			node: condition(map[string]any{"objectTypeId": "customer", "fieldPath": "address.city"}),
			opts: DefaultOptions(testRegistry()),
		},
		{
			name: "resolved through array items",
			node: condition(&models.FieldReference{ObjectTypeID: "customer", FieldPath: "orders[0].total"}),
			opts: DefaultOptions(testRegistry()),
		},
		{
			name:     "legacy string is a warning",
			node:     condition("email"),
			opts:     DefaultOptions(testRegistry()),
			expected: []string{"Condition field uses old format. Consider migrating to new format for better validation."},
			severity: models.SeverityWarning,
		},
		{
			name:     "legacy string is an error in strict mode",
			node:     condition("email"),
			opts:     strict,
			expected: []string{"Condition field should use new format with object type"},
			severity: models.SeverityError,
		},
		{
			name:     "dotted legacy string names its object type",
			node:     condition("customer.email"),
			opts:     DefaultOptions(testRegistry()),
		},
		{
			name:     "unknown object type",
			node:     condition("invoice.total"),
			opts:     DefaultOptions(testRegistry()),
			expected: []string{`Condition field: Object type "invoice" not found`},
			severity: models.SeverityError,
		},
		{
			name:     "unknown field path",
			node:     condition(models.FieldReference{ObjectTypeID: "customer", FieldPath: "address.zip"}),
			opts:     DefaultOptions(testRegistry()),
			expected: []string{`Condition field: Field path "address.zip" not found in object type "customer"`},
			severity: models.SeverityError,
		},
		{
			name: "unparseable value is skipped when lenient",
			node: condition(42),
			opts: DefaultOptions(testRegistry()),
		},
		{
			name:     "unparseable value in strict mode",
			node:     condition(42),
			opts:     strict,
			expected: []string{"Condition field has invalid format"},
			severity: models.SeverityError,
		},
		{
			name: "empty registry is a no-op",
			node: condition("invoice.total"),
			opts: DefaultOptions(schema.NewRegistry()),
		},
		{
			name: "nil registry is a no-op",
			node: condition("invoice.total"),
			opts: Options{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			errs := ValidateNode(tc.node, tc.opts)

			if tc.expected == nil {
				assert.Empty(t, errs)

				return
			}

			require.Len(t, errs, len(tc.expected))

			for i, e := range errs {
				assert.Equal(t, tc.expected[i], e.Message)
				assert.Equal(t, tc.severity, e.Severity)
				assert.Equal(t, "c1", e.NodeID)
			}
		})
	}
}

func TestValidateNode_ExpectedArrayType(t *testing.T) {
	reg := testRegistry()

	loop := &models.WorkflowNode{
		ID:     "l1",
		Type:   models.NodeTypeLoop,
		Label:  "Each",
		Config: map[string]any{"arrayField": "customer.email", "itemVariable": "x"},
	}

	errs := ValidateNode(loop, DefaultOptions(reg))
	require.Len(t, errs, 1)
	assert.Equal(t, `Loop array field: Field "email" has type "email", expected "array"`, errs[0].Message)

	loop.Config["arrayField"] = "customer.orders"
	assert.Empty(t, ValidateNode(loop, DefaultOptions(reg)))

	noTypes := DefaultOptions(reg)
	noTypes.ValidateTypes = false
	loop.Config["arrayField"] = "customer.email"
	assert.Empty(t, ValidateNode(loop, noTypes))
}

func TestValidateNode_SubtypeExtraction(t *testing.T) {
	reg := testRegistry()

	testCases := []struct {
		name     string
		node     *models.WorkflowNode
		expected []string
	}{
		{
			name: "transform checks both fields",
			node: &models.WorkflowNode{ID: "n", Type: models.NodeTypeTransform, Config: map[string]any{
				"sourceField": "nope.a",
				"targetField": "customer.missing",
			}},
			expected: []string{
				`Transform source field: Object type "nope" not found`,
				`Transform target field: Field path "missing" not found in object type "customer"`,
			},
		},
		{
			name: "map entries in key order",
			node: &models.WorkflowNode{ID: "n", Type: models.NodeTypeMap, Config: map[string]any{
				"mapping": map[string]any{"b": "nope.x", "a": "nada.y", "c": 7},
			}},
			expected: []string{
				`Map field "a": Object type "nada" not found`,
				`Map field "b": Object type "nope" not found`,
			},
		},
		{
			name: "map given as json",
			node: &models.WorkflowNode{ID: "n", Type: models.NodeTypeMap, Config: map[string]any{
				"mapping": `{"out":"nope.x"}`,
			}},
			expected: []string{`Map field "out": Object type "nope" not found`},
		},
		{
			name: "filter array field is type checked",
			node: &models.WorkflowNode{ID: "n", Type: models.NodeTypeFilter, Config: map[string]any{
				"field":      "order.total",
				"arrayField": "address.city",
			}},
			expected: []string{`Filter array field: Field "city" has type "string", expected "array"`},
		},
		{
			name: "recipient field is not type checked",
			node: &models.WorkflowNode{ID: "n", Type: models.NodeTypeSendSMS, Config: map[string]any{
				"recipientField": "customer.address",
			}},
		},
		{
			name: "other subtypes carry no references",
			node: &models.WorkflowNode{ID: "n", Type: models.NodeTypeDelay, Config: map[string]any{"field": "nope.x"}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			errs := ValidateNode(tc.node, DefaultOptions(reg))

			got := make([]string, 0, len(errs))
			for _, e := range errs {
				got = append(got, e.Message)
			}

			if tc.expected == nil {
				assert.Empty(t, got)

				return
			}

			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestValidateWorkflow(t *testing.T) {
	reg := testRegistry()

	g := &models.WorkflowGraph{
		Nodes: []*models.WorkflowNode{
			{ID: "t", Type: models.NodeTypeAPITrigger, Label: "Hook", Config: map[string]any{"path": "/in"}},
			condition("total"),
		},
		Edges: []*models.Edge{{ID: "e1", Source: "t", Target: "c1"}},
	}

	result := ValidateWorkflow(graph.NewValidator(nil), g, DefaultOptions(reg))

	assert.True(t, result.IsValid, "legacy warnings do not block validity")
	require.Len(t, result.Warnings(), 1)
	assert.Equal(t, models.ErrorKindLegacyReference, result.Warnings()[0].Kind)

	g.Nodes[1].Config["field"] = "invoice.total"
	result = ValidateWorkflow(graph.NewValidator(nil), g, DefaultOptions(reg))

	assert.False(t, result.IsValid)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, models.ErrorKindFieldReference, result.Errors[0].Kind)
}

func TestValidateWorkflow_MergesStructuralErrors(t *testing.T) {
	g := &models.WorkflowGraph{Nodes: []*models.WorkflowNode{condition("invoice.total")}}

	result := ValidateWorkflow(graph.NewValidator(nil), g, DefaultOptions(testRegistry()))

	assert.False(t, result.IsValid)
	assert.Len(t, result.Errors, 3)
	assert.Equal(t, "Workflow must have exactly one trigger node", result.Errors[0].Message)
	assert.Equal(t, `Condition field: Object type "invoice" not found`, result.Errors[2].Message)
}
