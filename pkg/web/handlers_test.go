package web_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dukex/flowlint/pkg/graph"
	"github.com/dukex/flowlint/pkg/log"
	"github.com/dukex/flowlint/pkg/models"
	"github.com/dukex/flowlint/pkg/schema"
	"github.com/dukex/flowlint/pkg/services"
	"github.com/dukex/flowlint/pkg/web"
	"github.com/gofiber/fiber/v3"
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
				{Name: "age", Type: models.FieldTypeNumber},
			},
		},
	)
}

func setupTestApp(t *testing.T) *fiber.App {
	t.Helper()

	reg := testRegistry()
	logger := log.NewNop()

	handlers := web.NewAPIHandlers(
		services.NewValidation(graph.NewValidator(nil), reg, services.WithLogger(logger)),
		services.NewMigration(reg, services.WithLogger(logger)),
		models.NewValidator(),
		reg,
	)

	return web.NewApp(handlers, logger)
}

func testGraph() map[string]any {
	return map[string]any{
		"id": "wf-1",
		"nodes": []map[string]any{
			{"id": "t", "type": "api-trigger", "label": "Hook", "config": map[string]any{"path": "/in"}},
			{"id": "c", "type": "condition", "label": "Adult?", "config": map[string]any{"field": "customer.age", "operator": "gte"}},
			{"id": "e", "type": "send-email", "label": "Mail", "config": map[string]any{"recipients": "ops@example.com"}},
		},
		"edges": []map[string]any{
			{"id": "e1", "source": "t", "target": "c"},
			{"id": "e2", "source": "c", "target": "e"},
		},
	}
}

func doRequest(t *testing.T, app *fiber.App, method, path string, body any) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader

	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		payload, err := json.Marshal(b)
		require.NoError(t, err)

		reader = bytes.NewBuffer(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)

	defer func() {
		err := resp.Body.Close()
		if err != nil {
			t.Logf("Failed to close response body: %v", err)
		}
	}()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp, data
}

func TestAPIHandlers_Validate(t *testing.T) {
	t.Parallel()

	app := setupTestApp(t)

	t.Run("valid graph", func(t *testing.T) {
		resp, body := doRequest(t, app, http.MethodPost, "/validate", map[string]any{"graph": testGraph()})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var result models.ValidationResult
		require.NoError(t, json.Unmarshal(body, &result))
		assert.True(t, result.IsValid)
		assert.Empty(t, result.Errors)
		assert.NotEmpty(t, resp.Header.Get(fiber.HeaderXRequestID))
	})

	t.Run("findings are a successful response", func(t *testing.T) {
		g := testGraph()
		g["edges"] = []map[string]any{}

		resp, body := doRequest(t, app, http.MethodPost, "/validate", map[string]any{"graph": g})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var result models.ValidationResult
		require.NoError(t, json.Unmarshal(body, &result))
		assert.False(t, result.IsValid)
		assert.Len(t, result.Errors, 2)
	})

	t.Run("missing graph", func(t *testing.T) {
		resp, _ := doRequest(t, app, http.MethodPost, "/validate", map[string]any{})

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("malformed json", func(t *testing.T) {
		resp, body := doRequest(t, app, http.MethodPost, "/validate", `{"graph":`)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Contains(t, string(body), "invalid JSON format")
	})
}

func TestAPIHandlers_ValidateConnection(t *testing.T) {
	t.Parallel()

	app := setupTestApp(t)

	tests := []struct {
		name           string
		source         string
		target         string
		expectedStatus int
		expectedValid  bool
		expectedBody   string
	}{
		{"duplicate edge", "t", "c", http.StatusOK, false, "Connection already exists"},
		{"into trigger", "e", "t", http.StatusOK, false, "Cannot connect to trigger node"},
		{"second input for action", "t", "e", http.StatusOK, false, "Action nodes can only have 1 input connection(s)"},
		{"unknown node", "t", "zzz", http.StatusNotFound, false, "node_not_found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := doRequest(t, app, http.MethodPost, "/connections/validate", map[string]any{
				"graph":     testGraph(),
				"source_id": tt.source,
				"target_id": tt.target,
			})

			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
			assert.Contains(t, string(body), tt.expectedBody)

			if tt.expectedStatus == http.StatusOK {
				var result models.ConnectionResult
				require.NoError(t, json.Unmarshal(body, &result))
				assert.Equal(t, tt.expectedValid, result.IsValid)
			}
		})
	}
}

func TestAPIHandlers_ValidateFieldValue(t *testing.T) {
	t.Parallel()

	app := setupTestApp(t)

	resp, body := doRequest(t, app, http.MethodPost, "/field-values/validate", map[string]any{
		"object_type_id": "customer",
		"field_path":     "email",
		"value":          "not-an-email",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result models.ValueResult
	require.NoError(t, json.Unmarshal(body, &result))
	assert.False(t, result.Valid)
	assert.NotEmpty(t, result.Error)

	resp, body = doRequest(t, app, http.MethodPost, "/field-values/validate", map[string]any{
		"object_type_id": "invoice",
		"field_path":     "email",
		"value":          "a@b.co",
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, string(body), "object_type_not_found")

	resp, _ = doRequest(t, app, http.MethodPost, "/field-values/validate", map[string]any{"object_type_id": "customer"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAPIHandlers_Migrations(t *testing.T) {
	t.Parallel()

	app := setupTestApp(t)

	t.Run("suggest", func(t *testing.T) {
		resp, body := doRequest(t, app, http.MethodPost, "/migrations/suggest", map[string]any{"field_path": "customer.email"})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var result web.SuggestResponse
		require.NoError(t, json.Unmarshal(body, &result))
		require.Len(t, result.Suggestions, 1)
		assert.Equal(t, "customer", result.Suggestions[0].SuggestedObjectTypeID)
		assert.Equal(t, 100, result.Suggestions[0].Confidence)
	})

	t.Run("plan", func(t *testing.T) {
		resp, body := doRequest(t, app, http.MethodPost, "/migrations/plan", map[string]any{"graph": testGraph()})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var plan services.Plan
		require.NoError(t, json.Unmarshal(body, &plan))
		assert.Equal(t, map[string]string{"customer.age": "customer"}, plan.Mapping)
	})

	t.Run("apply with auto mapping", func(t *testing.T) {
		resp, body := doRequest(t, app, http.MethodPost, "/migrations/apply", map[string]any{"graph": testGraph(), "auto": true})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var result struct {
			Graph   models.WorkflowGraph     `json:"graph"`
			Results []models.MigrationResult `json:"results"`
			Errors  []string                 `json:"errors"`
			Mapping map[string]string        `json:"mapping"`
		}
		require.NoError(t, json.Unmarshal(body, &result))

		assert.Empty(t, result.Errors)
		require.Len(t, result.Results, 1)
		assert.True(t, result.Results[0].Migrated)
		assert.Equal(t, map[string]any{"objectTypeId": "customer", "fieldPath": "age"}, result.Graph.Nodes[1].Config["field"])
	})

	t.Run("apply without mapping reports failures", func(t *testing.T) {
		resp, body := doRequest(t, app, http.MethodPost, "/migrations/apply", map[string]any{"graph": testGraph()})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, string(body), `No object type mapping for field \"customer.age\"`)
	})

	t.Run("suggest requires a path", func(t *testing.T) {
		resp, _ := doRequest(t, app, http.MethodPost, "/migrations/suggest", map[string]any{})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestAPI_Health(t *testing.T) {
	t.Parallel()

	app := setupTestApp(t)

	resp, body := doRequest(t, app, http.MethodGet, "/livez", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "OK", string(body))

	resp, body = doRequest(t, app, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"object_types":1`)

	resp, _ = doRequest(t, app, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequestID_ReusesHeader(t *testing.T) {
	t.Parallel()

	app := setupTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/livez", nil)
	req.Header.Set(fiber.HeaderXRequestID, "req-42")

	resp, err := app.Test(req)
	require.NoError(t, err)

	defer func() {
		err := resp.Body.Close()
		if err != nil {
			t.Logf("Failed to close response body: %v", err)
		}
	}()

	assert.Equal(t, "req-42", resp.Header.Get(fiber.HeaderXRequestID))
}
