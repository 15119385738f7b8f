package migration

import (
	"fmt"
	"maps"
	"slices"

	"github.com/dukex/flowlint/pkg/models"
)

// Detection is a legacy string reference found in a node's configuration.
// ConfigKey is "mapping.<entry>" for map node entries.
type Detection struct {
	NodeID    string          `json:"node_id"`
	NodeType  models.NodeType `json:"node_type"`
	ConfigKey string          `json:"config_key"`
	Value     string          `json:"value"`
}

// Result is the outcome of migrating a whole graph.
type Result struct {
	Graph   *models.WorkflowGraph    `json:"graph"`
	Results []models.MigrationResult `json:"results"`
	Errors  []string                 `json:"errors"`
}

// DetectFieldReferences lists the legacy string references the bulk migration
// would visit, in node order.
func DetectFieldReferences(g *models.WorkflowGraph) []Detection {
	detections := make([]Detection, 0)

	if g == nil {
		return detections
	}

	for _, node := range g.Nodes {
		for _, ref := range legacyReferences(node) {
			detections = append(detections, Detection{
				NodeID:    node.ID,
				NodeType:  node.Type,
				ConfigKey: ref.configKey(),
				Value:     ref.value,
			})
		}
	}

	return detections
}

// BulkMigrateWorkflow rewrites every legacy reference whose path has an entry
// in mapping. Unmapped paths are left untouched and reported. The input graph
// is not modified: migrated nodes are copies with a fresh config map.
func BulkMigrateWorkflow(g *models.WorkflowGraph, mapping map[string]string) Result {
	result := Result{
		Results: make([]models.MigrationResult, 0),
		Errors:  make([]string, 0),
	}

	if g == nil {
		return result
	}

	out := *g
	out.Nodes = make([]*models.WorkflowNode, 0, len(g.Nodes))
	out.Edges = slices.Clone(g.Edges)

	for _, node := range g.Nodes {
		refs := legacyReferences(node)
		if len(refs) == 0 {
			out.Nodes = append(out.Nodes, node)

			continue
		}

		config := maps.Clone(node.Config)
		changed := false

		for _, ref := range refs {
			objectTypeID, ok := mapping[ref.value]
			if !ok || objectTypeID == "" {
				result.Results = append(result.Results, models.MigrationResult{
					NodeID:    node.ID,
					ConfigKey: ref.configKey(),
					FieldPath: ref.value,
					OldValue:  ref.value,
					Errors:    []string{"No object type mapping found for field: " + ref.value},
				})
				result.Errors = append(result.Errors,
					fmt.Sprintf("Node %s: No object type mapping for field %q", node.ID, ref.value))

				continue
			}

			migrated := MigrateFieldReference(ref.value, objectTypeID)
			ref.assign(config, migrated)
			changed = true

			result.Results = append(result.Results, models.MigrationResult{
				Migrated:  true,
				NodeID:    node.ID,
				ConfigKey: ref.configKey(),
				FieldPath: ref.value,
				OldValue:  ref.value,
				NewValue:  &migrated,
				Errors:    []string{},
			})
		}

		if !changed {
			out.Nodes = append(out.Nodes, node)

			continue
		}

		copied := *node
		copied.Config = config
		out.Nodes = append(out.Nodes, &copied)
	}

	result.Graph = &out

	return result
}

// legacyReference locates one string value in a node's configuration.
type legacyReference struct {
	key   string
	entry string // mapping entry name; empty for top-level keys
	value string
}

func (r legacyReference) configKey() string {
	if r.entry == "" {
		return r.key
	}

	return r.key + "." + r.entry
}

// assign writes ref into config. Mapping entries are written to a copy of the
// mapping so the source node's map is never touched.
func (r legacyReference) assign(config map[string]any, ref models.FieldReference) {
	if r.entry == "" {
		config[r.key] = ref

		return
	}

	mapping := copyMapping(config[r.key])
	mapping[r.entry] = ref
	config[r.key] = mapping
}

func copyMapping(value any) map[string]any {
	out := make(map[string]any)

	switch m := value.(type) {
	case map[string]any:
		maps.Copy(out, m)
	case map[string]string:
		for k, v := range m {
			out[k] = v
		}
	}

	return out
}

func legacyReferences(node *models.WorkflowNode) []legacyReference {
	var refs []legacyReference

	add := func(key string) {
		value, ok := node.ConfigValue(key)
		if !ok {
			return
		}

		if s, isString := value.(string); isString && s != "" {
			refs = append(refs, legacyReference{key: key, value: s})
		}
	}

	switch node.Type {
	case models.NodeTypeCondition, models.NodeTypeFilter:
		add("field")
	case models.NodeTypeTransform:
		add("sourceField")
		add("targetField")
	case models.NodeTypeMap:
		value, _ := node.ConfigValue("mapping")

		entries := copyMapping(value)
		for _, entry := range slices.Sorted(maps.Keys(entries)) {
			if s, ok := entries[entry].(string); ok && s != "" {
				refs = append(refs, legacyReference{key: "mapping", entry: entry, value: s})
			}
		}
	}

	return refs
}
