// Package models defines the in-memory workflow graph and object-type schema models
// that the validation and migration engines inspect.
package models

// WorkflowGraph is a snapshot of an editor workflow: its node instances and the
// directed edges between them.
type WorkflowGraph struct {
	ID    string          `json:"id,omitempty"`
	Name  string          `json:"name,omitempty"`
	Nodes []*WorkflowNode `json:"nodes" validate:"dive"`
	Edges []*Edge         `json:"edges" validate:"dive"`
}

// NodeByID returns the node with the given id, or nil.
func (g *WorkflowGraph) NodeByID(id string) *WorkflowNode {
	for _, node := range g.Nodes {
		if node.ID == id {
			return node
		}
	}

	return nil
}

// IncomingEdges returns the number of edges targeting nodeID.
func (g *WorkflowGraph) IncomingEdges(nodeID string) int {
	return CountIncoming(g.Edges, nodeID)
}

// CountIncoming counts the edges in edges whose target is nodeID.
func CountIncoming(edges []*Edge, nodeID string) int {
	count := 0

	for _, edge := range edges {
		if edge.Target == nodeID {
			count++
		}
	}

	return count
}
