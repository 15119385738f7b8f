package graph

import "github.com/dukex/flowlint/pkg/models"

type color uint8

const (
	white color = iota // unvisited
	gray               // on the current DFS path
	black              // finished
)

// detectCycles walks the graph depth-first in node order. A back edge to a gray
// node is reported once, at the node whose edge closes the cycle, and that
// node's remaining edges are not explored.
func detectCycles(g *models.WorkflowGraph) []models.ValidationError {
	adjacency := make(map[string][]string, len(g.Nodes))
	for _, edge := range g.Edges {
		adjacency[edge.Source] = append(adjacency[edge.Source], edge.Target)
	}

	colors := make(map[string]color, len(g.Nodes))

	var (
		errs  []models.ValidationError
		visit func(id string)
	)

	visit = func(id string) {
		colors[id] = gray
		defer func() { colors[id] = black }()

		for _, next := range adjacency[id] {
			switch colors[next] {
			case gray:
				errs = append(errs, structural(id, "Circular connection detected"))

				return
			case white:
				visit(next)
			case black:
			}
		}
	}

	for _, node := range g.Nodes {
		if colors[node.ID] == white {
			visit(node.ID)
		}
	}

	return errs
}
