package topology

import (
	"fmt"

	"github.com/ohowland/esm_core/internal/pkg/component"
)

// Graph is the directed adjacency view of a resolved system: component and
// bus names as nodes, one edge per bus reference. Iteration order follows
// insertion order so identical models render identical graphs.
type Graph struct {
	adjacencyList map[string][]string
	order         []string
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{adjacencyList: make(map[string][]string)}
}

// AddNode enters a node under its name.
func (g *Graph) AddNode(name string) error {
	if _, exists := g.adjacencyList[name]; exists {
		return fmt.Errorf("node %q already exists in graph", name)
	}
	g.adjacencyList[name] = make([]string, 0)
	g.order = append(g.order, name)
	return nil
}

// AddDirectedEdge links two existing nodes.
func (g *Graph) AddDirectedEdge(from, to string) error {
	edges, exists := g.adjacencyList[from]
	if !exists {
		return fmt.Errorf("start node %q does not exist in graph", from)
	}
	if _, exists := g.adjacencyList[to]; !exists {
		return fmt.Errorf("end node %q does not exist in graph", to)
	}
	g.adjacencyList[from] = append(edges, to)
	return nil
}

// Edges returns the successors of a node.
func (g *Graph) Edges(name string) []string {
	if edges, exists := g.adjacencyList[name]; exists {
		return append([]string(nil), edges...)
	}
	return make([]string, 0)
}

// Nodes returns all node names in insertion order.
func (g *Graph) Nodes() []string {
	return append([]string(nil), g.order...)
}

// EdgeCount returns the total number of directed edges.
func (g *Graph) EdgeCount() int {
	n := 0
	for _, edges := range g.adjacencyList {
		n += len(edges)
	}
	return n
}

// BuildGraph assembles the adjacency view from a resolved model: every name
// in the table becomes a node, every bus input an edge component→bus, every
// bus output an edge bus→component. Call Resolve first; BuildGraph repeats
// the existence check but not the commodity check.
func BuildGraph(table *Table, buses []component.Bus) (*Graph, error) {
	g := NewGraph()
	for _, name := range table.Names() {
		if err := g.AddNode(name); err != nil {
			return nil, err
		}
	}
	for _, b := range buses {
		for _, r := range b.Inputs {
			if err := g.AddDirectedEdge(r.Component, b.Name); err != nil {
				return nil, err
			}
		}
		for _, r := range b.Outputs {
			if err := g.AddDirectedEdge(b.Name, r.Component); err != nil {
				return nil, err
			}
		}
	}
	return g, nil
}
