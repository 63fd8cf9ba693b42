package pcfg

import (
	"math"
	"sort"
)

// Vertex in graph
type Vertex string

// DirectedGraph represents a weighted directed graph. Every traversal visits
// vertices in lexical order so the results are reproducible
type DirectedGraph struct {
	Arcs     map[Vertex]map[Vertex]float64
	Vertices map[Vertex]bool
}

// NewDirectedGraph creates a new DirectedGraph
func NewDirectedGraph() *DirectedGraph {
	g := new(DirectedGraph)
	g.Arcs = make(map[Vertex]map[Vertex]float64)
	g.Vertices = make(map[Vertex]bool)
	return g
}

// Add adds an arc into graph
func (g *DirectedGraph) Add(s, t Vertex, weight float64) {
	if g.Arcs[s] == nil {
		g.Arcs[s] = map[Vertex]float64{}
	}
	g.Arcs[s][t] = weight
	g.Vertices[s] = true
	g.Vertices[t] = true
}

// HasArc returns whether arc (s, t) exists in this graph
func (g *DirectedGraph) HasArc(s, t Vertex) bool {
	_, ok := g.Arcs[s][t]
	return ok
}

func sortedVertices(m map[Vertex]bool) []Vertex {
	vertices := make([]Vertex, 0, len(m))
	for v := range m {
		vertices = append(vertices, v)
	}
	sort.Slice(vertices, func(i, j int) bool { return vertices[i] < vertices[j] })
	return vertices
}

// successors returns the targets of arcs starting from s
func (g *DirectedGraph) successors(s Vertex) []Vertex {
	targets := map[Vertex]bool{}
	for t := range g.Arcs[s] {
		targets[t] = true
	}
	return sortedVertices(targets)
}

// DFS runs depth-first search on graph and returns the vertices visited by
// deep-first order.
// It will not visit the vertices where visited[V] == true.
// After finished, it will update the visited map
func (g *DirectedGraph) DFS(s Vertex, visited map[Vertex]bool) []Vertex {
	if visited[s] || !g.Vertices[s] {
		return []Vertex{}
	}
	visited[s] = true

	order := []Vertex{s}
	for _, next := range g.successors(s) {
		order = append(order, g.DFS(next, visited)...)
	}
	return order
}

// postOrder appends the vertices reachable from s to order once all of
// their successors are appended
func (g *DirectedGraph) postOrder(s Vertex, visited map[Vertex]bool, order []Vertex) []Vertex {
	if visited[s] {
		return order
	}
	visited[s] = true
	for _, next := range g.successors(s) {
		order = g.postOrder(next, visited, order)
	}
	return append(order, s)
}

// TopologicalSort sorts the graph by topological order. When the graph has
// cycles it returns the vertices by decreasing finish time
func (g *DirectedGraph) TopologicalSort() []Vertex {
	visited := map[Vertex]bool{}
	order := []Vertex{}
	for _, v := range sortedVertices(g.Vertices) {
		order = g.postOrder(v, visited, order)
	}
	for i, j := 0, len(order)-1; i < j; i, j = i+1, j-1 {
		order[i], order[j] = order[j], order[i]
	}
	return order
}

// Transpose returns the reversed graph of g
func (g *DirectedGraph) Transpose() *DirectedGraph {
	reversed := NewDirectedGraph()
	for s, targets := range g.Arcs {
		for t, weight := range targets {
			reversed.Add(t, s, weight)
		}
	}

	return reversed
}

// StrongComponents find strong connected components from graph. Components
// with a single vertex are ignored
func (g *DirectedGraph) StrongComponents() [][]Vertex {
	visited := map[Vertex]bool{}
	components := [][]Vertex{}
	topologicalOrder := g.TopologicalSort()
	gt := g.Transpose()
	for _, v := range topologicalOrder {
		if visited[v] {
			continue
		}

		component := gt.DFS(v, visited)
		if len(component) <= 1 {
			continue
		}
		components = append(components, component)
	}
	return components
}

// Floyd finds the weight of shortest path between each vertices using
// Floyd–Warshall algorithm
func (g *DirectedGraph) Floyd() map[Vertex]map[Vertex]float64 {
	vertices := sortedVertices(g.Vertices)
	distance := map[Vertex]map[Vertex]float64{}
	for _, s := range vertices {
		distance[s] = map[Vertex]float64{}
		for _, t := range vertices {
			if s == t {
				distance[s][t] = 0
			} else {
				distance[s][t] = math.Inf(1)
			}
		}
	}

	for s, ts := range g.Arcs {
		for t, w := range ts {
			distance[s][t] = w
		}
	}

	// According to https://en.wikipedia.org/wiki/Floyd%E2%80%93Warshall_algorithm
	for _, k := range vertices {
		for _, i := range vertices {
			for _, j := range vertices {
				d := distance[i][k] + distance[k][j]
				if distance[i][j] > d {
					distance[i][j] = d
				}
			}
		}
	}

	return distance
}
