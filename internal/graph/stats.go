package graph

import (
	"sort"

	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// Stats summarizes graph structure.
type Stats struct {
	Nodes       int    `json:"nodes"`
	Edges       int    `json:"edges"`
	Isolated    int    `json:"isolated"`
	Components  int    `json:"components"`
	Largest     int    `json:"largest_component"`
	TotalWeight int    `json:"total_weight"`
	MaxWeight   int    `json:"max_weight"`
	Hub         string `json:"hub,omitempty"` // Highest-degree node, first in catalog order on ties
	MinYear     int    `json:"min_year"`
	MaxYear     int    `json:"max_year"`
}

// weighted converts g into a gonum weighted undirected graph keyed by node
// index.
func (g *Graph) weighted() *simple.WeightedUndirectedGraph {
	ug := simple.NewWeightedUndirectedGraph(0, 0)
	for i := range g.Records {
		ug.AddNode(simple.Node(i))
	}
	for _, e := range g.Edges {
		ug.SetWeightedEdge(ug.NewWeightedEdge(simple.Node(e.Source), simple.Node(e.Target), float64(e.Weight)))
	}
	return ug
}

// Components returns the connected components as id lists. Ids within a
// component and the components themselves follow catalog order.
func (g *Graph) Components() [][]string {
	raw := topo.ConnectedComponents(g.weighted())

	indices := make([][]int, 0, len(raw))
	for _, comp := range raw {
		idx := make([]int, 0, len(comp))
		for _, n := range comp {
			idx = append(idx, int(n.ID()))
		}
		sort.Ints(idx)
		indices = append(indices, idx)
	}
	sort.Slice(indices, func(a, b int) bool { return indices[a][0] < indices[b][0] })

	out := make([][]string, 0, len(indices))
	for _, idx := range indices {
		ids := make([]string, len(idx))
		for k, i := range idx {
			ids[k] = g.Records[i].ID
		}
		out = append(out, ids)
	}
	return out
}

// Stats computes summary statistics.
func (g *Graph) Stats() Stats {
	s := Stats{
		Nodes: g.Len(),
		Edges: len(g.Edges),
	}
	s.MinYear, s.MaxYear = g.YearRange()

	for _, e := range g.Edges {
		s.TotalWeight += e.Weight
		if e.Weight > s.MaxWeight {
			s.MaxWeight = e.Weight
		}
	}

	best := 0
	for i, r := range g.Records {
		d := g.DegreeAt(i)
		if d == 0 {
			s.Isolated++
		}
		if d > best {
			best = d
			s.Hub = r.ID
		}
	}

	comps := g.Components()
	s.Components = len(comps)
	for _, c := range comps {
		if len(c) > s.Largest {
			s.Largest = len(c)
		}
	}
	return s
}

// WeightBetween returns the edge weight between a and b, or 0.
func (g *Graph) WeightBetween(a, b string) int {
	i, ok := g.index[a]
	if !ok {
		return 0
	}
	j, ok := g.index[b]
	if !ok {
		return 0
	}
	if i > j {
		i, j = j, i
	}
	for _, e := range g.Edges {
		if e.Source == i && e.Target == j {
			return e.Weight
		}
	}
	return 0
}
