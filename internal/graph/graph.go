// Package graph derives the undirected tag-overlap graph from a catalog.
package graph

import (
	"github.com/npratt/refgraph/internal/catalog"
)

// Edge connects two records that share at least one tag. Source always
// precedes Target in catalog order.
type Edge struct {
	Source   int    `json:"-"`
	Target   int    `json:"-"`
	SourceID string `json:"source"`
	TargetID string `json:"target"`
	Weight   int    `json:"weight"`
}

// Touches reports whether id is one of the edge endpoints.
func (e Edge) Touches(id string) bool {
	return e.SourceID == id || e.TargetID == id
}

// Graph is an immutable node and edge set. Node i is Records[i].
type Graph struct {
	Records []catalog.Record
	Edges   []Edge

	index     map[string]int
	adjacency []map[int]struct{}
}

// Build computes the edges for records. Every unordered pair is visited
// once in catalog order; a pair becomes an edge when the tag intersection
// is non-empty, weighted by its size.
func Build(records []catalog.Record) *Graph {
	g := &Graph{
		Records:   records,
		index:     make(map[string]int, len(records)),
		adjacency: make([]map[int]struct{}, len(records)),
	}

	tagSets := make([]map[string]struct{}, len(records))
	for i, r := range records {
		g.index[r.ID] = i
		g.adjacency[i] = make(map[int]struct{})
		set := make(map[string]struct{}, len(r.Tags))
		for _, t := range r.Tags {
			set[t] = struct{}{}
		}
		tagSets[i] = set
	}

	for i := 0; i < len(records); i++ {
		for j := i + 1; j < len(records); j++ {
			w := overlap(tagSets[i], tagSets[j])
			if w == 0 {
				continue
			}
			g.Edges = append(g.Edges, Edge{
				Source:   i,
				Target:   j,
				SourceID: records[i].ID,
				TargetID: records[j].ID,
				Weight:   w,
			})
			g.adjacency[i][j] = struct{}{}
			g.adjacency[j][i] = struct{}{}
		}
	}

	return g
}

func overlap(a, b map[string]struct{}) int {
	if len(b) < len(a) {
		a, b = b, a
	}
	n := 0
	for t := range a {
		if _, ok := b[t]; ok {
			n++
		}
	}
	return n
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	return len(g.Records)
}

// Index returns the node index for id.
func (g *Graph) Index(id string) (int, bool) {
	i, ok := g.index[id]
	return i, ok
}

// Record returns the record for id.
func (g *Graph) Record(id string) (catalog.Record, bool) {
	i, ok := g.index[id]
	if !ok {
		return catalog.Record{}, false
	}
	return g.Records[i], true
}

// IsNeighbor reports whether a and b share an edge.
func (g *Graph) IsNeighbor(a, b string) bool {
	i, ok := g.index[a]
	if !ok {
		return false
	}
	j, ok := g.index[b]
	if !ok {
		return false
	}
	_, ok = g.adjacency[i][j]
	return ok
}

// Neighbors returns the ids adjacent to id in catalog order.
func (g *Graph) Neighbors(id string) []string {
	i, ok := g.index[id]
	if !ok {
		return nil
	}
	var out []string
	for j, r := range g.Records {
		if _, ok := g.adjacency[i][j]; ok {
			out = append(out, r.ID)
		}
	}
	return out
}

// Degree returns the number of edges incident to id.
func (g *Graph) Degree(id string) int {
	i, ok := g.index[id]
	if !ok {
		return 0
	}
	return len(g.adjacency[i])
}

// DegreeAt returns the degree of node i.
func (g *Graph) DegreeAt(i int) int {
	if i < 0 || i >= len(g.adjacency) {
		return 0
	}
	return len(g.adjacency[i])
}

// YearRange returns the smallest and largest year in the catalog.
// An empty graph reports 0, 0.
func (g *Graph) YearRange() (lo, hi int) {
	for i, r := range g.Records {
		if i == 0 || r.Year < lo {
			lo = r.Year
		}
		if i == 0 || r.Year > hi {
			hi = r.Year
		}
	}
	return lo, hi
}
