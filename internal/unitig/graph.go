package unitig

import "github.com/kortschak/falconsg/internal/ordered"

// Graph is the unitig multigraph: parallel edges between the same pair
// of vertices are distinguished by their "via" label (a read-end name
// for simple edges, "NA" for compound bundle edges).
type Graph struct {
	edges *ordered.Map[EdgeKey, Edge]
	out   map[string][]EdgeKey
	in    map[string][]EdgeKey
	nodes *ordered.Set[string]
}

// NewGraph builds a Graph from edges, in the order the keys slice
// lists them, so that adjacency lists are reproducibly ordered.
func NewGraph(keys []EdgeKey, edges map[EdgeKey]Edge) *Graph {
	g := &Graph{
		edges: ordered.NewMap[EdgeKey, Edge](),
		out:   map[string][]EdgeKey{},
		in:    map[string][]EdgeKey{},
		nodes: ordered.NewSet[string](),
	}
	for _, k := range keys {
		g.AddEdge(k, edges[k])
	}
	return g
}

// AddEdge inserts or replaces the edge at k.
func (g *Graph) AddEdge(k EdgeKey, e Edge) {
	if !g.edges.Has(k) {
		g.out[k.S] = append(g.out[k.S], k)
		g.in[k.T] = append(g.in[k.T], k)
	}
	g.edges.Set(k, e)
	g.nodes.Add(k.S)
	g.nodes.Add(k.T)
}

// RemoveEdge drops k from the live adjacency structure (in/out degree,
// traversal), but keeps its record retrievable via Edge/SetEdge: later
// passes annotate a removed edge's final disposition (e.g. "spur",
// "repeat_bridge") without losing the edge's length/score/path data.
func (g *Graph) RemoveEdge(k EdgeKey) {
	g.out[k.S] = removeKey(g.out[k.S], k)
	g.in[k.T] = removeKey(g.in[k.T], k)
}

func removeKey(keys []EdgeKey, k EdgeKey) []EdgeKey {
	for i, kk := range keys {
		if kk == k {
			return append(keys[:i], keys[i+1:]...)
		}
	}
	return keys
}

// Edge returns the edge data at k.
func (g *Graph) Edge(k EdgeKey) (Edge, bool) { return g.edges.Get(k) }

// SetEdge updates the edge data at k in place (k must already exist).
func (g *Graph) SetEdge(k EdgeKey, e Edge) { g.edges.Set(k, e) }

// Edges returns every edge key ever added, in insertion order,
// including ones since detached by RemoveEdge. Matches iterating the
// source's u_edge_data table, which a RemoveEdge never shrinks.
func (g *Graph) Edges() []EdgeKey { return g.edges.Keys() }

// LiveEdges returns only the edge keys still present in the graph's
// adjacency structure, in the same relative order as Edges. Matches
// iterating the source's ug.edges(keys=True).
func (g *Graph) LiveEdges() []EdgeKey {
	live := map[EdgeKey]bool{}
	for _, ks := range g.out {
		for _, k := range ks {
			live[k] = true
		}
	}
	var out []EdgeKey
	for _, k := range g.edges.Keys() {
		if live[k] {
			out = append(out, k)
		}
	}
	return out
}

// Nodes returns every vertex name, in insertion order.
func (g *Graph) Nodes() []string { return g.nodes.Keys() }

// OutEdges returns v's outgoing edge keys.
func (g *Graph) OutEdges(v string) []EdgeKey { return g.out[v] }

// InEdges returns v's incoming edge keys.
func (g *Graph) InEdges(v string) []EdgeKey { return g.in[v] }

// InDegree and OutDegree count live edges at v.
func (g *Graph) InDegree(v string) int  { return len(g.in[v]) }
func (g *Graph) OutDegree(v string) int { return len(g.out[v]) }

// Clone returns a shallow copy of g's live structure only: edges
// detached by a prior RemoveEdge are not resurrected into the clone's
// adjacency lists, matching the source's ug2 = ug.copy() calls, which
// copy the live nx graph, not the separate u_edge_data table. Edits to
// the clone do not affect g.
func (g *Graph) Clone() *Graph {
	live := map[EdgeKey]bool{}
	for _, ks := range g.out {
		for _, k := range ks {
			live[k] = true
		}
	}

	clone := &Graph{
		edges: ordered.NewMap[EdgeKey, Edge](),
		out:   map[string][]EdgeKey{},
		in:    map[string][]EdgeKey{},
		nodes: ordered.NewSet[string](),
	}
	for _, k := range g.edges.Keys() {
		if !live[k] {
			continue
		}
		e, _ := g.edges.Get(k)
		clone.AddEdge(k, e)
	}
	return clone
}
