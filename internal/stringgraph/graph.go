// Package stringgraph builds and reduces the overlap-induced string
// graph (spec §4.2, §4.3): vertices are read-ends ("<read>:B"/"<read>:E"),
// edges are overlap-induced extensions, and every edge has an
// obligatory twin edge under ReverseEnd symmetry. Grounded on
// falcon_kit/mains/ovlp_to_graph.py's StringGraph/SGNode/SGEdge.
package stringgraph

import "github.com/kortschak/falconsg/internal/ordered"

// Key identifies a directed edge by its endpoint names.
type Key [2]string

// Attr holds the per-edge metadata carried from the originating
// overlap: the read/position label, geometric length, aligner score
// and percent identity.
type Attr struct {
	Label    string
	RID      string
	SP, TP   int
	Length   int
	Score    int
	Identity float64
}

// Edge is a directed string-graph edge between two read-end vertices.
type Edge struct {
	V, W string
	Attr Attr
}

// Graph is the arena-backed string graph: vertices and edges are held
// in insertion order so that every reduction pass iterates
// deterministically (spec §9).
type Graph struct {
	nodes    *ordered.Set[string]
	edges    *ordered.Map[Key, *Edge]
	outEdges map[string][]*Edge
	inEdges  map[string][]*Edge
	reduced  map[Key]bool
	bestIn   map[string]string
}

// New returns an empty Graph.
func New() *Graph {
	return &Graph{
		nodes:    ordered.NewSet[string](),
		edges:    ordered.NewMap[Key, *Edge](),
		outEdges: map[string][]*Edge{},
		inEdges:  map[string][]*Edge{},
		reduced:  map[Key]bool{},
		bestIn:   map[string]string{},
	}
}

func (g *Graph) addNode(n string) {
	g.nodes.Add(n)
}

// AddEdge adds the edge v->w with attr, unless it already exists (the
// builder never re-adds an existing pair, matching add_edge's
// dedup-by-key behavior).
func (g *Graph) AddEdge(v, w string, attr Attr) {
	key := Key{v, w}
	if g.edges.Has(key) {
		return
	}
	g.addNode(v)
	g.addNode(w)
	e := &Edge{V: v, W: w, Attr: attr}
	g.edges.Set(key, e)
	g.outEdges[v] = append(g.outEdges[v], e)
	g.inEdges[w] = append(g.inEdges[w], e)
}

// Nodes returns all vertex names in insertion order.
func (g *Graph) Nodes() []string { return g.nodes.Keys() }

// Edges returns all edge keys in insertion order.
func (g *Graph) Edges() []Key { return g.edges.Keys() }

// Edge returns the edge for key, if present.
func (g *Graph) Edge(key Key) (*Edge, bool) { return g.edges.Get(key) }

// OutEdges returns n's outgoing edges, in insertion order.
func (g *Graph) OutEdges(n string) []*Edge { return g.outEdges[n] }

// InEdges returns n's incoming edges, in insertion order.
func (g *Graph) InEdges(n string) []*Edge { return g.inEdges[n] }

// SetOutEdges replaces n's outgoing adjacency list order, used by the
// transitive-reduction pass which sorts adjacency by edge length
// in place.
func (g *Graph) SetOutEdges(n string, edges []*Edge) { g.outEdges[n] = edges }

// InitReduceDict marks every edge not-reduced, matching
// StringGraph.init_reduce_dict.
func (g *Graph) InitReduceDict() {
	for _, k := range g.edges.Keys() {
		g.reduced[k] = false
	}
}

// Reduced reports whether edge v->w has been marked reduced.
func (g *Graph) Reduced(v, w string) bool { return g.reduced[Key{v, w}] }

// SetReduced marks edge v->w reduced or not.
func (g *Graph) SetReduced(v, w string, val bool) { g.reduced[Key{v, w}] = val }

// SetBestIn records that v is the best-overlap predecessor of w.
func (g *Graph) SetBestIn(w, v string) { g.bestIn[w] = v }

// BestIn returns the best-overlap predecessor of w, if recorded.
func (g *Graph) BestIn(w string) (string, bool) {
	v, ok := g.bestIn[w]
	return v, ok
}
