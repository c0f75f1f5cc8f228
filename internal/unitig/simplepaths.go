package unitig

import (
	"github.com/kortschak/falconsg/internal/ordered"
	"github.com/kortschak/falconsg/internal/overlap"
	"github.com/kortschak/falconsg/internal/stringgraph"
)

// EdgeKey identifies a unitig multi-edge by its source, sink and "via"
// label: a read-end name for a simple path, or "NA" for a compound
// (bundle) edge.
type EdgeKey struct {
	S, T, V string
}

// Edge is one unitig edge: a collapsed simple path or, once the bundle
// finder runs, a compound bundle of parallel simple/compound edges.
type Edge struct {
	Length int
	Score  int
	Path   []string // simple edge: the read-end chain s..t
	Bundle []EdgeKey // compound edge: the bundled unitig edges it replaces (assigned in internal/bundle)
	Type   string    // "simple", "compound", "spur", "spur:2", "simple_dup", "repeat_bridge", "contained"
}

func reversed(path []string) []string {
	out := make([]string, len(path))
	for i, p := range path {
		out[len(path)-1-i] = p
	}
	return out
}

// IdentifySimplePaths collapses every maximal chain of single-in/
// single-out vertices into one simple-path unitig edge, keyed by
// (start, last-vertex-of-chain, second-vertex) (spec §4.4(a)). Circular
// simple paths (s==t) are reported separately. Grounded on
// identify_simple_paths.
func IdentifySimplePaths(edgeData *ordered.Map[stringgraph.Key, stringgraph.EdgeRecord]) (keys []EdgeKey, edges map[EdgeKey]Edge, circular []EdgeKey) {
	g := buildSG2(edgeData)

	simpleNodes := map[string]bool{}
	sNodes := ordered.NewSet[string]()
	for _, n := range g.nodes.Keys() {
		inDeg, outDeg := len(g.in[n]), len(g.out[n])
		if inDeg == 1 && outDeg == 1 {
			simpleNodes[n] = true
		} else if outDeg != 0 {
			sNodes.Add(n)
		}
	}

	freeEdges := ordered.NewSet[stringgraph.Key]()
	for _, k := range edgeData.Keys() {
		freeEdges.Add(k)
	}

	edges = map[EdgeKey]Edge{}

	for freeEdges.Len() > 0 {
		var n string
		if sNodes.Len() > 0 {
			n = sNodes.Pop()
		} else {
			n = freeEdges.Keys()[0][0]
		}

		for _, k := range append([]stringgraph.Key(nil), g.out[n]...) {
			if !freeEdges.Has(k) {
				continue
			}
			v0, w0 := k[0], k[1]
			rv0, rw0 := overlap.ReverseEnd(v0), overlap.ReverseEnd(w0)

			path := []string{v0, w0}
			pathEdges := ordered.NewSet[stringgraph.Key]()
			pathEdges.Add(k)
			pathLen, pathScore := edgeLenScore(edgeData, k)
			freeEdges.Delete(k)

			rKey := stringgraph.Key{rw0, rv0}
			rPath := []string{rv0, rw0}
			rLen, rScore := edgeLenScore(edgeData, rKey)
			freeEdges.Delete(rKey)

			w := w0
			for simpleNodes[w] {
				next := g.out[w][0]
				if !freeEdges.Has(next) {
					break
				}
				wNext := next[1]
				rNextKey := stringgraph.Key{overlap.ReverseEnd(wNext), overlap.ReverseEnd(w)}
				if pathEdges.Has(rNextKey) {
					break
				}

				path = append(path, wNext)
				pathEdges.Add(next)
				l, s := edgeLenScore(edgeData, next)
				pathLen += l
				pathScore += s
				freeEdges.Delete(next)

				rPath = append(rPath, overlap.ReverseEnd(wNext))
				l2, s2 := edgeLenScore(edgeData, rNextKey)
				rLen += l2
				rScore += s2
				freeEdges.Delete(rNextKey)

				w = wNext
			}

			end := path[len(path)-1]
			key := EdgeKey{S: v0, T: end, V: w0}
			edges[key] = Edge{Length: pathLen, Score: pathScore, Path: path, Type: "simple"}
			keys = append(keys, key)
			if v0 == end {
				circular = append(circular, key)
			}

			rPath = reversed(rPath)
			ugRKey := EdgeKey{S: rPath[0], T: rv0, V: rw0}
			edges[ugRKey] = Edge{Length: rLen, Score: rScore, Path: rPath, Type: "simple"}
			keys = append(keys, ugRKey)
			if rPath[0] == rv0 {
				circular = append(circular, ugRKey)
			}
		}
	}
	return keys, edges, circular
}
