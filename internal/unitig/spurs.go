package unitig

import (
	"github.com/kortschak/falconsg/internal/ordered"
	"github.com/kortschak/falconsg/internal/overlap"
)

// egoNodes returns every node reachable from n by following out-edges
// in at most radius hops, n included. Matches nx.ego_graph's default
// directed, unweighted radius semantics.
func egoNodes(g *Graph, n string, radius int) *ordered.Set[string] {
	seen := ordered.NewSet[string]()
	seen.Add(n)
	frontier := []string{n}
	for d := 0; d < radius && len(frontier) > 0; d++ {
		var next []string
		for _, v := range frontier {
			for _, k := range g.OutEdges(v) {
				if seen.Add(k.T) {
					next = append(next, k.T)
				}
			}
		}
		frontier = next
	}
	return seen
}

// shortestPath returns the unweighted shortest directed path from
// src to dst (inclusive), following out-edges, or ok=false if dst is
// unreachable. Matches nx.shortest_path's default BFS behaviour.
func shortestPath(g *Graph, src, dst string) (path []string, ok bool) {
	if src == dst {
		return []string{src}, true
	}
	prev := map[string]string{src: src}
	queue := []string{src}
	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		for _, k := range g.OutEdges(v) {
			if _, seen := prev[k.T]; seen {
				continue
			}
			prev[k.T] = v
			if k.T == dst {
				queue = nil
				break
			}
			queue = append(queue, k.T)
		}
	}
	if _, ok := prev[dst]; !ok {
		return nil, false
	}
	for v := dst; ; {
		path = append([]string{v}, path...)
		if v == src {
			break
		}
		v = prev[v]
	}
	return path, true
}

// IdentifySpurs removes short dead-end chains that feed into a branch
// node alongside a longer, externally-rooted path: a source node with
// no incoming edges, whose only route to a branch point is shorter
// than spurLen, is almost always a sequencing artefact rather than a
// real branch. Grounded on identify_spurs; ug is not modified, the
// returned graph is.
func IdentifySpurs(ug *Graph, spurLen int) *Graph {
	ug2 := ug.Clone()

	sCandidates := ordered.NewSet[string]()
	for _, v := range ug2.Nodes() {
		if ug2.InDegree(v) == 0 {
			sCandidates.Add(v)
		}
	}

	for sCandidates.Len() > 0 {
		n := sCandidates.Pop()
		if ug2.InDegree(n) != 0 {
			continue
		}
		ego := egoNodes(ug2, n, 10)

		for _, bNode := range ego.Keys() {
			if ug2.InDegree(bNode) <= 1 {
				continue
			}

			var bInNodes []string
			for _, k := range ug2.InEdges(bNode) {
				bInNodes = append(bInNodes, k.S)
			}
			if len(bInNodes) == 1 {
				continue
			}

			withExternNode := false
			for _, v := range bInNodes {
				if !ego.Has(v) {
					withExternNode = true
					break
				}
			}
			if !withExternNode {
				continue
			}

			path, ok := shortestPath(ug2, n, bNode)
			if !ok {
				continue
			}

			totalLength := 0
			v1 := path[0]
			for _, v2 := range path[1:] {
				for _, k := range ug2.OutEdges(v1) {
					if k.T != v2 {
						continue
					}
					e, _ := ug2.Edge(k)
					totalLength += e.Length
				}
				v1 = v2
			}

			if totalLength >= spurLen {
				continue
			}

			v1 = path[0]
			for _, v2 := range path[1:] {
				for _, k := range append([]EdgeKey(nil), ug2.OutEdges(v1)...) {
					if k.T != v2 {
						continue
					}
					e, ok := ug2.Edge(k)
					if !ok {
						continue
					}
					rk := EdgeKey{S: overlap.ReverseEnd(k.T), T: overlap.ReverseEnd(k.S), V: overlap.ReverseEnd(k.V)}
					re, hasR := ug2.Edge(rk)

					ug2.RemoveEdge(k)
					e.Type = "spur:2"
					ug2.SetEdge(k, e)

					if hasR {
						ug2.RemoveEdge(rk)
						re.Type = "spur:2"
						ug2.SetEdge(rk, re)
					}
				}

				if ug2.InDegree(v2) == 0 {
					sCandidates.Add(v2)
				}
				v1 = v2
			}
			break
		}
	}
	return ug2
}
