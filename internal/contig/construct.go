// Package contig walks the bundled unitig graph into contig paths and
// extracts the final forward/reverse contig sequences' read-end
// coordinates. Grounded on falcon_kit/mains/ovlp_to_graph.py's
// construct_c_path_from_utgs/extract_contigs.
package contig

import (
	"github.com/kortschak/falconsg/internal/ordered"
	"github.com/kortschak/falconsg/internal/overlap"
	"github.com/kortschak/falconsg/internal/unitig"
)

// Path is one contig-construction path: a chain of unitig edges
// walked from a branch/free node through simple_out nodes until
// another branch point, loop, or dead end is reached.
type Path struct {
	Start, Key, End string
	Length, Score   int
	Edges           []unitig.EdgeKey
}

func lastTwo(path []string) (second, last string) {
	n := len(path)
	if n == 0 {
		return "", ""
	}
	if n == 1 {
		return "", path[0]
	}
	return path[n-2], path[n-1]
}

// ConstructCPathFromUtgs walks every unitig edge into a maximal
// contig-construction path: starting at a branch node (or, once
// those are exhausted, an arbitrary remaining edge's source), it
// follows single-out-edge ("simple_out") nodes, stopping at a loop, a
// dead end, or a branch node whose best-overlap predecessor isn't the
// path being extended (the best_in consistency check). Grounded on
// construct_c_path_from_utgs.
func ConstructCPathFromUtgs(ug *unitig.Graph, edges map[unitig.EdgeKey]unitig.Edge, bestIn map[string]string) []Path {
	sNodes := ordered.NewSet[string]()
	simpleOut := map[string]bool{}

	for _, n := range ug.Nodes() {
		inDeg, outDeg := ug.InDegree(n), ug.OutDegree(n)
		if !(inDeg == 1 && outDeg == 1) && outDeg != 0 {
			sNodes.Add(n)
		}
		if outDeg == 1 {
			simpleOut[n] = true
		}
	}

	freeEdges := ordered.NewSet[unitig.EdgeKey]()
	for _, k := range ug.LiveEdges() {
		freeEdges.Add(k)
	}

	var cPath []Path

	for freeEdges.Len() > 0 {
		var n string
		if sNodes.Len() > 0 {
			n = sNodes.Pop()
		} else {
			e := freeEdges.Pop()
			n = e.S
		}

		for _, out := range ug.OutEdges(n) {
			s, t, v := out.S, out.T, out.V
			pathStart := n
			pathKey := t
			t0 := s

			var path []unitig.EdgeKey
			pathNodes := map[string]bool{s: true}
			pathLength, pathScore := 0, 0

			for simpleOut[t] {
				if pathNodes[t] {
					break
				}
				rt := overlap.ReverseEnd(t)
				if pathNodes[rt] {
					break
				}

				e, ok := edges[unitig.EdgeKey{S: t0, T: t, V: v}]
				if !ok {
					break
				}

				if ug.InDegree(t) > 1 {
					best := bestIn[t]
					if e.Type == "simple" {
						second, _ := lastTwo(e.Path)
						if best != second {
							break
						}
					} else if e.Type == "compound" {
						tInNodes := map[string]bool{}
						for _, sub := range e.Bundle {
							if sub.T != t {
								continue
							}
							subEdge, ok := edges[sub]
							if !ok {
								continue
							}
							second, last := lastTwo(subEdge.Path)
							if last == sub.T {
								tInNodes[second] = true
							}
						}
						if !tInNodes[best] {
							break
						}
					}
				}

				path = append(path, unitig.EdgeKey{S: t0, T: t, V: v})
				pathNodes[t] = true
				pathLength += e.Length
				pathScore += e.Score

				next := ug.OutEdges(t)[0]
				t0, t, v = next.S, next.T, next.V
			}

			path = append(path, unitig.EdgeKey{S: t0, T: t, V: v})
			if e, ok := edges[unitig.EdgeKey{S: t0, T: t, V: v}]; ok {
				pathLength += e.Length
				pathScore += e.Score
			}

			cPath = append(cPath, Path{Start: pathStart, Key: pathKey, End: t, Length: pathLength, Score: pathScore, Edges: path})

			for _, e := range path {
				freeEdges.Delete(e)
			}
		}
	}
	return cPath
}
