// Package bundle finds compound paths: runs of parallel unitig edges
// between a branch point and the node where they reconverge, folded
// into a single wide edge. Grounded on
// falcon_kit/mains/ovlp_to_graph.py's find_bundle/
// construct_compound_paths*/identify_edges_to_remove/
// identify_short_edges_to_remove.
package bundle

import (
	"github.com/kortschak/falconsg/internal/ordered"
	"github.com/kortschak/falconsg/internal/overlap"
	"github.com/kortschak/falconsg/internal/unitig"
)

// IdentifyBranchNodes returns every node with more than one incoming
// or more than one outgoing unitig edge.
func IdentifyBranchNodes(ug *unitig.Graph) []string {
	var branch []string
	for _, n := range ug.Nodes() {
		if ug.InDegree(n) > 1 || ug.OutDegree(n) > 1 {
			branch = append(branch, n)
		}
	}
	return branch
}

func egoNodes(ug *unitig.Graph, start string, radius int) *ordered.Set[string] {
	seen := ordered.NewSet[string]()
	seen.Add(start)
	frontier := []string{start}
	for d := 0; d < radius && len(frontier) > 0; d++ {
		var next []string
		for _, v := range frontier {
			for _, k := range ug.OutEdges(v) {
				if seen.Add(k.T) {
					next = append(next, k.T)
				}
			}
			for _, k := range ug.InEdges(v) {
				if seen.Add(k.S) {
					next = append(next, k.S)
				}
			}
		}
		frontier = next
	}
	return seen
}

func localOutEdges(ug *unitig.Graph, ego *ordered.Set[string], v string) []unitig.EdgeKey {
	var out []unitig.EdgeKey
	for _, k := range ug.OutEdges(v) {
		if ego.Has(k.T) {
			out = append(out, k)
		}
	}
	return out
}

func localInEdges(ug *unitig.Graph, ego *ordered.Set[string], v string) []unitig.EdgeKey {
	var in []unitig.EdgeKey
	for _, k := range ug.InEdges(v) {
		if ego.Has(k.S) {
			in = append(in, k)
		}
	}
	return in
}

// Data describes a converged bundle: the wide, short stretch of
// parallel edges between StartNode and EndNode.
type Data struct {
	StartNode   string
	EndNode     string
	BundleEdges []unitig.EdgeKey
	Length      int
	Score       int
	Depth       int
}

// FindBundle grows a bounded breadth-first frontier from startNode,
// accepting the result once the frontier converges back down to a
// single tip. Fails on too many tips, too much depth relative to
// width, excessive total length, or a loop. Grounded on find_bundle.
func FindBundle(ug *unitig.Graph, edges map[unitig.EdgeKey]unitig.Edge, startNode string, depthCutoff int, widthCutoff float64, lengthCutoff int, noOutEdgePrinted *ordered.Set[string]) (converged bool, data Data) {
	tips := ordered.NewSet[string]()
	bundleEdges := ordered.NewSet[unitig.EdgeKey]()
	bundleNodes := ordered.NewSet[string]()

	ego := egoNodes(ug, startNode, depthCutoff)

	lengthTo := map[string]int{startNode: 0}
	scoreTo := map[string]int{startNode: 0}

	endNode := startNode
	bundleNodes.Add(startNode)

	for _, k := range localOutEdges(ug, ego, startNode) {
		if !bundleEdges.Has(k) && !bundleNodes.Has(overlap.ReverseEnd(k.T)) {
			bundleEdges.Add(k)
			tips.Add(k.T)
		}
	}
	for _, v := range tips.Keys() {
		bundleNodes.Add(v)
	}

	depth := 1
	converged = false

	for {
		if tips.Len() > 4 {
			converged = false
			break
		}

		if tips.Len() == 1 {
			endNode = tips.Pop()
			if _, ok := lengthTo[endNode]; !ok {
				var maxScoreEdge unitig.EdgeKey
				var hasMax bool
				maxScore := 0
				for _, k := range localInEdges(ug, ego, endNode) {
					if _, ok := lengthTo[k.S]; !ok {
						continue
					}
					score := edges[k].Score
					if score > maxScore || !hasMax {
						maxScore = score
						maxScoreEdge = k
						hasMax = true
					}
				}
				if hasMax {
					lengthTo[endNode] = lengthTo[maxScoreEdge.S] + edges[maxScoreEdge].Length
					scoreTo[endNode] = scoreTo[maxScoreEdge.S] + edges[maxScoreEdge].Score
				}
			}
			converged = true
			break
		}

		depth++
		width := float64(bundleEdges.Len()) / float64(depth)

		if depth > 10 && width > widthCutoff {
			converged = false
			break
		}
		if depth > depthCutoff {
			converged = false
			break
		}

		tipsList := append([]string(nil), tips.Keys()...)
		tipUpdated := false
		loopDetect := false
		lengthLimitReached := false

		for _, v := range tipsList {
			if len(localOutEdges(ug, ego, v)) == 0 {
				noOutEdgePrinted.Add(v)
				continue
			}

			var maxScoreEdge unitig.EdgeKey
			var hasMax bool
			maxScore := 0
			extendTip := true

			for _, k := range localInEdges(ug, ego, v) {
				if _, ok := lengthTo[k.S]; !ok {
					extendTip = false
					break
				}
				score := edges[k].Score
				if score > maxScore || !hasMax {
					maxScore = score
					maxScoreEdge = k
					hasMax = true
				}
			}

			if extendTip && hasMax {
				lengthTo[v] = lengthTo[maxScoreEdge.S] + edges[maxScoreEdge].Length
				scoreTo[v] = scoreTo[maxScoreEdge.S] + edges[maxScoreEdge].Score

				if lengthTo[v] > lengthCutoff {
					lengthLimitReached = true
					converged = false
					break
				}

				vUpdated := false
				for _, k := range localOutEdges(ug, ego, v) {
					if _, ok := lengthTo[k.T]; ok {
						loopDetect = true
						break
					}
					if !bundleEdges.Has(k) && !bundleNodes.Has(overlap.ReverseEnd(k.T)) {
						tips.Add(k.T)
						bundleEdges.Add(k)
						tipUpdated = true
						vUpdated = true
					}
				}

				if vUpdated {
					tips.Delete(v)
					if tips.Len() == 1 {
						break
					}
				}
			}

			if loopDetect {
				converged = false
				break
			}
		}

		if lengthLimitReached || loopDetect {
			break
		}
		if !tipUpdated {
			converged = false
			break
		}
		for _, v := range tips.Keys() {
			bundleNodes.Add(v)
		}
	}

	return converged, Data{
		StartNode:   startNode,
		EndNode:     endNode,
		BundleEdges: bundleEdges.Keys(),
		Length:      lengthTo[endNode],
		Score:       scoreTo[endNode],
		Depth:       depth,
	}
}
