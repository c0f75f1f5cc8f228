package stringgraph

import (
	"sort"

	"github.com/kortschak/falconsg/internal/ordered"
	"github.com/kortschak/falconsg/internal/overlap"
)

func sortByLength(edges []*Edge) {
	sort.SliceStable(edges, func(i, j int) bool { return edges[i].Attr.Length < edges[j].Attr.Length })
}

// MarkTransitiveReduction marks edges that are transitively implied by
// a shorter two-edge path within FUZZ of the longest direct edge (spec
// §4.3(a)). Grounded on StringGraph.mark_tr_edges.
func MarkTransitiveReduction(g *Graph) {
	const fuzz = 500
	mark := map[string]string{}
	for _, n := range g.Nodes() {
		mark[n] = "vacant"
	}

	for _, n := range g.Nodes() {
		outEdges := g.OutEdges(n)
		if len(outEdges) == 0 {
			continue
		}
		sortByLength(outEdges)
		g.SetOutEdges(n, outEdges)
		for _, e := range outEdges {
			mark[e.W] = "inplay"
		}
		maxLen := outEdges[len(outEdges)-1].Attr.Length + fuzz

		for _, e := range outEdges {
			eLen := e.Attr.Length
			w := e.W
			if mark[w] != "inplay" {
				continue
			}
			wOut := g.OutEdges(w)
			sortByLength(wOut)
			g.SetOutEdges(w, wOut)
			for _, e2 := range wOut {
				if e2.Attr.Length+eLen < maxLen {
					if x := e2.W; mark[x] == "inplay" {
						mark[x] = "eliminated"
					}
				}
			}
		}

		for _, e := range outEdges {
			w := e.W
			wOut := g.OutEdges(w)
			sortByLength(wOut)
			g.SetOutEdges(w, wOut)
			if len(wOut) > 0 {
				if x := wOut[0].W; mark[x] == "inplay" {
					mark[x] = "eliminated"
				}
			}
			for _, e2 := range wOut {
				if e2.Attr.Length < fuzz {
					if x := e2.W; mark[x] == "inplay" {
						mark[x] = "eliminated"
					}
				}
			}
		}

		for _, e := range outEdges {
			v, w := e.V, e.W
			if mark[w] == "eliminated" {
				g.SetReduced(v, w, true)
				rv, rw := overlap.ReverseEnd(w), overlap.ReverseEnd(v)
				g.SetReduced(rv, rw, true)
			}
			mark[w] = "vacant"
		}
	}
}

func bfsNodes(g *Graph, n, exclude string, depth int) *ordered.Set[string] {
	all := ordered.NewSet[string]()
	all.Add(n)
	queue := []string{n}
	dp := 1
	for dp < depth && len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		for _, e := range g.OutEdges(v) {
			w := e.W
			if w == exclude {
				continue
			}
			if all.Add(w) && len(g.OutEdges(w)) > 0 {
				queue = append(queue, w)
			}
		}
		dp++
	}
	return all
}

// MarkChimerEdges finds chimer-bridge nodes (converging then diverging
// with no alternative path between the two sides) and marks both their
// out- and in-edges reduced, tagging the node and its reverse end (spec
// §4.3(b)). Candidate nodes are visited in lexicographic order (spec §9
// open question, resolved: this is the total order the reimplementation
// imposes in place of the source's unordered candidate set). Grounded
// on StringGraph.mark_chimer_edges.
func MarkChimerEdges(g *Graph) (chimerNodes []string, chimerEdges *ordered.Set[Key]) {
	multiOut := map[string][]string{}
	multiIn := map[string][]string{}
	for _, n := range g.Nodes() {
		var outNodes, inNodes []string
		for _, e := range g.OutEdges(n) {
			if !g.Reduced(e.V, e.W) {
				outNodes = append(outNodes, e.W)
			}
		}
		for _, e := range g.InEdges(n) {
			if !g.Reduced(e.V, e.W) {
				inNodes = append(inNodes, e.V)
			}
		}
		if len(outNodes) >= 2 {
			multiOut[n] = outNodes
		}
		if len(inNodes) >= 2 {
			multiIn[n] = inNodes
		}
	}

	outSet := map[string]bool{}
	for _, ns := range multiOut {
		for _, w := range ns {
			outSet[w] = true
		}
	}
	inSet := map[string]bool{}
	for _, ns := range multiIn {
		for _, w := range ns {
			inSet[w] = true
		}
	}

	var candidates []string
	for w := range outSet {
		if inSet[w] {
			candidates = append(candidates, w)
		}
	}
	sort.Strings(candidates)

	chimerEdges = ordered.NewSet[Key]()
	for _, n := range candidates {
		outNodes := ordered.NewSet[string]()
		for _, e := range g.OutEdges(n) {
			outNodes.Add(e.W)
		}
		testSet := ordered.NewSet[string]()
		for _, e := range g.InEdges(n) {
			for _, e2 := range g.OutEdges(e.V) {
				testSet.Add(e2.W)
			}
		}
		testSet.Delete(n)

		hasOverlap := false
		for _, w := range outNodes.Keys() {
			if testSet.Has(w) {
				hasOverlap = true
				break
			}
		}
		if hasOverlap {
			continue
		}

		flow1 := ordered.NewSet[string]()
		for _, v := range outNodes.Keys() {
			for _, x := range bfsNodes(g, v, n, 5).Keys() {
				flow1.Add(x)
			}
		}
		flow2 := ordered.NewSet[string]()
		for _, v := range testSet.Keys() {
			for _, x := range bfsNodes(g, v, n, 5).Keys() {
				flow2.Add(x)
			}
		}
		intersects := false
		for _, x := range flow1.Keys() {
			if flow2.Has(x) {
				intersects = true
				break
			}
		}
		if intersects {
			continue
		}

		mark := func(v, w string) {
			if !g.Reduced(v, w) {
				g.SetReduced(v, w, true)
				chimerEdges.Add(Key{v, w})
				rv, rw := overlap.ReverseEnd(w), overlap.ReverseEnd(v)
				g.SetReduced(rv, rw, true)
				chimerEdges.Add(Key{rv, rw})
			}
		}
		for _, e := range g.OutEdges(n) {
			mark(e.V, e.W)
		}
		for _, e := range g.InEdges(n) {
			mark(e.V, e.W)
		}
		chimerNodes = append(chimerNodes, n, overlap.ReverseEnd(n))
	}
	return chimerNodes, chimerEdges
}

// MarkSpurEdge removes dead-end branches: at any vertex with more than
// one live out-edge, an out-edge into a vertex with no out-edges is
// removed (and symmetrically for in-edges), with the twin edge also
// marked (spec §4.3(c)). The condition is asymmetric: only live
// (unreduced) edges are counted at v, while w must have no edges in
// that direction at all, reduced or not; see spec §9. Grounded
// on StringGraph.mark_spur_edge.
func MarkSpurEdge(g *Graph) *ordered.Set[Key] {
	removed := ordered.NewSet[Key]()
	for _, v := range g.Nodes() {
		liveOut := 0
		for _, e := range g.OutEdges(v) {
			if !g.Reduced(e.V, e.W) {
				liveOut++
			}
		}
		if liveOut > 1 {
			for _, e := range g.OutEdges(v) {
				w := e.W
				if len(g.OutEdges(w)) == 0 && !g.Reduced(v, w) {
					g.SetReduced(v, w, true)
					removed.Add(Key{v, w})
					v2, w2 := overlap.ReverseEnd(w), overlap.ReverseEnd(v)
					g.SetReduced(v2, w2, true)
					removed.Add(Key{v2, w2})
				}
			}
		}

		liveIn := 0
		for _, e := range g.InEdges(v) {
			if !g.Reduced(e.V, e.W) {
				liveIn++
			}
		}
		if liveIn > 1 {
			for _, e := range g.InEdges(v) {
				w := e.V
				if len(g.InEdges(w)) == 0 && !g.Reduced(w, v) {
					g.SetReduced(w, v, true)
					removed.Add(Key{w, v})
					v2, w2 := overlap.ReverseEnd(w), overlap.ReverseEnd(v)
					g.SetReduced(w2, v2, true)
					removed.Add(Key{w2, v2})
				}
			}
		}
	}
	return removed
}

// MarkBestOverlap keeps, at each vertex, only the highest-score live
// out-edge and in-edge, reducing every other live edge (spec §4.3(d)).
// Grounded on StringGraph.mark_best_overlap.
func MarkBestOverlap(g *Graph) *ordered.Set[Key] {
	best := map[Key]bool{}

	for _, v := range g.Nodes() {
		outEdges := append([]*Edge(nil), g.OutEdges(v)...)
		sort.SliceStable(outEdges, func(i, j int) bool { return outEdges[i].Attr.Score > outEdges[j].Attr.Score })
		for _, e := range outEdges {
			if !g.Reduced(e.V, e.W) {
				best[Key{e.V, e.W}] = true
				break
			}
		}

		inEdges := append([]*Edge(nil), g.InEdges(v)...)
		sort.SliceStable(inEdges, func(i, j int) bool { return inEdges[i].Attr.Score > inEdges[j].Attr.Score })
		for _, e := range inEdges {
			if !g.Reduced(e.V, e.W) {
				best[Key{e.V, e.W}] = true
				g.SetBestIn(v, e.V)
				break
			}
		}
	}

	removed := ordered.NewSet[Key]()
	for _, key := range g.Edges() {
		if g.Reduced(key[0], key[1]) {
			continue
		}
		if !best[key] {
			g.SetReduced(key[0], key[1], true)
			removed.Add(key)
			rv, rw := overlap.ReverseEnd(key[1]), overlap.ReverseEnd(key[0])
			g.SetReduced(rv, rw, true)
			removed.Add(Key{rv, rw})
		}
	}
	return removed
}

// ResolveRepeatEdges is the local-flow-consistent alternative to
// MarkBestOverlap (--lfc): at a vertex with exactly one live in- and
// out-edge, edges into or out of its neighbors that do not also connect
// back to this vertex's other side are reduced (spec §4.3(d) variant).
// Grounded on StringGraph.resolve_repeat_edges.
func ResolveRepeatEdges(g *Graph) *ordered.Set[Key] {
	liveOut := func(v string) []string {
		var out []string
		for _, e := range g.OutEdges(v) {
			if !g.Reduced(e.V, e.W) {
				out = append(out, e.W)
			}
		}
		return out
	}
	liveIn := func(v string) []string {
		var in []string
		for _, e := range g.InEdges(v) {
			if !g.Reduced(e.V, e.W) {
				in = append(in, e.V)
			}
		}
		return in
	}

	nodesToTest := map[string]bool{}
	var order []string
	for _, v := range g.Nodes() {
		if len(liveOut(v)) == 1 && len(liveIn(v)) == 1 {
			nodesToTest[v] = true
			order = append(order, v)
		}
	}

	var toReduce []Key
	for _, v := range order {
		out := liveOut(v)
		in := liveIn(v)
		inNode := in[0]

		for _, e := range g.OutEdges(inNode) {
			vv, ww := e.V, e.W
			wwOutNodes := map[string]bool{}
			for _, e2 := range g.OutEdges(ww) {
				wwOutNodes[e2.W] = true
			}
			vOutNodes := map[string]bool{}
			for _, w := range out {
				vOutNodes[w] = true
			}
			overlapCount := 0
			for w := range wwOutNodes {
				if vOutNodes[w] {
					overlapCount++
				}
			}
			wwInCount := len(liveIn(ww))
			if ww != v && !g.Reduced(vv, ww) && wwInCount > 1 && !nodesToTest[ww] && overlapCount == 0 {
				toReduce = append(toReduce, Key{vv, ww})
			}
		}

		outNode := out[0]
		for _, e := range g.InEdges(outNode) {
			vv, ww := e.V, e.W
			vvInNodes := map[string]bool{}
			for _, e2 := range g.InEdges(vv) {
				vvInNodes[e2.V] = true
			}
			vInNodes := map[string]bool{}
			for _, w := range in {
				vInNodes[w] = true
			}
			overlapCount := 0
			for w := range vvInNodes {
				if vInNodes[w] {
					overlapCount++
				}
			}
			vvOutCount := len(liveOut(vv))
			if vv != v && !g.Reduced(vv, ww) && vvOutCount > 1 && !nodesToTest[vv] && overlapCount == 0 {
				toReduce = append(toReduce, Key{vv, ww})
			}
		}
	}

	removed := ordered.NewSet[Key]()
	for _, k := range toReduce {
		g.SetReduced(k[0], k[1], true)
		removed.Add(k)
	}
	return removed
}
