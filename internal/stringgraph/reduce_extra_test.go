package stringgraph

import "testing"

// TestMarkTransitiveReductionEliminatesLongerDirectEdge builds a
// triangle a:E->b:E (direct, long), a:E->c:E->b:E (two-edge path,
// shorter combined length), and checks the direct edge is marked
// reduced as transitively implied.
func TestMarkTransitiveReductionEliminatesLongerDirectEdge(t *testing.T) {
	g := New()
	addTestEdge(g, "a:E", "b:E", 1000, 1)
	addTestEdge(g, "a:E", "c:E", 400, 1)
	addTestEdge(g, "c:E", "b:E", 300, 1)
	g.InitReduceDict()

	MarkTransitiveReduction(g)

	if !g.Reduced("a:E", "b:E") {
		t.Errorf("a:E->b:E (1000, implied by a:E->c:E->b:E = 700) not marked reduced")
	}
	if !g.Reduced("b:B", "a:B") {
		t.Errorf("reverse twin b:B->a:B not marked reduced")
	}
	if g.Reduced("a:E", "c:E") {
		t.Errorf("a:E->c:E marked reduced, want kept")
	}
	if g.Reduced("c:E", "b:E") {
		t.Errorf("c:E->b:E marked reduced, want kept")
	}
}

// TestMarkChimerEdgesRemovesUnbridgedBridgeNode builds a bridge node
// w:E fed by a fork point p:E (which also branches to x:E) and
// feeding a merge point q:E (which also receives from y:E), with no
// downstream reconvergence between the two branches, and checks both
// of w:E's edges are marked reduced and chimer-tagged.
func TestMarkChimerEdgesRemovesUnbridgedBridgeNode(t *testing.T) {
	g := New()
	addTestEdge(g, "p:E", "w:E", 10, 1)
	addTestEdge(g, "p:E", "x:E", 10, 1)
	addTestEdge(g, "w:E", "q:E", 10, 1)
	addTestEdge(g, "y:E", "q:E", 10, 1)
	g.InitReduceDict()

	nodes, edges := MarkChimerEdges(g)

	wantNodes := map[string]bool{"w:E": true, "w:B": true}
	if len(nodes) != 2 || !wantNodes[nodes[0]] || !wantNodes[nodes[1]] {
		t.Errorf("chimer nodes = %v, want {w:E, w:B}", nodes)
	}

	if !g.Reduced("w:E", "q:E") {
		t.Errorf("w:E->q:E not marked reduced")
	}
	if !g.Reduced("p:E", "w:E") {
		t.Errorf("p:E->w:E not marked reduced")
	}
	if !g.Reduced("q:B", "w:B") {
		t.Errorf("reverse twin q:B->w:B not marked reduced")
	}
	if !g.Reduced("w:B", "p:B") {
		t.Errorf("reverse twin w:B->p:B not marked reduced")
	}
	if g.Reduced("p:E", "x:E") {
		t.Errorf("p:E->x:E marked reduced, want kept (not part of the bridge)")
	}
	if g.Reduced("y:E", "q:E") {
		t.Errorf("y:E->q:E marked reduced, want kept (not part of the bridge)")
	}

	if !edges.Has(Key{"w:E", "q:E"}) || !edges.Has(Key{"p:E", "w:E"}) {
		t.Errorf("chimer edges %v missing the bridge's own edges", edges.Keys())
	}
}

// TestResolveRepeatEdgesDropsNonOverlappingBranch builds a pass-through
// node v:E (single in from p:E, single out to t:E) alongside p:E's
// other branch into a converging, non-pass-through node m:E whose own
// output doesn't overlap v:E's, and checks only p:E->m:E is reduced.
func TestResolveRepeatEdgesDropsNonOverlappingBranch(t *testing.T) {
	g := New()
	addTestEdge(g, "p:E", "v:E", 10, 1)
	addTestEdge(g, "p:E", "m:E", 10, 1)
	addTestEdge(g, "v:E", "t:E", 10, 1)
	addTestEdge(g, "z:E", "m:E", 10, 1)
	addTestEdge(g, "m:E", "u:E", 10, 1)
	g.InitReduceDict()

	removed := ResolveRepeatEdges(g)

	if !g.Reduced("p:E", "m:E") {
		t.Errorf("p:E->m:E not marked reduced")
	}
	if g.Reduced("p:E", "v:E") {
		t.Errorf("p:E->v:E marked reduced, want kept (feeds the pass-through node itself)")
	}
	if g.Reduced("v:E", "t:E") {
		t.Errorf("v:E->t:E marked reduced, want kept")
	}
	if removed.Len() != 1 || !removed.Has(Key{"p:E", "m:E"}) {
		t.Errorf("removed = %v, want just {p:E,m:E}", removed.Keys())
	}
}
