package bundle

import (
	"sort"
	"testing"

	"github.com/kortschak/falconsg/internal/ordered"
	"github.com/kortschak/falconsg/internal/unitig"
)

func sortedKeys(ks []unitig.EdgeKey) []unitig.EdgeKey {
	out := append([]unitig.EdgeKey(nil), ks...)
	sort.Slice(out, func(i, j int) bool {
		if out[i].S != out[j].S {
			return out[i].S < out[j].S
		}
		if out[i].T != out[j].T {
			return out[i].T < out[j].T
		}
		return out[i].V < out[j].V
	})
	return out
}

// TestFindBundleConverges builds a two-way diamond s->{a,b}->t and
// checks the bundle converges at t, picking the higher-scoring a->t
// edge's accumulated length/score for the endpoint. Node names carry
// ":E" suffixes since FindBundle calls ReverseEnd on edge targets.
func TestFindBundleConverges(t *testing.T) {
	e1 := unitig.EdgeKey{S: "s:E", T: "a:E", V: "v1"}
	e2 := unitig.EdgeKey{S: "s:E", T: "b:E", V: "v2"}
	e3 := unitig.EdgeKey{S: "a:E", T: "t:E", V: "v3"}
	e4 := unitig.EdgeKey{S: "b:E", T: "t:E", V: "v4"}

	edges := map[unitig.EdgeKey]unitig.Edge{
		e1: {Length: 10, Score: 5},
		e2: {Length: 10, Score: 3},
		e3: {Length: 10, Score: 5},
		e4: {Length: 10, Score: 3},
	}
	ug := unitig.NewGraph([]unitig.EdgeKey{e1, e2, e3, e4}, edges)

	noOut := ordered.NewSet[string]()
	converged, data := FindBundle(ug, edges, "s:E", 10, 10, 1000, noOut)

	if !converged {
		t.Fatalf("FindBundle did not converge, data=%+v", data)
	}
	if data.StartNode != "s:E" || data.EndNode != "t:E" {
		t.Errorf("StartNode/EndNode = %s/%s, want s:E/t:E", data.StartNode, data.EndNode)
	}
	if data.Length != 20 {
		t.Errorf("Length = %d, want 20 (via the higher-scoring a->t branch)", data.Length)
	}
	if data.Score != 10 {
		t.Errorf("Score = %d, want 10", data.Score)
	}

	want := sortedKeys([]unitig.EdgeKey{e1, e2, e3, e4})
	got := sortedKeys(data.BundleEdges)
	if len(got) != len(want) {
		t.Fatalf("BundleEdges = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("BundleEdges[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

// TestFindBundleFailsOnTooManyTips checks that a fan-out past 4 tips
// fails to converge.
func TestFindBundleFailsOnTooManyTips(t *testing.T) {
	keys := []unitig.EdgeKey{}
	edges := map[unitig.EdgeKey]unitig.Edge{}
	for _, n := range []string{"a:E", "b:E", "c:E", "d:E", "e:E"} {
		k := unitig.EdgeKey{S: "s:E", T: n, V: "v-" + n}
		keys = append(keys, k)
		edges[k] = unitig.Edge{Length: 10, Score: 1}
	}
	ug := unitig.NewGraph(keys, edges)

	noOut := ordered.NewSet[string]()
	converged, _ := FindBundle(ug, edges, "s:E", 10, 10, 1000, noOut)
	if converged {
		t.Errorf("FindBundle converged with 5 tips, want failure (tips.Len() > 4)")
	}
}

func TestIdentifyBranchNodes(t *testing.T) {
	e1 := unitig.EdgeKey{S: "s", T: "a", V: "v1"}
	e2 := unitig.EdgeKey{S: "s", T: "b", V: "v2"}
	e3 := unitig.EdgeKey{S: "a", T: "t", V: "v3"}
	e4 := unitig.EdgeKey{S: "b", T: "t", V: "v4"}
	ug := unitig.NewGraph([]unitig.EdgeKey{e1, e2, e3, e4}, map[unitig.EdgeKey]unitig.Edge{
		e1: {Length: 1}, e2: {Length: 1}, e3: {Length: 1}, e4: {Length: 1},
	})

	branch := IdentifyBranchNodes(ug)
	found := map[string]bool{}
	for _, n := range branch {
		found[n] = true
	}
	if !found["s"] {
		t.Errorf("branch nodes %v missing s (out-degree 2)", branch)
	}
	if !found["t"] {
		t.Errorf("branch nodes %v missing t (in-degree 2)", branch)
	}
	if found["a"] || found["b"] {
		t.Errorf("branch nodes %v should not include a or b (in/out-degree 1)", branch)
	}
}
