package unitig

import "testing"

func TestRemoveDupSimplePathKeepsLexFirstVia(t *testing.T) {
	ka := EdgeKey{S: "x:E", T: "y:E", V: "a:E"}
	kb := EdgeKey{S: "x:E", T: "y:E", V: "b:E"}
	edges := map[EdgeKey]Edge{
		ka: {Length: 100, Score: 10, Path: []string{"x:E", "a:E", "y:E"}, Type: "simple"},
		kb: {Length: 110, Score: 11, Path: []string{"x:E", "b:E", "y:E"}, Type: "simple"},
	}
	g := NewGraph([]EdgeKey{ka, kb}, edges)

	ug2 := RemoveDupSimplePath(g, edges)

	if ug2.OutDegree("x:E") != 1 {
		t.Fatalf("OutDegree(x:E) = %d after dedup, want 1", ug2.OutDegree("x:E"))
	}
	live := ug2.OutEdges("x:E")
	if len(live) != 1 || live[0] != ka {
		t.Errorf("surviving edge = %v, want %v (lexicographically-first via)", live, ka)
	}

	if edges[kb].Type != "simple_dup" {
		t.Errorf("losing edge Type = %q, want %q", edges[kb].Type, "simple_dup")
	}
	if edges[ka].Type != "simple" {
		t.Errorf("surviving edge Type = %q, want unchanged %q", edges[ka].Type, "simple")
	}

	// The input graph must be untouched; RemoveDupSimplePath operates on a clone.
	if g.OutDegree("x:E") != 2 {
		t.Errorf("input graph mutated: OutDegree(x:E) = %d, want 2", g.OutDegree("x:E"))
	}
}

func TestRemoveDupSimplePathIgnoresLongPaths(t *testing.T) {
	// A path with more than 3 nodes is never considered a dup candidate,
	// even if it shares endpoints with a short parallel edge.
	short := EdgeKey{S: "x:E", T: "y:E", V: "a:E"}
	long := EdgeKey{S: "x:E", T: "y:E", V: "b:E"}
	edges := map[EdgeKey]Edge{
		short: {Length: 100, Score: 10, Path: []string{"x:E", "a:E", "y:E"}, Type: "simple"},
		long:  {Length: 400, Score: 40, Path: []string{"x:E", "m1:E", "m2:E", "y:E"}, Type: "simple"},
	}
	g := NewGraph([]EdgeKey{short, long}, edges)

	ug2 := RemoveDupSimplePath(g, edges)

	if ug2.OutDegree("x:E") != 2 {
		t.Errorf("OutDegree(x:E) = %d, want 2 (long path not deduped)", ug2.OutDegree("x:E"))
	}
	if edges[long].Type != "simple" {
		t.Errorf("long edge Type = %q, want unchanged %q", edges[long].Type, "simple")
	}
}
