package contig

import (
	"testing"

	"github.com/kortschak/falconsg/internal/unitig"
)

func TestExtractContigsLinearPair(t *testing.T) {
	k := unitig.EdgeKey{S: "s:E", T: "t:E", V: "w:E"}
	rk := unitig.EdgeKey{S: "t:B", T: "s:B", V: "w:B"}
	edges := map[unitig.EdgeKey]unitig.Edge{
		k:  {Length: 10, Score: 5},
		rk: {Length: 12, Score: 6},
	}
	ug := unitig.NewGraph([]unitig.EdgeKey{k, rk}, edges)

	paths := []Path{{Start: "s:E", Key: "t:E", End: "t:E", Length: 10, Score: 5, Edges: []unitig.EdgeKey{k}}}

	out := ExtractContigs(ug, edges, paths, nil, "ctg")

	if len(out) != 2 {
		t.Fatalf("ExtractContigs returned %d records, want 2 (forward + reverse)", len(out))
	}

	fwd, rev := out[0], out[1]
	if fwd.Name != "ctg000000F" || fwd.Type != "ctg_linear" {
		t.Errorf("forward record = %+v, want Name ctg000000F Type ctg_linear", fwd)
	}
	if fwd.StartKey != "s:E~w:E~t:E" || fwd.EndNode != "t:E" || fwd.Length != 10 || fwd.Score != 5 {
		t.Errorf("forward record = %+v, want StartKey s:E~w:E~t:E EndNode t:E Length 10 Score 5", fwd)
	}

	if rev.Name != "ctg000000R" || rev.Type != "ctg_linear" {
		t.Errorf("reverse record = %+v, want Name ctg000000R Type ctg_linear", rev)
	}
	if rev.StartKey != "t:B~w:B~s:B" || rev.EndNode != "s:B" || rev.Length != 12 || rev.Score != 6 {
		t.Errorf("reverse record = %+v, want StartKey t:B~w:B~s:B EndNode s:B Length 12 Score 6", rev)
	}
}

func TestExtractContigsDetectsCircularPath(t *testing.T) {
	k1 := unitig.EdgeKey{S: "s:E", T: "m:E", V: "v1:E"}
	k2 := unitig.EdgeKey{S: "m:E", T: "s:E", V: "v2:E"}
	rk1 := unitig.EdgeKey{S: "m:B", T: "s:B", V: "v1:B"}
	rk2 := unitig.EdgeKey{S: "s:B", T: "m:B", V: "v2:B"}
	edges := map[unitig.EdgeKey]unitig.Edge{
		k1: {Length: 10, Score: 5}, k2: {Length: 10, Score: 5},
		rk1: {Length: 10, Score: 5}, rk2: {Length: 10, Score: 5},
	}
	ug := unitig.NewGraph([]unitig.EdgeKey{k1, k2, rk1, rk2}, edges)

	paths := []Path{{Start: "s:E", Key: "m:E", End: "s:E", Length: 20, Score: 10, Edges: []unitig.EdgeKey{k1, k2}}}

	out := ExtractContigs(ug, edges, paths, nil, "ctg")
	if len(out) != 2 {
		t.Fatalf("ExtractContigs returned %d records, want 2", len(out))
	}
	if out[0].Type != "ctg_circular" {
		t.Errorf("forward record Type = %s, want ctg_circular (path returns to its own start)", out[0].Type)
	}
}

func TestExtractContigsLeftoverCircular(t *testing.T) {
	c := unitig.EdgeKey{S: "x:E", T: "x:E", V: "cv:E"}
	edges := map[unitig.EdgeKey]unitig.Edge{c: {Length: 30, Score: 15}}
	ug := unitig.NewGraph([]unitig.EdgeKey{c}, edges)

	out := ExtractContigs(ug, edges, nil, []unitig.EdgeKey{c}, "ctg")
	if len(out) != 1 {
		t.Fatalf("ExtractContigs returned %d records, want 1", len(out))
	}
	r := out[0]
	if r.Name != "ctg0" || r.Type != "ctg_circular" {
		t.Errorf("record = %+v, want Name ctg0 Type ctg_circular", r)
	}
	if r.StartKey != "x:E~cv:E~x:E" || r.EndNode != "x:E" || r.Length != 30 || r.Score != 15 {
		t.Errorf("record = %+v, want StartKey x:E~cv:E~x:E EndNode x:E Length 30 Score 15", r)
	}
}
