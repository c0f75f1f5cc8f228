package bundle

import (
	"testing"

	"github.com/kortschak/falconsg/internal/unitig"
)

// TestConstructCompoundPathsSymmetricDiamond builds a diamond
// s:E->{a:E,b:E}->t:E plus its ReverseEnd-mirror diamond
// t:B->{a:B,b:B}->s:B, and checks that ConstructCompoundPaths accepts
// exactly the forward bundle and its mirror, nothing else.
func TestConstructCompoundPathsSymmetricDiamond(t *testing.T) {
	e1 := unitig.EdgeKey{S: "s:E", T: "a:E", V: "p:E"}
	er1 := unitig.EdgeKey{S: "a:B", T: "s:B", V: "p:B"}
	e2 := unitig.EdgeKey{S: "s:E", T: "b:E", V: "q:E"}
	er2 := unitig.EdgeKey{S: "b:B", T: "s:B", V: "q:B"}
	e3 := unitig.EdgeKey{S: "a:E", T: "t:E", V: "r:E"}
	er3 := unitig.EdgeKey{S: "t:B", T: "a:B", V: "r:B"}
	e4 := unitig.EdgeKey{S: "b:E", T: "t:E", V: "w:E"}
	er4 := unitig.EdgeKey{S: "t:B", T: "b:B", V: "w:B"}

	keys := []unitig.EdgeKey{e1, er1, e2, er2, e3, er3, e4, er4}
	edges := map[unitig.EdgeKey]unitig.Edge{
		e1: {Length: 10, Score: 5}, er1: {Length: 10, Score: 5},
		e2: {Length: 10, Score: 3}, er2: {Length: 10, Score: 3},
		e3: {Length: 10, Score: 5}, er3: {Length: 10, Score: 5},
		e4: {Length: 10, Score: 3}, er4: {Length: 10, Score: 3},
	}
	ug := unitig.NewGraph(keys, edges)

	cpaths := ConstructCompoundPaths(ug, edges)

	if cpaths.Len() != 2 {
		t.Fatalf("ConstructCompoundPaths found %d entries, want 2 (forward + mirror); keys=%v", cpaths.Len(), cpaths.Keys())
	}

	fwdKey := unitig.EdgeKey{S: "s:E", T: "t:E", V: "NA"}
	revKey := unitig.EdgeKey{S: "t:B", T: "s:B", V: "NA"}

	fwd, ok := cpaths.Get(fwdKey)
	if !ok {
		t.Fatalf("missing forward compound path %v", fwdKey)
	}
	if fwd.Length != 20 || fwd.Score != 10 {
		t.Errorf("forward CPath Length/Score = %d/%d, want 20/10", fwd.Length, fwd.Score)
	}
	if fwd.Width != 2.0 {
		t.Errorf("forward CPath Width = %v, want 2.0 (4 edges over depth 2)", fwd.Width)
	}

	rev, ok := cpaths.Get(revKey)
	if !ok {
		t.Fatalf("missing reverse compound path %v", revKey)
	}
	if rev.Length != 20 || rev.Score != 10 {
		t.Errorf("reverse CPath Length/Score = %d/%d, want 20/10", rev.Length, rev.Score)
	}
}

func TestConstructCompoundPathsRejectsUnmirroredBundle(t *testing.T) {
	// A diamond with no reverse-complement counterpart anywhere in the
	// graph must be rejected entirely. Node names still need valid
	// ":E"/":B" suffixes since ReverseEnd requires them.
	e1 := unitig.EdgeKey{S: "s:E", T: "a:E", V: "p:E"}
	e2 := unitig.EdgeKey{S: "s:E", T: "b:E", V: "q:E"}
	e3 := unitig.EdgeKey{S: "a:E", T: "t:E", V: "r:E"}
	e4 := unitig.EdgeKey{S: "b:E", T: "t:E", V: "w:E"}

	keys := []unitig.EdgeKey{e1, e2, e3, e4}
	edges := map[unitig.EdgeKey]unitig.Edge{
		e1: {Length: 10, Score: 5},
		e2: {Length: 10, Score: 3},
		e3: {Length: 10, Score: 5},
		e4: {Length: 10, Score: 3},
	}
	ug := unitig.NewGraph(keys, edges)

	cpaths := ConstructCompoundPaths(ug, edges)
	if cpaths.Len() != 0 {
		t.Errorf("ConstructCompoundPaths = %v, want empty (no mirror bundle present)", cpaths.Keys())
	}
}
