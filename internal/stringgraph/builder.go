package stringgraph

import (
	"github.com/biogo/biogo/seq"

	"github.com/kortschak/falconsg/internal/ordered"
	"github.com/kortschak/falconsg/internal/overlap"
)

// Build constructs the string graph from a stream of overlap records,
// translating each overlap into one of four geometric edge-pair cases
// depending on which end of f and g the overlap touches and their
// relative strand (spec §4.2), then runs the transitive-reduction pass
// (spec §4.3(a)). Grounded on init_string_graph.
func Build(records []overlap.Record) *Graph {
	g := New()
	seen := ordered.NewSet[[2]string]()

	for _, od := range records {
		pair := [2]string{od.FID, od.GID}
		if pair[0] > pair[1] {
			pair[0], pair[1] = pair[1], pair[0]
		}
		if !seen.Add(pair) {
			continue
		}

		fb, fe, fl := od.FStart, od.FEnd, od.FLen
		gb, ge, gl := od.GStart, od.GEnd, od.GLen
		if od.GStrand == seq.Plus {
			gb, ge = ge, gb
		}

		attr := func(rid string, sp, tp int) Attr {
			return Attr{RID: rid, SP: sp, TP: tp, Length: abs(sp - tp), Score: -od.Score, Identity: od.Identity}
		}

		switch {
		case fb > 0 && gb < ge:
			if fb == 0 || ge-gl == 0 {
				continue
			}
			g.AddEdge(overlap.BeginEnd(od.GID), overlap.BeginEnd(od.FID), attr(od.FID, fb, 0))
			g.AddEdge(overlap.EndEnd(od.FID), overlap.EndEnd(od.GID), attr(od.GID, ge, gl))
		case fb > 0:
			if fb == 0 || ge == 0 {
				continue
			}
			g.AddEdge(overlap.EndEnd(od.GID), overlap.BeginEnd(od.FID), attr(od.FID, fb, 0))
			g.AddEdge(overlap.EndEnd(od.FID), overlap.BeginEnd(od.GID), attr(od.GID, ge, 0))
		case gb < ge:
			if gb == 0 || fe-fl == 0 {
				continue
			}
			g.AddEdge(overlap.BeginEnd(od.FID), overlap.BeginEnd(od.GID), attr(od.GID, gb, 0))
			g.AddEdge(overlap.EndEnd(od.GID), overlap.EndEnd(od.FID), attr(od.FID, fe, fl))
		default:
			if gb-gl == 0 || fe-fl == 0 {
				continue
			}
			g.AddEdge(overlap.BeginEnd(od.FID), overlap.EndEnd(od.GID), attr(od.GID, gb, gl))
			g.AddEdge(overlap.BeginEnd(od.GID), overlap.EndEnd(od.FID), attr(od.FID, fe, fl))
		}
	}

	g.InitReduceDict()
	MarkTransitiveReduction(g)
	return g
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
