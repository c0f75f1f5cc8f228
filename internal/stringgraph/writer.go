package stringgraph

import (
	"fmt"

	"github.com/kortschak/falconsg/internal/ordered"
)

// EdgeType is the classification letter written to sg_edges_list.
type EdgeType string

const (
	TypeKeep    EdgeType = "G"
	TypeChimer  EdgeType = "C"
	TypeRemoved EdgeType = "R"
	TypeSpur    EdgeType = "S"
	TypeTR      EdgeType = "TR"
)

// EdgeRecord is the surviving ("G"-type) edge data handed to the unitig
// builder, equivalent to generate_nx_string_graph's edge_data entries.
type EdgeRecord struct {
	RID      string
	SP, TP   int
	Length   int
	Score    int
	Identity float64
	Type     EdgeType
}

// Result is the full output of Generate: the kept-edge data for the
// unitig stage, the chimer node list, the best-overlap predecessor map
// (populated only outside --lfc mode, matching mark_best_overlap), and
// the formatted sg_edges_list lines for every edge (kept and reduced).
type Result struct {
	EdgeData     *ordered.Map[Key, EdgeRecord]
	ChimerNodes  []string
	BestIn       map[string]string
	SGEdgesLines []string
}

// Generate runs the full reduction sequence (chimer bridge removal,
// spur pruning, best-overlap or local-flow-consistent resolution,
// a second spur pass) and formats the results (spec §4.3). Grounded on
// generate_nx_string_graph/init_digraph.
func Generate(g *Graph, lfc, disableChimerBridgeRemoval bool) Result {
	var chimerNodes []string
	chimerEdges := ordered.NewSet[Key]()
	if !disableChimerBridgeRemoval {
		chimerNodes, chimerEdges = MarkChimerEdges(g)
	}

	spurEdges := MarkSpurEdge(g)

	var removedEdges *ordered.Set[Key]
	if lfc {
		removedEdges = ResolveRepeatEdges(g)
	} else {
		removedEdges = MarkBestOverlap(g)
	}

	for _, k := range MarkSpurEdge(g).Keys() {
		spurEdges.Add(k)
	}

	edgeData := ordered.NewMap[Key, EdgeRecord]()
	bestIn := map[string]string{}
	var lines []string
	for _, key := range g.Edges() {
		e, _ := g.Edge(key)
		v, w := key[0], key[1]
		var typ EdgeType
		switch {
		case !g.Reduced(v, w):
			typ = TypeKeep
		case chimerEdges.Has(key):
			typ = TypeChimer
		case removedEdges.Has(key):
			typ = TypeRemoved
		case spurEdges.Has(key):
			typ = TypeSpur
		default:
			typ = TypeTR
		}

		if typ == TypeKeep {
			edgeData.Set(key, EdgeRecord{
				RID: e.Attr.RID, SP: e.Attr.SP, TP: e.Attr.TP,
				Length: e.Attr.Length, Score: e.Attr.Score, Identity: e.Attr.Identity,
				Type: typ,
			})
			if bi, ok := g.BestIn(w); ok {
				bestIn[w] = bi
			}
		}

		lines = append(lines, fmt.Sprintf("%s %s %s %5d %5d %5d %5.2f %s",
			v, w, e.Attr.RID, e.Attr.SP, e.Attr.TP, e.Attr.Score, e.Attr.Identity, typ))
	}

	return Result{EdgeData: edgeData, ChimerNodes: chimerNodes, BestIn: bestIn, SGEdgesLines: lines}
}
