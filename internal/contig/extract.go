package contig

import (
	"fmt"

	"github.com/kortschak/falconsg/internal/ordered"
	"github.com/kortschak/falconsg/internal/overlap"
	"github.com/kortschak/falconsg/internal/unitig"
)

// Record is one contig: a forward or reverse-complement walk through
// the unitig graph, named "<prefix><6-digit-id><F|R>" (or, for a
// purely circular unitig with no linear extension, "<prefix><id>").
type Record struct {
	Name       string
	Type       string // "ctg_linear" or "ctg_circular"
	StartKey   string // s~v~t of the path's first edge
	EndNode    string
	Length     int
	Score      int
	EdgeString string // s~v~t triples joined with "|"
}

func edgeString(path []unitig.EdgeKey) string {
	s := ""
	for i, e := range path {
		if i > 0 {
			s += "|"
		}
		s += e.S + "~" + e.V + "~" + e.T
	}
	return s
}

func reverseEdgeKey(k unitig.EdgeKey) unitig.EdgeKey {
	v := "NA"
	if k.V != "NA" {
		v = overlap.ReverseEnd(k.V)
	}
	return unitig.EdgeKey{S: overlap.ReverseEnd(k.T), T: overlap.ReverseEnd(k.S), V: v}
}

// ExtractContigs walks each constructed path, trims it to the prefix
// whose edges (forward and reverse-complement) are both still
// unclaimed, and emits a forward/reverse contig pair for every
// non-empty trimmed path, plus one contig per leftover circular
// simple path. Grounded on extract_contigs.
func ExtractContigs(ug *unitig.Graph, edges map[unitig.EdgeKey]unitig.Edge, paths []Path, circular []unitig.EdgeKey, ctgPrefix string) []Record {
	freeEdges := ordered.NewSet[unitig.EdgeKey]()
	for _, k := range ug.LiveEdges() {
		freeEdges.Add(k)
	}

	var out []Record
	ctgID := 0

	for _, p := range paths {
		var nonOverlapped, nonOverlappedR []unitig.EdgeKey
		length, score, lengthR, scoreR := 0, 0, 0, 0

		for _, k := range p.Edges {
			rk := reverseEdgeKey(k)
			if !freeEdges.Has(k) || !freeEdges.Has(rk) {
				break
			}
			nonOverlapped = append(nonOverlapped, k)
			nonOverlappedR = append(nonOverlappedR, rk)
			if e, ok := edges[k]; ok {
				length += e.Length
				score += e.Score
			}
			if e, ok := edges[rk]; ok {
				lengthR += e.Length
				scoreR += e.Score
			}
		}

		if len(nonOverlapped) == 0 {
			continue
		}

		first := nonOverlapped[0]
		endNode := nonOverlapped[len(nonOverlapped)-1].T
		ctype := "ctg_linear"
		if endNode == first.S {
			ctype = "ctg_circular"
		}

		out = append(out, Record{
			Name:       fmt.Sprintf("%s%06dF", ctgPrefix, ctgID),
			Type:       ctype,
			StartKey:   first.S + "~" + first.V + "~" + first.T,
			EndNode:    endNode,
			Length:     length,
			Score:      score,
			EdgeString: edgeString(nonOverlapped),
		})

		for i, j := 0, len(nonOverlappedR)-1; i < j; i, j = i+1, j-1 {
			nonOverlappedR[i], nonOverlappedR[j] = nonOverlappedR[j], nonOverlappedR[i]
		}
		firstR := nonOverlappedR[0]
		endNodeR := nonOverlappedR[len(nonOverlappedR)-1].T

		out = append(out, Record{
			Name:       fmt.Sprintf("%s%06dR", ctgPrefix, ctgID),
			Type:       ctype,
			StartKey:   firstR.S + "~" + firstR.V + "~" + firstR.T,
			EndNode:    endNodeR,
			Length:     lengthR,
			Score:      scoreR,
			EdgeString: edgeString(nonOverlappedR),
		})

		ctgID++
		for _, e := range nonOverlapped {
			freeEdges.Delete(e)
		}
		for _, e := range nonOverlappedR {
			freeEdges.Delete(e)
		}
	}

	for _, k := range circular {
		e, ok := edges[k]
		if !ok {
			continue
		}
		out = append(out, Record{
			Name:       fmt.Sprintf("%s%d", ctgPrefix, ctgID),
			Type:       "ctg_circular",
			StartKey:   k.S + "~" + k.V + "~" + k.T,
			EndNode:    k.T,
			Length:     e.Length,
			Score:      e.Score,
			EdgeString: k.S + "~" + k.V + "~" + k.T,
		})
		ctgID++
	}

	return out
}
