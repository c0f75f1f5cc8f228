package bundle

import (
	"fmt"

	"github.com/kortschak/falconsg/internal/ordered"
	"github.com/kortschak/falconsg/internal/outputs"
	"github.com/kortschak/falconsg/internal/overlap"
	"github.com/kortschak/falconsg/internal/unitig"
)

// IdentifyEdgesToRemove returns every live unitig edge subsumed by an
// accepted compound path, and writes the c_path table (one line per
// compound path: s v t width length score bundle-edges). Grounded on
// identify_edges_to_remove.
func IdentifyEdgesToRemove(path string, compoundPaths *ordered.Map[unitig.EdgeKey, CPath], ug2 *unitig.Graph) (*ordered.Set[unitig.EdgeKey], error) {
	live := map[unitig.EdgeKey]bool{}
	for _, k := range ug2.LiveEdges() {
		live[k] = true
	}

	toRemove := ordered.NewSet[unitig.EdgeKey]()
	var lines []string
	for _, k := range compoundPaths.Keys() {
		c, _ := compoundPaths.Get(k)
		bundleStr := ""
		for i, e := range c.BundleEdges {
			if i > 0 {
				bundleStr += "|"
			}
			bundleStr += e.S + "~" + e.V + "~" + e.T
		}
		lines = append(lines, fmt.Sprintf("%s %s %s %g %d %d %s", k.S, k.V, k.T, c.Width, c.Length, c.Score, bundleStr))

		for _, e := range c.BundleEdges {
			if live[e] {
				toRemove.Add(e)
			}
		}
	}
	if err := outputs.WriteLinesIfChanged(path, lines); err != nil {
		return nil, err
	}
	return toRemove, nil
}

// IdentifyShortEdgesToRemove finds unitig edges that bridge two
// branch points in a way characteristic of a collapsed short repeat:
// an edge s->t where s has exactly one way in and two ways out, t has
// two ways in and one way out, and the bridging edge itself is
// shorter than 60000bp. Grounded on identify_short_edges_to_remove.
func IdentifyShortEdgesToRemove(ug2 *unitig.Graph, edges map[unitig.EdgeKey]unitig.Edge) *ordered.Set[unitig.EdgeKey] {
	toRemove := ordered.NewSet[unitig.EdgeKey]()
	for _, k := range ug2.LiveEdges() {
		if ug2.InDegree(k.S) == 1 && ug2.OutDegree(k.S) == 2 &&
			ug2.InDegree(k.T) == 2 && ug2.OutDegree(k.T) == 1 {
			e, ok := edges[k]
			if !ok || e.Length >= 60000 {
				continue
			}
			rk := unitig.EdgeKey{S: overlap.ReverseEnd(k.T), T: overlap.ReverseEnd(k.S), V: overlap.ReverseEnd(k.V)}
			toRemove.Add(k)
			toRemove.Add(rk)
		}
	}
	return toRemove
}
