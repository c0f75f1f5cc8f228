package bundle

import (
	"sort"

	"github.com/kortschak/falconsg/internal/ordered"
	"github.com/kortschak/falconsg/internal/overlap"
	"github.com/kortschak/falconsg/internal/unitig"
)

// CPath is one accepted compound path: a bundle of parallel unitig
// edges between s and t, folded into a single wide edge keyed by
// (s, "NA", t).
type CPath struct {
	Width       float64
	Length      int
	Score       int
	BundleEdges []unitig.EdgeKey
}

type cpath0 struct {
	start, end  string
	width       float64
	length      int
	score       int
	bundleEdges []unitig.EdgeKey
}

func constructCompoundPaths0(ug *unitig.Graph, edges map[unitig.EdgeKey]unitig.Edge, branchNodes []string) []cpath0 {
	noOutEdgePrinted := ordered.NewSet[string]()
	var out []cpath0
	for _, p := range branchNodes {
		if ug.OutDegree(p) <= 1 {
			continue
		}
		converged, data := FindBundle(ug, edges, p, 48, 16, 500000, noOutEdgePrinted)
		if !converged {
			continue
		}
		out = append(out, cpath0{
			start:       data.StartNode,
			end:         data.EndNode,
			width:       float64(len(data.BundleEdges)) / float64(data.Depth),
			length:      data.Length,
			score:       data.Score,
			bundleEdges: data.BundleEdges,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return len(out[i].bundleEdges) > len(out[j].bundleEdges) })
	return out
}

func reverseEdgeKey(k unitig.EdgeKey) unitig.EdgeKey {
	return unitig.EdgeKey{S: overlap.ReverseEnd(k.T), T: overlap.ReverseEnd(k.S), V: overlap.ReverseEnd(k.V)}
}

func constructCompoundPaths1(cp0 []cpath0) *ordered.Map[unitig.EdgeKey, CPath] {
	edgeToCPath := map[unitig.EdgeKey]*ordered.Set[unitig.EdgeKey]{}
	out := ordered.NewMap[unitig.EdgeKey, CPath]()

	for _, c := range cp0 {
		overlapped := false
		for _, k := range c.bundleEdges {
			if set, ok := edgeToCPath[k]; ok && set.Len() > 0 {
				overlapped = true
				break
			}
			rk := reverseEdgeKey(k)
			if set, ok := edgeToCPath[rk]; ok && set.Len() > 0 {
				overlapped = true
				break
			}
		}
		if overlapped {
			continue
		}

		key := unitig.EdgeKey{S: c.start, T: c.end, V: "NA"}
		rKey := unitig.EdgeKey{S: overlap.ReverseEnd(c.end), T: overlap.ReverseEnd(c.start), V: "NA"}

		bundleEdgesR := make([]unitig.EdgeKey, 0, len(c.bundleEdges))
		for _, k := range c.bundleEdges {
			set, ok := edgeToCPath[k]
			if !ok {
				set = ordered.NewSet[unitig.EdgeKey]()
				edgeToCPath[k] = set
			}
			set.Add(key)

			rk := reverseEdgeKey(k)
			rSet, ok := edgeToCPath[rk]
			if !ok {
				rSet = ordered.NewSet[unitig.EdgeKey]()
				edgeToCPath[rk] = rSet
			}
			rSet.Add(rKey)

			bundleEdgesR = append(bundleEdgesR, rk)
		}

		out.Set(key, CPath{Width: c.width, Length: c.length, Score: c.score, BundleEdges: c.bundleEdges})
		out.Set(rKey, CPath{Width: c.width, Length: c.length, Score: c.score, BundleEdges: bundleEdgesR})
	}
	return out
}

func constructCompoundPaths2(cp1 *ordered.Map[unitig.EdgeKey, CPath]) (*ordered.Map[unitig.EdgeKey, CPath], map[unitig.EdgeKey]*ordered.Set[unitig.EdgeKey]) {
	out := ordered.NewMap[unitig.EdgeKey, CPath]()
	edgeToCPath := map[unitig.EdgeKey]*ordered.Set[unitig.EdgeKey]{}

	for _, k := range cp1.Keys() {
		rKey := unitig.EdgeKey{S: overlap.ReverseEnd(k.T), T: overlap.ReverseEnd(k.S), V: "NA"}
		if !cp1.Has(rKey) {
			continue
		}
		val, _ := cp1.Get(k)
		out.Set(k, val)
		for _, e := range val.BundleEdges {
			set, ok := edgeToCPath[e]
			if !ok {
				set = ordered.NewSet[unitig.EdgeKey]()
				edgeToCPath[e] = set
			}
			set.Add(k)
		}
	}
	return out, edgeToCPath
}

func constructCompoundPaths3(ug *unitig.Graph, cp2 *ordered.Map[unitig.EdgeKey, CPath], edgeToCPath map[unitig.EdgeKey]*ordered.Set[unitig.EdgeKey]) *ordered.Map[unitig.EdgeKey, CPath] {
	out := ordered.NewMap[unitig.EdgeKey, CPath]()
	for _, k := range cp2.Keys() {
		contained := false
		for _, e := range ug.OutEdges(k.S) {
			if set, ok := edgeToCPath[e]; ok && set.Len() > 1 {
				contained = true
				break
			}
		}
		if !contained {
			val, _ := cp2.Get(k)
			out.Set(k, val)
		}
	}
	return out
}

// ConstructCompoundPaths collapses the unitig graph's branch-and-merge
// bundles into compound paths: parallel runs of edges between a
// branch node and its reconvergence point, keeping only bundles that
// don't overlap another accepted bundle and whose reverse-complement
// bundle is also accepted, with every edge of both bundles present in
// ug. Grounded on construct_compound_paths.
func ConstructCompoundPaths(ug *unitig.Graph, edges map[unitig.EdgeKey]unitig.Edge) *ordered.Map[unitig.EdgeKey, CPath] {
	branchNodes := IdentifyBranchNodes(ug)
	cp0 := constructCompoundPaths0(ug, edges, branchNodes)
	cp1 := constructCompoundPaths1(cp0)
	cp2, edgeToCPath := constructCompoundPaths2(cp1)
	cp3 := constructCompoundPaths3(ug, cp2, edgeToCPath)

	live := map[unitig.EdgeKey]bool{}
	for _, k := range ug.LiveEdges() {
		live[k] = true
	}
	allLive := func(c CPath) bool {
		for _, e := range c.BundleEdges {
			if !live[e] {
				return false
			}
		}
		return true
	}

	out := ordered.NewMap[unitig.EdgeKey, CPath]()
	for _, k := range cp3.Keys() {
		rKey := unitig.EdgeKey{S: overlap.ReverseEnd(k.T), T: overlap.ReverseEnd(k.S), V: "NA"}
		rVal, ok := cp3.Get(rKey)
		if !ok {
			continue
		}
		val, _ := cp3.Get(k)
		if !allLive(val) || !allLive(rVal) {
			continue
		}
		out.Set(k, val)
	}
	return out
}
