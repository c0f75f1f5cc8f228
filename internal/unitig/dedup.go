package unitig

import "sort"

// RemoveDupSimplePath drops redundant parallel simple edges between
// the same (s, t) pair: when several short (at most 3 nodes) simple
// paths connect the same endpoints, only the lexicographically-first
// "via" survives in the returned graph, and the losers are tagged
// "simple_dup" in edges and in the returned graph's records; ug's own
// records are left unchanged. Grounded on
// remove_dup_simple_path.
func RemoveDupSimplePath(ug *Graph, edges map[EdgeKey]Edge) *Graph {
	ug2 := ug.Clone()

	type st struct{ s, t string }
	dupEdges := map[st][]string{}

	for _, k := range ug.Edges() {
		e, ok := edges[k]
		if !ok {
			continue
		}
		if len(e.Path) > 3 {
			continue
		}
		if e.Type != "simple" {
			continue
		}
		key := st{k.S, k.T}
		dupEdges[key] = append(dupEdges[key], k.V)
	}

	for key, vl := range dupEdges {
		sort.Strings(vl)
		for _, v := range vl[1:] {
			k := EdgeKey{S: key.s, T: key.t, V: v}
			ug2.RemoveEdge(k)
			if e, ok := edges[k]; ok {
				e.Type = "simple_dup"
				edges[k] = e
				ug2.SetEdge(k, e)
			}
		}
	}
	return ug2
}
