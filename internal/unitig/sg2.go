// Package unitig collapses the reduced string graph into the unitig
// multigraph: maximal simple (non-branching) chains compressed into
// single edges, with aggressive spur removal and duplicate-path
// dedup (spec §4.4). Grounded on falcon_kit/mains/ovlp_to_graph.py's
// identify_simple_paths/identify_spurs/remove_dup_simple_path.
package unitig

import (
	"github.com/kortschak/falconsg/internal/ordered"
	"github.com/kortschak/falconsg/internal/stringgraph"
)

// sg2 is the adjacency view over the string graph's surviving ("G"
// type) edges only, equivalent to init_sg2's filtered nx.DiGraph.
type sg2 struct {
	out   map[string][]stringgraph.Key
	in    map[string][]stringgraph.Key
	nodes *ordered.Set[string]
}

func buildSG2(edgeData *ordered.Map[stringgraph.Key, stringgraph.EdgeRecord]) *sg2 {
	g := &sg2{out: map[string][]stringgraph.Key{}, in: map[string][]stringgraph.Key{}, nodes: ordered.NewSet[string]()}
	for _, k := range edgeData.Keys() {
		v, w := k[0], k[1]
		g.nodes.Add(v)
		g.nodes.Add(w)
		g.out[v] = append(g.out[v], k)
		g.in[w] = append(g.in[w], k)
	}
	return g
}

func edgeLenScore(edgeData *ordered.Map[stringgraph.Key, stringgraph.EdgeRecord], k stringgraph.Key) (int, int) {
	rec, ok := edgeData.Get(k)
	if !ok {
		return 0, 0
	}
	return rec.Length, rec.Score
}
