package unitig

import (
	"fmt"
	"strings"

	"github.com/kortschak/falconsg/internal/outputs"
)

func pathOrEdges(e Edge) string {
	if e.Type == "compound" {
		parts := make([]string, len(e.Bundle))
		for i, k := range e.Bundle {
			parts[i] = k.S + "~" + k.V + "~" + k.T
		}
		return strings.Join(parts, "|")
	}
	return strings.Join(e.Path, "~")
}

// WriteUtgData0 writes the pre-bundle-collapse unitig table, one line
// per (s, v, t) edge: "s v t type length score path". Grounded on
// print_utg_data0.
func WriteUtgData0(path string, keys []EdgeKey, edges map[EdgeKey]Edge) error {
	return writeUtgTable(path, keys, edges)
}

// WriteUtgData writes the final unitig table (after bundling, spur
// removal and dedup), in the same format as WriteUtgData0. Grounded on
// print_edge_data.
func WriteUtgData(path string, keys []EdgeKey, edges map[EdgeKey]Edge) error {
	return writeUtgTable(path, keys, edges)
}

func writeUtgTable(path string, keys []EdgeKey, edges map[EdgeKey]Edge) error {
	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		e, ok := edges[k]
		if !ok {
			continue
		}
		lines = append(lines, fmt.Sprintf("%s %s %s %s %d %d %s",
			k.S, k.V, k.T, e.Type, e.Length, e.Score, pathOrEdges(e)))
	}
	return outputs.WriteLinesIfChanged(path, lines)
}
