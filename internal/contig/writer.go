package contig

import (
	"fmt"

	"github.com/kortschak/falconsg/internal/outputs"
)

// WriteCtgPaths writes the final contig table, one whitespace-joined
// line per contig record.
func WriteCtgPaths(path string, records []Record) error {
	lines := make([]string, len(records))
	for i, r := range records {
		lines[i] = fmt.Sprintf("%s %s %s %s %d %d %s",
			r.Name, r.Type, r.StartKey, r.EndNode, r.Length, r.Score, r.EdgeString)
	}
	return outputs.WriteLinesIfChanged(path, lines)
}
