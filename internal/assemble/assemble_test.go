package assemble

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeOverlaps writes lines to a temp overlap file and returns its path.
func writeOverlaps(t *testing.T, lines ...string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "overlaps")
	content := strings.Join(lines, "\n") + "\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing overlap fixture: %v", err)
	}
	return path
}

func readOutFile(t *testing.T, dir, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("reading %s: %v", name, err)
	}
	return string(data)
}

// TestRunTwoReadsOneOverlap exercises the simplest possible case: two
// reads with a single dovetail overlap between them must assemble
// into one contig spanning both.
func TestRunTwoReadsOneOverlap(t *testing.T) {
	overlapFile := writeOverlaps(t,
		"001 002 -500 99.500 1 100 600 1000 1 300 0 500 overlap",
	)
	outDir := t.TempDir()

	err := Run(Config{
		OverlapFile: overlapFile,
		OutDir:      outDir,
		CtgPrefix:   "ctg",
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	sgEdges := readOutFile(t, outDir, "sg_edges_list")
	if !strings.Contains(sgEdges, "001") || !strings.Contains(sgEdges, "002") {
		t.Errorf("sg_edges_list missing expected read IDs:\n%s", sgEdges)
	}

	ctgPaths := readOutFile(t, outDir, "ctg_paths")
	lines := strings.Split(strings.TrimRight(ctgPaths, "\n"), "\n")
	if len(lines) == 0 || lines[0] == "" {
		t.Fatalf("ctg_paths is empty, want at least one contig:\n%q", ctgPaths)
	}
	if !strings.Contains(ctgPaths, "001") || !strings.Contains(ctgPaths, "002") {
		t.Errorf("ctg_paths does not reference both reads:\n%s", ctgPaths)
	}

	// Every table file the driver is documented to write must exist.
	for _, name := range []string{"sg_edges_list", "chimers_nodes", "utg_data0", "utg_data", "c_path", "ctg_paths"} {
		if _, err := os.Stat(filepath.Join(outDir, name)); err != nil {
			t.Errorf("expected output file %s: %v", name, err)
		}
	}
}

// TestRunNoOverlapsProducesNoContigs checks that an overlap file with
// no records still runs cleanly and yields an empty contig set.
func TestRunNoOverlapsProducesNoContigs(t *testing.T) {
	overlapFile := writeOverlaps(t, "- end of file")
	outDir := t.TempDir()

	err := Run(Config{
		OverlapFile: overlapFile,
		OutDir:      outDir,
		CtgPrefix:   "ctg",
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	ctgPaths := readOutFile(t, outDir, "ctg_paths")
	if strings.TrimSpace(ctgPaths) != "" {
		t.Errorf("ctg_paths = %q, want empty (no overlaps, no contigs)", ctgPaths)
	}
}
