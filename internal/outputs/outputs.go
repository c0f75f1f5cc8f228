// Package outputs writes the assembler's fixed-format table files
// (sg_edges_list, chimers_nodes, utg_data0, utg_data, c_path, ctg_paths)
// idempotently: a write is skipped if the target already holds the
// exact content, so re-running the assembler on unchanged input does
// not touch file mtimes. Grounded on falcon_kit/io.py's
// serialize(only_if_needed=True).
package outputs

import (
	"bytes"
	"fmt"
	"os"
	"strings"
)

// WriteLinesIfChanged joins lines with a trailing newline and writes
// them to path, skipping the write if path already holds that exact
// content.
func WriteLinesIfChanged(path string, lines []string) error {
	var buf bytes.Buffer
	for _, l := range lines {
		buf.WriteString(l)
		buf.WriteByte('\n')
	}
	return WriteIfChanged(path, buf.Bytes())
}

// WriteIfChanged writes content to path, skipping the write if an
// existing file at path is byte-identical.
func WriteIfChanged(path string, content []byte) error {
	if existing, err := os.ReadFile(path); err == nil && bytes.Equal(existing, content) {
		return nil
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return fmt.Errorf("outputs: writing %q: %w", path, err)
	}
	return nil
}

// JoinFields joins fields with a single space, matching every table
// writer's column separator.
func JoinFields(fields ...string) string {
	return strings.Join(fields, " ")
}
