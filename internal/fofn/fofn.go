// Package fofn resolves "file of filenames" accessors: a container that
// names a list of input files as JSON, MessagePack, or a plain
// whitespace-delimited text list, with relative paths resolved against
// the FOFN's own directory rather than the process's working directory
// (spec §6, grounded on falcon_kit/io.py's yield_abspath_from_fofn).
package fofn

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
)

// Resolve reads the FOFN at path and returns the absolute paths of the
// files it names. A ".json" or ".msgpack" extension selects that
// container format; any other extension (including no extension) is
// treated as a plain whitespace-delimited list of paths, one or more
// per line.
func Resolve(path string) ([]string, error) {
	names, err := readNames(path)
	if err != nil {
		return nil, fmt.Errorf("fofn: reading %q: %w", path, err)
	}
	baseDir := filepath.Dir(path)
	abs := make([]string, len(names))
	for i, n := range names {
		if filepath.IsAbs(n) {
			abs[i] = n
			continue
		}
		abs[i] = filepath.Clean(filepath.Join(baseDir, n))
	}
	return abs, nil
}

func readNames(path string) ([]string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	switch ext := filepath.Ext(path); ext {
	case ".json":
		var names []string
		if err := json.Unmarshal(content, &names); err != nil {
			return nil, fmt.Errorf("decoding json: %w", err)
		}
		return names, nil
	case ".msgpack":
		var names []string
		if err := msgpack.Unmarshal(content, &names); err != nil {
			return nil, fmt.Errorf("decoding msgpack: %w", err)
		}
		return names, nil
	default:
		return strings.Fields(string(content)), nil
	}
}

// WriteJSON serializes names as a sorted-key-free JSON array to path,
// creating parent directories as needed. It mirrors falcon_kit/io.py's
// write_as_json (indented, trailing newline for readability).
func WriteJSON(path string, names []string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("fofn: creating directory for %q: %w", path, err)
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(names); err != nil {
		return fmt.Errorf("fofn: encoding %q: %w", path, err)
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

// WriteMsgpack serializes names as a MessagePack array to path.
func WriteMsgpack(path string, names []string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("fofn: creating directory for %q: %w", path, err)
	}
	content, err := msgpack.Marshal(names)
	if err != nil {
		return fmt.Errorf("fofn: encoding %q: %w", path, err)
	}
	return os.WriteFile(path, content, 0o644)
}
