// Package aligner builds the subprocess command line for the
// LA4Falcon-style overlap producer, the upstream aligner the overlap
// filter reads from (spec §1, §4.1, §6). It follows the same
// struct-tag-driven command-builder pattern the teacher uses for the
// BLASR long-read aligner.
package aligner

import (
	"errors"
	"os/exec"

	"github.com/biogo/external"
)

// ErrMissingRequired is returned by BuildCommand when a required field
// is unset.
var ErrMissingRequired = errors.New("aligner: missing required argument")

// LA4Falcon describes an invocation of the overlap-dump subprocess that
// reads a read database and a single alignment file and writes
// whitespace-delimited overlap records to stdout.
type LA4Falcon struct {
	// Cmd is the executable name or path; defaults to "LA4Falcon".
	Cmd string `buildarg:"{{if .}}{{.}}{{else}}LA4Falcon{{end}}"`

	// Flags is the combined single-dash flag string, e.g. "mo" or
	// "moI" (ignore-indels), matching falcon_kit's
	// "-%s" % la4falcon_flags construction.
	Flags string `buildarg:"{{if .}}-{{.}}{{end}}"`

	// DB is the read database path.
	DB string `buildarg:"{{.}}"`

	// File is the alignment (.las) file to dump overlaps for.
	File string `buildarg:"{{.}}"`
}

// BuildCommand returns an exec.Cmd that runs the LA4Falcon-style
// producer for this configuration.
func (l LA4Falcon) BuildCommand() (*exec.Cmd, error) {
	if l.DB == "" || l.File == "" {
		return nil, ErrMissingRequired
	}
	cl, err := external.Build(l, nil)
	if err != nil {
		return nil, err
	}
	return exec.Command(cl[0], cl[1:]...), nil
}

// Flags returns the combined LA4Falcon flag string for the given
// ignore-indels setting, matching ovlp_filter.py's
// la4falcon_flags = "mo" + ("I" if ignore_indels else "").
func Flags(ignoreIndels bool) string {
	if ignoreIndels {
		return "moI"
	}
	return "mo"
}
