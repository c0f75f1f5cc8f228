// Package overlap defines the pairwise read-overlap record exchanged
// between the alignment producer, the overlap filter and the string-graph
// builder, along with the read-end naming convention the rest of the
// assembler depends on.
package overlap

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/biogo/biogo/seq"
)

// Record is a single pairwise overlap between read f and read g, as
// emitted by an LA4Falcon-style aligner and consumed by the filter and
// the string-graph builder.
type Record struct {
	FID, GID    string
	Score       int     // negative overlap length, by convention
	Identity    float64 // percent identity, 0-100
	FStrand     seq.Strand
	FStart      int
	FEnd        int
	FLen        int
	GStrand     seq.Strand
	GStart      int
	GEnd        int
	GLen        int
	Tag         string // "overlap", "contains", ...
}

// The *Field constants are the zero-based column index of each field in
// the 13-column line format described in spec §6; numFields is the
// column count.
const (
	fIDField = iota
	gIDField
	scoreField
	identityField
	fStrandField
	fStartField
	fEndField
	fLenField
	gStrandField
	gStartField
	gEndField
	gLenField
	tagField

	numFields
)

// Column indices into the 13-column overlap line, exported for callers
// (notably the filter) that need to inspect individual fields of a raw
// split line without constructing a full Record, so they can re-emit the
// original field text byte-for-byte.
const (
	ColFID      = fIDField
	ColGID      = gIDField
	ColScore    = scoreField
	ColIdentity = identityField
	ColFStrand  = fStrandField
	ColFStart   = fStartField
	ColFEnd     = fEndField
	ColFLen     = fLenField
	ColGStrand  = gStrandField
	ColGStart   = gStartField
	ColGEnd     = gEndField
	ColGLen     = gLenField
	ColTag      = tagField
	NumCols     = numFields
)

// ParseLine parses a single whitespace-separated overlap line of the
// form:
//
//	q_id t_id score identity q_strand q_start q_end q_len t_strand t_start t_end t_len tag
//
// A line with fewer than numFields space-separated columns, or with
// non-numeric coordinates, is a malformed-input error (spec §7).
func ParseLine(line string) (Record, error) {
	fields := strings.Fields(line)
	if len(fields) < numFields {
		return Record{}, fmt.Errorf("overlap: malformed line %q: want %d columns, got %d", line, numFields, len(fields))
	}

	var r Record
	var err error
	r.FID = fields[fIDField]
	r.GID = fields[gIDField]
	if r.Score, err = strconv.Atoi(fields[scoreField]); err != nil {
		return Record{}, fmt.Errorf("overlap: parsing score in %q: %w", line, err)
	}
	if r.Identity, err = strconv.ParseFloat(fields[identityField], 64); err != nil {
		return Record{}, fmt.Errorf("overlap: parsing identity in %q: %w", line, err)
	}
	fStrand, err := strconv.Atoi(fields[fStrandField])
	if err != nil {
		return Record{}, fmt.Errorf("overlap: parsing f_strand in %q: %w", line, err)
	}
	r.FStrand = strandOf(fStrand)
	if r.FStart, err = strconv.Atoi(fields[fStartField]); err != nil {
		return Record{}, fmt.Errorf("overlap: parsing f_start in %q: %w", line, err)
	}
	if r.FEnd, err = strconv.Atoi(fields[fEndField]); err != nil {
		return Record{}, fmt.Errorf("overlap: parsing f_end in %q: %w", line, err)
	}
	if r.FLen, err = strconv.Atoi(fields[fLenField]); err != nil {
		return Record{}, fmt.Errorf("overlap: parsing f_len in %q: %w", line, err)
	}
	gStrand, err := strconv.Atoi(fields[gStrandField])
	if err != nil {
		return Record{}, fmt.Errorf("overlap: parsing g_strand in %q: %w", line, err)
	}
	r.GStrand = strandOf(gStrand)
	if r.GStart, err = strconv.Atoi(fields[gStartField]); err != nil {
		return Record{}, fmt.Errorf("overlap: parsing g_start in %q: %w", line, err)
	}
	if r.GEnd, err = strconv.Atoi(fields[gEndField]); err != nil {
		return Record{}, fmt.Errorf("overlap: parsing g_end in %q: %w", line, err)
	}
	if r.GLen, err = strconv.Atoi(fields[gLenField]); err != nil {
		return Record{}, fmt.Errorf("overlap: parsing g_len in %q: %w", line, err)
	}
	r.Tag = fields[tagField]
	return r, nil
}

func strandOf(s int) seq.Strand {
	if s == 1 {
		return seq.Plus
	}
	return seq.Minus
}

func strandField(s seq.Strand) int {
	if s == seq.Plus {
		return 1
	}
	return 0
}

// Fields returns the raw whitespace-split fields of the record, matching
// the column layout ParseLine consumes. Line joins these fields.
func (r Record) Fields() []string {
	return []string{
		r.FID,
		r.GID,
		strconv.Itoa(r.Score),
		strconv.FormatFloat(r.Identity, 'f', 3, 64),
		strconv.Itoa(strandField(r.FStrand)),
		strconv.Itoa(r.FStart),
		strconv.Itoa(r.FEnd),
		strconv.Itoa(r.FLen),
		strconv.Itoa(strandField(r.GStrand)),
		strconv.Itoa(r.GStart),
		strconv.Itoa(r.GEnd),
		strconv.Itoa(r.GLen),
		r.Tag,
	}
}

// Line re-encodes the record in the canonical space-separated form.
func (r Record) Line() string {
	return strings.Join(r.Fields(), " ")
}

// ReverseEnd maps the B/E suffix of a read-end name to its opposite,
// and maps the sentinel "NA" to itself. It panics on a malformed name,
// matching the original's "invariant violation" treatment of
// unparseable node names (spec §7 and §3).
func ReverseEnd(name string) string {
	if name == "NA" {
		return name
	}
	if len(name) < 2 {
		panic(fmt.Sprintf("overlap: invalid node name %q: expected \"<read>:B\" or \"<read>:E\" or \"NA\"", name))
	}
	suffix := name[len(name)-2:]
	var end byte
	switch suffix {
	case ":B":
		end = 'E'
	case ":E":
		end = 'B'
	default:
		panic(fmt.Sprintf("overlap: invalid node name %q: expected \"<read>:B\" or \"<read>:E\" or \"NA\"", name))
	}
	return name[:len(name)-1] + string(end)
}

// BeginEnd and EndEnd format the begin/end vertex names for a read id.
func BeginEnd(id string) string { return id + ":B" }
func EndEnd(id string) string   { return id + ":E" }
