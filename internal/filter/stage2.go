package filter

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/kortschak/falconsg/internal/lineiter"
	"github.com/kortschak/falconsg/internal/overlap"
)

// bucketEntry is one candidate overlap waiting to be sorted within its
// 5' or 3' bucket. The sort key is (negOverlapLen, remainder), with the
// original fields compared lexicographically as a final tie-break,
// matching Python's tuple-of-list comparison semantics exactly.
type bucketEntry struct {
	negOverlapLen int
	remainder     int
	fields        []string
}

func lessEntry(a, b bucketEntry) bool {
	if a.negOverlapLen != b.negOverlapLen {
		return a.negOverlapLen < b.negOverlapLen
	}
	if a.remainder != b.remainder {
		return a.remainder < b.remainder
	}
	for i := 0; i < len(a.fields) && i < len(b.fields); i++ {
		if a.fields[i] != b.fields[i] {
			return a.fields[i] < b.fields[i]
		}
	}
	return len(a.fields) < len(b.fields)
}

// emitBucket appends sorted bucket entries to out, stopping once at
// least bestN have already been emitted and the next candidate's
// remainder exceeds 1000 (spec §8 scenario 5: with remainders
// {100,200,300,1500} and bestN=2, only {100,200,300} emit).
func emitBucket(out [][]string, bucket []bucketEntry, bestN int) [][]string {
	sort.Slice(bucket, func(i, j int) bool { return lessEntry(bucket[i], bucket[j]) })
	for i, e := range bucket {
		if i >= bestN && e.remainder > 1000 {
			break
		}
		out = append(out, e.fields)
	}
	return out
}

// runStage2 selects accepted overlaps for a single file, grounded on
// falcon_kit/mains/ovlp_filter.py's filter_stage2.
func runStage2(lines lineiter.Lines, cfg Config, ignore, contained map[string]struct{}) ([][]string, error) {
	var output [][]string

	var (
		currentQID  string
		haveCurrent bool
		fivePrime   []bucketEntry
		threePrime  []bucketEntry
	)

	flush := func() {
		output = emitBucket(output, fivePrime, cfg.BestN)
		output = emitBucket(output, threePrime, cfg.BestN)
	}

	for lines.Next() {
		line := lines.Text()
		fields := strings.Fields(line)
		if len(fields) < overlap.NumCols {
			return nil, fmt.Errorf("filter: malformed overlap line %q", line)
		}
		qID, tID := fields[overlap.ColFID], fields[overlap.ColGID]

		if !haveCurrent {
			currentQID = qID
			haveCurrent = true
			fivePrime, threePrime = nil, nil
		} else if qID != currentQID {
			flush()
			fivePrime, threePrime = nil, nil
			currentQID = qID
		}

		if _, skip := contained[qID]; skip {
			continue
		}
		if _, skip := contained[tID]; skip {
			continue
		}
		if _, skip := ignore[qID]; skip {
			continue
		}
		if _, skip := ignore[tID]; skip {
			continue
		}

		score, err := strconv.Atoi(fields[overlap.ColScore])
		if err != nil {
			return nil, fmt.Errorf("filter: parsing score in %q: %w", line, err)
		}
		idt, err := strconv.ParseFloat(fields[overlap.ColIdentity], 64)
		if err != nil {
			return nil, fmt.Errorf("filter: parsing identity in %q: %w", line, err)
		}
		qStart, err := strconv.Atoi(fields[overlap.ColFStart])
		if err != nil {
			return nil, fmt.Errorf("filter: parsing q_start in %q: %w", line, err)
		}
		qEnd, err := strconv.Atoi(fields[overlap.ColFEnd])
		if err != nil {
			return nil, fmt.Errorf("filter: parsing q_end in %q: %w", line, err)
		}
		qLen, err := strconv.Atoi(fields[overlap.ColFLen])
		if err != nil {
			return nil, fmt.Errorf("filter: parsing q_len in %q: %w", line, err)
		}
		tStart, err := strconv.Atoi(fields[overlap.ColGStart])
		if err != nil {
			return nil, fmt.Errorf("filter: parsing t_start in %q: %w", line, err)
		}
		tEnd, err := strconv.Atoi(fields[overlap.ColGEnd])
		if err != nil {
			return nil, fmt.Errorf("filter: parsing t_end in %q: %w", line, err)
		}
		tLen, err := strconv.Atoi(fields[overlap.ColGLen])
		if err != nil {
			return nil, fmt.Errorf("filter: parsing t_len in %q: %w", line, err)
		}

		if idt < cfg.MinIdt {
			continue
		}
		if qLen < cfg.MinLen || tLen < cfg.MinLen {
			continue
		}

		overlapLen := -score
		remainder := tLen - (tEnd - tStart)
		entry := bucketEntry{negOverlapLen: -overlapLen, remainder: remainder, fields: fields}
		switch {
		case qStart == 0:
			fivePrime = append(fivePrime, entry)
		case qEnd == qLen:
			threePrime = append(threePrime, entry)
		}
	}
	flush()
	return output, nil
}
