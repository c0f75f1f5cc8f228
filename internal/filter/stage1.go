package filter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kortschak/falconsg/internal/lineiter"
	"github.com/kortschak/falconsg/internal/overlap"
)

// stage1Result is the per-file classification result: reads to ignore
// downstream, and reads contained by some non-ignored read.
type stage1Result struct {
	Ignore    map[string]struct{}
	Contained map[string]struct{}
}

// runStage1 classifies every q_id group in lines, grounded on
// falcon_kit/mains/ovlp_filter.py's filter_stage1.
func runStage1(lines lineiter.Lines, cfg Config) (stage1Result, error) {
	res := stage1Result{Ignore: map[string]struct{}{}, Contained: map[string]struct{}{}}

	var (
		currentQID   string
		haveCurrent  bool
		fivePrime    int
		threePrime   int
		contained    map[string]struct{}
	)
	flush := func(qid string) {
		diff := fivePrime - threePrime
		if diff < 0 {
			diff = -diff
		}
		if diff > cfg.MaxDiff || fivePrime > cfg.MaxCov || threePrime > cfg.MaxCov ||
			fivePrime < cfg.MinCov || threePrime < cfg.MinCov {
			res.Ignore[qid] = struct{}{}
			return
		}
		for t := range contained {
			res.Contained[t] = struct{}{}
		}
	}

	for lines.Next() {
		line := lines.Text()
		fields := strings.Fields(line)
		if len(fields) < overlap.NumCols {
			return stage1Result{}, fmt.Errorf("filter: malformed overlap line %q", line)
		}
		qID, tID := fields[overlap.ColFID], fields[overlap.ColGID]

		if !haveCurrent || qID != currentQID {
			if haveCurrent {
				flush(currentQID)
			}
			fivePrime, threePrime = 0, 0
			contained = map[string]struct{}{}
			currentQID = qID
			haveCurrent = true
		}

		idt, err := strconv.ParseFloat(fields[overlap.ColIdentity], 64)
		if err != nil {
			return stage1Result{}, fmt.Errorf("filter: parsing identity in %q: %w", line, err)
		}
		qLen, err := strconv.Atoi(fields[overlap.ColFLen])
		if err != nil {
			return stage1Result{}, fmt.Errorf("filter: parsing q_len in %q: %w", line, err)
		}
		tLen, err := strconv.Atoi(fields[overlap.ColGLen])
		if err != nil {
			return stage1Result{}, fmt.Errorf("filter: parsing t_len in %q: %w", line, err)
		}

		if idt < cfg.MinIdt {
			continue
		}
		if qLen < cfg.MinLen || tLen < cfg.MinLen {
			continue
		}

		qStart, err := strconv.Atoi(fields[overlap.ColFStart])
		if err != nil {
			return stage1Result{}, fmt.Errorf("filter: parsing q_start in %q: %w", line, err)
		}
		qEnd, err := strconv.Atoi(fields[overlap.ColFEnd])
		if err != nil {
			return stage1Result{}, fmt.Errorf("filter: parsing q_end in %q: %w", line, err)
		}
		if qStart == 0 {
			fivePrime++
		}
		if qEnd == qLen {
			threePrime++
		}
		if fields[overlap.ColTag] == "contains" {
			contained[tID] = struct{}{}
		}
	}

	// Preserves the original's exact trailing-group semantics (spec §9):
	// the final flush only runs if at least one line was read, and it
	// flushes whatever q_id was current when the stream ended.
	if haveCurrent {
		flush(currentQID)
	}
	return res, nil
}
