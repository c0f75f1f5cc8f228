package filter

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/kortschak/falconsg/internal/lineiter"
)

type memLines struct {
	lines []string
	i     int
}

func newMemLines(text string) *memLines {
	var lines []string
	for _, l := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
		if l == "" {
			continue
		}
		lines = append(lines, l)
	}
	return &memLines{lines: lines, i: -1}
}

func (m *memLines) Next() bool {
	if m.i+1 >= len(m.lines) {
		return false
	}
	m.i++
	return true
}

func (m *memLines) Text() string { return m.lines[m.i] }
func (m *memLines) Close() error { return nil }

var _ lineiter.Lines = (*memLines)(nil)

func overlapLine(q, t string, score int, qs, qe, ql, ts, te, tl int, tag string) string {
	return strings.Join([]string{
		q, t, itoa(score), "99.000", "0", itoa(qs), itoa(qe), itoa(ql),
		"0", itoa(ts), itoa(te), itoa(tl), tag,
	}, " ")
}

func itoa(n int) string {
	if n < 0 {
		return "-" + itoa(-n)
	}
	if n == 0 {
		return "0"
	}
	var buf []byte
	for n > 0 {
		buf = append([]byte{byte('0' + n%10)}, buf...)
		n /= 10
	}
	return string(buf)
}

func TestStage1MaxDiffIgnoresReads(t *testing.T) {
	// Three overlaps all touch r1's 5' end only (q_end != q_len), giving
	// 5p=3, 3p=0; with max-diff=1 that exceeds the allowed imbalance.
	cfg := Config{MaxDiff: 1, MaxCov: 100, MinCov: 0, MinLen: 0, MinIdt: 0, BestN: 1}
	lines := newMemLines(strings.Join([]string{
		overlapLine("r1", "r2", -100, 0, 100, 500, 0, 100, 500, "overlap"),
		overlapLine("r1", "r3", -100, 0, 100, 500, 0, 100, 500, "overlap"),
		overlapLine("r1", "r4", -100, 0, 100, 500, 0, 100, 500, "overlap"),
	}, "\n"))

	res, err := runStage1(lines, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if _, ignored := res.Ignore["r1"]; !ignored {
		t.Fatalf("expected r1 ignored due to |5p-3p| diff, got %+v", res)
	}
}

func TestStage1TrailingGroupFlushed(t *testing.T) {
	// A single q_id group with no following group must still be
	// classified: the trailing flush uses the last-seen q_id (spec §9
	// "off-by-one at the last group").
	cfg := Config{MaxDiff: 100, MaxCov: 100, MinCov: 0, MinLen: 0, MinIdt: 0, BestN: 1}
	lines := newMemLines(overlapLine("r1", "r2", -100, 0, 100, 500, 0, 100, 500, "contains"))

	res, err := runStage1(lines, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if _, contained := res.Contained["r2"]; !contained {
		t.Fatalf("expected r2 contained, got %+v", res)
	}
}

func TestStage1BoundaryContributesToBothEnds(t *testing.T) {
	// q_start==0 && q_end==q_len contributes to both 5' and 3' counts.
	cfg := Config{MaxDiff: 0, MaxCov: 100, MinCov: 1, MinLen: 0, MinIdt: 0, BestN: 1}
	lines := newMemLines(overlapLine("r1", "r2", -100, 0, 100, 100, 0, 100, 500, "overlap"))

	res, err := runStage1(lines, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if _, ignored := res.Ignore["r1"]; ignored {
		t.Fatalf("expected r1 not ignored (5p==3p==1), got %+v", res)
	}
}

func TestStage2BestNStoppingRule(t *testing.T) {
	// Sizes {100,200,300,1500} with bestn=2: only {100,200,300} emit,
	// because the 4th entry's remainder (1500) exceeds 1000 once i>=bestn.
	cfg := Config{MinIdt: 0, MinLen: 0, BestN: 2}
	remainders := []int{100, 200, 300, 1500}
	var lines []string
	for _, r := range remainders {
		tLen := 1000 + r
		tEnd := 1000
		lines = append(lines, overlapLine("r1", "t"+itoa(r), -500, 0, 100, 500, 0, tEnd, tLen, "overlap"))
	}
	res, err := runStage2(newMemLines(strings.Join(lines, "\n")), cfg, map[string]struct{}{}, map[string]struct{}{})
	if err != nil {
		t.Fatal(err)
	}
	if len(res) != 3 {
		t.Fatalf("expected 3 emitted overlaps, got %d: %v", len(res), res)
	}
}

func TestStage2AllEmitWhenAllWithinThreshold(t *testing.T) {
	cfg := Config{MinIdt: 0, MinLen: 0, BestN: 3}
	remainders := []int{100, 200, 300, 400, 500, 600}
	var lines []string
	for _, r := range remainders {
		tLen := 1000 + r
		tEnd := 1000
		lines = append(lines, overlapLine("r1", "t"+itoa(r), -500, 0, 100, 500, 0, tEnd, tLen, "overlap"))
	}
	res, err := runStage2(newMemLines(strings.Join(lines, "\n")), cfg, map[string]struct{}{}, map[string]struct{}{})
	if err != nil {
		t.Fatal(err)
	}
	if len(res) != 6 {
		t.Fatalf("expected all 6 overlaps to emit, got %d: %v", len(res), res)
	}
}

func TestStage2SkipsIgnoredAndContained(t *testing.T) {
	cfg := Config{MinIdt: 0, MinLen: 0, BestN: 10}
	lines := newMemLines(strings.Join([]string{
		overlapLine("r1", "r2", -100, 0, 100, 500, 0, 100, 500, "overlap"),
		overlapLine("r1", "r3", -100, 0, 100, 500, 0, 100, 500, "overlap"),
	}, "\n"))
	res, err := runStage2(lines, cfg, map[string]struct{}{"r3": {}}, map[string]struct{}{})
	if err != nil {
		t.Fatal(err)
	}
	if len(res) != 1 {
		t.Fatalf("expected 1 overlap (r3 ignored), got %v", res)
	}
	if diff := cmp.Diff("r2", res[0][1]); diff != "" {
		t.Fatalf("unexpected surviving overlap (-want +got):\n%s", diff)
	}
}
