// Package filter implements the two-pass streaming overlap filter (spec
// §4.1): for each alignment file, stage 1 classifies q_id groups by
// coverage and identity to build ignore/contained sets, then stage 2
// re-reads the same file to select accepted overlaps using those sets
// and a best-N rule. Grounded on
// falcon_kit/mains/ovlp_filter.py's filter_stage1/filter_stage2/
// run_ovlp_filter/try_run_ovlp_filter.
package filter

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/kortschak/falconsg/internal/aligner"
	"github.com/kortschak/falconsg/internal/fofn"
	"github.com/kortschak/falconsg/internal/lineiter"
	"github.com/kortschak/falconsg/internal/progress"
)

// Config holds the semantic CLI flags of the overlap filter (spec §6).
type Config struct {
	OutFn        string
	NCore        int
	LasFofn      string
	DB           string
	MaxDiff      int
	MaxCov       int
	MinCov       int
	MinLen       int
	MinIdt       float64
	IgnoreIndels bool
	BestN        int
	Stream       bool
}

func newReader(db, file string, ignoreIndels, stream bool) (lineiter.Lines, error) {
	cmd, err := aligner.LA4Falcon{DB: db, File: file, Flags: aligner.Flags(ignoreIndels)}.BuildCommand()
	if err != nil {
		return nil, fmt.Errorf("filter: building command for %q: %w", file, err)
	}
	return lineiter.New(cmd, stream)
}

// Run executes the overlap filter end to end: resolves the FOFN, runs
// stage1 over every file in a bounded worker pool, aggregates the
// ignore/contained sets, runs stage2 over every file in a second
// bounded pool, and writes the accepted overlaps to cfg.OutFn
// atomically (spec §5, §6).
func Run(cfg Config) error {
	fileList, err := fofn.Resolve(cfg.LasFofn)
	if err != nil {
		return fmt.Errorf("filter: %w", err)
	}
	var files []string
	for _, f := range fileList {
		if len(f) != 0 {
			files = append(files, f)
		}
	}

	nCore := cfg.NCore
	if nCore > len(files) {
		nCore = len(files)
	}
	if nCore < 0 {
		nCore = 0
	}

	ignoreAll, contained, err := runStage1Pool(cfg, files, nCore)
	if err != nil {
		return err
	}
	// Do not count ignored reads as contained.
	for r := range ignoreAll {
		delete(contained, r)
	}

	accepted, err := runStage2Pool(cfg, files, nCore, ignoreAll, contained)
	if err != nil {
		return err
	}

	return writeOutput(cfg.OutFn, accepted)
}

func runStage1Pool(cfg Config, files []string, nCore int) (ignoreAll, contained map[string]struct{}, err error) {
	ignoreAll = map[string]struct{}{}
	contained = map[string]struct{}{}

	results := make([]stage1Result, len(files))
	g := new(errgroup.Group)
	g.SetLimit(max(nCore, 1))
	counter := progress.NewCounter("filter stage1", int64(len(files)), "files")
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			lines, err := newReader(cfg.DB, file, cfg.IgnoreIndels, cfg.Stream)
			if err != nil {
				return err
			}
			res, rErr := runStage1(lines, cfg)
			if cErr := lines.Close(); cErr != nil && rErr == nil {
				rErr = cErr
			}
			if rErr != nil {
				return fmt.Errorf("filter: stage1 on %q: %w", file, rErr)
			}
			results[i] = res
			counter.Add(1)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	counter.Finish()

	for _, res := range results {
		for r := range res.Ignore {
			ignoreAll[r] = struct{}{}
		}
		for r := range res.Contained {
			contained[r] = struct{}{}
		}
	}
	return ignoreAll, contained, nil
}

func runStage2Pool(cfg Config, files []string, nCore int, ignoreAll, contained map[string]struct{}) ([][][]string, error) {
	perFile := make([][][]string, len(files))
	g := new(errgroup.Group)
	g.SetLimit(max(nCore, 1))
	counter := progress.NewCounter("filter stage2", int64(len(files)), "files")
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			lines, err := newReader(cfg.DB, file, cfg.IgnoreIndels, cfg.Stream)
			if err != nil {
				return err
			}
			out, rErr := runStage2(lines, cfg, ignoreAll, contained)
			if cErr := lines.Close(); cErr != nil && rErr == nil {
				rErr = cErr
			}
			if rErr != nil {
				return fmt.Errorf("filter: stage2 on %q: %w", file, rErr)
			}
			perFile[i] = out
			counter.Add(1)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	counter.Finish()
	return perFile, nil
}

// writeOutput writes accepted overlaps, grouped by originating file in
// arrival (file list) order, to path atomically: a temporary file is
// written and fsynced, then renamed over path only on success, so a
// failed run never leaves a partial output file (spec §5, §7).
func writeOutput(path string, perFile [][][]string) error {
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("filter: creating %q: %w", tmp, err)
	}
	for _, lines := range perFile {
		for _, fields := range lines {
			if _, err := fmt.Fprintln(f, strings.Join(fields, " ")); err != nil {
				f.Close()
				os.Remove(tmp)
				return fmt.Errorf("filter: writing %q: %w", tmp, err)
			}
		}
	}
	if _, err := fmt.Fprint(f, "---\n"); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("filter: writing %q: %w", tmp, err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("filter: syncing %q: %w", tmp, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("filter: closing %q: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("filter: renaming %q to %q: %w", tmp, path, err)
	}
	return nil
}

