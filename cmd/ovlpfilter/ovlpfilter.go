// Copyright ©2015 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// ovlpfilter filters raw pairwise read-overlap alignments down to the
// overlaps worth building a string graph from, classifying reads as
// contained or chimeric candidates and keeping only the best-N
// overlaps at each read end.
//
// The program is based on the original python code in falcon_kit's
// mains/ovlp_filter.py.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/kortschak/falconsg/internal/filter"
)

var (
	outFn        = flag.String("out-fn", "preads.ovl", "output file name for accepted overlaps")
	nCore        = flag.Int("n-core", 4, "number of processes used for the filtering")
	lasFofn      = flag.String("las-fofn", "", "file of alignment file names (required)")
	db           = flag.String("db", "", "read database path passed to the aligner")
	maxDiff      = flag.Int("max-diff", 80, "maximum allowed difference between 5' and 3' coverage")
	maxCov       = flag.Int("max-cov", 60, "maximum allowed coverage at either end of a read")
	minCov       = flag.Int("min-cov", 1, "minimum required coverage at either end of a read")
	minLen       = flag.Int("min-len", 2500, "minimum read length to consider")
	minIdt       = flag.Float64("min-idt", 90, "minimum percent identity to accept an overlap")
	ignoreIndels = flag.Bool("ignore-indels", false, "ignore indels when computing overlap coverage")
	bestN        = flag.Int("bestn", 10, "number of best overlaps to keep at each read end")
	stream       = flag.Bool("stream", false, "stream alignment records instead of loading each file fully")
	debug        = flag.Bool("debug", false, "enable debug logging")
	silent       = flag.Bool("silent", false, "suppress all logging except errors")
)

func main() {
	flag.Parse()
	if *lasFofn == "" {
		fmt.Fprintln(os.Stderr, "invalid argument: must have a las-fofn set")
		flag.Usage()
		os.Exit(1)
	}

	switch {
	case *silent:
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	case *debug:
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	}

	cfg := filter.Config{
		OutFn:        *outFn,
		NCore:        *nCore,
		LasFofn:      *lasFofn,
		DB:           *db,
		MaxDiff:      *maxDiff,
		MaxCov:       *maxCov,
		MinCov:       *minCov,
		MinLen:       *minLen,
		MinIdt:       *minIdt,
		IgnoreIndels: *ignoreIndels,
		BestN:        *bestN,
		Stream:       *stream,
	}
	if err := filter.Run(cfg); err != nil {
		log.SetOutput(os.Stderr)
		log.Fatalf("ovlpfilter: %v", err)
	}
}
