// Copyright ©2016 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// cfilter filters the preads fasta file named by -in for low sequence
// complexity ahead of overlap computation: junk and low-complexity
// reads waste aligner time and seed spurious overlaps, so dropping
// them here keeps ovlpfilter's input cleaner. Reads passing the
// threshold are written to stdout; reads failing it are written, by
// ID only, to an exclude-list file for cmd/prune.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/complexity"
	"github.com/biogo/biogo/io/seqio"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq"
	"github.com/biogo/biogo/seq/linear"
)

var (
	in        = flag.String("in", "", "specify input preads fasta file (required)")
	excludeFn = flag.String("exclude-out", "", "specify file to receive the IDs of rejected reads (required)")
	thresh    = flag.Float64("thresh", 6, "specify minimum total sequence complexity to keep a read")
	dist      = flag.Bool("dist", false, "only calculate the complexity distribution, do not filter")
	typ       = flag.Int("type", 0, "specify complexity calculation function (0 - WF, 1 - entropic, 2 - Z)")
)

func main() {
	flag.Parse()
	if *in == "" || *typ < 0 || 2 < *typ || (!*dist && *excludeFn == "") {
		flag.Usage()
		os.Exit(1)
	}

	cfn := []func(s seq.Sequence, start, end int) (float64, error){
		0: complexity.WF,
		1: complexity.Entropic,
		2: complexity.Z,
	}[*typ]

	f, err := os.Open(*in)
	if err != nil {
		log.Fatalf("failed to open %q: %v", *in, err)
	}
	defer f.Close()

	var excludeOut *os.File
	if !*dist {
		excludeOut, err = os.Create(*excludeFn)
		if err != nil {
			log.Fatalf("failed to create %q: %v", *excludeFn, err)
		}
		defer excludeOut.Close()
	}

	sc := seqio.NewScanner(fasta.NewReader(f, linear.NewSeq("", nil, alphabet.DNAgapped)))
	for sc.Next() {
		sq := sc.Seq().(*linear.Seq)

		// err is always nil for a linear.Seq Start() and End().
		c, _ := cfn(sq, sq.Start(), sq.End())

		if *dist {
			fmt.Printf("%s\t%v\t%d\n", sq.Name(), c, sq.Len())
			continue
		}
		if c >= *thresh {
			fmt.Printf("%60a\n", sq)
		} else {
			fmt.Fprintln(excludeOut, sq.ID)
		}
	}
	if err := sc.Error(); err != nil {
		log.Fatalf("error during fasta read: %v", err)
	}
}
