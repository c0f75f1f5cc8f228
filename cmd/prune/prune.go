// Copyright ©2016 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// prune drops reads named in an exclude list from a preads fasta file
// read on stdin, writing the surviving reads to stdout. The exclude
// list is one read ID per line, the format cmd/cfilter writes its
// rejected-read list in, so the two tools compose as
//
//	cfilter -in preads.fa -thresh 6 -exclude-out preads.fa.excluded.text > clean.fa
//	prune -exclude preads.fa.excluded.text < clean.fa > pruned.fa
//
// to drop low-complexity reads before overlap computation; the same
// exclude-list format also accepts a plain list of contained or
// chimeric read IDs curated by hand from ovlpfilter's output.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"
)

var exclude = flag.String("exclude", "", "specify file containing excluded read IDs, one per line (required)")

func main() {
	flag.Parse()
	if *exclude == "" {
		flag.Usage()
		os.Exit(1)
	}

	nameSet := make(map[string]struct{})
	f, err := os.Open(*exclude)
	if err != nil {
		log.Fatalf("failed to open exclude file %q: %v", *exclude, err)
	}
	ls := bufio.NewScanner(f)
	for ls.Scan() {
		nameSet[ls.Text()] = struct{}{}
	}
	if err := ls.Err(); err != nil {
		log.Fatalf("failed to read exclude file: %v", err)
	}
	f.Close()

	var kept, dropped int
	sc := seqio.NewScanner(fasta.NewReader(os.Stdin, linear.NewSeq("", nil, alphabet.DNA)))
	for sc.Next() {
		s := sc.Seq().(*linear.Seq)
		if _, ok := nameSet[s.ID]; ok {
			dropped++
			continue
		}
		kept++
		fmt.Printf("%60a\n", s)
	}
	if err := sc.Error(); err != nil {
		log.Fatalf("error during fasta read: %v", err)
	}
	fmt.Fprintf(os.Stderr, "prune: kept %d reads, dropped %d\n", kept, dropped)
}
