// Copyright ©2015 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// relabel assigns short, stable numeric IDs to the sequences in a raw
// fasta file read on stdin, writing the relabeled fasta to stdout and
// a two-column "<new-id>\t<original-header>" map file so that read
// names can be translated back once the original-source assembler
// has finished with the short, table-friendly IDs it requires as
// string-graph vertex labels.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"
)

var (
	mapFn = flag.String("map-out", "", "specify file to receive the <new-id> <original-header> map (required)")
	width = flag.Int("width", 7, "specify the zero-padded width of the assigned numeric IDs")
)

func main() {
	flag.Parse()
	if *mapFn == "" {
		flag.Usage()
		os.Exit(1)
	}

	mapOut, err := os.Create(*mapFn)
	if err != nil {
		log.Fatalf("failed to create %q: %v", *mapFn, err)
	}
	defer mapOut.Close()

	sc := seqio.NewScanner(fasta.NewReader(os.Stdin, linear.NewSeq("", nil, alphabet.DNA)))
	var n int
	for sc.Next() {
		s := sc.Seq().(*linear.Seq)
		desc := s.Desc
		if desc == "" {
			desc = s.ID
		} else {
			desc = fmt.Sprintf("%s %s", s.ID, desc)
		}

		newID := fmt.Sprintf("%0*d", *width, n)
		n++
		fmt.Fprintf(mapOut, "%s\t%s\n", newID, desc)

		s.ID = newID
		s.Desc = ""
		fmt.Printf("%60a\n", s)
	}
	if err := sc.Error(); err != nil {
		log.Fatalf("error during fasta read: %v", err)
	}
}
