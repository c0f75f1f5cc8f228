// Copyright ©2016 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// dedupreads groups the subreads of a raw PacBio fasta file by their
// ZMW hole number (the "<movie>/<hole>" prefix before the final
// "/<start>_<end>" subread coordinates) and splits hole names into two
// lists: holes sequenced once, safe to feed straight into the
// assembler's preads pipeline, and holes with more than one subread
// pass, which a consensus step upstream of this module should collapse
// to a single read before overlap computation so the same molecule is
// not counted as independent coverage at both ends of a read.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"
)

var (
	in = flag.String("in", "", "specify input fasta file (required)")
)

func main() {
	flag.Parse()
	if *in == "" {
		flag.Usage()
		os.Exit(1)
	}

	f, err := os.Open(*in)
	if err != nil {
		log.Fatalf("failed to open %q: %v", *in, err)
	}
	defer f.Close()

	names := make(map[string][]string)

	sc := seqio.NewScanner(fasta.NewReader(f, linear.NewSeq("", nil, alphabet.DNAgapped)))
	for sc.Next() {
		seq := sc.Seq().(*linear.Seq)
		idx := strings.LastIndex(seq.ID, "/")
		if idx < 0 {
			names[seq.ID] = append(names[seq.ID], "")
			continue
		}
		names[seq.ID[:idx]] = append(names[seq.ID[:idx]], seq.ID[idx+1:])
	}
	if err := sc.Error(); err != nil {
		log.Fatalf("error during fasta read: %v", err)
	}
	f.Close()

	base := filepath.Base(*in)
	single, err := os.Create(base + ".single-pass.text")
	if err != nil {
		log.Fatalf("failed to create %q: %v", base+".single-pass.text", err)
	}
	defer single.Close()
	multi, err := os.Create(base + ".multi-pass.text")
	if err != nil {
		log.Fatalf("failed to create %q: %v", base+".multi-pass.text", err)
	}
	defer multi.Close()
	for name, coords := range names {
		switch len(coords) {
		case 0:
		case 1:
			fmt.Fprintln(single, name)
		default:
			fmt.Fprintf(multi, "%s\t%v\n", name, coords)
		}
	}
}
