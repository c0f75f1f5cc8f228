// Copyright ©2015 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// shard splits a preads fasta file into a number of smaller fasta
// files no greater in total sequence length than a defined threshold
// (a single read longer than the threshold is written to a shard of
// its own), so that pairwise overlap computation can be fanned out across
// workers ahead of ovlpfilter. It also writes a plain-text fofn
// listing every shard path it produced, in the same
// whitespace-delimited format internal/fofn.Resolve reads.
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
	in       = flag.String("in", "", "specifies the input preads fasta file (required)")
	outFofn  = flag.String("out-fofn", "", "specifies the fofn file to list the produced shards (required)")
	cut      = flag.Int("cut", 0, "specifies the minimum read length for inclusion in a shard")
	shardLen = flag.Int("shard-len", 100e6, "specifies the sum of sequence length in a shard")
)

func main() {
	flag.Parse()
	if *in == "" || *outFofn == "" {
		flag.Usage()
		os.Exit(1)
	}

	inFile, err := os.Open(*in)
	if err != nil {
		log.Fatalf("failed to open input: %v", err)
	}
	defer inFile.Close()
	base := filepath.Base(*in)

	sc := seqio.NewScanner(fasta.NewReader(inFile, linear.NewSeq("", nil, alphabet.DNA)))

	var paths []string
	var i, size int
	path := fmt.Sprintf("%s-%d.fa", base, i)
	out, err := os.Create(path)
	if err != nil {
		log.Fatalf("failed to open shard %d: %v", i, err)
	}
	paths = append(paths, path)

	for sc.Next() {
		if sc.Seq().Len() < *cut {
			continue
		}
		if size != 0 && size+sc.Seq().Len() > *shardLen {
			if err := out.Close(); err != nil {
				log.Fatalf("failed to close shard %d: %v", i, err)
			}
			i++
			size = 0
			path = fmt.Sprintf("%s-%d.fa", base, i)
			out, err = os.Create(path)
			if err != nil {
				log.Fatalf("failed to open shard %d: %v", i, err)
			}
			paths = append(paths, path)
		}
		size += sc.Seq().Len()
		fmt.Fprintf(out, "%60a\n", sc.Seq())
	}
	if sc.Error() != nil {
		log.Fatal(sc.Error())
	}
	if err := out.Close(); err != nil {
		log.Fatalf("failed to close shard %d: %v", i, err)
	}

	if err := os.WriteFile(*outFofn, []byte(strings.Join(paths, "\n")+"\n"), 0o644); err != nil {
		log.Fatalf("failed to write fofn %q: %v", *outFofn, err)
	}
}
