// Copyright ©2015 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// sgasm builds a string graph from filtered read overlaps, reduces it
// to a set of unitigs and compound paths, and extracts contigs.
//
// The program is based on the original python code in falcon_kit's
// mains/ovlp_to_graph.py.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/kortschak/falconsg/internal/assemble"
)

var (
	overlapFile                = flag.String("overlap-file", "", "filtered overlap file (required)")
	outDir                     = flag.String("out-dir", ".", "directory to write the graph and contig tables to")
	lfc                        = flag.Bool("lfc", false, "use local-flow-consistent repeat edge resolution instead of best-overlap")
	disableChimerBridgeRemoval = flag.Bool("disable-chimer-bridge-removal", false, "skip the chimeric read bridge removal pass")
	ctgPrefix                  = flag.String("ctg-prefix", "", "prefix for contig names")
)

func main() {
	flag.Parse()
	if *overlapFile == "" {
		fmt.Fprintln(os.Stderr, "invalid argument: must have an overlap-file set")
		flag.Usage()
		os.Exit(1)
	}

	cfg := assemble.Config{
		OverlapFile:                *overlapFile,
		OutDir:                     *outDir,
		LFC:                        *lfc,
		DisableChimerBridgeRemoval: *disableChimerBridgeRemoval,
		CtgPrefix:                  *ctgPrefix,
	}
	if err := assemble.Run(cfg); err != nil {
		log.Fatalf("sgasm: %v", err)
	}
}
