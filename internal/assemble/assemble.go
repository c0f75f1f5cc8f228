// Package assemble wires the filtered overlap stream through the
// string-graph, unitig and bundle stages into contigs, mirroring the
// driver in falcon_kit/mains/ovlp_to_graph.py's ovlp_to_graph(args).
package assemble

import (
	"path/filepath"
	"sort"

	"github.com/kortschak/falconsg/internal/bundle"
	"github.com/kortschak/falconsg/internal/contig"
	"github.com/kortschak/falconsg/internal/outputs"
	"github.com/kortschak/falconsg/internal/overlap"
	"github.com/kortschak/falconsg/internal/stringgraph"
	"github.com/kortschak/falconsg/internal/unitig"
)

// Config controls one assembly run.
type Config struct {
	OverlapFile                string
	OutDir                     string
	LFC                        bool
	DisableChimerBridgeRemoval bool
	CtgPrefix                  string
}

// Run executes the full overlap-to-contig pipeline and writes every
// intermediate and final table file under cfg.OutDir.
func Run(cfg Config) error {
	records, err := overlap.ReadFile(cfg.OverlapFile)
	if err != nil {
		return err
	}

	sg := stringgraph.Build(records)
	sgResult := stringgraph.Generate(sg, cfg.LFC, cfg.DisableChimerBridgeRemoval)

	if err := outputs.WriteLinesIfChanged(filepath.Join(cfg.OutDir, "sg_edges_list"), sgResult.SGEdgesLines); err != nil {
		return err
	}
	if err := outputs.WriteLinesIfChanged(filepath.Join(cfg.OutDir, "chimers_nodes"), sgResult.ChimerNodes); err != nil {
		return err
	}

	ugKeys, ugEdges, circularPath := unitig.IdentifySimplePaths(sgResult.EdgeData)
	if err := unitig.WriteUtgData0(filepath.Join(cfg.OutDir, "utg_data0"), ugKeys, ugEdges); err != nil {
		return err
	}

	ug := unitig.NewGraph(ugKeys, ugEdges)

	ug2 := unitig.IdentifySpurs(ug, 50000)
	ug2 = unitig.RemoveDupSimplePath(ug2, ugEdges)

	compoundPaths := bundle.ConstructCompoundPaths(ug2, ugEdges)
	edgesToRemove, err := bundle.IdentifyEdgesToRemove(filepath.Join(cfg.OutDir, "c_path"), compoundPaths, ug2)
	if err != nil {
		return err
	}
	for _, k := range edgesToRemove.Keys() {
		ug2.RemoveEdge(k)
		if e, ok := ugEdges[k]; ok && e.Type != "spur" {
			e.Type = "contained"
			ugEdges[k] = e
			ug2.SetEdge(k, e)
		}
	}

	for _, k := range compoundPaths.Keys() {
		c, _ := compoundPaths.Get(k)
		e := unitig.Edge{Length: c.Length, Score: c.Score, Bundle: c.BundleEdges, Type: "compound"}
		ugEdges[k] = e
		ug2.AddEdge(k, e)
	}

	shortEdgesToRemove := bundle.IdentifyShortEdgesToRemove(ug2, ugEdges)
	for _, k := range shortEdgesToRemove.Keys() {
		ug2.RemoveEdge(k)
		if e, ok := ugEdges[k]; ok {
			e.Type = "repeat_bridge"
			ugEdges[k] = e
			ug2.SetEdge(k, e)
		}
	}

	finalUg := unitig.IdentifySpurs(ug2, 80000)

	if err := unitig.WriteUtgData(filepath.Join(cfg.OutDir, "utg_data"), finalUg.Edges(), ugEdges); err != nil {
		return err
	}

	cPaths := contig.ConstructCPathFromUtgs(finalUg, ugEdges, sgResult.BestIn)
	sort.SliceStable(cPaths, func(i, j int) bool { return cPaths[i].Length > cPaths[j].Length })

	contigs := contig.ExtractContigs(finalUg, ugEdges, cPaths, circularPath, cfg.CtgPrefix)

	if err := contig.WriteCtgPaths(filepath.Join(cfg.OutDir, "ctg_paths"), contigs); err != nil {
		return err
	}

	return nil
}
