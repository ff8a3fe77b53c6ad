package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/alexshd/benfordscan"
	"github.com/alexshd/benfordscan/sink"
)

func runScan(cmd *cobra.Command, args []string) error {
	ctx, stop := signalContext()
	defer stop()

	cfg := benfordscan.DefaultScanConfig()
	cfg.Center = config.params()
	cfg.Start = config.RangeStart
	cfg.End = config.RangeEnd
	cfg.Generator = config.generator()
	if config.CubeSide > 0 {
		cfg.Side = config.CubeSide
	}
	cfg.Holes = cubeTrivialSet(cfg.Center, cfg.Side)

	report, err := benfordscan.Scan(ctx, cfg)
	if err != nil && len(report.Results) == 0 {
		return err
	}
	if err != nil {
		slog.Warn("scan interrupted, reporting partial results", "err", err)
	}

	if config.OutputDir != "" {
		out, sinkErr := sink.NewJSON(config.OutputDir)
		if sinkErr != nil {
			return sinkErr
		}
		for _, r := range report.Results {
			if r.Err != nil {
				continue
			}
			if wErr := out.WriteTriple(ctx, sink.NewTripleRecord(r)); wErr != nil {
				return wErr
			}
		}
	}

	printRanked("by conformity (best MAD first)", benfordscan.TopByConformity(report.Results, flagTopN))
	printRanked("by mixing speed (fastest first)", benfordscan.TopByMixingSpeed(report.Results, flagTopN))

	slog.Info("scan summary",
		"scored", len(report.Results)-report.Failed,
		"skipped", report.Skipped,
		"failed", report.Failed)
	return err
}

// cubeTrivialSet seeds the hole set from the cube's own axis ranges.
func cubeTrivialSet(center benfordscan.Params, side int) benfordscan.HoleSet {
	half := int64(side-1) / 2
	axis := func(c int64) benfordscan.ParamRange {
		return benfordscan.ParamRange{Min: c - half, Max: c + half}
	}
	return benfordscan.TrivialSet(axis(center.A), axis(center.B), axis(center.C))
}

func printRanked(title string, ranked []benfordscan.TripleResult) {
	fmt.Printf("\nTop %d %s\n", len(ranked), title)
	for i, r := range ranked {
		line := fmt.Sprintf("%2d. %-14s samples=%-8d mad=%.6f p=%.4f ks=%.4f",
			i+1, r.Params, r.Conformity.TotalSamples,
			r.Conformity.MAD, r.Conformity.PValue, r.Conformity.KSStatistic)
		if r.Conformity.MixingSpeedDefined {
			line += fmt.Sprintf(" speed=%.2f", r.Conformity.MixingSpeed)
		}
		fmt.Println(line)
	}
}
