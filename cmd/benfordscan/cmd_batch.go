package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/alexshd/benfordscan"
	"github.com/alexshd/benfordscan/batch"
	"github.com/alexshd/benfordscan/checkpoint"
	"github.com/alexshd/benfordscan/hardware"
	"github.com/alexshd/benfordscan/sink"
)

func runBatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signalContext()
	defer stop()

	params := config.params()
	if benfordscan.IsTrivial(params) {
		return fmt.Errorf("%s is structurally trivial, nothing to analyze", params)
	}

	hwCfg := hardware.DefaultConfig()
	hwCfg.MaxWorkers = config.MaxWorkers
	if config.MaxMemoryBytes > 0 {
		hwCfg.MaxMemoryBytes = uint64(config.MaxMemoryBytes)
	}
	advisor := hardware.Detect(hwCfg)

	store, closeStore, err := openStore(params)
	if err != nil {
		return err
	}
	defer closeStore()

	outDir := config.OutputDir
	if outDir == "" {
		outDir = "results"
	}
	out, err := sink.NewJSON(outDir)
	if err != nil {
		return err
	}

	res, err := batch.Run(ctx, batch.Config{
		Params:    params,
		Start:     config.RangeStart,
		End:       config.RangeEnd,
		Generator: config.generator(),
		Advisor:   advisor,
		Store:     store,
		Sink:      out,
	})
	if err != nil {
		return err
	}

	slog.Info("batch run finished",
		"processed", res.Processed,
		"skipped", res.SkippedStarts,
		"completed", res.Completed,
		"failed", res.Failed)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(sink.NewTripleRecord(benfordscan.TripleResult{
		Params:     res.Params,
		Start:      res.Start,
		End:        res.End,
		Histogram:  res.Histogram,
		Conformity: res.Conformity,
		Elapsed:    res.Elapsed,
	}))
}

// openStore picks the checkpoint backend. Each triple gets its own
// database directory so concurrent runs over different triples never
// share state.
func openStore(params benfordscan.Params) (checkpoint.Store, func(), error) {
	if flagInMemory {
		b, err := checkpoint.OpenBadger(checkpoint.InMemoryConfig())
		if err != nil {
			return nil, nil, err
		}
		return b, func() { _ = b.Close() }, nil
	}
	dir := filepath.Join(config.CheckpointPath,
		fmt.Sprintf("triple_%d_%d_%d", params.A, params.B, params.C))
	b, err := checkpoint.OpenBadger(checkpoint.DefaultConfig(dir))
	if err != nil {
		return nil, nil, fmt.Errorf("open checkpoint store: %w", err)
	}
	return b, func() { _ = b.Close() }, nil
}
