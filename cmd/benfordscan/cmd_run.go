package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/alexshd/benfordscan"
	"github.com/alexshd/benfordscan/sink"
)

// signalContext cancels on Ctrl-C so long sweeps exit with whatever
// partial results they have.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func runSingle(cmd *cobra.Command, args []string) error {
	ctx, stop := signalContext()
	defer stop()

	params := config.params()
	gen := config.generator()

	if benfordscan.IsTrivial(params) {
		return fmt.Errorf("%s is structurally trivial, nothing to analyze", params)
	}

	slog.Info("analyzing triple",
		"params", params.String(),
		"range_start", config.RangeStart, "range_end", config.RangeEnd,
		"max_iterations", gen.MaxIterations)

	started := time.Now()
	hist := &benfordscan.Histogram{}
	for n := config.RangeStart; n <= config.RangeEnd; n++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if n == 1 {
			continue
		}
		hist.ObserveTrajectory(benfordscan.Generate(n, params, gen))
	}

	record := sink.NewTripleRecord(benfordscan.TripleResult{
		Params:     params,
		Start:      config.RangeStart,
		End:        config.RangeEnd,
		Histogram:  hist,
		Conformity: benfordscan.Analyze(hist),
		Elapsed:    time.Since(started),
	})
	if config.OutputDir != "" {
		out, err := sink.NewJSON(config.OutputDir)
		if err != nil {
			return err
		}
		if err := out.WriteTriple(ctx, record); err != nil {
			return err
		}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(record)
}
