// Package batch runs one parameter triple's starting-value range as
// parallel, checkpointed batches.
//
// Parallelism is safe because trajectory generation is a pure function of
// (start, params, cap) and histograms over disjoint sub-ranges merge by
// element-wise addition. The only shared mutable state is the processed-
// value checkpoint, which lives behind the checkpoint.Store contract:
// read a snapshot before work, write the union after, nothing in-process.
package batch

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/alexshd/benfordscan"
	"github.com/alexshd/benfordscan/checkpoint"
	"github.com/alexshd/benfordscan/hardware"
	"github.com/alexshd/benfordscan/sink"
)

// Config controls a batch run for a single triple.
type Config struct {
	Params     benfordscan.Params
	Start, End int64 // starting-value range, inclusive
	Generator  benfordscan.GeneratorConfig

	// Advisor supplies worker count and batch sizing. The zero value
	// means "probe the machine".
	Advisor hardware.Advisor

	// Store is the processed-value checkpoint. Nil runs without
	// checkpointing (an in-memory store that starts empty).
	Store checkpoint.Store

	// Sink receives per-batch and final per-triple records. Nil discards.
	Sink sink.Sink

	// Logger receives progress records. Nil falls back to slog.Default().
	Logger *slog.Logger
}

// Result is the aggregate outcome of a batch run.
type Result struct {
	Params     benfordscan.Params
	Start, End int64
	Histogram  *benfordscan.Histogram
	Conformity benfordscan.Conformity

	Processed     int64 // starting values newly processed this run
	SkippedStarts int64 // starting values skipped via the checkpoint
	Completed     int   // batches merged into the result
	Failed        int   // batches dropped (logged, never fatal)
	Elapsed       time.Duration
}

// span is one batch's inclusive sub-range of starting values.
type span struct {
	start, end int64
}

// Run processes the configured range in parallel batches and returns the
// merged analysis.
//
// Failure semantics follow the scan contract: a failed batch is logged
// and counted, and the run continues — but a batch whose checkpoint save
// fails is not merged, because keeping its digits without marking its
// starts processed would double-count them on the next run. Loading the
// checkpoint is the one fatal path; there is no safe way to proceed
// without knowing what is already done.
func Run(ctx context.Context, cfg Config) (Result, error) {
	started := time.Now()

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	store := cfg.Store
	if store == nil {
		store = checkpoint.NewMemory()
	}
	resultSink := cfg.Sink
	if resultSink == nil {
		resultSink = sink.Discard{}
	}
	advisor := cfg.Advisor
	if advisor.Workers < 1 {
		advisor = hardware.Detect(hardware.DefaultConfig())
	}

	result := Result{
		Params: cfg.Params,
		Start:  cfg.Start,
		End:    cfg.End,
	}
	if cfg.Start > cfg.End {
		result.Histogram = &benfordscan.Histogram{}
		result.Conformity = benfordscan.Analyze(result.Histogram)
		return result, nil
	}

	processed, err := store.Load(ctx)
	if err != nil {
		return result, fmt.Errorf("load checkpoint: %w", err)
	}

	batchSize := advisor.BatchSize(cfg.Generator.MaxIterations)
	spans := splitRange(cfg.Start, cfg.End, batchSize)
	logger.Info("batch run starting",
		"params", cfg.Params.String(),
		"range_start", cfg.Start, "range_end", cfg.End,
		"batches", len(spans), "batch_size", batchSize,
		"workers", advisor.Workers,
		"checkpointed", len(processed))

	var (
		mu       sync.Mutex
		combined = &benfordscan.Histogram{}
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(advisor.Workers)

	for _, sp := range spans {
		g.Go(func() error {
			out, err := processSpan(gctx, sp, cfg, processed, store, resultSink)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err() // cancellation, not a batch failure
				}
				result.Failed++
				logger.Warn("batch failed, continuing",
					"batch_start", sp.start, "batch_end", sp.end, "err", err)
				return nil
			}
			combined.Merge(out.hist)
			result.Processed += out.processed
			result.SkippedStarts += out.skipped
			result.Completed++
			logger.Debug("batch complete",
				"batch_start", sp.start, "batch_end", sp.end,
				"processed", out.processed, "digits", out.hist.Total())
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return result, err
	}

	result.Histogram = combined
	result.Conformity = benfordscan.Analyze(combined)
	result.Elapsed = time.Since(started)

	record := sink.NewTripleRecord(benfordscan.TripleResult{
		Params:     cfg.Params,
		Start:      cfg.Start,
		End:        cfg.End,
		Histogram:  combined,
		Conformity: result.Conformity,
		Elapsed:    result.Elapsed,
	})
	if err := resultSink.WriteTriple(ctx, record); err != nil {
		logger.Warn("failed to persist triple record", "err", err)
	}

	logger.Info("batch run complete",
		"params", cfg.Params.String(),
		"samples", result.Conformity.TotalSamples,
		"mad", result.Conformity.MAD,
		"completed", result.Completed, "failed", result.Failed,
		"elapsed", result.Elapsed)
	return result, nil
}

// spanOutput is one batch's private accumulation, merged under the
// runner's lock after the batch commits its checkpoint update.
type spanOutput struct {
	hist      *benfordscan.Histogram
	processed int64
	skipped   int64
}

func processSpan(ctx context.Context, sp span, cfg Config, already checkpoint.Set, store checkpoint.Store, resultSink sink.Sink) (spanOutput, error) {
	out := spanOutput{hist: &benfordscan.Histogram{}}
	fresh := make(checkpoint.Set)
	spanStarted := time.Now()

	for n := sp.start; n <= sp.end; n++ {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		if n == 1 {
			continue
		}
		if already.Contains(n) {
			out.skipped++
			continue
		}
		trajectory := benfordscan.Generate(n, cfg.Params, cfg.Generator)
		out.hist.ObserveTrajectory(trajectory)
		fresh[n] = struct{}{}
		out.processed++
	}

	// Union the new entries before reporting success: a batch whose
	// checkpoint write is lost must not count as done.
	if err := store.Save(ctx, fresh); err != nil {
		return out, fmt.Errorf("save checkpoint: %w", err)
	}

	rec := sink.BatchRecord{
		ParamA: cfg.Params.A, ParamB: cfg.Params.B, ParamC: cfg.Params.C,
		BatchStart:     sp.start,
		BatchEnd:       sp.end,
		ProcessedCount: out.processed,
		DigitCounts:    out.hist,
		TotalDigits:    out.hist.Total(),
		ElapsedMillis:  time.Since(spanStarted).Milliseconds(),
	}
	if err := resultSink.WriteBatch(ctx, rec); err != nil {
		return out, fmt.Errorf("persist batch record: %w", err)
	}
	return out, nil
}

// splitRange cuts [start, end] into consecutive spans of at most size
// values each.
func splitRange(start, end, size int64) []span {
	if size < 1 {
		size = 1
	}
	var spans []span
	for cur := start; cur <= end; cur += size {
		last := cur + size - 1
		if last > end {
			last = end
		}
		spans = append(spans, span{start: cur, end: last})
	}
	return spans
}
