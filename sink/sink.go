// Package sink persists analysis results in a structured, re-loadable
// form. Records are plain field-mapping trees (integers, floats, digit-
// keyed histograms), so the on-disk format is ordinary JSON — one file per
// record, named after what it describes.
package sink

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/alexshd/benfordscan"
)

// TripleRecord is the persisted form of one scored parameter triple.
type TripleRecord struct {
	ParamA        int64                  `json:"param_a"`
	ParamB        int64                  `json:"param_b"`
	ParamC        int64                  `json:"param_c"`
	RangeStart    int64                  `json:"range_start"`
	RangeEnd      int64                  `json:"range_end"`
	DigitCounts   *benfordscan.Histogram `json:"digit_counts"`
	TotalSamples  uint64                 `json:"total_samples"`
	ChiSquared    *float64               `json:"chi_squared_statistic,omitempty"` // nil when undefined (zero samples)
	PValue        float64                `json:"p_value"`
	MAD           float64                `json:"mad"`
	KSStatistic   float64                `json:"ks_d_max"`
	Dmix          float64                `json:"dmix_score"`
	MixingSpeed   *float64               `json:"mixing_speed,omitempty"` // nil when undefined
	ElapsedMillis int64                  `json:"execution_time_ms"`
}

// NewTripleRecord converts a scan result into its persisted form.
// Failure records have no statistics to persist; callers should not
// convert them.
func NewTripleRecord(r benfordscan.TripleResult) TripleRecord {
	rec := TripleRecord{
		ParamA:        r.Params.A,
		ParamB:        r.Params.B,
		ParamC:        r.Params.C,
		RangeStart:    r.Start,
		RangeEnd:      r.End,
		DigitCounts:   r.Histogram,
		TotalSamples:  r.Conformity.TotalSamples,
		PValue:        r.Conformity.PValue,
		MAD:           r.Conformity.MAD,
		KSStatistic:   r.Conformity.KSStatistic,
		Dmix:          r.Conformity.Dmix,
		ElapsedMillis: r.Elapsed.Milliseconds(),
	}
	if !math.IsNaN(r.Conformity.ChiSquared) {
		stat := r.Conformity.ChiSquared
		rec.ChiSquared = &stat
	}
	if r.Conformity.MixingSpeedDefined {
		speed := r.Conformity.MixingSpeed
		rec.MixingSpeed = &speed
	}
	return rec
}

// BatchRecord is the persisted form of one completed batch of starting
// values for a single triple.
type BatchRecord struct {
	ParamA         int64                  `json:"param_a"`
	ParamB         int64                  `json:"param_b"`
	ParamC         int64                  `json:"param_c"`
	BatchStart     int64                  `json:"batch_start"`
	BatchEnd       int64                  `json:"batch_end"`
	ProcessedCount int64                  `json:"processed_count"`
	DigitCounts    *benfordscan.Histogram `json:"digit_counts"`
	TotalDigits    uint64                 `json:"total_digits"`
	ElapsedMillis  int64                  `json:"execution_time_ms"`
}

// Sink accepts result records and persists them.
type Sink interface {
	WriteTriple(ctx context.Context, rec TripleRecord) error
	WriteBatch(ctx context.Context, rec BatchRecord) error
}

// JSON writes one pretty-printed JSON file per record into a directory.
type JSON struct {
	dir string
}

// NewJSON creates the output directory if needed and returns a sink
// writing into it.
func NewJSON(dir string) (*JSON, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	return &JSON{dir: dir}, nil
}

// WriteTriple persists a triple record as triple_<a>_<b>_<c>.json.
func (s *JSON) WriteTriple(ctx context.Context, rec TripleRecord) error {
	name := fmt.Sprintf("triple_%d_%d_%d.json", rec.ParamA, rec.ParamB, rec.ParamC)
	return s.write(ctx, name, rec)
}

// WriteBatch persists a batch record as batch_<start>_<end>.json.
func (s *JSON) WriteBatch(ctx context.Context, rec BatchRecord) error {
	name := fmt.Sprintf("batch_%d_%d.json", rec.BatchStart, rec.BatchEnd)
	return s.write(ctx, name, rec)
}

// write replaces the file atomically: a crashed writer leaves either the
// old record or the new one, never a torn file.
func (s *JSON) write(ctx context.Context, name string, v any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}

	tmp := filepath.Join(s.dir, name+".tmp")
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := os.Rename(tmp, filepath.Join(s.dir, name)); err != nil {
		return fmt.Errorf("publish %s: %w", name, err)
	}
	return nil
}

// ReadTriple loads a previously persisted triple record.
func (s *JSON) ReadTriple(a, b, c int64) (TripleRecord, error) {
	var rec TripleRecord
	name := fmt.Sprintf("triple_%d_%d_%d.json", a, b, c)
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		return rec, fmt.Errorf("read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, &rec); err != nil {
		return rec, fmt.Errorf("decode %s: %w", name, err)
	}
	return rec, nil
}

// Discard is a Sink that drops every record; useful when persistence is
// disabled.
type Discard struct{}

func (Discard) WriteTriple(context.Context, TripleRecord) error { return nil }
func (Discard) WriteBatch(context.Context, BatchRecord) error   { return nil }
