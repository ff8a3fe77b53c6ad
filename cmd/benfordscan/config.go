package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/alexshd/benfordscan"
)

// FileConfig is the on-disk configuration. Every field has a working
// default so a fresh `init-config` file runs as-is.
type FileConfig struct {
	ParamA int64 `json:"param_a"`
	ParamB int64 `json:"param_b"`
	ParamC int64 `json:"param_c"`

	RangeStart int64 `json:"range_start"`
	RangeEnd   int64 `json:"range_end"`

	CubeSide      int `json:"cube_side"`
	MaxIterations int `json:"max_iterations"`

	CheckpointPath string `json:"checkpoint_path"`
	OutputDir      string `json:"output_dir"`

	// Zero means "let the hardware probe decide".
	MaxWorkers     int   `json:"max_workers"`
	MaxMemoryBytes int64 `json:"max_memory_bytes"`
}

func defaultFileConfig() FileConfig {
	scan := benfordscan.DefaultScanConfig()
	return FileConfig{
		ParamA:         scan.Center.A,
		ParamB:         scan.Center.B,
		ParamC:         scan.Center.C,
		RangeStart:     scan.Start,
		RangeEnd:       scan.End,
		CubeSide:       scan.Side,
		MaxIterations:  benfordscan.DefaultGeneratorConfig().MaxIterations,
		CheckpointPath: "checkpoints",
		OutputDir:      "results",
	}
}

// loadFileConfig reads path if it exists; a missing file yields the
// defaults so the CLI works with no setup at all.
func loadFileConfig(path string) (FileConfig, error) {
	cfg := defaultFileConfig()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func (c FileConfig) params() benfordscan.Params {
	return benfordscan.Params{A: c.ParamA, B: c.ParamB, C: c.ParamC}
}

func (c FileConfig) generator() benfordscan.GeneratorConfig {
	gen := benfordscan.DefaultGeneratorConfig()
	if c.MaxIterations > 0 {
		gen.MaxIterations = c.MaxIterations
	}
	return gen
}

func runInitConfig(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
	}
	data, err := json.MarshalIndent(defaultFileConfig(), "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}
