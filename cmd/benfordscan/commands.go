package main

import (
	"github.com/spf13/cobra"
)

var (
	configPath string
	verbose    bool

	// Per-command overrides; negative sentinel means "not set on the
	// command line, use the config file value".
	flagParamA     int64
	flagParamB     int64
	flagParamC     int64
	flagStart      int64
	flagEnd        int64
	flagSide       int
	flagTopN       int
	flagWorkers    int
	flagForce      bool
	flagInMemory   bool
	flagOutputDir  string
	flagCheckpoint string

	config FileConfig

	rootCmd = &cobra.Command{
		Use:   "benfordscan",
		Short: "Benford's Law conformity scanner for generalized Collatz maps",
		Long: `benfordscan iterates generalized Collatz maps x -> x/a | b*x+c and
measures how closely the leading digits of the trajectories follow
Benford's Law.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			initLogging(verbose)
			var err error
			config, err = loadFileConfig(configPath)
			if err != nil {
				return err
			}
			applyOverrides(cmd)
			return nil
		},
	}

	runCmd = &cobra.Command{
		Use:   "run",
		Short: "Analyze a single parameter triple sequentially",
		RunE:  runSingle,
	}

	scanCmd = &cobra.Command{
		Use:   "scan",
		Short: "Scan a parameter cube and rank triples by conformity",
		RunE:  runScan,
	}

	batchCmd = &cobra.Command{
		Use:   "batch",
		Short: "Analyze one triple in parallel with checkpointing",
		RunE:  runBatch,
	}

	initConfigCmd = &cobra.Command{
		Use:   "init-config",
		Short: "Write a default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInitConfig(configPath, flagForce)
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "benfordscan.json", "Path to the JSON configuration file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	for _, cmd := range []*cobra.Command{runCmd, scanCmd, batchCmd} {
		cmd.Flags().Int64Var(&flagParamA, "a", 0, "Divisor parameter a (scan: cube center)")
		cmd.Flags().Int64Var(&flagParamB, "b", 0, "Multiplier parameter b (scan: cube center)")
		cmd.Flags().Int64Var(&flagParamC, "c", 0, "Offset parameter c (scan: cube center)")
		cmd.Flags().Int64Var(&flagStart, "start", 0, "First starting value (inclusive)")
		cmd.Flags().Int64Var(&flagEnd, "end", 0, "Last starting value (inclusive)")
		cmd.Flags().StringVar(&flagOutputDir, "out", "", "Directory for JSON result records")
	}

	scanCmd.Flags().IntVar(&flagSide, "side", 0, "Odd cube side length")
	scanCmd.Flags().IntVar(&flagTopN, "top", 10, "How many top-ranked triples to print")

	batchCmd.Flags().IntVar(&flagWorkers, "workers", 0, "Worker count override (0 = probe)")
	batchCmd.Flags().StringVar(&flagCheckpoint, "checkpoint", "", "Checkpoint database directory")
	batchCmd.Flags().BoolVar(&flagInMemory, "in-memory", false, "Keep the checkpoint in memory only")

	initConfigCmd.Flags().BoolVar(&flagForce, "force", false, "Overwrite an existing config file")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(initConfigCmd)
}

// applyOverrides folds explicitly-set flags into the loaded config so
// the handlers read from one place.
func applyOverrides(cmd *cobra.Command) {
	set := func(name string, fn func()) {
		if f := cmd.Flags().Lookup(name); f != nil && f.Changed {
			fn()
		}
	}
	set("a", func() { config.ParamA = flagParamA })
	set("b", func() { config.ParamB = flagParamB })
	set("c", func() { config.ParamC = flagParamC })
	set("start", func() { config.RangeStart = flagStart })
	set("end", func() { config.RangeEnd = flagEnd })
	set("side", func() { config.CubeSide = flagSide })
	set("out", func() { config.OutputDir = flagOutputDir })
	set("workers", func() { config.MaxWorkers = flagWorkers })
	set("checkpoint", func() { config.CheckpointPath = flagCheckpoint })
}
