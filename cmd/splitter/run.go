package main

import (
	"github.com/spf13/cobra"
)

var runFlags struct {
	inputDir      string
	outputDir     string
	minSilenceLen int
	silenceThresh float64
	minSec        float64
	maxSec        float64
	idealPadSec   float64
	fadeMs        int
	gapMs         int
	workers       int
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Split every WAV file in a directory using flag-driven parameters",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		// Flags override config-file values only when set explicitly
		flags := cmd.Flags()
		if flags.Changed("input-dir") {
			cfg.Paths.InputDir = runFlags.inputDir
		}
		if flags.Changed("output-dir") {
			cfg.Paths.OutputDir = runFlags.outputDir
		}
		if flags.Changed("min-silence-len") {
			cfg.Split.MinSilenceLen = runFlags.minSilenceLen
		}
		if flags.Changed("silence-thresh") {
			cfg.Split.SilenceThresh = runFlags.silenceThresh
		}
		if flags.Changed("min-sec") {
			cfg.Assembly.MinSec = runFlags.minSec
		}
		if flags.Changed("max-sec") {
			cfg.Assembly.MaxSec = runFlags.maxSec
		}
		if flags.Changed("ideal-pad-sec") {
			cfg.Assembly.IdealPadSec = runFlags.idealPadSec
		}
		if flags.Changed("fade-ms") {
			cfg.Split.FadeMs = runFlags.fadeMs
		}
		if flags.Changed("gap-ms") {
			cfg.Assembly.GapMs = runFlags.gapMs
		}
		if flags.Changed("workers") {
			cfg.Batch.Workers = runFlags.workers
		}

		return runBatch(cfg, initLogger(cfg.Logging))
	},
}

func init() {
	flags := runCmd.Flags()
	flags.StringVar(&runFlags.inputDir, "input-dir", "", "Directory containing input WAV files")
	flags.StringVar(&runFlags.outputDir, "output-dir", "", "Directory to write chunk files into")
	flags.IntVar(&runFlags.minSilenceLen, "min-silence-len", 300, "Minimum silent-run length that splits a phrase (ms)")
	flags.Float64Var(&runFlags.silenceThresh, "silence-thresh", -40, "Level below which audio counts as silent (dBFS)")
	flags.Float64Var(&runFlags.minSec, "min-sec", 1, "Minimum chunk duration before padding is forced (s)")
	flags.Float64Var(&runFlags.maxSec, "max-sec", 5, "Maximum chunk duration (s)")
	flags.Float64Var(&runFlags.idealPadSec, "ideal-pad-sec", 4, "Padding target for short chunks (s)")
	flags.IntVar(&runFlags.fadeMs, "fade-ms", 10, "Fade duration at every cut or merge boundary (ms)")
	flags.IntVar(&runFlags.gapMs, "gap-ms", 100, "Silence inserted between merged segments (ms)")
	flags.IntVar(&runFlags.workers, "workers", 0, "Worker pool size, 0 for available CPUs")
}
