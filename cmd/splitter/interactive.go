package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yesiampapa/rvc-split-audio/internal/config"
)

// interactiveSilenceThresh is the default threshold for the prompt-driven
// entry point, deliberately more sensitive than the flag-driven default.
const interactiveSilenceThresh = -60.0

var interactiveCmd = &cobra.Command{
	Use:   "interactive",
	Short: "Collect parameters through prompts, then split",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		cfg.Split.SilenceThresh = interactiveSilenceThresh

		if err := promptConfig(cfg, bufio.NewScanner(cmd.InOrStdin())); err != nil {
			return err
		}

		return runBatch(cfg, initLogger(cfg.Logging))
	},
}

// promptConfig fills the configuration from stdin. Empty answers keep the
// shown default.
func promptConfig(cfg *config.Config, in *bufio.Scanner) error {
	var err error

	cfg.Paths.InputDir = promptString(in, "Input directory", cfg.Paths.InputDir)
	cfg.Paths.OutputDir = promptString(in, "Output directory", cfg.Paths.OutputDir)

	if cfg.Split.MinSilenceLen, err = promptInt(in, "Minimum silence length (ms)", cfg.Split.MinSilenceLen); err != nil {
		return err
	}
	if cfg.Split.SilenceThresh, err = promptFloat(in, "Silence threshold (dBFS)", cfg.Split.SilenceThresh); err != nil {
		return err
	}
	if cfg.Assembly.MinSec, err = promptFloat(in, "Minimum chunk duration (s)", cfg.Assembly.MinSec); err != nil {
		return err
	}
	if cfg.Assembly.MaxSec, err = promptFloat(in, "Maximum chunk duration (s)", cfg.Assembly.MaxSec); err != nil {
		return err
	}
	if cfg.Split.FadeMs, err = promptInt(in, "Fade duration (ms)", cfg.Split.FadeMs); err != nil {
		return err
	}
	if cfg.Assembly.GapMs, err = promptInt(in, "Merge gap (ms)", cfg.Assembly.GapMs); err != nil {
		return err
	}
	if cfg.Batch.Workers, err = promptInt(in, "Workers (0 = auto)", cfg.Batch.Workers); err != nil {
		return err
	}

	return nil
}

func promptString(in *bufio.Scanner, label, def string) string {
	fmt.Fprintf(os.Stderr, "%s [%s]: ", label, def)
	if !in.Scan() {
		return def
	}

	answer := strings.TrimSpace(in.Text())
	if answer == "" {
		return def
	}
	return answer
}

func promptInt(in *bufio.Scanner, label string, def int) (int, error) {
	answer := promptString(in, label, strconv.Itoa(def))
	if answer == strconv.Itoa(def) {
		return def, nil
	}

	value, err := strconv.Atoi(answer)
	if err != nil {
		return 0, fmt.Errorf("invalid value for %s: %q", label, answer)
	}
	return value, nil
}

func promptFloat(in *bufio.Scanner, label string, def float64) (float64, error) {
	defText := strconv.FormatFloat(def, 'g', -1, 64)

	answer := promptString(in, label, defText)
	if answer == defText {
		return def, nil
	}

	value, err := strconv.ParseFloat(answer, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid value for %s: %q", label, answer)
	}
	return value, nil
}
