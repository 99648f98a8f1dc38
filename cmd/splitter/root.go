package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/yesiampapa/rvc-split-audio/internal/audio"
	"github.com/yesiampapa/rvc-split-audio/internal/batch"
	"github.com/yesiampapa/rvc-split-audio/internal/config"
	"github.com/yesiampapa/rvc-split-audio/internal/metrics"
	"github.com/yesiampapa/rvc-split-audio/internal/server"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   serviceName,
	Short: "Re-segments recorded WAV files into bounded-duration chunks",
	Long: `rvc-split-audio cuts long recordings on natural pauses, splits oversized
segments at quiet points and merges or pads short segments, so every
output chunk falls within a configured duration window.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to YAML configuration file")
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(interactiveCmd)
}

// loadConfig returns the defaults, layered with the config file when one
// was given. Command flags apply on top of the returned value.
func loadConfig() (*config.Config, error) {
	if configPath == "" {
		return config.Default(), nil
	}

	return config.Load(configPath)
}

// pipelineParams converts the configuration into the pipeline parameter set.
func pipelineParams(cfg *config.Config) audio.ProcessParams {
	return audio.ProcessParams{
		MinSilenceLenMS: cfg.Split.MinSilenceLen,
		SilenceThreshDB: cfg.Split.SilenceThresh,
		MinMS:           cfg.Assembly.MinChunkMS(),
		MaxMS:           cfg.Assembly.MaxChunkMS(),
		PadMS:           cfg.Assembly.PadTargetMS(),
		FadeMS:          cfg.Split.FadeMs,
		GapMS:           cfg.Assembly.GapMs,
		SearchRangeMS:   cfg.Split.SearchRangeMs,
		SearchStepMS:    cfg.Split.SearchStepMs,
	}
}

// runBatch wires the scheduler, metrics endpoint and signal handling and
// executes one batch over the configured input directory.
func runBatch(cfg *config.Config, logger *slog.Logger) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger.Info("Starting batch",
		slog.String("service", serviceName),
		slog.String("version", serviceVersion),
		slog.String("input_dir", cfg.Paths.InputDir),
		slog.String("output_dir", cfg.Paths.OutputDir),
		slog.Int("min_silence_len", cfg.Split.MinSilenceLen),
		slog.Float64("silence_thresh", cfg.Split.SilenceThresh),
		slog.Float64("min_sec", cfg.Assembly.MinSec),
		slog.Float64("max_sec", cfg.Assembly.MaxSec),
		slog.Int("gap_ms", cfg.Assembly.GapMs),
		slog.Int("fade_ms", cfg.Split.FadeMs),
		slog.Int("workers", cfg.Batch.Workers),
	)

	var appMetrics *metrics.Metrics
	var metricsServer *server.MetricsServer
	if cfg.Metrics.Enabled {
		appMetrics = metrics.NewMetrics()
		metricsServer = server.NewMetricsServer(cfg.Metrics, logger)
		if err := metricsServer.Start(); err != nil {
			return fmt.Errorf("failed to start metrics server: %w", err)
		}
	}

	files, err := batch.ListWAVFiles(cfg.Paths.InputDir)
	if err != nil {
		return err
	}

	if len(files) == 0 {
		logger.Warn("No WAV files found in input directory",
			slog.String("input_dir", cfg.Paths.InputDir))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	scheduler := batch.NewScheduler(pipelineParams(cfg), cfg.Paths.OutputDir, cfg.Batch.Workers, logger, appMetrics)
	result := scheduler.Run(ctx, files)

	if metricsServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := metricsServer.Stop(shutdownCtx); err != nil {
			logger.Error("Error stopping metrics server", slog.String("error", err.Error()))
		}
	}

	if result.FilesFailed > 0 {
		for _, failure := range result.Failures {
			logger.Error("File failed", slog.String("file", failure.Path), slog.String("error", failure.Err.Error()))
		}
		return fmt.Errorf("%d of %d files failed", result.FilesFailed, result.FilesFailed+result.FilesProcessed)
	}

	return nil
}

// initLogger creates the structured logger from the logging configuration.
func initLogger(cfg config.LoggingConfig) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level == slog.LevelDebug,
	}

	var output *os.File
	switch cfg.Output {
	case "stderr":
		output = os.Stderr
	case "stdout", "":
		output = os.Stdout
	default:
		file, err := os.OpenFile(cfg.Output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log file %s: %v, falling back to stdout\n", cfg.Output, err)
			output = os.Stdout
		} else {
			output = file
		}
	}

	var handler slog.Handler
	switch cfg.Format {
	case "json":
		handler = slog.NewJSONHandler(output, opts)
	default:
		handler = slog.NewTextHandler(output, opts)
	}

	return slog.New(handler)
}
