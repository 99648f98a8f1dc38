package batch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/yesiampapa/rvc-split-audio/internal/audio"
	"github.com/yesiampapa/rvc-split-audio/internal/metrics"
)

// Scheduler distributes independent per-file pipeline runs across a
// fixed-size worker pool. Each file is decoded, processed and exported in
// isolation; one file's failure is recorded and never aborts the batch.
type Scheduler struct {
	params    audio.ProcessParams
	outputDir string
	workers   int
	logger    *slog.Logger
	metrics   *metrics.Metrics // optional
}

// Result summarizes one batch run.
type Result struct {
	RunID          string
	FilesProcessed int
	FilesFailed    int
	ChunksExported int
	Failures       []FileError
}

// FileError records a per-file failure.
type FileError struct {
	Path string
	Err  error
}

func (e FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

// NewScheduler creates a scheduler. workers <= 0 sizes the pool to the
// available CPU parallelism; m may be nil when metrics are disabled.
func NewScheduler(params audio.ProcessParams, outputDir string, workers int, logger *slog.Logger, m *metrics.Metrics) *Scheduler {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	return &Scheduler{
		params:    params,
		outputDir: outputDir,
		workers:   workers,
		logger:    logger,
		metrics:   m,
	}
}

// Run processes every file in the list and returns the batch summary.
// Cancelling the context stops dispatching new files; files already in
// flight run to completion.
func (s *Scheduler) Run(ctx context.Context, files []string) Result {
	result := Result{RunID: uuid.NewString()}
	if len(files) == 0 {
		return result
	}

	s.logger.Info("Batch starting",
		slog.String("run_id", result.RunID),
		slog.Int("files", len(files)),
		slog.Int("workers", s.workers),
	)

	jobs := make(chan string)

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)

	for i := 0; i < s.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for path := range jobs {
				chunks, err := s.processFile(result.RunID, path)

				mu.Lock()
				if err != nil {
					result.FilesFailed++
					result.Failures = append(result.Failures, FileError{Path: path, Err: err})
				} else {
					result.FilesProcessed++
					result.ChunksExported += chunks
				}
				mu.Unlock()
			}
		}()
	}

dispatch:
	for _, path := range files {
		select {
		case jobs <- path:
		case <-ctx.Done():
			s.logger.Warn("Batch cancelled, draining in-flight files",
				slog.String("run_id", result.RunID))
			break dispatch
		}
	}
	close(jobs)

	wg.Wait()

	s.logger.Info("Batch finished",
		slog.String("run_id", result.RunID),
		slog.Int("files_processed", result.FilesProcessed),
		slog.Int("files_failed", result.FilesFailed),
		slog.Int("chunks_exported", result.ChunksExported),
	)

	return result
}

// processFile runs the full pipeline for one file and exports its chunks.
func (s *Scheduler) processFile(runID, path string) (int, error) {
	jobID := uuid.NewString()
	started := time.Now()

	logger := s.logger.With(
		slog.String("run_id", runID),
		slog.String("job_id", jobID),
		slog.String("file", path),
	)

	data, err := os.ReadFile(path)
	if err != nil {
		logger.Error("Failed to read input file", slog.String("error", err.Error()))
		s.recordFailure()
		return 0, fmt.Errorf("failed to read %s: %w", path, err)
	}

	buf, err := audio.DecodeWAV(data)
	if err != nil {
		logger.Error("Failed to decode input file", slog.String("error", err.Error()))
		s.recordFailure()
		return 0, err
	}

	chunks, err := audio.Process(buf, s.params)
	if err != nil {
		logger.Error("Pipeline failed", slog.String("error", err.Error()))
		s.recordFailure()
		return 0, err
	}

	if len(chunks) == 0 {
		logger.Info("No chunks produced (input silent or empty)",
			slog.Int("input_duration_ms", buf.DurationMS()))
		s.recordSuccess(buf, started)
		return 0, nil
	}

	exported, err := exportChunks(s.outputDir, path, chunks)
	if err != nil {
		logger.Error("Failed to export chunks", slog.String("error", err.Error()))
		s.recordFailure()
		return len(exported), err
	}

	for _, chunk := range exported {
		logger.Info("Exported chunk",
			slog.String("path", chunk.Path),
			slog.Int("duration_ms", chunk.DurationMS),
		)

		if s.metrics != nil {
			s.metrics.RecordChunkExported(float64(chunk.DurationMS)/1000, chunk.SizeBytes)
		}
	}

	logger.Info("File processed",
		slog.Int("input_duration_ms", buf.DurationMS()),
		slog.Int("chunks", len(exported)),
		slog.Duration("elapsed", time.Since(started)),
	)

	s.recordSuccess(buf, started)
	return len(exported), nil
}

func (s *Scheduler) recordSuccess(buf *audio.Buffer, started time.Time) {
	if s.metrics != nil {
		s.metrics.RecordFileProcessed(float64(buf.DurationMS())/1000, time.Since(started).Seconds())
	}
}

func (s *Scheduler) recordFailure() {
	if s.metrics != nil {
		s.metrics.RecordFileFailed()
	}
}
