// Package metrics defines the Prometheus instrumentation for batch runs.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics contains all Prometheus metrics for the audio splitter.
type Metrics struct {
	// File-level metrics
	FilesProcessed prometheus.Counter
	FilesFailed    prometheus.Counter
	FileDuration   prometheus.Histogram
	ProcessingTime prometheus.Histogram

	// Chunk metrics
	ChunksExported prometheus.Counter
	ChunkDuration  prometheus.Histogram
	BytesWritten   prometheus.Counter
}

// NewMetrics creates and registers all Prometheus metrics.
func NewMetrics() *Metrics {
	return &Metrics{
		FilesProcessed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "splitter_files_processed_total",
			Help: "Total number of input files processed successfully",
		}),
		FilesFailed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "splitter_files_failed_total",
			Help: "Total number of input files that failed to process",
		}),
		FileDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "splitter_file_duration_seconds",
			Help:    "Duration of decoded input files",
			Buckets: prometheus.ExponentialBuckets(1, 2, 12), // 1s to ~68 minutes
		}),
		ProcessingTime: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "splitter_file_processing_duration_seconds",
			Help:    "Wall time spent processing one file",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 12), // 10ms to ~40s
		}),
		ChunksExported: promauto.NewCounter(prometheus.CounterOpts{
			Name: "splitter_chunks_exported_total",
			Help: "Total number of chunk files written",
		}),
		ChunkDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "splitter_chunk_duration_seconds",
			Help:    "Duration of exported chunks",
			Buckets: prometheus.LinearBuckets(0.5, 0.5, 12), // 0.5s to 6s
		}),
		BytesWritten: promauto.NewCounter(prometheus.CounterOpts{
			Name: "splitter_bytes_written_total",
			Help: "Total bytes of WAV data written",
		}),
	}
}

// RecordFileProcessed records a successfully processed input file.
func (m *Metrics) RecordFileProcessed(fileDurationSeconds, processingSeconds float64) {
	m.FilesProcessed.Inc()
	m.FileDuration.Observe(fileDurationSeconds)
	m.ProcessingTime.Observe(processingSeconds)
}

// RecordFileFailed increments the failed-files counter.
func (m *Metrics) RecordFileFailed() {
	m.FilesFailed.Inc()
}

// RecordChunkExported records one exported chunk.
func (m *Metrics) RecordChunkExported(durationSeconds float64, sizeBytes int) {
	m.ChunksExported.Inc()
	m.ChunkDuration.Observe(durationSeconds)
	m.BytesWritten.Add(float64(sizeBytes))
}
