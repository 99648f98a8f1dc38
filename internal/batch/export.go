package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/yesiampapa/rvc-split-audio/internal/audio"
)

// ChunkPath builds the output path for one chunk: for an input file with
// base name B, chunk i (1-based) is written as B_partNNN.wav with a
// zero-padded 3-digit index.
func ChunkPath(outputDir, srcPath string, index int) string {
	base := filepath.Base(srcPath)
	base = strings.TrimSuffix(base, filepath.Ext(base))

	return filepath.Join(outputDir, fmt.Sprintf("%s_part%03d.wav", base, index))
}

// exportChunks writes each chunk as a WAV file under outputDir, preserving
// the input's container format. It returns the per-chunk byte sizes so the
// caller can report and instrument them.
func exportChunks(outputDir, srcPath string, chunks []*audio.Buffer) ([]exportedChunk, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory %s: %w", outputDir, err)
	}

	exported := make([]exportedChunk, 0, len(chunks))
	for i, chunk := range chunks {
		path := ChunkPath(outputDir, srcPath, i+1)

		data, err := audio.EncodeWAV(chunk)
		if err != nil {
			return exported, fmt.Errorf("failed to encode chunk %d of %s: %w", i+1, srcPath, err)
		}

		if err := os.WriteFile(path, data, 0644); err != nil {
			return exported, fmt.Errorf("failed to write %s: %w", path, err)
		}

		exported = append(exported, exportedChunk{
			Path:       path,
			DurationMS: chunk.DurationMS(),
			SizeBytes:  len(data),
		})
	}

	return exported, nil
}

// exportedChunk describes one written chunk file.
type exportedChunk struct {
	Path       string
	DurationMS int
	SizeBytes  int
}

// ListWAVFiles enumerates the WAV files directly inside dir, matching the
// extension case-insensitively. The result is sorted by name.
func ListWAVFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read input directory %s: %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		if strings.EqualFold(filepath.Ext(entry.Name()), ".wav") {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}

	return files, nil
}
