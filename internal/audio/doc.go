// Package audio implements the segmentation pipeline and its PCM primitives.
// It provides immutable PCM-16 buffers with slicing, fades and RMS queries,
// a WAV codec, and the three reshaping stages: silence-boundary
// segmentation, quiet-point splitting and greedy chunk assembly.
package audio
