package audio

import (
	"fmt"
	"math"
)

// Buffer holds interleaved PCM-16 audio samples together with the sample
// rate and channel count they were recorded at. Buffers are immutable by
// convention: every operation returns a new Buffer and never modifies the
// receiver, so pipeline stages can slice and recombine audio freely without
// sharing mutable state.
type Buffer struct {
	samples    []int16 // Interleaved PCM-16 samples
	sampleRate int     // Samples per second per channel
	channels   int     // Number of interleaved channels
}

// NewBuffer creates a buffer from interleaved PCM-16 samples.
func NewBuffer(samples []int16, sampleRate, channels int) (*Buffer, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("sample rate must be positive, got %d", sampleRate)
	}

	if channels <= 0 {
		return nil, fmt.Errorf("channel count must be positive, got %d", channels)
	}

	if len(samples)%channels != 0 {
		return nil, fmt.Errorf("sample count %d is not a multiple of channel count %d", len(samples), channels)
	}

	owned := make([]int16, len(samples))
	copy(owned, samples)

	return &Buffer{
		samples:    owned,
		sampleRate: sampleRate,
		channels:   channels,
	}, nil
}

// Silence creates a buffer of true silence (zero samples) with the given
// duration and format.
func Silence(durationMS, sampleRate, channels int) *Buffer {
	if durationMS < 0 {
		durationMS = 0
	}

	frames := durationMS * sampleRate / 1000

	return &Buffer{
		samples:    make([]int16, frames*channels),
		sampleRate: sampleRate,
		channels:   channels,
	}
}

// Samples returns the interleaved PCM-16 samples.
func (b *Buffer) Samples() []int16 {
	return b.samples
}

// SampleRate returns the sample rate in Hz.
func (b *Buffer) SampleRate() int {
	return b.sampleRate
}

// Channels returns the number of interleaved channels.
func (b *Buffer) Channels() int {
	return b.channels
}

// Frames returns the number of sample frames (samples per channel).
func (b *Buffer) Frames() int {
	return len(b.samples) / b.channels
}

// DurationMS returns the buffer duration in whole milliseconds.
func (b *Buffer) DurationMS() int {
	return int(int64(b.Frames()) * 1000 / int64(b.sampleRate))
}

// frameOffset converts a millisecond offset into a frame index, clamped to
// the buffer bounds.
func (b *Buffer) frameOffset(ms int) int {
	frame := int(int64(ms) * int64(b.sampleRate) / 1000)
	if frame < 0 {
		frame = 0
	}
	if frame > b.Frames() {
		frame = b.Frames()
	}
	return frame
}

// Slice returns a copy of the audio between two millisecond offsets.
// Offsets beyond the buffer bounds are clamped; a degenerate range yields
// an empty buffer with the same format.
func (b *Buffer) Slice(startMS, endMS int) *Buffer {
	startFrame := b.frameOffset(startMS)
	endFrame := b.frameOffset(endMS)
	if endFrame < startFrame {
		endFrame = startFrame
	}

	out := make([]int16, (endFrame-startFrame)*b.channels)
	copy(out, b.samples[startFrame*b.channels:endFrame*b.channels])

	return &Buffer{
		samples:    out,
		sampleRate: b.sampleRate,
		channels:   b.channels,
	}
}

// Append concatenates another buffer onto this one, producing a new buffer.
// Both buffers must share the same sample rate and channel count.
func (b *Buffer) Append(other *Buffer) (*Buffer, error) {
	if other.sampleRate != b.sampleRate {
		return nil, fmt.Errorf("sample rate mismatch: %d vs %d", b.sampleRate, other.sampleRate)
	}

	if other.channels != b.channels {
		return nil, fmt.Errorf("channel count mismatch: %d vs %d", b.channels, other.channels)
	}

	out := make([]int16, 0, len(b.samples)+len(other.samples))
	out = append(out, b.samples...)
	out = append(out, other.samples...)

	return &Buffer{
		samples:    out,
		sampleRate: b.sampleRate,
		channels:   b.channels,
	}, nil
}

// FadeIn returns a copy with a linear gain ramp from zero to unity applied
// over durationMS at the head of the buffer.
func (b *Buffer) FadeIn(durationMS int) *Buffer {
	return b.fade(durationMS, true)
}

// FadeOut returns a copy with a linear gain ramp from unity to zero applied
// over durationMS at the tail of the buffer.
func (b *Buffer) FadeOut(durationMS int) *Buffer {
	return b.fade(durationMS, false)
}

func (b *Buffer) fade(durationMS int, fadeIn bool) *Buffer {
	out := make([]int16, len(b.samples))
	copy(out, b.samples)

	fadeFrames := b.frameOffset(durationMS)
	totalFrames := b.Frames()
	if fadeFrames > totalFrames {
		fadeFrames = totalFrames
	}

	for i := 0; i < fadeFrames; i++ {
		gain := float64(i) / float64(fadeFrames)

		frame := i
		if !fadeIn {
			// Tail ramp mirrors the head ramp: zero gain at the very last frame
			frame = totalFrames - 1 - i
		}

		for ch := 0; ch < b.channels; ch++ {
			idx := frame*b.channels + ch
			out[idx] = int16(float64(out[idx]) * gain)
		}
	}

	return &Buffer{
		samples:    out,
		sampleRate: b.sampleRate,
		channels:   b.channels,
	}
}

// PadTo returns a copy extended with trailing true silence up to targetMS.
// Buffers already at or beyond the target are returned as an unmodified
// copy; padding never truncates.
func (b *Buffer) PadTo(targetMS int) *Buffer {
	if targetMS <= b.DurationMS() {
		return b.Slice(0, b.DurationMS())
	}

	targetFrames := int(int64(targetMS) * int64(b.sampleRate) / 1000)
	if targetFrames < b.Frames() {
		targetFrames = b.Frames()
	}

	out := make([]int16, targetFrames*b.channels)
	copy(out, b.samples)

	return &Buffer{
		samples:    out,
		sampleRate: b.sampleRate,
		channels:   b.channels,
	}
}

// RMS returns the root-mean-square amplitude of the buffer in raw sample
// units. An empty buffer has an RMS of zero.
func (b *Buffer) RMS() float64 {
	if len(b.samples) == 0 {
		return 0
	}

	var energy float64
	for _, sample := range b.samples {
		energy += float64(sample) * float64(sample)
	}

	return math.Sqrt(energy / float64(len(b.samples)))
}

// DBFS returns the buffer level in decibels relative to full scale.
// Digital silence yields negative infinity.
func (b *Buffer) DBFS() float64 {
	rms := b.RMS()
	if rms == 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(rms/32768.0)
}
