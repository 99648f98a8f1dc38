package audio

import (
	"math"
	"testing"
)

// constantBuffer builds a buffer whose every sample holds the given value.
func constantBuffer(t *testing.T, durationMS, sampleRate, channels int, value int16) *Buffer {
	t.Helper()

	frames := durationMS * sampleRate / 1000
	samples := make([]int16, frames*channels)
	for i := range samples {
		samples[i] = value
	}

	buf, err := NewBuffer(samples, sampleRate, channels)
	if err != nil {
		t.Fatalf("NewBuffer failed: %v", err)
	}
	return buf
}

func TestNewBuffer(t *testing.T) {
	samples := make([]int16, 8000)
	buf, err := NewBuffer(samples, 8000, 1)
	if err != nil {
		t.Fatalf("NewBuffer failed: %v", err)
	}

	if buf == nil {
		t.Fatal("NewBuffer returned nil")
	}

	if buf.SampleRate() != 8000 {
		t.Errorf("Expected sample rate 8000, got %d", buf.SampleRate())
	}

	if buf.Channels() != 1 {
		t.Errorf("Expected 1 channel, got %d", buf.Channels())
	}

	if buf.DurationMS() != 1000 {
		t.Errorf("Expected duration 1000 ms, got %d", buf.DurationMS())
	}
}

func TestNewBufferValidation(t *testing.T) {
	if _, err := NewBuffer(make([]int16, 10), 0, 1); err == nil {
		t.Error("Expected error for zero sample rate")
	}

	if _, err := NewBuffer(make([]int16, 10), 8000, 0); err == nil {
		t.Error("Expected error for zero channels")
	}

	if _, err := NewBuffer(make([]int16, 11), 8000, 2); err == nil {
		t.Error("Expected error for odd sample count with 2 channels")
	}
}

func TestNewBufferCopiesInput(t *testing.T) {
	samples := []int16{100, 200, 300, 400}
	buf, err := NewBuffer(samples, 8000, 1)
	if err != nil {
		t.Fatalf("NewBuffer failed: %v", err)
	}

	samples[0] = 999
	if buf.Samples()[0] != 100 {
		t.Error("Buffer should own a copy of the input samples")
	}
}

func TestSilence(t *testing.T) {
	buf := Silence(250, 8000, 2)

	if buf.DurationMS() != 250 {
		t.Errorf("Expected duration 250 ms, got %d", buf.DurationMS())
	}

	if buf.Channels() != 2 {
		t.Errorf("Expected 2 channels, got %d", buf.Channels())
	}

	for i, sample := range buf.Samples() {
		if sample != 0 {
			t.Fatalf("Expected silence, found sample %d at index %d", sample, i)
		}
	}

	if !math.IsInf(buf.DBFS(), -1) {
		t.Errorf("Expected -Inf dBFS for silence, got %f", buf.DBFS())
	}
}

func TestSlice(t *testing.T) {
	buf := constantBuffer(t, 1000, 8000, 1, 1000)

	mid := buf.Slice(250, 750)
	if mid.DurationMS() != 500 {
		t.Errorf("Expected slice duration 500 ms, got %d", mid.DurationMS())
	}

	// Out-of-range offsets clamp instead of failing
	all := buf.Slice(-100, 5000)
	if all.DurationMS() != 1000 {
		t.Errorf("Expected clamped slice duration 1000 ms, got %d", all.DurationMS())
	}

	empty := buf.Slice(600, 400)
	if empty.DurationMS() != 0 {
		t.Errorf("Expected empty slice for inverted range, got %d ms", empty.DurationMS())
	}
}

func TestSliceDoesNotAliasSource(t *testing.T) {
	buf := constantBuffer(t, 100, 8000, 1, 1000)

	part := buf.Slice(0, 50)
	part.Samples()[0] = 0

	if buf.Samples()[0] != 1000 {
		t.Error("Slice should copy samples, not alias the source buffer")
	}
}

func TestAppend(t *testing.T) {
	a := constantBuffer(t, 300, 8000, 1, 500)
	b := constantBuffer(t, 200, 8000, 1, 700)

	joined, err := a.Append(b)
	if err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	if joined.DurationMS() != 500 {
		t.Errorf("Expected joined duration 500 ms, got %d", joined.DurationMS())
	}

	if joined.Samples()[0] != 500 {
		t.Errorf("Expected first sample 500, got %d", joined.Samples()[0])
	}

	lastSample := joined.Samples()[len(joined.Samples())-1]
	if lastSample != 700 {
		t.Errorf("Expected last sample 700, got %d", lastSample)
	}
}

func TestAppendFormatMismatch(t *testing.T) {
	a := constantBuffer(t, 100, 8000, 1, 500)
	b := constantBuffer(t, 100, 16000, 1, 500)
	c := constantBuffer(t, 100, 8000, 2, 500)

	if _, err := a.Append(b); err == nil {
		t.Error("Expected error for sample rate mismatch")
	}

	if _, err := a.Append(c); err == nil {
		t.Error("Expected error for channel count mismatch")
	}
}

func TestFadeIn(t *testing.T) {
	buf := constantBuffer(t, 1000, 8000, 1, 10000)
	faded := buf.FadeIn(100)

	if faded.DurationMS() != buf.DurationMS() {
		t.Errorf("Fade must not change duration: %d vs %d", faded.DurationMS(), buf.DurationMS())
	}

	if faded.Samples()[0] != 0 {
		t.Errorf("Expected first sample 0 after fade-in, got %d", faded.Samples()[0])
	}

	// Beyond the fade region the signal is untouched
	idx := 200 * 8 // 200 ms at 8 kHz
	if faded.Samples()[idx] != 10000 {
		t.Errorf("Expected untouched sample 10000 at 200 ms, got %d", faded.Samples()[idx])
	}

	// The original buffer is unmodified
	if buf.Samples()[0] != 10000 {
		t.Error("FadeIn modified its receiver")
	}
}

func TestFadeOut(t *testing.T) {
	buf := constantBuffer(t, 1000, 8000, 1, 10000)
	faded := buf.FadeOut(100)

	last := faded.Samples()[len(faded.Samples())-1]
	if last != 0 {
		t.Errorf("Expected last sample 0 after fade-out, got %d", last)
	}

	if faded.Samples()[0] != 10000 {
		t.Errorf("Expected head untouched by fade-out, got %d", faded.Samples()[0])
	}
}

func TestFadeLongerThanBuffer(t *testing.T) {
	buf := constantBuffer(t, 50, 8000, 1, 10000)

	faded := buf.FadeIn(500)
	if faded.DurationMS() != 50 {
		t.Errorf("Expected duration 50 ms, got %d", faded.DurationMS())
	}

	if faded.Samples()[0] != 0 {
		t.Errorf("Expected first sample 0, got %d", faded.Samples()[0])
	}
}

func TestPadTo(t *testing.T) {
	buf := constantBuffer(t, 300, 8000, 1, 1000)

	padded := buf.PadTo(4000)
	if padded.DurationMS() != 4000 {
		t.Errorf("Expected padded duration 4000 ms, got %d", padded.DurationMS())
	}

	// Original content preserved, padding is true silence
	if padded.Samples()[0] != 1000 {
		t.Errorf("Expected original content at head, got %d", padded.Samples()[0])
	}

	tail := padded.Samples()[len(padded.Samples())-1]
	if tail != 0 {
		t.Errorf("Expected silent padding at tail, got %d", tail)
	}
}

func TestPadToNeverTruncates(t *testing.T) {
	buf := constantBuffer(t, 5000, 8000, 1, 1000)

	padded := buf.PadTo(4000)
	if padded.DurationMS() != 5000 {
		t.Errorf("PadTo must not truncate: expected 5000 ms, got %d", padded.DurationMS())
	}
}

func TestRMS(t *testing.T) {
	buf := constantBuffer(t, 100, 8000, 1, 8000)

	rms := buf.RMS()
	if math.Abs(rms-8000) > 0.001 {
		t.Errorf("Expected RMS 8000 for constant signal, got %f", rms)
	}

	empty := Silence(0, 8000, 1)
	if empty.RMS() != 0 {
		t.Errorf("Expected RMS 0 for empty buffer, got %f", empty.RMS())
	}
}

func TestDBFS(t *testing.T) {
	buf := constantBuffer(t, 100, 8000, 1, 8000)

	// 20*log10(8000/32768) ~= -12.25 dBFS
	dbfs := buf.DBFS()
	if math.Abs(dbfs-(-12.25)) > 0.1 {
		t.Errorf("Expected about -12.25 dBFS, got %f", dbfs)
	}
}

func TestStereoDuration(t *testing.T) {
	// 8000 interleaved samples at 8 kHz stereo are only 500 ms
	buf, err := NewBuffer(make([]int16, 8000), 8000, 2)
	if err != nil {
		t.Fatalf("NewBuffer failed: %v", err)
	}

	if buf.DurationMS() != 500 {
		t.Errorf("Expected 500 ms for stereo buffer, got %d", buf.DurationMS())
	}

	if buf.Frames() != 4000 {
		t.Errorf("Expected 4000 frames, got %d", buf.Frames())
	}
}
