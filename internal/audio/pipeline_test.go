package audio

import (
	"testing"
)

func defaultProcessParams() ProcessParams {
	return ProcessParams{
		MinSilenceLenMS: 300,
		SilenceThreshDB: -40,
		MinMS:           1000,
		MaxMS:           5000,
		PadMS:           4000,
		FadeMS:          10,
		GapMS:           100,
		SearchRangeMS:   1000,
		SearchStepMS:    50,
	}
}

func TestProcessSilentInput(t *testing.T) {
	chunks, err := Process(Silence(2000, 8000, 1), defaultProcessParams())
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}

	if len(chunks) != 0 {
		t.Errorf("Expected zero chunks for a silent input, got %d", len(chunks))
	}
}

func TestProcessEmptyInput(t *testing.T) {
	chunks, err := Process(Silence(0, 8000, 1), defaultProcessParams())
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}

	if len(chunks) != 0 {
		t.Errorf("Expected zero chunks for an empty input, got %d", len(chunks))
	}
}

func TestProcessInvalidParams(t *testing.T) {
	p := defaultProcessParams()
	p.MaxMS = p.MinMS // max must exceed min

	if _, err := Process(Silence(1000, 8000, 1), p); err == nil {
		t.Error("Expected error for invalid parameters")
	}
}

func TestProcessSpeechWithPauses(t *testing.T) {
	// Three phrases separated by long pauses; middle phrase is oversized
	input := joinBuffers(t,
		constantBuffer(t, 1200, 8000, 1, 8000),
		Silence(500, 8000, 1),
		constantBuffer(t, 7000, 8000, 1, 8000),
		Silence(500, 8000, 1),
		constantBuffer(t, 300, 8000, 1, 8000),
	)

	p := defaultProcessParams()
	chunks, err := Process(input, p)
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}

	if len(chunks) == 0 {
		t.Fatal("Expected chunks for speech input")
	}

	for i, chunk := range chunks {
		duration := chunk.DurationMS()

		if duration > p.MaxMS+p.GapMS {
			t.Errorf("Chunk %d exceeds limit: %d ms", i, duration)
		}

		if duration < p.MinMS {
			t.Errorf("Chunk %d shorter than minimum: %d ms", i, duration)
		}
	}
}

func TestProcessTrailingShortPhrasePadded(t *testing.T) {
	// A single 300 ms phrase cannot merge with anything and is padded
	input := joinBuffers(t,
		Silence(400, 8000, 1),
		constantBuffer(t, 300, 8000, 1, 8000),
		Silence(400, 8000, 1),
	)

	chunks, err := Process(input, defaultProcessParams())
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}

	if len(chunks) != 1 {
		t.Fatalf("Expected 1 chunk, got %d", len(chunks))
	}

	if chunks[0].DurationMS() != 4000 {
		t.Errorf("Expected chunk padded to 4000 ms, got %d", chunks[0].DurationMS())
	}
}

func TestProcessPreservesFormat(t *testing.T) {
	input := constantBuffer(t, 2500, 44100, 2, 8000)

	chunks, err := Process(input, defaultProcessParams())
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}

	if len(chunks) != 1 {
		t.Fatalf("Expected 1 chunk, got %d", len(chunks))
	}

	if chunks[0].SampleRate() != 44100 {
		t.Errorf("Expected sample rate 44100 preserved, got %d", chunks[0].SampleRate())
	}

	if chunks[0].Channels() != 2 {
		t.Errorf("Expected 2 channels preserved, got %d", chunks[0].Channels())
	}
}
