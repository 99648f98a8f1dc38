package audio

import "fmt"

// ProcessParams carries the full parameter set for one file's pipeline run.
// A value is built once from configuration and shared read-only across
// worker goroutines.
type ProcessParams struct {
	MinSilenceLenMS int     // Minimum silent-run length to qualify as a boundary
	SilenceThreshDB float64 // Level below which audio counts as silent (dBFS)
	MinMS           int     // Minimum chunk duration before padding is forced
	MaxMS           int     // Maximum chunk duration
	PadMS           int     // Padding target for short chunks
	FadeMS          int     // Fade duration at cuts and merges
	GapMS           int     // Silence inserted between merged segments
	SearchRangeMS   int     // Quiet-point search window around the midpoint
	SearchStepMS    int     // Quiet-point scan step
}

// Validate checks that the parameters describe a runnable pipeline.
func (p ProcessParams) Validate() error {
	if p.MinSilenceLenMS < 1 {
		return fmt.Errorf("min silence length must be at least 1 ms, got %d", p.MinSilenceLenMS)
	}

	if p.MinMS <= 0 {
		return fmt.Errorf("min chunk duration must be positive, got %d ms", p.MinMS)
	}

	if p.MaxMS <= p.MinMS {
		return fmt.Errorf("max chunk duration (%d ms) must be greater than min (%d ms)", p.MaxMS, p.MinMS)
	}

	if p.PadMS < p.MinMS {
		return fmt.Errorf("padding target (%d ms) must be at least the min chunk duration (%d ms)", p.PadMS, p.MinMS)
	}

	if p.FadeMS < 0 {
		return fmt.Errorf("fade duration cannot be negative, got %d ms", p.FadeMS)
	}

	if p.GapMS < 0 {
		return fmt.Errorf("merge gap cannot be negative, got %d ms", p.GapMS)
	}

	if p.SearchRangeMS < 1 {
		return fmt.Errorf("search range must be at least 1 ms, got %d", p.SearchRangeMS)
	}

	if p.SearchStepMS < 1 || p.SearchStepMS > p.SearchRangeMS {
		return fmt.Errorf("search step must be between 1 and the search range, got %d", p.SearchStepMS)
	}

	return nil
}

// Process runs the full three-stage pipeline over one file's audio:
// silence-boundary segmentation, quiet-point splitting of oversized
// segments, then greedy merge-or-pad assembly. Segments and chunks keep
// their original temporal order throughout. An empty or entirely silent
// input resolves to zero chunks, not an error.
func Process(buf *Buffer, p ProcessParams) ([]*Buffer, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("invalid pipeline parameters: %w", err)
	}

	phrases := SplitOnSilence(buf, p.MinSilenceLenMS, p.SilenceThreshDB)
	if len(phrases) == 0 {
		return nil, nil
	}

	segments := make([]*Buffer, 0, len(phrases))
	for _, phrase := range phrases {
		if phrase.DurationMS() > p.MaxMS {
			segments = append(segments, SplitAtQuietPoints(phrase, p.MaxMS, p.FadeMS, p.SearchRangeMS, p.SearchStepMS)...)
		} else {
			segments = append(segments, phrase)
		}
	}

	return AssembleChunks(segments, AssembleParams{
		MinMS:  p.MinMS,
		MaxMS:  p.MaxMS,
		PadMS:  p.PadMS,
		FadeMS: p.FadeMS,
		GapMS:  p.GapMS,
	})
}
