package audio

// analysisStepMS is the granularity at which the segmenter classifies audio
// as silent or non-silent. Silence run lengths are resolved to this step.
const analysisStepMS = 10

// SplitOnSilence splits a buffer into its non-silent spans. A span of at
// least minSilenceLenMS whose level stays below silenceThreshDB counts as
// silence and is removed entirely, including at the edges of the buffer.
// An input that is silent throughout yields an empty slice; an input with
// no qualifying silence yields a single span covering the whole buffer.
func SplitOnSilence(buf *Buffer, minSilenceLenMS int, silenceThreshDB float64) []*Buffer {
	if buf == nil || buf.DurationMS() == 0 {
		return nil
	}

	step := analysisStepMS
	if minSilenceLenMS > 0 && minSilenceLenMS < step {
		step = minSilenceLenMS
	}
	if step < 1 {
		step = 1
	}

	duration := buf.DurationMS()

	// Classify each analysis window, then turn runs of silent windows that
	// are long enough into removed regions.
	type span struct{ start, end int }
	var (
		silences []span
		runStart = -1
	)

	flushRun := func(end int) {
		if runStart < 0 {
			return
		}
		if end-runStart >= minSilenceLenMS {
			silences = append(silences, span{runStart, end})
		}
		runStart = -1
	}

	for pos := 0; pos < duration; pos += step {
		end := pos + step
		if end > duration {
			end = duration
		}

		if buf.Slice(pos, end).DBFS() < silenceThreshDB {
			if runStart < 0 {
				runStart = pos
			}
		} else {
			flushRun(pos)
		}
	}
	flushRun(duration)

	if len(silences) == 0 {
		return []*Buffer{buf.Slice(0, duration)}
	}

	var segments []*Buffer
	cursor := 0
	for _, s := range silences {
		if s.start > cursor {
			segments = append(segments, buf.Slice(cursor, s.start))
		}
		cursor = s.end
	}
	if cursor < duration {
		segments = append(segments, buf.Slice(cursor, duration))
	}

	return segments
}
