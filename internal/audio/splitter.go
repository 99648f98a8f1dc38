package audio

import "math"

// SplitAtQuietPoints subdivides a segment until every piece is at most
// maxLenMS long, cutting each oversized piece at the quietest point near
// its temporal midpoint and applying fades on both sides of every cut.
// A segment already within maxLenMS is returned unchanged, with no fades.
//
// The traversal uses an explicit work list instead of recursion so that
// pathologically long uniform-amplitude segments cannot exhaust the stack;
// cut points and output order are identical to the recursive formulation.
func SplitAtQuietPoints(seg *Buffer, maxLenMS, fadeMS, searchRangeMS, stepMS int) []*Buffer {
	if seg == nil {
		return nil
	}

	if seg.DurationMS() <= maxLenMS {
		return []*Buffer{seg}
	}

	var out []*Buffer

	// Pieces still to place, earliest last so it is handled first.
	pending := []*Buffer{seg}
	for len(pending) > 0 {
		cur := pending[len(pending)-1]
		pending = pending[:len(pending)-1]

		duration := cur.DurationMS()
		if duration <= maxLenMS {
			out = append(out, cur)
			continue
		}

		cut := findQuietCut(cur, searchRangeMS, stepMS)
		if cut <= 0 || cut >= duration {
			cut = duration / 2
		}
		if cut == 0 {
			// Sub-millisecond piece, nothing left to split
			out = append(out, cur)
			continue
		}

		left := cur.Slice(0, cut).FadeOut(fadeMS)
		right := cur.Slice(cut, duration).FadeIn(fadeMS)

		// Left finalizes (or re-splits) before the remainder is visited
		pending = append(pending, right, left)
	}

	return out
}

// findQuietCut locates a cut point for an oversized segment: the midpoint
// of the minimum-RMS step window within searchRangeMS around the segment's
// temporal midpoint. Ties resolve to the earliest window. Segments shorter
// than the search window cut at the exact midpoint without scanning.
func findQuietCut(buf *Buffer, searchRangeMS, stepMS int) int {
	duration := buf.DurationMS()
	if duration <= searchRangeMS {
		return duration / 2
	}

	if stepMS < 1 {
		stepMS = 1
	}

	mid := duration / 2
	searchStart := mid - searchRangeMS/2
	if searchStart < 0 {
		searchStart = 0
	}
	searchEnd := mid + searchRangeMS/2
	if searchEnd > duration {
		searchEnd = duration
	}

	minRMS := math.Inf(1)
	best := mid
	for pos := searchStart; pos < searchEnd; pos += stepMS {
		end := pos + stepMS
		if end > duration {
			end = duration
		}

		rms := buf.Slice(pos, end).RMS()
		if rms < minRMS {
			minRMS = rms
			best = pos + stepMS/2
		}
	}

	return best
}
