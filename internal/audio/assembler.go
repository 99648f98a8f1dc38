package audio

import "fmt"

// AssembleParams controls how segments are packed into final chunks.
type AssembleParams struct {
	MinMS  int // Minimum acceptable chunk duration before padding is forced
	MaxMS  int // Maximum acceptable chunk duration
	PadMS  int // Target duration when a short chunk is padded
	FadeMS int // Fade duration at merge boundaries
	GapMS  int // Silence inserted between merged segments
}

// AssembleChunks packs an ordered segment list into final chunks using a
// single forward pass with one accumulation buffer. Adjacent segments merge
// (fade-out, silence gap, fade-in) as long as the merged length stays within
// MaxMS; when a merge would overflow, the accumulated chunk is flushed,
// padded with trailing silence to PadMS first if it is shorter than MinMS.
// The trailing buffer receives the same treatment after the pass.
//
// The pass is greedy and never looks ahead, so alternating short and long
// segments can produce more chunks than an optimal packing would; order is
// always preserved.
func AssembleChunks(segments []*Buffer, p AssembleParams) ([]*Buffer, error) {
	var (
		out []*Buffer
		acc *Buffer
	)

	flush := func() {
		if acc.DurationMS() < p.MinMS {
			acc = acc.PadTo(p.PadMS)
		}
		out = append(out, acc)
	}

	for _, seg := range segments {
		if seg == nil || seg.DurationMS() == 0 {
			continue
		}

		if acc == nil {
			acc = seg
			continue
		}

		if acc.DurationMS()+seg.DurationMS()+p.GapMS <= p.MaxMS {
			merged, err := fadeMerge(acc, seg, p.FadeMS, p.GapMS)
			if err != nil {
				return nil, err
			}
			acc = merged
		} else {
			flush()
			acc = seg
		}
	}

	if acc != nil && acc.DurationMS() > 0 {
		flush()
	}

	return out, nil
}

// fadeMerge joins two segments with a fade-out, a true-silence gap and a
// fade-in, so merge boundaries never click.
func fadeMerge(a, b *Buffer, fadeMS, gapMS int) (*Buffer, error) {
	gap := Silence(gapMS, a.SampleRate(), a.Channels())

	merged, err := a.FadeOut(fadeMS).Append(gap)
	if err != nil {
		return nil, fmt.Errorf("failed to insert merge gap: %w", err)
	}

	merged, err = merged.Append(b.FadeIn(fadeMS))
	if err != nil {
		return nil, fmt.Errorf("failed to merge segments: %w", err)
	}

	return merged, nil
}
