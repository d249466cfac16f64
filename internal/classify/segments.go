package classify

import (
	"sort"

	"github.com/versemeter/versemeter/internal/model"
)

// SegmentIndex maps character offsets in the joined transcript back to the
// timed segment that contains them. The index accounts for the joiner
// inserted between segments, so mapping stays exact no matter how many
// segments precede an offset.
type SegmentIndex struct {
	segments []model.Segment
	starts   []int // offset of each segment's first character in the joined text
}

// NewSegmentIndex builds an index over segments joined with a joiner of
// the given length.
func NewSegmentIndex(segments []model.Segment, joinerLen int) *SegmentIndex {
	starts := make([]int, len(segments))
	cum := 0
	for i, seg := range segments {
		starts[i] = cum
		cum += len(seg.Text) + joinerLen
	}
	return &SegmentIndex{segments: segments, starts: starts}
}

// Locate returns the segment whose span contains pos. Offsets that fall
// past the last segment, or inside a joiner gap between segments, yield
// no match; callers treat that as "no timestamp", not an error.
func (x *SegmentIndex) Locate(pos int) (model.Segment, bool) {
	if pos < 0 || len(x.segments) == 0 {
		return model.Segment{}, false
	}
	// First segment starting after pos; the owner, if any, is the one before.
	i := sort.Search(len(x.starts), func(i int) bool { return x.starts[i] > pos })
	if i == 0 {
		return model.Segment{}, false
	}
	seg := x.segments[i-1]
	if pos >= x.starts[i-1]+len(seg.Text) {
		return model.Segment{}, false
	}
	return seg, true
}

// JoinSegments assembles the full transcript from ordered segments using
// the canonical joiner. The classifier's offset math assumes this exact
// joining.
func JoinSegments(segments []model.Segment) string {
	total := 0
	for _, s := range segments {
		total += len(s.Text) + len(model.SegmentJoiner)
	}
	b := make([]byte, 0, total)
	for i, s := range segments {
		if i > 0 {
			b = append(b, model.SegmentJoiner...)
		}
		b = append(b, s.Text...)
	}
	return string(b)
}
