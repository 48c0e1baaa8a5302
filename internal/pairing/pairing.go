// Package pairing turns an ordered sequence of frame records into labeled
// before/after pairs for the calving classifier.
//
// The frame order handed in is trusted to be chronological. Nothing here
// re-sorts records.
package pairing

import (
	"github.com/icefront-lab/calvingpairs/internal/annotations"
)

// Label is the class of the after frame of a pair
type Label string

const (
	Unlabeled Label = "Unlabeled"
	Calving   Label = "Calving"
	NoCalving Label = "No calving"
)

// LabelOf returns the pairing label of a record
func LabelOf(r annotations.FrameRecord) Label {
	switch {
	case r.IsUnlabeled():
		return Unlabeled
	case r.IsCalving():
		return Calving
	default:
		return NoCalving
	}
}

// Frame is one element of the filtered sequence
type Frame struct {
	ID    string
	Label Label
	Area  *float64 // set only for Calving
}

// Pair is a training example: the frame before and after a possible event,
// labeled with the after frame's class.
type Pair struct {
	Before string   `json:"before"`
	After  string   `json:"after"`
	Label  Label    `json:"label"`
	Area   *float64 `json:"area,omitempty"`
}

// Filter computes each record's label and, when usableOnly is set, drops
// frames tagged partially usable or unusable. Dropping a frame makes its
// neighbours adjacent.
func Filter(records []annotations.FrameRecord, usableOnly bool) []Frame {
	frames := make([]Frame, 0, len(records))
	for _, r := range records {
		if usableOnly && (r.UsabilityIs(annotations.PartiallyUsable) || r.UsabilityIs(annotations.Unusable)) {
			continue
		}
		f := Frame{ID: r.ID, Label: LabelOf(r)}
		if f.Label == Calving {
			f.Area = r.CalvingArea
		}
		frames = append(frames, f)
	}
	return frames
}

// BuildPairs emits (frames[i-1], frames[i]) for every i >= 1
func BuildPairs(frames []Frame) []Pair {
	if len(frames) < 2 {
		return nil
	}
	pairs := make([]Pair, 0, len(frames)-1)
	for i := 1; i < len(frames); i++ {
		p := Pair{
			Before: frames[i-1].ID,
			After:  frames[i].ID,
			Label:  frames[i].Label,
		}
		if p.Label == Calving {
			p.Area = frames[i].Area
		}
		pairs = append(pairs, p)
	}
	return pairs
}

// FromRecords is Filter followed by BuildPairs
func FromRecords(records []annotations.FrameRecord, usableOnly bool) []Pair {
	return BuildPairs(Filter(records, usableOnly))
}

// Labeled drops Unlabeled pairs, keeping order
func Labeled(pairs []Pair) []Pair {
	return WithoutLabel(pairs, Unlabeled)
}

// WithLabel returns the pairs labeled l
func WithLabel(pairs []Pair, l Label) []Pair {
	var out []Pair
	for _, p := range pairs {
		if p.Label == l {
			out = append(out, p)
		}
	}
	return out
}

// WithoutLabel returns the pairs not labeled l
func WithoutLabel(pairs []Pair, l Label) []Pair {
	var out []Pair
	for _, p := range pairs {
		if p.Label != l {
			out = append(out, p)
		}
	}
	return out
}
