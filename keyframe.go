package flipbook

import "errors"

// Construction-time validation errors. Playback calls never return errors;
// sequences are validated once when they are built.
var (
	// ErrInvalidRange is returned when a frame range has end < start.
	ErrInvalidRange = errors.New("flipbook: invalid frame range (end < start)")
	// ErrInvalidKeyframe is returned when a multi-keyframe sequence contains
	// a non-positive duration, which would stall playback on that keyframe.
	ErrInvalidKeyframe = errors.New("flipbook: non-positive keyframe duration in multi-keyframe sequence")
)

// FrameRef identifies one image in a sprite's frame list, by index or by
// name. A non-empty Name takes precedence over Index.
type FrameRef struct {
	Index int
	Name  string
}

// Refs builds a FrameRef list from frame indices.
func Refs(indices ...int) []FrameRef {
	refs := make([]FrameRef, len(indices))
	for i, idx := range indices {
		refs[i] = FrameRef{Index: idx}
	}
	return refs
}

// NameRefs builds a FrameRef list from frame names.
func NameRefs(names ...string) []FrameRef {
	refs := make([]FrameRef, len(names))
	for i, name := range names {
		refs[i] = FrameRef{Name: name}
	}
	return refs
}

// Keyframe is one immutable step of an animation: the image to show, how
// long to hold it, discrete visual values applied when the keyframe begins,
// and continuous per-second rates accumulated while it is held.
//
// Pointer fields are optional. A nil discrete field leaves the pose's
// current value untouched; a nil rate field means no change per second.
// Sequences ([]Keyframe) are read-only after construction and may be shared
// across any number of Timelines.
type Keyframe struct {
	Frame    FrameRef
	Duration int // hold time in milliseconds; <= 0 holds forever

	// Discrete values, applied once when the keyframe begins.
	Angle *float64 // clockwise rotation in degrees
	FlipX bool
	FlipY bool
	Color *RGB     // color shift, channels in [0, 255]
	Alpha *float64 // alpha in [0, 255]
	Scale *float64 // scale multiplier, 1.0 = unchanged
	Pos   *Vec2    // absolute position override

	// Continuous per-second rates, accumulated by Timeline.Update.
	Velocity *Vec2    // pixels per second
	Rotation *float64 // degrees per second
	Scaling  *float64 // scale delta per second
	Fading   *float64 // alpha subtracted per second
	Coloring *RGB     // channel shift per second
}

// FrameOpts is the option bag shared by the sequence builders. Every field
// maps to the Keyframe field of the same name; nil means unset. Being a
// plain struct, misspelled options are a compile error rather than silently
// ignored keys.
type FrameOpts struct {
	Angle    *float64
	FlipX    bool
	FlipY    bool
	Color    *RGB
	Alpha    *float64
	Scale    *float64
	Pos      *Vec2
	Velocity *Vec2
	Rotation *float64
	Scaling  *float64
	Fading   *float64
	Coloring *RGB
}

// apply copies the option fields onto a keyframe.
func (o FrameOpts) apply(kf *Keyframe) {
	kf.Angle = o.Angle
	kf.FlipX = o.FlipX
	kf.FlipY = o.FlipY
	kf.Color = o.Color
	kf.Alpha = o.Alpha
	kf.Scale = o.Scale
	kf.Pos = o.Pos
	kf.Velocity = o.Velocity
	kf.Rotation = o.Rotation
	kf.Scaling = o.Scaling
	kf.Fading = o.Fading
	kf.Coloring = o.Coloring
}

// Key builds a single keyframe showing ref for duration milliseconds.
// A duration <= 0 means the frame is held until the next control call,
// which is only meaningful for single-keyframe sequences.
func Key(ref FrameRef, duration int, opts FrameOpts) Keyframe {
	kf := Keyframe{Frame: ref, Duration: duration}
	opts.apply(&kf)
	return kf
}

// Frames builds one keyframe per ref, all sharing duration and opts.
// Returns ErrInvalidKeyframe when duration is non-positive and the sequence
// has more than one keyframe, since such a sequence could never advance.
func Frames(refs []FrameRef, duration int, opts FrameOpts) ([]Keyframe, error) {
	if len(refs) > 1 && duration <= 0 {
		return nil, ErrInvalidKeyframe
	}
	seq := make([]Keyframe, len(refs))
	for i, ref := range refs {
		seq[i] = Key(ref, duration, opts)
	}
	return seq, nil
}

// FrameRange builds keyframes for the index range [start, end], inclusive at
// both ends, all sharing duration and opts. Returns ErrInvalidRange when
// end < start.
func FrameRange(start, end, duration int, opts FrameOpts) ([]Keyframe, error) {
	if end < start {
		return nil, ErrInvalidRange
	}
	return Frames(Refs(rangeIndices(start, end)...), duration, opts)
}

func rangeIndices(start, end int) []int {
	indices := make([]int, 0, end-start+1)
	for i := start; i <= end; i++ {
		indices = append(indices, i)
	}
	return indices
}
