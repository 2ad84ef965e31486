package flipbook

// Vec2 is a 2D vector used for positions, offsets, velocities, and sizes
// throughout the API.
type Vec2 struct {
	X, Y float64
}

// RGB is a color triplet with channels in [0, 255]. It doubles as a color
// shift (channel deltas) on keyframes and as a per-second cycling rate.
type RGB struct {
	R, G, B float64
}

// White is the default sprite color (no tint).
var White = RGB{255, 255, 255}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// LoopType selects the playback direction policy for an animation.
type LoopType uint8

const (
	// Forward plays the sequence first-to-last, restarting from the first
	// keyframe on each loop.
	Forward LoopType = iota
	// BackForth ping-pongs: first-to-last, then last-to-first, reversing
	// direction at each end without repeating the end keyframes.
	BackForth
	// Reverse plays the sequence last-to-first.
	Reverse
)

// String returns the loop type name as used in sequence data files.
func (lt LoopType) String() string {
	switch lt {
	case Forward:
		return "forward"
	case BackForth:
		return "back_forth"
	case Reverse:
		return "reverse"
	default:
		return "unknown"
	}
}

// LoopForever is the loop count sentinel for continuous playback.
const LoopForever = -1

// F returns a pointer to v, for optional float64 keyframe fields.
func F(v float64) *float64 { return &v }

// V returns a pointer to the vector (x, y), for optional Vec2 keyframe fields.
func V(x, y float64) *Vec2 { return &Vec2{X: x, Y: y} }

// C returns a pointer to the color (r, g, b), for optional RGB keyframe fields.
func C(r, g, b float64) *RGB { return &RGB{R: r, G: g, B: b} }

// clamp255 clamps v to the valid channel/alpha range [0, 255].
func clamp255(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}
