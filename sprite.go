package flipbook

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

// Sprite is an animated renderable: a frame list, one Timeline, an anchor
// point, and optionally a camera view for world-space positioning. Each
// frame it composes the timeline's pose with the view into exactly one
// sink draw.
type Sprite struct {
	frames []*ebiten.Image
	names  map[string]int

	timeline *Timeline
	anchor   Vec2

	view    View
	hasView bool
}

// NewSprite creates a sprite over the given frame images. The frame list is
// typically produced by SheetFrames or an atlas loader; the sprite never
// inspects texture contents.
func NewSprite(frames []*ebiten.Image) *Sprite {
	return &Sprite{
		frames:   frames,
		timeline: NewTimeline(),
	}
}

// Timeline returns the sprite's timeline for direct control.
func (s *Sprite) Timeline() *Timeline {
	return s.timeline
}

// SetName maps a frame name to an index, making the frame addressable by
// FrameRef{Name: ...}.
func (s *Sprite) SetName(name string, index int) {
	if s.names == nil {
		s.names = make(map[string]int)
	}
	s.names[name] = index
}

// SetAnchor sets the point within the sprite that SetPos positions.
// Default (0, 0), the top-left corner.
func (s *Sprite) SetAnchor(x, y float64) {
	s.anchor = Vec2{X: x, Y: y}
}

// SetPos moves the sprite to the world position (x, y).
func (s *Sprite) SetPos(x, y float64) {
	s.timeline.SetPos(x, y)
}

// SetView attaches an effective camera view, making the sprite world-space:
// its draw rectangle is offset and zoomed by the view. Pass the View
// returned by Camera.View or RenderTilemap so co-rendered layers stay in
// sync.
func (s *Sprite) SetView(v View) {
	s.view = v
	s.hasView = true
}

// ClearView detaches the camera view; positions become screen-space again.
func (s *Sprite) ClearView() {
	s.hasView = false
}

// Playback control, delegated to the timeline.

// SetAnimation starts a keyframe sequence. See Timeline.SetAnimation.
func (s *Sprite) SetAnimation(seq []Keyframe, loopCount int, loopType LoopType) {
	s.timeline.SetAnimation(seq, loopCount, loopType)
}

// QueueAnimation queues a sequence to play after the current one finishes.
func (s *Sprite) QueueAnimation(seq []Keyframe, loopCount int, loopType LoopType) {
	s.timeline.QueueAnimation(seq, loopCount, loopType)
}

// QueueEvent queues a callback to run when the current animation finishes.
func (s *Sprite) QueueEvent(fn func()) {
	s.timeline.QueueEvent(fn)
}

// Interrupt plays seq once, then resumes the current animation where it
// left off.
func (s *Sprite) Interrupt(seq []Keyframe, loopType LoopType) {
	s.timeline.Interrupt(seq, loopType)
}

// Stop freezes the sprite on its current pose.
func (s *Sprite) Stop() {
	s.timeline.Stop()
}

// Update advances the animation by deltaMs milliseconds. Call once per
// rendered frame.
func (s *Sprite) Update(deltaMs float64) {
	s.timeline.Update(deltaMs)
}

// frameImage resolves a frame reference against the frame list. Unknown
// names and out-of-range indices fall back to frame 0 rather than failing
// mid-frame.
func (s *Sprite) frameImage(ref FrameRef) *ebiten.Image {
	if len(s.frames) == 0 {
		return nil
	}
	idx := ref.Index
	if ref.Name != "" {
		i, ok := s.names[ref.Name]
		if !ok {
			if globalDebug {
				log.Printf("flipbook: unknown frame name %q, using frame 0", ref.Name)
			}
			i = 0
		}
		idx = i
	}
	if idx < 0 || idx >= len(s.frames) {
		idx = 0
	}
	return s.frames[idx]
}

// Bounds returns the sprite's current world-space rectangle: the frame
// image at the pose position and scale, anchor subtracted, before any
// camera view is applied. Useful as a hit box.
func (s *Sprite) Bounds() Rect {
	p := s.timeline.Pose()
	img := s.frameImage(p.Frame)
	if img == nil {
		return Rect{X: p.X, Y: p.Y}
	}
	b := img.Bounds()
	w0 := float64(b.Dx())
	h0 := float64(b.Dy())
	return Rect{
		X:      p.X - s.anchor.X - w0*(p.Scale-1)/2,
		Y:      p.Y - s.anchor.Y - h0*(p.Scale-1)/2,
		Width:  w0 * p.Scale,
		Height: h0 * p.Scale,
	}
}

// Draw issues the sprite's single draw call for this frame: current frame
// image, camera-adjusted destination rectangle with scale folded in, and
// the pose's angle, flips, color, and alpha.
func (s *Sprite) Draw(sink Sink) {
	p := s.timeline.Pose()
	img := s.frameImage(p.Frame)
	if img == nil {
		return
	}

	dest := s.Bounds()
	if s.hasView {
		dest.X = dest.X*s.view.Zoom - s.view.Offset.X + s.view.Dest.X
		dest.Y = dest.Y*s.view.Zoom - s.view.Offset.Y + s.view.Dest.Y
		dest.Width *= s.view.Zoom
		dest.Height *= s.view.Zoom
	}

	sink.Draw(img, dest, p.Angle, p.FlipX, p.FlipY, p.Color, p.Alpha)
}
