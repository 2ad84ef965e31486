package flipbook

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// scrollAnim holds active scroll-to tweens for camera offset X and Y.
type scrollAnim struct {
	tweenX *gween.Tween
	tweenY *gween.Tween
	doneX  bool
	doneY  bool
}

// Camera maps a world offset and zoom onto a screen viewport. It is consumed
// read-only by rendering each frame: View computes the effective mapping
// without writing anything back, so several renderables (tile layers,
// parallax backgrounds, world-space sprites) can share one camera and stay
// visually synchronized.
type Camera struct {
	// Offset is the world-space position at the viewport's top-left corner
	// (or at its center, when a View is requested with centering).
	Offset Vec2
	// Zoom is the scale factor (1.0 = no zoom, >1 = zoom in, <1 = zoom out).
	Zoom float64
	// Viewport is the screen-space rectangle the camera renders into.
	Viewport Rect

	// WorldWidth and WorldHeight are the content bounds in world pixels,
	// used by clamping. Zero means unknown; clamping is skipped.
	WorldWidth  float64
	WorldHeight float64

	scrollTween *scrollAnim
	zoomTween   *gween.Tween
	zoomDone    bool
}

// NewCamera creates a camera with zoom 1 and the given viewport.
func NewCamera(viewport Rect) *Camera {
	return &Camera{Zoom: 1, Viewport: viewport}
}

// SetWorldSize sets the content bounds used by clamped views.
func (c *Camera) SetWorldSize(w, h float64) {
	c.WorldWidth = w
	c.WorldHeight = h
}

// ViewOpts adjusts how Camera.View computes the effective mapping.
// The zero value means: offset is the top-left corner, no clamping,
// zoom taken from the camera.
type ViewOpts struct {
	// Center reinterprets the given point as the viewport center.
	// Overrides the camera offset.
	Center *Vec2
	// CenterOn reinterprets the camera's own offset as the viewport center.
	CenterOn bool
	// Clamp adjusts the effective offset so the sampled region never leaves
	// the content bounds. Clamping moves the offset only, never the zoom.
	Clamp bool
	// SrcRect overrides zoom: the zoom becomes viewport width / rect width,
	// and the rect position becomes the offset. Height is derived from
	// width so the aspect ratio is preserved, whatever height says.
	SrcRect *Rect
}

// View is the effective camera mapping for one frame: the offset and zoom
// actually used after centering and clamping, and the resulting world-space
// source region and screen-space destination region.
type View struct {
	// Offset is the effective offset in zoom-scaled pixels.
	Offset Vec2
	Zoom   float64
	// Source is the world-space region the view samples.
	Source Rect
	// Dest is the screen-space region the view renders into.
	Dest Rect
}

// View computes the effective mapping for the current camera state.
func (c *Camera) View(opts ViewOpts) View {
	zoom := c.Zoom
	if zoom <= 0 {
		zoom = 1
	}

	offX := c.Offset.X
	offY := c.Offset.Y
	center := opts.CenterOn
	if opts.Center != nil {
		offX = opts.Center.X
		offY = opts.Center.Y
		center = true
	}
	if opts.SrcRect != nil {
		if opts.SrcRect.Width > 0 {
			zoom = c.Viewport.Width / opts.SrcRect.Width
		}
		offX = opts.SrcRect.X
		offY = opts.SrcRect.Y
		center = false
	}

	if center {
		offX = offX*zoom - c.Viewport.Width/2
		offY = offY*zoom - c.Viewport.Height/2
	} else {
		offX *= zoom
		offY *= zoom
	}

	if opts.Clamp && c.WorldWidth > 0 && c.WorldHeight > 0 {
		offX = clampAxis(offX, c.WorldWidth*zoom-c.Viewport.Width)
		offY = clampAxis(offY, c.WorldHeight*zoom-c.Viewport.Height)
	}

	return View{
		Offset: Vec2{X: offX, Y: offY},
		Zoom:   zoom,
		Source: Rect{
			X:      offX / zoom,
			Y:      offY / zoom,
			Width:  c.Viewport.Width / zoom,
			Height: c.Viewport.Height / zoom,
		},
		Dest: c.Viewport,
	}
}

// clampAxis restricts an effective offset to [0, max]. When the content is
// smaller than the viewport (max < 0) the view is centered on it instead.
func clampAxis(v, max float64) float64 {
	if max < 0 {
		return max / 2
	}
	if v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}

// WorldToScreen converts a world-space point to screen coordinates under
// this view.
func (v View) WorldToScreen(wx, wy float64) (sx, sy float64) {
	return wx*v.Zoom - v.Offset.X + v.Dest.X, wy*v.Zoom - v.Offset.Y + v.Dest.Y
}

// ScreenToWorld converts a screen-space point to world coordinates under
// this view.
func (v View) ScreenToWorld(sx, sy float64) (wx, wy float64) {
	return (sx - v.Dest.X + v.Offset.X) / v.Zoom, (sy - v.Dest.Y + v.Offset.Y) / v.Zoom
}

// ScrollTo animates the camera offset to (x, y) over duration seconds.
func (c *Camera) ScrollTo(x, y float64, duration float32, easeFn ease.TweenFunc) {
	c.scrollTween = &scrollAnim{
		tweenX: gween.New(float32(c.Offset.X), float32(x), duration, easeFn),
		tweenY: gween.New(float32(c.Offset.Y), float32(y), duration, easeFn),
	}
}

// ZoomTo animates the camera zoom to the target over duration seconds.
func (c *Camera) ZoomTo(zoom float64, duration float32, easeFn ease.TweenFunc) {
	c.zoomTween = gween.New(float32(c.Zoom), float32(zoom), duration, easeFn)
	c.zoomDone = false
}

// Scrolling reports whether a ScrollTo animation is in progress. Callers
// that normally drive the offset themselves (following an entity) should
// yield while this is true.
func (c *Camera) Scrolling() bool {
	return c.scrollTween != nil
}

// Update advances scroll and zoom animations by dt seconds. Call once per
// frame; a no-op when nothing is animating.
func (c *Camera) Update(dt float32) {
	if c.scrollTween != nil {
		if !c.scrollTween.doneX {
			val, done := c.scrollTween.tweenX.Update(dt)
			c.Offset.X = float64(val)
			c.scrollTween.doneX = done
		}
		if !c.scrollTween.doneY {
			val, done := c.scrollTween.tweenY.Update(dt)
			c.Offset.Y = float64(val)
			c.scrollTween.doneY = done
		}
		if c.scrollTween.doneX && c.scrollTween.doneY {
			c.scrollTween = nil
		}
	}
	if c.zoomTween != nil && !c.zoomDone {
		val, done := c.zoomTween.Update(dt)
		c.Zoom = float64(val)
		c.zoomDone = done
		if done {
			c.zoomTween = nil
		}
	}
}
