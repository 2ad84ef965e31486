package flipbook

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// Sink accepts draw requests for textured quads. The library computes what
// to draw and where; the sink decides how pixels get painted. Draws are
// fire-and-forget: a sink never reports back.
//
// Screen is the standard implementation. Tests substitute a recording fake.
type Sink interface {
	// Draw renders img into dest, rotated by angle degrees (clockwise,
	// about the rect center), optionally flipped about the center axes,
	// tinted by color (channels 0..255) and alpha (0..255). Scale is
	// already folded into dest.
	Draw(img *ebiten.Image, dest Rect, angle float64, flipX, flipY bool, color RGB, alpha float64)
}

// Screen is a Sink that draws onto an ebiten image, normally the screen
// image handed to ebiten.Game.Draw.
type Screen struct {
	Target *ebiten.Image
}

// Draw implements Sink with a single DrawImage call per request.
func (s Screen) Draw(img *ebiten.Image, dest Rect, angle float64, flipX, flipY bool, color RGB, alpha float64) {
	if img == nil || s.Target == nil || alpha <= 0 {
		return
	}
	b := img.Bounds()
	w := float64(b.Dx())
	h := float64(b.Dy())
	if w == 0 || h == 0 || dest.Width == 0 || dest.Height == 0 {
		return
	}

	sx := dest.Width / w
	sy := dest.Height / h
	if flipX {
		sx = -sx
	}
	if flipY {
		sy = -sy
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-w/2, -h/2)
	op.GeoM.Scale(sx, sy)
	if angle != 0 {
		op.GeoM.Rotate(angle * math.Pi / 180)
	}
	op.GeoM.Translate(dest.X+dest.Width/2, dest.Y+dest.Height/2)

	op.ColorScale.Scale(
		float32(clamp255(color.R)/255),
		float32(clamp255(color.G)/255),
		float32(clamp255(color.B)/255),
		1,
	)
	op.ColorScale.ScaleAlpha(float32(clamp255(alpha) / 255))

	s.Target.DrawImage(img, op)
}
