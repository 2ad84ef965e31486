package flipbook

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// NinePatch stretches an image to any size without warping its corners and
// edges: the four corner cells keep their size, the edge cells stretch
// along one axis, and the center cell stretches along both.
type NinePatch struct {
	cells  [9]*ebiten.Image
	left   float64
	top    float64
	right  float64
	bottom float64
}

// NewNinePatch slices source into nine cells. left, top, right, and bottom
// are the border thicknesses in pixels that will not be stretched. The
// whole source image is used; sub-image the source first to use a region.
func NewNinePatch(source *ebiten.Image, left, top, right, bottom int) *NinePatch {
	b := source.Bounds()
	w := b.Dx()
	h := b.Dy()

	xs := [4]int{0, left, w - right, w}
	ys := [4]int{0, top, h - bottom, h}

	np := &NinePatch{
		left:   float64(left),
		top:    float64(top),
		right:  float64(right),
		bottom: float64(bottom),
	}
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			r := image.Rect(
				b.Min.X+xs[col], b.Min.Y+ys[row],
				b.Min.X+xs[col+1], b.Min.Y+ys[row+1],
			)
			if r.Dx() > 0 && r.Dy() > 0 {
				np.cells[row*3+col] = source.SubImage(r).(*ebiten.Image)
			}
		}
	}
	return np
}

// Draw renders the nine patch into target. The target is expanded to the
// minimum size that still fits the borders, never shrunk below it.
func (np *NinePatch) Draw(sink Sink, target Rect) {
	minW := np.left + np.right + 1
	if target.Width < minW {
		target.Width = minW
	}
	minH := np.top + np.bottom + 1
	if target.Height < minH {
		target.Height = minH
	}

	xs := [4]float64{
		target.X,
		target.X + np.left,
		target.X + target.Width - np.right,
		target.X + target.Width,
	}
	ys := [4]float64{
		target.Y,
		target.Y + np.top,
		target.Y + target.Height - np.bottom,
		target.Y + target.Height,
	}

	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			cell := np.cells[row*3+col]
			if cell == nil {
				continue
			}
			sink.Draw(cell, Rect{
				X:      xs[col],
				Y:      ys[row],
				Width:  xs[col+1] - xs[col],
				Height: ys[row+1] - ys[row],
			}, 0, false, false, White, 255)
		}
	}
}
