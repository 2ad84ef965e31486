package flipbook

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// SheetFrames slices a sprite sheet into a frame list, left to right, top
// to bottom. width and height are the frame size in pixels, or the column
// and row counts when byCount is true. spacing is the gap between frames,
// margin the empty border around the sheet's edge.
//
// The returned images are sub-images sharing the sheet's texture; no pixels
// are copied.
func SheetFrames(sheet *ebiten.Image, width, height, spacing, margin int, byCount bool) []*ebiten.Image {
	b := sheet.Bounds()
	texW := b.Dx()
	texH := b.Dy()

	if byCount {
		if width <= 0 || height <= 0 {
			return nil
		}
		width = texW / width
		height = texH / height
	}
	if width <= 0 || height <= 0 {
		return nil
	}

	var frames []*ebiten.Image
	for y := margin; y+height <= texH-margin; y += height + spacing {
		for x := margin; x+width <= texW-margin; x += width + spacing {
			r := image.Rect(b.Min.X+x, b.Min.Y+y, b.Min.X+x+width, b.Min.Y+y+height)
			frames = append(frames, sheet.SubImage(r).(*ebiten.Image))
		}
	}
	return frames
}

// SheetRects slices a sprite sheet at explicit pixel rectangles, for sheets
// with irregular frame placement.
func SheetRects(sheet *ebiten.Image, rects []Rect) []*ebiten.Image {
	b := sheet.Bounds()
	frames := make([]*ebiten.Image, 0, len(rects))
	for _, r := range rects {
		sub := image.Rect(
			b.Min.X+int(r.X),
			b.Min.Y+int(r.Y),
			b.Min.X+int(r.X+r.Width),
			b.Min.Y+int(r.Y+r.Height),
		)
		frames = append(frames, sheet.SubImage(sub).(*ebiten.Image))
	}
	return frames
}
