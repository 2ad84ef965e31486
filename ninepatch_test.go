package flipbook

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestNewNinePatchSlicesNineCells(t *testing.T) {
	src := ebiten.NewImage(30, 30)
	np := NewNinePatch(src, 10, 10, 10, 10)

	for i, cell := range np.cells {
		if cell == nil {
			t.Errorf("cell %d is nil, want a 10x10 sub-image", i)
			continue
		}
		b := cell.Bounds()
		if b.Dx() != 10 || b.Dy() != 10 {
			t.Errorf("cell %d = %dx%d, want 10x10", i, b.Dx(), b.Dy())
		}
	}
}

func TestNewNinePatchDegenerateCells(t *testing.T) {
	// Borders consume the full width: the middle column has zero width.
	src := ebiten.NewImage(20, 30)
	np := NewNinePatch(src, 10, 10, 10, 10)

	for _, i := range []int{1, 4, 7} {
		if np.cells[i] != nil {
			t.Errorf("middle-column cell %d should be nil", i)
		}
	}
	if np.cells[0] == nil || np.cells[2] == nil {
		t.Error("corner cells should survive a degenerate middle")
	}
}

func TestNinePatchDrawLayout(t *testing.T) {
	src := ebiten.NewImage(30, 30)
	np := NewNinePatch(src, 10, 10, 10, 10)
	sink := &fakeSink{}

	np.Draw(sink, Rect{X: 5, Y: 5, Width: 100, Height: 50})
	if len(sink.calls) != 9 {
		t.Fatalf("draw calls = %d, want 9", len(sink.calls))
	}

	// Corners keep their size; the center stretches.
	topLeft := sink.calls[0].dest
	if topLeft.X != 5 || topLeft.Y != 5 || topLeft.Width != 10 || topLeft.Height != 10 {
		t.Errorf("top-left = %v, want {5 5 10 10}", topLeft)
	}
	center := sink.calls[4].dest
	if center.Width != 80 || center.Height != 30 {
		t.Errorf("center = %fx%f, want 80x30", center.Width, center.Height)
	}
	bottomRight := sink.calls[8].dest
	if bottomRight.X != 95 || bottomRight.Y != 45 || bottomRight.Width != 10 {
		t.Errorf("bottom-right = %v, want {95 45 10 10}", bottomRight)
	}
}

func TestNinePatchDrawClampsTinyTargets(t *testing.T) {
	src := ebiten.NewImage(30, 30)
	np := NewNinePatch(src, 10, 10, 10, 10)
	sink := &fakeSink{}

	np.Draw(sink, Rect{Width: 5, Height: 5})
	// The target grows to fit the borders instead of inverting the cells.
	for i, c := range sink.calls {
		if c.dest.Width < 0 || c.dest.Height < 0 {
			t.Errorf("call %d has negative size: %v", i, c.dest)
		}
	}
	last := sink.calls[len(sink.calls)-1].dest
	if last.X+last.Width < 21 {
		t.Errorf("clamped width = %f, want at least 21", last.X+last.Width)
	}
}

func TestNinePatchSkipsNilCells(t *testing.T) {
	src := ebiten.NewImage(20, 30)
	np := NewNinePatch(src, 10, 10, 10, 10)
	sink := &fakeSink{}

	np.Draw(sink, Rect{Width: 60, Height: 60})
	if len(sink.calls) != 6 {
		t.Errorf("draw calls = %d, want 6 (three nil cells skipped)", len(sink.calls))
	}
}
