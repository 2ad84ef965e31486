package flipbook

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func testTiles(n, w, h int) []*ebiten.Image {
	tiles := make([]*ebiten.Image, n)
	for i := range tiles {
		tiles[i] = ebiten.NewImage(w, h)
	}
	return tiles
}

// filledMap builds a w x h layer where every cell holds v.
func filledMap(w, h int, v uint16) []uint16 {
	data := make([]uint16, w*h)
	for i := range data {
		data[i] = v
	}
	return data
}

func TestNewTilemapValidation(t *testing.T) {
	tiles := testTiles(2, 16, 16)
	if _, err := NewTilemap(nil, filledMap(2, 2, 0), 2, 2); err == nil {
		t.Error("no tiles: err = nil, want error")
	}
	if _, err := NewTilemap(tiles, filledMap(2, 2, 0), 3, 2); err == nil {
		t.Error("size mismatch: err = nil, want error")
	}
	tm, err := NewTilemap(tiles, filledMap(4, 3, 1), 4, 3)
	if err != nil {
		t.Fatalf("NewTilemap: %v", err)
	}
	if tm.Width() != 4 || tm.Height() != 3 {
		t.Errorf("size = %dx%d, want 4x3", tm.Width(), tm.Height())
	}
	if tm.TileWidth() != 16 || tm.TileHeight() != 16 {
		t.Errorf("tile size = %dx%d, want 16x16", tm.TileWidth(), tm.TileHeight())
	}
	if tm.WorldWidth() != 64 || tm.WorldHeight() != 48 {
		t.Errorf("world size = %fx%f, want 64x48", tm.WorldWidth(), tm.WorldHeight())
	}
}

func TestTilemapZeroesOutOfRangeValues(t *testing.T) {
	tiles := testTiles(2, 16, 16)
	data := []uint16{0, 1, 7, 1}
	tm, err := NewTilemap(tiles, data, 2, 2)
	if err != nil {
		t.Fatalf("NewTilemap: %v", err)
	}
	if got := tm.Cell(0, 0, 1); got != 0 {
		t.Errorf("out-of-range value survived: Cell = %d, want 0", got)
	}
	if got := tm.Cell(0, 1, 1); got != 1 {
		t.Errorf("valid value lost: Cell = %d, want 1", got)
	}
}

func TestTilemapCellAccess(t *testing.T) {
	tm, err := NewTilemap(testTiles(3, 8, 8), filledMap(4, 4, 1), 4, 4)
	if err != nil {
		t.Fatalf("NewTilemap: %v", err)
	}

	tm.SetCell(0, 2, 3, 2)
	if got := tm.Cell(0, 2, 3); got != 2 {
		t.Errorf("Cell = %d, want 2", got)
	}

	// Out-of-range reads are 0, out-of-range writes are dropped.
	if got := tm.Cell(0, -1, 0); got != 0 {
		t.Errorf("Cell(-1,0) = %d, want 0", got)
	}
	if got := tm.Cell(5, 0, 0); got != 0 {
		t.Errorf("Cell on missing layer = %d, want 0", got)
	}
	tm.SetCell(0, 99, 99, 1)
	tm.SetCell(0, 0, 0, 99) // value beyond the tileset
	if got := tm.Cell(0, 0, 0); got != 1 {
		t.Errorf("Cell = %d, want unchanged 1", got)
	}
}

func TestTilemapLayers(t *testing.T) {
	tm, err := NewTilemap(testTiles(2, 8, 8), filledMap(2, 2, 1), 2, 2)
	if err != nil {
		t.Fatalf("NewTilemap: %v", err)
	}
	if err := tm.AddLayer(filledMap(2, 2, 0)); err != nil {
		t.Fatalf("AddLayer: %v", err)
	}
	if err := tm.AddLayer(filledMap(3, 3, 0)); err == nil {
		t.Error("mismatched layer accepted")
	}
	tm.SetCell(1, 0, 0, 1)
	if tm.Cell(0, 0, 0) != 1 || tm.Cell(1, 0, 0) != 1 || tm.Cell(1, 1, 1) != 0 {
		t.Error("layers do not hold independent data")
	}
}

func TestParseTilemapString(t *testing.T) {
	data, w, h, err := ParseTilemapString("1,2,3\n4,5,6\n", ParseOpts{})
	if err != nil {
		t.Fatalf("ParseTilemapString: %v", err)
	}
	if w != 3 || h != 2 {
		t.Fatalf("size = %dx%d, want 3x2", w, h)
	}
	want := []uint16{1, 2, 3, 4, 5, 6}
	for i, v := range want {
		if data[i] != v {
			t.Errorf("cell %d = %d, want %d", i, data[i], v)
		}
	}
}

func TestParseTilemapStringPadsShortRows(t *testing.T) {
	data, w, h, err := ParseTilemapString("1,2,3\n4", ParseOpts{Default: 9})
	if err != nil {
		t.Fatalf("ParseTilemapString: %v", err)
	}
	if w != 3 || h != 2 {
		t.Fatalf("size = %dx%d, want 3x2", w, h)
	}
	if data[4] != 9 || data[5] != 9 {
		t.Errorf("short row not padded with default: %v", data)
	}
}

func TestParseTilemapStringTrim(t *testing.T) {
	data, w, _, err := ParseTilemapString("1,2,3\n4", ParseOpts{Trim: true})
	if err != nil {
		t.Fatalf("ParseTilemapString: %v", err)
	}
	if w != 1 {
		t.Fatalf("width = %d, want trimmed to 1", w)
	}
	if data[0] != 1 || data[1] != 4 {
		t.Errorf("data = %v, want [1 4]", data)
	}
}

func TestParseTilemapStringInvalidCells(t *testing.T) {
	data, _, _, err := ParseTilemapString("1,x,-3", ParseOpts{Default: 7})
	if err != nil {
		t.Fatalf("ParseTilemapString: %v", err)
	}
	if data[1] != 7 || data[2] != 7 {
		t.Errorf("invalid cells = %d,%d, want default 7", data[1], data[2])
	}
}

func TestParseTilemapStringCustomDelimiters(t *testing.T) {
	data, w, h, err := ParseTilemapString("1 2;3 4", ParseOpts{Delimiter: " ", LineBreak: ";"})
	if err != nil {
		t.Fatalf("ParseTilemapString: %v", err)
	}
	if w != 2 || h != 2 || data[3] != 4 {
		t.Errorf("parse = %v (%dx%d), want [1 2 3 4] 2x2", data, w, h)
	}
}

func TestParseTilemapStringEmpty(t *testing.T) {
	if _, _, _, err := ParseTilemapString("", ParseOpts{}); err == nil {
		t.Error("empty input: err = nil, want error")
	}
}

func TestRenderTilemapDrawsVisibleWindow(t *testing.T) {
	tm, err := NewTilemap(testTiles(2, 16, 16), filledMap(4, 4, 1), 4, 4)
	if err != nil {
		t.Fatalf("NewTilemap: %v", err)
	}
	cam := NewCamera(Rect{Width: 32, Height: 32})
	sink := &fakeSink{}

	view := RenderTilemap(sink, tm, cam, RenderOpts{})
	// 32px viewport over 16px tiles with overscan covers the whole 4x4 map.
	if len(sink.calls) != 16 {
		t.Errorf("draw calls = %d, want 16", len(sink.calls))
	}
	// The camera had no world size; the map's bounds fill in.
	if view.Source.Width != 32 || view.Zoom != 1 {
		t.Errorf("view = %+v, want 32-wide source at zoom 1", view)
	}
}

func TestRenderTilemapSkipsEmptyCells(t *testing.T) {
	data := filledMap(2, 2, 1)
	data[0] = 0
	tm, err := NewTilemap(testTiles(2, 16, 16), data, 2, 2)
	if err != nil {
		t.Fatalf("NewTilemap: %v", err)
	}
	cam := NewCamera(Rect{Width: 32, Height: 32})
	sink := &fakeSink{}

	RenderTilemap(sink, tm, cam, RenderOpts{})
	if len(sink.calls) != 3 {
		t.Errorf("draw calls = %d, want 3 (cell 0 is empty)", len(sink.calls))
	}
}

func TestRenderTilemapOffsetWindow(t *testing.T) {
	tm, err := NewTilemap(testTiles(2, 16, 16), filledMap(8, 8, 1), 8, 8)
	if err != nil {
		t.Fatalf("NewTilemap: %v", err)
	}
	cam := NewCamera(Rect{Width: 32, Height: 32})
	cam.Offset = Vec2{X: 16, Y: 16}
	sink := &fakeSink{}

	RenderTilemap(sink, tm, cam, RenderOpts{})
	// Columns 1..4 and rows 1..4 are in the window.
	if len(sink.calls) != 16 {
		t.Fatalf("draw calls = %d, want 16", len(sink.calls))
	}
	first := sink.calls[0].dest
	if first.X != 0 || first.Y != 0 {
		t.Errorf("first tile at (%f,%f), want (0,0); tile-aligned offset needs no phase shift", first.X, first.Y)
	}
}

func TestRenderTilemapNegativeOffset(t *testing.T) {
	tm, err := NewTilemap(testTiles(2, 16, 16), filledMap(4, 4, 1), 4, 4)
	if err != nil {
		t.Fatalf("NewTilemap: %v", err)
	}
	cam := NewCamera(Rect{Width: 32, Height: 32})
	cam.Offset = Vec2{X: -8, Y: 0}
	sink := &fakeSink{}

	RenderTilemap(sink, tm, cam, RenderOpts{})
	if len(sink.calls) == 0 {
		t.Fatal("nothing drawn for a partially visible map")
	}
	// The map starts 8px into the viewport.
	if got := sink.calls[0].dest.X; got != 8 {
		t.Errorf("first tile X = %f, want 8", got)
	}
}

func TestRenderTilemapClampedCenter(t *testing.T) {
	tm, err := NewTilemap(testTiles(2, 16, 16), filledMap(8, 8, 1), 8, 8)
	if err != nil {
		t.Fatalf("NewTilemap: %v", err)
	}
	cam := NewCamera(Rect{Width: 64, Height: 64})
	cam.Offset = Vec2{X: 999, Y: 999}
	sink := &fakeSink{}

	view := RenderTilemap(sink, tm, cam, RenderOpts{ViewOpts: ViewOpts{CenterOn: true, Clamp: true}})
	// World is 128px; the farthest valid offset is 64.
	if view.Offset.X != 64 || view.Offset.Y != 64 {
		t.Errorf("view offset = %v, want (64,64)", view.Offset)
	}
}

func TestTileBackgroundCoversDest(t *testing.T) {
	bg := ebiten.NewImage(16, 16)
	view := View{
		Zoom: 1,
		Dest: Rect{Width: 32, Height: 32},
	}
	sink := &fakeSink{}
	TileBackground(sink, bg, view)
	if len(sink.calls) != 4 {
		t.Errorf("draw calls = %d, want 4 (2x2 fill)", len(sink.calls))
	}
}

func TestTileBackgroundScrollsWithOffset(t *testing.T) {
	bg := ebiten.NewImage(16, 16)
	view := View{
		Offset: Vec2{X: 4, Y: 0},
		Zoom:   1,
		Dest:   Rect{Width: 32, Height: 32},
	}
	sink := &fakeSink{}
	TileBackground(sink, bg, view)
	if got := sink.calls[0].dest.X; got != -4 {
		t.Errorf("first fill X = %f, want -4 (phase-locked to the offset)", got)
	}
	// The shifted fill needs an extra column.
	if len(sink.calls) != 6 {
		t.Errorf("draw calls = %d, want 6", len(sink.calls))
	}
}

func TestFloorDivMod(t *testing.T) {
	cases := []struct {
		a, b, div, mod int
	}{
		{10, 16, 0, 10},
		{16, 16, 1, 0},
		{-8, 16, -1, 8},
		{-16, 16, -1, 0},
		{33, 16, 2, 1},
	}
	for _, tc := range cases {
		div, mod := floorDivMod(tc.a, tc.b)
		if div != tc.div || mod != tc.mod {
			t.Errorf("floorDivMod(%d, %d) = (%d, %d), want (%d, %d)", tc.a, tc.b, div, mod, tc.div, tc.mod)
		}
	}
}

func TestFloorModF(t *testing.T) {
	if got := floorModF(-4, 16); got != 12 {
		t.Errorf("floorModF(-4, 16) = %f, want 12", got)
	}
	if got := floorModF(20, 16); got != 4 {
		t.Errorf("floorModF(20, 16) = %f, want 4", got)
	}
}
