package flipbook

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
)

// Tilemap is a grid of tile indices over a shared tileset. Cell value 0
// means empty; values index into the tile list. Layers render in the order
// they were added.
type Tilemap struct {
	tiles  []*ebiten.Image
	layers [][]uint16

	width  int // map width in cells
	height int // map height in cells
	tileW  int // tile width in pixels
	tileH  int // tile height in pixels
}

// NewTilemap creates a tilemap from a tileset (see SheetFrames) and a first
// layer of cell data in row-major order. The tile pixel size is taken from
// the first tile image. Cell values beyond the tileset are zeroed.
func NewTilemap(tiles []*ebiten.Image, data []uint16, width, height int) (*Tilemap, error) {
	if len(tiles) == 0 {
		return nil, fmt.Errorf("flipbook: tilemap needs at least one tile image")
	}
	if width <= 0 || height <= 0 || len(data) != width*height {
		return nil, fmt.Errorf("flipbook: tilemap data is %d cells, want %dx%d", len(data), width, height)
	}
	b := tiles[0].Bounds()
	tm := &Tilemap{
		tiles:  tiles,
		width:  width,
		height: height,
		tileW:  b.Dx(),
		tileH:  b.Dy(),
	}
	tm.layers = append(tm.layers, tm.cleanLayer(data))
	return tm, nil
}

// AddLayer appends another layer. Its dimensions must match the map.
func (tm *Tilemap) AddLayer(data []uint16) error {
	if len(data) != tm.width*tm.height {
		return fmt.Errorf("flipbook: layer is %d cells, want %dx%d", len(data), tm.width, tm.height)
	}
	tm.layers = append(tm.layers, tm.cleanLayer(data))
	return nil
}

// cleanLayer zeroes cell values that don't address a tile, so rendering
// never has to bounds-check twice.
func (tm *Tilemap) cleanLayer(data []uint16) []uint16 {
	limit := uint16(len(tm.tiles))
	for i, v := range data {
		if v >= limit {
			data[i] = 0
		}
	}
	return data
}

// Cell returns the value at (col, row) in the given layer, or 0 when out
// of range.
func (tm *Tilemap) Cell(layer, col, row int) uint16 {
	if layer < 0 || layer >= len(tm.layers) || col < 0 || col >= tm.width || row < 0 || row >= tm.height {
		return 0
	}
	return tm.layers[layer][row*tm.width+col]
}

// SetCell writes the value at (col, row) in the given layer. Out-of-range
// positions and tile values are ignored.
func (tm *Tilemap) SetCell(layer, col, row int, v uint16) {
	if layer < 0 || layer >= len(tm.layers) || col < 0 || col >= tm.width || row < 0 || row >= tm.height {
		return
	}
	if int(v) >= len(tm.tiles) {
		return
	}
	tm.layers[layer][row*tm.width+col] = v
}

// Width returns the map width in cells.
func (tm *Tilemap) Width() int { return tm.width }

// Height returns the map height in cells.
func (tm *Tilemap) Height() int { return tm.height }

// TileWidth returns the tile width in pixels.
func (tm *Tilemap) TileWidth() int { return tm.tileW }

// TileHeight returns the tile height in pixels.
func (tm *Tilemap) TileHeight() int { return tm.tileH }

// WorldWidth returns the map width in world pixels.
func (tm *Tilemap) WorldWidth() float64 { return float64(tm.width * tm.tileW) }

// WorldHeight returns the map height in world pixels.
func (tm *Tilemap) WorldHeight() float64 { return float64(tm.height * tm.tileH) }

// ParseOpts controls ParseTilemapString. Zero value: comma-delimited cells,
// newline-delimited rows, invalid cells become 0, short rows are padded.
type ParseOpts struct {
	Delimiter string // cell separator, default ","
	LineBreak string // row separator, default "\n"
	Default   uint16 // replacement for invalid or missing cells
	Trim      bool   // trim rows to the shortest instead of padding
}

// ParseTilemapString parses a grid of integers into row-major layer data.
// Returns the data plus the resulting width and height in cells. This is
// the library's own setup format; external map formats (TMX and friends)
// are the caller's business.
func ParseTilemapString(data string, opts ParseOpts) ([]uint16, int, int, error) {
	delim := opts.Delimiter
	if delim == "" {
		delim = ","
	}
	lineBreak := opts.LineBreak
	if lineBreak == "" {
		lineBreak = "\n"
	}

	var rows [][]uint16
	longest := 0
	shortest := -1
	for _, line := range strings.Split(strings.Trim(data, " \n"), lineBreak) {
		cells := strings.Split(strings.Trim(line, " ,"), delim)
		row := make([]uint16, 0, len(cells))
		for _, c := range cells {
			v, err := strconv.Atoi(strings.TrimSpace(c))
			if err != nil || v < 0 {
				row = append(row, opts.Default)
				continue
			}
			row = append(row, uint16(v))
		}
		if len(row) > longest {
			longest = len(row)
		}
		if shortest < 0 || len(row) < shortest {
			shortest = len(row)
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 || longest == 0 {
		return nil, 0, 0, fmt.Errorf("flipbook: tilemap string has no cells")
	}

	width := longest
	if opts.Trim {
		width = shortest
	}
	out := make([]uint16, 0, width*len(rows))
	for _, row := range rows {
		for x := 0; x < width; x++ {
			if x < len(row) {
				out = append(out, row[x])
			} else {
				out = append(out, opts.Default)
			}
		}
	}
	return out, width, len(rows), nil
}

// RenderOpts adjusts RenderTilemap: the camera view options plus an
// optional wrap-around background drawn behind the tiles.
type RenderOpts struct {
	ViewOpts
	Background *ebiten.Image
}

// RenderTilemap draws the visible window of the tilemap through the camera
// and returns the effective view, which callers should reuse for every
// co-rendered layer (sprites via Sprite.SetView, parallax backgrounds) so
// all of them see the same effective camera.
//
// When the camera has no world size set, the tilemap's own bounds are used
// for clamping.
func RenderTilemap(sink Sink, tm *Tilemap, cam *Camera, opts RenderOpts) View {
	c := *cam
	if c.WorldWidth == 0 {
		c.WorldWidth = tm.WorldWidth()
	}
	if c.WorldHeight == 0 {
		c.WorldHeight = tm.WorldHeight()
	}
	view := c.View(opts.ViewOpts)

	if opts.Background != nil {
		TileBackground(sink, opts.Background, view)
	}

	tileW := int(float64(tm.tileW) * view.Zoom)
	tileH := int(float64(tm.tileH) * view.Zoom)
	if tileW < 1 || tileH < 1 {
		return view
	}

	// +2 covers partial tiles at both edges when the camera is not
	// tile-aligned.
	cellsWide := int(view.Dest.Width)/tileW + 2
	cellsHigh := int(view.Dest.Height)/tileH + 2

	startCol, offsetX := floorDivMod(int(view.Offset.X), tileW)
	startRow, offsetY := floorDivMod(int(view.Offset.Y), tileH)
	if startCol < 0 {
		offsetX += startCol * tileW
		startCol = 0
	}
	if startRow < 0 {
		offsetY += startRow * tileH
		startRow = 0
	}

	endCol := startCol + cellsWide
	if endCol > tm.width {
		endCol = tm.width
	}
	endRow := startRow + cellsHigh
	if endRow > tm.height {
		endRow = tm.height
	}

	for _, layer := range tm.layers {
		dest := Rect{
			Width:  float64(tileW),
			Height: float64(tileH),
		}
		for row := startRow; row < endRow; row++ {
			dest.Y = view.Dest.Y + float64(-offsetY+(row-startRow)*tileH)
			rowOffset := row * tm.width
			for col := startCol; col < endCol; col++ {
				gid := layer[rowOffset+col]
				if gid == 0 {
					continue
				}
				dest.X = view.Dest.X + float64(-offsetX+(col-startCol)*tileW)
				sink.Draw(tm.tiles[gid], dest, 0, false, false, White, 255)
			}
		}
	}

	return view
}

// TileBackground fills the view's destination area by repeating img,
// phase-locked to the view offset so the background scrolls with the
// camera.
func TileBackground(sink Sink, img *ebiten.Image, view View) {
	b := img.Bounds()
	bw := float64(b.Dx()) * view.Zoom
	bh := float64(b.Dy()) * view.Zoom
	if bw <= 0 || bh <= 0 {
		return
	}

	ox := -floorModF(view.Offset.X, bw)
	oy := -floorModF(view.Offset.Y, bh)
	for y := oy; y < view.Dest.Height; y += bh {
		for x := ox; x < view.Dest.Width; x += bw {
			sink.Draw(img, Rect{
				X:      view.Dest.X + x,
				Y:      view.Dest.Y + y,
				Width:  bw,
				Height: bh,
			}, 0, false, false, White, 255)
		}
	}
}

// floorDivMod is integer division that rounds toward negative infinity,
// with the matching non-negative-divisor remainder. Go's operators truncate
// toward zero, which breaks the start-cell math for negative offsets.
func floorDivMod(a, b int) (div, mod int) {
	div = a / b
	mod = a % b
	if mod != 0 && (mod < 0) != (b < 0) {
		div--
		mod += b
	}
	return div, mod
}

// floorModF is the floored-division remainder for float64, always in [0, b).
func floorModF(a, b float64) float64 {
	m := a - b*float64(int(a/b))
	if m < 0 {
		m += b
	}
	return m
}
