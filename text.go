package flipbook

import (
	"fmt"
	"image"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// charMap is the set of runes rasterized into a TextureFont, in strip order.
const charMap = ` ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789.,?!-:'"=+<>~@/\|`

// glyph is one rasterized character: a sub-image of the font strip plus its
// advance width.
type glyph struct {
	img   *ebiten.Image
	width float64
}

// TextureFont renders text from a single pre-rasterized texture strip, one
// blit per character. Rasterization happens once at construction; drawing
// never touches the font again.
type TextureFont struct {
	glyphs map[rune]glyph
	blank  glyph
	height float64
}

// NewTextureFont rasterizes a TTF/OTF font at the given point size into a
// texture strip covering charMap. Runes outside the map draw as a space.
func NewTextureFont(ttf []byte, size float64) (*TextureFont, error) {
	parsed, err := opentype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("flipbook: failed to parse font: %w", err)
	}
	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("flipbook: failed to create font face: %w", err)
	}
	defer face.Close()

	metrics := face.Metrics()
	height := (metrics.Ascent + metrics.Descent).Ceil()
	ascent := metrics.Ascent.Ceil()

	// First pass: total strip width.
	total := 0
	widths := make([]int, 0, len(charMap))
	for _, r := range charMap {
		adv, ok := face.GlyphAdvance(r)
		if !ok {
			adv = 0
		}
		w := adv.Ceil()
		widths = append(widths, w)
		total += w
	}
	if total == 0 || height == 0 {
		return nil, fmt.Errorf("flipbook: font rasterized to an empty strip")
	}

	// Second pass: draw every glyph side by side into one RGBA strip.
	strip := image.NewRGBA(image.Rect(0, 0, total, height))
	drawer := font.Drawer{
		Dst:  strip,
		Src:  image.White,
		Face: face,
	}
	x := 0
	offsets := make([]int, 0, len(charMap))
	for i, r := range charMap {
		offsets = append(offsets, x)
		drawer.Dot = fixed.P(x, ascent)
		drawer.DrawString(string(r))
		x += widths[i]
	}

	texture := ebiten.NewImageFromImage(strip)
	tf := &TextureFont{
		glyphs: make(map[rune]glyph, len(charMap)),
		height: float64(height),
	}
	for i, r := range charMap {
		sub := texture.SubImage(image.Rect(offsets[i], 0, offsets[i]+widths[i], height)).(*ebiten.Image)
		tf.glyphs[r] = glyph{img: sub, width: float64(widths[i])}
	}
	tf.blank = tf.glyphs[' ']
	return tf, nil
}

// Height returns the line height in pixels.
func (tf *TextureFont) Height() float64 {
	return tf.height
}

// Width returns the width of text in pixels, not counting motion or
// scaling effects.
func (tf *TextureFont) Width(text string) float64 {
	var w float64
	for _, r := range text {
		w += tf.glyphAt(r).width
	}
	return w
}

func (tf *TextureFont) glyphAt(r rune) glyph {
	if g, ok := tf.glyphs[r]; ok {
		return g
	}
	return tf.blank
}

// Draw renders text at (x, y) with the given color and alpha. centered
// treats x as the horizontal center of the string.
func (tf *TextureFont) Draw(sink Sink, text string, x, y float64, color RGB, alpha float64, centered bool) {
	if centered {
		x -= tf.Width(text) / 2
	}
	for _, r := range text {
		g := tf.glyphAt(r)
		if g.width > 0 {
			sink.Draw(g.img, Rect{X: x, Y: y, Width: g.width, Height: tf.height}, 0, false, false, color, alpha)
		}
		x += g.width
	}
}

// TextFX parameterizes Animate. All effects ride a shared triangle wave
// with cycle length Duration; Variance staggers the wave per character so
// the string ripples instead of pulsing in unison.
type TextFX struct {
	// Color is the base text color. The zero value draws black; use White
	// for the usual default.
	Color RGB
	// Alpha is the base alpha; 0 means fully opaque (255).
	Alpha float64
	// Duration is the full animation cycle in milliseconds (default 3000).
	Duration float64
	// Now is the current clock reading in milliseconds. The caller owns the
	// clock; pass the same value to every Animate call within a frame.
	Now float64
	// Timer offsets the clock, to desynchronize multiple animations.
	Timer float64
	// Variance is the percent of Duration to stagger each character by.
	Variance float64
	// Scale is the percent of glyph size to grow at the wave peak.
	Scale float64
	// Rotate is the rotation in degrees swept between -Rotate and +Rotate.
	Rotate float64
	// Colors shifts each channel by up to the given amount at the wave peak.
	Colors *RGB
	// Move displaces characters by up to (±X, ±Y) pixels.
	Move *Vec2
	// Circle moves characters along a circle of this radius (overrides Move).
	Circle float64
	// Fade reduces alpha by up to this amount at the wave peak.
	Fade float64
	// Centered treats x as the horizontal center of the string.
	Centered bool
}

// Animate renders text with per-character motion, scaling, rotation, color
// cycling, and fading. Stateless: the effect phase is derived entirely from
// fx.Now, so callers just re-invoke it every frame.
func (tf *TextureFont) Animate(sink Sink, text string, x, y float64, fx TextFX) {
	duration := fx.Duration
	if duration <= 0 {
		duration = 3000
	}
	baseAlpha := fx.Alpha
	if baseAlpha <= 0 {
		baseAlpha = 255
	}
	if fx.Centered {
		x -= tf.Width(text) / 2
	}

	base := colorful.Color{R: fx.Color.R / 255, G: fx.Color.G / 255, B: fx.Color.B / 255}
	var shifted colorful.Color
	if fx.Colors != nil {
		shifted = colorful.Color{
			R: clamp255(fx.Color.R+fx.Colors.R) / 255,
			G: clamp255(fx.Color.G+fx.Colors.G) / 255,
			B: clamp255(fx.Color.B+fx.Colors.B) / 255,
		}
	}

	variance := duration * fx.Variance / 100
	scale := fx.Scale / 100
	change := 0.0

	for _, r := range text {
		g := tf.glyphAt(r)

		// Triangle wave: 0 → 1 → 0 across one duration cycle.
		percent := floorModF(fx.Now-fx.Timer+change, duration) / duration
		amount := 1 - math.Abs(-1+percent*2)

		var angle float64
		if fx.Rotate != 0 {
			angle = -fx.Rotate + (fx.Rotate*2)*amount
		}

		color := fx.Color
		if fx.Colors != nil {
			blended := base.BlendRgb(shifted, amount).Clamped()
			color = RGB{R: blended.R * 255, G: blended.G * 255, B: blended.B * 255}
		}

		alpha := baseAlpha
		if fx.Fade != 0 {
			alpha = clamp255(baseAlpha - fx.Fade*amount)
		}

		rx, ry := x, y
		if fx.Circle != 0 {
			ang := 2 * math.Pi * percent
			rx = x + math.Sin(ang)*fx.Circle
			ry = y + math.Cos(ang)*fx.Circle
		} else if fx.Move != nil {
			rx = x + (-fx.Move.X + (fx.Move.X*2)*amount)
			ry = y + (-fx.Move.Y + (fx.Move.Y*2)*amount)
		}

		dest := Rect{X: rx, Y: ry, Width: g.width, Height: tf.height}
		if scale != 0 {
			sx := scale * amount * g.width
			sy := scale * amount * tf.height
			dest.X -= sx
			dest.Y -= sy
			dest.Width += sx * 2
			dest.Height += sy * 2
		}

		if g.width > 0 {
			sink.Draw(g.img, dest, angle, false, false, color, alpha)
		}
		x += g.width
		change += variance
	}
}
