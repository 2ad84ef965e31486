// Package flipbook is a keyframe animation and 2D presentation library for
// [Ebitengine].
//
// Flipbook drives sprite animation from immutable keyframe sequences: each
// keyframe names an image, a hold duration, discrete visual values (angle,
// color, alpha, scale, position, flips) applied when it begins, and
// continuous per-second rates (velocity, rotation, scaling, fading, color
// cycling) accumulated while it is held. A [Timeline] walks a sequence with
// looping, queuing, and interrupts; a [Sprite] binds a timeline to a frame
// list and draws the result.
//
// # Quick start
//
// Slice a sprite sheet, build a sequence, and play it:
//
//	frames := flipbook.SheetFrames(sheet, 32, 32, 0, 0, false)
//	hero := flipbook.NewSprite(frames)
//
//	walk, _ := flipbook.FrameRange(4, 9, 100, flipbook.FrameOpts{
//		Velocity: flipbook.V(40, 0),
//	})
//	hero.SetAnimation(walk, flipbook.LoopForever, flipbook.Forward)
//
// Then, inside your [ebiten.Game]:
//
//	func (g *Game) Update() error {
//		g.hero.Update(1000.0 / float64(ebiten.TPS()))
//		return nil
//	}
//
//	func (g *Game) Draw(screen *ebiten.Image) {
//		g.hero.Draw(flipbook.Screen{Target: screen})
//	}
//
// # Playback control
//
// [Timeline.SetAnimation] replaces playback immediately.
// [Timeline.QueueAnimation] and [Timeline.QueueEvent] chain sequences and
// callbacks to run after the current animation's loops are spent.
// [Timeline.Interrupt] plays a sequence once and then resumes the suspended
// animation exactly where it left off. Time is never dropped: leftover
// milliseconds from a finished sequence carry into whatever plays next.
//
// # Cameras and tilemaps
//
// [Camera] maps a world offset and zoom onto a screen viewport, with
// centering, clamping to world bounds, and gween-driven [Camera.ScrollTo]
// and [Camera.ZoomTo] animations. [RenderTilemap] draws the visible window
// of a [Tilemap] and returns the effective [View]; hand that view to
// world-space sprites via [Sprite.SetView] so every co-rendered layer sees
// the same camera.
//
// # Text and UI
//
// [TextureFont] pre-rasterizes a TTF/OTF font into a texture strip and draws
// text one blit per character; [TextureFont.Animate] adds per-character
// motion, scaling, rotation, color cycling, and fading. [NinePatch]
// stretches panel artwork without warping its corners.
//
// Animation data can also live in YAML files next to the art; see
// [LoadSequences].
//
// [Ebitengine]: https://ebitengine.org
package flipbook
