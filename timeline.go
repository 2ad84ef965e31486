package flipbook

import "log"

// Pose is the live visual state of an animated entity: the keyframe the
// timeline is currently showing plus the continuous accumulators (position,
// rotation, scale, alpha, color) layered on top of it.
//
// A Pose is owned by exactly one Timeline and mutated only by it. Read it
// each frame via Timeline.Pose after Update.
type Pose struct {
	Frame   FrameRef // image shown this frame
	Index   int      // keyframe index within the active sequence
	Elapsed float64  // milliseconds spent in the current keyframe

	X, Y  float64
	Angle float64 // clockwise degrees
	Scale float64
	Alpha float64 // [0, 255]
	Color RGB
	FlipX bool
	FlipY bool
}

// queueEntry is a pending animation or event. Exactly one of fn and seq is
// set. Entries are drained in FIFO order when the playing sequence's loop
// budget is exhausted.
type queueEntry struct {
	fn        func()
	seq       []Keyframe
	loopCount int
	loopType  LoopType
}

// interruptFrame is the snapshot of an animation suspended by Interrupt,
// restored verbatim when the interrupting sequence completes.
type interruptFrame struct {
	seq       []Keyframe
	index     int
	dir       int
	loopCount int
	loopType  LoopType
	elapsed   float64
}

// Timeline walks a keyframe sequence over time. It owns the loop-direction
// state, the interrupt stack, the animation/event queue, and the Pose.
//
// Timelines are single-threaded: call Update at most once per rendered
// frame, from the same goroutine as every other control call.
type Timeline struct {
	seq       []Keyframe
	loopCount int
	loopType  LoopType
	dir       int // +1 or -1; only BackForth ever flips it
	playing   bool

	pose       Pose
	queue      []queueEntry
	interrupts []interruptFrame
}

// NewTimeline creates an idle timeline with a neutral pose
// (scale 1, alpha 255, white color).
func NewTimeline() *Timeline {
	return &Timeline{
		dir: 1,
		pose: Pose{
			Scale: 1,
			Alpha: 255,
			Color: White,
		},
	}
}

// Pose returns the current pose. Valid after any control call; updated by
// Update.
func (t *Timeline) Pose() Pose {
	return t.pose
}

// Playing reports whether a sequence is actively advancing.
func (t *Timeline) Playing() bool {
	return t.playing
}

// Interrupting reports whether the playing sequence is a one-shot started
// by Interrupt.
func (t *Timeline) Interrupting() bool {
	return t.playing && len(t.interrupts) > 0
}

// QueueLen returns the number of pending queue entries.
func (t *Timeline) QueueLen() int {
	return len(t.queue)
}

// SetPos sets the pose position directly. Velocity rates accumulate on top
// of it.
func (t *Timeline) SetPos(x, y float64) {
	t.pose.X = x
	t.pose.Y = y
}

// SetAnimation replaces the current playback entirely, discarding the queue
// and any pending interrupt restores. The pose picks up the discrete values
// of the first keyframe (last, for Reverse).
//
// An empty sequence is a no-op: animation control runs inside a real-time
// loop, so robustness wins over a hard failure.
func (t *Timeline) SetAnimation(seq []Keyframe, loopCount int, loopType LoopType) {
	if len(seq) == 0 {
		if globalDebug {
			log.Printf("flipbook: SetAnimation with empty sequence ignored")
		}
		return
	}
	t.queue = nil
	t.interrupts = nil
	t.start(seq, loopCount, loopType)
}

// QueueAnimation appends an animation to the queue. It begins once the
// currently playing sequence's loop budget is exhausted and every earlier
// queue entry has been drained. When the timeline is idle the animation
// starts immediately, without touching the queue.
func (t *Timeline) QueueAnimation(seq []Keyframe, loopCount int, loopType LoopType) {
	if len(seq) == 0 {
		if globalDebug {
			log.Printf("flipbook: QueueAnimation with empty sequence ignored")
		}
		return
	}
	if !t.playing {
		t.start(seq, loopCount, loopType)
		return
	}
	t.queue = append(t.queue, queueEntry{seq: seq, loopCount: loopCount, loopType: loopType})
}

// QueueEvent appends a callback to the queue. It runs at the moment it is
// dequeued, before any queued animation behind it begins. Capture arguments
// in the closure.
func (t *Timeline) QueueEvent(fn func()) {
	if fn == nil {
		return
	}
	t.queue = append(t.queue, queueEntry{fn: fn})
}

// ClearQueue drops all pending queue entries without running them.
func (t *Timeline) ClearQueue() {
	t.queue = nil
}

// Interrupt suspends the current playback, plays seq exactly once, and then
// restores the suspended animation at the exact index and elapsed time it
// was captured at. Interrupts nest: interrupting while already interrupting
// pushes another snapshot, and completions unwind in reverse order.
func (t *Timeline) Interrupt(seq []Keyframe, loopType LoopType) {
	if len(seq) == 0 {
		if globalDebug {
			log.Printf("flipbook: Interrupt with empty sequence ignored")
		}
		return
	}
	if t.playing {
		t.interrupts = append(t.interrupts, interruptFrame{
			seq:       t.seq,
			index:     t.pose.Index,
			dir:       t.dir,
			loopCount: t.loopCount,
			loopType:  t.loopType,
			elapsed:   t.pose.Elapsed,
		})
	}
	t.start(seq, 0, loopType)
}

// Stop freezes the pose at its current values and goes idle. Queued entries
// are kept; call ClearQueue to drop them.
func (t *Timeline) Stop() {
	t.playing = false
}

// start begins playback of seq without touching the queue or the interrupt
// stack.
func (t *Timeline) start(seq []Keyframe, loopCount int, loopType LoopType) {
	t.seq = seq
	t.loopCount = loopCount
	t.loopType = loopType
	t.dir = 1
	idx := 0
	if loopType == Reverse {
		idx = len(seq) - 1
	}
	t.pose.Index = idx
	t.pose.Elapsed = 0
	t.playing = true
	t.applyKeyframe(&seq[idx])
}

// applyKeyframe resets the pose's accumulators to the keyframe's discrete
// base values. Fields the keyframe leaves unset keep their accumulated
// values, so e.g. velocity-driven position carries across keyframes.
func (t *Timeline) applyKeyframe(kf *Keyframe) {
	t.pose.Frame = kf.Frame
	t.pose.FlipX = kf.FlipX
	t.pose.FlipY = kf.FlipY
	if kf.Angle != nil {
		t.pose.Angle = *kf.Angle
	}
	if kf.Color != nil {
		t.pose.Color = *kf.Color
	}
	if kf.Alpha != nil {
		t.pose.Alpha = clamp255(*kf.Alpha)
	}
	if kf.Scale != nil {
		t.pose.Scale = *kf.Scale
	}
	if kf.Pos != nil {
		t.pose.X = kf.Pos.X
		t.pose.Y = kf.Pos.Y
	}
}

// Update advances the timeline by deltaMs milliseconds: continuous rates
// first, then as many keyframe boundaries as the delta covers. Large deltas
// are consumed keyframe by keyframe, never dropped; delta <= 0 is a no-op.
func (t *Timeline) Update(deltaMs float64) {
	if !t.playing || deltaMs <= 0 {
		return
	}

	// Continuous accumulation for the keyframe active at call time.
	kf := &t.seq[t.pose.Index]
	dt := deltaMs / 1000
	if kf.Velocity != nil {
		t.pose.X += kf.Velocity.X * dt
		t.pose.Y += kf.Velocity.Y * dt
	}
	if kf.Rotation != nil {
		t.pose.Angle += *kf.Rotation * dt
	}
	if kf.Scaling != nil {
		t.pose.Scale += *kf.Scaling * dt
	}
	if kf.Fading != nil {
		t.pose.Alpha = clamp255(t.pose.Alpha - *kf.Fading*dt)
	}
	if kf.Coloring != nil {
		t.pose.Color.R = clamp255(t.pose.Color.R + kf.Coloring.R*dt)
		t.pose.Color.G = clamp255(t.pose.Color.G + kf.Coloring.G*dt)
		t.pose.Color.B = clamp255(t.pose.Color.B + kf.Coloring.B*dt)
	}

	if kf.Duration <= 0 {
		// Static hold; never advances.
		return
	}
	t.pose.Elapsed += deltaMs

	// Consume keyframe boundaries. Each iteration subtracts one positive
	// duration from the remaining elapsed time, so the loop is bounded by
	// the delta itself.
	for t.playing {
		d := float64(t.seq[t.pose.Index].Duration)
		if d <= 0 || t.pose.Elapsed < d {
			break
		}
		t.pose.Elapsed -= d

		prev := t.pose.Index
		if t.stepIndex() {
			// Crossed the full-sequence boundary.
			if t.loopCount > 0 {
				t.loopCount--
			}
			if t.loopCount == 0 {
				if t.popInterrupt() {
					continue
				}
				if t.drainQueue() {
					continue
				}
				// Nothing left to play: freeze on the last shown keyframe.
				t.pose.Index = prev
				t.playing = false
				break
			}
		}
		t.applyKeyframe(&t.seq[t.pose.Index])
	}
}

// stepIndex advances the keyframe index one step in the direction dictated
// by the loop type. It reports whether the step crossed the full-sequence
// boundary (the point where a finite loop count is spent). On a boundary
// crossing the index is left at the restart position for the next cycle.
func (t *Timeline) stepIndex() bool {
	n := len(t.seq)
	switch t.loopType {
	case Reverse:
		t.pose.Index--
		if t.pose.Index < 0 {
			t.pose.Index = n - 1
			return true
		}
	case BackForth:
		if n == 1 {
			return true
		}
		next := t.pose.Index + t.dir
		if next >= n {
			// Reflect at the far end without repeating it.
			t.dir = -1
			next = n - 2
		} else if next < 0 {
			// Back at the first keyframe: one full cycle done. The next
			// cycle starts moving forward from index 1, so the first
			// keyframe is not shown twice either.
			t.dir = 1
			t.pose.Index = 1
			return true
		}
		t.pose.Index = next
	default: // Forward
		t.pose.Index++
		if t.pose.Index >= n {
			t.pose.Index = 0
			return true
		}
	}
	return false
}

// popInterrupt restores the most recent interrupt snapshot, if any. The
// restored animation resumes at the captured index and elapsed time; any
// overshoot from the interrupting sequence's final keyframe is carried over
// so no elapsed time is dropped.
func (t *Timeline) popInterrupt() bool {
	if len(t.interrupts) == 0 {
		return false
	}
	leftover := t.pose.Elapsed
	fr := t.interrupts[len(t.interrupts)-1]
	t.interrupts = t.interrupts[:len(t.interrupts)-1]

	t.seq = fr.seq
	t.loopCount = fr.loopCount
	t.loopType = fr.loopType
	t.dir = fr.dir
	t.pose.Index = fr.index
	t.pose.Elapsed = fr.elapsed + leftover
	// Show the restored keyframe's image again, but leave the pose
	// accumulators alone: the interrupted animation keeps its progress.
	t.pose.Frame = fr.seq[fr.index].Frame
	return true
}

// drainQueue runs queued events in order until it reaches an animation
// entry, which it starts with the leftover elapsed time carried over.
// Reports whether an animation was started.
func (t *Timeline) drainQueue() bool {
	for len(t.queue) > 0 {
		e := t.queue[0]
		t.queue = t.queue[1:]
		if e.fn != nil {
			e.fn()
			continue
		}
		leftover := t.pose.Elapsed
		t.start(e.seq, e.loopCount, e.loopType)
		t.pose.Elapsed = leftover
		return true
	}
	return false
}
