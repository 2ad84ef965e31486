package flipbook

import (
	"errors"
	"testing"
)

func TestFrameRangeMatchesExplicitFrames(t *testing.T) {
	ranged, err := FrameRange(3, 7, 100, FrameOpts{FlipX: true})
	if err != nil {
		t.Fatalf("FrameRange: %v", err)
	}
	explicit, err := Frames(Refs(3, 4, 5, 6, 7), 100, FrameOpts{FlipX: true})
	if err != nil {
		t.Fatalf("Frames: %v", err)
	}
	if len(ranged) != len(explicit) {
		t.Fatalf("len = %d, want %d", len(ranged), len(explicit))
	}
	for i := range ranged {
		if ranged[i].Frame != explicit[i].Frame || ranged[i].Duration != explicit[i].Duration || ranged[i].FlipX != explicit[i].FlipX {
			t.Errorf("keyframe %d differs: %+v vs %+v", i, ranged[i], explicit[i])
		}
	}
}

func TestFrameRangeIsInclusive(t *testing.T) {
	seq, err := FrameRange(2, 5, 50, FrameOpts{})
	if err != nil {
		t.Fatalf("FrameRange: %v", err)
	}
	if len(seq) != 4 {
		t.Fatalf("len = %d, want 4 (both ends included)", len(seq))
	}
	if seq[0].Frame.Index != 2 || seq[3].Frame.Index != 5 {
		t.Errorf("range covers %d..%d, want 2..5", seq[0].Frame.Index, seq[3].Frame.Index)
	}
}

func TestFrameRangeSingleFrame(t *testing.T) {
	seq, err := FrameRange(4, 4, 100, FrameOpts{})
	if err != nil {
		t.Fatalf("FrameRange: %v", err)
	}
	if len(seq) != 1 || seq[0].Frame.Index != 4 {
		t.Errorf("seq = %+v, want a single keyframe at index 4", seq)
	}
}

func TestFrameRangeRejectsBackwardRange(t *testing.T) {
	_, err := FrameRange(7, 3, 100, FrameOpts{})
	if !errors.Is(err, ErrInvalidRange) {
		t.Errorf("err = %v, want ErrInvalidRange", err)
	}
}

func TestFramesRejectsZeroDurationMulti(t *testing.T) {
	_, err := Frames(Refs(0, 1), 0, FrameOpts{})
	if !errors.Is(err, ErrInvalidKeyframe) {
		t.Errorf("err = %v, want ErrInvalidKeyframe", err)
	}
}

func TestSingleFrameZeroDurationAllowed(t *testing.T) {
	seq, err := Frames(Refs(5), 0, FrameOpts{})
	if err != nil {
		t.Fatalf("Frames: %v", err)
	}
	if len(seq) != 1 || seq[0].Duration != 0 {
		t.Errorf("seq = %+v, want one zero-duration keyframe", seq)
	}
}

func TestKeyCopiesAllOptions(t *testing.T) {
	kf := Key(FrameRef{Index: 2}, 80, FrameOpts{
		Angle:    F(30),
		FlipY:    true,
		Color:    C(200, 100, 50),
		Alpha:    F(128),
		Scale:    F(1.5),
		Pos:      V(10, 20),
		Velocity: V(40, 0),
		Rotation: F(90),
		Scaling:  F(0.1),
		Fading:   F(25),
		Coloring: C(1, 2, 3),
	})
	if kf.Frame.Index != 2 || kf.Duration != 80 {
		t.Errorf("frame/duration = %d/%d, want 2/80", kf.Frame.Index, kf.Duration)
	}
	if kf.Angle == nil || *kf.Angle != 30 {
		t.Error("Angle not copied")
	}
	if !kf.FlipY || kf.FlipX {
		t.Error("flips not copied")
	}
	if kf.Color == nil || kf.Color.R != 200 {
		t.Error("Color not copied")
	}
	if kf.Pos == nil || kf.Pos.Y != 20 {
		t.Error("Pos not copied")
	}
	if kf.Velocity == nil || kf.Velocity.X != 40 {
		t.Error("Velocity not copied")
	}
	if kf.Coloring == nil || kf.Coloring.B != 3 {
		t.Error("Coloring not copied")
	}
}

func TestNameRefs(t *testing.T) {
	refs := NameRefs("idle", "blink")
	if len(refs) != 2 || refs[0].Name != "idle" || refs[1].Name != "blink" {
		t.Errorf("refs = %+v", refs)
	}
	seq, err := Frames(refs, 100, FrameOpts{})
	if err != nil {
		t.Fatalf("Frames: %v", err)
	}
	if seq[1].Frame.Name != "blink" {
		t.Errorf("Frame.Name = %q, want blink", seq[1].Frame.Name)
	}
}
