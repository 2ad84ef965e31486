package flipbook

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Sequence data files describe named keyframe sequences in YAML, so
// animation data can live next to the art instead of in code:
//
//	walk:
//	  duration: 100
//	  range: [4, 9]
//	  opts: {velocity: [40, 0]}
//	blink:
//	  duration: 60
//	  frames:
//	    - {frame: eyes_open}
//	    - {frame: eyes_shut, alpha: 200}
//
// Sequences built from files and sequences built in code go through the
// same builders, so they are structurally identical and interchangeable.

// defaultFrameDuration is used when a sequence sets no duration, matching
// the builders' common usage.
const defaultFrameDuration = 1000

// yamlRef decodes a frame reference that may be an integer index or a name.
type yamlRef struct {
	ref FrameRef
}

func (r *yamlRef) UnmarshalYAML(value *yaml.Node) error {
	var idx int
	if err := value.Decode(&idx); err == nil {
		r.ref = FrameRef{Index: idx}
		return nil
	}
	var name string
	if err := value.Decode(&name); err != nil {
		return fmt.Errorf("frame must be an index or a name: %w", err)
	}
	r.ref = FrameRef{Name: name}
	return nil
}

// yamlOpts mirrors FrameOpts with YAML-friendly field types.
type yamlOpts struct {
	Angle    *float64  `yaml:"angle"`
	FlipX    bool      `yaml:"flip_x"`
	FlipY    bool      `yaml:"flip_y"`
	Color    []float64 `yaml:"color"`
	Alpha    *float64  `yaml:"alpha"`
	Scale    *float64  `yaml:"scale"`
	Pos      []float64 `yaml:"pos"`
	Velocity []float64 `yaml:"velocity"`
	Rotation *float64  `yaml:"rotation"`
	Scaling  *float64  `yaml:"scaling"`
	Fading   *float64  `yaml:"fading"`
	Coloring []float64 `yaml:"coloring"`
}

func (o yamlOpts) toOpts() (FrameOpts, error) {
	opts := FrameOpts{
		Angle:    o.Angle,
		FlipX:    o.FlipX,
		FlipY:    o.FlipY,
		Alpha:    o.Alpha,
		Scale:    o.Scale,
		Rotation: o.Rotation,
		Scaling:  o.Scaling,
		Fading:   o.Fading,
	}
	var err error
	if opts.Color, err = tripletPtr("color", o.Color); err != nil {
		return opts, err
	}
	if opts.Coloring, err = tripletPtr("coloring", o.Coloring); err != nil {
		return opts, err
	}
	if opts.Pos, err = pairPtr("pos", o.Pos); err != nil {
		return opts, err
	}
	if opts.Velocity, err = pairPtr("velocity", o.Velocity); err != nil {
		return opts, err
	}
	return opts, nil
}

func tripletPtr(field string, v []float64) (*RGB, error) {
	if v == nil {
		return nil, nil
	}
	if len(v) != 3 {
		return nil, fmt.Errorf("%s wants [r, g, b], got %d values", field, len(v))
	}
	return &RGB{R: v[0], G: v[1], B: v[2]}, nil
}

func pairPtr(field string, v []float64) (*Vec2, error) {
	if v == nil {
		return nil, nil
	}
	if len(v) != 2 {
		return nil, fmt.Errorf("%s wants [x, y], got %d values", field, len(v))
	}
	return &Vec2{X: v[0], Y: v[1]}, nil
}

// yamlFrame is one entry in a frames list: a reference plus optional
// per-frame overrides.
type yamlFrame struct {
	Frame    yamlRef  `yaml:"frame"`
	Duration *int     `yaml:"duration"`
	yamlOpts `yaml:",inline"`
}

// yamlSeq is one named sequence definition. Exactly one of Range and
// Frames must be set.
type yamlSeq struct {
	Duration int         `yaml:"duration"`
	Range    []int       `yaml:"range"`
	Frames   []yamlFrame `yaml:"frames"`
	Opts     yamlOpts    `yaml:"opts"`
}

// LoadSequences parses a YAML sequence file into named keyframe sequences.
// Unknown keys are rejected, so typos fail at load time instead of being
// silently ignored. The returned sequences are validated by the same rules
// as the in-code builders.
func LoadSequences(data []byte) (map[string][]Keyframe, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var file map[string]yamlSeq
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("flipbook: failed to parse sequence file: %w", err)
	}

	out := make(map[string][]Keyframe, len(file))
	for name, def := range file {
		seq, err := buildSequence(def)
		if err != nil {
			return nil, fmt.Errorf("flipbook: sequence %q: %w", name, err)
		}
		out[name] = seq
	}
	return out, nil
}

func buildSequence(def yamlSeq) ([]Keyframe, error) {
	duration := def.Duration
	if duration == 0 {
		duration = defaultFrameDuration
	}
	shared, err := def.Opts.toOpts()
	if err != nil {
		return nil, err
	}

	switch {
	case def.Range != nil && def.Frames != nil:
		return nil, fmt.Errorf("range and frames are mutually exclusive")
	case def.Range != nil:
		if len(def.Range) != 2 {
			return nil, fmt.Errorf("range wants [start, end], got %d values", len(def.Range))
		}
		return FrameRange(def.Range[0], def.Range[1], duration, shared)
	case def.Frames != nil:
		seq := make([]Keyframe, 0, len(def.Frames))
		for i, fr := range def.Frames {
			opts, err := mergeOpts(def.Opts, fr.yamlOpts)
			if err != nil {
				return nil, fmt.Errorf("frame %d: %w", i, err)
			}
			d := duration
			if fr.Duration != nil {
				d = *fr.Duration
			}
			if len(def.Frames) > 1 && d <= 0 {
				return nil, ErrInvalidKeyframe
			}
			seq = append(seq, Key(fr.Frame.ref, d, opts))
		}
		return seq, nil
	default:
		return nil, fmt.Errorf("sequence needs a range or a frames list")
	}
}

// mergeOpts overlays per-frame options on the sequence's shared options.
// Set per-frame fields win; unset ones inherit.
func mergeOpts(shared yamlOpts, frame yamlOpts) (FrameOpts, error) {
	merged := shared
	if frame.Angle != nil {
		merged.Angle = frame.Angle
	}
	if frame.FlipX {
		merged.FlipX = true
	}
	if frame.FlipY {
		merged.FlipY = true
	}
	if frame.Color != nil {
		merged.Color = frame.Color
	}
	if frame.Alpha != nil {
		merged.Alpha = frame.Alpha
	}
	if frame.Scale != nil {
		merged.Scale = frame.Scale
	}
	if frame.Pos != nil {
		merged.Pos = frame.Pos
	}
	if frame.Velocity != nil {
		merged.Velocity = frame.Velocity
	}
	if frame.Rotation != nil {
		merged.Rotation = frame.Rotation
	}
	if frame.Scaling != nil {
		merged.Scaling = frame.Scaling
	}
	if frame.Fading != nil {
		merged.Fading = frame.Fading
	}
	if frame.Coloring != nil {
		merged.Coloring = frame.Coloring
	}
	return merged.toOpts()
}
