// Package layout reads scene descriptions from YAML and builds their
// drawables.
package layout

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/scenegl/pkg/math"
)

//go:embed default.yaml
var defaultLayout []byte

// Kind selects the shape of an object.
type Kind string

const (
	KindCube    Kind = "cube"
	KindWall    Kind = "wall"
	KindPyramid Kind = "pyramid"
)

// Scene is a parsed scene file.
type Scene struct {
	ClearColor []float32 `yaml:"clear_color"`
	Objects    []Object  `yaml:"objects"`
}

// Object describes one drawable.
type Object struct {
	Name        string    `yaml:"name"`
	Kind        Kind      `yaml:"kind"`
	Position    []float32 `yaml:"position"`
	Rotation    []float32 `yaml:"rotation"`
	Scale       []float32 `yaml:"scale"`
	Color       []float32 `yaml:"color"`
	Texture     string    `yaml:"texture"`
	Spin        []float32 `yaml:"spin"`
	OrbitRadius float32   `yaml:"orbit_radius"`
	OrbitSpeed  float32   `yaml:"orbit_speed"`
	Size        float32   `yaml:"size"`
}

// ErrNoObjects is returned for a scene without objects.
var ErrNoObjects = errors.New("layout: scene has no objects")

// ObjectError reports an invalid object.
type ObjectError struct {
	Index int
	Name  string
	Err   error
}

func (e *ObjectError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("layout: object %d (%s): %v", e.Index, e.Name, e.Err)
	}
	return fmt.Sprintf("layout: object %d: %v", e.Index, e.Err)
}

func (e *ObjectError) Unwrap() error { return e.Err }

// Default returns the built-in demo room.
func Default() *Scene {
	s, err := Parse(defaultLayout)
	if err != nil {
		panic(fmt.Sprintf("layout: embedded default is invalid: %v", err))
	}
	return s
}

// Load reads and parses a scene file.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scene: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse decodes YAML and validates the result. Unknown fields are errors.
func Parse(data []byte) (*Scene, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var s Scene
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("parsing scene: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks every object.
func (s *Scene) Validate() error {
	if len(s.ClearColor) != 0 {
		if err := checkColor("clear_color", s.ClearColor); err != nil {
			return fmt.Errorf("layout: %w", err)
		}
	}
	if len(s.Objects) == 0 {
		return ErrNoObjects
	}
	for i, o := range s.Objects {
		if err := o.Validate(); err != nil {
			return &ObjectError{Index: i, Name: o.Name, Err: err}
		}
	}
	return nil
}

// ClearRGBA returns the clear color, opaque black when unset.
func (s *Scene) ClearRGBA() [4]float32 {
	if len(s.ClearColor) == 0 {
		return [4]float32{0, 0, 0, 1}
	}
	return rgba(s.ClearColor)
}

// Validate checks the kind and vector lengths.
func (o Object) Validate() error {
	switch o.Kind {
	case KindCube, KindWall, KindPyramid:
	case "":
		return errors.New("missing kind")
	default:
		return fmt.Errorf("unknown kind %q", o.Kind)
	}

	for _, v := range []struct {
		field string
		value []float32
	}{
		{"position", o.Position},
		{"rotation", o.Rotation},
		{"scale", o.Scale},
		{"spin", o.Spin},
	} {
		if len(v.value) != 0 && len(v.value) != 3 {
			return fmt.Errorf("%s has %d components, want 3", v.field, len(v.value))
		}
	}
	if len(o.Color) != 0 {
		if err := checkColor("color", o.Color); err != nil {
			return err
		}
	}

	if o.Kind == KindPyramid {
		if o.Texture != "" || len(o.Color) != 0 || len(o.Spin) != 0 {
			return errors.New("pyramid does not support texture, color or spin")
		}
	}
	if o.Size < 0 {
		return fmt.Errorf("negative size %v", o.Size)
	}
	if o.OrbitRadius < 0 {
		return fmt.Errorf("negative orbit_radius %v", o.OrbitRadius)
	}
	return nil
}

func checkColor(field string, c []float32) error {
	if len(c) != 3 && len(c) != 4 {
		return fmt.Errorf("%s has %d components, want 3 or 4", field, len(c))
	}
	for _, v := range c {
		if v < 0 || v > 1 {
			return fmt.Errorf("%s component %v outside [0, 1]", field, v)
		}
	}
	return nil
}

func rgba(c []float32) [4]float32 {
	out := [4]float32{0, 0, 0, 1}
	copy(out[:], c)
	return out
}

func vec3(v []float32, fallback math.Vec3) math.Vec3 {
	if len(v) != 3 {
		return fallback
	}
	return math.V3(v[0], v[1], v[2])
}
