package mesh

import "github.com/Faultbox/scenegl/pkg/math"

// Transform places a mesh in the world. Rotation holds Euler angles in
// radians applied X, then Y, then Z.
type Transform struct {
	Position math.Vec3
	Rotation math.Vec3
	Scale    math.Vec3
}

// DefaultTransform is positioned at the origin with unit scale.
func DefaultTransform() Transform {
	return Transform{Scale: math.V3(1, 1, 1)}
}

// Matrix returns translate * rotX * rotY * rotZ * scale.
func (t Transform) Matrix() math.Mat4 {
	return math.Translate(t.Position).
		Mul(math.RotateX(t.Rotation.X)).
		Mul(math.RotateY(t.Rotation.Y)).
		Mul(math.RotateZ(t.Rotation.Z)).
		Mul(math.Scale(t.Scale))
}
