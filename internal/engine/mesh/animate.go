package mesh

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/scenegl/pkg/math"
)

// Spin rotates the mesh by the given angles every frame.
func Spin(dx, dy, dz float32) func(*Mesh) {
	step := math.V3(dx, dy, dz)
	return func(m *Mesh) {
		t := m.Transform()
		t.Rotation = t.Rotation.Add(step)
	}
}

// Orbit moves the mesh along a circle of radius around center in the XZ
// plane, advancing speed radians every frame.
func Orbit(center math.Vec3, radius, speed float32) func(*Mesh) {
	var angle float32
	return func(m *Mesh) {
		angle += speed
		sin, cos := math32.Sincos(angle)
		m.Transform().Position = center.Add(math.V3(cos*radius, 0, sin*radius))
	}
}
