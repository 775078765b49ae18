// Package camera provides camera implementations for 3D rendering.
package camera

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/scenegl/pkg/math"
)

// Keys holds the movement keys held down this frame.
type Keys struct {
	Forward bool
	Back    bool
	Left    bool
	Right   bool
}

// axes returns the forward and right movement factors in {-1, 0, 1}.
func (k Keys) axes() (forward, right float32) {
	if k.Forward {
		forward++
	}
	if k.Back {
		forward--
	}
	if k.Right {
		right++
	}
	if k.Left {
		right--
	}
	return forward, right
}

// Controller turns user input into a view matrix once per frame.
type Controller interface {
	// SetKeys replaces the held movement keys.
	SetKeys(k Keys)
	// HandleMouse applies relative mouse motion in pixels.
	HandleMouse(dx, dy float32)
	// HandleWheel applies scroll wheel motion.
	HandleWheel(delta float32)
	// SetGrabbed tells the camera whether the mouse is captured.
	SetGrabbed(grabbed bool)
	// Update applies movement and returns the view matrix.
	Update() math.Mat4
	// Eye returns the camera position in world space.
	Eye() math.Vec3
}

// Projection returns a perspective projection with a vertical field of
// view in radians.
func Projection(fovY, aspect, near, far float32) math.Mat4 {
	return math.Perspective(fovY, aspect, near, far)
}

// OrbitCamera orbits around a center point.
type OrbitCamera struct {
	// Center point to orbit around
	Center math.Vec3

	// Spherical coordinates
	Distance  float32 // Distance from center
	RotationX float32 // Pitch (vertical angle, radians)
	RotationY float32 // Yaw (horizontal angle, radians)

	// Constraints
	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	// Sensitivity
	DragSensitivity float32
	ZoomSensitivity float32

	keys     Keys
	dragging bool
}

var _ Controller = (*OrbitCamera)(nil)

// NewOrbitCamera creates a new orbit camera with default settings.
func NewOrbitCamera() *OrbitCamera {
	return &OrbitCamera{
		Distance:        6.0,
		RotationX:       0.4,
		RotationY:       0.0,
		MinDistance:     1.0,
		MaxDistance:     50.0,
		MinPitch:        -1.5,
		MaxPitch:        1.5,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
	}
}

// Eye returns the camera position in world space.
func (c *OrbitCamera) Eye() math.Vec3 {
	sinX, cosX := math32.Sincos(c.RotationX)
	sinY, cosY := math32.Sincos(c.RotationY)
	return c.Center.Add(math.V3(cosX*sinY, sinX, cosX*cosY).Scale(c.Distance))
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Eye(), c.Center, math.V3(0, 1, 0))
}

// Update pans with the held keys and returns the view matrix.
func (c *OrbitCamera) Update() math.Mat4 {
	forward, right := c.keys.axes()
	if forward != 0 || right != 0 {
		c.HandleMovement(forward, right, 0)
	}
	return c.ViewMatrix()
}

// SetKeys replaces the held movement keys.
func (c *OrbitCamera) SetKeys(k Keys) { c.keys = k }

// SetGrabbed starts or stops a drag.
func (c *OrbitCamera) SetGrabbed(grabbed bool) { c.dragging = grabbed }

// HandleMouse rotates the camera while dragging.
func (c *OrbitCamera) HandleMouse(dx, dy float32) {
	if c.dragging {
		c.HandleDrag(dx, dy)
	}
}

// HandleWheel zooms.
func (c *OrbitCamera) HandleWheel(delta float32) { c.HandleZoom(delta) }

// HandleDrag updates rotation based on mouse drag delta.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	c.RotationY -= deltaX * c.DragSensitivity
	c.RotationX += deltaY * c.DragSensitivity
	c.RotationX = clamp(c.RotationX, c.MinPitch, c.MaxPitch)
}

// HandleZoom updates distance based on scroll wheel delta.
func (c *OrbitCamera) HandleZoom(delta float32) {
	c.Distance -= delta * c.Distance * c.ZoomSensitivity
	c.Distance = clamp(c.Distance, c.MinDistance, c.MaxDistance)
}

// HandleMovement pans the camera center point.
func (c *OrbitCamera) HandleMovement(forward, right, up float32) {
	// Speed scales with distance for consistent feel
	speed := c.Distance * 0.01

	sinY, cosY := math32.Sincos(c.RotationY)

	// Negate forward so it moves toward the center
	c.Center.X += (-sinY*forward + cosY*right) * speed
	c.Center.Z += (-cosY*forward - sinY*right) * speed
	c.Center.Y += up * speed
}

// FitToBounds centers the camera on a bounding box.
func (c *OrbitCamera) FitToBounds(lo, hi math.Vec3) {
	c.Center = lo.Add(hi).Scale(0.5)
	c.Distance = clamp(hi.Sub(lo).Length()*1.5, c.MinDistance, c.MaxDistance)
	c.RotationX = 0.4
	c.RotationY = 0
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
