package camera

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/scenegl/pkg/math"
)

// First-person defaults.
const (
	DefaultVelocity    = 0.03  // world units per frame
	DefaultSensitivity = 0.002 // radians per pixel
)

// FirstPerson is a free-look camera steered by WASD and relative mouse
// motion. Movement is applied per frame, not per second.
type FirstPerson struct {
	Position    math.Vec3
	Yaw         float32
	Pitch       float32
	Up          math.Vec3
	Velocity    float32
	Sensitivity float32

	Keys          Keys
	PointerLocked bool

	view math.Mat4
}

var _ Controller = (*FirstPerson)(nil)

// NewFirstPerson returns a camera at (0,0,2) looking down -Z.
func NewFirstPerson() *FirstPerson {
	c := &FirstPerson{
		Position:    math.V3(0, 0, 2),
		Yaw:         math32.Pi,
		Up:          math.V3(0, 1, 0),
		Velocity:    DefaultVelocity,
		Sensitivity: DefaultSensitivity,
	}
	c.view = math.LookAt(c.Position, c.Target(), c.Up)
	return c
}

// Direction returns the unit look direction for the current yaw and pitch.
func (c *FirstPerson) Direction() math.Vec3 {
	sinYaw, cosYaw := math32.Sincos(c.Yaw)
	sinPitch, cosPitch := math32.Sincos(c.Pitch)
	return math.V3(sinYaw*cosPitch, sinPitch, cosYaw*cosPitch)
}

// Target returns the point one unit ahead of the camera.
func (c *FirstPerson) Target() math.Vec3 {
	return c.Position.Add(c.Direction())
}

// Update moves the camera by the held keys and rebuilds the view matrix.
func (c *FirstPerson) Update() math.Mat4 {
	target := c.Target()
	forward := target.Sub(c.Position).Normalize()
	lateral := forward.Cross(c.Up).Normalize()

	f, r := c.Keys.axes()
	move := forward.Scale(c.Velocity * f).Add(lateral.Scale(c.Velocity * r))
	c.Position = c.Position.Add(move)

	c.view = math.LookAt(c.Position, c.Position.Add(forward), c.Up)
	return c.view
}

// View returns the matrix built by the last Update.
func (c *FirstPerson) View() math.Mat4 { return c.view }

// HandleMouse turns the camera while the pointer is locked. Pitch is
// clamped to straight up and straight down.
func (c *FirstPerson) HandleMouse(dx, dy float32) {
	if !c.PointerLocked {
		return
	}
	c.Yaw -= dx * c.Sensitivity
	c.Pitch -= dy * c.Sensitivity
	c.Pitch = clamp(c.Pitch, -math32.Pi/2, math32.Pi/2)
}

// HandleWheel does nothing; the first-person camera has no zoom.
func (c *FirstPerson) HandleWheel(float32) {}

// SetKeys replaces the held movement keys.
func (c *FirstPerson) SetKeys(k Keys) { c.Keys = k }

// SetGrabbed records pointer lock.
func (c *FirstPerson) SetGrabbed(grabbed bool) { c.PointerLocked = grabbed }

// Eye returns the camera position.
func (c *FirstPerson) Eye() math.Vec3 { return c.Position }
