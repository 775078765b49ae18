package camera

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"

	"github.com/Faultbox/scenegl/pkg/math"
)

const tol = 1e-5

func assertVec(t *testing.T, want, got math.Vec3) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, tol, "x")
	assert.InDelta(t, want.Y, got.Y, tol, "y")
	assert.InDelta(t, want.Z, got.Z, tol, "z")
}

func TestFirstPersonDefaults(t *testing.T) {
	c := NewFirstPerson()
	assert.Equal(t, math.V3(0, 0, 2), c.Position)
	assert.Equal(t, float32(math32.Pi), c.Yaw)
	assert.Zero(t, c.Pitch)
	assertVec(t, math.V3(0, 0, 1), c.Target())
}

func TestFirstPersonMovement(t *testing.T) {
	tests := []struct {
		name string
		keys Keys
		want math.Vec3
	}{
		{"none", Keys{}, math.V3(0, 0, 2)},
		{"forward", Keys{Forward: true}, math.V3(0, 0, 2-DefaultVelocity)},
		{"back", Keys{Back: true}, math.V3(0, 0, 2+DefaultVelocity)},
		{"right", Keys{Right: true}, math.V3(DefaultVelocity, 0, 2)},
		{"left", Keys{Left: true}, math.V3(-DefaultVelocity, 0, 2)},
		{"forward and back cancel", Keys{Forward: true, Back: true}, math.V3(0, 0, 2)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewFirstPerson()
			c.SetKeys(tt.keys)
			c.Update()
			assertVec(t, tt.want, c.Eye())
		})
	}
}

func TestFirstPersonMovesAlongLookDirection(t *testing.T) {
	c := NewFirstPerson()
	c.Yaw = math32.Pi / 2
	c.Pitch = 0.3
	c.Keys.Forward = true

	start := c.Position
	dir := c.Direction()
	for i := 0; i < 10; i++ {
		c.Update()
	}
	assertVec(t, start.ScaleAdd(dir, 10*DefaultVelocity), c.Position)
}

func TestFirstPersonViewMatrix(t *testing.T) {
	c := NewFirstPerson()
	view := c.Update()

	want := math.LookAt(math.V3(0, 0, 2), c.Target(), math.V3(0, 1, 0))
	assert.True(t, view.ApproxEqual(want, tol))
	assert.Equal(t, view, c.View())

	// The target lies straight ahead on the view axis.
	p := view.TransformPoint(c.Target())
	assertVec(t, math.V3(0, 0, -1), p)
}

func TestFirstPersonMouseNeedsPointerLock(t *testing.T) {
	c := NewFirstPerson()
	c.HandleMouse(100, 100)
	assert.Equal(t, float32(math32.Pi), c.Yaw)
	assert.Zero(t, c.Pitch)

	c.SetGrabbed(true)
	c.HandleMouse(100, -50)
	assert.InDelta(t, math32.Pi-0.2, c.Yaw, tol)
	assert.InDelta(t, 0.1, c.Pitch, tol)
}

func TestFirstPersonPitchClamp(t *testing.T) {
	c := NewFirstPerson()
	c.PointerLocked = true

	c.HandleMouse(0, -10000)
	assert.Equal(t, float32(math32.Pi/2), c.Pitch)

	c.HandleMouse(0, 20000)
	assert.Equal(t, float32(-math32.Pi/2), c.Pitch)
}

func TestFirstPersonWheelIgnored(t *testing.T) {
	c := NewFirstPerson()
	c.HandleWheel(3)
	assert.Equal(t, math.V3(0, 0, 2), c.Eye())
}

func TestOrbitCameraEye(t *testing.T) {
	c := NewOrbitCamera()
	c.RotationX = 0
	c.RotationY = 0
	c.Distance = 4
	c.Center = math.V3(1, 0, 0)
	assertVec(t, math.V3(1, 0, 4), c.Eye())

	// The center maps onto the view axis.
	p := c.Update().TransformPoint(c.Center)
	assertVec(t, math.V3(0, 0, -4), p)
}

func TestOrbitCameraDragNeedsGrab(t *testing.T) {
	c := NewOrbitCamera()
	before := c.RotationY

	c.HandleMouse(100, 0)
	assert.Equal(t, before, c.RotationY)

	c.SetGrabbed(true)
	c.HandleMouse(100, 0)
	assert.InDelta(t, before-0.5, c.RotationY, tol)

	c.HandleMouse(0, 1e6)
	assert.Equal(t, c.MaxPitch, c.RotationX)
}

func TestOrbitCameraZoomClamp(t *testing.T) {
	c := NewOrbitCamera()
	for i := 0; i < 100; i++ {
		c.HandleWheel(1)
	}
	assert.Equal(t, c.MinDistance, c.Distance)

	for i := 0; i < 100; i++ {
		c.HandleWheel(-1)
	}
	assert.Equal(t, c.MaxDistance, c.Distance)
}

func TestOrbitCameraPan(t *testing.T) {
	c := NewOrbitCamera()
	c.RotationY = 0
	c.SetKeys(Keys{Forward: true})
	c.Update()

	// Forward moves the center away from the eye along -Z.
	assert.Less(t, c.Center.Z, float32(0))
	assert.InDelta(t, 0, c.Center.X, tol)
}

func TestOrbitFitToBounds(t *testing.T) {
	c := NewOrbitCamera()
	c.FitToBounds(math.V3(-1, -1, -1), math.V3(3, 1, 1))
	assertVec(t, math.V3(1, 0, 0), c.Center)
	assert.GreaterOrEqual(t, c.Distance, c.MinDistance)
}

func TestProjection(t *testing.T) {
	assert.Equal(t, math.Perspective(1, 2, 0.1, 10), Projection(1, 2, 0.1, 10))
}
