package obj

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	lookMultiplier = 0.01
	maxPitch       = 90
)

// Look is the first-person view. Yaw and pitch come from look deltas and roll
// from the wall-run tilt, all in degrees. Movement only sees the yaw; the
// camera sees all three. Look implements locomotion.Orientation and
// locomotion.FieldOfView.
type Look struct {
	SensitivityX float64
	SensitivityY float64

	yaw   float64
	pitch float64
	roll  float64
	fov   float64
}

func NewLook(yawDegrees, fov float64) *Look {
	return &Look{
		SensitivityX: 10,
		SensitivityY: 10,
		yaw:          yawDegrees,
		fov:          fov,
	}
}

// Apply turns the view by a look delta. Positive Y looks up.
func (l *Look) Apply(delta mgl64.Vec2) {
	l.yaw += delta.X() * l.SensitivityX * lookMultiplier
	l.pitch -= delta.Y() * l.SensitivityY * lookMultiplier
	l.pitch = clamp(l.pitch, -maxPitch, maxPitch)
}

// SetRoll sets the camera roll, normally the controller's tilt.
func (l *Look) SetRoll(deg float64) {
	l.roll = deg
}

func (l *Look) Forward() mgl64.Vec3 {
	y := mgl64.DegToRad(l.yaw)
	return mgl64.Vec3{math.Sin(y), 0, math.Cos(y)}
}

func (l *Look) Right() mgl64.Vec3 {
	y := mgl64.DegToRad(l.yaw)
	return mgl64.Vec3{math.Cos(y), 0, -math.Sin(y)}
}

func (l *Look) Yaw() float64 {
	return mgl64.DegToRad(l.yaw)
}

// YawDegrees, PitchDegrees and RollDegrees expose the camera rotation.
func (l *Look) YawDegrees() float64   { return l.yaw }
func (l *Look) PitchDegrees() float64 { return l.pitch }
func (l *Look) RollDegrees() float64  { return l.roll }

// ViewDir is the camera's look direction including pitch; positive pitch looks
// down.
func (l *Look) ViewDir() mgl64.Vec3 {
	y := mgl64.DegToRad(l.yaw)
	p := mgl64.DegToRad(l.pitch)
	return mgl64.Vec3{math.Sin(y) * math.Cos(p), -math.Sin(p), math.Cos(y) * math.Cos(p)}
}

func (l *Look) FieldOfView() float64 {
	return l.fov
}

func (l *Look) SetFieldOfView(fov float64) {
	l.fov = fov
}
