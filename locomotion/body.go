package locomotion

import "github.com/go-gl/mathgl/mgl64"

// ForceMode selects how AddForce changes a body's velocity.
type ForceMode uint8

const (
	// ForceModeForce is a continuous force, integrated over the next physics
	// step and scaled by the body's mass.
	ForceModeForce ForceMode = iota
	// ForceModeImpulse is an instant change in momentum, scaled by mass.
	ForceModeImpulse
	// ForceModeVelocityChange is an instant change in velocity, ignoring mass.
	ForceModeVelocityChange
)

func (m ForceMode) String() string {
	switch m {
	case ForceModeForce:
		return "force"
	case ForceModeImpulse:
		return "impulse"
	case ForceModeVelocityChange:
		return "velocity_change"
	default:
		return "unknown"
	}
}

// LayerMask filters spatial queries by collision layer.
type LayerMask uint32

const AllLayers LayerMask = ^LayerMask(0)

// Transform is the positional part of a body.
type Transform interface {
	Position() mgl64.Vec3
	SetPosition(p mgl64.Vec3)
	// Scale is the body's extent multiplier; its Y component is the capsule
	// half-height.
	Scale() mgl64.Vec3
	SetScale(s mgl64.Vec3)
}

// RigidBody is the simulated body the controller pushes around. Forces are
// world-space.
type RigidBody interface {
	Transform
	Velocity() mgl64.Vec3
	SetVelocity(v mgl64.Vec3)
	AddForce(f mgl64.Vec3, mode ForceMode)
	UseGravity() bool
	SetUseGravity(enabled bool)
}

// RayHit describes the closest surface a ray touched.
type RayHit struct {
	Point    mgl64.Vec3
	Normal   mgl64.Vec3
	Distance float64
}

// SpatialQuery answers ray and overlap questions about the world. A miss is
// reported with ok == false and is never an error.
type SpatialQuery interface {
	Raycast(origin, dir mgl64.Vec3, maxDistance float64, mask LayerMask) (hit RayHit, ok bool)
	CheckSphere(center mgl64.Vec3, radius float64, mask LayerMask) bool
}

// Orientation is the look frame movement input is projected into. Forward and
// Right are horizontal unit vectors; Yaw is in radians.
type Orientation interface {
	Forward() mgl64.Vec3
	Right() mgl64.Vec3
	Yaw() float64
}

// FieldOfView is the camera the controller writes its FOV target to.
type FieldOfView interface {
	FieldOfView() float64
	SetFieldOfView(fov float64)
}

// Anchor is a point that follows the body, such as the ground check at its feet.
type Anchor interface {
	Position() mgl64.Vec3
}

// AnchorFunc adapts a function to Anchor.
type AnchorFunc func() mgl64.Vec3

func (f AnchorFunc) Position() mgl64.Vec3 {
	return f()
}
