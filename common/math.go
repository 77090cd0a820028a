package common

import "github.com/go-gl/mathgl/mgl64"

// equalSqr is the squared distance under which two vectors compare equal.
const equalSqr = 1e-10

var (
	Up   = mgl64.Vec3{0, 1, 0}
	Down = mgl64.Vec3{0, -1, 0}
)

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// Ease moves v toward target by rate*dt of the remaining distance. The step is
// clamped to [0, 1] so large frame times never overshoot the target.
func Ease(v, target, rate, dt float64) float64 {
	return Lerp(v, target, mgl64.Clamp(rate*dt, 0, 1))
}

func IsZero(v mgl64.Vec3) bool {
	return v.LenSqr() < equalSqr
}

func Equal(a, b mgl64.Vec3) bool {
	return IsZero(a.Sub(b))
}

// Horizontal drops the vertical component of v.
func Horizontal(v mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{v.X(), 0, v.Z()}
}

// ClampMagnitude scales v down to max length, leaving shorter vectors untouched.
func ClampMagnitude(v mgl64.Vec3, max float64) mgl64.Vec3 {
	if max <= 0 {
		return mgl64.Vec3{}
	}
	sq := v.LenSqr()
	if sq <= max*max {
		return v
	}
	return v.Mul(max / v.Len())
}

// ProjectOnPlane removes the component of v along normal. A degenerate normal
// leaves v unchanged.
func ProjectOnPlane(v, normal mgl64.Vec3) mgl64.Vec3 {
	sq := normal.LenSqr()
	if sq < equalSqr {
		return v
	}
	return v.Sub(normal.Mul(v.Dot(normal) / sq))
}
