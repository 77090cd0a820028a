package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/wallrunner/common"
	"github.com/milk9111/wallrunner/locomotion"
)

const (
	// downRayCos is how close to straight down a ray must point to be answered
	// from the height field.
	downRayCos = 0.999
	flatRaySin = 1e-3
)

// Raycast answers straight-down rays from the height field and horizontal
// rays against block sides. Other directions never hit.
func (a *Arena) Raycast(origin, dir mgl64.Vec3, maxDistance float64, mask locomotion.LayerMask) (locomotion.RayHit, bool) {
	if maxDistance <= 0 || common.IsZero(dir) {
		return locomotion.RayHit{}, false
	}
	dir = dir.Normalize()
	switch {
	case dir.Y() < -downRayCos:
		return a.raycastDown(origin, maxDistance, mask)
	case math.Abs(dir.Y()) < flatRaySin:
		return a.raycastFlat(origin, dir, maxDistance, mask)
	default:
		return locomotion.RayHit{}, false
	}
}

func (a *Arena) raycastDown(origin mgl64.Vec3, maxDistance float64, mask locomotion.LayerMask) (locomotion.RayHit, bool) {
	h, normal, ok := a.groundAt(origin.X(), origin.Z(), origin.Y(), mask)
	if !ok {
		return locomotion.RayHit{}, false
	}
	dist := origin.Y() - h
	if dist > maxDistance {
		return locomotion.RayHit{}, false
	}
	return locomotion.RayHit{
		Point:    mgl64.Vec3{origin.X(), h, origin.Z()},
		Normal:   normal,
		Distance: dist,
	}, true
}

func (a *Arena) raycastFlat(origin, dir mgl64.Vec3, maxDistance float64, mask locomotion.LayerMask) (locomotion.RayHit, bool) {
	flat := mgl64.Vec2{dir.X(), dir.Z()}.Normalize()
	start := cp.Vector{X: origin.X(), Y: origin.Z()}
	end := cp.Vector{X: origin.X() + flat.X()*maxDistance, Y: origin.Z() + flat.Y()*maxDistance}

	best := math.Inf(1)
	var hit locomotion.RayHit
	a.space.SegmentQuery(start, end, 0, cp.SHAPE_FILTER_ALL, func(shape *cp.Shape, point, normal cp.Vector, alpha float64, data interface{}) {
		s, ok := shape.UserData.(*surface)
		if !ok || s.ramp || s.layer&mask == 0 {
			return
		}
		if origin.Y() < s.min.Y() || origin.Y() > s.max.Y() || alpha >= best {
			return
		}
		best = alpha
		hit = locomotion.RayHit{
			Point:    mgl64.Vec3{point.X, origin.Y(), point.Y},
			Normal:   mgl64.Vec3{normal.X, 0, normal.Y},
			Distance: alpha * maxDistance,
		}
	}, nil)
	return hit, !math.IsInf(best, 1)
}

// CheckSphere reports whether any surface in mask touches the sphere.
func (a *Arena) CheckSphere(center mgl64.Vec3, radius float64, mask locomotion.LayerMask) bool {
	if mask&LayerGround != 0 && center.Y()-radius <= a.floor {
		return true
	}

	touching := false
	a.space.PointQuery(cp.Vector{X: center.X(), Y: center.Z()}, radius, cp.SHAPE_FILTER_ALL, func(shape *cp.Shape, _ cp.Vector, _ float64, _ cp.Vector, _ interface{}) {
		s, ok := shape.UserData.(*surface)
		if touching || !ok || s.layer&mask == 0 {
			return
		}
		x := mgl64.Clamp(center.X(), s.min.X(), s.max.X())
		z := mgl64.Clamp(center.Z(), s.min.Z(), s.max.Z())
		top := s.heightAt(x, z)

		var dy float64
		switch {
		case center.Y() > top:
			dy = center.Y() - top
		case center.Y() < s.min.Y():
			dy = s.min.Y() - center.Y()
		}
		dx, dz := center.X()-x, center.Z()-z
		touching = dx*dx+dy*dy+dz*dz <= radius*radius
	}, nil)
	return touching
}
