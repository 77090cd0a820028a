package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/wallrunner/levels"
	"github.com/milk9111/wallrunner/locomotion"
)

const (
	collisionTypeBody cp.CollisionType = iota + 1
	collisionTypeSolid
	collisionTypeRamp
)

// Query layers. Blocks answer to exactly one; the floor is ground.
const (
	LayerGround locomotion.LayerMask = 1 << iota
	LayerWall
)

const (
	DefaultGravity = -9.81

	// StepHeight is the tallest ledge a body walks onto without being blocked.
	StepHeight = 0.3
)

const (
	boundsHeight = 1000
	edgeSlop     = 1e-6
)

// surface is the UserData carried by every static shape. Blocks are flat
// topped boxes; ramps slope along one axis.
type surface struct {
	min, max mgl64.Vec3
	layer    locomotion.LayerMask
	ramp     bool
	axis     int
}

func (s *surface) contains(x, z float64) bool {
	return x >= s.min.X()-edgeSlop && x <= s.max.X()+edgeSlop &&
		z >= s.min.Z()-edgeSlop && z <= s.max.Z()+edgeSlop
}

// heightAt is the top of the surface over (x, z), which must be inside it.
func (s *surface) heightAt(x, z float64) float64 {
	if !s.ramp {
		return s.max.Y()
	}
	t := (x - s.min.X()) / (s.max.X() - s.min.X())
	if s.axis == 2 {
		t = (z - s.min.Z()) / (s.max.Z() - s.min.Z())
	}
	return s.min.Y() + t*(s.max.Y()-s.min.Y())
}

func (s *surface) normal() mgl64.Vec3 {
	if !s.ramp {
		return mgl64.Vec3{0, 1, 0}
	}
	rise := s.max.Y() - s.min.Y()
	if s.axis == 2 {
		return mgl64.Vec3{0, s.max.Z() - s.min.Z(), -rise}.Normalize()
	}
	return mgl64.Vec3{-rise, s.max.X() - s.min.X(), 0}.Normalize()
}

// Arena is a 2.5D world: a chipmunk space resolves movement in the XZ plane
// while heights come from the blocks and ramps under each point. cp's Y axis
// carries world Z.
type Arena struct {
	space   *cp.Space
	level   *levels.Level
	gravity float64
	floor   float64
	bodies  []*Body
	shapes  []*cp.Shape
}

func NewArena(level *levels.Level) *Arena {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{})
	a := &Arena{
		space:   space,
		level:   level,
		gravity: DefaultGravity,
		floor:   level.Floor,
	}
	a.buildStaticShapes()
	a.ensureHandlers()
	return a
}

func (a *Arena) buildStaticShapes() {
	for _, b := range a.level.Blocks {
		layer := LayerGround
		if b.Kind == levels.KindWall {
			layer = LayerWall
		}
		a.addBox(&surface{min: b.Min, max: b.Max, layer: layer}, collisionTypeSolid)
	}
	for _, r := range a.level.Ramps {
		axis := 0
		if r.Axis == "z" {
			axis = 2
		}
		a.addBox(&surface{min: r.Min, max: r.Max, layer: LayerGround, ramp: true, axis: axis}, collisionTypeRamp)
	}

	// Bounds are thin walls tall enough to never be stepped over.
	hx, hz := a.level.Size[0]/2, a.level.Size[1]/2
	bounds := []struct{ min, max mgl64.Vec3 }{
		{mgl64.Vec3{-hx - 1, a.floor, -hz}, mgl64.Vec3{-hx, boundsHeight, hz}},
		{mgl64.Vec3{hx, a.floor, -hz}, mgl64.Vec3{hx + 1, boundsHeight, hz}},
		{mgl64.Vec3{-hx, a.floor, -hz - 1}, mgl64.Vec3{hx, boundsHeight, -hz}},
		{mgl64.Vec3{-hx, a.floor, hz}, mgl64.Vec3{hx, boundsHeight, hz + 1}},
	}
	for _, b := range bounds {
		a.addBox(&surface{min: b.min, max: b.max, layer: LayerWall}, collisionTypeSolid)
	}
}

func (a *Arena) addBox(s *surface, ct cp.CollisionType) {
	bb := cp.BB{L: s.min.X(), B: s.min.Z(), R: s.max.X(), T: s.max.Z()}
	shape := cp.NewBox2(a.space.StaticBody, bb, 0)
	shape.SetFriction(0)
	shape.SetCollisionType(ct)
	shape.UserData = s
	a.space.AddShape(shape)
	a.shapes = append(a.shapes, shape)
}

func (a *Arena) ensureHandlers() {
	solid := a.space.NewCollisionHandler(collisionTypeBody, collisionTypeSolid)
	solid.PreSolveFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		shapeA, shapeB := arb.Shapes()
		body, ok := shapeA.UserData.(*Body)
		if !ok {
			shapeA, shapeB = shapeB, shapeA
			if body, ok = shapeA.UserData.(*Body); !ok {
				return true
			}
		}
		s, ok := shapeB.UserData.(*surface)
		if !ok {
			return true
		}
		// Blocks the body stands on or steps onto do not push it sideways.
		return s.max.Y() > body.feet()+StepHeight && s.min.Y() < body.head()
	}

	ramp := a.space.NewCollisionHandler(collisionTypeBody, collisionTypeRamp)
	ramp.PreSolveFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		return false
	}
}

func (a *Arena) Level() *levels.Level {
	return a.level
}

func (a *Arena) Gravity() float64 {
	return a.gravity
}

// SetGravity sets the vertical acceleration applied to bodies with gravity on;
// negative pulls down.
func (a *Arena) SetGravity(g float64) {
	a.gravity = g
}

// Step advances every body by dt: vertical motion and accumulated forces
// first, the planar solve, then each body is settled onto the surface under
// it.
func (a *Arena) Step(dt float64) {
	if dt <= 0 {
		return
	}
	for _, b := range a.bodies {
		b.integrate(dt, a.gravity)
	}
	a.space.Step(dt)
	for _, b := range a.bodies {
		b.settle(a)
	}
}

// groundAt returns the highest surface over (x, z) whose top is at or below
// maxY, restricted to mask. The floor always qualifies when it is in mask.
func (a *Arena) groundAt(x, z, maxY float64, mask locomotion.LayerMask) (float64, mgl64.Vec3, bool) {
	height := math.Inf(-1)
	normal := mgl64.Vec3{0, 1, 0}
	found := false
	if mask&LayerGround != 0 && a.floor <= maxY {
		height, found = a.floor, true
	}

	a.space.PointQuery(cp.Vector{X: x, Y: z}, edgeSlop, cp.SHAPE_FILTER_ALL, func(shape *cp.Shape, point cp.Vector, distance float64, gradient cp.Vector, data interface{}) {
		s, ok := shape.UserData.(*surface)
		if !ok || s.layer&mask == 0 || !s.contains(x, z) {
			return
		}
		h := s.heightAt(x, z)
		if h > maxY+edgeSlop || h <= height {
			return
		}
		height, normal, found = h, s.normal(), true
	}, nil)
	return height, normal, found
}
