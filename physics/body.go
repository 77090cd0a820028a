package physics

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/wallrunner/locomotion"
)

// Body is an upright character body. Its footprint is a circle in the chipmunk
// space; height, vertical velocity and gravity are integrated here. Scale Y is
// the half-height.
type Body struct {
	body  *cp.Body
	shape *cp.Shape

	mass     float64
	scale    mgl64.Vec3
	y        float64
	vy       float64
	gravity  bool
	force    mgl64.Vec3
	grounded bool
}

// AddBody spawns a body centred at pos. The footprint radius is half of scale
// X and stays fixed for the body's lifetime.
func (a *Arena) AddBody(pos mgl64.Vec3, mass float64, scale mgl64.Vec3) *Body {
	if mass <= 0 {
		mass = 1
	}
	body := cp.NewBody(mass, cp.INFINITY)
	body.SetPosition(cp.Vector{X: pos.X(), Y: pos.Z()})

	shape := cp.NewCircle(body, scale.X()*0.5, cp.Vector{})
	shape.SetFriction(0)
	shape.SetElasticity(0)
	shape.SetCollisionType(collisionTypeBody)

	b := &Body{
		body:    body,
		shape:   shape,
		mass:    mass,
		scale:   scale,
		y:       pos.Y(),
		gravity: true,
	}
	shape.UserData = b

	a.space.AddBody(body)
	a.space.AddShape(shape)
	a.bodies = append(a.bodies, b)
	return b
}

func (b *Body) Position() mgl64.Vec3 {
	p := b.body.Position()
	return mgl64.Vec3{p.X, b.y, p.Y}
}

func (b *Body) SetPosition(p mgl64.Vec3) {
	b.body.SetPosition(cp.Vector{X: p.X(), Y: p.Z()})
	b.y = p.Y()
}

func (b *Body) Scale() mgl64.Vec3 {
	return b.scale
}

func (b *Body) SetScale(s mgl64.Vec3) {
	b.scale = s
}

func (b *Body) Velocity() mgl64.Vec3 {
	v := b.body.Velocity()
	return mgl64.Vec3{v.X, b.vy, v.Y}
}

func (b *Body) SetVelocity(v mgl64.Vec3) {
	b.body.SetVelocityVector(cp.Vector{X: v.X(), Y: v.Z()})
	b.vy = v.Y()
}

// AddForce applies f. Continuous forces accumulate until the next Step; the
// other modes change the velocity immediately.
func (b *Body) AddForce(f mgl64.Vec3, mode locomotion.ForceMode) {
	switch mode {
	case locomotion.ForceModeForce:
		b.force = b.force.Add(f)
	case locomotion.ForceModeImpulse:
		b.SetVelocity(b.Velocity().Add(f.Mul(1 / b.mass)))
	case locomotion.ForceModeVelocityChange:
		b.SetVelocity(b.Velocity().Add(f))
	}
}

func (b *Body) UseGravity() bool {
	return b.gravity
}

func (b *Body) SetUseGravity(on bool) {
	b.gravity = on
}

func (b *Body) Mass() float64 {
	return b.mass
}

// Grounded reports whether the last step settled the body onto a surface.
func (b *Body) Grounded() bool {
	return b.grounded
}

// GroundCheck is an anchor at the body's feet.
func (b *Body) GroundCheck() locomotion.Anchor {
	return locomotion.AnchorFunc(func() mgl64.Vec3 {
		p := b.Position()
		return mgl64.Vec3{p.X(), b.feet(), p.Z()}
	})
}

func (b *Body) feet() float64 {
	return b.y - b.scale.Y()
}

func (b *Body) head() float64 {
	return b.y + b.scale.Y()
}

func (b *Body) integrate(dt, gravity float64) {
	accel := b.force.Mul(1 / b.mass)
	if b.gravity {
		accel[1] += gravity
	}
	b.force = mgl64.Vec3{}

	v := b.body.Velocity()
	b.body.SetVelocityVector(cp.Vector{X: v.X + accel.X()*dt, Y: v.Y + accel.Z()*dt})
	b.vy += accel.Y() * dt
	b.y += b.vy * dt
}

// settle lifts the body onto the highest surface under it within step height.
func (b *Body) settle(a *Arena) {
	b.grounded = false
	p := b.body.Position()
	ground, _, ok := a.groundAt(p.X, p.Y, b.feet()+StepHeight, LayerGround|LayerWall)
	if !ok || b.feet() > ground {
		return
	}
	b.y = ground + b.scale.Y()
	if b.vy < 0 {
		b.vy = 0
	}
	b.grounded = true
}
