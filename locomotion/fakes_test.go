package locomotion

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

type appliedForce struct {
	force mgl64.Vec3
	mode  ForceMode
}

// fakeBody is a unit-mass body. Instant modes change the velocity right away;
// continuous forces wait for step.
type fakeBody struct {
	pos     mgl64.Vec3
	vel     mgl64.Vec3
	scale   mgl64.Vec3
	gravity bool
	pending mgl64.Vec3
	forces  []appliedForce
}

func newFakeBody() *fakeBody {
	return &fakeBody{
		pos:     mgl64.Vec3{0, 1, 0},
		scale:   mgl64.Vec3{1, 1, 1},
		gravity: true,
	}
}

func (b *fakeBody) Position() mgl64.Vec3     { return b.pos }
func (b *fakeBody) SetPosition(p mgl64.Vec3) { b.pos = p }
func (b *fakeBody) Scale() mgl64.Vec3        { return b.scale }
func (b *fakeBody) SetScale(s mgl64.Vec3)    { b.scale = s }
func (b *fakeBody) Velocity() mgl64.Vec3     { return b.vel }
func (b *fakeBody) SetVelocity(v mgl64.Vec3) { b.vel = v }
func (b *fakeBody) UseGravity() bool         { return b.gravity }
func (b *fakeBody) SetUseGravity(on bool)    { b.gravity = on }

func (b *fakeBody) AddForce(f mgl64.Vec3, mode ForceMode) {
	b.forces = append(b.forces, appliedForce{force: f, mode: mode})
	switch mode {
	case ForceModeForce:
		b.pending = b.pending.Add(f)
	default:
		b.vel = b.vel.Add(f)
	}
}

// step integrates pending forces and position. Gravity is left to the tests
// that need it.
func (b *fakeBody) step(dt float64) {
	b.vel = b.vel.Add(b.pending.Mul(dt))
	b.pending = mgl64.Vec3{}
	b.pos = b.pos.Add(b.vel.Mul(dt))
}

func (b *fakeBody) forcesOf(mode ForceMode) []mgl64.Vec3 {
	var out []mgl64.Vec3
	for _, f := range b.forces {
		if f.mode == mode {
			out = append(out, f.force)
		}
	}
	return out
}

func (b *fakeBody) resetForces() {
	b.forces = nil
}

// fakeWorld answers downward rays from down and sideways rays from left/right,
// relative to the orientation's right vector. A nil hit is a miss.
type fakeWorld struct {
	grounded    bool
	down        *RayHit
	left, right *RayHit
	orientation Orientation

	sphereChecks int
	rays         int
}

func (w *fakeWorld) Raycast(origin, dir mgl64.Vec3, maxDistance float64, mask LayerMask) (RayHit, bool) {
	w.rays++
	var hit *RayHit
	switch {
	case dir.Y() < -0.5:
		hit = w.down
	case w.orientation != nil && dir.Dot(w.orientation.Right()) > 0.5:
		hit = w.right
	case w.orientation != nil && dir.Dot(w.orientation.Right()) < -0.5:
		hit = w.left
	}
	if hit == nil || hit.Distance > maxDistance {
		return RayHit{}, false
	}
	return *hit, true
}

func (w *fakeWorld) CheckSphere(center mgl64.Vec3, radius float64, mask LayerMask) bool {
	w.sphereChecks++
	return w.grounded
}

type fakeOrientation struct {
	yaw float64
}

func (o fakeOrientation) Forward() mgl64.Vec3 {
	return mgl64.Vec3{math.Sin(o.yaw), 0, math.Cos(o.yaw)}
}

func (o fakeOrientation) Right() mgl64.Vec3 {
	return mgl64.Vec3{math.Cos(o.yaw), 0, -math.Sin(o.yaw)}
}

func (o fakeOrientation) Yaw() float64 { return o.yaw }

type fakeCamera struct {
	fov float64
}

func (c *fakeCamera) FieldOfView() float64       { return c.fov }
func (c *fakeCamera) SetFieldOfView(fov float64) { c.fov = fov }

func flatGround() *RayHit {
	return &RayHit{Normal: mgl64.Vec3{0, 1, 0}, Distance: 1}
}

type rig struct {
	body   *fakeBody
	world  *fakeWorld
	camera *fakeCamera
	ctrl   *Controller
}

func newRig(tb interface{ Fatalf(string, ...any) }, cfg Config) *rig {
	orientation := fakeOrientation{}
	r := &rig{
		body:   newFakeBody(),
		world:  &fakeWorld{grounded: true, down: flatGround(), orientation: orientation},
		camera: &fakeCamera{fov: 60},
	}
	ctrl, err := New(Deps{
		Body:        r.body,
		World:       r.world,
		Orientation: orientation,
		Camera:      r.camera,
		GroundCheck: AnchorFunc(func() mgl64.Vec3 { return r.body.pos.Sub(mgl64.Vec3{0, 1, 0}) }),
	}, cfg)
	if err != nil {
		tb.Fatalf("New: %v", err)
	}
	r.ctrl = ctrl
	return r
}

const (
	frameDt = 1.0 / 60.0
	fixedDt = 0.02
)

// tick runs one lockstep frame and integrates the fake body.
func (r *rig) tick(in Input) {
	r.ctrl.Step(frameDt, fixedDt, in)
	r.body.step(fixedDt)
}

func (r *rig) run(n int, in Input) {
	for i := 0; i < n; i++ {
		r.tick(in)
	}
}

func near(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}
