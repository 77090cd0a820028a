package locomotion

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/wallrunner/common"
	"github.com/sirupsen/logrus"
)

// JumpTuning exposes the jump force to the wall-run, which scales its
// downward pull by it.
type JumpTuning interface {
	JumpForce() float64
}

// Movement owns ground, air, crouch and slide movement.
type Movement struct {
	cfg MovementConfig

	body        RigidBody
	world       SpatialQuery
	orientation Orientation
	camera      FieldOfView
	groundCheck Anchor
	log         *logrus.Entry

	grounded       bool
	posture        Posture
	sprinting      bool
	speed          float64
	targetVelocity mgl64.Vec3

	playerScale mgl64.Vec3
	crouchScale mgl64.Vec3
	// slopeNormal is the normal of the last slope ray hit. A slide started
	// between physics steps uses whatever the last step saw.
	slopeNormal mgl64.Vec3
}

func newMovement(cfg MovementConfig, deps Deps, log *logrus.Entry) *Movement {
	m := &Movement{
		cfg:         cfg,
		body:        deps.Body,
		world:       deps.World,
		orientation: deps.Orientation,
		camera:      deps.Camera,
		groundCheck: deps.GroundCheck,
		log:         log,
		speed:       cfg.InitialSpeed,
		playerScale: deps.Body.Scale(),
		slopeNormal: common.Up,
	}
	m.crouchScale = m.crouchScaleFor(cfg.CrouchSize)
	return m
}

func (m *Movement) crouchScaleFor(size float64) mgl64.Vec3 {
	return mgl64.Vec3{m.playerScale.X(), m.playerScale.Y() * size, m.playerScale.Z()}
}

// setConfig swaps the tuning. A crouched body is rescaled and moved so its
// feet stay put and standing up lifts it back to the standing height.
func (m *Movement) setConfig(cfg MovementConfig) {
	m.cfg = cfg
	prev := m.crouchScale
	m.crouchScale = m.crouchScaleFor(cfg.CrouchSize)
	if !m.posture.Crouched() {
		return
	}
	m.body.SetScale(m.crouchScale)
	pos := m.body.Position()
	pos[1] -= prev.Y() - m.crouchScale.Y()
	m.body.SetPosition(pos)
}

// reset returns movement to its spawn state: standing at full height, not
// sprinting, at the initial speed and default FOV.
func (m *Movement) reset() {
	m.posture = PostureStanding
	m.body.SetScale(m.playerScale)
	m.grounded = false
	m.sprinting = false
	m.speed = m.cfg.InitialSpeed
	m.targetVelocity = mgl64.Vec3{}
	m.slopeNormal = common.Up
	m.camera.SetFieldOfView(m.cfg.DefaultFOV)
}

// Update is the per-frame decision phase: ground check, posture upkeep, target
// velocity and speed/FOV selection.
func (m *Movement) Update(dt float64, in Input, wall WallRunSnapshot) {
	m.grounded = m.world.CheckSphere(m.groundCheck.Position(), m.cfg.GroundDistance, m.cfg.GroundMask)

	if !m.grounded && m.posture.Crouched() {
		m.standUp(m.cfg.AirborneUncrouchNudge)
	}
	if m.posture == PostureSliding && m.body.Velocity().Len() < m.cfg.SlideStopSpeed {
		m.setPosture(PostureCrouching)
	}

	forward := m.orientation.Forward().Mul(in.Move.Y())
	right := m.orientation.Right().Mul(in.Move.X())
	m.targetVelocity = forward.Add(right).Mul(m.speed)

	m.changeSpeed(dt, in, wall)
}

func (m *Movement) changeSpeed(dt float64, in Input, wall WallRunSnapshot) {
	fov := m.camera.FieldOfView()
	moving := !common.IsZero(m.targetVelocity)

	switch selectSpeed(m.posture, in.SprintHeld(), moving, m.grounded, wall.Running) {
	case SpeedCrouch:
		m.speed = m.cfg.CrouchSpeed
		target := m.cfg.DefaultFOV
		if m.posture == PostureSliding {
			target = m.cfg.SlideFOV
		}
		fov = common.Ease(fov, target, m.cfg.FOVRate, dt)
	case SpeedSprint:
		m.speed = common.Ease(m.speed, m.cfg.SprintSpeed, m.cfg.Acceleration, dt)
		fov = common.Ease(fov, m.cfg.SprintFOV, m.cfg.FOVRate, dt)
		m.sprinting = true
	case SpeedWallRun:
		m.speed = common.Ease(m.speed, m.cfg.WallRunSpeed, m.cfg.Acceleration, dt)
		fov = common.Ease(fov, wall.FOV, wall.FOVRate, dt)
		m.sprinting = true
	default:
		m.speed = common.Ease(m.speed, m.cfg.WalkSpeed, m.cfg.Acceleration, dt)
		fov = common.Ease(fov, m.cfg.DefaultFOV, m.cfg.FOVRate, dt)
		m.sprinting = false
	}

	m.camera.SetFieldOfView(fov)
}

// FixedUpdate is the physics-step integration phase.
func (m *Movement) FixedUpdate(dt float64, in Input) {
	m.move(in)
	m.drag()
}

func (m *Movement) move(in Input) {
	velocity := m.body.Velocity()
	change := m.targetVelocity.Sub(velocity)
	change[1] = 0
	if m.onSlope() {
		change = common.ProjectOnPlane(change, m.slopeNormal)
	}

	limit := m.cfg.AirVelocityChange
	if m.grounded {
		limit = m.cfg.GroundVelocityChange
	}
	change = common.ClampMagnitude(change, limit)

	switch {
	case m.posture == PostureSliding:
		forward := m.orientation.Forward()
		forwardSpeed := velocity.Dot(forward)
		if forwardSpeed > 1 {
			steer := m.orientation.Right().Mul(in.Move.X() * forwardSpeed * m.cfg.LateralSpeedMultiplier)
			m.body.AddForce(steer, ForceModeForce)
		}
	case m.grounded:
		m.body.AddForce(change, ForceModeVelocityChange)
	case !common.IsZero(m.targetVelocity):
		m.body.AddForce(change, ForceModeVelocityChange)
	}
}

func (m *Movement) drag() {
	var factor float64
	switch {
	case !m.grounded && common.IsZero(m.targetVelocity):
		factor = m.cfg.AirDrag
	case m.posture == PostureSliding:
		factor = m.cfg.SlideDrag
	default:
		return
	}
	v := m.body.Velocity()
	m.body.SetVelocity(mgl64.Vec3{v.X() * factor, v.Y(), v.Z() * factor})
}

// onSlope casts straight down from the body and records the surface normal.
func (m *Movement) onSlope() bool {
	length := m.playerScale.Y() + m.cfg.SlopeRayPadding
	hit, ok := m.world.Raycast(m.body.Position(), common.Down, length, AllLayers)
	if !ok {
		m.slopeNormal = common.Up
		return false
	}
	m.slopeNormal = hit.Normal
	return !common.Equal(hit.Normal, common.Up)
}

// Jump launches the body upward. It only acts on the ground.
func (m *Movement) Jump() bool {
	if !m.grounded {
		return false
	}
	v := m.body.Velocity()
	m.body.SetVelocity(mgl64.Vec3{v.X(), 0, v.Z()})
	m.body.AddForce(common.Up.Mul(m.cfg.JumpForce), ForceModeImpulse)
	return true
}

// StartCrouch shrinks the body and, when sprinting fast enough, turns the
// crouch into a slide. It only acts on the ground while standing.
func (m *Movement) StartCrouch() bool {
	if !m.grounded || m.posture.Crouched() {
		return false
	}

	velocity := m.body.Velocity()
	slide := m.cfg.CanSlide && m.sprinting && velocity.Len() > m.cfg.SlideStartSpeed
	next := PostureCrouching
	if slide {
		next = PostureSliding
	}
	if !m.setPosture(next) {
		return false
	}

	m.body.SetScale(m.crouchScale)
	pos := m.body.Position()
	pos[1] -= m.crouchOffset()
	m.body.SetPosition(pos)

	if slide {
		dir := common.ProjectOnPlane(m.orientation.Forward(), m.slopeNormal)
		m.body.AddForce(dir.Mul(m.cfg.SlideForce), ForceModeForce)
	}
	return true
}

// StopCrouch restores the standing body. It only acts while crouched.
func (m *Movement) StopCrouch() bool {
	if !m.posture.Crouched() {
		return false
	}
	m.standUp(m.crouchOffset())
	return true
}

func (m *Movement) standUp(lift float64) {
	if !m.setPosture(PostureStanding) {
		return
	}
	m.body.SetScale(m.playerScale)
	pos := m.body.Position()
	pos[1] += lift
	m.body.SetPosition(pos)
}

// crouchOffset is how far the body's centre drops when its half-height shrinks.
func (m *Movement) crouchOffset() float64 {
	return m.playerScale.Y() - m.crouchScale.Y()
}

func (m *Movement) setPosture(next Posture) bool {
	if next == m.posture {
		return true
	}
	if !canTransition(m.posture, next) {
		m.log.WithFields(logrus.Fields{"from": m.posture, "to": next}).Debug("illegal posture transition ignored")
		return false
	}
	m.posture = next
	return true
}

func (m *Movement) JumpForce() float64 {
	return m.cfg.JumpForce
}

func (m *Movement) Grounded() bool {
	return m.grounded
}

func (m *Movement) Posture() Posture {
	return m.posture
}

func (m *Movement) Sprinting() bool {
	return m.sprinting
}

// Speed is the smoothed target speed, not the body's actual speed.
func (m *Movement) Speed() float64 {
	return m.speed
}

func (m *Movement) TargetVelocity() mgl64.Vec3 {
	return m.targetVelocity
}

func (m *Movement) SlopeNormal() mgl64.Vec3 {
	return m.slopeNormal
}
