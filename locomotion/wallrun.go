package locomotion

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/wallrunner/common"
	"github.com/sirupsen/logrus"
)

// wallJumpForceScale converts the configured wall-jump force into the
// continuous force applied for one physics step.
const wallJumpForceScale = 100

// WallRunSnapshot is the read-only view of the wall-run that movement's speed
// and FOV selection consumes.
type WallRunSnapshot struct {
	Running bool
	Side    WallSide
	FOV     float64
	FOVRate float64
	Tilt    float64
}

// WallRun owns wall detection, the wall-run state and its camera tilt.
type WallRun struct {
	cfg WallRunConfig

	body        RigidBody
	world       SpatialQuery
	orientation Orientation
	jump        JumpTuning
	log         *logrus.Entry

	running   bool
	wallLeft  bool
	wallRight bool
	leftHit   RayHit
	rightHit  RayHit
	tilt      float64
}

func newWallRun(cfg WallRunConfig, deps Deps, jump JumpTuning, log *logrus.Entry) *WallRun {
	return &WallRun{
		cfg:         cfg,
		body:        deps.Body,
		world:       deps.World,
		orientation: deps.Orientation,
		jump:        jump,
		log:         log,
	}
}

// FixedUpdate detects walls and starts, continues or stops the wall-run.
func (w *WallRun) FixedUpdate(dt float64) {
	if !w.cfg.CanWallRun {
		// Release a run that was in progress when wall-running got disabled.
		if w.running || w.tilt != 0 {
			w.wallLeft, w.wallRight = false, false
			w.stop(dt)
		}
		return
	}

	w.checkWalls()
	if w.eligible() && (w.wallLeft || w.wallRight) {
		w.run(dt)
	} else {
		w.stop(dt)
	}
}

func (w *WallRun) checkWalls() {
	origin := w.body.Position()
	right := w.orientation.Right()
	w.leftHit, w.wallLeft = w.world.Raycast(origin, right.Mul(-1), w.cfg.WallDistance, w.cfg.WallMask)
	w.rightHit, w.wallRight = w.world.Raycast(origin, right, w.cfg.WallDistance, w.cfg.WallMask)
}

// eligible requires clear air below: a body about to land does not wall-run.
func (w *WallRun) eligible() bool {
	_, ground := w.world.Raycast(w.body.Position(), common.Down, w.cfg.MinimumJumpHeight, AllLayers)
	return !ground
}

func (w *WallRun) run(dt float64) {
	if !w.running {
		w.log.WithField("side", w.Side()).Debug("wall run started")
	}
	w.running = true
	w.body.SetUseGravity(false)

	g := w.cfg.Gravity
	v := w.body.Velocity()
	if v.Y() > g {
		w.body.AddForce(common.Down.Mul(g*w.jump.JumpForce()), ForceModeForce)
	} else if v.Y() < g {
		w.body.SetVelocity(mgl64.Vec3{v.X(), -g, v.Z()})
	}
	w.body.AddForce(common.Down.Mul(g), ForceModeForce)

	switch {
	case w.wallLeft:
		w.tilt = common.Ease(w.tilt, -w.cfg.CamTilt, w.cfg.TiltRate, dt)
	case w.wallRight:
		w.tilt = common.Ease(w.tilt, w.cfg.CamTilt, w.cfg.TiltRate, dt)
	}
}

func (w *WallRun) stop(dt float64) {
	if w.running {
		w.log.Debug("wall run stopped")
	}
	w.running = false
	w.body.SetUseGravity(true)
	w.tilt = common.Ease(w.tilt, 0, w.cfg.TiltRate, dt)
}

// reset drops any run and tilt at once and gives gravity back to the body.
func (w *WallRun) reset() {
	w.running = false
	w.wallLeft, w.wallRight = false, false
	w.leftHit, w.rightHit = RayHit{}, RayHit{}
	w.tilt = 0
	w.body.SetUseGravity(true)
}

// Jump kicks the body up and away from the wall. It only acts while running.
func (w *WallRun) Jump() bool {
	if !w.running {
		return false
	}
	var normal mgl64.Vec3
	switch {
	case w.wallLeft:
		normal = w.leftHit.Normal
	case w.wallRight:
		normal = w.rightHit.Normal
	default:
		return false
	}

	dir := common.Up.Mul(w.cfg.VerticalJumpMultiplier).Add(normal.Mul(w.cfg.HorizontalJumpMultiplier))
	v := w.body.Velocity()
	w.body.SetVelocity(mgl64.Vec3{v.X(), 0, v.Z()})
	w.body.AddForce(dir.Mul(w.cfg.JumpForce*wallJumpForceScale), ForceModeForce)
	return true
}

func (w *WallRun) IsWallRunning() bool {
	return w.running
}

// Tilt is the camera roll contribution in degrees; negative leans left.
func (w *WallRun) Tilt() float64 {
	return w.tilt
}

func (w *WallRun) Side() WallSide {
	switch {
	case w.wallLeft:
		return WallLeft
	case w.wallRight:
		return WallRight
	default:
		return WallNone
	}
}

// WallNormal returns the normal of the wall on the active side.
func (w *WallRun) WallNormal() (mgl64.Vec3, bool) {
	switch w.Side() {
	case WallLeft:
		return w.leftHit.Normal, true
	case WallRight:
		return w.rightHit.Normal, true
	default:
		return mgl64.Vec3{}, false
	}
}

func (w *WallRun) FOV() float64 {
	return w.cfg.FOV
}

func (w *WallRun) FOVRate() float64 {
	return w.cfg.FOVRate
}

func (w *WallRun) Snapshot() WallRunSnapshot {
	return WallRunSnapshot{
		Running: w.running,
		Side:    w.Side(),
		FOV:     w.cfg.FOV,
		FOVRate: w.cfg.FOVRate,
		Tilt:    w.tilt,
	}
}
