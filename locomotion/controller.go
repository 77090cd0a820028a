package locomotion

import (
	"fmt"
	"io"
	"reflect"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/sirupsen/logrus"
)

// Deps are the external collaborators a controller drives. All are required.
type Deps struct {
	Body        RigidBody
	World       SpatialQuery
	Orientation Orientation
	Camera      FieldOfView
	GroundCheck Anchor
}

func (d Deps) validate() error {
	missing := ""
	switch {
	case isNil(d.Body):
		missing = "body"
	case isNil(d.World):
		missing = "world"
	case isNil(d.Orientation):
		missing = "orientation"
	case isNil(d.Camera):
		missing = "camera"
	case isNil(d.GroundCheck):
		missing = "ground check"
	}
	if missing != "" {
		return fmt.Errorf("%w: %s", ErrMissingDependency, missing)
	}
	return nil
}

// isNil also catches nil pointers, maps and funcs stored in an interface.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

// State is a read-only snapshot of the controller for HUDs, scripts and tests.
type State struct {
	Mode           Mode
	Grounded       bool
	Posture        Posture
	Sprinting      bool
	WallRunning    bool
	Wall           WallSide
	Speed          float64
	FOV            float64
	Tilt           float64
	Position       mgl64.Vec3
	Velocity       mgl64.Vec3
	TargetVelocity mgl64.Vec3
}

type Option func(*Controller)

// WithLogger sets the entry debug logs are written to.
func WithLogger(log *logrus.Entry) Option {
	return func(c *Controller) {
		if log != nil {
			c.log = log
		}
	}
}

// WithModeObserver registers f to be called whenever the derived mode changes.
func WithModeObserver(f func(from, to Mode)) Option {
	return func(c *Controller) {
		c.onMode = f
	}
}

// Controller composes movement and wall-running for one character. It is not
// safe for concurrent use; the host calls it from its simulation goroutine.
type Controller struct {
	cfg      Config
	deps     Deps
	movement *Movement
	wallRun  *WallRun
	events   eventQueue
	mode     Mode
	onMode   func(from, to Mode)
	log      *logrus.Entry
}

func New(deps Deps, cfg Config, opts ...Option) (*Controller, error) {
	if err := deps.validate(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Controller{
		cfg:  cfg,
		deps: deps,
		log:  discardLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.movement = newMovement(cfg.Movement, deps, c.log.WithField("component", "movement"))
	c.wallRun = newWallRun(cfg.WallRun, deps, c.movement, c.log.WithField("component", "wall_run"))
	c.mode = ModeAirborne
	return c, nil
}

func discardLogger() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

// Enqueue records an edge event. It takes effect at the start of the next
// decision phase.
func (c *Controller) Enqueue(e Event) {
	if !c.events.push(e) {
		c.log.WithField("event", e).Warn("event queue full, dropping event")
	}
}

func (c *Controller) dispatch(e Event) {
	var handled bool
	switch e {
	case EventJump:
		// Both jumps see every press; grounded and wall-running never hold together.
		ground := c.movement.Jump()
		wall := c.wallRun.Jump()
		handled = ground || wall
	case EventCrouchStart:
		handled = c.movement.StartCrouch()
	case EventCrouchStop:
		handled = c.movement.StopCrouch()
	}
	if !handled {
		c.log.WithField("event", e).Debug("event ignored")
	}
}

// Update runs the per-frame decision phase: queued events first, then the
// ground check and speed/FOV selection against the current wall-run state.
func (c *Controller) Update(dt float64, in Input) {
	c.events.drain(c.dispatch)
	c.movement.Update(dt, in, c.wallRun.Snapshot())
	c.observeMode()
}

// FixedUpdate runs the physics-step phase: the wall-run first, then movement
// forces and drag.
func (c *Controller) FixedUpdate(dt float64, in Input) {
	c.wallRun.FixedUpdate(dt)
	c.movement.FixedUpdate(dt, in)
	c.observeMode()
}

// Step runs both phases in lockstep for hosts with a single tick: events, the
// wall-run, the decision phase, then movement integration.
func (c *Controller) Step(frameDt, fixedDt float64, in Input) {
	c.events.drain(c.dispatch)
	c.wallRun.FixedUpdate(fixedDt)
	c.movement.Update(frameDt, in, c.wallRun.Snapshot())
	c.movement.FixedUpdate(fixedDt, in)
	c.observeMode()
}

// Reset puts the controller back in its spawn state: pending events are
// dropped, the body stands at full height, any wall-run ends with gravity
// restored and the tilt cleared. The host moves the body itself.
func (c *Controller) Reset() {
	c.events.events = c.events.events[:0]
	c.movement.reset()
	c.wallRun.reset()
	c.log.Debug("reset")
	c.observeMode()
}

func (c *Controller) observeMode() {
	next := deriveMode(c.movement.grounded, c.movement.posture, c.wallRun.running)
	if next == c.mode {
		return
	}
	prev := c.mode
	c.mode = next
	c.log.WithFields(logrus.Fields{"from": prev, "to": next}).Debug("mode changed")
	if c.onMode != nil {
		c.onMode(prev, next)
	}
}

func (c *Controller) Mode() Mode {
	return c.mode
}

func (c *Controller) Tilt() float64 {
	return c.wallRun.Tilt()
}

func (c *Controller) IsWallRunning() bool {
	return c.wallRun.IsWallRunning()
}

func (c *Controller) Movement() *Movement {
	return c.movement
}

func (c *Controller) WallRun() *WallRun {
	return c.wallRun
}

func (c *Controller) PendingEvents() int {
	return c.events.len()
}

func (c *Controller) State() State {
	return State{
		Mode:           c.mode,
		Grounded:       c.movement.grounded,
		Posture:        c.movement.posture,
		Sprinting:      c.movement.sprinting,
		WallRunning:    c.wallRun.running,
		Wall:           c.wallRun.Side(),
		Speed:          c.movement.speed,
		FOV:            c.deps.Camera.FieldOfView(),
		Tilt:           c.wallRun.tilt,
		Position:       c.deps.Body.Position(),
		Velocity:       c.deps.Body.Velocity(),
		TargetVelocity: c.movement.targetVelocity,
	}
}

func (c *Controller) Config() Config {
	return c.cfg
}

// SetConfig swaps the tuning in place. State carries over; an invalid config
// is rejected and the old one stays active.
func (c *Controller) SetConfig(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	c.cfg = cfg
	c.movement.setConfig(cfg.Movement)
	c.wallRun.cfg = cfg.WallRun
	c.log.Debug("config updated")
	return nil
}
