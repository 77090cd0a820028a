package locomotion

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/sirupsen/logrus"
)

func TestNewRequiresDependencies(t *testing.T) {
	full := func() Deps {
		return Deps{
			Body:        newFakeBody(),
			World:       &fakeWorld{},
			Orientation: fakeOrientation{},
			Camera:      &fakeCamera{},
			GroundCheck: AnchorFunc(func() mgl64.Vec3 { return mgl64.Vec3{} }),
		}
	}

	tests := []struct {
		name   string
		mutate func(*Deps)
	}{
		{"body", func(d *Deps) { d.Body = nil }},
		{"world", func(d *Deps) { d.World = nil }},
		{"orientation", func(d *Deps) { d.Orientation = nil }},
		{"camera", func(d *Deps) { d.Camera = nil }},
		{"ground check", func(d *Deps) { d.GroundCheck = nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deps := full()
			tt.mutate(&deps)
			_, err := New(deps, DefaultConfig())
			if !errors.Is(err, ErrMissingDependency) {
				t.Fatalf("New = %v, want ErrMissingDependency", err)
			}
			if !strings.Contains(err.Error(), tt.name) {
				t.Fatalf("error %q does not name %q", err, tt.name)
			}
		})
	}

	if _, err := New(full(), DefaultConfig()); err != nil {
		t.Fatalf("New with all deps: %v", err)
	}
}

func TestNewRejectsTypedNilDependencies(t *testing.T) {
	tests := []struct {
		name   string
		want   string
		mutate func(*Deps)
	}{
		{"nil body pointer", "body", func(d *Deps) { d.Body = (*fakeBody)(nil) }},
		{"nil world pointer", "world", func(d *Deps) { d.World = (*fakeWorld)(nil) }},
		{"nil orientation pointer", "orientation", func(d *Deps) { d.Orientation = (*fakeOrientation)(nil) }},
		{"nil camera pointer", "camera", func(d *Deps) { d.Camera = (*fakeCamera)(nil) }},
		{"nil anchor func", "ground check", func(d *Deps) { d.GroundCheck = AnchorFunc(nil) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deps := Deps{
				Body:        newFakeBody(),
				World:       &fakeWorld{},
				Orientation: fakeOrientation{},
				Camera:      &fakeCamera{},
				GroundCheck: AnchorFunc(func() mgl64.Vec3 { return mgl64.Vec3{} }),
			}
			tt.mutate(&deps)
			_, err := New(deps, DefaultConfig())
			if !errors.Is(err, ErrMissingDependency) {
				t.Fatalf("New = %v, want ErrMissingDependency", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error %q does not name %q", err, tt.want)
			}
		})
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Movement.CrouchSize = 0
	_, err := New(Deps{
		Body:        newFakeBody(),
		World:       &fakeWorld{},
		Orientation: fakeOrientation{},
		Camera:      &fakeCamera{},
		GroundCheck: AnchorFunc(func() mgl64.Vec3 { return mgl64.Vec3{} }),
	}, cfg)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("New = %v, want ErrInvalidConfig", err)
	}
}

func TestEventsApplyAtDecisionPhase(t *testing.T) {
	r := newRig(t, DefaultConfig())
	r.tick(Input{})

	r.ctrl.Enqueue(EventJump)
	if r.ctrl.PendingEvents() != 1 {
		t.Fatalf("pending = %d, want 1", r.ctrl.PendingEvents())
	}
	if len(r.body.forcesOf(ForceModeImpulse)) != 0 {
		t.Fatalf("jump applied on enqueue")
	}

	r.ctrl.FixedUpdate(fixedDt, Input{})
	if len(r.body.forcesOf(ForceModeImpulse)) != 0 {
		t.Fatalf("jump applied during the physics step")
	}

	r.ctrl.Update(frameDt, Input{})
	if r.ctrl.PendingEvents() != 0 {
		t.Fatalf("events left after decision phase: %d", r.ctrl.PendingEvents())
	}
	if len(r.body.forcesOf(ForceModeImpulse)) != 1 {
		t.Fatalf("jump not applied at decision phase")
	}
}

func TestEventQueueOverflowIsLogged(t *testing.T) {
	var buf bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&buf)
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	body := newFakeBody()
	ctrl, err := New(Deps{
		Body:        body,
		World:       &fakeWorld{},
		Orientation: fakeOrientation{},
		Camera:      &fakeCamera{},
		GroundCheck: AnchorFunc(func() mgl64.Vec3 { return mgl64.Vec3{} }),
	}, DefaultConfig(), WithLogger(logrus.NewEntry(logger)))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	for i := 0; i < maxQueuedEvents+4; i++ {
		ctrl.Enqueue(EventCrouchStart)
	}
	if ctrl.PendingEvents() != maxQueuedEvents {
		t.Fatalf("pending = %d, want %d", ctrl.PendingEvents(), maxQueuedEvents)
	}
	if got := strings.Count(buf.String(), "event queue full"); got != 4 {
		t.Fatalf("logged %d overflow warnings, want 4", got)
	}
}

func TestModeObserver(t *testing.T) {
	type change struct{ from, to Mode }
	var changes []change

	body := newFakeBody()
	world := &fakeWorld{grounded: true, down: flatGround(), orientation: fakeOrientation{}}
	ctrl, err := New(Deps{
		Body:        body,
		World:       world,
		Orientation: fakeOrientation{},
		Camera:      &fakeCamera{},
		GroundCheck: AnchorFunc(func() mgl64.Vec3 { return body.pos }),
	}, DefaultConfig(), WithModeObserver(func(from, to Mode) {
		changes = append(changes, change{from, to})
	}))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ctrl.Step(frameDt, fixedDt, Input{})
	ctrl.Enqueue(EventCrouchStart)
	ctrl.Step(frameDt, fixedDt, Input{})
	ctrl.Step(frameDt, fixedDt, Input{})
	world.grounded = false
	ctrl.Step(frameDt, fixedDt, Input{})

	want := []change{
		{ModeAirborne, ModeGrounded},
		{ModeGrounded, ModeCrouching},
		{ModeCrouching, ModeAirborne},
	}
	if len(changes) != len(want) {
		t.Fatalf("changes = %v, want %v", changes, want)
	}
	for i := range want {
		if changes[i] != want[i] {
			t.Fatalf("change %d = %v, want %v", i, changes[i], want[i])
		}
	}
}

func TestWallRunSpeedSelectedSameStep(t *testing.T) {
	r := airRig(t, DefaultConfig())
	r.world.right = rightWall

	r.tick(sprint)

	s := r.ctrl.State()
	if s.Mode != ModeWallRunning || !s.WallRunning {
		t.Fatalf("mode = %s, want wall_running", s.Mode)
	}
	if !s.Sprinting {
		t.Fatalf("wall run with sprint held not reported as sprinting")
	}
	if !near(s.Speed, 10.5, 1e-9) {
		t.Fatalf("speed = %g, want 10.5 eased toward wall-run speed", s.Speed)
	}
	if !near(s.FOV, 70, 1e-9) {
		t.Fatalf("fov = %g, want 70 eased toward wall-run fov", s.FOV)
	}
	if s.Wall != WallRight {
		t.Fatalf("wall = %s, want right", s.Wall)
	}
}

func TestSetConfig(t *testing.T) {
	r := newRig(t, DefaultConfig())

	bad := DefaultConfig()
	bad.Movement.AirDrag = 2
	if err := r.ctrl.SetConfig(bad); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("SetConfig = %v, want ErrInvalidConfig", err)
	}
	if r.ctrl.Config().Movement.AirDrag != DefaultConfig().Movement.AirDrag {
		t.Fatalf("rejected config was applied")
	}

	cfg := DefaultConfig()
	cfg.Movement.WalkSpeed = 3
	if err := r.ctrl.SetConfig(cfg); err != nil {
		t.Fatalf("SetConfig: %v", err)
	}
	r.run(300, forward)
	if got := r.ctrl.Movement().Speed(); !near(got, 3, 0.01) {
		t.Fatalf("speed = %g, want ~3", got)
	}
}

func TestSetConfigRescalesCrouch(t *testing.T) {
	r := newRig(t, DefaultConfig())
	r.tick(Input{})
	r.ctrl.Enqueue(EventCrouchStart)
	r.tick(Input{})

	cfg := DefaultConfig()
	cfg.Movement.CrouchSize = 0.25
	if err := r.ctrl.SetConfig(cfg); err != nil {
		t.Fatalf("SetConfig: %v", err)
	}
	if r.body.scale.Y() != 0.25 {
		t.Fatalf("crouched scale = %g, want 0.25", r.body.scale.Y())
	}
	if feet := r.body.pos.Y() - r.body.scale.Y(); !near(feet, 0, 1e-9) {
		t.Fatalf("feet at %g after the rescale, want 0", feet)
	}

	r.ctrl.Enqueue(EventCrouchStop)
	r.tick(Input{})
	if !near(r.body.pos.Y(), 1, 1e-9) {
		t.Fatalf("y = %g after standing up, want 1", r.body.pos.Y())
	}
	if r.body.scale.Y() != 1 {
		t.Fatalf("standing scale = %g, want 1", r.body.scale.Y())
	}
}

func TestResetRestoresSpawnState(t *testing.T) {
	r := newRig(t, DefaultConfig())
	r.tick(Input{})
	r.ctrl.Enqueue(EventCrouchStart)
	r.tick(Input{})
	r.ctrl.Enqueue(EventJump)

	r.ctrl.Reset()

	if r.ctrl.PendingEvents() != 0 {
		t.Fatalf("pending events = %d after reset", r.ctrl.PendingEvents())
	}
	if r.ctrl.Movement().Posture() != PostureStanding || r.body.scale.Y() != 1 {
		t.Fatalf("posture %s scale %g, want standing at full height", r.ctrl.Movement().Posture(), r.body.scale.Y())
	}
	if r.ctrl.Mode() != ModeAirborne {
		t.Fatalf("mode = %s, want airborne until the next ground check", r.ctrl.Mode())
	}
	if r.camera.fov != DefaultConfig().Movement.DefaultFOV {
		t.Fatalf("fov = %g, want the default", r.camera.fov)
	}
}

func TestResetEndsWallRun(t *testing.T) {
	r := newRig(t, DefaultConfig())
	r.world.grounded = false
	r.world.down = nil
	r.world.right = rightWall
	r.run(3, Input{})
	if !r.ctrl.IsWallRunning() {
		t.Fatalf("wall run did not start")
	}

	r.ctrl.Reset()

	if r.ctrl.IsWallRunning() || r.ctrl.WallRun().Side() != WallNone {
		t.Fatalf("wall run survived the reset")
	}
	if !r.body.gravity {
		t.Fatalf("gravity still off after reset")
	}
	if r.ctrl.Tilt() != 0 {
		t.Fatalf("tilt = %g, want 0", r.ctrl.Tilt())
	}
}
