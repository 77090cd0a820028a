package obj

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/wallrunner/locomotion"
	"github.com/milk9111/wallrunner/physics"
	"github.com/sirupsen/logrus"
)

const (
	PlayerMass = 1.0
	// FixedStep is the physics step of the frame loop.
	FixedStep     = 0.02
	maxFixedSteps = 5
)

// PlayerScale is the standing extents of the player body. Y is the half-height.
var PlayerScale = mgl64.Vec3{1, 1, 1}

// Player is the playable character: a physics body, a first-person look and
// the controller that drives them.
type Player struct {
	Body       *physics.Body
	Look       *Look
	Controller *locomotion.Controller

	arena *physics.Arena
	acc   float64
}

// NewPlayer spawns a player at the arena level's spawn point.
func NewPlayer(arena *physics.Arena, cfg locomotion.Config, log *logrus.Entry, opts ...locomotion.Option) (*Player, error) {
	lvl := arena.Level()
	body := arena.AddBody(lvl.Spawn, PlayerMass, PlayerScale)
	look := NewLook(lvl.SpawnYaw, cfg.Movement.DefaultFOV)

	if log != nil {
		opts = append([]locomotion.Option{locomotion.WithLogger(log)}, opts...)
	}
	ctrl, err := locomotion.New(locomotion.Deps{
		Body:        body,
		World:       arena,
		Orientation: look,
		Camera:      look,
		GroundCheck: body.GroundCheck(),
	}, cfg, opts...)
	if err != nil {
		return nil, fmt.Errorf("obj: new player: %w", err)
	}

	return &Player{
		Body:       body,
		Look:       look,
		Controller: ctrl,
		arena:      arena,
	}, nil
}

// Update runs one rendered frame: look, the decision phase, then as many
// fixed physics steps as the accumulated time allows. It returns the number
// of physics steps taken.
func (p *Player) Update(frameDt float64, in locomotion.Input) int {
	p.Look.Apply(in.Look)
	p.Controller.Update(frameDt, in)

	p.acc += frameDt
	steps := 0
	for p.acc >= FixedStep {
		if steps == maxFixedSteps {
			// drop the backlog after a long stall
			p.acc = 0
			break
		}
		p.Controller.FixedUpdate(FixedStep, in)
		p.arena.Step(FixedStep)
		p.acc -= FixedStep
		steps++
	}

	p.Look.SetRoll(p.Controller.Tilt())
	return steps
}

// Step runs one lockstep tick for hosts without a render loop.
func (p *Player) Step(frameDt, fixedDt float64, in locomotion.Input) {
	p.Look.Apply(in.Look)
	p.Controller.Step(frameDt, fixedDt, in)
	p.arena.Step(fixedDt)
	p.Look.SetRoll(p.Controller.Tilt())
}

// Respawn puts the player back at the spawn point at rest, standing and off
// any wall.
func (p *Player) Respawn() {
	lvl := p.arena.Level()
	p.Controller.Reset()
	p.Look.SetRoll(0)
	p.Body.SetPosition(lvl.Spawn)
	p.Body.SetVelocity(mgl64.Vec3{})
	p.acc = 0
}

func (p *Player) Position() mgl64.Vec3 {
	return p.Body.Position()
}
