// Package script drives a controller from a tengo scenario script. The script
// runs once per frame with the globals tick and state set, and answers through
// the globals move_x, move_y, look_x, look_y, sprint, jump and crouch.
package script

import (
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/wallrunner/locomotion"
	"github.com/sirupsen/logrus"
)

var outputs = []string{"move_x", "move_y", "look_x", "look_y", "sprint", "jump", "crouch"}

// Driver is not safe for concurrent use.
type Driver struct {
	name     string
	compiled *tengo.Compiled
	log      *logrus.Entry

	tick      int
	crouching bool
}

// New compiles src. name is used in errors and log fields only.
func New(name string, src []byte, log *logrus.Entry) (*Driver, error) {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	d := &Driver{
		name: name,
		log:  log.WithField("script", name),
	}
	compiled, err := d.compile(src)
	if err != nil {
		return nil, err
	}
	d.compiled = compiled
	return d, nil
}

func (d *Driver) compile(src []byte) (*tengo.Compiled, error) {
	s := tengo.NewScript(src)
	_ = s.Add("tick", 0)
	_ = s.Add("state", &tengo.ImmutableMap{Value: map[string]tengo.Object{}})
	for _, name := range outputs {
		_ = s.Add(name, tengo.UndefinedValue)
	}
	_ = s.Add("log", &tengo.UserFunction{Name: "log", Value: d.logFunc})

	s.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := s.Compile()
	if err != nil {
		return nil, fmt.Errorf("script: compile %s: %w", d.name, err)
	}
	return compiled, nil
}

// Reload swaps in new source. The tick counter and crouch edge state carry
// over; on a compile error the old script stays active.
func (d *Driver) Reload(src []byte) error {
	compiled, err := d.compile(src)
	if err != nil {
		return err
	}
	d.compiled = compiled
	return nil
}

// Tick is the number of frames the script has produced.
func (d *Driver) Tick() int {
	return d.tick
}

// Next runs the script for one frame. A rising crouch output yields
// EventCrouchStart, a falling one EventCrouchStop, and a truthy jump yields
// EventJump.
func (d *Driver) Next(s locomotion.State) (locomotion.Input, []locomotion.Event, error) {
	c := d.compiled
	for _, name := range outputs {
		if err := c.Set(name, tengo.UndefinedValue); err != nil {
			return locomotion.Input{}, nil, err
		}
	}
	if err := c.Set("tick", d.tick); err != nil {
		return locomotion.Input{}, nil, err
	}
	if err := c.Set("state", stateObject(s)); err != nil {
		return locomotion.Input{}, nil, err
	}
	if err := c.Run(); err != nil {
		return locomotion.Input{}, nil, fmt.Errorf("script: run %s tick %d: %w", d.name, d.tick, err)
	}
	d.tick++

	in := locomotion.Input{
		Move:   mgl64.Vec2{clampAxis(c.Get("move_x").Float()), clampAxis(c.Get("move_y").Float())},
		Look:   mgl64.Vec2{c.Get("look_x").Float(), c.Get("look_y").Float()},
		Sprint: c.Get("sprint").Float(),
	}

	var events []locomotion.Event
	if c.Get("jump").Bool() {
		events = append(events, locomotion.EventJump)
	}
	crouch := c.Get("crouch").Bool()
	switch {
	case crouch && !d.crouching:
		events = append(events, locomotion.EventCrouchStart)
	case !crouch && d.crouching:
		events = append(events, locomotion.EventCrouchStop)
	}
	d.crouching = crouch

	return in, events, nil
}

func (d *Driver) logFunc(args ...tengo.Object) (tengo.Object, error) {
	parts := make([]string, 0, len(args))
	for _, a := range args {
		if s, ok := tengo.ToString(a); ok {
			parts = append(parts, s)
		}
	}
	d.log.WithField("tick", d.tick).Info(strings.Join(parts, " "))
	return tengo.UndefinedValue, nil
}

func stateObject(s locomotion.State) *tengo.ImmutableMap {
	return &tengo.ImmutableMap{Value: map[string]tengo.Object{
		"mode":         &tengo.String{Value: s.Mode.String()},
		"posture":      &tengo.String{Value: s.Posture.String()},
		"wall":         &tengo.String{Value: s.Wall.String()},
		"grounded":     boolObject(s.Grounded),
		"sprinting":    boolObject(s.Sprinting),
		"wall_running": boolObject(s.WallRunning),
		"speed":        &tengo.Float{Value: s.Speed},
		"fov":          &tengo.Float{Value: s.FOV},
		"tilt":         &tengo.Float{Value: s.Tilt},
		"x":            &tengo.Float{Value: s.Position.X()},
		"y":            &tengo.Float{Value: s.Position.Y()},
		"z":            &tengo.Float{Value: s.Position.Z()},
		"vx":           &tengo.Float{Value: s.Velocity.X()},
		"vy":           &tengo.Float{Value: s.Velocity.Y()},
		"vz":           &tengo.Float{Value: s.Velocity.Z()},
	}}
}

func boolObject(b bool) tengo.Object {
	if b {
		return tengo.TrueValue
	}
	return tengo.FalseValue
}

func clampAxis(v float64) float64 {
	switch {
	case v > 1:
		return 1
	case v < -1:
		return -1
	}
	return v
}
