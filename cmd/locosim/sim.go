package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/elliotchance/orderedmap/v2"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/wallrunner/levels"
	"github.com/milk9111/wallrunner/locomotion"
	"github.com/milk9111/wallrunner/obj"
	"github.com/milk9111/wallrunner/physics"
	"github.com/milk9111/wallrunner/prefabs"
	"github.com/milk9111/wallrunner/script"
	"github.com/sirupsen/logrus"
)

var errBadOptions = errors.New("locosim: bad options")

type options struct {
	level  string
	tuning string
	script string
	ticks   int
	hz      float64
	gravity float64
}

func (o options) validate() error {
	if o.ticks <= 0 {
		return fmt.Errorf("%w: ticks must be positive, got %d", errBadOptions, o.ticks)
	}
	if o.hz <= 0 {
		return fmt.Errorf("%w: hz must be positive, got %g", errBadOptions, o.hz)
	}
	if o.gravity > 0 {
		return fmt.Errorf("%w: gravity must not point up, got %g", errBadOptions, o.gravity)
	}
	if o.script == "" {
		return fmt.Errorf("%w: a script is required", errBadOptions)
	}
	return nil
}

type simulation struct {
	opts   options
	level  string
	arena  *physics.Arena
	player *obj.Player
	driver *script.Driver
	log    *logrus.Entry

	modeTicks   map[locomotion.Mode]int
	transitions int
	maxSpeed    float64
	maxHeight   float64
	wallRuns    int
}

func newSimulation(opts options, log *logrus.Entry) (*simulation, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	lvl, err := levels.Load(opts.level)
	if err != nil {
		return nil, err
	}
	cfg, err := prefabs.LoadTuning(opts.tuning)
	if err != nil {
		return nil, err
	}
	src, err := prefabs.LoadScript(opts.script)
	if err != nil {
		return nil, err
	}
	driver, err := script.New(opts.script, src, log)
	if err != nil {
		return nil, err
	}

	s := &simulation{
		opts:      opts,
		level:     lvl.Name,
		driver:    driver,
		log:       log,
		modeTicks: make(map[locomotion.Mode]int),
	}
	arena := physics.NewArena(lvl)
	arena.SetGravity(opts.gravity)
	s.arena = arena
	s.player, err = obj.NewPlayer(arena, cfg, log,
		locomotion.WithModeObserver(s.onMode))
	if err != nil {
		return nil, err
	}
	s.maxHeight = s.player.Position().Y()
	return s, nil
}

func (s *simulation) onMode(from, to locomotion.Mode) {
	s.transitions++
	if to == locomotion.ModeWallRunning {
		s.wallRuns++
	}
	s.log.WithFields(logrus.Fields{
		"tick": s.driver.Tick(),
		"from": from,
		"to":   to,
	}).Info("mode changed")
}

// Run steps the player in lockstep, one script frame per tick.
func (s *simulation) Run() (*report, error) {
	dt := 1 / s.opts.hz
	ctrl := s.player.Controller

	for i := 0; i < s.opts.ticks; i++ {
		in, events, err := s.driver.Next(ctrl.State())
		if err != nil {
			return nil, err
		}
		for _, e := range events {
			ctrl.Enqueue(e)
		}
		s.player.Step(dt, dt, in)
		s.observe()
	}
	return s.report(), nil
}

func (s *simulation) observe() {
	st := s.player.Controller.State()
	s.modeTicks[st.Mode]++
	horizontal := mgl64.Vec2{st.Velocity.X(), st.Velocity.Z()}.Len()
	if horizontal > s.maxSpeed {
		s.maxSpeed = horizontal
	}
	if st.Position.Y() > s.maxHeight {
		s.maxHeight = st.Position.Y()
	}
}

type report struct {
	fields *orderedmap.OrderedMap[string, any]
}

func (s *simulation) report() *report {
	st := s.player.Controller.State()
	r := &report{fields: orderedmap.NewOrderedMap[string, any]()}
	r.fields.Set("script", s.opts.script)
	r.fields.Set("level", s.level)
	r.fields.Set("ticks", s.opts.ticks)
	r.fields.Set("gravity", fmt.Sprintf("%.2f", s.arena.Gravity()))
	r.fields.Set("mass", fmt.Sprintf("%.2f", s.player.Body.Mass()))
	r.fields.Set("seconds", fmt.Sprintf("%.2f", float64(s.opts.ticks)/s.opts.hz))
	for _, m := range []locomotion.Mode{
		locomotion.ModeAirborne,
		locomotion.ModeGrounded,
		locomotion.ModeCrouching,
		locomotion.ModeSliding,
		locomotion.ModeWallRunning,
	} {
		r.fields.Set("ticks_"+m.String(), s.modeTicks[m])
	}
	r.fields.Set("transitions", s.transitions)
	r.fields.Set("wall_runs", s.wallRuns)
	r.fields.Set("max_speed", fmt.Sprintf("%.2f", s.maxSpeed))
	r.fields.Set("max_height", fmt.Sprintf("%.2f", s.maxHeight))
	r.fields.Set("final_mode", st.Mode.String())
	r.fields.Set("final_position", fmt.Sprintf("(%.2f, %.2f, %.2f)", st.Position.X(), st.Position.Y(), st.Position.Z()))
	return r
}

func (r *report) Get(key string) (any, bool) {
	return r.fields.Get(key)
}

func (r *report) String() string {
	var b strings.Builder
	for _, key := range r.fields.Keys() {
		v, _ := r.fields.Get(key)
		fmt.Fprintf(&b, "%-20s %v\n", key, v)
	}
	return strings.TrimRight(b.String(), "\n")
}
