package script

import (
	"bytes"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/wallrunner/locomotion"
	"github.com/milk9111/wallrunner/prefabs"
	"github.com/sirupsen/logrus"
)

func newDriver(t *testing.T, src string) *Driver {
	t.Helper()
	d, err := New("test", []byte(src), nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return d
}

func TestNextReadsOutputs(t *testing.T) {
	d := newDriver(t, `
move_x = 2
move_y = -0.5
look_x = 3
sprint = 1
`)
	in, events, err := d.Next(locomotion.State{})
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if in.Move != (mgl64.Vec2{1, -0.5}) {
		t.Fatalf("move = %v, want clamped (1, -0.5)", in.Move)
	}
	if in.Look != (mgl64.Vec2{3, 0}) {
		t.Fatalf("look = %v", in.Look)
	}
	if !in.SprintHeld() {
		t.Fatalf("sprint not held")
	}
	if len(events) != 0 {
		t.Fatalf("events = %v, want none", events)
	}
}

func TestOutputsResetEachTick(t *testing.T) {
	d := newDriver(t, `
if tick == 0 {
	move_y = 1
	jump = true
}
`)
	if in, events, _ := d.Next(locomotion.State{}); in.Move.Y() != 1 || len(events) != 1 {
		t.Fatalf("tick 0: move %v events %v", in.Move, events)
	}
	in, events, err := d.Next(locomotion.State{})
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if in.Move.Y() != 0 || len(events) != 0 {
		t.Fatalf("tick 1 kept old outputs: move %v events %v", in.Move, events)
	}
	if d.Tick() != 2 {
		t.Fatalf("Tick() = %d, want 2", d.Tick())
	}
}

func TestCrouchEdges(t *testing.T) {
	d := newDriver(t, `crouch = tick >= 1 && tick < 3`)

	want := [][]locomotion.Event{
		nil,
		{locomotion.EventCrouchStart},
		nil,
		{locomotion.EventCrouchStop},
		nil,
	}
	for tick, w := range want {
		_, got, err := d.Next(locomotion.State{})
		if err != nil {
			t.Fatalf("tick %d: %v", tick, err)
		}
		if len(got) != len(w) || (len(w) == 1 && got[0] != w[0]) {
			t.Fatalf("tick %d: events %v, want %v", tick, got, w)
		}
	}
}

func TestStateIsVisible(t *testing.T) {
	d := newDriver(t, `
if state.mode == "wall_running" && state.y > 2 {
	jump = true
}
`)
	s := locomotion.State{
		Mode:        locomotion.ModeWallRunning,
		WallRunning: true,
		Position:    mgl64.Vec3{0, 3, 0},
	}
	_, events, err := d.Next(s)
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if len(events) != 1 || events[0] != locomotion.EventJump {
		t.Fatalf("events = %v, want jump", events)
	}
}

func TestCompileAndRuntimeErrors(t *testing.T) {
	if _, err := New("bad", []byte("move_x = "), nil); err == nil {
		t.Fatalf("New accepted a syntax error")
	}

	d := newDriver(t, `move_x = 1 / (tick - tick)`)
	if _, _, err := d.Next(locomotion.State{}); err == nil {
		t.Fatalf("Next did not report a division by zero")
	}
}

func TestReloadKeepsTick(t *testing.T) {
	d := newDriver(t, `move_y = 1`)
	for i := 0; i < 3; i++ {
		if _, _, err := d.Next(locomotion.State{}); err != nil {
			t.Fatalf("Next: %v", err)
		}
	}

	if err := d.Reload([]byte("move_y = ")); err == nil {
		t.Fatalf("Reload accepted a syntax error")
	}
	if err := d.Reload([]byte(`move_y = tick`)); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	in, _, err := d.Next(locomotion.State{})
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	// tick 3 is clamped to 1
	if in.Move.Y() != 1 || d.Tick() != 4 {
		t.Fatalf("move %v tick %d", in.Move, d.Tick())
	}
}

func TestLogFunction(t *testing.T) {
	var buf bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&buf)

	d, err := New("logger", []byte(`log("speed", state.speed)`), logrus.NewEntry(logger))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, _, err := d.Next(locomotion.State{Speed: 7}); err != nil {
		t.Fatalf("Next: %v", err)
	}
	if !strings.Contains(buf.String(), "speed 7") {
		t.Fatalf("log output %q", buf.String())
	}
}

func TestEmbeddedScriptsCompile(t *testing.T) {
	for _, name := range prefabs.Scripts() {
		t.Run(name, func(t *testing.T) {
			src, err := prefabs.LoadScript(name)
			if err != nil {
				t.Fatalf("LoadScript: %v", err)
			}
			d, err := New(name, src, nil)
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			for i := 0; i < 240; i++ {
				if _, _, err := d.Next(locomotion.State{}); err != nil {
					t.Fatalf("tick %d: %v", i, err)
				}
			}
		})
	}
}
