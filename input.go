package main

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/wallrunner/locomotion"
)

const (
	stickDeadzone = 0.2
	// stickLookScale converts a full right-stick deflection into look units
	// per frame.
	stickLookScale = 40
)

// Input polls the keyboard, mouse and first gamepad once per frame.
type Input struct {
	// State is the continuous input for this frame.
	State locomotion.Input
	// Events are the edges seen this frame, in press order.
	Events []locomotion.Event

	Quit        bool
	Pause       bool
	Respawn     bool
	ToggleDebug bool

	cursorX, cursorY int
	cursorSeen       bool
}

func NewInput() *Input {
	return &Input{}
}

func (i *Input) Update() {
	i.Events = i.Events[:0]
	i.Quit = inpututil.IsKeyJustPressed(ebiten.KeyF12)
	i.Pause = inpututil.IsKeyJustPressed(ebiten.KeyEscape)
	i.Respawn = inpututil.IsKeyJustPressed(ebiten.KeyR)
	i.ToggleDebug = inpututil.IsKeyJustPressed(ebiten.KeyF3)

	var move, look mgl64.Vec2
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyUp) {
		move[1] += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyDown) {
		move[1] -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyRight) {
		move[0] += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyLeft) {
		move[0] -= 1
	}
	sprint := ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight)

	jump := inpututil.IsKeyJustPressed(ebiten.KeySpace)
	crouchDown := inpututil.IsKeyJustPressed(ebiten.KeyControlLeft) || inpututil.IsKeyJustPressed(ebiten.KeyC)
	crouchUp := inpututil.IsKeyJustReleased(ebiten.KeyControlLeft) || inpututil.IsKeyJustReleased(ebiten.KeyC)

	// Mouse look from cursor deltas; the cursor is captured while playing.
	mx, my := ebiten.CursorPosition()
	if i.cursorSeen {
		look[0] = float64(mx - i.cursorX)
		look[1] = -float64(my - i.cursorY)
	}
	i.cursorX, i.cursorY, i.cursorSeen = mx, my, true

	ids := ebiten.AppendGamepadIDs(nil)
	if len(ids) > 0 && ebiten.IsStandardGamepadLayoutAvailable(ids[0]) {
		gid := ids[0]
		lx := ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisLeftStickHorizontal)
		ly := ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisLeftStickVertical)
		if lx*lx+ly*ly > stickDeadzone*stickDeadzone {
			move = mgl64.Vec2{lx, -ly}
		}

		rx := ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisRightStickHorizontal)
		ry := ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisRightStickVertical)
		if rx*rx+ry*ry > stickDeadzone*stickDeadzone {
			look = look.Add(mgl64.Vec2{rx, -ry}.Mul(stickLookScale))
		}

		sprint = sprint || ebiten.IsStandardGamepadButtonPressed(gid, ebiten.StandardGamepadButtonLeftStick)
		// A jumps, B crouches.
		jump = jump || inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonRightBottom)
		crouchDown = crouchDown || inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonRightRight)
		crouchUp = crouchUp || inpututil.IsStandardGamepadButtonJustReleased(gid, ebiten.StandardGamepadButtonRightRight)
		i.Pause = i.Pause || inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonCenterRight)
	}

	i.State = locomotion.Input{
		Move: mgl64.Vec2{clampAxis(move[0]), clampAxis(move[1])},
		Look: look,
	}
	if sprint {
		i.State.Sprint = 1
	}

	if jump {
		i.Events = append(i.Events, locomotion.EventJump)
	}
	if crouchDown {
		i.Events = append(i.Events, locomotion.EventCrouchStart)
	}
	if crouchUp {
		i.Events = append(i.Events, locomotion.EventCrouchStop)
	}
}

func clampAxis(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}
