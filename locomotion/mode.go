package locomotion

// Posture is the body configuration. Sliding is a crouched posture, so a slide
// can never exist without a crouch.
type Posture uint8

const (
	PostureStanding Posture = iota
	PostureCrouching
	PostureSliding
)

func (p Posture) String() string {
	switch p {
	case PostureStanding:
		return "standing"
	case PostureCrouching:
		return "crouching"
	case PostureSliding:
		return "sliding"
	default:
		return "unknown"
	}
}

// Crouched reports whether the crouch scale is applied.
func (p Posture) Crouched() bool {
	return p == PostureCrouching || p == PostureSliding
}

// postureTransitions lists the legal posture changes. A slide only starts from a
// standing crouch press and only ends into a crouch or a stand.
var postureTransitions = [3][3]bool{
	PostureStanding:  {PostureCrouching: true, PostureSliding: true},
	PostureCrouching: {PostureStanding: true},
	PostureSliding:   {PostureStanding: true, PostureCrouching: true},
}

func canTransition(from, to Posture) bool {
	if int(from) >= len(postureTransitions) || int(to) >= len(postureTransitions) {
		return false
	}
	return postureTransitions[from][to]
}

// Mode is the exclusive locomotion mode derived from the grounded flag, the
// posture and the wall-run state.
type Mode uint8

const (
	ModeAirborne Mode = iota
	ModeGrounded
	ModeCrouching
	ModeSliding
	ModeWallRunning
)

func (m Mode) String() string {
	switch m {
	case ModeAirborne:
		return "airborne"
	case ModeGrounded:
		return "grounded"
	case ModeCrouching:
		return "crouching"
	case ModeSliding:
		return "sliding"
	case ModeWallRunning:
		return "wall_running"
	default:
		return "unknown"
	}
}

func deriveMode(grounded bool, posture Posture, wallRunning bool) Mode {
	switch {
	case wallRunning:
		return ModeWallRunning
	case posture == PostureSliding:
		return ModeSliding
	case posture == PostureCrouching:
		return ModeCrouching
	case grounded:
		return ModeGrounded
	default:
		return ModeAirborne
	}
}

// SpeedMode is the branch of the speed and FOV selection.
type SpeedMode uint8

const (
	SpeedWalk SpeedMode = iota
	SpeedCrouch
	SpeedSprint
	SpeedWallRun
)

func (s SpeedMode) String() string {
	switch s {
	case SpeedWalk:
		return "walk"
	case SpeedCrouch:
		return "crouch"
	case SpeedSprint:
		return "sprint"
	case SpeedWallRun:
		return "wall_run"
	default:
		return "unknown"
	}
}

// selectSpeed picks the first matching branch: crouch, grounded sprint,
// wall-run sprint, walk.
func selectSpeed(posture Posture, sprintHeld, moving, grounded, wallRunning bool) SpeedMode {
	switch {
	case posture.Crouched():
		return SpeedCrouch
	case sprintHeld && moving && grounded:
		return SpeedSprint
	case sprintHeld && moving && wallRunning:
		return SpeedWallRun
	default:
		return SpeedWalk
	}
}

// WallSide is the side a wall was detected on. Left wins when both are in range.
type WallSide uint8

const (
	WallNone WallSide = iota
	WallLeft
	WallRight
)

func (s WallSide) String() string {
	switch s {
	case WallLeft:
		return "left"
	case WallRight:
		return "right"
	default:
		return "none"
	}
}
