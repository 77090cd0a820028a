package locomotion

import "testing"

func TestSelectSpeedIsTotal(t *testing.T) {
	postures := []Posture{PostureStanding, PostureCrouching, PostureSliding}
	bools := []bool{false, true}

	for _, p := range postures {
		for _, sprint := range bools {
			for _, moving := range bools {
				for _, grounded := range bools {
					for _, wall := range bools {
						got := selectSpeed(p, sprint, moving, grounded, wall)
						var want SpeedMode
						switch {
						case p.Crouched():
							want = SpeedCrouch
						case sprint && moving && grounded:
							want = SpeedSprint
						case sprint && moving && wall:
							want = SpeedWallRun
						default:
							want = SpeedWalk
						}
						if got != want {
							t.Fatalf("selectSpeed(%s, sprint=%v, moving=%v, grounded=%v, wall=%v) = %s, want %s",
								p, sprint, moving, grounded, wall, got, want)
						}
					}
				}
			}
		}
	}
}

func TestPostureTransitions(t *testing.T) {
	tests := []struct {
		from, to Posture
		want     bool
	}{
		{PostureStanding, PostureCrouching, true},
		{PostureStanding, PostureSliding, true},
		{PostureCrouching, PostureStanding, true},
		{PostureCrouching, PostureSliding, false},
		{PostureSliding, PostureCrouching, true},
		{PostureSliding, PostureStanding, true},
		{PostureStanding, PostureStanding, false},
	}

	for _, tt := range tests {
		t.Run(tt.from.String()+"->"+tt.to.String(), func(t *testing.T) {
			if got := canTransition(tt.from, tt.to); got != tt.want {
				t.Fatalf("canTransition = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDeriveModePrecedence(t *testing.T) {
	tests := []struct {
		name     string
		grounded bool
		posture  Posture
		wall     bool
		want     Mode
	}{
		{"airborne", false, PostureStanding, false, ModeAirborne},
		{"grounded", true, PostureStanding, false, ModeGrounded},
		{"crouching", true, PostureCrouching, false, ModeCrouching},
		{"sliding", true, PostureSliding, false, ModeSliding},
		{"wall run wins", false, PostureSliding, true, ModeWallRunning},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := deriveMode(tt.grounded, tt.posture, tt.wall); got != tt.want {
				t.Fatalf("deriveMode = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestSlidingIsCrouched(t *testing.T) {
	if !PostureSliding.Crouched() || !PostureCrouching.Crouched() || PostureStanding.Crouched() {
		t.Fatalf("unexpected Crouched results")
	}
}
