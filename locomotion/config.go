package locomotion

import "fmt"

// MovementConfig tunes ground, air, crouch and slide movement.
type MovementConfig struct {
	WalkSpeed    float64 `yaml:"walk_speed"`
	SprintSpeed  float64 `yaml:"sprint_speed"`
	CrouchSpeed  float64 `yaml:"crouch_speed"`
	WallRunSpeed float64 `yaml:"wall_run_speed"`
	// Acceleration is the ease rate of the speed toward its target.
	Acceleration float64 `yaml:"acceleration"`
	// InitialSpeed is the smoothed speed at spawn.
	InitialSpeed float64 `yaml:"initial_speed"`

	JumpForce float64 `yaml:"jump_force"`

	CanSlide bool `yaml:"can_slide"`
	// CrouchSize multiplies the standing height while crouched.
	CrouchSize             float64 `yaml:"crouch_size"`
	SlideForce             float64 `yaml:"slide_force"`
	LateralSpeedMultiplier float64 `yaml:"lateral_speed_multiplier"`
	SlideStopSpeed         float64 `yaml:"slide_stop_speed"`
	SlideStartSpeed        float64 `yaml:"slide_start_speed"`
	// AirborneUncrouchNudge lifts the body when a crouch is cancelled by
	// leaving the ground, so the restored extents do not clip the floor.
	AirborneUncrouchNudge float64 `yaml:"airborne_uncrouch_nudge"`

	DefaultFOV float64 `yaml:"default_fov"`
	SprintFOV  float64 `yaml:"sprint_fov"`
	SlideFOV   float64 `yaml:"slide_fov"`
	FOVRate    float64 `yaml:"fov_rate"`

	GroundVelocityChange float64 `yaml:"ground_velocity_change"`
	AirVelocityChange    float64 `yaml:"air_velocity_change"`
	AirDrag              float64 `yaml:"air_drag"`
	SlideDrag            float64 `yaml:"slide_drag"`

	GroundDistance float64   `yaml:"ground_distance"`
	GroundMask     LayerMask `yaml:"ground_mask"`
	// SlopeRayPadding extends the slope ray past the body's half-height.
	SlopeRayPadding float64 `yaml:"slope_ray_padding"`
}

// WallRunConfig tunes wall detection, the wall-run itself and its camera feedback.
type WallRunConfig struct {
	CanWallRun bool `yaml:"can_wall_run"`

	WallDistance      float64   `yaml:"wall_distance"`
	MinimumJumpHeight float64   `yaml:"minimum_jump_height"`
	WallMask          LayerMask `yaml:"wall_mask"`

	// Gravity is the downward speed and force that replace gravity on a wall.
	Gravity                  float64 `yaml:"gravity"`
	JumpForce                float64 `yaml:"jump_force"`
	VerticalJumpMultiplier   float64 `yaml:"vertical_jump_multiplier"`
	HorizontalJumpMultiplier float64 `yaml:"horizontal_jump_multiplier"`

	FOV      float64 `yaml:"fov"`
	FOVRate  float64 `yaml:"fov_rate"`
	CamTilt  float64 `yaml:"cam_tilt"`
	TiltRate float64 `yaml:"tilt_rate"`
}

// Config is the full controller tuning.
type Config struct {
	Movement MovementConfig `yaml:"movement"`
	WallRun  WallRunConfig  `yaml:"wall_run"`
}

func DefaultMovementConfig() MovementConfig {
	return MovementConfig{
		WalkSpeed:    7,
		SprintSpeed:  10,
		CrouchSpeed:  5,
		WallRunSpeed: 13,
		Acceleration: 10,
		InitialSpeed: 10,

		JumpForce: 5,

		CanSlide:               true,
		CrouchSize:             0.5,
		SlideForce:             400,
		LateralSpeedMultiplier: 1,
		SlideStopSpeed:         2,
		SlideStartSpeed:        0.5,
		AirborneUncrouchNudge:  0.5,

		DefaultFOV: 80,
		SprintFOV:  82.5,
		SlideFOV:   85,
		FOVRate:    20,

		GroundVelocityChange: 1.5,
		AirVelocityChange:    0.3,
		AirDrag:              0.99,
		SlideDrag:            0.99,

		GroundDistance:  0.2,
		GroundMask:      AllLayers,
		SlopeRayPadding: 0.5,
	}
}

func DefaultWallRunConfig() WallRunConfig {
	return WallRunConfig{
		CanWallRun: true,

		WallDistance:      0.7,
		MinimumJumpHeight: 1.5,
		WallMask:          AllLayers,

		Gravity:                  1,
		JumpForce:                5,
		VerticalJumpMultiplier:   0.7,
		HorizontalJumpMultiplier: 1,

		FOV:      90,
		FOVRate:  20,
		CamTilt:  10,
		TiltRate: 20,
	}
}

func DefaultConfig() Config {
	return Config{
		Movement: DefaultMovementConfig(),
		WallRun:  DefaultWallRunConfig(),
	}
}

// Validate reports the first out-of-range field.
func (c Config) Validate() error {
	m := c.Movement
	nonNegative := []struct {
		name string
		v    float64
	}{
		{"movement.walk_speed", m.WalkSpeed},
		{"movement.sprint_speed", m.SprintSpeed},
		{"movement.crouch_speed", m.CrouchSpeed},
		{"movement.wall_run_speed", m.WallRunSpeed},
		{"movement.acceleration", m.Acceleration},
		{"movement.initial_speed", m.InitialSpeed},
		{"movement.jump_force", m.JumpForce},
		{"movement.slide_force", m.SlideForce},
		{"movement.lateral_speed_multiplier", m.LateralSpeedMultiplier},
		{"movement.slide_stop_speed", m.SlideStopSpeed},
		{"movement.slide_start_speed", m.SlideStartSpeed},
		{"movement.airborne_uncrouch_nudge", m.AirborneUncrouchNudge},
		{"movement.fov_rate", m.FOVRate},
		{"movement.ground_velocity_change", m.GroundVelocityChange},
		{"movement.air_velocity_change", m.AirVelocityChange},
		{"movement.slope_ray_padding", m.SlopeRayPadding},
		{"wall_run.gravity", c.WallRun.Gravity},
		{"wall_run.jump_force", c.WallRun.JumpForce},
		{"wall_run.fov_rate", c.WallRun.FOVRate},
		{"wall_run.cam_tilt", c.WallRun.CamTilt},
		{"wall_run.tilt_rate", c.WallRun.TiltRate},
	}
	for _, f := range nonNegative {
		if f.v < 0 {
			return fmt.Errorf("%w: %s must not be negative, got %g", ErrInvalidConfig, f.name, f.v)
		}
	}

	positive := []struct {
		name string
		v    float64
	}{
		{"movement.ground_distance", m.GroundDistance},
		{"wall_run.wall_distance", c.WallRun.WallDistance},
		{"wall_run.minimum_jump_height", c.WallRun.MinimumJumpHeight},
	}
	for _, f := range positive {
		if f.v <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %g", ErrInvalidConfig, f.name, f.v)
		}
	}

	if m.CrouchSize <= 0 || m.CrouchSize > 1 {
		return fmt.Errorf("%w: movement.crouch_size must be in (0, 1], got %g", ErrInvalidConfig, m.CrouchSize)
	}
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"movement.air_drag", m.AirDrag},
		{"movement.slide_drag", m.SlideDrag},
	} {
		if f.v < 0 || f.v > 1 {
			return fmt.Errorf("%w: %s must be in [0, 1], got %g", ErrInvalidConfig, f.name, f.v)
		}
	}
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"movement.default_fov", m.DefaultFOV},
		{"movement.sprint_fov", m.SprintFOV},
		{"movement.slide_fov", m.SlideFOV},
		{"wall_run.fov", c.WallRun.FOV},
	} {
		if f.v <= 0 || f.v >= 180 {
			return fmt.Errorf("%w: %s must be in (0, 180), got %g", ErrInvalidConfig, f.name, f.v)
		}
	}
	return nil
}
