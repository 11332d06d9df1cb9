package config

import (
	_ "embed"
	"errors"
	"fmt"
)

//go:embed defaults/walk.yaml
var defaultWalkYAML []byte

// DefaultWalkConfig returns the default Walk the Dog tuning.
func DefaultWalkConfig() WalkConfig {
	return WalkConfig{
		Physics: WalkPhysics{
			Gravity:          1,
			JumpSpeed:        -25,
			TerminalVelocity: 20,
			RunningSpeed:     4,
		},
		Character: WalkCharacter{
			Floor:     479,
			StartingX: -20,
			Frames: FrameCeilings{
				Idle:    29,
				Running: 23,
				Sliding: 14,
				Jumping: 35,
				Falling: 29,
			},
			BoundingBox: BoxInsets{
				X:      18,
				Y:      14,
				Width:  28,
				Height: 14,
			},
		},
		World: WalkWorld{
			Width:           600,
			Height:          600,
			TimelineMinimum: 1000,
			ObstacleBuffer:  20,
			StoneOnGround:   546,
			LowPlatform:     420,
			HighPlatform:    375,
			FirstPlatform:   240,
		},
		Loop: WalkLoop{
			StepsPerSecond:   60,
			MaxStepsPerFrame: 0,
		},
	}
}

// Validate reports tuning the simulation cannot run with.
func (c WalkConfig) Validate() error {
	var errs []error
	if c.World.Width <= 0 || c.World.Height <= 0 {
		errs = append(errs, fmt.Errorf("world size %dx%d must be positive", c.World.Width, c.World.Height))
	}
	if c.Character.Floor <= 0 || c.Character.Floor >= c.World.Height {
		errs = append(errs, fmt.Errorf("floor %d must be inside the world height %d", c.Character.Floor, c.World.Height))
	}
	if c.Physics.JumpSpeed >= 0 {
		errs = append(errs, fmt.Errorf("jump_speed %d must be negative", c.Physics.JumpSpeed))
	}
	if c.Physics.Gravity <= 0 || c.Physics.TerminalVelocity <= 0 {
		errs = append(errs, errors.New("gravity and terminal_velocity must be positive"))
	}
	if c.Physics.RunningSpeed < 0 {
		errs = append(errs, fmt.Errorf("running_speed %d must not be negative", c.Physics.RunningSpeed))
	}
	f := c.Character.Frames
	if f.Idle == 0 || f.Running == 0 || f.Sliding == 0 || f.Jumping == 0 || f.Falling == 0 {
		errs = append(errs, errors.New("every frame ceiling must be positive"))
	}
	if c.World.ObstacleBuffer < 0 {
		errs = append(errs, fmt.Errorf("obstacle_buffer %d must not be negative", c.World.ObstacleBuffer))
	}
	if c.Loop.StepsPerSecond <= 0 {
		errs = append(errs, fmt.Errorf("steps_per_second %d must be positive", c.Loop.StepsPerSecond))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: invalid tuning: %w", errors.Join(errs...))
	}
	return nil
}
