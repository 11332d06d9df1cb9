// Package config provides YAML-based tuning for the walker: physics,
// character geometry, world layout and loop timing.
package config

// WalkConfig contains all tuning for Walk the Dog.
type WalkConfig struct {
	Physics   WalkPhysics   `yaml:"physics"`
	Character WalkCharacter `yaml:"character"`
	World     WalkWorld     `yaml:"world"`
	Loop      WalkLoop      `yaml:"loop"`
}

// WalkPhysics defines per-step physics in pixels per step.
type WalkPhysics struct {
	Gravity          int16 `yaml:"gravity"`
	JumpSpeed        int16 `yaml:"jump_speed"` // Negative is up
	TerminalVelocity int16 `yaml:"terminal_velocity"`
	RunningSpeed     int16 `yaml:"running_speed"`
}

// WalkCharacter defines the runner's placement, animation and hit box.
type WalkCharacter struct {
	Floor       int16         `yaml:"floor"`      // Top of the sprite when standing on the ground
	StartingX   int16         `yaml:"starting_x"` // Horizontal position, never changes
	Frames      FrameCeilings `yaml:"frames"`
	BoundingBox BoxInsets     `yaml:"bounding_box"`
}

// FrameCeilings is the last animation frame index of each state.
type FrameCeilings struct {
	Idle    uint8 `yaml:"idle"`
	Running uint8 `yaml:"running"`
	Sliding uint8 `yaml:"sliding"`
	Jumping uint8 `yaml:"jumping"`
	Falling uint8 `yaml:"falling"`
}

// BoxInsets shrink the drawn sprite box into the collision box.
type BoxInsets struct {
	X      int16 `yaml:"x"`
	Y      int16 `yaml:"y"`
	Width  int16 `yaml:"width"`
	Height int16 `yaml:"height"`
}

// WalkWorld defines the canvas and obstacle layout.
type WalkWorld struct {
	Width           int16 `yaml:"width"`
	Height          int16 `yaml:"height"`
	TimelineMinimum int16 `yaml:"timeline_minimum"` // Generate a segment while content ends before this x
	ObstacleBuffer  int16 `yaml:"obstacle_buffer"`  // Gap between consecutive segments
	StoneOnGround   int16 `yaml:"stone_on_ground"`
	LowPlatform     int16 `yaml:"low_platform"`
	HighPlatform    int16 `yaml:"high_platform"`
	FirstPlatform   int16 `yaml:"first_platform"`
}

// WalkLoop defines simulation timing.
type WalkLoop struct {
	StepsPerSecond   int `yaml:"steps_per_second"`
	MaxStepsPerFrame int `yaml:"max_steps_per_frame"` // 0 = unbounded
}

// PlayerHeight returns the standing height the landing rule subtracts
// from a surface.
func (c WalkConfig) PlayerHeight() int16 {
	return c.World.Height - c.Character.Floor
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParseDifficulty maps a CLI value to a preset. Unknown values return "",
// meaning the loaded tuning is used as is.
func ParseDifficulty(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return DifficultyPreset(s)
	default:
		return ""
	}
}

// ApplyWalkPreset modifies the config based on a difficulty preset.
func ApplyWalkPreset(cfg *WalkConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Physics.RunningSpeed = 3
		cfg.World.TimelineMinimum = 800
	case DifficultyHard:
		cfg.Physics.RunningSpeed = 6
		cfg.World.ObstacleBuffer = 10
	}
}
