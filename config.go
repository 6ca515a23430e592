package ascent

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/gekko3d/ascent/climbrt/body"
	"github.com/gekko3d/ascent/climbrt/climb"
	"github.com/gekko3d/ascent/climbrt/grab"
	"github.com/gekko3d/ascent/climbrt/hand"
	"github.com/gekko3d/ascent/climbrt/locomotion"
	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = errors.New("invalid config")

type PhysicsConfig struct {
	Gravity mgl32.Vec3 `yaml:"gravity"`
	// FixedStep is in seconds.
	FixedStep   float32 `yaml:"fixed_step"`
	MaxTicks    int     `yaml:"max_ticks"`
	SweepStep   float32 `yaml:"sweep_step"`
	Refinements int     `yaml:"refinements"`
}

// Config aggregates every tunable. Components copy their section at
// construction; a loaded Config is never mutated afterwards.
type Config struct {
	Hands      hand.Config       `yaml:"hands"`
	Climb      climb.Config      `yaml:"climb"`
	Locomotion locomotion.Config `yaml:"locomotion"`
	Detector   grab.Config       `yaml:"detector"`
	Physics    PhysicsConfig     `yaml:"physics"`
	Body       body.Config       `yaml:"body"`
	Debug      bool              `yaml:"debug"`
}

func DefaultConfig() Config {
	return Config{
		Hands:      hand.DefaultConfig(),
		Climb:      climb.DefaultConfig(),
		Locomotion: locomotion.DefaultConfig(),
		Detector:   grab.DefaultConfig(),
		Physics: PhysicsConfig{
			Gravity:     mgl32.Vec3{0, -9.81, 0},
			FixedStep:   1.0 / 60.0,
			MaxTicks:    DefaultMaxTicks,
			SweepStep:   0.1,
			Refinements: 6,
		},
		Body: body.DefaultConfig(),
	}
}

// FixedStep converts the physics step to a duration.
func (c Config) FixedStep() time.Duration {
	return time.Duration(float64(c.Physics.FixedStep) * float64(time.Second))
}

// ParseConfig overlays YAML on the defaults.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	return ParseConfig(data)
}

func (c Config) Validate() error {
	positive := []struct {
		name  string
		value float32
	}{
		{"hands.reach", c.Hands.Reach},
		{"hands.move_speed", c.Hands.MoveSpeed},
		{"hands.grab_radius", c.Hands.GrabRadius},
		{"hands.search_multiplier", c.Hands.SearchMultiplier},
		{"hands.anchored_reach_multiplier", c.Hands.AnchoredReachMultiplier},
		{"hands.indicator_size", c.Hands.IndicatorSize},
		{"climb.pull_strength", c.Climb.PullStrength},
		{"climb.max_velocity", c.Climb.MaxVelocity},
		{"climb.close_threshold", c.Climb.CloseThreshold},
		{"climb.leash_fraction", c.Climb.LeashFraction},
		{"locomotion.move_speed", c.Locomotion.MoveSpeed},
		{"locomotion.climb_speed", c.Locomotion.ClimbSpeed},
		{"locomotion.ground_check_distance", c.Locomotion.GroundCheckDistance},
		{"locomotion.slope_probe_depth", c.Locomotion.SlopeProbeDepth},
		{"detector.ledge_step", c.Detector.LedgeStep},
		{"detector.ledge_probe", c.Detector.LedgeProbe},
		{"detector.indent_range", c.Detector.IndentRange},
		{"detector.outdent_range", c.Detector.OutdentRange},
		{"detector.crack_neighbourhood", c.Detector.CrackNeighbourhood},
		{"detector.crack_range", c.Detector.CrackRange},
		{"detector.corner_probe", c.Detector.CornerProbe},
		{"physics.fixed_step", c.Physics.FixedStep},
		{"physics.sweep_step", c.Physics.SweepStep},
		{"body.mass", c.Body.Mass},
		{"body.half_height", c.Body.HalfHeight},
		{"body.radius", c.Body.Radius},
	}
	for _, p := range positive {
		if !(p.value > 0) {
			return fmt.Errorf("config: %s must be positive, got %v: %w", p.name, p.value, ErrInvalidConfig)
		}
	}

	for name, deg := range map[string]float32{
		"locomotion.slope_block_deg": c.Locomotion.SlopeBlockDeg,
		"locomotion.jump_slope_deg":  c.Locomotion.JumpSlopeDeg,
	} {
		if deg < 0 || deg > 90 {
			return fmt.Errorf("config: %s must be within [0, 90], got %v: %w", name, deg, ErrInvalidConfig)
		}
	}

	if c.Physics.FixedStep > 1 {
		return fmt.Errorf("config: physics.fixed_step must not exceed 1s, got %v: %w", c.Physics.FixedStep, ErrInvalidConfig)
	}
	if c.Detector.CrackMinGap >= c.Detector.CrackMaxGap {
		return fmt.Errorf("config: detector.crack_min_gap %v must be below crack_max_gap %v: %w",
			c.Detector.CrackMinGap, c.Detector.CrackMaxGap, ErrInvalidConfig)
	}
	if c.Body.Radius > c.Body.HalfHeight {
		return fmt.Errorf("config: body.radius %v exceeds half_height %v: %w", c.Body.Radius, c.Body.HalfHeight, ErrInvalidConfig)
	}
	if c.Hands.IndicatorPool < 0 {
		return fmt.Errorf("config: hands.indicator_pool must not be negative: %w", ErrInvalidConfig)
	}
	return nil
}
