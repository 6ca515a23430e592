package hand

import "github.com/go-gl/mathgl/mgl32"

type Config struct {
	Reach                   float32    `yaml:"reach"`
	MoveSpeed               float32    `yaml:"move_speed"`
	GrabRadius              float32    `yaml:"grab_radius"`
	SearchMultiplier        float32    `yaml:"search_multiplier"`
	AnchoredReachMultiplier float32    `yaml:"anchored_reach_multiplier"`
	RestOffset              mgl32.Vec3 `yaml:"rest_offset"`
	RestRate                float32    `yaml:"rest_rate"`
	PullThreshold           float32    `yaml:"pull_threshold"`
	PullGain                float32    `yaml:"pull_gain"`
	PullUpwardBias          float32    `yaml:"pull_upward_bias"`
	IndicatorPool           int        `yaml:"indicator_pool"`
	IndicatorSize           float32    `yaml:"indicator_size"`
}

func DefaultConfig() Config {
	return Config{
		Reach:                   3.0,
		MoveSpeed:               8.0,
		GrabRadius:              1.5,
		SearchMultiplier:        2.0,
		AnchoredReachMultiplier: 2.2,
		RestOffset:              mgl32.Vec3{0.5, 0.5, 0.5},
		RestRate:                2.0,
		PullThreshold:           0.1,
		PullGain:                50,
		PullUpwardBias:          0.5,
		IndicatorPool:           30,
		IndicatorSize:           0.4,
	}
}

// SearchRadius is the discovery radius around a hand; selection then
// narrows to GrabRadius.
func (c Config) SearchRadius() float32 {
	return c.GrabRadius * c.SearchMultiplier
}

// Rest returns the local rest offset of a hand, mirrored for the left.
func (c Config) Rest(side Side) mgl32.Vec3 {
	r := c.RestOffset
	if side == Left {
		r[0] = -r[0]
	}
	return r
}
