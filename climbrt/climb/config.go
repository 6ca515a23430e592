package climb

type Config struct {
	PullStrength        float32 `yaml:"pull_strength"`
	ClimbDamping        float32 `yaml:"climb_damping"`
	StandardDamping     float32 `yaml:"standard_damping"`
	GravityCompensation float32 `yaml:"gravity_compensation"`
	MaxVelocity         float32 `yaml:"max_velocity"`
	CloseThreshold      float32 `yaml:"close_threshold"`
	CloseDamping        float32 `yaml:"close_damping"`
	HangOffset          float32 `yaml:"hang_offset"`
	EntryVelocityScale  float32 `yaml:"entry_velocity_scale"`
	LeashFraction       float32 `yaml:"leash_fraction"`
	LeashRate           float32 `yaml:"leash_rate"`
	MovementScale       float32 `yaml:"movement_scale"`
}

func DefaultConfig() Config {
	return Config{
		PullStrength:        8,
		ClimbDamping:        5,
		StandardDamping:     2,
		GravityCompensation: 0.3,
		MaxVelocity:         4,
		CloseThreshold:      0.2,
		CloseDamping:        0.9,
		HangOffset:          1.2,
		EntryVelocityScale:  0.3,
		LeashFraction:       0.9,
		LeashRate:           8,
		MovementScale:       0.5,
	}
}
