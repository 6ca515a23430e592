package grab

// Config holds the probe geometry of the five scans. Distances are world
// units.
type Config struct {
	LedgeStep    float32 `yaml:"ledge_step"`
	LedgeLift    float32 `yaml:"ledge_lift"`
	LedgeProbe   float32 `yaml:"ledge_probe"`
	LedgeForward float32 `yaml:"ledge_forward"`
	LedgeEpsilon float32 `yaml:"ledge_epsilon"`

	IndentOffset float32 `yaml:"indent_offset"`
	IndentRise   float32 `yaml:"indent_rise"`
	IndentRange  float32 `yaml:"indent_range"`
	IndentMargin float32 `yaml:"indent_margin"`

	OutdentBackoff float32 `yaml:"outdent_backoff"`
	OutdentRange   float32 `yaml:"outdent_range"`
	OutdentProbe   float32 `yaml:"outdent_probe"`
	OutdentMinOpen int     `yaml:"outdent_min_open"`

	CrackNeighbourhood float32 `yaml:"crack_neighbourhood"`
	CrackRange         float32 `yaml:"crack_range"`
	CrackMinGap        float32 `yaml:"crack_min_gap"`
	CrackMaxGap        float32 `yaml:"crack_max_gap"`

	CornerProbe    float32 `yaml:"corner_probe"`
	CornerMinFaces int     `yaml:"corner_min_faces"`
}

func DefaultConfig() Config {
	return Config{
		LedgeStep:    0.2,
		LedgeLift:    0.1,
		LedgeProbe:   0.3,
		LedgeForward: 0.2,
		LedgeEpsilon: 0.05,

		IndentOffset: 1.0,
		IndentRise:   0.2,
		IndentRange:  2.0,
		IndentMargin: 0.1,

		OutdentBackoff: 0.5,
		OutdentRange:   1.0,
		OutdentProbe:   0.3,
		OutdentMinOpen: 2,

		CrackNeighbourhood: 2.0,
		CrackRange:         3.0,
		CrackMinGap:        0.05,
		CrackMaxGap:        0.3,

		CornerProbe:    0.2,
		CornerMinFaces: 2,
	}
}
