package scene

import (
	_ "embed"
	"fmt"
)

//go:embed crag.yaml
var cragYAML []byte

// DemoCrag is the built-in practice crag: a floor, a cliff with small
// ledges, a crack between two pillars, a boulder and a ramp too steep to
// walk.
func DemoCrag() *SceneDef {
	def, err := Parse(cragYAML)
	if err != nil {
		panic(fmt.Sprintf("scene: built-in crag: %v", err))
	}
	return def
}
