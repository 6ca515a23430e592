package ascent

import (
	"fmt"

	"github.com/gekko3d/ascent/climbrt/collision"
	"github.com/gekko3d/ascent/climbrt/scene"
)

const DefaultCellSize = 4.0

// SceneInfo records which scene populated the collision world.
type SceneInfo struct {
	Def     *scene.SceneDef
	Spawned *scene.Spawned
}

// CollisionModule provides the static collision world, optionally populated
// from a scene definition.
type CollisionModule struct {
	CellSize float32
	Scene    *scene.SceneDef
}

func (m CollisionModule) Install(app *App, cmd *Commands) {
	cellSize := m.CellSize
	if cellSize <= 0 {
		cellSize = DefaultCellSize
	}
	world := collision.NewWorld(cellSize)

	info := &SceneInfo{Def: m.Scene}
	if m.Scene != nil {
		spawned, err := scene.Spawn(world, m.Scene)
		if err != nil {
			panic(fmt.Sprintf("collision: spawning scene %q: %v", m.Scene.Name, err))
		}
		info.Spawned = spawned
		app.Logger().Infof("collision: scene %q spawned, %d shapes", m.Scene.Name, world.Len())
	}

	cmd.AddResources(world, info)
}
