// Package scene builds static collision worlds from declarative
// definitions.
package scene

import (
	"errors"
	"fmt"
	"os"

	"github.com/gekko3d/ascent/climbrt/collision"
	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"
)

var ErrInvalidScene = errors.New("invalid scene")

// SceneDef defines the static geometry of a level and where the climber
// starts.
type SceneDef struct {
	Name    string      `yaml:"name"`
	Spawn   SpawnDef    `yaml:"spawn"`
	Objects []ObjectDef `yaml:"objects"`
}

type SpawnDef struct {
	Position mgl32.Vec3 `yaml:"position"`
	Yaw      float32    `yaml:"yaw"`
}

// ObjectDef defines one collision shape. Shape is "box" or "sphere".
type ObjectDef struct {
	Name        string     `yaml:"name"`
	Shape       string     `yaml:"shape"`
	Position    mgl32.Vec3 `yaml:"position"`
	HalfExtents mgl32.Vec3 `yaml:"half_extents"`
	Radius      float32    `yaml:"radius"`
	// Rotation is XYZ euler angles in degrees.
	Rotation  mgl32.Vec3 `yaml:"rotation"`
	Climbable bool       `yaml:"climbable"`
	Trigger   bool       `yaml:"trigger"`
}

func (o ObjectDef) Quat() mgl32.Quat {
	if o.Rotation.Len() == 0 {
		return mgl32.QuatIdent()
	}
	return mgl32.AnglesToQuat(
		mgl32.DegToRad(o.Rotation.X()),
		mgl32.DegToRad(o.Rotation.Y()),
		mgl32.DegToRad(o.Rotation.Z()),
		mgl32.XYZ,
	)
}

func Parse(data []byte) (*SceneDef, error) {
	var def SceneDef
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("scene: unmarshal: %w", err)
	}
	if err := def.Validate(); err != nil {
		return nil, err
	}
	return &def, nil
}

func Load(path string) (*SceneDef, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scene: load %s: %w", path, err)
	}
	def, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return def, nil
}

func (s *SceneDef) Validate() error {
	for i, o := range s.Objects {
		label := o.Name
		if label == "" {
			label = fmt.Sprintf("#%d", i)
		}
		switch o.Shape {
		case "box":
			h := o.HalfExtents
			if h.X() < 0 || h.Y() < 0 || h.Z() < 0 {
				return fmt.Errorf("scene: object %s: negative half extents %v: %w", label, h, ErrInvalidScene)
			}
		case "sphere":
			if o.Radius <= 0 {
				return fmt.Errorf("scene: object %s: radius must be positive: %w", label, ErrInvalidScene)
			}
		default:
			return fmt.Errorf("scene: object %s: unknown shape %q: %w", label, o.Shape, ErrInvalidScene)
		}
	}
	return nil
}

// Spawned maps object names to the shapes created for them.
type Spawned struct {
	Ids   map[string]collision.ShapeId
	Order []collision.ShapeId
}

func (s *Spawned) Lookup(name string) collision.ShapeId {
	if s == nil {
		return collision.NoShape
	}
	return s.Ids[name]
}

// Spawn adds every object to world in declaration order.
func Spawn(world *collision.World, def *SceneDef) (*Spawned, error) {
	if err := def.Validate(); err != nil {
		return nil, err
	}
	out := &Spawned{Ids: make(map[string]collision.ShapeId, len(def.Objects))}
	for _, o := range def.Objects {
		var opts []collision.ShapeOption
		if o.Climbable {
			opts = append(opts, collision.Climbable())
		}
		if o.Trigger {
			opts = append(opts, collision.AsTrigger())
		}

		var id collision.ShapeId
		switch o.Shape {
		case "box":
			id = world.AddBox(o.Position, o.HalfExtents, o.Quat(), opts...)
		case "sphere":
			id = world.AddSphere(o.Position, o.Radius, opts...)
		}
		if o.Name != "" {
			out.Ids[o.Name] = id
		}
		out.Order = append(out.Order, id)
	}
	return out, nil
}
