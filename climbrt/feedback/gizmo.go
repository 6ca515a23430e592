package feedback

import "github.com/go-gl/mathgl/mgl32"

type GizmoType int

const (
	GizmoLine GizmoType = iota
	GizmoCube
	GizmoSphere
)

// Gizmo is a wireframe debug primitive in world space.
type Gizmo struct {
	Type  GizmoType
	Color [4]float32

	// For Cube and Sphere: Position is center. For Line: Position is start.
	Position mgl32.Vec3
	Rotation mgl32.Quat
	Scale    mgl32.Vec3

	LineEnd mgl32.Vec3
	Radius  float32
}

var (
	ColorRed        = [4]float32{1, 0, 0, 0.8}
	ColorGreen      = [4]float32{0, 1, 0, 1}
	ColorBlue       = [4]float32{0, 0, 1, 1}
	ColorGreenGhost = [4]float32{0, 1, 0, 0.3}
	ColorBlueGhost  = [4]float32{0, 0, 1, 0.3}
	ColorGrey       = [4]float32{0.6, 0.6, 0.6, 1}
)

func NewGizmoLine(start, end mgl32.Vec3, color [4]float32) Gizmo {
	return Gizmo{
		Type:     GizmoLine,
		Position: start,
		LineEnd:  end,
		Color:    color,
		Scale:    mgl32.Vec3{1, 1, 1},
		Rotation: mgl32.QuatIdent(),
	}
}

func NewGizmoCube(center mgl32.Vec3, size mgl32.Vec3, color [4]float32) Gizmo {
	return Gizmo{
		Type:     GizmoCube,
		Position: center,
		Scale:    size,
		Color:    color,
		Rotation: mgl32.QuatIdent(),
	}
}

func NewGizmoSphere(center mgl32.Vec3, radius float32, color [4]float32) Gizmo {
	return Gizmo{
		Type:     GizmoSphere,
		Position: center,
		Radius:   radius,
		Scale:    mgl32.Vec3{1, 1, 1},
		Color:    color,
		Rotation: mgl32.QuatIdent(),
	}
}
