package feedback

import (
	"github.com/gekko3d/ascent/climbrt/grab"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	DefaultPoolSize      = 30
	DefaultIndicatorSize = 0.4
)

// Indicator marks one discovered grab point for rendering.
type Indicator struct {
	Point grab.GrabPoint
	Size  float32
	Color [4]float32
}

func (i Indicator) Gizmo() Gizmo {
	return NewGizmoSphere(i.Point.Position, i.Size/2, i.Color)
}

// Indicators is a fixed-size pool of indicator slots. Refresh never
// activates more slots than the pool holds; excess points are dropped.
type Indicators struct {
	slots  []Indicator
	active int
	size   float32
}

func NewIndicators(capacity int, size float32) *Indicators {
	if capacity < 0 {
		capacity = 0
	}
	if size <= 0 {
		size = DefaultIndicatorSize
	}
	return &Indicators{
		slots: make([]Indicator, capacity),
		size:  size,
	}
}

func (p *Indicators) Cap() int {
	return len(p.slots)
}

// Clear hides every slot.
func (p *Indicators) Clear() {
	p.active = 0
}

// Refresh hides all slots, then fills them in order with the points that lie
// within radius of hand. It returns the number of points dropped because
// the pool was full.
func (p *Indicators) Refresh(hand mgl32.Vec3, radius float32, points []grab.GrabPoint) int {
	p.active = 0
	dropped := 0
	for _, pt := range points {
		if pt.Position.Sub(hand).Len() > radius {
			continue
		}
		if p.active >= len(p.slots) {
			dropped++
			continue
		}
		p.slots[p.active] = Indicator{Point: pt, Size: p.size, Color: ColorRed}
		p.active++
	}
	return dropped
}

// Active returns the visible slots. The slice is reused by the next Refresh.
func (p *Indicators) Active() []Indicator {
	return p.slots[:p.active]
}
