package main

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/gekko3d/ascent"
	"github.com/gekko3d/ascent/climbrt/collision"
	"github.com/gekko3d/ascent/climbrt/feedback"
	"github.com/go-gl/mathgl/mgl32"
)

// Cells are about twice as tall as wide, so a world unit spans twice as many
// columns as rows.
const (
	colsPerUnit = 4
	rowsPerUnit = 2
)

var (
	styleRock  = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleHold  = tcell.StyleDefault.Foreground(tcell.ColorOlive)
	styleBody  = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	styleLeft  = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	styleRight = tcell.StyleDefault.Foreground(tcell.ColorBlue).Bold(true)
	styleGrab  = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleText  = tcell.StyleDefault.Foreground(tcell.ColorSilver)
)

// sideView draws a side projection (X across, Y up) centred on the climber.
// It keeps the last feedback frame and draws it over the static world.
type sideView struct {
	screen tcell.Screen
	last   feedback.Recorder
}

func (v *sideView) Present(frame *feedback.Frame) {
	v.last.Present(frame)
}

func (v *sideView) project(center, p mgl32.Vec3) (int, int) {
	w, h := v.screen.Size()
	x := w/2 + int(math.Round(float64((p.X()-center.X())*colsPerUnit)))
	y := (h-1)/2 - int(math.Round(float64((p.Y()-center.Y())*rowsPerUnit)))
	return x, y
}

func (v *sideView) draw(world *collision.World, c *ascent.Climber) {
	v.screen.Clear()
	center := c.Body.Position

	for _, s := range world.Shapes() {
		if s.Trigger {
			continue
		}
		ch, style := '#', styleRock
		if s.Climbable() {
			ch, style = '%', styleHold
		}
		v.fill(center, s.Bounds.Min, s.Bounds.Max, ch, style)
	}

	for _, g := range v.last.Last.Gizmos {
		switch g.Type {
		case feedback.GizmoCube:
			half := g.Scale.Mul(0.5)
			v.fill(center, g.Position.Sub(half), g.Position.Add(half), '@', styleBody)
		case feedback.GizmoSphere:
			if g.Color[3] < 1 {
				continue
			}
			style := styleLeft
			if g.Color == feedback.ColorBlue {
				style = styleRight
			}
			x, y := v.project(center, g.Position)
			v.screen.SetContent(x, y, 'o', nil, style)
		}
	}
	for _, ind := range v.last.Last.Indicators {
		x, y := v.project(center, ind.Point.Position)
		v.screen.SetContent(x, y, '*', nil, styleGrab)
	}

	_, h := v.screen.Size()
	v.text(0, h-1, c.String())
	v.text(0, 0, "q/e hand  arrows/mouse move hand  wasd walk  space jump  esc quit")
	v.screen.Show()
}

func (v *sideView) fill(center, lo, hi mgl32.Vec3, ch rune, style tcell.Style) {
	x0, y1 := v.project(center, lo)
	x1, y0 := v.project(center, hi)
	w, h := v.screen.Size()
	for y := max(y0, 0); y <= min(y1, h-1); y++ {
		for x := max(x0, 0); x <= min(x1, w-1); x++ {
			v.screen.SetContent(x, y, ch, nil, style)
		}
	}
}

func (v *sideView) text(x, y int, s string) {
	for i, r := range s {
		v.screen.SetContent(x+i, y, r, nil, styleText)
	}
}
