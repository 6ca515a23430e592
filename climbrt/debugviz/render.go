// Package debugviz rasterizes feedback frames into images: a flat
// projection of gizmos and grab-point indicators, labelled with their kind.
package debugviz

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"os"

	"github.com/gekko3d/ascent/climbrt/feedback"
	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

type Projection int

const (
	// Side looks along +Z: X right, Y up.
	Side Projection = iota
	// Top looks down: X right, Z up.
	Top
)

const circleSegments = 24

// Renderer implements feedback.Sink by drawing every presented frame into
// an RGBA image.
type Renderer struct {
	Width, Height int
	// PixelsPerUnit is the world-to-image scale.
	PixelsPerUnit float32
	// Center is the world point drawn at the image center.
	Center     mgl32.Vec3
	View       Projection
	Background color.RGBA
	Labels     bool

	img    *image.RGBA
	raster *vector.Rasterizer
	face   font.Face
	frame  uint64
}

func New(width, height int, pixelsPerUnit float32) *Renderer {
	return &Renderer{
		Width:         width,
		Height:        height,
		PixelsPerUnit: pixelsPerUnit,
		Background:    color.RGBA{R: 20, G: 22, B: 28, A: 255},
		Labels:        true,
		img:           image.NewRGBA(image.Rect(0, 0, width, height)),
		raster:        vector.NewRasterizer(width, height),
		face:          basicfont.Face7x13,
	}
}

// Project maps a world point to image coordinates.
func (r *Renderer) Project(p mgl32.Vec3) (float32, float32) {
	rel := p.Sub(r.Center)
	u, v := rel.X(), rel.Y()
	if r.View == Top {
		v = rel.Z()
	}
	x := float32(r.Width)/2 + u*r.PixelsPerUnit
	y := float32(r.Height)/2 - v*r.PixelsPerUnit
	return x, y
}

func (r *Renderer) Present(frame *feedback.Frame) {
	draw.Draw(r.img, r.img.Bounds(), image.NewUniform(r.Background), image.Point{}, draw.Src)
	r.frame = frame.Number

	for _, g := range frame.Gizmos {
		r.drawGizmo(g)
	}
	for _, ind := range frame.Indicators {
		x, y := r.Project(ind.Point.Position)
		rad := max(ind.Size/2*r.PixelsPerUnit, 2)
		r.fillCircle(x, y, rad, toRGBA(ind.Color))
		if r.Labels {
			r.label(x+rad+1, y+4, ind.Point.Kind.String()[:1], toRGBA(ind.Color))
		}
	}
	if r.Labels {
		r.label(4, 14, fmt.Sprintf("frame %d  points %d", frame.Number, len(frame.Indicators)), color.RGBA{200, 200, 200, 255})
	}
}

// Frame is the number of the last presented frame.
func (r *Renderer) Frame() uint64 {
	return r.frame
}

func (r *Renderer) Image() *image.RGBA {
	return r.img
}

func (r *Renderer) WritePNG(w io.Writer) error {
	return png.Encode(w, r.img)
}

func (r *Renderer) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("debugviz: create %s: %w", path, err)
	}
	if err := r.WritePNG(f); err != nil {
		f.Close()
		return fmt.Errorf("debugviz: encode %s: %w", path, err)
	}
	return f.Close()
}

func (r *Renderer) drawGizmo(g feedback.Gizmo) {
	col := toRGBA(g.Color)
	switch g.Type {
	case feedback.GizmoLine:
		x0, y0 := r.Project(g.Position)
		x1, y1 := r.Project(g.LineEnd)
		r.strokeLine(x0, y0, x1, y1, 1.5, col)
	case feedback.GizmoSphere:
		x, y := r.Project(g.Position)
		r.strokeCircle(x, y, g.Radius*r.PixelsPerUnit, col)
	case feedback.GizmoCube:
		r.strokeBox(g, col)
	}
}

// strokeBox draws the twelve edges of an oriented box. Scale is the full
// size.
func (r *Renderer) strokeBox(g feedback.Gizmo, col color.RGBA) {
	half := g.Scale.Mul(0.5)
	var corners [8][2]float32
	for i := 0; i < 8; i++ {
		local := mgl32.Vec3{-half.X(), -half.Y(), -half.Z()}
		if i&4 != 0 {
			local[0] = half.X()
		}
		if i&2 != 0 {
			local[1] = half.Y()
		}
		if i&1 != 0 {
			local[2] = half.Z()
		}
		x, y := r.Project(g.Rotation.Rotate(local).Add(g.Position))
		corners[i] = [2]float32{x, y}
	}
	for a := 0; a < 8; a++ {
		for _, bit := range [3]int{1, 2, 4} {
			b := a | bit
			if b == a {
				continue
			}
			r.strokeLine(corners[a][0], corners[a][1], corners[b][0], corners[b][1], 1, col)
		}
	}
}

func (r *Renderer) strokeLine(x0, y0, x1, y1, width float32, col color.RGBA) {
	dx, dy := x1-x0, y1-y0
	l := float32(math.Hypot(float64(dx), float64(dy)))
	if l < 1e-3 {
		return
	}
	nx, ny := -dy/l*width/2, dx/l*width/2

	z := r.raster
	z.Reset(r.Width, r.Height)
	z.MoveTo(x0+nx, y0+ny)
	z.LineTo(x1+nx, y1+ny)
	z.LineTo(x1-nx, y1-ny)
	z.LineTo(x0-nx, y0-ny)
	z.ClosePath()
	z.Draw(r.img, r.img.Bounds(), image.NewUniform(col), image.Point{})
}

func (r *Renderer) fillCircle(cx, cy, radius float32, col color.RGBA) {
	z := r.raster
	z.Reset(r.Width, r.Height)
	for i := 0; i <= circleSegments; i++ {
		a := float64(i) / circleSegments * 2 * math.Pi
		x := cx + radius*float32(math.Cos(a))
		y := cy + radius*float32(math.Sin(a))
		if i == 0 {
			z.MoveTo(x, y)
		} else {
			z.LineTo(x, y)
		}
	}
	z.ClosePath()
	z.Draw(r.img, r.img.Bounds(), image.NewUniform(col), image.Point{})
}

func (r *Renderer) strokeCircle(cx, cy, radius float32, col color.RGBA) {
	px, py := cx+radius, cy
	for i := 1; i <= circleSegments; i++ {
		a := float64(i) / circleSegments * 2 * math.Pi
		x := cx + radius*float32(math.Cos(a))
		y := cy + radius*float32(math.Sin(a))
		r.strokeLine(px, py, x, y, 1, col)
		px, py = x, y
	}
}

func (r *Renderer) label(x, y float32, text string, col color.RGBA) {
	d := font.Drawer{
		Dst:  r.img,
		Src:  image.NewUniform(col),
		Face: r.face,
		Dot:  fixed.P(int(x), int(y)),
	}
	d.DrawString(text)
}

func toRGBA(c [4]float32) color.RGBA {
	clamp := func(v float32) uint8 {
		return uint8(mgl32.Clamp(v, 0, 1)*255 + 0.5)
	}
	// Premultiplied, as image/color expects.
	a := mgl32.Clamp(c[3], 0, 1)
	return color.RGBA{R: clamp(c[0] * a), G: clamp(c[1] * a), B: clamp(c[2] * a), A: clamp(a)}
}

var _ feedback.Sink = (*Renderer)(nil)
