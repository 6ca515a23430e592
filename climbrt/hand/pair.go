package hand

import (
	"github.com/gekko3d/ascent/climbrt/core"
	"github.com/gekko3d/ascent/climbrt/grab"
	"github.com/go-gl/mathgl/mgl32"
)

// Finder discovers grab points around a point.
type Finder interface {
	FindGrabPoints(center mgl32.Vec3, radius float32) []grab.GrabPoint
}

// Listener is told about every grab and release.
type Listener interface {
	OnHandGrabbed(side Side, point grab.GrabPoint)
	OnHandReleased(side Side)
}

// PullRequester receives the free hand's pull requests while the other
// hand is anchored.
type PullRequester interface {
	RequestPull(force mgl32.Vec3)
}

type Logger = core.Logger

// Input is one tick of hand controls. Pressed and Released are edges.
// ViewRight and ViewUp orient pointer motion; zero vectors fall back to the
// body's own basis.
type Input struct {
	Pressed  [2]bool
	Released [2]bool
	// Held is the control state after the edges. When both edges are
	// pending it tells which came last.
	Held      [2]bool
	Pointer   mgl32.Vec2
	ViewRight mgl32.Vec3
	ViewUp    mgl32.Vec3
}

// Pair owns both hands. All anchor mutation goes through it.
type Pair struct {
	cfg      Config
	finder   Finder
	listener Listener
	puller   PullRequester
	log      Logger
	hands    [2]Anchor
}

type Option func(*Pair)

func WithListener(l Listener) Option {
	return func(p *Pair) { p.listener = l }
}

func WithPullRequester(r PullRequester) Option {
	return func(p *Pair) { p.puller = r }
}

func WithLogger(l Logger) Option {
	return func(p *Pair) {
		if l != nil {
			p.log = l
		}
	}
}

func NewPair(cfg Config, finder Finder, opts ...Option) *Pair {
	p := &Pair{
		cfg:    cfg,
		finder: finder,
		log:    core.NopLogger{},
	}
	p.hands[Left] = newAnchor(Left, cfg.Rest(Left))
	p.hands[Right] = newAnchor(Right, cfg.Rest(Right))
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Pair) Config() Config {
	return p.cfg
}

func (p *Pair) Hand(side Side) *Anchor {
	return &p.hands[side]
}

func (p *Pair) AnyGrabbed() bool {
	return p.hands[Left].IsGrabbed() || p.hands[Right].IsGrabbed()
}

func (p *Pair) BothGrabbed() bool {
	return p.hands[Left].IsGrabbed() && p.hands[Right].IsGrabbed()
}

// GrabbedCount is the number of anchored hands.
func (p *Pair) GrabbedCount() int {
	n := 0
	for i := range p.hands {
		if p.hands[i].IsGrabbed() {
			n++
		}
	}
	return n
}

// GrabbedCentroid averages the grab points of anchored hands.
func (p *Pair) GrabbedCentroid() (mgl32.Vec3, bool) {
	var sum mgl32.Vec3
	n := 0
	for i := range p.hands {
		if pt, ok := p.hands[i].GrabPoint(); ok {
			sum = sum.Add(pt.Position)
			n++
		}
	}
	if n == 0 {
		return mgl32.Vec3{}, false
	}
	return sum.Mul(1 / float32(n)), true
}

// Dragged returns the hand currently being dragged, if any.
func (p *Pair) Dragged() (Side, bool) {
	for i := range p.hands {
		if p.hands[i].IsDragging() {
			return Side(i), true
		}
	}
	return Left, false
}

// Tick handles control edges, then moves the hands. Left-hand edges are
// handled before right-hand edges. A hand with both edges pending replays
// them in the order that leaves it matching the held control: release then
// press while held, press then release otherwise.
func (p *Pair) Tick(in Input, body core.Transform, dt float32) {
	for _, side := range [2]Side{Left, Right} {
		pressed, released := in.Pressed[side], in.Released[side]
		if pressed && released && in.Held[side] {
			p.ReleaseControl(side, body.Position)
			p.Press(side, body.Position)
			continue
		}
		if pressed {
			p.Press(side, body.Position)
		}
		if released {
			p.ReleaseControl(side, body.Position)
		}
	}
	p.Update(in, body, dt)
}

// Press starts dragging a hand. The other hand stops dragging and a grabbed
// hand lets go first.
func (p *Pair) Press(side Side, bodyPos mgl32.Vec3) {
	p.hands[side.Other()].stopDrag()

	h := &p.hands[side]
	if h.IsGrabbed() {
		p.release(side, bodyPos)
	}
	h.beginDrag()
}

// ReleaseControl ends a drag with a grab attempt.
func (p *Pair) ReleaseControl(side Side, bodyPos mgl32.Vec3) {
	h := &p.hands[side]
	if !h.IsDragging() {
		return
	}
	if !p.tryGrab(side, bodyPos) {
		h.stopDrag()
	}
}

// Release lets go of a grabbed hand without starting a drag.
func (p *Pair) Release(side Side, bodyPos mgl32.Vec3) {
	if p.hands[side].IsGrabbed() {
		p.release(side, bodyPos)
	}
}

func (p *Pair) release(side Side, bodyPos mgl32.Vec3) {
	p.hands[side].detach(bodyPos)
	p.log.Infof("%s hand released", side)
	if p.listener != nil {
		p.listener.OnHandReleased(side)
	}
}

func (p *Pair) tryGrab(side Side, bodyPos mgl32.Vec3) bool {
	if p.finder == nil {
		return false
	}
	h := &p.hands[side]
	handPos := h.WorldPosition(bodyPos)

	points := p.finder.FindGrabPoints(handPos, p.cfg.SearchRadius())
	best, dist, ok := grab.Nearest(points, handPos, p.cfg.GrabRadius)
	if !ok {
		p.log.Debugf("%s hand: no grab within %.2f of %v (%d candidates)", side, p.cfg.GrabRadius, handPos, len(points))
		return false
	}

	h.attach(best, bodyPos)
	p.log.Infof("%s hand grabbed %s, distance %.2f", side, best, dist)
	if p.listener != nil {
		p.listener.OnHandGrabbed(side, best)
	}
	return true
}

// Update moves the hands for one tick: grabbed hands stay pinned, the
// dragged hand follows the pointer within reach, free hands ease to rest.
func (p *Pair) Update(in Input, body core.Transform, dt float32) {
	right, up := in.ViewRight, in.ViewUp
	if right.Len() == 0 || up.Len() == 0 {
		right, up = body.Right(), body.Up()
	}
	motion := right.Mul(in.Pointer.X()).Add(up.Mul(in.Pointer.Y())).Mul(p.cfg.MoveSpeed * 2)

	for _, side := range [2]Side{Left, Right} {
		h := &p.hands[side]
		switch h.state {
		case Dragging:
			h.targetOffset = h.targetOffset.Add(motion.Mul(dt))
			p.clampReach(side, body.Position)
			p.requestPull(side, in.Pointer.Y(), body.Position)
		case Free:
			rest := body.Rotation.Rotate(p.cfg.Rest(side))
			h.targetOffset = core.Lerp(h.targetOffset, rest, dt*p.cfg.RestRate)
		}
	}
}

// clampReach keeps a dragged hand within reach of the body, or within the
// wider anchored reach of the other hand when that one is grabbed.
func (p *Pair) clampReach(side Side, bodyPos mgl32.Vec3) {
	h := &p.hands[side]
	other := &p.hands[side.Other()]

	if pt, ok := other.GrabPoint(); ok {
		anchor := pt.Position.Sub(bodyPos)
		offset := core.ClampLength(h.targetOffset.Sub(anchor), p.cfg.Reach*p.cfg.AnchoredReachMultiplier)
		h.targetOffset = anchor.Add(offset)
		return
	}
	h.targetOffset = core.ClampLength(h.targetOffset, p.cfg.Reach)
}

func (p *Pair) requestPull(side Side, pointerY float32, bodyPos mgl32.Vec3) {
	if p.puller == nil || pointerY <= p.cfg.PullThreshold {
		return
	}
	pt, ok := p.hands[side.Other()].GrabPoint()
	if !ok {
		return
	}
	dir := core.SafeNormalize(pt.Position.Sub(bodyPos))
	dir[1] = abs(dir[1]) + p.cfg.PullUpwardBias
	p.puller.RequestPull(dir.Mul(pointerY * p.cfg.PullGain))
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
