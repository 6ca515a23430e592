package feedback

// Frame is everything the simulation exposes for visualization after a
// frame: grab-point indicators for the hand being dragged, plus debug
// gizmos for hands and body.
type Frame struct {
	Number     uint64
	Indicators []Indicator
	Gizmos     []Gizmo
}

// Sink renders frames. Implementations must not retain the slices past the
// call.
type Sink interface {
	Present(frame *Frame)
}

type SinkFunc func(frame *Frame)

func (f SinkFunc) Present(frame *Frame) {
	f(frame)
}

// Recorder keeps a copy of the last frame presented to it.
type Recorder struct {
	Last   Frame
	Frames int
}

func (r *Recorder) Present(frame *Frame) {
	r.Frames++
	r.Last = Frame{
		Number:     frame.Number,
		Indicators: append([]Indicator(nil), frame.Indicators...),
		Gizmos:     append([]Gizmo(nil), frame.Gizmos...),
	}
}

// Multi fans a frame out to several sinks in order.
type Multi []Sink

func (m Multi) Present(frame *Frame) {
	for _, s := range m {
		if s != nil {
			s.Present(frame)
		}
	}
}
