// Package platform adapts a GLFW window into an input source for the
// simulation.
package platform

import (
	"fmt"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// Window is a GLFW window without a client API. It only provides input and
// a title bar for status.
type Window struct {
	glfw   *glfw.Window
	Width  int
	Height int
	title  string
}

// NewWindow initialises GLFW and opens the window. It must be called from
// the main goroutine; the calling thread stays locked to it.
func NewWindow(width, height int, title string) (*Window, error) {
	if width <= 0 {
		width = 1280
	}
	if height <= 0 {
		height = 720
	}
	if title == "" {
		title = "Ascent"
	}

	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("platform: glfw init: %w", err)
	}

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	glfw.WindowHint(glfw.Resizable, glfw.True)

	win, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("platform: create window: %w", err)
	}

	return &Window{
		glfw:   win,
		Width:  width,
		Height: height,
		title:  title,
	}, nil
}

func (w *Window) ShouldClose() bool {
	return w.glfw.ShouldClose()
}

// SetStatus shows text after the window title.
func (w *Window) SetStatus(status string) {
	if status == "" {
		w.glfw.SetTitle(w.title)
		return
	}
	w.glfw.SetTitle(w.title + " | " + status)
}

func (w *Window) Close() {
	w.glfw.Destroy()
	glfw.Terminate()
}
