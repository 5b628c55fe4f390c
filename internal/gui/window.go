// Package gui shows the animations in a raylib window.
package gui

import (
	"fmt"
	"image"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/artloop/internal/capture"
	"github.com/san-kum/artloop/internal/curve"
	"github.com/san-kum/artloop/internal/pen"
)

const fontSize = 14

// Window is a pen surface over the raylib back buffer. Clear begins a
// frame and Flush presents it; EndDrawing blocks to honour the target FPS.
type Window struct {
	width, height int
	bg            rl.Color
	pen           pen.Tracker
	drawing       bool
}

// OpenWindow creates the window. Only one may be open at a time and it
// must be used from the goroutine that opened it.
func OpenWindow(title string, width, height, fps int, bg curve.RGB) (*Window, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", capture.ErrEmptyFrame, width, height)
	}
	rl.SetConfigFlags(rl.FlagMsaa4xHint)
	rl.InitWindow(int32(width), int32(height), title)
	if !rl.IsWindowReady() {
		return nil, fmt.Errorf("gui: window %q could not be created", title)
	}
	if fps > 0 {
		rl.SetTargetFPS(int32(fps))
	}
	rl.SetExitKey(0)
	return &Window{width: width, height: height, bg: toColor(bg), pen: pen.NewTracker()}, nil
}

func (w *Window) Close() error {
	if w.drawing {
		rl.EndDrawing()
		w.drawing = false
	}
	rl.CloseWindow()
	return nil
}

// ShouldClose reports whether the user closed the window.
func (w *Window) ShouldClose() bool { return rl.WindowShouldClose() }

func toColor(c curve.RGB) rl.Color {
	r, g, b := c.Bytes()
	return rl.NewColor(r, g, b, 255)
}

func (w *Window) toScreen(x, y float64) rl.Vector2 {
	return rl.NewVector2(float32(float64(w.width)/2+x), float32(float64(w.height)/2-y))
}

func (w *Window) Clear() {
	if !w.drawing {
		rl.BeginDrawing()
		w.drawing = true
	}
	rl.ClearBackground(w.bg)
	w.pen.Reset()
}

func (w *Window) Lift()                  { w.pen.Up = true }
func (w *Window) SetColor(c curve.RGB)   { w.pen.Color = c }
func (w *Window) SetWidth(width float64) { w.pen.Width = width }

func (w *Window) DrawTo(x, y float64) {
	fx, fy, draw := w.pen.Move(x, y)
	if !draw {
		return
	}
	rl.DrawLineEx(w.toScreen(fx, fy), w.toScreen(x, y), float32(w.pen.Width), toColor(w.pen.Color))
}

func (w *Window) Disc(x, y, r float64) {
	rl.DrawCircleV(w.toScreen(x, y), float32(r), toColor(w.pen.Color))
}

// Text draws s with its baseline at (x, y). The default font has no bold
// face, so bold text is drawn twice one pixel apart.
func (w *Window) Text(x, y float64, s string, bold bool) {
	p := w.toScreen(x, y)
	top := int32(p.Y) - fontSize
	col := toColor(w.pen.Color)
	rl.DrawText(s, int32(p.X), top, fontSize, col)
	if bold {
		rl.DrawText(s, int32(p.X)+1, top, fontSize, col)
	}
}

func (w *Window) Flush() error {
	if !w.drawing {
		return nil
	}
	rl.EndDrawing()
	w.drawing = false
	return nil
}

// Capture reads back the last presented frame.
func (w *Window) Capture(r image.Rectangle) (capture.Frame, error) {
	img := rl.LoadImageFromScreen()
	defer rl.UnloadImage(img)
	return capture.FromImage(img.ToImage(), r)
}

// Screenshot writes the last presented frame to path.
func (w *Window) Screenshot(path string) {
	rl.TakeScreenshot(path)
}

var (
	_ pen.Surface      = (*Window)(nil)
	_ pen.Annotator    = (*Window)(nil)
	_ capture.Capturer = (*Window)(nil)
)
