// Package tui prints progress for runs that render off screen.
package tui

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/san-kum/artloop/internal/pen"
)

const (
	width       = 60
	height      = 16
	clearScreen = "\033[2J\033[H"
	hideCursor  = "\033[?25l"
	showCursor  = "\033[?25h"
	barWidth    = 30
	maxSamples  = 240
)

// LiveRenderer is a loop observer that redraws a coarse ASCII preview of
// the latest frame with a progress bar. Redraws are limited to frameRate
// per second; the final frame is always shown.
type LiveRenderer struct {
	title     string
	total     int
	frameRate int
	out       io.Writer
	strokes   func() []pen.Stroke
	// Extent is the world size mapped onto the preview.
	Extent    float64
	Preview   bool
	started   time.Time
	lastDraw  time.Time
	lastFrame time.Time
	durations []float64
	canvas    [][]rune
	frames    int
}

// NewLiveRenderer reports on a run of total frames. strokes returns the
// strokes of the frame just drawn; nil turns the preview off.
func NewLiveRenderer(out io.Writer, title string, total, frameRate int, strokes func() []pen.Stroke) *LiveRenderer {
	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = make([]rune, width)
	}
	if frameRate <= 0 {
		frameRate = 10
	}
	return &LiveRenderer{
		title:     title,
		total:     total,
		frameRate: frameRate,
		out:       out,
		strokes:   strokes,
		Extent:    800,
		Preview:   strokes != nil,
		canvas:    canvas,
		durations: make([]float64, 0, maxSamples),
	}
}

func (r *LiveRenderer) OnFrame(frame int, t float64) {
	now := time.Now()
	if r.frames == 0 {
		r.started, r.lastFrame = now, now
	} else {
		r.record(now.Sub(r.lastFrame))
		r.lastFrame = now
	}
	r.frames++

	last := r.total > 0 && frame >= r.total-1
	if !last && now.Sub(r.lastDraw) < time.Second/time.Duration(r.frameRate) {
		return
	}
	r.lastDraw = now
	r.render(frame, t)
}

func (r *LiveRenderer) record(d time.Duration) {
	if len(r.durations) == maxSamples {
		copy(r.durations, r.durations[1:])
		r.durations = r.durations[:maxSamples-1]
	}
	r.durations = append(r.durations, float64(d.Microseconds())/1000)
}

// Frames is the number of frames observed.
func (r *LiveRenderer) Frames() int { return r.frames }

func (r *LiveRenderer) clear() {
	for y := range r.canvas {
		for x := range r.canvas[y] {
			r.canvas[y][x] = ' '
		}
	}
}

func (r *LiveRenderer) set(x, y int, c rune) {
	if x >= 0 && x < width && y >= 0 && y < height {
		r.canvas[y][x] = c
	}
}

func (r *LiveRenderer) line(x1, y1, x2, y2 int, c rune) {
	dx := abs(x2 - x1)
	dy := abs(y2 - y1)
	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}
	err := dx - dy
	for {
		r.set(x1, y1, c)
		if x1 == x2 && y1 == y2 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// cell maps turtle coordinates to a character cell. Cells are about twice
// as tall as wide, so y is squashed by half.
func (r *LiveRenderer) cell(x, y float64) (int, int) {
	scale := float64(width) / r.Extent
	return int(math.Round(float64(width)/2 + x*scale)), int(math.Round(float64(height)/2 - y*scale/2))
}

func (r *LiveRenderer) drawStrokes() {
	r.clear()
	if !r.Preview || r.strokes == nil {
		return
	}
	for _, s := range r.strokes() {
		for i := 1; i < len(s.Points); i++ {
			x1, y1 := r.cell(s.Points[i-1].X, s.Points[i-1].Y)
			x2, y2 := r.cell(s.Points[i].X, s.Points[i].Y)
			r.line(x1, y1, x2, y2, '*')
		}
	}
}

func (r *LiveRenderer) render(frame int, t float64) {
	var b strings.Builder
	if r.Preview {
		r.drawStrokes()
		b.WriteString(clearScreen)
		b.WriteString(fmt.Sprintf("  %s  t=%.2f\n", r.title, t))
		b.WriteString("  " + strings.Repeat("-", width) + "\n")
		for _, row := range r.canvas {
			b.WriteString("  ")
			b.WriteString(string(row))
			b.WriteString("\n")
		}
		b.WriteString("  " + strings.Repeat("-", width) + "\n")
	} else {
		b.WriteString("\r")
	}

	b.WriteString("  " + progressBar(frame+1, r.total) + fmt.Sprintf(" %d/%d", frame+1, r.total))
	if len(r.durations) > 0 {
		b.WriteString(fmt.Sprintf("  %.1f ms/frame %s", mean(r.durations), sparkline(r.durations, 20)))
	}
	if r.Preview {
		b.WriteString("\n")
	}
	fmt.Fprint(r.out, b.String())
}

func (r *LiveRenderer) Start() {
	if r.Preview {
		fmt.Fprint(r.out, hideCursor)
	}
}

// Stop restores the cursor and ends the progress line.
func (r *LiveRenderer) Stop() {
	if r.Preview {
		fmt.Fprint(r.out, showCursor)
		return
	}
	fmt.Fprintln(r.out)
}

func progressBar(done, total int) string {
	if total <= 0 {
		return "[" + strings.Repeat("-", barWidth) + "]"
	}
	filled := min(done*barWidth/total, barWidth)
	return "[" + strings.Repeat("=", filled) + strings.Repeat("-", barWidth-filled) + "]"
}

func sparkline(data []float64, width int) string {
	if len(data) == 0 {
		return ""
	}
	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}
	minVal, maxVal := data[0], data[0]
	for _, v := range data {
		minVal = min(minVal, v)
		maxVal = max(maxVal, v)
	}
	rang := maxVal - minVal
	if rang == 0 {
		rang = 1
	}
	// Show the most recent samples.
	if len(data) > width {
		data = data[len(data)-width:]
	}
	var sb strings.Builder
	for _, v := range data {
		idx := int((v - minVal) / rang * 7)
		sb.WriteRune(chars[max(0, min(idx, 7))])
	}
	return sb.String()
}

func mean(data []float64) float64 {
	sum := 0.0
	for _, v := range data {
		sum += v
	}
	return sum / float64(len(data))
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
