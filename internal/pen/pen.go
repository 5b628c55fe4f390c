// Package pen turns point sequences into ordered drawing commands and
// replays them onto a render surface.
package pen

import (
	"fmt"

	"github.com/san-kum/artloop/internal/curve"
)

type Kind uint8

const (
	// KindLift makes the next DrawTo a move.
	KindLift Kind = iota
	KindSetColor
	KindSetWidth
	KindDrawTo
	// KindDisc fills a circle. Annotation only.
	KindDisc
	// KindText writes a label. Annotation only.
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindLift:
		return "lift"
	case KindSetColor:
		return "set-color"
	case KindSetWidth:
		return "set-width"
	case KindDrawTo:
		return "draw-to"
	case KindDisc:
		return "disc"
	case KindText:
		return "text"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

type Command struct {
	Kind   Kind
	X, Y   float64
	Color  curve.RGB
	Width  float64
	Radius float64
	Text   string
	Bold   bool
}

func (c Command) String() string {
	switch c.Kind {
	case KindSetColor:
		return fmt.Sprintf("set-color(%.3f,%.3f,%.3f)", c.Color.R, c.Color.G, c.Color.B)
	case KindSetWidth:
		return fmt.Sprintf("set-width(%g)", c.Width)
	case KindDrawTo:
		return fmt.Sprintf("draw-to(%.2f,%.2f)", c.X, c.Y)
	case KindDisc:
		return fmt.Sprintf("disc(%.2f,%.2f,%g)", c.X, c.Y, c.Radius)
	case KindText:
		return fmt.Sprintf("text(%.0f,%.0f,%q)", c.X, c.Y, c.Text)
	default:
		return c.Kind.String()
	}
}

func Lift() Command                { return Command{Kind: KindLift} }
func SetColor(c curve.RGB) Command { return Command{Kind: KindSetColor, Color: c} }
func SetWidth(w float64) Command   { return Command{Kind: KindSetWidth, Width: w} }
func DrawTo(x, y float64) Command  { return Command{Kind: KindDrawTo, X: x, Y: y} }
func Disc(x, y, r float64) Command { return Command{Kind: KindDisc, X: x, Y: y, Radius: r} }
func Text(x, y float64, s string, bold bool) Command {
	return Command{Kind: KindText, X: x, Y: y, Text: s, Bold: bold}
}

// Style is applied once per sequence. A zero Width leaves the pen width alone.
type Style struct {
	Color curve.RGB
	Width float64
}

// Emit converts a point sequence into commands. The first point becomes
// lift, set-color, set-width and a move; every later point is a draw-to.
// Sequences with fewer than two points emit nothing.
func Emit(pts curve.Points, style Style) []Command {
	if len(pts) < 2 {
		return nil
	}
	n := len(pts) + 2
	if style.Width > 0 {
		n++
	}
	cmds := make([]Command, 0, n)
	cmds = append(cmds, Lift(), SetColor(style.Color))
	if style.Width > 0 {
		cmds = append(cmds, SetWidth(style.Width))
	}
	for _, p := range pts {
		cmds = append(cmds, DrawTo(p.X, p.Y))
	}
	return cmds
}

// Segment emits a single two-point stroke.
func Segment(x0, y0, x1, y1 float64, style Style) []Command {
	return Emit(curve.Points{{X: x0, Y: y0}, {X: x1, Y: y1}}, style)
}
