package gui

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/artloop/internal/curve"
)

func TestKeyName(t *testing.T) {
	tests := []struct {
		key  int32
		want string
	}{
		{rl.KeyLeft, "left"},
		{rl.KeyDown, "down"},
		{rl.KeyEscape, "esc"},
		{rl.KeyA, "a"},
		{rl.KeyQ, "q"},
		{rl.KeyZ, "z"},
		{rl.KeyF1, ""},
	}
	for _, tt := range tests {
		if got := keyName(tt.key); got != tt.want {
			t.Errorf("keyName(%d) = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestToScreen(t *testing.T) {
	w := &Window{width: 800, height: 600}
	tests := []struct {
		x, y   float64
		sx, sy float32
	}{
		{0, 0, 400, 300},
		{-400, 300, 0, 0},
		{100, -50, 500, 350},
	}
	for _, tt := range tests {
		p := w.toScreen(tt.x, tt.y)
		if p.X != tt.sx || p.Y != tt.sy {
			t.Errorf("toScreen(%v, %v) = (%v, %v), want (%v, %v)", tt.x, tt.y, p.X, p.Y, tt.sx, tt.sy)
		}
	}
}

func TestToColor(t *testing.T) {
	c := toColor(curve.RGB{R: 1, G: 0.5, B: 0})
	if c.R != 255 || c.G != 128 || c.B != 0 || c.A != 255 {
		t.Errorf("toColor = %+v", c)
	}
}
