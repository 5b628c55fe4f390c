package tui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/san-kum/artloop/internal/curve"
	"github.com/san-kum/artloop/internal/pen"
)

func TestProgressBar(t *testing.T) {
	tests := []struct {
		done, total int
		filled      int
	}{
		{0, 10, 0},
		{5, 10, barWidth / 2},
		{10, 10, barWidth},
		{12, 10, barWidth},
		{3, 0, 0},
	}
	for _, tt := range tests {
		bar := progressBar(tt.done, tt.total)
		if got := strings.Count(bar, "="); got != tt.filled {
			t.Errorf("progressBar(%d, %d) filled %d, want %d", tt.done, tt.total, got, tt.filled)
		}
		if len(bar) != barWidth+2 {
			t.Errorf("progressBar(%d, %d) length %d", tt.done, tt.total, len(bar))
		}
	}
}

func TestSparkline(t *testing.T) {
	if s := sparkline(nil, 10); s != "" {
		t.Errorf("empty data gave %q", s)
	}
	s := []rune(sparkline([]float64{0, 1, 2, 3, 4, 5, 6, 7}, 20))
	if len(s) != 8 || s[0] != '▁' || s[7] != '█' {
		t.Errorf("unexpected sparkline %q", string(s))
	}
	if n := len([]rune(sparkline(make([]float64, 50), 20))); n != 20 {
		t.Errorf("sparkline width %d, want 20", n)
	}
}

func TestLiveRendererProgressOnly(t *testing.T) {
	var buf bytes.Buffer
	r := NewLiveRenderer(&buf, "rose", 4, 1, nil)
	r.Start()
	for i := 0; i < 4; i++ {
		r.OnFrame(i, float64(i))
	}
	r.Stop()

	if r.Frames() != 4 {
		t.Errorf("Frames() = %d, want 4", r.Frames())
	}
	out := buf.String()
	if strings.Contains(out, clearScreen) {
		t.Error("progress-only mode must not clear the screen")
	}
	if !strings.Contains(out, "4/4") {
		t.Errorf("final frame not reported: %q", out)
	}
	if !strings.HasSuffix(out, "\n") {
		t.Error("Stop should end the progress line")
	}
}

func TestLiveRendererPreview(t *testing.T) {
	rec := pen.NewRecorder()
	pen.Apply(rec, pen.Emit(curve.Points{{X: -400, Y: 0}, {X: 400, Y: 0}}, pen.Style{Color: curve.RGB{R: 1}, Width: 1}))

	var buf bytes.Buffer
	r := NewLiveRenderer(&buf, "contours", 1, 30, rec.Strokes)
	r.Start()
	r.OnFrame(0, 0.5)
	r.Stop()

	out := buf.String()
	if !strings.Contains(out, "contours  t=0.50") {
		t.Errorf("missing header: %q", out)
	}
	if !strings.Contains(out, strings.Repeat("*", width)) {
		t.Error("horizontal stroke should span the preview")
	}
	if !strings.Contains(out, hideCursor) || !strings.Contains(out, showCursor) {
		t.Error("cursor not hidden and restored")
	}
}

func TestLiveRendererThrottles(t *testing.T) {
	var buf bytes.Buffer
	r := NewLiveRenderer(&buf, "rose", 100, 1, nil)
	for i := 0; i < 10; i++ {
		r.OnFrame(i, 0)
	}
	if n := strings.Count(buf.String(), "\r"); n != 1 {
		t.Errorf("rendered %d times within one second, want 1", n)
	}
}
