package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/artloop/internal/curve"
	"github.com/san-kum/artloop/internal/pen"
)

func TestCommandsToSVG(t *testing.T) {
	var cmds []pen.Command
	cmds = append(cmds, pen.Emit(curve.Points{{X: -10, Y: 0}, {X: 10, Y: 5}}, pen.Style{Color: curve.RGB{R: 1}, Width: 2})...)
	cmds = append(cmds, pen.SetColor(curve.RGB{B: 1}), pen.Disc(0, 0, 10), pen.Text(20, 10, "a<b", true))

	svg := CommandsToSVG(cmds, 100, 50, "#000000")

	if !strings.HasPrefix(svg, "<?xml") || !strings.HasSuffix(svg, "</svg>\n") {
		t.Fatal("expected a complete svg document")
	}
	if strings.Count(svg, "<path") != 1 {
		t.Errorf("expected one path, got %d", strings.Count(svg, "<path"))
	}
	if !strings.Contains(svg, `stroke="#ff0000" stroke-width="2.00"`) {
		t.Error("expected red stroke of width 2")
	}
	if !strings.Contains(svg, `d="M40.0,25.0 L60.0,20.0"`) {
		t.Error("expected path mapped to centre origin with y up")
	}
	if !strings.Contains(svg, `<circle cx="50.0" cy="25.0" r="10.0" fill="#0000ff"/>`) {
		t.Error("expected blue disc at centre")
	}
	if !strings.Contains(svg, `font-weight="bold">a&lt;b</text>`) {
		t.Error("expected escaped bold text")
	}
}

func TestCommandsToSVGSkipsSinglePoints(t *testing.T) {
	cmds := []pen.Command{pen.Lift(), pen.DrawTo(1, 1), pen.Lift()}
	if svg := CommandsToSVG(cmds, 10, 10, "#000000"); strings.Contains(svg, "<path") {
		t.Error("expected no path for a single point")
	}
}

func TestBrailleToSVG(t *testing.T) {
	grid := [][]rune{{0x2800 | 0x01 | 0x80, 0x2800}}
	colors := [][]string{{"#ff0000", ""}}

	svg := BrailleToSVG(grid, colors, 2, "#00ff00", "#000000")
	if strings.Count(svg, "<circle") != 2 {
		t.Errorf("expected 2 dots, got %d", strings.Count(svg, "<circle"))
	}
	if !strings.Contains(svg, `fill="#ff0000"`) {
		t.Error("expected cell colour")
	}
	if BrailleToSVG(nil, nil, 1, "#fff", "#000") != "" {
		t.Error("expected empty output for empty grid")
	}
}

func TestCurveToSVG(t *testing.T) {
	pts, err := curve.DefaultContour().Sample(curve.DefaultContour().Row(0, 0))
	if err != nil {
		t.Fatal(err)
	}
	svg := CurveToSVG(pts, 200, 100, "#00ffff")
	if strings.Count(svg, " L") != len(pts)-1 {
		t.Errorf("expected %d segments", len(pts)-1)
	}
	if CurveToSVG(pts[:1], 10, 10, "#fff") != "" {
		t.Error("expected empty output for one point")
	}
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "frame.svg")
	if err := WriteFile(path, "<svg/>"); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil || string(data) != "<svg/>" {
		t.Errorf("unexpected content %q (%v)", data, err)
	}
}
