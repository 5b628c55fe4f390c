package export

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"

	"github.com/san-kum/artloop/internal/curve"
	"github.com/san-kum/artloop/internal/pen"
)

const svgHeader = `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`

// CommandsToSVG replays pen commands into an SVG document. The origin is
// the centre of the image and y points up, as on every other surface.
func CommandsToSVG(cmds []pen.Command, width, height int, background string) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(svgHeader, width, height, width, height, background))

	cx, cy := float64(width)/2, float64(height)/2
	color := curve.RGB{R: 1, G: 1, B: 1}
	lineWidth := 1.0

	var path curve.Points
	flushPath := func() {
		defer func() { path = path[:0] }()
		if len(path) < 2 {
			return
		}
		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="%.2f" stroke-linecap="round" stroke-linejoin="round" d="`,
			color.Hex(), lineWidth))
		for i, p := range path {
			x, y := cx+p.X, cy-p.Y
			if i == 0 {
				sb.WriteString(fmt.Sprintf("M%.1f,%.1f", x, y))
			} else {
				sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
			}
		}
		sb.WriteString("\"/>\n")
	}
	// A style change mid-line ends the current path and starts the next one
	// where it stopped.
	restyle := func() {
		if len(path) == 0 {
			return
		}
		last := path[len(path)-1]
		flushPath()
		path = append(path, last)
	}

	for _, c := range cmds {
		switch c.Kind {
		case pen.KindLift:
			flushPath()
		case pen.KindSetColor:
			restyle()
			color = c.Color
		case pen.KindSetWidth:
			restyle()
			lineWidth = c.Width
		case pen.KindDrawTo:
			path = append(path, curve.Point{X: c.X, Y: c.Y})
		case pen.KindDisc:
			flushPath()
			sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>`+"\n",
				cx+c.X, cy-c.Y, c.Radius, color.Hex()))
		case pen.KindText:
			flushPath()
			weight := "normal"
			if c.Bold {
				weight = "bold"
			}
			sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" fill="%s" font-family="sans-serif" font-size="12" font-weight="%s">%s</text>`+"\n",
				cx+c.X, cy-c.Y, color.Hex(), weight, html.EscapeString(c.Text)))
		}
	}
	flushPath()

	sb.WriteString("</svg>\n")
	return sb.String()
}

// BrailleToSVG draws every set dot of a braille grid as a circle. colors,
// when non-nil, holds one fill per cell; empty entries use fg.
func BrailleToSVG(grid [][]rune, colors [][]string, scale float64, fg, background string) string {
	if len(grid) == 0 || len(grid[0]) == 0 {
		return ""
	}
	rows, cols := len(grid), len(grid[0])
	width := int(float64(cols) * scale * 2)
	height := int(float64(rows) * scale * 4)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(svgHeader, width, height, width, height, background))

	// Braille dot-to-bit mapping
	pixelMap := [4][2]int{
		{0x01, 0x08},
		{0x02, 0x10},
		{0x04, 0x20},
		{0x40, 0x80},
	}
	dotRadius := scale * 0.4

	for row := 0; row < rows; row++ {
		for col := 0; col < cols && col < len(grid[row]); col++ {
			r := grid[row][col]
			if r <= 0x2800 {
				continue
			}
			pattern := int(r - 0x2800)
			fill := fg
			if colors != nil && row < len(colors) && col < len(colors[row]) && colors[row][col] != "" {
				fill = colors[row][col]
			}

			baseX := float64(col) * scale * 2
			baseY := float64(row) * scale * 4
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&pixelMap[dy][dx] == 0 {
						continue
					}
					cx := baseX + float64(dx)*scale + scale/2
					cy := baseY + float64(dy)*scale + scale/2
					sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>`+"\n", cx, cy, dotRadius, fill))
				}
			}
		}
	}

	sb.WriteString("</svg>\n")
	return sb.String()
}

// CurveToSVG fits a single curve into the image with 10% padding.
func CurveToSVG(points curve.Points, width, height int, strokeColor string) string {
	if len(points) < 2 {
		return ""
	}

	minX, minY, maxX, maxY := points.Bounds()
	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(svgHeader, width, height, width, height, "#0a0a0a"))
	sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M`, strokeColor))

	for i, p := range points {
		x := (p.X - minX) / rangeX * float64(width)
		y := float64(height) - (p.Y-minY)/rangeY*float64(height)

		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString("\"/>\n</svg>\n")
	return sb.String()
}

// WriteFile writes an SVG document, creating parent directories.
func WriteFile(path, svg string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, []byte(svg), 0644)
}
