package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/san-kum/fizx/internal/dynamo"
)

var strokeColors = []string{"#00ff9f", "#ff6ac1", "#57c7ff", "#f3f99d", "#ff5c57", "#9aedfe"}

// WriteSVG draws every particle's path projected onto the (axisU, axisV)
// plane, one polyline per particle.
func (tr *Trajectory) WriteSVG(w io.Writer, axisU, axisV, width, height int) error {
	if axisU < 0 || axisU > 2 || axisV < 0 || axisV > 2 {
		return fmt.Errorf("%w: svg axes (%d,%d) outside [0,3)", dynamo.ErrIndex, axisU, axisV)
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: svg size %dx%d", dynamo.ErrInvalidArgument, width, height)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height)

	if len(tr.Frames) >= 2 {
		b := tr.bounds(axisU, axisV)
		for j := range tr.Particles {
			color := strokeColors[j%len(strokeColors)]
			fmt.Fprintf(&sb, `<path fill="none" stroke="%s" stroke-width="1.5" d="`, color)
			for i, f := range tr.Frames {
				x, y := b.project(f.Positions[j][axisU], f.Positions[j][axisV], width, height)
				if i == 0 {
					fmt.Fprintf(&sb, "M%.1f,%.1f", x, y)
				} else {
					fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
				}
			}
			sb.WriteString("\"/>\n")
		}
	}

	sb.WriteString("</svg>\n")
	_, err := io.WriteString(w, sb.String())
	return err
}

type bounds struct {
	minX, minY, rangeX, rangeY float64
}

func (tr *Trajectory) bounds(u, v int) bounds {
	p0 := tr.Frames[0].Positions
	if len(p0) == 0 {
		return bounds{rangeX: 1, rangeY: 1}
	}
	minX, maxX := p0[0][u], p0[0][u]
	minY, maxY := p0[0][v], p0[0][v]
	for _, f := range tr.Frames {
		for _, p := range f.Positions {
			minX, maxX = min(minX, p[u]), max(maxX, p[u])
			minY, maxY = min(minY, p[v]), max(maxY, p[v])
		}
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	// 10% padding on each side
	minX -= rangeX * 0.1
	minY -= rangeY * 0.1
	return bounds{minX: minX, minY: minY, rangeX: rangeX * 1.2, rangeY: rangeY * 1.2}
}

func (b bounds) project(px, py float64, width, height int) (float64, float64) {
	x := (px - b.minX) / b.rangeX * float64(width)
	y := float64(height) - (py-b.minY)/b.rangeY*float64(height)
	return x, y
}
