// Package viz renders runs for the terminal: asciigraph line plots, a
// lipgloss summary panel and a bubbletea live view.
package viz

import (
	"fmt"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/fizx/internal/dynamo"
	"github.com/san-kum/fizx/internal/world"
)

var axisNames = [...]string{"x", "y", "z"}

// AxisName returns "x", "y" or "z" for axis 0..2.
func AxisName(axis int) (string, error) {
	if axis < 0 || axis >= len(axisNames) {
		return "", fmt.Errorf("%w: axis %d outside [0,3)", dynamo.ErrIndex, axis)
	}
	return axisNames[axis], nil
}

// ParseAxis accepts "x", "y" or "z".
func ParseAxis(s string) (int, error) {
	for i, n := range axisNames {
		if n == s {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown axis %q", dynamo.ErrInvalidArgument, s)
}

// PlotAxis draws one position component of one particle over the run.
func PlotAxis(result *world.Result, h world.Handle, axis int, label string, width, height int) (string, error) {
	series, err := result.Series(h, axis)
	if err != nil {
		return "", err
	}
	name, err := AxisName(axis)
	if err != nil {
		return "", err
	}
	if len(series) < 2 {
		return "", fmt.Errorf("%w: need at least 2 frames to plot, got %d", dynamo.ErrInvalidArgument, len(series))
	}

	caption := fmt.Sprintf("%s.%s over %.2fs", label, name, result.Frames[len(result.Frames)-1].T)
	return asciigraph.Plot(series,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	), nil
}

// PlotAll overlays the same axis for every particle.
func PlotAll(result *world.Result, axis, width, height int) (string, error) {
	if len(result.Frames) == 0 {
		return "", fmt.Errorf("%w: empty result", dynamo.ErrInvalidArgument)
	}
	n := len(result.Frames[0].Positions)
	data := make([][]float64, 0, n)
	for h := 0; h < n; h++ {
		s, err := result.Series(world.Handle(h), axis)
		if err != nil {
			return "", err
		}
		data = append(data, s)
	}
	name, err := AxisName(axis)
	if err != nil {
		return "", err
	}

	colors := []asciigraph.AnsiColor{asciigraph.Green, asciigraph.Magenta, asciigraph.Cyan, asciigraph.Yellow, asciigraph.Red, asciigraph.Blue}
	series := make([]asciigraph.AnsiColor, n)
	for i := range series {
		series[i] = colors[i%len(colors)]
	}

	return asciigraph.PlotMany(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.SeriesColors(series...),
		asciigraph.Caption("all particles: "+name),
	), nil
}
