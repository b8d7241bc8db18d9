package viz

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/san-kum/fizx/internal/world"
)

// maxListed caps the per-particle rows in a summary.
const maxListed = 8

// Summary renders a run overview: counts, throughput, metrics and the final
// state of the first few particles.
func Summary(title string, names []string, result *world.Result, elapsed time.Duration) string {
	var s strings.Builder
	s.WriteString(Title.Render(strings.ToUpper(title)) + "\n\n")

	s.WriteString(Row("steps", humanize.Comma(int64(result.StepsTaken))) + "\n")
	s.WriteString(Row("frames", humanize.Comma(int64(len(result.Frames)))) + "\n")
	s.WriteString(Row("particles", humanize.Comma(int64(len(names)))) + "\n")
	if n := len(result.Frames); n > 0 {
		s.WriteString(Row("sim time", fmt.Sprintf("%.3fs", result.Frames[n-1].T)) + "\n")
	}
	if result.Settled() {
		s.WriteString(Row("at rest", fmt.Sprintf("%.3fs", result.SettledAt)) + "\n")
	}
	if elapsed > 0 {
		s.WriteString(Row("wall time", elapsed.Round(time.Microsecond).String()) + "\n")
		s.WriteString(Row("throughput", Rate(float64(result.StepsTaken), elapsed, "steps/s")) + "\n")
	}

	if len(result.Metrics) > 0 {
		s.WriteString("\n" + Subtle.Render("METRICS") + "\n")
		keys := make([]string, 0, len(result.Metrics))
		for k := range result.Metrics {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			s.WriteString(Row(k, fmt.Sprintf("%.6g", result.Metrics[k])) + "\n")
		}
	}

	if n := len(result.Frames); n > 0 {
		last := result.Frames[n-1]
		s.WriteString("\n" + Subtle.Render("FINAL STATE") + "\n")
		for i, p := range last.Positions {
			if i == maxListed {
				s.WriteString(Subtle.Render(fmt.Sprintf("… %d more", len(last.Positions)-maxListed)) + "\n")
				break
			}
			label := fmt.Sprintf("p%d", i)
			if i < len(names) && names[i] != "" {
				label = names[i]
			}
			s.WriteString(Row(label, "pos "+p.String()+"  vel "+last.Velocities[i].String()) + "\n")
		}
	}

	return Panel.Render(strings.TrimRight(s.String(), "\n"))
}

// Rate formats count/elapsed with an SI prefix, e.g. "1.25 Msteps/s".
func Rate(count float64, elapsed time.Duration, unit string) string {
	if elapsed <= 0 {
		return "∞ " + unit
	}
	return humanize.SIWithDigits(count/elapsed.Seconds(), 2, unit)
}
