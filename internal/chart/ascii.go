// Package chart renders the voltage-drop profile across the conductor
// ladder, as an ASCII plot for the terminal or an image file export.
package chart

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"
)

// ProfileData holds the drop profile for one circuit across the
// candidate sizes the ladder offers.
type ProfileData struct {
	Sizes    []float64 // mm², ascending
	Percents []float64 // drop % at each size
	Limit    float64   // class limit, %
	Selected float64   // chosen size, 0 when the search degraded
	Class    string
}

// DrawASCIIProfile renders the drop profile and limit line as an ASCII
// chart, one column per ladder size.
func DrawASCIIProfile(data ProfileData) string {
	if len(data.Percents) == 0 {
		return ""
	}

	limitLine := make([]float64, len(data.Percents))
	for i := range limitLine {
		limitLine[i] = data.Limit
	}

	var sb strings.Builder
	sb.WriteString("\nVOLTAGE DROP PROFILE (% of nominal, per ladder size):\n")
	sb.WriteString("───────────────────────────────────────────────────────────────\n")
	sb.WriteString(asciigraph.PlotMany(
		[][]float64{data.Percents, limitLine},
		asciigraph.Height(12),
		asciigraph.Precision(1),
		asciigraph.Caption(fmt.Sprintf("drop %% vs conductor size — %.1f%% limit (%s)", data.Limit, data.Class)),
	))
	sb.WriteString("\n\n  Sizes (mm²): ")
	for i, size := range data.Sizes {
		if i > 0 {
			sb.WriteString(", ")
		}
		if size == data.Selected {
			sb.WriteString(fmt.Sprintf("[%g]", size))
			continue
		}
		sb.WriteString(fmt.Sprintf("%g", size))
	}
	if data.Selected > 0 {
		sb.WriteString("   ([..] = selected)")
	}
	sb.WriteString("\n")
	return sb.String()
}
