package mapview

import (
	"strconv"

	"github.com/joeblew999/plat-quake/internal/quake"
)

// LegendPosition is the corner the legend control is pinned to.
const LegendPosition = "bottomright"

// BuildLegend builds the colour key from the breakpoint table, in ascending
// order. Every entry but the last reads "Mag < next threshold"; the last reads
// "Mag >= its threshold".
func BuildLegend(colors quake.Breakpoints[string]) *Legend {
	items := make([]LegendItem, len(colors))
	for i, bp := range colors {
		var label string
		if i < len(colors)-1 {
			label = "Mag < " + formatThreshold(colors[i+1].Threshold)
		} else {
			label = "Mag >= " + formatThreshold(bp.Threshold)
		}
		items[i] = LegendItem{Label: label, Color: bp.Value}
	}
	return &Legend{Position: LegendPosition, Items: items}
}

func formatThreshold(t float64) string {
	return strconv.FormatFloat(t, 'f', -1, 64)
}
