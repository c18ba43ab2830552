// Package quake holds the earthquake feed constants, the magnitude lookup
// tables and the per-event record and popup formatting.
package quake

import (
	"fmt"
	"math"
	"regexp"
)

// DefaultFeedURL is the USGS summary feed of all earthquakes in the past 7 days.
const DefaultFeedURL = "https://earthquake.usgs.gov/earthquakes/feed/v1.0/summary/all_week.geojson"

// RadiusMultiplier converts a scale factor into a circle radius in metres.
const RadiusMultiplier = 20000

// Breakpoint pairs a magnitude threshold with the value for magnitudes above it.
type Breakpoint[T any] struct {
	Threshold float64 `json:"threshold" yaml:"threshold" doc:"Magnitude threshold (exclusive)"`
	Value     T       `json:"value" yaml:"value" doc:"Value used above the threshold"`
}

// Breakpoints is an ascending table of thresholds.
type Breakpoints[T any] []Breakpoint[T]

// ColorBreakpoints maps magnitude to marker colour.
var ColorBreakpoints = Breakpoints[string]{
	{Threshold: 0, Value: "#a3f600"},
	{Threshold: 1, Value: "#dcf400"},
	{Threshold: 2, Value: "#f7db11"},
	{Threshold: 3, Value: "#fdb72a"},
	{Threshold: 4, Value: "#fca35d"},
	{Threshold: 5, Value: "#ff5f65"},
}

// ScaleBreakpoints maps magnitude to a radius scale factor.
var ScaleBreakpoints = Breakpoints[float64]{
	{Threshold: 0, Value: 1},
	{Threshold: 1, Value: 1.5},
	{Threshold: 2, Value: 2},
	{Threshold: 3, Value: 3},
	{Threshold: 4, Value: 4},
	{Threshold: 5, Value: 5},
}

// Lookup returns the value of the highest breakpoint whose threshold is
// strictly less than m, or the lowest entry when none is.
// Lookup panics on an empty table; use Validate first.
func (b Breakpoints[T]) Lookup(m float64) T {
	for i := len(b) - 1; i >= 0; i-- {
		if m > b[i].Threshold {
			return b[i].Value
		}
	}
	return b[0].Value
}

// Validate checks the table is non-empty and strictly ascending.
func (b Breakpoints[T]) Validate() error {
	if len(b) == 0 {
		return fmt.Errorf("breakpoint table is empty")
	}
	for i, bp := range b {
		if math.IsNaN(bp.Threshold) || math.IsInf(bp.Threshold, 0) {
			return fmt.Errorf("breakpoint %d: threshold must be finite", i)
		}
		if i > 0 && bp.Threshold <= b[i-1].Threshold {
			return fmt.Errorf("breakpoint %d: threshold %g not above %g", i, bp.Threshold, b[i-1].Threshold)
		}
	}
	return nil
}

// cssColor matches #rgb, #rrggbb and named colours. Anything else is
// rejected because html/template filters it out of style attributes.
var cssColor = regexp.MustCompile(`^(#[0-9a-fA-F]{3}|#[0-9a-fA-F]{6}|[a-zA-Z]+)$`)

// ValidateColors checks b and that every value is a hex or named colour.
func ValidateColors(b Breakpoints[string]) error {
	if err := b.Validate(); err != nil {
		return err
	}
	for i, bp := range b {
		if !cssColor.MatchString(bp.Value) {
			return fmt.Errorf("breakpoint %d: %q is not a #rgb, #rrggbb or named colour", i, bp.Value)
		}
	}
	return nil
}

// ColorFor, ScaleFor and RadiusFor look magnitudes up in the default tables.
// Map building uses the configured style instead; see mapview.Style.

// ColorFor returns the marker colour for a magnitude.
func ColorFor(m float64) string {
	return ColorBreakpoints.Lookup(m)
}

// ScaleFor returns the radius scale factor for a magnitude.
func ScaleFor(m float64) float64 {
	return ScaleBreakpoints.Lookup(m)
}

// RadiusFor returns the circle radius in metres for a magnitude.
func RadiusFor(m float64) float64 {
	return ScaleFor(m) * RadiusMultiplier
}
