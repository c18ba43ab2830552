package mapview

import (
	"fmt"

	"github.com/joeblew999/plat-quake/internal/quake"
)

// Style holds the magnitude lookup tables used by the builders.
type Style struct {
	Colors quake.Breakpoints[string]
	Scales quake.Breakpoints[float64]
}

// DefaultStyle returns the built-in lookup tables.
func DefaultStyle() Style {
	return Style{Colors: quake.ColorBreakpoints, Scales: quake.ScaleBreakpoints}
}

// Validate checks both tables.
func (s Style) Validate() error {
	if err := quake.ValidateColors(s.Colors); err != nil {
		return fmt.Errorf("colors: %w", err)
	}
	if err := s.Scales.Validate(); err != nil {
		return fmt.Errorf("scales: %w", err)
	}
	return nil
}

// ColorFor returns the marker colour for a magnitude.
func (s Style) ColorFor(m float64) string {
	return s.Colors.Lookup(m)
}

// RadiusFor returns the circle radius in metres for a magnitude.
func (s Style) RadiusFor(m float64) float64 {
	return s.Scales.Lookup(m) * quake.RadiusMultiplier
}
