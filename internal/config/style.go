package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/joeblew999/plat-quake/internal/mapview"
	"github.com/joeblew999/plat-quake/internal/quake"
)

// StyleFile overrides the built-in map styling. Zero-valued fields keep the
// defaults.
type StyleFile struct {
	Colors   quake.Breakpoints[string]  `json:"colors,omitempty" yaml:"colors" doc:"Magnitude to colour table, ascending thresholds"`
	Scales   quake.Breakpoints[float64] `json:"scales,omitempty" yaml:"scales" doc:"Magnitude to radius scale table, ascending thresholds"`
	Basemaps []mapview.BasemapStyle     `json:"basemaps,omitempty" yaml:"basemaps" doc:"Basemap styles; the first is the default"`
	Center   []float64                  `json:"center,omitempty" yaml:"center" minItems:"2" maxItems:"2" doc:"Initial centre as [lat, lon]"`
	Zoom     *int                       `json:"zoom,omitempty" yaml:"zoom" minimum:"0" maximum:"22" doc:"Initial zoom level"`
}

// LoadStyle reads a YAML style file. Unknown keys are rejected.
func LoadStyle(path string) (StyleFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return StyleFile{}, fmt.Errorf("reading style file: %w", err)
	}
	return ParseStyle(data)
}

// ParseStyle decodes and validates style YAML.
func ParseStyle(data []byte) (StyleFile, error) {
	var sf StyleFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&sf); err != nil && !errors.Is(err, io.EOF) {
		return StyleFile{}, fmt.Errorf("parsing style file: %w", err)
	}
	if err := sf.Validate(); err != nil {
		return StyleFile{}, err
	}
	return sf, nil
}

// Validate checks the overrides that are set.
func (sf StyleFile) Validate() error {
	if sf.Colors != nil {
		if err := quake.ValidateColors(sf.Colors); err != nil {
			return fmt.Errorf("style colors: %w", err)
		}
	}
	if sf.Scales != nil {
		if err := sf.Scales.Validate(); err != nil {
			return fmt.Errorf("style scales: %w", err)
		}
	}
	if sf.Center != nil && len(sf.Center) != 2 {
		return fmt.Errorf("style center: want [lat, lon], got %d values", len(sf.Center))
	}
	if sf.Zoom != nil && (*sf.Zoom < 0 || *sf.Zoom > 22) {
		return fmt.Errorf("style zoom %d out of range", *sf.Zoom)
	}
	for i, b := range sf.Basemaps {
		if b.Name == "" || b.StyleID == "" {
			return fmt.Errorf("style basemap %d: name and style_id are required", i)
		}
	}
	return nil
}

// Apply overlays the file onto the given defaults.
func (sf StyleFile) Apply(style *mapview.Style, basemaps *mapview.BasemapConfig, view *mapview.View) {
	if sf.Colors != nil {
		style.Colors = sf.Colors
	}
	if sf.Scales != nil {
		style.Scales = sf.Scales
	}
	if len(sf.Basemaps) > 0 {
		basemaps.Styles = sf.Basemaps
	}
	if len(sf.Center) == 2 {
		view.Center = mapview.LatLng{sf.Center[0], sf.Center[1]}
	}
	if sf.Zoom != nil {
		view.Zoom = *sf.Zoom
	}
}
