// Package boundary loads the static boundary datasets drawn as map overlays.
package boundary

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/paulmach/orb/geojson"
)

// supported lists the accepted dataset extensions.
var supported = map[string]bool{
	".geojson": true,
	".json":    true,
}

// Empty returns a collection with no features.
func Empty() *geojson.FeatureCollection {
	return geojson.NewFeatureCollection()
}

// Load reads a boundary dataset. The file may hold a FeatureCollection, a
// single Feature or a bare geometry; the latter two are wrapped.
func Load(path string) (*geojson.FeatureCollection, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if !supported[ext] {
		return nil, fmt.Errorf("unsupported boundary file type: %q", ext)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading boundary file: %w", err)
	}
	return Parse(data)
}

// LoadOrEmpty loads path, or returns an empty collection when path is "".
func LoadOrEmpty(path string) (*geojson.FeatureCollection, error) {
	if path == "" {
		return Empty(), nil
	}
	return Load(path)
}

// Parse decodes GeoJSON bytes into a feature collection.
func Parse(data []byte) (*geojson.FeatureCollection, error) {
	var probe struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("parsing boundary geojson: %w", err)
	}

	switch probe.Type {
	case "FeatureCollection":
		fc, err := geojson.UnmarshalFeatureCollection(data)
		if err != nil {
			return nil, fmt.Errorf("parsing boundary geojson: %w", err)
		}
		return fc, nil

	case "Feature":
		f, err := geojson.UnmarshalFeature(data)
		if err != nil {
			return nil, fmt.Errorf("parsing boundary geojson: %w", err)
		}
		fc := geojson.NewFeatureCollection()
		fc.Append(f)
		return fc, nil

	default:
		g, err := geojson.UnmarshalGeometry(data)
		if err != nil {
			return nil, fmt.Errorf("parsing boundary geojson: %w", err)
		}
		fc := geojson.NewFeatureCollection()
		fc.Append(geojson.NewFeature(g.Geometry()))
		return fc, nil
	}
}
