package mapview

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/joeblew999/plat-quake/internal/quake"
)

// MapElementID is the DOM element the map attaches to.
const MapElementID = "map"

// boundsPad is added around fitted bounds that have no width or height,
// such as a single earthquake, so Leaflet does not zoom to its maximum.
const boundsPad = 0.5

// DefaultView centres on the continental United States.
var DefaultView = View{Center: LatLng{37.09, -95.71}, Zoom: 5}

// Input is everything one render pass composes.
type Input struct {
	Records  []quake.Record
	Style    Style
	Basemaps BasemapConfig
	Plates   *geojson.FeatureCollection
	Orogens  *geojson.FeatureCollection
	View     *View // nil selects DefaultView
}

// Compose builds every layer and assembles the map with its legend and an
// expanded layer switcher.
func Compose(in Input) (*Map, error) {
	m, err := compose(in)
	if err != nil {
		return nil, err
	}

	markers := BuildMarkers(in.Records, in.Style)
	overlays := NamedLayers{{Name: EarthquakesName, Layer: markers}}
	m.Overlays = append(overlays, m.Overlays...)
	m.Attach(EarthquakesName)

	if in.View != nil && in.View.FitBounds && len(in.Records) > 0 {
		m.Bounds = recordBounds(in.Records)
	}
	return m, nil
}

// Placeholder composes the map without earthquakes, showing reason as a
// notice. Basemaps, overlays, legend and switcher still attach.
func Placeholder(in Input, reason string) (*Map, error) {
	m, err := compose(in)
	if err != nil {
		return nil, err
	}
	m.Notice = reason
	return m, nil
}

func compose(in Input) (*Map, error) {
	if err := in.Style.Validate(); err != nil {
		return nil, fmt.Errorf("invalid style: %w", err)
	}

	base, err := BuildBasemaps(in.Basemaps)
	if err != nil {
		return nil, err
	}

	view := DefaultView
	if in.View != nil {
		view = *in.View
	}

	m := &Map{
		ElementID:  MapElementID,
		Center:     view.Center,
		Zoom:       view.Zoom,
		BaseLayers: base,
		Control:    LayerControl{Collapsed: false},
	}
	m.Overlays = BuildOverlays(m, in.Plates, in.Orogens)
	m.Attach(base[0].Name)
	m.Legend = BuildLegend(in.Style.Colors)
	return m, nil
}

func recordBounds(records []quake.Record) *[2]LatLng {
	mp := make(orb.MultiPoint, len(records))
	for i, r := range records {
		mp[i] = r.Position
	}
	b := mp.Bound()
	if b.Left() == b.Right() || b.Bottom() == b.Top() {
		b = b.Pad(boundsPad)
	}
	return &[2]LatLng{
		{b.Min.Lat(), b.Min.Lon()},
		{b.Max.Lat(), b.Max.Lon()},
	}
}
