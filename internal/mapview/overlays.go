package mapview

import "github.com/paulmach/orb/geojson"

// Overlay display names.
const (
	EarthquakesName = "Earthquakes"
	PlatesName      = "Tectonic Plates"
	OrogensName     = "Orogens"
)

// BuildOverlays adds the boundary pane to m and returns the plate and
// orogen outline layers drawn on it. Plate steps are not offered as a third
// overlay; they trace the same lines as the plate outlines.
func BuildOverlays(m *Map, plates, orogens *geojson.FeatureCollection) NamedLayers {
	m.AddPane(Pane{Name: BoundaryPane, ZIndex: BoundaryPaneZIndex})

	var layers NamedLayers
	layers.Add(PlatesName, outline(plates, "#ff8c00", 2))
	layers.Add(OrogensName, outline(orogens, "#b15928", 1.5))
	return layers
}

func outline(fc *geojson.FeatureCollection, color string, weight float64) *BoundaryLayer {
	if fc == nil {
		fc = geojson.NewFeatureCollection()
	}
	return &BoundaryLayer{
		Pane:        BoundaryPane,
		Color:       color,
		Weight:      weight,
		FillOpacity: 0,
		Data:        fc,
	}
}
