// Package mapview describes the earthquake map as plain values: layers,
// panes, the legend and the layer switcher. The page script only
// instantiates what a Map describes.
package mapview

import (
	"encoding/json"

	"github.com/paulmach/orb/geojson"
)

// Layer kinds.
const (
	KindMarkers    = "markers"
	KindTiles      = "tiles"
	KindBoundaries = "boundaries"
)

// Leaflet pane stacking. Vector circle markers live in the overlay pane.
const (
	TilePaneZIndex     = 200
	BoundaryPaneZIndex = 350
	OverlayPaneZIndex  = 400
)

// BoundaryPane is the pane boundary outlines are drawn on.
const BoundaryPane = "boundaries"

// Layer is an opaque handle to something drawable.
type Layer interface {
	Kind() string
}

// LatLng is a [lat, lon] pair in the order Leaflet expects.
type LatLng [2]float64

// Marker is one circle marker.
type Marker struct {
	ID          string  `json:"id,omitempty"`
	Position    LatLng  `json:"position"`
	Radius      float64 `json:"radius"`
	Color       string  `json:"color"`
	FillColor   string  `json:"fillColor"`
	FillOpacity float64 `json:"fillOpacity"`
	Opacity     float64 `json:"opacity"`
	Popup       string  `json:"popup"`
}

// MarkerLayer aggregates all earthquake markers.
type MarkerLayer struct {
	Markers []Marker `json:"markers"`
}

// Kind implements Layer.
func (l *MarkerLayer) Kind() string { return KindMarkers }

// Len returns the number of markers.
func (l *MarkerLayer) Len() int { return len(l.Markers) }

// TileLayer is a raster basemap. Leaflet substitutes {id} and {accessToken}
// in URL from the matching fields.
type TileLayer struct {
	URL         string `json:"url"`
	ID          string `json:"id"`
	AccessToken string `json:"accessToken"`
	Attribution string `json:"attribution"`
	MinZoom     int    `json:"minZoom"`
	MaxZoom     int    `json:"maxZoom"`
	TileSize    int    `json:"tileSize"`
	ZoomOffset  int    `json:"zoomOffset"`
	NoWrap      bool   `json:"noWrap"`
}

// Kind implements Layer.
func (l *TileLayer) Kind() string { return KindTiles }

// BoundaryLayer is an outline-only GeoJSON overlay.
type BoundaryLayer struct {
	Pane        string                     `json:"pane"`
	Color       string                     `json:"color"`
	Weight      float64                    `json:"weight"`
	FillOpacity float64                    `json:"fillOpacity"`
	Data        *geojson.FeatureCollection `json:"data"`
}

// Kind implements Layer.
func (l *BoundaryLayer) Kind() string { return KindBoundaries }

// NamedLayer pairs a display name with a layer.
type NamedLayer struct {
	Name  string
	Layer Layer
}

// NamedLayers is an ordered name→layer mapping. Order is the layer
// switcher's display order.
type NamedLayers []NamedLayer

// Add appends a layer under name.
func (n *NamedLayers) Add(name string, l Layer) {
	*n = append(*n, NamedLayer{Name: name, Layer: l})
}

// Get returns the first layer registered under name.
func (n NamedLayers) Get(name string) (Layer, bool) {
	for _, nl := range n {
		if nl.Name == name {
			return nl.Layer, true
		}
	}
	return nil, false
}

// Names returns the layer names in order.
func (n NamedLayers) Names() []string {
	names := make([]string, len(n))
	for i, nl := range n {
		names[i] = nl.Name
	}
	return names
}

// Len returns the number of layers.
func (n NamedLayers) Len() int { return len(n) }

// MarshalJSON encodes the layers as an ordered array.
func (n NamedLayers) MarshalJSON() ([]byte, error) {
	type entry struct {
		Name  string `json:"name"`
		Kind  string `json:"kind"`
		Layer Layer  `json:"layer"`
	}
	out := make([]entry, len(n))
	for i, nl := range n {
		out[i] = entry{Name: nl.Name, Kind: nl.Layer.Kind(), Layer: nl.Layer}
	}
	return json.Marshal(out)
}

// Pane is a custom Leaflet rendering pane.
type Pane struct {
	Name   string `json:"name"`
	ZIndex int    `json:"zIndex"`
}

// LegendItem defines a legend entry.
type LegendItem struct {
	Label string `json:"label" yaml:"label" doc:"Legend label"`
	Color string `json:"color" yaml:"color" doc:"Legend color (CSS)"`
}

// Legend is the static colour key control.
type Legend struct {
	Position string       `json:"position" yaml:"position"`
	Items    []LegendItem `json:"items" yaml:"items"`
}

// LayerControl configures the layer switcher.
type LayerControl struct {
	Collapsed bool `json:"collapsed"`
}

// View is the initial map viewport.
type View struct {
	Center    LatLng
	Zoom      int
	FitBounds bool
}

// Map is the fully composed page model.
type Map struct {
	ElementID  string       `json:"elementId"`
	Center     LatLng       `json:"center"`
	Zoom       int          `json:"zoom"`
	Bounds     *[2]LatLng   `json:"bounds,omitempty"`
	Panes      []Pane       `json:"panes"`
	BaseLayers NamedLayers  `json:"baseLayers"`
	Overlays   NamedLayers  `json:"overlays"`
	Attached   []string     `json:"attached"`
	Legend     *Legend      `json:"-"`
	Control    LayerControl `json:"control"`
	Notice     string       `json:"notice,omitempty"`
}

// AddPane registers a pane once.
func (m *Map) AddPane(p Pane) {
	for _, existing := range m.Panes {
		if existing.Name == p.Name {
			return
		}
	}
	m.Panes = append(m.Panes, p)
}

// Pane returns the pane with the given name.
func (m *Map) Pane(name string) (Pane, bool) {
	for _, p := range m.Panes {
		if p.Name == name {
			return p, true
		}
	}
	return Pane{}, false
}

// Attach adds a named layer directly to the map.
func (m *Map) Attach(name string) {
	m.Attached = append(m.Attached, name)
}

// Markers returns the earthquake layer, if attached.
func (m *Map) Markers() (*MarkerLayer, bool) {
	l, ok := m.Overlays.Get(EarthquakesName)
	if !ok {
		return nil, false
	}
	ml, ok := l.(*MarkerLayer)
	return ml, ok
}
