package mapview

import "github.com/joeblew999/plat-quake/internal/quake"

// Marker styling shared by every earthquake.
const (
	MarkerFillOpacity   = 0.75
	MarkerStrokeOpacity = 0.25
)

// BuildMarkers turns records into one circle marker each.
func BuildMarkers(records []quake.Record, style Style) *MarkerLayer {
	markers := make([]Marker, 0, len(records))
	for _, r := range records {
		color := style.ColorFor(r.Magnitude)
		markers = append(markers, Marker{
			ID:          r.ID,
			Position:    LatLng{r.Lat(), r.Lon()},
			Radius:      style.RadiusFor(r.Magnitude),
			Color:       color,
			FillColor:   color,
			FillOpacity: MarkerFillOpacity,
			Opacity:     MarkerStrokeOpacity,
			Popup:       quake.Popup(r),
		})
	}
	return &MarkerLayer{Markers: markers}
}
