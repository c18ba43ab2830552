package mapview

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joeblew999/plat-quake/internal/quake"
)

func testRecords() []quake.Record {
	return []quake.Record{
		{ID: "a", Position: orb.Point{-2.004, 1.005}, Time: time.UnixMilli(0).UTC(), Place: "Test", Magnitude: 5},
		{ID: "b", Position: orb.Point{-117.6, 35.6}, Time: time.UnixMilli(1700000000000).UTC(), Place: "Ridgecrest", Magnitude: 0.4},
	}
}

func testInput(records []quake.Record) Input {
	return Input{
		Records:  records,
		Style:    DefaultStyle(),
		Basemaps: DefaultBasemaps(),
		Plates:   geojson.NewFeatureCollection(),
		Orogens:  geojson.NewFeatureCollection(),
	}
}

func TestBuildMarkers(t *testing.T) {
	layer := BuildMarkers(testRecords(), DefaultStyle())
	require.Equal(t, 2, layer.Len())

	m := layer.Markers[0]
	assert.Equal(t, LatLng{1.005, -2.004}, m.Position)
	assert.Equal(t, float64(4*20000), m.Radius)
	assert.Equal(t, "#fca35d", m.Color)
	assert.Equal(t, m.Color, m.FillColor)
	assert.Equal(t, 0.75, m.FillOpacity)
	assert.Equal(t, 0.25, m.Opacity)
	assert.Contains(t, m.Popup, "Position: (1.01,-2.00)")

	small := layer.Markers[1]
	assert.Equal(t, "#a3f600", small.Color)
	assert.Equal(t, float64(20000), small.Radius)
}

func TestBuildMarkers_ConfiguredStyle(t *testing.T) {
	style := Style{
		Colors: quake.Breakpoints[string]{{Threshold: 0, Value: "blue"}, {Threshold: 3, Value: "#f00"}},
		Scales: quake.Breakpoints[float64]{{Threshold: 0, Value: 2}},
	}
	assert.Equal(t, "#f00", style.ColorFor(5))
	assert.Equal(t, "blue", style.ColorFor(3))
	assert.Equal(t, float64(2*quake.RadiusMultiplier), style.RadiusFor(5))

	layer := BuildMarkers(testRecords(), style)
	require.Equal(t, 2, layer.Len())
	assert.Equal(t, "#f00", layer.Markers[0].Color)
	assert.Equal(t, float64(40000), layer.Markers[0].Radius)
	assert.Equal(t, "blue", layer.Markers[1].Color)
}

func TestBuildMarkers_Empty(t *testing.T) {
	layer := BuildMarkers(nil, DefaultStyle())
	require.NotNil(t, layer)
	assert.Equal(t, 0, layer.Len())

	data, err := json.Marshal(layer)
	require.NoError(t, err)
	assert.JSONEq(t, `{"markers":[]}`, string(data))
}

func TestBuildBasemaps(t *testing.T) {
	layers, err := BuildBasemaps(DefaultBasemaps())
	require.NoError(t, err)
	assert.Equal(t, []string{"Street Map", "Dark Map"}, layers.Names())

	street := layers[0].Layer.(*TileLayer)
	dark := layers[1].Layer.(*TileLayer)
	assert.Equal(t, street.URL, dark.URL)
	assert.Equal(t, street.Attribution, dark.Attribution)
	assert.NotEqual(t, street.ID, dark.ID)
	assert.True(t, street.NoWrap)
	assert.True(t, dark.NoWrap)
	assert.Equal(t, 1, street.MinZoom)
	assert.Equal(t, 18, street.MaxZoom)
	assert.Equal(t, APIKeyPlaceholder, street.AccessToken)
}

func TestBuildBasemaps_Errors(t *testing.T) {
	cfg := DefaultBasemaps()
	cfg.Styles = nil
	_, err := BuildBasemaps(cfg)
	assert.Error(t, err)

	cfg = DefaultBasemaps()
	cfg.MinZoom = 19
	_, err = BuildBasemaps(cfg)
	assert.Error(t, err)

	cfg = DefaultBasemaps()
	cfg.Styles = append(cfg.Styles, cfg.Styles[0])
	_, err = BuildBasemaps(cfg)
	assert.ErrorContains(t, err, "duplicate")
}

func TestBuildOverlays_PaneBetweenTilesAndMarkers(t *testing.T) {
	m := &Map{}
	layers := BuildOverlays(m, geojson.NewFeatureCollection(), nil)

	pane, ok := m.Pane(BoundaryPane)
	require.True(t, ok)
	assert.Greater(t, pane.ZIndex, TilePaneZIndex)
	assert.Less(t, pane.ZIndex, OverlayPaneZIndex)

	assert.Equal(t, []string{PlatesName, OrogensName}, layers.Names())
	for _, nl := range layers {
		bl := nl.Layer.(*BoundaryLayer)
		assert.Equal(t, BoundaryPane, bl.Pane)
		assert.Equal(t, 0.0, bl.FillOpacity)
		assert.NotNil(t, bl.Data)
	}

	BuildOverlays(m, nil, nil)
	assert.Len(t, m.Panes, 1)
}

func TestBuildLegend(t *testing.T) {
	legend := BuildLegend(quake.ColorBreakpoints)
	require.Len(t, legend.Items, len(quake.ColorBreakpoints))
	assert.Equal(t, LegendPosition, legend.Position)

	want := []string{"Mag < 1", "Mag < 2", "Mag < 3", "Mag < 4", "Mag < 5", "Mag >= 5"}
	for i, item := range legend.Items {
		assert.Equal(t, want[i], item.Label)
		assert.Equal(t, quake.ColorBreakpoints[i].Value, item.Color)
	}
}

func TestBuildLegend_FractionalThresholds(t *testing.T) {
	legend := BuildLegend(quake.Breakpoints[string]{{Threshold: -1, Value: "a"}, {Threshold: 2.5, Value: "b"}})
	assert.Equal(t, []LegendItem{{Label: "Mag < 2.5", Color: "a"}, {Label: "Mag >= 2.5", Color: "b"}}, legend.Items)
}

func TestCompose(t *testing.T) {
	m, err := Compose(testInput(testRecords()))
	require.NoError(t, err)

	assert.Equal(t, MapElementID, m.ElementID)
	assert.Equal(t, DefaultView.Center, m.Center)
	assert.Equal(t, []string{EarthquakesName, PlatesName, OrogensName}, m.Overlays.Names())
	assert.Equal(t, []string{"Street Map", EarthquakesName}, m.Attached)
	assert.False(t, m.Control.Collapsed)
	require.NotNil(t, m.Legend)
	assert.Empty(t, m.Notice)
	assert.Nil(t, m.Bounds)

	markers, ok := m.Markers()
	require.True(t, ok)
	assert.Equal(t, 2, markers.Len())
}

func TestCompose_EmptyFeed(t *testing.T) {
	m, err := Compose(testInput(nil))
	require.NoError(t, err)

	markers, ok := m.Markers()
	require.True(t, ok)
	assert.Equal(t, 0, markers.Len())
	assert.Equal(t, 2, m.BaseLayers.Len())
	assert.NotNil(t, m.Legend)
}

func TestCompose_FitBounds(t *testing.T) {
	in := testInput(testRecords())
	in.View = &View{FitBounds: true}

	m, err := Compose(in)
	require.NoError(t, err)
	require.NotNil(t, m.Bounds)
	assert.Equal(t, LatLng{1.005, -117.6}, m.Bounds[0])
	assert.Equal(t, LatLng{35.6, -2.004}, m.Bounds[1])
}

func TestCompose_FitBoundsSingleRecordIsPadded(t *testing.T) {
	in := testInput(testRecords()[:1])
	in.View = &View{FitBounds: true}

	m, err := Compose(in)
	require.NoError(t, err)
	require.NotNil(t, m.Bounds)

	sw, ne := m.Bounds[0], m.Bounds[1]
	assert.Less(t, sw[0], ne[0])
	assert.Less(t, sw[1], ne[1])
	assert.InDelta(t, 1.005-boundsPad, sw[0], 1e-9)
	assert.InDelta(t, -2.004+boundsPad, ne[1], 1e-9)
}

func TestCompose_ExplicitWorldView(t *testing.T) {
	in := testInput(nil)
	in.View = &View{Center: LatLng{0, 0}, Zoom: 0}

	m, err := Compose(in)
	require.NoError(t, err)
	assert.Equal(t, LatLng{0, 0}, m.Center)
	assert.Equal(t, 0, m.Zoom)
}

func TestCompose_RejectsUnrenderableColor(t *testing.T) {
	in := testInput(nil)
	in.Style.Colors = quake.Breakpoints[string]{{Threshold: 0, Value: "rgb(255,0,0)"}}
	_, err := Compose(in)
	assert.ErrorContains(t, err, "invalid style")
}

func TestCompose_InvalidStyle(t *testing.T) {
	in := testInput(nil)
	in.Style.Colors = nil
	_, err := Compose(in)
	assert.ErrorContains(t, err, "invalid style")
}

func TestPlaceholder(t *testing.T) {
	m, err := Placeholder(testInput(nil), "feed unavailable")
	require.NoError(t, err)

	_, ok := m.Markers()
	assert.False(t, ok)
	assert.Equal(t, "feed unavailable", m.Notice)
	assert.Equal(t, []string{PlatesName, OrogensName}, m.Overlays.Names())
	assert.Equal(t, []string{"Street Map"}, m.Attached)
}

func TestMap_JSON(t *testing.T) {
	m, err := Compose(testInput(testRecords()))
	require.NoError(t, err)

	data, err := json.Marshal(m)
	require.NoError(t, err)

	var decoded struct {
		Overlays []struct {
			Name string `json:"name"`
			Kind string `json:"kind"`
		} `json:"overlays"`
		Panes []Pane `json:"panes"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded.Overlays, 3)
	assert.Equal(t, KindMarkers, decoded.Overlays[0].Kind)
	assert.Equal(t, KindBoundaries, decoded.Overlays[1].Kind)
	assert.Equal(t, []Pane{{Name: BoundaryPane, ZIndex: BoundaryPaneZIndex}}, decoded.Panes)
}
