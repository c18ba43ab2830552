package mapview

import "fmt"

// DefaultTileURL is the Mapbox static styles tile template.
const DefaultTileURL = "https://api.mapbox.com/styles/v1/mapbox/{id}/tiles/{z}/{x}/{y}?access_token={accessToken}"

// DefaultAttribution credits the tile provider and map data.
const DefaultAttribution = `© <a href="https://www.mapbox.com/about/maps/">Mapbox</a> © <a href="http://www.openstreetmap.org/copyright">OpenStreetMap</a>`

// APIKeyPlaceholder is substituted when no access key is configured.
const APIKeyPlaceholder = "API_KEY"

// BasemapStyle names one tile style.
type BasemapStyle struct {
	Name    string `json:"name" yaml:"name" doc:"Display name in the layer switcher" example:"Street Map"`
	StyleID string `json:"style_id" yaml:"style_id" doc:"Tile provider style identifier" example:"streets-v11"`
}

// BasemapConfig configures the tile layers.
type BasemapConfig struct {
	URL         string
	APIKey      string
	Attribution string
	MinZoom     int
	MaxZoom     int
	Styles      []BasemapStyle
}

// DefaultBasemaps returns the street and dark styles.
func DefaultBasemaps() BasemapConfig {
	return BasemapConfig{
		URL:         DefaultTileURL,
		APIKey:      APIKeyPlaceholder,
		Attribution: DefaultAttribution,
		MinZoom:     1,
		MaxZoom:     18,
		Styles: []BasemapStyle{
			{Name: "Street Map", StyleID: "streets-v11"},
			{Name: "Dark Map", StyleID: "dark-v10"},
		},
	}
}

// BuildBasemaps returns one tile layer per style. The first is the default
// base layer.
func BuildBasemaps(cfg BasemapConfig) (NamedLayers, error) {
	if len(cfg.Styles) == 0 {
		return nil, fmt.Errorf("no basemap styles configured")
	}
	if cfg.MinZoom > cfg.MaxZoom {
		return nil, fmt.Errorf("basemap min zoom %d above max zoom %d", cfg.MinZoom, cfg.MaxZoom)
	}
	key := cfg.APIKey
	if key == "" {
		key = APIKeyPlaceholder
	}

	var layers NamedLayers
	for _, s := range cfg.Styles {
		if _, dup := layers.Get(s.Name); dup {
			return nil, fmt.Errorf("duplicate basemap name %q", s.Name)
		}
		layers.Add(s.Name, &TileLayer{
			URL:         cfg.URL,
			ID:          s.StyleID,
			AccessToken: key,
			Attribution: cfg.Attribution,
			MinZoom:     cfg.MinZoom,
			MaxZoom:     cfg.MaxZoom,
			TileSize:    512,
			ZoomOffset:  -1,
			NoWrap:      true,
		})
	}
	return layers, nil
}
