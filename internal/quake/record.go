package quake

import (
	"errors"
	"fmt"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// ErrMalformedFeature is returned when a feed feature cannot become a Record.
var ErrMalformedFeature = errors.New("malformed feature")

// Record is one earthquake event as read from the feed.
type Record struct {
	ID        string
	Position  orb.Point // lon, lat
	Time      time.Time
	Place     string
	Magnitude float64
}

// Lat returns the record latitude.
func (r Record) Lat() float64 { return r.Position.Lat() }

// Lon returns the record longitude.
func (r Record) Lon() float64 { return r.Position.Lon() }

// RecordsFromFeed converts every feature of fc into a Record.
// The first malformed feature rejects the whole batch.
func RecordsFromFeed(fc *geojson.FeatureCollection) ([]Record, error) {
	if fc == nil {
		return nil, fmt.Errorf("%w: nil feature collection", ErrMalformedFeature)
	}

	records := make([]Record, 0, len(fc.Features))
	for i, f := range fc.Features {
		r, err := recordFromFeature(f)
		if err != nil {
			return nil, fmt.Errorf("feature %d (%v): %w", i, featureID(f), err)
		}
		records = append(records, r)
	}
	return records, nil
}

func recordFromFeature(f *geojson.Feature) (Record, error) {
	if f == nil {
		return Record{}, fmt.Errorf("%w: null feature", ErrMalformedFeature)
	}

	pt, ok := f.Geometry.(orb.Point)
	if !ok {
		return Record{}, fmt.Errorf("%w: geometry is %T, want point", ErrMalformedFeature, f.Geometry)
	}

	mag, ok := f.Properties["mag"].(float64)
	if !ok {
		return Record{}, fmt.Errorf("%w: missing numeric mag", ErrMalformedFeature)
	}
	ms, ok := f.Properties["time"].(float64)
	if !ok {
		return Record{}, fmt.Errorf("%w: missing numeric time", ErrMalformedFeature)
	}
	place, ok := f.Properties["place"].(string)
	if !ok {
		return Record{}, fmt.Errorf("%w: missing place", ErrMalformedFeature)
	}

	return Record{
		ID:        featureID(f),
		Position:  pt,
		Time:      time.UnixMilli(int64(ms)).UTC(),
		Place:     place,
		Magnitude: mag,
	}, nil
}

func featureID(f *geojson.Feature) string {
	if f == nil || f.ID == nil {
		return ""
	}
	return fmt.Sprint(f.ID)
}
