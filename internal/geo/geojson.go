// Package geo derives representative points from GeoJSON feature collections.
package geo

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// GeoJSON type names handled by this package.
const (
	TypeFeatureCollection = "FeatureCollection"
	TypePolygon           = "Polygon"
	TypeMultiPolygon      = "MultiPolygon"
	TypePoint             = "Point"
)

// ErrNotFeatureCollection is returned by Decode for well-formed JSON of another shape.
var ErrNotFeatureCollection = errors.New("not a GeoJSON FeatureCollection")

// Document is a parsed feature collection.
// Raw keeps the original bytes so the boundary overlay can draw the whole document.
type Document struct {
	Raw      json.RawMessage
	Features []Feature
}

// Feature is a single feature. Geometry is kept undecoded so that one broken
// geometry only affects its own feature.
type Feature struct {
	Geometry   json.RawMessage
	Properties map[string]interface{}
}

// Internal structures for JSON parsing
type rawCollection struct {
	Type     string            `json:"type"`
	Features []json.RawMessage `json:"features"`
}

type rawFeature struct {
	Geometry   json.RawMessage        `json:"geometry"`
	Properties map[string]interface{} `json:"properties"`
}

type rawGeometry struct {
	Type        string          `json:"type"`
	Coordinates json.RawMessage `json:"coordinates"`
}

// Decode parses data as a GeoJSON FeatureCollection.
// A missing features member is treated as an empty collection.
func Decode(data []byte) (*Document, error) {
	var fc rawCollection
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, err
	}
	if fc.Type != TypeFeatureCollection {
		return nil, fmt.Errorf("%w: type %q", ErrNotFeatureCollection, fc.Type)
	}

	doc := &Document{
		Raw:      json.RawMessage(bytes.TrimSpace(data)),
		Features: make([]Feature, 0, len(fc.Features)),
	}

	for i, raw := range fc.Features {
		var f rawFeature
		if err := json.Unmarshal(raw, &f); err != nil {
			return nil, fmt.Errorf("feature %d: %w", i+1, err)
		}
		if f.Properties == nil {
			f.Properties = map[string]interface{}{}
		}
		doc.Features = append(doc.Features, Feature{
			Geometry:   f.Geometry,
			Properties: f.Properties,
		})
	}

	return doc, nil
}

// Len returns the number of features; a nil document has none.
func (d *Document) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Features)
}

// header reads the type and coordinates members of the raw geometry.
func (f Feature) header() (rawGeometry, error) {
	var g rawGeometry
	if len(f.Geometry) == 0 || bytes.Equal(f.Geometry, []byte("null")) {
		return g, ErrNoGeometry
	}
	if err := json.Unmarshal(f.Geometry, &g); err != nil {
		return g, fmt.Errorf("%w: %v", ErrInvalidGeometry, err)
	}
	if g.Type == "" {
		return g, ErrNoGeometry
	}
	return g, nil
}
