// Package export encodes the point table of a report for use outside the page.
package export

import (
	"encoding/json"
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"gopkg.in/yaml.v3"

	"github.com/woozymasta/geocompare/internal/geo"
)

// Output formats of the point table.
const (
	FormatJSON    = "json"
	FormatYAML    = "yaml"
	FormatGeoJSON = "geojson"
)

// Table is the exported view and point table.
type Table struct {
	View   geo.ViewState  `json:"view" yaml:"view"`
	Points geo.PointTable `json:"points" yaml:"points"`
}

// Encode writes the table in the given format.
func Encode(t Table, format string) ([]byte, error) {
	switch format {
	case FormatJSON:
		if t.Points == nil {
			t.Points = geo.PointTable{}
		}
		return json.MarshalIndent(t, "", "  ")
	case FormatYAML:
		return yaml.Marshal(t)
	case FormatGeoJSON:
		return FeatureCollection(t.Points).MarshalJSON()
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
}

// FeatureCollection converts the points into Point features carrying
// name, group label and id as properties.
func FeatureCollection(points geo.PointTable) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, p := range points {
		f := geojson.NewFeature(orb.Point{p.Lon, p.Lat})
		f.ID = p.ID
		f.Properties["nama"] = p.Name
		f.Properties["group"] = p.Label
		f.Properties["id"] = p.ID
		fc.Append(f)
	}
	return fc
}
