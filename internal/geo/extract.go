package geo

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"
	"github.com/rs/zerolog/log"
)

// Reasons a feature contributes no point.
var (
	ErrNoGeometry          = errors.New("feature has no geometry")
	ErrUnsupportedGeometry = errors.New("unsupported geometry type")
	ErrInvalidGeometry     = errors.New("invalid geometry")
	ErrShortCoordinates    = errors.New("point has fewer than 2 coordinates")
)

// Property keys consulted for the display name, in priority order.
var (
	polygonNameKeys = []string{"nm_kecamatan", "KECAMATAN"}
	pointNameKeys   = []string{"nm_kecamatan", "name"}
)

// Skip records a feature dropped by Extract.
type Skip struct {
	Index  int // 1-based feature index
	Reason error
}

// Extract reduces every feature of doc to one representative point tagged with
// group and label. Features that cannot produce a point are reported as skips
// and never abort the extraction. A nil document yields nothing.
func Extract(doc *Document, group Group, label string) ([]ExtractedPoint, []Skip) {
	if doc == nil {
		return nil, nil
	}

	points := make([]ExtractedPoint, 0, len(doc.Features))
	var skips []Skip

	for i, f := range doc.Features {
		index := i + 1

		p, err := extractFeature(f, group, label, index)
		if err != nil {
			log.Debug().
				Str("group", label).
				Int("index", index).
				Err(err).
				Msg("Feature skipped")

			skips = append(skips, Skip{Index: index, Reason: err})
			continue
		}

		points = append(points, p)
	}

	return points, skips
}

func extractFeature(f Feature, group Group, label string, index int) (ExtractedPoint, error) {
	g, err := f.header()
	if err != nil {
		return ExtractedPoint{}, err
	}

	var (
		lon, lat float64
		keys     []string
	)

	switch g.Type {
	case TypePolygon, TypeMultiPolygon:
		lon, lat, err = centroid(f.Geometry)
		keys = polygonNameKeys
	case TypePoint:
		lon, lat, err = pointCoordinates(g.Coordinates)
		keys = pointNameKeys
	default:
		return ExtractedPoint{}, fmt.Errorf("%w: %q", ErrUnsupportedGeometry, g.Type)
	}
	if err != nil {
		return ExtractedPoint{}, err
	}

	return ExtractedPoint{
		Lon:   lon,
		Lat:   lat,
		Name:  ResolveName(f.Properties, keys, fmt.Sprintf("%s %d", label, index)),
		Label: label,
		ID:    fmt.Sprintf("%s_%d", label, index),
		Group: group,
	}, nil
}

// centroid returns the area-weighted centroid of a Polygon or MultiPolygon.
// For a MultiPolygon this is the centroid of all parts together.
func centroid(raw json.RawMessage) (lon, lat float64, err error) {
	g, err := geojson.UnmarshalGeometry(raw)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrInvalidGeometry, err)
	}

	switch g.Coordinates.(type) {
	case orb.Polygon, orb.MultiPolygon:
	default:
		return 0, 0, fmt.Errorf("%w: unexpected %T", ErrInvalidGeometry, g.Coordinates)
	}

	c, area := planar.CentroidArea(g.Coordinates)
	if !(area > 0) || math.IsInf(area, 0) {
		return 0, 0, fmt.Errorf("%w: zero area", ErrInvalidGeometry)
	}
	if !finite(c[0]) || !finite(c[1]) {
		return 0, 0, fmt.Errorf("%w: non-finite centroid", ErrInvalidGeometry)
	}

	return c[0], c[1], nil
}

// pointCoordinates returns the first two values of a Point's coordinates unchanged.
func pointCoordinates(raw json.RawMessage) (lon, lat float64, err error) {
	// pointers keep null apart from 0
	var coords []*float64
	if err := json.Unmarshal(raw, &coords); err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrInvalidGeometry, err)
	}
	if len(coords) < 2 {
		return 0, 0, fmt.Errorf("%w: got %d", ErrShortCoordinates, len(coords))
	}
	if coords[0] == nil || coords[1] == nil {
		return 0, 0, fmt.Errorf("%w: null coordinate", ErrInvalidGeometry)
	}

	return *coords[0], *coords[1], nil
}

// ResolveName returns the first key of keys present in props with a non-null
// value, formatted as text, or fallback when none is present.
func ResolveName(props map[string]interface{}, keys []string, fallback string) string {
	for _, key := range keys {
		v, ok := props[key]
		if !ok || v == nil {
			continue
		}
		return formatValue(v)
	}
	return fallback
}

func formatValue(v interface{}) string {
	switch v := v.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case json.Number:
		return v.String()
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(data)
	}
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
