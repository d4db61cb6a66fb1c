package geo

// ViewState is the initial camera of the map.
type ViewState struct {
	Longitude float64 `json:"longitude" yaml:"longitude"`
	Latitude  float64 `json:"latitude" yaml:"latitude"`
	Zoom      float64 `json:"zoom" yaml:"zoom"`
	Pitch     float64 `json:"pitch" yaml:"pitch"`
}

// Center returns the view centered on the arithmetic mean of the points at the
// given zoom, or fallback when there are no points.
func Center(points PointTable, zoom float64, fallback ViewState) ViewState {
	if len(points) == 0 {
		return fallback
	}

	var sumLon, sumLat float64
	for _, p := range points {
		sumLon += p.Lon
		sumLat += p.Lat
	}

	n := float64(len(points))
	return ViewState{
		Longitude: sumLon / n,
		Latitude:  sumLat / n,
		Zoom:      zoom,
	}
}
