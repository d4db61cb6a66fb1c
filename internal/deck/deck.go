// Package deck assembles the deck.gl view model of the comparison map.
package deck

import (
	"encoding/json"
	"strings"

	"github.com/woozymasta/geocompare/internal/config"
	"github.com/woozymasta/geocompare/internal/geo"
	"github.com/woozymasta/geocompare/internal/pipeline"
)

// Layer types understood by the page script.
const (
	TypeGeoJSON     = "GeoJsonLayer"
	TypeScatterplot = "ScatterplotLayer"
	TypeText        = "TextLayer"
)

// Deck is the complete, immutable view model handed to the page.
type Deck struct {
	Layers           []Layer        `json:"layers"`
	InitialViewState geo.ViewState  `json:"initialViewState"`
	Tooltip          Tooltip        `json:"tooltip"`
	MapStyle         string         `json:"mapStyle"`
	Summary          []GroupSummary `json:"summary"`
}

// Layer describes one deck.gl layer. Only the fields relevant to Type are set.
type Layer struct {
	Type string      `json:"type"`
	ID   string      `json:"id"`
	Data interface{} `json:"data"`

	Pickable           bool          `json:"pickable"`
	Opacity            float64       `json:"opacity,omitempty"`
	Stroked            bool          `json:"stroked,omitempty"`
	Filled             bool          `json:"filled,omitempty"`
	FillColor          *config.Color `json:"fillColor,omitempty"`
	LineColor          *config.Color `json:"lineColor,omitempty"`
	LineWidthMinPixels float64       `json:"lineWidthMinPixels,omitempty"`

	Radius          float64 `json:"radius,omitempty"`
	RadiusMinPixels float64 `json:"radiusMinPixels,omitempty"`
	RadiusMaxPixels float64 `json:"radiusMaxPixels,omitempty"`

	Size              float64       `json:"size,omitempty"`
	SizeScale         float64       `json:"sizeScale,omitempty"`
	Color             *config.Color `json:"color,omitempty"`
	Angle             float64       `json:"angle,omitempty"`
	TextAnchor        string        `json:"textAnchor,omitempty"`
	AlignmentBaseline string        `json:"alignmentBaseline,omitempty"`
	Background        bool          `json:"background,omitempty"`
	BackgroundPadding []float64     `json:"backgroundPadding,omitempty"`
	BackgroundColor   *config.Color `json:"backgroundColor,omitempty"`
}

// Row is one point of the point and text layers.
type Row struct {
	geo.ExtractedPoint
	Color   config.Color `json:"color"`
	Tooltip string       `json:"tooltip"`
}

// GroupSummary is the per-group table shown below the map.
type GroupSummary struct {
	Label  string               `json:"label"`
	Color  config.Color         `json:"color"`
	Loaded bool                 `json:"loaded"`
	Points []geo.ExtractedPoint `json:"points"`
}

// Styling constants of the point, text and boundary layers.
var (
	pointOutline    = config.Color{255, 255, 255, 180}
	textColor       = config.Color{0, 0, 0, 220}
	textBackground  = config.Color{255, 255, 255, 180}
	textPadding     = []float64{2, 1}
	boundaryOpacity = 0.18
)

// Named base map styles; anything else is used as a style URL.
var mapStyles = map[string]string{
	"light": "https://basemaps.cartocdn.com/gl/positron-gl-style/style.json",
	"dark":  "https://basemaps.cartocdn.com/gl/dark-matter-gl-style/style.json",
	"road":  "https://basemaps.cartocdn.com/gl/voyager-gl-style/style.json",
}

// MapStyleURL resolves a style name or URL.
func MapStyleURL(style string) string {
	if url, ok := mapStyles[strings.ToLower(style)]; ok {
		return url
	}
	return style
}

// Palette maps each group tag to its point color.
type Palette [len(geo.Groups)]config.Color

// NewPalette builds the group color lookup from the configured groups.
func NewPalette(groups []config.Group) Palette {
	var p Palette
	for i := range p {
		if i < len(groups) {
			p[i] = groups[i].Point
		}
	}
	return p
}

// Color returns the point color of g.
func (p Palette) Color(g geo.Group) config.Color {
	if int(g) < 0 || int(g) >= len(p) {
		return config.Color{}
	}
	return p[g]
}

// Assemble builds the view model from a successful report.
// Layer order is boundary A, boundary B, points, labels; later layers draw on top.
func Assemble(cfg *config.Config, r *pipeline.Report) *Deck {
	palette := NewPalette(cfg.Groups)
	tooltip := DefaultTooltip()

	d := &Deck{
		InitialViewState: r.View,
		Tooltip:          tooltip,
		MapStyle:         MapStyleURL(cfg.MapStyle),
	}

	for _, g := range r.Groups {
		if !g.Loaded() {
			continue
		}
		d.Layers = append(d.Layers, boundaryLayer(g))
	}

	rows := make([]Row, 0, len(r.Points))
	for _, p := range r.Points {
		rows = append(rows, Row{
			ExtractedPoint: p,
			Color:          palette.Color(p.Group),
			Tooltip:        tooltip.Format(p),
		})
	}

	d.Layers = append(d.Layers, pointLayer(rows), textLayer(rows))

	for _, g := range r.Groups {
		d.Summary = append(d.Summary, GroupSummary{
			Label:  g.Config.Name,
			Color:  palette.Color(g.Group),
			Loaded: g.Loaded(),
			Points: r.Points.ByGroup(g.Group),
		})
	}

	return d
}

func boundaryLayer(g pipeline.GroupResult) Layer {
	fill, line := g.Config.Fill, g.Config.Line

	return Layer{
		Type:               TypeGeoJSON,
		ID:                 "boundary-" + strings.ToLower(g.Group.String()),
		Data:               json.RawMessage(g.Document.Raw),
		Pickable:           true,
		Opacity:            boundaryOpacity,
		Stroked:            true,
		Filled:             true,
		FillColor:          &fill,
		LineColor:          &line,
		LineWidthMinPixels: 1.8,
	}
}

func pointLayer(rows []Row) Layer {
	outline := pointOutline

	return Layer{
		Type:               TypeScatterplot,
		ID:                 "points",
		Data:               rows,
		Pickable:           true,
		LineColor:          &outline,
		LineWidthMinPixels: 2,
		Radius:             900,
		RadiusMinPixels:    7,
		RadiusMaxPixels:    22,
	}
}

func textLayer(rows []Row) Layer {
	color, background := textColor, textBackground

	return Layer{
		Type:              TypeText,
		ID:                "labels",
		Data:              rows,
		Size:              13,
		SizeScale:         0.9,
		Color:             &color,
		TextAnchor:        "middle",
		AlignmentBaseline: "bottom",
		Background:        true,
		BackgroundPadding: textPadding,
		BackgroundColor:   &background,
	}
}
