package deck

import (
	"html"
	"strconv"
	"strings"

	"github.com/woozymasta/geocompare/internal/geo"
)

// Tooltip is an HTML template with {nama}, {group}, {lon} and {lat}
// placeholders plus its CSS style.
type Tooltip struct {
	HTML  string            `json:"html"`
	Style map[string]string `json:"style"`
}

// DefaultTooltip returns the point tooltip.
func DefaultTooltip() Tooltip {
	return Tooltip{
		HTML: "<b>{nama}</b><br><b>Group:</b> {group}<br>Lon: {lon} | Lat: {lat}",
		Style: map[string]string{
			"backgroundColor": "rgba(255,255,255,0.94)",
			"color":           "#000",
			"padding":         "8px 12px",
			"borderRadius":    "5px",
			"boxShadow":       "2px 4px 10px rgba(0,0,0,0.25)",
		},
	}
}

// Format fills the placeholders for p. Text is HTML-escaped and coordinates
// use 6 decimals.
func (t Tooltip) Format(p geo.ExtractedPoint) string {
	return strings.NewReplacer(
		"{nama}", html.EscapeString(p.Name),
		"{group}", html.EscapeString(p.Label),
		"{lon}", strconv.FormatFloat(p.Lon, 'f', 6, 64),
		"{lat}", strconv.FormatFloat(p.Lat, 'f', 6, 64),
	).Replace(t.HTML)
}
