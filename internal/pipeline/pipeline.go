// Package pipeline loads both groups, extracts their points and aggregates them
// into a report ready for presentation.
package pipeline

import (
	"errors"
	"fmt"

	"github.com/woozymasta/geocompare/internal/config"
	"github.com/woozymasta/geocompare/internal/geo"
	"github.com/woozymasta/geocompare/internal/loader"

	"github.com/rs/zerolog/log"
)

// ErrEmptyResult stops a run in which neither group produced a point.
var ErrEmptyResult = errors.New("no points could be extracted from either GeoJSON file")

// Level is the severity of a user-visible notice.
type Level string

// Notice levels.
const (
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Notice is a message shown to the user about the run.
type Notice struct {
	Level   Level  `json:"level" yaml:"level"`
	Message string `json:"message" yaml:"message"`
}

// GroupResult is the outcome of loading and extracting one group.
type GroupResult struct {
	Group    geo.Group
	Config   config.Group
	Document *geo.Document // nil when the source could not be loaded
	Points   []geo.ExtractedPoint
	Skips    []geo.Skip
}

// Loaded reports whether the group's document was read successfully.
func (g GroupResult) Loaded() bool {
	return g.Document != nil
}

// Report is the aggregated result of one run.
type Report struct {
	Groups  [2]GroupResult
	Points  geo.PointTable
	View    geo.ViewState
	Notices []Notice
}

// Run loads and extracts both configured groups.
// When no point was extracted, Run returns the report with its notices together
// with ErrEmptyResult and nothing should be rendered.
func Run(cfg *config.Config) (*Report, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	r := &Report{}
	for i, g := range geo.Groups {
		r.Groups[i] = r.runGroup(g, cfg.Groups[i])
	}

	r.Points = geo.Concat(r.Groups[0].Points, r.Groups[1].Points)
	if len(r.Points) == 0 {
		r.notify(LevelError, "No points could be extracted from either GeoJSON file.")
		log.Error().Msg("No points extracted, nothing to render")
		return r, ErrEmptyResult
	}

	fallback := geo.ViewState{
		Longitude: cfg.Fallback.Longitude,
		Latitude:  cfg.Fallback.Latitude,
		Zoom:      cfg.Fallback.Zoom,
	}
	r.View = geo.Center(r.Points, cfg.Zoom, fallback)

	log.Info().
		Int("points", len(r.Points)).
		Float64("center_lon", r.View.Longitude).
		Float64("center_lat", r.View.Latitude).
		Msg("Report built")

	return r, nil
}

func (r *Report) runGroup(g geo.Group, gc config.Group) GroupResult {
	res := GroupResult{Group: g, Config: gc}
	source := loader.Source(gc)

	doc, err := loader.Load(gc)
	switch {
	case errors.Is(err, loader.ErrMissingFile):
		log.Warn().Err(err).Str("group", gc.Name).Msg("GeoJSON file not found, group skipped")
		r.notify(LevelWarning, "File not found: %s", gc.Path)
		return res
	case err != nil:
		log.Error().Err(err).Str("group", gc.Name).Msg("Failed to process GeoJSON, group skipped")
		r.notify(LevelError, "Failed to process %s: %v", source, errors.Unwrap(err))
		return res
	}

	res.Document = doc
	res.Points, res.Skips = geo.Extract(doc, g, gc.Name)

	log.Info().
		Str("group", gc.Name).
		Str("source", source).
		Int("features", doc.Len()).
		Int("points", len(res.Points)).
		Int("skipped", len(res.Skips)).
		Msg("GeoJSON processed")

	msg := fmt.Sprintf("Loaded %s: %d centroid points", source, len(res.Points))
	if len(res.Skips) > 0 {
		msg += fmt.Sprintf(" (%d features skipped)", len(res.Skips))
	}
	r.notify(LevelSuccess, "%s", msg)

	return res
}

func (r *Report) notify(level Level, format string, args ...interface{}) {
	r.Notices = append(r.Notices, Notice{Level: level, Message: fmt.Sprintf(format, args...)})
}
