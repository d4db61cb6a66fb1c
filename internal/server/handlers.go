// Package server handles HTTP requests and middleware.
package server

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/woozymasta/geocompare/internal/geo"
	"github.com/woozymasta/geocompare/internal/pipeline"
)

const (
	etagCap = 64

	boundariesPrefix = "/api/boundaries/"
	geojsonExt       = ".geojson"
	geojsonType      = "application/geo+json"
)

// PointsResponse is the body of the point table API.
type PointsResponse struct {
	Points  geo.PointTable    `json:"points"`
	View    *geo.ViewState    `json:"view,omitempty"`
	Notices []pipeline.Notice `json:"notices"`
}

// HandleIndex runs the pipeline and serves the map page.
// An empty result is served as the notice-only page with status 422.
func (s *ServerContext) HandleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	page, _, err := s.Renderer.Build(s.Config)
	status := http.StatusOK
	switch {
	case errors.Is(err, pipeline.ErrEmptyResult):
		status = http.StatusUnprocessableEntity
	case err != nil:
		log.Error().Err(err).Msg("Failed to build page")
		http.Error(w, "failed to build page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if status != http.StatusOK {
		w.Header().Set("Cache-Control", "no-store")
		w.WriteHeader(status)
		_, _ = w.Write(page)
		return
	}

	writeWithETag(w, r, page)
}

// HandlePoints runs the pipeline and serves the point table as JSON.
func (s *ServerContext) HandlePoints(w http.ResponseWriter, r *http.Request) {
	rep, err := pipeline.Run(s.Config)
	if rep == nil {
		log.Error().Err(err).Msg("Failed to build report")
		http.Error(w, "failed to build report", http.StatusInternalServerError)
		return
	}

	resp := PointsResponse{Points: rep.Points, Notices: rep.Notices}
	if resp.Points == nil {
		resp.Points = geo.PointTable{}
	}

	status := http.StatusOK
	if errors.Is(err, pipeline.ErrEmptyResult) {
		status = http.StatusUnprocessableEntity
	} else {
		resp.View = &rep.View
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	// Ignoring error as we cannot handle client disconnects
	_ = json.NewEncoder(w).Encode(resp)
}

// HandleBoundary serves the raw boundary document of a group.
// Path: /api/boundaries/{a|b}.geojson
func (s *ServerContext) HandleBoundary(w http.ResponseWriter, r *http.Request) {
	name, ok := strings.CutPrefix(r.URL.Path, boundariesPrefix)
	if !ok || !strings.HasSuffix(name, geojsonExt) {
		http.NotFound(w, r)
		return
	}

	idx := -1
	for i, g := range geo.Groups {
		if strings.EqualFold(strings.TrimSuffix(name, geojsonExt), g.String()) {
			idx = i
		}
	}
	if idx < 0 || idx >= len(s.Config.Groups) {
		http.NotFound(w, r)
		return
	}

	group := s.Config.Groups[idx]
	if group.Inline != nil {
		data, err := json.Marshal(group.Inline)
		if err != nil {
			log.Error().Err(err).Str("group", group.Name).Msg("Failed to encode inline GeoJSON")
			http.Error(w, "failed to encode document", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", geojsonType)
		writeWithETag(w, r, data)
		return
	}

	if !s.serveFile(w, r, group.Path, geojsonType) {
		http.NotFound(w, r)
	}
}

// writeWithETag writes data with an ETag derived from its content,
// answering 304 when the client already has it.
func writeWithETag(w http.ResponseWriter, r *http.Request, data []byte) {
	sum := sha256.Sum256(data)
	etag := `"` + hex.EncodeToString(sum[:16]) + `"`

	if match := r.Header.Get("If-None-Match"); match == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "public, no-cache")
	_, _ = w.Write(data)
}

// serveFile tries to serve a file from disk with ETag generation.
// It returns true if the file was found and served (or 304).
func (s *ServerContext) serveFile(w http.ResponseWriter, r *http.Request, path string, contentType string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	if info.IsDir() {
		return false
	}

	buf := make([]byte, 0, etagCap)
	buf = append(buf, '"')
	buf = strconv.AppendInt(buf, info.Size(), 16)
	buf = append(buf, '-')
	buf = strconv.AppendInt(buf, info.ModTime().UnixNano(), 16)
	buf = append(buf, '"')
	etag := string(buf)

	// check If-None-Match (client sent ETag)
	if match := r.Header.Get("If-None-Match"); match == etag {
		w.WriteHeader(http.StatusNotModified)
		return true
	}

	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "public, no-cache")

	if contentType != "" {
		w.Header().Set("Content-Type", contentType)
	}

	http.ServeFile(w, r, path)
	return true
}
