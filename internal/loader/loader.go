// Package loader reads the GeoJSON documents of the compared groups.
package loader

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/woozymasta/geocompare/internal/config"
	"github.com/woozymasta/geocompare/internal/geo"

	"github.com/rs/zerolog/log"
)

// Sentinels matched by the typed errors below with errors.Is.
var (
	ErrMissingFile = errors.New("file not found")
	ErrParse       = errors.New("parse failed")
)

// MissingFileError reports a configured path that does not exist.
type MissingFileError struct {
	Path string
}

func (e *MissingFileError) Error() string {
	return "file not found: " + e.Path
}

// Is reports whether target is ErrMissingFile.
func (e *MissingFileError) Is(target error) bool {
	return target == ErrMissingFile
}

// ParseError reports a source that exists but is not a readable feature collection.
type ParseError struct {
	Source string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %v", e.Source, e.Err)
}

// Unwrap returns the underlying cause.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrParse.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// Source describes where the group's document comes from, for messages.
func Source(g config.Group) string {
	if g.Inline != nil {
		return fmt.Sprintf("inline GeoJSON of %q", g.Name)
	}
	return g.Path
}

// Load reads and parses the group's document.
// Inline GeoJSON from the configuration takes priority over the path.
func Load(g config.Group) (*geo.Document, error) {
	if g.Inline != nil {
		log.Debug().
			Str("group", g.Name).
			Msg("Using inline GeoJSON from config")

		data, err := json.Marshal(g.Inline)
		if err != nil {
			return nil, &ParseError{Source: Source(g), Err: err}
		}
		return decode(Source(g), data)
	}

	return LoadFile(g.Path)
}

// LoadFile reads and parses the document at path.
func LoadFile(path string) (*geo.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &MissingFileError{Path: path}
		}
		return nil, &ParseError{Source: path, Err: err}
	}

	log.Debug().
		Str("path", path).
		Int("bytes", len(data)).
		Msg("GeoJSON file read")

	return decode(path, data)
}

func decode(source string, data []byte) (*geo.Document, error) {
	doc, err := geo.Decode(data)
	if err != nil {
		return nil, &ParseError{Source: source, Err: err}
	}
	return doc, nil
}
