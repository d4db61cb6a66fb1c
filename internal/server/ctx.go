package server

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/woozymasta/geocompare/internal/config"
	"github.com/woozymasta/geocompare/internal/render"
)

// ServerContext holds dependencies for request handlers.
// Nothing in it changes after startup; every request rebuilds its report.
type ServerContext struct {
	Config   *config.Config
	Renderer *render.Renderer
}

// NewServerContext validates the configuration and prepares the page renderer.
func NewServerContext(cfg *config.Config) (*ServerContext, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log.Info().Int("groups", len(cfg.Groups)).Msg("Initializing server context")

	for _, g := range cfg.Groups {
		if g.Inline != nil {
			log.Debug().
				Str("group", g.Name).
				Msg("Group uses inline GeoJSON")
			continue
		}

		// missing files are reported per request, the file may appear later
		if _, err := os.Stat(g.Path); os.IsNotExist(err) {
			log.Warn().
				Str("group", g.Name).
				Str("path", g.Path).
				Msg("GeoJSON file not found yet")
		} else {
			log.Trace().
				Str("group", g.Name).
				Str("path", g.Path).
				Msg("GeoJSON file found")
		}
	}

	renderer, err := render.New()
	if err != nil {
		return nil, err
	}

	log.Info().Msg("Server context initialized successfully")

	return &ServerContext{
		Config:   cfg,
		Renderer: renderer,
	}, nil
}
