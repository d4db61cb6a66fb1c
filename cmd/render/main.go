package main

import (
	"os"

	"github.com/woozymasta/geocompare/internal/config"
	"github.com/woozymasta/geocompare/internal/export"
	"github.com/woozymasta/geocompare/internal/logger"
	"github.com/woozymasta/geocompare/internal/pipeline"
	"github.com/woozymasta/geocompare/internal/render"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"
)

const formatHTML = "html"

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	ConfigFile string `short:"c" long:"config" env:"CONFIG_FILE" description:"Path to configuration file, built-in defaults when empty"`
	Output     string `short:"o" long:"out"    description:"Output file path. Writes to stdout if empty"`
	Format     string `short:"f" long:"format" description:"Output format" choice:"html" choice:"json" choice:"yaml" choice:"geojson" default:"html"`
}

func main() {
	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	opts.Logger.Setup()

	cfg, err := config.Load(opts.ConfigFile)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	var out []byte
	if opts.Format == formatHTML {
		out, err = renderPage(cfg)
	} else {
		out, err = renderTable(cfg, opts.Format)
	}
	if err != nil {
		log.Fatal().Err(err).Str("format", opts.Format).Msg("Failed to render")
	}

	if opts.Output == "" {
		_, _ = os.Stdout.Write(out)
		return
	}

	if err := os.WriteFile(opts.Output, out, 0644); err != nil {
		log.Fatal().Err(err).Str("path", opts.Output).Msg("Failed to write output file")
	}

	log.Info().
		Str("path", opts.Output).
		Str("format", opts.Format).
		Int("bytes", len(out)).
		Msg("Output written")
}

func renderPage(cfg *config.Config) ([]byte, error) {
	r, err := render.New()
	if err != nil {
		return nil, err
	}

	page, rep, err := r.Build(cfg)
	logNotices(rep)
	return page, err
}

func renderTable(cfg *config.Config, format string) ([]byte, error) {
	rep, err := pipeline.Run(cfg)
	logNotices(rep)
	if err != nil {
		return nil, err
	}

	return export.Encode(export.Table{View: rep.View, Points: rep.Points}, format)
}

// logNotices repeats the page notices on the console; the table formats
// have no other place to show them.
func logNotices(rep *pipeline.Report) {
	if rep == nil {
		return
	}
	for _, n := range rep.Notices {
		switch n.Level {
		case pipeline.LevelError:
			log.Error().Msg(n.Message)
		case pipeline.LevelWarning:
			log.Warn().Msg(n.Message)
		default:
			log.Info().Msg(n.Message)
		}
	}
}
