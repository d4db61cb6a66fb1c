// Package render turns a pipeline report into the minified map page.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"regexp"
	"strconv"

	"github.com/woozymasta/geocompare/assets"
	"github.com/woozymasta/geocompare/internal/config"
	"github.com/woozymasta/geocompare/internal/deck"
	"github.com/woozymasta/geocompare/internal/pipeline"

	"github.com/rs/zerolog/log"
	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/html"
	"github.com/tdewolff/minify/v2/js"
)

// PageData is the data of the page template.
type PageData struct {
	Title       string
	Description string
	Caption     string
	Notices     []pipeline.Notice
	Deck        *deck.Deck // nil renders the notices only
	CSS         template.CSS
	JS          template.JS
}

// Renderer executes the page template and minifies the result.
// It is safe for concurrent use.
type Renderer struct {
	tmpl *template.Template
	m    *minify.M
	css  template.CSS
	js   template.JS
}

var funcs = template.FuncMap{
	"rgba": func(c config.Color) template.CSS {
		return template.CSS(fmt.Sprintf("rgba(%d, %d, %d, %s)",
			c[0], c[1], c[2], strconv.FormatFloat(float64(c[3])/255, 'f', 2, 64)))
	},
	"coord": func(v float64) string {
		return strconv.FormatFloat(v, 'f', 6, 64)
	},
}

// New parses the embedded template and minifies the embedded styles and script once.
func New() (*Renderer, error) {
	m := minify.New()
	m.AddFunc("text/css", css.Minify)
	m.AddFunc("text/html", html.Minify)
	m.AddFuncRegexp(regexp.MustCompile("^(application|text)/(x-)?(java|ecma)script$"), js.Minify)

	cssMin, err := m.String("text/css", assets.Style)
	if err != nil {
		return nil, fmt.Errorf("minify CSS: %w", err)
	}

	jsMin, err := m.String("text/javascript", assets.Script)
	if err != nil {
		return nil, fmt.Errorf("minify JS: %w", err)
	}

	tmpl, err := template.New("index").Funcs(funcs).Parse(assets.IndexTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse template: %w", err)
	}

	log.Debug().
		Int("css_bytes", len(cssMin)).
		Int("js_bytes", len(jsMin)).
		Msg("Page assets prepared")

	return &Renderer{
		tmpl: tmpl,
		m:    m,
		css:  template.CSS(cssMin),
		js:   template.JS(jsMin),
	}, nil
}

// Page renders the map page for a report. A nil deck renders the page with
// title, description and notices only, as used for an empty result.
func (r *Renderer) Page(cfg *config.Config, notices []pipeline.Notice, d *deck.Deck) ([]byte, error) {
	data := PageData{
		Title:       cfg.Title,
		Description: cfg.Description,
		Caption:     cfg.Caption,
		Notices:     notices,
		Deck:        d,
		CSS:         r.css,
		JS:          r.js,
	}

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("execute template: %w", err)
	}

	out, err := r.m.Bytes("text/html", buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("minify HTML: %w", err)
	}

	return out, nil
}

// Build runs the whole chain for cfg: pipeline, view model and page.
// On pipeline.ErrEmptyResult the notice-only page is returned together with the error.
func (r *Renderer) Build(cfg *config.Config) ([]byte, *pipeline.Report, error) {
	rep, err := pipeline.Run(cfg)
	if rep == nil {
		return nil, nil, err
	}

	var d *deck.Deck
	if err == nil {
		d = deck.Assemble(cfg, rep)
	}

	page, perr := r.Page(cfg, rep.Notices, d)
	if perr != nil {
		return nil, rep, perr
	}

	return page, rep, err
}
