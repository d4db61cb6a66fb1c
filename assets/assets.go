// Package assets embeds the page template, styles and script of the map page.
package assets

import _ "embed"

// IndexTemplate is the html/template source of the map page.
//
//go:embed index.html.tpl
var IndexTemplate string

// Style is the page stylesheet, minified at startup.
//
//go:embed style.css
var Style string

// Script builds the deck.gl map from the embedded view model.
//
//go:embed script.js
var Script string
