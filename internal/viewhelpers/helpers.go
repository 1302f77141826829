// internal/viewhelpers/helpers.go
//
// Template helpers injected into every parsed view.  Themes can call:
//
//	{{ segment .Content.Name }}
//	{{ childRoute .Content.Route "news" }}
//	{{ lang .Culture }} / {{ region .Culture }}
package viewhelpers

import (
	"html/template"
	"strings"

	"github.com/josecarlosfreelancing/umbraco-poc/internal/content"
)

// FuncMap returns the helper set shared by all views.
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"segment":    content.MakeSegment,
		"childRoute": content.BuildRoute,
		"lang":       Lang,
		"region":     Region,
	}
}

// Lang returns the language subtag of a culture ("en-us" → "en").
func Lang(culture string) string {
	if i := strings.Index(culture, "-"); i != -1 {
		return culture[:i]
	}
	return culture
}

// Region returns the region subtag of a culture ("en-us" → "us"), or "".
func Region(culture string) string {
	if i := strings.Index(culture, "-"); i != -1 {
		return culture[i+1:]
	}
	return ""
}
