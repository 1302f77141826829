// Package theme holds the template descriptors the routing pipeline binds
// to prepared requests.  A Template describes one view file:
//
//   - Alias – the normalized lookup key ("blogPost").
//   - Name  – the file base name ("blogPost.html").
//   - Path  – absolute path to the view file on disk.
//
// Descriptors are inert; actual parsing happens lazily in FSService so the
// routing pipeline never pays template-compile cost for requests that end
// in a redirect or 404.
package theme

import "strings"

// Template is bound to a request once an alias resolves.
type Template struct {
	Alias string
	Name  string
	Path  string
}

// Service is the minimal contract the preparation pipeline needs.  The
// concrete *FSService satisfies it; tests substitute an in-memory fake.
type Service interface {
	Get(alias string) (*Template, bool)
}

// NormalizeAlias canonicalises a template alias: surrounding whitespace is
// trimmed and embedded spaces are stripped, so "blog post" and "blogpost"
// resolve identically.  Legacy content rows carry aliases with spaces.
func NormalizeAlias(alias string) string {
	return strings.ReplaceAll(strings.TrimSpace(alias), " ", "")
}
