// internal/request/mutators.go
//
// Write surface of PublishedRequest: content, template, domain, and
// culture.  Every mutator checks the write guard first and has no side
// effects when it fails.
package request

import (
	"net/url"
	"strings"

	"github.com/josecarlosfreelancing/umbraco-poc/internal/content"
	"github.com/josecarlosfreelancing/umbraco-poc/internal/domain"
	"github.com/josecarlosfreelancing/umbraco-poc/internal/theme"
)

//
// Content
//

// SetPublishedContent replaces the resolved content.  As a side effect it
// clears the bound template, forcing re-resolution for the new content,
// and clears the internal-redirect flag.
func (r *PublishedRequest) SetPublishedContent(c *content.Record) error {
	if err := r.writable(); err != nil {
		return err
	}
	r.publishedContent = c
	r.template = nil
	r.internalRedirect = false
	return nil
}

// SetInternalRedirectContent replaces the resolved content via an
// internal redirect, without involving the network.  Content must already
// be resolved when this is called; a nil current content is a logic error
// in the caller and panics.
//
// The hop counts as internal when we are still on the initial content or
// already followed an internal redirect.  Internal hops preserve the
// template bound before the hop; the first hop away from fresh content
// leaves it cleared.
func (r *PublishedRequest) SetInternalRedirectContent(c *content.Record) error {
	if err := r.writable(); err != nil {
		return err
	}

	wasInternal := r.IsInitialContent() || r.internalRedirect

	// Self-redirect: nothing moves, but the flag still reflects history.
	if c.ID == r.publishedContent.ID {
		r.internalRedirect = wasInternal
		return nil
	}

	saved := r.template
	if err := r.SetPublishedContent(c); err != nil {
		return err
	}
	r.internalRedirect = wasInternal
	if wasInternal {
		r.template = saved
	}
	return nil
}

// MarkInitialContent snapshots the current content (which may be nil) as
// the first-pass result and clears the internal-redirect flag.  Called
// exactly once by the engine, after the finder chain runs.
func (r *PublishedRequest) MarkInitialContent() error {
	if err := r.writable(); err != nil {
		return err
	}
	r.initialContent = r.publishedContent
	r.internalRedirect = false
	return nil
}

//
// Template
//

// TrySetTemplateAlias resolves alias through the template store and binds
// the result.  An empty or whitespace alias clears the template and
// succeeds.  An unknown alias returns false and leaves the existing
// template untouched, so callers can pick fallback behavior without error
// handling.
func (r *PublishedRequest) TrySetTemplateAlias(alias string) (bool, error) {
	if err := r.writable(); err != nil {
		return false, err
	}
	if strings.TrimSpace(alias) == "" {
		r.template = nil
		return true, nil
	}

	tpl, ok := r.templates.Get(theme.NormalizeAlias(alias))
	if !ok {
		return false, nil
	}
	r.template = tpl
	return true, nil
}

// SetTemplate binds a template directly.
func (r *PublishedRequest) SetTemplate(t *theme.Template) error {
	if err := r.writable(); err != nil {
		return err
	}
	r.template = t
	return nil
}

// ClearTemplate removes any bound template.
func (r *PublishedRequest) ClearTemplate() error {
	if err := r.writable(); err != nil {
		return err
	}
	r.template = nil
	return nil
}

//
// Domain and culture
//

// SetDomain records the matched domain and its canonical URI.
func (r *PublishedRequest) SetDomain(d *domain.Record, uri *url.URL) error {
	if err := r.writable(); err != nil {
		return err
	}
	r.domain = d
	r.domainURI = uri
	return nil
}

// SetCulture records the resolved culture tag.
func (r *PublishedRequest) SetCulture(culture string) error {
	if err := r.writable(); err != nil {
		return err
	}
	r.culture = culture
	return nil
}

//
// Not-found intent
//

// SetIs404 marks the request as not-found.  It intentionally neither
// cancels the request nor clears content; the rendering stage decides
// what a 404 response looks like.
func (r *PublishedRequest) SetIs404() error {
	if err := r.writable(); err != nil {
		return err
	}
	r.is404 = true
	return nil
}
