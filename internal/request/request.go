// internal/request/request.go
//
// Central per-request resolution state.
//
// Context
// -------
// Every inbound URL builds one *PublishedRequest.  The preparation engine
// populates it (domain, culture, content, template, redirect or 404
// intent), then freezes it; the rendering stage only ever reads it.  The
// write guard is the load-bearing invariant: once frozen, every mutator
// fails with ErrFrozen.  None of the mutators perform I/O; they record
// intent for a later stage to execute.
//
// Lifecycle
// ---------
//   1. Built writable by router.BuildRequest.
//   2. Prepare() hands it to the engine, which mutates it freely.
//   3. Freeze() notifies Prepared listeners (still writable), applies the
//      404 safety net, and performs the one-way transition to Frozen.
//   4. UpdateOnMissingTemplate() is the single sanctioned freeze bypass,
//      scoped so the prior state is restored on every exit path.
//
// Notes
// -----
// • One request is owned by one goroutine; no internal locking.
// • Oxford commas, two spaces after periods.

package request

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/josecarlosfreelancing/umbraco-poc/internal/content"
	"github.com/josecarlosfreelancing/umbraco-poc/internal/domain"
	"github.com/josecarlosfreelancing/umbraco-poc/internal/theme"
)

//
// State machine
//

// State is the mutation phase of a PublishedRequest.
type State int

const (
	// StateWritable allows every mutator; the preparation phase.
	StateWritable State = iota
	// StateFrozen rejects every mutator; the rendering phase.
	StateFrozen
)

// ErrFrozen is returned by every mutator invoked after Freeze.  It always
// indicates a programming error in the engine or a listener misusing the
// API after preparation.
var ErrFrozen = errors.New("request: cannot modify a frozen request")

//
// Collaborator contracts
//

// Preparer owns the multi-stage resolution algorithm.  The concrete
// *router.Router satisfies it; the interface lives here so the request
// package never imports the engine.
type Preparer interface {
	PrepareRequest(ctx context.Context, req *PublishedRequest) (bool, error)
	UpdateRequestOnMissingTemplate(ctx context.Context, req *PublishedRequest) error
}

// TemplateService is the minimal template-store contract the request
// needs for alias resolution.
type TemplateService interface {
	Get(alias string) (*theme.Template, bool)
}

// RouteContext carries the request-derived routing inputs.  It is stored
// on the request by Prepare and read by the engine's finders.  Request is
// the original inbound request when one exists; the culture resolver
// reads headers from it.  Nil in tests that exercise the pipeline
// without an HTTP layer.
type RouteContext struct {
	URI     *url.URL // full incoming URI
	Host    string   // Host header without the :port suffix
	Path    string   // cleaned path with a single leading slash
	Request *http.Request
}

//
// PublishedRequest
//

// PublishedRequest records how one URL resolves.  Construct with New;
// the zero value is unusable.
type PublishedRequest struct {
	engine    Preparer
	templates TemplateService
	notifier  *Notifier

	state State
	route *RouteContext

	publishedContent *content.Record
	initialContent   *content.Record
	internalRedirect bool

	template *theme.Template

	domain    *domain.Record
	domainURI *url.URL
	culture   string

	is404             bool
	redirectURL       string
	redirectPermanent bool
	statusCode        int
	statusDescription string
}

// New returns a writable request bound to its engine and template store.
// notifier may be nil when no Prepared listeners are registered.
func New(engine Preparer, templates TemplateService, notifier *Notifier) *PublishedRequest {
	return &PublishedRequest{
		engine:    engine,
		templates: templates,
		notifier:  notifier,
	}
}

// writable is the single write guard used by every mutator.
func (r *PublishedRequest) writable() error {
	if r.state == StateFrozen {
		return ErrFrozen
	}
	return nil
}

//
// Lifecycle operations
//

// Prepare stores the route context and hands the request to the engine.
// The bool mirrors the engine's success signal: true when the request
// resolved to content or redirect intent.  Call once per request.
func (r *PublishedRequest) Prepare(ctx context.Context, rc *RouteContext) (bool, error) {
	r.route = rc
	return r.engine.PrepareRequest(ctx, r)
}

// Freeze ends preparation.  It fires the Prepared notification while the
// request is still writable, then applies the 404 safety net, then
// performs the one-way transition to Frozen.  The transition happens even
// when a listener fails; the listener error is returned so the engine can
// surface it.  Called exactly once, by the engine.
func (r *PublishedRequest) Freeze() error {
	err := r.notifier.notify(r)

	// Safety net: preparation that ends with no content is a 404, no
	// matter what listeners did.
	if r.publishedContent == nil {
		r.is404 = true
	}

	r.state = StateFrozen
	return err
}

// UpdateOnMissingTemplate is the one documented freeze bypass, used when
// the rendering stage discovers the bound template cannot be served.  The
// prior state is captured, the request forced writable, and the prior
// state restored on every exit path, including engine failure.
func (r *PublishedRequest) UpdateOnMissingTemplate(ctx context.Context) error {
	return r.withWritable(func() error {
		return r.engine.UpdateRequestOnMissingTemplate(ctx, r)
	})
}

// withWritable runs fn with the request forced writable, restoring the
// captured state afterward.
func (r *PublishedRequest) withWritable(fn func() error) error {
	saved := r.state
	r.state = StateWritable
	defer func() { r.state = saved }()
	return fn()
}

//
// Read surface (never guarded)
//

// State reports the current mutation phase.
func (r *PublishedRequest) State() State { return r.state }

// IsFrozen reports whether preparation has completed.
func (r *PublishedRequest) IsFrozen() bool { return r.state == StateFrozen }

// Route returns the route context stored by Prepare, or nil.
func (r *PublishedRequest) Route() *RouteContext { return r.route }

// PublishedContent returns the resolved content row, or nil.
func (r *PublishedRequest) PublishedContent() *content.Record { return r.publishedContent }

// HasPublishedContent reports whether content has been resolved.
func (r *PublishedRequest) HasPublishedContent() bool { return r.publishedContent != nil }

// InitialContent returns the first-pass snapshot, or nil.
func (r *PublishedRequest) InitialContent() *content.Record { return r.initialContent }

// IsInitialContent reports whether the current content is still the
// first-pass snapshot.  Identity comparison, not ID equality: a re-fetched
// row with the same ID is not "initial".
func (r *PublishedRequest) IsInitialContent() bool {
	return r.initialContent != nil && r.initialContent == r.publishedContent
}

// IsInternalRedirect reports whether the current content was reached via
// an internal-redirect chain from the initial content.
func (r *PublishedRequest) IsInternalRedirect() bool { return r.internalRedirect }

// Template returns the bound template descriptor, or nil.
func (r *PublishedRequest) Template() *theme.Template { return r.template }

// Domain returns the matched domain row, or nil.
func (r *PublishedRequest) Domain() *domain.Record { return r.domain }

// DomainURI returns the canonical URI of the matched domain, or nil.
func (r *PublishedRequest) DomainURI() *url.URL { return r.domainURI }

// Culture returns the resolved culture tag, or "".
func (r *PublishedRequest) Culture() string { return r.culture }

// Is404 reports whether the request should render a not-found response.
func (r *PublishedRequest) Is404() bool { return r.is404 }

// IsRedirect reports whether redirect intent has been recorded.
func (r *PublishedRequest) IsRedirect() bool { return r.redirectURL != "" }

// RedirectURL returns the recorded redirect target, or "".
func (r *PublishedRequest) RedirectURL() string { return r.redirectURL }

// IsRedirectPermanent reports whether the redirect should be permanent.
func (r *PublishedRequest) IsRedirectPermanent() bool { return r.redirectPermanent }

// ResponseStatusCode returns the recorded status override; 0 means none.
func (r *PublishedRequest) ResponseStatusCode() int { return r.statusCode }

// ResponseStatusDescription returns the recorded status text, or "".
func (r *PublishedRequest) ResponseStatusDescription() string { return r.statusDescription }
