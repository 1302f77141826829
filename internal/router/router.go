// internal/router/router.go
//
// Preparation engine: URL → resolved request.
//
// Context
// -------
// Router owns the multi-stage resolution algorithm that populates a
// PublishedRequest:
//
//   1. Domain match           – host → domain row (cached, singleflight).
//   2. Culture resolve        – domain culture, Accept-Language, geo hint.
//   3. Content finder chain   – by route, by URL alias, by numeric id.
//   4. Initial snapshot       – MarkInitialContent after the first pass.
//   5. Internal redirects     – bounded hop-following on the content row's
//                               internal_redirect_id property.
//   6. Redirect property      – redirect_id rows record real 301 intent.
//   7. Template resolve       – content's template alias via the store.
//   8. Last-chance 404 page   – domain's configured not-found content.
//   9. Freeze                 – Prepared notification, 404 safety net, and
//                               the one-way transition.
//
// Router is the sole writer during Prepare; it satisfies request.Preparer.
//
// Notes
// -----
// • Oxford commas, two spaces after periods.

package router

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/josecarlosfreelancing/umbraco-poc/internal/content"
	"github.com/josecarlosfreelancing/umbraco-poc/internal/culture"
	"github.com/josecarlosfreelancing/umbraco-poc/internal/domain"
	"github.com/josecarlosfreelancing/umbraco-poc/internal/metrics"
	"github.com/josecarlosfreelancing/umbraco-poc/internal/request"
	"github.com/josecarlosfreelancing/umbraco-poc/internal/theme"
)

// maxInternalRedirects bounds hop-following so a miswired content tree
// cannot spin the pipeline.
const maxInternalRedirects = 8

// Router drives request preparation.  Construct with New; safe for
// concurrent use across requests.
type Router struct {
	db        *sqlx.DB
	domains   *domain.Cache
	templates theme.Service
	cultures  culture.Resolver
	notifier  *request.Notifier
	finders   []ContentFinder
}

// New wires a Router with the default finder chain.  notifier may be nil
// when no Prepared listeners are registered.
func New(db *sqlx.DB, domains *domain.Cache, templates theme.Service,
	cultures culture.Resolver, notifier *request.Notifier) *Router {

	rt := &Router{
		db:        db,
		domains:   domains,
		templates: templates,
		cultures:  cultures,
		notifier:  notifier,
	}
	rt.finders = []ContentFinder{
		&finderByRoute{db: db},
		&finderByAlias{db: db},
		&finderByID{db: db},
	}
	return rt
}

// BuildRequest constructs a writable request bound to this engine.
func (rt *Router) BuildRequest() *request.PublishedRequest {
	return request.New(rt, rt.templates, rt.notifier)
}

// RouteContextFor derives the routing inputs from an inbound request.
func (rt *Router) RouteContextFor(r *http.Request) *request.RouteContext {
	path := r.URL.Path
	if path == "" {
		path = "/"
	}
	if len(path) > 1 {
		path = "/" + strings.Trim(path, "/")
	}
	return &request.RouteContext{
		URI:     r.URL,
		Host:    stripPort(r.Host),
		Path:    path,
		Request: r,
	}
}

//
// request.Preparer implementation
//

// PrepareRequest runs the pipeline and freezes the request.  The bool is
// true when the request resolved to content or redirect intent.
func (rt *Router) PrepareRequest(ctx context.Context, req *request.PublishedRequest) (bool, error) {
	rc := req.Route()

	if err := rt.findDomain(ctx, req, rc); err != nil {
		return false, err
	}

	if err := rt.findContent(ctx, req); err != nil {
		return false, err
	}
	if err := req.MarkInitialContent(); err != nil {
		return false, err
	}

	if err := rt.followInternalRedirects(ctx, req); err != nil {
		return false, err
	}
	if err := rt.handleRedirectProperty(ctx, req); err != nil {
		return false, err
	}

	if !req.IsRedirect() && req.HasPublishedContent() {
		if err := rt.findTemplate(req); err != nil {
			return false, err
		}
	}

	if !req.HasPublishedContent() && !req.IsRedirect() {
		if err := rt.lastChance(ctx, req); err != nil {
			return false, err
		}
	}

	err := req.Freeze()

	metrics.RequestsPreparedTotal.Inc()
	if req.Is404() {
		metrics.RequestsNotFoundTotal.Inc()
	}
	if req.IsRedirect() {
		metrics.RequestsRedirectTotal.Inc()
	}

	return req.HasPublishedContent() || req.IsRedirect(), err
}

// UpdateRequestOnMissingTemplate recovers a request whose bound template
// cannot be served.  Called through the request's scoped freeze bypass,
// so mutation is permitted here even on a frozen request.
func (rt *Router) UpdateRequestOnMissingTemplate(ctx context.Context, req *request.PublishedRequest) error {
	if err := req.ClearTemplate(); err != nil {
		return err
	}
	if err := req.SetIs404(); err != nil {
		return err
	}
	return rt.lastChance(ctx, req)
}

//
// Pipeline stages
//

func (rt *Router) findDomain(ctx context.Context, req *request.PublishedRequest, rc *request.RouteContext) error {
	dom, err := rt.domains.Get(ctx, rc.Host)
	if err != nil {
		if errors.Is(err, domain.ErrNoDomain) {
			zap.S().Debugw("no domain for host", "host", rc.Host)
			return nil
		}
		return err
	}

	canonical := &url.URL{Scheme: "https", Host: rc.Host}
	if err := req.SetDomain(dom, canonical); err != nil {
		return err
	}

	c := dom.CultureISO
	if rc.Request != nil {
		c = rt.cultures.Resolve(rc.Request, dom.CultureISO)
	}
	return req.SetCulture(c)
}

func (rt *Router) findContent(ctx context.Context, req *request.PublishedRequest) error {
	for _, f := range rt.finders {
		ok, err := f.TryFind(ctx, req)
		if err != nil {
			return err
		}
		if ok {
			zap.S().Debugw("content found",
				"finder", f.Name(),
				"content_id", req.PublishedContent().ID)
			return nil
		}
	}
	return nil
}

// followInternalRedirects walks internal_redirect_id hops, bounded by
// maxInternalRedirects.  Template preservation across hops is handled by
// the request itself.
func (rt *Router) followInternalRedirects(ctx context.Context, req *request.PublishedRequest) error {
	for hops := 0; req.HasPublishedContent(); hops++ {
		cur := req.PublishedContent()
		if cur.InternalRedirectID == nil {
			return nil
		}
		if hops >= maxInternalRedirects {
			zap.S().Warnw("internal redirect limit reached",
				"content_id", cur.ID, "hops", hops)
			return nil
		}
		if *cur.InternalRedirectID == cur.ID {
			zap.S().Warnw("internal redirect to self", "content_id", cur.ID)
			return nil
		}

		target, err := content.ByID(ctx, rt.db, *cur.InternalRedirectID)
		if err != nil {
			if errors.Is(err, content.ErrNotFound) {
				zap.S().Warnw("internal redirect target missing",
					"content_id", cur.ID, "target_id", *cur.InternalRedirectID)
				return nil
			}
			return err
		}
		if err := req.SetInternalRedirectContent(target); err != nil {
			return err
		}
		metrics.InternalRedirectsTotal.Inc()
	}
	return nil
}

// handleRedirectProperty turns a redirect_id row into permanent redirect
// intent toward the target's route.
func (rt *Router) handleRedirectProperty(ctx context.Context, req *request.PublishedRequest) error {
	if !req.HasPublishedContent() {
		return nil
	}
	cur := req.PublishedContent()
	if cur.RedirectID == nil {
		return nil
	}

	target, err := content.ByID(ctx, rt.db, *cur.RedirectID)
	if err != nil {
		if errors.Is(err, content.ErrNotFound) {
			zap.S().Warnw("redirect target missing",
				"content_id", cur.ID, "target_id", *cur.RedirectID)
			return nil
		}
		return err
	}
	return req.SetRedirectPermanent(target.Route)
}

func (rt *Router) findTemplate(req *request.PublishedRequest) error {
	alias := req.PublishedContent().TemplateAlias
	ok, err := req.TrySetTemplateAlias(alias)
	if err != nil {
		return err
	}
	if !ok {
		zap.S().Warnw("template alias not found",
			"alias", alias, "content_id", req.PublishedContent().ID)
	}
	return nil
}

// lastChance binds the domain's configured not-found page, keeping the
// 404 flag set so the response stage still emits 404.
func (rt *Router) lastChance(ctx context.Context, req *request.PublishedRequest) error {
	if err := req.SetIs404(); err != nil {
		return err
	}

	dom := req.Domain()
	if dom == nil || dom.NotFoundContentID == nil {
		return nil
	}

	page, err := content.ByID(ctx, rt.db, *dom.NotFoundContentID)
	if err != nil {
		if errors.Is(err, content.ErrNotFound) {
			zap.S().Warnw("configured not-found page missing",
				"domain_id", dom.ID, "content_id", *dom.NotFoundContentID)
			return nil
		}
		return err
	}

	// Setting content clears only template and the internal-redirect
	// flag; the 404 flag survives.  Re-assert it anyway.
	if err := req.SetPublishedContent(page); err != nil {
		return err
	}
	if err := req.SetIs404(); err != nil {
		return err
	}
	if _, err := req.TrySetTemplateAlias(page.TemplateAlias); err != nil {
		return err
	}
	return nil
}

// stripPort removes the :port suffix from Host when present.
func stripPort(h string) string {
	if i := strings.IndexByte(h, ':'); i != -1 {
		return h[:i]
	}
	return h
}
