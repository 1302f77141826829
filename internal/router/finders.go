// internal/router/finders.go
//
// Content finder chain.
//
// Context
// -------
// Finders run in order until one resolves content onto the request.  Each
// finder is narrow: route lookup under the matched domain's root, legacy
// URL-alias lookup, and a numeric "/1234" id path.  A finder that cannot
// apply (no domain matched, path shape wrong) reports false without
// error, so the chain keeps moving.
//
// Notes
// -----
// • Finders only ever call SetPublishedContent; redirect and template
//   handling stay in the pipeline stages.
// • Oxford commas, two spaces after periods.

package router

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/josecarlosfreelancing/umbraco-poc/internal/content"
	"github.com/josecarlosfreelancing/umbraco-poc/internal/request"
)

// ContentFinder attempts to resolve content for a request.  Returns true
// when content was set; false with a nil error means "not mine, next".
type ContentFinder interface {
	Name() string
	TryFind(ctx context.Context, req *request.PublishedRequest) (bool, error)
}

//
// By route
//

type finderByRoute struct {
	db *sqlx.DB
}

func (f *finderByRoute) Name() string { return "by-route" }

func (f *finderByRoute) TryFind(ctx context.Context, req *request.PublishedRequest) (bool, error) {
	dom := req.Domain()
	if dom == nil {
		return false, nil
	}

	rec, err := content.ByRoute(ctx, f.db, dom.RootContentID, req.Route().Path)
	if err != nil {
		if errors.Is(err, content.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	if err := req.SetPublishedContent(rec); err != nil {
		return false, err
	}
	return true, nil
}

//
// By URL alias
//

type finderByAlias struct {
	db *sqlx.DB
}

func (f *finderByAlias) Name() string { return "by-alias" }

func (f *finderByAlias) TryFind(ctx context.Context, req *request.PublishedRequest) (bool, error) {
	dom := req.Domain()
	if dom == nil {
		return false, nil
	}

	alias := strings.Trim(req.Route().Path, "/")
	if alias == "" {
		return false, nil
	}

	rec, err := content.ByAlias(ctx, f.db, dom.RootContentID, alias)
	if err != nil {
		if errors.Is(err, content.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	if err := req.SetPublishedContent(rec); err != nil {
		return false, err
	}
	return true, nil
}

//
// By numeric id path
//

type finderByID struct {
	db *sqlx.DB
}

func (f *finderByID) Name() string { return "by-id" }

func (f *finderByID) TryFind(ctx context.Context, req *request.PublishedRequest) (bool, error) {
	seg := strings.Trim(req.Route().Path, "/")
	id, err := strconv.ParseUint(seg, 10, 64)
	if err != nil {
		return false, nil
	}

	rec, err := content.ByID(ctx, f.db, id)
	if err != nil {
		if errors.Is(err, content.ErrNotFound) {
			return false, nil
		}
		return false, err
	}

	// Never leak rows from another domain's tree.
	if dom := req.Domain(); dom != nil && rec.SiteRootID != dom.RootContentID {
		return false, nil
	}

	if err := req.SetPublishedContent(rec); err != nil {
		return false, err
	}
	return true, nil
}
