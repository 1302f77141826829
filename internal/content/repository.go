// internal/content/repository.go
//
// Read-side queries against the `content` table.
//
// Context
// -------
// The preparation engine resolves URLs to content rows through these
// helpers.  Every query filters on the published flag and the optional
// release/expire window, so callers never see unroutable rows.  Each
// lookup takes a context so it respects request deadlines.
//
// Notes
// -----
// • Oxford commas, two spaces after periods.

package content

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

// ErrNotFound is returned when no routable row matches the lookup.
var ErrNotFound = errors.New("content not found")

const routableWhere = `
          published  = TRUE
          AND (release_at IS NULL OR release_at <= NOW())
          AND (expire_at  IS NULL OR expire_at  >  NOW())`

const selectCols = `
        SELECT id, parent_id, site_root_id, name, url_segment, route,
               url_alias, template_alias, culture,
               internal_redirect_id, redirect_id,
               published, release_at, expire_at,
               created_at, updated_at
        FROM   content`

// ByRoute fetches the routable row under one site root whose route matches
// exactly.  Routes are stored with a single leading slash ("/" for root).
func ByRoute(ctx context.Context, db *sqlx.DB, siteRootID uint64, route string) (*Record, error) {
	const q = selectCols + `
        WHERE  site_root_id = ?
          AND  route = ?
          AND` + routableWhere + `
        LIMIT  1`
	var rec Record
	if err := db.GetContext(ctx, &rec, q, siteRootID, route); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

// ByID fetches one routable row by primary key, regardless of site root.
// Used by the numeric-path finder and by internal-redirect following.
func ByID(ctx context.Context, db *sqlx.DB, id uint64) (*Record, error) {
	const q = selectCols + `
        WHERE  id = ?
          AND` + routableWhere + `
        LIMIT  1`
	var rec Record
	if err := db.GetContext(ctx, &rec, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

// ByAlias fetches the routable row under one site root whose url_alias
// matches.  Aliases are stored without a leading slash.
func ByAlias(ctx context.Context, db *sqlx.DB, siteRootID uint64, alias string) (*Record, error) {
	const q = selectCols + `
        WHERE  site_root_id = ?
          AND  url_alias = ?
          AND` + routableWhere + `
        LIMIT  1`
	var rec Record
	if err := db.GetContext(ctx, &rec, q, siteRootID, alias); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}
