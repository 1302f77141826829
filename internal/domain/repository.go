package domain

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// AllActive returns every domain that is neither suspended nor deleted.
// This helper is used by admin dashboards or batch operations, not by the
// HTTP bootstrap path.
func AllActive(db *sqlx.DB) ([]Record, error) {
	const q = `
        SELECT id, host, culture_iso, root_content_id, not_found_content_id,
               sort_order, suspended_at, deleted_at, created_at, updated_at
        FROM   domain
        WHERE  suspended_at IS NULL
          AND  deleted_at   IS NULL`
	var rows []Record
	if err := db.Select(&rows, q); err != nil {
		return nil, err
	}
	return rows, nil
}

// CandidatesForHost fetches every active row that could serve the given
// host: exact matches plus all wildcard patterns.  Wildcard filtering
// happens in Go (see Match) because SQL cannot rank "*." patterns cheaply.
// The caller supplies a context so the lookup respects request deadlines.
func CandidatesForHost(ctx context.Context, db *sqlx.DB, host string) ([]Record, error) {
	const q = `
        SELECT id, host, culture_iso, root_content_id, not_found_content_id,
               sort_order, suspended_at, deleted_at, created_at, updated_at
        FROM   domain
        WHERE  (host = ? OR host LIKE '*.%')
          AND  suspended_at IS NULL
          AND  deleted_at   IS NULL
        ORDER  BY sort_order ASC`
	var rows []Record
	if err := db.SelectContext(ctx, &rows, q, host); err != nil {
		return nil, err
	}
	return rows, nil
}
