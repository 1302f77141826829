package content

import "time"

// Record mirrors one row in the persistent `content` table.  A row is
// routable when `published` is true and the current time falls inside the
// optional release/expire window:
//
//   - ReleaseAt – row becomes visible at this instant (NULL = immediately).
//   - ExpireAt  – row disappears from routing at this instant (NULL = never).
//
// Redirect intent lives on the row itself, matching the legacy property
// conventions:
//
//   - InternalRedirectID – resolve a different row without an HTTP redirect.
//   - RedirectID         – issue a real 301 to the target row's route.
type Record struct {
	ID                 uint64     `db:"id"`
	ParentID           *uint64    `db:"parent_id"`
	SiteRootID         uint64     `db:"site_root_id"`
	Name               string     `db:"name"`
	URLSegment         string     `db:"url_segment"`
	Route              string     `db:"route"`
	URLAlias           *string    `db:"url_alias"`
	TemplateAlias      string     `db:"template_alias"`
	Culture            string     `db:"culture"`
	InternalRedirectID *uint64    `db:"internal_redirect_id"`
	RedirectID         *uint64    `db:"redirect_id"`
	Published          bool       `db:"published"`
	ReleaseAt          *time.Time `db:"release_at"`
	ExpireAt           *time.Time `db:"expire_at"`
	CreatedAt          time.Time  `db:"created_at"`
	UpdatedAt          time.Time  `db:"updated_at"`
}
