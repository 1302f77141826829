package domain

import "time"

// Record mirrors one row in the persistent `domain` table.  A domain binds
// a host name to the content tree that serves it.  The operational state is
// captured by two nullable timestamps:
//
//   - SuspendedAt – domain is temporarily disabled (e.g., billing).
//   - DeletedAt   – domain is permanently removed.
//
// Either timestamp being non-NULL prevents the matcher from serving the
// domain.
//
// Host may be a wildcard pattern such as "*.example.com", which matches any
// subdomain.  Exact hosts always win over wildcards; among equal matches the
// lowest SortOrder wins.
type Record struct {
	ID                uint64     `db:"id"`
	Host              string     `db:"host"`
	CultureISO        string     `db:"culture_iso"`
	RootContentID     uint64     `db:"root_content_id"`
	NotFoundContentID *uint64    `db:"not_found_content_id"`
	SortOrder         int        `db:"sort_order"`
	SuspendedAt       *time.Time `db:"suspended_at"`
	DeletedAt         *time.Time `db:"deleted_at"`
	CreatedAt         time.Time  `db:"created_at"`
	UpdatedAt         time.Time  `db:"updated_at"`
}

// IsWildcard reports whether Host is a "*."-prefixed pattern.
func (r *Record) IsWildcard() bool {
	return len(r.Host) > 2 && r.Host[0] == '*' && r.Host[1] == '.'
}
