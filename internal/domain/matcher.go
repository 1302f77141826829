// internal/domain/matcher.go
//
// Host → domain selection rules.
//
// Context
// -------
// CandidatesForHost returns exact rows plus every wildcard pattern; Match
// picks the winner.  Exact hosts always beat wildcards.  A wildcard
// "*.example.com" matches "blog.example.com" but not "example.com" itself
// and not "example.com.evil.net".  Among candidates of the same kind the
// lowest sort_order wins; rows arrive pre-sorted from SQL.
//
// Notes
// -----
// • Host comparison is case-insensitive; ports must be stripped by callers.
// • Oxford commas, two spaces after periods.

package domain

import "strings"

// Match selects the best candidate for host, or nil when none applies.
// Candidates must be ordered by ascending sort_order.
func Match(host string, candidates []Record) *Record {
	host = strings.ToLower(host)

	for i := range candidates {
		if strings.ToLower(candidates[i].Host) == host {
			return &candidates[i]
		}
	}
	for i := range candidates {
		c := &candidates[i]
		if c.IsWildcard() && matchesWildcard(host, strings.ToLower(c.Host)) {
			return c
		}
	}
	return nil
}

// matchesWildcard reports whether host falls under a "*.suffix" pattern.
// The host must carry at least one extra label before the suffix.
func matchesWildcard(host, pattern string) bool {
	suffix := pattern[1:] // ".example.com"
	return len(host) > len(suffix) && strings.HasSuffix(host, suffix)
}
